package nbt

import (
	"errors"
	"reflect"
	"testing"
)

// ============================================================
// Marshal Tests
// ============================================================

type level struct {
	Name      string  `nbt:"LevelName"`
	Seed      int64   `nbt:"RandomSeed"`
	Spawn     []int32 `nbt:"SpawnPos"`
	Hardcore  bool
	RawTime   int8   `nbt:"-"`
	Motd      string `nbt:"motd,omitempty"`
	HeightMap []byte
	version   int
}

func TestMarshal_Struct(t *testing.T) {
	in := level{
		Name:      "world",
		Seed:      42,
		Spawn:     []int32{0, 64, 0},
		Hardcore:  true,
		RawTime:   9,
		HeightMap: []byte{1, 2, 3},
		version:   7,
	}

	tag, err := Marshal(in)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	c, err := tag.AsCompound()
	if err != nil {
		t.Fatalf("Marshal produced %s, want Compound", tag.ID())
	}

	if got := c.Keys(); !reflect.DeepEqual(got, []string{"LevelName", "RandomSeed", "SpawnPos", "Hardcore", "HeightMap"}) {
		t.Fatalf("Keys() = %v", got)
	}

	name, _ := c.Get("LevelName")
	if v, _ := name.AsString(); v != "world" {
		t.Errorf("LevelName = %v", name)
	}
	spawn, _ := c.Get("SpawnPos")
	if spawn.ID() != TagIntArray {
		t.Errorf("SpawnPos = %s, want IntArray", spawn.ID())
	}
	hm, _ := c.Get("HeightMap")
	if hm.ID() != TagByteArray {
		t.Errorf("HeightMap = %s, want ByteArray", hm.ID())
	}
	if c.Contains("RawTime") || c.Contains("motd") || c.Contains("version") {
		t.Error("skipped, empty, or unexported field was marshaled")
	}
}

func TestMarshal_Kinds(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want TagID
	}{
		{"bool", true, TagByte},
		{"int8", int8(5), TagByte},
		{"uint8", uint8(200), TagByte},
		{"int16", int16(5), TagShort},
		{"int32", int32(5), TagInt},
		{"int", 5, TagLong},
		{"int64", int64(5), TagLong},
		{"float32", float32(1.5), TagFloat},
		{"float64", 1.5, TagDouble},
		{"string", "x", TagString},
		{"byte_slice", []byte{1}, TagByteArray},
		{"int8_slice", []int8{1}, TagByteArray},
		{"int32_slice", []int32{1}, TagIntArray},
		{"int64_slice", []int64{1}, TagLongArray},
		{"int32_array", [2]int32{1, 2}, TagIntArray},
		{"string_slice", []string{"a"}, TagList},
		{"map", map[string]int32{"a": 1}, TagCompound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tag, err := Marshal(tt.in)
			if err != nil {
				t.Fatalf("Marshal(%v): %v", tt.in, err)
			}
			if tag.ID() != tt.want {
				t.Errorf("Marshal(%v) = %s, want %s", tt.in, tag.ID(), tt.want)
			}
		})
	}
}

func TestMarshal_MapKeysSorted(t *testing.T) {
	tag, err := Marshal(map[string]int32{"c": 3, "a": 1, "b": 2})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	c, _ := tag.AsCompound()
	if got := c.Keys(); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("Keys() = %v, want sorted", got)
	}
}

func TestMarshal_TagPassthrough(t *testing.T) {
	raw := IntArray([]int32{9})
	tag, err := Marshal(struct{ Raw *Tag }{Raw: raw})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	c, _ := tag.AsCompound()
	got, _ := c.Get("Raw")
	if got != raw {
		t.Errorf("Raw = %v, want the original tag", got)
	}
}

func TestMarshal_Errors(t *testing.T) {
	if _, err := Marshal(nil); err == nil {
		t.Error("Marshal(nil) succeeded")
	}
	if _, err := Marshal(make(chan int)); err == nil {
		t.Error("Marshal(chan) succeeded")
	}
	if _, err := Marshal(map[int]string{1: "x"}); err == nil {
		t.Error("Marshal with non-string map key succeeded")
	}
	if _, err := Marshal([]any{int32(1), "x"}); err == nil {
		t.Error("Marshal of a mixed list succeeded")
	}
}

// ============================================================
// Unmarshal Tests
// ============================================================

func TestUnmarshal_RoundTrip(t *testing.T) {
	in := level{
		Name:      "world",
		Seed:      42,
		Spawn:     []int32{0, 64, 0},
		Hardcore:  true,
		Motd:      "hi",
		HeightMap: []byte{1, 2, 3},
	}

	tag, err := Marshal(in)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var out level
	if err := Unmarshal(tag, &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Errorf("round trip changed the value:\n in: %+v\nout: %+v", in, out)
	}
}

func TestUnmarshal_ThroughBinary(t *testing.T) {
	type chunk struct {
		X        int32       `nbt:"xPos"`
		Z        int32       `nbt:"zPos"`
		Blocks   []int64     `nbt:"BlockStates"`
		Sections []map[string]int32
	}
	in := chunk{
		X:        -3,
		Z:        7,
		Blocks:   []int64{1, 2, 3},
		Sections: []map[string]int32{{"Y": 0}, {"Y": 1}},
	}

	tag, err := Marshal(in)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	data, err := EncodeBytes("", tag)
	if err != nil {
		t.Fatalf("EncodeBytes: %v", err)
	}
	_, back, err := DecodeBytes(data)
	if err != nil {
		t.Fatalf("DecodeBytes: %v", err)
	}
	var out chunk
	if err := Unmarshal(back, &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Errorf("binary round trip changed the value:\n in: %+v\nout: %+v", in, out)
	}
}

func TestUnmarshal_PartialStruct(t *testing.T) {
	// Decoders routinely bind only the keys they care about.
	c := NewCompound()
	c.Set("xPos", Int(4))
	c.Set("Ignored", String("extra"))

	var out struct {
		X int32 `nbt:"xPos"`
		Y int32 `nbt:"yPos"`
	}
	out.Y = 99
	if err := Unmarshal(CompoundTag(c), &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if out.X != 4 {
		t.Errorf("X = %d, want 4", out.X)
	}
	if out.Y != 99 {
		t.Errorf("Y = %d, want the untouched 99", out.Y)
	}
}

func TestUnmarshal_Interface(t *testing.T) {
	c := NewCompound()
	c.Set("payload", Short(300))

	var out struct {
		Payload any `nbt:"payload"`
	}
	if err := Unmarshal(CompoundTag(c), &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	tag, ok := out.Payload.(*Tag)
	if !ok {
		t.Fatalf("Payload = %T, want *Tag", out.Payload)
	}
	if v, _ := tag.AsShort(); v != 300 {
		t.Errorf("Payload = %v, want Short(300)", tag)
	}
}

func TestUnmarshal_Errors(t *testing.T) {
	tag := String("x")

	var s string
	if err := Unmarshal(tag, s); err == nil {
		t.Error("non-pointer target succeeded")
	}
	if err := Unmarshal(tag, (*string)(nil)); err == nil {
		t.Error("nil pointer target succeeded")
	}

	var n int32
	err := Unmarshal(tag, &n)
	var te *TypeError
	if !errors.As(err, &te) {
		t.Errorf("String into int32 = %v, want *TypeError", err)
	}

	var arr [2]int32
	if err := Unmarshal(IntArray([]int32{1, 2, 3}), &arr); err == nil {
		t.Error("3 elements into [2]int32 succeeded")
	}
}
