package nbt

import (
	"errors"
	"math"
	"testing"
)

// ============================================================
// Tag Accessor Tests
// ============================================================

func TestTag_IDs(t *testing.T) {
	tests := []struct {
		name string
		tag  *Tag
		id   TagID
	}{
		{"byte", Byte(5), TagByte},
		{"short", Short(300), TagShort},
		{"int", Int(70000), TagInt},
		{"long", Long(1 << 40), TagLong},
		{"float", Float(1.5), TagFloat},
		{"double", Double(2.5), TagDouble},
		{"string", String("hi"), TagString},
		{"byte_array", ByteArray([]int8{1, 2}), TagByteArray},
		{"int_array", IntArray([]int32{1, 2}), TagIntArray},
		{"long_array", LongArray([]int64{1, 2}), TagLongArray},
		{"list", ListTag(NewList()), TagList},
		{"compound", CompoundTag(NewCompound()), TagCompound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.tag.ID() != tt.id {
				t.Errorf("ID() = %s, want %s", tt.tag.ID(), tt.id)
			}
		})
	}
}

func TestTag_AccessorMismatch(t *testing.T) {
	tag := Byte(1)

	_, err := tag.AsString()
	var te *TypeError
	if !errors.As(err, &te) {
		t.Fatalf("AsString on Byte: expected *TypeError, got %v", err)
	}
	if te.Expected != TagString || te.Actual != TagByte {
		t.Errorf("TypeError = %v, want Expected=String Actual=Byte", te)
	}
}

func TestTag_Bool(t *testing.T) {
	if tag := Bool(true); tag.ID() != TagByte {
		t.Fatalf("Bool(true).ID() = %s, want Byte", tag.ID())
	}
	v, err := Bool(true).AsBool()
	if err != nil || !v {
		t.Errorf("Bool(true).AsBool() = %v, %v", v, err)
	}
	// Any nonzero byte is truthy.
	v, err = Byte(5).AsBool()
	if err != nil || !v {
		t.Errorf("Byte(5).AsBool() = %v, %v", v, err)
	}
	v, err = Byte(0).AsBool()
	if err != nil || v {
		t.Errorf("Byte(0).AsBool() = %v, %v", v, err)
	}
}

// ============================================================
// List Tests
// ============================================================

func TestList_Homogeneous(t *testing.T) {
	l := NewList()
	if l.ElementType() != TagEnd {
		t.Fatalf("empty list element type = %s, want End", l.ElementType())
	}

	if err := l.Append(Byte(1)); err != nil {
		t.Fatalf("first append: %v", err)
	}
	if l.ElementType() != TagByte {
		t.Errorf("element type after first append = %s, want Byte", l.ElementType())
	}

	err := l.Append(Int(2))
	var te *TypeError
	if !errors.As(err, &te) {
		t.Fatalf("mixed append: expected *TypeError, got %v", err)
	}
	if l.Len() != 1 {
		t.Errorf("list changed by failed append: len = %d, want 1", l.Len())
	}
	if l.ElementType() != TagByte {
		t.Errorf("list element type changed by failed append: %s", l.ElementType())
	}
}

func TestList_RejectsEnd(t *testing.T) {
	l := NewList()
	if err := l.Append(nil); err == nil {
		t.Error("Append(nil) succeeded")
	}
}

func TestListOf(t *testing.T) {
	l, err := ListOf(Int(1), Int(2), Int(3))
	if err != nil {
		t.Fatalf("ListOf: %v", err)
	}
	if l.Len() != 3 || l.ElementType() != TagInt {
		t.Errorf("ListOf = len %d type %s, want 3 Int", l.Len(), l.ElementType())
	}

	if _, err := ListOf(Int(1), String("x")); err == nil {
		t.Error("ListOf with mixed types succeeded")
	}
}

func TestList_At(t *testing.T) {
	l, _ := ListOf(Byte(1), Byte(2))

	tag, err := l.At(1)
	if err != nil {
		t.Fatalf("At(1): %v", err)
	}
	if v, _ := tag.AsByte(); v != 2 {
		t.Errorf("At(1) = %v, want Byte(2)", tag)
	}

	_, err = l.At(5)
	var ie *IndexError
	if !errors.As(err, &ie) {
		t.Fatalf("At(5): expected *IndexError, got %v", err)
	}
	if ie.Index != 5 || ie.Len != 2 {
		t.Errorf("IndexError = %+v, want Index=5 Len=2", ie)
	}
}

// ============================================================
// Compound Tests
// ============================================================

func TestCompound_InsertionOrder(t *testing.T) {
	c := NewCompound()
	c.Set("c", Int(3))
	c.Set("a", Int(1))
	c.Set("b", Int(2))

	want := []string{"c", "a", "b"}
	keys := c.Keys()
	if len(keys) != len(want) {
		t.Fatalf("Keys() = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("Keys() = %v, want %v", keys, want)
		}
	}
}

func TestCompound_SetKeepsPosition(t *testing.T) {
	c := NewCompound()
	c.Set("a", Int(1))
	c.Set("b", Int(2))
	c.Set("a", Int(9))

	keys := c.Keys()
	if keys[0] != "a" || keys[1] != "b" || c.Len() != 2 {
		t.Fatalf("Keys() = %v, want [a b]", keys)
	}
	tag, ok := c.Get("a")
	if !ok {
		t.Fatal("Get(a) missing")
	}
	if v, _ := tag.AsInt(); v != 9 {
		t.Errorf("a = %v, want Int(9)", tag)
	}
}

func TestCompound_Remove(t *testing.T) {
	c := NewCompound()
	c.Set("a", Int(1))
	c.Set("b", Int(2))
	c.Set("c", Int(3))

	if !c.Remove("b") {
		t.Fatal("Remove(b) = false")
	}
	if c.Remove("b") {
		t.Error("second Remove(b) = true")
	}
	if c.Contains("b") || c.Len() != 2 {
		t.Errorf("b still present after Remove")
	}

	// Index must survive the removal.
	tag, ok := c.Get("c")
	if !ok {
		t.Fatal("Get(c) missing after Remove(b)")
	}
	if v, _ := tag.AsInt(); v != 3 {
		t.Errorf("c = %v, want Int(3)", tag)
	}
}

func TestCompound_ZeroValue(t *testing.T) {
	var c Compound
	if c.Len() != 0 || c.Contains("a") {
		t.Fatal("zero value is not empty")
	}
	if _, ok := c.Get("a"); ok {
		t.Fatal("Get(a) = true on empty compound")
	}
	if c.Remove("a") {
		t.Fatal("Remove(a) = true on empty compound")
	}

	c.Set("a", Int(1))
	tag, ok := c.Get("a")
	if !ok {
		t.Fatal("Get(a) missing after Set")
	}
	if v, _ := tag.AsInt(); v != 1 {
		t.Errorf("a = %v, want Int(1)", tag)
	}
}

// ============================================================
// Equality Tests
// ============================================================

func TestEqual(t *testing.T) {
	left := NewCompound()
	left.Set("a", Int(1))
	left.Set("b", String("x"))

	// Same entries, different insertion order.
	right := NewCompound()
	right.Set("b", String("x"))
	right.Set("a", Int(1))

	tests := []struct {
		name string
		a, b *Tag
		want bool
	}{
		{"same_byte", Byte(5), Byte(5), true},
		{"diff_byte", Byte(5), Byte(6), false},
		{"diff_kind", Byte(5), Short(5), false},
		{"nan_float", Float(float32(math.NaN())), Float(float32(math.NaN())), true},
		{"nan_double", Double(math.NaN()), Double(math.NaN()), true},
		{"zero_sign", Double(0), Double(math.Copysign(0, -1)), false},
		{"compound_order", CompoundTag(left), CompoundTag(right), true},
		{"byte_array", ByteArray([]int8{1, 2}), ByteArray([]int8{1, 2}), true},
		{"byte_array_diff", ByteArray([]int8{1, 2}), ByteArray([]int8{1, 3}), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.a, tt.b); got != tt.want {
				t.Errorf("Equal(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestEqual_Lists(t *testing.T) {
	a, _ := ListOf(Int(1), Int(2))
	b, _ := ListOf(Int(1), Int(2))
	c, _ := ListOf(Int(2), Int(1))

	if !Equal(ListTag(a), ListTag(b)) {
		t.Error("identical lists not equal")
	}
	if Equal(ListTag(a), ListTag(c)) {
		t.Error("reordered lists reported equal")
	}
}
