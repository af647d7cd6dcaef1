package nbtio

import (
	"bufio"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rusty-Quartz/quartz-nbt/nbt"
)

func sampleDoc() *nbt.Tag {
	c := nbt.NewCompound()
	c.Set("name", nbt.String("hub"))
	c.Set("spawn", nbt.IntArray([]int32{0, 64, 0}))
	c.Set("hardcore", nbt.Bool(false))
	return nbt.CompoundTag(c)
}

func TestRoundTrip(t *testing.T) {
	for _, f := range []Flavor{Uncompressed, Gzip, Zlib} {
		t.Run(f.String(), func(t *testing.T) {
			doc := sampleDoc()

			var buf bytes.Buffer
			require.NoError(t, Write(&buf, "Data", doc, f))

			name, back, err := Read(bytes.NewReader(buf.Bytes()), f)
			require.NoError(t, err)
			assert.Equal(t, "Data", name)
			assert.True(t, nbt.Equal(doc, back), "decoded tree differs")
		})
	}
}

func TestSniff(t *testing.T) {
	for _, f := range []Flavor{Uncompressed, Gzip, Zlib} {
		t.Run(f.String(), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Write(&buf, "", sampleDoc(), f))

			br := bufio.NewReader(bytes.NewReader(buf.Bytes()))
			got, err := Sniff(br)
			require.NoError(t, err)
			assert.Equal(t, f, got)

			// Sniffing must not consume the stream.
			name, back, flavor, err := ReadAuto(br)
			require.NoError(t, err)
			assert.Equal(t, "", name)
			assert.Equal(t, f, flavor)
			assert.True(t, nbt.Equal(sampleDoc(), back))
		})
	}
}

func TestWriteLevel(t *testing.T) {
	var fast, best bytes.Buffer
	huge := nbt.NewCompound()
	var longs []int64
	for i := 0; i < 4096; i++ {
		longs = append(longs, int64(i%7))
	}
	huge.Set("blocks", nbt.LongArray(longs))
	doc := nbt.CompoundTag(huge)

	require.NoError(t, WriteLevel(&fast, "", doc, Gzip, 1))
	require.NoError(t, WriteLevel(&best, "", doc, Gzip, 9))

	_, fastBack, err := Read(bytes.NewReader(fast.Bytes()), Gzip)
	require.NoError(t, err)
	_, bestBack, err := Read(bytes.NewReader(best.Bytes()), Gzip)
	require.NoError(t, err)
	assert.True(t, nbt.Equal(fastBack, bestBack))
}

func TestRead_WrongFlavor(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, "", sampleDoc(), Uncompressed))

	_, _, err := Read(bytes.NewReader(buf.Bytes()), Gzip)
	assert.Error(t, err)
}

func TestParseFlavor(t *testing.T) {
	tests := []struct {
		input   string
		want    Flavor
		wantErr bool
	}{
		{"none", Uncompressed, false},
		{"uncompressed", Uncompressed, false},
		{"gzip", Gzip, false},
		{"zlib", Zlib, false},
		{"brotli", Uncompressed, true},
		{"", Uncompressed, true},
	}

	for _, tt := range tests {
		f, err := ParseFlavor(tt.input)
		if tt.wantErr {
			assert.Error(t, err, tt.input)
			continue
		}
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, f, tt.input)
	}
}
