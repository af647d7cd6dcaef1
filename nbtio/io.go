// Package nbtio reads and writes binary NBT documents through the
// compression wrappers Minecraft uses on disk and on the wire.
package nbtio

import (
	"bufio"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"

	"github.com/Rusty-Quartz/quartz-nbt/nbt"
)

// Read decodes one document from r through the given flavor's wrapper.
func Read(r io.Reader, f Flavor) (string, *nbt.Tag, error) {
	switch f {
	case Uncompressed:
		return nbt.Decode(r)
	case Gzip:
		zr, err := gzip.NewReader(r)
		if err != nil {
			return "", nil, fmt.Errorf("nbtio: gzip header: %w", err)
		}
		defer zr.Close()
		return nbt.Decode(zr)
	case Zlib:
		zr, err := zlib.NewReader(r)
		if err != nil {
			return "", nil, fmt.Errorf("nbtio: zlib header: %w", err)
		}
		defer zr.Close()
		return nbt.Decode(zr)
	default:
		return "", nil, fmt.Errorf("nbtio: unknown compression flavor %d", f)
	}
}

// Sniff inspects the buffered stream's leading bytes and reports the
// flavor without consuming anything. Gzip streams open with 1F 8B and
// zlib streams with 78; anything else is treated as a bare document.
func Sniff(br *bufio.Reader) (Flavor, error) {
	head, err := br.Peek(2)
	if err != nil && len(head) == 0 {
		return Uncompressed, err
	}
	if len(head) == 2 && head[0] == 0x1F && head[1] == 0x8B {
		return Gzip, nil
	}
	if len(head) >= 1 && head[0] == 0x78 {
		return Zlib, nil
	}
	return Uncompressed, nil
}

// ReadAuto sniffs the stream's compression and decodes one document,
// reporting the flavor it found.
func ReadAuto(r io.Reader) (string, *nbt.Tag, Flavor, error) {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	f, err := Sniff(br)
	if err != nil {
		return "", nil, Uncompressed, err
	}
	name, tag, err := Read(br, f)
	return name, tag, f, err
}

// Write encodes one document to w through the given flavor's wrapper at
// the default compression level.
func Write(w io.Writer, name string, t *nbt.Tag, f Flavor) error {
	return WriteLevel(w, name, t, f, gzip.DefaultCompression)
}

// WriteLevel is Write with an explicit compression level. The level is
// ignored for Uncompressed.
func WriteLevel(w io.Writer, name string, t *nbt.Tag, f Flavor, level int) error {
	switch f {
	case Uncompressed:
		return nbt.Encode(w, name, t)
	case Gzip:
		zw, err := gzip.NewWriterLevel(w, level)
		if err != nil {
			return fmt.Errorf("nbtio: gzip level: %w", err)
		}
		if err := nbt.Encode(zw, name, t); err != nil {
			zw.Close()
			return err
		}
		return zw.Close()
	case Zlib:
		zw, err := zlib.NewWriterLevel(w, level)
		if err != nil {
			return fmt.Errorf("nbtio: zlib level: %w", err)
		}
		if err := nbt.Encode(zw, name, t); err != nil {
			zw.Close()
			return err
		}
		return zw.Close()
	default:
		return fmt.Errorf("nbtio: unknown compression flavor %d", f)
	}
}
