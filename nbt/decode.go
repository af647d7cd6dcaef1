package nbt

import (
	"bytes"
	"fmt"
	"io"
	"math"
)

// MaxDepth is the default nesting limit shared by the binary reader and
// the SNBT parser. Documents nested deeper fail with ErrDepthExceeded.
const MaxDepth = 512

// DecodeOptions configures the binary reader.
type DecodeOptions struct {
	// MaxDepth overrides the nesting limit. Zero means MaxDepth.
	MaxDepth int
}

// Decode reads one binary NBT document from r, returning the root name
// and root tag. The root is conventionally a Compound but any tag kind
// is accepted.
func Decode(r io.Reader) (string, *Tag, error) {
	return DecodeWithOptions(r, DecodeOptions{})
}

// DecodeBytes decodes a document held entirely in memory.
func DecodeBytes(b []byte) (string, *Tag, error) {
	return Decode(bytes.NewReader(b))
}

// DecodeWithOptions reads one binary NBT document with explicit limits.
func DecodeWithOptions(r io.Reader, opts DecodeOptions) (string, *Tag, error) {
	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = MaxDepth
	}
	d := &decoder{r: r, maxDepth: maxDepth}

	id, err := d.readTagID()
	if err != nil {
		return "", nil, err
	}
	if id == TagEnd {
		return "", nil, d.errAt(fmt.Errorf("%w: End tag at document root", ErrInvalidTagID))
	}
	name, err := d.readString()
	if err != nil {
		return "", nil, err
	}
	tag, err := d.readValue(id, 0)
	if err != nil {
		return "", nil, err
	}
	return name, tag, nil
}

type decoder struct {
	r        io.Reader
	offset   int64
	maxDepth int
	buf      [8]byte
}

// errAt wraps err with the current byte offset.
func (d *decoder) errAt(err error) error {
	return &DecodeError{Offset: d.offset, Err: err}
}

// read fills buf[:n] exactly, mapping short reads to ErrUnexpectedEOF.
func (d *decoder) read(n int) ([]byte, error) {
	b := d.buf[:n]
	read, err := io.ReadFull(d.r, b)
	d.offset += int64(read)
	if err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, d.errAt(ErrUnexpectedEOF)
		}
		return nil, d.errAt(err)
	}
	return b, nil
}

func (d *decoder) readFull(b []byte) error {
	read, err := io.ReadFull(d.r, b)
	d.offset += int64(read)
	if err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return d.errAt(ErrUnexpectedEOF)
		}
		return d.errAt(err)
	}
	return nil
}

func (d *decoder) readTagID() (TagID, error) {
	b, err := d.read(1)
	if err != nil {
		return TagEnd, err
	}
	id := TagID(b[0])
	if !id.valid() {
		return TagEnd, d.errAt(fmt.Errorf("%w: 0x%02X", ErrInvalidTagID, b[0]))
	}
	return id, nil
}

func (d *decoder) readU16() (uint16, error) {
	b, err := d.read(2)
	if err != nil {
		return 0, err
	}
	return uint16(b[0])<<8 | uint16(b[1]), nil
}

func (d *decoder) readI32() (int32, error) {
	b, err := d.read(4)
	if err != nil {
		return 0, err
	}
	return int32(uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])), nil
}

func (d *decoder) readI64() (int64, error) {
	b, err := d.read(8)
	if err != nil {
		return 0, err
	}
	return int64(uint64(b[0])<<56 | uint64(b[1])<<48 | uint64(b[2])<<40 | uint64(b[3])<<32 |
		uint64(b[4])<<24 | uint64(b[5])<<16 | uint64(b[6])<<8 | uint64(b[7])), nil
}

// readCount reads an array or list length, rejecting negative values.
func (d *decoder) readCount() (int, error) {
	n, err := d.readI32()
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, d.errAt(fmt.Errorf("%w: negative count %d", ErrInvalidLength, n))
	}
	return int(n), nil
}

func (d *decoder) readString() (string, error) {
	n, err := d.readU16()
	if err != nil {
		return "", err
	}
	raw := make([]byte, n)
	if err := d.readFull(raw); err != nil {
		return "", err
	}
	s, err := decodeMUTF8(raw)
	if err != nil {
		return "", d.errAt(err)
	}
	return s, nil
}

// chunkElems bounds up-front allocations so that an adversarial count in
// a truncated stream cannot demand gigabytes before the read fails.
const chunkElems = 1 << 16

func (d *decoder) readValue(id TagID, depth int) (*Tag, error) {
	if depth > d.maxDepth {
		return nil, d.errAt(ErrDepthExceeded)
	}

	switch id {
	case TagByte:
		b, err := d.read(1)
		if err != nil {
			return nil, err
		}
		return Byte(int8(b[0])), nil

	case TagShort:
		b, err := d.read(2)
		if err != nil {
			return nil, err
		}
		return Short(int16(uint16(b[0])<<8 | uint16(b[1]))), nil

	case TagInt:
		v, err := d.readI32()
		if err != nil {
			return nil, err
		}
		return Int(v), nil

	case TagLong:
		v, err := d.readI64()
		if err != nil {
			return nil, err
		}
		return Long(v), nil

	case TagFloat:
		v, err := d.readI32()
		if err != nil {
			return nil, err
		}
		return Float(math.Float32frombits(uint32(v))), nil

	case TagDouble:
		v, err := d.readI64()
		if err != nil {
			return nil, err
		}
		return Double(math.Float64frombits(uint64(v))), nil

	case TagByteArray:
		n, err := d.readCount()
		if err != nil {
			return nil, err
		}
		arr := make([]int8, 0, min(n, chunkElems))
		chunk := make([]byte, min(n, chunkElems))
		for read := 0; read < n; {
			c := chunk[:min(n-read, len(chunk))]
			if err := d.readFull(c); err != nil {
				return nil, err
			}
			for _, b := range c {
				arr = append(arr, int8(b))
			}
			read += len(c)
		}
		return ByteArray(arr), nil

	case TagString:
		s, err := d.readString()
		if err != nil {
			return nil, err
		}
		return String(s), nil

	case TagList:
		elem, err := d.readTagID()
		if err != nil {
			return nil, err
		}
		n, err := d.readCount()
		if err != nil {
			return nil, err
		}
		if elem == TagEnd && n > 0 {
			return nil, d.errAt(fmt.Errorf("%w: End element type in non-empty list", ErrInvalidTagID))
		}
		list := NewList()
		for i := 0; i < n; i++ {
			t, err := d.readValue(elem, depth+1)
			if err != nil {
				return nil, err
			}
			if err := list.Append(t); err != nil {
				return nil, d.errAt(err)
			}
		}
		return ListTag(list), nil

	case TagCompound:
		c := NewCompound()
		for {
			fieldID, err := d.readTagID()
			if err != nil {
				return nil, err
			}
			if fieldID == TagEnd {
				return CompoundTag(c), nil
			}
			name, err := d.readString()
			if err != nil {
				return nil, err
			}
			t, err := d.readValue(fieldID, depth+1)
			if err != nil {
				return nil, err
			}
			// Last write wins, at the key's first position.
			c.Set(name, t)
		}

	case TagIntArray:
		n, err := d.readCount()
		if err != nil {
			return nil, err
		}
		arr := make([]int32, 0, min(n, chunkElems))
		for i := 0; i < n; i++ {
			v, err := d.readI32()
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		return IntArray(arr), nil

	case TagLongArray:
		n, err := d.readCount()
		if err != nil {
			return nil, err
		}
		arr := make([]int64, 0, min(n, chunkElems))
		for i := 0; i < n; i++ {
			v, err := d.readI64()
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		return LongArray(arr), nil

	default:
		return nil, d.errAt(fmt.Errorf("%w: 0x%02X", ErrInvalidTagID, uint8(id)))
	}
}
