package nbt

import (
	"bytes"
	"fmt"
	"io"
	"math"
)

// Encode writes one binary NBT document to w: the root tag id, the root
// name, then the value. Encoding a well-formed tree only fails on writer
// errors or on strings whose modified UTF-8 form exceeds the 16-bit
// length field.
func Encode(w io.Writer, name string, t *Tag) error {
	if t == nil || t.ID() == TagEnd {
		return &EncodeError{Err: fmt.Errorf("%w: cannot encode End as a value", ErrInvalidTagID)}
	}
	e := &encoder{w: w}
	if err := e.writeByte(byte(t.id)); err != nil {
		return err
	}
	if err := e.writeString(name); err != nil {
		return err
	}
	return e.writeValue(t)
}

// EncodeBytes encodes a document into a fresh byte slice.
func EncodeBytes(name string, t *Tag) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, name, t); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type encoder struct {
	w   io.Writer
	buf [8]byte
}

func (e *encoder) write(b []byte) error {
	if _, err := e.w.Write(b); err != nil {
		return &EncodeError{Err: err}
	}
	return nil
}

func (e *encoder) writeByte(b byte) error {
	e.buf[0] = b
	return e.write(e.buf[:1])
}

func (e *encoder) writeU16(v uint16) error {
	e.buf[0] = byte(v >> 8)
	e.buf[1] = byte(v)
	return e.write(e.buf[:2])
}

func (e *encoder) writeI32(v int32) error {
	u := uint32(v)
	e.buf[0] = byte(u >> 24)
	e.buf[1] = byte(u >> 16)
	e.buf[2] = byte(u >> 8)
	e.buf[3] = byte(u)
	return e.write(e.buf[:4])
}

func (e *encoder) writeI64(v int64) error {
	u := uint64(v)
	e.buf[0] = byte(u >> 56)
	e.buf[1] = byte(u >> 48)
	e.buf[2] = byte(u >> 40)
	e.buf[3] = byte(u >> 32)
	e.buf[4] = byte(u >> 24)
	e.buf[5] = byte(u >> 16)
	e.buf[6] = byte(u >> 8)
	e.buf[7] = byte(u)
	return e.write(e.buf[:8])
}

func (e *encoder) writeString(s string) error {
	if mutf8Len(s) > 0xFFFF {
		return &EncodeError{Err: fmt.Errorf("%w: %q...", ErrStringTooLong, truncateForError(s))}
	}
	enc := appendMUTF8(nil, s)
	if err := e.writeU16(uint16(len(enc))); err != nil {
		return err
	}
	return e.write(enc)
}

func truncateForError(s string) string {
	const max = 32
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func (e *encoder) writeValue(t *Tag) error {
	switch t.id {
	case TagByte:
		return e.writeByte(byte(int8(t.intVal)))

	case TagShort:
		return e.writeU16(uint16(int16(t.intVal)))

	case TagInt:
		return e.writeI32(int32(t.intVal))

	case TagLong:
		return e.writeI64(t.intVal)

	case TagFloat:
		return e.writeI32(int32(math.Float32bits(float32(t.floatVal))))

	case TagDouble:
		return e.writeI64(int64(math.Float64bits(t.floatVal)))

	case TagByteArray:
		if err := e.writeI32(int32(len(t.byteArr))); err != nil {
			return err
		}
		raw := make([]byte, len(t.byteArr))
		for i, b := range t.byteArr {
			raw[i] = byte(b)
		}
		return e.write(raw)

	case TagString:
		return e.writeString(t.strVal)

	case TagList:
		l := t.listVal
		if l.Len() == 0 {
			// Empty lists always normalize to element type End.
			if err := e.writeByte(byte(TagEnd)); err != nil {
				return err
			}
			return e.writeI32(0)
		}
		elem := l.ElementType()
		if err := e.writeByte(byte(elem)); err != nil {
			return err
		}
		if err := e.writeI32(int32(l.Len())); err != nil {
			return err
		}
		for _, sub := range l.tags {
			if sub.ID() != elem {
				return &EncodeError{Err: fmt.Errorf("%w: %s element in %s list", ErrHeterogeneousList, sub.ID(), elem)}
			}
			if err := e.writeValue(sub); err != nil {
				return err
			}
		}
		return nil

	case TagCompound:
		var werr error
		t.compoundVal.Range(func(key string, sub *Tag) bool {
			if sub == nil || sub.ID() == TagEnd {
				werr = &EncodeError{Err: fmt.Errorf("%w: End value under key %q", ErrInvalidTagID, key)}
				return false
			}
			if werr = e.writeByte(byte(sub.id)); werr != nil {
				return false
			}
			if werr = e.writeString(key); werr != nil {
				return false
			}
			werr = e.writeValue(sub)
			return werr == nil
		})
		if werr != nil {
			return werr
		}
		return e.writeByte(byte(TagEnd))

	case TagIntArray:
		if err := e.writeI32(int32(len(t.intArr))); err != nil {
			return err
		}
		for _, v := range t.intArr {
			if err := e.writeI32(v); err != nil {
				return err
			}
		}
		return nil

	case TagLongArray:
		if err := e.writeI32(int32(len(t.longArr))); err != nil {
			return err
		}
		for _, v := range t.longArr {
			if err := e.writeI64(v); err != nil {
				return err
			}
		}
		return nil

	default:
		return &EncodeError{Err: fmt.Errorf("%w: 0x%02X", ErrInvalidTagID, uint8(t.id))}
	}
}
