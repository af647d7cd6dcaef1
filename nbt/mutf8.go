package nbt

import "unicode/utf16"

// Modified UTF-8 is the string encoding Java's DataOutput.writeUTF
// produces: U+0000 becomes the two-byte sequence C0 80, and code points
// above U+FFFF are split into a UTF-16 surrogate pair with each half
// encoded as a three-byte sequence. Four-byte UTF-8 forms never appear.

// appendMUTF8 appends the modified UTF-8 encoding of s to dst.
func appendMUTF8(dst []byte, s string) []byte {
	for _, r := range s {
		switch {
		case r == 0:
			dst = append(dst, 0xC0, 0x80)
		case r < 0x80:
			dst = append(dst, byte(r))
		case r < 0x800:
			dst = append(dst, 0xC0|byte(r>>6), 0x80|byte(r&0x3F))
		case r < 0x10000:
			dst = append(dst, 0xE0|byte(r>>12), 0x80|byte(r>>6&0x3F), 0x80|byte(r&0x3F))
		default:
			hi, lo := utf16.EncodeRune(r)
			dst = append(dst, 0xE0|byte(hi>>12), 0x80|byte(hi>>6&0x3F), 0x80|byte(hi&0x3F))
			dst = append(dst, 0xE0|byte(lo>>12), 0x80|byte(lo>>6&0x3F), 0x80|byte(lo&0x3F))
		}
	}
	return dst
}

// mutf8Len returns the encoded length of s without allocating.
func mutf8Len(s string) int {
	n := 0
	for _, r := range s {
		switch {
		case r == 0:
			n += 2
		case r < 0x80:
			n++
		case r < 0x800:
			n += 2
		case r < 0x10000:
			n += 3
		default:
			n += 6
		}
	}
	return n
}

// decodeMUTF8 decodes a modified UTF-8 byte sequence. Any malformed
// sequence, including four-byte UTF-8 forms and unpaired surrogates,
// yields ErrInvalidMUTF8.
func decodeMUTF8(b []byte) (string, error) {
	out := make([]rune, 0, len(b))
	for i := 0; i < len(b); {
		c := b[i]
		switch {
		case c < 0x80:
			out = append(out, rune(c))
			i++
		case c&0xE0 == 0xC0:
			if i+1 >= len(b) || b[i+1]&0xC0 != 0x80 {
				return "", ErrInvalidMUTF8
			}
			r := rune(c&0x1F)<<6 | rune(b[i+1]&0x3F)
			// C0 80 is the encoded NUL; other overlong forms are invalid.
			if r < 0x80 && r != 0 {
				return "", ErrInvalidMUTF8
			}
			out = append(out, r)
			i += 2
		case c&0xF0 == 0xE0:
			if i+2 >= len(b) || b[i+1]&0xC0 != 0x80 || b[i+2]&0xC0 != 0x80 {
				return "", ErrInvalidMUTF8
			}
			r := rune(c&0x0F)<<12 | rune(b[i+1]&0x3F)<<6 | rune(b[i+2]&0x3F)
			if r < 0x800 {
				return "", ErrInvalidMUTF8
			}
			i += 3
			if utf16.IsSurrogate(r) {
				if r >= 0xDC00 {
					// Low surrogate with no preceding high surrogate.
					return "", ErrInvalidMUTF8
				}
				if i+2 >= len(b) || b[i]&0xF0 != 0xE0 || b[i+1]&0xC0 != 0x80 || b[i+2]&0xC0 != 0x80 {
					return "", ErrInvalidMUTF8
				}
				lo := rune(b[i]&0x0F)<<12 | rune(b[i+1]&0x3F)<<6 | rune(b[i+2]&0x3F)
				if lo < 0xDC00 || lo > 0xDFFF {
					return "", ErrInvalidMUTF8
				}
				r = utf16.DecodeRune(r, lo)
				i += 3
			}
			out = append(out, r)
		default:
			// Four-byte UTF-8 lead bytes and stray continuation bytes.
			return "", ErrInvalidMUTF8
		}
	}
	return string(out), nil
}
