package nbt

import (
	"math"
	"strconv"
	"strings"
)

// FormatOptions configures SNBT output.
type FormatOptions struct {
	// Pretty inserts newlines and indentation inside compounds and lists.
	Pretty bool
	// Indent is the per-level indent string in pretty mode. Empty means
	// four spaces.
	Indent string
}

// Format renders a tag as compact SNBT. The output parses back to an
// equal tag.
func Format(t *Tag) string {
	return FormatWithOptions(t, FormatOptions{})
}

// FormatPretty renders a tag as indented, multi-line SNBT.
func FormatPretty(t *Tag) string {
	return FormatWithOptions(t, FormatOptions{Pretty: true})
}

// FormatWithOptions renders a tag as SNBT with explicit options.
func FormatWithOptions(t *Tag, opts FormatOptions) string {
	if t == nil {
		return ""
	}
	e := &snbtEmitter{pretty: opts.Pretty, indent: opts.Indent}
	if e.indent == "" {
		e.indent = "    "
	}
	e.value(t, 0)
	return e.sb.String()
}

type snbtEmitter struct {
	sb     strings.Builder
	pretty bool
	indent string
}

func (e *snbtEmitter) newline(depth int) {
	e.sb.WriteByte('\n')
	for i := 0; i < depth; i++ {
		e.sb.WriteString(e.indent)
	}
}

func (e *snbtEmitter) value(t *Tag, depth int) {
	switch t.ID() {
	case TagByte:
		v, _ := t.AsByte()
		e.sb.WriteString(strconv.FormatInt(int64(v), 10))
		e.sb.WriteByte('b')
	case TagShort:
		v, _ := t.AsShort()
		e.sb.WriteString(strconv.FormatInt(int64(v), 10))
		e.sb.WriteByte('s')
	case TagInt:
		v, _ := t.AsInt()
		e.sb.WriteString(strconv.FormatInt(int64(v), 10))
	case TagLong:
		v, _ := t.AsLong()
		e.sb.WriteString(strconv.FormatInt(v, 10))
		e.sb.WriteByte('L')
	case TagFloat:
		v, _ := t.AsFloat()
		e.sb.WriteString(floatBody(float64(v), 32))
		e.sb.WriteByte('f')
	case TagDouble:
		v, _ := t.AsDouble()
		e.sb.WriteString(floatBody(v, 64))
		e.sb.WriteByte('d')
	case TagString:
		v, _ := t.AsString()
		e.str(v)
	case TagByteArray:
		v, _ := t.AsByteArray()
		e.sb.WriteString("[B;")
		for i, b := range v {
			if i > 0 {
				e.sb.WriteByte(',')
			}
			e.sb.WriteString(strconv.FormatInt(int64(b), 10))
		}
		e.sb.WriteByte(']')
	case TagIntArray:
		v, _ := t.AsIntArray()
		e.sb.WriteString("[I;")
		for i, n := range v {
			if i > 0 {
				e.sb.WriteByte(',')
			}
			e.sb.WriteString(strconv.FormatInt(int64(n), 10))
		}
		e.sb.WriteByte(']')
	case TagLongArray:
		v, _ := t.AsLongArray()
		e.sb.WriteString("[L;")
		for i, n := range v {
			if i > 0 {
				e.sb.WriteByte(',')
			}
			e.sb.WriteString(strconv.FormatInt(n, 10))
		}
		e.sb.WriteByte(']')
	case TagList:
		l, _ := t.AsList()
		e.list(l, depth)
	case TagCompound:
		c, _ := t.AsCompound()
		e.compound(c, depth)
	}
}

func (e *snbtEmitter) list(l *List, depth int) {
	if l.Len() == 0 {
		e.sb.WriteString("[]")
		return
	}
	e.sb.WriteByte('[')
	first := true
	l.Range(func(_ int, t *Tag) bool {
		if !first {
			e.sb.WriteByte(',')
		}
		first = false
		if e.pretty {
			e.newline(depth + 1)
		}
		e.value(t, depth+1)
		return true
	})
	if e.pretty {
		e.newline(depth)
	}
	e.sb.WriteByte(']')
}

func (e *snbtEmitter) compound(c *Compound, depth int) {
	if c.Len() == 0 {
		e.sb.WriteString("{}")
		return
	}
	e.sb.WriteByte('{')
	first := true
	c.Range(func(key string, t *Tag) bool {
		if !first {
			e.sb.WriteByte(',')
		}
		first = false
		if e.pretty {
			e.newline(depth + 1)
		}
		e.str(key)
		e.sb.WriteByte(':')
		if e.pretty {
			e.sb.WriteByte(' ')
		}
		e.value(t, depth+1)
		return true
	})
	if e.pretty {
		e.newline(depth)
	}
	e.sb.WriteByte('}')
}

// str writes a string bare when the parser would read it back as the
// same string, quoted otherwise.
func (e *snbtEmitter) str(s string) {
	if bareSafe(s) {
		e.sb.WriteString(s)
		return
	}
	e.sb.WriteString(quoteString(s))
}

// bareSafe reports whether s survives a round trip as an unquoted token:
// nonempty, bare alphabet only, and not something the parser classifies
// as a boolean or a number.
func bareSafe(s string) bool {
	if s == "" {
		return false
	}
	if c := s[0]; c == '-' || c == '+' || c >= '0' && c <= '9' {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isBareChar(s[i]) {
			return false
		}
	}
	if s == "true" || s == "false" {
		return false
	}
	if _, ok := nonFiniteTag(s); ok {
		return false
	}
	return true
}

func quoteString(s string) string {
	quote := byte('"')
	if strings.IndexByte(s, '"') >= 0 && strings.IndexByte(s, '\'') < 0 {
		quote = '\''
	}
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte(quote)
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case quote, '\\':
			sb.WriteByte('\\')
			sb.WriteByte(c)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			sb.WriteByte(c)
		}
	}
	sb.WriteByte(quote)
	return sb.String()
}

// floatBody renders a float without its type suffix. Non-finite values
// use the names the parser accepts back.
func floatBody(v float64, bits int) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(v, 'g', -1, bits)
}
