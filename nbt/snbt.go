package nbt

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseOptions configures the SNBT parser.
type ParseOptions struct {
	// MaxDepth overrides the nesting limit. Zero means MaxDepth.
	MaxDepth int
}

// Parse parses SNBT text into a tag. The grammar accepts any value kind
// as a document, not just compounds.
func Parse(input string) (*Tag, error) {
	return ParseWithOptions(input, ParseOptions{})
}

// ParseCompound parses SNBT text whose root must be a compound.
func ParseCompound(input string) (*Compound, error) {
	t, err := Parse(input)
	if err != nil {
		return nil, err
	}
	return t.AsCompound()
}

// ParseWithOptions parses SNBT text with explicit limits.
func ParseWithOptions(input string, opts ParseOptions) (*Tag, error) {
	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = MaxDepth
	}
	p := &snbtParser{input: input, maxDepth: maxDepth}

	v, err := p.parseValue(0)
	if err != nil {
		return nil, err
	}
	p.skipWhitespace()
	if p.pos < len(p.input) {
		return nil, p.errAt(p.pos, "unexpected trailing characters")
	}
	return v, nil
}

type snbtParser struct {
	input    string
	pos      int
	maxDepth int
}

// bare-token alphabet: letters, digits, '_', '-', '.', '+'
func isBareChar(c byte) bool {
	return c >= '0' && c <= '9' ||
		c >= 'A' && c <= 'Z' ||
		c >= 'a' && c <= 'z' ||
		c == '_' || c == '-' || c == '.' || c == '+'
}

func (p *snbtParser) skipWhitespace() {
	for p.pos < len(p.input) {
		switch p.input[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *snbtParser) peek() byte {
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}

// errAt builds a SyntaxError with line/column and a source segment
// around the given byte offset.
func (p *snbtParser) errAt(offset int, format string, args ...interface{}) error {
	line, col := 1, 1
	for i := 0; i < offset && i < len(p.input); i++ {
		if p.input[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	start := offset - 10
	if start < 0 {
		start = 0
	}
	end := offset + 10
	if end > len(p.input) {
		end = len(p.input)
	}
	return &SyntaxError{
		Offset:  offset,
		Line:    line,
		Col:     col,
		Segment: p.input[start:end],
		Msg:     fmt.Sprintf(format, args...),
	}
}

func (p *snbtParser) parseValue(depth int) (*Tag, error) {
	if depth > p.maxDepth {
		return nil, p.errAt(p.pos, "nesting depth limit exceeded")
	}
	p.skipWhitespace()

	switch c := p.peek(); {
	case c == 0:
		return nil, p.errAt(p.pos, "unexpected end of input, expected value")

	case c == '{':
		return p.parseCompound(depth)

	case c == '[':
		return p.parseListOrArray(depth)

	case c == '"' || c == '\'':
		s, err := p.parseQuoted()
		if err != nil {
			return nil, err
		}
		return String(s), nil

	default:
		start := p.pos
		token := p.bareToken()
		if token == "" {
			return nil, p.errAt(start, "unexpected character %q, expected value", string(c))
		}
		return p.classifyBare(token, start)
	}
}

// bareToken consumes the longest run of bare-alphabet characters.
func (p *snbtParser) bareToken() string {
	start := p.pos
	for p.pos < len(p.input) && isBareChar(p.input[p.pos]) {
		p.pos++
	}
	return p.input[start:p.pos]
}

// classifyBare resolves an unquoted token into a boolean, a numeric
// literal, or a plain string. A token that opens like a number but fails
// to parse as one is an error, never a silent string fallback.
func (p *snbtParser) classifyBare(token string, start int) (*Tag, error) {
	switch token {
	case "true":
		return Byte(1), nil
	case "false":
		return Byte(0), nil
	}
	if t, ok := nonFiniteTag(token); ok {
		return t, nil
	}
	if c := token[0]; c == '-' || c == '+' || c >= '0' && c <= '9' {
		return p.parseNumeric(token, start)
	}
	return String(token), nil
}

// nonFiniteTag matches the formatter's spelling of non-finite floats:
// NaN, Infinity, and -Infinity with an optional f/F/d/D suffix.
func nonFiniteTag(token string) (*Tag, bool) {
	body, suffix := token, byte(0)
	if n := len(token); n > 0 {
		switch token[n-1] {
		case 'f', 'F', 'd', 'D':
			body, suffix = token[:n-1], token[n-1]
		}
	}
	var v float64
	switch body {
	case "NaN":
		v = math.NaN()
	case "Infinity", "+Infinity":
		v = math.Inf(1)
	case "-Infinity":
		v = math.Inf(-1)
	default:
		return nil, false
	}
	if suffix == 'f' || suffix == 'F' {
		return Float(float32(v)), true
	}
	return Double(v), true
}

func (p *snbtParser) parseNumeric(token string, start int) (*Tag, error) {
	body, suffix := token, byte(0)
	if n := len(token); n > 0 {
		switch c := token[n-1]; c {
		case 'b', 'B', 's', 'S', 'l', 'L', 'f', 'F', 'd', 'D':
			body, suffix = token[:n-1], c
		}
	}

	isFloat, ok := numberShape(body)
	if !ok {
		return nil, p.errAt(start, "invalid numeric literal %q", token)
	}

	if isFloat {
		v, err := strconv.ParseFloat(body, 64)
		if err != nil {
			return nil, p.errAt(start, "invalid numeric literal %q", token)
		}
		switch suffix {
		case 'f', 'F':
			return Float(float32(v)), nil
		case 0, 'd', 'D':
			return Double(v), nil
		default:
			return nil, p.errAt(start, "fractional literal %q with integer suffix %q", token, string(suffix))
		}
	}

	v, err := strconv.ParseInt(body, 10, 64)
	if err != nil {
		return nil, p.errAt(start, "integer literal %q out of range", token)
	}
	switch suffix {
	case 'b', 'B':
		if v < -128 || v > 127 {
			return nil, p.errAt(start, "literal %q out of range for Byte", token)
		}
		return Byte(int8(v)), nil
	case 's', 'S':
		if v < -32768 || v > 32767 {
			return nil, p.errAt(start, "literal %q out of range for Short", token)
		}
		return Short(int16(v)), nil
	case 0:
		if v < -2147483648 || v > 2147483647 {
			return nil, p.errAt(start, "literal %q out of range for Int", token)
		}
		return Int(int32(v)), nil
	case 'l', 'L':
		return Long(v), nil
	case 'f', 'F':
		return Float(float32(v)), nil
	case 'd', 'D':
		return Double(float64(v)), nil
	default:
		return nil, p.errAt(start, "invalid numeric literal %q", token)
	}
}

// numberShape validates sign? digits ('.' digits?)? ([eE] sign? digits)?
// and reports whether the literal has a fractional part or exponent.
func numberShape(s string) (isFloat, ok bool) {
	i := 0
	if i < len(s) && (s[i] == '-' || s[i] == '+') {
		i++
	}
	digits := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		isFloat = true
		i++
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
			digits++
		}
	}
	if digits == 0 {
		return false, false
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		isFloat = true
		i++
		if i < len(s) && (s[i] == '-' || s[i] == '+') {
			i++
		}
		exp := 0
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
			exp++
		}
		if exp == 0 {
			return false, false
		}
	}
	return isFloat, i == len(s)
}

func (p *snbtParser) parseQuoted() (string, error) {
	open := p.pos
	quote := p.input[p.pos]
	p.pos++

	var sb strings.Builder
	for {
		if p.pos >= len(p.input) {
			return "", p.errAt(open, "unterminated quoted string")
		}
		c := p.input[p.pos]
		switch c {
		case quote:
			p.pos++
			return sb.String(), nil

		case '\\':
			escStart := p.pos
			p.pos++
			if p.pos >= len(p.input) {
				return "", p.errAt(open, "unterminated quoted string")
			}
			switch esc := p.input[p.pos]; esc {
			case '\\', '\'', '"':
				sb.WriteByte(esc)
				p.pos++
			case 'n':
				sb.WriteByte('\n')
				p.pos++
			case 'r':
				sb.WriteByte('\r')
				p.pos++
			case 't':
				sb.WriteByte('\t')
				p.pos++
			case 'u':
				p.pos++
				if p.pos+4 > len(p.input) {
					return "", p.errAt(escStart, "truncated unicode escape")
				}
				hex := p.input[p.pos : p.pos+4]
				n, err := strconv.ParseUint(hex, 16, 32)
				if err != nil {
					return "", p.errAt(escStart, "invalid unicode escape %q", "\\u"+hex)
				}
				sb.WriteRune(rune(n))
				p.pos += 4
			default:
				return "", p.errAt(escStart, "invalid escape sequence %q", "\\"+string(esc))
			}

		default:
			sb.WriteByte(c)
			p.pos++
		}
	}
}

func (p *snbtParser) parseCompound(depth int) (*Tag, error) {
	p.pos++ // consume '{'
	c := NewCompound()

	p.skipWhitespace()
	if p.peek() == '}' {
		p.pos++
		return CompoundTag(c), nil
	}

	for {
		key, err := p.parseKey()
		if err != nil {
			return nil, err
		}

		p.skipWhitespace()
		if p.peek() != ':' {
			return nil, p.errAt(p.pos, "expected ':' after compound key %q", key)
		}
		p.pos++

		v, err := p.parseValue(depth + 1)
		if err != nil {
			return nil, err
		}
		c.Set(key, v)

		p.skipWhitespace()
		switch p.peek() {
		case ',':
			comma := p.pos
			p.pos++
			p.skipWhitespace()
			if p.peek() == '}' {
				return nil, p.errAt(comma, "trailing comma in compound")
			}
		case '}':
			p.pos++
			return CompoundTag(c), nil
		case 0:
			return nil, p.errAt(p.pos, "unexpected end of input, expected ',' or '}'")
		default:
			return nil, p.errAt(p.pos, "unexpected character %q, expected ',' or '}'", string(p.peek()))
		}
	}
}

func (p *snbtParser) parseKey() (string, error) {
	p.skipWhitespace()
	switch c := p.peek(); {
	case c == '"' || c == '\'':
		return p.parseQuoted()
	case c == 0:
		return "", p.errAt(p.pos, "unexpected end of input, expected compound key")
	default:
		start := p.pos
		key := p.bareToken()
		if key == "" {
			return "", p.errAt(start, "unexpected character %q, expected compound key", string(c))
		}
		return key, nil
	}
}

func (p *snbtParser) parseListOrArray(depth int) (*Tag, error) {
	p.pos++ // consume '['

	// A single B, I, or L token followed by a semicolon selects a typed
	// numeric array; anything else is a generic list.
	save := p.pos
	p.skipWhitespace()
	if c := p.peek(); c != '"' && c != '\'' {
		token := p.bareToken()
		if len(token) == 1 {
			p.skipWhitespace()
			if p.peek() == ';' {
				p.pos++
				switch token[0] {
				case 'B', 'b':
					return p.parseByteArray()
				case 'I', 'i':
					return p.parseIntArrayBody()
				case 'L', 'l':
					return p.parseLongArrayBody()
				default:
					return nil, p.errAt(save, "invalid array type %q, expected 'B', 'I', or 'L'", token)
				}
			}
		}
	}
	p.pos = save

	l := NewList()
	p.skipWhitespace()
	if p.peek() == ']' {
		p.pos++
		return ListTag(l), nil
	}

	for {
		elemStart := p.pos
		v, err := p.parseValue(depth + 1)
		if err != nil {
			return nil, err
		}
		if err := l.Append(v); err != nil {
			return nil, p.errAt(elemStart, "list element type conflict: list holds %s, got %s", l.ElementType(), v.ID())
		}

		p.skipWhitespace()
		switch p.peek() {
		case ',':
			comma := p.pos
			p.pos++
			p.skipWhitespace()
			if p.peek() == ']' {
				return nil, p.errAt(comma, "trailing comma in list")
			}
		case ']':
			p.pos++
			return ListTag(l), nil
		case 0:
			return nil, p.errAt(p.pos, "unexpected end of input, expected ',' or ']'")
		default:
			return nil, p.errAt(p.pos, "unexpected character %q, expected ',' or ']'", string(p.peek()))
		}
	}
}

// arrayElement reads one integer literal for a typed array. The literal
// may carry the array's canonical suffix or none at all; any other
// suffix is a type conflict.
func (p *snbtParser) arrayElement(kind TagID, lo, hi int64, suffixes string) (int64, error) {
	p.skipWhitespace()
	start := p.pos
	if c := p.peek(); c == '"' || c == '\'' {
		return 0, p.errAt(start, "quoted string in %s", kind)
	}
	token := p.bareToken()
	if token == "" {
		return 0, p.errAt(start, "expected integer in %s", kind)
	}

	body := token
	if n := len(token); n > 0 {
		last := token[n-1]
		if last >= 'A' && last <= 'z' && (last <= 'Z' || last >= 'a') {
			if strings.IndexByte(suffixes, last) < 0 {
				return 0, p.errAt(start, "element %q does not match %s element type", token, kind)
			}
			body = token[:n-1]
		}
	}
	if isFloat, ok := numberShape(body); !ok || isFloat {
		return 0, p.errAt(start, "invalid integer literal %q in %s", token, kind)
	}
	v, err := strconv.ParseInt(body, 10, 64)
	if err != nil || v < lo || v > hi {
		return 0, p.errAt(start, "literal %q out of range for %s element", token, kind)
	}
	return v, nil
}

// arrayDelim consumes the separator after an array element, reporting
// whether the array is complete.
func (p *snbtParser) arrayDelim(kind TagID) (done bool, err error) {
	p.skipWhitespace()
	switch p.peek() {
	case ',':
		comma := p.pos
		p.pos++
		p.skipWhitespace()
		if p.peek() == ']' {
			return false, p.errAt(comma, "trailing comma in %s", kind)
		}
		return false, nil
	case ']':
		p.pos++
		return true, nil
	case 0:
		return false, p.errAt(p.pos, "unexpected end of input, expected ',' or ']'")
	default:
		return false, p.errAt(p.pos, "unexpected character %q, expected ',' or ']'", string(p.peek()))
	}
}

func (p *snbtParser) parseByteArray() (*Tag, error) {
	var arr []int8
	p.skipWhitespace()
	if p.peek() == ']' {
		p.pos++
		return ByteArray(arr), nil
	}
	for {
		v, err := p.arrayElement(TagByteArray, -128, 127, "bB")
		if err != nil {
			return nil, err
		}
		arr = append(arr, int8(v))
		done, err := p.arrayDelim(TagByteArray)
		if err != nil {
			return nil, err
		}
		if done {
			return ByteArray(arr), nil
		}
	}
}

func (p *snbtParser) parseIntArrayBody() (*Tag, error) {
	var arr []int32
	p.skipWhitespace()
	if p.peek() == ']' {
		p.pos++
		return IntArray(arr), nil
	}
	for {
		v, err := p.arrayElement(TagIntArray, -2147483648, 2147483647, "")
		if err != nil {
			return nil, err
		}
		arr = append(arr, int32(v))
		done, err := p.arrayDelim(TagIntArray)
		if err != nil {
			return nil, err
		}
		if done {
			return IntArray(arr), nil
		}
	}
}

func (p *snbtParser) parseLongArrayBody() (*Tag, error) {
	var arr []int64
	p.skipWhitespace()
	if p.peek() == ']' {
		p.pos++
		return LongArray(arr), nil
	}
	for {
		v, err := p.arrayElement(TagLongArray, -1<<63, 1<<63-1, "lL")
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
		done, err := p.arrayDelim(TagLongArray)
		if err != nil {
			return nil, err
		}
		if done {
			return LongArray(arr), nil
		}
	}
}
