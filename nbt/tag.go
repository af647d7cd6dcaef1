package nbt

import "math"

// TagID identifies an NBT tag variant. The values match the one-byte
// type ids used by the binary wire format.
type TagID uint8

const (
	TagEnd TagID = iota
	TagByte
	TagShort
	TagInt
	TagLong
	TagFloat
	TagDouble
	TagByteArray
	TagString
	TagList
	TagCompound
	TagIntArray
	TagLongArray
)

// String returns the tag kind name.
func (id TagID) String() string {
	switch id {
	case TagEnd:
		return "End"
	case TagByte:
		return "Byte"
	case TagShort:
		return "Short"
	case TagInt:
		return "Int"
	case TagLong:
		return "Long"
	case TagFloat:
		return "Float"
	case TagDouble:
		return "Double"
	case TagByteArray:
		return "ByteArray"
	case TagString:
		return "String"
	case TagList:
		return "List"
	case TagCompound:
		return "Compound"
	case TagIntArray:
		return "IntArray"
	case TagLongArray:
		return "LongArray"
	default:
		return "unknown"
	}
}

func (id TagID) valid() bool {
	return id <= TagLongArray
}

// Tag represents one node of an NBT tree. A Tag holds exactly one of
// the thirteen variants; its kind never changes after construction.
//
// The zero value of Tag is not meaningful. Use the variant constructors.
type Tag struct {
	id TagID

	// Scalar values (only one valid based on id). All integer widths
	// share intVal; Float and Double share floatVal, with Float values
	// always exactly representable since float32 -> float64 is lossless.
	intVal   int64
	floatVal float64
	strVal   string

	// Array values
	byteArr []int8
	intArr  []int32
	longArr []int64

	// Container values
	listVal     *List
	compoundVal *Compound
}

// ============================================================
// Constructors
// ============================================================

// Byte creates a Byte tag.
func Byte(v int8) *Tag {
	return &Tag{id: TagByte, intVal: int64(v)}
}

// Bool creates a Byte tag holding 1 for true and 0 for false.
func Bool(v bool) *Tag {
	if v {
		return Byte(1)
	}
	return Byte(0)
}

// Short creates a Short tag.
func Short(v int16) *Tag {
	return &Tag{id: TagShort, intVal: int64(v)}
}

// Int creates an Int tag.
func Int(v int32) *Tag {
	return &Tag{id: TagInt, intVal: int64(v)}
}

// Long creates a Long tag.
func Long(v int64) *Tag {
	return &Tag{id: TagLong, intVal: v}
}

// Float creates a Float tag.
func Float(v float32) *Tag {
	return &Tag{id: TagFloat, floatVal: float64(v)}
}

// Double creates a Double tag.
func Double(v float64) *Tag {
	return &Tag{id: TagDouble, floatVal: v}
}

// String creates a String tag.
func String(v string) *Tag {
	return &Tag{id: TagString, strVal: v}
}

// ByteArray creates a ByteArray tag. The slice is not copied.
func ByteArray(v []int8) *Tag {
	return &Tag{id: TagByteArray, byteArr: v}
}

// IntArray creates an IntArray tag. The slice is not copied.
func IntArray(v []int32) *Tag {
	return &Tag{id: TagIntArray, intArr: v}
}

// LongArray creates a LongArray tag. The slice is not copied.
func LongArray(v []int64) *Tag {
	return &Tag{id: TagLongArray, longArr: v}
}

// ListTag wraps a List in a Tag. A nil list is treated as empty.
func ListTag(l *List) *Tag {
	if l == nil {
		l = NewList()
	}
	return &Tag{id: TagList, listVal: l}
}

// CompoundTag wraps a Compound in a Tag. A nil compound is treated as empty.
func CompoundTag(c *Compound) *Tag {
	if c == nil {
		c = NewCompound()
	}
	return &Tag{id: TagCompound, compoundVal: c}
}

// ============================================================
// Accessors
// ============================================================

// ID returns the tag's variant id.
func (t *Tag) ID() TagID {
	if t == nil {
		return TagEnd
	}
	return t.id
}

// AsByte returns the Byte value.
func (t *Tag) AsByte() (int8, error) {
	if t == nil || t.id != TagByte {
		return 0, &TypeError{Expected: TagByte, Actual: t.ID()}
	}
	return int8(t.intVal), nil
}

// AsBool interprets a Byte tag as a boolean.
func (t *Tag) AsBool() (bool, error) {
	v, err := t.AsByte()
	if err != nil {
		return false, err
	}
	return v != 0, nil
}

// AsShort returns the Short value.
func (t *Tag) AsShort() (int16, error) {
	if t == nil || t.id != TagShort {
		return 0, &TypeError{Expected: TagShort, Actual: t.ID()}
	}
	return int16(t.intVal), nil
}

// AsInt returns the Int value.
func (t *Tag) AsInt() (int32, error) {
	if t == nil || t.id != TagInt {
		return 0, &TypeError{Expected: TagInt, Actual: t.ID()}
	}
	return int32(t.intVal), nil
}

// AsLong returns the Long value.
func (t *Tag) AsLong() (int64, error) {
	if t == nil || t.id != TagLong {
		return 0, &TypeError{Expected: TagLong, Actual: t.ID()}
	}
	return t.intVal, nil
}

// AsFloat returns the Float value.
func (t *Tag) AsFloat() (float32, error) {
	if t == nil || t.id != TagFloat {
		return 0, &TypeError{Expected: TagFloat, Actual: t.ID()}
	}
	return float32(t.floatVal), nil
}

// AsDouble returns the Double value.
func (t *Tag) AsDouble() (float64, error) {
	if t == nil || t.id != TagDouble {
		return 0, &TypeError{Expected: TagDouble, Actual: t.ID()}
	}
	return t.floatVal, nil
}

// AsString returns the String value.
func (t *Tag) AsString() (string, error) {
	if t == nil || t.id != TagString {
		return "", &TypeError{Expected: TagString, Actual: t.ID()}
	}
	return t.strVal, nil
}

// AsByteArray returns the ByteArray value.
func (t *Tag) AsByteArray() ([]int8, error) {
	if t == nil || t.id != TagByteArray {
		return nil, &TypeError{Expected: TagByteArray, Actual: t.ID()}
	}
	return t.byteArr, nil
}

// AsIntArray returns the IntArray value.
func (t *Tag) AsIntArray() ([]int32, error) {
	if t == nil || t.id != TagIntArray {
		return nil, &TypeError{Expected: TagIntArray, Actual: t.ID()}
	}
	return t.intArr, nil
}

// AsLongArray returns the LongArray value.
func (t *Tag) AsLongArray() ([]int64, error) {
	if t == nil || t.id != TagLongArray {
		return nil, &TypeError{Expected: TagLongArray, Actual: t.ID()}
	}
	return t.longArr, nil
}

// AsList returns the List value.
func (t *Tag) AsList() (*List, error) {
	if t == nil || t.id != TagList {
		return nil, &TypeError{Expected: TagList, Actual: t.ID()}
	}
	return t.listVal, nil
}

// AsCompound returns the Compound value.
func (t *Tag) AsCompound() (*Compound, error) {
	if t == nil || t.id != TagCompound {
		return nil, &TypeError{Expected: TagCompound, Actual: t.ID()}
	}
	return t.compoundVal, nil
}

// String renders the tag as compact SNBT.
func (t *Tag) String() string {
	return Format(t)
}

// ============================================================
// Equality
// ============================================================

// Equal reports deep equality of two tags. Floating point values are
// compared bitwise, so NaN compares equal to an identical NaN. Compound
// comparison ignores insertion order since the format treats field order
// as non-semantic.
func Equal(a, b *Tag) bool {
	if a == nil || b == nil {
		return a.ID() == TagEnd && b.ID() == TagEnd
	}
	if a.id != b.id {
		return false
	}
	switch a.id {
	case TagByte, TagShort, TagInt, TagLong:
		return a.intVal == b.intVal
	case TagFloat:
		return math.Float32bits(float32(a.floatVal)) == math.Float32bits(float32(b.floatVal))
	case TagDouble:
		return math.Float64bits(a.floatVal) == math.Float64bits(b.floatVal)
	case TagString:
		return a.strVal == b.strVal
	case TagByteArray:
		if len(a.byteArr) != len(b.byteArr) {
			return false
		}
		for i := range a.byteArr {
			if a.byteArr[i] != b.byteArr[i] {
				return false
			}
		}
		return true
	case TagIntArray:
		if len(a.intArr) != len(b.intArr) {
			return false
		}
		for i := range a.intArr {
			if a.intArr[i] != b.intArr[i] {
				return false
			}
		}
		return true
	case TagLongArray:
		if len(a.longArr) != len(b.longArr) {
			return false
		}
		for i := range a.longArr {
			if a.longArr[i] != b.longArr[i] {
				return false
			}
		}
		return true
	case TagList:
		la, lb := a.listVal, b.listVal
		if la.Len() != lb.Len() {
			return false
		}
		if la.Len() > 0 && la.ElementType() != lb.ElementType() {
			return false
		}
		for i := 0; i < la.Len(); i++ {
			if !Equal(la.tags[i], lb.tags[i]) {
				return false
			}
		}
		return true
	case TagCompound:
		ca, cb := a.compoundVal, b.compoundVal
		if ca.Len() != cb.Len() {
			return false
		}
		for _, e := range ca.entries {
			other, ok := cb.Get(e.key)
			if !ok || !Equal(e.tag, other) {
				return false
			}
		}
		return true
	}
	return false
}

// ============================================================
// List
// ============================================================

// List is the sequence-valued tag variant. All elements share one tag
// kind; an empty list's element type is TagEnd until the first append.
type List struct {
	elem TagID
	tags []*Tag
}

// NewList returns an empty list with element type TagEnd.
func NewList() *List {
	return &List{elem: TagEnd}
}

// ListOf builds a list from the given tags, enforcing homogeneity.
func ListOf(tags ...*Tag) (*List, error) {
	l := NewList()
	for _, t := range tags {
		if err := l.Append(t); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// ElementType returns the list's established element kind, TagEnd if
// the list has never held an element.
func (l *List) ElementType() TagID {
	if l == nil {
		return TagEnd
	}
	return l.elem
}

// Len returns the number of elements.
func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.tags)
}

// At returns the i-th element.
func (l *List) At(i int) (*Tag, error) {
	if l == nil || i < 0 || i >= len(l.tags) {
		return nil, &IndexError{Index: i, Len: l.Len()}
	}
	return l.tags[i], nil
}

// Append adds a tag to the end of the list. The first append fixes the
// list's element type; subsequent appends of a different kind fail with
// a TypeError and leave the list unchanged.
func (l *List) Append(t *Tag) error {
	if t == nil || t.ID() == TagEnd {
		return &TypeError{Expected: l.elem, Actual: TagEnd}
	}
	if len(l.tags) == 0 {
		l.elem = t.id
	} else if t.id != l.elem {
		return &TypeError{Expected: l.elem, Actual: t.id}
	}
	l.tags = append(l.tags, t)
	return nil
}

// Range calls fn for each element in order until fn returns false.
func (l *List) Range(fn func(i int, t *Tag) bool) {
	if l == nil {
		return
	}
	for i, t := range l.tags {
		if !fn(i, t) {
			return
		}
	}
}

// ============================================================
// Compound
// ============================================================

type entry struct {
	key string
	tag *Tag
}

// Compound is the mapping-valued tag variant. Keys are unique strings;
// insertion order is preserved so that round-tripping through either
// codec reproduces the original field order.
type Compound struct {
	entries []entry
	index   map[string]int
}

// NewCompound returns an empty compound.
func NewCompound() *Compound {
	return &Compound{index: make(map[string]int)}
}

// Len returns the number of fields.
func (c *Compound) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

// Get returns the tag stored under key.
func (c *Compound) Get(key string) (*Tag, bool) {
	if c == nil {
		return nil, false
	}
	i, ok := c.index[key]
	if !ok {
		return nil, false
	}
	return c.entries[i].tag, true
}

// Set stores tag under key. If the key already exists its value is
// replaced in place, keeping the key's original position. A zero-value
// Compound is ready to use.
func (c *Compound) Set(key string, tag *Tag) {
	if i, ok := c.index[key]; ok {
		c.entries[i].tag = tag
		return
	}
	if c.index == nil {
		c.index = make(map[string]int)
	}
	c.index[key] = len(c.entries)
	c.entries = append(c.entries, entry{key: key, tag: tag})
}

// Remove deletes the field with the given key, reporting whether it
// existed.
func (c *Compound) Remove(key string) bool {
	i, ok := c.index[key]
	if !ok {
		return false
	}
	c.entries = append(c.entries[:i], c.entries[i+1:]...)
	delete(c.index, key)
	for j := i; j < len(c.entries); j++ {
		c.index[c.entries[j].key] = j
	}
	return true
}

// Contains reports whether the compound has a field with the given key.
func (c *Compound) Contains(key string) bool {
	if c == nil {
		return false
	}
	_, ok := c.index[key]
	return ok
}

// Keys returns the field names in insertion order.
func (c *Compound) Keys() []string {
	if c == nil {
		return nil
	}
	keys := make([]string, len(c.entries))
	for i, e := range c.entries {
		keys[i] = e.key
	}
	return keys
}

// Range calls fn for each field in insertion order until fn returns
// false.
func (c *Compound) Range(fn func(key string, t *Tag) bool) {
	if c == nil {
		return
	}
	for _, e := range c.entries {
		if !fn(e.key, e.tag) {
			return
		}
	}
}
