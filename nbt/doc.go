// Package nbt implements the Named Binary Tag format used by Minecraft.
//
// NBT has two equivalent encodings:
//   - Binary: big-endian framing with length-prefixed names (storage, network)
//   - SNBT (stringified NBT): the human-readable text form (commands, configs)
//
// Both share the same data model, a recursive tree of tagged values.
//
// # Data Model
//
// Scalars: Byte, Short, Int, Long, Float, Double, String
// Arrays:  ByteArray, IntArray, LongArray
// Containers: List (homogeneous), Compound (ordered string-keyed map)
//
// A binary document is a single named tag, conventionally a Compound.
// Strings travel as modified UTF-8, the Java serialization dialect where
// NUL is encoded as two bytes and supplementary code points as CESU-8
// surrogate pairs.
//
// # SNBT Syntax
//
// Compound:    {name:value,other:value}
// List:        [v1,v2,v3]
// Arrays:      [B;1,2] [I;1,2] [L;1,2]
// Numbers:     5b 5s 5 5L 5.0f 5.0d true false
// String:      bare_word or "quoted string" or 'quoted string'
//
// Parsing is strict: a bare token that opens with a digit or sign must be
// a valid numeric literal, list elements must share one type, and
// trailing commas are rejected.
//
// # Round Trips
//
// Decode then Encode reproduces the input bytes exactly, with one
// exception: a compound that repeats a key collapses to a single entry,
// last value winning, at the key's first position. Format then Parse
// yields an equal tree, including NaN and infinite floats, which are
// spelled NaN, Infinity, and -Infinity.
//
// # Example
//
//	c := nbt.NewCompound()
//	c.Set("name", nbt.String("Steve"))
//	c.Set("health", nbt.Float(20))
//	data, err := nbt.EncodeBytes("player", nbt.CompoundTag(c))
//
// # Limits
//
// Nesting is capped at MaxDepth on both decode and parse to keep malicious
// inputs from exhausting the stack. Tag names and strings are capped at
// 65535 encoded bytes by the wire format itself.
package nbt
