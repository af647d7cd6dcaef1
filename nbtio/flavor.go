package nbtio

import "fmt"

// Flavor selects the compression wrapper around a binary NBT document.
// Region files and network packets use zlib, standalone files like
// level.dat use gzip, and servers.dat uses no compression at all.
type Flavor int

const (
	Uncompressed Flavor = iota
	Gzip
	Zlib
)

func (f Flavor) String() string {
	switch f {
	case Uncompressed:
		return "none"
	case Gzip:
		return "gzip"
	case Zlib:
		return "zlib"
	default:
		return "unknown"
	}
}

// ParseFlavor maps a flavor name to its value. It accepts the strings
// produced by Flavor.String.
func ParseFlavor(s string) (Flavor, error) {
	switch s {
	case "none", "uncompressed":
		return Uncompressed, nil
	case "gzip":
		return Gzip, nil
	case "zlib":
		return Zlib, nil
	default:
		return Uncompressed, fmt.Errorf("nbtio: unknown compression flavor %q", s)
	}
}
