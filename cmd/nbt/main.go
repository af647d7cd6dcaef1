// nbt - NBT codec CLI tool
//
// Usage:
//
//	nbt print [--compact] [file]      Decode binary NBT and print SNBT
//	nbt pack [-o out] [file]          Parse SNBT and write binary NBT
//
// Compression is sniffed on read (gzip, zlib, or none) and selected with
// --compression on write. If no file is given, reads from stdin.
package main

import "github.com/Rusty-Quartz/quartz-nbt/cmd/nbt/cmd"

func main() {
	cmd.Execute()
}
