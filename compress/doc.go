// Package compress provides the source-level decompression used when
// opening a legacy VTK file: Sniff identifies a gzip/zstd/lz4 magic
// at the start of the byte stream, and WrapReader transparently
// unwraps it (gzip, zstd, lz4, or s2 by explicit Kind, since s2 has no
// reliably sniffable stream magic) before the tokenizer attaches
// (§2.2).
package compress
