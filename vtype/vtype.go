// Package vtype defines the small closed enumerations the legacy VTK
// reader dispatches on: element types (the array reader's type tags),
// association scopes (point/cell/vertex/edge/row), and the file's
// wire encoding (ASCII/BINARY). Each enum is a uint8 with a String
// method and a lookup-table-backed parse function.
package vtype

import "strings"

// ElementType identifies the element kind of a typed array (§3).
type ElementType uint8

const (
	Unknown ElementType = iota
	Bit
	Int8
	UInt8
	Int16
	UInt16
	Int32
	UInt32
	Int64
	UInt64
	Long   // platform-sized signed long, legacy only
	ULong  // platform-sized unsigned long, legacy only
	Float32
	Float64
	StringType  // "string": one percent-hex-encoded value per line, or length-prefixed binary
	UTF8String  // "utf8_string": same wire shape as StringType
	Variant     // "variant": a typed value per line, ASCII only
	IDType      // "vtkidtype": i32 on wire, widened to platform id width
)

// String implements fmt.Stringer.
func (e ElementType) String() string {
	switch e {
	case Bit:
		return "bit"
	case Int8:
		return "int8"
	case UInt8:
		return "uint8"
	case Int16:
		return "int16"
	case UInt16:
		return "uint16"
	case Int32:
		return "int32"
	case UInt32:
		return "uint32"
	case Int64:
		return "int64"
	case UInt64:
		return "uint64"
	case Long:
		return "long"
	case ULong:
		return "unsigned_long"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case StringType:
		return "string"
	case UTF8String:
		return "utf8_string"
	case Variant:
		return "variant"
	case IDType:
		return "idtype"
	default:
		return "unknown"
	}
}

// IsNumeric reports whether e is one of the fixed-width numeric
// kinds (excludes Bit, StringType, UTF8String, Variant).
func (e ElementType) IsNumeric() bool {
	switch e {
	case Int8, UInt8, Int16, UInt16, Int32, UInt32, Int64, UInt64, Long, ULong, Float32, Float64, IDType:
		return true
	default:
		return false
	}
}

// IsInteger reports whether e is a numeric integer kind, as required
// by the modern cell-array reader (§4.8) for its OFFSETS and
// CONNECTIVITY arrays.
func (e ElementType) IsInteger() bool {
	switch e {
	case Int8, UInt8, Int16, UInt16, Int32, UInt32, Int64, UInt64, Long, ULong, IDType:
		return true
	default:
		return false
	}
}

// WireSize returns the on-the-wire size in bytes of one element of e
// for platform-independent kinds; it returns 0 for Bit (packed),
// StringType/UTF8String (variable-width), Variant (ASCII-only), and
// Long/ULong (platform-dependent — see DESIGN.md).
func (e ElementType) WireSize() int {
	switch e {
	case Int8, UInt8:
		return 1
	case Int16, UInt16:
		return 2
	case Int32, UInt32, IDType:
		return 4
	case Int64, UInt64, Float64:
		return 8
	case Float32:
		return 4
	default:
		return 0
	}
}

// tagTable maps every canonical, lowercase on-disk type tag to its
// ElementType. The aliases char/signed_char map to the same value;
// string and utf8_string map to distinct values.
var tagTable = map[string]ElementType{
	"bit":             Bit,
	"char":            Int8,
	"signed_char":     Int8,
	"unsigned_char":   UInt8,
	"short":           Int16,
	"unsigned_short":  UInt16,
	"int":             Int32,
	"unsigned_int":    UInt32,
	"long":            Long,
	"unsigned_long":   ULong,
	"vtktypeint64":    Int64,
	"vtktypeuint64":   UInt64,
	"float":           Float32,
	"double":          Float64,
	"vtkidtype":       IDType,
	"string":          StringType,
	"utf8_string":     UTF8String,
	"variant":         Variant,
}

// ParseTag resolves an on-disk type tag (§4.4) to an ElementType. The
// match is case-insensitive on the canonical spellings above; it is
// not a substring/prefix match against arbitrary text — the wire
// format's type tags are one of this fixed, closed set of keywords.
func ParseTag(tag string) (ElementType, bool) {
	et, ok := tagTable[strings.ToLower(tag)]
	return et, ok
}

// Scope is the association of an attribute with the dataset's
// points, cells, vertices, edges, or table rows (§3).
type Scope uint8

const (
	ScopeUnknown Scope = iota
	Point
	Cell
	Vertex
	Edge
	Row
)

// String implements fmt.Stringer.
func (s Scope) String() string {
	switch s {
	case Point:
		return "point"
	case Cell:
		return "cell"
	case Vertex:
		return "vertex"
	case Edge:
		return "edge"
	case Row:
		return "row"
	default:
		return "unknown"
	}
}

// Sibling returns the scope's cross-scope transition partner and
// whether one exists: POINT<->CELL, VERTEX<->EDGE. ROW has none.
func (s Scope) Sibling() (Scope, bool) {
	switch s {
	case Point:
		return Cell, true
	case Cell:
		return Point, true
	case Vertex:
		return Edge, true
	case Edge:
		return Vertex, true
	default:
		return ScopeUnknown, false
	}
}

// Encoding is the file's declared wire representation (§4.11).
type Encoding uint8

const (
	EncodingUnknown Encoding = iota
	ASCII
	BINARY
)

// String implements fmt.Stringer.
func (e Encoding) String() string {
	switch e {
	case ASCII:
		return "ASCII"
	case BINARY:
		return "BINARY"
	default:
		return "unknown"
	}
}

// ParseEncoding resolves the header's third token (§4.11, §4.13) to
// an Encoding, case-insensitively.
func ParseEncoding(tok string) (Encoding, bool) {
	switch strings.ToUpper(tok) {
	case "ASCII":
		return ASCII, true
	case "BINARY":
		return BINARY, true
	default:
		return EncodingUnknown, false
	}
}
