package vtype

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTag(t *testing.T) {
	tests := []struct {
		tag  string
		want ElementType
	}{
		{"bit", Bit},
		{"char", Int8},
		{"signed_char", Int8},
		{"unsigned_char", UInt8},
		{"UNSIGNED_CHAR", UInt8},
		{"short", Int16},
		{"unsigned_short", UInt16},
		{"int", Int32},
		{"unsigned_int", UInt32},
		{"long", Long},
		{"unsigned_long", ULong},
		{"vtktypeint64", Int64},
		{"vtktypeuint64", UInt64},
		{"float", Float32},
		{"double", Float64},
		{"vtkidtype", IDType},
		{"string", StringType},
		{"utf8_string", UTF8String},
		{"variant", Variant},
	}

	for _, tc := range tests {
		t.Run(tc.tag, func(t *testing.T) {
			got, ok := ParseTag(tc.tag)
			assert.True(t, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseTag_Unknown(t *testing.T) {
	_, ok := ParseTag("not_a_type")
	assert.False(t, ok)
}

func TestElementType_WireSize(t *testing.T) {
	assert.Equal(t, 1, Int8.WireSize())
	assert.Equal(t, 2, Int16.WireSize())
	assert.Equal(t, 4, Int32.WireSize())
	assert.Equal(t, 4, Float32.WireSize())
	assert.Equal(t, 8, Float64.WireSize())
	assert.Equal(t, 0, Bit.WireSize())
	assert.Equal(t, 0, StringType.WireSize())
}

func TestElementType_IsIntegerAndNumeric(t *testing.T) {
	assert.True(t, Int32.IsInteger())
	assert.True(t, IDType.IsInteger())
	assert.False(t, Float32.IsInteger())
	assert.True(t, Float32.IsNumeric())
	assert.False(t, Variant.IsNumeric())
}

func TestScope_Sibling(t *testing.T) {
	tests := []struct {
		s        Scope
		want     Scope
		wantBool bool
	}{
		{Point, Cell, true},
		{Cell, Point, true},
		{Vertex, Edge, true},
		{Edge, Vertex, true},
		{Row, ScopeUnknown, false},
	}

	for _, tc := range tests {
		got, ok := tc.s.Sibling()
		assert.Equal(t, tc.wantBool, ok)
		if ok {
			assert.Equal(t, tc.want, got)
		}
	}
}

func TestParseEncoding(t *testing.T) {
	e, ok := ParseEncoding("ascii")
	assert.True(t, ok)
	assert.Equal(t, ASCII, e)

	e, ok = ParseEncoding("Binary")
	assert.True(t, ok)
	assert.Equal(t, BINARY, e)

	_, ok = ParseEncoding("xml")
	assert.False(t, ok)
}
