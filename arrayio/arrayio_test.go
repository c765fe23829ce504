package arrayio

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pardi/vtklegacy/diag"
	"github.com/pardi/vtklegacy/token"
	"github.com/pardi/vtklegacy/vtype"
)

func TestRead_ASCIIFloat(t *testing.T) {
	tok := token.New(strings.NewReader("3.5 -1\n"))
	arr, err := Read(tok, "s", "float", 2, 1, vtype.ASCII, diag.New(nil))
	require.NoError(t, err)
	assert.Equal(t, []float32{3.5, -1}, arr.Float32Values)
}

func TestRead_ASCIIInt(t *testing.T) {
	tok := token.New(strings.NewReader("1 2 3 4\n"))
	arr, err := Read(tok, "v", "int", 2, 2, vtype.ASCII, diag.New(nil))
	require.NoError(t, err)
	assert.Equal(t, []int32{1, 2, 3, 4}, arr.Int32Values)
}

func TestRead_BinaryIntByteSwap(t *testing.T) {
	// newline separator, then big-endian int32 value 42.
	data := []byte{'\n', 0x00, 0x00, 0x00, 0x2A}
	tok := token.New(strings.NewReader(string(data)))
	arr, err := Read(tok, "id", "int", 1, 1, vtype.BINARY, diag.New(nil))
	require.NoError(t, err)
	require.Len(t, arr.Int32Values, 1)
	assert.Equal(t, int32(42), arr.Int32Values[0])
}

func TestRead_ASCIIBitArray(t *testing.T) {
	tok := token.New(strings.NewReader("1 0 1 1 0 0 0 1 1\n"))
	arr, err := Read(tok, "flags", "bit", 9, 1, vtype.ASCII, diag.New(nil))
	require.NoError(t, err)
	want := []bool{true, false, true, true, false, false, false, true, true}
	for i, w := range want {
		assert.Equal(t, w, arr.Bit(i), "bit %d", i)
	}
}

func TestRead_ASCIIString(t *testing.T) {
	tok := token.New(strings.NewReader("my%20name%2E\nplain\n"))
	arr, err := Read(tok, "names", "string", 2, 1, vtype.ASCII, diag.New(nil))
	require.NoError(t, err)
	assert.Equal(t, []string{"my name.", "plain"}, arr.StringValues)
}

func TestRead_BinaryVariableWidthStrings(t *testing.T) {
	// "abc" with a 6-bit inline length (H=3, L=3), then "wxyz" with
	// a 2-byte length field (H=2, L=4, 0x8000|0x0004).
	data := []byte{'\n'}
	data = append(data, 0xC3, 'a', 'b', 'c')
	data = append(data, 0x80, 0x00, 0x04, 'w', 'x', 'y', 'z')

	tok := token.New(strings.NewReader(string(data)))
	arr, err := Read(tok, "s", "string", 2, 1, vtype.BINARY, diag.New(nil))
	require.NoError(t, err)
	assert.Equal(t, []string{"abc", "wxyz"}, arr.StringValues)
}

func TestRead_VariantValues(t *testing.T) {
	// type-code 6 == VTK_INT, type-code 13 == VTK_STRING.
	tok := token.New(strings.NewReader("6 42\n13 hello%20world\n"))
	arr, err := Read(tok, "v", "variant", 2, 1, vtype.ASCII, diag.New(nil))
	require.NoError(t, err)
	require.Len(t, arr.VariantValues, 2)
	assert.Equal(t, int64(42), arr.VariantValues[0].Int64)
	assert.Equal(t, "hello world", arr.VariantValues[1].Str)
}

func TestRead_MetadataComponentNames(t *testing.T) {
	tok := token.New(strings.NewReader("1 2\nMETADATA\nCOMPONENT_NAMES\nx\ny\n\n"))
	arr, err := Read(tok, "v", "int", 1, 2, vtype.ASCII, diag.New(nil))
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, arr.ComponentNames)
}

func TestRead_MetadataTolerantOfMissingTrailingBlankAtEOF(t *testing.T) {
	tok := token.New(strings.NewReader("1\nMETADATA\nCOMPONENT_NAMES\nx"))
	arr, err := Read(tok, "v", "int", 1, 1, vtype.ASCII, diag.New(nil))
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, arr.ComponentNames)
}

func TestRead_InvalidTypeTag(t *testing.T) {
	tok := token.New(strings.NewReader("1\n"))
	_, err := Read(tok, "v", "not_a_type", 1, 1, vtype.ASCII, diag.New(nil))
	assert.Error(t, err)
}

func TestRead_InvalidComponentCount(t *testing.T) {
	tok := token.New(strings.NewReader("1\n"))
	_, err := Read(tok, "v", "int", 1, 0, vtype.ASCII, diag.New(nil))
	assert.Error(t, err)
}
