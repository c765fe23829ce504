package fielddata

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pardi/vtklegacy/diag"
	"github.com/pardi/vtklegacy/token"
	"github.com/pardi/vtklegacy/vtype"
)

func TestRead_BasicTwoArrays(t *testing.T) {
	tok := token.New(strings.NewReader("temp 1 2 float\n1.5 2.5\ncount 1 2 int\n1 2\n"))
	field, err := Read(tok, "data", 2, vtype.Point, 5.1, vtype.ASCII, Filter{ReadAll: true}, diag.New(nil))
	require.NoError(t, err)
	require.Len(t, field.Arrays, 2)
	assert.Equal(t, "temp", field.Arrays[0].Name)
	assert.Equal(t, "count", field.Arrays[1].Name)
}

func TestRead_NullArraySlotSkipped(t *testing.T) {
	tok := token.New(strings.NewReader("NULL_ARRAY\ntemp 1 1 float\n3.0\n"))
	field, err := Read(tok, "data", 2, vtype.Point, 5.1, vtype.ASCII, Filter{ReadAll: true}, diag.New(nil))
	require.NoError(t, err)
	require.Len(t, field.Arrays, 1)
	assert.Equal(t, "temp", field.Arrays[0].Name)
}

func TestRead_GhostRenameAppliedBelowVersion4(t *testing.T) {
	tok := token.New(strings.NewReader("vtkGhostLevels 1 4 unsigned_char\n0 1 2 0\n"))
	field, err := Read(tok, "data", 1, vtype.Point, 3.0, vtype.ASCII, Filter{ReadAll: true}, diag.New(nil))
	require.NoError(t, err)
	require.Len(t, field.Arrays, 1)
	arr := field.Arrays[0]
	assert.Equal(t, "vtkGhostType", arr.Name)
	assert.Equal(t, []uint8{0, 1, 1, 0}, arr.UInt8Values)
}

func TestRead_GhostRenameNotAppliedAtOrAboveVersion4(t *testing.T) {
	tok := token.New(strings.NewReader("vtkGhostLevels 1 2 unsigned_char\n0 1\n"))
	field, err := Read(tok, "data", 1, vtype.Point, 4.2, vtype.ASCII, Filter{ReadAll: true}, diag.New(nil))
	require.NoError(t, err)
	require.Len(t, field.Arrays, 1)
	assert.Equal(t, "vtkGhostLevels", field.Arrays[0].Name)
}

func TestRead_DuplicateNameIsNonFatalAndLastWins(t *testing.T) {
	tok := token.New(strings.NewReader("a 1 1 int\n1\na 1 1 int\n2\n"))
	dlog := diag.New(nil)
	field, err := Read(tok, "data", 2, vtype.Point, 5.1, vtype.ASCII, Filter{ReadAll: true}, dlog)
	require.NoError(t, err)
	require.Len(t, field.Arrays, 2)
	assert.NotEmpty(t, dlog.Recent())
	got := field.ByName("a")
	require.NotNil(t, got)
	assert.Equal(t, []int32{2}, got.Int32Values)
}

func TestRead_FilterExcludesUnlistedArray(t *testing.T) {
	tok := token.New(strings.NewReader("keep 1 1 int\n1\ndrop 1 1 int\n2\n"))
	filter := Filter{Accept: func(name string) bool { return name == "keep" }}
	field, err := Read(tok, "data", 2, vtype.Point, 5.1, vtype.ASCII, filter, diag.New(nil))
	require.NoError(t, err)
	require.Len(t, field.Arrays, 1)
	assert.Equal(t, "keep", field.Arrays[0].Name)
}

func TestIsNullArray(t *testing.T) {
	assert.True(t, IsNullArray("NULL_ARRAY"))
	assert.False(t, IsNullArray("temp"))
}
