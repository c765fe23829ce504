package cellarray

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pardi/vtklegacy/token"
	"github.com/pardi/vtklegacy/vtype"
)

func TestReadModern_Basic(t *testing.T) {
	tok := token.New(strings.NewReader("OFFSETS vtkidtype\n0 3 6\nCONNECTIVITY vtkidtype\n0 1 2 2 3 0\n"))
	ca, err := ReadModern(tok, 3, 6)
	require.NoError(t, err)
	require.NotNil(t, ca.Offsets)
	require.NotNil(t, ca.Connectivity)
	assert.Equal(t, []int64{0, 3, 6}, ca.Offsets.Int64Values)
	assert.Equal(t, []int64{0, 1, 2, 2, 3, 0}, ca.Connectivity.Int64Values)
}

func TestReadModern_EmptyWhenOffsetsSizeZero(t *testing.T) {
	tok := token.New(strings.NewReader(""))
	ca, err := ReadModern(tok, 0, 0)
	require.NoError(t, err)
	assert.Nil(t, ca.Offsets)
	assert.Nil(t, ca.Connectivity)
}

func TestReadModern_RejectsNonIntegerType(t *testing.T) {
	tok := token.New(strings.NewReader("OFFSETS float\n0 3\n"))
	_, err := ReadModern(tok, 2, 0)
	assert.Error(t, err)
}

func TestReadLegacy_ASCIINoWindow(t *testing.T) {
	tok := token.New(strings.NewReader("1 2 3 4\n"))
	lca, err := ReadLegacy(tok, 4, vtype.ASCII, nil)
	require.NoError(t, err)
	assert.Equal(t, []int32{1, 2, 3, 4}, lca.Cells)
}

func TestReadLegacy_PieceWindow(t *testing.T) {
	// Flat structure of 4 cell groups: "3, 1 2 3", "2, 4 5", "2, 6 7", "1, 8".
	// Window skips the first group, reads the next two, skips the last.
	tok := token.New(strings.NewReader("3 1 2 3 2 4 5 2 6 7 1 8\n"))
	window := &PieceWindow{Skip1: 1, Read2: 2, Skip3: 1}
	lca, err := ReadLegacy(tok, 12, vtype.ASCII, window)
	require.NoError(t, err)
	assert.Equal(t, []int32{2, 4, 5, 2, 6, 7}, lca.Cells)
}

func TestReadLegacy_PieceWindowReadAll(t *testing.T) {
	tok := token.New(strings.NewReader("2 1 2 2 3 4\n"))
	window := &PieceWindow{Skip1: 0, Read2: 2, Skip3: 0}
	lca, err := ReadLegacy(tok, 6, vtype.ASCII, window)
	require.NoError(t, err)
	assert.Equal(t, []int32{2, 1, 2, 2, 3, 4}, lca.Cells)
}
