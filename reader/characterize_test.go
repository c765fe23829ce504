package reader

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCharacterize_IndexesKnownKinds(t *testing.T) {
	src := strings.Join([]string{
		"# vtk DataFile Version 3.0",
		"title",
		"ASCII",
		"DATASET POLYDATA",
		"POINT_DATA 4",
		"SCALARS temperature float",
		"LOOKUP_TABLE default",
		"1 2 3 4",
		"VECTORS velocity float",
		"0 0 0 1 1 1 2 2 2 3 3 3",
		"FIELD extra 1",
		"notes 1 4 float",
		"1 2 3 4",
	}, "\n")

	c, err := Characterize(strings.NewReader(src))
	require.NoError(t, err)

	assert.Equal(t, []string{"temperature"}, c.NamesFor("scalars"))
	assert.Equal(t, []string{"velocity"}, c.NamesFor("vectors"))
	assert.Equal(t, []string{"extra"}, c.NamesFor("field"))
	assert.Equal(t, []string{}, c.NamesFor("tensors"))
}

func TestCharacterization_NameAt_OutOfRange(t *testing.T) {
	c, err := Characterize(strings.NewReader("SCALARS a float\n"))
	require.NoError(t, err)

	_, ok := c.NameAt("scalars", 5)
	assert.False(t, ok)

	name, ok := c.NameAt("scalars", 0)
	assert.True(t, ok)
	assert.Equal(t, "a", name)
}
