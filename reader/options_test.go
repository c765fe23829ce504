package reader

import (
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pardi/vtklegacy/vtype"
)

func TestConfig_DefaultsAllowEverything(t *testing.T) {
	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.True(t, cfg.allows(SlotScalars, vtype.Point, "anything"))
	assert.False(t, cfg.readAll(SlotScalars, vtype.Point))
}

func TestConfig_WithFilter_RestrictsByScope(t *testing.T) {
	cfg, err := NewConfig(WithFilter(SlotScalars, vtype.Point, func(name string) bool {
		return name == "temperature"
	}))
	require.NoError(t, err)

	assert.True(t, cfg.allows(SlotScalars, vtype.Point, "temperature"))
	assert.False(t, cfg.allows(SlotScalars, vtype.Point, "pressure"))
	// Cell scope is unaffected by a Point-scoped filter.
	assert.True(t, cfg.allows(SlotScalars, vtype.Cell, "pressure"))
}

func TestConfig_WithReadAll(t *testing.T) {
	cfg, err := NewConfig(WithReadAll(SlotVectors, vtype.Cell, true))
	require.NoError(t, err)

	assert.True(t, cfg.readAll(SlotVectors, vtype.Cell))
	assert.False(t, cfg.readAll(SlotVectors, vtype.Point))
}

func TestConfig_WithLookupTableFilter(t *testing.T) {
	cfg, err := NewConfig()
	require.NoError(t, err)
	assert.True(t, cfg.lutAllows("anything"))

	cfg, err = NewConfig(WithLookupTableFilter(func(name string) bool { return name == "hot" }))
	require.NoError(t, err)
	assert.True(t, cfg.lutAllows("hot"))
	assert.False(t, cfg.lutAllows("cold"))
}

func TestConfig_WithLogger(t *testing.T) {
	l := log.New(io.Discard, "", 0)
	cfg, err := NewConfig(WithLogger(l))
	require.NoError(t, err)
	assert.Same(t, l, cfg.logger())
	assert.NotNil(t, cfg.diagLog())
}

func TestConfig_WithFilter_AppliesToIDAndFlagSlots(t *testing.T) {
	cfg, err := NewConfig(WithFilter(SlotGlobalIDs, vtype.Point, func(name string) bool {
		return name == "originalIds"
	}))
	require.NoError(t, err)

	assert.True(t, cfg.allows(SlotGlobalIDs, vtype.Point, "originalIds"))
	assert.False(t, cfg.allows(SlotGlobalIDs, vtype.Point, "other"))
	// PedigreeIds and EdgeFlag are unaffected by a GlobalIds filter.
	assert.True(t, cfg.allows(SlotPedigreeIDs, vtype.Point, "other"))
	assert.True(t, cfg.allows(SlotEdgeFlag, vtype.Point, "other"))
}

func TestConfig_WithReadAll_NeverPromotesIDOrFlagSlots(t *testing.T) {
	cfg, err := NewConfig(WithReadAll(SlotPedigreeIDs, vtype.Point, true))
	require.NoError(t, err)

	// The toggle is recorded, but Slot.hasReadAllExtras excludes these
	// slots from ever acting on it (assignToSlot in attributes.go).
	assert.True(t, cfg.readAll(SlotPedigreeIDs, vtype.Point))
	assert.False(t, SlotPedigreeIDs.hasReadAllExtras())
}
