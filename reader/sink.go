// Package reader implements the attribute dispatcher, header/
// characterization pass, lookup-table reader, and public facade that
// tie token, arrayio, cellarray, infokey, and fielddata together into
// a complete legacy VTK reader.
package reader

import (
	"github.com/pardi/vtklegacy/arrayio"
	"github.com/pardi/vtklegacy/fielddata"
	"github.com/pardi/vtklegacy/vtype"
)

// Slot identifies one of a scope's designated attribute slots (§3).
type Slot uint8

const (
	SlotScalars Slot = iota
	SlotVectors
	SlotNormals
	SlotTensors
	SlotTCoords
	SlotGlobalIDs
	SlotPedigreeIDs
	SlotEdgeFlag
	SlotColorScalars
)

// String implements fmt.Stringer.
func (s Slot) String() string {
	switch s {
	case SlotScalars:
		return "scalars"
	case SlotVectors:
		return "vectors"
	case SlotNormals:
		return "normals"
	case SlotTensors:
		return "tensors"
	case SlotTCoords:
		return "tcoords"
	case SlotGlobalIDs:
		return "global_ids"
	case SlotPedigreeIDs:
		return "pedigree_ids"
	case SlotEdgeFlag:
		return "edge_flags"
	case SlotColorScalars:
		return "color_scalars"
	default:
		return "unknown"
	}
}

// hasReadAllExtras reports whether a slot's "read-all" toggle can
// promote a filtered-out array to a named extra. GlobalIds,
// PedigreeIds, and EdgeFlag have no such extras (§4.5): once their
// slot is filled, later arrays of that kind are always dropped.
func (s Slot) hasReadAllExtras() bool {
	switch s {
	case SlotGlobalIDs, SlotPedigreeIDs, SlotEdgeFlag:
		return false
	default:
		return true
	}
}

// AttributeSink is the narrow interface the attribute dispatcher
// populates; the concrete in-memory dataset types are out of scope
// (§1) and this is the contract an embedding application's own sink
// must implement instead of Attributes.
type AttributeSink interface {
	// Filled reports whether slot already holds an array in this
	// sink's current scope.
	Filled(slot Slot) bool
	// Fill attaches arr to slot. Callers only invoke this after
	// confirming the slot is not Filled.
	Fill(slot Slot, arr *arrayio.Array)
	// Extra adds arr as a named array outside any designated slot
	// (the "read-all" promotion case).
	Extra(name string, arr *arrayio.Array)
	// AttachLookupTable attaches lut to the slot currently holding
	// Scalars, if any.
	AttachLookupTable(lut *LookupTable)
	// AddField appends a field-data container read by §4.10.
	AddField(field *fielddata.Field)
}

// Attributes is the default in-memory AttributeSink for one
// association scope, used when a caller does not supply its own.
type Attributes struct {
	slots  [9]*arrayio.Array
	lut    *LookupTable
	extras map[string]*arrayio.Array
	fields []*fielddata.Field
}

var _ AttributeSink = (*Attributes)(nil)

// NewAttributes constructs an empty Attributes container.
func NewAttributes() *Attributes {
	return &Attributes{}
}

// Filled implements AttributeSink.
func (a *Attributes) Filled(slot Slot) bool {
	return a.slots[slot] != nil
}

// Fill implements AttributeSink.
func (a *Attributes) Fill(slot Slot, arr *arrayio.Array) {
	a.slots[slot] = arr
}

// Extra implements AttributeSink.
func (a *Attributes) Extra(name string, arr *arrayio.Array) {
	if a.extras == nil {
		a.extras = make(map[string]*arrayio.Array)
	}

	a.extras[name] = arr
}

// AttachLookupTable implements AttributeSink.
func (a *Attributes) AttachLookupTable(lut *LookupTable) {
	a.lut = lut
}

// AddField implements AttributeSink.
func (a *Attributes) AddField(field *fielddata.Field) {
	a.fields = append(a.fields, field)
}

// Scalars returns the scope's Scalars slot, or nil if unfilled.
func (a *Attributes) Scalars() *arrayio.Array { return a.slots[SlotScalars] }

// Vectors returns the scope's Vectors slot, or nil if unfilled.
func (a *Attributes) Vectors() *arrayio.Array { return a.slots[SlotVectors] }

// Normals returns the scope's Normals slot, or nil if unfilled.
func (a *Attributes) Normals() *arrayio.Array { return a.slots[SlotNormals] }

// Tensors returns the scope's Tensors slot, or nil if unfilled.
func (a *Attributes) Tensors() *arrayio.Array { return a.slots[SlotTensors] }

// TCoords returns the scope's TCoords slot, or nil if unfilled.
func (a *Attributes) TCoords() *arrayio.Array { return a.slots[SlotTCoords] }

// GlobalIDs returns the scope's GlobalIds slot, or nil if unfilled.
func (a *Attributes) GlobalIDs() *arrayio.Array { return a.slots[SlotGlobalIDs] }

// PedigreeIDs returns the scope's PedigreeIds slot, or nil if unfilled.
func (a *Attributes) PedigreeIDs() *arrayio.Array { return a.slots[SlotPedigreeIDs] }

// EdgeFlags returns the scope's EdgeFlag slot, or nil if unfilled.
func (a *Attributes) EdgeFlags() *arrayio.Array { return a.slots[SlotEdgeFlag] }

// ColorScalars returns the scope's ColorScalars slot, or nil if unfilled.
func (a *Attributes) ColorScalars() *arrayio.Array { return a.slots[SlotColorScalars] }

// LookupTable returns the table attached to this scope's Scalars
// slot, or nil.
func (a *Attributes) LookupTable() *LookupTable { return a.lut }

// Extras returns the scope's name-filtered extra arrays.
func (a *Attributes) Extras() map[string]*arrayio.Array { return a.extras }

// Fields returns every field-data container read for this scope.
func (a *Attributes) Fields() []*fielddata.Field { return a.fields }

// Dataset is the default in-memory sink spanning all five
// association scopes; Reader populates one per open source.
type Dataset struct {
	Point  *Attributes
	Cell   *Attributes
	Vertex *Attributes
	Edge   *Attributes
	Row    *Attributes
}

// NewDataset constructs a Dataset with an empty Attributes container
// for each scope.
func NewDataset() *Dataset {
	return &Dataset{
		Point:  NewAttributes(),
		Cell:   NewAttributes(),
		Vertex: NewAttributes(),
		Edge:   NewAttributes(),
		Row:    NewAttributes(),
	}
}

// For returns the Attributes container for scope, falling back to
// Point for an unrecognized scope value.
func (d *Dataset) For(scope vtype.Scope) *Attributes {
	switch scope {
	case vtype.Cell:
		return d.Cell
	case vtype.Vertex:
		return d.Vertex
	case vtype.Edge:
		return d.Edge
	case vtype.Row:
		return d.Row
	default:
		return d.Point
	}
}
