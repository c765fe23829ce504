// Package vtklegacy provides a reader for the legacy VTK data-file
// format: a text-prefixed, mixed ASCII/binary serialization used to
// persist scientific visualization datasets together with their
// point, cell, vertex, edge, and row attribute arrays.
//
// This package is a thin facade over the reader package, which holds
// the actual header state machine, attribute dispatcher, and array
// decoding. Use this package for the common case of opening a file or
// buffer, reading its header, and draining its attribute sections
// into the default in-memory Dataset; reach into the reader package
// directly for a custom AttributeSink or finer-grained control.
//
// The dataset's own geometry (points, cells, grids) is outside this
// package's scope: after ReadHeader, the caller's own geometry reader
// consumes the DATASET-kind-specific records, then hands the
// tokenizer back via Tokenizer to read whatever POINT_DATA/CELL_DATA/
// etc. attribute sections follow.
package vtklegacy

import (
	"github.com/pardi/vtklegacy/reader"
	"github.com/pardi/vtklegacy/token"
	"github.com/pardi/vtklegacy/vtype"
)

// Re-exported so callers need only import this package for the
// common surface.
type (
	Slot             = reader.Slot
	AttributeSink    = reader.AttributeSink
	Attributes       = reader.Attributes
	Dataset          = reader.Dataset
	Header           = reader.Header
	LookupTable      = reader.LookupTable
	Characterization = reader.Characterization
	Scope            = vtype.Scope
	Option           = reader.Option
)

const (
	SlotScalars      = reader.SlotScalars
	SlotVectors      = reader.SlotVectors
	SlotNormals      = reader.SlotNormals
	SlotTensors      = reader.SlotTensors
	SlotTCoords      = reader.SlotTCoords
	SlotGlobalIDs    = reader.SlotGlobalIDs
	SlotPedigreeIDs  = reader.SlotPedigreeIDs
	SlotEdgeFlag     = reader.SlotEdgeFlag
	SlotColorScalars = reader.SlotColorScalars

	Point  = vtype.Point
	Cell   = vtype.Cell
	Vertex = vtype.Vertex
	Edge   = vtype.Edge
	Row    = vtype.Row
)

var (
	WithFilter            = reader.WithFilter
	WithReadAll           = reader.WithReadAll
	WithLookupTableFilter = reader.WithLookupTableFilter
	WithFieldFilter       = reader.WithFieldFilter
	WithLogger            = reader.WithLogger

	NewDataset    = reader.NewDataset
	NewAttributes = reader.NewAttributes
)

// Reader is a parse session over a legacy VTK source. The zero value
// is not usable; construct one with New.
type Reader struct {
	inner *reader.Reader
}

// New constructs a Reader configured by opts (WithFilter, WithReadAll,
// WithFieldFilter, WithLogger).
func New(opts ...Option) (*Reader, error) {
	cfg, err := reader.NewConfig(opts...)
	if err != nil {
		return nil, err
	}

	return &Reader{inner: reader.New(cfg)}, nil
}

// SetFilename configures path as the active source; SetInputBuffer is
// its mutually exclusive alternative. Either call invalidates any
// previously cached file characterization.
func (r *Reader) SetFilename(path string) {
	r.inner.SetFilename(path)
}

// SetInputBuffer configures data as the active source.
func (r *Reader) SetInputBuffer(data []byte) {
	r.inner.SetInputBuffer(data)
}

// Open acquires the configured source, transparently unwrapping any
// gzip/zstd/lz4 compression, and attaches a tokenizer. Open is
// idempotent against a prior Open on the same Reader: it first
// closes.
func (r *Reader) Open() error {
	return r.inner.Open()
}

// Close releases the active source. Safe to call on an already-closed
// Reader.
func (r *Reader) Close() error {
	return r.inner.Close()
}

// ReadHeader reads the four fixed header lines (magic/version, title,
// encoding, DATASET kind) and returns the result. The tokenizer is
// left positioned right after the DATASET kind token, ready for the
// caller's own geometry reader.
func (r *Reader) ReadHeader() (*Header, error) {
	return r.inner.ReadHeader()
}

// FileVersion returns the last-read header's version as major +
// minor/10, or 0 if no header has been read yet.
func (r *Reader) FileVersion() float64 {
	return r.inner.FileVersion()
}

// IsValidDataset opens the source, reads the header, and reports
// whether its DATASET kind matches expectedKind (case-insensitive
// prefix match). The source is closed before returning regardless of
// outcome.
func (r *Reader) IsValidDataset(expectedKind string) (bool, error) {
	return r.inner.IsValidDataset(expectedKind)
}

// Tokenizer exposes the reader's attached tokenizer for a geometry
// reader to consume the DATASET-kind-specific records that follow the
// header, before the caller invokes ReadAttributes for whatever
// POINT_DATA/CELL_DATA/etc. sections come after.
func (r *Reader) Tokenizer() *token.Tokenizer {
	return r.inner.Tokenizer()
}

// ReadAttributes drives the attribute dispatcher for scope with n
// expected elements, populating sink. Call ReadHeader (and consume the
// dataset's geometry) first.
func (r *Reader) ReadAttributes(scope Scope, n int, sink AttributeSink) error {
	return r.inner.ReadAttributes(scope, n, sink)
}

// ReadDataset is the common-case convenience wrapper: it drives every
// POINT_DATA/CELL_DATA/VERTEX_DATA/EDGE_DATA section present into a
// fresh Dataset, routing each to its own scope's Attributes, and
// returns it. Call ReadHeader (and consume the dataset's geometry)
// first.
func (r *Reader) ReadDataset() (*Dataset, error) {
	ds := NewDataset()

	if err := r.inner.ReadDataset(ds); err != nil {
		return nil, err
	}

	return ds, nil
}

// ScalarsNameInFile returns the i-th scalars array name recorded by a
// characterization pass over the whole source, triggering that pass
// if the source has changed since the last one.
func (r *Reader) ScalarsNameInFile(i int) (string, error) { return r.inner.ScalarsNameInFile(i) }

// VectorsNameInFile is ScalarsNameInFile's vectors-kind counterpart.
func (r *Reader) VectorsNameInFile(i int) (string, error) { return r.inner.VectorsNameInFile(i) }

// TensorsNameInFile is ScalarsNameInFile's tensors-kind counterpart.
func (r *Reader) TensorsNameInFile(i int) (string, error) { return r.inner.TensorsNameInFile(i) }

// NormalsNameInFile is ScalarsNameInFile's normals-kind counterpart.
func (r *Reader) NormalsNameInFile(i int) (string, error) { return r.inner.NormalsNameInFile(i) }

// TCoordsNameInFile is ScalarsNameInFile's tcoords-kind counterpart.
func (r *Reader) TCoordsNameInFile(i int) (string, error) { return r.inner.TCoordsNameInFile(i) }

// FieldNameInFile is ScalarsNameInFile's field-kind counterpart.
func (r *Reader) FieldNameInFile(i int) (string, error) { return r.inner.FieldNameInFile(i) }
