package reader

import (
	"log"

	"github.com/pardi/vtklegacy/diag"
	"github.com/pardi/vtklegacy/fielddata"
	opt "github.com/pardi/vtklegacy/internal/options"
	"github.com/pardi/vtklegacy/vtype"
)

// filterSpec is one slot's accept predicate and read-all toggle
// within a single scope (§4.5).
type filterSpec struct {
	accept   func(name string) bool
	readAll  bool
	hasFilt  bool
}

// Config collects a Reader's parse-time configuration: per-scope,
// per-slot filters and read-all toggles, a field-data filter, and a
// diagnostic sink. Build one with NewConfig and Option values from
// this package.
type Config struct {
	scalars      map[vtype.Scope]*filterSpec
	vectors      map[vtype.Scope]*filterSpec
	normals      map[vtype.Scope]*filterSpec
	tensors      map[vtype.Scope]*filterSpec
	tcoords      map[vtype.Scope]*filterSpec
	colorScalars map[vtype.Scope]*filterSpec
	globalIDs    map[vtype.Scope]*filterSpec
	pedigreeIDs  map[vtype.Scope]*filterSpec
	edgeFlag     map[vtype.Scope]*filterSpec

	fieldFilter fielddata.Filter

	lutFilter  func(name string) bool
	hasLutFilt bool

	Log *log.Logger
}

// Option configures a Config. Values are produced by the With*
// functions in this package and passed to NewConfig.
type Option = opt.Option[*Config]

// NewConfig builds a Config from zero or more Options, in order.
func NewConfig(options ...Option) (*Config, error) {
	cfg := &Config{
		scalars:      make(map[vtype.Scope]*filterSpec),
		vectors:      make(map[vtype.Scope]*filterSpec),
		normals:      make(map[vtype.Scope]*filterSpec),
		tensors:      make(map[vtype.Scope]*filterSpec),
		tcoords:      make(map[vtype.Scope]*filterSpec),
		colorScalars: make(map[vtype.Scope]*filterSpec),
		globalIDs:    make(map[vtype.Scope]*filterSpec),
		pedigreeIDs:  make(map[vtype.Scope]*filterSpec),
		edgeFlag:     make(map[vtype.Scope]*filterSpec),
	}

	if err := opt.Apply(cfg, options...); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) specFor(slot Slot, scope vtype.Scope) *filterSpec {
	var table map[vtype.Scope]*filterSpec

	switch slot {
	case SlotScalars:
		table = c.scalars
	case SlotVectors:
		table = c.vectors
	case SlotNormals:
		table = c.normals
	case SlotTensors:
		table = c.tensors
	case SlotTCoords:
		table = c.tcoords
	case SlotColorScalars:
		table = c.colorScalars
	case SlotGlobalIDs:
		table = c.globalIDs
	case SlotPedigreeIDs:
		table = c.pedigreeIDs
	case SlotEdgeFlag:
		table = c.edgeFlag
	default:
		return nil
	}

	spec, ok := table[scope]
	if !ok {
		spec = &filterSpec{}
		table[scope] = spec
	}

	return spec
}

// allows reports whether a named array assigned to slot in scope
// passes that slot's filter. A slot with no configured filter allows
// every name.
func (c *Config) allows(slot Slot, scope vtype.Scope, name string) bool {
	table := c.tableFor(slot)
	if table == nil {
		return true
	}

	spec, ok := table[scope]
	if !ok || !spec.hasFilt {
		return true
	}

	return spec.accept(name)
}

// readAll reports whether slot's read-all toggle is enabled for scope.
func (c *Config) readAll(slot Slot, scope vtype.Scope) bool {
	table := c.tableFor(slot)
	if table == nil {
		return false
	}

	spec, ok := table[scope]
	if !ok {
		return false
	}

	return spec.readAll
}

func (c *Config) tableFor(slot Slot) map[vtype.Scope]*filterSpec {
	switch slot {
	case SlotScalars:
		return c.scalars
	case SlotVectors:
		return c.vectors
	case SlotNormals:
		return c.normals
	case SlotTensors:
		return c.tensors
	case SlotTCoords:
		return c.tcoords
	case SlotColorScalars:
		return c.colorScalars
	case SlotGlobalIDs:
		return c.globalIDs
	case SlotPedigreeIDs:
		return c.pedigreeIDs
	case SlotEdgeFlag:
		return c.edgeFlag
	default:
		return nil
	}
}

func (c *Config) logger() *log.Logger {
	if c.Log != nil {
		return c.Log
	}

	return log.Default()
}

// diagLog builds the diag.Log a Reader's parse pass reports through,
// honoring WithLogger if set.
func (c *Config) diagLog() *diag.Log {
	return diag.New(c.logger())
}

// fieldFilterOrDefault returns the configured FIELD-keyword filter. A
// zero-value Filter already accepts every array (see fielddata).
func (c *Config) fieldFilterOrDefault() fielddata.Filter {
	return c.fieldFilter
}

// lutAllows reports whether a standalone LOOKUP_TABLE record named
// name passes the configured table-name filter. No configured filter
// allows every name (§4.6).
func (c *Config) lutAllows(name string) bool {
	if !c.hasLutFilt {
		return true
	}

	return c.lutFilter(name)
}

// WithFilter restricts slot, in scope, to arrays whose name satisfies
// accept; arrays that fail the predicate are dropped unless the
// slot's read-all toggle is also enabled (§4.5).
func WithFilter(slot Slot, scope vtype.Scope, accept func(name string) bool) Option {
	return opt.NoError[*Config](func(c *Config) {
		spec := c.specFor(slot, scope)
		if spec == nil {
			return
		}

		spec.accept = accept
		spec.hasFilt = true
	})
}

// WithReadAll enables or disables slot's read-all toggle in scope: a
// filtered-out array is kept as a named extra instead of dropped,
// except for GlobalIds/PedigreeIds/EdgeFlag which never promote
// extras (§4.5).
func WithReadAll(slot Slot, scope vtype.Scope, enabled bool) Option {
	return opt.NoError[*Config](func(c *Config) {
		spec := c.specFor(slot, scope)
		if spec == nil {
			return
		}

		spec.readAll = enabled
	})
}

// WithLookupTableFilter restricts standalone LOOKUP_TABLE attachment
// to tables whose name satisfies accept (§4.6). A table that fails
// the predicate, or one read while the current scope's Scalars slot
// is unfilled, is still read off the wire but never attached —
// matching the original reader's ReadLutData gate.
func WithLookupTableFilter(accept func(name string) bool) Option {
	return opt.NoError[*Config](func(c *Config) {
		c.lutFilter = accept
		c.hasLutFilt = true
	})
}

// WithFieldFilter sets the FIELD-keyword filter shared by every scope
// (§4.10).
func WithFieldFilter(filter fielddata.Filter) Option {
	return opt.NoError[*Config](func(c *Config) {
		c.fieldFilter = filter
	})
}

// WithLogger overrides the *log.Logger diagnostics are written to.
// The default is log.Default(), matching diag.Log's own fallback.
func WithLogger(l *log.Logger) Option {
	return opt.NoError[*Config](func(c *Config) {
		c.Log = l
	})
}
