// Package infokey implements the information-key deserializer (§4.7):
// a registry of well-known typed keys, keyed by an xxhash64 of their
// location and name for O(1) lookup, and a reader that decodes the
// typed key/value sidecar appended to an array's METADATA tail.
//
// The original format's registry is self-populated at process start
// by many concrete VTK classes this module does not depend on (out
// of scope); this package instead ships a small built-in set of the
// well-known keys and exposes RegisterInformationKey so an embedding
// application can extend it, mirroring the original's extensibility
// without the excluded collaborators.
package infokey

import (
	"strings"

	"github.com/pardi/vtklegacy/diag"
	"github.com/pardi/vtklegacy/internal/hash"
	"github.com/pardi/vtklegacy/strcode"
	"github.com/pardi/vtklegacy/token"
)

// ValueKind is the declared value type of an information key (§3).
type ValueKind uint8

const (
	Unknown ValueKind = iota
	Double
	DoubleVector
	IDType
	Int
	IntVector
	String
	StringVector
	UnsignedLong
)

// Key identifies one registered information key.
type Key struct {
	Name     string
	Location string
	Kind     ValueKind
}

// Entry is one deserialized key/value pair attached to an array.
type Entry struct {
	Key     Key
	Double  float64
	Doubles []float64
	Int64   int64
	Int64s  []int64
	Str     string
	Strs    []string
}

// Set is the ordered collection of information entries attached to
// one array's METADATA tail.
type Set struct {
	entries []Entry
}

func (s *Set) add(e Entry) {
	s.entries = append(s.entries, e)
}

// Entries returns the deserialized entries in encounter order.
func (s *Set) Entries() []Entry {
	if s == nil {
		return nil
	}

	return s.entries
}

var registry = map[uint64]Key{}

func keyHash(location, name string) uint64 {
	return hash.ID(location + "\x00" + name)
}

// RegisterInformationKey adds or replaces a key in the process-wide
// registry. It is safe to call at package init time or from an
// embedding application before any parse begins; it is not
// synchronized for concurrent use during a parse, matching §5's
// "read-only during a parse" contract for the registry.
func RegisterInformationKey(name, location string, kind ValueKind) {
	registry[keyHash(location, name)] = Key{Name: name, Location: location, Kind: kind}
}

func lookup(name, location string) (Key, bool) {
	k, ok := registry[keyHash(location, name)]
	return k, ok
}

func init() {
	// Well-known keys reduced from the original's concrete-class
	// registrations (§2.3) to their generic {name, location, kind}
	// shape.
	RegisterInformationKey("L", "vtkDataArray", String)
	RegisterInformationKey("DataTypeRangeKey", "vtkDataArray", DoubleVector)
	RegisterInformationKey("COMPONENT_RANGE", "vtkDataArray", DoubleVector)
	RegisterInformationKey("PER_FINITE_COMPONENT_RANGE", "vtkDataArray", DoubleVector)
	RegisterInformationKey("PER_COMPONENT_RANGE", "vtkDataArray", DoubleVector)
	RegisterInformationKey("UNITS_LABEL", "vtkDataArray", String)
	RegisterInformationKey("FIELD_ARRAY_TYPE", "vtkDataObject", Int)
	RegisterInformationKey("FIELD_ASSOCIATION", "vtkDataObject", Int)
	RegisterInformationKey("FIELD_ACTIVE_ATTRIBUTE", "vtkDataObject", Int)
	RegisterInformationKey("FIELD_NUMBER_OF_COMPONENTS", "vtkDataObject", Int)
	RegisterInformationKey("FIELD_NUMBER_OF_TUPLES", "vtkDataObject", IDType)
	RegisterInformationKey("FIELD_NAME", "vtkDataObject", String)
	RegisterInformationKey("MAXIMUM_NUMBER_OF_PIECES", "vtkDataObject", Int)
	RegisterInformationKey("NAMES", "vtkAbstractArray", StringVector)
	RegisterInformationKey("PEDIGREE_IDS", "vtkAbstractArray", Int)
	RegisterInformationKey("NUMBER_OF_GHOST_LEVELS", "vtkDataObject", UnsignedLong)
}

// Deserialize reads n typed key/value entries following §4.7's
// contract, using dlog for the non-fatal warnings on unknown keys
// and malformed entries (§7).
func Deserialize(tok *token.Tokenizer, n int, dlog *diag.Log) (*Set, error) {
	set := &Set{}

	for i := 0; i < n; i++ {
		if err := readOne(tok, set, dlog); err != nil {
			return set, err
		}
	}

	return set, nil
}

func readOne(tok *token.Tokenizer, set *Set, dlog *diag.Log) error {
	kw, err := tok.ReadToken()
	if err != nil {
		return err
	}

	if !strings.EqualFold(kw, "NAME") {
		dlog.Warnf("infokey", "malformed information entry: expected NAME, got %q", kw)
		return nil
	}

	rawName, err := tok.ReadToken()
	if err != nil {
		return err
	}

	locKw, err := tok.ReadToken()
	if err != nil {
		return err
	}

	if !strings.EqualFold(locKw, "LOCATION") {
		dlog.Warnf("infokey", "malformed information entry: expected LOCATION, got %q", locKw)
		return nil
	}

	loc, err := tok.ReadToken()
	if err != nil {
		return err
	}

	name := strcode.DecodeString(rawName)

	key, ok := lookup(name, loc)
	if !ok {
		dlog.Warnf("infokey", "unknown information key %q at location %q", name, loc)
		return skipDataLine(tok)
	}

	switch key.Kind {
	case Double, Int, IDType, UnsignedLong:
		return readScalar(tok, set, key)
	case DoubleVector, IntVector:
		return readVector(tok, set, key)
	case String:
		return readString(tok, set, key)
	case StringVector:
		return readStringVector(tok, set, key)
	default:
		dlog.Warnf("infokey", "unrecognized value type for key %q", name)
		return skipDataLine(tok)
	}
}

func expectData(tok *token.Tokenizer) error {
	kw, err := tok.ReadToken()
	if err != nil {
		return err
	}

	if !strings.EqualFold(kw, "DATA") {
		return nil
	}

	return nil
}

func skipDataLine(tok *token.Tokenizer) error {
	_, err := tok.ReadLine()
	return err
}

func readScalar(tok *token.Tokenizer, set *Set, key Key) error {
	if err := expectData(tok); err != nil {
		return err
	}

	switch key.Kind {
	case Double:
		v, err := tok.ReadFloat64()
		if err != nil {
			return err
		}

		set.add(Entry{Key: key, Double: v})
	default:
		v, err := tok.ReadInt64()
		if err != nil {
			return err
		}

		set.add(Entry{Key: key, Int64: v})
	}

	return nil
}

func readVector(tok *token.Tokenizer, set *Set, key Key) error {
	if err := expectData(tok); err != nil {
		return err
	}

	n, err := tok.ReadInt64()
	if err != nil {
		return err
	}

	entry := Entry{Key: key}
	if key.Kind == DoubleVector {
		entry.Doubles = make([]float64, 0, n)
		for i := int64(0); i < n; i++ {
			v, err := tok.ReadFloat64()
			if err != nil {
				return err
			}

			entry.Doubles = append(entry.Doubles, v)
		}
	} else {
		entry.Int64s = make([]int64, 0, n)
		for i := int64(0); i < n; i++ {
			v, err := tok.ReadInt64()
			if err != nil {
				return err
			}

			entry.Int64s = append(entry.Int64s, v)
		}
	}

	set.add(entry)

	return nil
}

func readString(tok *token.Tokenizer, set *Set, key Key) error {
	if err := expectData(tok); err != nil {
		return err
	}

	raw, err := tok.ReadToken()
	if err != nil {
		return err
	}

	set.add(Entry{Key: key, Str: strcode.DecodeString(raw)})

	return nil
}

func readStringVector(tok *token.Tokenizer, set *Set, key Key) error {
	if err := expectData(tok); err != nil {
		return err
	}

	n, err := tok.ReadInt64()
	if err != nil {
		return err
	}

	strs := make([]string, 0, n)
	for i := int64(0); i < n; i++ {
		raw, err := tok.ReadToken()
		if err != nil {
			// On any failure, the accumulated value is discarded
			// rather than stored partially (§4.7).
			return nil
		}

		strs = append(strs, strcode.DecodeString(raw))
	}

	set.add(Entry{Key: key, Strs: strs})

	return nil
}
