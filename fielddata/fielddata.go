// Package fielddata implements the FIELD section reader (§4.10): a
// named container of zero or more independently-typed arrays, with
// NULL_ARRAY slots, duplicate-name tracking, a name/read-all filter,
// and the version-gated ghost-level rename.
package fielddata

import (
	"strings"

	"github.com/pardi/vtklegacy/arrayio"
	"github.com/pardi/vtklegacy/diag"
	"github.com/pardi/vtklegacy/internal/collision"
	"github.com/pardi/vtklegacy/strcode"
	"github.com/pardi/vtklegacy/token"
	"github.com/pardi/vtklegacy/vtype"
)

// nullArrayToken is the literal on-disk placeholder for an absent
// slot in a field section.
const nullArrayToken = "NULL_ARRAY"

// legacyGhostName is the pre-version-4 on-disk array name for the
// ghost-level byte array.
const legacyGhostName = "vtkGhostLevels"

// canonicalGhostName is the name every ghost array is normalized to,
// regardless of the file version it was read from.
const canonicalGhostName = "vtkGhostType"

// ghostMaskValue is the byte value a nonzero legacy ghost-level entry
// is remapped to. VTK's DUPLICATEPOINT and DUPLICATECELL mask bits
// are both 1, so a single constant covers either scope.
const ghostMaskValue = 0x01

// Filter decides whether an array named name should be inserted into
// the field container. ReadAll, when true, overrides a false Accept
// result.
type Filter struct {
	Accept  func(name string) bool
	ReadAll bool
}

func (f Filter) allows(name string) bool {
	if f.ReadAll {
		return true
	}

	if f.Accept == nil {
		return true
	}

	return f.Accept(name)
}

// Field is the container populated by Read: Name is the field
// section's own name (the first header token, not an array name),
// and Arrays holds every array that was inserted, in the order they
// appeared on the wire (later arrays with a duplicate name still
// appended, matching the original's map-insert-overwrites by-name
// resolution).
type Field struct {
	Name   string
	Arrays []*arrayio.Array
}

// ByName returns the last-inserted array with the given name, or nil
// if none was inserted.
func (f *Field) ByName(name string) *arrayio.Array {
	var found *arrayio.Array
	for _, a := range f.Arrays {
		if a.Name == name {
			found = a
		}
	}

	return found
}

// Read parses a field section's header ("<name> <numArrays>", already
// split by the caller into name/numArrays) and its numArrays array
// records, per §4.10. scope and fileVersion drive the ghost-level
// rename; filter gates which arrays are kept.
func Read(tok *token.Tokenizer, name string, numArrays int, scope vtype.Scope, fileVersion float64, encoding vtype.Encoding, filter Filter, dlog *diag.Log) (*Field, error) {
	field := &Field{Name: name}
	dups := collision.NewTracker()

	for i := 0; i < numArrays; i++ {
		rawName, err := tok.ReadToken()
		if err != nil {
			return nil, err
		}

		if rawName == nullArrayToken {
			continue
		}

		arrName := strcode.DecodeString(rawName)

		components, err := tok.ReadInt64()
		if err != nil {
			return nil, err
		}

		tuples, err := tok.ReadInt64()
		if err != nil {
			return nil, err
		}

		typeTag, err := tok.ReadToken()
		if err != nil {
			return nil, err
		}

		arr, err := arrayio.Read(tok, arrName, typeTag, int(tuples), int(components), encoding, dlog)
		if err != nil {
			return nil, err
		}

		if isLegacyGhostCandidate(arr, scope, fileVersion) {
			applyGhostRename(arr, scope)
		}

		if dups.Track(arr.Name) {
			dlog.Warnf("fielddata", "duplicate array name %q in field %q; later array wins by-name lookups", arr.Name, name)
		}

		if !filter.allows(arr.Name) {
			continue
		}

		field.Arrays = append(field.Arrays, arr)
	}

	return field, nil
}

// isLegacyGhostCandidate reports whether arr matches every condition
// for the pre-version-4 ghost-level rename: scope is POINT or CELL,
// the file's major version is below 4, the array is u8 with a single
// component, and its on-disk name is the legacy ghost-levels name.
func isLegacyGhostCandidate(arr *arrayio.Array, scope vtype.Scope, fileVersion float64) bool {
	if scope != vtype.Point && scope != vtype.Cell {
		return false
	}

	if fileVersion >= 4 {
		return false
	}

	if arr.Type != vtype.UInt8 || arr.Components != 1 {
		return false
	}

	return arr.Name == legacyGhostName
}

// applyGhostRename renames arr to the canonical ghost name and
// remaps every nonzero byte to ghostMaskValue, per §4.10/§8.
func applyGhostRename(arr *arrayio.Array, scope vtype.Scope) {
	arr.Name = canonicalGhostName

	for i, b := range arr.UInt8Values {
		if b != 0 {
			arr.UInt8Values[i] = ghostMaskValue
		}
	}
}

// IsNullArray reports whether tok is the literal placeholder for an
// absent field-array slot. Exposed for callers that peek a field
// header's array-name token themselves before delegating to Read.
func IsNullArray(tok string) bool {
	return strings.TrimSpace(tok) == nullArrayToken
}
