package reader

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pardi/vtklegacy/arrayio"
	"github.com/pardi/vtklegacy/diag"
	"github.com/pardi/vtklegacy/errs"
	"github.com/pardi/vtklegacy/fielddata"
	"github.com/pardi/vtklegacy/strcode"
	"github.com/pardi/vtklegacy/token"
	"github.com/pardi/vtklegacy/vtype"
)

// keyword is one recognized attribute-section header, lowercased.
type keyword string

const (
	kwScalars   keyword = "scalars"
	kwVectors   keyword = "vectors"
	kwTensors6  keyword = "tensors6"
	kwTensors   keyword = "tensors"
	kwNormals   keyword = "normals"
	kwTCoords   keyword = "texture_coordinates"
	kwGlobalIDs keyword = "global_ids"
	kwPedigree  keyword = "pedigree_ids"
	kwEdgeFlags keyword = "edge_flags"
	kwColorScal keyword = "color_scalars"
	kwLookup    keyword = "lookup_table"
	kwField     keyword = "field"
	kwPointData keyword = "point_data"
	kwCellData  keyword = "cell_data"
	kwVertData  keyword = "vertex_data"
	kwEdgeData  keyword = "edge_data"
)

func parseKeyword(tok string) (keyword, bool) {
	kw := keyword(strings.ToLower(tok))

	switch kw {
	case kwScalars, kwVectors, kwTensors6, kwTensors, kwNormals, kwTCoords,
		kwGlobalIDs, kwPedigree, kwEdgeFlags, kwColorScal, kwLookup, kwField,
		kwPointData, kwCellData, kwVertData, kwEdgeData:
		return kw, true
	default:
		return "", false
	}
}

// dataScope maps a *_data keyword to its associated scope.
func (k keyword) dataScope() (vtype.Scope, bool) {
	switch k {
	case kwPointData:
		return vtype.Point, true
	case kwCellData:
		return vtype.Cell, true
	case kwVertData:
		return vtype.Vertex, true
	case kwEdgeData:
		return vtype.Edge, true
	default:
		return vtype.ScopeUnknown, false
	}
}

// ReadAttributes drives the attribute dispatcher (§4.5) for one
// scope/count pair, reading keyword sections from tok and populating
// sink. It returns once it peeks a token that is not a recognized
// attribute keyword for the current scope — including a sibling
// POINT_DATA/CELL_DATA/VERTEX_DATA/EDGE_DATA keyword, which introduces
// a new scope and belongs to the caller, not this loop — or end of
// input; in either case the stream position is left unconsumed at
// that point for the caller (ReadDataset, or Reader at the top level)
// to inspect.
func ReadAttributes(tok *token.Tokenizer, scope vtype.Scope, n int, cfg *Config, sink AttributeSink, fileVersion float64, encoding vtype.Encoding) error {
	dlog := cfg.diagLog()

	for {
		raw, err := tok.PeekToken()
		if err != nil {
			return nil // clean end of input
		}

		kw, ok := parseKeyword(raw)
		if !ok {
			return nil
		}

		if _, isData := kw.dataScope(); isData {
			return nil
		}

		if _, err := tok.ReadToken(); err != nil {
			return err
		}

		if err := dispatchKeyword(tok, kw, scope, n, cfg, sink, fileVersion, encoding, dlog); err != nil {
			return err
		}
	}
}

// ReadDataset drives the top-level scope dispatcher: it consumes
// POINT_DATA/CELL_DATA/VERTEX_DATA/EDGE_DATA keywords in sequence,
// each introducing a new association count, and delegates the
// section's attribute keywords to ReadAttributes against that scope's
// own Attributes within ds. It stops at the first token that is not
// one of those four keywords, leaving it unconsumed.
func ReadDataset(tok *token.Tokenizer, cfg *Config, ds *Dataset, fileVersion float64, encoding vtype.Encoding) error {
	for {
		raw, err := tok.PeekToken()
		if err != nil {
			return nil
		}

		kw, ok := parseKeyword(raw)
		if !ok {
			return nil
		}

		scope, isData := kw.dataScope()
		if !isData {
			return nil
		}

		if _, err := tok.ReadToken(); err != nil {
			return err
		}

		n, err := tok.ReadInt64()
		if err != nil {
			return err
		}

		if err := ReadAttributes(tok, scope, int(n), cfg, ds.For(scope), fileVersion, encoding); err != nil {
			return err
		}
	}
}

func dispatchKeyword(tok *token.Tokenizer, kw keyword, scope vtype.Scope, n int, cfg *Config, sink AttributeSink, fileVersion float64, encoding vtype.Encoding, dlog *diag.Log) error {
	switch kw {
	case kwScalars:
		return readScalars(tok, scope, n, cfg, sink, encoding, dlog)
	case kwVectors:
		return readVectorLike(tok, scope, n, 3, SlotVectors, cfg, sink, encoding, dlog)
	case kwNormals:
		return readVectorLike(tok, scope, n, 3, SlotNormals, cfg, sink, encoding, dlog)
	case kwTensors:
		return readVectorLike(tok, scope, n, 9, SlotTensors, cfg, sink, encoding, dlog)
	case kwTensors6:
		return readVectorLike(tok, scope, n, 6, SlotTensors, cfg, sink, encoding, dlog)
	case kwTCoords:
		return readTCoords(tok, scope, n, cfg, sink, encoding, dlog)
	case kwGlobalIDs:
		return readSingleComponentSlot(tok, scope, n, SlotGlobalIDs, cfg, sink, encoding, dlog)
	case kwPedigree:
		return readSingleComponentSlot(tok, scope, n, SlotPedigreeIDs, cfg, sink, encoding, dlog)
	case kwEdgeFlags:
		if scope != vtype.Point {
			return fmt.Errorf("%w: edge_flags outside point scope", errs.ErrUnsupportedAttribute)
		}

		return readSingleComponentSlot(tok, scope, n, SlotEdgeFlag, cfg, sink, encoding, dlog)
	case kwColorScal:
		return readColorScalars(tok, scope, n, cfg, sink, encoding, dlog)
	case kwLookup:
		return readStandaloneLookupTable(tok, cfg, sink, encoding)
	case kwField:
		return readFieldSection(tok, scope, fileVersion, cfg, sink, encoding, dlog)
	default:
		return fmt.Errorf("%w: %s", errs.ErrUnsupportedAttribute, kw)
	}
}

// readScalars implements the SCALARS section: NAME TYPE [K]
// followed by either "LOOKUP_TABLE name" or, if absent, the array
// payload directly — the table name then defaults to "default" (§2.3).
// K is only recognized as a component count when a literal
// LOOKUP_TABLE token immediately follows it; otherwise the token is
// left alone as the first data value, since a bare optional integer
// cannot otherwise be told apart from numeric array data.
func readScalars(tok *token.Tokenizer, scope vtype.Scope, n int, cfg *Config, sink AttributeSink, encoding vtype.Encoding, dlog *diag.Log) error {
	rawName, err := tok.ReadToken()
	if err != nil {
		return err
	}

	typeTag, err := tok.ReadToken()
	if err != nil {
		return err
	}

	components := 1
	lutName := "default"

	// The token right after TYPE is ambiguous on its own: it might be
	// the optional component count K, the literal LOOKUP_TABLE
	// keyword, or — if both are omitted — already the first data
	// value. Two-token lookahead resolves it without committing a
	// read: K is only K when a literal LOOKUP_TABLE token follows it.
	next, nextErr := tok.PeekToken()

	switch {
	case nextErr == nil && strings.EqualFold(next, string(kwLookup)):
		if _, err := tok.ReadToken(); err != nil {
			return err
		}

		rawLut, err := tok.ReadToken()
		if err != nil {
			return err
		}

		lutName = strcode.DecodeString(rawLut)

	case nextErr == nil:
		if following, err := tok.PeekTokenAt(1); err == nil && strings.EqualFold(following, string(kwLookup)) {
			v, err := strconv.Atoi(next)
			if err != nil {
				return fmt.Errorf("%w: scalars component count %q", errs.ErrInvalidComponentCount, next)
			}

			components = v

			if _, err := tok.ReadToken(); err != nil { // consume K
				return err
			}

			if _, err := tok.ReadToken(); err != nil { // consume LOOKUP_TABLE
				return err
			}

			rawLut, err := tok.ReadToken()
			if err != nil {
				return err
			}

			lutName = strcode.DecodeString(rawLut)
		}
		// Otherwise neither K nor LOOKUP_TABLE is present: leave both
		// at their defaults and leave next unconsumed — it is the
		// first data value.
	}

	if components < 1 {
		return errs.ErrInvalidComponentCount
	}

	name := strcode.DecodeString(rawName)

	arr, err := arrayio.Read(tok, name, typeTag, n, components, encoding, dlog)
	if err != nil {
		return err
	}

	assignToSlot(scope, SlotScalars, arr, cfg, sink)

	// lutName itself is not consumed further here: the table payload,
	// if any, arrives as a standalone LOOKUP_TABLE record elsewhere in
	// the section and attaches to whichever scope's Scalars slot is
	// current at that point (§4.6); "default" never has one.
	_ = lutName

	return nil
}

func assignToSlot(scope vtype.Scope, slot Slot, arr *arrayio.Array, cfg *Config, sink AttributeSink) {
	if sink.Filled(slot) {
		if slot.hasReadAllExtras() && cfg.readAll(slot, scope) {
			sink.Extra(arr.Name, arr)
		}

		return
	}

	if !cfg.allows(slot, scope, arr.Name) {
		if slot.hasReadAllExtras() && cfg.readAll(slot, scope) {
			sink.Extra(arr.Name, arr)
		}

		return
	}

	sink.Fill(slot, arr)
}

func readVectorLike(tok *token.Tokenizer, scope vtype.Scope, n, components int, slot Slot, cfg *Config, sink AttributeSink, encoding vtype.Encoding, dlog *diag.Log) error {
	rawName, err := tok.ReadToken()
	if err != nil {
		return err
	}

	typeTag, err := tok.ReadToken()
	if err != nil {
		return err
	}

	arr, err := arrayio.Read(tok, strcode.DecodeString(rawName), typeTag, n, components, encoding, dlog)
	if err != nil {
		return err
	}

	assignToSlot(scope, slot, arr, cfg, sink)

	return nil
}

func readTCoords(tok *token.Tokenizer, scope vtype.Scope, n int, cfg *Config, sink AttributeSink, encoding vtype.Encoding, dlog *diag.Log) error {
	rawName, err := tok.ReadToken()
	if err != nil {
		return err
	}

	dimTok, err := tok.ReadToken()
	if err != nil {
		return err
	}

	dim, err := strconv.Atoi(dimTok)
	if err != nil {
		return fmt.Errorf("%w: texture coordinate dimension %q", errs.ErrMalformedNumber, dimTok)
	}

	if dim < 1 || dim > 3 {
		return fmt.Errorf("%w: %d", errs.ErrDimOutOfRange, dim)
	}

	typeTag, err := tok.ReadToken()
	if err != nil {
		return err
	}

	arr, err := arrayio.Read(tok, strcode.DecodeString(rawName), typeTag, n, dim, encoding, dlog)
	if err != nil {
		return err
	}

	assignToSlot(scope, SlotTCoords, arr, cfg, sink)

	return nil
}

func readSingleComponentSlot(tok *token.Tokenizer, scope vtype.Scope, n int, slot Slot, cfg *Config, sink AttributeSink, encoding vtype.Encoding, dlog *diag.Log) error {
	return readVectorLike(tok, scope, n, 1, slot, cfg, sink, encoding, dlog)
}

// readColorScalars implements COLOR_SCALARS NAME K: binary payload is
// K*N raw bytes, ASCII payload is K*N floats in [0,1] quantized to u8
// by round(v*255) (§4.5).
func readColorScalars(tok *token.Tokenizer, scope vtype.Scope, n int, cfg *Config, sink AttributeSink, encoding vtype.Encoding, dlog *diag.Log) error {
	rawName, err := tok.ReadToken()
	if err != nil {
		return err
	}

	kTok, err := tok.ReadToken()
	if err != nil {
		return err
	}

	k, err := strconv.Atoi(kTok)
	if err != nil || k < 1 {
		return fmt.Errorf("%w: color_scalars component count %q", errs.ErrInvalidComponentCount, kTok)
	}

	name := strcode.DecodeString(rawName)
	arr := &arrayio.Array{Name: name, Type: vtype.UInt8, Components: k, Tuples: n}
	total := n * k

	if encoding == vtype.BINARY {
		if _, err := tok.ReadLine(); err != nil {
			return err
		}

		buf, err := tok.ReadBlock(total)
		if err != nil {
			return err
		}

		arr.UInt8Values = append([]uint8(nil), buf...)
	} else {
		arr.UInt8Values = make([]uint8, total)

		for i := 0; i < total; i++ {
			v, err := tok.ReadFloat64()
			if err != nil {
				return err
			}

			arr.UInt8Values[i] = floatUnitToByte(v)
		}
	}

	assignToSlot(scope, SlotColorScalars, arr, cfg, sink)

	return nil
}

// readStandaloneLookupTable implements a standalone "LOOKUP_TABLE name
// size" record (§4.6). The table is always read off the wire in full,
// but attachment to the scope's current Scalars array is skipped —
// matching the original's ReadLutData three-condition gate — when
// there is no Scalars array to attach to, or when a configured
// table-name filter rejects this table's name.
func readStandaloneLookupTable(tok *token.Tokenizer, cfg *Config, sink AttributeSink, encoding vtype.Encoding) error {
	rawName, err := tok.ReadToken()
	if err != nil {
		return err
	}

	sizeTok, err := tok.ReadToken()
	if err != nil {
		return err
	}

	size, err := strconv.Atoi(sizeTok)
	if err != nil {
		return fmt.Errorf("%w: lookup table size %q", errs.ErrMalformedNumber, sizeTok)
	}

	name := strcode.DecodeString(rawName)

	lut, err := ReadLookupTable(tok, name, size, encoding)
	if err != nil {
		return err
	}

	if sink.Filled(SlotScalars) && cfg.lutAllows(name) {
		sink.AttachLookupTable(lut)
	}

	return nil
}

func readFieldSection(tok *token.Tokenizer, scope vtype.Scope, fileVersion float64, cfg *Config, sink AttributeSink, encoding vtype.Encoding, dlog *diag.Log) error {
	rawName, err := tok.ReadToken()
	if err != nil {
		return err
	}

	numTok, err := tok.ReadToken()
	if err != nil {
		return err
	}

	numArrays, err := strconv.Atoi(numTok)
	if err != nil {
		return fmt.Errorf("%w: field array count %q", errs.ErrMalformedNumber, numTok)
	}

	field, err := fielddata.Read(tok, strcode.DecodeString(rawName), numArrays, scope, fileVersion, encoding, cfg.fieldFilterOrDefault(), dlog)
	if err != nil {
		return err
	}

	sink.AddField(field)

	return nil
}
