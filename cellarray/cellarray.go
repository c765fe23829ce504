// Package cellarray implements the two cell-array wire
// representations: the modern offsets/connectivity form (§4.8) and
// the legacy flat-int form with optional piece-window skipping
// (§4.9).
package cellarray

import (
	"encoding/binary"
	"strings"

	"github.com/pardi/vtklegacy/arrayio"
	"github.com/pardi/vtklegacy/errs"
	"github.com/pardi/vtklegacy/token"
	"github.com/pardi/vtklegacy/vtype"
	"github.com/pardi/vtklegacy/wireorder"
)

// CellArray is the modern {offsets, connectivity} representation
// (§3, §4.8). The two arrays reference the array reader's output
// directly rather than being copied.
type CellArray struct {
	Offsets      *arrayio.Array
	Connectivity *arrayio.Array
}

// ReadModern reads the "<offsets-size> <conn-size>" header line's
// token pair (already split by the caller) and the two typed integer
// arrays that follow, per §4.8. offsetsSize < 1 yields an empty,
// non-nil CellArray.
func ReadModern(tok *token.Tokenizer, offsetsSize, connSize int) (*CellArray, error) {
	if offsetsSize < 1 {
		return &CellArray{}, nil
	}

	offsets, err := readNamedIntegerSection(tok, "OFFSETS", offsetsSize)
	if err != nil {
		return nil, err
	}

	conn, err := readNamedIntegerSection(tok, "CONNECTIVITY", connSize)
	if err != nil {
		return nil, err
	}

	return &CellArray{Offsets: offsets, Connectivity: conn}, nil
}

func readNamedIntegerSection(tok *token.Tokenizer, keyword string, size int) (*arrayio.Array, error) {
	kw, err := tok.ReadToken()
	if err != nil {
		return nil, err
	}

	if !strings.EqualFold(kw, keyword) {
		return nil, errs.ErrSchemaMismatch
	}

	typeTag, err := tok.ReadToken()
	if err != nil {
		return nil, err
	}

	et, ok := vtype.ParseTag(typeTag)
	if !ok || !et.IsInteger() {
		return nil, errs.ErrNonNumericCellArray
	}

	arr, err := arrayio.Read(tok, keyword, typeTag, size, 1, vtype.ASCII, nil)
	if err != nil {
		return nil, err
	}

	return arr, nil
}

// PieceWindow is a contiguous sub-range {skip-before, read, skip-after}
// used by the legacy reader to extract one partition of a flat cell
// list (§4.9, GLOSSARY).
type PieceWindow struct {
	Skip1 int
	Read2 int
	Skip3 int
}

// Total returns Skip1+Read2+Skip3, the number of cell groups the
// window spans.
func (p PieceWindow) Total() int {
	return p.Skip1 + p.Read2 + p.Skip3
}

// LegacyCellArray is the flat "K, K ids, K, K ids, ..." representation
// read by ReadLegacy; Cells holds only the piece-window's Read2 span
// (each retained group including its leading count, so the result is
// itself a valid flat cell structure), or the whole structure when no
// window is given.
type LegacyCellArray struct {
	Cells []int32
}

// ReadLegacy reads S int32 values (ASCII whitespace-separated, or one
// big-endian binary block of S*4 bytes), per §4.9. When window is
// non-nil, it walks the flat "count, ids..." structure in cell-group
// units, decrementing Skip1 groups, copying Read2 groups (count
// included), then discarding Skip3 groups — window.Skip1/Read2/Skip3
// count cell groups, not raw ints, matching
// vtkDataReader::ReadCellsLegacy's skip1/read2/skip3 parameters
// (original_source/IO/Legacy/vtkDataReader.cxx); spec.md's "S =
// skip1+read2+skip3" equates groups with a flat int count only by a
// terse simplification and is not enforced here — see DESIGN.md.
func ReadLegacy(tok *token.Tokenizer, total int, encoding vtype.Encoding, window *PieceWindow) (*LegacyCellArray, error) {
	raw, err := readFlatInts(tok, total, encoding)
	if err != nil {
		return nil, err
	}

	if window == nil {
		return &LegacyCellArray{Cells: raw}, nil
	}

	return &LegacyCellArray{Cells: applyPieceWindow(raw, *window)}, nil
}

func readFlatInts(tok *token.Tokenizer, total int, encoding vtype.Encoding) ([]int32, error) {
	if encoding == vtype.BINARY {
		if _, err := tok.ReadLine(); err != nil {
			return nil, err
		}

		buf, err := tok.ReadBlock(total * 4)
		if err != nil {
			return nil, err
		}

		wireorder.SwapToHost(buf, 4)

		out := make([]int32, total)
		for i := range out {
			out[i] = int32(binary.NativeEndian.Uint32(buf[i*4:]))
		}

		return out, nil
	}

	out := make([]int32, total)
	for i := range out {
		v, err := tok.ReadInt64()
		if err != nil {
			return nil, err
		}

		out[i] = int32(v)
	}

	return out, nil
}

// applyPieceWindow walks the flat "K, K ids, K, K ids, ..." structure
// embedded in raw group by group: skip1 groups are discarded entirely,
// read2 groups are copied into out (count included, as
// vtkDataReader::ReadCellsLegacy's `*data++ = i = *pTmp++` does), and
// skip3 groups are discarded, per §4.9.
func applyPieceWindow(raw []int32, window PieceWindow) []int32 {
	out := make([]int32, 0, window.Read2)
	pos := 0
	skip1, read2, skip3 := window.Skip1, window.Read2, window.Skip3

	for pos < len(raw) {
		if skip1 <= 0 && read2 <= 0 && skip3 <= 0 {
			break
		}

		k := int(raw[pos])
		pos++

		end := pos + k
		if end > len(raw) {
			end = len(raw)
		}

		switch {
		case skip1 > 0:
			skip1--
		case read2 > 0:
			out = append(out, int32(k))
			out = append(out, raw[pos:end]...)
			read2--
		default:
			skip3--
		}

		pos = end
	}

	return out
}
