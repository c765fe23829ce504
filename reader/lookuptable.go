package reader

import (
	"fmt"
	"strconv"

	"github.com/pardi/vtklegacy/errs"
	"github.com/pardi/vtklegacy/token"
	"github.com/pardi/vtklegacy/vtype"
)

// LookupTable is an RGBA color table attached to a Scalars slot
// (§4.6): size rows of four bytes each, on disk as either size packed
// binary RGBA quads or size rows of four ASCII floats in [0, 1].
type LookupTable struct {
	Name    string
	Entries [][4]uint8
}

// ReadLookupTable reads a "LOOKUP_TABLE name size" record and its
// payload. The keyword itself has already been consumed by the
// caller; name and size are its next two tokens.
func ReadLookupTable(tok *token.Tokenizer, name string, size int, encoding vtype.Encoding) (*LookupTable, error) {
	lut := &LookupTable{Name: name, Entries: make([][4]uint8, size)}

	if encoding == vtype.BINARY {
		if _, err := tok.ReadLine(); err != nil {
			return nil, err
		}

		buf, err := tok.ReadBlock(size * 4)
		if err != nil {
			return nil, err
		}

		for i := 0; i < size; i++ {
			copy(lut.Entries[i][:], buf[i*4:i*4+4])
		}

		return lut, nil
	}

	for i := 0; i < size; i++ {
		for c := 0; c < 4; c++ {
			tk, err := tok.ReadToken()
			if err != nil {
				return nil, err
			}

			f, err := strconv.ParseFloat(tk, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: lookup table component %q", errs.ErrMalformedNumber, tk)
			}

			lut.Entries[i][c] = floatUnitToByte(f)
		}
	}

	return lut, nil
}

// floatUnitToByte converts an ASCII lookup-table component in [0, 1]
// to its packed byte form, clamping out-of-range input rather than
// rejecting the record.
func floatUnitToByte(f float64) uint8 {
	if f <= 0 {
		return 0
	}

	if f >= 1 {
		return 255
	}

	return uint8(f*255.0 + 0.5)
}
