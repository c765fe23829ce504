// Package arrayio implements the array reader (§4.4): given a type
// tag, tuple count, and component count it constructs a typed array
// and fills it from either the whitespace-delimited ASCII or
// big-endian binary wire representation, including bit-packed
// booleans, variable-width binary strings, ASCII percent-hex
// strings, tagged variant values, and the optional trailing METADATA
// block (component names and information-key entries, handed off to
// package infokey).
package arrayio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pardi/vtklegacy/diag"
	"github.com/pardi/vtklegacy/errs"
	"github.com/pardi/vtklegacy/infokey"
	"github.com/pardi/vtklegacy/strcode"
	"github.com/pardi/vtklegacy/token"
	"github.com/pardi/vtklegacy/vtype"
	"github.com/pardi/vtklegacy/wireorder"
)

// Variant is one value of a "variant" array: a tagged union over the
// scalar element kinds, decoded from its ASCII "<type-code> <token>"
// on-disk form (§4.4).
type Variant struct {
	Type    vtype.ElementType
	Int64   int64
	Float64 float64
	Str     string
}

// Array is the materialized result of one array read: a tagged
// variant whose populated slice corresponds to Type, plus an
// optional METADATA tail (§3, §3.1).
type Array struct {
	Name       string
	Type       vtype.ElementType
	Components int
	Tuples     int

	Bits          []byte // packed MSB-first, valid only when Type == vtype.Bit
	Int8Values    []int8
	UInt8Values   []uint8
	Int16Values   []int16
	UInt16Values  []uint16
	Int32Values   []int32
	UInt32Values  []uint32
	Int64Values   []int64 // also holds Long/IDType values, widened
	UInt64Values  []uint64 // also holds ULong values, widened
	Float32Values []float32
	Float64Values []float64
	StringValues  []string
	VariantValues []Variant

	ComponentNames []string
	Information    *infokey.Set
}

// Len returns the total logical element count, Tuples*Components.
func (a *Array) Len() int {
	return a.Tuples * a.Components
}

// Bit returns the i-th packed bit of a Bit array, MSB-first per byte.
func (a *Array) Bit(i int) bool {
	idx := i / 8
	if idx >= len(a.Bits) {
		return false
	}

	return a.Bits[idx]&(1<<(7-uint(i%8))) != 0
}

func setBitMSB(buf []byte, i int) {
	buf[i/8] |= 1 << (7 - uint(i%8))
}

// Read constructs and fills one array from tok, per §4.4.
func Read(tok *token.Tokenizer, name, typeTag string, tuples, components int, encoding vtype.Encoding, dlog *diag.Log) (*Array, error) {
	et, ok := vtype.ParseTag(typeTag)
	if !ok {
		return nil, fmt.Errorf("%w: %q", errs.ErrInvalidArrayType, typeTag)
	}

	if components < 1 {
		return nil, errs.ErrInvalidComponentCount
	}

	arr := &Array{Name: name, Type: et, Components: components, Tuples: tuples}
	total := tuples * components

	var err error
	if encoding == vtype.BINARY && et != vtype.Variant {
		if _, err = tok.ReadLine(); err != nil {
			return nil, err
		}

		err = readBinary(tok, arr, total)
	} else {
		err = readASCII(tok, arr, total)
	}

	if err != nil {
		return nil, err
	}

	if err := readMetadataTail(tok, arr, dlog); err != nil {
		return nil, err
	}

	return arr, nil
}

func readBinary(tok *token.Tokenizer, arr *Array, total int) error {
	switch arr.Type {
	case vtype.Bit:
		buf, err := tok.ReadBlock((total + 7) / 8)
		if err != nil {
			return err
		}

		arr.Bits = buf

	case vtype.Int8, vtype.UInt8:
		buf, err := tok.ReadBlock(total)
		if err != nil {
			return err
		}

		if arr.Type == vtype.Int8 {
			arr.Int8Values = make([]int8, total)
			for i, b := range buf {
				arr.Int8Values[i] = int8(b)
			}
		} else {
			arr.UInt8Values = append([]uint8(nil), buf...)
		}

	case vtype.Int16, vtype.UInt16:
		buf, err := tok.ReadBlock(total * 2)
		if err != nil {
			return err
		}

		wireorder.SwapToHost(buf, 2)
		if arr.Type == vtype.Int16 {
			arr.Int16Values = make([]int16, total)
			for i := range arr.Int16Values {
				arr.Int16Values[i] = int16(binary.NativeEndian.Uint16(buf[i*2:]))
			}
		} else {
			arr.UInt16Values = make([]uint16, total)
			for i := range arr.UInt16Values {
				arr.UInt16Values[i] = binary.NativeEndian.Uint16(buf[i*2:])
			}
		}

	case vtype.Int32, vtype.UInt32, vtype.IDType:
		buf, err := tok.ReadBlock(total * 4)
		if err != nil {
			return err
		}

		wireorder.SwapToHost(buf, 4)
		switch arr.Type {
		case vtype.Int32:
			arr.Int32Values = make([]int32, total)
			for i := range arr.Int32Values {
				arr.Int32Values[i] = int32(binary.NativeEndian.Uint32(buf[i*4:]))
			}
		case vtype.UInt32:
			arr.UInt32Values = make([]uint32, total)
			for i := range arr.UInt32Values {
				arr.UInt32Values[i] = binary.NativeEndian.Uint32(buf[i*4:])
			}
		default: // IDType: widened to platform id width (int64 here)
			arr.Int64Values = make([]int64, total)
			for i := range arr.Int64Values {
				arr.Int64Values[i] = int64(int32(binary.NativeEndian.Uint32(buf[i*4:])))
			}
		}

	case vtype.Int64, vtype.UInt64:
		buf, err := tok.ReadBlock(total * 8)
		if err != nil {
			return err
		}

		wireorder.SwapToHost(buf, 8)
		if arr.Type == vtype.Int64 {
			arr.Int64Values = make([]int64, total)
			for i := range arr.Int64Values {
				arr.Int64Values[i] = int64(binary.NativeEndian.Uint64(buf[i*8:]))
			}
		} else {
			arr.UInt64Values = make([]uint64, total)
			for i := range arr.UInt64Values {
				arr.UInt64Values[i] = binary.NativeEndian.Uint64(buf[i*8:])
			}
		}

	case vtype.Long, vtype.ULong:
		return readBinaryLong(tok, arr, total)

	case vtype.Float32:
		buf, err := tok.ReadBlock(total * 4)
		if err != nil {
			return err
		}

		wireorder.SwapToHost(buf, 4)
		arr.Float32Values = make([]float32, total)
		for i := range arr.Float32Values {
			arr.Float32Values[i] = math.Float32frombits(binary.NativeEndian.Uint32(buf[i*4:]))
		}

	case vtype.Float64:
		buf, err := tok.ReadBlock(total * 8)
		if err != nil {
			return err
		}

		wireorder.SwapToHost(buf, 8)
		arr.Float64Values = make([]float64, total)
		for i := range arr.Float64Values {
			arr.Float64Values[i] = math.Float64frombits(binary.NativeEndian.Uint64(buf[i*8:]))
		}

	case vtype.StringType, vtype.UTF8String:
		return readBinaryStrings(tok, arr, total)

	default:
		return fmt.Errorf("%w: %s in binary", errs.ErrInvalidArrayType, arr.Type)
	}

	return nil
}

// readBinaryLong handles the "long"/"unsigned_long" type tags, whose
// wire width the format elides (§4.4, §9 Open Question). This reader
// resolves the ambiguity by assuming the writer used the host
// platform's native int width (strconv.IntSize/8) — i.e. it does not
// support cross-bitness round-tripping of legacy long/ulong arrays;
// see DESIGN.md.
func readBinaryLong(tok *token.Tokenizer, arr *Array, total int) error {
	sz := strconv.IntSize / 8
	buf, err := tok.ReadBlock(total * sz)
	if err != nil {
		return err
	}

	wireorder.SwapToHost(buf, sz)

	if arr.Type == vtype.Long {
		arr.Int64Values = make([]int64, total)
		for i := 0; i < total; i++ {
			if sz == 8 {
				arr.Int64Values[i] = int64(binary.NativeEndian.Uint64(buf[i*8:]))
			} else {
				arr.Int64Values[i] = int64(int32(binary.NativeEndian.Uint32(buf[i*4:])))
			}
		}
	} else {
		arr.UInt64Values = make([]uint64, total)
		for i := 0; i < total; i++ {
			if sz == 8 {
				arr.UInt64Values[i] = binary.NativeEndian.Uint64(buf[i*8:])
			} else {
				arr.UInt64Values[i] = uint64(binary.NativeEndian.Uint32(buf[i*4:]))
			}
		}
	}

	return nil
}

// readBinaryStrings decodes total length-prefixed strings using the
// header-code scheme of §4.4: the top two bits of the first byte
// select how many further bytes (0, 2, 4, or 8) carry the length.
func readBinaryStrings(tok *token.Tokenizer, arr *Array, total int) error {
	arr.StringValues = make([]string, total)
	for i := 0; i < total; i++ {
		s, err := readOneBinaryString(tok)
		if err != nil {
			return err
		}

		arr.StringValues[i] = s
	}

	return nil
}

func readOneBinaryString(tok *token.Tokenizer) (string, error) {
	b0, err := tok.ReadByte()
	if err != nil {
		return "", err
	}

	var length uint64
	switch b0 >> 6 {
	case 3:
		length = uint64(b0 & 0x3F)
	case 2:
		rest, err := tok.ReadBlock(2)
		if err != nil {
			return "", err
		}

		length = uint64(binary.BigEndian.Uint16(rest) & 0x3FFF)
	case 1:
		rest, err := tok.ReadBlock(4)
		if err != nil {
			return "", err
		}

		length = uint64(binary.BigEndian.Uint32(rest) & 0x3FFFFFFF)
	default: // 0
		rest, err := tok.ReadBlock(8)
		if err != nil {
			return "", err
		}

		length = binary.BigEndian.Uint64(rest)
	}

	data, err := tok.ReadBlock(int(length))
	if err != nil {
		return "", err
	}

	return string(data), nil
}

func readASCII(tok *token.Tokenizer, arr *Array, total int) error {
	switch arr.Type {
	case vtype.Bit:
		arr.Bits = make([]byte, (total+7)/8)
		for i := 0; i < total; i++ {
			v, err := tok.ReadInt64()
			if err != nil {
				return err
			}

			if v != 0 {
				setBitMSB(arr.Bits, i)
			}
		}

	case vtype.Int8:
		arr.Int8Values = make([]int8, total)
		for i := range arr.Int8Values {
			b, err := tok.ReadNarrowByte()
			if err != nil {
				return err
			}

			arr.Int8Values[i] = int8(b)
		}

	case vtype.UInt8:
		arr.UInt8Values = make([]uint8, total)
		for i := range arr.UInt8Values {
			b, err := tok.ReadNarrowByte()
			if err != nil {
				return err
			}

			arr.UInt8Values[i] = b
		}

	case vtype.Int16:
		arr.Int16Values = make([]int16, total)
		for i := range arr.Int16Values {
			v, err := tok.ReadInt64()
			if err != nil {
				return err
			}

			arr.Int16Values[i] = int16(v)
		}

	case vtype.UInt16:
		arr.UInt16Values = make([]uint16, total)
		for i := range arr.UInt16Values {
			v, err := tok.ReadUint64()
			if err != nil {
				return err
			}

			arr.UInt16Values[i] = uint16(v)
		}

	case vtype.Int32:
		arr.Int32Values = make([]int32, total)
		for i := range arr.Int32Values {
			v, err := tok.ReadInt64()
			if err != nil {
				return err
			}

			arr.Int32Values[i] = int32(v)
		}

	case vtype.UInt32:
		arr.UInt32Values = make([]uint32, total)
		for i := range arr.UInt32Values {
			v, err := tok.ReadUint64()
			if err != nil {
				return err
			}

			arr.UInt32Values[i] = uint32(v)
		}

	case vtype.Int64, vtype.Long, vtype.IDType:
		arr.Int64Values = make([]int64, total)
		for i := range arr.Int64Values {
			v, err := tok.ReadInt64()
			if err != nil {
				return err
			}

			arr.Int64Values[i] = v
		}

	case vtype.UInt64, vtype.ULong:
		arr.UInt64Values = make([]uint64, total)
		for i := range arr.UInt64Values {
			v, err := tok.ReadUint64()
			if err != nil {
				return err
			}

			arr.UInt64Values[i] = v
		}

	case vtype.Float32:
		arr.Float32Values = make([]float32, total)
		for i := range arr.Float32Values {
			v, err := tok.ReadFloat64()
			if err != nil {
				return err
			}

			arr.Float32Values[i] = float32(v)
		}

	case vtype.Float64:
		arr.Float64Values = make([]float64, total)
		for i := range arr.Float64Values {
			v, err := tok.ReadFloat64()
			if err != nil {
				return err
			}

			arr.Float64Values[i] = v
		}

	case vtype.StringType, vtype.UTF8String:
		arr.StringValues = make([]string, total)
		for i := range arr.StringValues {
			line, err := tok.ReadLine()
			if err != nil {
				return err
			}

			arr.StringValues[i] = strcode.DecodeString(line)
		}

	case vtype.Variant:
		return readVariants(tok, arr, total)

	default:
		return fmt.Errorf("%w: %s in ASCII", errs.ErrInvalidArrayType, arr.Type)
	}

	return nil
}

// variantTypeCodes maps the original format's numeric scalar-type
// codes (§4.4, resolved against original_source/'s vtkDataReader.cxx
// ReadVariantData switch) to this reader's ElementType.
var variantTypeCodes = map[int64]vtype.ElementType{
	1:  vtype.Bit,
	2:  vtype.Int8,
	3:  vtype.UInt8,
	4:  vtype.Int16,
	5:  vtype.UInt16,
	6:  vtype.Int32,
	7:  vtype.UInt32,
	8:  vtype.Long,
	9:  vtype.ULong,
	10: vtype.Float32,
	11: vtype.Float64,
	12: vtype.IDType,
	13: vtype.StringType,
	15: vtype.Int8,
	16: vtype.Int64,
	17: vtype.UInt64,
}

func readVariants(tok *token.Tokenizer, arr *Array, total int) error {
	arr.VariantValues = make([]Variant, total)
	for i := range arr.VariantValues {
		code, err := tok.ReadInt64()
		if err != nil {
			return err
		}

		raw, err := tok.ReadToken()
		if err != nil {
			return err
		}

		decoded := strcode.DecodeString(raw)

		et, ok := variantTypeCodes[code]
		if !ok {
			return fmt.Errorf("%w: variant type code %d", errs.ErrInvalidArrayType, code)
		}

		v := Variant{Type: et}
		switch {
		case et == vtype.StringType:
			v.Str = decoded
		case et.IsInteger():
			n, perr := strconv.ParseInt(decoded, 10, 64)
			if perr != nil {
				return errs.ErrMalformedNumber
			}

			v.Int64 = n
		case et == vtype.Float32 || et == vtype.Float64:
			f, perr := strconv.ParseFloat(decoded, 64)
			if perr != nil {
				return errs.ErrMalformedNumber
			}

			v.Float64 = f
		default:
			v.Str = decoded
		}

		arr.VariantValues[i] = v
	}

	return nil
}

// readMetadataTail implements §4.4's METADATA handling, tolerant of
// the trailing blank line being omitted at true EOF (§9).
func readMetadataTail(tok *token.Tokenizer, arr *Array, dlog *diag.Log) error {
	if err := tok.SkipWhitespace(); err != nil {
		return err
	}

	peek, err := tok.Peek(8)
	if err != nil {
		return err
	}

	if len(peek) < 8 || !strings.EqualFold(string(peek), "METADATA") {
		return nil
	}

	if _, err := tok.ReadLine(); err != nil {
		return err
	}

	for {
		line, err := tok.ReadLine()
		if err != nil {
			if errors.Is(err, errs.ErrEndOfInput) {
				return nil
			}

			return err
		}

		if strings.TrimSpace(line) == "" {
			return nil
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			return nil
		}

		switch strings.ToUpper(fields[0]) {
		case "COMPONENT_NAMES":
			arr.ComponentNames = make([]string, arr.Components)
			for i := 0; i < arr.Components; i++ {
				nameLine, err := tok.ReadLine()
				if err != nil {
					return err
				}

				arr.ComponentNames[i] = strcode.DecodeString(nameLine)
			}

		case "INFORMATION":
			if len(fields) < 2 {
				dlog.Warnf("arrayio", "malformed INFORMATION line %q", line)
				continue
			}

			n, perr := strconv.Atoi(fields[1])
			if perr != nil {
				dlog.Warnf("arrayio", "malformed INFORMATION count %q", fields[1])
				continue
			}

			set, ierr := infokey.Deserialize(tok, n, dlog)
			if ierr != nil {
				return ierr
			}

			arr.Information = set

		default:
			dlog.Warnf("arrayio", "unrecognized METADATA line %q", line)
		}
	}
}
