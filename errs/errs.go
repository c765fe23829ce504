// Package errs centralizes the sentinel error values returned by the
// legacy VTK reader. Call sites wrap these with fmt.Errorf("%w: ...")
// to attach position or context; callers test against a specific
// failure with errors.Is.
package errs

import "errors"

// Source / lifecycle errors.
var (
	// ErrNoSource is returned when neither a filename nor an input
	// buffer has been configured on the reader.
	ErrNoSource = errors.New("vtklegacy: no source configured")
	// ErrSourceUnavailable is returned when a configured path does
	// not exist or cannot be opened.
	ErrSourceUnavailable = errors.New("vtklegacy: source unavailable")
	// ErrAlreadyClosed is returned by operations attempted on a
	// reader whose source has already been closed.
	ErrAlreadyClosed = errors.New("vtklegacy: reader already closed")
)

// Header / grammar errors.
var (
	// ErrUnrecognizedFormat covers a header prefix mismatch or an
	// encoding token that is neither ASCII nor BINARY.
	ErrUnrecognizedFormat = errors.New("vtklegacy: unrecognized file format")
	// ErrSchemaMismatch is returned by IsValidDataset when the
	// DATASET keyword names a different kind than expected.
	ErrSchemaMismatch = errors.New("vtklegacy: dataset kind mismatch")
)

// Stream / token errors.
var (
	// ErrEndOfInput is returned on a clean EOF where a new record
	// was expected to begin.
	ErrEndOfInput = errors.New("vtklegacy: end of input")
	// ErrTruncatedStream is returned when EOF is reached in the
	// middle of a fixed-size record.
	ErrTruncatedStream = errors.New("vtklegacy: truncated stream")
	// ErrMalformedNumber is returned when an ASCII token does not
	// parse as the requested numeric type.
	ErrMalformedNumber = errors.New("vtklegacy: malformed number")
	// ErrTokenTooLong names a line or token longer than its bounded
	// buffer. The tokenizer does not return it: ReadLine and ReadToken
	// keep the first 255 bytes and discard the rest.
	ErrTokenTooLong = errors.New("vtklegacy: token exceeds maximum length")
)

// Array / attribute errors.
var (
	// ErrInvalidArrayType is returned when a type tag does not match
	// any recognized element type.
	ErrInvalidArrayType = errors.New("vtklegacy: invalid array type")
	// ErrUnsupportedAttribute is returned when a keyword is not
	// recognized in the current scope (including an illegal
	// cross-scope transition).
	ErrUnsupportedAttribute = errors.New("vtklegacy: unsupported attribute keyword")
	// ErrDimOutOfRange is returned when a texture-coordinate
	// dimension is not in {1, 2, 3}.
	ErrDimOutOfRange = errors.New("vtklegacy: texture coordinate dimension out of range")
	// ErrInvalidComponentCount is returned when a component count is
	// less than 1.
	ErrInvalidComponentCount = errors.New("vtklegacy: component count must be >= 1")
)

// Cell array errors.
var (
	// ErrNonNumericCellArray is returned when the OFFSETS or
	// CONNECTIVITY array of a modern cell array is not an integer
	// numeric kind.
	ErrNonNumericCellArray = errors.New("vtklegacy: cell array must be a numeric integer type")
	// ErrInvalidPieceWindow names a legacy cell array piece window
	// that does not match the declared total. cellarray.ReadLegacy does
	// not check the window against the total and does not return it.
	ErrInvalidPieceWindow = errors.New("vtklegacy: piece window does not cover declared count")
)

// Information-key errors.
var (
	// ErrUnknownInformationKey names an information key absent from
	// the registry. infokey.Deserialize does not return it; it records
	// an unknown key as an "infokey" diagnostic and continues.
	ErrUnknownInformationKey = errors.New("vtklegacy: unknown information key")
	// ErrMalformedInformationEntry names a malformed information
	// entry. infokey.Deserialize does not return it; it records a
	// malformed entry as an "infokey" diagnostic and continues.
	ErrMalformedInformationEntry = errors.New("vtklegacy: malformed information entry")
)

// Source decompression errors.
var (
	// ErrUnsupportedCompression is returned by compress.WrapReader
	// for a compression kind it has no decompressor for.
	ErrUnsupportedCompression = errors.New("vtklegacy: unsupported source compression")
)
