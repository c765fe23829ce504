package reader

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pardi/vtklegacy/errs"
	"github.com/pardi/vtklegacy/token"
	"github.com/pardi/vtklegacy/vtype"
)

// headerPrefix is the literal text every legacy source begins with,
// immediately followed by "<major>.<minor>" (§4.11).
const headerPrefix = "# vtk DataFile Version"

// compiledMaxMajorVersion is the highest major version this reader
// was written against; a higher version is accepted with a warning,
// not rejected, since the attribute/array grammar has been stable
// across the versions this core tracks.
const compiledMaxMajorVersion = 5

// headerState is the header state machine (§4.13).
type headerState uint8

const (
	stateStart headerState = iota
	stateMagicOK
	stateTitleOK
	stateEncodingOK
	stateReady
)

// Header is the result of OpenHeader: the four fixed lines every
// legacy source begins with, plus the DATASET keyword's kind token
// (the dataset's own geometry is an external collaborator's
// responsibility, per §1 Non-goals — this reader stops at the kind
// name).
type Header struct {
	Major, Minor int
	Title        string
	Encoding     vtype.Encoding
	DatasetKind  string

	state headerState
}

// FileVersion returns major + minor/10, matching the original
// format's own accessor (§4.11).
func (h *Header) FileVersion() float64 {
	return float64(h.Major) + float64(h.Minor)/10
}

// OpenHeader drives the header state machine (§4.11, §4.13) to
// completion: magic + version, title, encoding, and the DATASET
// keyword's kind token. It leaves tok positioned immediately after
// the kind token, ready for an external collaborator to read that
// dataset kind's geometry before calling ReadAttributes.
func OpenHeader(tok *token.Tokenizer, dlog diagWarner) (*Header, error) {
	h := &Header{}

	line, err := tok.ReadLine()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrUnrecognizedFormat, err)
	}

	if !strings.HasPrefix(line, headerPrefix) {
		return nil, fmt.Errorf("%w: missing %q prefix", errs.ErrUnrecognizedFormat, headerPrefix)
	}

	h.state = stateMagicOK

	versionText := strings.TrimSpace(strings.TrimPrefix(line, headerPrefix))

	major, minor, ok := parseVersion(versionText)
	if !ok {
		dlog.Warnf("header", "unparseable version %q, assuming 0.0", versionText)
	} else {
		h.Major, h.Minor = major, minor

		if major > compiledMaxMajorVersion {
			dlog.Warnf("header", "file version %d.%d exceeds compiled maximum %d.x, proceeding", major, minor, compiledMaxMajorVersion)
		}
	}

	title, err := tok.ReadLine()
	if err != nil {
		return nil, fmt.Errorf("%w: title line: %v", errs.ErrUnrecognizedFormat, err)
	}

	h.Title = title
	h.state = stateTitleOK

	encTok, err := tok.ReadToken()
	if err != nil {
		return nil, fmt.Errorf("%w: encoding token: %v", errs.ErrUnrecognizedFormat, err)
	}

	enc, ok := vtype.ParseEncoding(encTok)
	if !ok {
		return nil, fmt.Errorf("%w: encoding %q", errs.ErrUnrecognizedFormat, encTok)
	}

	h.Encoding = enc
	h.state = stateEncodingOK

	// A BINARY source would, on a platform distinguishing text and
	// binary file modes, be rewound and re-opened in binary mode at
	// this point, then re-traverse MAGIC_OK/TITLE_OK/ENCODING_OK to
	// reach the same position (§4.11, §4.13). Go's os.File makes no
	// such distinction, so no rewind is made here: parsing continues
	// from the current position.

	datasetKw, err := tok.ReadToken()
	if err != nil {
		return nil, fmt.Errorf("%w: DATASET keyword: %v", errs.ErrUnrecognizedFormat, err)
	}

	if !strings.EqualFold(datasetKw, "DATASET") {
		return nil, fmt.Errorf("%w: expected DATASET, got %q", errs.ErrUnrecognizedFormat, datasetKw)
	}

	kind, err := tok.ReadToken()
	if err != nil {
		return nil, fmt.Errorf("%w: dataset kind: %v", errs.ErrUnrecognizedFormat, err)
	}

	h.DatasetKind = kind
	h.state = stateReady

	return h, nil
}

// parseVersion parses "<major>.<minor>", tolerating a missing minor
// component (treated as 0).
func parseVersion(s string) (int, int, bool) {
	parts := strings.SplitN(s, ".", 2)

	major, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, false
	}

	if len(parts) == 1 {
		return major, 0, true
	}

	minor, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return major, 0, false
	}

	return major, minor, true
}

// diagWarner is the narrow slice of diag.Log that header parsing
// needs, so tests can pass a lightweight stand-in.
type diagWarner interface {
	Warnf(stage, format string, args ...any)
}
