package reader

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pardi/vtklegacy/compress"
	"github.com/pardi/vtklegacy/diag"
	"github.com/pardi/vtklegacy/errs"
	"github.com/pardi/vtklegacy/token"
	"github.com/pardi/vtklegacy/vtype"
)

// sniffWindow is how many leading bytes Open peeks to identify source
// compression (§2.2); large enough for the longest magic this build
// recognizes.
const sniffWindow = 4

// Reader is the stateful legacy-VTK parse session: exactly one of a
// filename or an input buffer is the active source (§4.12), and
// Open/Close bracket the lifetime of the diagnostic log and any
// decompression buffers that lifetime owns.
type Reader struct {
	cfg *Config

	hasFilename bool
	filename    string
	hasBuffer   bool
	buffer      []byte

	modCount     uint64
	charModCount uint64
	char         *Characterization

	source io.ReadCloser
	tok    *token.Tokenizer
	dlog   *diag.Log
	header *Header

	closed bool
}

// New constructs a Reader from cfg (build one with NewConfig). A nil
// cfg is treated as an empty configuration.
func New(cfg *Config) *Reader {
	if cfg == nil {
		cfg, _ = NewConfig()
	}

	return &Reader{cfg: cfg, closed: true}
}

// SetFilename configures path as the active source, invalidating any
// prior buffer source and any cached characterization.
func (r *Reader) SetFilename(path string) {
	r.filename = path
	r.hasFilename = true
	r.hasBuffer = false
	r.buffer = nil
	r.modCount++
}

// SetInputBuffer configures data as the active source, invalidating
// any prior filename source and any cached characterization.
func (r *Reader) SetInputBuffer(data []byte) {
	r.buffer = data
	r.hasBuffer = true
	r.hasFilename = false
	r.filename = ""
	r.modCount++
}

// Dlog returns the reader's diagnostic log; valid only between Open
// and Close.
func (r *Reader) Dlog() *diag.Log {
	return r.dlog
}

// Tokenizer returns the reader's attached tokenizer, positioned
// wherever the last header/attribute operation left it; valid only
// between Open and Close. External collaborators reading a dataset's
// geometry (§1 Non-goals) use this to continue consuming the stream.
func (r *Reader) Tokenizer() *token.Tokenizer {
	return r.tok
}

// openRawSource opens a fresh handle on the active source (file or
// buffer) and transparently unwraps its compression, without
// disturbing any previously-opened handle. Used by both Open and the
// characterization pass, each of which needs its own traversal.
func (r *Reader) openRawSource() (io.ReadCloser, error) {
	var raw io.ReadCloser

	switch {
	case r.hasBuffer:
		raw = io.NopCloser(bytes.NewReader(r.buffer))
	case r.hasFilename:
		f, err := os.Open(r.filename)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errs.ErrSourceUnavailable, err)
		}

		raw = f
	default:
		return nil, errs.ErrNoSource
	}

	br := bufio.NewReader(raw)

	header, _ := br.Peek(sniffWindow)
	kind := compress.Sniff(header)

	wrapped, err := compress.WrapReader(br, kind)
	if err != nil {
		raw.Close()
		return nil, err
	}

	if wrapped == io.Reader(br) {
		return &wrappedSource{Reader: br, closer: raw}, nil
	}

	return &wrappedSource{Reader: wrapped, decompressor: wrapped, closer: raw}, nil
}

// wrappedSource pairs a decompressing io.Reader with the underlying
// handle that must ultimately be closed, plus the decompressor itself
// when it owns closeable resources of its own (e.g. zstd's decoder
// goroutines).
type wrappedSource struct {
	io.Reader
	decompressor io.Reader
	closer       io.Closer
}

func (w *wrappedSource) Close() error {
	if dc, ok := w.decompressor.(io.Closer); ok {
		dc.Close()
	}

	return w.closer.Close()
}

// Open acquires the configured source and attaches a tokenizer to it,
// after sniffing and unwrapping any source compression (§2.2). Open
// is idempotent against a prior Open: it first calls Close. The
// process-wide locale neutralization called for by §5 has no Go
// analogue (strconv is always "C"-locale; see DESIGN.md) — what Open
// does scope is the diagnostic log and the decompression buffer,
// released together by Close.
func (r *Reader) Open() error {
	if !r.closed {
		if err := r.Close(); err != nil {
			return err
		}
	}

	src, err := r.openRawSource()
	if err != nil {
		return err
	}

	r.source = src
	r.tok = token.New(src)
	r.dlog = r.cfg.diagLog()
	r.header = nil
	r.closed = false

	return nil
}

// Close releases the active source. It is safe to call on an
// already-closed Reader.
func (r *Reader) Close() error {
	if r.closed {
		return nil
	}

	r.closed = true
	r.tok = nil
	r.header = nil

	if r.source != nil {
		err := r.source.Close()
		r.source = nil

		return err
	}

	return nil
}

// ReadHeader drives the header state machine to READY (§4.11,
// §4.13), caching the result on the Reader.
func (r *Reader) ReadHeader() (*Header, error) {
	if r.closed {
		return nil, errs.ErrAlreadyClosed
	}

	h, err := OpenHeader(r.tok, r.dlog)
	if err != nil {
		return nil, err
	}

	r.header = h

	return h, nil
}

// FileVersion returns the last-read header's version as major +
// minor/10, or 0 if no header has been read yet.
func (r *Reader) FileVersion() float64 {
	if r.header == nil {
		return 0
	}

	return r.header.FileVersion()
}

// IsValidDataset opens the source, reads the header, and reports
// whether the DATASET kind token matches expectedKind by
// case-insensitive prefix (the actual token carries expectedKind as a
// prefix, tolerating legacy writer suffixes). The source is closed
// before returning regardless of outcome.
func (r *Reader) IsValidDataset(expectedKind string) (bool, error) {
	if err := r.Open(); err != nil {
		return false, err
	}
	defer r.Close()

	h, err := r.ReadHeader()
	if err != nil {
		return false, err
	}

	actual := strings.ToUpper(h.DatasetKind)
	expected := strings.ToUpper(expectedKind)

	if !strings.HasPrefix(actual, expected) {
		return false, fmt.Errorf("%w: want %s, got %s", errs.ErrSchemaMismatch, expectedKind, h.DatasetKind)
	}

	return true, nil
}

// ReadAttributes drives the attribute dispatcher (§4.5) starting at
// scope with n expected elements, populating sink. Call after the
// external collaborator responsible for a dataset's geometry (§1
// Non-goals) has consumed it and positioned the tokenizer at the
// first POINT_DATA/CELL_DATA/etc. keyword, if any.
func (r *Reader) ReadAttributes(scope vtype.Scope, n int, sink AttributeSink) error {
	if r.closed {
		return errs.ErrAlreadyClosed
	}

	if r.header == nil {
		return fmt.Errorf("%w: ReadHeader must be called before ReadAttributes", errs.ErrUnrecognizedFormat)
	}

	return ReadAttributes(r.tok, scope, n, r.cfg, sink, r.FileVersion(), r.header.Encoding)
}

// ReadDataset drives the top-level scope dispatcher (ReadDataset),
// consuming every POINT_DATA/CELL_DATA/VERTEX_DATA/EDGE_DATA section
// present and routing each to the matching Attributes within ds. Call
// after the external collaborator responsible for a dataset's
// geometry (§1 Non-goals) has positioned the tokenizer at the first
// such keyword, if any.
func (r *Reader) ReadDataset(ds *Dataset) error {
	if r.closed {
		return errs.ErrAlreadyClosed
	}

	if r.header == nil {
		return fmt.Errorf("%w: ReadHeader must be called before ReadDataset", errs.ErrUnrecognizedFormat)
	}

	return ReadDataset(r.tok, r.cfg, ds, r.FileVersion(), r.header.Encoding)
}

// characterizeIfStale refreshes the cached Characterization when the
// reader's source configuration has changed since the last scan
// (§4.11: "a monotonic modification counter compared to last scan").
func (r *Reader) characterizeIfStale() error {
	if r.char != nil && r.charModCount == r.modCount {
		return nil
	}

	src, err := r.openRawSource()
	if err != nil {
		return err
	}
	defer src.Close()

	c, err := Characterize(src)
	if err != nil {
		return err
	}

	r.char = c
	r.charModCount = r.modCount

	return nil
}

// NameInFile returns the i-th name characterize_file recorded for
// kind (one of "scalars", "vectors", "tensors", "normals", "tcoords",
// "field"), triggering a characterization scan first if the source
// has changed since the last one (§4.11).
func (r *Reader) NameInFile(kind string, i int) (string, error) {
	if err := r.characterizeIfStale(); err != nil {
		return "", err
	}

	name, ok := r.char.NameAt(kind, i)
	if !ok {
		return "", nil
	}

	return name, nil
}

// ScalarsNameInFile is the scalars-kind convenience wrapper around
// NameInFile.
func (r *Reader) ScalarsNameInFile(i int) (string, error) { return r.NameInFile("scalars", i) }

// VectorsNameInFile is the vectors-kind convenience wrapper around
// NameInFile.
func (r *Reader) VectorsNameInFile(i int) (string, error) { return r.NameInFile("vectors", i) }

// TensorsNameInFile is the tensors-kind convenience wrapper around
// NameInFile.
func (r *Reader) TensorsNameInFile(i int) (string, error) { return r.NameInFile("tensors", i) }

// NormalsNameInFile is the normals-kind convenience wrapper around
// NameInFile.
func (r *Reader) NormalsNameInFile(i int) (string, error) { return r.NameInFile("normals", i) }

// TCoordsNameInFile is the tcoords-kind convenience wrapper around
// NameInFile.
func (r *Reader) TCoordsNameInFile(i int) (string, error) { return r.NameInFile("tcoords", i) }

// FieldNameInFile is the field-kind convenience wrapper around
// NameInFile.
func (r *Reader) FieldNameInFile(i int) (string, error) { return r.NameInFile("field", i) }
