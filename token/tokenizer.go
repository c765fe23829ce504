// Package token implements the reader's tokenizer (§4.1): line and
// token reads bounded to 255 characters, primitive numeric reads,
// raw block reads, and a bounded peek that does not disturb the
// logical read position.
//
// Numeric parsing always uses strconv, which (unlike the C library
// the original format reader is written against) has no process
// locale to neutralize — strconv.ParseFloat and strconv.ParseInt are
// always "C"-locale. See DESIGN.md for the corresponding Open
// Question resolution.
package token

import (
	"bufio"
	"errors"
	"io"
	"strconv"

	"github.com/pardi/vtklegacy/errs"
	"github.com/pardi/vtklegacy/internal/pool"
)

// maxTokenLen is the maximum length of a single token or line (§4.1).
const maxTokenLen = 255

// peekBufferSize is the read buffer size and so bounds every Peek call
// this reader issues; PeekTokenAt may peek the whole buffer, and the
// "metadata" sniff (§4.4) peeks 8 bytes.
const peekBufferSize = 64 * 1024

// Tokenizer reads a byte stream as whitespace-delimited ASCII tokens
// or as fixed-width/length-prefixed binary records, per §4.1.
//
// A Tokenizer is not safe for concurrent use; it holds no locks of
// its own and is meant to be driven by a single goroutine, matching
// the reader's single-threaded, synchronous model (§5).
type Tokenizer struct {
	br *bufio.Reader
}

// New wraps r in a Tokenizer.
func New(r io.Reader) *Tokenizer {
	return &Tokenizer{br: bufio.NewReaderSize(r, peekBufferSize)}
}

// ReadLine consumes bytes up to '\n' or until maxTokenLen bytes have
// been read, stripping a trailing '\r'. If the line is longer than
// maxTokenLen, the remainder up to the next '\n' is discarded. It
// fails with errs.ErrEndOfInput if no bytes are available before EOF.
func (t *Tokenizer) ReadLine() (string, error) {
	buf := pool.GetTokenBuffer()
	defer pool.PutTokenBuffer(buf)

	n := 0
	sawByte := false
	overflow := false

	for {
		b, err := t.br.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				if !sawByte {
					return "", errs.ErrEndOfInput
				}
				break
			}

			return "", err
		}

		sawByte = true
		if b == '\n' {
			break
		}

		if n < maxTokenLen {
			buf.Grow(1)
			buf.B = append(buf.B, b)
			n++
		} else {
			overflow = true
		}
	}
	_ = overflow

	line := buf.Bytes()
	if len(line) > 0 && line[len(line)-1] == '\r' {
		line = line[:len(line)-1]
	}

	return string(line), nil
}

// ReadToken skips leading whitespace (space, tab, '\r', '\n') and
// reads up to the next whitespace byte or maxTokenLen bytes, never
// crossing into a following token. It fails with errs.ErrEndOfInput
// if EOF is reached before any non-whitespace byte is seen.
func (t *Tokenizer) ReadToken() (string, error) {
	if err := t.skipWhitespace(); err != nil {
		return "", err
	}

	buf := pool.GetTokenBuffer()
	defer pool.PutTokenBuffer(buf)

	n := 0
	for {
		b, err := t.br.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}

			return "", err
		}

		if isWhitespace(b) {
			_ = t.br.UnreadByte()
			break
		}

		if n < maxTokenLen {
			buf.Grow(1)
			buf.B = append(buf.B, b)
			n++
		}
	}

	return string(buf.Bytes()), nil
}

// skipWhitespace advances past any run of space/tab/CR/LF, returning
// errs.ErrEndOfInput if EOF is reached with nothing but whitespace
// remaining.
func (t *Tokenizer) skipWhitespace() error {
	for {
		b, err := t.br.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return errs.ErrEndOfInput
			}

			return err
		}

		if !isWhitespace(b) {
			return t.br.UnreadByte()
		}
	}
}

func isWhitespace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

// ReadInt64 reads one whitespace-delimited ASCII token and parses it
// as a signed integer, failing with errs.ErrMalformedNumber if it is
// not a valid integer literal.
func (t *Tokenizer) ReadInt64() (int64, error) {
	tok, err := t.ReadToken()
	if err != nil {
		return 0, err
	}

	v, err := strconv.ParseInt(tok, 10, 64)
	if err != nil {
		return 0, errs.ErrMalformedNumber
	}

	return v, nil
}

// ReadUint64 reads one whitespace-delimited ASCII token and parses it
// as an unsigned integer.
func (t *Tokenizer) ReadUint64() (uint64, error) {
	tok, err := t.ReadToken()
	if err != nil {
		return 0, err
	}

	v, err := strconv.ParseUint(tok, 10, 64)
	if err != nil {
		return 0, errs.ErrMalformedNumber
	}

	return v, nil
}

// ReadFloat64 reads one whitespace-delimited ASCII token and parses
// it as a floating-point number.
func (t *Tokenizer) ReadFloat64() (float64, error) {
	tok, err := t.ReadToken()
	if err != nil {
		return 0, err
	}

	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, errs.ErrMalformedNumber
	}

	return v, nil
}

// ReadNarrowByte reads one ASCII integer token, parsed as a wide
// integer and then narrowed to its low byte — the format's
// historical i8/u8 quirk (§4.1): values outside [-128, 255] are not
// rejected, only truncated.
func (t *Tokenizer) ReadNarrowByte() (byte, error) {
	v, err := t.ReadInt64()
	if err != nil {
		return 0, err
	}

	return byte(v), nil
}

// ReadBlock reads exactly n bytes raw, failing with
// errs.ErrTruncatedStream on a short read.
func (t *Tokenizer) ReadBlock(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(t.br, buf); err != nil {
		return nil, errs.ErrTruncatedStream
	}

	return buf, nil
}

// ReadByte reads and returns a single raw byte.
func (t *Tokenizer) ReadByte() (byte, error) {
	b, err := t.br.ReadByte()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return 0, errs.ErrTruncatedStream
		}

		return 0, err
	}

	return b, nil
}

// Peek returns up to n bytes without advancing the logical read
// position. If fewer than n bytes remain before EOF, it returns the
// bytes that are available with no error — callers that need an
// exact-length peek (e.g. the "metadata" sniff, §4.4) check the
// returned length themselves, so that a METADATA tail omitted at the
// true end of file (no trailing blank line) does not become a hard
// failure (§9 Open Questions).
func (t *Tokenizer) Peek(n int) ([]byte, error) {
	data, err := t.br.Peek(n)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, bufio.ErrBufferFull) {
			return data, nil
		}

		return nil, err
	}

	return data, nil
}

// PeekToken returns the next whitespace-delimited token without
// consuming it, so the caller can decide whether to call ReadToken or
// leave the stream position untouched. It returns errs.ErrEndOfInput
// if only whitespace remains before EOF. Because it peeks into the
// tokenizer's fixed-size internal buffer, it cannot look past
// peekBufferSize bytes of leading whitespace or a single token longer
// than that buffer; this is generous enough for every token this
// reader's grammar produces.
func (t *Tokenizer) PeekToken() (string, error) {
	return t.PeekTokenAt(0)
}

// PeekTokenAt returns the (n+1)-th whitespace-delimited token ahead of
// the current read position — PeekTokenAt(0) is equivalent to
// PeekToken — without consuming any of it. Grammar productions with
// more than one optional field ahead of a fixed keyword (the SCALARS
// section's optional component count, which is only a component count
// if a literal LOOKUP_TABLE token follows it — otherwise it is already
// the first data value) need to look two tokens ahead to resolve the
// ambiguity without committing a read.
func (t *Tokenizer) PeekTokenAt(n int) (string, error) {
	data, err := t.br.Peek(peekBufferSize)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return "", err
	}

	i := 0

	for skip := 0; ; skip++ {
		for i < len(data) && isWhitespace(data[i]) {
			i++
		}

		if i >= len(data) {
			return "", errs.ErrEndOfInput
		}

		j := i
		for j < len(data) && !isWhitespace(data[j]) && j-i < maxTokenLen {
			j++
		}

		if skip == n {
			return string(data[i:j]), nil
		}

		i = j
	}
}

// SkipWhitespace advances past any run of space/tab/CR/LF without
// requiring a following token; used between grammar productions that
// tolerate trailing blank space (e.g. before a METADATA sniff).
func (t *Tokenizer) SkipWhitespace() error {
	err := t.skipWhitespace()
	if errors.Is(err, errs.ErrEndOfInput) {
		return nil
	}

	return err
}
