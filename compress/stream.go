package compress

import (
	"compress/gzip"
	"fmt"
	"io"

	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/pardi/vtklegacy/errs"
)

// WrapReader wraps r in the streaming decompressor matching kind, so
// that every subsequent read yields decompressed bytes. None returns
// r unchanged. This is the mechanism Reader.Open (§4.12) uses after
// Sniff identifies the source's on-disk compression, so the tokenizer
// never sees compressed bytes.
//
// Gzip uses the standard library directly: it needs no buffer pooling
// or stateful reuse beyond what compress/gzip already provides, and
// no example repo reaches for a third-party gzip implementation.
func WrapReader(r io.Reader, kind Kind) (io.Reader, error) {
	switch kind {
	case None:
		return r, nil
	case Gzip:
		gr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("gzip source: %w", err)
		}

		return gr, nil
	case Zstd:
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("zstd source: %w", err)
		}

		return zr.IOReadCloser(), nil
	case LZ4:
		return lz4.NewReader(r), nil
	case S2:
		return s2.NewReader(r), nil
	default:
		return nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedCompression, kind)
	}
}
