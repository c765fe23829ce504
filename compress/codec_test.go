package compress

import (
	"bytes"
	"compress/gzip"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSniff_Gzip(t *testing.T) {
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	_, err := gw.Write([]byte("hello"))
	require.NoError(t, err)
	require.NoError(t, gw.Close())

	header := buf.Bytes()
	if len(header) > 4 {
		header = header[:4]
	}

	assert.Equal(t, Gzip, Sniff(header))
}

func TestSniff_NoneForPlainText(t *testing.T) {
	assert.Equal(t, None, Sniff([]byte("# vtk DataFile Version 3.0")))
}

func TestSniff_ShortHeaderDoesNotPanic(t *testing.T) {
	assert.Equal(t, None, Sniff([]byte{0x1f}))
	assert.Equal(t, None, Sniff(nil))
}

func TestWrapReader_GzipRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	_, err := gw.Write([]byte("payload bytes"))
	require.NoError(t, err)
	require.NoError(t, gw.Close())

	wrapped, err := WrapReader(&buf, Gzip)
	require.NoError(t, err)

	got, err := io.ReadAll(wrapped)
	require.NoError(t, err)
	assert.Equal(t, "payload bytes", string(got))
}

func TestWrapReader_NoneIsPassthrough(t *testing.T) {
	r := bytes.NewReader([]byte("raw"))
	wrapped, err := WrapReader(r, None)
	require.NoError(t, err)
	assert.Same(t, io.Reader(r), wrapped)
}

func TestWrapReader_UnsupportedKindErrors(t *testing.T) {
	_, err := WrapReader(bytes.NewReader(nil), Kind(99))
	assert.Error(t, err)
}
