package pool

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByteBuffer_Basics(t *testing.T) {
	bb := NewByteBuffer(TokenBufferDefaultSize)
	assert.Equal(t, 0, bb.Len())
	assert.Equal(t, TokenBufferDefaultSize, bb.Cap())

	bb.MustWrite([]byte("hello"))
	assert.Equal(t, 5, bb.Len())
	assert.Equal(t, []byte("hello"), bb.Bytes())

	bb.Reset()
	assert.Equal(t, 0, bb.Len())
	assert.GreaterOrEqual(t, bb.Cap(), TokenBufferDefaultSize)
}

func TestByteBuffer_SetLength(t *testing.T) {
	bb := NewByteBuffer(16)
	bb.SetLength(8)
	assert.Equal(t, 8, bb.Len())

	assert.Panics(t, func() { bb.SetLength(-1) })
	assert.Panics(t, func() { bb.SetLength(1000) })
}

func TestByteBuffer_ExtendOrGrow(t *testing.T) {
	bb := NewByteBuffer(4)
	tail := bb.ExtendOrGrow(10)
	require.Len(t, tail, 10)
	assert.Equal(t, 10, bb.Len())

	copy(tail, []byte("0123456789"))
	assert.Equal(t, []byte("0123456789"), bb.Bytes())

	// Extending further must not disturb already-written bytes.
	tail2 := bb.ExtendOrGrow(5)
	require.Len(t, tail2, 5)
	assert.Equal(t, []byte("0123456789"), bb.Bytes()[:10])
}

func TestByteBuffer_Grow(t *testing.T) {
	bb := NewByteBuffer(BlockBufferDefaultSize)
	bb.B = append(bb.B, make([]byte, BlockBufferDefaultSize)...)

	bb.Grow(1024)
	assert.GreaterOrEqual(t, cap(bb.B), BlockBufferDefaultSize+1024)
	assert.Equal(t, BlockBufferDefaultSize, len(bb.B))

	// Large existing buffers grow by a fraction of capacity.
	bb2 := NewByteBuffer(BlockBufferDefaultSize)
	bb2.B = append(bb2.B, make([]byte, 5*BlockBufferDefaultSize)...)
	prevCap := cap(bb2.B)
	bb2.Grow(1)
	assert.Greater(t, cap(bb2.B), prevCap)
}

func TestByteBuffer_WriteAndWriteTo(t *testing.T) {
	bb := NewByteBuffer(8)
	n, err := bb.Write([]byte("payload"))
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	var out bytes.Buffer
	written, err := bb.WriteTo(&out)
	require.NoError(t, err)
	assert.Equal(t, int64(7), written)
	assert.Equal(t, "payload", out.String())
}

func TestByteBufferPool_GetPut(t *testing.T) {
	p := NewByteBufferPool(64, 128)

	bb := p.Get()
	require.NotNil(t, bb)
	bb.MustWrite([]byte("data"))
	p.Put(bb)

	bb2 := p.Get()
	require.NotNil(t, bb2)
	assert.Equal(t, 0, bb2.Len(), "pooled buffer must come back reset")
}

func TestByteBufferPool_DiscardsOversized(t *testing.T) {
	p := NewByteBufferPool(8, 16)

	bb := p.Get()
	bb.Grow(1024)
	p.Put(bb) // should be discarded, not retained

	bb2 := p.Get()
	require.NotNil(t, bb2)
}

func TestDefaultPools(t *testing.T) {
	tb := GetTokenBuffer()
	require.NotNil(t, tb)
	tb.MustWrite([]byte("tok"))
	PutTokenBuffer(tb)

	blk := GetBlockBuffer()
	require.NotNil(t, blk)
	blk.MustWrite(make([]byte, 1024))
	PutBlockBuffer(blk)
}
