package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestByteBuffer_Resize(t *testing.T) {
	tests := []struct {
		name    string
		initial int
		n       int
		wantCap int
	}{
		{"WithinCapacity", 64, 32, 64},
		{"SmallGrowsToDefault", 64, 100, ValueBufferDefaultSize},
		{"ExactLargeRequest", 64, 3 * ValueBufferDefaultSize, 3 * ValueBufferDefaultSize},
		{"LargeGrowsByQuarter", 8 * ValueBufferDefaultSize, 8*ValueBufferDefaultSize + 1, 10 * ValueBufferDefaultSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bb := NewByteBuffer(tt.initial)
			got := bb.Resize(tt.n)
			require.Len(t, got, tt.n)
			require.Equal(t, tt.n, bb.Len())
			require.Equal(t, tt.wantCap, cap(bb.Bytes()))
		})
	}
}

func TestByteBuffer_ResizeNegative(t *testing.T) {
	require.Panics(t, func() { NewByteBuffer(8).Resize(-1) })
}

func TestByteBufferPool(t *testing.T) {
	p := NewByteBufferPool(128, 256)

	bb := p.Get()
	require.NotNil(t, bb)
	require.Equal(t, 0, bb.Len())
	require.Equal(t, 128, cap(bb.B))

	bb.Resize(64)
	p.Put(bb)
	require.Equal(t, 0, bb.Len(), "Put empties the buffer")

	big := NewByteBuffer(512)
	big.Resize(10)
	p.Put(big)
	require.Equal(t, 10, big.Len(), "oversized buffers are dropped untouched")

	p.Put(nil)
}

func TestValueBufferPool(t *testing.T) {
	bb := GetValueBuffer()
	require.NotNil(t, bb)
	require.Len(t, bb.Resize(24), 24)
	PutValueBuffer(bb)
}
