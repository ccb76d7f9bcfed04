package pool

import (
	"sync"
)

// Sizes of the raw value buffers.
const (
	ValueBufferDefaultSize  = 1024 * 16       // 16KiB, two thousand doubles
	ValueBufferMaxThreshold = 1024 * 1024 * 4 // 4MiB
)

// ByteBuffer stages the raw bytes of a value run read from a recording
// before they are converted to doubles.
type ByteBuffer struct {
	B []byte
}

// NewByteBuffer creates an empty buffer with capacity defaultSize.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{B: make([]byte, 0, defaultSize)}
}

// Bytes returns the staged bytes.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Len returns the number of staged bytes.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Resize sets the length of the buffer to n and returns it. Contents are
// unspecified; the caller overwrites all n bytes.
//
// Small buffers grow to at least ValueBufferDefaultSize, larger ones by a quarter
// of their capacity so a run of slightly growing packages reallocates rarely.
func (bb *ByteBuffer) Resize(n int) []byte {
	if n < 0 {
		panic("pool: negative buffer length")
	}

	if c := cap(bb.B); c < n {
		grown := max(n, ValueBufferDefaultSize)
		if c > 4*ValueBufferDefaultSize {
			grown = max(n, c+c/4)
		}
		bb.B = make([]byte, 0, grown)
	}
	bb.B = bb.B[:n]

	return bb.B
}

// ByteBufferPool recycles ByteBuffers. Buffers grown past maxThreshold are
// dropped on Put so a single huge package does not pin its memory.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a pool of buffers of capacity defaultSize.
func NewByteBufferPool(defaultSize int, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any { return NewByteBuffer(defaultSize) },
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves an empty buffer.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns bb to the pool. nil is ignored.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil || (bbp.maxThreshold > 0 && cap(bb.B) > bbp.maxThreshold) {
		return
	}

	bb.B = bb.B[:0]
	bbp.pool.Put(bb)
}

var valuePool = NewByteBufferPool(ValueBufferDefaultSize, ValueBufferMaxThreshold)

// GetValueBuffer retrieves a buffer for raw value bytes.
func GetValueBuffer() *ByteBuffer {
	return valuePool.Get()
}

// PutValueBuffer returns a buffer obtained from GetValueBuffer.
func PutValueBuffer(bb *ByteBuffer) {
	valuePool.Put(bb)
}
