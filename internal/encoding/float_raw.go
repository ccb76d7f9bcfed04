package encoding

import (
	"fmt"
	"math"
	"unsafe"

	"github.com/palmtree-bci/palmrec/endian"
)

// Float64Size is the encoded size of one sample value.
const Float64Size = 8

// DecodeFloat64s decodes len(dst) raw IEEE 754 doubles from src into dst.
//
// When the engine matches the host byte order the payload is copied as-is
// into the memory of dst; otherwise each value is decoded with
// the engine. Both paths produce identical results.
//
// Parameters:
//   - dst: Destination slice, its length is the number of values to decode
//   - src: Encoded payload, must be exactly len(dst)*8 bytes
//   - engine: Byte order of the payload
//
// Returns:
//   - error: If src has the wrong length
func DecodeFloat64s(dst []float64, src []byte, engine endian.EndianEngine) error {
	if len(src) != len(dst)*Float64Size {
		return fmt.Errorf("raw float payload has %d bytes, want %d for %d values", len(src), len(dst)*Float64Size, len(dst))
	}

	if len(dst) == 0 {
		return nil
	}

	if endian.CompareNativeEndian(engine) {
		copy(unsafeBytes(dst), src)
		return nil
	}

	for i := range dst {
		dst[i] = math.Float64frombits(engine.Uint64(src[i*Float64Size:]))
	}

	return nil
}

// AppendFloat64s appends the raw encoding of values to dst.
func AppendFloat64s(dst []byte, values []float64, engine endian.EndianEngine) []byte {
	for _, v := range values {
		dst = engine.AppendUint64(dst, math.Float64bits(v))
	}

	return dst
}

// unsafeBytes views a non-empty float64 slice as its raw bytes without copying.
// Going from float64 to byte keeps the pointer aligned whatever the source offset is.
func unsafeBytes(values []float64) []byte {
	ptr := (*byte)(unsafe.Pointer(&values[0]))
	return unsafe.Slice(ptr, len(values)*Float64Size)
}
