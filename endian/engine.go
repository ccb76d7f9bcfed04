// Package endian provides the byte order helpers used to decode Palmtree recordings.
//
// Every field of a recording is stored little-endian. The EndianEngine interface
// combines binary.ByteOrder and binary.AppendByteOrder so the decoder and the test
// fixtures share one value, and the signed/float helpers below cover the field
// types the standard interfaces leave out.
//
//	engine := endian.GetLittleEndianEngine()
//	version := endian.Int32(engine, buf[0:4])
//	rate := endian.Float64(engine, buf[4:12])
//
// All functions in this package are safe for concurrent use.
package endian

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// CheckEndianness uses a fixed integer value to determine the host's byte order.
func CheckEndianness() binary.ByteOrder {
	// 0x0100 is 256. For a little-endian system, the LSB (0x00) is first.
	var i uint16 = 0x0100

	b := (*[2]byte)(unsafe.Pointer(&i))
	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// IsNativeLittleEndian reports whether the host stores integers little-endian.
func IsNativeLittleEndian() bool {
	return CheckEndianness() == binary.LittleEndian
}

// CompareNativeEndian reports whether engine matches the host byte order, in which
// case raw float64 payloads can be reinterpreted without byte swapping.
func CompareNativeEndian(engine EndianEngine) bool {
	return engine == CheckEndianness()
}

// GetLittleEndianEngine returns the little-endian engine, the byte order of every recording.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// Int32 decodes a signed 32-bit integer from the first 4 bytes of b.
func Int32(engine EndianEngine, b []byte) int32 {
	return int32(engine.Uint32(b)) //nolint: gosec
}

// Int64 decodes a signed 64-bit integer from the first 8 bytes of b.
func Int64(engine EndianEngine, b []byte) int64 {
	return int64(engine.Uint64(b)) //nolint: gosec
}

// Float64 decodes an IEEE 754 double from the first 8 bytes of b.
func Float64(engine EndianEngine, b []byte) float64 {
	return math.Float64frombits(engine.Uint64(b))
}

// AppendInt32 appends the encoding of v to dst.
func AppendInt32(engine EndianEngine, dst []byte, v int32) []byte {
	return engine.AppendUint32(dst, uint32(v)) //nolint: gosec
}

// AppendInt64 appends the encoding of v to dst.
func AppendInt64(engine EndianEngine, dst []byte, v int64) []byte {
	return engine.AppendUint64(dst, uint64(v)) //nolint: gosec
}

// AppendFloat64 appends the IEEE 754 encoding of v to dst.
func AppendFloat64(engine EndianEngine, dst []byte, v float64) []byte {
	return engine.AppendUint64(dst, math.Float64bits(v))
}
