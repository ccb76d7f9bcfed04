package endian

import (
	"encoding/binary"
	"math"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func TestCheckEndianness(t *testing.T) {
	require := require.New(t)

	result := CheckEndianness()

	var testValue uint16 = 0x0102
	testBytes := (*[2]byte)(unsafe.Pointer(&testValue))

	switch testBytes[0] {
	case 0x01:
		require.Equal(binary.BigEndian, result, "CheckEndianness() should return BigEndian")
	case 0x02:
		require.Equal(binary.LittleEndian, result, "CheckEndianness() should return LittleEndian")
	default:
		require.Failf("Unexpected byte value", "got: %v", testBytes[0])
	}
}

func TestCompareNativeEndian(t *testing.T) {
	require.Equal(t, IsNativeLittleEndian(), CompareNativeEndian(GetLittleEndianEngine()))
}

func TestGetLittleEndianEngine(t *testing.T) {
	engine := GetLittleEndianEngine()

	require.Implements(t, (*EndianEngine)(nil), engine)
	require.Equal(t, binary.LittleEndian, engine)

	var testValue uint16 = 0x0102
	bytes := make([]byte, 2)
	engine.PutUint16(bytes, testValue)
	require.Equal(t, byte(0x02), bytes[0], "Little endian should put LSB first")
	require.Equal(t, byte(0x01), bytes[1], "Little endian should put MSB second")
	require.Equal(t, testValue, engine.Uint16(bytes))
}

func TestSignedAndFloatHelpers(t *testing.T) {
	engine := GetLittleEndianEngine()

	t.Run("Int32", func(t *testing.T) {
		for _, v := range []int32{0, 1, -1, math.MaxInt32, math.MinInt32} {
			buf := AppendInt32(engine, nil, v)
			require.Len(t, buf, 4)
			require.Equal(t, v, Int32(engine, buf))
		}
	})

	t.Run("Int64", func(t *testing.T) {
		for _, v := range []int64{0, 1_700_000_000_000, -42, math.MaxInt64, math.MinInt64} {
			buf := AppendInt64(engine, nil, v)
			require.Len(t, buf, 8)
			require.Equal(t, v, Int64(engine, buf))
		}
	})

	t.Run("Float64", func(t *testing.T) {
		for _, v := range []float64{0, 10.0, 20.5, -1e-9, math.Inf(1), math.MaxFloat64} {
			buf := AppendFloat64(engine, nil, v)
			require.Len(t, buf, 8)
			require.Equal(t, v, Float64(engine, buf))
		}

		buf := AppendFloat64(engine, nil, math.NaN())
		require.True(t, math.IsNaN(Float64(engine, buf)))
	})

	t.Run("KnownLayout", func(t *testing.T) {
		// 1.0 is 0x3FF0000000000000, stored least significant byte first.
		buf := AppendFloat64(engine, nil, 1.0)
		require.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0xF0, 0x3F}, buf)
	})
}
