package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetFloat64Slice(t *testing.T) {
	values, cleanup := GetFloat64Slice(8)
	require.Len(t, values, 8)
	for i := range values {
		values[i] = float64(i)
	}
	cleanup()

	smaller, cleanup := GetFloat64Slice(3)
	defer cleanup()
	require.Len(t, smaller, 3)

	larger, cleanupLarger := GetFloat64Slice(64)
	defer cleanupLarger()
	require.Len(t, larger, 64)
}

func TestGetFloat64Slice_Zero(t *testing.T) {
	values, cleanup := GetFloat64Slice(0)
	defer cleanup()
	require.Empty(t, values)
}
