package recording

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/palmtree-bci/palmrec/diag"
	"github.com/palmtree-bci/palmrec/errs"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg, err := newConfig()
	require.NoError(t, err)
	require.True(t, cfg.decompress)
	require.False(t, cfg.headerOnly)
	require.False(t, cfg.fingerprint)
	require.Zero(t, cfg.maxTableBytes)
	require.Nil(t, cfg.logf)
}

func TestOptions(t *testing.T) {
	var got []string
	logf := func(format string, v ...any) { got = append(got, fmt.Sprintf(format, v...)) }

	cfg, err := newConfig(
		WithLogger(logf),
		WithMaxTableBytes(1024),
		WithDecompression(false),
		WithHeaderOnly(),
		WithFingerprint(),
	)
	require.NoError(t, err)
	require.Equal(t, int64(1024), cfg.maxTableBytes)
	require.False(t, cfg.decompress)
	require.True(t, cfg.headerOnly)
	require.True(t, cfg.fingerprint)

	cfg.logger()("x %d", 1)
	require.Equal(t, []string{"x 1"}, got)
}

func TestWithLogger_Nil(t *testing.T) {
	prev := diag.Logf
	t.Cleanup(func() { diag.Logf = prev })

	var calls int
	diag.SetLogger(func(string, ...any) { calls++ })

	muted, err := newConfig(WithLogger(nil))
	require.NoError(t, err)
	muted.logger()("muted")
	require.Zero(t, calls)

	// Without WithLogger the package logger of diag is used at call time.
	def, err := newConfig()
	require.NoError(t, err)
	def.logger()("default")
	require.Equal(t, 1, calls)
}

func TestWithMaxTableBytes_Invalid(t *testing.T) {
	for _, n := range []int64{0, -1} {
		_, err := newConfig(WithMaxTableBytes(n))
		require.ErrorIs(t, err, errs.ErrInvalidOption)
		require.Contains(t, err.Error(), "WithMaxTableBytes")
	}
}
