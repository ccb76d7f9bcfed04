package diag

import (
	"errors"
	"fmt"
	"testing"

	"github.com/palmtree-bci/palmrec/errs"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		kind     Kind
		sentinel error
	}{
		{"TruncatedPackage", TruncatedPackage, errs.ErrTruncatedPackage},
		{"TruncatedChunk", TruncatedChunk, errs.ErrTruncatedChunk},
		{"MalformedPackage", MalformedPackage, errs.ErrMalformedPackage},
		{"ColumnCountMismatch", ColumnCountMismatch, nil},
		{"UnreliableTimeline", UnreliableTimeline, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New(tt.kind, 42, "value %d", 7)
			require.Equal(t, tt.kind, d.Kind)
			require.Equal(t, int64(42), d.Offset)
			require.Equal(t, "value 7", d.Message)

			if tt.sentinel == nil {
				require.NoError(t, d.Err)
				return
			}
			require.ErrorIs(t, d.Err, tt.sentinel)
		})
	}
}

func TestDiagnostic_String(t *testing.T) {
	require.Equal(t, "TruncatedChunk at offset 10: short", New(TruncatedChunk, 10, "short").String())
	require.Equal(t, "DuplicateColumn: x", New(DuplicateColumn, -1, "x").String())
}

func TestList(t *testing.T) {
	var l List
	require.False(t, l.Has(TruncatedPackage))
	require.NoError(t, l.Err())

	l = append(l, New(ColumnCountMismatch, -1, "names"), New(TruncatedPackage, 100, "body"))

	require.True(t, l.Has(TruncatedPackage))
	require.False(t, l.Has(MalformedPackage))
	require.Equal(t, []Kind{ColumnCountMismatch, TruncatedPackage}, l.Kinds())

	err := l.Err()
	require.Error(t, err)
	require.True(t, errors.Is(err, errs.ErrTruncatedPackage))
	require.False(t, errors.Is(err, errs.ErrTruncatedChunk))
}

func TestWarn(t *testing.T) {
	var got []string
	capture := func(format string, v ...any) {
		got = append(got, fmt.Sprintf(format, v...))
	}

	Warn(capture, New(MalformedPackage, 5, "bad chunk"))
	require.Equal(t, []string{"[WARN] palmrec: MalformedPackage at offset 5: bad chunk"}, got)

	t.Run("PackageLogger", func(t *testing.T) {
		prev := Logf
		t.Cleanup(func() { Logf = prev })

		got = nil
		SetLogger(capture)
		Warn(nil, New(DuplicateColumn, -1, "x"))
		require.Len(t, got, 1)

		SetLogger(nil)
		Warn(nil, New(DuplicateColumn, -1, "x"))
		require.Len(t, got, 1)
	})
}
