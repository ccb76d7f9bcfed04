package timeline

import (
	"fmt"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"

	"github.com/palmtree-bci/palmrec/diag"
	"github.com/palmtree-bci/palmrec/errs"
	"github.com/palmtree-bci/palmrec/format"
	"github.com/palmtree-bci/palmrec/internal/fixture"
	"github.com/palmtree-bci/palmrec/recording"
	"github.com/palmtree-bci/palmrec/sample"
	"github.com/palmtree-bci/palmrec/section"
)

func init() {
	diag.SetLogger(nil)
}

// packagedTable builds a v2 style table from (id, elapsed) pairs.
func packagedTable(t *testing.T, rows ...[2]float64) *sample.Table {
	t.Helper()

	tbl, err := sample.NewTable(len(rows), 3)
	require.NoError(t, err)
	for i, r := range rows {
		require.NoError(t, tbl.SetRange(i, 0, r[:]))
	}

	return tbl
}

func pipelineHeader(rate float64, spp ...uint16) *section.Header {
	h := &section.Header{
		Version:            format.Version2,
		Kind:               format.KindPipeline,
		SampleRate:         rate,
		NumPlaybackStreams: 1,
	}
	for _, s := range spp {
		h.Streams = append(h.Streams, section.StreamDescriptor{DataType: 1, SamplesPerPackage: s})
		h.MaxSamplesPerPackage = max(h.MaxSamplesPerPackage, int(s))
	}

	return h
}

func TestZeroLinearSamplerate(t *testing.T) {
	for _, rate := range []float64{100, 256, 512.5, 30000} {
		for _, n := range []int{1, 7, 1000} {
			t.Run(fmt.Sprintf("rate=%v/n=%d", rate, n), func(t *testing.T) {
				tbl, err := sample.NewTable(n, 2)
				require.NoError(t, err)

				h := &section.Header{Version: format.Version1, Kind: format.KindSource, SampleRate: rate}
				res, err := Generate(h, tbl, format.ZeroLinearSamplerate)
				require.NoError(t, err)
				require.Len(t, res.Times, n)
				for i, v := range res.Times {
					require.Equal(t, float64(i)*1000/rate, v)
				}
			})
		}
	}
}

func TestElapsedAndSamplerate_Passthrough(t *testing.T) {
	tbl := packagedTable(t, [2]float64{1, 10}, [2]float64{2, 20.5}, [2]float64{3, 31}, [2]float64{5, 47.25})

	res, err := Generate(pipelineHeader(100, 1, 1), tbl, format.ElapsedAndSamplerate)
	require.NoError(t, err)
	require.Equal(t, tbl.Col(section.ColumnElapsed), res.Times)
	require.Empty(t, res.Diagnostics)
}

func TestElapsedAndSamplerate_BackDating(t *testing.T) {
	// 1000 Hz: 1 ms between samples. Package 1 has 3 rows, package 2 has 2, package 3 has 1.
	tbl := packagedTable(t,
		[2]float64{1, 30}, [2]float64{1, 30}, [2]float64{1, 30},
		[2]float64{2, 40}, [2]float64{2, 40},
		[2]float64{3, 50},
	)

	res, err := Generate(pipelineHeader(1000, 3, 3), tbl, format.ElapsedAndSamplerate)
	require.NoError(t, err)
	require.Equal(t, []float64{28, 29, 30, 39, 40, 50}, res.Times)
	require.Empty(t, res.Diagnostics)
}

func TestElapsedAndSamplerate_UnreliableWarning(t *testing.T) {
	tbl := packagedTable(t, [2]float64{1, 10}, [2]float64{1, 10})

	tests := []struct {
		name string
		spp  []uint16
		warn bool
	}{
		{"Equal", []uint16{2, 2}, false},
		{"AnchorIsLargest", []uint16{4, 2}, false},
		{"AnchorIsShorter", []uint16{2, 4}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Generate(pipelineHeader(500, tt.spp...), tbl, format.ElapsedAndSamplerate)
			require.NoError(t, err)
			require.Equal(t, tt.warn, res.Diagnostics.Has(diag.UnreliableTimeline))
			require.Len(t, res.Times, 2)
		})
	}
}

func TestElapsedAndSamplerate_WarningLogger(t *testing.T) {
	tbl := packagedTable(t, [2]float64{1, 10}, [2]float64{1, 10})
	h := pipelineHeader(500, 2, 4)

	var logged []string
	res, err := Generate(h, tbl, format.ElapsedAndSamplerate, WithLogger(func(format string, v ...any) {
		logged = append(logged, fmt.Sprintf(format, v...))
	}))
	require.NoError(t, err)
	require.True(t, res.Diagnostics.Has(diag.UnreliableTimeline))
	require.Len(t, logged, 1)
	require.Contains(t, logged[0], "[WARN] palmrec: UnreliableTimeline")

	muted := 0
	diag.SetLogger(func(string, ...any) { muted++ })
	defer diag.SetLogger(nil)

	res, err = Generate(h, tbl, format.ElapsedAndSamplerate, WithLogger(nil))
	require.NoError(t, err)
	require.True(t, res.Diagnostics.Has(diag.UnreliableTimeline))
	require.Zero(t, muted)
}

func TestElapsedAndSamplerate_SourceIgnoresPlaybackStreams(t *testing.T) {
	h := pipelineHeader(250, 4)
	h.Kind = format.KindSource
	h.NumPlaybackStreams = 0
	tbl := packagedTable(t, [2]float64{9, 100}, [2]float64{9, 100})

	res, err := Generate(h, tbl, format.ElapsedAndSamplerate)
	require.NoError(t, err)
	require.Equal(t, []float64{96, 100}, res.Times)
}

func TestGenerate_Errors(t *testing.T) {
	tbl := packagedTable(t, [2]float64{1, 10})
	empty, err := sample.NewTable(0, 3)
	require.NoError(t, err)

	v1 := &section.Header{Version: format.Version1, Kind: format.KindPipeline, SampleRate: 100, NumPlaybackStreams: 1}
	noPlayback := pipelineHeader(100, 1)
	noPlayback.NumPlaybackStreams = 0

	tests := []struct {
		name   string
		h      *section.Header
		t      *sample.Table
		method format.TimelineMethod
		err    error
	}{
		{"V1Elapsed", v1, tbl, format.ElapsedAndSamplerate, errs.ErrIncompatibleMethodVersion},
		{"V1ElapsedEmpty", v1, empty, format.ElapsedAndSamplerate, errs.ErrIncompatibleMethodVersion},
		{"MissingPlayback", noPlayback, tbl, format.ElapsedAndSamplerate, errs.ErrMissingPipelineStreams},
		{"ZeroRate", pipelineHeader(0, 1), tbl, format.ZeroLinearSamplerate, errs.ErrInvalidMethodArgument},
		{"NegativeRate", pipelineHeader(-5, 1), tbl, format.ElapsedAndSamplerate, errs.ErrInvalidMethodArgument},
		{"NaNRate", pipelineHeader(math.NaN(), 1), tbl, format.ZeroLinearSamplerate, errs.ErrInvalidMethodArgument},
		{"InfRate", pipelineHeader(math.Inf(1), 1), tbl, format.ZeroLinearSamplerate, errs.ErrInvalidMethodArgument},
		{"EmptyZeroLinear", pipelineHeader(100, 1), empty, format.ZeroLinearSamplerate, errs.ErrInvalidMethodArgument},
		{"EmptyElapsed", pipelineHeader(100, 2), empty, format.ElapsedAndSamplerate, errs.ErrInvalidMethodArgument},
		{"UnknownMethod", pipelineHeader(100, 1), tbl, format.TimelineMethod(9), errs.ErrInvalidMethodArgument},
		{"NilTable", pipelineHeader(100, 1), nil, format.ZeroLinearSamplerate, errs.ErrInvalidMethodArgument},
		{"NilHeader", nil, tbl, format.ZeroLinearSamplerate, errs.ErrInvalidMethodArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := append([]float64(nil), tbl.Data()...)

			res, err := Generate(tt.h, tt.t, tt.method)
			require.ErrorIs(t, err, tt.err)
			require.Nil(t, res.Times)
			if diff := cmp.Diff(before, tbl.Data(), cmpopts.EquateNaNs()); diff != "" {
				t.Fatalf("table changed (-before +after):\n%s", diff)
			}
		})
	}
}

func TestGenerate_ThreePackagePipeline(t *testing.T) {
	b := fixture.New(format.Version2, "dat")
	b.SampleRate = 100
	b.NumPlaybackStreams = 2
	b.Streams = fixture.UniformStreams(2, 1)
	b.ColumnNames = []string{"id", "elapsed", "a", "b"}
	b.PipelinePackage(1, 10.0, 1, 2)
	b.PipelinePackage(2, 20.5, 3, 4)
	b.PipelinePackage(3, 31.0, 5, 6)

	dec, err := recording.NewDecoder()
	require.NoError(t, err)
	rec, err := dec.DecodeBytes(b.Bytes())
	require.NoError(t, err)
	require.Equal(t, 3, rec.Table.Rows())

	zero, err := Generate(rec.Header, rec.Table, format.ZeroLinearSamplerate)
	require.NoError(t, err)
	require.Equal(t, []float64{0, 10, 20}, zero.Times)

	elapsed, err := Generate(rec.Header, rec.Table, format.ElapsedAndSamplerate)
	require.NoError(t, err)
	require.Equal(t, []float64{10.0, 20.5, 31.0}, elapsed.Times)
}
