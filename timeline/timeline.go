// Package timeline derives a per-sample time vector from a decoded recording.
//
// Two methods are available:
//
//   - format.ElapsedAndSamplerate anchors every sample-package on its stored
//     elapsed time. The elapsed value belongs to the last row of the package;
//     earlier rows are back-dated by the nominal sample interval.
//   - format.ZeroLinearSamplerate ignores elapsed and spaces rows at the nominal
//     sample interval starting from zero.
//
// Times are in milliseconds. Generate never modifies the table.
package timeline

import (
	"fmt"
	"math"

	"github.com/palmtree-bci/palmrec/diag"
	"github.com/palmtree-bci/palmrec/errs"
	"github.com/palmtree-bci/palmrec/format"
	"github.com/palmtree-bci/palmrec/sample"
	"github.com/palmtree-bci/palmrec/section"
)

// Result is a generated time vector with the warnings raised while building it.
type Result struct {
	// Times holds one time in milliseconds per table row.
	Times []float64
	// Diagnostics holds non-fatal warnings such as diag.UnreliableTimeline.
	Diagnostics diag.List
}

// Generate builds the time vector of t with the given method.
//
// Parameters:
//   - h: Header of the recording the table was decoded from
//   - t: Decoded sample table
//   - method: Timeline method
//   - opts: Options such as WithLogger
//
// Returns:
//   - Result: One time per table row plus warnings
//   - error: ErrInvalidMethodArgument, ErrIncompatibleMethodVersion or ErrMissingPipelineStreams
func Generate(h *section.Header, t *sample.Table, method format.TimelineMethod, opts ...Option) (Result, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return Result{}, err
	}
	if h == nil || t == nil {
		return Result{}, fmt.Errorf("%w: header and table are required", errs.ErrInvalidMethodArgument)
	}

	switch method {
	case format.ElapsedAndSamplerate:
		return elapsedAndSamplerate(h, t, cfg.logf)
	case format.ZeroLinearSamplerate:
		return zeroLinearSamplerate(h, t)
	default:
		return Result{}, fmt.Errorf("%w: unknown method %d", errs.ErrInvalidMethodArgument, method)
	}
}

func zeroLinearSamplerate(h *section.Header, t *sample.Table) (Result, error) {
	if err := validate(h, t); err != nil {
		return Result{}, err
	}

	times := make([]float64, t.Rows())
	for i := range times {
		times[i] = float64(i) * 1000 / h.SampleRate
	}

	return Result{Times: times}, nil
}

func elapsedAndSamplerate(h *section.Header, t *sample.Table, logf func(string, ...any)) (Result, error) {
	// Version 1 stores the time since the previous sample, which is too coarse to anchor on.
	if !h.Version.HasPackages() {
		return Result{}, fmt.Errorf("%w: %s requires version 2 or later, got %d",
			errs.ErrIncompatibleMethodVersion, format.ElapsedAndSamplerate, h.Version)
	}
	if h.Kind == format.KindPipeline && h.NumPlaybackStreams == 0 {
		return Result{}, fmt.Errorf("%w: %s needs the pipeline input streams",
			errs.ErrMissingPipelineStreams, format.ElapsedAndSamplerate)
	}
	if err := validate(h, t); err != nil {
		return Result{}, err
	}
	if t.Cols() <= section.ColumnElapsed {
		return Result{}, fmt.Errorf("%w: table has no elapsed column", errs.ErrInvalidMethodArgument)
	}

	elapsed := t.Col(section.ColumnElapsed)
	if h.MaxSamplesPerPackage == 1 {
		return Result{Times: elapsed}, nil
	}

	var res Result
	if d, ok := checkStreamBalance(h); !ok {
		diag.Warn(logf, d)
		res.Diagnostics = append(res.Diagnostics, d)
	}

	ids := t.Col(section.ColumnSampleID)
	interval := 1000 / h.SampleRate
	res.Times = make([]float64, len(ids))

	// A package starts wherever the id differs from the previous row.
	for start := 0; start < len(ids); {
		end := start + 1
		for end < len(ids) && ids[end] == ids[start] {
			end++
		}

		k := end - start
		for j := range k {
			res.Times[start+j] = elapsed[start+j] - float64(k-1-j)*interval
		}
		start = end
	}

	return res, nil
}

// validate checks the arguments shared by both methods.
func validate(h *section.Header, t *sample.Table) error {
	if !(h.SampleRate > 0) || math.IsInf(h.SampleRate, 0) {
		return fmt.Errorf("%w: sample rate must be positive, got %v", errs.ErrInvalidMethodArgument, h.SampleRate)
	}
	if t.Rows() == 0 {
		return fmt.Errorf("%w: table is empty", errs.ErrInvalidMethodArgument)
	}

	return nil
}

// checkStreamBalance reports a warning when streams log different numbers of
// samples per package and the largest exceeds the anchor stream (stream 0):
// back-dating at the nominal rate is then inaccurate for the shorter streams.
func checkStreamBalance(h *section.Header) (diag.Diagnostic, bool) {
	if len(h.Streams) == 0 {
		return diag.Diagnostic{}, true
	}

	anchor := int(h.Streams[0].SamplesPerPackage)
	equal := true
	for _, s := range h.Streams[1:] {
		if int(s.SamplesPerPackage) != anchor {
			equal = false
			break
		}
	}
	if equal || h.MaxSamplesPerPackage <= anchor {
		return diag.Diagnostic{}, true
	}

	return diag.New(diag.UnreliableTimeline, -1,
		"streams log up to %d samples per package but the anchor stream logs %d, times of the shorter streams are unreliable",
		h.MaxSamplesPerPackage, anchor), false
}
