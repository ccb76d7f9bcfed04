package recording

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/palmtree-bci/palmrec/compress"
	"github.com/palmtree-bci/palmrec/diag"
	"github.com/palmtree-bci/palmrec/errs"
	"github.com/palmtree-bci/palmrec/format"
	"github.com/palmtree-bci/palmrec/internal/bytestream"
	"github.com/palmtree-bci/palmrec/internal/hash"
	"github.com/palmtree-bci/palmrec/sample"
	"github.com/palmtree-bci/palmrec/section"
)

// Decoder decodes recordings with a fixed configuration.
//
// A Decoder holds no per-recording state and is safe for concurrent use;
// every Decode call owns its cursor and table.
type Decoder struct {
	cfg *Config
}

// NewDecoder creates a decoder.
//
// Returns:
//   - *Decoder: The configured decoder
//   - error: ErrInvalidOption if an option value is invalid
func NewDecoder(opts ...Option) (*Decoder, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	return &Decoder{cfg: cfg}, nil
}

// DecodeBytes decodes an in-memory recording.
func (d *Decoder) DecodeBytes(data []byte) (*Recording, error) {
	return d.Decode(bytes.NewReader(data), int64(len(data)))
}

// Decode decodes the recording held in the first size bytes of r.
//
// Header errors are fatal and return a nil Recording. Once the header is
// decoded a Recording is always returned: when the data cannot be read
// (plugin packages, allocation limit) it carries the header and the error
// says why; conditions found in the package stream end the scan early and
// are reported in Recording.Diagnostics instead.
//
// Parameters:
//   - r: Source of the recording, possibly compressed
//   - size: Byte length of the source
//
// Returns:
//   - *Recording: The decoded recording
//   - error: A fatal header, source or data stage error
func (d *Decoder) Decode(r io.ReaderAt, size int64) (*Recording, error) {
	r, size, ct, err := d.prepareSource(r, size)
	if err != nil {
		return nil, err
	}

	rec := &Recording{Compression: ct}
	if d.cfg.fingerprint {
		if rec.Fingerprint, err = fingerprint(r, size); err != nil {
			return nil, err
		}
	}

	c := bytestream.NewCursor(r, size)
	h, err := section.ParseHeader(c)
	if err != nil {
		return nil, err
	}
	rec.Header = h
	d.record(rec, h.Diagnostics...)

	if h.Version == format.Version1 {
		return rec, d.decodeRows(c, rec)
	}

	return rec, d.decodePackages(c, rec)
}

// decodeRows reads a version 1 recording.
func (d *Decoder) decodeRows(c *bytestream.Cursor, rec *Recording) error {
	h := rec.Header
	if d.cfg.headerOnly {
		return nil
	}

	t, err := d.allocate(h.NumRows, int64(max(h.NumColumns, 0)))
	if err != nil {
		return err
	}
	if err := readRows(c, h, t); err != nil {
		return err
	}
	rec.Table = t
	d.record(rec, t.SetColumnNames(h.ColumnNames)...)

	return nil
}

// decodePackages reads a version 2+ recording in two passes over the same
// traversal: count, allocate once, fill.
func (d *Decoder) decodePackages(c *bytestream.Cursor, rec *Recording) error {
	h := rec.Header

	counter := &countVisitor{}
	stop, err := scan(c, h, counter)
	if err != nil {
		return err
	}
	h.TotalPackages = counter.packages
	h.TotalSamples = counter.samples
	if stop != nil {
		d.record(rec, *stop)
	}

	if d.cfg.headerOnly {
		return nil
	}

	t, err := d.allocate(h.TotalSamples, int64(h.NumStreams()+h.HeaderColumns()))
	if err != nil {
		return err
	}

	filler := &fillVisitor{c: c, h: h, table: t}
	// The stop condition, if any, is the one the counting pass already recorded.
	if _, err := scan(c, h, filler); err != nil {
		return err
	}
	if int64(filler.row) != h.TotalSamples {
		return fmt.Errorf("%w: filled %d of %d counted rows", errs.ErrTableOverflow, filler.row, h.TotalSamples)
	}

	rec.Table = t
	d.record(rec, t.SetColumnNames(h.ColumnNames)...)

	return nil
}

// allocate creates the NaN-filled table after checking the allocation limit.
func (d *Decoder) allocate(rows, cols int64) (*sample.Table, error) {
	if limit := d.cfg.maxTableBytes; limit > 0 {
		if cols > 0 && rows > limit/(cols*section.ValueSize) {
			return nil, fmt.Errorf("%w: %d × %d table needs more than %d bytes",
				errs.ErrTableTooLarge, rows, cols, limit)
		}
	}

	return sample.NewTable(int(rows), int(cols))
}

// record appends diagnostics to the recording and logs them.
func (d *Decoder) record(rec *Recording, diags ...diag.Diagnostic) {
	logf := d.cfg.logger()
	for _, dg := range diags {
		rec.Diagnostics = append(rec.Diagnostics, dg)
		diag.Warn(logf, dg)
	}
}

// prepareSource inflates compressed sources in memory. Uncompressed sources
// are returned unchanged and are never read in full.
func (d *Decoder) prepareSource(r io.ReaderAt, size int64) (io.ReaderAt, int64, format.CompressionType, error) {
	if size < 0 {
		return nil, 0, 0, fmt.Errorf("%w: negative size %d", errs.ErrOpenFailure, size)
	}
	if !d.cfg.decompress || size == 0 {
		return r, size, format.CompressionNone, nil
	}

	prefix := make([]byte, min(size, compress.DetectSize))
	if err := readFullAt(r, prefix, 0); err != nil {
		return nil, 0, 0, err
	}

	ct := compress.Detect(prefix)
	if ct == format.CompressionNone {
		return r, size, ct, nil
	}

	raw := make([]byte, size)
	if err := readFullAt(r, raw, 0); err != nil {
		return nil, 0, 0, err
	}
	data, _, err := compress.Inflate(raw)
	if err != nil {
		return nil, 0, 0, err
	}

	return bytes.NewReader(data), int64(len(data)), ct, nil
}

func readFullAt(r io.ReaderAt, dst []byte, off int64) error {
	n, err := r.ReadAt(dst, off)
	if n == len(dst) {
		return nil
	}
	if err == nil || errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}

	return fmt.Errorf("%w: read %d of %d bytes: %w", errs.ErrOpenFailure, n, len(dst), err)
}

// fingerprint hashes the whole source.
func fingerprint(r io.ReaderAt, size int64) (uint64, error) {
	digest := hash.NewDigest()
	if _, err := io.Copy(digest, io.NewSectionReader(r, 0, size)); err != nil {
		return 0, fmt.Errorf("%w: fingerprint: %w", errs.ErrOpenFailure, err)
	}

	return digest.Sum64(), nil
}
