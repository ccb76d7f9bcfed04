package recording

import (
	"fmt"

	"github.com/palmtree-bci/palmrec/diag"
	"github.com/palmtree-bci/palmrec/errs"
	"github.com/palmtree-bci/palmrec/internal/options"
)

// Config holds the decoder configuration. It is built from Options.
type Config struct {
	logf          func(format string, v ...any)
	maxTableBytes int64
	decompress    bool
	headerOnly    bool
	fingerprint   bool
}

// Option configures a Decoder.
type Option = options.Option[*Config]

func defaultConfig() *Config {
	return &Config{decompress: true}
}

func newConfig(opts ...Option) (*Config, error) {
	cfg := defaultConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// logger returns the configured logger, falling back to the package logger of diag.
func (c *Config) logger() func(format string, v ...any) {
	if c.logf != nil {
		return c.logf
	}

	return diag.Logf
}

// WithLogger sends the decoder's warnings to f instead of diag.Logf.
// Passing nil mutes the decoder.
func WithLogger(f func(format string, v ...any)) Option {
	return options.NoError(func(c *Config) {
		if f == nil {
			c.logf = diag.Discard
			return
		}
		c.logf = f
	})
}

// WithMaxTableBytes rejects recordings whose sample table would need more than
// n bytes with errs.ErrTableTooLarge. By default the table size is unlimited.
func WithMaxTableBytes(n int64) Option {
	return options.Named("WithMaxTableBytes", func(c *Config) error {
		if n <= 0 {
			return fmt.Errorf("%w: table byte limit must be positive, got %d", errs.ErrInvalidOption, n)
		}
		c.maxTableBytes = n

		return nil
	})
}

// WithDecompression enables or disables detection of compressed sources.
// It is enabled by default.
func WithDecompression(enabled bool) Option {
	return options.NoError(func(c *Config) {
		c.decompress = enabled
	})
}

// WithHeaderOnly skips table allocation and the filling pass. Version 2+
// recordings are still counted so TotalSamples and TotalPackages are set.
func WithHeaderOnly() Option {
	return options.NoError(func(c *Config) {
		c.headerOnly = true
	})
}

// WithFingerprint computes Recording.Fingerprint, an xxHash64 of the
// (decompressed) source bytes.
func WithFingerprint() Option {
	return options.NoError(func(c *Config) {
		c.fingerprint = true
	})
}
