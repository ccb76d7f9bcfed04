package timeline

import (
	"github.com/palmtree-bci/palmrec/diag"
	"github.com/palmtree-bci/palmrec/internal/options"
)

// Config holds the settings of a Generate call. It is built from Options.
type Config struct {
	logf func(format string, v ...any)
}

// Option configures Generate.
type Option = options.Option[*Config]

func newConfig(opts ...Option) (*Config, error) {
	cfg := &Config{logf: diag.Logf}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithLogger sends timeline warnings to f instead of diag.Logf.
// Passing nil mutes them; they are still returned in Result.Diagnostics.
func WithLogger(f func(format string, v ...any)) Option {
	return options.NoError(func(c *Config) {
		if f == nil {
			c.logf = diag.Discard
			return
		}
		c.logf = f
	})
}
