package chandasdna

import "github.com/vedicmetrics/ChandasDNA/internal/meter"

type Config struct {
	DBPath  string
	Logger  Logger
	Options meter.Options
}

type Option func(*Config)

func WithDBPath(path string) Option {
	return func(c *Config) {
		c.DBPath = path
	}
}

func WithLogger(log Logger) Option {
	return func(c *Config) {
		c.Logger = log
	}
}

// WithIdentifyThreshold sets the minimum score for a confident match.
func WithIdentifyThreshold(t float64) Option {
	return func(c *Config) {
		c.Options.IdentifyThreshold = t
	}
}

// WithProbableThreshold sets the minimum score for a probable match.
func WithProbableThreshold(t float64) Option {
	return func(c *Config) {
		c.Options.ProbableThreshold = t
	}
}

// WithHintBoost sets the score bonus applied when a caller's hint names a
// candidate.
func WithHintBoost(b float64) Option {
	return func(c *Config) {
		c.Options.HintBoost = b
	}
}

// WithStrictFinal disables the verse-final tolerance, so the last syllable
// of each quarter must match the canonical weight exactly.
func WithStrictFinal() Option {
	return func(c *Config) {
		c.Options.FinalFree = false
	}
}

func defaultConfig() *Config {
	return &Config{
		DBPath:  "chandasdna.sqlite3",
		Options: meter.DefaultOptions(),
	}
}
