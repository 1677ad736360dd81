// Package config holds the settings for a render or playback job.
package config

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/justyntemme/noisesynth/pkg/dsp/oscillator"
	"github.com/justyntemme/noisesynth/pkg/framework/debug"
)

var (
	// ErrUnknownKey is returned when a config file has keys Config does not define.
	ErrUnknownKey = errors.New("config: unknown key")
	// ErrInvalid is returned by Validate.
	ErrInvalid = errors.New("config: invalid")
)

// Output formats
const (
	FormatWAV = "wav"
	FormatRaw = "raw"
)

// Duration is a time.Duration written as a Go duration string ("2s", "750ms").
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Config describes one job. Params are applied to the algorithm through
// UpdateParameter before the first sample; they are never written back.
type Config struct {
	SampleRate uint32             `toml:"sample_rate"`
	BlockSize  int                `toml:"block_size"`
	Duration   Duration           `toml:"duration"`
	Algorithm  string             `toml:"algorithm"`
	Output     string             `toml:"output"`
	Format     string             `toml:"format"`
	BitDepth   int                `toml:"bit_depth"`
	Gain       float64            `toml:"gain_db"`
	Fade       Duration           `toml:"fade"` // ramp at both ends of the output
	LogLevel   string             `toml:"log_level"`
	LogFile    string             `toml:"log_file"`
	Params     map[string]float64 `toml:"params"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		SampleRate: 44100,
		BlockSize:  512,
		Duration:   Duration{2 * time.Second},
		Algorithm:  oscillator.SimplexHarmonicsName,
		Output:     "out.wav",
		Format:     FormatWAV,
		BitDepth:   16,
		Fade:       Duration{10 * time.Millisecond},
		LogLevel:   "info",
		Params:     map[string]float64{},
	}
}

// Load reads a TOML file over the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%w in %s: %s", ErrUnknownKey, path, strings.Join(keys, ", "))
	}
	if cfg.Params == nil {
		cfg.Params = map[string]float64{}
	}
	return cfg, nil
}

// Validate checks the job settings. Parameter names are checked later by
// the algorithm itself.
func (c *Config) Validate() error {
	var problems []string

	if c.SampleRate == 0 {
		problems = append(problems, "sample_rate must be positive")
	}
	if c.BlockSize <= 0 {
		problems = append(problems, "block_size must be positive")
	}
	if c.Duration.Duration <= 0 {
		problems = append(problems, "duration must be positive")
	}
	if c.Fade.Duration < 0 {
		problems = append(problems, "fade must not be negative")
	}
	if c.Algorithm == "" {
		problems = append(problems, "algorithm is required")
	}
	switch c.Format {
	case FormatWAV:
		if c.BitDepth != 16 && c.BitDepth != 24 {
			problems = append(problems, fmt.Sprintf("bit_depth %d is not 16 or 24", c.BitDepth))
		}
	case FormatRaw:
	default:
		problems = append(problems, fmt.Sprintf("format %q is not %q or %q", c.Format, FormatWAV, FormatRaw))
	}
	if _, err := debug.ParseLevel(c.LogLevel); err != nil {
		problems = append(problems, err.Error())
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}
	return nil
}

// Samples returns the number of samples the job renders.
func (c *Config) Samples() int {
	return int(math.Round(c.Duration.Seconds() * float64(c.SampleRate)))
}

// FadeSamples returns the fade length in samples, at most half the job
func (c *Config) FadeSamples() int {
	n := int(math.Round(c.Fade.Seconds() * float64(c.SampleRate)))
	if half := c.Samples() / 2; n > half {
		n = half
	}
	return n
}

// ApplyParams calls set for every configured parameter, in name order,
// stopping at the first error.
func (c *Config) ApplyParams(set func(name string, value float64) error) error {
	names := make([]string, 0, len(c.Params))
	for name := range c.Params {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := set(name, c.Params[name]); err != nil {
			return fmt.Errorf("config: params.%s: %w", name, err)
		}
	}
	return nil
}
