package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/bakermap/internal/export"
	"github.com/san-kum/bakermap/internal/frame"
)

const (
	DefaultOutput    = "Baker.gif"
	DefaultDimension = 100
	DefaultSteps     = 3
	DefaultDataDir   = ".bakermap"
)

var (
	ErrInvalidDimension = errors.New("config: dimension out of range")
	ErrInvalidSteps     = errors.New("config: steps must not be negative")
	ErrInvalidDelay     = errors.New("config: delay must not be negative")
	ErrEmptyOutput      = errors.New("config: output path is empty")
)

type Config struct {
	Output  string    `yaml:"output"`
	Input   string    `yaml:"input,omitempty"`
	Dim     int       `yaml:"dimension"`
	Steps   int       `yaml:"steps"`
	Random  bool      `yaml:"random"`
	Folded  bool      `yaml:"folded"`
	Verbose bool      `yaml:"verbose"`
	Seed    int64     `yaml:"seed"`
	Workers int       `yaml:"workers"`
	GIF     GIFConfig `yaml:"gif"`
	Record  bool      `yaml:"record"`
	DataDir string    `yaml:"data_dir"`
}

type GIFConfig struct {
	Delay   int    `yaml:"delay"`
	Palette string `yaml:"palette"`
	Dither  bool   `yaml:"dither"`
}

func DefaultConfig() *Config {
	return &Config{
		Output: DefaultOutput,
		Dim:    DefaultDimension,
		Steps:  DefaultSteps,
		GIF: GIFConfig{
			Delay:   export.DefaultDelay,
			Palette: export.PaletteAuto.String(),
		},
		DataDir: DefaultDataDir,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if !frame.ValidDim(c.Dim) {
		return fmt.Errorf("%w: got %d, max %d", ErrInvalidDimension, c.Dim, frame.MaxDim)
	}
	if c.Steps < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidSteps, c.Steps)
	}
	if c.GIF.Delay < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidDelay, c.GIF.Delay)
	}
	if strings.TrimSpace(c.Output) == "" {
		return ErrEmptyOutput
	}
	if _, err := export.ParsePaletteMethod(c.GIF.Palette); err != nil {
		return err
	}
	return nil
}

// Clone returns an independent copy, so presets can be customized safely.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// ParseDimension reads a dimension given on the command line. Anything that
// is not a non-negative integer yields DefaultDimension; ok reports whether
// the value was used as given. Zero is passed through and rejected later.
func ParseDimension(s string) (dim int, ok bool) {
	return parseCount(s, DefaultDimension)
}

// ParseSteps is ParseDimension for the frame count, defaulting to
// DefaultSteps.
func ParseSteps(s string) (steps int, ok bool) {
	return parseCount(s, DefaultSteps)
}

func parseCount(s string, def int) (int, bool) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 31)
	if err != nil {
		return def, false
	}
	return int(n), true
}
