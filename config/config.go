// Package config holds the process-global configuration snapshot the
// rendering engine reads once at the start of every render.
package config

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/ziamath-go/ziamath/zerrors"
)

// MathConfig controls the default math-mode rendering parameters.
type MathConfig struct {
	Font       string  `toml:"mathfont,omitempty"`
	Variant    string  `toml:"variant,omitempty"`
	FontSize   float64 `toml:"fontsize,omitempty"`
	Color      string  `toml:"color,omitempty"`
	Background string  `toml:"background,omitempty"`
}

// TextConfig controls prose spans in the Mixed-Text Driver.
type TextConfig struct {
	Font        string  `toml:"textfont,omitempty"`
	Variant     string  `toml:"variant,omitempty"`
	FontSize    float64 `toml:"fontsize,omitempty"`
	Color       string  `toml:"color,omitempty"`
	LineSpacing float64 `toml:"linespacing,omitempty"`
}

// NumberingConfig controls the Equation Number Overlay.
type NumberingConfig struct {
	Autonumber   bool   `toml:"autonumber,omitempty"`
	Format       string `toml:"format,omitempty"`
	FormatFunc   string `toml:"format_func,omitempty"`
	ColumnWidth  string `toml:"columnwidth,omitempty"`
}

// Config is the process-global snapshot described in spec §5 and §6.
// A render call must capture a Config with Snapshot at entry and use that
// captured value throughout, never re-reading the package-level default
// mid-render.
type Config struct {
	SVG2            bool            `toml:"svg2"`
	Precision       int             `toml:"precision"`
	MinSizeFraction float64         `toml:"min_size_fraction"`
	DecimalSep      string          `toml:"decimal_separator"`
	Math            MathConfig      `toml:"math"`
	Text            TextConfig      `toml:"text"`
	Numbering       NumberingConfig `toml:"numbering"`
}

// Default returns the documented defaults.
func Default() *Config {
	return &Config{
		SVG2:            true,
		Precision:       5,
		MinSizeFraction: 0.4,
		DecimalSep:      ".",
		Math: MathConfig{
			Variant:  "normal",
			FontSize: 24,
			Color:    "black",
		},
		Text: TextConfig{
			Variant:     "normal",
			FontSize:    24,
			Color:       "black",
			LineSpacing: 1.0,
		},
		Numbering: NumberingConfig{
			Format:      "(%d)",
			ColumnWidth: "6in",
		},
	}
}

// Load reads a TOML configuration file, overlaying it on Default.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &zerrors.ConfigError{Msg: "reading config file " + path, Err: err}
	}
	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, &zerrors.ConfigError{Msg: "decoding config file " + path, Err: err}
	}
	return cfg, nil
}

// Snapshot returns an independent copy of c, safe to hold for the
// duration of one render call regardless of concurrent mutation of the
// package-level default elsewhere.
func (c *Config) Snapshot() *Config {
	cp := *c
	return &cp
}

// decimalSeparatorValid reports whether sep is one of the two values
// spec §6 recognizes for decimal_separator.
func decimalSeparatorValid(sep string) bool {
	return sep == "." || sep == ","
}

// Validate checks the invariants Load cannot express via struct tags
// alone: decimal_separator is '.' or ',', and min_size_fraction lies in
// (0, 1]. It returns a ConfigError for the first one violated.
func (c *Config) Validate() error {
	if !decimalSeparatorValid(c.DecimalSep) {
		return &zerrors.ConfigError{Msg: "decimal_separator must be '.' or ','"}
	}
	if c.MinSizeFraction <= 0 || c.MinSizeFraction > 1 {
		return &zerrors.ConfigError{Msg: "min_size_fraction must be in (0, 1]"}
	}
	return nil
}
