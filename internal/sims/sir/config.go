package sir

import (
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"strings"
)

// DefaultMaxCells is the default ceiling on width*height.
const DefaultMaxCells = 1_000_000_000

// Params holds the transition rates and initial seeding ratios.
type Params struct {
	Beta   float64 // infection rate
	Gamma  float64 // recovery rate
	Dt     float64 // time-step scale
	IRatio float64 // initial infected fraction
	// SRatio is accepted for configuration compatibility and has no effect.
	SRatio float64
}

// DefaultParams returns rates for a slow outbreak seeded at 1% of cells.
func DefaultParams() Params {
	return Params{
		Beta:   0.3,
		Gamma:  0.1,
		Dt:     1.0,
		IRatio: 0.01,
		SRatio: 1.0,
	}
}

// Validate checks every parameter range and reports all violations together.
func (p Params) Validate() error {
	var errs []error
	if !(p.Beta >= 0) {
		errs = append(errs, fmt.Errorf("%w: beta %v must be >= 0", ErrInvalidParams, p.Beta))
	}
	if !(p.Gamma >= 0) {
		errs = append(errs, fmt.Errorf("%w: gamma %v must be >= 0", ErrInvalidParams, p.Gamma))
	}
	if !(p.Dt > 0) {
		errs = append(errs, fmt.Errorf("%w: dt %v must be > 0", ErrInvalidParams, p.Dt))
	}
	if !(p.IRatio >= 0 && p.IRatio <= 1) {
		errs = append(errs, fmt.Errorf("%w: i_ratio %v must be in [0,1]", ErrInvalidParams, p.IRatio))
	}
	if !(p.SRatio >= 0 && p.SRatio <= 1) {
		errs = append(errs, fmt.Errorf("%w: s_ratio %v must be in [0,1]", ErrInvalidParams, p.SRatio))
	}
	return errors.Join(errs...)
}

// Strategy selects how a World advances one step.
type Strategy string

const (
	// StrategyDirect scans the whole grid into a second buffer.
	StrategyDirect Strategy = "direct"
	// StrategyTiled steps tile by tile on the calling goroutine.
	StrategyTiled Strategy = "tiled"
	// StrategyParallel steps tiles on a bounded pool of goroutines.
	StrategyParallel Strategy = "parallel"
)

// ParseStrategy maps a name to a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	switch s := Strategy(strings.ToLower(strings.TrimSpace(name))); s {
	case StrategyDirect, StrategyTiled, StrategyParallel:
		return s, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

// Config controls the SIR World.
type Config struct {
	Width  int
	Height int

	Seed     int64
	MaxCells int

	Strategy   Strategy
	TileWidth  int
	TileHeight int
	Workers    int

	Params Params
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:      100,
		Height:     100,
		Seed:       1337,
		MaxCells:   DefaultMaxCells,
		Strategy:   StrategyDirect,
		TileWidth:  25,
		TileHeight: 25,
		Workers:    runtime.NumCPU(),
		Params:     DefaultParams(),
	}
}

// Validate reports configuration values a World cannot run with. The cell
// ceiling itself is enforced at allocation.
func (c Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, c.Width, c.Height))
	}
	if c.MaxCells <= 0 {
		errs = append(errs, fmt.Errorf("%w: max_cells %d must be > 0", ErrInvalidConfig, c.MaxCells))
	}
	if c.TileWidth <= 0 || c.TileHeight <= 0 {
		errs = append(errs, fmt.Errorf("%w: tile %dx%d must be positive", ErrInvalidConfig, c.TileWidth, c.TileHeight))
	}
	if c.Workers <= 0 {
		errs = append(errs, fmt.Errorf("%w: workers %d must be > 0", ErrInvalidConfig, c.Workers))
	}
	if _, err := ParseStrategy(string(c.Strategy)); err != nil {
		errs = append(errs, err)
	}
	if err := c.Params.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// FromMap populates the config from a string map (flag-style key/value pairs).
// Malformed or out-of-range values leave the default in place.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["max_cells"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.MaxCells = parsed
		}
	}
	if v, ok := cfg["strategy"]; ok {
		if parsed, err := ParseStrategy(v); err == nil {
			c.Strategy = parsed
		}
	}
	if v, ok := cfg["tile_w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.TileWidth = parsed
		}
	}
	if v, ok := cfg["tile_h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.TileHeight = parsed
		}
	}
	if v, ok := cfg["workers"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Workers = parsed
		}
	}
	if v, ok := cfg["beta"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.Beta = parsed
		}
	}
	if v, ok := cfg["gamma"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.Gamma = parsed
		}
	}
	if v, ok := cfg["dt"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.Params.Dt = parsed
		}
	}
	if v, ok := cfg["i_ratio"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			c.Params.IRatio = parsed
		}
	}
	if v, ok := cfg["s_ratio"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			c.Params.SRatio = parsed
		}
	}
	return c
}

// ToMap renders the config in the key/value form FromMap accepts.
func (c Config) ToMap() map[string]string {
	return map[string]string{
		"w":         strconv.Itoa(c.Width),
		"h":         strconv.Itoa(c.Height),
		"seed":      strconv.FormatInt(c.Seed, 10),
		"max_cells": strconv.Itoa(c.MaxCells),
		"strategy":  string(c.Strategy),
		"tile_w":    strconv.Itoa(c.TileWidth),
		"tile_h":    strconv.Itoa(c.TileHeight),
		"workers":   strconv.Itoa(c.Workers),
		"beta":      formatFloat(c.Params.Beta),
		"gamma":     formatFloat(c.Params.Gamma),
		"dt":        formatFloat(c.Params.Dt),
		"i_ratio":   formatFloat(c.Params.IRatio),
		"s_ratio":   formatFloat(c.Params.SRatio),
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
