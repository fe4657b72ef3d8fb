package app

import (
	"flag"
	"runtime"
	"strconv"

	"sir-ca/internal/sims/sir"
)

// Config represents the command-line parameters for a simulation run.
type Config struct {
	Sim  string
	Seed int64

	Width    int
	Height   int
	MaxCells int

	Beta   float64
	Gamma  float64
	Dt     float64
	IRatio float64
	SRatio float64

	Strategy   string
	TileWidth  int
	TileHeight int
	Workers    int

	MaxSteps int
	LogEvery int
	CSVPath  string
	Verbose  bool
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	def := sir.DefaultConfig()
	return &Config{
		Sim:        "sir",
		Seed:       def.Seed,
		Width:      def.Width,
		Height:     def.Height,
		MaxCells:   def.MaxCells,
		Beta:       def.Params.Beta,
		Gamma:      def.Params.Gamma,
		Dt:         def.Params.Dt,
		IRatio:     def.Params.IRatio,
		SRatio:     def.Params.SRatio,
		Strategy:   string(def.Strategy),
		TileWidth:  def.TileWidth,
		TileHeight: def.TileHeight,
		Workers:    runtime.NumCPU(),
		MaxSteps:   10000,
		LogEvery:   10,
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for grid initialisation and transitions")
	fs.IntVar(&c.Width, "w", c.Width, "grid width in cells")
	fs.IntVar(&c.Height, "h", c.Height, "grid height in cells")
	fs.IntVar(&c.MaxCells, "max-cells", c.MaxCells, "refuse grids with more cells than this")
	fs.Float64Var(&c.Beta, "beta", c.Beta, "infection rate")
	fs.Float64Var(&c.Gamma, "gamma", c.Gamma, "recovery rate")
	fs.Float64Var(&c.Dt, "dt", c.Dt, "time-step scale")
	fs.Float64Var(&c.IRatio, "i-ratio", c.IRatio, "initial infected fraction")
	fs.Float64Var(&c.SRatio, "s-ratio", c.SRatio, "susceptible fraction (reserved, no effect)")
	fs.StringVar(&c.Strategy, "strategy", c.Strategy, "step strategy: direct, tiled or parallel")
	fs.IntVar(&c.TileWidth, "tile-w", c.TileWidth, "tile width for tiled strategies")
	fs.IntVar(&c.TileHeight, "tile-h", c.TileHeight, "tile height for tiled strategies")
	fs.IntVar(&c.Workers, "workers", c.Workers, "goroutines for the parallel strategy")
	fs.IntVar(&c.MaxSteps, "max-steps", c.MaxSteps, "stop after this many steps (0 = until no infections)")
	fs.IntVar(&c.LogEvery, "log-every", c.LogEvery, "log population counts every N steps (0 = never)")
	fs.StringVar(&c.CSVPath, "csv", c.CSVPath, "write the population time series to this CSV file")
	fs.BoolVar(&c.Verbose, "v", c.Verbose, "log every step at debug level")
}

// SimConfig renders the simulation settings as the key/value map consumed by
// registered sim factories.
func (c *Config) SimConfig() map[string]string {
	return map[string]string{
		"w":         strconv.Itoa(c.Width),
		"h":         strconv.Itoa(c.Height),
		"seed":      strconv.FormatInt(c.Seed, 10),
		"max_cells": strconv.Itoa(c.MaxCells),
		"strategy":  c.Strategy,
		"tile_w":    strconv.Itoa(c.TileWidth),
		"tile_h":    strconv.Itoa(c.TileHeight),
		"workers":   strconv.Itoa(c.Workers),
		"beta":      strconv.FormatFloat(c.Beta, 'f', -1, 64),
		"gamma":     strconv.FormatFloat(c.Gamma, 'f', -1, 64),
		"dt":        strconv.FormatFloat(c.Dt, 'f', -1, 64),
		"i_ratio":   strconv.FormatFloat(c.IRatio, 'f', -1, 64),
		"s_ratio":   strconv.FormatFloat(c.SRatio, 'f', -1, 64),
	}
}

// WorldConfig converts the flags into a sir.Config, reporting an unknown
// strategy or out-of-range parameters instead of silently using defaults.
func (c *Config) WorldConfig() (sir.Config, error) {
	strategy, err := sir.ParseStrategy(c.Strategy)
	if err != nil {
		return sir.Config{}, err
	}
	cfg := sir.Config{
		Width:      c.Width,
		Height:     c.Height,
		Seed:       c.Seed,
		MaxCells:   c.MaxCells,
		Strategy:   strategy,
		TileWidth:  c.TileWidth,
		TileHeight: c.TileHeight,
		Workers:    c.Workers,
		Params: sir.Params{
			Beta:   c.Beta,
			Gamma:  c.Gamma,
			Dt:     c.Dt,
			IRatio: c.IRatio,
			SRatio: c.SRatio,
		},
	}
	if err := cfg.Validate(); err != nil {
		return sir.Config{}, err
	}
	return cfg, nil
}
