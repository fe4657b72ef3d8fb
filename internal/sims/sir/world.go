package sir

import (
	"fmt"

	"sir-ca/internal/core"
	prng "sir-ca/pkg/core"
)

// World runs the SIR automaton as a core.Sim.
type World struct {
	cfg Config

	cur *Grid
	nxt *Grid

	rng   *prng.RNG
	steps int
}

// NewWorld validates cfg, allocates the grid and seeds it from cfg.Seed.
func NewWorld(cfg Config) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	r := prng.NewRNG(cfg.Seed)
	cur, err := NewGridLimit(cfg.Width, cfg.Height, cfg.MaxCells, cfg.Params, r)
	if err != nil {
		return nil, err
	}
	return &World{
		cfg: cfg,
		cur: cur,
		nxt: cur.emptyLike(),
		rng: r,
	}, nil
}

// Name returns the simulation identifier.
func (w *World) Name() string { return "sir" }

// Size reports the grid dimensions.
func (w *World) Size() core.Size { return core.Size{W: w.cur.Width(), H: w.cur.Height()} }

// Config returns the configuration the world was built with.
func (w *World) Config() Config { return w.cfg }

// Grid exposes the current grid. The direct strategy reuses it as the write
// buffer of a later step; Clone it to keep a snapshot.
func (w *World) Grid() *Grid { return w.cur }

// Steps returns the number of steps taken since the last reset.
func (w *World) Steps() int { return w.steps }

// Cells returns the decoded state codes of the current grid, one byte per cell.
func (w *World) Cells() []uint8 {
	states := w.cur.States()
	out := make([]uint8, len(states))
	for i, s := range states {
		out[i] = uint8(s)
	}
	return out
}

// Stats tallies the current grid.
func (w *World) Stats() PopulationStats { return CountStates(w.cur) }

// Reset reseeds the generator and redraws the initial infection. A zero seed
// falls back to the configured one.
func (w *World) Reset(seed int64) {
	effective := seed
	if effective == 0 {
		effective = w.cfg.Seed
	}
	w.rng = prng.NewRNG(effective)
	w.cur.Seed(w.cfg.Params, w.rng)
	w.steps = 0
}

// Step advances one time unit with the configured strategy. It panics if a
// parallel worker hit an invariant violation; use Advance to get the error.
func (w *World) Step() {
	if err := w.Advance(); err != nil {
		panic(err)
	}
}

// Advance advances one time unit with the configured strategy.
func (w *World) Advance() error {
	p := w.cfg.Params
	switch w.cfg.Strategy {
	case StrategyTiled:
		w.cur = StepTiled(w.cur, p, w.cfg.TileWidth, w.cfg.TileHeight, w.rng)
	case StrategyParallel:
		next, err := StepTiledParallel(w.cur, p, w.cfg.TileWidth, w.cfg.TileHeight, w.cfg.Workers, w.rng)
		if err != nil {
			return fmt.Errorf("step %d: %w", w.steps+1, err)
		}
		w.cur = next
	default:
		StepInto(w.nxt, w.cur, p, w.rng)
		w.cur, w.nxt = w.nxt, w.cur
	}
	w.steps++
	return nil
}

func init() {
	core.Register("sir", func(cfg map[string]string) (core.Sim, error) {
		w, err := NewWorld(FromMap(cfg))
		if err != nil {
			return nil, err
		}
		return w, nil
	})
}
