package sir

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	prng "sir-ca/pkg/core"
)

// InfectionProbability is the chance that a Susceptible cell with k Infected
// neighbors becomes Infected in one step.
func InfectionProbability(k int, p Params) float64 {
	return p.Beta * float64(k) / 8 * p.Dt
}

// RecoveryProbability is the chance that an Infected cell recovers in one step.
func RecoveryProbability(p Params) float64 {
	return p.Gamma * p.Dt
}

// Transition applies the SIR rule to one cell. infected is the number of
// Infected Moore neighbors and is only consulted for Susceptible cells.
// Recovered is terminal.
func Transition(s HealthState, infected int, p Params, r *prng.RNG) HealthState {
	switch s {
	case Susceptible:
		if infected == 0 {
			return Susceptible
		}
		if r.Float64() < InfectionProbability(infected, p) {
			return Infected
		}
		return Susceptible
	case Infected:
		if r.Float64() < RecoveryProbability(p) {
			return Recovered
		}
		return Infected
	default:
		return Recovered
	}
}

// Step advances g by one time unit. The next state of every cell is computed
// from the frozen current buffer into a fresh one, which then replaces g's
// storage in a single assignment.
func Step(g *Grid, p Params, r *prng.RNG) {
	next := g.emptyLike()
	StepInto(next, g, p, r)
	g.cells = next.cells
}

// StepInto writes the successor of src into dst, scanning in row-major order.
// dst and src must be distinct grids of the same shape.
func StepInto(dst, src *Grid, p Params, r *prng.RNG) {
	if dst == src || dst.cells == src.cells {
		panic("sir: StepInto requires distinct buffers")
	}
	if !dst.sameShape(src) {
		panic("sir: StepInto dimension mismatch")
	}
	w, h := src.Width(), src.Height()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			s := src.Read(i)
			k := 0
			if s == Susceptible {
				k = src.InfectedNeighbors(x, y)
			}
			dst.Write(i, Transition(s, k, p, r))
		}
	}
}

// StepTiled advances g by one time unit tile by tile and returns the new grid;
// g itself is left untouched. One seed is drawn from r and each tile gets its
// own stream of it, so the result matches StepTiledParallel for the same r.
func StepTiled(g *Grid, p Params, tileWidth, tileHeight int, r *prng.RNG) *Grid {
	out := g.emptyLike()
	seed := r.Uint64()
	var buf []HealthState
	for i, t := range TileGrid(g, tileWidth, tileHeight) {
		buf = advanceTile(t, p, prng.Stream(seed, uint64(i)), buf)
		t.commit(out, buf)
	}
	return out
}

// StepTiledParallel is StepTiled with tiles spread over at most workers
// goroutines (unbounded when workers <= 0). Four cells share a byte of packed
// storage, so tiles compute into private buffers that are committed to the
// output only after every tile has finished.
func StepTiledParallel(g *Grid, p Params, tileWidth, tileHeight, workers int, r *prng.RNG) (*Grid, error) {
	out := g.emptyLike()
	seed := r.Uint64()
	tiles := TileGrid(g, tileWidth, tileHeight)
	results := make([][]HealthState, len(tiles))

	var eg errgroup.Group
	if workers > 0 {
		eg.SetLimit(workers)
	}
	for i, t := range tiles {
		eg.Go(func() (err error) {
			defer func() {
				if rec := recover(); rec != nil {
					err = fmt.Errorf("sir: tile %d at (%d,%d): %v", i, t.X, t.Y, rec)
				}
			}()
			results[i] = advanceTile(t, p, prng.Stream(seed, uint64(i)), make([]HealthState, 0, t.Len()))
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	for i, t := range tiles {
		t.commit(out, results[i])
	}
	return out, nil
}

// advanceTile computes the next state of every tile cell in local row-major
// order, reading only the parent grid.
func advanceTile(t Tile, p Params, r *prng.RNG, dst []HealthState) []HealthState {
	dst = dst[:0]
	for ly := 0; ly < t.H; ly++ {
		for lx := 0; lx < t.W; lx++ {
			s, ok := t.State(lx, ly)
			if !ok {
				panic(fmt.Sprintf("sir: tile cell (%d,%d) outside parent grid", t.X+lx, t.Y+ly))
			}
			k := 0
			if s == Susceptible {
				k = t.InfectedNeighbors(lx, ly)
			}
			dst = append(dst, Transition(s, k, p, r))
		}
	}
	return dst
}

// commit writes states produced by advanceTile into out at the tile's global
// indices.
func (t Tile) commit(out *Grid, states []HealthState) {
	i := 0
	for ly := 0; ly < t.H; ly++ {
		row := out.Index(t.X, t.Y+ly)
		for lx := 0; lx < t.W; lx++ {
			out.Write(row+lx, states[i])
			i++
		}
	}
}
