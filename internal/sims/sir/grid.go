package sir

import (
	"fmt"
	"math"
	"unsafe"

	"sir-ca/internal/core"
	prng "sir-ca/pkg/core"
)

// Grid is the packed SIR simulation surface. Each cell holds one HealthState
// in two bits.
type Grid struct {
	cells *core.PackedGrid
}

// Footprint reports the storage used by a Grid.
type Footprint struct {
	BitsPerCell int
	HeapBytes   int
	StructBytes int
}

// NewGrid allocates a width x height grid under DefaultMaxCells and seeds it
// from p.IRatio. See NewGridLimit.
func NewGrid(width, height int, p Params, r *prng.RNG) (*Grid, error) {
	return NewGridLimit(width, height, DefaultMaxCells, p, r)
}

// NewGridLimit allocates a width x height grid holding at most maxCells cells
// (DefaultMaxCells when maxCells <= 0). Every cell independently draws from r
// and starts Infected when the draw is below p.IRatio, Susceptible otherwise.
func NewGridLimit(width, height, maxCells int, p Params, r *prng.RNG) (*Grid, error) {
	g, err := newEmptyGrid(width, height, maxCells)
	if err != nil {
		return nil, err
	}
	g.Seed(p, r)
	return g, nil
}

// NewEmptyGrid allocates an all-Susceptible grid under DefaultMaxCells.
func NewEmptyGrid(width, height int) (*Grid, error) {
	return newEmptyGrid(width, height, DefaultMaxCells)
}

func newEmptyGrid(width, height, maxCells int) (*Grid, error) {
	if _, err := CheckDimensions(width, height, maxCells); err != nil {
		return nil, err
	}
	return &Grid{cells: core.NewPackedGrid(width, height)}, nil
}

// CheckDimensions returns width*height, or an error when the dimensions are
// non-positive, overflow an int, or exceed maxCells.
func CheckDimensions(width, height, maxCells int) (int, error) {
	if maxCells <= 0 {
		maxCells = DefaultMaxCells
	}
	if width <= 0 || height <= 0 {
		return 0, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if width > math.MaxInt/height {
		return 0, fmt.Errorf("%w: %dx%d", ErrDimensionOverflow, width, height)
	}
	n := width * height
	if n > maxCells {
		return 0, fmt.Errorf("%w: %dx%d = %d cells, limit %d", ErrGridTooLarge, width, height, n, maxCells)
	}
	return n, nil
}

// Seed redraws every cell from r using p.IRatio. No cell starts Recovered.
func (g *Grid) Seed(p Params, r *prng.RNG) {
	n := g.cells.Len()
	for i := 0; i < n; i++ {
		s := Susceptible
		if r.Float64() < p.IRatio {
			s = Infected
		}
		g.Write(i, s)
	}
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.cells.W }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.cells.H }

// Len returns the number of cells.
func (g *Grid) Len() int { return g.cells.Len() }

// Index returns the linear index of (x, y). Coordinates are not checked.
func (g *Grid) Index(x, y int) int { return g.cells.Index(x, y) }

// Read decodes the state at index i. A corrupt cell panics.
func (g *Grid) Read(i int) HealthState {
	s, err := Decode(g.cells.Get(i))
	if err != nil {
		panic(fmt.Sprintf("sir: cell %d: %v", i, err))
	}
	return s
}

// Write encodes s into index i.
func (g *Grid) Write(i int, s HealthState) {
	g.cells.Set(i, Encode(s))
}

// At returns the state at (x, y).
func (g *Grid) At(x, y int) HealthState { return g.Read(g.Index(x, y)) }

// Set writes s at (x, y).
func (g *Grid) Set(x, y int, s HealthState) { g.Write(g.Index(x, y), s) }

// Neighbors returns the in-bounds Moore neighbors of (x, y): three for a
// corner, five for an edge and eight for an interior cell.
func (g *Grid) Neighbors(x, y int) []core.Point {
	return g.cells.Neighbors(x, y)
}

// InfectedNeighbors counts Infected cells in the Moore neighborhood of (x, y).
func (g *Grid) InfectedNeighbors(x, y int) int {
	w, h := g.cells.W, g.cells.H
	k := 0
	for dy := -1; dy <= 1; dy++ {
		ny := y + dy
		if ny < 0 || ny >= h {
			continue
		}
		for dx := -1; dx <= 1; dx++ {
			nx := x + dx
			if (dx == 0 && dy == 0) || nx < 0 || nx >= w {
				continue
			}
			if g.Read(ny*w+nx) == Infected {
				k++
			}
		}
	}
	return k
}

// States returns a decoded copy of every cell, one byte per cell.
func (g *Grid) States() []HealthState {
	out := make([]HealthState, g.Len())
	for i := range out {
		out[i] = g.Read(i)
	}
	return out
}

// Clone returns an independent copy of g.
func (g *Grid) Clone() *Grid {
	c := g.emptyLike()
	c.cells.CopyFrom(g.cells)
	return c
}

// Equal reports whether both grids have the same shape and cells.
func (g *Grid) Equal(o *Grid) bool {
	if g.Width() != o.Width() || g.Height() != o.Height() {
		return false
	}
	for i := 0; i < g.Len(); i++ {
		if g.Read(i) != o.Read(i) {
			return false
		}
	}
	return true
}

// MemoryFootprint reports bits per cell, packed buffer bytes, and the size of
// the Grid headers.
func (g *Grid) MemoryFootprint() Footprint {
	return Footprint{
		BitsPerCell: core.BitsPerCell,
		HeapBytes:   len(g.cells.Bytes()),
		StructBytes: int(unsafe.Sizeof(*g) + unsafe.Sizeof(*g.cells)),
	}
}

// emptyLike allocates an all-Susceptible grid with g's dimensions. The size
// was checked when g was built.
func (g *Grid) emptyLike() *Grid {
	return &Grid{cells: core.NewPackedGrid(g.cells.W, g.cells.H)}
}

func (g *Grid) sameShape(o *Grid) bool {
	return g.cells.W == o.cells.W && g.cells.H == o.cells.H
}
