package core

// CellsPerByte is the number of 2-bit cells stored in each byte of a PackedGrid.
const CellsPerByte = 4

// BitsPerCell is the storage width of one PackedGrid cell.
const BitsPerCell = 2

// Point is a cell coordinate.
type Point struct {
	X, Y int
}

// PackedGrid stores a 2D grid of 2-bit cell codes in row-major order, four
// cells per byte. Cell i lives in byte i/4 at bit offset (i%4)*2.
type PackedGrid struct {
	W, H int
	n    int
	data []uint8
}

// NewPackedGrid allocates a zeroed grid with the given dimensions. Callers are
// expected to have checked that w*h fits in an int.
func NewPackedGrid(w, h int) *PackedGrid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	n := w * h
	return &PackedGrid{W: w, H: h, n: n, data: make([]uint8, PackedLen(n))}
}

// PackedLen returns the number of bytes needed to hold n cells.
func PackedLen(n int) int {
	return (n + CellsPerByte - 1) / CellsPerByte
}

// Len returns the number of cells.
func (g *PackedGrid) Len() int { return g.n }

// Bytes exposes the packed backing slice.
func (g *PackedGrid) Bytes() []uint8 { return g.data }

// Index returns the linear cell index for coordinates (x, y).
func (g *PackedGrid) Index(x, y int) int { return y*g.W + x }

// InBounds reports whether (x, y) lies inside the grid.
func (g *PackedGrid) InBounds(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

// Get returns the 2-bit code stored at index i. It panics when i is outside
// [0, Len()).
func (g *PackedGrid) Get(i int) uint8 {
	g.check(i)
	return (g.data[i/CellsPerByte] >> shift(i)) & 0b11
}

// Set stores the low two bits of code at index i, leaving the other cells of
// the byte untouched. It panics when i is outside [0, Len()).
func (g *PackedGrid) Set(i int, code uint8) {
	g.check(i)
	b := &g.data[i/CellsPerByte]
	s := shift(i)
	*b = (*b &^ (0b11 << s)) | ((code & 0b11) << s)
}

// Neighbors returns the in-bounds Moore neighbors of (x, y), scanning dy then
// dx over {-1, 0, 1} and skipping the center.
func (g *PackedGrid) Neighbors(x, y int) []Point {
	return g.AppendNeighbors(make([]Point, 0, 8), x, y)
}

// AppendNeighbors appends the Moore neighbors of (x, y) to dst in the same
// order as Neighbors.
func (g *PackedGrid) AppendNeighbors(dst []Point, x, y int) []Point {
	for dy := -1; dy <= 1; dy++ {
		ny := y + dy
		if ny < 0 || ny >= g.H {
			continue
		}
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx := x + dx
			if nx < 0 || nx >= g.W {
				continue
			}
			dst = append(dst, Point{X: nx, Y: ny})
		}
	}
	return dst
}

// CopyFrom overwrites g with the contents of src. Both grids must share
// dimensions.
func (g *PackedGrid) CopyFrom(src *PackedGrid) {
	if g.W != src.W || g.H != src.H {
		panic("core: PackedGrid.CopyFrom dimension mismatch")
	}
	copy(g.data, src.data)
}

func (g *PackedGrid) check(i int) {
	if i < 0 || i >= g.n {
		panic("core: PackedGrid index out of range")
	}
}

func shift(i int) uint {
	return uint(i%CellsPerByte) * BitsPerCell
}
