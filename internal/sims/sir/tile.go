package sir

// Tile is a read-only rectangular window into a Grid. It does not own cells
// and must not outlive its parent.
type Tile struct {
	X, Y int // origin in parent coordinates
	W, H int // extent, clamped to the parent

	grid *Grid
}

// TileGrid partitions g into ceil(w/tileWidth) * ceil(h/tileHeight) tiles in
// row-major order. Tiles in the last column and row are clamped to the grid
// edge. Non-positive tile sizes are treated as 1.
func TileGrid(g *Grid, tileWidth, tileHeight int) []Tile {
	if tileWidth <= 0 {
		tileWidth = 1
	}
	if tileHeight <= 0 {
		tileHeight = 1
	}
	w, h := g.Width(), g.Height()
	cols := (w + tileWidth - 1) / tileWidth
	rows := (h + tileHeight - 1) / tileHeight
	tiles := make([]Tile, 0, cols*rows)
	for ty := 0; ty < h; ty += tileHeight {
		th := min(tileHeight, h-ty)
		for tx := 0; tx < w; tx += tileWidth {
			tiles = append(tiles, Tile{
				X:    tx,
				Y:    ty,
				W:    min(tileWidth, w-tx),
				H:    th,
				grid: g,
			})
		}
	}
	return tiles
}

// Len returns the number of cells covered by the tile.
func (t Tile) Len() int { return t.W * t.H }

// Contains reports whether the parent coordinate (x, y) falls inside the tile.
func (t Tile) Contains(x, y int) bool {
	return x >= t.X && x < t.X+t.W && y >= t.Y && y < t.Y+t.H
}

// State returns the state at local coordinate (lx, ly). The second result is
// false when the translated coordinate lies outside the parent grid.
func (t Tile) State(lx, ly int) (HealthState, bool) {
	gx, gy := t.X+lx, t.Y+ly
	if !t.grid.cells.InBounds(gx, gy) {
		return 0, false
	}
	return t.grid.At(gx, gy), true
}

// NeighborStates returns the states of the Moore neighbors of local (lx, ly).
// Neighbors are bounded by the parent grid, not the tile, so edge cells see
// cells of adjacent tiles.
func (t Tile) NeighborStates(lx, ly int) []HealthState {
	gx, gy := t.X+lx, t.Y+ly
	pts := t.grid.Neighbors(gx, gy)
	out := make([]HealthState, len(pts))
	for i, p := range pts {
		out[i] = t.grid.At(p.X, p.Y)
	}
	return out
}

// InfectedNeighbors counts Infected neighbors of local (lx, ly) against the
// parent grid.
func (t Tile) InfectedNeighbors(lx, ly int) int {
	return t.grid.InfectedNeighbors(t.X+lx, t.Y+ly)
}
