package sir

import "testing"

func TestTileGridCoverage(t *testing.T) {
	cases := []struct{ w, h, tw, th int }{
		{10, 7, 3, 2},
		{8, 8, 4, 4},
		{5, 5, 10, 10},
		{9, 4, 1, 1},
		{13, 11, 5, 3},
	}
	for _, c := range cases {
		g := mustGrid(t, c.w, c.h, testParams(0, 0, 0, 1), 1)
		tiles := TileGrid(g, c.tw, c.th)

		want := ((c.w + c.tw - 1) / c.tw) * ((c.h + c.th - 1) / c.th)
		if len(tiles) != want {
			t.Fatalf("%dx%d by %dx%d: %d tiles, want %d", c.w, c.h, c.tw, c.th, len(tiles), want)
		}

		seen := make([]int, c.w*c.h)
		prevX, prevY := -1, 0
		for i, tile := range tiles {
			if tile.Y < prevY || (tile.Y == prevY && tile.X <= prevX) {
				t.Fatalf("tile %d at (%d,%d) out of row-major order", i, tile.X, tile.Y)
			}
			prevX, prevY = tile.X, tile.Y
			if tile.X+tile.W > c.w || tile.Y+tile.H > c.h {
				t.Fatalf("tile %d overflows the grid: %+v", i, tile)
			}
			for y := tile.Y; y < tile.Y+tile.H; y++ {
				for x := tile.X; x < tile.X+tile.W; x++ {
					seen[y*c.w+x]++
				}
			}
		}
		for i, n := range seen {
			if n != 1 {
				t.Fatalf("%dx%d by %dx%d: cell %d covered %d times", c.w, c.h, c.tw, c.th, i, n)
			}
		}
	}
}

func TestTileGridClampsEdges(t *testing.T) {
	g := mustGrid(t, 10, 7, testParams(0, 0, 0, 1), 1)
	tiles := TileGrid(g, 3, 2)
	last := tiles[len(tiles)-1]
	if last.X != 9 || last.Y != 6 || last.W != 1 || last.H != 1 {
		t.Fatalf("last tile = %+v, want origin (9,6) extent 1x1", last)
	}
	if tiles[0].W != 3 || tiles[0].H != 2 {
		t.Fatalf("first tile extent %dx%d, want 3x2", tiles[0].W, tiles[0].H)
	}
}

func TestTileGridNonPositiveSize(t *testing.T) {
	g := mustGrid(t, 3, 2, testParams(0, 0, 0, 1), 1)
	if n := len(TileGrid(g, 0, -4)); n != 6 {
		t.Fatalf("non-positive tile size produced %d tiles, want 6", n)
	}
}

func TestTileStateBounds(t *testing.T) {
	g := mustGrid(t, 10, 7, testParams(0, 0, 0, 1), 1)
	g.Set(9, 6, Recovered)
	tiles := TileGrid(g, 3, 2)
	last := tiles[len(tiles)-1]

	s, ok := last.State(0, 0)
	if !ok || s != Recovered {
		t.Fatalf("State(0,0) on last tile = %v, %v", s, ok)
	}
	if _, ok := last.State(1, 0); ok {
		t.Fatal("State past the grid edge reported a value")
	}
	if _, ok := last.State(0, 1); ok {
		t.Fatal("State below the grid edge reported a value")
	}
}

func TestTileNeighborsCrossTileBoundary(t *testing.T) {
	g := mustGrid(t, 4, 4, testParams(0, 0, 0, 1), 1)
	g.Set(2, 1, Infected)
	tiles := TileGrid(g, 2, 2)
	first := tiles[0]
	if first.Contains(2, 1) {
		t.Fatal("first tile should not contain (2,1)")
	}

	states := first.NeighborStates(1, 1)
	if len(states) != 8 {
		t.Fatalf("NeighborStates(1,1) returned %d states, want 8", len(states))
	}
	infected := 0
	for _, s := range states {
		if s == Infected {
			infected++
		}
	}
	if infected != 1 || first.InfectedNeighbors(1, 1) != 1 {
		t.Fatalf("edge cell sees %d infected neighbors, want 1", infected)
	}

	if n := len(first.NeighborStates(0, 0)); n != 3 {
		t.Fatalf("grid corner inside a tile has %d neighbors, want 3", n)
	}
}

func TestTileIsAView(t *testing.T) {
	g := mustGrid(t, 4, 4, testParams(0, 0, 0, 1), 1)
	tile := TileGrid(g, 2, 2)[3]
	g.Set(3, 3, Infected)
	if s, _ := tile.State(1, 1); s != Infected {
		t.Fatal("tile did not observe a write to its parent")
	}
	if tile.grid != g || tile.Len() != 4 {
		t.Fatal("tile lost its parent or extent")
	}
}
