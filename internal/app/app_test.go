package app

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"log/slog"
	"strconv"
	"testing"

	"sir-ca/internal/sims/sir"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func newWorld(t *testing.T, p sir.Params, strategy sir.Strategy) *sir.World {
	t.Helper()
	cfg := sir.DefaultConfig()
	cfg.Width = 30
	cfg.Height = 20
	cfg.Seed = 5
	cfg.Strategy = strategy
	cfg.TileWidth = 7
	cfg.TileHeight = 6
	cfg.Workers = 2
	cfg.Params = p
	w, err := sir.NewWorld(cfg)
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	return w
}

func TestRunUntilExtinct(t *testing.T) {
	for _, strategy := range []sir.Strategy{sir.StrategyDirect, sir.StrategyTiled, sir.StrategyParallel} {
		world := newWorld(t, sir.Params{Beta: 0.6, Gamma: 0.3, Dt: 1, IRatio: 0.05, SRatio: 1}, strategy)
		res, err := NewRunner(world, Options{Logger: quietLogger(), LogEvery: 5}).Run(context.Background())
		if err != nil {
			t.Fatalf("%s: Run: %v", strategy, err)
		}
		if !res.Extinct || res.Final.Infected != 0 {
			t.Fatalf("%s: run ended with %d infected", strategy, res.Final.Infected)
		}
		if len(res.Series) != res.Steps+1 {
			t.Fatalf("%s: series has %d samples for %d steps", strategy, len(res.Series), res.Steps)
		}
		cells := world.Size().Cells()
		for _, s := range res.Series {
			if s.Total() != cells {
				t.Fatalf("%s: step %d counts sum to %d, want %d", strategy, s.Step, s.Total(), cells)
			}
			if s.Infected > res.PeakInfected {
				t.Fatalf("%s: step %d exceeds reported peak", strategy, s.Step)
			}
		}
		if world.Steps() != res.Steps {
			t.Fatalf("%s: world took %d steps, runner reports %d", strategy, world.Steps(), res.Steps)
		}
	}
}

func TestRunCertainRecoveryTakesOneStep(t *testing.T) {
	world := newWorld(t, sir.Params{Beta: 0, Gamma: 1, Dt: 1, IRatio: 0.2, SRatio: 1}, sir.StrategyDirect)
	initial := world.Stats()
	res, err := NewRunner(world, Options{Logger: quietLogger()}).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Steps != 1 {
		t.Fatalf("gamma 1 run took %d steps, want 1", res.Steps)
	}
	if res.Final.Recovered != initial.Infected || res.Final.Susceptible != initial.Susceptible {
		t.Fatalf("final %+v does not match initial %+v", res.Final, initial)
	}
}

func TestRunStopsAtMaxSteps(t *testing.T) {
	world := newWorld(t, sir.Params{Beta: 0.2, Gamma: 0, Dt: 1, IRatio: 0.1, SRatio: 1}, sir.StrategyTiled)
	res, err := NewRunner(world, Options{Logger: quietLogger(), MaxSteps: 4}).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Steps != 4 || res.Extinct {
		t.Fatalf("run stopped after %d steps, extinct=%v", res.Steps, res.Extinct)
	}
}

func TestRunNoInfectionDoesNotStep(t *testing.T) {
	world := newWorld(t, sir.Params{Beta: 1, Gamma: 1, Dt: 1, IRatio: 0, SRatio: 1}, sir.StrategyDirect)
	res, err := NewRunner(world, Options{Logger: quietLogger()}).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Steps != 0 || !res.Extinct || len(res.Series) != 1 {
		t.Fatalf("run without infection = %+v", res)
	}
}

func TestRunHonoursCancellation(t *testing.T) {
	world := newWorld(t, sir.Params{Beta: 0.2, Gamma: 0, Dt: 1, IRatio: 0.1, SRatio: 1}, sir.StrategyDirect)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := NewRunner(world, Options{Logger: quietLogger()}).Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run error = %v, want context.Canceled", err)
	}
	if res.Steps != 0 {
		t.Fatalf("cancelled run took %d steps", res.Steps)
	}
}

func TestRunFlushesSeriesWhenCancelled(t *testing.T) {
	var buf bytes.Buffer
	series, err := NewSeriesWriter(&buf)
	if err != nil {
		t.Fatalf("NewSeriesWriter: %v", err)
	}
	world := newWorld(t, sir.Params{Beta: 0.2, Gamma: 0, Dt: 1, IRatio: 0.1, SRatio: 1}, sir.StrategyDirect)
	initial := world.Stats()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewRunner(world, Options{Logger: quietLogger(), Series: series}).Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Run error = %v, want context.Canceled", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("csv has %d rows after cancellation, want header and step 0", len(rows))
	}
	if rows[0][0] != "step" {
		t.Fatalf("unexpected header %v", rows[0])
	}
	if rows[1][0] != "0" || rows[1][2] != strconv.Itoa(initial.Infected) {
		t.Fatalf("step 0 row %v, want infected %d", rows[1], initial.Infected)
	}
}

func TestRunWritesSeries(t *testing.T) {
	var buf bytes.Buffer
	series, err := NewSeriesWriter(&buf)
	if err != nil {
		t.Fatalf("NewSeriesWriter: %v", err)
	}
	world := newWorld(t, sir.Params{Beta: 0.5, Gamma: 0.5, Dt: 1, IRatio: 0.05, SRatio: 1}, sir.StrategyDirect)
	res, err := NewRunner(world, Options{Logger: quietLogger(), Series: series}).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(rows) != res.Steps+2 {
		t.Fatalf("csv has %d rows, want header plus %d samples", len(rows), res.Steps+1)
	}
	if rows[0][0] != "step" || rows[0][2] != "infected" {
		t.Fatalf("unexpected header %v", rows[0])
	}
	last := rows[len(rows)-1]
	if last[0] != strconv.Itoa(res.Steps) || last[2] != "0" {
		t.Fatalf("last row %v does not match final step %d", last, res.Steps)
	}
}
