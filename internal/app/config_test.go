package app

import (
	"errors"
	"flag"
	"testing"

	"sir-ca/internal/core"
	"sir-ca/internal/sims/sir"
)

func TestBindParsesFlags(t *testing.T) {
	cfg := NewConfig()
	fs := flag.NewFlagSet("sir", flag.ContinueOnError)
	cfg.Bind(fs)
	args := []string{"-w", "40", "-h", "30", "-beta", "0.9", "-strategy", "parallel", "-workers", "3", "-csv", "out.csv"}
	if err := fs.Parse(args); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Width != 40 || cfg.Height != 30 || cfg.Beta != 0.9 || cfg.Strategy != "parallel" || cfg.Workers != 3 || cfg.CSVPath != "out.csv" {
		t.Fatalf("flags not applied: %+v", cfg)
	}

	wc, err := cfg.WorldConfig()
	if err != nil {
		t.Fatalf("WorldConfig: %v", err)
	}
	if wc.Strategy != sir.StrategyParallel || wc.Params.Beta != 0.9 || wc.Width != 40 {
		t.Fatalf("WorldConfig = %+v", wc)
	}
}

func TestWorldConfigRejectsBadValues(t *testing.T) {
	cfg := NewConfig()
	cfg.Strategy = "zigzag"
	if _, err := cfg.WorldConfig(); !errors.Is(err, sir.ErrUnknownStrategy) {
		t.Fatalf("unknown strategy error = %v", err)
	}

	cfg = NewConfig()
	cfg.IRatio = 1.5
	if _, err := cfg.WorldConfig(); !errors.Is(err, sir.ErrInvalidParams) {
		t.Fatalf("i_ratio error = %v", err)
	}

	bad := map[string][]string{
		"zero width":       {"-w", "0"},
		"negative height":  {"-h", "-5"},
		"zero tile width":  {"-tile-w", "0"},
		"zero tile height": {"-tile-h", "0"},
		"negative workers": {"-workers", "-3"},
		"zero max cells":   {"-max-cells", "0"},
	}
	for name, args := range bad {
		cfg := NewConfig()
		fs := flag.NewFlagSet("sir", flag.ContinueOnError)
		cfg.Bind(fs)
		if err := fs.Parse(args); err != nil {
			t.Fatalf("%s: Parse: %v", name, err)
		}
		_, err := cfg.WorldConfig()
		if !errors.Is(err, sir.ErrInvalidDimensions) && !errors.Is(err, sir.ErrInvalidConfig) {
			t.Fatalf("%s: WorldConfig error = %v, want a size error", name, err)
		}
	}
}

func TestSimConfigBuildsThroughRegistry(t *testing.T) {
	cfg := NewConfig()
	cfg.Width = 9
	cfg.Height = 4
	cfg.Strategy = "tiled"

	factory, ok := core.Sims()[cfg.Sim]
	if !ok {
		t.Fatalf("sim %q not registered", cfg.Sim)
	}
	sim, err := factory(cfg.SimConfig())
	if err != nil {
		t.Fatalf("factory: %v", err)
	}
	world, ok := sim.(*sir.World)
	if !ok {
		t.Fatalf("factory returned %T", sim)
	}
	want, _ := cfg.WorldConfig()
	if world.Config() != want {
		t.Fatalf("registry config %+v differs from WorldConfig %+v", world.Config(), want)
	}
}
