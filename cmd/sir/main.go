package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/dustin/go-humanize"

	"sir-ca/internal/app"
	"sir-ca/internal/core"
	"sir-ca/internal/sims/sir"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if _, ok := core.Sims()[cfg.Sim]; !ok {
		log.Fatalf("unknown sim %q (available: %s)", cfg.Sim, strings.Join(core.SimNames(), ", "))
	}
	wc, err := cfg.WorldConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	world, err := sir.NewWorld(wc)
	if err != nil {
		log.Fatalf("build %s: %v", cfg.Sim, err)
	}

	logger.Info("parameters", world.Parameters().Attrs()...)
	fp := world.Grid().MemoryFootprint()
	logger.Info("grid allocated",
		"cells", humanize.Comma(int64(world.Grid().Len())),
		"bits_per_cell", fp.BitsPerCell,
		"heap", humanize.Bytes(uint64(fp.HeapBytes)),
		"header", humanize.Bytes(uint64(fp.StructBytes)),
	)

	opts := app.Options{
		MaxSteps: cfg.MaxSteps,
		LogEvery: cfg.LogEvery,
		Logger:   logger,
	}
	if cfg.CSVPath != "" {
		f, err := os.Create(cfg.CSVPath)
		if err != nil {
			log.Fatalf("create %s: %v", cfg.CSVPath, err)
		}
		defer f.Close()
		series, err := app.NewSeriesWriter(f)
		if err != nil {
			log.Fatalf("%s: %v", cfg.CSVPath, err)
		}
		opts.Series = series
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := app.NewRunner(world, opts).Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("run: %v", err)
	}

	final := res.Final
	fmt.Printf("steps=%d S=%d I=%d R=%d peak=%d@%d extinct=%t elapsed=%s step_mean=%s\n",
		res.Steps, final.Susceptible, final.Infected, final.Recovered,
		res.PeakInfected, res.PeakStep, res.Extinct, res.Elapsed, res.StepMean)
}
