package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"sort"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"sir-ca/internal/app"
	"sir-ca/internal/sims/sir"
	"sir-ca/internal/store"
)

type paramSet struct {
	beta  float64
	gamma float64
}

func (p paramSet) String() string {
	return fmt.Sprintf("beta=%.3f gamma=%.3f", p.beta, p.gamma)
}

type scenarioResult struct {
	params paramSet
	res    app.Result
}

func (r scenarioResult) attackRate() float64 {
	total := r.res.Final.Total()
	if total == 0 {
		return 0
	}
	return float64(total-r.res.Final.Susceptible) / float64(total)
}

func main() {
	base := sir.DefaultConfig()
	betas := floatList{0.1, 0.2, 0.3, 0.5, 0.8}
	gammas := floatList{0.05, 0.1, 0.2}
	strategy := string(base.Strategy)

	flag.Var(&betas, "betas", "comma separated infection rates to sweep")
	flag.Var(&gammas, "gammas", "comma separated recovery rates to sweep")
	flag.IntVar(&base.Width, "w", base.Width, "grid width in cells")
	flag.IntVar(&base.Height, "h", base.Height, "grid height in cells")
	flag.Int64Var(&base.Seed, "seed", base.Seed, "seed shared by every scenario")
	flag.Float64Var(&base.Params.Dt, "dt", base.Params.Dt, "time-step scale")
	flag.Float64Var(&base.Params.IRatio, "i-ratio", base.Params.IRatio, "initial infected fraction")
	flag.StringVar(&strategy, "strategy", strategy, "step strategy: direct, tiled or parallel")
	steps := flag.Int("max-steps", 2000, "step limit per scenario (0 = until no infections)")
	workers := flag.Int("workers", runtime.NumCPU(), "scenarios run concurrently")
	top := flag.Int("top", 5, "number of ranked results to print")
	dbPath := flag.String("db", "", "record run summaries in this SQLite database")
	flag.Parse()

	parsed, err := sir.ParseStrategy(strategy)
	if err != nil {
		log.Fatal(err)
	}
	base.Strategy = parsed
	// Scenarios already run concurrently; keep each world on one goroutine.
	base.Workers = 1
	if err := base.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	var sets []paramSet
	for _, beta := range betas {
		for _, gamma := range gammas {
			sets = append(sets, paramSet{beta: beta, gamma: gamma})
		}
	}

	fmt.Printf("Sweeping %d parameter sets (%d workers, %s cells, max %d steps)\n",
		len(sets), *workers, humanize.Comma(int64(base.Width*base.Height)), *steps)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	all := make([]scenarioResult, len(sets))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(max(1, *workers))
	for i, params := range sets {
		eg.Go(func() error {
			res, err := runScenario(egCtx, base, params, *steps)
			if err != nil {
				return fmt.Errorf("%s: %w", params, err)
			}
			all[i] = scenarioResult{params: params, res: res}
			fmt.Printf("done %s steps=%d peak=%d\n", params, res.Steps, res.PeakInfected)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		log.Fatalf("sweep: %v", err)
	}
	elapsed := time.Since(start)

	if *dbPath != "" {
		if err := record(ctx, *dbPath, base, all); err != nil {
			log.Fatalf("record: %v", err)
		}
	}

	sort.SliceStable(all, func(i, j int) bool { return all[i].attackRate() > all[j].attackRate() })

	fmt.Printf("\nTop %d results by attack rate (elapsed %s):\n", min(*top, len(all)), elapsed.Round(time.Millisecond))
	for i := 0; i < len(all) && i < *top; i++ {
		r := all[i]
		fmt.Printf("%2d) attack=%.3f peak=%d@%d steps=%d extinct=%t step_mean=%s %s\n",
			i+1, r.attackRate(), r.res.PeakInfected, r.res.PeakStep, r.res.Steps, r.res.Extinct, r.res.StepMean, r.params)
	}
}

func runScenario(ctx context.Context, base sir.Config, params paramSet, steps int) (app.Result, error) {
	cfg := base
	cfg.Params.Beta = params.beta
	cfg.Params.Gamma = params.gamma

	world, err := sir.NewWorld(cfg)
	if err != nil {
		return app.Result{}, err
	}
	runner := app.NewRunner(world, app.Options{
		MaxSteps: steps,
		Logger:   slog.New(slog.DiscardHandler),
	})
	return runner.Run(ctx)
}

func record(ctx context.Context, path string, base sir.Config, all []scenarioResult) error {
	db, err := store.Open(path)
	if err != nil {
		return err
	}
	defer db.Close()

	batch := store.NewBatchID()
	for _, r := range all {
		run := store.Run{
			Batch:        batch,
			Width:        base.Width,
			Height:       base.Height,
			Seed:         base.Seed,
			Strategy:     string(base.Strategy),
			Beta:         r.params.beta,
			Gamma:        r.params.gamma,
			Dt:           base.Params.Dt,
			IRatio:       base.Params.IRatio,
			Steps:        r.res.Steps,
			PeakInfected: r.res.PeakInfected,
			PeakStep:     r.res.PeakStep,
			Susceptible:  r.res.Final.Susceptible,
			Infected:     r.res.Final.Infected,
			Recovered:    r.res.Final.Recovered,
			Extinct:      r.res.Extinct,
			Elapsed:      r.res.Elapsed,
		}
		if _, err := db.Append(ctx, run); err != nil {
			return err
		}
	}
	fmt.Printf("Recorded %d runs in %s (batch %s)\n", len(all), path, batch)
	return nil
}
