// Command movesim runs movement scenarios headless and logs what the
// controller did.
//
//	movesim [-v] scenario.yaml...
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/milk9111/platformer/movement"
	"golang.org/x/sync/errgroup"
)

func main() {
	verbose := flag.Bool("v", false, "log every event")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, flag.Args()); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

// run loads every scenario first, then plays them concurrently. Each one
// owns its controller or world.
func run(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		return fmt.Errorf("no scenarios given")
	}

	scenarios := make([]*Scenario, 0, len(paths))
	for _, p := range paths {
		sc, err := LoadScenario(p)
		if err != nil {
			return fmt.Errorf("loading scenario: %w", err)
		}
		scenarios = append(scenarios, sc)
	}

	results := make([]Result, len(scenarios))
	g, gctx := errgroup.WithContext(ctx)
	for i, sc := range scenarios {
		g.Go(func() error {
			res, err := sc.Run(gctx)
			if err != nil {
				return fmt.Errorf("scenario %s: %w", sc.Name, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, res := range results {
		report(slog.Default(), res)
	}
	return nil
}

func report(log *slog.Logger, res Result) {
	log = log.With("scenario", res.Name)
	for _, evt := range res.Events {
		attrs := []any{"tick", evt.Tick, "event", string(evt.Kind)}
		if evt.Kind == movement.EventGrounded {
			attrs = append(attrs, "grounded", evt.Grounded)
		}
		log.Debug("event", attrs...)
	}
	log.Info("finished",
		"ticks", res.Ticks,
		"velocity_x", res.Velocity.X,
		"velocity_y", res.Velocity.Y,
		"grounded", res.Grounded,
		"events", len(res.Events),
	)
}
