package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"flightmap/internal/game/simulation"
	"flightmap/internal/logging"
	"flightmap/internal/metrics"
	"flightmap/internal/recorder"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func NewSimulateCommand() *cobra.Command {
	var (
		ticks    int
		out      string
		aircraft int
		speed    float64
		seed     int64
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run the simulation without a window",
		Long: `Run the fleet simulation headless at sim.tickRate, optionally recording
one snapshot per tick to a zstd-compressed msgpack file.

Examples:
  client simulate --ticks 600
  client simulate --ticks 0 --aircraft 50 --speed 4
  client simulate --out run.msgpack.zst --seed 42`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("seed") {
				cfg.Sim.Seed = seed
			}
			if cmd.Flags().Changed("aircraft") {
				cfg.Sim.InitialAircraft = aircraft
			}
			if cmd.Flags().Changed("speed") {
				cfg.Sim.SpeedMultiplier = speed
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runHeadless(ctx, ticks, out)
		},
	}

	cmd.Flags().IntVar(&ticks, "ticks", 600, "Number of ticks to run (0 runs until interrupted)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Record snapshots to this file")
	cmd.Flags().IntVarP(&aircraft, "aircraft", "n", 10, "Number of aircraft")
	cmd.Flags().Float64Var(&speed, "speed", 1, "Speed multiplier")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Random seed (0 uses the clock)")

	return cmd
}

func runHeadless(parent context.Context, ticks int, out string) error {
	logger := logging.New("headless")

	a, err := newApp(parent, cfg, nil)
	if err != nil {
		return err
	}
	defer a.sim.Dispose()

	ctx, cancel := context.WithCancel(parent)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	runner := simulation.NewRunner(a.sim, cfg.Sim.TickInterval(), ticks)

	var rec *recorder.Writer
	if out != "" {
		rec, err = recorder.Create(out)
		if err != nil {
			return err
		}
		runner.OnTick = rec.Write
	}

	if cfg.Metrics.Enabled {
		g.Go(func() error {
			return metrics.Serve(ctx, cfg.Metrics.Address, a.registry)
		})
	}

	g.Go(func() error {
		// the metrics server only stops once the run is over
		defer cancel()

		a.sim.Start()
		logger.Infof("run %s: %d aircraft, x%g, %d ticks", a.sim.RunID(), a.sim.Population(), a.sim.SpeedMultiplier(), ticks)
		err := runner.Run(ctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	runErr := g.Wait()
	if rec != nil {
		if err := rec.Close(); err != nil && runErr == nil {
			runErr = fmt.Errorf("close recording: %w", err)
		}
		logger.Infof("recorded %d snapshots to %s", rec.Count(), out)
	}
	if runErr != nil {
		return runErr
	}

	hits, misses := a.sim.PathCacheStats()
	snap := a.sim.Snapshot()
	fmt.Printf("run %s finished after %d ticks with %d aircraft (path cache %d hits, %d misses)\n",
		snap.RunID, snap.Tick, len(snap.Aircraft), hits, misses)
	for _, ac := range snap.Aircraft {
		fmt.Printf("  #%-3d %s -> %s  %5.1f%%  (%.2f, %.2f) hdg %03.0f\n",
			ac.ID, ac.Origin, ac.Destination, ac.Progress*100, ac.Lat, ac.Lon, ac.Heading)
	}
	return nil
}
