package simulation

import (
	"context"
	"time"
)

// Runner drives Frame from a wall-clock ticker for headless runs.
type Runner struct {
	sim      *Simulation
	interval time.Duration
	maxTicks int

	// OnTick, when set, receives a snapshot after every frame that ticked.
	// An error ends the run.
	OnTick func(Snapshot) error
}

// NewRunner creates a runner firing every interval. maxTicks <= 0 runs
// until the context is cancelled.
func NewRunner(sim *Simulation, interval time.Duration, maxTicks int) *Runner {
	if interval <= 0 {
		interval = time.Second / 60
	}
	return &Runner{sim: sim, interval: interval, maxTicks: maxTicks}
}

// Run blocks until maxTicks frames have ticked or ctx is done. The ticker
// is stopped before Run returns.
func (r *Runner) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	ticked := 0
	for r.maxTicks <= 0 || ticked < r.maxTicks {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		if !r.sim.Frame() {
			continue
		}
		ticked++

		if r.OnTick != nil {
			if err := r.OnTick(r.sim.Snapshot()); err != nil {
				return err
			}
		}
	}
	return nil
}
