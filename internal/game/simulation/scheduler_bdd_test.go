package simulation

import (
	"context"
	"fmt"
	"math"
	"testing"

	"flightmap/internal/config"
	"flightmap/internal/game/airspace"
	"flightmap/internal/logging"

	"github.com/cucumber/godog"
)

type schedulerContext struct {
	dir     *airspace.Directory
	sim     *Simulation
	sprites *testSprites

	progress []float64
	first    []float64
	second   []float64
}

func (c *schedulerContext) reset() {
	*c = schedulerContext{}
}

func (c *schedulerContext) aDirectoryOfAirports(n int) error {
	all := testAirports().Airports()
	if n > len(all) {
		return fmt.Errorf("only %d test airports available", len(all))
	}
	c.dir = airspace.NewDirectory(all[:n])
	return nil
}

func (c *schedulerContext) aStartedSimulationWithSeed(seed int64) error {
	cfg := config.Default().Sim
	cfg.Seed = seed
	cfg.InitialAircraft = 0

	c.sprites = &testSprites{}
	sim, err := NewSimulation(cfg, c.dir, WithSpriteFactory(c.sprites), WithLogger(logging.Discard("sim")))
	if err != nil {
		return err
	}
	c.sim = sim
	c.sim.Start()
	return nil
}

func (c *schedulerContext) thePopulationSizeIsSetTo(n int) error {
	c.sim.SetPopulationSize(n)
	c.progress = progresses(c.sim)
	return nil
}

func (c *schedulerContext) theSpeedMultiplierIsSetTo(x float64) error {
	c.sim.SetSpeedMultiplier(x)
	return nil
}

func (c *schedulerContext) theSimulationTicksTimes(n int) error {
	for i := 0; i < n; i++ {
		c.sim.Tick()
	}
	return nil
}

func (c *schedulerContext) ticksAtTwoMultipliers(n1 int, m1 float64, n2 int, m2 float64) error {
	// keep every aircraft well short of arrival
	for _, ac := range c.sim.aircraft {
		ac.Speed = 0.001
	}
	run := func(n int, m float64) []float64 {
		c.sim.SetSpeedMultiplier(m)
		start := progresses(c.sim)
		for i := 0; i < n; i++ {
			c.sim.Tick()
		}
		return deltas(start, progresses(c.sim))
	}
	c.first = run(n1, m1)
	c.second = run(n2, m2)
	return nil
}

func (c *schedulerContext) theSecondRunCoveredTwiceTheProgressOfTheFirst() error {
	for i := range c.first {
		if math.Abs(c.second[i]-2*c.first[i]) > 1e-9 {
			return fmt.Errorf("aircraft #%d: %v is not twice %v", i+1, c.second[i], c.first[i])
		}
	}
	return nil
}

func (c *schedulerContext) aircraftAreFlying(n int) error {
	if got := c.sim.Population(); got != n {
		return fmt.Errorf("expected %d aircraft, got %d", n, got)
	}
	return nil
}

func (c *schedulerContext) spritesHaveBeenReleasedExactlyOnce(n int) error {
	once := 0
	for _, sp := range c.sprites.created {
		switch {
		case sp.releases == 1:
			once++
		case sp.releases > 1:
			return fmt.Errorf("sprite of aircraft #%d released %d times", sp.id, sp.releases)
		}
	}
	if once != n {
		return fmt.Errorf("expected %d released sprites, got %d", n, once)
	}
	return nil
}

func (c *schedulerContext) noAircraftHasMoved() error {
	now := progresses(c.sim)
	for i := range now {
		if now[i] != c.progress[i] {
			return fmt.Errorf("aircraft #%d moved from %v to %v", i+1, c.progress[i], now[i])
		}
	}
	return nil
}

func (c *schedulerContext) theSimulationIsStopped() error {
	c.sim.Stop()
	return nil
}

func (c *schedulerContext) theSimulationIsStarted() error {
	c.sim.Start()
	return nil
}

func (c *schedulerContext) noSpriteIsLive() error {
	if live := c.sprites.live(); live != 0 {
		return fmt.Errorf("%d sprites still live", live)
	}
	return c.spritesHaveBeenReleasedExactlyOnce(len(c.sprites.created))
}

func (c *schedulerContext) aFrameDoesNotTick() error {
	if c.sim.Frame() {
		return fmt.Errorf("frame ticked on a stopped simulation")
	}
	return nil
}

func (c *schedulerContext) everyAircraftIsAtTheStartOfItsRoute() error {
	for _, a := range c.sim.Snapshot().Aircraft {
		if a.Progress != 0 {
			return fmt.Errorf("aircraft #%d resumed at progress %v", a.ID, a.Progress)
		}
	}
	return nil
}

func initializeSchedulerScenario(sc *godog.ScenarioContext) {
	c := &schedulerContext{}
	sc.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		c.reset()
		return ctx, nil
	})

	sc.Step(`^a directory of (\d+) airports$`, c.aDirectoryOfAirports)
	sc.Step(`^a started simulation with seed (\d+)$`, c.aStartedSimulationWithSeed)
	sc.Step(`^the population size is set to (\d+)$`, c.thePopulationSizeIsSetTo)
	sc.Step(`^the speed multiplier is set to (\d+(?:\.\d+)?)$`, c.theSpeedMultiplierIsSetTo)
	sc.Step(`^the simulation ticks (\d+) times$`, c.theSimulationTicksTimes)
	sc.Step(`^the simulation ticks (\d+) times at multiplier (\d+(?:\.\d+)?) and (\d+) times at multiplier (\d+(?:\.\d+)?)$`, c.ticksAtTwoMultipliers)
	sc.Step(`^the second run covered twice the progress of the first$`, c.theSecondRunCoveredTwiceTheProgressOfTheFirst)
	sc.Step(`^(\d+) aircraft are flying$`, c.aircraftAreFlying)
	sc.Step(`^(\d+) sprites have been released exactly once$`, c.spritesHaveBeenReleasedExactlyOnce)
	sc.Step(`^no aircraft has moved$`, c.noAircraftHasMoved)
	sc.Step(`^the simulation is stopped$`, c.theSimulationIsStopped)
	sc.Step(`^the simulation is started$`, c.theSimulationIsStarted)
	sc.Step(`^no sprite is live$`, c.noSpriteIsLive)
	sc.Step(`^a frame does not tick$`, c.aFrameDoesNotTick)
	sc.Step(`^every aircraft is at the start of its route$`, c.everyAircraftIsAtTheStartOfItsRoute)
}

func TestSchedulerFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: initializeSchedulerScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features/scheduler.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run scheduler feature tests")
	}
}
