package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const simSubsystem = "sim"

// SimulationCollector records scheduler metrics. It satisfies
// simulation.Recorder.
type SimulationCollector struct {
	ticksTotal         prometheus.Counter
	tickDuration       prometheus.Histogram
	reassignmentsTotal prometheus.Counter
	population         prometheus.Gauge
	speedMultiplier    prometheus.Gauge
	separationLosses   prometheus.Gauge
}

func NewSimulationCollector() *SimulationCollector {
	return &SimulationCollector{
		ticksTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: simSubsystem,
			Name:      "ticks_total",
			Help:      "Total number of simulation ticks that advanced at least one aircraft",
		}),
		tickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: simSubsystem,
			Name:      "tick_duration_seconds",
			Help:      "Time spent advancing the fleet for one tick",
			Buckets:   []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
		}),
		reassignmentsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: simSubsystem,
			Name:      "reassignments_total",
			Help:      "Total number of arrivals that sent an aircraft on a new route",
		}),
		population: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: simSubsystem,
			Name:      "population",
			Help:      "Number of aircraft currently flying",
		}),
		speedMultiplier: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: simSubsystem,
			Name:      "speed_multiplier",
			Help:      "Current simulation speed multiplier",
		}),
		separationLosses: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: simSubsystem,
			Name:      "separation_losses",
			Help:      "Number of aircraft pairs currently closer than the separation minimum",
		}),
	}
}

func (c *SimulationCollector) Register(reg prometheus.Registerer) error {
	for _, m := range []prometheus.Collector{
		c.ticksTotal,
		c.tickDuration,
		c.reassignmentsTotal,
		c.population,
		c.speedMultiplier,
		c.separationLosses,
	} {
		if err := reg.Register(m); err != nil {
			return err
		}
	}
	return nil
}

func (c *SimulationCollector) ObserveTick(d time.Duration, population int) {
	c.ticksTotal.Inc()
	c.tickDuration.Observe(d.Seconds())
	c.population.Set(float64(population))
}

func (c *SimulationCollector) IncReassignments() {
	c.reassignmentsTotal.Inc()
}

func (c *SimulationCollector) SetPopulation(n int) {
	c.population.Set(float64(n))
}

func (c *SimulationCollector) SetSpeedMultiplier(x float64) {
	c.speedMultiplier.Set(x)
}

func (c *SimulationCollector) SetSeparationLosses(n int) {
	c.separationLosses.Set(float64(n))
}
