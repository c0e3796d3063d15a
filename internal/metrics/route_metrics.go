package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const routeSubsystem = "routing"

// RouteCollector records route searches by outcome.
type RouteCollector struct {
	searchesTotal *prometheus.CounterVec
	distanceKm    prometheus.Histogram
}

func NewRouteCollector() *RouteCollector {
	return &RouteCollector{
		searchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: routeSubsystem,
				Name:      "searches_total",
				Help:      "Total number of route searches by status",
			},
			[]string{"status"},
		),
		distanceKm: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: routeSubsystem,
			Name:      "route_distance_km",
			Help:      "Reported distance of found routes",
			Buckets:   []float64{100, 500, 1000, 2500, 5000, 10000, 20000},
		}),
	}
}

func (c *RouteCollector) Register(reg prometheus.Registerer) error {
	for _, m := range []prometheus.Collector{c.searchesTotal, c.distanceKm} {
		if err := reg.Register(m); err != nil {
			return err
		}
	}
	return nil
}

// RecordRoute counts one search. distanceKm is only observed for found
// routes.
func (c *RouteCollector) RecordRoute(status string, found bool, distanceKm float64) {
	c.searchesTotal.WithLabelValues(status).Inc()
	if found {
		c.distanceKm.Observe(distanceKm)
	}
}
