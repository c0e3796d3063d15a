package main

import (
	"context"
	"fmt"

	"flightmap/internal/config"
	"flightmap/internal/game/airspace"
	"flightmap/internal/game/session"
	"flightmap/internal/game/simulation"
	"flightmap/internal/logging"
	"flightmap/internal/metrics"
	"flightmap/internal/routing"
	"flightmap/internal/storage"

	"github.com/prometheus/client_golang/prometheus"
)

// app holds everything the window and headless commands share.
type app struct {
	cfg      *config.Config
	dir      *airspace.Directory
	planner  *routing.Dijkstra
	sim      *simulation.Simulation
	session  *session.Session
	registry *prometheus.Registry
}

func loadDirectory(ctx context.Context, cfg *config.Config) (*airspace.Directory, error) {
	logger := logging.New("data")

	var (
		dir *airspace.Directory
		err error
	)
	switch cfg.Data.Source {
	case "database":
		store, openErr := storage.Open(cfg.Database)
		if openErr != nil {
			return nil, openErr
		}
		defer store.Close()
		dir, err = store.LoadDirectory(ctx)
	default:
		dir, err = airspace.LoadCSVFile(cfg.Data.AirportsCSV)
	}
	if err != nil {
		return nil, err
	}

	logger.Infof("loaded %d airports from %s (%d skipped)", dir.Len(), cfg.Data.Source, dir.Skipped())
	if dir.Len() < 2 {
		logger.Warnf("fewer than two airports, the simulation cannot fly")
	}
	return dir, nil
}

func newPlanner(cfg *config.Config, dir *airspace.Directory) *routing.Dijkstra {
	return routing.NewDijkstra(routing.NewGraph(dir, cfg.Routing.MaxLegKm))
}

func newApp(ctx context.Context, cfg *config.Config, sprites simulation.SpriteFactory) (*app, error) {
	dir, err := loadDirectory(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("load airports: %w", err)
	}

	registry := metrics.NewRegistry()
	simMetrics := metrics.NewSimulationCollector()
	routeMetrics := metrics.NewRouteCollector()
	if err := simMetrics.Register(registry); err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}
	if err := routeMetrics.Register(registry); err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}

	sim, err := simulation.NewSimulation(cfg.Sim, dir,
		simulation.WithSpriteFactory(sprites),
		simulation.WithRecorder(simMetrics),
	)
	if err != nil {
		return nil, err
	}

	planner := newPlanner(cfg, dir)
	sess := session.NewSession(sim, dir, planner, cfg.Sim.StepsPerSegment)
	sess.SetRecorder(routeMetrics)

	return &app{
		cfg:      cfg,
		dir:      dir,
		planner:  planner,
		sim:      sim,
		session:  sess,
		registry: registry,
	}, nil
}
