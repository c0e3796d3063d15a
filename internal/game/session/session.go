package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"flightmap/internal/game/airspace"
	"flightmap/internal/game/flightplan"
	"flightmap/internal/game/simulation"
	"flightmap/internal/geo"
	"flightmap/internal/logging"
	"flightmap/internal/routing"
	"flightmap/pkg/types"

	"github.com/labstack/gommon/log"
)

type Mode int

const (
	SIM Mode = iota
	SEARCH
)

var ModeStringMap = map[Mode]string{
	SIM:    "SIM",
	SEARCH: "SEARCH",
}

func (m Mode) String() string {
	return ModeStringMap[m]
}

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "sim", "simulation":
		return SIM, nil
	case "search", "route":
		return SEARCH, nil
	}
	return SIM, fmt.Errorf("unknown mode %q", s)
}

var ErrEmptySelection = errors.New("origin and destination are required")

type StopRole int

const (
	ORIGIN StopRole = iota
	VIA
	DESTINATION
)

type Stop struct {
	Airport airspace.Airport
	Role    StopRole
}

// RouteView is everything needed to draw one searched route.
type RouteView struct {
	Plan          flightplan.FlightPlan
	Stops         []Stop
	Path          geo.Path
	GreatCircleKm float64
	ReportedKm    float64
	Summary       string
}

func (v RouteView) Found() bool {
	return v.Plan.Found()
}

// RouteRecorder counts route searches; internal/metrics implements it.
type RouteRecorder interface {
	RecordRoute(status string, found bool, distanceKm float64)
}

// Session switches between the running simulation and the route search
// view. Only one of them is visible at a time.
type Session struct {
	mu sync.Mutex

	sim     *simulation.Simulation
	dir     *airspace.Directory
	planner routing.Planner
	steps   int
	metrics RouteRecorder
	logger  *log.Logger

	mode   Mode
	route  *RouteView
	resume bool
}

func NewSession(sim *simulation.Simulation, dir *airspace.Directory, planner routing.Planner, stepsPerSegment int) *Session {
	if stepsPerSegment < 1 {
		stepsPerSegment = geo.DEFAULT_STEPS
	}
	return &Session{
		sim:     sim,
		dir:     dir,
		planner: planner,
		steps:   stepsPerSegment,
		logger:  logging.New("session"),
		mode:    SIM,
	}
}

func (s *Session) SetRecorder(r RouteRecorder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.metrics = r
}

func (s *Session) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// SwitchMode changes the visible layer. Entering SEARCH stops the
// simulation and releases its sprites. Entering SIM clears the route and
// restarts the simulation only if entering SEARCH was what stopped it.
func (s *Session) SwitchMode(m Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if m == s.mode {
		return
	}
	s.mode = m
	switch m {
	case SEARCH:
		s.resume = s.sim.Running()
		s.sim.Stop()
	case SIM:
		s.route = nil
		if s.resume {
			s.sim.Start()
		}
		s.resume = false
	}
	s.logger.Infof("mode %s", m)
}

// Route returns the last calculated route, if any.
func (s *Session) Route() (RouteView, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.route == nil {
		return RouteView{}, false
	}
	return *s.route, true
}

func (s *Session) ClearRoute() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.route = nil
}

// CalculateRoute asks the planner for a route and builds its display
// geometry. A NO_ROUTE result is returned as a view, not an error.
func (s *Session) CalculateRoute(ctx context.Context, origin, destination string) (RouteView, error) {
	origin, destination = strings.TrimSpace(origin), strings.TrimSpace(destination)
	if origin == "" || destination == "" {
		return RouteView{}, ErrEmptySelection
	}

	plan, err := s.planner.PlanRoute(ctx, origin, destination)
	if err != nil {
		return RouteView{}, fmt.Errorf("plan route %s -> %s: %w", origin, destination, err)
	}

	view, err := BuildRouteView(s.dir, plan, s.steps)
	if err != nil {
		return RouteView{}, err
	}

	s.mu.Lock()
	s.route = &view
	if s.metrics != nil {
		s.metrics.RecordRoute(plan.Status.String(), view.Found(), plan.TotalDistanceKm)
	}
	s.mu.Unlock()

	s.logger.Infof("route %s", plan)
	return view, nil
}

// BuildRouteView resolves the plan's stops in dir and joins the great-circle
// segments between consecutive stops into one path.
func BuildRouteView(dir *airspace.Directory, plan flightplan.FlightPlan, steps int) (RouteView, error) {
	view := RouteView{Plan: plan, Summary: plan.Summary()}
	if !plan.Found() {
		return view, nil
	}

	waypoints := make([]types.GeoPoint, 0, len(plan.Stops))
	for i, code := range plan.Stops {
		ap, ok := dir.Lookup(code)
		if !ok {
			return RouteView{}, fmt.Errorf("%w: %q", routing.ErrUnknownAirport, code)
		}
		role := VIA
		switch i {
		case 0:
			role = ORIGIN
		case len(plan.Stops) - 1:
			role = DESTINATION
		}
		view.Stops = append(view.Stops, Stop{Airport: ap, Role: role})
		waypoints = append(waypoints, ap.Position())
	}

	view.Path = geo.BuildMultiSegmentPath(waypoints, steps)
	view.GreatCircleKm = geo.RouteDistance(waypoints)
	view.ReportedKm = plan.TotalDistanceKm
	return view, nil
}
