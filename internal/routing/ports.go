package routing

import (
	"context"
	"errors"

	"flightmap/internal/game/flightplan"
)

var ErrUnknownAirport = errors.New("unknown airport")

// Planner finds the cheapest sequence of stops between two airports. A
// missing path is reported as a NO_ROUTE plan, not an error.
type Planner interface {
	PlanRoute(ctx context.Context, origin, destination string) (flightplan.FlightPlan, error)
}
