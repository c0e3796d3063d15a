package flightplan

import (
	"fmt"
	"strings"
)

type RouteStatus int

const (
	FOUND RouteStatus = iota
	NO_ROUTE
)

var StatusStringMap = map[RouteStatus]string{
	FOUND:    "FOUND",
	NO_ROUTE: "NO_ROUTE",
}

func (s RouteStatus) String() string {
	return StatusStringMap[s]
}

// FlightPlan is the result of a route search between two airports. Stops
// includes the origin and the destination when Status is FOUND and is empty
// otherwise.
type FlightPlan struct {
	Origin          string
	Destination     string
	Stops           []string
	TotalDistanceKm float64
	Status          RouteStatus
}

func NoRoute(origin, destination string) FlightPlan {
	return FlightPlan{Origin: origin, Destination: destination, Status: NO_ROUTE}
}

func (fp FlightPlan) Found() bool {
	return fp.Status == FOUND && len(fp.Stops) > 0
}

// Intermediate returns the stops between origin and destination.
func (fp FlightPlan) Intermediate() []string {
	if len(fp.Stops) <= 2 {
		return nil
	}
	return fp.Stops[1 : len(fp.Stops)-1]
}

func (fp FlightPlan) IsDirect() bool {
	return fp.Found() && len(fp.Stops) <= 2
}

func (fp FlightPlan) Summary() string {
	if !fp.Found() {
		return fmt.Sprintf("no route from %s to %s", fp.Origin, fp.Destination)
	}
	if fp.IsDirect() {
		return "direct"
	}
	n := len(fp.Intermediate())
	if n == 1 {
		return "via 1 stop"
	}
	return fmt.Sprintf("via %d stops", n)
}

func (fp FlightPlan) String() string {
	if !fp.Found() {
		return fp.Summary()
	}
	return fmt.Sprintf("%s (%s, %.0f km)", strings.Join(fp.Stops, " -> "), fp.Summary(), fp.TotalDistanceKm)
}
