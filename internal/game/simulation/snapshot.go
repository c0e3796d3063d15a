package simulation

import (
	"flightmap/internal/game/aircraft"
	"flightmap/pkg/types"
)

type AircraftSnapshot struct {
	ID          types.AircraftID `msgpack:"id"`
	Origin      string           `msgpack:"origin"`
	Destination string           `msgpack:"destination"`
	State       string           `msgpack:"state"`
	Progress    float64          `msgpack:"progress"`
	Lat         float64          `msgpack:"lat"`
	Lon         float64          `msgpack:"lon"`
	Heading     float64          `msgpack:"heading"`
}

// Snapshot is a read-only copy of the simulation after one tick.
type Snapshot struct {
	RunID           string             `msgpack:"run_id"`
	Tick            uint64             `msgpack:"tick"`
	SpeedMultiplier float64            `msgpack:"speed_multiplier"`
	Running         bool               `msgpack:"running"`
	Aircraft        []AircraftSnapshot `msgpack:"aircraft"`
}

func snapshotOf(ac *aircraft.Aircraft) AircraftSnapshot {
	return AircraftSnapshot{
		ID:          ac.ID,
		Origin:      string(ac.Origin.Code),
		Destination: string(ac.Destination.Code),
		State:       ac.State.String(),
		Progress:    ac.Progress,
		Lat:         ac.Position.Lat,
		Lon:         ac.Position.Lon,
		Heading:     ac.Heading,
	}
}

func (a AircraftSnapshot) Position() types.GeoPoint {
	return types.NewGeoPoint(a.Lat, a.Lon)
}
