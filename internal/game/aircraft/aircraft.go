package aircraft

import (
	"fmt"
	"math"

	"flightmap/internal/game/airspace"
	"flightmap/internal/geo"
	"flightmap/pkg/types"
)

type AircraftState int

const (
	IDLE AircraftState = iota
	TRAVELING
	ARRIVED
)

var StateStringMap = map[AircraftState]string{
	IDLE:      "IDLE",
	TRAVELING: "TRAVELING",
	ARRIVED:   "ARRIVED",
}

func (s AircraftState) String() string {
	return StateStringMap[s]
}

// Sprite is the renderable resource attached to one route of an aircraft.
type Sprite interface {
	Move(pos types.GeoPoint, heading float64)
	Release()
}

type noopSprite struct{}

func (noopSprite) Move(types.GeoPoint, float64) {}
func (noopSprite) Release()                     {}

var NoopSprite Sprite = noopSprite{}

type Aircraft struct {
	ID          types.AircraftID
	Origin      airspace.Airport
	Destination airspace.Airport
	Path        geo.Path
	Progress    float64
	Speed       float64
	State       AircraftState

	Position types.GeoPoint
	Heading  float64

	Sprite Sprite
}

func NewAircraft(id types.AircraftID, speed float64) *Aircraft {
	return &Aircraft{
		ID:     id,
		Speed:  speed,
		State:  IDLE,
		Sprite: NoopSprite,
	}
}

// Assign puts the aircraft on a new route starting at progress and samples
// its position. Any sprite from the previous route must be released by the
// caller first.
func (ac *Aircraft) Assign(origin, destination airspace.Airport, path geo.Path, progress float64, sprite Sprite) {
	if sprite == nil {
		sprite = NoopSprite
	}
	ac.Origin = origin
	ac.Destination = destination
	ac.Path = path
	ac.Progress = math.Max(0, math.Min(progress, math.Nextafter(1, 0)))
	ac.State = TRAVELING
	ac.Sprite = sprite
	ac.Resample()
}

// Advance moves the aircraft along its path by delta and reports whether it
// reached the end. An arrived aircraft stays ARRIVED until reassigned.
func (ac *Aircraft) Advance(delta float64) bool {
	if ac.State != TRAVELING {
		return false
	}
	ac.Progress += delta
	if ac.Progress >= 1 {
		ac.Progress = 1
		ac.State = ARRIVED
		return true
	}
	return false
}

// Resample updates Position and Heading from the current progress and moves
// the sprite there.
func (ac *Aircraft) Resample() {
	s := ac.Path.Sample(ac.Progress)
	ac.Position = s.Position
	ac.Heading = s.Heading
	ac.Sprite.Move(ac.Position, ac.Heading)
}

// ReleaseSprite releases the current sprite once and detaches it.
func (ac *Aircraft) ReleaseSprite() {
	if ac.Sprite == nil {
		return
	}
	ac.Sprite.Release()
	ac.Sprite = NoopSprite
}

func (ac *Aircraft) RouteLabel() string {
	return fmt.Sprintf("%s -> %s", ac.Origin.Code, ac.Destination.Code)
}

func (ac *Aircraft) String() string {
	return fmt.Sprintf("#%d %s %s progress %.3f at (%.2f, %.2f) heading %.0f",
		ac.ID, ac.RouteLabel(), ac.State, ac.Progress, ac.Position.Lat, ac.Position.Lon, ac.Heading)
}
