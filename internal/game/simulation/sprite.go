package simulation

import (
	"flightmap/internal/game/aircraft"
	"flightmap/internal/geo"
	"flightmap/pkg/types"
)

type Sprite = aircraft.Sprite

// SpriteFactory creates the renderable resource for one route of one
// aircraft. The simulation moves it every tick and releases it exactly once
// when the route ends, the aircraft is removed or the simulation stops.
type SpriteFactory interface {
	NewSprite(id types.AircraftID, path geo.Path) Sprite
}

type SpriteFactoryFunc func(id types.AircraftID, path geo.Path) Sprite

func (f SpriteFactoryFunc) NewSprite(id types.AircraftID, path geo.Path) Sprite {
	return f(id, path)
}

type noopSprites struct{}

func (noopSprites) NewSprite(types.AircraftID, geo.Path) Sprite {
	return aircraft.NoopSprite
}
