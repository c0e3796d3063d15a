package main

import (
	"sync"

	"flightmap/internal/game/simulation"
	"flightmap/internal/geo"
	"flightmap/pkg/types"
)

const TRAIL_LENGTH = 48

// mapSprite is the marker and fading trail of one aircraft route.
type mapSprite struct {
	layer   *spriteLayer
	id      types.AircraftID
	path    geo.Path
	trail   []types.GeoPoint
	pos     types.GeoPoint
	heading float64
}

func (s *mapSprite) Move(pos types.GeoPoint, heading float64) {
	s.layer.mu.Lock()
	defer s.layer.mu.Unlock()

	s.pos, s.heading = pos, heading
	s.trail = append(s.trail, pos)
	if len(s.trail) > TRAIL_LENGTH {
		s.trail = s.trail[len(s.trail)-TRAIL_LENGTH:]
	}
}

func (s *mapSprite) Release() {
	s.layer.mu.Lock()
	defer s.layer.mu.Unlock()

	if s.layer.live[s.id] == s {
		delete(s.layer.live, s.id)
	}
}

// spriteLayer is the simulation's SpriteFactory for the window. It keeps
// the live sprites the renderer draws each frame.
type spriteLayer struct {
	mu   sync.Mutex
	live map[types.AircraftID]*mapSprite
}

func newSpriteLayer() *spriteLayer {
	return &spriteLayer{live: make(map[types.AircraftID]*mapSprite)}
}

func (l *spriteLayer) NewSprite(id types.AircraftID, path geo.Path) simulation.Sprite {
	l.mu.Lock()
	defer l.mu.Unlock()

	s := &mapSprite{layer: l, id: id, path: path}
	l.live[id] = s
	return s
}

type spriteView struct {
	id      types.AircraftID
	path    geo.Path
	trail   []types.GeoPoint
	pos     types.GeoPoint
	heading float64
}

// each calls fn with a copy of every live sprite.
func (l *spriteLayer) each(fn func(spriteView)) {
	l.mu.Lock()
	views := make([]spriteView, 0, len(l.live))
	for _, s := range l.live {
		trail := make([]types.GeoPoint, len(s.trail))
		copy(trail, s.trail)
		views = append(views, spriteView{id: s.id, path: s.path, trail: trail, pos: s.pos, heading: s.heading})
	}
	l.mu.Unlock()

	for _, v := range views {
		fn(v)
	}
}
