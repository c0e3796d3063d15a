package simulation

import (
	"fmt"

	"flightmap/internal/game/airspace"
	"flightmap/internal/geo"
	"flightmap/pkg/types"

	lru "github.com/hashicorp/golang-lru/v2"
)

type pathKey struct {
	origin      types.AirportCode
	destination types.AirportCode
	steps       int
}

// PathCache keeps recently built great-circle paths so an aircraft sent
// along a pair flown before does not interpolate it again. Paths are
// immutable and safe to share between aircraft.
type PathCache struct {
	cache  *lru.Cache[pathKey, geo.Path]
	hits   int
	misses int
}

func NewPathCache(size int) (*PathCache, error) {
	c, err := lru.New[pathKey, geo.Path](size)
	if err != nil {
		return nil, fmt.Errorf("create path cache: %w", err)
	}
	return &PathCache{cache: c}, nil
}

func (c *PathCache) Get(origin, destination airspace.Airport, steps int) geo.Path {
	key := pathKey{origin: origin.Code, destination: destination.Code, steps: steps}
	if p, ok := c.cache.Get(key); ok {
		c.hits++
		return p
	}
	c.misses++
	p := geo.BuildMultiSegmentPath([]types.GeoPoint{origin.Position(), destination.Position()}, steps)
	c.cache.Add(key, p)
	return p
}

func (c *PathCache) Len() int {
	return c.cache.Len()
}

func (c *PathCache) Stats() (hits, misses int) {
	return c.hits, c.misses
}

func (c *PathCache) Purge() {
	c.cache.Purge()
}
