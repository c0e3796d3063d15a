package geo

import (
	"math"

	"flightmap/pkg/types"

	"github.com/wroge/wgs84"
)

// Web Mercator is undefined at the poles; latitudes are clamped to the
// square world used by web maps.
const (
	MERCATOR_MAX_LAT    = 85.05112878
	MERCATOR_HALF_WORLD = 20037508.342789244
)

var toWebMercator = wgs84.EPSG().Transform(4326, 3857)

// Mercator projects p to EPSG:3857 metres.
func Mercator(p types.GeoPoint) types.Vec2 {
	lat := math.Max(-MERCATOR_MAX_LAT, math.Min(MERCATOR_MAX_LAT, p.Lat))
	x, y, _ := toWebMercator(p.Lon, lat, 0)
	return types.Vec2{X: x, Y: y}
}

// MercatorUnit projects p into [0,1]x[0,1] with the origin at the north-west
// corner, which is what screen-space renderers want.
func MercatorUnit(p types.GeoPoint) types.Vec2 {
	m := Mercator(p)
	return types.Vec2{
		X: (m.X + MERCATOR_HALF_WORLD) / (2 * MERCATOR_HALF_WORLD),
		Y: (MERCATOR_HALF_WORLD - m.Y) / (2 * MERCATOR_HALF_WORLD),
	}
}

// Cartesian returns the unit-sphere vector for p, for globe renderers.
func Cartesian(p types.GeoPoint) types.Vec3 {
	lat, lon := p.Radians()
	return types.Vec3{
		X: math.Cos(lat) * math.Cos(lon),
		Y: math.Cos(lat) * math.Sin(lon),
		Z: math.Sin(lat),
	}
}
