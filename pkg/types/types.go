package types

import "math"

const EARTH_RADIUS_KM = 6371.0

type AircraftID int

type AirportCode string

// GeoPoint is a latitude/longitude pair in degrees.
type GeoPoint struct {
	Lat float64
	Lon float64
}

func NewGeoPoint(lat, lon float64) GeoPoint {
	return GeoPoint{Lat: lat, Lon: lon}
}

func (p GeoPoint) Radians() (lat, lon float64) {
	return p.Lat * math.Pi / 180.0, p.Lon * math.Pi / 180.0
}

func (p GeoPoint) IsValid() bool {
	return !math.IsNaN(p.Lat) && !math.IsNaN(p.Lon) &&
		p.Lat >= -90 && p.Lat <= 90 && p.Lon >= -180 && p.Lon <= 180
}

type Vec2 struct {
	X float64
	Y float64
}

func NewVec2(x, y float64) Vec2 {
	return Vec2{x, y}
}

func (v1 Vec2) DistanceTo(v2 Vec2) float64 {
	dx := v1.X - v2.X
	dy := v1.Y - v2.Y
	return math.Sqrt(dx*dx + dy*dy)
}

type Vec3 struct {
	X float64
	Y float64
	Z float64
}

func (v Vec3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}
