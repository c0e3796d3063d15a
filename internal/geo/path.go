package geo

import (
	"fmt"
	"math"

	"flightmap/pkg/types"

	geom "github.com/peterstace/simplefeatures/geom"
)

// Path is an immutable sequence of points along one or more great-circle
// segments.
type Path struct {
	points []types.GeoPoint
}

type Sample struct {
	Position types.GeoPoint
	Heading  float64
}

func NewPath(points []types.GeoPoint) Path {
	cp := make([]types.GeoPoint, len(points))
	copy(cp, points)
	return Path{points: cp}
}

// NewGreatCirclePath is the two-waypoint case of BuildMultiSegmentPath.
func NewGreatCirclePath(start, end types.GeoPoint, steps int) Path {
	return Path{points: Interpolate(start, end, steps)}
}

func (p Path) Len() int {
	return len(p.points)
}

func (p Path) IsEmpty() bool {
	return len(p.points) == 0
}

func (p Path) At(i int) types.GeoPoint {
	return p.points[i]
}

func (p Path) First() types.GeoPoint {
	return p.points[0]
}

func (p Path) Last() types.GeoPoint {
	return p.points[len(p.points)-1]
}

// Points returns a copy of the path's points.
func (p Path) Points() []types.GeoPoint {
	cp := make([]types.GeoPoint, len(p.points))
	copy(cp, p.points)
	return cp
}

func (p Path) Distance() float64 {
	return RouteDistance(p.points)
}

// Sample returns the position at progress (clamped to [0, 1]) and the
// heading toward the next sample point. Progress maps to the sample index
// uniformly; positions between two samples are blended linearly. An empty
// path yields the zero Sample.
func (p Path) Sample(progress float64) Sample {
	n := len(p.points)
	switch {
	case n == 0:
		return Sample{}
	case n == 1:
		return Sample{Position: p.points[0]}
	}

	progress = math.Max(0, math.Min(1, progress))
	t := progress * float64(n-1)
	idx := int(math.Floor(t))
	if idx >= n-1 {
		return Sample{
			Position: p.points[n-1],
			Heading:  Bearing(p.points[n-2], p.points[n-1]),
		}
	}

	cur, next := p.points[idx], p.points[idx+1]
	frac := t - float64(idx)
	pos := types.GeoPoint{
		Lat: cur.Lat + frac*(next.Lat-cur.Lat),
		Lon: cur.Lon + frac*wrapLongitude(next.Lon-cur.Lon),
	}
	pos.Lon = wrapLongitude(pos.Lon)

	return Sample{Position: pos, Heading: Bearing(cur, next)}
}

// Project maps every point of the path through fn, e.g. Mercator.
func (p Path) Project(fn func(types.GeoPoint) types.Vec2) []types.Vec2 {
	out := make([]types.Vec2, len(p.points))
	for i, pt := range p.points {
		out[i] = fn(pt)
	}
	return out
}

// LineString converts the path to a lon/lat LineString. Paths with fewer
// than two points give an empty LineString.
func (p Path) LineString() (geom.LineString, error) {
	if len(p.points) < 2 {
		return geom.LineString{}, nil
	}
	flat := make([]float64, 0, len(p.points)*2)
	for _, pt := range p.points {
		flat = append(flat, pt.Lon, pt.Lat)
	}
	ls, err := geom.NewLineString(geom.NewSequence(flat, geom.DimXY))
	if err != nil {
		return geom.LineString{}, fmt.Errorf("build line string: %w", err)
	}
	return ls, nil
}

func (p Path) WKT() (string, error) {
	ls, err := p.LineString()
	if err != nil {
		return "", err
	}
	return ls.AsText(), nil
}
