// Package geo builds great-circle paths between points on the globe and
// measures distances between them.
package geo

import (
	"math"

	"flightmap/pkg/types"
)

const DEFAULT_STEPS = 100

// centralAngle returns the haversine central angle in radians between two
// points given in radians.
func centralAngle(lat1, lon1, lat2, lon2 float64) float64 {
	sinDLat := math.Sin((lat1 - lat2) / 2)
	sinDLon := math.Sin((lon1 - lon2) / 2)
	h := sinDLat*sinDLat + math.Cos(lat1)*math.Cos(lat2)*sinDLon*sinDLon
	// rounding can push h a hair above 1 for antipodal points
	return 2 * math.Asin(math.Sqrt(math.Min(h, 1)))
}

// Interpolate returns steps+1 points along the great circle from start to
// end, sampled at uniform fractions i/steps of the central angle.
//
// When the central angle has a zero sine (coincident points, or points the
// slerp weights cannot separate) the points are interpolated linearly in
// lat/lon instead. NaN or out-of-range input is not rejected and shows up
// as NaN in the output.
func Interpolate(start, end types.GeoPoint, steps int) []types.GeoPoint {
	if steps < 1 {
		steps = 1
	}

	lat1, lon1 := start.Radians()
	lat2, lon2 := end.Radians()
	d := centralAngle(lat1, lon1, lat2, lon2)
	sinD := math.Sin(d)

	points := make([]types.GeoPoint, steps+1)
	for i := 0; i <= steps; i++ {
		f := float64(i) / float64(steps)
		if sinD == 0 {
			points[i] = types.GeoPoint{
				Lat: start.Lat + f*(end.Lat-start.Lat),
				Lon: start.Lon + f*(end.Lon-start.Lon),
			}
			continue
		}

		a := math.Sin((1-f)*d) / sinD
		b := math.Sin(f*d) / sinD
		x := a*math.Cos(lat1)*math.Cos(lon1) + b*math.Cos(lat2)*math.Cos(lon2)
		y := a*math.Cos(lat1)*math.Sin(lon1) + b*math.Cos(lat2)*math.Sin(lon2)
		z := a*math.Sin(lat1) + b*math.Sin(lat2)

		points[i] = types.GeoPoint{
			Lat: math.Atan2(z, math.Sqrt(x*x+y*y)) * 180.0 / math.Pi,
			Lon: math.Atan2(y, x) * 180.0 / math.Pi,
		}
	}

	// Pin the endpoints; atan2 loses the longitude at the poles.
	points[0] = start
	points[steps] = end
	return points
}

// GreatCircleDistance returns the haversine distance between a and b in
// kilometres.
func GreatCircleDistance(a, b types.GeoPoint) float64 {
	lat1, lon1 := a.Radians()
	lat2, lon2 := b.Radians()
	return types.EARTH_RADIUS_KM * centralAngle(lat1, lon1, lat2, lon2)
}

// RouteDistance sums the great-circle legs between consecutive points.
func RouteDistance(points []types.GeoPoint) float64 {
	total := 0.0
	for i := 1; i < len(points); i++ {
		total += GreatCircleDistance(points[i-1], points[i])
	}
	return total
}

// BuildMultiSegmentPath interpolates every consecutive pair of waypoints and
// joins the segments. The first point of every segment after the first is
// dropped so junctions appear once.
func BuildMultiSegmentPath(waypoints []types.GeoPoint, stepsPerSegment int) Path {
	switch len(waypoints) {
	case 0:
		return Path{}
	case 1:
		return NewPath(waypoints)
	}

	if stepsPerSegment < 1 {
		stepsPerSegment = 1
	}
	points := make([]types.GeoPoint, 0, (len(waypoints)-1)*stepsPerSegment+1)
	for i := 0; i < len(waypoints)-1; i++ {
		segment := Interpolate(waypoints[i], waypoints[i+1], stepsPerSegment)
		if i > 0 {
			segment = segment[1:]
		}
		points = append(points, segment...)
	}
	return Path{points: points}
}

// Bearing returns the heading in degrees [0, 360) of the flat lat/lon delta
// from one point to the next, 0 being north and 90 east. It is meant for
// orienting markers between two nearby samples of a path.
func Bearing(from, to types.GeoPoint) float64 {
	dLon := wrapLongitude(to.Lon - from.Lon)
	dLat := to.Lat - from.Lat
	h := math.Atan2(dLon, dLat) * 180.0 / math.Pi
	return math.Mod(h+360, 360)
}

// InitialBearing returns the initial great-circle course from a to b in
// degrees [0, 360).
func InitialBearing(a, b types.GeoPoint) float64 {
	lat1, lon1 := a.Radians()
	lat2, lon2 := b.Radians()
	y := math.Sin(lon2-lon1) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(lon2-lon1)
	h := math.Atan2(y, x) * 180.0 / math.Pi
	return math.Mod(h+360, 360)
}

func wrapLongitude(d float64) float64 {
	if d > 180 {
		return d - 360
	}
	if d < -180 {
		return d + 360
	}
	return d
}
