package geo

import (
	"math"
	"math/rand"
	"testing"

	"flightmap/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	icn = types.NewGeoPoint(37.4602, 126.4407)
	lax = types.NewGeoPoint(33.9416, -118.4085)
	cdg = types.NewGeoPoint(49.0097, 2.5479)
	syd = types.NewGeoPoint(-33.9399, 151.1753)
)

func randomPoint(r *rand.Rand) types.GeoPoint {
	return types.NewGeoPoint(r.Float64()*178-89, r.Float64()*358-179)
}

func TestInterpolate_EndpointsAndLength(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		a, b := randomPoint(r), randomPoint(r)
		steps := 1 + r.Intn(150)
		pts := Interpolate(a, b, steps)

		require.Len(t, pts, steps+1)
		assert.InDelta(t, a.Lat, pts[0].Lat, 1e-6)
		assert.InDelta(t, a.Lon, pts[0].Lon, 1e-6)
		assert.InDelta(t, b.Lat, pts[steps].Lat, 1e-6)
		assert.InDelta(t, b.Lon, pts[steps].Lon, 1e-6)
	}
}

func TestInterpolate_EquatorMidpoint(t *testing.T) {
	pts := Interpolate(types.NewGeoPoint(0, 0), types.NewGeoPoint(0, 90), 2)

	require.Len(t, pts, 3)
	assert.InDelta(t, 0.0, pts[1].Lat, 1e-9)
	assert.InDelta(t, 45.0, pts[1].Lon, 1e-9)
}

func TestInterpolate_StaysOnGreatCircle(t *testing.T) {
	pts := Interpolate(icn, lax, 50)
	total := GreatCircleDistance(icn, lax)

	for i, p := range pts {
		sum := GreatCircleDistance(icn, p) + GreatCircleDistance(p, lax)
		assert.InDelta(t, total, sum, 1e-3, "point %d is off the great circle", i)
	}
}

func TestInterpolate_UniformAngularFractions(t *testing.T) {
	pts := Interpolate(cdg, syd, 10)
	total := GreatCircleDistance(cdg, syd)

	for i, p := range pts {
		assert.InDelta(t, total*float64(i)/10, GreatCircleDistance(cdg, p), 1e-3)
	}
}

func TestInterpolate_CoincidentPointsFallBackToLinear(t *testing.T) {
	p := types.NewGeoPoint(12.5, -45.25)
	pts := Interpolate(p, p, 4)

	require.Len(t, pts, 5)
	for _, q := range pts {
		assert.Equal(t, p, q)
	}
}

func TestInterpolate_StepsBelowOne(t *testing.T) {
	pts := Interpolate(icn, lax, 0)

	require.Len(t, pts, 2)
	assert.Equal(t, icn, pts[0])
	assert.Equal(t, lax, pts[1])
}

func TestInterpolate_NaNPropagates(t *testing.T) {
	pts := Interpolate(types.NewGeoPoint(math.NaN(), 0), types.NewGeoPoint(10, 10), 4)

	require.Len(t, pts, 5)
	assert.True(t, math.IsNaN(pts[2].Lat))
}

func TestGreatCircleDistance(t *testing.T) {
	assert.Equal(t, 0.0, GreatCircleDistance(icn, icn))
	assert.InDelta(t, types.EARTH_RADIUS_KM*math.Pi/2,
		GreatCircleDistance(types.NewGeoPoint(0, 0), types.NewGeoPoint(0, 90)), 1e-6)
	assert.InDelta(t, types.EARTH_RADIUS_KM*math.Pi,
		GreatCircleDistance(types.NewGeoPoint(90, 0), types.NewGeoPoint(-90, 0)), 1e-6)
	assert.InDelta(t, 9627.0, GreatCircleDistance(icn, lax), 5.0)
}

func TestGreatCircleDistance_SymmetricAndTriangle(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		a, b, c := randomPoint(r), randomPoint(r), randomPoint(r)

		ab := GreatCircleDistance(a, b)
		assert.InDelta(t, ab, GreatCircleDistance(b, a), 1e-9)
		assert.LessOrEqual(t, GreatCircleDistance(a, c), ab+GreatCircleDistance(b, c)+1e-6)
	}
}

func TestBuildMultiSegmentPath_NoDuplicateJunctions(t *testing.T) {
	path := BuildMultiSegmentPath([]types.GeoPoint{icn, lax, cdg}, 10)

	require.Equal(t, 21, path.Len())
	assert.Equal(t, icn, path.First())
	assert.Equal(t, lax, path.At(10))
	assert.Equal(t, cdg, path.Last())
	for i := 1; i < path.Len(); i++ {
		assert.NotEqual(t, path.At(i-1), path.At(i), "duplicate point at %d", i)
	}
}

func TestBuildMultiSegmentPath_Degenerate(t *testing.T) {
	assert.True(t, BuildMultiSegmentPath(nil, 10).IsEmpty())

	single := BuildMultiSegmentPath([]types.GeoPoint{icn}, 10)
	require.Equal(t, 1, single.Len())
	assert.Equal(t, icn, single.First())

	direct := BuildMultiSegmentPath([]types.GeoPoint{icn, lax}, 100)
	assert.Equal(t, Interpolate(icn, lax, 100), direct.Points())
}

func TestRouteDistance(t *testing.T) {
	want := GreatCircleDistance(icn, lax) + GreatCircleDistance(lax, cdg)
	assert.InDelta(t, want, RouteDistance([]types.GeoPoint{icn, lax, cdg}), 1e-9)
	assert.Equal(t, 0.0, RouteDistance([]types.GeoPoint{icn}))
}

func TestBearing(t *testing.T) {
	origin := types.NewGeoPoint(0, 0)
	assert.InDelta(t, 0.0, Bearing(origin, types.NewGeoPoint(1, 0)), 1e-9)
	assert.InDelta(t, 90.0, Bearing(origin, types.NewGeoPoint(0, 1)), 1e-9)
	assert.InDelta(t, 180.0, Bearing(origin, types.NewGeoPoint(-1, 0)), 1e-9)
	assert.InDelta(t, 270.0, Bearing(origin, types.NewGeoPoint(0, -1)), 1e-9)

	// crossing the antimeridian eastbound
	assert.InDelta(t, 90.0, Bearing(types.NewGeoPoint(0, 179.5), types.NewGeoPoint(0, -179.5)), 1e-9)
}

func TestInitialBearing(t *testing.T) {
	assert.InDelta(t, 90.0, InitialBearing(types.NewGeoPoint(0, 0), types.NewGeoPoint(0, 10)), 1e-9)
	assert.InDelta(t, 0.0, InitialBearing(types.NewGeoPoint(0, 0), types.NewGeoPoint(10, 0)), 1e-9)
	// ICN to LAX leaves toward the north-east over the Pacific
	h := InitialBearing(icn, lax)
	assert.Greater(t, h, 0.0)
	assert.Less(t, h, 90.0)
}
