package geo

import (
	"strings"
	"testing"

	"flightmap/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPath_SampleEnds(t *testing.T) {
	path := NewGreatCirclePath(icn, lax, 100)

	start := path.Sample(0)
	assert.Equal(t, icn, start.Position)
	assert.InDelta(t, Bearing(path.At(0), path.At(1)), start.Heading, 1e-9)

	end := path.Sample(1)
	assert.Equal(t, lax, end.Position)
	assert.InDelta(t, Bearing(path.At(99), path.At(100)), end.Heading, 1e-9)

	assert.Equal(t, end, path.Sample(3))
	assert.Equal(t, start, path.Sample(-1))
}

func TestPath_SampleBlendsBetweenPoints(t *testing.T) {
	path := NewPath([]types.GeoPoint{{Lat: 0, Lon: 0}, {Lat: 0, Lon: 10}, {Lat: 10, Lon: 10}})

	mid := path.Sample(0.25)
	assert.InDelta(t, 0.0, mid.Position.Lat, 1e-9)
	assert.InDelta(t, 5.0, mid.Position.Lon, 1e-9)
	assert.InDelta(t, 90.0, mid.Heading, 1e-9)

	turn := path.Sample(0.5)
	assert.Equal(t, types.GeoPoint{Lat: 0, Lon: 10}, turn.Position)
	assert.InDelta(t, 0.0, turn.Heading, 1e-9)
}

func TestPath_SampleAcrossAntimeridian(t *testing.T) {
	path := NewPath([]types.GeoPoint{{Lat: 0, Lon: 179}, {Lat: 0, Lon: -179}})

	mid := path.Sample(0.5)
	assert.InDelta(t, 180.0, abs(mid.Position.Lon), 1e-9)
	assert.InDelta(t, 90.0, mid.Heading, 1e-9)
}

func TestPath_Degenerate(t *testing.T) {
	assert.Equal(t, Sample{}, Path{}.Sample(0.5))

	single := NewPath([]types.GeoPoint{icn})
	assert.Equal(t, Sample{Position: icn}, single.Sample(0.5))
	ls, err := single.LineString()
	require.NoError(t, err)
	assert.True(t, ls.IsEmpty())
}

func TestPath_PointsIsACopy(t *testing.T) {
	src := []types.GeoPoint{icn, lax}
	path := NewPath(src)
	src[0] = cdg

	pts := path.Points()
	pts[1] = syd

	assert.Equal(t, icn, path.First())
	assert.Equal(t, lax, path.Last())
}

func TestPath_WKT(t *testing.T) {
	path := NewPath([]types.GeoPoint{{Lat: 1, Lon: 2}, {Lat: 3, Lon: 4}})

	wkt, err := path.WKT()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(wkt, "LINESTRING"), wkt)
	assert.Contains(t, wkt, "2 1")
	assert.Contains(t, wkt, "4 3")

	ls, err := path.LineString()
	require.NoError(t, err)
	require.Equal(t, 2, ls.Coordinates().Length())

	wkt, err = NewGreatCirclePath(icn, lax, 8).WKT()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(wkt, "LINESTRING"), wkt)
}

func TestPath_Project(t *testing.T) {
	path := NewGreatCirclePath(icn, lax, 4)
	projected := path.Project(Mercator)

	require.Len(t, projected, 5)
	assert.Equal(t, Mercator(icn), projected[0])
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
