package conflict

import (
	"testing"

	"flightmap/internal/game/aircraft"
	"flightmap/internal/game/airspace"
	"flightmap/internal/geo"
	"flightmap/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	icn = airspace.NewAirport("ICN", "Incheon", "Seoul", "South Korea", 37.46, 126.44)
	nrt = airspace.NewAirport("NRT", "Narita", "Tokyo", "Japan", 35.76, 140.38)
)

func flying(id int, from, to airspace.Airport, progress, speed float64) *aircraft.Aircraft {
	ac := aircraft.NewAircraft(types.AircraftID(id), speed)
	ac.Assign(from, to, geo.NewGreatCirclePath(from.Position(), to.Position(), 10), progress, nil)
	return ac
}

func TestNewPair(t *testing.T) {
	assert.Equal(t, Pair{A: 2, B: 5}, NewPair(5, 2))
	assert.Equal(t, Pair{A: 2, B: 5}, NewPair(2, 5))
}

func TestCheckSeparation(t *testing.T) {
	a := flying(1, icn, nrt, 0, 0.01)
	b := flying(2, nrt, icn, 0, 0.01)

	lost, d := CheckSeparation(a, b, 100)
	assert.False(t, lost)
	assert.InDelta(t, 1250, d, 50)

	lost, _ = CheckSeparation(a, b, 2000)
	assert.True(t, lost)

	c := flying(3, icn, nrt, 0, 0.01)
	lost, d = CheckSeparation(a, c, 1)
	assert.True(t, lost)
	assert.InDelta(t, 0, d, 1e-6)

	idle := aircraft.NewAircraft(4, 0.01)
	lost, _ = CheckSeparation(a, idle, 20000)
	assert.False(t, lost, "idle aircraft have no position")
}

func TestPredictConflict(t *testing.T) {
	a := flying(1, icn, nrt, 0, 0.05)
	b := flying(2, nrt, icn, 0, 0.05)

	conflict, _, _ := PredictConflict(a, b, 0, 1, 10)
	assert.False(t, conflict)

	conflict, p1, p2 := PredictConflict(a, b, 10, 1, 10)
	assert.True(t, conflict, "head-on traffic meets at the midpoint")
	assert.InDelta(t, 0, geo.GreatCircleDistance(p1, p2), 10)

	conflict, _, _ = PredictConflict(a, b, 10, 0, 10)
	assert.False(t, conflict, "a frozen fleet does not move")

	conflict, p1, _ = PredictConflict(a, b, 1000, 1, 10)
	assert.False(t, conflict)
	assert.InDelta(t, 0, geo.GreatCircleDistance(p1, nrt.Position()), 1e-6)
}

func TestMonitor(t *testing.T) {
	assert.False(t, NewMonitor(0).Enabled())
	assert.Nil(t, NewMonitor(0).Check(nil))

	var nilMonitor *Monitor
	assert.False(t, nilMonitor.Enabled())
	assert.Zero(t, nilMonitor.Active())

	m := NewMonitor(50)
	a := flying(1, icn, nrt, 0, 0.01)
	b := flying(2, icn, nrt, 0, 0.01)
	far := flying(3, nrt, icn, 0, 0.01)
	fleet := []*aircraft.Aircraft{far, b, a}

	losses := m.Check(fleet)
	require.Len(t, losses, 1)
	assert.Equal(t, Pair{A: 1, B: 2}, losses[0].Pair)
	assert.Equal(t, 1, m.Active())

	assert.Empty(t, m.Check(fleet), "an ongoing loss is reported once")
	assert.Equal(t, 1, m.Active())

	assert.Empty(t, m.Check([]*aircraft.Aircraft{a, far}))
	assert.Zero(t, m.Active(), "pairs leaving the fleet are forgotten")

	assert.Len(t, m.Check(fleet), 1, "a new loss is reported again")

	m.Reset()
	assert.Zero(t, m.Active())
	assert.Len(t, m.Check(fleet), 1)
}
