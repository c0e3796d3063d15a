package conflict

import (
	"slices"

	"flightmap/internal/game/aircraft"
	"flightmap/internal/geo"
	"flightmap/pkg/types"
)

// Pair identifies two aircraft by ID with A < B.
type Pair struct {
	A, B types.AircraftID
}

func NewPair(a, b types.AircraftID) Pair {
	if b < a {
		a, b = b, a
	}
	return Pair{A: a, B: b}
}

// Loss is a pair of aircraft found closer than the separation minimum.
type Loss struct {
	Pair
	DistanceKm float64
}

// CheckSeparation reports whether two travelling aircraft are closer than
// minKm along the great circle, with the distance between them.
func CheckSeparation(ac1, ac2 *aircraft.Aircraft, minKm float64) (bool, float64) {
	if ac1.State != aircraft.TRAVELING || ac2.State != aircraft.TRAVELING {
		return false, 0
	}
	d := geo.GreatCircleDistance(ac1.Position, ac2.Position)
	return d < minKm, d
}

// PredictConflict samples both aircraft ahead by the given number of ticks
// at multiplier and checks separation at the projected positions. Progress
// is held at the end of each path.
func PredictConflict(ac1, ac2 *aircraft.Aircraft, ticks int, multiplier, minKm float64) (bool, types.GeoPoint, types.GeoPoint) {
	if ac1.State != aircraft.TRAVELING || ac2.State != aircraft.TRAVELING {
		return false, types.GeoPoint{}, types.GeoPoint{}
	}
	p1 := project(ac1, ticks, multiplier)
	p2 := project(ac2, ticks, multiplier)
	return geo.GreatCircleDistance(p1, p2) < minKm, p1, p2
}

func project(ac *aircraft.Aircraft, ticks int, multiplier float64) types.GeoPoint {
	progress := min(ac.Progress+ac.Speed*multiplier*float64(ticks), 1)
	return ac.Path.Sample(progress).Position
}

// Monitor tracks pairs that have lost separation so each loss is reported
// once, when it starts.
type Monitor struct {
	minKm  float64
	active map[Pair]struct{}
}

func NewMonitor(minKm float64) *Monitor {
	return &Monitor{minKm: minKm, active: make(map[Pair]struct{})}
}

func (m *Monitor) Enabled() bool {
	return m != nil && m.minKm > 0
}

// Check compares every pair in fleet and returns the losses that were not
// already active, ordered by pair. Pairs that regained separation or left
// the fleet are forgotten.
func (m *Monitor) Check(fleet []*aircraft.Aircraft) []Loss {
	if !m.Enabled() {
		return nil
	}

	var fresh []Loss
	seen := make(map[Pair]struct{}, len(m.active))
	for i := 0; i < len(fleet); i++ {
		for j := i + 1; j < len(fleet); j++ {
			lost, d := CheckSeparation(fleet[i], fleet[j], m.minKm)
			if !lost {
				continue
			}
			pair := NewPair(fleet[i].ID, fleet[j].ID)
			seen[pair] = struct{}{}
			if _, ok := m.active[pair]; !ok {
				fresh = append(fresh, Loss{Pair: pair, DistanceKm: d})
			}
		}
	}
	m.active = seen

	slices.SortFunc(fresh, func(a, b Loss) int {
		if a.A != b.A {
			return int(a.A - b.A)
		}
		return int(a.B - b.B)
	})
	return fresh
}

// Active is the number of pairs currently below the minimum.
func (m *Monitor) Active() int {
	if m == nil {
		return 0
	}
	return len(m.active)
}

func (m *Monitor) Reset() {
	if m == nil {
		return
	}
	clear(m.active)
}
