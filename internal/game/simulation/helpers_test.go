package simulation

import (
	"sync"
	"testing"

	"flightmap/internal/config"
	"flightmap/internal/game/airspace"
	"flightmap/internal/geo"
	"flightmap/internal/logging"
	"flightmap/pkg/types"

	"github.com/stretchr/testify/require"
)

type testSprite struct {
	id       types.AircraftID
	moves    int
	releases int
}

func (s *testSprite) Move(types.GeoPoint, float64) { s.moves++ }
func (s *testSprite) Release()                     { s.releases++ }

type testSprites struct {
	mu      sync.Mutex
	created []*testSprite
}

func (f *testSprites) NewSprite(id types.AircraftID, _ geo.Path) Sprite {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := &testSprite{id: id}
	f.created = append(f.created, s)
	return s
}

func (f *testSprites) live() int {
	n := 0
	for _, s := range f.created {
		if s.releases == 0 {
			n++
		}
	}
	return n
}

func testAirports() *airspace.Directory {
	return airspace.NewDirectory([]airspace.Airport{
		airspace.NewAirport("ICN", "Incheon", "Seoul", "South Korea", 37.4602, 126.4407),
		airspace.NewAirport("NRT", "Narita", "Tokyo", "Japan", 35.7647, 140.3864),
		airspace.NewAirport("LAX", "Los Angeles", "Los Angeles", "United States", 33.9416, -118.4085),
		airspace.NewAirport("JFK", "John F Kennedy", "New York", "United States", 40.6413, -73.7781),
		airspace.NewAirport("LHR", "Heathrow", "London", "United Kingdom", 51.4700, -0.4543),
		airspace.NewAirport("SYD", "Sydney", "Sydney", "Australia", -33.9399, 151.1753),
	})
}

func testConfig() config.SimConfig {
	cfg := config.Default().Sim
	cfg.Seed = 42
	cfg.InitialAircraft = 0
	cfg.StepsPerSegment = 20
	return cfg
}

func newTestSimulation(t *testing.T, dir *airspace.Directory, opts ...Option) (*Simulation, *testSprites) {
	t.Helper()
	sprites := &testSprites{}
	opts = append([]Option{WithSpriteFactory(sprites), WithLogger(logging.Discard("sim"))}, opts...)
	s, err := NewSimulation(testConfig(), dir, opts...)
	require.NoError(t, err)
	return s, sprites
}
