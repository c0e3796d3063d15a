package console

import (
	"context"
	"testing"

	"flightmap/internal/config"
	"flightmap/internal/game/airspace"
	"flightmap/internal/game/session"
	"flightmap/internal/game/simulation"
	"flightmap/internal/logging"
	"flightmap/internal/routing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConsole(t *testing.T) (*Console, *simulation.Simulation, *session.Session) {
	t.Helper()
	dir := airspace.NewDirectory([]airspace.Airport{
		airspace.NewAirport("ICN", "Incheon", "Seoul", "South Korea", 37.4602, 126.4407),
		airspace.NewAirport("NRT", "Narita", "Tokyo", "Japan", 35.7647, 140.3864),
		airspace.NewAirport("SYD", "Sydney", "Sydney", "Australia", -33.9399, 151.1753),
	})
	cfg := config.Default().Sim
	cfg.InitialAircraft = 2
	cfg.Seed = 11
	sim, err := simulation.NewSimulation(cfg, dir, simulation.WithLogger(logging.Discard("sim")))
	require.NoError(t, err)
	sim.Start()

	sess := session.NewSession(sim, dir, routing.NewDijkstra(routing.NewGraph(dir, 3000)), 20)
	return New(sim, sess), sim, sess
}

func TestExecute_PopulationAndSpeed(t *testing.T) {
	c, sim, _ := newConsole(t)
	ctx := context.Background()

	out, err := c.Execute(ctx, "n 7")
	require.NoError(t, err)
	assert.Equal(t, "aircraft: 7", out)
	assert.Equal(t, 7, sim.Population())

	out, err = c.Execute(ctx, "speed 2.5")
	require.NoError(t, err)
	assert.Equal(t, "speed: x2.5", out)
	assert.Equal(t, 2.5, sim.SpeedMultiplier())

	_, err = c.Execute(ctx, "n -1")
	assert.Error(t, err)
	_, err = c.Execute(ctx, "speed fast")
	assert.Error(t, err)
	_, err = c.Execute(ctx, "n")
	assert.Error(t, err)
}

func TestExecute_RouteSwitchesToSearch(t *testing.T) {
	c, sim, sess := newConsole(t)
	ctx := context.Background()

	out, err := c.Execute(ctx, "route icn nrt")
	require.NoError(t, err)
	assert.Contains(t, out, "ICN -> NRT: direct")
	assert.Equal(t, session.SEARCH, sess.Mode())
	assert.False(t, sim.Running())

	out, err = c.Execute(ctx, "route ICN SYD")
	require.NoError(t, err)
	assert.Equal(t, "no route from ICN to SYD", out)

	_, err = c.Execute(ctx, "route ICN XXX")
	assert.ErrorIs(t, err, routing.ErrUnknownAirport)

	out, err = c.Execute(ctx, "start")
	require.NoError(t, err)
	assert.Equal(t, "simulation started", out)
	assert.Equal(t, session.SIM, sess.Mode())
	assert.True(t, sim.Running())
	_, ok := sess.Route()
	assert.False(t, ok)
}

func TestExecute_ModeAndStop(t *testing.T) {
	c, sim, sess := newConsole(t)
	ctx := context.Background()

	_, err := c.Execute(ctx, "stop")
	require.NoError(t, err)
	assert.False(t, sim.Running())

	out, err := c.Execute(ctx, "mode search")
	require.NoError(t, err)
	assert.Equal(t, "mode: SEARCH", out)
	assert.Equal(t, session.SEARCH, sess.Mode())

	_, err = c.Execute(ctx, "mode globe")
	assert.Error(t, err)
}

func TestExecute_Unknown(t *testing.T) {
	c, _, _ := newConsole(t)

	out, err := c.Execute(context.Background(), "   ")
	require.NoError(t, err)
	assert.Empty(t, out)

	_, err = c.Execute(context.Background(), "hold ICN")
	assert.ErrorIs(t, err, ErrUnknownCommand)

	out, err = c.Execute(context.Background(), "help")
	require.NoError(t, err)
	assert.Equal(t, HELP, out)
}
