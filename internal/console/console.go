// Package console parses and runs the commands typed into the map's
// command line.
package console

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"flightmap/internal/game/session"
	"flightmap/internal/game/simulation"
)

var ErrUnknownCommand = errors.New("unknown command")

const HELP = "n <count> | speed <x> | start | stop | mode sim|search | route <ORIG> <DEST> | clear"

type Console struct {
	sim     *simulation.Simulation
	session *session.Session
}

func New(sim *simulation.Simulation, sess *session.Session) *Console {
	return &Console{sim: sim, session: sess}
}

// Execute runs one command line and returns the text to show the user.
func (c *Console) Execute(ctx context.Context, line string) (string, error) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return "", nil
	}

	switch strings.ToLower(parts[0]) {
	case "n", "aircraft":
		if len(parts) != 2 {
			return "", fmt.Errorf("usage: n <count>")
		}
		n, err := strconv.Atoi(parts[1])
		if err != nil || n < 0 {
			return "", fmt.Errorf("invalid aircraft count %q", parts[1])
		}
		c.sim.SetPopulationSize(n)
		return fmt.Sprintf("aircraft: %d", c.sim.TargetPopulation()), nil

	case "speed", "s":
		if len(parts) != 2 {
			return "", fmt.Errorf("usage: speed <x>")
		}
		x, err := strconv.ParseFloat(parts[1], 64)
		if err != nil || x < 0 {
			return "", fmt.Errorf("invalid speed %q", parts[1])
		}
		c.sim.SetSpeedMultiplier(x)
		return fmt.Sprintf("speed: x%g", c.sim.SpeedMultiplier()), nil

	case "start":
		if c.session.Mode() != session.SIM {
			c.session.SwitchMode(session.SIM)
		}
		c.sim.Start()
		return "simulation started", nil

	case "stop":
		c.sim.Stop()
		return "simulation stopped", nil

	case "mode":
		if len(parts) != 2 {
			return "", fmt.Errorf("usage: mode sim|search")
		}
		m, err := session.ParseMode(parts[1])
		if err != nil {
			return "", err
		}
		c.session.SwitchMode(m)
		return "mode: " + m.String(), nil

	case "route", "r":
		if len(parts) != 3 {
			return "", fmt.Errorf("usage: route <ORIG> <DEST>")
		}
		c.session.SwitchMode(session.SEARCH)
		view, err := c.session.CalculateRoute(ctx, parts[1], parts[2])
		if err != nil {
			return "", err
		}
		if !view.Found() {
			return view.Summary, nil
		}
		return fmt.Sprintf("%s: %s, %.0f km (great circle %.0f km)",
			strings.Join(view.Plan.Stops, " -> "), view.Summary, view.ReportedKm, view.GreatCircleKm), nil

	case "clear":
		c.session.ClearRoute()
		return "route cleared", nil

	case "help", "?":
		return HELP, nil
	}
	return "", fmt.Errorf("%w %q, try: %s", ErrUnknownCommand, parts[0], HELP)
}
