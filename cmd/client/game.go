package main

import (
	"context"
	"fmt"
	"image/color"
	"math"
	"strconv"

	"flightmap/internal/config"
	"flightmap/internal/console"
	"flightmap/internal/game/session"
	"flightmap/internal/geo"
	"flightmap/internal/logging"
	"flightmap/internal/metrics"
	"flightmap/internal/ui"
	"flightmap/internal/view"
	"flightmap/pkg/types"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/labstack/gommon/log"
	"golang.org/x/sync/errgroup"
)

const (
	WORLD_SIZE     = 2048.0
	SELECT_RADIUS  = 8.0
	MARKER_RADIUS  = 3.0
	HEADING_LENGTH = 12.0
	PANEL_WIDTH    = 420
	PANEL_HEIGHT   = 180
)

var (
	colorBackground = color.RGBA{8, 16, 32, 255}
	colorAirport    = color.RGBA{90, 110, 140, 255}
	colorAircraft   = color.RGBA{255, 210, 80, 255}
	colorTrail      = color.RGBA{255, 210, 80, 90}
	colorRoute      = color.RGBA{0, 220, 255, 255}
	colorOrigin     = color.RGBA{80, 255, 120, 255}
	colorVia        = color.RGBA{255, 160, 0, 255}
	colorDest       = color.RGBA{255, 80, 80, 255}
	colorSelected   = color.RGBA{255, 255, 255, 255}
)

type Game struct {
	ctx           context.Context
	width, height int
	app           *app
	sprites       *spriteLayer
	camera        *view.Camera
	projector     *view.Projector
	console       *console.Console
	logger        *log.Logger

	commandInput *ui.TextInput
	eventPanel   *ui.LogPanel
	lastOutput   string

	selectedAircraftID types.AircraftID
}

func NewGame(ctx context.Context, a *app, sprites *spriteLayer, screenWidth, screenHeight int) *Game {
	camera := view.NewCamera()
	g := &Game{
		ctx:       ctx,
		width:     screenWidth,
		height:    screenHeight,
		app:       a,
		sprites:   sprites,
		camera:    camera,
		projector: view.NewProjector(WORLD_SIZE, camera),
		console:   console.New(a.sim, a.session),
		logger:    logging.New("window"),
	}
	g.projector.Center(types.NewGeoPoint(30, 130), screenWidth, screenHeight)

	g.commandInput = ui.NewTextInput(10, screenHeight-40, screenWidth/2, 30, func(cmd string) {
		g.executeCommand(cmd)
	})
	g.eventPanel = ui.NewLogPanel("Events", screenWidth-PANEL_WIDTH-10, screenHeight-PANEL_HEIGHT-10, PANEL_WIDTH, PANEL_HEIGHT)
	return g
}

func (g *Game) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}

	g.app.sim.Frame()

	g.handleInput()
	g.commandInput.Update()
	g.refreshEvents()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)

	g.drawAirports(screen)
	switch g.app.session.Mode() {
	case session.SIM:
		g.sprites.each(func(s spriteView) { g.drawAircraft(screen, s) })
	case session.SEARCH:
		g.drawRoute(screen)
	}

	g.drawUI(screen)
	ebitenutil.DebugPrint(screen, "FPS: "+strconv.FormatFloat(ebiten.ActualFPS(), 'f', 2, 64))
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return g.width, g.height
}

func (g *Game) handleInput() {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()

		if g.commandInput.IsClicked(x, y) {
			g.commandInput.IsActive = true
			return
		}
		g.commandInput.IsActive = false
		g.selectAt(float64(x), float64(y))
	}

	if g.commandInput.IsActive {
		return
	}

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		if g.app.sim.Running() {
			g.executeCommand("stop")
		} else {
			g.executeCommand("start")
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		if g.app.session.Mode() == session.SIM {
			g.executeCommand("mode search")
		} else {
			g.executeCommand("mode sim")
		}
	}

	_, wy := ebiten.Wheel()
	if wy != 0 {
		cursorX, cursorY := ebiten.CursorPosition()
		g.camera.ZoomAt(float64(cursorX), float64(cursorY), wy)
	}

	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) {
		x, y := ebiten.CursorPosition()
		if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
			g.camera.StartPan(x, y)
		} else {
			g.camera.PanTo(x, y)
		}
	}
}

func (g *Game) selectAt(x, y float64) {
	g.selectedAircraftID = 0
	best := SELECT_RADIUS
	click := types.NewVec2(x, y)
	g.sprites.each(func(s spriteView) {
		if d := click.DistanceTo(g.projector.Screen(s.pos)); d <= best {
			best = d
			g.selectedAircraftID = s.id
		}
	})
	if g.selectedAircraftID != 0 {
		g.logger.Debugf("selected aircraft #%d", g.selectedAircraftID)
	}
}

func (g *Game) executeCommand(cmd string) {
	out, err := g.console.Execute(g.ctx, cmd)
	if err != nil {
		g.lastOutput = "error: " + err.Error()
		g.logger.Warnf("command %q: %v", cmd, err)
		return
	}
	g.lastOutput = out
	g.logger.Infof("command %q: %s", cmd, out)
}

func (g *Game) refreshEvents() {
	events := g.app.sim.Events()
	lines := make([]string, len(events))
	for i, e := range events {
		if e.AircraftID != 0 {
			lines[i] = fmt.Sprintf("%s %-10s #%d %s", e.Timestamp.Format("15:04:05"), e.Kind, e.AircraftID, e.Message)
		} else {
			lines[i] = fmt.Sprintf("%s %-10s %s", e.Timestamp.Format("15:04:05"), e.Kind, e.Message)
		}
	}
	g.eventPanel.SetLines(lines)
}

func (g *Game) onScreen(p types.Vec2) bool {
	return p.X >= -20 && p.Y >= -20 && p.X <= float64(g.width)+20 && p.Y <= float64(g.height)+20
}

func (g *Game) drawAirports(screen *ebiten.Image) {
	labels := g.camera.Scale >= 3
	for i := 0; i < g.app.dir.Len(); i++ {
		ap := g.app.dir.At(i)
		p := g.projector.Screen(ap.Position())
		if !g.onScreen(p) {
			continue
		}
		vector.DrawFilledCircle(screen, float32(p.X), float32(p.Y), 1.5, colorAirport, false)
		if labels {
			ebitenutil.DebugPrintAt(screen, string(ap.Code), int(p.X)+4, int(p.Y)+2)
		}
	}
}

func (g *Game) drawPolylines(screen *ebiten.Image, lines [][]types.Vec2, width float32, c color.Color) {
	for _, line := range lines {
		for i := 1; i < len(line); i++ {
			vector.StrokeLine(screen, float32(line[i-1].X), float32(line[i-1].Y), float32(line[i].X), float32(line[i].Y), width, c, true)
		}
	}
}

func (g *Game) drawAircraft(screen *ebiten.Image, s spriteView) {
	if len(s.trail) > 1 {
		g.drawPolylines(screen, g.projector.Polyline(geo.NewPath(s.trail)), 1, colorTrail)
	}

	p := g.projector.Screen(s.pos)
	if !g.onScreen(p) {
		return
	}

	radians := s.heading * math.Pi / 180.0
	noseX := p.X + HEADING_LENGTH*math.Sin(radians)
	noseY := p.Y - HEADING_LENGTH*math.Cos(radians)
	vector.StrokeLine(screen, float32(p.X), float32(p.Y), float32(noseX), float32(noseY), 1.5, colorAircraft, true)
	vector.DrawFilledCircle(screen, float32(p.X), float32(p.Y), MARKER_RADIUS, colorAircraft, true)

	if g.selectedAircraftID == s.id {
		g.drawPolylines(screen, g.projector.Polyline(s.path), 1, colorSelected)
		vector.StrokeRect(screen, float32(p.X-8), float32(p.Y-8), 16, 16, 1, colorSelected, false)
		if snap, ok := g.app.sim.Aircraft(s.id); ok {
			tag := fmt.Sprintf("#%d %s-%s\n%.1f%% HDG %03.0f", snap.ID, snap.Origin, snap.Destination, snap.Progress*100, snap.Heading)
			ebitenutil.DebugPrintAt(screen, tag, int(p.X)+10, int(p.Y)-20)
		}
	}
}

func (g *Game) drawRoute(screen *ebiten.Image) {
	route, ok := g.app.session.Route()
	if !ok || !route.Found() {
		return
	}

	g.drawPolylines(screen, g.projector.Polyline(route.Path), 2, colorRoute)
	for _, stop := range route.Stops {
		c := colorVia
		switch stop.Role {
		case session.ORIGIN:
			c = colorOrigin
		case session.DESTINATION:
			c = colorDest
		}
		p := g.projector.Screen(stop.Airport.Position())
		vector.DrawFilledCircle(screen, float32(p.X), float32(p.Y), 5, c, true)
		ebitenutil.DebugPrintAt(screen, string(stop.Airport.Code), int(p.X)+7, int(p.Y)-7)
	}
}

func (g *Game) drawUI(screen *ebiten.Image) {
	g.commandInput.Draw(screen)
	g.eventPanel.Draw(screen)

	sim := g.app.sim
	state := "stopped"
	if sim.Running() {
		state = "running"
	}
	status := fmt.Sprintf("Mode: %s | Sim: %s | Aircraft: %d/%d | Speed: x%g | Tick: %d",
		g.app.session.Mode(), state, sim.Population(), sim.TargetPopulation(), sim.SpeedMultiplier(), sim.Ticks())
	if route, ok := g.app.session.Route(); ok && g.app.session.Mode() == session.SEARCH {
		status += fmt.Sprintf(" | Route: %s, %.0f km", route.Summary, route.ReportedKm)
	}
	ebitenutil.DebugPrintAt(screen, status, 10, 20)

	if g.lastOutput != "" {
		ebitenutil.DebugPrintAt(screen, g.lastOutput, 10, g.height-60)
	}
}

func runWindow(ctx context.Context, cfg *config.Config) error {
	sprites := newSpriteLayer()
	a, err := newApp(ctx, cfg, sprites)
	if err != nil {
		return err
	}
	defer a.sim.Dispose()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	group, ctx := errgroup.WithContext(ctx)
	if cfg.Metrics.Enabled {
		group.Go(func() error {
			return metrics.Serve(ctx, cfg.Metrics.Address, a.registry)
		})
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetVsyncEnabled(true)

	a.sim.Start()
	game := NewGame(ctx, a, sprites, cfg.Window.Width, cfg.Window.Height)

	runErr := ebiten.RunGame(game)
	cancel()
	if err := group.Wait(); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}
