package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const LINE_HEIGHT = 16

// LogPanel shows the newest lines that fit, newest at the bottom.
type LogPanel struct {
	Title  string
	X, Y   int
	Width  int
	Height int
	Lines  []string
}

func NewLogPanel(title string, x, y, width, height int) *LogPanel {
	return &LogPanel{Title: title, X: x, Y: y, Width: width, Height: height}
}

func (p *LogPanel) SetLines(lines []string) {
	p.Lines = lines
}

func (p *LogPanel) Draw(screen *ebiten.Image) {
	vector.DrawFilledRect(screen, float32(p.X), float32(p.Y), float32(p.Width), float32(p.Height), color.RGBA{10, 10, 20, 200}, false)
	vector.StrokeRect(screen, float32(p.X), float32(p.Y), float32(p.Width), float32(p.Height), 1, color.RGBA{90, 90, 120, 255}, false)
	ebitenutil.DebugPrintAt(screen, p.Title, p.X+5, p.Y+2)

	rows := (p.Height - LINE_HEIGHT - 4) / LINE_HEIGHT
	lines := p.Lines
	if rows <= 0 {
		return
	}
	if len(lines) > rows {
		lines = lines[len(lines)-rows:]
	}
	maxChars := max(1, (p.Width-10)/6)
	for i, line := range lines {
		if len(line) > maxChars {
			line = line[:maxChars]
		}
		ebitenutil.DebugPrintAt(screen, line, p.X+5, p.Y+LINE_HEIGHT+2+i*LINE_HEIGHT)
	}
}
