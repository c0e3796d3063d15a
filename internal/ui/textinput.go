package ui

import (
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const MAX_HISTORY = 32

// TextInput is a one-line command field. Enter submits, Escape cancels and
// Up/Down walk through previously submitted lines.
type TextInput struct {
	Text     string
	Prompt   string
	IsActive bool
	X, Y     int
	Width    int
	Height   int
	OnSubmit func(string)

	history []string
	cursor  int
}

func NewTextInput(x, y, width, height int, onSubmit func(string)) *TextInput {
	return &TextInput{
		Prompt:   "> ",
		X:        x,
		Y:        y,
		Width:    width,
		Height:   height,
		OnSubmit: onSubmit,
	}
}

func (ti *TextInput) Update() {
	if !ti.IsActive {
		if inpututil.IsKeyJustPressed(ebiten.KeySlash) || inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
			ti.IsActive = true
		}
		return
	}

	ti.Text += string(ebiten.AppendInputChars(nil))

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyBackspace):
		if len(ti.Text) > 0 {
			r := []rune(ti.Text)
			ti.Text = string(r[:len(r)-1])
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		ti.recall(-1)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
		ti.recall(1)
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		ti.Text = ""
		ti.IsActive = false
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter):
		ti.submit()
	}
}

func (ti *TextInput) submit() {
	line := strings.TrimSpace(ti.Text)
	if line != "" {
		ti.history = append(ti.history, line)
		if len(ti.history) > MAX_HISTORY {
			ti.history = ti.history[len(ti.history)-MAX_HISTORY:]
		}
		if ti.OnSubmit != nil {
			ti.OnSubmit(line)
		}
	}
	ti.cursor = len(ti.history)
	ti.Text = ""
	ti.IsActive = false
}

func (ti *TextInput) recall(delta int) {
	if len(ti.history) == 0 {
		return
	}
	ti.cursor = max(0, min(len(ti.history), ti.cursor+delta))
	if ti.cursor == len(ti.history) {
		ti.Text = ""
		return
	}
	ti.Text = ti.history[ti.cursor]
}

func (ti *TextInput) Draw(screen *ebiten.Image) {
	x, y, width, height := float32(ti.X), float32(ti.Y), float32(ti.Width), float32(ti.Height)

	bgColor := color.RGBA{30, 30, 40, 220}
	if ti.IsActive {
		bgColor = color.RGBA{60, 60, 80, 230}
	}
	vector.DrawFilledRect(screen, x, y, width, height, bgColor, false)
	vector.StrokeRect(screen, x, y, width, height, 1, color.White, false)

	displayTxt := ti.Prompt + ti.Text
	if ti.IsActive {
		displayTxt += "_"
	} else if ti.Text == "" {
		displayTxt += "press / or Enter for commands"
	}
	ebitenutil.DebugPrintAt(screen, displayTxt, ti.X+5, ti.Y+(ti.Height-16)/2)
}

// IsClicked reports whether the screen point is inside the input.
func (ti *TextInput) IsClicked(mouseX, mouseY int) bool {
	return mouseX >= ti.X && mouseX <= ti.X+ti.Width &&
		mouseY >= ti.Y && mouseY <= ti.Y+ti.Height
}
