package ui

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/ingyamilmolinar/answersound/internal/input"
	game_log "github.com/ingyamilmolinar/answersound/internal/log"
)

const buttonPad = 16

// keyboard shortcuts per button
var buttonKeys = map[input.Button][]ebiten.Key{
	input.ButtonCorrect:   {ebiten.KeyC, ebiten.KeyArrowRight},
	input.ButtonIncorrect: {ebiten.KeyX, ebiten.KeyArrowLeft},
}

// Game is the ebiten front end: two stacked answer buttons.
type Game struct {
	ctrl    *input.Controller
	logger  *game_log.Logger
	status  func() string
	buttons []*Button

	winW, winH int
	downPrev   bool
	touches    []ebiten.TouchID
	points     []image.Point
}

// New builds the UI around ctrl. status, if non-nil, supplies a one-line
// audio status shown at the bottom of the window.
func New(ctrl *input.Controller, logger *game_log.Logger, status func() string) *Game {
	return &Game{
		ctrl:   ctrl,
		logger: logger,
		status: status,
		buttons: []*Button{
			NewButton("CORRECT", input.ButtonCorrect, CorrectStyle),
			NewButton("INCORRECT", input.ButtonIncorrect, IncorrectStyle),
		},
	}
}

// Update polls mouse, touch and keyboard and forwards presses and releases to
// the controller.
func (g *Game) Update() error {
	g.touches = appendTouchIDs(g.touches[:0])
	if len(g.touches) > 0 {
		g.ctrl.SetTouchCount(len(g.touches))
	}

	g.points = g.points[:0]
	if isMouseButtonPressed(ebiten.MouseButtonLeft) {
		x, y := cursorPosition()
		g.points = append(g.points, image.Pt(x, y))
	}
	for _, id := range g.touches {
		x, y := touchPosition(id)
		g.points = append(g.points, image.Pt(x, y))
	}
	down := len(g.points) > 0

	for _, b := range g.buttons {
		inside := false
		for _, p := range g.points {
			if p.In(b.r) {
				inside = true
				break
			}
		}
		switch {
		case !b.pointer && !b.key && inside && !g.downPrev:
			b.pointer = true
			g.ctrl.Press(b.Kind)
		case b.pointer && !down:
			b.pointer = false
			g.ctrl.Release(b.Kind)
		case b.pointer && !inside:
			b.pointer = false
			g.ctrl.Cancel(b.Kind)
			g.logger.Debugf("[UI] %v press cancelled", b.Kind)
		}

		held := false
		for _, k := range buttonKeys[b.Kind] {
			if isKeyPressed(k) {
				held = true
				break
			}
		}
		// a button is driven by one source at a time; key edges during a
		// pointer press would release it underneath the pointer
		switch {
		case held && !b.key && !b.pointer:
			b.key = true
			g.ctrl.Press(b.Kind)
		case !held && b.key:
			b.key = false
			g.ctrl.Release(b.Kind)
		}
	}

	g.downPrev = down
	if len(g.touches) == 0 {
		g.ctrl.SetTouchCount(0)
	}
	return nil
}

// Draw renders the buttons and the status line.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colBackground)
	for _, b := range g.buttons {
		b.Draw(screen, g.ctrl.Pressed(b.Kind))
	}
	if g.status != nil {
		ebitenutil.DebugPrintAt(screen, g.status(), buttonPad, g.winH-buttonPad)
	}
}

// Layout sizes the buttons to fill the window, one above the other.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.winW || outsideHeight != g.winH {
		g.winW, g.winH = outsideWidth, outsideHeight
		area := image.Rect(0, 0, outsideWidth, outsideHeight-buttonPad)
		grid := NewGridLayout(area, []float64{1}, []float64{1, 1})
		for i, b := range g.buttons {
			b.SetRect(inset(grid.Cell(0, i), buttonPad))
		}
	}
	return outsideWidth, outsideHeight
}

// Button returns the on-screen button for kind.
func (g *Game) Button(kind input.Button) *Button {
	for _, b := range g.buttons {
		if b.Kind == kind {
			return b
		}
	}
	return nil
}
