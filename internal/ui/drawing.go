package ui

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// drawButton renders a filled rectangle with a border, darkened while
// pressed. It is a variable so tests can capture draw calls.
var drawButton = func(dst *ebiten.Image, r image.Rectangle, fill, border color.Color, pressed bool) {
	vector.DrawFilledRect(dst, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), pressedColor(fill, pressed), false)
	vector.StrokeRect(dst, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), 2, border, false)
}

func pressedColor(fill color.Color, pressed bool) color.Color {
	if !pressed {
		return fill
	}
	if c, ok := fill.(color.RGBA); ok {
		return color.RGBA{c.R / 2, c.G / 2, c.B / 2, c.A}
	}
	return fill
}

// ButtonStyle describes rectangular button visuals.
type ButtonStyle struct {
	Fill   color.Color
	Border color.Color
}

// Draw renders the button rectangle using drawButton.
func (s ButtonStyle) Draw(dst *ebiten.Image, r image.Rectangle, pressed bool) {
	drawButton(dst, r, s.Fill, s.Border, pressed)
}
