package ui

import (
	"image"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/ingyamilmolinar/answersound/internal/input"
)

// debug font cell size used by ebitenutil.DebugPrintAt
const (
	debugCharW = 6
	debugCharH = 16
)

// Button is an answer button bound to one input.Button.
type Button struct {
	r     image.Rectangle
	Text  string
	Kind  input.Button
	Style ButtonStyle

	// pointer is true while a mouse or touch press that began on this
	// button is still held.
	pointer bool
	key     bool
}

// NewButton constructs a button with the given label and style.
func NewButton(text string, kind input.Button, style ButtonStyle) *Button {
	return &Button{Text: text, Kind: kind, Style: style}
}

// Rect returns the button's bounds.
func (b *Button) Rect() image.Rectangle { return b.r }

// SetRect sets the button's bounds.
func (b *Button) SetRect(r image.Rectangle) { b.r = r }

// Draw renders the button and its centred label.
func (b *Button) Draw(dst *ebiten.Image, pressed bool) {
	b.Style.Draw(dst, b.r, pressed)
	tr := b.textRect()
	ebitenutil.DebugPrintAt(dst, b.Text, tr.Min.X, tr.Min.Y)
}

func (b *Button) textRect() image.Rectangle {
	w := debugCharW * utf8.RuneCountInString(b.Text)
	h := debugCharH
	x := b.r.Min.X + (b.r.Dx()-w)/2
	y := b.r.Min.Y + (b.r.Dy()-h)/2
	return image.Rect(x, y, x+w, y+h)
}
