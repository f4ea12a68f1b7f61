package ui

import "image/color"

var (
	colBackground   = color.RGBA{20, 20, 30, 255}
	colButtonBorder = color.RGBA{240, 240, 240, 255}
	colCorrect      = color.RGBA{40, 180, 80, 255}
	colIncorrect    = color.RGBA{200, 50, 50, 255}
)

// CorrectStyle and IncorrectStyle colour the two answer buttons.
var (
	CorrectStyle   = ButtonStyle{Fill: colCorrect, Border: colButtonBorder}
	IncorrectStyle = ButtonStyle{Fill: colIncorrect, Border: colButtonBorder}
)
