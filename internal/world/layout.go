package world

import (
	"math"

	"github.com/vovakirdan/quizwalk/internal/core"
)

// Dialog geometry in canvas pixels.
const (
	dialogWidthRatio  = 0.8
	dialogHeightRatio = 0.5

	hintButtonW      = 100
	hintButtonH      = 40
	hintButtonRight  = 120 // Left edge offset from the dialog's right edge
	hintButtonBottom = 60  // Top edge offset from the dialog's bottom edge

	closeDiameter = 30
	closeInset    = 25 // Center offset from the dialog's top-right corner

	hintOverlayW  = 250
	hintOverlayH  = 80
	hintOverlayDX = 120
	hintOverlayDY = -100

	bubbleH       = 40
	bubblePadding = 20
	bubbleGap     = 10
	bubbleLift    = 30

	bobAmplitude   = 5
	bobFrequency   = 0.5
	shakeFrequency = 0.8
)

// DialogLayout holds the question dialog and its hit shapes.
type DialogLayout struct {
	Dialog core.Box
	Hint   core.Box
	Close  core.Circle
}

// LayoutDialog computes the dialog geometry for a canvas size.
func LayoutDialog(canvasW, canvasH float64) DialogLayout {
	dw := canvasW * dialogWidthRatio
	dh := canvasH * dialogHeightRatio
	dialog := core.CenteredBox(canvasW/2, canvasH/2, dw, dh)

	hint := core.Box{
		X: canvasW/2 + dw/2 - hintButtonRight,
		Y: canvasH/2 + dh/2 - hintButtonBottom,
		W: hintButtonW,
		H: hintButtonH,
	}
	closeCircle := core.Circle{
		Center: core.Point{
			X: canvasW/2 + dw/2 - closeInset,
			Y: canvasH/2 - dh/2 + closeInset,
		},
		Diameter: closeDiameter,
	}
	return DialogLayout{Dialog: dialog, Hint: hint, Close: closeCircle}
}

func (w *World) layoutDialog() {
	w.layout = LayoutDialog(w.canvasW, w.canvasH)
}

// HintOverlay returns the box the hint text is shown in, next to the
// hint-giver.
func HintOverlay(giver core.Point) core.Box {
	return core.CenteredBox(giver.X+hintOverlayDX, giver.Y+hintOverlayDY, hintOverlayW, hintOverlayH)
}

// BubbleBox places a reaction bubble around a questioner drawn at pos with
// the scaled size (qw, qh). Questioners in the left third get the bubble on
// their right unless they sit in the bottom half, those in the right third get
// it on their left, and everyone else gets it above.
func BubbleBox(pos core.Point, qw, qh, textW, canvasW, canvasH float64) core.Box {
	bw := textW + bubblePadding
	above := core.CenteredBox(pos.X, pos.Y-qh/2-bubbleLift, bw, bubbleH)

	switch {
	case pos.X < canvasW/3 && pos.Y > canvasH/2:
		return above
	case pos.X < canvasW/3:
		return core.CenteredBox(pos.X+qw/2+textW/2+bubbleGap, pos.Y, bw, bubbleH)
	case pos.X > canvasW*2/3:
		return core.CenteredBox(pos.X-qw/2-textW/2-bubbleGap, pos.Y, bw, bubbleH)
	default:
		return above
	}
}

// ReactionOffset returns the draw offset of a reacting questioner: a vertical
// bob for a correct answer, a horizontal shake otherwise.
func ReactionOffset(r Reaction, tick int) (dx, dy float64) {
	switch r {
	case ReactionCorrect:
		return 0, math.Sin(float64(tick)*bobFrequency) * bobAmplitude
	case ReactionWrong:
		return math.Sin(float64(tick)*shakeFrequency) * bobAmplitude, 0
	default:
		return 0, 0
	}
}
