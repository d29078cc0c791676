package gfx

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/quizwalk/internal/core"
	"github.com/vovakirdan/quizwalk/internal/world"
)

var (
	backgroundColor = color.RGBA{0x1e, 0x24, 0x30, 0xff}
	playerColor     = color.RGBA{0x4f, 0xc3, 0xf7, 0xff}
	questionerColor = color.RGBA{0xff, 0xb7, 0x4d, 0xff}
	activeColor     = color.RGBA{0xff, 0xee, 0x58, 0xff}
	exhaustedColor  = color.RGBA{0x75, 0x75, 0x75, 0xff}
	giverColor      = color.RGBA{0xba, 0x68, 0xc8, 0xff}
	correctColor    = color.RGBA{0x66, 0xbb, 0x6a, 0xff}
	wrongColor      = color.RGBA{0xef, 0x53, 0x50, 0xff}
	panelColor      = color.RGBA{0x26, 0x32, 0x38, 0xf0}
	bubbleColor     = color.RGBA{0xfa, 0xfa, 0xfa, 0xff}
	textColor       = color.RGBA{0xee, 0xee, 0xee, 0xff}
	darkTextColor   = color.RGBA{0x21, 0x21, 0x21, 0xff}
	hoverColor      = color.RGBA{0x42, 0xa5, 0xf5, 0xff}
	buttonColor     = color.RGBA{0x54, 0x6e, 0x7a, 0xff}
	shadeColor      = color.RGBA{0x00, 0x00, 0x00, 0xa0}
)

// Draw renders the current snapshot.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	snap := g.world.Snapshot()

	drawScene(screen, g.text, snap)
	drawHUD(screen, g.text, snap)
}

func drawScene(dst *ebiten.Image, t *Typesetter, snap world.Snapshot) {
	drawSprite(dst, t, snap.HintGiver, giverColor, "?")

	for _, q := range snap.Questioners {
		clr := questionerColor
		switch {
		case q.Exhausted:
			clr = exhaustedColor
		case q.Active:
			clr = activeColor
		}
		drawSprite(dst, t, q.SpriteView, clr, q.ID)
	}

	drawPlayer(dst, t, snap.Player)

	for _, q := range snap.Questioners {
		if q.ReactionText != "" {
			drawBubble(dst, t, snap, q)
		}
	}

	if snap.Dialog != nil {
		drawDialog(dst, t, snap.Dialog)
	}
	if snap.Hint != nil {
		drawHint(dst, t, snap.Hint)
	}
	if snap.Banner != "" {
		clr := correctColor
		if snap.Outcome == world.OutcomeWrong {
			clr = wrongColor
		}
		t.DrawCentered(dst, t.label(snap.Banner), snap.CanvasW/2, 40, clr)
	}
	if snap.HUD.Completed {
		drawCompleted(dst, t, snap)
	}
}

// drawSprite draws an entity's footprint with a frame ticker along its bottom.
func drawSprite(dst *ebiten.Image, t *Typesetter, v world.SpriteView, clr color.Color, label string) {
	x := float32(v.Pos.X - v.W/2)
	y := float32(v.Pos.Y - v.H/2)
	w, h := float32(v.W), float32(v.H)

	vector.DrawFilledRect(dst, x, y, w, h, clr, false)
	vector.StrokeRect(dst, x, y, w, h, 2, darkTextColor, false)

	if v.Frames > 1 {
		seg := w / float32(v.Frames)
		vector.DrawFilledRect(dst, x+seg*float32(v.Frame), y+h-4, seg, 4, darkTextColor, false)
	}
	if label != "" {
		t.DrawCentered(dst, label, v.Pos.X, v.Pos.Y, darkTextColor)
	}
}

func drawPlayer(dst *ebiten.Image, t *Typesetter, p world.PlayerView) {
	clr := playerColor
	switch p.Variant {
	case world.VariantRight:
		clr = correctColor
	case world.VariantWrong:
		clr = wrongColor
	}
	drawSprite(dst, t, p.SpriteView, clr, "")

	// Eye marks the facing; the walk sheet faces left unless mirrored.
	ex := p.Pos.X - p.W/4
	if p.Mirror {
		ex = p.Pos.X + p.W/4
	}
	vector.DrawFilledCircle(dst, float32(ex), float32(p.Pos.Y-p.H/4), 4, darkTextColor, true)
}

func drawBubble(dst *ebiten.Image, t *Typesetter, snap world.Snapshot, q world.QuestionerView) {
	msg := t.label(q.ReactionText)
	box := world.BubbleBox(q.Pos, q.W, q.H, t.Measure(msg), snap.CanvasW, snap.CanvasH)

	vector.DrawFilledRect(dst, float32(box.X), float32(box.Y), float32(box.W), float32(box.H), bubbleColor, false)
	clr := darkTextColor
	switch q.Reaction {
	case world.ReactionCorrect:
		clr = correctColor
	case world.ReactionWrong:
		clr = wrongColor
	}
	vector.StrokeRect(dst, float32(box.X), float32(box.Y), float32(box.W), float32(box.H), 2, clr, false)
	c := box.Center()
	t.DrawCentered(dst, msg, c.X, c.Y, darkTextColor)
}

func drawDialog(dst *ebiten.Image, t *Typesetter, d *world.DialogView) {
	l := d.Layout
	fillBox(dst, l.Dialog, panelColor)
	strokeBox(dst, l.Dialog, textColor)

	pad := 20.0
	y := l.Dialog.Y + pad
	for _, line := range t.Wrap(t.label(d.Question), l.Dialog.W-2*pad) {
		t.Draw(dst, line, l.Dialog.X+pad, y, textColor)
		y += t.LineHeight()
	}
	y += t.LineHeight() / 2
	for i, opt := range d.Options {
		t.Draw(dst, fmt.Sprintf("%d. %s", i+1, t.label(opt)), l.Dialog.X+pad, y, textColor)
		y += t.LineHeight()
	}

	btn := buttonColor
	if d.HoverHint {
		btn = hoverColor
	}
	fillBox(dst, l.Hint, btn)
	c := l.Hint.Center()
	t.DrawCentered(dst, t.hintLabel(), c.X, c.Y, textColor)

	closeClr := wrongColor
	if d.HoverClose {
		closeClr = hoverColor
	}
	cx, cy := float32(l.Close.Center.X), float32(l.Close.Center.Y)
	r := float32(l.Close.Diameter / 2)
	vector.DrawFilledCircle(dst, cx, cy, r, closeClr, true)
	vector.StrokeLine(dst, cx-r/2, cy-r/2, cx+r/2, cy+r/2, 2, textColor, true)
	vector.StrokeLine(dst, cx-r/2, cy+r/2, cx+r/2, cy-r/2, 2, textColor, true)
}

func drawHint(dst *ebiten.Image, t *Typesetter, h *world.HintView) {
	fillBox(dst, h.Box, bubbleColor)
	strokeBox(dst, h.Box, giverColor)

	pad := 8.0
	y := h.Box.Y + pad
	lines := append([]string{t.hintLabel() + ":"}, t.Wrap(t.label(h.Text), h.Box.W-2*pad)...)
	for _, line := range lines {
		if y+t.LineHeight() > h.Box.Y+h.Box.H {
			break
		}
		t.Draw(dst, line, h.Box.X+pad, y, darkTextColor)
		y += t.LineHeight()
	}
}

func drawCompleted(dst *ebiten.Image, t *Typesetter, snap world.Snapshot) {
	vector.DrawFilledRect(dst, 0, 0, float32(snap.CanvasW), float32(snap.CanvasH), shadeColor, false)
	msg := fmt.Sprintf("All done!\nCorrect: %d  Wrong: %d\n\nR - play again   Q - quit",
		snap.HUD.Correct, snap.HUD.Wrong)
	t.DrawCentered(dst, msg, snap.CanvasW/2, snap.CanvasH/2, textColor)
}

func drawHUD(dst *ebiten.Image, t *Typesetter, snap world.Snapshot) {
	h := snap.HUD
	line := fmt.Sprintf("Satisfied %d/%d | Questions left %d | Correct %d | Wrong %d",
		h.Satisfied, h.Questioners, h.Remaining, h.Correct, h.Wrong)
	t.Draw(dst, line, 8, 4, textColor)
}

func fillBox(dst *ebiten.Image, b core.Box, clr color.Color) {
	vector.DrawFilledRect(dst, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), clr, false)
}

func strokeBox(dst *ebiten.Image, b core.Box, clr color.Color) {
	vector.StrokeRect(dst, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), 2, clr, false)
}

// label replaces runes the debug font cannot draw.
func (t *Typesetter) label(s string) string {
	if t.Unicode() {
		return s
	}
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r > 0x7e {
			r = '?'
		}
		out = append(out, r)
	}
	return string(out)
}

func (t *Typesetter) hintLabel() string {
	if t.Unicode() {
		return "提示"
	}
	return "Hint"
}
