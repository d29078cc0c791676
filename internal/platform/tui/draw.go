package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/vovakirdan/quizwalk/internal/core"
	"github.com/vovakirdan/quizwalk/internal/world"
)

// Glyph frames standing in for sprite sheets. A frame index is wrapped by the
// slice length, so sheets with more frames than glyphs still cycle.
var (
	playerFaces = map[world.Variant][]string{
		world.VariantStand: {"(o_o)", "(-_-)"},
		world.VariantMove:  {"<(o_o)", "<(o.o)", "<(o_o)", "<(O_O)"},
		world.VariantRight: {`\(^o^)/`, "(^o^)"},
		world.VariantWrong: {"(T_T)", "(;_;)"},
	}
	questionerFaces = []string{"[o.o]", "[o_o]", "[O.O]", "[o_o]", "[-.-]", "[o.o]"}
	hintGiverFaces  = []string{"{?.?}", "{?_?}", "{?.?}", "{!.!}", "{?.?}", "{?_?}", "{?.?}", "{-.-}"}

	questionerColors = []core.Color{core.ColorYellow, core.ColorMagenta, core.ColorGreen}
)

const hintLabel = "提示"

// SceneRenderer draws world snapshots onto a terminal screen. Each cell
// covers a CellW x CellH block of canvas pixels.
type SceneRenderer struct {
	CellW, CellH float64
}

// NewSceneRenderer creates a renderer for the given cell size in pixels.
func NewSceneRenderer(cellW, cellH float64) SceneRenderer {
	return SceneRenderer{CellW: cellW, CellH: cellH}
}

// CanvasSize returns the canvas in pixels for a play area of cols x rows.
func (r SceneRenderer) CanvasSize(cols, rows int) (float64, float64) {
	return float64(cols) * r.CellW, float64(rows) * r.CellH
}

// ToCanvas returns the pixel center of a cell.
func (r SceneRenderer) ToCanvas(col, row int) core.Point {
	return core.Point{
		X: (float64(col) + 0.5) * r.CellW,
		Y: (float64(row) + 0.5) * r.CellH,
	}
}

// ToCell returns the cell containing a canvas point.
func (r SceneRenderer) ToCell(p core.Point) (int, int) {
	return int(math.Floor(p.X / r.CellW)), int(math.Floor(p.Y / r.CellH))
}

// ToRect returns the smallest cell rectangle covering a canvas box.
func (r SceneRenderer) ToRect(b core.Box) core.Rect {
	x0 := int(math.Floor(b.X / r.CellW))
	y0 := int(math.Floor(b.Y / r.CellH))
	x1 := int(math.Ceil((b.X + b.W) / r.CellW))
	y1 := int(math.Ceil((b.Y + b.H) / r.CellH))
	return core.NewRect(x0, y0, x1-x0, y1-y0)
}

// Draw renders the whole frame. The last screen row is the HUD.
func (r SceneRenderer) Draw(s *core.Screen, snap world.Snapshot) {
	s.Clear()

	r.drawPlayer(s, snap.Player)
	for i, q := range snap.Questioners {
		r.drawQuestioner(s, i, q)
	}
	r.drawSprite(s, snap.HintGiver, "", hintGiverFaces[snap.HintGiver.Frame%len(hintGiverFaces)], core.ColorHint)

	for _, q := range snap.Questioners {
		if q.ReactionText != "" {
			r.drawBubble(s, snap, q)
		}
	}

	if snap.Dialog != nil {
		r.drawDialog(s, snap.Dialog)
	}
	if snap.Hint != nil {
		r.drawHint(s, snap.Hint)
	}
	if snap.Banner != "" {
		r.drawBanner(s, snap)
	}
	if snap.HUD.Completed {
		r.drawCompleted(s, snap.HUD)
	}
	r.drawHUD(s, snap.HUD)
}

func (r SceneRenderer) drawPlayer(s *core.Screen, p world.PlayerView) {
	faces := playerFaces[p.Variant]
	face := faces[p.Frame%len(faces)]
	if p.Mirror {
		face = strings.TrimPrefix(face, "<") + ">"
	}

	color := core.ColorPlayer
	switch p.Variant {
	case world.VariantRight:
		color = core.ColorCorrect
	case world.VariantWrong:
		color = core.ColorWrong
	}
	r.drawSprite(s, p.SpriteView, "", face, color)
}

func (r SceneRenderer) drawQuestioner(s *core.Screen, i int, q world.QuestionerView) {
	color := questionerColors[i%len(questionerColors)]
	if q.Exhausted {
		color = core.ColorExhausted
	}
	face := questionerFaces[q.Frame%len(questionerFaces)]
	r.drawSprite(s, q.SpriteView, q.ID, face, color)
}

// drawSprite draws an entity's footprint as a box with its face in the middle
// and an optional label on the top edge.
func (r SceneRenderer) drawSprite(s *core.Screen, v world.SpriteView, label, face string, c core.Color) {
	rect := r.ToRect(core.CenteredBox(v.Pos.X, v.Pos.Y, v.W, v.H))
	s.DrawBoxColored(rect, c)

	cx := rect.X + rect.W/2
	cy := rect.Y + rect.H/2
	s.DrawTextColored(cx-core.TextWidth(face)/2, cy, face, c)
	if label != "" {
		s.DrawTextColored(cx-core.TextWidth(label)/2, rect.Y, label, c)
	}
}

func (r SceneRenderer) drawBubble(s *core.Screen, snap world.Snapshot, q world.QuestionerView) {
	textW := float64(core.TextWidth(q.ReactionText)) * r.CellW
	box := world.BubbleBox(q.Pos, q.W, q.H, textW, snap.CanvasW, snap.CanvasH)
	rect := r.ToRect(box)
	if rect.H < 3 {
		rect.H = 3
	}

	color := core.ColorCorrect
	if q.Reaction == world.ReactionWrong {
		color = core.ColorWrong
	}
	fillRect(s, rect)
	s.DrawBoxColored(rect, color)
	drawCenteredIn(s, rect, rect.Y+rect.H/2, q.ReactionText, color)
}

func (r SceneRenderer) drawDialog(s *core.Screen, d *world.DialogView) {
	rect := r.ToRect(d.Layout.Dialog)
	fillRect(s, rect)
	s.DrawBoxColored(rect, core.ColorWhite)

	innerW := rect.W - 4
	y := rect.Y + 1
	for _, line := range wrapText(d.Question, innerW) {
		drawCenteredIn(s, rect, y, line, core.ColorWhite)
		y++
	}
	y++
	for i, opt := range d.Options {
		for j, line := range wrapText(fmt.Sprintf("%d. %s", i+1, opt), innerW) {
			if j > 0 {
				line = "   " + line
			}
			s.DrawTextColored(rect.X+2, y, line, core.ColorDefault)
			y++
		}
	}

	hint := r.ToRect(d.Layout.Hint)
	hintColor := core.ColorYellow
	if d.HoverHint {
		hintColor = core.ColorBrightYellow
	}
	fillRect(s, hint)
	s.DrawBoxColored(hint, hintColor)
	drawCenteredIn(s, hint, hint.Y+hint.H/2, hintLabel, hintColor)

	closeColor := core.ColorRed
	if d.HoverClose {
		closeColor = core.ColorClose
	}
	cx, cy := r.ToCell(d.Layout.Close.Center)
	s.DrawTextColored(cx-1, cy, "[X]", closeColor)
}

func (r SceneRenderer) drawHint(s *core.Screen, h *world.HintView) {
	rect := r.ToRect(h.Box)
	lines := append([]string{hintLabel + "："}, wrapText(h.Text, rect.W-2)...)
	if rect.H < len(lines)+2 {
		rect.H = len(lines) + 2
	}
	fillRect(s, rect)
	s.DrawBoxColored(rect, core.ColorHint)
	for i, line := range lines {
		s.DrawTextColored(rect.X+1, rect.Y+1+i, line, core.ColorHint)
	}
}

func (r SceneRenderer) drawBanner(s *core.Screen, snap world.Snapshot) {
	color := core.ColorCorrect
	if snap.Outcome == world.OutcomeWrong {
		color = core.ColorWrong
	}
	_, row := r.ToCell(core.Point{X: 0, Y: snap.CanvasH / 2})
	text := " " + snap.Banner + " "
	s.DrawTextColored((s.Width()-core.TextWidth(text))/2, row, text, color)
}

func (r SceneRenderer) drawCompleted(s *core.Screen, hud world.HUD) {
	msg := "All questioners are satisfied!"
	if hud.Satisfied < hud.Questioners {
		msg = "No questions left!"
	}
	lines := []string{msg, fmt.Sprintf("%d correct, %d wrong", hud.Correct, hud.Wrong), "r: new run  q: quit"}

	w := 0
	for _, l := range lines {
		w = max(w, core.TextWidth(l))
	}
	rect := core.NewRect((s.Width()-w-4)/2, (s.Height()-len(lines)-2)/2, w+4, len(lines)+2)
	fillRect(s, rect)
	s.DrawBoxColored(rect, core.ColorBrightGreen)
	for i, l := range lines {
		drawCenteredIn(s, rect, rect.Y+1+i, l, core.ColorBrightGreen)
	}
}

func (r SceneRenderer) drawHUD(s *core.Screen, hud world.HUD) {
	y := s.Height() - 1
	for x := 0; x < s.Width(); x++ {
		s.Set(x, y, ' ')
	}
	text := fmt.Sprintf(" Satisfied %d/%d | Questions left %d | Correct %d | Wrong %d ",
		hud.Satisfied, hud.Questioners, hud.Remaining, hud.Correct, hud.Wrong)
	s.DrawTextColored(0, y, text, core.ColorCyan)
}

// fillRect blanks a rectangle so overlays hide what is under them.
func fillRect(s *core.Screen, r core.Rect) {
	s.DrawRect(r, ' ')
}

func drawCenteredIn(s *core.Screen, r core.Rect, y int, text string, c core.Color) {
	x := r.X + (r.W-core.TextWidth(text))/2
	s.DrawTextColored(x, y, text, c)
}

// wrapText breaks text into lines no wider than width cells.
func wrapText(text string, width int) []string {
	if width < 1 {
		width = 1
	}
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		var line strings.Builder
		lineW := 0
		for _, r := range para {
			rw := runewidth.RuneWidth(r)
			if lineW+rw > width && lineW > 0 {
				lines = append(lines, line.String())
				line.Reset()
				lineW = 0
			}
			line.WriteRune(r)
			lineW += rw
		}
		lines = append(lines, line.String())
	}
	return lines
}
