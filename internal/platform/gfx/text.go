package gfx

import (
	"fmt"
	"image/color"
	"os"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// Debug font cell size used when no font file is configured.
const (
	debugGlyphW = 6
	debugGlyphH = 16
)

// Typesetter draws text with a loaded font face, or with the built-in debug
// font when none is set. The debug font only covers ASCII.
type Typesetter struct {
	face *text.GoTextFace
}

// LoadTypesetter reads a TrueType or OpenType font. An empty path selects
// the debug font.
func LoadTypesetter(path string, size float64) (*Typesetter, error) {
	if path == "" {
		return &Typesetter{}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gfx: cannot open font: %w", err)
	}
	defer f.Close()

	src, err := text.NewGoTextFaceSource(f)
	if err != nil {
		return nil, fmt.Errorf("gfx: cannot parse font %s: %w", path, err)
	}
	return &Typesetter{face: &text.GoTextFace{Source: src, Size: size}}, nil
}

// LineHeight returns the height of one line in pixels.
func (t *Typesetter) LineHeight() float64 {
	if t.face == nil {
		return debugGlyphH
	}
	return t.face.Size * 1.4
}

// Measure returns the width of a single line in pixels.
func (t *Typesetter) Measure(s string) float64 {
	if t.face == nil {
		return float64(len([]rune(s)) * debugGlyphW)
	}
	w, _ := text.Measure(s, t.face, t.LineHeight())
	return w
}

// Draw writes s with its top-left corner at (x, y).
func (t *Typesetter) Draw(dst *ebiten.Image, s string, x, y float64, clr color.Color) {
	if t.face == nil {
		ebitenutil.DebugPrintAt(dst, s, int(x), int(y))
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.LineSpacing = t.LineHeight()
	text.Draw(dst, s, t.face, op)
}

// DrawCentered writes s centered on (cx, cy).
func (t *Typesetter) DrawCentered(dst *ebiten.Image, s string, cx, cy float64, clr color.Color) {
	lines := strings.Split(s, "\n")
	h := t.LineHeight() * float64(len(lines))
	y := cy - h/2
	for _, line := range lines {
		t.Draw(dst, line, cx-t.Measure(line)/2, y, clr)
		y += t.LineHeight()
	}
}

// Wrap breaks s into lines no wider than maxW pixels.
func (t *Typesetter) Wrap(s string, maxW float64) []string {
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		var line []rune
		for _, r := range para {
			next := append(line, r)
			if len(line) > 0 && t.Measure(string(next)) > maxW {
				lines = append(lines, string(line))
				line = []rune{r}
				continue
			}
			line = next
		}
		lines = append(lines, string(line))
	}
	return lines
}

// Unicode reports whether the typesetter can draw non-ASCII text.
func (t *Typesetter) Unicode() bool {
	return t.face != nil
}
