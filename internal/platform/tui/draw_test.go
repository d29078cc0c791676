package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/quizwalk/internal/config"
	"github.com/vovakirdan/quizwalk/internal/core"
	"github.com/vovakirdan/quizwalk/internal/quiz"
	"github.com/vovakirdan/quizwalk/internal/world"
)

func TestRendererCellMapping(t *testing.T) {
	r := NewSceneRenderer(10, 20)

	if w, h := r.CanvasSize(80, 23); w != 800 || h != 460 {
		t.Errorf("unexpected canvas %vx%v", w, h)
	}
	if p := r.ToCanvas(3, 2); p != (core.Point{X: 35, Y: 50}) {
		t.Errorf("unexpected cell center %+v", p)
	}
	if x, y := r.ToCell(core.Point{X: 35, Y: 50}); x != 3 || y != 2 {
		t.Errorf("unexpected cell %d,%d", x, y)
	}

	rect := r.ToRect(core.Box{X: 15, Y: 10, W: 30, H: 35})
	if rect != core.NewRect(1, 0, 4, 3) {
		t.Errorf("unexpected rect %+v", rect)
	}
}

func TestWrapText(t *testing.T) {
	tests := []struct {
		text  string
		width int
		want  []string
	}{
		{"hello", 10, []string{"hello"}},
		{"abcdef", 4, []string{"abcd", "ef"}},
		{"一二三四", 5, []string{"一二", "三四"}},
		{"a\nb", 10, []string{"a", "b"}},
	}

	for _, tc := range tests {
		got := wrapText(tc.text, tc.width)
		if strings.Join(got, "|") != strings.Join(tc.want, "|") {
			t.Errorf("wrapText(%q, %d) = %q, want %q", tc.text, tc.width, got, tc.want)
		}
	}
}

func newDrawWorld(t *testing.T) *world.World {
	t.Helper()
	bank, err := quiz.Embedded()
	if err != nil {
		t.Fatalf("Embedded() failed: %v", err)
	}
	rt := core.RuntimeConfig{CanvasW: 800, CanvasH: 460, TickRate: 60, Seed: 7}
	w, err := world.New(config.Default(), bank, rt)
	if err != nil {
		t.Fatalf("world.New() failed: %v", err)
	}
	w.SetClock(core.NewManualClock(0))
	return w
}

func TestDrawMovingScene(t *testing.T) {
	w := newDrawWorld(t)
	screen := core.NewScreen(80, 24)
	r := NewSceneRenderer(10, 20)

	r.Draw(screen, w.Snapshot())
	out := screen.String()

	for _, want := range []string{"q1", "q2", "q3", "(o_o)", "Satisfied 0/3"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q on screen", want)
		}
	}
	if strings.Contains(out, "[X]") {
		t.Error("no dialog while moving")
	}
}

func TestDrawDialog(t *testing.T) {
	w := newDrawWorld(t)
	screen := core.NewScreen(80, 24)
	r := NewSceneRenderer(10, 20)

	// Walk onto the bottom questioner.
	snap := w.Snapshot()
	in := core.NewInputFrame()
	in.Hold(core.ActionDown, true)
	for i := 0; i < 200 && w.Phase() == world.PhaseMoving; i++ {
		w.Step(in)
	}
	if w.Phase() != world.PhaseAsking {
		t.Fatalf("expected to reach q3 from %+v", snap.Player.Pos)
	}

	r.Draw(screen, w.Snapshot())
	out := screen.String()
	if !strings.Contains(out, "[X]") || !strings.Contains(out, hintLabel) {
		t.Error("expected close and hint buttons")
	}
	if !strings.Contains(out, "1. ") || !strings.Contains(out, "3. ") {
		t.Error("expected numbered options")
	}
}
