package world

import (
	"testing"

	"github.com/vovakirdan/quizwalk/internal/core"
)

func TestAnimationAdvance(t *testing.T) {
	a := Animation{Delay: 10}
	for tick := 1; tick <= 40; tick++ {
		a.Advance(tick, 4)
	}
	// Ticks 10, 20, 30 and 40 each advance once.
	if a.Cursor != 0 {
		t.Errorf("expected cursor 0 after a full cycle, got %d", a.Cursor)
	}

	a.Advance(50, 4)
	if a.Cursor != 1 {
		t.Errorf("expected cursor 1, got %d", a.Cursor)
	}
	a.Advance(51, 4)
	if a.Cursor != 1 {
		t.Errorf("off-cadence tick moved the cursor")
	}
}

func TestAnimationZeroDelay(t *testing.T) {
	a := Animation{}
	a.Advance(0, 4)
	if a.Cursor != 0 {
		t.Errorf("zero delay must not advance")
	}
}

func TestSharedCursorAcrossVariants(t *testing.T) {
	// Walking leaves the cursor on frame 3 of the 4-frame sheet.
	a := Animation{Cursor: 3, Delay: 10}

	// Before the next advance the 2-frame stand sheet wraps it for drawing.
	if f := a.Frame(2); f != 1 {
		t.Errorf("expected frame 1 of 2, got %d", f)
	}

	// The next advance wraps by the stand sheet's frame count.
	a.Advance(10, 2)
	if a.Cursor != 0 {
		t.Errorf("expected cursor (3+1)%%2 = 0, got %d", a.Cursor)
	}
}

func TestPlayerCursorIsShared(t *testing.T) {
	w, _ := newTestWorld(t, 4)
	w.player.Anim.Cursor = 3
	w.tick = 9

	// Tick 10 is on the player's cadence; no keys held means the stand sheet.
	idle(w)
	if w.player.Variant != VariantStand {
		t.Fatalf("expected stand, got %s", w.player.Variant)
	}
	if w.player.Anim.Cursor != 0 {
		t.Errorf("expected cursor 0, got %d", w.player.Anim.Cursor)
	}
}

func TestChooseVariant(t *testing.T) {
	tests := []struct {
		name    string
		phase   Phase
		fb      Feedback
		lateral bool
		want    Variant
	}{
		{"idle", PhaseMoving, FeedbackNone, false, VariantStand},
		{"walking", PhaseMoving, FeedbackNone, true, VariantMove},
		{"asking while holding", PhaseAsking, FeedbackNone, true, VariantMove},
		{"correct beats walking", PhaseAnswered, FeedbackCorrect, true, VariantRight},
		{"wrong", PhaseAnswered, FeedbackWrong, false, VariantWrong},
		{"dismissed", PhaseAnswered, FeedbackNone, false, VariantWrong},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := chooseVariant(tc.phase, tc.fb, tc.lateral); got != tc.want {
				t.Errorf("got %s, want %s", got, tc.want)
			}
		})
	}
}

func TestVerticalWalkKeepsStandSheet(t *testing.T) {
	w, _ := newTestWorld(t, 4)
	in := core.NewInputFrame()
	in.Hold(core.ActionUp, true)
	w.Step(in)

	if w.player.Variant != VariantStand {
		t.Errorf("expected stand while walking vertically, got %s", w.player.Variant)
	}
	if !w.player.Moving {
		t.Errorf("expected player to be moving")
	}
}

func TestMirrorFollowsDirection(t *testing.T) {
	w, _ := newTestWorld(t, 4)

	in := core.NewInputFrame()
	in.Hold(core.ActionRight, true)
	w.Step(in)
	if s := w.Snapshot(); !s.Player.Mirror {
		t.Error("expected walk sheet mirrored when facing right")
	}

	in = core.NewInputFrame()
	in.Hold(core.ActionLeft, true)
	w.Step(in)
	if s := w.Snapshot(); s.Player.Mirror {
		t.Error("expected walk sheet unmirrored when facing left")
	}
}
