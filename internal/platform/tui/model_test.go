package tui

import (
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/quizwalk/internal/core"
	"github.com/vovakirdan/quizwalk/internal/storage"
	"github.com/vovakirdan/quizwalk/internal/world"
)

func newTestModel(t *testing.T, store *storage.Store) Model {
	t.Helper()
	w := newDrawWorld(t)
	m := NewModel(w, store, nil, core.RuntimeConfig{TickRate: 60, Seed: 7})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return next.(Model)
}

func step(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func TestModelResizeSetsCanvas(t *testing.T) {
	m := newTestModel(t, nil)

	// 30 rows minus help bar and HUD leaves 28 canvas rows.
	if m.config.CanvasW != 1000 || m.config.CanvasH != 560 {
		t.Errorf("unexpected canvas %vx%v", m.config.CanvasW, m.config.CanvasH)
	}
	if m.screen.Width() != 100 || m.screen.Height() != 29 {
		t.Errorf("unexpected screen %dx%d", m.screen.Width(), m.screen.Height())
	}
	snap := m.world.Snapshot()
	if snap.CanvasW != 1000 || snap.CanvasH != 560 {
		t.Errorf("world not resized: %vx%v", snap.CanvasW, snap.CanvasH)
	}
}

func TestModelHeldKeyMovesPlayer(t *testing.T) {
	m := newTestModel(t, nil)
	start := m.world.Snapshot().Player.Pos

	m = step(m, tea.KeyMsg{Type: tea.KeyRight}, TickMsg(time.Now()), TickMsg(time.Now()))
	pos := m.world.Snapshot().Player.Pos
	if pos.X != start.X+6 {
		t.Errorf("expected two steps right, got %v -> %v", start.X, pos.X)
	}

	// The hold runs out without key repeat.
	for i := 0; i < 20; i++ {
		m = step(m, TickMsg(time.Now()))
	}
	stopped := m.world.Snapshot().Player.Pos
	m = step(m, TickMsg(time.Now()))
	if m.world.Snapshot().Player.Pos != stopped {
		t.Error("expected the player to stop once the hold expires")
	}
}

func TestModelMouseHover(t *testing.T) {
	m := newTestModel(t, nil)
	m = step(m, tea.MouseMsg{X: 10, Y: 5, Action: tea.MouseActionMotion}, TickMsg(time.Now()))

	if !m.inputFrame.PointerValid {
		t.Fatal("expected pointer position recorded")
	}
	if m.inputFrame.Pointer != (core.Point{X: 105, Y: 110}) {
		t.Errorf("unexpected pointer %+v", m.inputFrame.Pointer)
	}
}

func TestModelQuitLogsRun(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	m := newTestModel(t, store)

	// Walk down until the bottom questioner asks.
	for i := 0; i < 200 && m.world.Phase() == world.PhaseMoving; i++ {
		m = step(m, tea.KeyMsg{Type: tea.KeyDown}, TickMsg(time.Now()))
	}
	if m.world.Phase() != world.PhaseAsking {
		t.Fatalf("expected Asking, got %s", m.world.Phase())
	}

	answer := m.world.Question().Answer
	m = step(m, runeKey(rune('0'+answer)), TickMsg(time.Now()))
	if m.world.Phase() != world.PhaseAnswered {
		t.Fatalf("expected Answered, got %s", m.world.Phase())
	}

	next, cmd := m.Update(runeKey('q'))
	m = next.(Model)
	if cmd == nil || !m.quitting {
		t.Fatal("expected quit")
	}

	runs, err := store.RecentRuns("", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 1 || runs[0].Correct != 1 {
		t.Errorf("expected one logged run with 1 correct, got %+v", runs)
	}
}

func TestModelQuitWithoutAnswersLogsNothing(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	m := newTestModel(t, store)
	step(m, TickMsg(time.Now()), runeKey('q'))

	runs, _ := store.RecentRuns("", 10)
	if len(runs) != 0 {
		t.Errorf("expected no logged runs, got %d", len(runs))
	}
}
