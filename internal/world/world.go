// Package world implements the quiz walk: a player walks a 2D canvas, runs
// into questioners, and answers their multiple-choice questions.
//
// All mutable game state lives in World and is touched only from the
// frontend's tick loop, so nothing here locks. Waiting is modeled as deadlines
// on a monotonic clock that Step compares every tick.
package world

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/quizwalk/internal/config"
	"github.com/vovakirdan/quizwalk/internal/core"
	"github.com/vovakirdan/quizwalk/internal/quiz"
)

// World is the aggregate of everything the game mutates.
type World struct {
	cfg    config.Config
	bank   *quiz.Bank
	rt     core.RuntimeConfig
	clock  core.Clock
	rng    *rand.Rand
	logger *log.Logger

	canvasW, canvasH float64
	tick             int

	phase       Phase
	player      Player
	questioners []*Questioner
	hintGiver   HintGiver
	pool        *quiz.Pool

	// Active engagement. Both are nil while Moving.
	active   *Questioner
	question *quiz.Question

	outcome       Outcome
	banner        string
	feedbackUntil time.Duration
	hintUntil     time.Duration

	layout       DialogLayout
	pointer      core.Point
	pointerValid bool

	stats RunStats
}

// New creates a world for the given bank. The bank must hold enough questions
// for one questioner to be satisfied.
func New(cfg config.Config, bank *quiz.Bank, rt core.RuntimeConfig) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("world: %w", err)
	}
	if err := bank.Validate(cfg.Rules.SatisfactionCap, cfg.Rules.MaxChoice); err != nil {
		return nil, fmt.Errorf("world: %w", err)
	}

	w := &World{
		cfg:    cfg,
		bank:   bank,
		clock:  core.NewSystemClock(),
		logger: log.New(io.Discard),
	}
	w.Reset(rt)
	return w, nil
}

// SetClock replaces the time source. Deadlines already armed keep their
// values, so call this before the first Step.
func (w *World) SetClock(c core.Clock) {
	w.clock = c
	w.stats.StartedAt = c.Now()
}

// SetLogger sets the logger for transition events.
func (w *World) SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	w.logger = l
}

// Reset starts a fresh run: full pool, entities at their spawn points.
func (w *World) Reset(rt core.RuntimeConfig) {
	w.rt = rt
	seed := rt.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	w.rng = rand.New(rand.NewSource(seed))
	w.tick = 0

	w.phase = PhaseMoving
	w.pool = quiz.NewPool(w.bank)
	w.active = nil
	w.question = nil
	w.outcome = OutcomeNone
	w.banner = ""
	w.feedbackUntil = 0
	w.hintUntil = 0

	pc := w.cfg.Player
	w.player = Player{
		Pos:     core.Point{X: rt.CanvasW / 2, Y: rt.CanvasH / 2},
		Speed:   pc.Speed,
		Dir:     DirLeft,
		Variant: VariantStand,
		Anim:    Animation{Delay: pc.FrameDelay},
	}

	w.questioners = w.questioners[:0]
	for _, qc := range w.cfg.Questioners {
		w.questioners = append(w.questioners, &Questioner{
			ID:     qc.ID,
			RelX:   qc.RelX,
			RelY:   qc.RelY,
			Sprite: spriteFrom(qc.Sprite),
			Anim:   Animation{Delay: qc.FrameDelay},
		})
	}

	hc := w.cfg.HintGiver
	w.hintGiver = HintGiver{
		Sprite: spriteFrom(hc.Sprite),
		Scale:  hc.Scale,
		Anim:   Animation{Delay: hc.FrameDelay},
	}

	w.stats = RunStats{BankID: w.bank.ID, StartedAt: w.clock.Now()}

	w.Resize(rt.CanvasW, rt.CanvasH)
}

// Resize adapts anchors to a new canvas size. Calling it twice with the same
// size yields the same positions.
func (w *World) Resize(canvasW, canvasH float64) {
	w.canvasW = canvasW
	w.canvasH = canvasH

	for _, q := range w.questioners {
		q.Pos = core.Point{X: canvasW * q.RelX, Y: canvasH * q.RelY}
	}
	w.hintGiver.Pos = core.Point{
		X: w.cfg.HintGiver.X,
		Y: canvasH - w.cfg.HintGiver.BottomOffset,
	}

	w.clampPlayer()
	w.layoutDialog()
}

// Phase returns the current interaction phase.
func (w *World) Phase() Phase {
	return w.phase
}

// Tick returns the number of steps taken since Reset.
func (w *World) Tick() int {
	return w.tick
}

// Active returns the engaged questioner, or nil while Moving.
func (w *World) Active() *Questioner {
	return w.active
}

// Question returns the question on the table, or nil while Moving.
func (w *World) Question() *quiz.Question {
	return w.question
}

// Remaining returns the number of unasked questions.
func (w *World) Remaining() int {
	return w.pool.Len()
}

// Satisfied returns how many questioners have been exhausted.
func (w *World) Satisfied() int {
	n := 0
	for _, q := range w.questioners {
		if w.exhausted(q) {
			n++
		}
	}
	return n
}

// Completed reports whether nothing is left to do: every questioner is
// exhausted or the pool is empty, and no engagement is in progress.
func (w *World) Completed() bool {
	if w.phase != PhaseMoving {
		return false
	}
	return w.pool.Empty() || w.Satisfied() == len(w.questioners)
}

// State returns the run summary for the platform.
func (w *World) State() core.GameState {
	return core.GameState{
		Score:     w.stats.Correct,
		Completed: w.Completed(),
	}
}

// Stats returns a copy of the run statistics so far.
func (w *World) Stats() RunStats {
	s := w.stats
	s.Answers = append([]AnswerRecord(nil), w.stats.Answers...)
	s.Duration = w.clock.Now() - w.stats.StartedAt
	s.Satisfied = w.Satisfied()
	s.Completed = w.Completed()
	return s
}

// Bank returns the bank being played.
func (w *World) Bank() *quiz.Bank {
	return w.bank
}

// Config returns the game configuration.
func (w *World) Config() config.Config {
	return w.cfg
}

// exhausted reports whether q has received all the correct answers it wants.
func (w *World) exhausted(q *Questioner) bool {
	return q.CorrectAnswers >= w.cfg.Rules.SatisfactionCap
}

// playerFootprint returns the scaled size used for clamping.
// Walking uses the move sheet, otherwise the stand sheet.
func (w *World) playerFootprint() (float64, float64) {
	s := w.cfg.Player.Stand
	if w.player.Moving {
		s = w.cfg.Player.Move
	}
	return s.W * w.cfg.Player.Scale, s.H * w.cfg.Player.Scale
}

// clampPlayer keeps the whole sprite on the canvas.
func (w *World) clampPlayer() {
	fw, fh := w.playerFootprint()
	w.player.Pos.X = core.ClampF(w.player.Pos.X, fw/2, w.canvasW-fw/2)
	w.player.Pos.Y = core.ClampF(w.player.Pos.Y, fh/2, w.canvasH-fh/2)
}
