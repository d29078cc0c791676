package world

import "github.com/vovakirdan/quizwalk/internal/core"

// engageable reports whether q may start an engagement right now.
func (w *World) engageable(q *Questioner) bool {
	if w.exhausted(q) || w.pool.Empty() {
		return false
	}
	if w.clock.Now() < q.CooldownUntil {
		return false
	}
	return core.Dist(w.player.Pos, q.Pos) < w.touchRadius(q)
}

// touchRadius is the distance under which the player touches q:
// half the player's idle width plus half the questioner's width.
func (w *World) touchRadius(q *Questioner) float64 {
	playerHalf := w.cfg.Player.Stand.W * w.cfg.Player.Scale / 2
	questionerHalf := q.Sprite.W * w.cfg.QuestionerScale / 2
	return playerHalf + questionerHalf
}

// detect engages the first engageable questioner in spawn order.
// Returns true if an engagement started.
func (w *World) detect() bool {
	for _, q := range w.questioners {
		if !w.engageable(q) {
			continue
		}
		w.engage(q)
		return true
	}
	return false
}

// engage moves to Asking with q and a random unasked question.
func (w *World) engage(q *Questioner) {
	w.active = q
	w.question = w.pool.Pick(w.rng)
	w.phase = PhaseAsking
	w.stats.Engagements++
	w.layoutDialog()

	w.logger.Debug("engaged",
		"questioner", q.ID,
		"question", w.question.Text,
		"remaining", w.pool.Len(),
	)
}
