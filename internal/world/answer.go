package world

import "github.com/vovakirdan/quizwalk/internal/core"

// Answer evaluates a digit key press. Digits outside 1..max_choice and presses
// outside the Asking phase are ignored. Returns true if the answer was taken.
func (w *World) Answer(choice int) bool {
	if w.phase != PhaseAsking || w.active == nil || w.question == nil {
		return false
	}
	if choice < 1 || choice > w.cfg.Rules.MaxChoice {
		return false
	}

	now := w.clock.Now()
	q := w.active
	w.phase = PhaseAnswered

	correct := w.question.IsCorrect(choice)
	w.stats.record(q.ID, w.question, choice, correct, now)

	if correct {
		q.CorrectAnswers++
		q.Reaction = ReactionCorrect
		q.ReactionText = w.pickPhrase(w.cfg.Phrases.Correct)
		w.player.Feedback = FeedbackCorrect
		w.outcome = OutcomeCorrect
		w.banner = w.cfg.Phrases.CorrectBanner
		w.pool.Remove(w.question)
		w.feedbackUntil = now + w.cfg.Timing.CorrectFeedback()
	} else {
		q.Reaction = ReactionWrong
		q.ReactionText = w.pickPhrase(w.cfg.Phrases.Wrong)
		w.player.Feedback = FeedbackWrong
		w.outcome = OutcomeWrong
		w.banner = w.cfg.Phrases.WrongBanner
		w.feedbackUntil = now + w.cfg.Timing.WrongFeedback()
	}

	w.logger.Debug("answered",
		"questioner", q.ID,
		"choice", choice,
		"outcome", w.outcome,
		"satisfaction", q.CorrectAnswers,
	)
	return true
}

// Dismiss closes the dialog without answering. The questioner taunts the
// player and the engagement ends once the taunt has been shown.
func (w *World) Dismiss() bool {
	if w.phase != PhaseAsking || w.active == nil {
		return false
	}

	q := w.active
	q.Reaction = ReactionWrong
	q.ReactionText = w.cfg.Phrases.Taunt
	w.player.Feedback = FeedbackNone
	w.outcome = OutcomeDismissed
	w.banner = ""
	w.feedbackUntil = w.clock.Now() + w.cfg.Timing.DismissFeedback()
	w.phase = PhaseAnswered
	w.stats.Dismissed++

	w.logger.Debug("dismissed", "questioner", q.ID)
	return true
}

// RequestHint shows the current question's hint for a while.
func (w *World) RequestHint() bool {
	if w.phase != PhaseAsking {
		return false
	}
	w.hintUntil = w.clock.Now() + w.cfg.Timing.Hint()
	w.stats.HintsUsed++
	return true
}

// Click hit-tests a pointer click against the dialog buttons.
// The close control wins when both are hit.
func (w *World) Click(p core.Point) bool {
	if w.phase != PhaseAsking {
		return false
	}
	if w.layout.Close.Contains(p) {
		return w.Dismiss()
	}
	if w.layout.Hint.Contains(p) {
		return w.RequestHint()
	}
	return false
}

// pickPhrase draws one phrase uniformly at random.
func (w *World) pickPhrase(phrases []string) string {
	if len(phrases) == 0 {
		return ""
	}
	return phrases[w.rng.Intn(len(phrases))]
}
