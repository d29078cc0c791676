package world

import "github.com/vovakirdan/quizwalk/internal/core"

// Step advances the world by one tick.
func (w *World) Step(in core.InputFrame) core.StepResult {
	w.tick++
	if in.PointerValid {
		w.pointer = in.Pointer
		w.pointerValid = true
	}

	if w.phase == PhaseAsking {
		w.handleAsking(in)
	}

	w.animate(in)

	switch w.phase {
	case PhaseMoving:
		w.move(in)
		w.detect()
	case PhaseAsking:
		w.layoutDialog()
	case PhaseAnswered:
		w.resolveFeedback()
	}

	return core.StepResult{State: w.State()}
}

// handleAsking applies the one-shot events that are live while a question is
// on the table. Pointer clicks go first so a close click beats a digit
// pressed in the same tick.
func (w *World) handleAsking(in core.InputFrame) {
	switch {
	case in.Has(core.ActionClick) && w.Click(in.Pointer):
	case in.Has(core.ActionDismiss) && w.Dismiss():
	case in.Has(core.ActionAnswer) && w.Answer(in.Digit):
	}
	if w.phase == PhaseAsking && in.Has(core.ActionHint) {
		w.RequestHint()
	}
}

// move walks the player by the held direction keys and clamps to the canvas.
func (w *World) move(in core.InputFrame) {
	p := &w.player
	p.Moving = in.IsHeld(core.ActionLeft) || in.IsHeld(core.ActionRight) ||
		in.IsHeld(core.ActionUp) || in.IsHeld(core.ActionDown)

	if p.Moving {
		if in.IsHeld(core.ActionLeft) {
			p.Pos.X -= p.Speed
			p.Dir = DirLeft
		}
		if in.IsHeld(core.ActionRight) {
			p.Pos.X += p.Speed
			p.Dir = DirRight
		}
		if in.IsHeld(core.ActionUp) {
			p.Pos.Y -= p.Speed
		}
		if in.IsHeld(core.ActionDown) {
			p.Pos.Y += p.Speed
		}
	}
	w.clampPlayer()
}

// animate advances every entity's frame cursor. The player has one cursor
// for all variants; it wraps by the frame count of whichever variant is
// current on this tick.
func (w *World) animate(in core.InputFrame) {
	lateral := in.IsHeld(core.ActionLeft) || in.IsHeld(core.ActionRight)
	w.player.Variant = chooseVariant(w.phase, w.player.Feedback, lateral)
	w.player.Anim.Advance(w.tick, w.playerSprite(w.player.Variant).Frames)

	for _, q := range w.questioners {
		q.Anim.Advance(w.tick, q.Sprite.Frames)
	}
	w.hintGiver.Anim.Advance(w.tick, w.hintGiver.Sprite.Frames)
}

// playerSprite returns the sheet for a variant.
func (w *World) playerSprite(v Variant) Sprite {
	pc := w.cfg.Player
	switch v {
	case VariantMove:
		return spriteFrom(pc.Move)
	case VariantRight:
		return spriteFrom(pc.Right)
	case VariantWrong:
		return spriteFrom(pc.Wrong)
	default:
		return spriteFrom(pc.Stand)
	}
}

// resolveFeedback leaves Answered once the feedback deadline has passed.
func (w *World) resolveFeedback() {
	now := w.clock.Now()
	if now <= w.feedbackUntil {
		return
	}

	q := w.active
	switch w.outcome {
	case OutcomeCorrect:
		if w.exhausted(q) {
			w.logger.Info("questioner satisfied", "questioner", q.ID)
			w.exit()
			return
		}
		if w.pool.Empty() {
			w.logger.Warn("question pool empty, ending engagement", "questioner", q.ID)
			w.exit()
			return
		}
		w.question = w.pool.Pick(w.rng)
		w.hintUntil = 0
		w.reask()
	case OutcomeWrong:
		w.hintUntil = now + w.cfg.Timing.Hint()
		w.reask()
	default:
		w.exit()
	}
}

// reask returns to Asking with the current question.
func (w *World) reask() {
	w.active.clearReaction()
	w.player.Feedback = FeedbackNone
	w.outcome = OutcomeNone
	w.banner = ""
	w.phase = PhaseAsking
	w.layoutDialog()

	w.logger.Debug("asking", "questioner", w.active.ID, "question", w.question.Text)
}

// exit ends the engagement and puts the questioner on cooldown.
func (w *World) exit() {
	q := w.active
	q.CooldownUntil = w.clock.Now() + w.cfg.Timing.Cooldown()
	q.clearReaction()

	w.active = nil
	w.question = nil
	w.player.Feedback = FeedbackNone
	w.outcome = OutcomeNone
	w.banner = ""
	w.hintUntil = 0
	w.phase = PhaseMoving

	w.logger.Debug("disengaged", "questioner", q.ID, "cooldown_until", q.CooldownUntil)
	if w.Completed() {
		w.logger.Info("run complete",
			"correct", w.stats.Correct,
			"wrong", w.stats.Wrong,
			"satisfied", w.Satisfied(),
		)
	}
}
