package world

import "github.com/vovakirdan/quizwalk/internal/core"

// Snapshot is a read-only view of the world for one frame.
// Frontends draw from it and never touch World directly.
type Snapshot struct {
	Tick             int
	CanvasW, CanvasH float64
	Phase            Phase
	Outcome          Outcome

	Player      PlayerView
	Questioners []QuestionerView
	HintGiver   SpriteView

	Dialog *DialogView // nil unless Asking
	Hint   *HintView   // nil unless the hint overlay is up
	Banner string

	HUD HUD
}

// SpriteView is one animated entity as it should be drawn.
type SpriteView struct {
	Pos    core.Point // Center, reaction offset applied
	W, H   float64    // Scaled footprint
	Frame  int
	Frames int
}

// PlayerView is the player's sprite plus its facing.
type PlayerView struct {
	SpriteView
	Variant Variant
	Mirror  bool // Walk sheet faces left by default
}

// QuestionerView is one questioner's sprite and reaction.
type QuestionerView struct {
	SpriteView
	ID           string
	Active       bool
	Exhausted    bool
	Reaction     Reaction
	ReactionText string
}

// DialogView is the question dialog with pointer hover state.
type DialogView struct {
	Layout     DialogLayout
	Question   string
	Options    []string
	HoverHint  bool
	HoverClose bool
}

// HintView is the hint overlay next to the hint-giver.
type HintView struct {
	Box  core.Box
	Text string
}

// HUD is the progress line.
type HUD struct {
	Satisfied   int
	Questioners int
	Remaining   int
	Correct     int
	Wrong       int
	Completed   bool
}

// Snapshot captures the current frame.
func (w *World) Snapshot() Snapshot {
	s := Snapshot{
		Tick:    w.tick,
		CanvasW: w.canvasW,
		CanvasH: w.canvasH,
		Phase:   w.phase,
		Outcome: w.outcome,
		Banner:  w.banner,
		HUD: HUD{
			Satisfied:   w.Satisfied(),
			Questioners: len(w.questioners),
			Remaining:   w.pool.Len(),
			Correct:     w.stats.Correct,
			Wrong:       w.stats.Wrong,
			Completed:   w.Completed(),
		},
	}

	sprite := w.playerSprite(w.player.Variant)
	pw, ph := sprite.Size(w.cfg.Player.Scale)
	s.Player = PlayerView{
		SpriteView: SpriteView{
			Pos:    w.player.Pos,
			W:      pw,
			H:      ph,
			Frame:  w.player.Anim.Frame(sprite.Frames),
			Frames: sprite.Frames,
		},
		Variant: w.player.Variant,
		Mirror:  w.player.Variant == VariantMove && w.player.Dir == DirRight,
	}

	s.Questioners = make([]QuestionerView, 0, len(w.questioners))
	for _, q := range w.questioners {
		qw, qh := q.Sprite.Size(w.cfg.QuestionerScale)
		pos := q.Pos
		active := q == w.active
		if active && w.phase == PhaseAnswered {
			dx, dy := ReactionOffset(q.Reaction, w.tick)
			pos.X += dx
			pos.Y += dy
		}
		s.Questioners = append(s.Questioners, QuestionerView{
			SpriteView: SpriteView{
				Pos:    pos,
				W:      qw,
				H:      qh,
				Frame:  q.Anim.Frame(q.Sprite.Frames),
				Frames: q.Sprite.Frames,
			},
			ID:           q.ID,
			Active:       active,
			Exhausted:    w.exhausted(q),
			Reaction:     q.Reaction,
			ReactionText: q.ReactionText,
		})
	}

	gw, gh := w.hintGiver.Sprite.Size(w.hintGiver.Scale)
	s.HintGiver = SpriteView{
		Pos:    w.hintGiver.Pos,
		W:      gw,
		H:      gh,
		Frame:  w.hintGiver.Anim.Frame(w.hintGiver.Sprite.Frames),
		Frames: w.hintGiver.Sprite.Frames,
	}

	if w.phase == PhaseAsking && w.question != nil {
		d := &DialogView{
			Layout:   w.layout,
			Question: w.question.Text,
			Options:  w.question.Options,
		}
		if w.pointerValid {
			d.HoverHint = w.layout.Hint.Contains(w.pointer)
			d.HoverClose = w.layout.Close.Contains(w.pointer)
		}
		s.Dialog = d
	}

	if w.HintVisible() {
		s.Hint = &HintView{
			Box:  HintOverlay(w.hintGiver.Pos),
			Text: w.question.Hint,
		}
	}
	return s
}

// HintVisible reports whether the hint overlay is up.
func (w *World) HintVisible() bool {
	return w.phase == PhaseAsking && w.question != nil && w.clock.Now() < w.hintUntil
}
