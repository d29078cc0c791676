package world

import (
	"time"

	"github.com/vovakirdan/quizwalk/internal/config"
	"github.com/vovakirdan/quizwalk/internal/core"
)

// Direction is the player's last horizontal heading.
type Direction int

const (
	DirLeft  Direction = -1
	DirRight Direction = 1
)

// Feedback is the player's reaction to the last answer.
// Only meaningful while the world is in PhaseAnswered.
type Feedback int

const (
	FeedbackNone Feedback = iota
	FeedbackCorrect
	FeedbackWrong
)

// String returns the feedback name.
func (f Feedback) String() string {
	switch f {
	case FeedbackCorrect:
		return "correct"
	case FeedbackWrong:
		return "wrong"
	default:
		return "none"
	}
}

// Reaction is a questioner's transient mood.
type Reaction int

const (
	ReactionNone Reaction = iota
	ReactionCorrect
	ReactionWrong
)

// String returns the reaction name.
func (r Reaction) String() string {
	switch r {
	case ReactionCorrect:
		return "correct"
	case ReactionWrong:
		return "wrong"
	default:
		return "none"
	}
}

// Sprite is the on-screen footprint of one animation variant.
type Sprite struct {
	W, H   float64 // Unscaled sprite-sheet cell size
	Frames int
}

func spriteFrom(c config.SpriteConfig) Sprite {
	return Sprite{W: c.W, H: c.H, Frames: c.Frames}
}

// Size returns the scaled footprint.
func (s Sprite) Size(scale float64) (w, h float64) {
	return s.W * scale, s.H * scale
}

// Player is the walking character.
type Player struct {
	Pos      core.Point
	Speed    float64
	Dir      Direction
	Moving   bool
	Feedback Feedback
	Variant  Variant
	Anim     Animation
}

// Questioner is an NPC that poses questions when approached.
type Questioner struct {
	ID             string
	RelX, RelY     float64 // Spawn anchor as a fraction of the canvas
	Pos            core.Point
	Sprite         Sprite
	Anim           Animation
	CorrectAnswers int
	CooldownUntil  time.Duration
	Reaction       Reaction
	ReactionText   string
}

// clearReaction drops the transient reaction state.
func (q *Questioner) clearReaction() {
	q.Reaction = ReactionNone
	q.ReactionText = ""
}

// HintGiver is the character the hint overlay is anchored to.
type HintGiver struct {
	Pos    core.Point
	Sprite Sprite
	Scale  float64
	Anim   Animation
}
