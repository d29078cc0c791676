package world

// Animation is a frame cursor advanced every Delay ticks.
type Animation struct {
	Cursor int
	Delay  int // Ticks per frame
}

// Advance moves the cursor cyclically over frames when tick lands on the
// entity's cadence. The cursor is not reset when frames changes between calls.
func (a *Animation) Advance(tick, frames int) {
	if a.Delay <= 0 || frames <= 0 {
		return
	}
	if tick%a.Delay == 0 {
		a.Cursor = (a.Cursor + 1) % frames
	}
}

// Frame returns the cursor wrapped into [0, frames).
// The player's cursor is shared across variants with different frame counts,
// so it can briefly sit past the end of a shorter variant.
func (a Animation) Frame(frames int) int {
	if frames <= 0 {
		return 0
	}
	return a.Cursor % frames
}

// Variant selects which player sprite sheet is shown.
type Variant int

const (
	VariantStand Variant = iota
	VariantMove
	VariantRight
	VariantWrong
)

// String returns the variant name.
func (v Variant) String() string {
	switch v {
	case VariantStand:
		return "stand"
	case VariantMove:
		return "move"
	case VariantRight:
		return "right"
	case VariantWrong:
		return "wrong"
	default:
		return "unknown"
	}
}

// chooseVariant applies the priority feedback > lateral movement > idle.
func chooseVariant(phase Phase, fb Feedback, lateral bool) Variant {
	if phase == PhaseAnswered {
		if fb == FeedbackCorrect {
			return VariantRight
		}
		return VariantWrong
	}
	if lateral {
		return VariantMove
	}
	return VariantStand
}
