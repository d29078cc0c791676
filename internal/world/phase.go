package world

// Phase is the interaction state of the world.
type Phase int

const (
	PhaseMoving   Phase = iota // Player walks; detector looks for questioners
	PhaseAsking                // Dialog is up, waiting for an answer
	PhaseAnswered              // Feedback is shown until its deadline passes
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseMoving:
		return "moving"
	case PhaseAsking:
		return "asking"
	case PhaseAnswered:
		return "answered"
	default:
		return "unknown"
	}
}

// Outcome records how the Answered phase was entered.
type Outcome int

const (
	OutcomeNone      Outcome = iota
	OutcomeCorrect           // Right option chosen
	OutcomeWrong             // Wrong option chosen
	OutcomeDismissed         // Dialog closed without answering
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeCorrect:
		return "correct"
	case OutcomeWrong:
		return "wrong"
	case OutcomeDismissed:
		return "dismissed"
	default:
		return "none"
	}
}
