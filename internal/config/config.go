// Package config provides YAML-based tuning for the quiz walk: sprite sizes,
// spawn anchors, timing, rules, and the reaction phrases.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/quizwalk/internal/quiz"
)

// Config contains all tunable parameters of the game.
type Config struct {
	Player          PlayerConfig       `yaml:"player"`
	Questioners     []QuestionerConfig `yaml:"questioners"`
	QuestionerScale float64            `yaml:"questioner_scale"`
	HintGiver       HintGiverConfig    `yaml:"hint_giver"`
	Timing          TimingConfig       `yaml:"timing"`
	Rules           RulesConfig        `yaml:"rules"`
	Phrases         PhrasesConfig      `yaml:"phrases"`
	Terminal        TerminalConfig     `yaml:"terminal"`
}

// SpriteConfig describes one sprite-sheet cell: unscaled size and frame count.
type SpriteConfig struct {
	W      float64 `yaml:"w"`
	H      float64 `yaml:"h"`
	Frames int     `yaml:"frames"`
}

// PlayerConfig defines the player's movement and animation variants.
type PlayerConfig struct {
	Speed      float64      `yaml:"speed"` // Canvas pixels per tick
	Scale      float64      `yaml:"scale"`
	FrameDelay int          `yaml:"frame_delay"` // Ticks per animation frame
	Stand      SpriteConfig `yaml:"stand"`
	Move       SpriteConfig `yaml:"move"`
	Right      SpriteConfig `yaml:"right"`
	Wrong      SpriteConfig `yaml:"wrong"`
}

// QuestionerConfig defines one questioner. RelX/RelY place it as a fraction
// of the canvas size.
type QuestionerConfig struct {
	ID         string       `yaml:"id"`
	RelX       float64      `yaml:"rel_x"`
	RelY       float64      `yaml:"rel_y"`
	FrameDelay int          `yaml:"frame_delay"`
	Sprite     SpriteConfig `yaml:"sprite"`
}

// HintGiverConfig places the hint-giver at a fixed x and a fixed distance
// from the bottom of the canvas.
type HintGiverConfig struct {
	X            float64      `yaml:"x"`
	BottomOffset float64      `yaml:"bottom_offset"`
	Scale        float64      `yaml:"scale"`
	FrameDelay   int          `yaml:"frame_delay"`
	Sprite       SpriteConfig `yaml:"sprite"`
}

// TimingConfig holds every wall-clock duration, in milliseconds.
type TimingConfig struct {
	CooldownMS        int `yaml:"cooldown_ms"`
	CorrectFeedbackMS int `yaml:"correct_feedback_ms"`
	WrongFeedbackMS   int `yaml:"wrong_feedback_ms"`
	DismissFeedbackMS int `yaml:"dismiss_feedback_ms"`
	HintMS            int `yaml:"hint_ms"`
}

// Cooldown is how long a questioner ignores the player after disengaging.
func (t TimingConfig) Cooldown() time.Duration {
	return time.Duration(t.CooldownMS) * time.Millisecond
}

// CorrectFeedback is how long the correct-answer feedback stays up.
func (t TimingConfig) CorrectFeedback() time.Duration {
	return time.Duration(t.CorrectFeedbackMS) * time.Millisecond
}

// WrongFeedback is how long the wrong-answer feedback stays up.
func (t TimingConfig) WrongFeedback() time.Duration {
	return time.Duration(t.WrongFeedbackMS) * time.Millisecond
}

// DismissFeedback is how long the taunt stays up after closing the dialog.
func (t TimingConfig) DismissFeedback() time.Duration {
	return time.Duration(t.DismissFeedbackMS) * time.Millisecond
}

// Hint is how long the hint overlay stays up.
func (t TimingConfig) Hint() time.Duration {
	return time.Duration(t.HintMS) * time.Millisecond
}

// RulesConfig defines the quiz rules.
type RulesConfig struct {
	SatisfactionCap int `yaml:"satisfaction_cap"` // Correct answers that exhaust a questioner
	MaxChoice       int `yaml:"max_choice"`       // Highest digit accepted as an answer
}

// PhrasesConfig holds every literal line the game shows.
type PhrasesConfig struct {
	Correct       []string `yaml:"correct"`
	Wrong         []string `yaml:"wrong"`
	Taunt         string   `yaml:"taunt"`
	CorrectBanner string   `yaml:"correct_banner"`
	WrongBanner   string   `yaml:"wrong_banner"`
}

// TerminalConfig maps the canvas onto terminal cells.
type TerminalConfig struct {
	CellW     float64 `yaml:"cell_w"`     // Canvas pixels per column
	CellH     float64 `yaml:"cell_h"`     // Canvas pixels per row
	HoldTicks int     `yaml:"hold_ticks"` // Ticks a key press counts as held
}

// Validate checks the config for values the game cannot run with.
func (c Config) Validate() error {
	var errs []error

	if c.Player.Speed <= 0 {
		errs = append(errs, errors.New("player.speed must be positive"))
	}
	if c.Player.Scale <= 0 {
		errs = append(errs, errors.New("player.scale must be positive"))
	}
	if c.Player.FrameDelay <= 0 {
		errs = append(errs, errors.New("player.frame_delay must be positive"))
	}
	for name, s := range map[string]SpriteConfig{
		"stand": c.Player.Stand, "move": c.Player.Move,
		"right": c.Player.Right, "wrong": c.Player.Wrong,
	} {
		if err := s.validate(); err != nil {
			errs = append(errs, fmt.Errorf("player.%s: %w", name, err))
		}
	}

	if len(c.Questioners) == 0 {
		errs = append(errs, errors.New("at least one questioner is required"))
	}
	if c.QuestionerScale <= 0 {
		errs = append(errs, errors.New("questioner_scale must be positive"))
	}
	seen := make(map[string]bool)
	for i, q := range c.Questioners {
		if q.ID == "" {
			errs = append(errs, fmt.Errorf("questioners[%d]: id is required", i))
		} else if seen[q.ID] {
			errs = append(errs, fmt.Errorf("questioners[%d]: duplicate id %q", i, q.ID))
		}
		seen[q.ID] = true
		if q.FrameDelay <= 0 {
			errs = append(errs, fmt.Errorf("questioners[%d]: frame_delay must be positive", i))
		}
		if err := q.Sprite.validate(); err != nil {
			errs = append(errs, fmt.Errorf("questioners[%d]: %w", i, err))
		}
	}

	if c.HintGiver.FrameDelay <= 0 || c.HintGiver.Scale <= 0 {
		errs = append(errs, errors.New("hint_giver: frame_delay and scale must be positive"))
	}
	if err := c.HintGiver.Sprite.validate(); err != nil {
		errs = append(errs, fmt.Errorf("hint_giver: %w", err))
	}

	t := c.Timing
	if t.CooldownMS < 0 || t.CorrectFeedbackMS < 0 || t.WrongFeedbackMS < 0 || t.DismissFeedbackMS < 0 || t.HintMS < 0 {
		errs = append(errs, errors.New("timing: durations must not be negative"))
	}

	if c.Rules.SatisfactionCap < 1 {
		errs = append(errs, errors.New("rules.satisfaction_cap must be at least 1"))
	}
	if c.Rules.MaxChoice < 1 || c.Rules.MaxChoice > quiz.MaxOptions {
		errs = append(errs, fmt.Errorf("rules.max_choice must be between 1 and %d", quiz.MaxOptions))
	}

	if len(c.Phrases.Correct) == 0 || len(c.Phrases.Wrong) == 0 {
		errs = append(errs, errors.New("phrases: correct and wrong lists must not be empty"))
	}

	if c.Terminal.CellW <= 0 || c.Terminal.CellH <= 0 {
		errs = append(errs, errors.New("terminal: cell size must be positive"))
	}

	return errors.Join(errs...)
}

func (s SpriteConfig) validate() error {
	if s.W <= 0 || s.H <= 0 {
		return errors.New("sprite size must be positive")
	}
	if s.Frames < 1 {
		return errors.New("sprite needs at least one frame")
	}
	return nil
}
