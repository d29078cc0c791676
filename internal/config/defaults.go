package config

import (
	_ "embed"
)

//go:embed defaults/quizwalk.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
// Sprite sizes are sprite-sheet cells: sheet width divided by frame count.
func Default() Config {
	return Config{
		Player: PlayerConfig{
			Speed:      3,
			Scale:      2.5,
			FrameDelay: 10,
			Stand:      SpriteConfig{W: 79.0 / 2, H: 39, Frames: 2},
			Move:       SpriteConfig{W: 163.0 / 4, H: 39, Frames: 4},
			Right:      SpriteConfig{W: 81.0 / 2, H: 40, Frames: 2},
			Wrong:      SpriteConfig{W: 85.0 / 2, H: 38, Frames: 2},
		},
		Questioners: []QuestionerConfig{
			{ID: "q1", RelX: 0.2, RelY: 0.2, FrameDelay: 15, Sprite: SpriteConfig{W: 91.0 / 4, H: 23, Frames: 4}},
			{ID: "q2", RelX: 0.8, RelY: 0.2, FrameDelay: 15, Sprite: SpriteConfig{W: 83.0 / 4, H: 20, Frames: 4}},
			{ID: "q3", RelX: 0.5, RelY: 0.8, FrameDelay: 12, Sprite: SpriteConfig{W: 175.0 / 6, H: 24, Frames: 6}},
		},
		QuestionerScale: 4.0,
		HintGiver: HintGiverConfig{
			X:            150,
			BottomOffset: 80,
			Scale:        3.0,
			FrameDelay:   10,
			Sprite:       SpriteConfig{W: 291.0 / 8, H: 31, Frames: 8},
		},
		Timing: TimingConfig{
			CooldownMS:        3000,
			CorrectFeedbackMS: 1500,
			WrongFeedbackMS:   3000,
			DismissFeedbackMS: 2000,
			HintMS:            2000,
		},
		Rules: RulesConfig{
			SatisfactionCap: 2,
			MaxChoice:       3,
		},
		Phrases: PhrasesConfig{
			Correct:       []string{"答對了，好厲害！", "真聰明！", "恭喜你！", "表現得很好喔！"},
			Wrong:         []string{"差一點點，再加油！", "沒關係，再試一次吧。", "這個答案好像不對喔。", "別灰心，你可以的！"},
			Taunt:         "不敢回答嗎？真沒用！",
			CorrectBanner: "答對了！",
			WrongBanner:   "答錯了！",
		},
		Terminal: TerminalConfig{
			CellW:     10,
			CellH:     20,
			HoldTicks: 8,
		},
	}
}
