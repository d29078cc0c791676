package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/quizwalk/internal/config"
	"github.com/vovakirdan/quizwalk/internal/core"
	"github.com/vovakirdan/quizwalk/internal/platform/gfx"
)

var (
	flagFont     string
	flagFontSize float64
	flagWidth    int
	flagHeight   int
)

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Play in a desktop window",
	Long: `Start the quiz walk in a resizable window.

The built-in debug font only covers ASCII. Pass --font with a TrueType or
OpenType font that has CJK glyphs to read Chinese question banks.

Controls:
  Arrows/WASD  - Walk
  1-9          - Answer
  H            - Ask for a hint
  X/Esc        - Close the question
  Mouse        - Click the hint button or the close mark
  R            - Play again (after everyone is satisfied)
  Q            - Quit

Examples:
  quizwalk window
  quizwalk window --font ./NotoSansSC-Regular.otf --font-size 20
  quizwalk window --width 1280 --height 720`,
	Args: cobra.NoArgs,
	Run:  runWindow,
}

func init() {
	def := gfx.DefaultOptions()
	windowCmd.Flags().StringVar(&flagFont, "font", "", "TrueType/OpenType font file for non-ASCII text")
	windowCmd.Flags().Float64Var(&flagFontSize, "font-size", def.FontSize, "Font size in pixels")
	windowCmd.Flags().IntVar(&flagWidth, "width", def.Width, "Initial window width")
	windowCmd.Flags().IntVar(&flagHeight, "height", def.Height, "Initial window height")
}

func runWindow(_ *cobra.Command, _ []string) {
	logger, closer, err := newLogger()
	if err != nil {
		fatalf("%v", err)
	}
	defer closer.Close()

	cfg, err := config.Load(flagConfig)
	if err != nil {
		fatalf("%v", err)
	}

	bank, err := resolveBank(flagBank)
	if err != nil {
		fatalf("%v", err)
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	opts := gfx.DefaultOptions()
	opts.Width, opts.Height = flagWidth, flagHeight
	opts.FontPath, opts.FontSize = flagFont, flagFontSize

	rt := core.RuntimeConfig{
		CanvasW:  float64(opts.Width),
		CanvasH:  float64(opts.Height),
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	w, err := newWorld(cfg, bank, rt, logger)
	if err != nil {
		fatalf("%v", err)
	}

	logger.Info("run started", "bank", bank.ID, "frontend", "window")
	stats, err := gfx.Run(w, store, logger, rt, opts)
	if err != nil {
		fatalf("%v", err)
	}
	logger.Info("run ended", "bank", bank.ID, "correct", stats.Correct, "wrong", stats.Wrong, "completed", stats.Completed)
}
