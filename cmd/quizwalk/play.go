package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/quizwalk/internal/config"
	"github.com/vovakirdan/quizwalk/internal/core"
	"github.com/vovakirdan/quizwalk/internal/platform/tui"
	"github.com/vovakirdan/quizwalk/internal/quiz"
	"github.com/vovakirdan/quizwalk/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start the quiz walk in the terminal.

Without --bank a menu lists the built-in bank and every bank found in
~/.quizwalk/banks. After a run you return to the menu.

Controls:
  Arrows/WASD  - Walk
  1-9          - Answer
  H            - Ask for a hint
  X/Esc        - Close the question
  Mouse        - Click the hint button or the close mark
  R            - Play again (after everyone is satisfied)
  Ctrl+S       - Save a screenshot
  Q/Ctrl+C     - Quit

Examples:
  quizwalk play
  quizwalk play --bank animals
  quizwalk play --bank ./my-bank.yaml --seed 42`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, _ []string) {
	logger, closer, err := newLogger()
	if err != nil {
		fatalf("%v", err)
	}
	defer closer.Close()

	cfg, err := config.Load(flagConfig)
	if err != nil {
		fatalf("%v", err)
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	// Get terminal size
	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	if flagBank != "" {
		bank, err := resolveBank(flagBank)
		if err != nil {
			fatalf("%v", err)
		}
		if err := playBank(cfg, bank, store, logger, width, height); err != nil {
			fatalf("%v", err)
		}
		return
	}

	banks, err := quiz.Available()
	if err != nil {
		logger.Warn("some banks could not be loaded", "err", err)
	}
	if len(banks) == 0 {
		fatalf("no question banks available")
	}

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(banks, store)
		if err != nil {
			fatalf("%v", err)
		}
		if menuResult.Width > 0 && menuResult.Height > 0 {
			width, height = menuResult.Width, menuResult.Height
		}

		switch {
		case menuResult.Quit:
			return
		case menuResult.WantsHistory:
			goBack, err := tui.RunHistory(store, historyBanksOf(banks), width, height)
			if err != nil {
				fatalf("%v", err)
			}
			if !goBack {
				return
			}
		case menuResult.Bank != nil:
			if err := playBank(cfg, menuResult.Bank, store, logger, width, height); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				logger.Error("run failed", "bank", menuResult.Bank.ID, "err", err)
			}
		}
	}
}

// playBank runs one terminal session on bank.
func playBank(cfg config.Config, bank *quiz.Bank, store *storage.Store, logger *log.Logger, width, height int) error {
	rt := core.RuntimeConfig{
		CanvasW:  float64(width) * cfg.Terminal.CellW,
		CanvasH:  float64(height-2) * cfg.Terminal.CellH,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	w, err := newWorld(cfg, bank, rt, logger)
	if err != nil {
		return err
	}

	logger.Info("run started", "bank", bank.ID, "frontend", "terminal")
	stats, err := tui.Run(w, store, logger, rt)
	if err != nil {
		return err
	}
	logger.Info("run ended", "bank", bank.ID, "correct", stats.Correct, "wrong", stats.Wrong, "completed", stats.Completed)
	return nil
}

func historyBanksOf(banks []*quiz.Bank) []tui.HistoryBank {
	out := make([]tui.HistoryBank, 0, len(banks))
	for _, b := range banks {
		out = append(out, tui.HistoryBank{ID: b.ID, Title: b.Title})
	}
	return out
}
