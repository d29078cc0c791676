package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/quizwalk/internal/config"
	"github.com/vovakirdan/quizwalk/internal/core"
	"github.com/vovakirdan/quizwalk/internal/quiz"
	"github.com/vovakirdan/quizwalk/internal/storage"
	"github.com/vovakirdan/quizwalk/internal/world"
)

// newLogger opens ~/.quizwalk/quizwalk.log. The game owns the terminal while
// running, so nothing is logged to stderr. The returned closer is never nil.
func newLogger() (*log.Logger, io.Closer, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	var out io.Writer = io.Discard
	var closer io.Closer = io.NopCloser(nil)
	if home, homeErr := os.UserHomeDir(); homeErr == nil {
		dir := filepath.Join(home, ".quizwalk")
		if mkErr := os.MkdirAll(dir, 0o755); mkErr == nil {
			f, openErr := os.OpenFile(filepath.Join(dir, "quizwalk.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if openErr == nil {
				out, closer = f, f
			}
		}
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "quizwalk",
		Level:           level,
	})
	return logger, closer, nil
}

// openStore opens the history database. Failure is not fatal: the game runs
// without a history.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open history database: %v\n", err)
		logger.Warn("history disabled", "path", flagDBPath, "err", err)
		return nil
	}
	return store
}

// resolveBank loads the bank named by --bank: a YAML path, or the ID of one
// of the available banks. An empty value uses the default search order.
func resolveBank(ref string) (*quiz.Bank, error) {
	if ref == "" {
		return quiz.Load("")
	}

	ext := strings.ToLower(filepath.Ext(ref))
	if ext == ".yaml" || ext == ".yml" {
		return quiz.LoadFile(ref)
	}

	banks, err := quiz.Available()
	if err != nil && len(banks) == 0 {
		return nil, err
	}
	for _, b := range banks {
		if b.ID == ref {
			return b, nil
		}
	}
	return nil, fmt.Errorf("unknown bank %q (run 'quizwalk questions list')", ref)
}

// newWorld builds a world for bank with the loaded config.
func newWorld(cfg config.Config, bank *quiz.Bank, rt core.RuntimeConfig, logger *log.Logger) (*world.World, error) {
	w, err := world.New(cfg, bank, rt)
	if err != nil {
		return nil, err
	}
	w.SetLogger(logger.WithPrefix("world"))
	return w, nil
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
