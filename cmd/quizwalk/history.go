package main

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/quizwalk/internal/platform/tui"
	"github.com/vovakirdan/quizwalk/internal/quiz"
	"github.com/vovakirdan/quizwalk/internal/storage"
)

var (
	flagPlain   bool
	flagLimit   int
	flagAnswers bool
	flagClear   bool
)

var historyCmd = &cobra.Command{
	Use:   "history [bank]",
	Short: "Show logged runs",
	Long: `Display the run history. Without --plain an interactive table is shown;
Left/Right switch between banks.

Examples:
  quizwalk history
  quizwalk history --plain
  quizwalk history animals --plain --answers
  quizwalk history animals --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print runs instead of opening the table")
	historyCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to print with --plain")
	historyCmd.Flags().BoolVar(&flagAnswers, "answers", false, "Include each run's answers with --plain")
	historyCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the logged runs of a bank (all banks when none is given)")
}

func runHistory(_ *cobra.Command, args []string) {
	bankID := ""
	if len(args) == 1 {
		bankID = args[0]
	}

	// Open history storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fatalf("opening history database: %v", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearRuns(bankID); err != nil {
			fatalf("%v", err)
		}
		fmt.Println("History cleared.")
		return
	}

	if !flagPlain {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		banks, _ := quiz.Available()
		if _, err := tui.RunHistory(store, historyBanksOf(banks), width, height); err != nil {
			fatalf("%v", err)
		}
		return
	}

	if bankID == "" {
		printAllBanks(store)
		return
	}
	printBankRuns(store, bankID)
}

func printAllBanks(store *storage.Store) {
	all, err := store.GetAllBankStats()
	if err != nil {
		fatalf("retrieving history: %v", err)
	}
	if len(all) == 0 {
		fmt.Println("No runs logged yet.")
		fmt.Println()
		fmt.Println("Play 'quizwalk play' to log the first one!")
		return
	}

	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	// Print header
	fmt.Printf("  %-16s  %-5s  %-5s  %-5s  %-6s  %s\n", "Bank", "Runs", "Done", "Best", "Avg", "Last played")
	fmt.Printf("  %-16s  %-5s  %-5s  %-5s  %-6s  %s\n", "----", "----", "----", "----", "---", "-----------")

	for _, id := range ids {
		s := all[id]
		fmt.Printf("  %-16s  %-5d  %-5d  %-5d  %-6.1f  %s\n",
			id, s.Runs, s.Completed, s.BestCorrect, s.AvgCorrect, s.LastPlayed.Format("2006-01-02 15:04"))
	}
}

func printBankRuns(store *storage.Store, bankID string) {
	runs, err := store.RecentRuns(bankID, flagLimit)
	if err != nil {
		fatalf("retrieving runs: %v", err)
	}

	fmt.Printf("Run history - %s\n", bankID)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs logged yet.")
		fmt.Println()
		fmt.Printf("Play 'quizwalk play --bank %s' to log the first one!\n", bankID)
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-7s  %-5s  %-5s  %-8s  %s\n", "#", "Correct", "Wrong", "Done", "Time", "Date")
	fmt.Printf("  %-4s  %-7s  %-5s  %-5s  %-8s  %s\n", "-", "-------", "-----", "----", "----", "----")

	for i, r := range runs {
		done := "no"
		if r.Completed {
			done = "yes"
		}
		fmt.Printf("  %-4d  %-7d  %-5d  %-5s  %-8s  %s\n",
			i+1, r.Correct, r.Wrong, done, r.Duration.Round(time.Second), r.CreatedAt.Format("2006-01-02 15:04"))

		if flagAnswers {
			answers, err := store.RunAnswers(r.ID)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: answers of run %d: %v\n", r.ID, err)
				continue
			}
			for _, a := range answers {
				mark := "x"
				if a.Correct {
					mark = "v"
				}
				fmt.Printf("        [%s] %s: %s -> %d\n", mark, a.QuestionerID, a.Question, a.Choice)
			}
		}
	}

	// Show best run
	fmt.Println()
	best, err := store.BestRun(bankID)
	switch {
	case errors.Is(err, storage.ErrNoRuns):
	case err != nil:
		fmt.Fprintf(os.Stderr, "Warning: best run: %v\n", err)
	default:
		fmt.Printf("Best: %d correct in %s\n", best.Correct, best.Duration.Round(time.Second))
	}
}
