package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/quizwalk/internal/config"
	"github.com/vovakirdan/quizwalk/internal/quiz"
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "List or validate question banks",
}

var questionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available question banks",
	Long:  `Shows the built-in bank and every bank found in ~/.quizwalk/banks.`,
	Args:  cobra.NoArgs,
	Run:   runQuestionsList,
}

var questionsCheckCmd = &cobra.Command{
	Use:   "check <file>...",
	Short: "Validate question bank files",
	Long: `Parses each file and checks every question: one to nine options, an
answer that names one of them and fits the answer keys (rules.max_choice), a
hint, and enough questions for one questioner to be satisfied.

Examples:
  quizwalk questions check ./my-bank.yaml
  quizwalk questions check ~/.quizwalk/banks/*.yaml`,
	Args: cobra.MinimumNArgs(1),
	Run:  runQuestionsCheck,
}

func init() {
	questionsCmd.AddCommand(questionsListCmd)
	questionsCmd.AddCommand(questionsCheckCmd)
}

func runQuestionsList(_ *cobra.Command, _ []string) {
	banks, err := quiz.Available()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	if len(banks) == 0 {
		fmt.Println("No question banks available.")
		return
	}

	fmt.Println("Available banks:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, b := range banks {
		if len(b.ID) > maxIDLen {
			maxIDLen = len(b.ID)
		}
	}

	// Print header
	fmt.Printf("  %-*s  %-9s  %s\n", maxIDLen, "ID", "Questions", "Title")
	fmt.Printf("  %-*s  %-9s  %s\n", maxIDLen, "--", "---------", "-----")

	for _, b := range banks {
		fmt.Printf("  %-*s  %-9d  %s\n", maxIDLen, b.ID, len(b.Questions), b.Title)
	}

	fmt.Println()
	fmt.Println("Run 'quizwalk play --bank <id>' to play a bank.")
	if dir := quiz.UserBankDir(); dir != "" {
		fmt.Printf("Drop your own YAML banks into %s.\n", dir)
	}
}

func runQuestionsCheck(_ *cobra.Command, args []string) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fatalf("%v", err)
	}

	failed := 0
	for _, path := range args {
		bank, err := quiz.LoadFile(path)
		if err == nil {
			err = bank.Validate(cfg.Rules.SatisfactionCap, cfg.Rules.MaxChoice)
		}
		if err != nil {
			failed++
			fmt.Printf("FAIL  %s: %v\n", path, err)
			continue
		}
		fmt.Printf("ok    %s (%s, %d questions)\n", path, bank.ID, len(bank.Questions))
	}

	if failed > 0 {
		os.Exit(1)
	}
}
