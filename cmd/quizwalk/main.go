// quizwalk is a walk-around quiz game: move the player into a questioner and
// answer its multiple-choice questions until everyone is satisfied.
//
// Usage:
//
//	quizwalk play                  - Play in the terminal (bank picker when no --bank)
//	quizwalk window                - Play in a desktop window
//	quizwalk history               - Show logged runs
//	quizwalk questions list        - List available question banks
//	quizwalk questions check <f>   - Validate a question bank file
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible question order
//	--db <path>         - Set database path (default: ~/.quizwalk/history.db)
//	--config <path>     - Game tuning YAML
//	--bank <id|path>    - Question bank to play
//	--log-level <lvl>   - debug, info, warn or error (default: info)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagBank     string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "quizwalk",
	Short: "Quiz Walk - walk up to people and answer their questions",
	Long: `Quiz Walk is a small quiz game. Walk the player into a questioner to
be asked a multiple-choice question. Answer enough of them correctly and the
questioner is satisfied. A hint-giver in the corner helps when you are stuck.

Available commands:
  play       - Play in the terminal
  window     - Play in a desktop window
  history    - View logged runs
  questions  - List or validate question banks

Examples:
  quizwalk play
  quizwalk play --bank animals
  quizwalk window --font ./NotoSansSC-Regular.otf
  quizwalk history --plain
  quizwalk questions check ./my-bank.yaml`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.quizwalk/history.db", "Path to run history database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagBank, "bank", "", "Question bank ID or YAML file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(questionsCmd)
}
