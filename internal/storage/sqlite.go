// Package storage keeps a SQLite log of finished runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
//
// The log is write-only from the game's point of view: every run starts from
// a fresh world, and history is only read back by the history screens.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/quizwalk/internal/world"
)

// ErrNoRuns is returned when a query needs at least one logged run.
var ErrNoRuns = errors.New("storage: no runs recorded")

const timeLayout = "2006-01-02 15:04:05"

// Store manages the SQLite database connection for the run log.
type Store struct {
	db *sql.DB
}

// Run is one logged play session.
type Run struct {
	ID        int64
	BankID    string
	Correct   int
	Wrong     int
	Dismissed int
	HintsUsed int
	Satisfied int
	Duration  time.Duration
	Completed bool
	CreatedAt time.Time
	Answers   []Answer
}

// Answer is one answered question within a run.
type Answer struct {
	QuestionerID string
	Question     string
	Choice       int
	Correct      bool
	At           time.Duration
}

// Accuracy returns the share of correct answers, or 0 without answers.
func (r Run) Accuracy() float64 {
	total := r.Correct + r.Wrong
	if total == 0 {
		return 0
	}
	return float64(r.Correct) / float64(total)
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			bank_id TEXT NOT NULL,
			correct INTEGER NOT NULL DEFAULT 0,
			wrong INTEGER NOT NULL DEFAULT 0,
			dismissed INTEGER NOT NULL DEFAULT 0,
			hints_used INTEGER NOT NULL DEFAULT 0,
			satisfied INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			completed INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_bank_id ON runs(bank_id);

		CREATE TABLE IF NOT EXISTS answers (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			questioner_id TEXT NOT NULL,
			question TEXT NOT NULL,
			choice INTEGER NOT NULL,
			correct INTEGER NOT NULL,
			at_ms INTEGER NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_answers_run_id ON answers(run_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a run and its answers in one transaction.
// Returns the ID of the inserted run.
func (s *Store) SaveRun(r Run) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT INTO runs
		 (bank_id, correct, wrong, dismissed, hints_used, satisfied, duration_ms, completed)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.BankID, r.Correct, r.Wrong, r.Dismissed, r.HintsUsed, r.Satisfied,
		r.Duration.Milliseconds(), r.Completed,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	for _, a := range r.Answers {
		_, err := tx.Exec(
			`INSERT INTO answers (run_id, questioner_id, question, choice, correct, at_ms)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			id, a.QuestionerID, a.Question, a.Choice, a.Correct, a.At.Milliseconds(),
		)
		if err != nil {
			return 0, fmt.Errorf("storage: cannot save answer: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit run: %w", err)
	}
	return id, nil
}

// SaveStats records a world's run statistics.
func (s *Store) SaveStats(stats world.RunStats) (int64, error) {
	return s.SaveRun(RunFromStats(stats))
}

// RunFromStats converts world statistics into a loggable run.
func RunFromStats(stats world.RunStats) Run {
	r := Run{
		BankID:    stats.BankID,
		Correct:   stats.Correct,
		Wrong:     stats.Wrong,
		Dismissed: stats.Dismissed,
		HintsUsed: stats.HintsUsed,
		Satisfied: stats.Satisfied,
		Duration:  stats.Duration,
		Completed: stats.Completed,
	}
	for _, a := range stats.Answers {
		r.Answers = append(r.Answers, Answer{
			QuestionerID: a.QuestionerID,
			Question:     a.Question,
			Choice:       a.Choice,
			Correct:      a.Correct,
			At:           a.At,
		})
	}
	return r
}

const runColumns = `id, bank_id, correct, wrong, dismissed, hints_used, satisfied,
	duration_ms, completed, created_at`

// RecentRuns retrieves the most recent runs, newest first. An empty bankID
// matches every bank. Answers are not loaded; use RunAnswers.
func (s *Store) RecentRuns(bankID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE ? = '' OR bank_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		bankID, bankID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// BestRun returns the run with the most correct answers for a bank, the
// quicker one on ties. Returns ErrNoRuns if the bank was never played.
func (s *Store) BestRun(bankID string) (*Run, error) {
	row := s.db.QueryRow(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE bank_id = ?
		 ORDER BY correct DESC, duration_ms ASC
		 LIMIT 1`,
		bankID,
	)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoRuns
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// RunAnswers loads the answers of one run in the order they were given.
func (s *Store) RunAnswers(runID int64) ([]Answer, error) {
	rows, err := s.db.Query(
		`SELECT questioner_id, question, choice, correct, at_ms
		 FROM answers
		 WHERE run_id = ?
		 ORDER BY id`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query answers: %w", err)
	}
	defer rows.Close()

	var answers []Answer
	for rows.Next() {
		var a Answer
		var atMS int64
		if err := rows.Scan(&a.QuestionerID, &a.Question, &a.Choice, &a.Correct, &atMS); err != nil {
			return nil, fmt.Errorf("storage: cannot scan answer: %w", err)
		}
		a.At = time.Duration(atMS) * time.Millisecond
		answers = append(answers, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return answers, nil
}

// ClearRuns deletes every run of a bank, answers included.
func (s *Store) ClearRuns(bankID string) error {
	_, err := s.db.Exec(
		"DELETE FROM answers WHERE run_id IN (SELECT id FROM runs WHERE bank_id = ?)",
		bankID,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot clear answers: %w", err)
	}
	if _, err := s.db.Exec("DELETE FROM runs WHERE bank_id = ?", bankID); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// BankStats contains aggregated statistics for a question bank.
type BankStats struct {
	BankID      string
	Runs        int
	Completed   int
	BestCorrect int
	AvgCorrect  float64
	TotalWrong  int64
	LastPlayed  time.Time
}

// GetBankStats retrieves aggregated statistics for a bank.
// Returns ErrNoRuns if the bank was never played.
func (s *Store) GetBankStats(bankID string) (*BankStats, error) {
	stats := &BankStats{BankID: bankID}
	var lastPlayed any

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(completed), 0), COALESCE(MAX(correct), 0),
		        COALESCE(AVG(correct), 0), COALESCE(SUM(wrong), 0), MAX(created_at)
		 FROM runs WHERE bank_id = ?`,
		bankID,
	).Scan(&stats.Runs, &stats.Completed, &stats.BestCorrect, &stats.AvgCorrect, &stats.TotalWrong, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get bank stats: %w", err)
	}
	if stats.Runs == 0 {
		return nil, ErrNoRuns
	}

	stats.LastPlayed = parseTime(lastPlayed)
	return stats, nil
}

// GetAllBankStats retrieves statistics for every bank that has been played.
func (s *Store) GetAllBankStats() (map[string]*BankStats, error) {
	rows, err := s.db.Query(
		`SELECT bank_id, COUNT(*), SUM(completed), MAX(correct), AVG(correct), SUM(wrong), MAX(created_at)
		 FROM runs
		 GROUP BY bank_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all bank stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*BankStats)
	for rows.Next() {
		var b BankStats
		var lastPlayed any
		if err := rows.Scan(&b.BankID, &b.Runs, &b.Completed, &b.BestCorrect, &b.AvgCorrect, &b.TotalWrong, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		b.LastPlayed = parseTime(lastPlayed)
		stats[b.BankID] = &b
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var r Run
	var durationMS int64
	var createdAt any

	err := row.Scan(
		&r.ID,
		&r.BankID,
		&r.Correct,
		&r.Wrong,
		&r.Dismissed,
		&r.HintsUsed,
		&r.Satisfied,
		&durationMS,
		&r.Completed,
		&createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return r, err
	}
	if err != nil {
		return r, fmt.Errorf("storage: cannot scan run: %w", err)
	}

	r.Duration = time.Duration(durationMS) * time.Millisecond
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(timeLayout, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
