// Package quiz holds the question bank and the shared pool of questions that
// have not been answered correctly yet.
package quiz

import (
	"errors"
	"fmt"
	"strings"
)

// MaxOptions is the largest option count a question may have; answers are
// chosen with a single digit key.
const MaxOptions = 9

var (
	// ErrEmptyBank is returned when a bank has no questions.
	ErrEmptyBank = errors.New("quiz: bank has no questions")
	// ErrBankTooSmall is returned when a bank cannot cover a full engagement.
	ErrBankTooSmall = errors.New("quiz: bank too small")
	// ErrAnswerUnreachable is returned when a correct option has no answer key.
	ErrAnswerUnreachable = errors.New("quiz: answer beyond the answer keys")
)

// Question is a single multiple-choice item. Immutable once loaded.
type Question struct {
	Text    string
	Options []string
	Answer  int // 1-based index into Options
	Hint    string
}

// IsCorrect reports whether choice (1-based) is the right option.
func (q *Question) IsCorrect(choice int) bool {
	return choice == q.Answer
}

// Validate checks that the question is answerable.
func (q *Question) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return errors.New("empty question text")
	}
	if len(q.Options) == 0 {
		return errors.New("no options")
	}
	if len(q.Options) > MaxOptions {
		return fmt.Errorf("%d options, at most %d allowed", len(q.Options), MaxOptions)
	}
	if q.Answer < 1 || q.Answer > len(q.Options) {
		return fmt.Errorf("answer %d out of range 1..%d", q.Answer, len(q.Options))
	}
	if strings.TrimSpace(q.Hint) == "" {
		return errors.New("empty hint")
	}
	return nil
}

// Bank is a named, ordered set of questions.
type Bank struct {
	ID        string
	Title     string
	Questions []*Question
	FilePath  string // Empty for the embedded bank
}

// Validate checks every question and the bank's capacity.
// minSize is the number of questions one questioner can consume before it is
// satisfied; a smaller bank could leave an engagement without a next question.
// maxChoice is the highest answer key the game accepts; a correct option past
// it could never be chosen.
func (b *Bank) Validate(minSize, maxChoice int) error {
	if len(b.Questions) == 0 {
		return fmt.Errorf("bank %q: %w", b.ID, ErrEmptyBank)
	}
	for i, q := range b.Questions {
		if err := q.Validate(); err != nil {
			return fmt.Errorf("bank %q: question %d: %w", b.ID, i+1, err)
		}
		if q.Answer > maxChoice {
			return fmt.Errorf("bank %q: question %d: answer %d, keys go up to %d: %w",
				b.ID, i+1, q.Answer, maxChoice, ErrAnswerUnreachable)
		}
	}
	if len(b.Questions) < minSize {
		return fmt.Errorf("bank %q: %d questions, need at least %d: %w",
			b.ID, len(b.Questions), minSize, ErrBankTooSmall)
	}
	return nil
}
