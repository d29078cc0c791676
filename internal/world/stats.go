package world

import (
	"time"

	"github.com/vovakirdan/quizwalk/internal/quiz"
)

// AnswerRecord is one answered question.
type AnswerRecord struct {
	QuestionerID string
	Question     string
	Choice       int
	Correct      bool
	At           time.Duration // Offset from the run start
}

// RunStats summarises a run for the history log.
type RunStats struct {
	BankID      string
	StartedAt   time.Duration
	Duration    time.Duration
	Engagements int
	Correct     int
	Wrong       int
	Dismissed   int
	HintsUsed   int
	Satisfied   int
	Completed   bool
	Answers     []AnswerRecord
}

func (s *RunStats) record(questionerID string, q *quiz.Question, choice int, correct bool, now time.Duration) {
	if correct {
		s.Correct++
	} else {
		s.Wrong++
	}
	s.Answers = append(s.Answers, AnswerRecord{
		QuestionerID: questionerID,
		Question:     q.Text,
		Choice:       choice,
		Correct:      correct,
		At:           now - s.StartedAt,
	})
}

// Accuracy returns the share of correct answers, or 0 without answers.
func (s RunStats) Accuracy() float64 {
	total := s.Correct + s.Wrong
	if total == 0 {
		return 0
	}
	return float64(s.Correct) / float64(total)
}
