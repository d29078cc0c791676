package world

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/vovakirdan/quizwalk/internal/config"
	"github.com/vovakirdan/quizwalk/internal/core"
	"github.com/vovakirdan/quizwalk/internal/quiz"
)

func testBank(n int) *quiz.Bank {
	b := &quiz.Bank{ID: "test", Title: "Test"}
	for i := 0; i < n; i++ {
		b.Questions = append(b.Questions, &quiz.Question{
			Text:    fmt.Sprintf("Q%d", i),
			Options: []string{"a", "b", "c"},
			Answer:  1 + i%3,
			Hint:    fmt.Sprintf("hint %d", i),
		})
	}
	return b
}

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{CanvasW: 800, CanvasH: 480, TickRate: 60, Seed: 42}
}

func newTestWorld(t *testing.T, questions int) (*World, *core.ManualClock) {
	t.Helper()
	w, err := New(config.Default(), testBank(questions), testRuntime())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	clk := core.NewManualClock(10 * time.Second)
	w.SetClock(clk)
	return w, clk
}

// engageAt teleports the player onto questioner i and steps once.
func engageAt(t *testing.T, w *World, i int) *Questioner {
	t.Helper()
	q := w.questioners[i]
	w.player.Pos = q.Pos
	w.Step(core.NewInputFrame())
	if w.Phase() != PhaseAsking {
		t.Fatalf("expected Asking after touching %s, got %s", q.ID, w.Phase())
	}
	if w.Active() != q {
		t.Fatalf("expected %s to be active", q.ID)
	}
	return q
}

func wrongChoice(q *quiz.Question) int {
	return q.Answer%3 + 1
}

func idle(w *World) {
	w.Step(core.NewInputFrame())
}

func TestNewRejectsSmallBank(t *testing.T) {
	_, err := New(config.Default(), testBank(1), testRuntime())
	if !errors.Is(err, quiz.ErrBankTooSmall) {
		t.Errorf("expected ErrBankTooSmall, got %v", err)
	}

	_, err = New(config.Default(), testBank(0), testRuntime())
	if !errors.Is(err, quiz.ErrEmptyBank) {
		t.Errorf("expected ErrEmptyBank, got %v", err)
	}
}

func TestNewRejectsUnanswerableQuestion(t *testing.T) {
	b := testBank(2)
	for _, q := range b.Questions {
		q.Options = []string{"a", "b", "c", "d"}
		q.Answer = 4
	}

	// Digit keys stop at 3 by default, so option 4 can never be picked.
	_, err := New(config.Default(), b, testRuntime())
	if !errors.Is(err, quiz.ErrAnswerUnreachable) {
		t.Errorf("expected ErrAnswerUnreachable, got %v", err)
	}

	cfg := config.Default()
	cfg.Rules.MaxChoice = 4
	if _, err := New(cfg, b, testRuntime()); err != nil {
		t.Errorf("four answer keys should accept option 4: %v", err)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Rules.SatisfactionCap = 0
	if _, err := New(cfg, testBank(4), testRuntime()); err == nil {
		t.Error("expected error for invalid config")
	}
}

func TestResetSpawn(t *testing.T) {
	w, _ := newTestWorld(t, 4)

	if w.Phase() != PhaseMoving {
		t.Errorf("expected Moving, got %s", w.Phase())
	}
	if w.player.Pos != (core.Point{X: 400, Y: 240}) {
		t.Errorf("expected player at center, got %+v", w.player.Pos)
	}
	if w.player.Dir != DirLeft {
		t.Errorf("expected player to face left")
	}

	want := map[string]core.Point{
		"q1": {X: 160, Y: 96},
		"q2": {X: 640, Y: 96},
		"q3": {X: 400, Y: 384},
	}
	for _, q := range w.questioners {
		if q.Pos != want[q.ID] {
			t.Errorf("%s at %+v, want %+v", q.ID, q.Pos, want[q.ID])
		}
	}
	if w.hintGiver.Pos != (core.Point{X: 150, Y: 400}) {
		t.Errorf("hint-giver at %+v", w.hintGiver.Pos)
	}
	if w.Remaining() != 4 {
		t.Errorf("expected 4 questions in pool, got %d", w.Remaining())
	}
}

func TestNoEngagementAtSpawn(t *testing.T) {
	w, _ := newTestWorld(t, 4)
	for i := 0; i < 30; i++ {
		idle(w)
	}
	if w.Phase() != PhaseMoving || w.Active() != nil {
		t.Errorf("expected no engagement from the spawn point")
	}
}

func TestMovementAndClamp(t *testing.T) {
	w, _ := newTestWorld(t, 4)

	in := core.NewInputFrame()
	in.Hold(core.ActionRight, true)
	w.Step(in)
	if w.player.Pos.X != 403 {
		t.Errorf("expected x=403 after one step right, got %v", w.player.Pos.X)
	}
	if w.player.Dir != DirRight {
		t.Errorf("expected player to face right")
	}

	// Walk into the top edge, away from the questioners.
	w.player.Pos = core.Point{X: 400, Y: 60}
	in = core.NewInputFrame()
	in.Hold(core.ActionUp, true)
	for i := 0; i < 50; i++ {
		w.Step(in)
	}
	fw, fh := w.playerFootprint()
	if w.player.Pos.Y != fh/2 {
		t.Errorf("expected y clamped to %v, got %v", fh/2, w.player.Pos.Y)
	}
	if fw != w.cfg.Player.Move.W*w.cfg.Player.Scale {
		t.Errorf("expected the move sheet footprint while walking")
	}
}

func TestScenarioSatisfy(t *testing.T) {
	w, clk := newTestWorld(t, 8)
	q := engageAt(t, w, 0)

	first := w.Question()
	if !w.Answer(first.Answer) {
		t.Fatal("answer rejected")
	}
	if w.Phase() != PhaseAnswered {
		t.Fatalf("expected Answered, got %s", w.Phase())
	}
	if w.banner != "答對了！" {
		t.Errorf("unexpected banner %q", w.banner)
	}
	if q.CorrectAnswers != 1 || q.Reaction != ReactionCorrect || q.ReactionText == "" {
		t.Errorf("unexpected questioner state %+v", q)
	}
	if w.pool.Contains(first) || w.Remaining() != 7 {
		t.Errorf("expected answered question to leave the pool")
	}

	// Deadline is strict: exactly at the deadline nothing changes.
	clk.Advance(1500 * time.Millisecond)
	idle(w)
	if w.Phase() != PhaseAnswered {
		t.Fatalf("expected Answered at the deadline, got %s", w.Phase())
	}

	clk.Advance(time.Millisecond)
	idle(w)
	if w.Phase() != PhaseAsking {
		t.Fatalf("expected Asking with a new question, got %s", w.Phase())
	}
	second := w.Question()
	if second == first {
		t.Errorf("expected a different question")
	}
	if q.Reaction != ReactionNone || w.player.Feedback != FeedbackNone {
		t.Errorf("expected reactions cleared on re-ask")
	}

	w.Answer(second.Answer)
	clk.Advance(1501 * time.Millisecond)
	idle(w)

	if w.Phase() != PhaseMoving {
		t.Fatalf("expected Moving after satisfaction, got %s", w.Phase())
	}
	if w.Active() != nil || w.Question() != nil {
		t.Errorf("expected session cleared")
	}
	if q.CorrectAnswers != 2 {
		t.Errorf("expected 2 correct answers, got %d", q.CorrectAnswers)
	}
	if w.Remaining() != 6 {
		t.Errorf("expected 6 questions left, got %d", w.Remaining())
	}

	// An exhausted questioner never engages again.
	clk.Advance(time.Minute)
	for i := 0; i < 100; i++ {
		idle(w)
		if w.Phase() != PhaseMoving {
			t.Fatalf("exhausted questioner re-engaged")
		}
	}
	if w.Satisfied() != 1 {
		t.Errorf("expected 1 satisfied questioner, got %d", w.Satisfied())
	}
}

func TestScenarioWrongAnswer(t *testing.T) {
	w, clk := newTestWorld(t, 8)
	q := engageAt(t, w, 2)
	question := w.Question()

	w.Answer(wrongChoice(question))
	if w.Phase() != PhaseAnswered {
		t.Fatalf("expected Answered, got %s", w.Phase())
	}
	if w.banner != "答錯了！" || w.player.Feedback != FeedbackWrong {
		t.Errorf("unexpected feedback %q %s", w.banner, w.player.Feedback)
	}
	if q.CorrectAnswers != 0 || w.Remaining() != 8 {
		t.Errorf("wrong answer must not change progress")
	}

	clk.Advance(3001 * time.Millisecond)
	idle(w)
	if w.Phase() != PhaseAsking {
		t.Fatalf("expected Asking, got %s", w.Phase())
	}
	if w.Question() != question {
		t.Errorf("expected the same question to be re-posed")
	}
	if !w.HintVisible() {
		t.Errorf("expected the hint to be armed after a wrong answer")
	}
	if s := w.Snapshot(); s.Hint == nil || s.Hint.Text != question.Hint {
		t.Errorf("expected hint overlay with %q", question.Hint)
	}

	clk.Advance(2 * time.Second)
	if w.HintVisible() {
		t.Errorf("expected the hint to expire")
	}
}

func TestScenarioDismiss(t *testing.T) {
	w, clk := newTestWorld(t, 8)
	q := engageAt(t, w, 1)

	in := core.NewInputFrame()
	in.Click(w.layout.Close.Center)
	w.Step(in)

	if w.Phase() != PhaseAnswered || w.outcome != OutcomeDismissed {
		t.Fatalf("expected dismissed Answered, got %s/%s", w.Phase(), w.outcome)
	}
	if q.ReactionText != "不敢回答嗎？真沒用！" || q.Reaction != ReactionWrong {
		t.Errorf("expected taunt, got %q", q.ReactionText)
	}
	if w.banner != "" || w.player.Feedback != FeedbackNone {
		t.Errorf("expected no banner and no player feedback")
	}
	if w.player.Variant != VariantWrong {
		t.Errorf("expected wrong variant while dismissed, got %s", w.player.Variant)
	}

	clk.Advance(2001 * time.Millisecond)
	idle(w)
	if w.Phase() != PhaseMoving {
		t.Fatalf("expected Moving, got %s", w.Phase())
	}
	exitAt := clk.Now()
	if q.CooldownUntil != exitAt+3*time.Second {
		t.Errorf("expected cooldown until %v, got %v", exitAt+3*time.Second, q.CooldownUntil)
	}
	if q.Reaction != ReactionNone {
		t.Errorf("expected reaction cleared on exit")
	}

	// The player is still standing on the questioner.
	clk.Advance(2999 * time.Millisecond)
	idle(w)
	if w.Phase() != PhaseMoving {
		t.Fatalf("engaged during cooldown")
	}
	clk.Advance(time.Millisecond)
	idle(w)
	if w.Phase() != PhaseAsking || w.Active() != q {
		t.Fatalf("expected re-engagement once cooldown ends")
	}
}

func TestCooldownAfterSatisfaction(t *testing.T) {
	w, clk := newTestWorld(t, 8)
	q := engageAt(t, w, 0)
	w.Answer(w.Question().Answer)
	clk.Advance(2 * time.Second)
	idle(w)
	w.Answer(w.Question().Answer)
	clk.Advance(2 * time.Second)
	idle(w)

	if q.CooldownUntil != clk.Now()+3*time.Second {
		t.Errorf("expected cooldown on satisfied exit, got %v", q.CooldownUntil)
	}
}

func TestAnswerIgnoresOutOfRange(t *testing.T) {
	w, _ := newTestWorld(t, 4)
	engageAt(t, w, 0)

	for _, d := range []int{0, 4, 9, -1} {
		if w.Answer(d) {
			t.Errorf("digit %d should be ignored", d)
		}
	}
	if w.Phase() != PhaseAsking {
		t.Errorf("expected still Asking, got %s", w.Phase())
	}

	in := core.NewInputFrame()
	in.SetDigit(7)
	w.Step(in)
	if w.Phase() != PhaseAsking {
		t.Errorf("digit 7 should be ignored")
	}
}

func TestAnswerOutsideAsking(t *testing.T) {
	w, _ := newTestWorld(t, 4)
	if w.Answer(1) || w.Dismiss() || w.RequestHint() {
		t.Error("actions must be ignored while Moving")
	}
	if w.Click(core.Point{X: 400, Y: 240}) {
		t.Error("clicks must be ignored while Moving")
	}
}

func TestDigitViaStep(t *testing.T) {
	w, _ := newTestWorld(t, 4)
	engageAt(t, w, 0)

	in := core.NewInputFrame()
	in.SetDigit(w.Question().Answer)
	w.Step(in)
	if w.Phase() != PhaseAnswered || w.outcome != OutcomeCorrect {
		t.Errorf("expected correct Answered, got %s/%s", w.Phase(), w.outcome)
	}
	if w.player.Variant != VariantRight {
		t.Errorf("expected right variant, got %s", w.player.Variant)
	}
}

func TestClickHitTesting(t *testing.T) {
	w, clk := newTestWorld(t, 4)
	engageAt(t, w, 0)
	l := w.layout

	// Misses leave everything alone.
	if w.Click(core.Point{X: 0, Y: 0}) {
		t.Error("click outside the buttons should be ignored")
	}

	edge := core.Point{X: l.Close.Center.X + 15, Y: l.Close.Center.Y}
	if w.Click(edge) {
		t.Error("click on the close circle's rim should miss")
	}

	if !w.Click(l.Hint.Center()) {
		t.Fatal("click on hint button should hit")
	}
	if !w.HintVisible() || w.Phase() != PhaseAsking {
		t.Error("expected hint visible while still Asking")
	}
	clk.Advance(1999 * time.Millisecond)
	if !w.HintVisible() {
		t.Error("expected hint still visible before its deadline")
	}
	clk.Advance(time.Millisecond)
	if w.HintVisible() {
		t.Error("expected hint hidden at its deadline")
	}

	if !w.Click(l.Close.Center) {
		t.Fatal("click on close should hit")
	}
	if w.outcome != OutcomeDismissed {
		t.Errorf("expected dismissed, got %s", w.outcome)
	}
}

func TestDialogLayout(t *testing.T) {
	l := LayoutDialog(800, 480)

	if l.Dialog != (core.Box{X: 80, Y: 120, W: 640, H: 240}) {
		t.Errorf("unexpected dialog %+v", l.Dialog)
	}
	if l.Hint != (core.Box{X: 600, Y: 300, W: 100, H: 40}) {
		t.Errorf("unexpected hint button %+v", l.Hint)
	}
	if l.Close.Center != (core.Point{X: 695, Y: 145}) || l.Close.Diameter != 30 {
		t.Errorf("unexpected close control %+v", l.Close)
	}
}

func TestKeyboardHintAndDismiss(t *testing.T) {
	w, _ := newTestWorld(t, 4)
	engageAt(t, w, 0)

	in := core.NewInputFrame()
	in.Set(core.ActionHint)
	w.Step(in)
	if !w.HintVisible() {
		t.Error("expected hint from the keyboard")
	}

	in = core.NewInputFrame()
	in.Set(core.ActionDismiss)
	w.Step(in)
	if w.outcome != OutcomeDismissed {
		t.Errorf("expected dismissed, got %s", w.outcome)
	}
	if w.HintVisible() {
		t.Error("hint overlay is only shown while Asking")
	}
}

func TestActiveSessionInvariant(t *testing.T) {
	w, clk := newTestWorld(t, 8)

	check := func() {
		t.Helper()
		inSession := w.Phase() == PhaseAsking || w.Phase() == PhaseAnswered
		if inSession != (w.Active() != nil) {
			t.Fatalf("active=%v in phase %s", w.Active() != nil, w.Phase())
		}
		if inSession != (w.Question() != nil) {
			t.Fatalf("question=%v in phase %s", w.Question() != nil, w.Phase())
		}
		for _, q := range w.questioners {
			if q.CorrectAnswers < 0 || q.CorrectAnswers > 2 {
				t.Fatalf("%s has %d correct answers", q.ID, q.CorrectAnswers)
			}
		}
	}

	prev := w.Remaining()
	for step := 0; step < 3000; step++ {
		i := step / 40 % len(w.questioners)
		if w.Phase() == PhaseMoving {
			w.player.Pos = w.questioners[i].Pos
		}
		in := core.NewInputFrame()
		if w.Phase() == PhaseAsking {
			switch step % 3 {
			case 0:
				in.SetDigit(w.Question().Answer)
			case 1:
				in.SetDigit(wrongChoice(w.Question()))
			default:
				in.Set(core.ActionDismiss)
			}
		}
		w.Step(in)
		check()

		if w.Remaining() > prev {
			t.Fatalf("pool grew from %d to %d", prev, w.Remaining())
		}
		prev = w.Remaining()
		clk.Advance(50 * time.Millisecond)
	}
}

func TestPoolEmptyEndsEngagement(t *testing.T) {
	w, clk := newTestWorld(t, 2)

	// q1 takes one question, then the player walks away.
	engageAt(t, w, 0)
	w.Answer(w.Question().Answer)
	clk.Advance(1501 * time.Millisecond)
	idle(w)
	w.Dismiss()
	clk.Advance(2001 * time.Millisecond)
	idle(w)
	if w.Phase() != PhaseMoving {
		t.Fatalf("expected Moving, got %s", w.Phase())
	}

	// q2 takes the last question while it still wants another.
	q := engageAt(t, w, 1)
	w.Answer(w.Question().Answer)
	if w.Remaining() != 0 {
		t.Fatalf("expected empty pool, got %d", w.Remaining())
	}
	clk.Advance(1501 * time.Millisecond)
	idle(w)

	if w.Phase() != PhaseMoving {
		t.Fatalf("expected Moving once the pool is empty, got %s", w.Phase())
	}
	if q.CorrectAnswers != 1 {
		t.Errorf("expected 1 correct answer, got %d", q.CorrectAnswers)
	}
	if !w.Completed() {
		t.Error("expected run complete with an empty pool")
	}

	// Nobody engages with an empty pool.
	w.player.Pos = w.questioners[2].Pos
	idle(w)
	if w.Phase() != PhaseMoving {
		t.Error("engaged with an empty pool")
	}
}

func TestCompletedWhenAllSatisfied(t *testing.T) {
	w, clk := newTestWorld(t, 8)

	for i := range w.questioners {
		engageAt(t, w, i)
		for j := 0; j < 2; j++ {
			w.Answer(w.Question().Answer)
			clk.Advance(1501 * time.Millisecond)
			idle(w)
		}
		if w.Phase() != PhaseMoving {
			t.Fatalf("expected Moving after satisfying %d", i)
		}
	}

	if !w.Completed() {
		t.Error("expected run complete")
	}
	stats := w.Stats()
	if stats.Correct != 6 || stats.Satisfied != 3 || !stats.Completed {
		t.Errorf("unexpected stats %+v", stats)
	}
	if len(stats.Answers) != 6 || stats.Accuracy() != 1 {
		t.Errorf("expected 6 recorded answers, got %d", len(stats.Answers))
	}
	if w.Remaining() != 2 {
		t.Errorf("expected 2 questions left, got %d", w.Remaining())
	}
}

func TestResizeIdempotent(t *testing.T) {
	w, _ := newTestWorld(t, 4)

	w.Resize(1000, 600)
	first := make([]core.Point, len(w.questioners))
	for i, q := range w.questioners {
		first[i] = q.Pos
	}
	player, giver, layout := w.player.Pos, w.hintGiver.Pos, w.layout

	w.Resize(1000, 600)
	for i, q := range w.questioners {
		if q.Pos != first[i] {
			t.Errorf("%s moved on repeated resize", q.ID)
		}
	}
	if w.player.Pos != player || w.hintGiver.Pos != giver || w.layout != layout {
		t.Error("repeated resize changed positions")
	}

	if w.questioners[2].Pos != (core.Point{X: 500, Y: 480}) {
		t.Errorf("unexpected q3 anchor %+v", w.questioners[2].Pos)
	}
	if w.hintGiver.Pos.Y != 520 {
		t.Errorf("unexpected hint-giver y %v", w.hintGiver.Pos.Y)
	}
}

func TestResizeClampsPlayer(t *testing.T) {
	w, _ := newTestWorld(t, 4)
	w.player.Pos = core.Point{X: 780, Y: 460}

	w.Resize(400, 300)
	fw, fh := w.playerFootprint()
	if w.player.Pos.X != 400-fw/2 || w.player.Pos.Y != 300-fh/2 {
		t.Errorf("expected player clamped into 400x300, got %+v", w.player.Pos)
	}
}

func TestDeterministicQuestionOrder(t *testing.T) {
	run := func() []string {
		w, clk := newTestWorld(t, 8)
		var asked []string
		engageAt(t, w, 0)
		for i := 0; i < 2; i++ {
			asked = append(asked, w.Question().Text)
			w.Answer(w.Question().Answer)
			clk.Advance(1501 * time.Millisecond)
			idle(w)
		}
		return asked
	}

	a, b := run(), run()
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("question %d differs: %s vs %s", i, a[i], b[i])
		}
	}
}

func TestRunStatsRecordsAnswers(t *testing.T) {
	w, clk := newTestWorld(t, 4)
	engageAt(t, w, 0)
	question := w.Question()

	clk.Advance(time.Second)
	w.Answer(wrongChoice(question))
	clk.Advance(3001 * time.Millisecond)
	idle(w)
	w.RequestHint()
	w.Dismiss()

	s := w.Stats()
	if s.Engagements != 1 || s.Wrong != 1 || s.Dismissed != 1 || s.HintsUsed != 1 {
		t.Errorf("unexpected stats %+v", s)
	}
	if len(s.Answers) != 1 {
		t.Fatalf("expected 1 answer, got %d", len(s.Answers))
	}
	rec := s.Answers[0]
	if rec.QuestionerID != "q1" || rec.Question != question.Text || rec.Correct || rec.At != time.Second {
		t.Errorf("unexpected record %+v", rec)
	}
	if s.Duration != clk.Now()-10*time.Second {
		t.Errorf("unexpected duration %v", s.Duration)
	}
}
