package session

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/abhisek/learnloop/internal/agent"
)

func testQuestions(n int) []agent.Question {
	letters := []string{"A", "B", "C", "D"}
	qs := make([]agent.Question, n)
	for i := range qs {
		qs[i] = agent.Question{
			QuestionNumber: i + 1,
			Difficulty:     "easy",
			QuestionText:   fmt.Sprintf("Question %d?", i+1),
			Options:        map[string]string{"A": "one", "B": "two", "C": "three", "D": "four"},
			CorrectAnswer:  letters[i%4],
		}
	}
	return qs
}

func quizState(n int) State {
	s := NewState(nil)
	s.Topic = "Fractions"
	s.Screen = ScreenQuiz
	s.Questions = testQuestions(n)
	return s
}

func TestMasteryFor(t *testing.T) {
	tests := []struct {
		score int
		want  MasteryLevel
	}{
		{8, MasteryAdvanced},
		{7, MasteryAdvanced},
		{6, MasteryIntermediate},
		{5, MasteryIntermediate},
		{4, MasteryBeginner},
		{0, MasteryBeginner},
		{12, MasteryAdvanced},
	}
	for _, tt := range tests {
		if got := MasteryFor(tt.score); got != tt.want {
			t.Errorf("MasteryFor(%d) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestComputeResultOrderAndScore(t *testing.T) {
	qs := testQuestions(4) // correct: A B C D
	answers := map[int]string{3: "D", 0: "A", 2: "A", 1: "B"}

	r := ComputeResult(qs, answers)

	if r.Score != 3 || r.Total != 4 {
		t.Errorf("score = %d/%d, want 3/4", r.Score, r.Total)
	}
	if r.MasteryLevel != MasteryBeginner {
		t.Errorf("mastery = %s, want Beginner", r.MasteryLevel)
	}
	for i, a := range r.Answers {
		if a.QuestionNumber != i+1 {
			t.Errorf("answers[%d].QuestionNumber = %d, want %d", i, a.QuestionNumber, i+1)
		}
		if a.Feedback != "" {
			t.Errorf("answers[%d] feedback = %q, want empty", i, a.Feedback)
		}
	}
	if r.Answers[2].IsCorrect {
		t.Error("answer 3 should be incorrect")
	}

	correct := 0
	for _, a := range r.Answers {
		if a.IsCorrect {
			correct++
		}
	}
	if correct != r.Score {
		t.Errorf("score %d does not match correct answers %d", r.Score, correct)
	}
	if r.Percentage() != 75 {
		t.Errorf("percentage = %d, want 75", r.Percentage())
	}
}

func TestRecentTopicsPush(t *testing.T) {
	var r RecentTopics
	for _, topic := range []string{"Fractions", "Verbs", "Decimals"} {
		r = r.Push(topic)
	}
	if want := (RecentTopics{"Decimals", "Verbs", "Fractions"}); !reflect.DeepEqual(r, want) {
		t.Fatalf("recent = %v, want %v", r, want)
	}

	r = r.Push("Verbs")
	if want := (RecentTopics{"Verbs", "Decimals", "Fractions"}); !reflect.DeepEqual(r, want) {
		t.Errorf("after repeat = %v, want %v", r, want)
	}

	r = r.Push("Water Cycle")
	if want := (RecentTopics{"Water Cycle", "Verbs", "Decimals"}); !reflect.DeepEqual(r, want) {
		t.Errorf("after overflow = %v, want %v", r, want)
	}
}

func TestRecentTopicsPushDoesNotAlias(t *testing.T) {
	orig := RecentTopics{"A", "B"}
	_ = orig.Push("C")
	if !reflect.DeepEqual(orig, RecentTopics{"A", "B"}) {
		t.Errorf("original mutated: %v", orig)
	}
}

func TestDecodeRecent(t *testing.T) {
	tests := []struct {
		in      string
		want    RecentTopics
		wantErr bool
	}{
		{"", nil, false},
		{`[]`, RecentTopics{}, false},
		{`["A","B"]`, RecentTopics{"A", "B"}, false},
		{`["A","A","","B","C","D"]`, RecentTopics{"A", "B", "C"}, false},
		{`{"not":"a list"}`, nil, true},
	}
	for _, tt := range tests {
		got, err := DecodeRecent(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("DecodeRecent(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
			t.Errorf("DecodeRecent(%q) = %#v, want %#v", tt.in, got, tt.want)
		}
	}

	enc, err := RecentTopics{"Verbs"}.Encode()
	if err != nil || enc != `["Verbs"]` {
		t.Errorf("Encode = %q, %v", enc, err)
	}
	enc, _ = RecentTopics(nil).Encode()
	if enc != `[]` {
		t.Errorf("Encode(nil) = %q, want []", enc)
	}
}

func TestBeginTopicValidation(t *testing.T) {
	s := NewState(nil)
	_, err := BeginTopic(&s, "   ")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if s.Topic != "" || len(s.Recent) != 0 {
		t.Error("state changed on validation failure")
	}

	topic, err := BeginTopic(&s, "  Fractions ")
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if topic != "Fractions" || s.Topic != "Fractions" || s.Recent[0] != "Fractions" {
		t.Errorf("topic = %q, state topic = %q, recent = %v", topic, s.Topic, s.Recent)
	}
	if s.Screen != ScreenTopicSelection {
		t.Errorf("screen = %s, want topic-selection until explanation arrives", s.Screen)
	}
}

func TestApplyExplanationShowsScreen(t *testing.T) {
	s := NewState(nil)
	s.Err = errors.New("old")
	ApplyExplanation(&s, &agent.ExplainPayload{Sections: []agent.Section{{Title: "T"}}})
	if s.Screen != ScreenExplanation || len(s.Explanation) != 1 || s.Err != nil {
		t.Errorf("state = %+v", s)
	}
}

func TestFailTopicReturnsToEmptySelection(t *testing.T) {
	s := NewState(RecentTopics{"Verbs"})
	if _, err := BeginTopic(&s, "Fractions"); err != nil {
		t.Fatal(err)
	}
	s.SessionID = "sess-1"

	FailTopic(&s, errors.New("agent down"))

	if s.Screen != ScreenTopicSelection || s.Topic != "" || s.SessionID != "" || s.Explanation != nil {
		t.Errorf("state after failure = %+v", s)
	}
	if s.ErrorMessage() != "agent down" {
		t.Errorf("banner = %q", s.ErrorMessage())
	}
	if len(s.Recent) != 2 || s.Recent[0] != "Fractions" {
		t.Errorf("recent = %v, want Fractions first", s.Recent)
	}
}

func TestApplyQuizEmptyKeepsStaleContent(t *testing.T) {
	s := NewState(nil)
	s.Screen = ScreenExplanation
	s.Topic = "Fractions"
	s.Questions = testQuestions(2)

	err := ApplyQuiz(&s, &agent.QuizPayload{})
	var merr *MalformedPayloadError
	if !errors.As(err, &merr) {
		t.Fatalf("err = %v, want MalformedPayloadError", err)
	}
	if s.Screen != ScreenExplanation || len(s.Questions) != 2 {
		t.Errorf("state changed: screen %s, %d questions", s.Screen, len(s.Questions))
	}
}

func TestApplyQuizResetsAttempt(t *testing.T) {
	s := quizState(3)
	s.Index = 2
	s.Answers = map[int]string{0: "A"}
	s.Feedback = &Feedback{StudentAnswer: "B"}

	if err := ApplyQuiz(&s, &agent.QuizPayload{Questions: testQuestions(8)}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if s.Index != 0 || len(s.Answers) != 0 || s.Feedback != nil || len(s.Questions) != 8 {
		t.Errorf("attempt not reset: %+v", s)
	}
}

func TestCheckAnswerValidation(t *testing.T) {
	tests := []struct {
		name   string
		index  int
		letter string
		want   string
	}{
		{"empty letter", 0, "", "Please select an answer"},
		{"empty letter wins over bad index", 5, "", "Please select an answer"},
		{"wrong index", 1, "A", "Question 2 is not the active question"},
		{"unknown option", 0, "E", `"E" is not one of the options`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := quizState(3)
			before := s.Clone()

			_, err := CheckAnswer(&s, tt.index, tt.letter)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("err = %v, want ValidationError", err)
			}
			if verr.Message != tt.want {
				t.Errorf("message = %q, want %q", verr.Message, tt.want)
			}
			if !reflect.DeepEqual(s, before) {
				t.Error("state changed on validation failure")
			}
		})
	}
}

func TestCheckAnswerBuildsInput(t *testing.T) {
	s := quizState(3)
	in, err := CheckAnswer(&s, 0, "C")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	want := agent.EvaluateInput{QuestionText: "Question 1?", StudentAnswer: "C", CorrectAnswer: "A"}
	if in != want {
		t.Errorf("input = %+v, want %+v", in, want)
	}
}

func TestApplyEvaluationDerivesCorrectnessLocally(t *testing.T) {
	s := quizState(2)
	if err := ApplyEvaluation(&s, 0, "B", &agent.EvaluatePayload{Feedback: "Correct! Well done."}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if s.Feedback.IsCorrect {
		t.Error("IsCorrect should follow letter comparison, not feedback text")
	}
	if s.Feedback.Feedback != "Correct! Well done." || s.Feedback.QuestionNumber != 1 {
		t.Errorf("feedback = %+v", s.Feedback)
	}
}

func TestAdvance(t *testing.T) {
	s := quizState(2)

	if _, err := Advance(&s); !errors.Is(err, ErrNoFeedback) {
		t.Fatalf("advance without feedback: err = %v, want ErrNoFeedback", err)
	}

	s.Feedback = &Feedback{StudentAnswer: "A"}
	done, err := Advance(&s)
	if err != nil || done {
		t.Fatalf("advance 1: done=%v err=%v", done, err)
	}
	if s.Index != 1 || s.Feedback != nil || s.Answers[0] != "A" {
		t.Errorf("after first advance: %+v", s)
	}

	s.Feedback = &Feedback{StudentAnswer: "B"}
	done, err = Advance(&s)
	if err != nil || !done {
		t.Fatalf("advance 2: done=%v err=%v", done, err)
	}
	if s.Screen != ScreenResults || s.Result == nil || s.Result.Score != 2 {
		t.Errorf("after last advance: screen %s result %+v", s.Screen, s.Result)
	}
}

func TestInvalidTransitionsLeaveStateUnchanged(t *testing.T) {
	tests := []struct {
		name   string
		screen Screen
		fn     func(*State) error
	}{
		{"start topic from quiz", ScreenQuiz, func(s *State) error { _, err := BeginTopic(s, "X"); return err }},
		{"start quiz from topics", ScreenTopicSelection, BeginQuiz},
		{"retake from quiz", ScreenQuiz, ResetForRetake},
		{"review from explanation", ScreenExplanation, ReviewExplanation},
		{"learn another from quiz", ScreenQuiz, ReturnToTopics},
		{"advance from results", ScreenResults, func(s *State) error { _, err := Advance(s); return err }},
		{"submit from explanation", ScreenExplanation, func(s *State) error { _, err := CheckAnswer(s, 0, "A"); return err }},
		{"select from results", ScreenResults, func(s *State) error { return SelectOption(s, "A") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := quizState(2)
			s.Screen = tt.screen
			before := s.Clone()

			if err := tt.fn(&s); !errors.Is(err, ErrInvalidTransition) {
				t.Fatalf("err = %v, want ErrInvalidTransition", err)
			}
			if !reflect.DeepEqual(s, before) {
				t.Error("state changed on invalid transition")
			}
		})
	}
}

func TestSubmitAfterFeedbackIsRejected(t *testing.T) {
	s := quizState(2)
	s.Feedback = &Feedback{StudentAnswer: "A"}
	if _, err := CheckAnswer(&s, 0, "B"); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("err = %v, want ErrInvalidTransition", err)
	}
	if err := SelectOption(&s, "B"); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("select err = %v, want ErrInvalidTransition", err)
	}
}

func TestReturnToTopicsKeepsRecent(t *testing.T) {
	s := quizState(2)
	s.Screen = ScreenResults
	s.Recent = RecentTopics{"Fractions"}
	s.SessionID = "abc"
	s.Result = &QuizResult{Score: 1}

	if err := ReturnToTopics(&s); err != nil {
		t.Fatalf("return: %v", err)
	}
	if s.Screen != ScreenTopicSelection || s.Topic != "" || s.Questions != nil || s.Result != nil || s.SessionID != "" {
		t.Errorf("session data not cleared: %+v", s)
	}
	if !reflect.DeepEqual(s.Recent, RecentTopics{"Fractions"}) {
		t.Errorf("recent = %v", s.Recent)
	}
}

func TestExplanationBackReturnsToTopics(t *testing.T) {
	s := NewState(nil)
	s.Screen = ScreenExplanation
	s.Topic = "Verbs"
	if err := ReturnToTopics(&s); err != nil {
		t.Fatalf("back: %v", err)
	}
	if s.Screen != ScreenTopicSelection || s.Topic != "" {
		t.Errorf("state = %+v", s)
	}
}

func TestStateErrorMessage(t *testing.T) {
	s := NewState(nil)
	if s.ErrorMessage() != "" {
		t.Error("expected empty message")
	}
	s.Err = &ValidationError{Message: "Please select an answer"}
	if s.ErrorMessage() != "Please select an answer" {
		t.Errorf("validation message = %q", s.ErrorMessage())
	}
	s.Err = &agent.RequestError{Message: "quota exceeded"}
	if s.ErrorMessage() != "quota exceeded" {
		t.Errorf("request message = %q", s.ErrorMessage())
	}
}

func TestFilterTopics(t *testing.T) {
	all := SuggestedTopics()
	if len(FilterTopics(all, "")) != len(all) {
		t.Error("empty query should keep all topics")
	}

	got := FilterTopics(all, "math")
	if len(got) != 2 || got[0].Name != "Fractions" || got[1].Name != "Decimals" {
		t.Errorf("math = %+v", got)
	}

	got = FilterTopics(all, "CYCLE")
	if len(got) != 1 || got[0].Name != "Water Cycle" {
		t.Errorf("cycle = %+v", got)
	}

	if len(FilterTopics(all, "astrophysics")) != 0 {
		t.Error("expected no matches")
	}
}
