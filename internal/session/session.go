package session

import (
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/learnloop/internal/agent"
)

// The functions in this file are the pure transitions of the study flow.
// Each validates against the active screen first and leaves s untouched
// when it returns an error. None of them perform I/O.

// BeginTopic starts studying topic: it records the topic in the recent list
// and clears any previous explanation. The screen does not change until the
// explanation arrives. Returns the trimmed topic.
func BeginTopic(s *State, topic string) (string, error) {
	if s.Screen != ScreenTopicSelection {
		return "", invalidTransition("start topic", s.Screen)
	}
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return "", &ValidationError{Field: "topic", Message: "Please enter a topic"}
	}

	s.Topic = topic
	s.Recent = s.Recent.Push(topic)
	s.Explanation = nil
	return topic, nil
}

// ApplyExplanation installs a received explanation and shows it.
func ApplyExplanation(s *State, p *agent.ExplainPayload) {
	s.Explanation = p.Sections
	s.Screen = ScreenExplanation
	s.Err = nil
}

// FailTopic surfaces a failed explanation request. The learner stays on
// topic selection, which holds no topic or session. The recent list keeps
// the topic.
func FailTopic(s *State, err error) {
	s.Err = err
	s.Topic = ""
	s.SessionID = ""
	s.Explanation = nil
}

// FailRequest surfaces a failed request. Everything else stays as it was.
func FailRequest(s *State, err error) {
	s.Err = err
}

// BeginQuiz checks that a quiz may be requested from the active screen.
func BeginQuiz(s *State) error {
	if s.Screen != ScreenExplanation && s.Screen != ScreenResults {
		return invalidTransition("start quiz", s.Screen)
	}
	if s.Topic == "" {
		return &ValidationError{Field: "topic", Message: "Please choose a topic first"}
	}
	return nil
}

// ApplyQuiz installs freshly generated questions and shows the first one.
// An empty question list is rejected and the previous quiz is kept.
func ApplyQuiz(s *State, p *agent.QuizPayload) error {
	if len(p.Questions) == 0 {
		return &MalformedPayloadError{RequestType: agent.RequestQuiz, Reason: "no questions"}
	}
	s.Questions = p.Questions
	s.Index = 0
	s.Selected = ""
	s.Answers = make(map[int]string)
	s.Feedback = nil
	s.Result = nil
	s.Screen = ScreenQuiz
	s.Err = nil
	return nil
}

// SelectOption records the tentative choice for the active question. A
// validation banner, such as the one for submitting without a choice, is
// cleared by a valid selection.
func SelectOption(s *State, letter string) error {
	if s.Screen != ScreenQuiz || s.Feedback != nil {
		return invalidTransition("select option", s.Screen)
	}
	q, ok := s.CurrentQuestion()
	if !ok {
		return invalidTransition("select option", s.Screen)
	}
	if !q.HasOption(letter) {
		return &ValidationError{Field: "answer", Message: fmt.Sprintf("%q is not one of the options", letter)}
	}
	s.Selected = letter
	var verr *ValidationError
	if errors.As(s.Err, &verr) {
		s.Err = nil
	}
	return nil
}

// CheckAnswer validates a submission and builds the evaluate request input.
// An empty letter is rejected before anything else.
func CheckAnswer(s *State, index int, letter string) (agent.EvaluateInput, error) {
	if s.Screen != ScreenQuiz || s.Feedback != nil {
		return agent.EvaluateInput{}, invalidTransition("submit answer", s.Screen)
	}
	if letter == "" {
		return agent.EvaluateInput{}, &ValidationError{Field: "answer", Message: "Please select an answer"}
	}
	if index != s.Index {
		return agent.EvaluateInput{}, &ValidationError{
			Field:   "index",
			Message: fmt.Sprintf("Question %d is not the active question", index+1),
		}
	}
	q, ok := s.CurrentQuestion()
	if !ok {
		return agent.EvaluateInput{}, invalidTransition("submit answer", s.Screen)
	}
	if !q.HasOption(letter) {
		return agent.EvaluateInput{}, &ValidationError{Field: "answer", Message: fmt.Sprintf("%q is not one of the options", letter)}
	}
	return agent.EvaluateInput{
		QuestionText:  q.QuestionText,
		StudentAnswer: letter,
		CorrectAnswer: q.CorrectAnswer,
	}, nil
}

// ApplyEvaluation shows feedback for the answer to question index.
// Correctness is decided here by comparing letters.
func ApplyEvaluation(s *State, index int, letter string, p *agent.EvaluatePayload) error {
	if s.Screen != ScreenQuiz || index != s.Index {
		return invalidTransition("apply evaluation", s.Screen)
	}
	q, ok := s.CurrentQuestion()
	if !ok {
		return invalidTransition("apply evaluation", s.Screen)
	}
	s.Selected = letter
	s.Feedback = &Feedback{
		QuestionNumber: q.QuestionNumber,
		StudentAnswer:  letter,
		IsCorrect:      letter == q.CorrectAnswer,
		Feedback:       p.Feedback,
	}
	s.Err = nil
	return nil
}

// Advance commits the evaluated answer and moves to the next question, or
// scores the quiz after the last one. Returns true when the quiz completed.
func Advance(s *State) (bool, error) {
	if s.Screen != ScreenQuiz {
		return false, invalidTransition("advance", s.Screen)
	}
	if s.Feedback == nil {
		return false, ErrNoFeedback
	}

	if s.Answers == nil {
		s.Answers = make(map[int]string)
	}
	s.Answers[s.Index] = s.Feedback.StudentAnswer
	s.Feedback = nil
	s.Selected = ""
	s.Err = nil

	if s.Index < len(s.Questions)-1 {
		s.Index++
		return false, nil
	}

	s.Result = ComputeResult(s.Questions, s.Answers)
	s.Screen = ScreenResults
	return true, nil
}

// ResetForRetake discards the attempt so the quiz can be regenerated.
func ResetForRetake(s *State) error {
	if s.Screen != ScreenResults {
		return invalidTransition("retake", s.Screen)
	}
	s.Index = 0
	s.Selected = ""
	s.Answers = make(map[int]string)
	s.Feedback = nil
	s.Result = nil
	return nil
}

// ReviewExplanation returns from the results to the explanation.
func ReviewExplanation(s *State) error {
	if s.Screen != ScreenResults {
		return invalidTransition("review explanation", s.Screen)
	}
	s.Screen = ScreenExplanation
	s.Err = nil
	return nil
}

// ReturnToTopics clears all session data and shows topic selection.
// The recent topics list is kept.
func ReturnToTopics(s *State) error {
	if s.Screen != ScreenResults && s.Screen != ScreenExplanation {
		return invalidTransition("learn another", s.Screen)
	}
	*s = NewState(s.Recent)
	return nil
}

// DismissError clears the banner. It is valid on every screen.
func DismissError(s *State) {
	s.Err = nil
}
