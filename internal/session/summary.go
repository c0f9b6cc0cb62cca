package session

import (
	"sort"

	"github.com/abhisek/learnloop/internal/agent"
)

// MasteryLevel grades a completed quiz.
type MasteryLevel string

const (
	MasteryBeginner     MasteryLevel = "Beginner"
	MasteryIntermediate MasteryLevel = "Intermediate"
	MasteryAdvanced     MasteryLevel = "Advanced"
)

// Absolute score thresholds. They do not scale with quiz length.
const (
	AdvancedThreshold     = 7
	IntermediateThreshold = 5
)

// MasteryFor maps a score to a mastery level.
func MasteryFor(score int) MasteryLevel {
	switch {
	case score >= AdvancedThreshold:
		return MasteryAdvanced
	case score >= IntermediateThreshold:
		return MasteryIntermediate
	default:
		return MasteryBeginner
	}
}

// Encouragement returns the message shown under a mastery level.
func (m MasteryLevel) Encouragement() string {
	switch m {
	case MasteryAdvanced:
		return "Excellent work! You have a strong understanding of this concept."
	case MasteryIntermediate:
		return "Good job! Review the explanation to strengthen your understanding."
	default:
		return "Keep practicing! Review the explanation and try the quiz again."
	}
}

// QuizResult is the scored outcome of a quiz attempt.
type QuizResult struct {
	Score        int
	Total        int
	MasteryLevel MasteryLevel
	// Answers is the per-question breakdown ordered by question index.
	// Feedback text is not retained here.
	Answers []Feedback
}

// Percentage returns the score as a whole percentage of Total.
func (r QuizResult) Percentage() int {
	if r.Total == 0 {
		return 0
	}
	return r.Score * 100 / r.Total
}

// ComputeResult scores the committed answers against the questions.
func ComputeResult(questions []agent.Question, answers map[int]string) *QuizResult {
	indices := make([]int, 0, len(answers))
	for idx := range answers {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	breakdown := make([]Feedback, 0, len(indices))
	score := 0
	for _, idx := range indices {
		correct := isCorrectAt(questions, idx, answers[idx])
		if correct {
			score++
		}
		breakdown = append(breakdown, Feedback{
			QuestionNumber: idx + 1,
			StudentAnswer:  answers[idx],
			IsCorrect:      correct,
		})
	}

	return &QuizResult{
		Score:        score,
		Total:        len(questions),
		MasteryLevel: MasteryFor(score),
		Answers:      breakdown,
	}
}

func countCorrect(questions []agent.Question, answers map[int]string) int {
	n := 0
	for idx, letter := range answers {
		if isCorrectAt(questions, idx, letter) {
			n++
		}
	}
	return n
}

func isCorrectAt(questions []agent.Question, idx int, letter string) bool {
	if idx < 0 || idx >= len(questions) {
		return false
	}
	return questions[idx].CorrectAnswer == letter
}
