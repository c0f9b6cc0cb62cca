package agent

import "fmt"

// QuizQuestionCount is the number of questions requested per quiz.
const QuizQuestionCount = 8

// ExplainMessage builds the instruction for an explain request.
func ExplainMessage(topic string) string {
	return fmt.Sprintf(
		"Explain the concept of %q in simple language suitable for rural students. "+
			"Use rural-context examples like farming, local environment, and daily life. "+
			"Provide step-by-step breakdown.",
		topic)
}

// QuizMessage builds the instruction for a quiz request.
func QuizMessage(topic string) string {
	return fmt.Sprintf(
		"Generate %d multiple choice questions to test understanding of %q. "+
			"Include mix of easy, medium, and hard difficulty. "+
			"Each question has four options labeled A to D with exactly one correct option. "+
			"Return questions directly tied to the concept.",
		QuizQuestionCount, topic)
}

// EvaluateInput is the context sent with an evaluate request.
type EvaluateInput struct {
	QuestionText  string
	StudentAnswer string
	CorrectAnswer string
}

// EvaluateMessage builds the instruction for an evaluate request.
func EvaluateMessage(in EvaluateInput) string {
	return fmt.Sprintf(
		"Evaluate this answer: Question: %q Student's answer: %q (option). Correct answer: %q. "+
			"Provide detailed feedback explaining why the correct answer is right "+
			"and why the student's answer might be wrong.",
		in.QuestionText, in.StudentAnswer, in.CorrectAnswer)
}
