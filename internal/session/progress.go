package session

// QuizProgress summarizes how far through the quiz the learner is.
type QuizProgress struct {
	Current  int // 1-based number of the active question
	Total    int
	Answered int // committed answers
	Correct  int // committed answers that are correct
}

// Progress computes the quiz progress for s.
func Progress(s State) QuizProgress {
	p := QuizProgress{
		Total:    len(s.Questions),
		Answered: len(s.Answers),
		Correct:  s.RunningScore(),
	}
	if p.Total > 0 {
		p.Current = s.Index + 1
	}
	return p
}

// Fraction returns the share of questions answered, counting the active
// question once its feedback is shown.
func (p QuizProgress) Fraction(feedbackShown bool) float64 {
	if p.Total == 0 {
		return 0
	}
	done := p.Answered
	if feedbackShown {
		done++
	}
	if done > p.Total {
		done = p.Total
	}
	return float64(done) / float64(p.Total)
}
