package model

// Confidence levels reported by the evaluator.
const (
	ConfidenceLow    = "Low"
	ConfidenceMedium = "Medium"
	ConfidenceHigh   = "High"
)

// Evaluation is the judged outcome of one answer. Every field is always
// populated: parsing applies defaults and the score is clamped to [0,100]
// before an Evaluation leaves the agent package.
type Evaluation struct {
	Score             int      `json:"score"`
	Feedback          string   `json:"feedback"`
	Suggestions       []string `json:"suggestions"`
	Confidence        string   `json:"confidence"`
	Strengths         []string `json:"strengths"`
	Weaknesses        []string `json:"weaknesses"`
	FollowupQuestions []string `json:"followup_questions"`
}

// SkippedEvaluation is the fixed record attached to a skipped question so
// aggregate arithmetic never needs to special-case skips.
func SkippedEvaluation() Evaluation {
	return Evaluation{
		Score:             0,
		Feedback:          "Question skipped by candidate",
		Suggestions:       []string{"Attempt all questions for better assessment"},
		Confidence:        ConfidenceHigh,
		Strengths:         []string{},
		Weaknesses:        []string{"Question avoidance"},
		FollowupQuestions: []string{},
	}
}
