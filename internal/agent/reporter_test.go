package agent

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/devendraBainda/AI-Interview-Agent/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestReporter(llm *stubLLM) *Reporter {
	return NewReporter(llm, 5*time.Second, zap.NewNop())
}

func TestGenerateReportEmptyEvaluations(t *testing.T) {
	llm := &stubLLM{}
	r := newTestReporter(llm)

	report := r.GenerateReport(context.Background(), nil, 0, 5)

	assert.Equal(t, "No answers were provided during the interview.", report)
	assert.Zero(t, llm.calls)
}

func TestGenerateReportReturnsProviderText(t *testing.T) {
	llm := &stubLLM{response: "# Interview Performance Summary\nWell done."}
	r := newTestReporter(llm)

	evals := []model.Evaluation{{Score: 80, Feedback: "Good."}}
	report := r.GenerateReport(context.Background(), evals, 1, 1)

	assert.Equal(t, "# Interview Performance Summary\nWell done.", report)
	require.Len(t, llm.prompts, 1)
	assert.Contains(t, llm.prompts[0], "Questions Answered: 1/1 (100%)")
	assert.Contains(t, llm.prompts[0], "Average Score: 80.0%")
}

func TestGenerateReportMarksPartialCompletion(t *testing.T) {
	llm := &stubLLM{response: "report"}
	r := newTestReporter(llm)

	evals := []model.Evaluation{{Score: 60}, {Score: 40}}
	r.GenerateReport(context.Background(), evals, 2, 5)

	require.Len(t, llm.prompts, 1)
	assert.Contains(t, llm.prompts[0], "partial report based on 2/5 answered questions (40% completion)")
}

func TestGenerateReportFallbackOnFailure(t *testing.T) {
	llm := &stubLLM{err: errors.New("model overloaded")}
	r := newTestReporter(llm)

	evals := []model.Evaluation{
		{Score: 70, Feedback: "Decent answer."},
		{Score: 0, Feedback: "Question skipped by candidate"},
	}
	report := r.GenerateReport(context.Background(), evals, 1, 2)

	assert.Contains(t, report, "# Interview Report")
	assert.Contains(t, report, "Questions Answered: 1/2 (50%)")
	assert.Contains(t, report, "Average Score: 35.0%")
	assert.Contains(t, report, "Question 1 Evaluation:")
	assert.Contains(t, report, "Question 2 Evaluation:")
	assert.Contains(t, report, "model overloaded")
}

func TestFormatEvaluationsCapsLists(t *testing.T) {
	evals := []model.Evaluation{{
		Score:       90,
		Feedback:    "Thorough.",
		Suggestions: []string{"one", "two", "three", "four"},
		Strengths:   []string{"a"},
	}}

	formatted := FormatEvaluations(evals)

	assert.Contains(t, formatted, "Score: 90%")
	assert.Contains(t, formatted, "- three")
	assert.NotContains(t, formatted, "- four")
	assert.Contains(t, formatted, "Strengths:\n- a")
}

func TestFormatEvaluationsOmitsEmptySections(t *testing.T) {
	formatted := FormatEvaluations([]model.Evaluation{{Score: 10}})

	assert.Contains(t, formatted, "Question 1 Evaluation:")
	assert.NotContains(t, formatted, "Suggestions:")
	assert.NotContains(t, formatted, "Feedback:")
}
