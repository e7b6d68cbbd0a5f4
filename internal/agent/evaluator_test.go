package agent

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/devendraBainda/AI-Interview-Agent/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubLLM is a scriptable provider double shared by the agent tests.
type stubLLM struct {
	response string
	err      error
	fn       func(userPrompt, systemPrompt string) (string, error)
	calls    int
	prompts  []string
}

func (s *stubLLM) GenerateResponse(ctx context.Context, userPrompt, systemPrompt string) (string, error) {
	s.calls++
	s.prompts = append(s.prompts, userPrompt)
	if s.fn != nil {
		return s.fn(userPrompt, systemPrompt)
	}
	return s.response, s.err
}

func newTestEvaluator(llm *stubLLM) *Evaluator {
	return NewEvaluator(llm, 5*time.Second, zap.NewNop())
}

func TestEvaluateParsesJSONResponse(t *testing.T) {
	llm := &stubLLM{response: `{
		"score": 85,
		"feedback": "Strong answer with concrete examples.",
		"suggestions": ["Mention trade-offs"],
		"confidence": "High",
		"strengths": ["Clear structure"],
		"weaknesses": ["No metrics"],
		"followup_questions": ["How would you scale it?"]
	}`}
	e := newTestEvaluator(llm)

	eval := e.Evaluate(context.Background(), "Tell me about a project.", "I built a payments service.", "")

	assert.Equal(t, 85, eval.Score)
	assert.Equal(t, "Strong answer with concrete examples.", eval.Feedback)
	assert.Equal(t, []string{"Mention trade-offs"}, eval.Suggestions)
	assert.Equal(t, model.ConfidenceHigh, eval.Confidence)
	assert.Equal(t, []string{"Clear structure"}, eval.Strengths)
}

func TestEvaluateStripsCodeFences(t *testing.T) {
	llm := &stubLLM{response: "```json\n{\"score\": 70, \"feedback\": \"Fine.\"}\n```"}
	e := newTestEvaluator(llm)

	eval := e.Evaluate(context.Background(), "q", "a real answer", "")

	assert.Equal(t, 70, eval.Score)
	assert.Equal(t, "Fine.", eval.Feedback)
}

func TestEvaluateBackfillsMissingFields(t *testing.T) {
	llm := &stubLLM{response: `{"score": 60}`}
	e := newTestEvaluator(llm)

	eval := e.Evaluate(context.Background(), "q", "a real answer", "")

	assert.Equal(t, 60, eval.Score)
	assert.Equal(t, "No feedback provided", eval.Feedback)
	assert.Equal(t, model.ConfidenceMedium, eval.Confidence)
	assert.Empty(t, eval.Suggestions)
	assert.Empty(t, eval.Weaknesses)
	assert.Empty(t, eval.FollowupQuestions)
}

func TestEvaluateClampsScoreInJSONPath(t *testing.T) {
	llm := &stubLLM{response: `{"score": 150, "feedback": "Over the top."}`}
	e := newTestEvaluator(llm)

	eval := e.Evaluate(context.Background(), "q", "a real answer", "")
	assert.Equal(t, 100, eval.Score)

	llm.response = `{"score": -5, "feedback": "Below the floor."}`
	eval = e.Evaluate(context.Background(), "q", "a real answer", "")
	assert.Equal(t, 0, eval.Score)
}

func TestEvaluateTextFallback(t *testing.T) {
	llm := &stubLLM{response: `The answer was decent overall.
Score: 72/100. Confidence: high.
Suggestions:
- Add more detail
- Give concrete examples

Further commentary.`}
	e := newTestEvaluator(llm)

	eval := e.Evaluate(context.Background(), "q", "a real answer", "")

	assert.Equal(t, 72, eval.Score)
	assert.Equal(t, model.ConfidenceHigh, eval.Confidence)
	assert.Equal(t, []string{"Add more detail", "Give concrete examples"}, eval.Suggestions)
	assert.Contains(t, eval.Feedback, "The answer was decent overall.")
}

func TestEvaluateTextFallbackDefaults(t *testing.T) {
	llm := &stubLLM{response: "The model refused to produce anything structured."}
	e := newTestEvaluator(llm)

	eval := e.Evaluate(context.Background(), "q", "a real answer", "")

	assert.Equal(t, 50, eval.Score)
	assert.Equal(t, model.ConfidenceMedium, eval.Confidence)
}

func TestEvaluateTextFallbackClampsScore(t *testing.T) {
	llm := &stubLLM{response: "Excellent work, score 250 at least."}
	e := newTestEvaluator(llm)

	eval := e.Evaluate(context.Background(), "q", "a real answer", "")

	assert.Equal(t, 100, eval.Score)
}

func TestEvaluateTextFallbackTruncatesLongFeedback(t *testing.T) {
	llm := &stubLLM{response: strings.Repeat("x", 600)}
	e := newTestEvaluator(llm)

	eval := e.Evaluate(context.Background(), "q", "a real answer", "")

	assert.Len(t, eval.Feedback, 503)
	assert.True(t, strings.HasSuffix(eval.Feedback, "..."))
}

func TestEvaluateSkipSentinel(t *testing.T) {
	llm := &stubLLM{}
	e := newTestEvaluator(llm)

	for _, answer := range []string{model.SkippedAnswer, "[skip]", "[SKIPPED]"} {
		eval := e.Evaluate(context.Background(), "q", answer, "")
		assert.Equal(t, 0, eval.Score)
		assert.Equal(t, model.ConfidenceHigh, eval.Confidence)
	}
	assert.Zero(t, llm.calls, "skip detection must not call the provider")
}

func TestEvaluateProviderFailure(t *testing.T) {
	llm := &stubLLM{err: errors.New("connection refused")}
	e := newTestEvaluator(llm)

	eval := e.Evaluate(context.Background(), "q", "a real answer", "")

	assert.Equal(t, 0, eval.Score)
	assert.Equal(t, model.ConfidenceLow, eval.Confidence)
	assert.Contains(t, eval.Feedback, "connection refused")
	assert.Equal(t, []string{"Evaluation error"}, eval.Weaknesses)
}

func TestEvaluateBatchParsesArray(t *testing.T) {
	llm := &stubLLM{response: `[
		{"question_index": 0, "score": 80, "feedback": "Good.", "confidence": "High"},
		{"question_index": 1, "score": 40, "feedback": "Thin.", "confidence": "Low"}
	]`}
	e := newTestEvaluator(llm)

	results := e.EvaluateBatch(context.Background(), []QAPair{
		{Question: "q1", Answer: "a1"},
		{Question: "q2", Answer: "a2"},
	})

	require.Len(t, results, 2)
	assert.Equal(t, 80, results[0].Score)
	assert.Equal(t, 40, results[1].Score)
	assert.Equal(t, 1, llm.calls, "batch should use one combined call")
}

func TestEvaluateBatchBackfillsSparseElements(t *testing.T) {
	llm := &stubLLM{response: `[{"score": 90}, {"feedback": "No score given."}]`}
	e := newTestEvaluator(llm)

	results := e.EvaluateBatch(context.Background(), []QAPair{
		{Question: "q1", Answer: "a1"},
		{Question: "q2", Answer: "a2"},
	})

	require.Len(t, results, 2)
	assert.Equal(t, "No feedback provided", results[0].Feedback)
	assert.Equal(t, model.ConfidenceMedium, results[0].Confidence)
	assert.Equal(t, 0, results[1].Score)
	assert.Equal(t, "No score given.", results[1].Feedback)
}

func TestEvaluateBatchMalformedElementFallsBackPerIndex(t *testing.T) {
	llm := &stubLLM{fn: func(userPrompt, _ string) (string, error) {
		if strings.Contains(userPrompt, "Evaluate these interview answers") {
			return `[{"score": 80, "feedback": "Good."}, "not an object"]`, nil
		}
		return `{"score": 55, "feedback": "Individually evaluated."}`, nil
	}}
	e := newTestEvaluator(llm)

	results := e.EvaluateBatch(context.Background(), []QAPair{
		{Question: "q1", Answer: "a1"},
		{Question: "q2", Answer: "a2"},
	})

	require.Len(t, results, 2)
	assert.Equal(t, 80, results[0].Score)
	assert.Equal(t, 55, results[1].Score)
	assert.Equal(t, 2, llm.calls)
}

func TestEvaluateBatchUnusableResponseFallsBackIndividually(t *testing.T) {
	llm := &stubLLM{fn: func(userPrompt, _ string) (string, error) {
		if strings.Contains(userPrompt, "Evaluate these interview answers") {
			return "this is not JSON at all, certainly not an array", nil
		}
		return `{"score": 65, "feedback": "Individually evaluated."}`, nil
	}}
	e := newTestEvaluator(llm)

	results := e.EvaluateBatch(context.Background(), []QAPair{
		{Question: "q1", Answer: "a1"},
		{Question: "q2", Answer: "a2"},
	})

	require.Len(t, results, 2)
	assert.Equal(t, 65, results[0].Score)
	assert.Equal(t, 65, results[1].Score)
}

func TestEvaluateBatchSinglePairUsesIndividualPath(t *testing.T) {
	llm := &stubLLM{response: `{"score": 75, "feedback": "Solid."}`}
	e := newTestEvaluator(llm)

	results := e.EvaluateBatch(context.Background(), []QAPair{{Question: "q1", Answer: "a1"}})

	require.Len(t, results, 1)
	assert.Equal(t, 75, results[0].Score)
}
