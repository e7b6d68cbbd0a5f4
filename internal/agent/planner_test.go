package agent

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestGeneratePlanReturnsProviderText(t *testing.T) {
	llm := &stubLLM{response: "### Question List\n1. What is Go?"}
	p := NewPlanner(llm, 10, 5*time.Second, zap.NewNop())

	plan := p.GeneratePlan(context.Background(), "candidate briefing", "")

	assert.Equal(t, "### Question List\n1. What is Go?", plan)
	require.Len(t, llm.prompts, 1)
	assert.Contains(t, llm.prompts[0], "candidate briefing")
}

func TestGeneratePlanIncludesRoleContext(t *testing.T) {
	llm := &stubLLM{response: "plan"}
	p := NewPlanner(llm, 10, 5*time.Second, zap.NewNop())

	p.GeneratePlan(context.Background(), "briefing", "Role 1: Backend Engineer")

	require.Len(t, llm.prompts, 1)
	assert.Contains(t, llm.prompts[0], "Role 1: Backend Engineer")
}

func TestGeneratePlanFallbackOnFailure(t *testing.T) {
	llm := &stubLLM{err: errors.New("quota exceeded")}
	p := NewPlanner(llm, 10, 5*time.Second, zap.NewNop())

	plan := p.GeneratePlan(context.Background(), "briefing", "")

	assert.Contains(t, plan, "### Question List")
	assert.Contains(t, plan, "quota exceeded")

	// The fallback plan must survive extraction with a full question list.
	questions := ExtractQuestions(plan, 10)
	assert.Len(t, questions, 10)
}

func TestAnalyzeResumeFallsBackToRawText(t *testing.T) {
	llm := &stubLLM{err: errors.New("provider down")}
	a := NewAnalyzer(llm, 5*time.Second, zap.NewNop())

	briefing := a.AnalyzeResume(context.Background(), "raw resume text")

	assert.Equal(t, "raw resume text", briefing)
}

func TestAnalyzeResumeReturnsBriefing(t *testing.T) {
	llm := &stubLLM{response: "INTERVIEW PREPARATION BRIEFING"}
	a := NewAnalyzer(llm, 5*time.Second, zap.NewNop())

	briefing := a.AnalyzeResume(context.Background(), "raw resume text")

	assert.Equal(t, "INTERVIEW PREPARATION BRIEFING", briefing)
}
