package agent

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/devendraBainda/AI-Interview-Agent/internal/model"
	"github.com/devendraBainda/AI-Interview-Agent/internal/service"
	"go.uber.org/zap"
)

const reporterSystemPrompt = `You are an expert AI interview coach and career advisor.
Generate comprehensive, constructive feedback that helps candidates improve their interview skills.
Be encouraging while providing specific, actionable advice.`

// Reporter synthesizes the final narrative report. GenerateReport never
// fails: the caller always receives renderable text.
type Reporter struct {
	llm     service.LLMService
	timeout time.Duration
	logger  *zap.Logger
}

func NewReporter(llm service.LLMService, timeout time.Duration, logger *zap.Logger) *Reporter {
	return &Reporter{llm: llm, timeout: timeout, logger: logger}
}

func (r *Reporter) GenerateReport(ctx context.Context, evaluations []model.Evaluation, answeredCount, totalQuestions int) string {
	if len(evaluations) == 0 {
		return "No answers were provided during the interview."
	}

	answeredPercent := 0
	if totalQuestions > 0 {
		answeredPercent = int(math.Round(float64(answeredCount) / float64(totalQuestions) * 100))
	}
	avgScore := averageScore(evaluations)
	joined := FormatEvaluations(evaluations)

	completionStatus := "complete"
	partialNotice := ""
	if answeredCount < totalQuestions {
		completionStatus = "partial"
		partialNotice = fmt.Sprintf(" NOTE: This is a partial report based on %d/%d answered questions (%d%% completion).",
			answeredCount, totalQuestions, answeredPercent)
	}

	prompt := fmt.Sprintf(`Generate a complete final interview report.%s

INTERVIEW STATISTICS:
- Questions Answered: %d/%d (%d%%)
- Average Score: %.1f%%
- Interview Status: %s

DETAILED EVALUATIONS:
%s

Create a comprehensive report with these sections:

# Interview Performance Summary
- Overall performance assessment
- Completion rate and engagement
- Key performance metrics

# Candidate Strengths
- Technical competencies demonstrated
- Communication skills observed
- Problem-solving approach

# Areas for Improvement
- Specific skills to develop
- Knowledge gaps identified
- Interview technique suggestions

# Recommended Learning Resources
- Study topics based on performance
- Skill development recommendations
- Practice areas to focus on

# Final Assessment and Encouragement
- Overall readiness assessment
- Motivational feedback
- Next steps for improvement

Write in a professional yet encouraging tone. Be specific with recommendations and provide actionable advice.`,
		partialNotice, answeredCount, totalQuestions, answeredPercent, avgScore, completionStatus, joined)

	callCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	report, err := r.llm.GenerateResponse(callCtx, prompt, reporterSystemPrompt)
	if err != nil {
		r.logger.Warn("report generation failed, using fallback report", zap.Error(err))
		return fallbackReport(answeredCount, totalQuestions, answeredPercent, avgScore, joined, err)
	}
	r.logger.Info("final report generated", zap.Int("report_length", len(report)))
	return report
}

// FormatEvaluations renders each evaluation as a labelled block, lists
// capped to their first 3 items. Shared by the report prompt, the fallback
// report and the downloadable report.
func FormatEvaluations(evaluations []model.Evaluation) string {
	blocks := make([]string, 0, len(evaluations))
	for i, eval := range evaluations {
		var b strings.Builder
		fmt.Fprintf(&b, "Question %d Evaluation:\n", i+1)
		fmt.Fprintf(&b, "Score: %d%%\n", eval.Score)
		if eval.Feedback != "" {
			fmt.Fprintf(&b, "Feedback: %s\n", eval.Feedback)
		}
		writeCappedList(&b, "Suggestions:", eval.Suggestions)
		writeCappedList(&b, "Strengths:", eval.Strengths)
		writeCappedList(&b, "Areas to improve:", eval.Weaknesses)
		blocks = append(blocks, strings.TrimRight(b.String(), "\n"))
	}
	return strings.Join(blocks, "\n\n")
}

func writeCappedList(b *strings.Builder, label string, items []string) {
	if len(items) == 0 {
		return
	}
	if len(items) > 3 {
		items = items[:3]
	}
	b.WriteString(label + "\n")
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
}

func averageScore(evaluations []model.Evaluation) float64 {
	if len(evaluations) == 0 {
		return 0
	}
	total := 0
	for _, e := range evaluations {
		total += e.Score
	}
	return float64(total) / float64(len(evaluations))
}

func fallbackReport(answeredCount, totalQuestions, answeredPercent int, avgScore float64, joined string, cause error) string {
	return fmt.Sprintf(`# Interview Report

## Performance Summary
- Questions Answered: %d/%d (%d%%)
- Average Score: %.1f%%

## Evaluation Details
%s

## Technical Issue
report generation failed: %v

Please try generating the report again or contact support if the issue persists.`,
		answeredCount, totalQuestions, answeredPercent, avgScore, joined, cause)
}
