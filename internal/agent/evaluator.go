package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/devendraBainda/AI-Interview-Agent/internal/logger"
	"github.com/devendraBainda/AI-Interview-Agent/internal/model"
	"github.com/devendraBainda/AI-Interview-Agent/internal/service"
	"go.uber.org/zap"
)

const evaluatorSystemPrompt = `You are an expert interview evaluator. Assess the candidate's answer
objectively and provide constructive feedback. Consider clarity, relevance, depth,
and completeness of the response. Always respond in valid JSON format.`

const batchSystemPrompt = `You are an efficient batch evaluator. Evaluate multiple interview answers
and return results in JSON format.`

// QAPair is one question with the candidate's answer, for batch evaluation.
type QAPair struct {
	Question string
	Answer   string
}

// Evaluator judges free-text answers with the LLM. Evaluate never fails:
// every error path degrades to a well-formed Evaluation record.
type Evaluator struct {
	llm     service.LLMService
	timeout time.Duration
	logger  *zap.Logger
}

func NewEvaluator(llm service.LLMService, timeout time.Duration, logger *zap.Logger) *Evaluator {
	return &Evaluator{llm: llm, timeout: timeout, logger: logger}
}

// Evaluate scores one answer. contextInfo carries optional context from
// previous answers and may be empty.
func (e *Evaluator) Evaluate(ctx context.Context, question, answer, contextInfo string) model.Evaluation {
	lower := strings.ToLower(answer)
	if strings.Contains(lower, "[skipped]") || strings.Contains(lower, "[skip]") {
		return model.SkippedEvaluation()
	}

	prompt := buildEvaluationPrompt(question, answer, contextInfo)

	callCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	text, err := e.llm.GenerateResponse(callCtx, prompt, evaluatorSystemPrompt)
	if err != nil {
		e.logger.Warn("answer evaluation failed", zap.Error(err))
		return failureEvaluation(err)
	}

	evaluation, perr := parseEvaluationJSON(text)
	if perr != nil {
		e.logger.Warn("evaluation response was not valid JSON, using text parser",
			zap.Error(perr),
			zap.String("response_preview", logger.Truncate(text, 200)),
		)
		return parseTextEvaluation(text)
	}

	e.logger.Debug("answer evaluated", zap.Int("score", evaluation.Score))
	return evaluation
}

// EvaluateBatch judges several answers with one combined prompt. Malformed
// array elements fall back to individual evaluation for that index only;
// a completely unparseable response falls back to evaluating every pair
// individually.
func (e *Evaluator) EvaluateBatch(ctx context.Context, pairs []QAPair) []model.Evaluation {
	if len(pairs) <= 1 {
		results := make([]model.Evaluation, 0, len(pairs))
		for _, p := range pairs {
			results = append(results, e.Evaluate(ctx, p.Question, p.Answer, ""))
		}
		return results
	}

	var b strings.Builder
	b.WriteString("Evaluate these interview answers:\n\n")
	for i, p := range pairs {
		fmt.Fprintf(&b, "QUESTION %d: %s\n", i+1, p.Question)
		fmt.Fprintf(&b, "ANSWER: %s\n\n", p.Answer)
	}
	b.WriteString(`Provide evaluations in JSON format as a list of objects with:
- question_index (starting from 0)
- score (0-100)
- feedback (brief, 1-2 sentences)
- suggestions (list of 1-2 items)
- confidence (High/Medium/Low)

Return only valid JSON array format.`)

	callCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	text, err := e.llm.GenerateResponse(callCtx, b.String(), batchSystemPrompt)
	if err != nil {
		e.logger.Warn("batch evaluation failed, evaluating individually", zap.Error(err))
		return e.evaluateIndividually(ctx, pairs)
	}

	var elements []json.RawMessage
	if jerr := json.Unmarshal([]byte(stripCodeFences(text)), &elements); jerr != nil || len(elements) != len(pairs) {
		e.logger.Warn("batch evaluation response unusable, evaluating individually",
			zap.Error(jerr),
			zap.Int("elements", len(elements)),
			zap.Int("expected", len(pairs)),
		)
		return e.evaluateIndividually(ctx, pairs)
	}

	results := make([]model.Evaluation, len(pairs))
	for i, element := range elements {
		var fields map[string]any
		if jerr := json.Unmarshal(element, &fields); jerr != nil {
			results[i] = e.Evaluate(ctx, pairs[i].Question, pairs[i].Answer, "")
			continue
		}
		results[i] = evaluationFromFields(fields)
	}
	return results
}

func (e *Evaluator) evaluateIndividually(ctx context.Context, pairs []QAPair) []model.Evaluation {
	results := make([]model.Evaluation, 0, len(pairs))
	for _, p := range pairs {
		results = append(results, e.Evaluate(ctx, p.Question, p.Answer, ""))
	}
	return results
}

func buildEvaluationPrompt(question, answer, contextInfo string) string {
	contextPrompt := ""
	if contextInfo != "" {
		contextPrompt = fmt.Sprintf("\n\nContext from previous answers: %s", contextInfo)
	}

	return fmt.Sprintf(`Please evaluate this interview answer:

QUESTION: %s
CANDIDATE ANSWER: %s
%s

Provide evaluation based on:
- Relevance to the question (0-30 points)
- Technical accuracy (0-30 points)
- Depth of knowledge (0-20 points)
- Clarity of explanation (0-20 points)

Return your evaluation in this exact JSON format:
{
    "score": <integer 0-100>,
    "feedback": "<detailed feedback 2-3 sentences>",
    "suggestions": ["<suggestion1>", "<suggestion2>"],
    "confidence": "<High/Medium/Low>",
    "strengths": ["<strength1>", "<strength2>"],
    "weaknesses": ["<weakness1>", "<weakness2>"],
    "followup_questions": ["<question1>", "<question2>"]
}

Ensure the response is valid JSON only, no additional text.`, question, answer, contextPrompt)
}

// parseEvaluationJSON extracts and parses the JSON object from the model
// response, backfilling missing fields with documented defaults and
// clamping the score into [0,100].
func parseEvaluationJSON(text string) (model.Evaluation, error) {
	cleaned := stripCodeFences(text)

	// Greedy bracket matching: first '{' through last '}'.
	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start == -1 || end <= start {
		return model.Evaluation{}, fmt.Errorf("no JSON object in response")
	}
	cleaned = cleaned[start : end+1]

	var fields map[string]any
	if err := json.Unmarshal([]byte(cleaned), &fields); err != nil {
		return model.Evaluation{}, fmt.Errorf("parse evaluation JSON: %w", err)
	}
	return evaluationFromFields(fields), nil
}

// evaluationFromFields assembles an Evaluation from loosely typed JSON
// fields. Missing fields get defaults, never trusted to be present.
func evaluationFromFields(fields map[string]any) model.Evaluation {
	return model.Evaluation{
		Score:             clampScore(coerceInt(fields["score"], 0)),
		Feedback:          coerceString(fields["feedback"], "No feedback provided"),
		Suggestions:       coerceStringList(fields["suggestions"]),
		Confidence:        coerceConfidence(fields["confidence"], model.ConfidenceMedium),
		Strengths:         coerceStringList(fields["strengths"]),
		Weaknesses:        coerceStringList(fields["weaknesses"]),
		FollowupQuestions: coerceStringList(fields["followup_questions"]),
	}
}

var (
	scorePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)score\D*?(\d{1,3})`),
		regexp.MustCompile(`(?i)(\d{1,3})\s*points?`),
		regexp.MustCompile(`(\d{1,3})\s*[/%]`),
		regexp.MustCompile(`(?i)rating\D*?(\d{1,3})`),
	}
	confidencePattern  = regexp.MustCompile(`(?i)confidence\W*?(low|medium|high)`)
	suggestionsPattern = regexp.MustCompile(`(?is)suggest[^:]*:(.*?)(?:\n\n|\n[A-Z]|$)`)
)

// parseTextEvaluation is the fallback parser for responses that are not
// valid JSON. It scrapes a score, confidence and suggestions out of prose
// and uses the leading text as feedback.
func parseTextEvaluation(text string) model.Evaluation {
	result := model.Evaluation{
		Score:             50,
		Confidence:        model.ConfidenceMedium,
		Suggestions:       []string{},
		Strengths:         []string{},
		Weaknesses:        []string{},
		FollowupQuestions: []string{},
	}

	for _, pattern := range scorePatterns {
		if m := pattern.FindStringSubmatch(text); m != nil {
			if score, err := strconv.Atoi(m[1]); err == nil {
				result.Score = clampScore(score)
				break
			}
		}
	}

	if m := confidencePattern.FindStringSubmatch(text); m != nil {
		result.Confidence = coerceConfidence(m[1], model.ConfidenceMedium)
	}

	if m := suggestionsPattern.FindStringSubmatch(text); m != nil {
		var suggestions []string
		for _, line := range strings.Split(m[1], "\n") {
			line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "-•*"))
			if line != "" {
				suggestions = append(suggestions, line)
			}
			if len(suggestions) == 3 {
				break
			}
		}
		result.Suggestions = suggestions
	}

	if len(text) > 500 {
		result.Feedback = text[:500] + "..."
	} else {
		result.Feedback = text
	}
	return result
}

func failureEvaluation(err error) model.Evaluation {
	return model.Evaluation{
		Score:             0,
		Feedback:          fmt.Sprintf("Evaluation failed: %v", err),
		Suggestions:       []string{"Technical issue occurred during evaluation"},
		Confidence:        model.ConfidenceLow,
		Strengths:         []string{},
		Weaknesses:        []string{"Evaluation error"},
		FollowupQuestions: []string{},
	}
}

// stripCodeFences removes markdown code-fence wrappers. LLMs often wrap
// JSON in fences even when instructed not to.
func stripCodeFences(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
	} else {
		return text
	}
	if idx := strings.LastIndex(text, "```"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func coerceInt(v any, fallback int) int {
	switch val := v.(type) {
	case float64:
		return int(val)
	case int:
		return val
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(val)); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(strings.TrimSpace(val), 64); err == nil {
			return int(f)
		}
	}
	return fallback
}

func coerceString(v any, fallback string) string {
	if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
		return strings.TrimSpace(s)
	}
	return fallback
}

func coerceStringList(v any) []string {
	list, ok := v.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
			out = append(out, strings.TrimSpace(s))
		}
	}
	return out
}

func coerceConfidence(v any, fallback string) string {
	s, ok := v.(string)
	if !ok {
		return fallback
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return model.ConfidenceLow
	case "medium":
		return model.ConfidenceMedium
	case "high":
		return model.ConfidenceHigh
	}
	return fallback
}
