package agent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/devendraBainda/AI-Interview-Agent/internal/service"
	"go.uber.org/zap"
)

const plannerSystemPrompt = `You are an expert interview designer. Based on the resume analysis
provided, create a comprehensive interview plan with diverse question types that assess both
technical and behavioral competencies. The questions should be tailored to the candidate's
background and experience level.`

// Planner drives interview plan generation. A plan is always produced: on
// provider failure a candidate-agnostic fallback plan is substituted so the
// interview can proceed.
type Planner struct {
	llm          service.LLMService
	maxQuestions int
	timeout      time.Duration
	logger       *zap.Logger
}

func NewPlanner(llm service.LLMService, maxQuestions int, timeout time.Duration, logger *zap.Logger) *Planner {
	return &Planner{llm: llm, maxQuestions: maxQuestions, timeout: timeout, logger: logger}
}

func (p *Planner) MaxQuestions() int {
	return p.maxQuestions
}

// GeneratePlan produces the free-text interview plan from the candidate
// briefing. roleContext carries optional retrieved role-profile text and
// may be empty.
func (p *Planner) GeneratePlan(ctx context.Context, briefing, roleContext string) string {
	var contextSection string
	if strings.TrimSpace(roleContext) != "" {
		contextSection = fmt.Sprintf("\nRelevant role profiles for additional context:\n\n%s\n", roleContext)
	}

	prompt := fmt.Sprintf(`Based on the following candidate profile briefing:

%s
%s
Design a complete technical interview plan with these specifications:
- Difficulty Level: medium
- Maximum Questions: %d
- Question Types: Mix of technical, behavioral, and situational questions

Create an interview plan with:
1. Interview Overview: Brief description of interview focus areas
2. Topics Covered: List of technical domains and skills to assess
3. Question List: Exactly %d numbered interview questions
4. Difficulty Progression: How questions increase in complexity

Format your output with clear section headings:

### Interview Overview
[Brief overview of what this interview will assess]

### Topics Covered
[List of key areas to be evaluated]

### Question List
1. [First question - usually introductory]
2. [Second question - technical/role-specific]
3. [Third question - behavioral/situational]
[Continue with remaining questions...]

### Difficulty Progression
[Explanation of how questions build in complexity]

Make sure each question is:
- Clear and specific
- Relevant to the candidate's background
- Appropriate for the difficulty level
- Designed to assess different competencies

Focus on creating questions that will generate meaningful responses for evaluation.`,
		briefing, contextSection, p.maxQuestions, p.maxQuestions)

	callCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	plan, err := p.llm.GenerateResponse(callCtx, prompt, plannerSystemPrompt)
	if err != nil {
		p.logger.Warn("interview planning failed, using fallback plan", zap.Error(err))
		return fallbackPlan(err)
	}
	p.logger.Info("interview plan generated", zap.Int("plan_length", len(plan)))
	return plan
}

func fallbackPlan(cause error) string {
	return fmt.Sprintf(`### Interview Overview
Technical interview focusing on general software development skills and problem-solving abilities.

### Topics Covered
- Programming fundamentals
- Problem-solving approach
- Technical experience
- Communication skills
- Career development

### Question List
1. Can you tell me about yourself and your technical background?
2. What programming languages and technologies are you most comfortable with?
3. Describe a challenging technical problem you've solved recently.
4. How do you approach debugging when something isn't working as expected?
5. Tell me about a time when you had to learn a new technology or framework quickly.
6. How do you ensure your code is maintainable and follows best practices?
7. Describe your experience working in a team environment.
8. What interests you most about this role and our company?
9. How do you stay updated with new technologies and industry trends?
10. Where do you see yourself in your career in the next few years?

### Difficulty Progression
Questions start with general background, move to technical problem-solving, then behavioral scenarios, and conclude with career-focused questions.

Note: This is a fallback plan due to: interview planning failed: %v
`, cause)
}
