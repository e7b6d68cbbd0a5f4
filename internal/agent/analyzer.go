package agent

import (
	"context"
	"fmt"
	"time"

	"github.com/devendraBainda/AI-Interview-Agent/internal/service"
	"go.uber.org/zap"
)

const analyzerSystemPrompt = `You are a professional technical recruiter and resume analyst.
Analyze the provided resume and extract key information including professional summary,
key skills and technologies, work experience highlights, education background, notable
achievements and areas of expertise. Provide a comprehensive analysis that will be used
to generate personalized interview questions.`

// Analyzer turns raw resume text into an interview preparation briefing.
type Analyzer struct {
	llm     service.LLMService
	timeout time.Duration
	logger  *zap.Logger
}

func NewAnalyzer(llm service.LLMService, timeout time.Duration, logger *zap.Logger) *Analyzer {
	return &Analyzer{llm: llm, timeout: timeout, logger: logger}
}

// AnalyzeResume summarizes the resume for the planner. On provider failure
// the raw resume text is returned so planning can still proceed.
func (a *Analyzer) AnalyzeResume(ctx context.Context, resumeText string) string {
	prompt := fmt.Sprintf(`Carefully read the candidate's resume text below:

%s

Extract and summarize:
- Key technical skills
- Relevant domains / fields
- Notable projects or achievements
- Strengths and potential weak areas
- Topics suitable for technical interview

Output a complete INTERVIEW PREPARATION BRIEFING.
Be detailed and specific.

Please provide:
1. Professional Summary (2-3 sentences)
2. Key Technical Skills (list)
3. Key Soft Skills (list)
4. Work Experience Summary
5. Education Background
6. Notable Achievements
7. Recommended Interview Focus Areas
8. Potential Challenge Areas

Format your response clearly with headers for each section.`, resumeText)

	callCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	briefing, err := a.llm.GenerateResponse(callCtx, prompt, analyzerSystemPrompt)
	if err != nil {
		a.logger.Warn("resume analysis failed, using raw resume text", zap.Error(err))
		return resumeText
	}
	a.logger.Info("resume analysis completed", zap.Int("briefing_length", len(briefing)))
	return briefing
}
