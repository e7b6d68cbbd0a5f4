package config

import (
	"os"
	"strconv"
	"sync"
	"time"
)

type InterviewConfig struct {
	// LLMProvider selects the primary provider: "gemini" or "openrouter".
	LLMProvider string

	MaxQuestions    int
	MinAnswerLength int

	PlanningTimeout   time.Duration
	EvaluationTimeout time.Duration
	ReportTimeout     time.Duration
}

var (
	interviewConfig *InterviewConfig
	interviewOnce   sync.Once
)

func LoadInterviewConfig() *InterviewConfig {
	interviewOnce.Do(func() {
		provider := os.Getenv("LLM_PROVIDER")
		if provider == "" {
			provider = "gemini"
		}
		interviewConfig = &InterviewConfig{
			LLMProvider:       provider,
			MaxQuestions:      envInt("MAX_QUESTIONS", 10),
			MinAnswerLength:   envInt("MIN_ANSWER_LENGTH", 10),
			PlanningTimeout:   envSeconds("PLANNING_TIMEOUT", 60),
			EvaluationTimeout: envSeconds("EVALUATION_TIMEOUT", 30),
			ReportTimeout:     envSeconds("REPORT_TIMEOUT", 60),
		}
	})
	return interviewConfig
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func envSeconds(key string, fallback int) time.Duration {
	return time.Duration(envInt(key, fallback)) * time.Second
}
