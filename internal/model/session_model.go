package model

import (
	"time"

	"github.com/google/uuid"
)

// Stage is the coarse phase of an interview session. It only ever advances:
// upload -> interview -> results.
type Stage string

const (
	StageUpload    Stage = "upload"
	StageInterview Stage = "interview"
	StageResults   Stage = "results"
)

// SkippedAnswer is the sentinel stored when the candidate skips a question.
const SkippedAnswer = "[Skipped]"

type Session struct {
	ID              uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	CandidateName   string       `gorm:"type:varchar(255)" json:"candidate_name"`
	Stage           Stage        `gorm:"type:varchar(20)" json:"stage"`
	ResumeText      string       `gorm:"type:text" json:"resume_text"`
	ResumeAnalysis  string       `gorm:"type:text" json:"resume_analysis"`
	InterviewPlan   string       `gorm:"type:text" json:"interview_plan"`
	Questions       []string     `gorm:"serializer:json;type:jsonb" json:"questions"`
	Answers         []string     `gorm:"serializer:json;type:jsonb" json:"answers"`
	Evaluations     []Evaluation `gorm:"serializer:json;type:jsonb" json:"evaluations"`
	CurrentQuestion int          `json:"current_question"`
	FinalReport     string       `gorm:"type:text" json:"final_report"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

func (s *Session) TableName() string {
	return "sessions"
}

// Complete reports whether every question has received an answer.
func (s *Session) Complete() bool {
	return len(s.Questions) > 0 && s.CurrentQuestion >= len(s.Questions)
}

// AnsweredCount counts answers excluding skips.
func (s *Session) AnsweredCount() int {
	count := 0
	for _, a := range s.Answers {
		if a != SkippedAnswer {
			count++
		}
	}
	return count
}

// AverageScore is the mean over all evaluation scores, skips counting as
// zero. Returns 0 when nothing has been evaluated yet.
func (s *Session) AverageScore() float64 {
	if len(s.Evaluations) == 0 {
		return 0
	}
	total := 0
	for _, e := range s.Evaluations {
		total += e.Score
	}
	return float64(total) / float64(len(s.Evaluations))
}

// CompletionRate is the percentage of questions answered (skips excluded).
func (s *Session) CompletionRate() float64 {
	if len(s.Questions) == 0 {
		return 0
	}
	return float64(s.AnsweredCount()) / float64(len(s.Questions)) * 100
}
