package dto

import (
	"time"

	"github.com/devendraBainda/AI-Interview-Agent/internal/model"
	"github.com/google/uuid"
)

type SessionDTO struct {
	ID              uuid.UUID          `json:"id"`
	CandidateName   string             `json:"candidate_name"`
	Stage           model.Stage        `json:"stage"`
	Questions       []string           `json:"questions"`
	Answers         []string           `json:"answers"`
	Evaluations     []model.Evaluation `json:"evaluations"`
	CurrentQuestion int                `json:"current_question"`
	FinalReport     string             `json:"final_report,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

func NewSessionDTO(s *model.Session) SessionDTO {
	return SessionDTO{
		ID:              s.ID,
		CandidateName:   s.CandidateName,
		Stage:           s.Stage,
		Questions:       s.Questions,
		Answers:         s.Answers,
		Evaluations:     s.Evaluations,
		CurrentQuestion: s.CurrentQuestion,
		FinalReport:     s.FinalReport,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

// SessionSummaryDTO is the listing projection: no transcript payload.
type SessionSummaryDTO struct {
	ID            uuid.UUID   `json:"id"`
	CandidateName string      `json:"candidate_name"`
	Stage         model.Stage `json:"stage"`
	Questions     int         `json:"questions"`
	Answered      int         `json:"answered"`
	AverageScore  float64     `json:"average_score"`
	CreatedAt     time.Time   `json:"created_at"`
}

func NewSessionSummaryDTO(s *model.Session) SessionSummaryDTO {
	return SessionSummaryDTO{
		ID:            s.ID,
		CandidateName: s.CandidateName,
		Stage:         s.Stage,
		Questions:     len(s.Questions),
		Answered:      s.AnsweredCount(),
		AverageScore:  s.AverageScore(),
		CreatedAt:     s.CreatedAt,
	}
}

// ProgressDTO is the lightweight projection polled by the interview page.
type ProgressDTO struct {
	Progress        float64 `json:"progress"`
	CurrentQuestion int     `json:"current_question"`
	TotalQuestions  int     `json:"total_questions"`
	AnsweredCount   int     `json:"answered_count"`
	AverageScore    float64 `json:"avg_score"`
	CompletionRate  float64 `json:"completion_rate"`
}

func NewProgressDTO(s *model.Session) ProgressDTO {
	total := len(s.Questions)
	progress := 0.0
	currentNumber := 0
	if total > 0 {
		currentNumber = s.CurrentQuestion + 1
		if currentNumber > total {
			currentNumber = total
		}
		progress = float64(currentNumber) / float64(total) * 100
	}
	return ProgressDTO{
		Progress:        progress,
		CurrentQuestion: currentNumber,
		TotalQuestions:  total,
		AnsweredCount:   s.AnsweredCount(),
		AverageScore:    s.AverageScore(),
		CompletionRate:  s.CompletionRate(),
	}
}
