package handler

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/devendraBainda/AI-Interview-Agent/internal/agent"
	"github.com/devendraBainda/AI-Interview-Agent/internal/config"
	"github.com/devendraBainda/AI-Interview-Agent/internal/dto"
	"github.com/devendraBainda/AI-Interview-Agent/internal/middleware"
	"github.com/devendraBainda/AI-Interview-Agent/internal/model"
	"github.com/devendraBainda/AI-Interview-Agent/internal/response"
	"github.com/devendraBainda/AI-Interview-Agent/internal/service"
	"github.com/devendraBainda/AI-Interview-Agent/internal/usecase"
	"github.com/devendraBainda/AI-Interview-Agent/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	maxResumeSize = 10 * 1024 * 1024
	// Recordings below this size carry no usable speech, only container
	// headers and silence.
	minAudioBytes = 1000
	maxSpeakChars = 1000
)

type InterviewHandler struct {
	uc       *usecase.InterviewUsecase
	speech   *service.SpeechService
	provider string
	logger   *zap.Logger
}

func NewInterviewHandler(uc *usecase.InterviewUsecase, speech *service.SpeechService, provider string, logger *zap.Logger) *InterviewHandler {
	return &InterviewHandler{uc: uc, speech: speech, provider: provider, logger: logger}
}

func (h *InterviewHandler) RegisterRoutes(app *fiber.App) {
	api := app.Group("/api")

	api.Get("/health", h.Health)
	api.Get("/sessions", h.ListSessions)
	api.Post("/sessions", h.CreateSession)
	api.Get("/sessions/:id", h.GetSession)
	api.Delete("/sessions/:id", h.ResetSession)
	api.Post("/sessions/:id/analyze", middleware.RateLimiter(5, 1*time.Minute), h.AnalyzeResume)
	api.Post("/sessions/:id/answers", h.SubmitAnswer)
	api.Post("/sessions/:id/finish", h.FinishInterview)
	api.Get("/sessions/:id/progress", h.Progress)
	api.Get("/sessions/:id/report", h.DownloadReport)
	api.Post("/transcribe", h.Transcribe)
	api.Post("/speak", h.Speak)
}

type createSessionRequest struct {
	CandidateName string `json:"candidate_name"`
}

func (h *InterviewHandler) CreateSession(c *fiber.Ctx) error {
	var req createSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}

	session, err := h.uc.Start(req.CandidateName)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to create session",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Session created",
		Data:    dto.NewSessionDTO(session),
	})
}

func (h *InterviewHandler) GetSession(c *fiber.Ctx) error {
	session, err := h.uc.GetSession(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "session not found",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get session",
		Data:    dto.NewSessionDTO(session),
	})
}

func (h *InterviewHandler) ListSessions(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	pageSize := c.QueryInt("page_size", 20)
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	sessions, total, err := h.uc.ListSessions((page-1)*pageSize, pageSize)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to list sessions",
		}, err)
	}

	summaries := make([]dto.SessionSummaryDTO, 0, len(sessions))
	for i := range sessions {
		summaries = append(summaries, dto.NewSessionSummaryDTO(&sessions[i]))
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message:    "Success list sessions",
		Data:       summaries,
		Pagination: response.NewPagination(page, pageSize, len(summaries), total),
	})
}

// AnalyzeResume accepts the resume upload, extracts its text and moves the
// session into the interview stage with a generated question list.
func (h *InterviewHandler) AnalyzeResume(c *fiber.Ctx) error {
	file, err := c.FormFile("resume_file")
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "resume_file is required",
		}, err)
	}
	if file.Size > maxResumeSize {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "resume file is too large (max 10MB)",
		})
	}

	savePath := filepath.Join(os.TempDir(), fmt.Sprintf("resume-%s%s", uuid.NewString(), filepath.Ext(file.Filename)))
	if err := c.SaveFile(file, savePath); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "cannot save resume file",
		}, err)
	}
	defer os.Remove(savePath)

	resumeText, err := util.ExtractResumeText(savePath)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "failed to extract resume text",
		}, err)
	}

	questions, err := h.uc.SubmitAnalysis(c.Context(), c.Params("id"), resumeText)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to analyze resume",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Resume analyzed",
		Data: fiber.Map{
			"questions":       questions,
			"total_questions": len(questions),
		},
	})
}

type submitAnswerRequest struct {
	Answer string `json:"answer"`
	Skip   bool   `json:"skip"`
}

func (h *InterviewHandler) SubmitAnswer(c *fiber.Ctx) error {
	var req submitAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}

	evaluation, err := h.uc.SubmitAnswer(c.Context(), c.Params("id"), req.Answer, req.Skip)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to submit answer",
		}, err)
	}

	session, err := h.uc.GetSession(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to load session",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Answer recorded",
		Data: fiber.Map{
			"evaluation": evaluation,
			"progress":   dto.NewProgressDTO(session),
			"complete":   session.Complete(),
		},
	})
}

func (h *InterviewHandler) FinishInterview(c *fiber.Ctx) error {
	session, err := h.uc.Finish(c.Context(), c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to finish interview",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Interview finished",
		Data:    dto.NewSessionDTO(session),
	})
}

func (h *InterviewHandler) ResetSession(c *fiber.Ctx) error {
	if err := h.uc.Reset(c.Params("id")); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to reset session",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Session reset",
	})
}

func (h *InterviewHandler) Progress(c *fiber.Ctx) error {
	session, err := h.uc.GetSession(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "session not found",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get progress",
		Data:    dto.NewProgressDTO(session),
	})
}

// DownloadReport serves the final report as a plain-text attachment with
// the per-question breakdown appended.
func (h *InterviewHandler) DownloadReport(c *fiber.Ctx) error {
	session, err := h.uc.GetSession(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "session not found",
		}, err)
	}
	if session.Stage != model.StageResults || session.FinalReport == "" {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusConflict,
			Message: "interview is not finished yet",
		})
	}

	var b strings.Builder
	b.WriteString("AI INTERVIEW REPORT\n")
	b.WriteString("===================\n\n")
	fmt.Fprintf(&b, "Candidate: %s\n", session.CandidateName)
	fmt.Fprintf(&b, "Date: %s\n", session.UpdatedAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "Questions answered: %d/%d\n", session.AnsweredCount(), len(session.Questions))
	fmt.Fprintf(&b, "Average score: %.1f/100\n\n", session.AverageScore())
	b.WriteString(session.FinalReport)
	b.WriteString("\n\nDETAILED QUESTION BREAKDOWN\n")
	b.WriteString("===========================\n\n")
	b.WriteString(agent.FormatEvaluations(session.Evaluations))

	filename := fmt.Sprintf("interview_report_%s.txt", session.ID)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	c.Set(fiber.HeaderContentType, "text/plain; charset=utf-8")
	return c.SendString(b.String())
}

type transcribeRequest struct {
	AudioData string `json:"audio_data"`
}

// Transcribe converts a base64 recording to text. Tiny payloads and empty
// transcriptions report no_speech rather than an error so the client can
// prompt the candidate to try again.
func (h *InterviewHandler) Transcribe(c *fiber.Ctx) error {
	if !h.speech.TranscriptionEnabled() {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusServiceUnavailable,
			Message: "speech-to-text is not configured",
		})
	}

	var req transcribeRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}
	if req.AudioData == "" {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "audio_data is required",
		})
	}

	audio, err := base64.StdEncoding.DecodeString(req.AudioData)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "audio_data must be base64 encoded",
		}, err)
	}

	if len(audio) < minAudioBytes {
		return util.SuccessResponse(c, util.SuccessResponseFormat{
			Message: "No speech detected",
			Data:    fiber.Map{"status": "no_speech", "text": ""},
		})
	}

	text, err := h.speech.Transcribe(c.Context(), audio)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadGateway,
			Message: "transcription failed",
		}, err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return util.SuccessResponse(c, util.SuccessResponseFormat{
			Message: "No speech detected",
			Data:    fiber.Map{"status": "no_speech", "text": ""},
		})
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success transcribe audio",
		Data:    fiber.Map{"status": "ok", "text": text},
	})
}

type speakRequest struct {
	Text  string `json:"text"`
	Voice string `json:"voice"`
}

func (h *InterviewHandler) Speak(c *fiber.Ctx) error {
	if !h.speech.SynthesisEnabled() {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusServiceUnavailable,
			Message: "text-to-speech is not configured",
		})
	}

	var req speakRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}

	text := strings.TrimSpace(req.Text)
	if text == "" {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "text is required",
		})
	}
	if len(text) > maxSpeakChars {
		text = text[:maxSpeakChars]
	}

	audio, err := h.speech.Synthesize(c.Context(), text, req.Voice)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadGateway,
			Message: "speech synthesis failed",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success synthesize speech",
		Data:    fiber.Map{"audio_data": base64.StdEncoding.EncodeToString(audio)},
	})
}

// Health reports the availability of the LLM provider and the optional
// speech directions so the frontend can hide unsupported features.
func (h *InterviewHandler) Health(c *fiber.Ctx) error {
	cfg := config.LoadAppConfig()
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "OK",
		Data: fiber.Map{
			"status":       "healthy",
			"env":          cfg.Env,
			"llm_provider": h.provider,
			"modules": fiber.Map{
				"transcription": h.speech.TranscriptionEnabled(),
				"synthesis":     h.speech.SynthesisEnabled(),
			},
		},
	})
}
