package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/devendraBainda/AI-Interview-Agent/internal/agent"
	"github.com/devendraBainda/AI-Interview-Agent/internal/apperr"
	"github.com/devendraBainda/AI-Interview-Agent/internal/model"
	"github.com/devendraBainda/AI-Interview-Agent/internal/repository"
	"github.com/devendraBainda/AI-Interview-Agent/internal/service"
	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"go.uber.org/zap"
)

// InterviewUsecase owns the session state machine: upload -> interview ->
// results. It is the only mutation point the web layer may use. A
// per-session mutex serializes the read-mutate-persist sequence so the
// len(answers) == len(evaluations) == currentQuestion invariant holds at
// every observation point; distinct sessions run concurrently.
type InterviewUsecase struct {
	sessions  repository.SessionRepository
	roles     *repository.RoleRepository
	embedder  service.EmbeddingService
	analyzer  *agent.Analyzer
	planner   *agent.Planner
	evaluator *agent.Evaluator
	reporter  *agent.Reporter
	logger    *zap.Logger

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

func NewInterviewUsecase(
	sessions repository.SessionRepository,
	analyzer *agent.Analyzer,
	planner *agent.Planner,
	evaluator *agent.Evaluator,
	reporter *agent.Reporter,
	logger *zap.Logger,
) *InterviewUsecase {
	return &InterviewUsecase{
		sessions:  sessions,
		analyzer:  analyzer,
		planner:   planner,
		evaluator: evaluator,
		reporter:  reporter,
		logger:    logger,
		locks:     make(map[string]*sync.Mutex),
	}
}

// WithRoleRetrieval enables pgvector role-profile retrieval as extra
// planner context. Only available with the postgres store.
func (uc *InterviewUsecase) WithRoleRetrieval(roles *repository.RoleRepository, embedder service.EmbeddingService) *InterviewUsecase {
	uc.roles = roles
	uc.embedder = embedder
	return uc
}

// Start creates a new session in the upload stage.
func (uc *InterviewUsecase) Start(candidateName string) (*model.Session, error) {
	candidateName = strings.TrimSpace(candidateName)
	if candidateName == "" {
		return nil, apperr.NewValidationError("candidate name must not be empty")
	}

	session := &model.Session{
		ID:            uuid.New(),
		CandidateName: candidateName,
		Stage:         model.StageUpload,
		Questions:     []string{},
		Answers:       []string{},
		Evaluations:   []model.Evaluation{},
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	if err := uc.sessions.Save(session); err != nil {
		return nil, apperr.NewStorageError("save", err)
	}

	uc.logger.Info("interview session started",
		zap.String("session_id", session.ID.String()),
		zap.String("candidate", candidateName),
	)
	return session, nil
}

// SubmitAnalysis runs the resume through analysis and planning, extracts
// the question list and moves the session into the interview stage.
// Provider failures degrade to fallback content; only storage failures
// abort the operation.
func (uc *InterviewUsecase) SubmitAnalysis(ctx context.Context, sessionID, resumeText string) ([]string, error) {
	unlock := uc.lock(sessionID)
	defer unlock()

	session, err := uc.find(sessionID)
	if err != nil {
		return nil, err
	}
	if session.Stage != model.StageUpload {
		return nil, apperr.NewInvalidStateError("questions already generated for session %s", sessionID)
	}

	briefing := uc.analyzer.AnalyzeResume(ctx, resumeText)
	roleContext := uc.retrieveRoleContext(ctx, resumeText)
	plan := uc.planner.GeneratePlan(ctx, briefing, roleContext)
	questions := agent.ExtractQuestions(plan, uc.planner.MaxQuestions())

	session.ResumeText = resumeText
	session.ResumeAnalysis = briefing
	session.InterviewPlan = plan
	session.Questions = questions
	session.Answers = []string{}
	session.Evaluations = []model.Evaluation{}
	session.CurrentQuestion = 0
	session.Stage = model.StageInterview
	session.UpdatedAt = time.Now()

	if err := uc.sessions.Save(session); err != nil {
		return nil, apperr.NewStorageError("save", err)
	}

	uc.logger.Info("resume analyzed and questions generated",
		zap.String("session_id", sessionID),
		zap.Int("questions", len(questions)),
	)
	return questions, nil
}

// SubmitAnswer records one answer and its evaluation, then advances the
// question cursor. Evaluator failures degrade to a zero-score record; the
// session always moves forward.
func (uc *InterviewUsecase) SubmitAnswer(ctx context.Context, sessionID, rawAnswer string, skip bool) (*model.Evaluation, error) {
	unlock := uc.lock(sessionID)
	defer unlock()

	session, err := uc.find(sessionID)
	if err != nil {
		return nil, err
	}
	if session.Stage != model.StageInterview {
		return nil, apperr.NewInvalidStateError("session %s is not in the interview stage", sessionID)
	}
	if session.CurrentQuestion >= len(session.Questions) {
		return nil, apperr.NewInvalidStateError("all questions already answered for session %s", sessionID)
	}

	var answer string
	var evaluation model.Evaluation
	if skip {
		answer = model.SkippedAnswer
		evaluation = model.SkippedEvaluation()
	} else {
		answer = strings.TrimSpace(rawAnswer)
		if answer == "" {
			return nil, apperr.NewValidationError("answer must not be empty; skip the question instead")
		}
		question := session.Questions[session.CurrentQuestion]
		evaluation = uc.evaluator.Evaluate(ctx, question, answer, "")
	}

	session.Answers = append(session.Answers, answer)
	session.Evaluations = append(session.Evaluations, evaluation)
	session.CurrentQuestion++
	session.UpdatedAt = time.Now()

	if err := uc.sessions.Save(session); err != nil {
		return nil, apperr.NewStorageError("save", err)
	}

	uc.logger.Info("answer recorded",
		zap.String("session_id", sessionID),
		zap.Int("question", session.CurrentQuestion),
		zap.Int("total", len(session.Questions)),
		zap.Bool("skipped", skip),
		zap.Int("score", evaluation.Score),
	)
	return &evaluation, nil
}

// Finish generates and persists the final report and freezes the session
// in the results stage. A report can be requested mid-interview; it is
// then based on the answers given so far.
func (uc *InterviewUsecase) Finish(ctx context.Context, sessionID string) (*model.Session, error) {
	unlock := uc.lock(sessionID)
	defer unlock()

	session, err := uc.find(sessionID)
	if err != nil {
		return nil, err
	}
	if session.Stage == model.StageResults {
		return session, nil
	}

	report := uc.reporter.GenerateReport(ctx, session.Evaluations, session.AnsweredCount(), len(session.Questions))

	session.FinalReport = report
	session.Stage = model.StageResults
	session.UpdatedAt = time.Now()

	if err := uc.sessions.Save(session); err != nil {
		return nil, apperr.NewStorageError("save", err)
	}

	uc.logger.Info("interview finished",
		zap.String("session_id", sessionID),
		zap.Int("answered", session.AnsweredCount()),
		zap.Float64("avg_score", session.AverageScore()),
	)
	return session, nil
}

// Reset deletes the session. Idempotent: resetting an unknown id is not an
// error.
func (uc *InterviewUsecase) Reset(sessionID string) error {
	unlock := uc.lock(sessionID)
	defer unlock()

	if err := uc.sessions.Delete(sessionID); err != nil {
		return apperr.NewStorageError("delete", err)
	}

	uc.locksMu.Lock()
	delete(uc.locks, sessionID)
	uc.locksMu.Unlock()

	uc.logger.Info("interview session reset", zap.String("session_id", sessionID))
	return nil
}

// GetSession returns the current session snapshot.
func (uc *InterviewUsecase) GetSession(sessionID string) (*model.Session, error) {
	return uc.find(sessionID)
}

// ListSessions pages through stored sessions, newest first.
func (uc *InterviewUsecase) ListSessions(offset, limit int) ([]model.Session, int64, error) {
	sessions, total, err := uc.sessions.List(offset, limit)
	if err != nil {
		return nil, 0, apperr.NewStorageError("list", err)
	}
	return sessions, total, nil
}

func (uc *InterviewUsecase) find(sessionID string) (*model.Session, error) {
	session, err := uc.sessions.FindByID(sessionID)
	if err == repository.ErrSessionNotFound {
		return nil, apperr.NewNotFoundError("session %s not found", sessionID)
	}
	if err != nil {
		return nil, apperr.NewStorageError("find", err)
	}
	return session, nil
}

// retrieveRoleContext embeds the resume and fetches the nearest seeded
// role profiles. Any failure here is tolerated: planning proceeds without
// the extra context.
func (uc *InterviewUsecase) retrieveRoleContext(ctx context.Context, resumeText string) string {
	if uc.roles == nil || uc.embedder == nil {
		return ""
	}

	embedding, err := uc.embedder.GenerateEmbedding(ctx, resumeText)
	if err != nil {
		uc.logger.Debug("resume embedding failed, planning without role context", zap.Error(err))
		return ""
	}

	profiles, err := uc.roles.SearchProfiles(pgvector.NewVector(embedding), 3)
	if err != nil || len(profiles) == 0 {
		uc.logger.Debug("role profile search returned nothing", zap.Error(err))
		return ""
	}

	var b strings.Builder
	for i, p := range profiles {
		fmt.Fprintf(&b, "Role %d: %s\n%s\n\n", i+1, p.Title, p.Content)
	}
	return b.String()
}

func (uc *InterviewUsecase) lock(sessionID string) func() {
	uc.locksMu.Lock()
	mu, ok := uc.locks[sessionID]
	if !ok {
		mu = &sync.Mutex{}
		uc.locks[sessionID] = mu
	}
	uc.locksMu.Unlock()

	mu.Lock()
	return mu.Unlock
}
