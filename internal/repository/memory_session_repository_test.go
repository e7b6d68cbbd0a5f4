package repository

import (
	"testing"
	"time"

	"github.com/devendraBainda/AI-Interview-Agent/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSession(name string) *model.Session {
	now := time.Now()
	return &model.Session{
		ID:              uuid.New(),
		CandidateName:   name,
		Stage:           model.StageInterview,
		Questions:       []string{"What is Go?", "Why channels?"},
		Answers:         []string{"A language."},
		Evaluations:     []model.Evaluation{{Score: 80, Feedback: "Good.", Confidence: model.ConfidenceHigh}},
		CurrentQuestion: 1,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func TestMemoryRepositoryRoundTrip(t *testing.T) {
	repo := NewMemorySessionRepository()
	session := sampleSession("Alice")

	require.NoError(t, repo.Save(session))

	loaded, err := repo.FindByID(session.ID.String())
	require.NoError(t, err)
	assert.Equal(t, session, loaded)
}

func TestMemoryRepositoryReturnsCopies(t *testing.T) {
	repo := NewMemorySessionRepository()
	session := sampleSession("Alice")
	require.NoError(t, repo.Save(session))

	// Mutating the original after Save must not affect the stored record.
	session.Answers = append(session.Answers, "later mutation")
	session.CandidateName = "changed"

	loaded, err := repo.FindByID(session.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "Alice", loaded.CandidateName)
	assert.Len(t, loaded.Answers, 1)

	// Mutating a loaded record must not affect the store either.
	loaded.Questions[0] = "tampered"
	reloaded, err := repo.FindByID(session.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "What is Go?", reloaded.Questions[0])
}

func TestMemoryRepositoryFindMissing(t *testing.T) {
	repo := NewMemorySessionRepository()

	_, err := repo.FindByID("nope")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMemoryRepositoryDeleteIsIdempotent(t *testing.T) {
	repo := NewMemorySessionRepository()
	session := sampleSession("Alice")
	require.NoError(t, repo.Save(session))

	require.NoError(t, repo.Delete(session.ID.String()))
	require.NoError(t, repo.Delete(session.ID.String()))

	_, err := repo.FindByID(session.ID.String())
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMemoryRepositoryListPagination(t *testing.T) {
	repo := NewMemorySessionRepository()
	base := time.Now()
	names := []string{"a", "b", "c", "d", "e"}
	for i, name := range names {
		s := sampleSession(name)
		s.CreatedAt = base.Add(time.Duration(i) * time.Second)
		require.NoError(t, repo.Save(s))
	}

	page, total, err := repo.List(0, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	require.Len(t, page, 2)
	assert.Equal(t, "e", page[0].CandidateName)
	assert.Equal(t, "d", page[1].CandidateName)

	page, _, err = repo.List(4, 2)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "a", page[0].CandidateName)

	page, _, err = repo.List(10, 2)
	require.NoError(t, err)
	assert.Empty(t, page)
}
