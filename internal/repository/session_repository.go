package repository

import (
	"errors"

	"github.com/devendraBainda/AI-Interview-Agent/internal/model"
	"gorm.io/gorm"
)

// SessionRepository is the durable key-value store of per-session state.
// Save replaces the whole record; a crash must never leave a half-updated
// row visible.
type SessionRepository interface {
	Save(session *model.Session) error
	FindByID(id string) (*model.Session, error)
	Delete(id string) error
	List(offset, limit int) ([]model.Session, int64, error)
}

// ErrSessionNotFound is returned by FindByID for unknown ids.
var ErrSessionNotFound = errors.New("session not found")

type GormSessionRepository struct {
	db *gorm.DB
}

func NewGormSessionRepository(db *gorm.DB) *GormSessionRepository {
	return &GormSessionRepository{db}
}

func (r *GormSessionRepository) Save(session *model.Session) error {
	return r.db.Save(session).Error
}

func (r *GormSessionRepository) FindByID(id string) (*model.Session, error) {
	var session model.Session
	err := r.db.First(&session, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *GormSessionRepository) Delete(id string) error {
	// Deleting an absent row is a no-op, matching the reset contract.
	return r.db.Delete(&model.Session{}, "id = ?", id).Error
}

func (r *GormSessionRepository) List(offset, limit int) ([]model.Session, int64, error) {
	var total int64
	if err := r.db.Model(&model.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var sessions []model.Session
	err := r.db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&sessions).Error
	return sessions, total, err
}
