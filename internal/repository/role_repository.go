package repository

import (
	"github.com/devendraBainda/AI-Interview-Agent/internal/model"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type RoleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) *RoleRepository {
	return &RoleRepository{db}
}

// SearchProfiles returns the topK role profiles nearest to the resume
// embedding, using the pgvector distance operator.
func (r *RoleRepository) SearchProfiles(embedding pgvector.Vector, topK int) ([]model.RoleProfile, error) {
	var profiles []model.RoleProfile

	err := r.db.Raw(`
        SELECT *, embedding <-> ? AS distance
        FROM role_profiles
        ORDER BY embedding <-> ?
        LIMIT ?
    `, embedding, embedding, topK).Scan(&profiles).Error

	return profiles, err
}

func (r *RoleRepository) CreateProfile(profile *model.RoleProfile) error {
	return r.db.Create(profile).Error
}

func (r *RoleRepository) UpdateProfile(profile *model.RoleProfile) error {
	return r.db.Save(profile).Error
}

func (r *RoleRepository) GetProfiles() ([]model.RoleProfile, error) {
	var profiles []model.RoleProfile
	err := r.db.Find(&profiles).Error
	return profiles, err
}
