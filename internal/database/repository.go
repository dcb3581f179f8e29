package database

import (
	"github.com/coopmed/coopmed/internal/database/models"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// Repository provides access to all database models.
type Repository struct {
	member       *models.MemberModel
	compensation *models.CompensationModel
	cascade      *models.CascadeModel
}

// NewRepository creates a new repository instance with all models.
func NewRepository(db *bun.DB, logger *zap.Logger) *Repository {
	return &Repository{
		member:       models.NewMember(db, logger),
		compensation: models.NewCompensation(db, logger),
		cascade:      models.NewCascade(db, logger),
	}
}

// Member returns the member model repository.
func (r *Repository) Member() *models.MemberModel {
	return r.member
}

// Compensation returns the compensation model repository.
func (r *Repository) Compensation() *models.CompensationModel {
	return r.compensation
}

// Cascade returns the cascade model repository.
func (r *Repository) Cascade() *models.CascadeModel {
	return r.cascade
}
