package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/internmatch-ai/internmatch-api/internal/model"
	"gorm.io/gorm"
)

type EmployerRepository struct {
	db *gorm.DB
}

func NewEmployerRepository(db *gorm.DB) *EmployerRepository {
	return &EmployerRepository{db}
}

func (r *EmployerRepository) Create(ctx context.Context, employer *model.Employer) error {
	return r.db.WithContext(ctx).Create(employer).Error
}

func (r *EmployerRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Employer, error) {
	var employer model.Employer
	err := r.db.WithContext(ctx).First(&employer, "id = ?", id).Error
	return &employer, err
}
