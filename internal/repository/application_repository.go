package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/internmatch-ai/internmatch-api/internal/model"
	"gorm.io/gorm"
)

type ApplicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db}
}

func (r *ApplicationRepository) Create(ctx context.Context, application *model.Application) error {
	return r.db.WithContext(ctx).Create(application).Error
}

func (r *ApplicationRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Application, error) {
	var application model.Application
	err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Internship").
		Preload("Internship.Employer").
		First(&application, "id = ?", id).Error
	return &application, err
}

func (r *ApplicationRepository) FindByPair(ctx context.Context, studentID, internshipID uuid.UUID) (*model.Application, error) {
	var application model.Application
	err := r.db.WithContext(ctx).
		First(&application, "student_id = ? AND internship_id = ?", studentID, internshipID).Error
	return &application, err
}

func (r *ApplicationRepository) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]model.Application, error) {
	var applications []model.Application
	err := r.db.WithContext(ctx).
		Preload("Internship").
		Preload("Internship.Employer").
		Where("student_id = ?", studentID).
		Order("applied_at DESC").
		Find(&applications).Error
	return applications, err
}

func (r *ApplicationRepository) ListByInternship(ctx context.Context, internshipID uuid.UUID) ([]model.Application, error) {
	var applications []model.Application
	err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Student.User").
		Where("internship_id = ?", internshipID).
		Order("applied_at DESC").
		Find(&applications).Error
	return applications, err
}

func (r *ApplicationRepository) Update(ctx context.Context, application *model.Application) error {
	return r.db.WithContext(ctx).Save(application).Error
}
