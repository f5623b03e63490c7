package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/internmatch-ai/internmatch-api/internal/model"
	"gorm.io/gorm"
)

type StudentRepository struct {
	db *gorm.DB
}

func NewStudentRepository(db *gorm.DB) *StudentRepository {
	return &StudentRepository{db}
}

func (r *StudentRepository) Create(ctx context.Context, student *model.Student) error {
	return r.db.WithContext(ctx).Create(student).Error
}

func (r *StudentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Student, error) {
	var student model.Student
	err := r.db.WithContext(ctx).Preload("User").First(&student, "id = ?", id).Error
	return &student, err
}

func (r *StudentRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*model.Student, error) {
	var student model.Student
	err := r.db.WithContext(ctx).Preload("User").First(&student, "user_id = ?", userID).Error
	return &student, err
}

// ListAll returns every student with the owning user joined, in insertion
// order so downstream stable sorts keep a deterministic baseline.
func (r *StudentRepository) ListAll(ctx context.Context) ([]model.Student, error) {
	var students []model.Student
	err := r.db.WithContext(ctx).Preload("User").Order("id").Find(&students).Error
	return students, err
}

func (r *StudentRepository) Update(ctx context.Context, student *model.Student) error {
	return r.db.WithContext(ctx).Save(student).Error
}
