package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/internmatch-ai/internmatch-api/internal/model"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type InternshipRepository struct {
	db *gorm.DB
}

func NewInternshipRepository(db *gorm.DB) *InternshipRepository {
	return &InternshipRepository{db}
}

func (r *InternshipRepository) Create(ctx context.Context, internship *model.Internship) error {
	return r.db.WithContext(ctx).Create(internship).Error
}

func (r *InternshipRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Internship, error) {
	var internship model.Internship
	err := r.db.WithContext(ctx).Preload("Employer").First(&internship, "id = ?", id).Error
	return &internship, err
}

// ListOpen returns all open postings with the employer joined, in a stable
// creation order.
func (r *InternshipRepository) ListOpen(ctx context.Context) ([]model.Internship, error) {
	var internships []model.Internship
	err := r.db.WithContext(ctx).
		Preload("Employer").
		Where("status = ?", model.InternshipStatusOpen).
		Order("created_at").
		Find(&internships).Error
	return internships, err
}

func (r *InternshipRepository) ListOpenPaged(ctx context.Context, page, pageSize int) ([]model.Internship, int64, error) {
	var internships []model.Internship
	var total int64

	base := r.db.WithContext(ctx).Model(&model.Internship{}).
		Where("status = ?", model.InternshipStatusOpen)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Preload("Employer").
		Where("status = ?", model.InternshipStatusOpen).
		Order("created_at").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&internships).Error
	return internships, total, err
}

func (r *InternshipRepository) Update(ctx context.Context, internship *model.Internship) error {
	return r.db.WithContext(ctx).Save(internship).Error
}

// SearchSimilar finds postings whose description embedding is nearest to the
// given vector, excluding the posting itself. Used to feed "similar
// successful matches" context into scoring prompts.
func (r *InternshipRepository) SearchSimilar(ctx context.Context, embedding pgvector.Vector, excludeID uuid.UUID, topK int) ([]model.Internship, error) {
	var internships []model.Internship
	err := r.db.WithContext(ctx).Raw(`
        SELECT * FROM internships
        WHERE id <> ? AND embedding IS NOT NULL
        ORDER BY embedding <-> ?
        LIMIT ?
    `, excludeID, embedding, topK).Scan(&internships).Error
	return internships, err
}

func (r *InternshipRepository) IncrementApplications(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Internship{}).
		Where("id = ?", id).
		UpdateColumn("current_applications", gorm.Expr("current_applications + 1")).Error
}
