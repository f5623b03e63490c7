package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/internmatch-ai/internmatch-api/internal/dto"
	"github.com/internmatch-ai/internmatch-api/internal/model"
	"github.com/internmatch-ai/internmatch-api/internal/repository"
	"github.com/internmatch-ai/internmatch-api/internal/service"
	"github.com/pgvector/pgvector-go"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// InternshipUsecase owns posting lifecycle. Like profile updates, a posting
// update and its cache invalidation commit together.
type InternshipUsecase struct {
	db        *gorm.DB
	repo      *repository.InternshipRepository
	employers *repository.EmployerRepository
	embedder  service.GeminiServiceInterface
	logger    *zap.Logger
}

func NewInternshipUsecase(db *gorm.DB, repo *repository.InternshipRepository, employers *repository.EmployerRepository, embedder service.GeminiServiceInterface, logger *zap.Logger) *InternshipUsecase {
	return &InternshipUsecase{db: db, repo: repo, employers: employers, embedder: embedder, logger: logger}
}

func (uc *InternshipUsecase) Create(ctx context.Context, employerID uuid.UUID, req *dto.CreateInternshipRequest) (*model.Internship, error) {
	if _, err := uc.employers.FindByID(ctx, employerID); err != nil {
		return nil, err
	}

	internship := &model.Internship{
		EmployerID:   employerID,
		Title:        req.Title,
		Description:  req.Description,
		Requirements: req.Requirements,
		Skills:       req.Skills,
		Location:     req.Location,
		Duration:     req.Duration,
		Stipend:      req.Stipend,
		Status:       model.InternshipStatusOpen,
		Deadline:     req.Deadline,
	}
	uc.attachEmbedding(ctx, internship)

	if err := uc.repo.Create(ctx, internship); err != nil {
		return nil, err
	}
	return internship, nil
}

func (uc *InternshipUsecase) Get(ctx context.Context, id uuid.UUID) (*model.Internship, error) {
	return uc.repo.FindByID(ctx, id)
}

func (uc *InternshipUsecase) ListOpenPaged(ctx context.Context, page, pageSize int) ([]model.Internship, int64, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	return uc.repo.ListOpenPaged(ctx, page, pageSize)
}

// Update applies posting changes and deletes every cached analysis for the
// posting in the same transaction.
func (uc *InternshipUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateInternshipRequest) (*model.Internship, error) {
	var internship model.Internship
	descriptionChanged := false
	err := uc.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&internship, "id = ?", id).Error; err != nil {
			return err
		}

		if req.Title != nil {
			internship.Title = *req.Title
		}
		if req.Description != nil && *req.Description != internship.Description {
			internship.Description = *req.Description
			descriptionChanged = true
		}
		if req.Requirements != nil {
			internship.Requirements = req.Requirements
		}
		if req.Skills != nil {
			internship.Skills = req.Skills
		}
		if req.Location != nil {
			internship.Location = *req.Location
		}
		if req.Duration != nil {
			internship.Duration = *req.Duration
		}
		if req.Stipend != nil {
			internship.Stipend = *req.Stipend
		}
		if req.Status != nil {
			internship.Status = *req.Status
		}
		if req.Deadline != nil {
			internship.Deadline = req.Deadline
		}

		if err := tx.Save(&internship).Error; err != nil {
			return err
		}

		return tx.Where("internship_id = ?", id).Delete(&model.AIMatch{}).Error
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("internship updated, match cache invalidated",
		zap.String("internship_id", id.String()))

	if descriptionChanged {
		uc.attachEmbedding(ctx, &internship)
		if err := uc.repo.Update(ctx, &internship); err != nil {
			uc.logger.Warn("failed to persist refreshed embedding", zap.Error(err))
		}
	}
	return &internship, nil
}

// attachEmbedding fills the posting's description embedding. Best-effort:
// similarity context just degrades when it fails.
func (uc *InternshipUsecase) attachEmbedding(ctx context.Context, internship *model.Internship) {
	if uc.embedder == nil {
		return
	}
	embedding, err := uc.embedder.GenerateEmbedding(ctx, internship.Title+"\n"+internship.Description)
	if err != nil {
		uc.logger.Warn("internship embedding failed",
			zap.String("title", internship.Title),
			zap.Error(err))
		return
	}
	internship.Embedding = pgvector.NewVector(embedding)
}
