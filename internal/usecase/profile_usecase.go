package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/internmatch-ai/internmatch-api/internal/dto"
	"github.com/internmatch-ai/internmatch-api/internal/model"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ProfileUsecase owns student profile mutation. Cache invalidation is a
// post-condition of the update, executed in the same transaction, so no call
// site can update a profile and forget to invalidate.
type ProfileUsecase struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewProfileUsecase(db *gorm.DB, logger *zap.Logger) *ProfileUsecase {
	return &ProfileUsecase{db: db, logger: logger}
}

func (uc *ProfileUsecase) UpdateStudentProfile(ctx context.Context, studentID uuid.UUID, req *dto.UpdateStudentProfileRequest) (*model.Student, error) {
	var student model.Student
	err := uc.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&student, "id = ?", studentID).Error; err != nil {
			return err
		}

		if req.University != nil {
			student.University = *req.University
		}
		if req.Major != nil {
			student.Major = *req.Major
		}
		if req.GraduationYear != nil {
			student.GraduationYear = *req.GraduationYear
		}
		if req.GPA != nil {
			student.GPA = *req.GPA
		}
		if req.Skills != nil {
			student.Skills = req.Skills
		}
		if req.Interests != nil {
			student.Interests = req.Interests
		}
		if req.Location != nil {
			student.Location = *req.Location
		}
		if req.ResumeText != nil {
			student.ResumeText = *req.ResumeText
		}

		if err := tx.Save(&student).Error; err != nil {
			return err
		}

		return tx.Where("student_id = ?", studentID).Delete(&model.AIMatch{}).Error
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("student profile updated, match cache invalidated",
		zap.String("student_id", studentID.String()))
	return &student, nil
}
