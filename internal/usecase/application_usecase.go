package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/internmatch-ai/internmatch-api/internal/dto"
	"github.com/internmatch-ai/internmatch-api/internal/model"
	"github.com/internmatch-ai/internmatch-api/internal/repository"
	"github.com/internmatch-ai/internmatch-api/internal/service"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrInternshipClosed    = errors.New("internship is not accepting applications")
	ErrInternshipFull      = errors.New("internship has reached its application limit")
	ErrAlreadyApplied      = errors.New("student has already applied to this internship")
	ErrApplicationFinal    = errors.New("application is in a terminal state")
	ErrInvalidStatusChange = errors.New("invalid application status change")
)

type ApplicationUsecase struct {
	applications *repository.ApplicationRepository
	internships  *repository.InternshipRepository
	students     *repository.StudentRepository
	cache        repository.MatchCache
	scorer       service.OpenRouterServiceInterface
	logger       *zap.Logger
}

func NewApplicationUsecase(
	applications *repository.ApplicationRepository,
	internships *repository.InternshipRepository,
	students *repository.StudentRepository,
	cache repository.MatchCache,
	scorer service.OpenRouterServiceInterface,
	logger *zap.Logger,
) *ApplicationUsecase {
	return &ApplicationUsecase{
		applications: applications,
		internships:  internships,
		students:     students,
		cache:        cache,
		scorer:       scorer,
		logger:       logger,
	}
}

// Apply creates a pending application and snapshots the current cached match
// score onto it when one exists.
func (uc *ApplicationUsecase) Apply(ctx context.Context, studentID, internshipID uuid.UUID) (*model.Application, error) {
	internship, err := uc.internships.FindByID(ctx, internshipID)
	if err != nil {
		return nil, err
	}
	if internship.Status != model.InternshipStatusOpen {
		return nil, ErrInternshipClosed
	}
	if internship.MaxApplications > 0 && internship.CurrentApplications >= internship.MaxApplications {
		return nil, ErrInternshipFull
	}

	if _, err := uc.applications.FindByPair(ctx, studentID, internshipID); err == nil {
		return nil, ErrAlreadyApplied
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	application := &model.Application{
		StudentID:    studentID,
		InternshipID: internshipID,
		Status:       model.ApplicationStatusPending,
	}

	if analysis, hit, err := uc.cache.Get(ctx, studentID, internshipID); err != nil {
		uc.logger.Warn("match snapshot read failed", zap.Error(err))
	} else if hit {
		score := analysis.OverallMatch
		application.AIMatchScore = &score
		reasons := analysis.KeyStrengths
		if len(reasons) > 4 {
			reasons = reasons[:4]
		}
		application.MatchReasons = reasons
	}

	if err := uc.applications.Create(ctx, application); err != nil {
		return nil, err
	}
	if err := uc.internships.IncrementApplications(ctx, internshipID); err != nil {
		uc.logger.Warn("application counter update failed",
			zap.String("internship_id", internshipID.String()),
			zap.Error(err))
	}
	return application, nil
}

// Decide applies an employer decision or a student withdrawal. Terminal
// applications are immutable.
func (uc *ApplicationUsecase) Decide(ctx context.Context, applicationID uuid.UUID, status string) (*model.Application, error) {
	switch status {
	case model.ApplicationStatusAccepted, model.ApplicationStatusRejected, model.ApplicationStatusWithdrawn:
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatusChange, status)
	}

	application, err := uc.applications.FindByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if model.TerminalApplicationStatus(application.Status) {
		return nil, ErrApplicationFinal
	}

	application.Status = status
	now := time.Now()
	application.ReviewedAt = &now
	if err := uc.applications.Update(ctx, application); err != nil {
		return nil, err
	}
	return application, nil
}

func (uc *ApplicationUsecase) ListForStudent(ctx context.Context, studentID uuid.UUID) ([]model.Application, error) {
	return uc.applications.ListByStudent(ctx, studentID)
}

// RankApplicants batch-scores the actual applicants of a posting, as opposed
// to RecommendCandidates which ranks the whole student pool. Per-applicant
// failures come back as zero-score records and never abort the batch.
func (uc *ApplicationUsecase) RankApplicants(ctx context.Context, internshipID uuid.UUID) ([]dto.CandidateAnalysis, error) {
	internship, err := uc.internships.FindByID(ctx, internshipID)
	if err != nil {
		return nil, err
	}
	applications, err := uc.applications.ListByInternship(ctx, internshipID)
	if err != nil {
		return nil, err
	}
	if len(applications) == 0 {
		return []dto.CandidateAnalysis{}, nil
	}

	payload := dto.MatchInternship{
		Title:        internship.Title,
		Description:  internship.Description,
		Requirements: internship.Requirements,
		Skills:       internship.Skills,
		Location:     internship.Location,
		Duration:     internship.Duration,
		Stipend:      internship.Stipend,
		Company: dto.MatchCompany{
			Name:        internship.Employer.CompanyName,
			Industry:    internship.Employer.Industry,
			Description: internship.Employer.Description,
		},
	}

	candidates := make([]dto.CandidateInput, 0, len(applications))
	for _, application := range applications {
		student := application.Student
		candidates = append(candidates, dto.CandidateInput{
			StudentID: student.ID,
			Student: dto.MatchStudent{
				Name:           student.User.Name,
				University:     student.University,
				Major:          student.Major,
				GraduationYear: student.GraduationYear,
				GPA:            student.GPA,
				Skills:         student.Skills,
				Interests:      student.Interests,
				Location:       student.Location,
				ResumeText:     student.ResumeText,
			},
		})
	}

	return uc.scorer.AnalyzeCandidates(ctx, payload, candidates), nil
}

// RankApplications is the student-side mirror of RankApplicants: it
// batch-scores the postings a student has actually applied to. Per-posting
// failures come back as zero-score records and never abort the batch.
func (uc *ApplicationUsecase) RankApplications(ctx context.Context, studentID uuid.UUID) ([]dto.InternshipAnalysis, error) {
	student, err := uc.students.FindByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	applications, err := uc.applications.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if len(applications) == 0 {
		return []dto.InternshipAnalysis{}, nil
	}

	payload := dto.MatchStudent{
		Name:           student.User.Name,
		University:     student.University,
		Major:          student.Major,
		GraduationYear: student.GraduationYear,
		GPA:            student.GPA,
		Skills:         student.Skills,
		Interests:      student.Interests,
		Location:       student.Location,
		ResumeText:     student.ResumeText,
	}

	postings := make([]dto.InternshipInput, 0, len(applications))
	for _, application := range applications {
		internship := application.Internship
		postings = append(postings, dto.InternshipInput{
			InternshipID: internship.ID,
			Internship: dto.MatchInternship{
				Title:        internship.Title,
				Description:  internship.Description,
				Requirements: internship.Requirements,
				Skills:       internship.Skills,
				Location:     internship.Location,
				Duration:     internship.Duration,
				Stipend:      internship.Stipend,
				Company: dto.MatchCompany{
					Name:        internship.Employer.CompanyName,
					Industry:    internship.Employer.Industry,
					Description: internship.Employer.Description,
				},
			},
		})
	}

	return uc.scorer.AnalyzeInternships(ctx, payload, postings), nil
}
