package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/internmatch-ai/internmatch-api/internal/dto"
	"github.com/internmatch-ai/internmatch-api/internal/model"
	"github.com/internmatch-ai/internmatch-api/internal/repository"
	"github.com/internmatch-ai/internmatch-api/internal/service"
	"github.com/pgvector/pgvector-go"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const defaultRecommendationLimit = 10

type studentReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Student, error)
	ListAll(ctx context.Context) ([]model.Student, error)
}

type internshipReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Internship, error)
	ListOpen(ctx context.Context) ([]model.Internship, error)
}

type similarInternshipFinder interface {
	SearchSimilar(ctx context.Context, embedding pgvector.Vector, excludeID uuid.UUID, topK int) ([]model.Internship, error)
}

// MatchUsecase is the recommendation assembler: it resolves each
// (student, internship) pair through the cache, scores misses, and returns a
// ranked, truncated list.
type MatchUsecase struct {
	students       studentReader
	internships    internshipReader
	similar        similarInternshipFinder
	cache          repository.MatchCache
	scorer         service.OpenRouterServiceInterface
	logger         *zap.Logger
	maxConcurrency int
}

func NewMatchUsecase(
	students studentReader,
	internships internshipReader,
	similar similarInternshipFinder,
	cache repository.MatchCache,
	scorer service.OpenRouterServiceInterface,
	logger *zap.Logger,
	maxConcurrency int,
) *MatchUsecase {
	if maxConcurrency <= 0 {
		maxConcurrency = 5
	}
	return &MatchUsecase{
		students:       students,
		internships:    internships,
		similar:        similar,
		cache:          cache,
		scorer:         scorer,
		logger:         logger,
		maxConcurrency: maxConcurrency,
	}
}

// RecommendInternships ranks all open postings for a student. An unknown
// student yields an empty list, not an error.
func (uc *MatchUsecase) RecommendInternships(ctx context.Context, studentID uuid.UUID, limit int) ([]dto.ScoredInternship, error) {
	student, err := uc.students.FindByID(ctx, studentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return []dto.ScoredInternship{}, nil
	}
	if err != nil {
		return nil, err
	}
	if student.University == "" || student.Major == "" {
		return nil, fmt.Errorf("student %s: profile incomplete, cannot score", studentID)
	}

	postings, err := uc.internships.ListOpen(ctx)
	if err != nil {
		return nil, err
	}

	scored := make([]dto.ScoredInternship, len(postings))
	var wg sync.WaitGroup
	sem := make(chan struct{}, uc.maxConcurrency)
	for i := range postings {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			posting := postings[i]
			analysis := uc.resolvePair(ctx, student, &posting)
			scored[i] = dto.ScoredInternship{
				Internship:   posting,
				MatchScore:   analysis.OverallMatch,
				MatchReasons: topReasons(analysis),
				Analysis:     analysis,
			}
		}(i)
	}
	wg.Wait()

	sort.SliceStable(scored, func(a, b int) bool {
		return scored[a].MatchScore > scored[b].MatchScore
	})
	return truncateInternships(scored, limit), nil
}

// RecommendCandidates ranks all students for a posting. An unknown posting
// yields an empty list.
func (uc *MatchUsecase) RecommendCandidates(ctx context.Context, internshipID uuid.UUID, limit int) ([]dto.ScoredCandidate, error) {
	internship, err := uc.internships.FindByID(ctx, internshipID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return []dto.ScoredCandidate{}, nil
	}
	if err != nil {
		return nil, err
	}
	if internship.Title == "" || internship.Description == "" {
		return nil, fmt.Errorf("internship %s: posting incomplete, cannot score", internshipID)
	}

	students, err := uc.students.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	scored := make([]dto.ScoredCandidate, len(students))
	var wg sync.WaitGroup
	sem := make(chan struct{}, uc.maxConcurrency)
	for i := range students {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			student := students[i]
			analysis := uc.resolveCandidatePair(ctx, internship, &student)
			scored[i] = dto.ScoredCandidate{
				Student:      student,
				MatchScore:   analysis.OverallMatch,
				MatchReasons: topReasons(analysis),
				Analysis:     analysis,
			}
		}(i)
	}
	wg.Wait()

	sort.SliceStable(scored, func(a, b int) bool {
		return scored[a].MatchScore > scored[b].MatchScore
	})
	return truncateCandidates(scored, limit), nil
}

// AnalyzePair scores a single pair on demand, bypassing neither the cache
// read nor the cache write. Live scoring gets similarity-based prompt context
// when the posting carries an embedding.
func (uc *MatchUsecase) AnalyzePair(ctx context.Context, studentID, internshipID uuid.UUID) (*dto.MatchAnalysis, error) {
	student, err := uc.students.FindByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	internship, err := uc.internships.FindByID(ctx, internshipID)
	if err != nil {
		return nil, err
	}
	req, err := service.BuildMatchRequest(student, student.User.Name, internship, &internship.Employer)
	if err != nil {
		return nil, err
	}

	cached, hit, err := uc.cache.Get(ctx, student.ID, internship.ID)
	if err != nil {
		uc.logger.Warn("match cache read failed", zap.Error(err))
	}
	if hit {
		return cached, nil
	}

	var analysis *dto.MatchAnalysis
	if uc.scorer.Enabled() {
		req.Context = uc.similarMatchContext(ctx, internship)
		analysis = uc.scorer.AnalyzeMatch(ctx, req)
	} else {
		analysis = service.ScoreInternshipHeuristically(student, internship)
	}
	uc.putAdvisory(ctx, student.ID, internship.ID, analysis)
	return analysis, nil
}

// similarMatchContext turns nearest-neighbour postings into prompt hints.
// Best-effort: any failure just means a hint-free request.
func (uc *MatchUsecase) similarMatchContext(ctx context.Context, internship *model.Internship) *dto.MatchContext {
	if uc.similar == nil || len(internship.Embedding.Slice()) == 0 {
		return nil
	}
	neighbours, err := uc.similar.SearchSimilar(ctx, internship.Embedding, internship.ID, 3)
	if err != nil {
		uc.logger.Debug("similar internship lookup failed", zap.Error(err))
		return nil
	}
	if len(neighbours) == 0 {
		return nil
	}
	titles := make([]string, 0, len(neighbours))
	for _, n := range neighbours {
		titles = append(titles, n.Title)
	}
	return &dto.MatchContext{SimilarSuccessfulMatches: titles}
}

// resolvePair runs the cache-read-through for one pair: hit returns the
// cached analysis, miss scores and writes back exactly once. Cache failures
// are advisory. A pair whose record cannot form a scoring request is not
// cached, so it gets rescored as soon as the profile is completed.
func (uc *MatchUsecase) resolvePair(ctx context.Context, student *model.Student, internship *model.Internship) *dto.MatchAnalysis {
	cached, hit, err := uc.cache.Get(ctx, student.ID, internship.ID)
	if err != nil {
		uc.logger.Warn("match cache read failed",
			zap.String("student_id", student.ID.String()),
			zap.String("internship_id", internship.ID.String()),
			zap.Error(err),
		)
	}
	if hit {
		return cached
	}

	req, err := service.BuildMatchRequest(student, student.User.Name, internship, &internship.Employer)
	if err != nil {
		uc.logger.Warn("not scoring pair with malformed record", zap.Error(err))
		return service.FallbackAnalysis()
	}

	analysis := uc.scorePair(ctx, req, student, internship, false)
	uc.putAdvisory(ctx, student.ID, internship.ID, analysis)
	return analysis
}

func (uc *MatchUsecase) resolveCandidatePair(ctx context.Context, internship *model.Internship, student *model.Student) *dto.MatchAnalysis {
	cached, hit, err := uc.cache.Get(ctx, student.ID, internship.ID)
	if err != nil {
		uc.logger.Warn("match cache read failed",
			zap.String("student_id", student.ID.String()),
			zap.String("internship_id", internship.ID.String()),
			zap.Error(err),
		)
	}
	if hit {
		return cached
	}

	req, err := service.BuildMatchRequest(student, student.User.Name, internship, &internship.Employer)
	if err != nil {
		uc.logger.Warn("not scoring pair with malformed record", zap.Error(err))
		return service.FallbackAnalysis()
	}

	analysis := uc.scorePair(ctx, req, student, internship, true)
	uc.putAdvisory(ctx, student.ID, internship.ID, analysis)
	return analysis
}

// scorePair picks the score source: live AI when configured, the
// deterministic heuristic otherwise. candidateView selects which heuristic
// weighting applies.
func (uc *MatchUsecase) scorePair(ctx context.Context, req *dto.MatchRequest, student *model.Student, internship *model.Internship, candidateView bool) *dto.MatchAnalysis {
	if !uc.scorer.Enabled() {
		if candidateView {
			return service.ScoreCandidateHeuristically(internship, student)
		}
		return service.ScoreInternshipHeuristically(student, internship)
	}
	return uc.scorer.AnalyzeMatch(ctx, req)
}

func (uc *MatchUsecase) putAdvisory(ctx context.Context, studentID, internshipID uuid.UUID, analysis *dto.MatchAnalysis) {
	if err := uc.cache.Put(ctx, studentID, internshipID, analysis); err != nil {
		uc.logger.Warn("match cache write failed",
			zap.String("student_id", studentID.String()),
			zap.String("internship_id", internshipID.String()),
			zap.Error(err),
		)
	}
}

func topReasons(analysis *dto.MatchAnalysis) []string {
	reasons := analysis.KeyStrengths
	if len(reasons) > 4 {
		reasons = reasons[:4]
	}
	return append([]string{}, reasons...)
}

func truncateInternships(scored []dto.ScoredInternship, limit int) []dto.ScoredInternship {
	if limit <= 0 {
		limit = defaultRecommendationLimit
	}
	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}

func truncateCandidates(scored []dto.ScoredCandidate, limit int) []dto.ScoredCandidate {
	if limit <= 0 {
		limit = defaultRecommendationLimit
	}
	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}
