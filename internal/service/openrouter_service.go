package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/internmatch-ai/internmatch-api/internal/config"
	"github.com/internmatch-ai/internmatch-api/internal/dto"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

type OpenRouterServiceInterface interface {
	Enabled() bool
	AnalyzeMatch(ctx context.Context, req *dto.MatchRequest) *dto.MatchAnalysis
	AnalyzeCandidates(ctx context.Context, internship dto.MatchInternship, students []dto.CandidateInput) []dto.CandidateAnalysis
	AnalyzeInternships(ctx context.Context, student dto.MatchStudent, internships []dto.InternshipInput) []dto.InternshipAnalysis
}

// OpenRouterService scores (student, internship) pairs through the OpenRouter
// chat-completions endpoint. Every failure mode collapses to a usable
// analysis: callers never receive an error from scoring.
type OpenRouterService struct {
	apiKey         string
	baseURL        string
	model          string
	maxTokens      int
	requestTimeout time.Duration
	maxConcurrency int
	client         *resty.Client
	logger         *zap.Logger
}

func NewOpenRouterService(logger *zap.Logger) *OpenRouterService {
	cfg := config.LoadOpenRouterConfig()
	return &OpenRouterService{
		apiKey:         cfg.APIKey,
		baseURL:        cfg.BaseURL,
		model:          cfg.Model,
		maxTokens:      cfg.MaxTokens,
		requestTimeout: cfg.RequestTimeout,
		maxConcurrency: cfg.MaxConcurrency,
		client:         resty.New(),
		logger:         logger,
	}
}

// Enabled reports whether the service has an API key. Without one the
// recommendation pipeline falls back to the deterministic heuristic scorer.
func (s *OpenRouterService) Enabled() bool {
	return s.apiKey != ""
}

// AnalyzeMatch scores one comparison payload. On any upstream or parse
// failure it returns the fixed fallback record, never an error, so downstream
// ranking always has a usable score.
func (s *OpenRouterService) AnalyzeMatch(ctx context.Context, req *dto.MatchRequest) *dto.MatchAnalysis {
	analysis, err := s.analyze(ctx, req)
	if err != nil {
		s.logger.Warn("match analysis failed, using fallback",
			zap.String("internship", req.Internship.Title),
			zap.Error(err),
		)
		return FallbackAnalysis()
	}
	return analysis
}

// AnalyzeCandidates scores one internship against many students. Each pair is
// scored independently and concurrently; a failed item becomes a zero-score
// record so one bad candidate never blocks the batch. Results come back
// sorted by overall match descending.
func (s *OpenRouterService) AnalyzeCandidates(ctx context.Context, internship dto.MatchInternship, students []dto.CandidateInput) []dto.CandidateAnalysis {
	results := make([]dto.CandidateAnalysis, len(students))

	var wg sync.WaitGroup
	sem := make(chan struct{}, s.concurrency())
	for i, candidate := range students {
		wg.Add(1)
		go func(i int, candidate dto.CandidateInput) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			analysis, err := s.analyze(ctx, &dto.MatchRequest{
				Student:    candidate.Student,
				Internship: internship,
			})
			if err != nil {
				s.logger.Warn("candidate analysis failed",
					zap.String("student_id", candidate.StudentID.String()),
					zap.Error(err),
				)
				analysis = FailedAnalysis()
			}
			results[i] = dto.CandidateAnalysis{
				StudentID:     candidate.StudentID,
				MatchAnalysis: *analysis,
			}
		}(i, candidate)
	}
	wg.Wait()

	sort.SliceStable(results, func(a, b int) bool {
		return results[a].OverallMatch > results[b].OverallMatch
	})
	return results
}

// AnalyzeInternships is the symmetric batch: one student against many
// postings.
func (s *OpenRouterService) AnalyzeInternships(ctx context.Context, student dto.MatchStudent, internships []dto.InternshipInput) []dto.InternshipAnalysis {
	results := make([]dto.InternshipAnalysis, len(internships))

	var wg sync.WaitGroup
	sem := make(chan struct{}, s.concurrency())
	for i, posting := range internships {
		wg.Add(1)
		go func(i int, posting dto.InternshipInput) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			analysis, err := s.analyze(ctx, &dto.MatchRequest{
				Student:    student,
				Internship: posting.Internship,
			})
			if err != nil {
				s.logger.Warn("internship analysis failed",
					zap.String("internship_id", posting.InternshipID.String()),
					zap.Error(err),
				)
				analysis = FailedAnalysis()
			}
			results[i] = dto.InternshipAnalysis{
				InternshipID:  posting.InternshipID,
				MatchAnalysis: *analysis,
			}
		}(i, posting)
	}
	wg.Wait()

	sort.SliceStable(results, func(a, b int) bool {
		return results[a].OverallMatch > results[b].OverallMatch
	})
	return results
}

func (s *OpenRouterService) concurrency() int {
	if s.maxConcurrency > 0 {
		return s.maxConcurrency
	}
	return 5
}

func (s *OpenRouterService) analyze(ctx context.Context, req *dto.MatchRequest) (*dto.MatchAnalysis, error) {
	prompt := buildMatchAnalysisPrompt(req)

	timeoutCtx, cancel := context.WithTimeout(ctx, s.requestTimeout)
	defer cancel()

	resp, err := s.client.R().
		SetContext(timeoutCtx).
		SetHeader("Authorization", "Bearer "+s.apiKey).
		SetHeader("HTTP-Referer", "https://internmatch-ai.com").
		SetHeader("X-Title", "InternMatch AI").
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]any{
			"model": s.model,
			"messages": []map[string]string{
				{"role": "system", "content": systemPrompt},
				{"role": "user", "content": prompt},
			},
			"temperature": 0.7,
			"max_tokens":  s.maxTokens,
		}).
		Post(s.baseURL)
	if err != nil {
		return nil, fmt.Errorf("openrouter request: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("openrouter request failed: %s", resp.Status())
	}

	content := gjson.Get(resp.String(), "choices.0.message.content").String()
	if content == "" {
		return nil, fmt.Errorf("no content received from AI service")
	}

	return parseAnalysis(content)
}

const systemPrompt = "You are an expert career counselor and talent acquisition specialist " +
	"with deep knowledge of internship matching, skill assessment, and career development. " +
	"Provide detailed, actionable insights based on comprehensive analysis."

// parseAnalysis extracts the first well-formed JSON object from the model
// output, tolerating surrounding prose or code fences, validates mandatory
// fields, and normalizes the rest.
func parseAnalysis(content string) (*dto.MatchAnalysis, error) {
	raw := extractJSON(content)
	if raw == "" || !gjson.Valid(raw) {
		return nil, fmt.Errorf("no JSON found in AI response")
	}

	parsed := gjson.Parse(raw)
	for _, field := range []string{"overallMatch", "confidence", "keyStrengths", "careerImpact", "breakdown"} {
		if !parsed.Get(field).Exists() {
			return nil, fmt.Errorf("missing required field: %s", field)
		}
	}

	return &dto.MatchAnalysis{
		OverallMatch:      clampScore(parsed.Get("overallMatch").Int()),
		Confidence:        clampScore(parsed.Get("confidence").Int()),
		KeyStrengths:      stringList(parsed.Get("keyStrengths")),
		PotentialConcerns: stringList(parsed.Get("potentialConcerns")),
		SkillGaps:         stringList(parsed.Get("skillGaps")),
		CareerImpact:      parsed.Get("careerImpact").String(),
		EmployerBenefits:  stringList(parsed.Get("employerBenefits")),
		ActionableAdvice:  stringList(parsed.Get("actionableAdvice")),
		Breakdown: dto.MatchBreakdown{
			SkillsMatch:     subScore(parsed, "breakdown.skillsMatch"),
			ExperienceMatch: subScore(parsed, "breakdown.experienceMatch"),
			LocationMatch:   subScore(parsed, "breakdown.locationMatch"),
			CultureMatch:    subScore(parsed, "breakdown.cultureMatch"),
			CareerFitMatch:  subScore(parsed, "breakdown.careerFitMatch"),
		},
	}, nil
}

// extractJSON returns the first balanced JSON object found in raw text.
func extractJSON(content string) string {
	start := strings.Index(content, "{")
	if start == -1 {
		return ""
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(content); i++ {
		c := content[i]
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			escaped = inString
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return content[start : i+1]
				}
			}
		}
	}
	return ""
}

func clampScore(v int64) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return int(v)
}

func subScore(parsed gjson.Result, path string) int {
	value := parsed.Get(path)
	if !value.Exists() {
		return 50
	}
	return clampScore(value.Int())
}

func stringList(value gjson.Result) []string {
	items := []string{}
	for _, item := range value.Array() {
		items = append(items, item.String())
	}
	return items
}

// FallbackAnalysis is the fixed record substituted whenever live scoring of a
// single pair cannot be completed.
func FallbackAnalysis() *dto.MatchAnalysis {
	return &dto.MatchAnalysis{
		OverallMatch:      50,
		Confidence:        30,
		KeyStrengths:      []string{"Profile review needed"},
		PotentialConcerns: []string{"AI analysis temporarily unavailable"},
		SkillGaps:         []string{},
		CareerImpact:      "Analysis will be available once AI service is restored.",
		EmployerBenefits:  []string{"Candidate shows potential"},
		ActionableAdvice:  []string{"Complete profile for better matching"},
		Breakdown: dto.MatchBreakdown{
			SkillsMatch:     50,
			ExperienceMatch: 50,
			LocationMatch:   50,
			CultureMatch:    50,
			CareerFitMatch:  50,
		},
	}
}

// FailedAnalysis is the zero-score record for a single failed item inside a
// batch, distinct from the single-pair fallback so a bad candidate ranks
// last instead of mid-pack.
func FailedAnalysis() *dto.MatchAnalysis {
	return &dto.MatchAnalysis{
		OverallMatch:      0,
		Confidence:        0,
		KeyStrengths:      []string{},
		PotentialConcerns: []string{"Analysis failed"},
		SkillGaps:         []string{},
		CareerImpact:      "Analysis unavailable",
		EmployerBenefits:  []string{},
		ActionableAdvice:  []string{},
		Breakdown:         dto.MatchBreakdown{},
	}
}
