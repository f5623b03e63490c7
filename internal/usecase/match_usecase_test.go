package usecase

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/internmatch-ai/internmatch-api/internal/dto"
	"github.com/internmatch-ai/internmatch-api/internal/model"
	"github.com/internmatch-ai/internmatch-api/internal/service"
	"github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type stubStudents struct {
	byID map[uuid.UUID]*model.Student
	all  []model.Student
}

func (s *stubStudents) FindByID(_ context.Context, id uuid.UUID) (*model.Student, error) {
	if st, ok := s.byID[id]; ok {
		return st, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubStudents) ListAll(_ context.Context) ([]model.Student, error) {
	return s.all, nil
}

type stubInternships struct {
	byID map[uuid.UUID]*model.Internship
	open []model.Internship
}

func (s *stubInternships) FindByID(_ context.Context, id uuid.UUID) (*model.Internship, error) {
	if in, ok := s.byID[id]; ok {
		return in, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubInternships) ListOpen(_ context.Context) ([]model.Internship, error) {
	return s.open, nil
}

// fakeCache is an in-memory MatchCache that counts writes and can be told to
// fail.
type fakeCache struct {
	mu      sync.Mutex
	entries map[string]*dto.MatchAnalysis
	puts    int
	putErr  error
	getErr  error
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string]*dto.MatchAnalysis{}}
}

func pairKey(studentID, internshipID uuid.UUID) string {
	return studentID.String() + "|" + internshipID.String()
}

func (c *fakeCache) Get(_ context.Context, studentID, internshipID uuid.UUID) (*dto.MatchAnalysis, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	analysis, ok := c.entries[pairKey(studentID, internshipID)]
	return analysis, ok, nil
}

func (c *fakeCache) Put(_ context.Context, studentID, internshipID uuid.UUID, analysis *dto.MatchAnalysis) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.puts++
	if c.putErr != nil {
		return c.putErr
	}
	c.entries[pairKey(studentID, internshipID)] = analysis
	return nil
}

func (c *fakeCache) InvalidateForStudent(_ context.Context, studentID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		if key[:len(studentID.String())] == studentID.String() {
			delete(c.entries, key)
		}
	}
	return nil
}

func (c *fakeCache) InvalidateForInternship(_ context.Context, internshipID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	suffix := "|" + internshipID.String()
	for key := range c.entries {
		if len(key) >= len(suffix) && key[len(key)-len(suffix):] == suffix {
			delete(c.entries, key)
		}
	}
	return nil
}

// stubScorer scores by internship title and counts live calls.
type stubScorer struct {
	mu       sync.Mutex
	enabled  bool
	calls    int
	scoreFor map[string]int
}

func (s *stubScorer) Enabled() bool { return s.enabled }

func (s *stubScorer) AnalyzeMatch(_ context.Context, req *dto.MatchRequest) *dto.MatchAnalysis {
	s.mu.Lock()
	s.calls++
	score := s.scoreFor[req.Internship.Title]
	s.mu.Unlock()
	return &dto.MatchAnalysis{
		OverallMatch: score,
		Confidence:   80,
		KeyStrengths: []string{"scored " + req.Internship.Title},
	}
}

func (s *stubScorer) AnalyzeCandidates(context.Context, dto.MatchInternship, []dto.CandidateInput) []dto.CandidateAnalysis {
	return nil
}

func (s *stubScorer) AnalyzeInternships(context.Context, dto.MatchStudent, []dto.InternshipInput) []dto.InternshipAnalysis {
	return nil
}

func (s *stubScorer) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func testStudent() *model.Student {
	return &model.Student{
		ID:             uuid.New(),
		University:     "IIT Bombay",
		Major:          "Computer Science",
		GraduationYear: 2026,
		Skills:         pq.StringArray{"Go"},
		Location:       "Mumbai",
	}
}

func testInternship(title string) model.Internship {
	return model.Internship{
		ID:          uuid.New(),
		Title:       title,
		Description: "desc for " + title,
		Skills:      pq.StringArray{"Go"},
		Location:    "Mumbai",
		Duration:    "3 months",
		Status:      model.InternshipStatusOpen,
	}
}

func newTestUsecase(students *stubStudents, internships *stubInternships, cache *fakeCache, scorer *stubScorer) *MatchUsecase {
	return NewMatchUsecase(students, internships, nil, cache, scorer, zap.NewNop(), 2)
}

func TestRecommendInternshipsRanksStablyAndTruncates(t *testing.T) {
	student := testStudent()
	students := &stubStudents{byID: map[uuid.UUID]*model.Student{student.ID: student}}

	// Input order: B(90), A(40), D(90), C(10). Ties keep input order, so B
	// must precede D in the output.
	internships := &stubInternships{open: []model.Internship{
		testInternship("B"), testInternship("A"), testInternship("D"), testInternship("C"),
	}}
	scorer := &stubScorer{enabled: true, scoreFor: map[string]int{"A": 40, "B": 90, "C": 10, "D": 90}}

	uc := newTestUsecase(students, internships, newFakeCache(), scorer)
	got, err := uc.RecommendInternships(context.Background(), student.ID, 0)
	if err != nil {
		t.Fatal(err)
	}

	if len(got) != 4 {
		t.Fatalf("got %d recommendations, want 4", len(got))
	}
	scores := []int{got[0].MatchScore, got[1].MatchScore, got[2].MatchScore, got[3].MatchScore}
	want := []int{90, 90, 40, 10}
	for i := range want {
		if scores[i] != want[i] {
			t.Fatalf("scores = %v, want %v", scores, want)
		}
	}
	if got[0].Internship.Title != "B" || got[1].Internship.Title != "D" {
		t.Errorf("tie order = [%s %s], want [B D]", got[0].Internship.Title, got[1].Internship.Title)
	}

	truncated, err := uc.RecommendInternships(context.Background(), student.ID, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(truncated) != 2 || truncated[0].MatchScore != 90 {
		t.Errorf("limit 2 returned %d items", len(truncated))
	}
}

func TestRecommendInternshipsCachesMisses(t *testing.T) {
	student := testStudent()
	students := &stubStudents{byID: map[uuid.UUID]*model.Student{student.ID: student}}
	internships := &stubInternships{open: []model.Internship{testInternship("A"), testInternship("B")}}
	scorer := &stubScorer{enabled: true, scoreFor: map[string]int{"A": 70, "B": 30}}
	cache := newFakeCache()

	uc := newTestUsecase(students, internships, cache, scorer)

	if _, err := uc.RecommendInternships(context.Background(), student.ID, 0); err != nil {
		t.Fatal(err)
	}
	if scorer.callCount() != 2 {
		t.Fatalf("first pass scored %d pairs, want 2", scorer.callCount())
	}
	if cache.puts != 2 {
		t.Fatalf("first pass wrote %d cache entries, want 2", cache.puts)
	}

	// Second pass is served entirely from the cache.
	got, err := uc.RecommendInternships(context.Background(), student.ID, 0)
	if err != nil {
		t.Fatal(err)
	}
	if scorer.callCount() != 2 {
		t.Errorf("second pass re-scored: %d calls total", scorer.callCount())
	}
	if got[0].MatchScore != 70 || got[1].MatchScore != 30 {
		t.Errorf("cached scores = [%d %d], want [70 30]", got[0].MatchScore, got[1].MatchScore)
	}
}

func TestRecommendInternshipsUnknownStudent(t *testing.T) {
	uc := newTestUsecase(
		&stubStudents{byID: map[uuid.UUID]*model.Student{}},
		&stubInternships{open: []model.Internship{testInternship("A")}},
		newFakeCache(),
		&stubScorer{enabled: true},
	)

	got, err := uc.RecommendInternships(context.Background(), uuid.New(), 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("got %d recommendations for unknown student, want 0", len(got))
	}
}

func TestRecommendInternshipsIncompleteProfile(t *testing.T) {
	student := testStudent()
	student.Major = ""
	uc := newTestUsecase(
		&stubStudents{byID: map[uuid.UUID]*model.Student{student.ID: student}},
		&stubInternships{open: []model.Internship{testInternship("A")}},
		newFakeCache(),
		&stubScorer{enabled: true},
	)

	if _, err := uc.RecommendInternships(context.Background(), student.ID, 0); err == nil {
		t.Error("expected error for incomplete profile")
	}
}

func TestCacheFailuresAreAdvisory(t *testing.T) {
	student := testStudent()
	students := &stubStudents{byID: map[uuid.UUID]*model.Student{student.ID: student}}
	internships := &stubInternships{open: []model.Internship{testInternship("A")}}
	scorer := &stubScorer{enabled: true, scoreFor: map[string]int{"A": 65}}

	cache := newFakeCache()
	cache.putErr = errors.New("disk full")
	cache.getErr = errors.New("disk full")

	uc := newTestUsecase(students, internships, cache, scorer)
	got, err := uc.RecommendInternships(context.Background(), student.ID, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].MatchScore != 65 {
		t.Errorf("got %+v, want one live-scored result", got)
	}
}

func TestHeuristicPathWhenScorerDisabled(t *testing.T) {
	student := testStudent()
	students := &stubStudents{byID: map[uuid.UUID]*model.Student{student.ID: student}}
	internships := &stubInternships{open: []model.Internship{testInternship("A")}}
	scorer := &stubScorer{enabled: false}

	uc := newTestUsecase(students, internships, newFakeCache(), scorer)
	got, err := uc.RecommendInternships(context.Background(), student.ID, 0)
	if err != nil {
		t.Fatal(err)
	}
	if scorer.callCount() != 0 {
		t.Errorf("disabled scorer was called %d times", scorer.callCount())
	}
	if got[0].Analysis.Confidence != 60 {
		t.Errorf("Confidence = %d, want heuristic 60", got[0].Analysis.Confidence)
	}
}

func TestAnalyzePairReadsThroughCache(t *testing.T) {
	student := testStudent()
	internship := testInternship("A")
	students := &stubStudents{byID: map[uuid.UUID]*model.Student{student.ID: student}}
	internships := &stubInternships{
		byID: map[uuid.UUID]*model.Internship{internship.ID: &internship},
	}
	scorer := &stubScorer{enabled: true, scoreFor: map[string]int{"A": 77}}
	cache := newFakeCache()

	uc := newTestUsecase(students, internships, cache, scorer)

	first, err := uc.AnalyzePair(context.Background(), student.ID, internship.ID)
	if err != nil {
		t.Fatal(err)
	}
	second, err := uc.AnalyzePair(context.Background(), student.ID, internship.ID)
	if err != nil {
		t.Fatal(err)
	}

	if scorer.callCount() != 1 {
		t.Errorf("scorer called %d times, want 1", scorer.callCount())
	}
	if first.OverallMatch != 77 || second.OverallMatch != 77 {
		t.Errorf("scores = [%d %d], want [77 77]", first.OverallMatch, second.OverallMatch)
	}
}

func TestAnalyzePairUnknownPair(t *testing.T) {
	uc := newTestUsecase(
		&stubStudents{byID: map[uuid.UUID]*model.Student{}},
		&stubInternships{byID: map[uuid.UUID]*model.Internship{}},
		newFakeCache(),
		&stubScorer{enabled: true},
	)

	_, err := uc.AnalyzePair(context.Background(), uuid.New(), uuid.New())
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("err = %v, want gorm.ErrRecordNotFound", err)
	}
}

func TestMalformedPoolMemberIsNotCached(t *testing.T) {
	internship := testInternship("A")
	complete := testStudent()
	incomplete := testStudent()
	incomplete.University = ""

	students := &stubStudents{all: []model.Student{*complete, *incomplete}}
	internships := &stubInternships{
		byID: map[uuid.UUID]*model.Internship{internship.ID: &internship},
	}
	scorer := &stubScorer{enabled: true, scoreFor: map[string]int{"A": 80}}
	cache := newFakeCache()

	uc := newTestUsecase(students, internships, cache, scorer)
	got, err := uc.RecommendCandidates(context.Background(), internship.ID, 0)
	if err != nil {
		t.Fatal(err)
	}

	if len(got) != 2 {
		t.Fatalf("got %d candidates, want 2", len(got))
	}
	if got[0].MatchScore != 80 || got[1].MatchScore != 50 {
		t.Errorf("scores = [%d %d], want scored 80 then fallback 50", got[0].MatchScore, got[1].MatchScore)
	}
	if scorer.callCount() != 1 {
		t.Errorf("scorer called %d times, want 1 (malformed record must not be scored)", scorer.callCount())
	}
	// Only the scoreable pair lands in the cache; the incomplete profile is
	// rescored once it is filled in.
	if cache.puts != 1 {
		t.Errorf("cache writes = %d, want 1", cache.puts)
	}
	if _, hit, _ := cache.Get(context.Background(), incomplete.ID, internship.ID); hit {
		t.Error("fallback for malformed record was cached")
	}
}

func sampleAnalysis(score int) *dto.MatchAnalysis {
	return &dto.MatchAnalysis{
		OverallMatch:      score,
		Confidence:        70,
		KeyStrengths:      []string{"Go experience"},
		PotentialConcerns: []string{"No production work"},
		SkillGaps:         []string{"Kubernetes"},
		CareerImpact:      "solid first role",
		EmployerBenefits:  []string{"ramps fast"},
		ActionableAdvice:  []string{"ship a side project"},
		Breakdown: dto.MatchBreakdown{
			SkillsMatch:     score,
			ExperienceMatch: 60,
			LocationMatch:   90,
			CultureMatch:    70,
			CareerFitMatch:  80,
		},
	}
}

func TestMatchCacheRoundTrip(t *testing.T) {
	cache := newFakeCache()
	ctx := context.Background()
	studentID, internshipID := uuid.New(), uuid.New()

	if _, hit, err := cache.Get(ctx, studentID, internshipID); err != nil || hit {
		t.Fatalf("fresh cache: hit=%v err=%v, want miss", hit, err)
	}

	want := sampleAnalysis(77)
	if err := cache.Put(ctx, studentID, internshipID, want); err != nil {
		t.Fatal(err)
	}

	got, hit, err := cache.Get(ctx, studentID, internshipID)
	if err != nil || !hit {
		t.Fatalf("hit=%v err=%v, want hit", hit, err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round-trip changed the analysis:\ngot  %+v\nwant %+v", got, want)
	}

	// Reads are idempotent.
	again, hit, err := cache.Get(ctx, studentID, internshipID)
	if err != nil || !hit {
		t.Fatalf("second read: hit=%v err=%v", hit, err)
	}
	if !reflect.DeepEqual(again, got) {
		t.Errorf("second read differs from first:\n%+v\n%+v", again, got)
	}

	// A newer write for the same pair supersedes the old one.
	if err := cache.Put(ctx, studentID, internshipID, sampleAnalysis(30)); err != nil {
		t.Fatal(err)
	}
	latest, _, _ := cache.Get(ctx, studentID, internshipID)
	if latest.OverallMatch != 30 {
		t.Errorf("after rewrite OverallMatch = %d, want 30", latest.OverallMatch)
	}
}

func TestMatchCacheInvalidation(t *testing.T) {
	cache := newFakeCache()
	ctx := context.Background()

	student, otherStudent := uuid.New(), uuid.New()
	internshipA, internshipB := uuid.New(), uuid.New()

	for _, pair := range [][2]uuid.UUID{
		{student, internshipA},
		{student, internshipB},
		{otherStudent, internshipA},
	} {
		if err := cache.Put(ctx, pair[0], pair[1], sampleAnalysis(60)); err != nil {
			t.Fatal(err)
		}
	}

	// Every row for the student goes; other students are untouched.
	if err := cache.InvalidateForStudent(ctx, student); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := cache.Get(ctx, student, internshipA); hit {
		t.Error("student row for internship A survived invalidation")
	}
	if _, hit, _ := cache.Get(ctx, student, internshipB); hit {
		t.Error("student row for internship B survived invalidation")
	}
	if _, hit, _ := cache.Get(ctx, otherStudent, internshipA); !hit {
		t.Error("unrelated student's row was invalidated")
	}

	// Symmetric for the internship axis.
	if err := cache.Put(ctx, student, internshipA, sampleAnalysis(60)); err != nil {
		t.Fatal(err)
	}
	if err := cache.InvalidateForInternship(ctx, internshipA); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := cache.Get(ctx, student, internshipA); hit {
		t.Error("row for invalidated internship survived")
	}
	if _, hit, _ := cache.Get(ctx, otherStudent, internshipA); hit {
		t.Error("other student's row for invalidated internship survived")
	}
}

var _ service.OpenRouterServiceInterface = (*stubScorer)(nil)
