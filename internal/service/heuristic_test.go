package service

import (
	"reflect"
	"testing"
	"time"

	"github.com/lib/pq"
)

func TestScoreInternshipHeuristicallyIsDeterministic(t *testing.T) {
	student := validStudent()
	internship := validInternship()

	first := ScoreInternshipHeuristically(student, internship)
	second := ScoreInternshipHeuristically(student, internship)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("same inputs produced different analyses:\n%+v\n%+v", first, second)
	}
}

func TestScoreInternshipHeuristicallySkillOverlap(t *testing.T) {
	student := validStudent()
	student.GraduationYear = time.Now().Year() + 5 // no timing bonus
	internship := validInternship()
	internship.Skills = pq.StringArray{"Go", "Rust"}

	analysis := ScoreInternshipHeuristically(student, internship)

	// base 50 + one skill match (Go) * 10
	if analysis.OverallMatch != 60 {
		t.Errorf("OverallMatch = %d, want 60", analysis.OverallMatch)
	}
	if !reflect.DeepEqual(analysis.SkillGaps, []string{"Rust"}) {
		t.Errorf("SkillGaps = %v, want [Rust]", analysis.SkillGaps)
	}
}

func TestScoreInternshipHeuristicallyClampsAt100(t *testing.T) {
	student := validStudent()
	student.Skills = pq.StringArray{"Go", "SQL", "Docker", "Kubernetes", "Redis", "Kafka", "gRPC"}
	internship := validInternship()
	internship.Skills = pq.StringArray(student.Skills)

	analysis := ScoreInternshipHeuristically(student, internship)
	if analysis.OverallMatch != 100 {
		t.Errorf("OverallMatch = %d, want clamped 100", analysis.OverallMatch)
	}
	if analysis.Breakdown.SkillsMatch > 100 {
		t.Errorf("SkillsMatch = %d, exceeds 100", analysis.Breakdown.SkillsMatch)
	}
}

func TestScoreCandidateHeuristicallyGPABonus(t *testing.T) {
	internship := validInternship()
	internship.Skills = pq.StringArray{}

	strong := validStudent()
	strong.Skills = pq.StringArray{}
	strong.GPA = "3.8"
	strong.GraduationYear = 0

	average := validStudent()
	average.Skills = pq.StringArray{}
	average.GPA = "3.1"
	average.GraduationYear = 0

	unparseable := validStudent()
	unparseable.Skills = pq.StringArray{}
	unparseable.GPA = "excellent"
	unparseable.GraduationYear = 0

	if got := ScoreCandidateHeuristically(internship, strong).OverallMatch; got != 70 {
		t.Errorf("high GPA score = %d, want 70", got)
	}
	if got := ScoreCandidateHeuristically(internship, average).OverallMatch; got != 60 {
		t.Errorf("good GPA score = %d, want 60", got)
	}
	if got := ScoreCandidateHeuristically(internship, unparseable).OverallMatch; got != 50 {
		t.Errorf("unparseable GPA score = %d, want base 50", got)
	}
}

func TestOverlapIsCaseInsensitiveAndFuzzy(t *testing.T) {
	got := overlap([]string{"JavaScript", "react", "Python"}, []string{"REACT", "Java"})
	want := []string{"JavaScript", "react"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("overlap = %v, want %v", got, want)
	}
}

func TestHeuristicConfidenceIsModest(t *testing.T) {
	analysis := ScoreInternshipHeuristically(validStudent(), validInternship())
	if analysis.Confidence != 60 {
		t.Errorf("Confidence = %d, want 60", analysis.Confidence)
	}
}
