package remedial

import (
	"fmt"
	"strings"
	"testing"
)

func bank(n int, subtest Subtest, kind ItemKind) []Question {
	qs := make([]Question, 0, n)
	for i := 0; i < n; i++ {
		qs = append(qs, Question{
			ID:        fmt.Sprintf("q-%03d", i),
			Subtest:   subtest,
			ItemKind:  kind,
			Prompt:    fmt.Sprintf("question %d", i),
			AnswerKey: "A",
		})
	}
	return qs
}

func TestBuildSessionTruncatesToSessionLength(t *testing.T) {
	cfg, _ := TierByLevel(1) // session length 12
	s := BuildSession(cfg, SubtestPU, PerformanceSnapshot{}, bank(30, SubtestPU, KindRegular))
	if s.TotalQuestions != 12 || len(s.Questions) != 12 {
		t.Fatalf("session has %d questions, want 12", s.TotalQuestions)
	}
}

func TestBuildSessionShortWhenBankIsSmall(t *testing.T) {
	cfg, _ := TierByLevel(1)
	s := BuildSession(cfg, SubtestPU, PerformanceSnapshot{}, bank(3, SubtestPU, KindRegular))
	if s.TotalQuestions != 3 {
		t.Fatalf("session has %d questions, want all 3 available", s.TotalQuestions)
	}
}

func TestBuildSessionEmptyBankIsNotAnError(t *testing.T) {
	cfg, _ := TierByLevel(2)
	s := BuildSession(cfg, SubtestPK, PerformanceSnapshot{}, nil)
	if s.TotalQuestions != 0 || len(s.Questions) != 0 {
		t.Fatalf("empty bank: got %d questions, want 0", s.TotalQuestions)
	}
	if s.EstimatedDurationMinutes != 0 {
		t.Fatalf("empty session duration = %d, want 0", s.EstimatedDurationMinutes)
	}
}

func TestBuildSessionDurationFormula(t *testing.T) {
	cases := []struct{ n, want int }{
		{3, 8},   // ceil(7.5)
		{12, 30},
		{15, 38}, // ceil(37.5)
		{18, 45},
	}
	for _, tc := range cases {
		cfg := TierConfig{Level: 1, SessionLength: tc.n, TargetAccuracy: 60}
		s := BuildSession(cfg, SubtestPU, PerformanceSnapshot{}, bank(tc.n, SubtestPU, KindRegular))
		if s.EstimatedDurationMinutes != tc.want {
			t.Errorf("n=%d: duration = %d, want %d", tc.n, s.EstimatedDurationMinutes, tc.want)
		}
	}
}

func TestBuildSessionStripsAnswerKeys(t *testing.T) {
	cfg, _ := TierByLevel(1)
	s := BuildSession(cfg, SubtestPU, PerformanceSnapshot{}, bank(5, SubtestPU, KindRegular))
	for _, q := range s.Questions {
		if q.AnswerKey != "" {
			t.Fatalf("answer key leaked in session question %s", q.ID)
		}
	}
}

func TestBuildSessionCopiesAccuracies(t *testing.T) {
	cfg, _ := TierByLevel(2)
	snap := PerformanceSnapshot{Accuracy: 64}
	s := BuildSession(cfg, SubtestPBM, snap, bank(15, SubtestPBM, KindRegular))
	if s.CurrentAccuracy != 64 {
		t.Errorf("current accuracy = %d, want 64", s.CurrentAccuracy)
	}
	if s.TargetAccuracy != cfg.TargetAccuracy {
		t.Errorf("target accuracy = %d, want %d", s.TargetAccuracy, cfg.TargetAccuracy)
	}
}

func TestBuildSessionNextTierRequirements(t *testing.T) {
	cfg1, _ := TierByLevel(1)
	s := BuildSession(cfg1, SubtestPU, PerformanceSnapshot{}, nil)
	if !strings.Contains(s.NextTierRequirements, "60%") {
		t.Errorf("tier 1 requirements missing threshold: %q", s.NextTierRequirements)
	}
	cfg3, _ := TierByLevel(3)
	s = BuildSession(cfg3, SubtestPU, PerformanceSnapshot{}, nil)
	if s.NextTierRequirements != "max tier reached" {
		t.Errorf("tier 3 requirements = %q, want max tier reached", s.NextTierRequirements)
	}
}

func TestFilterPolicies(t *testing.T) {
	cases := []struct {
		tier     int
		wantKind ItemKind
		wantOrd  string
	}{
		{1, KindRegular, "id_asc"},
		{2, "", ""}, // dual-kind, bank order
		{3, KindHigherOrder, "id_desc"},
	}
	for _, tc := range cases {
		cfg, _ := TierByLevel(tc.tier)
		f := Filter(cfg, SubtestPM)
		if f.Subtest != SubtestPM {
			t.Errorf("tier %d: subtest = %s", tc.tier, f.Subtest)
		}
		if f.ItemKind != tc.wantKind {
			t.Errorf("tier %d: kind = %q, want %q", tc.tier, f.ItemKind, tc.wantKind)
		}
		if f.OrderBy != tc.wantOrd {
			t.Errorf("tier %d: order = %q, want %q", tc.tier, f.OrderBy, tc.wantOrd)
		}
	}
}
