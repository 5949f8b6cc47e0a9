package remedial

import "testing"

func snapWith(total, accuracy, consistency, readyTier int) PerformanceSnapshot {
	return PerformanceSnapshot{
		TotalQuestions:   total,
		CorrectAnswers:   total * accuracy / 100,
		Accuracy:         accuracy,
		ConsistencyScore: consistency,
		ReadyTier:        readyTier,
		RecentTrend:      TrendStable,
		ItemKindAccuracy: map[ItemKind]int{KindRegular: accuracy, KindHigherOrder: 0},
	}
}

func TestResolveTierHonorsValidRequest(t *testing.T) {
	// tier 2 prerequisites: min accuracy 60, min questions 10
	snap := snapWith(12, 65, 40, 1)
	if got := ResolveTier(snap, 2); got != 2 {
		t.Fatalf("resolved = %d, want requested tier 2", got)
	}
}

func TestResolveTierRejectsUnmetPrerequisites(t *testing.T) {
	snap := snapWith(3, 50, 0, 1)
	if got := ResolveTier(snap, 3); got != snap.ReadyTier {
		t.Fatalf("resolved = %d, want fallback to readyTier %d", got, snap.ReadyTier)
	}
}

func TestResolveTierIgnoresOutOfRangeRequest(t *testing.T) {
	snap := snapWith(30, 80, 80, 3)
	for _, req := range []int{0, -1, 4, 99} {
		if got := ResolveTier(snap, req); got != 3 {
			t.Fatalf("request %d: resolved = %d, want readyTier 3", req, got)
		}
	}
}

func TestResolveTierSkipsPriorTierCompletionCheck(t *testing.T) {
	// A student who never touched tier 1 but has the numbers for tier 3 gets
	// tier 3. Prerequisites check accuracy and volume only.
	snap := snapWith(25, 80, 10, 1)
	if got := ResolveTier(snap, 3); got != 3 {
		t.Fatalf("resolved = %d, want 3 (no prior-tier completion gate)", got)
	}
}

func TestResolveTierDownRequestAllowed(t *testing.T) {
	// tier 1 has no prerequisites, so a strong student may still request it
	snap := snapWith(40, 90, 90, 3)
	if got := ResolveTier(snap, 1); got != 1 {
		t.Fatalf("resolved = %d, want 1", got)
	}
}
