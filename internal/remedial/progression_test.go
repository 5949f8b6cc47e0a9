package remedial

import "testing"

func TestProgressionPathLabels(t *testing.T) {
	steps := ProgressionPath(2)
	if len(steps) != 3 {
		t.Fatalf("path has %d steps, want 3", len(steps))
	}
	want := []TierStatus{TierCompleted, TierCurrent, TierLocked}
	for i, s := range steps {
		if s.Tier != i+1 {
			t.Errorf("step %d: tier = %d, want %d", i, s.Tier, i+1)
		}
		if s.Status != want[i] {
			t.Errorf("tier %d: status = %s, want %s", s.Tier, s.Status, want[i])
		}
	}
}

func TestProgressionPathBottomAndTop(t *testing.T) {
	steps := ProgressionPath(1)
	if steps[0].Status != TierCurrent || steps[1].Status != TierLocked || steps[2].Status != TierLocked {
		t.Fatalf("tier 1 path wrong: %+v", steps)
	}
	steps = ProgressionPath(3)
	if steps[0].Status != TierCompleted || steps[1].Status != TierCompleted || steps[2].Status != TierCurrent {
		t.Fatalf("tier 3 path wrong: %+v", steps)
	}
}

func TestTierLadderShape(t *testing.T) {
	all := AllTiers()
	if len(all) != 3 {
		t.Fatalf("have %d tiers, want 3", len(all))
	}
	wantTargets := []int{60, 70, 80}
	for i, cfg := range all {
		if cfg.Level != i+1 {
			t.Errorf("tier %d has level %d", i+1, cfg.Level)
		}
		if cfg.TargetAccuracy != wantTargets[i] {
			t.Errorf("tier %d target accuracy = %d, want %d", cfg.Level, cfg.TargetAccuracy, wantTargets[i])
		}
		if cfg.Level > 1 && cfg.Prerequisites.MinTier != cfg.Level-1 {
			t.Errorf("tier %d prerequisite references tier %d, want %d",
				cfg.Level, cfg.Prerequisites.MinTier, cfg.Level-1)
		}
	}
	if all[0].Prerequisites != (Prerequisites{}) {
		t.Errorf("tier 1 should have no prerequisites: %+v", all[0].Prerequisites)
	}
}
