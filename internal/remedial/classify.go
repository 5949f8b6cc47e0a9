package remedial

// ResolveTier picks the tier for a session. A caller-requested tier wins when
// it is in range and its accuracy/volume prerequisites hold against the
// snapshot; anything else falls back to the snapshot's ready tier. Completion
// of the previous tier is intentionally not checked here.
func ResolveTier(snap PerformanceSnapshot, requested int) int {
	cfg, ok := TierByLevel(requested)
	if !ok {
		return snap.ReadyTier
	}
	if meetsPrerequisites(snap, cfg.Prerequisites) {
		return cfg.Level
	}
	return snap.ReadyTier
}

func meetsPrerequisites(snap PerformanceSnapshot, p Prerequisites) bool {
	if p.MinAccuracy > 0 && snap.Accuracy < p.MinAccuracy {
		return false
	}
	if p.MinQuestions > 0 && snap.TotalQuestions < p.MinQuestions {
		return false
	}
	return true
}
