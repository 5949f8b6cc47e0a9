package remedial

// ProgressionPath projects the static tier ladder against the resolved tier.
// Pure function over config; no store reads.
func ProgressionPath(resolved int) []ProgressionStep {
	steps := make([]ProgressionStep, 0, MaxTier)
	for _, cfg := range AllTiers() {
		status := TierLocked
		switch {
		case cfg.Level < resolved:
			status = TierCompleted
		case cfg.Level == resolved:
			status = TierCurrent
		}
		steps = append(steps, ProgressionStep{
			Tier:           cfg.Level,
			Name:           cfg.Name,
			Description:    cfg.Description,
			Status:         status,
			TargetAccuracy: cfg.TargetAccuracy,
			Requirements:   cfg.Progression,
		})
	}
	return steps
}
