package remedial

import "fmt"

// Prerequisites gate entry into a tier. Zero values mean "no requirement".
// Only accuracy and volume are checked; completion of the previous tier is
// not independently verified.
type Prerequisites struct {
	MinTier      int `json:"min_tier,omitempty"`
	MinAccuracy  int `json:"min_accuracy,omitempty"`
	MinQuestions int `json:"min_questions,omitempty"`
}

// ProgressionCriteria describe what it takes to clear a tier.
type ProgressionCriteria struct {
	AccuracyThreshold   int `json:"accuracy_threshold"`
	MinQuestions        int `json:"min_questions"`
	ConsistencySessions int `json:"consistency_sessions"`
}

type TierConfig struct {
	Level           int                 `json:"tier"`
	Name            string              `json:"name"`
	Description     string              `json:"description"`
	TargetAccuracy  int                 `json:"target_accuracy"`
	AllowedKinds    []ItemKind          `json:"allowed_item_kinds"`
	DifficultyLabel string              `json:"difficulty_label"` // easy|medium|hard
	SessionLength   int                 `json:"session_length"`
	Prerequisites   Prerequisites       `json:"prerequisites"`
	Progression     ProgressionCriteria `json:"progression_criteria"`
}

const (
	MinTier = 1
	MaxTier = 3
)

// tiers is the static three-rung ladder. Tier n's prerequisite references
// tier n-1 only; tier 1 has none.
var tiers = []TierConfig{
	{
		Level:           1,
		Name:            "Fondasi",
		Description:     "Rebuild fundamentals with regular items at a gentle pace",
		TargetAccuracy:  60,
		AllowedKinds:    []ItemKind{KindRegular},
		DifficultyLabel: "easy",
		SessionLength:   12,
		Prerequisites:   Prerequisites{},
		Progression: ProgressionCriteria{
			AccuracyThreshold:   60,
			MinQuestions:        10,
			ConsistencySessions: 2,
		},
	},
	{
		Level:           2,
		Name:            "Pemantapan",
		Description:     "Mixed regular and HOTS items at standard exam difficulty",
		TargetAccuracy:  70,
		AllowedKinds:    []ItemKind{KindRegular, KindHigherOrder},
		DifficultyLabel: "medium",
		SessionLength:   15,
		Prerequisites: Prerequisites{
			MinTier:      1,
			MinAccuracy:  60,
			MinQuestions: 10,
		},
		Progression: ProgressionCriteria{
			AccuracyThreshold:   70,
			MinQuestions:        15,
			ConsistencySessions: 3,
		},
	},
	{
		Level:           3,
		Name:            "Penajaman",
		Description:     "HOTS-only drills tuned for top-band scores",
		TargetAccuracy:  80,
		AllowedKinds:    []ItemKind{KindHigherOrder},
		DifficultyLabel: "hard",
		SessionLength:   18,
		Prerequisites: Prerequisites{
			MinTier:      2,
			MinAccuracy:  75,
			MinQuestions: 20,
		},
		Progression: ProgressionCriteria{
			AccuracyThreshold:   80,
			MinQuestions:        18,
			ConsistencySessions: 3,
		},
	},
}

// TierByLevel returns the config for level 1..3.
func TierByLevel(level int) (TierConfig, bool) {
	if level < MinTier || level > MaxTier {
		return TierConfig{}, false
	}
	return tiers[level-1], true
}

func AllTiers() []TierConfig {
	out := make([]TierConfig, len(tiers))
	copy(out, tiers)
	return out
}

// nextTierRequirements summarises the current tier's progression criteria for
// display. The top tier reports completion instead.
func nextTierRequirements(cfg TierConfig) string {
	if cfg.Level >= MaxTier {
		return "max tier reached"
	}
	return fmt.Sprintf("reach %d%% accuracy across at least %d questions over %d consistent sessions",
		cfg.Progression.AccuracyThreshold, cfg.Progression.MinQuestions, cfg.Progression.ConsistencySessions)
}
