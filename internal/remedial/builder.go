package remedial

import (
	"math"
	"time"
)

const minutesPerQuestion = 2.5

// QuestionFilter narrows the candidate pool for a session.
type QuestionFilter struct {
	Subtest  Subtest
	ItemKind ItemKind // empty: no kind filter
	OrderBy  string   // "id_asc" | "id_desc" | "" (bank order)
}

// BuildSession packages a practice set for the resolved tier. Candidates are
// assumed to already match the tier's filter (see Filter). Fewer candidates
// than the tier's session length yields a short session; zero candidates yield
// an empty one. Neither is an error.
func BuildSession(cfg TierConfig, subtest Subtest, snap PerformanceSnapshot, candidates []Question) RemedialSession {
	questions := candidates
	if len(questions) > cfg.SessionLength {
		questions = questions[:cfg.SessionLength]
	}
	for i := range questions {
		questions[i].AnswerKey = ""
	}
	return RemedialSession{
		ID:                       newSessionID(),
		Tier:                     cfg.Level,
		Subtest:                  subtest,
		Questions:                questions,
		TotalQuestions:           len(questions),
		EstimatedDurationMinutes: estimateDuration(len(questions)),
		CurrentAccuracy:          snap.Accuracy,
		TargetAccuracy:           cfg.TargetAccuracy,
		NextTierRequirements:     nextTierRequirements(cfg),
	}
}

// Filter derives the candidate-question query for a tier. Tiers allowing a
// single item kind filter on it; dual-kind tiers take a mix. Difficulty is
// proxied by identifier order: ascending for the easy tier, descending for the
// hard one, bank order for medium. The bank has no difficulty field, so the
// ordering heuristic stands in for one.
func Filter(cfg TierConfig, subtest Subtest) QuestionFilter {
	f := QuestionFilter{Subtest: subtest}
	if len(cfg.AllowedKinds) == 1 {
		f.ItemKind = cfg.AllowedKinds[0]
	}
	switch cfg.DifficultyLabel {
	case "easy":
		f.OrderBy = "id_asc"
	case "hard":
		f.OrderBy = "id_desc"
	}
	return f
}

func estimateDuration(n int) int {
	return int(math.Ceil(float64(n) * minutesPerQuestion))
}

func newSessionID() string {
	return "rs-" + time.Now().UTC().Format("20060102150405")
}
