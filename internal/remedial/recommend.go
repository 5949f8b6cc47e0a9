package remedial

import "fmt"

// Recommend turns a snapshot into short study hints for the response payload.
func Recommend(snap PerformanceSnapshot, cfg TierConfig) []string {
	recs := []string{}
	if snap.TotalQuestions == 0 {
		return append(recs,
			"No answer history yet for this subtest. Start with the foundation tier to build a baseline.")
	}
	if snap.Accuracy < cfg.TargetAccuracy {
		recs = append(recs, fmt.Sprintf(
			"Current accuracy is %d%%; aim for the tier target of %d%%.",
			snap.Accuracy, cfg.TargetAccuracy))
	}
	if snap.RecentTrend == TrendDeclining {
		recs = append(recs, "Recent results are trending down. Slow down and review explanations before moving on.")
	}
	if snap.ConsistencyScore > 0 && snap.ConsistencyScore < 60 {
		recs = append(recs, "Accuracy swings a lot between sessions. Shorter, more frequent practice evens this out.")
	}
	regular := snap.ItemKindAccuracy[KindRegular]
	hots := snap.ItemKindAccuracy[KindHigherOrder]
	if regular > 0 && hots > 0 && regular-hots >= 15 {
		recs = append(recs, "HOTS items lag well behind regular ones. Mix in more higher-order practice.")
	}
	if len(recs) == 0 {
		recs = append(recs, "Performance is on track. Keep the current pace.")
	}
	return recs
}
