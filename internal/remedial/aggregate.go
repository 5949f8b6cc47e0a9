package remedial

import "math"

const (
	trendWindow       = 10
	trendMinRecords   = 5
	trendDeltaPoints  = 10
	consistencyWindow = 5
)

// Aggregate reduces an answer history into a PerformanceSnapshot. Records must
// be ordered recency-descending; accuracy and counts are order-insensitive but
// the trend and consistency metrics depend on which records fall in which
// window, so callers supply a fixed, reproducible order.
func Aggregate(records []AnswerRecord) PerformanceSnapshot {
	snap := PerformanceSnapshot{
		ItemKindAccuracy: map[ItemKind]int{
			KindRegular:     0,
			KindHigherOrder: 0,
		},
		RecentTrend: TrendInsufficientData,
		ReadyTier:   MinTier,
	}
	if len(records) == 0 {
		return snap
	}

	snap.TotalQuestions = len(records)
	for _, r := range records {
		if r.IsCorrect {
			snap.CorrectAnswers++
		}
	}
	snap.Accuracy = percent(snap.CorrectAnswers, snap.TotalQuestions)

	for _, kind := range []ItemKind{KindRegular, KindHigherOrder} {
		var total, correct int
		for _, r := range records {
			if r.ItemKind != kind {
				continue
			}
			total++
			if r.IsCorrect {
				correct++
			}
		}
		// zero-sample partitions report 0, not NaN
		snap.ItemKindAccuracy[kind] = percent(correct, total)
	}

	snap.RecentTrend = recentTrend(records)
	snap.ConsistencyScore = consistencyScore(records)
	snap.ReadyTier = readyTier(snap.TotalQuestions, snap.Accuracy, snap.ConsistencyScore)
	return snap
}

// percent returns round(100*num/den), or 0 when den is 0.
func percent(num, den int) int {
	if den == 0 {
		return 0
	}
	return int(math.Round(100 * float64(num) / float64(den)))
}

// recentTrend compares the 10 most recent records against the 10 before them.
func recentTrend(records []AnswerRecord) Trend {
	if len(records) < trendMinRecords {
		return TrendInsufficientData
	}
	recent := records
	if len(recent) > trendWindow {
		recent = recent[:trendWindow]
	}
	var prior []AnswerRecord
	if len(records) > trendWindow {
		prior = records[trendWindow:]
		if len(prior) > trendWindow {
			prior = prior[:trendWindow]
		}
	}
	recentAcc := windowAccuracy(recent)
	priorAcc := windowAccuracy(prior) // empty prior window counts as 0
	switch delta := recentAcc - priorAcc; {
	case delta > trendDeltaPoints:
		return TrendImproving
	case delta < -trendDeltaPoints:
		return TrendDeclining
	default:
		return TrendStable
	}
}

func windowAccuracy(records []AnswerRecord) float64 {
	if len(records) == 0 {
		return 0
	}
	correct := 0
	for _, r := range records {
		if r.IsCorrect {
			correct++
		}
	}
	return 100 * float64(correct) / float64(len(records))
}

// consistencyScore slides a 5-record window across the history, takes the
// population standard deviation of the window accuracies, and rewards low
// variance: round(max(0, 100-stddev)). Fewer than 5 records scores 0.
func consistencyScore(records []AnswerRecord) int {
	if len(records) < consistencyWindow {
		return 0
	}
	accs := make([]float64, 0, len(records)-consistencyWindow+1)
	for i := 0; i+consistencyWindow <= len(records); i++ {
		accs = append(accs, windowAccuracy(records[i:i+consistencyWindow]))
	}
	mean := 0.0
	for _, a := range accs {
		mean += a
	}
	mean /= float64(len(accs))
	variance := 0.0
	for _, a := range accs {
		d := a - mean
		variance += d * d
	}
	variance /= float64(len(accs))
	stddev := math.Sqrt(variance)
	return int(math.Round(math.Max(0, 100-stddev)))
}

func readyTier(total, accuracy, consistency int) int {
	switch {
	case total < trendMinRecords:
		return 1
	case accuracy >= 75 && consistency >= 70:
		return 3
	case accuracy >= 60 && consistency >= 60:
		return 2
	default:
		return 1
	}
}
