package remedial

import "time"

// Subtest codes follow the seven UTBK sections.
type Subtest string

const (
	SubtestPU      Subtest = "PU"       // Penalaran Umum
	SubtestPPU     Subtest = "PPU"      // Pengetahuan dan Pemahaman Umum
	SubtestPBM     Subtest = "PBM"      // Pemahaman Bacaan dan Menulis
	SubtestPK      Subtest = "PK"       // Pengetahuan Kuantitatif
	SubtestLitIndo Subtest = "LIT_INDO" // Literasi Bahasa Indonesia
	SubtestLitIng  Subtest = "LIT_ING"  // Literasi Bahasa Inggris
	SubtestPM      Subtest = "PM"       // Penalaran Matematika
)

var allSubtests = []Subtest{
	SubtestPU, SubtestPPU, SubtestPBM, SubtestPK,
	SubtestLitIndo, SubtestLitIng, SubtestPM,
}

func ValidSubtest(s Subtest) bool {
	for _, t := range allSubtests {
		if t == s {
			return true
		}
	}
	return false
}

type ItemKind string

const (
	KindRegular     ItemKind = "regular"
	KindHigherOrder ItemKind = "higher_order" // HOTS items
)

func ValidItemKind(k ItemKind) bool {
	return k == KindRegular || k == KindHigherOrder
}

type Trend string

const (
	TrendImproving        Trend = "improving"
	TrendDeclining        Trend = "declining"
	TrendStable           Trend = "stable"
	TrendInsufficientData Trend = "insufficient_data"
)

// AnswerRecord is one historical attempt. Append-only: never mutated after insert.
type AnswerRecord struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	QuestionID string    `json:"question_id"`
	Subtest    Subtest   `json:"subtest_code"`
	ItemKind   ItemKind  `json:"item_kind"`
	IsCorrect  bool      `json:"is_correct"`
	AnsweredAt time.Time `json:"answered_at"`
}

// PerformanceSnapshot is derived from answer history on every request; it is
// never persisted.
type PerformanceSnapshot struct {
	TotalQuestions   int              `json:"total_questions"`
	CorrectAnswers   int              `json:"correct_answers"`
	Accuracy         int              `json:"accuracy"` // 0..100, rounded
	ItemKindAccuracy map[ItemKind]int `json:"item_kind_accuracy"`
	RecentTrend      Trend            `json:"recent_trend"`
	ConsistencyScore int              `json:"consistency_score"` // 0..100
	ReadyTier        int              `json:"ready_tier"`        // 1..3
}

// Question is a student-safe question-bank entry. The answer key never leaves
// the store for student-facing reads.
type Question struct {
	ID        string   `json:"id"`
	Subtest   Subtest  `json:"subtest_code"`
	ItemKind  ItemKind `json:"item_kind"`
	Prompt    string   `json:"prompt"`
	Choices   []Choice `json:"choices,omitempty"`
	AnswerKey string   `json:"answer_key,omitempty"`
	CreatedAt int64    `json:"created_at,omitempty"`
}

type Choice struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// RemedialSession is one issued practice set. Created once, persisted once,
// never mutated by this subsystem.
type RemedialSession struct {
	ID                       string     `json:"id"`
	Tier                     int        `json:"tier"`
	Subtest                  Subtest    `json:"subtest_code"`
	Questions                []Question `json:"questions"`
	TotalQuestions           int        `json:"total_questions"`
	EstimatedDurationMinutes int        `json:"estimated_duration_minutes"`
	CurrentAccuracy          int        `json:"current_accuracy"`
	TargetAccuracy           int        `json:"target_accuracy"`
	NextTierRequirements     string     `json:"next_tier_requirements"`
}

// TierStatus labels one rung of the progression path.
type TierStatus string

const (
	TierCompleted TierStatus = "completed"
	TierCurrent   TierStatus = "current"
	TierLocked    TierStatus = "locked"
)

type ProgressionStep struct {
	Tier           int                 `json:"tier"`
	Name           string              `json:"name"`
	Description    string              `json:"description"`
	Status         TierStatus          `json:"status"`
	TargetAccuracy int                 `json:"target_accuracy"`
	Requirements   ProgressionCriteria `json:"requirements"`
}
