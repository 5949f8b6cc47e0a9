package remedial

import "context"

type HistoryOpts struct {
	UserID  string
	Subtest Subtest // empty: all subtests
	Limit   int
	Offset  int
}

// ProgressRow is the bookkeeping record written once per issued session.
type ProgressRow struct {
	ID              string  `json:"id"`
	UserID          string  `json:"user_id"`
	Subtest         Subtest `json:"subtest_code"`
	Tier            int     `json:"tier"`
	CurrentAccuracy int     `json:"current_accuracy"`
	TargetAccuracy  int     `json:"target_accuracy"`
	TotalQuestions  int     `json:"total_questions"`
	Status          string  `json:"status"` // in_progress
	CreatedAt       int64   `json:"created_at"`
}

// Store is the data-store boundary. Rows crossing it are already typed;
// handlers and the engine never see raw database shapes.
type Store interface {
	RecordAnswer(ctx context.Context, rec AnswerRecord) error
	// AnswerHistory returns records ordered recency-descending.
	AnswerHistory(ctx context.Context, opts HistoryOpts) ([]AnswerRecord, error)

	PutQuestions(ctx context.Context, qs []Question) (int, error)
	// ListQuestions applies the filter's subtest, optional item kind, and
	// ordering policy, capped at limit.
	ListQuestions(ctx context.Context, f QuestionFilter, limit int) ([]Question, error)

	InsertProgress(ctx context.Context, row ProgressRow) error
}

// EventLog receives issuance events. Append failures share the progress
// write's fire-and-forget contract.
type EventLog interface {
	Append(ctx context.Context, typ, key string, data any) error
}
