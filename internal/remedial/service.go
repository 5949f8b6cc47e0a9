package remedial

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
)

// historyFetchLimit bounds the snapshot's input. The trend and consistency
// windows never look past the first 100 records anyway.
const historyFetchLimit = 100

const progressWarning = "session issued, but progress tracking could not be recorded"

// SessionResult is everything the remedial endpoint returns for one issuance.
type SessionResult struct {
	Session         RemedialSession
	Performance     PerformanceSnapshot
	TierInfo        TierConfig
	Path            []ProgressionStep
	Recommendations []string
	Warning         string // non-empty when bookkeeping failed
}

// Service runs the aggregate → classify → build pipeline and performs the one
// bookkeeping write. The store is injected so tests can swap in the in-memory
// implementation.
type Service struct {
	store  Store
	events EventLog
}

func NewService(store Store) *Service { return &Service{store: store} }

// WithEventLog attaches an issuance event sink. Optional.
func (s *Service) WithEventLog(el EventLog) *Service {
	s.events = el
	return s
}

// IssueSession computes a snapshot from the student's history, resolves the
// tier, builds the practice set, and records progress. The progress write and
// event append are fire-and-forget: their failure sets Warning and nothing
// else. requestedTier of 0 (or anything outside 1..3) means auto-select.
func (s *Service) IssueSession(ctx context.Context, userID string, subtest Subtest, requestedTier int) (SessionResult, error) {
	history, err := s.store.AnswerHistory(ctx, HistoryOpts{
		UserID:  userID,
		Subtest: subtest,
		Limit:   historyFetchLimit,
	})
	if err != nil {
		return SessionResult{}, err
	}

	snap := Aggregate(history)
	resolved := ResolveTier(snap, requestedTier)
	cfg, _ := TierByLevel(resolved)

	candidates, err := s.store.ListQuestions(ctx, Filter(cfg, subtest), cfg.SessionLength)
	if err != nil {
		return SessionResult{}, err
	}

	session := BuildSession(cfg, subtest, snap, candidates)
	result := SessionResult{
		Session:         session,
		Performance:     snap,
		TierInfo:        cfg,
		Path:            ProgressionPath(resolved),
		Recommendations: Recommend(snap, cfg),
	}

	row := ProgressRow{
		ID:              uuid.NewString(),
		UserID:          userID,
		Subtest:         subtest,
		Tier:            resolved,
		CurrentAccuracy: snap.Accuracy,
		TargetAccuracy:  cfg.TargetAccuracy,
		TotalQuestions:  session.TotalQuestions,
		Status:          "in_progress",
		CreatedAt:       time.Now().Unix(),
	}
	if err := s.store.InsertProgress(ctx, row); err != nil {
		log.Printf("remedial: progress insert failed for user=%s subtest=%s: %v", userID, subtest, err)
		result.Warning = progressWarning
	}
	if s.events != nil {
		if err := s.events.Append(ctx, "RemedialSessionIssued", session.ID, row); err != nil {
			log.Printf("remedial: event append failed for session=%s: %v", session.ID, err)
			result.Warning = progressWarning
		}
	}
	return result, nil
}

// Snapshot recomputes performance for one (student, subtest) pair without
// issuing a session or writing anything.
func (s *Service) Snapshot(ctx context.Context, userID string, subtest Subtest) (PerformanceSnapshot, error) {
	history, err := s.store.AnswerHistory(ctx, HistoryOpts{
		UserID:  userID,
		Subtest: subtest,
		Limit:   historyFetchLimit,
	})
	if err != nil {
		return PerformanceSnapshot{}, err
	}
	return Aggregate(history), nil
}

// Progression resolves the student's current tier from history and projects
// the tier ladder against it.
func (s *Service) Progression(ctx context.Context, userID string, subtest Subtest) ([]ProgressionStep, error) {
	snap, err := s.Snapshot(ctx, userID, subtest)
	if err != nil {
		return nil, err
	}
	return ProgressionPath(snap.ReadyTier), nil
}
