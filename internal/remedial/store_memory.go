package remedial

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// memoryStore backs offline/dev mode and tests.
type memoryStore struct {
	mu        sync.RWMutex
	answers   []AnswerRecord
	questions []Question // insertion order is the bank's natural order
	progress  []ProgressRow
}

func NewInMemoryStore() Store {
	return &memoryStore{}
}

func (m *memoryStore) RecordAnswer(_ context.Context, rec AnswerRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.AnsweredAt.IsZero() {
		rec.AnsweredAt = time.Now()
	}
	m.answers = append(m.answers, rec)
	return nil
}

func (m *memoryStore) AnswerHistory(_ context.Context, opts HistoryOpts) ([]AnswerRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []AnswerRecord{}
	for _, rec := range m.answers {
		if rec.UserID != opts.UserID {
			continue
		}
		if opts.Subtest != "" && rec.Subtest != opts.Subtest {
			continue
		}
		out = append(out, rec)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AnsweredAt.After(out[j].AnsweredAt)
	})
	if opts.Offset > 0 {
		if opts.Offset >= len(out) {
			return []AnswerRecord{}, nil
		}
		out = out[opts.Offset:]
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = historyFetchLimit
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memoryStore) PutQuestions(_ context.Context, qs []Question) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, q := range qs {
		if q.ID == "" {
			q.ID = uuid.NewString()
		}
		replaced := false
		for i := range m.questions {
			if m.questions[i].ID == q.ID {
				m.questions[i] = q
				replaced = true
				break
			}
		}
		if !replaced {
			m.questions = append(m.questions, q)
		}
		count++
	}
	return count, nil
}

func (m *memoryStore) ListQuestions(_ context.Context, f QuestionFilter, limit int) ([]Question, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []Question{}
	for _, q := range m.questions {
		if q.Subtest != f.Subtest {
			continue
		}
		if f.ItemKind != "" && q.ItemKind != f.ItemKind {
			continue
		}
		out = append(out, q)
	}
	switch f.OrderBy {
	case "id_asc":
		sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	case "id_desc":
		sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memoryStore) InsertProgress(_ context.Context, row ProgressRow) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.progress = append(m.progress, row)
	return nil
}
