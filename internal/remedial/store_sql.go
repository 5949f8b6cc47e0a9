package remedial

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type SQLStore struct {
	db     *sql.DB
	driver string // "sqlite" or "postgres"
}

func NewSQLStore(db *sql.DB, driver string) *SQLStore {
	return &SQLStore{db: db, driver: driver}
}

func (s *SQLStore) RecordAnswer(ctx context.Context, rec AnswerRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.AnsweredAt.IsZero() {
		rec.AnsweredAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO answers (id,user_id,question_id,subtest_code,item_kind,is_correct,answered_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		rec.ID, rec.UserID, rec.QuestionID, string(rec.Subtest), string(rec.ItemKind),
		rec.IsCorrect, rec.AnsweredAt.Unix())
	return err
}

func (s *SQLStore) AnswerHistory(ctx context.Context, opts HistoryOpts) ([]AnswerRecord, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = historyFetchLimit
	}
	var rows *sql.Rows
	var err error
	if opts.Subtest == "" {
		rows, err = s.db.QueryContext(ctx,
			`SELECT id,user_id,question_id,subtest_code,item_kind,is_correct,answered_at
			 FROM answers WHERE user_id=$1
			 ORDER BY answered_at DESC, id DESC LIMIT $2 OFFSET $3`,
			opts.UserID, limit, opts.Offset)
	} else {
		rows, err = s.db.QueryContext(ctx,
			`SELECT id,user_id,question_id,subtest_code,item_kind,is_correct,answered_at
			 FROM answers WHERE user_id=$1 AND subtest_code=$2
			 ORDER BY answered_at DESC, id DESC LIMIT $3 OFFSET $4`,
			opts.UserID, string(opts.Subtest), limit, opts.Offset)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []AnswerRecord{}
	for rows.Next() {
		var rec AnswerRecord
		var subtest, kind string
		var answeredAt int64
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.QuestionID, &subtest, &kind,
			&rec.IsCorrect, &answeredAt); err != nil {
			return nil, err
		}
		rec.Subtest = Subtest(subtest)
		rec.ItemKind = ItemKind(kind)
		rec.AnsweredAt = time.Unix(answeredAt, 0)
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *SQLStore) PutQuestions(ctx context.Context, qs []Question) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	count := 0
	now := time.Now().Unix()
	for _, q := range qs {
		if q.ID == "" {
			q.ID = uuid.NewString()
		}
		cj, err := json.Marshal(q.Choices)
		if err != nil {
			return count, err
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO questions (id,subtest_code,item_kind,prompt,choices_json,answer_key,created_at)
			 VALUES ($1,$2,$3,$4,$5,$6,$7)
			 ON CONFLICT (id) DO UPDATE SET subtest_code=EXCLUDED.subtest_code,
			   item_kind=EXCLUDED.item_kind, prompt=EXCLUDED.prompt,
			   choices_json=EXCLUDED.choices_json, answer_key=EXCLUDED.answer_key`,
			q.ID, string(q.Subtest), string(q.ItemKind), q.Prompt, string(cj), q.AnswerKey, now)
		if err != nil {
			return count, err
		}
		count++
	}
	return count, tx.Commit()
}

func (s *SQLStore) ListQuestions(ctx context.Context, f QuestionFilter, limit int) ([]Question, error) {
	if limit <= 0 {
		limit = 50
	}
	order := ""
	switch f.OrderBy {
	case "id_asc":
		order = " ORDER BY id ASC"
	case "id_desc":
		order = " ORDER BY id DESC"
	}

	var rows *sql.Rows
	var err error
	if f.ItemKind == "" {
		rows, err = s.db.QueryContext(ctx,
			`SELECT id,subtest_code,item_kind,prompt,choices_json,answer_key,created_at
			 FROM questions WHERE subtest_code=$1`+order+` LIMIT $2`,
			string(f.Subtest), limit)
	} else {
		rows, err = s.db.QueryContext(ctx,
			`SELECT id,subtest_code,item_kind,prompt,choices_json,answer_key,created_at
			 FROM questions WHERE subtest_code=$1 AND item_kind=$2`+order+` LIMIT $3`,
			string(f.Subtest), string(f.ItemKind), limit)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Question{}
	for rows.Next() {
		var q Question
		var subtest, kind, choicesJSON string
		if err := rows.Scan(&q.ID, &subtest, &kind, &q.Prompt, &choicesJSON, &q.AnswerKey, &q.CreatedAt); err != nil {
			return nil, err
		}
		q.Subtest = Subtest(subtest)
		q.ItemKind = ItemKind(kind)
		if choicesJSON != "" {
			if err := json.Unmarshal([]byte(choicesJSON), &q.Choices); err != nil {
				return nil, err
			}
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func (s *SQLStore) InsertProgress(ctx context.Context, row ProgressRow) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO remedial_progress
		   (id,user_id,subtest_code,tier,current_accuracy,target_accuracy,total_questions,status,created_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		row.ID, row.UserID, string(row.Subtest), row.Tier, row.CurrentAccuracy,
		row.TargetAccuracy, row.TotalQuestions, row.Status, row.CreatedAt)
	return err
}
