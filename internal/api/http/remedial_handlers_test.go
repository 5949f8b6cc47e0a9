package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ujianku/backend/internal/rbac"
	"github.com/ujianku/backend/internal/remedial"
)

func authedRequest(method, target, body, sub, role string) *http.Request {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	ctx := rbac.WithSubject(context.Background(), sub)
	ctx = rbac.WithRole(ctx, role)
	return r.WithContext(ctx)
}

func seededService(t *testing.T) (*remedial.Service, remedial.Store) {
	t.Helper()
	store := remedial.NewInMemoryStore()
	qs := make([]remedial.Question, 0, 20)
	for i := 0; i < 20; i++ {
		qs = append(qs, remedial.Question{
			ID:        fmt.Sprintf("q-%03d", i),
			Subtest:   remedial.SubtestPU,
			ItemKind:  remedial.KindRegular,
			Prompt:    "p",
			AnswerKey: "C",
		})
	}
	if _, err := store.PutQuestions(context.Background(), qs); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return remedial.NewService(store), store
}

func TestCreateRemedialSessionHappyPath(t *testing.T) {
	svc, _ := seededService(t)
	h := CreateRemedialSessionHandler(svc)

	w := httptest.NewRecorder()
	h(w, authedRequest("POST", "/remedial-sessions", `{"target_subtest":"PU"}`, "student-1", "student"))

	if w.Code != 200 {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp struct {
		Success            bool                         `json:"success"`
		Session            remedial.RemedialSession     `json:"session"`
		CurrentPerformance remedial.PerformanceSnapshot `json:"current_performance"`
		ProgressionPath    []remedial.ProgressionStep   `json:"progression_path"`
		Recommendations    []string                     `json:"recommendations"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Success {
		t.Error("success = false")
	}
	if resp.Session.Tier != 1 {
		t.Errorf("tier = %d, want 1 for empty history", resp.Session.Tier)
	}
	if resp.Session.TotalQuestions == 0 || resp.Session.TotalQuestions > 12 {
		t.Errorf("session length = %d, want 1..12", resp.Session.TotalQuestions)
	}
	if resp.CurrentPerformance.Accuracy != 0 {
		t.Errorf("accuracy = %d, want 0", resp.CurrentPerformance.Accuracy)
	}
	if len(resp.ProgressionPath) != 3 {
		t.Errorf("path has %d steps, want 3", len(resp.ProgressionPath))
	}
	if len(resp.Recommendations) == 0 {
		t.Error("recommendations empty")
	}
	for _, q := range resp.Session.Questions {
		if q.AnswerKey != "" {
			t.Fatalf("answer key leaked for %s", q.ID)
		}
	}
}

func TestCreateRemedialSessionValidation(t *testing.T) {
	svc, _ := seededService(t)
	h := CreateRemedialSessionHandler(svc)

	cases := []struct {
		name string
		req  *http.Request
		want int
	}{
		{"no subject", httptest.NewRequest("POST", "/remedial-sessions", strings.NewReader(`{"target_subtest":"PU"}`)), 401},
		{"missing subtest", authedRequest("POST", "/remedial-sessions", `{}`, "s1", "student"), 400},
		{"unknown subtest", authedRequest("POST", "/remedial-sessions", `{"target_subtest":"XX"}`, "s1", "student"), 400},
		{"bad json", authedRequest("POST", "/remedial-sessions", `{`, "s1", "student"), 400},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			h(w, tc.req)
			if w.Code != tc.want {
				t.Fatalf("status = %d, want %d", w.Code, tc.want)
			}
		})
	}
}

func TestRecordAndListAnswers(t *testing.T) {
	_, store := seededService(t)

	w := httptest.NewRecorder()
	RecordAnswerHandler(store)(w, authedRequest("POST", "/answers",
		`{"question_id":"q-001","subtest_code":"PU","item_kind":"regular","is_correct":true}`,
		"student-1", "student"))
	if w.Code != http.StatusCreated {
		t.Fatalf("record status = %d, body = %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	ListAnswersHandler(store)(w, authedRequest("GET", "/answers?subtest=PU", "", "student-1", "student"))
	if w.Code != 200 {
		t.Fatalf("list status = %d", w.Code)
	}
	var recs []remedial.AnswerRecord
	if err := json.NewDecoder(w.Body).Decode(&recs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(recs) != 1 || !recs[0].IsCorrect || recs[0].UserID != "student-1" {
		t.Fatalf("unexpected history: %+v", recs)
	}
}

func TestListAnswersScopesStudentsToOwnHistory(t *testing.T) {
	_, store := seededService(t)
	_ = store.RecordAnswer(context.Background(), remedial.AnswerRecord{
		UserID: "other", QuestionID: "q-002", Subtest: remedial.SubtestPU,
		ItemKind: remedial.KindRegular, IsCorrect: true,
	})

	w := httptest.NewRecorder()
	ListAnswersHandler(store)(w, authedRequest("GET", "/answers?user_id=other", "", "student-1", "student"))
	var recs []remedial.AnswerRecord
	if err := json.NewDecoder(w.Body).Decode(&recs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(recs) != 0 {
		t.Fatalf("student saw another student's history: %+v", recs)
	}
}

func TestListQuestionsStripsAnswerKeys(t *testing.T) {
	_, store := seededService(t)

	w := httptest.NewRecorder()
	ListQuestionsHandler(store)(w, authedRequest("GET", "/questions?subtest=PU", "", "student-1", "student"))
	if w.Code != 200 {
		t.Fatalf("status = %d", w.Code)
	}
	var qs []remedial.Question
	if err := json.NewDecoder(w.Body).Decode(&qs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(qs) == 0 {
		t.Fatal("no questions returned")
	}
	for _, q := range qs {
		if q.AnswerKey != "" {
			t.Fatalf("answer key leaked for %s", q.ID)
		}
	}
}

func TestGetPerformanceHandler(t *testing.T) {
	svc, store := seededService(t)
	_ = store.RecordAnswer(context.Background(), remedial.AnswerRecord{
		UserID: "student-1", QuestionID: "q-003", Subtest: remedial.SubtestPU,
		ItemKind: remedial.KindRegular, IsCorrect: true,
	})

	w := httptest.NewRecorder()
	GetPerformanceHandler(svc)(w, authedRequest("GET", "/performance?subtest=PU", "", "student-1", "student"))
	if w.Code != 200 {
		t.Fatalf("status = %d", w.Code)
	}
	var snap remedial.PerformanceSnapshot
	if err := json.NewDecoder(w.Body).Decode(&snap); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if snap.TotalQuestions != 1 || snap.Accuracy != 100 {
		t.Fatalf("snapshot = %+v, want 1 question at 100%%", snap)
	}
}

func TestProgressionHandlerRequiresSubtest(t *testing.T) {
	svc, _ := seededService(t)
	w := httptest.NewRecorder()
	ProgressionHandler(svc)(w, authedRequest("GET", "/remedial-sessions/progression", "", "student-1", "student"))
	if w.Code != 400 {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}
