package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ujianku/backend/internal/rbac"
	"github.com/ujianku/backend/internal/remedial"
)

// POST /answers  { "question_id": "...", "subtest_code": "PU", "item_kind": "regular", "is_correct": true }
// Records one attempt for the authenticated student. Answer rows are
// append-only.
func RecordAnswerHandler(store remedial.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := rbac.SubjectFromContext(r.Context())
		if userID == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		var req struct {
			QuestionID string `json:"question_id"`
			Subtest    string `json:"subtest_code"`
			ItemKind   string `json:"item_kind"`
			IsCorrect  bool   `json:"is_correct"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		if req.QuestionID == "" {
			http.Error(w, "question_id required", 400)
			return
		}
		subtest := remedial.Subtest(req.Subtest)
		if !remedial.ValidSubtest(subtest) {
			http.Error(w, "unknown subtest code", 400)
			return
		}
		kind := remedial.ItemKind(req.ItemKind)
		if kind == "" {
			kind = remedial.KindRegular
		}
		if !remedial.ValidItemKind(kind) {
			http.Error(w, "unknown item kind", 400)
			return
		}

		rec := remedial.AnswerRecord{
			UserID:     userID,
			QuestionID: req.QuestionID,
			Subtest:    subtest,
			ItemKind:   kind,
			IsCorrect:  req.IsCorrect,
		}
		if err := store.RecordAnswer(r.Context(), rec); err != nil {
			http.Error(w, serverErrorMessage(err), 500)
			return
		}
		w.WriteHeader(http.StatusCreated)
	}
}

// GET /answers?subtest=PU&user_id=...&limit=50&offset=0
// Students see their own history only; user_id is forced to the subject unless
// the caller holds answers:view-all.
func ListAnswersHandler(store remedial.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		role := rbac.RoleFromContext(r.Context())
		sub := rbac.SubjectFromContext(r.Context())
		if role == "" {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		userID := strings.TrimSpace(r.URL.Query().Get("user_id"))
		if role != "admin" && role != "teacher" {
			userID = sub
		}
		if userID == "" {
			http.Error(w, "user_id required", 400)
			return
		}
		subtest := remedial.Subtest(strings.TrimSpace(r.URL.Query().Get("subtest")))
		if subtest != "" && !remedial.ValidSubtest(subtest) {
			http.Error(w, "unknown subtest code", 400)
			return
		}

		list, err := store.AnswerHistory(r.Context(), remedial.HistoryOpts{
			UserID:  userID,
			Subtest: subtest,
			Limit:   parseIntDefault(r.URL.Query().Get("limit"), 50),
			Offset:  parseIntDefault(r.URL.Query().Get("offset"), 0),
		})
		if err != nil {
			http.Error(w, serverErrorMessage(err), 500)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(list)
	}
}
