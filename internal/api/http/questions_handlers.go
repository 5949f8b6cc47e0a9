package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ujianku/backend/internal/remedial"
)

// PUT /questions  [ { "id": "...", "subtest_code": "PU", ... }, ... ]
// Teacher-only bulk upsert of question-bank entries.
func UpsertQuestionsHandler(store remedial.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var qs []remedial.Question
		if err := json.NewDecoder(r.Body).Decode(&qs); err != nil {
			http.Error(w, "expected JSON array", 400)
			return
		}
		for _, q := range qs {
			if !remedial.ValidSubtest(q.Subtest) {
				http.Error(w, "unknown subtest code: "+string(q.Subtest), 400)
				return
			}
			if !remedial.ValidItemKind(q.ItemKind) {
				http.Error(w, "unknown item kind: "+string(q.ItemKind), 400)
				return
			}
		}
		n, err := store.PutQuestions(r.Context(), qs)
		if err != nil {
			http.Error(w, serverErrorMessage(err), 500)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]int{"upserted": n})
	}
}

// GET /questions?subtest=PU&kind=regular&limit=50
// Student-safe listing: answer keys are stripped before encoding.
func ListQuestionsHandler(store remedial.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		subtest := remedial.Subtest(strings.TrimSpace(r.URL.Query().Get("subtest")))
		if !remedial.ValidSubtest(subtest) {
			http.Error(w, "subtest required", 400)
			return
		}
		kind := remedial.ItemKind(strings.TrimSpace(r.URL.Query().Get("kind")))
		if kind != "" && !remedial.ValidItemKind(kind) {
			http.Error(w, "unknown item kind", 400)
			return
		}

		list, err := store.ListQuestions(r.Context(),
			remedial.QuestionFilter{Subtest: subtest, ItemKind: kind},
			parseIntDefault(r.URL.Query().Get("limit"), 50))
		if err != nil {
			http.Error(w, serverErrorMessage(err), 500)
			return
		}
		for i := range list {
			list[i].AnswerKey = ""
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(list)
	}
}
