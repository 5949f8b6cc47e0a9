package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ujianku/backend/internal/rbac"
	"github.com/ujianku/backend/internal/remedial"
)

// GET /performance?subtest=PU&user_id=...
// Recomputes the snapshot from history; issues nothing and writes nothing.
// Students get their own snapshot; teachers/admins may pass user_id.
func GetPerformanceHandler(svc *remedial.Service) http.HandlerFunc {
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
		if !remedial.ValidSubtest(subtest) {
			http.Error(w, "subtest required", 400)
			return
		}

		snap, err := svc.Snapshot(r.Context(), userID, subtest)
		if err != nil {
			http.Error(w, serverErrorMessage(err), 500)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(snap)
	}
}
