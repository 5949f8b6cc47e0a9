package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ujianku/backend/internal/rbac"
	"github.com/ujianku/backend/internal/remedial"
)

type remedialRequest struct {
	TargetSubtest string `json:"target_subtest"`
	Tier          int    `json:"tier,omitempty"` // 0: auto-select
}

type remedialResponse struct {
	Success            bool                         `json:"success"`
	Session            remedial.RemedialSession     `json:"session"`
	CurrentPerformance remedial.PerformanceSnapshot `json:"current_performance"`
	TierInfo           remedial.TierConfig          `json:"tier_info"`
	ProgressionPath    []remedial.ProgressionStep   `json:"progression_path"`
	Recommendations    []string                     `json:"recommendations"`
	Warning            string                       `json:"warning,omitempty"`
}

// POST /remedial-sessions  { "target_subtest": "PU", "tier": 2 }
// Auth and RBAC run before this handler; the subject is the student.
func CreateRemedialSessionHandler(svc *remedial.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := rbac.SubjectFromContext(r.Context())
		if userID == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		var req remedialRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		subtest := remedial.Subtest(strings.TrimSpace(req.TargetSubtest))
		if subtest == "" {
			http.Error(w, "target_subtest required", 400)
			return
		}
		if !remedial.ValidSubtest(subtest) {
			http.Error(w, "unknown subtest code", 400)
			return
		}

		result, err := svc.IssueSession(r.Context(), userID, subtest, req.Tier)
		if err != nil {
			http.Error(w, serverErrorMessage(err), 500)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(remedialResponse{
			Success:            true,
			Session:            result.Session,
			CurrentPerformance: result.Performance,
			TierInfo:           result.TierInfo,
			ProgressionPath:    result.Path,
			Recommendations:    result.Recommendations,
			Warning:            result.Warning,
		})
	}
}

// GET /remedial-sessions/progression?subtest=PU
func ProgressionHandler(svc *remedial.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := rbac.SubjectFromContext(r.Context())
		if userID == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		subtest := remedial.Subtest(strings.TrimSpace(r.URL.Query().Get("subtest")))
		if !remedial.ValidSubtest(subtest) {
			http.Error(w, "subtest required", 400)
			return
		}
		steps, err := svc.Progression(r.Context(), userID, subtest)
		if err != nil {
			http.Error(w, serverErrorMessage(err), 500)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"progression_path": steps})
	}
}
