package http

import (
	"encoding/json"
	"net/http"
	"sort"

	"github.com/prepdeck/prepdeck/internal/metrics"
	"github.com/prepdeck/prepdeck/internal/rbac"
	"github.com/prepdeck/prepdeck/internal/report"
)

// POST /submit-answers
// { "user_id": "...", "user_answers": {"qid": 2, "qid2": null}, "start_time": 1700000000000 }
// A null or missing option marks the question unattempted. Students can only
// submit for themselves; teacher/admin may submit on behalf of a user.
func SubmitAnswersHandler(svc *report.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			UserID      string          `json:"user_id"`
			UserAnswers map[string]*int `json:"user_answers"`
			StartTime   *int64          `json:"start_time"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		role := rbac.RoleFromContext(r.Context())
		if role != "admin" && role != "teacher" {
			req.UserID = rbac.SubjectFromContext(r.Context())
		}
		if req.UserID == "" {
			http.Error(w, "user_id required", http.StatusBadRequest)
			return
		}
		if len(req.UserAnswers) == 0 {
			http.Error(w, "user_answers required", http.StatusBadRequest)
			return
		}

		// The wire shape is a map; order it by question ID so report detail
		// ordering is stable.
		answers := make([]report.Answer, 0, len(req.UserAnswers))
		for qid, opt := range req.UserAnswers {
			answers = append(answers, report.Answer{QuestionID: qid, Option: opt})
		}
		sort.Slice(answers, func(i, j int) bool { return answers[i].QuestionID < answers[j].QuestionID })

		sum, err := svc.Submit(r.Context(), req.UserID, answers, req.StartTime)
		if err != nil {
			metrics.SubmissionErrors.Inc()
			http.Error(w, err.Error(), errStatus(err))
			return
		}
		metrics.SubmissionsScored.Inc()
		writeJSON(w, sum)
	}
}
