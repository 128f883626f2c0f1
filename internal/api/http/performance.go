package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/prepdeck/prepdeck/internal/rbac"
	"github.com/prepdeck/prepdeck/internal/report"
)

// performanceUserID resolves the path user, forcing students onto their own
// history.
func performanceUserID(r *http.Request) string {
	userID := chi.URLParam(r, "userID")
	role := rbac.RoleFromContext(r.Context())
	if role != "admin" && role != "teacher" {
		return rbac.SubjectFromContext(r.Context())
	}
	return userID
}

// GET /user-performance/{userID}
func UserPerformanceHandler(rep *report.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := performanceUserID(r)
		if userID == "" {
			http.Error(w, "user required", http.StatusBadRequest)
			return
		}
		analysis, err := rep.TopicPerformance(r.Context(), userID)
		if err != nil {
			http.Error(w, err.Error(), errStatus(err))
			return
		}
		writeJSON(w, map[string]interface{}{"topic_analysis": analysis})
	}
}

// GET /user-performance/{userID}/{topic}
// No history for the topic yields an empty list, not an error.
func TopicDetailHandler(rep *report.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := performanceUserID(r)
		topic := chi.URLParam(r, "topic")
		if userID == "" || topic == "" {
			http.Error(w, "user and topic required", http.StatusBadRequest)
			return
		}
		events, err := rep.TopicDetail(r.Context(), userID, topic)
		if err != nil {
			http.Error(w, err.Error(), errStatus(err))
			return
		}
		writeJSON(w, map[string]interface{}{"data": events})
	}
}
