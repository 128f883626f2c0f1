package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/prepdeck/prepdeck/internal/rbac"
	"github.com/prepdeck/prepdeck/internal/report"
)

// GET /reports/{reportID} — full report detail. Students may only read their
// own reports.
func GetReportHandler(svc *report.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rep, err := svc.Get(r.Context(), chi.URLParam(r, "reportID"))
		if err != nil {
			http.Error(w, err.Error(), errStatus(err))
			return
		}
		role := rbac.RoleFromContext(r.Context())
		if role != "admin" && role != "teacher" && rep.UserID != rbac.SubjectFromContext(r.Context()) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		writeJSON(w, rep)
	}
}

// GET /reports?user_id=...&limit=50&offset=0
// Without reports:view-all the listing is scoped to the caller.
func ListReportsHandler(svc *report.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.URL.Query().Get("user_id")
		role := rbac.RoleFromContext(r.Context())
		if role != "admin" && role != "teacher" {
			userID = rbac.SubjectFromContext(r.Context())
		}
		if userID == "" {
			http.Error(w, "user_id required", http.StatusBadRequest)
			return
		}
		limit := parseIntDefault(r.URL.Query().Get("limit"), 50)
		offset := parseIntDefault(r.URL.Query().Get("offset"), 0)

		reports, err := svc.ListByUser(r.Context(), userID, limit, offset)
		if err != nil {
			http.Error(w, err.Error(), errStatus(err))
			return
		}
		writeJSON(w, reports)
	}
}
