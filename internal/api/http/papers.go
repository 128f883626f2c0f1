package http

import (
	"encoding/json"
	"net/http"

	"github.com/prepdeck/prepdeck/internal/metrics"
	"github.com/prepdeck/prepdeck/internal/paper"
)

// POST /question-paper  { "tags": ["algebra", ...] }
// An empty or absent tag list means no filter: sample across every topic.
func BuildPaperHandler(svc *paper.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Tags []string `json:"tags"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		qs, err := svc.Build(r.Context(), req.Tags)
		if err != nil {
			http.Error(w, "could not build question paper", errStatus(err))
			return
		}
		metrics.PapersBuilt.Inc()
		writeJSON(w, qs)
	}
}
