package http

import (
	"net/http"

	"github.com/prepdeck/prepdeck/internal/question"
)

// GET /tags — every distinct topic tag across the question bank.
func TagsHandler(store question.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tags, err := store.DistinctTags(r.Context())
		if err != nil {
			http.Error(w, err.Error(), errStatus(err))
			return
		}
		writeJSON(w, tags)
	}
}
