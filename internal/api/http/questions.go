package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/prepdeck/prepdeck/internal/question"
	"github.com/prepdeck/prepdeck/internal/rbac"
)

// POST /questions — author a question. The author is the authenticated
// subject; validation enforces the four-option shape.
func CreateQuestionHandler(store question.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var q question.Question
		if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		q.AuthorID = rbac.SubjectFromContext(r.Context())
		if err := q.Validate(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := store.Put(r.Context(), q); err != nil {
			http.Error(w, err.Error(), errStatus(err))
			return
		}
		w.WriteHeader(http.StatusCreated)
		writeJSON(w, map[string]string{"status": "created"})
	}
}

// GET /questions?q=...&tag=...&limit=50&offset=0
func ListQuestionsHandler(store question.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts := question.ListOpts{
			Q:      r.URL.Query().Get("q"),
			Tag:    r.URL.Query().Get("tag"),
			Limit:  parseIntDefault(r.URL.Query().Get("limit"), 50),
			Offset: parseIntDefault(r.URL.Query().Get("offset"), 0),
		}
		qs, err := store.List(r.Context(), opts)
		if err != nil {
			http.Error(w, err.Error(), errStatus(err))
			return
		}
		writeJSON(w, qs)
	}
}

// GET /questions/{questionID} — full question including the answer key;
// reserved for teacher/admin by the router.
func GetQuestionHandler(store question.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, err := store.Get(r.Context(), chi.URLParam(r, "questionID"))
		if err != nil {
			http.Error(w, err.Error(), errStatus(err))
			return
		}
		writeJSON(w, q)
	}
}

// DELETE /questions/{questionID}
// Answer events keep their denormalized tag snapshot, so history and past
// reports survive the delete.
func DeleteQuestionHandler(store question.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.Delete(r.Context(), chi.URLParam(r, "questionID")); err != nil {
			http.Error(w, err.Error(), errStatus(err))
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
