package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/prepdeck/prepdeck/internal/question"
	"github.com/prepdeck/prepdeck/internal/report"
)

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// errStatus maps domain errors onto HTTP status codes: validation failures
// are the caller's fault, missing records are 404, everything else is a
// data-access or submission failure surfaced as 500.
func errStatus(err error) int {
	var verr *question.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest
	case errors.Is(err, question.ErrNotFound), errors.Is(err, report.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
