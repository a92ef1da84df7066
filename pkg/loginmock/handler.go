package loginmock

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// OutcomeHeader exposes the matched branch for debugging.
const OutcomeHeader = "X-Mock-Outcome"

// Handler serves Classify. An unreadable body is treated as invalid JSON.
func Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := io.ReadAll(r.Body)
		if err != nil {
			raw = nil
		}
		writeReply(w, Classify(raw))
	})
}

func writeReply(w http.ResponseWriter, rep Reply) {
	w.Header().Set("Content-Type", rep.ContentType)
	w.Header().Set(OutcomeHeader, rep.Outcome.String())
	w.WriteHeader(rep.StatusCode)
	_, _ = w.Write(rep.Body)
}

// NewRouter mounts the login handler at POST LoginPath.
func NewRouter() chi.Router {
	r := chi.NewRouter()
	r.Method(http.MethodPost, LoginPath, Handler())
	return r
}
