package bookclub

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
)

// defaultErrorHandler is the error handler used if no optional one is provided
type defaultErrorHandler int

func (h defaultErrorHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	err := ErrorFromContext(r.Context())

	if errors.Is(err, ErrNotLoggedIn) {
		respondWithMessage(w, "User not logged in", http.StatusForbidden)
	} else if errors.Is(err, ErrInvalidToken) {
		respondWithMessage(w, "User not authenticated", http.StatusForbidden)
	} else {
		slog.Error("unexpected error authorizing session", "err", err)
		respondWithMessage(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func newDefaultErrorHandler() defaultErrorHandler {
	return 0
}

func respondWithMessage(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": message})
}
