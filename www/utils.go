package www

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/angas/pvpc-go/prices"
	"github.com/angas/pvpc-go/ree"
)

func intOrDefault(u *url.URL, key string, defaultValue int) int {
	if v := u.Query().Get(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultValue
}

func marshalJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeJSON(logger *slog.Logger, w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("encoding response", slog.Any("error", err))
	}
}

type errorBody struct {
	Error string `json:"error"`
}

// writeError maps the service error taxonomy onto HTTP statuses:
// missing data is 404, bad client input 400, an upstream fetch
// problem 502 and everything else 500.
func writeError(logger *slog.Logger, w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	var fetchErr *ree.FetchError
	switch {
	case errors.Is(err, prices.ErrNoData):
		status = http.StatusNotFound
	case errors.Is(err, prices.ErrInvalidDate):
		status = http.StatusBadRequest
	case errors.As(err, &fetchErr):
		status = http.StatusBadGateway
	}

	logger.Error("request failed", slog.Int("status", status), slog.Any("error", err))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(errorBody{Error: err.Error()}); err != nil {
		logger.Error("encoding error response", slog.Any("error", err))
	}
}
