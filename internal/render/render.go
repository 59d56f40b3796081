// Package render writes JSON responses and maps service errors to HTTP
// status codes for every handler package.
package render

import (
	"errors"
	"log/slog"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
	json "github.com/goccy/go-json"

	"github.com/Harissh-lab/arm-scout/pkg/e"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func JSON(w http.ResponseWriter, logger *slog.Logger, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("json encode failed", slog.Any("error", err))
	}
}

func Message(w http.ResponseWriter, logger *slog.Logger, code int, msg string) {
	JSON(w, logger, code, ErrorResponse{Error: msg})
}

// Status maps err onto a status code and a client-safe message.
func Status(err error) (int, string) {
	switch {
	case errors.Is(err, e.ErrNotFound):
		return http.StatusNotFound, "not found"
	case errors.Is(err, e.ErrInvalidCoordinates):
		return http.StatusBadRequest, "invalid coordinates"
	case errors.Is(err, e.ErrInvalidInput):
		return http.StatusBadRequest, "invalid input"
	case errors.Is(err, e.ErrInvalidTransition):
		return http.StatusConflict, "invalid status transition"
	case errors.Is(err, e.ErrConflict):
		return http.StatusConflict, "conflict"
	case errors.Is(err, e.ErrRateLimited):
		return http.StatusTooManyRequests, "rate limited"
	case errors.Is(err, e.ErrNoPosition):
		return http.StatusServiceUnavailable, "no position fix available"
	case errors.Is(err, e.ErrUnavailable), errors.Is(err, e.ErrDeadline):
		return http.StatusServiceUnavailable, "service unavailable"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

// Error logs err with the request and writes the mapped status.
func Error(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	code, msg := Status(err)

	l := Logger(logger, r)
	attrs := []any{
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Any("error", err),
	}
	if code >= http.StatusInternalServerError {
		l.Error("handler error", attrs...)
	} else {
		l.Warn("request rejected", attrs...)
	}

	Message(w, logger, code, msg)
}

// Logger returns logger tagged with the chi request id, if any.
func Logger(logger *slog.Logger, r *http.Request) *slog.Logger {
	reqID := chimw.GetReqID(r.Context())
	if reqID == "" {
		return logger
	}
	return logger.With(slog.String("request_id", reqID))
}
