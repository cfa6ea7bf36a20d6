// Package httpx holds the JSON envelope and middleware shared by HTTP
// handlers.
package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/hashicorp/go-hclog"

	apperrors "wikigo/internal/platform/errors"
)

type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func Success(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, Envelope{Success: true, Data: data})
}

func Fail(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, Envelope{Success: false, Error: msg})
}

// Error maps a domain error onto a status code.
func Error(w http.ResponseWriter, err error) {
	Fail(w, StatusFor(err), err.Error())
}

func StatusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrInvalidInput), errors.Is(err, apperrors.ErrNotArticle):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrFetchFailed), errors.Is(err, apperrors.ErrResponseTooLarge):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Logger logs every request with its status and duration.
func Logger(log hclog.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	log = log.Named("http")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(wrapped, r)
			log.Info("request", "method", r.Method, "path", r.URL.Path, "status", wrapped.status, "duration", time.Since(start), "remote", r.RemoteAddr)
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
