package handler

import (
	"net/http"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// loggingResponseWriter captures the status code and bytes written for
// access logging.
type loggingResponseWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *loggingResponseWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *loggingResponseWriter) Write(b []byte) (int, error) {
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// RequestLogger logs one line per request with a generated request id.
// The id is echoed back in the X-Request-Id header so clients can quote
// it when reporting problems.
func RequestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := uuid.NewString()
			w.Header().Set("X-Request-Id", requestID)

			lw := &loggingResponseWriter{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()

			next.ServeHTTP(lw, r)

			logger.Info().
				Str("request_id", requestID).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", lw.status).
				Int("bytes", lw.bytes).
				Dur("duration", time.Since(start)).
				Str("remote_addr", r.RemoteAddr).
				Msg("request")
		})
	}
}

// Recoverer converts panics into the generic 500 response instead of
// dropping the connection. Stack traces are logged only when enabled,
// and never sent to the client.
func Recoverer(logger zerolog.Logger, logStackTraces bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					event := logger.Error().
						Interface("panic", rec).
						Str("method", r.Method).
						Str("path", r.URL.Path)
					if logStackTraces {
						event = event.Bytes("stack", debug.Stack())
					}
					event.Msg("panic recovered")

					writeJSON(w, http.StatusInternalServerError, serverErrorResponse{
						Message: "Internal Server Error",
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
