package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/pkg/errors"
	"github.com/shop-assistant-api/internal/apperror"
)

// Recoverer turns a handler panic into the classifier's server_error answer.
// The panic value and stack are logged, never sent to the client.
func Recoverer(errs *apperror.Classifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				status, body := errs.Classify(r.Context(), errors.Errorf("panic: %v", rec),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("stack", string(debug.Stack())),
				)
				writeJSONError(w, status, body.Error, body.Message)
			}()
			next.ServeHTTP(w, r)
		})
	}
}
