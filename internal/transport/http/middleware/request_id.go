package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"appraisal/internal/platform/requestctx"
)

type ctxKey int

const ctxKeyUser ctxKey = iota

// RequestID tags every request with an id, honouring one supplied by the
// caller so retries can be correlated across systems.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", id)
		next.ServeHTTP(w, r.WithContext(requestctx.WithRequestID(r.Context(), id)))
	})
}

func GetRequestID(ctx context.Context) string {
	return requestctx.GetRequestID(ctx)
}
