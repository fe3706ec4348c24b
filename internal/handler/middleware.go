package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/pesio-ai/be-plt-directory/internal/service"
)

// requireAuth resolves the bearer token to a principal and attaches it to the
// request context. Requests without a valid, unexpired, unrevoked token never
// reach the wrapped handler.
func (h *HTTPHandler) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bearer, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || bearer == "" {
			h.writeMessage(w, http.StatusUnauthorized, "Unauthenticated.")
			return
		}

		principal, err := h.auth.Authenticate(r.Context(), bearer)
		if err != nil {
			h.writeError(w, err, "Failed to authenticate. Please try again later")
			return
		}

		ctx := service.ContextWithPrincipal(r.Context(), principal)
		next(w, r.WithContext(ctx))
	}
}

// requireRole rejects authenticated principals whose role does not match.
func (h *HTTPHandler) requireRole(role service.Role, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, ok := service.PrincipalFromContext(r.Context())
		if !ok {
			h.writeMessage(w, http.StatusUnauthorized, "Unauthenticated.")
			return
		}

		if principal.Role != role {
			h.log.Warn().
				Str("user_id", principal.UserID).
				Str("role", principal.Role.String()).
				Str("required_role", role.String()).
				Msg("Role check failed")
			h.writeMessage(w, http.StatusForbidden, "Forbidden")
			return
		}

		next(w, r)
	}
}

// logRequests emits one structured log line per request.
func (h *HTTPHandler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(recorder, r)

		h.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", recorder.status).
			Dur("duration", time.Since(start)).
			Msg("Request handled")
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
