package httpapi

import (
	"net/http"
	"strings"

	"webvault/internal/server/services"
)

// bearerToken extracts the admin secret from the Authorization header.
func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if after, ok := strings.CutPrefix(h, "Bearer "); ok {
		return after
	}
	return h
}

// requireAuth gates a handler behind the auth service. Only Accepted passes;
// a Bootstrapped outcome is still rejected, so first-time setup has to go
// through the login endpoint.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		outcome, err := s.authService.Verify(r.Context(), bearerToken(r))
		if err != nil {
			s.logger.Error(r.Context(), "auth check failed", "error", err.Error())
		}
		if outcome != services.VerifyAccepted {
			writeMessage(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next(w, r)
	}
}
