package httpapi

import (
	"net/http"

	"webvault/internal/server/services"
)

type loginRequest struct {
	Token string `json:"token"`
}

// handleLogin maps the four verify outcomes onto status codes:
// Accepted 200, Bootstrapped 201, Rejected 401, Failed 500.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	outcome, err := s.authService.Verify(r.Context(), req.Token)
	switch outcome {
	case services.VerifyAccepted:
		writeMessage(w, http.StatusOK, "ok")
	case services.VerifyBootstrapped:
		writeMessage(w, http.StatusCreated, "admin credential created")
	case services.VerifyRejected:
		writeMessage(w, http.StatusUnauthorized, "invalid token")
	default:
		if err != nil {
			s.logger.Error(r.Context(), "credential verification failed", "error", err.Error())
		}
		writeMessage(w, http.StatusInternalServerError, "internal error")
	}
}
