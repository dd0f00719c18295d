package httpapi

import "net/http"

func (s *Server) handleGetShowRecent(w http.ResponseWriter, r *http.Request) {
	value, err := s.settingService.ShouldShowRecent(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"shouldShowRecent": value})
}

type setShowRecentRequest struct {
	ShouldShowRecent bool `json:"shouldShowRecent"`
}

func (s *Server) handleSetShowRecent(w http.ResponseWriter, r *http.Request) {
	var req setShowRecentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := s.settingService.SetShouldShowRecent(r.Context(), req.ShouldShowRecent); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "ok")
}
