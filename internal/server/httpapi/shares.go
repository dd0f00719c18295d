package httpapi

import (
	"net/http"
	"time"

	"webvault/internal/server/models"
)

type shareLinkDTO struct {
	ID        int64  `json:"id"`
	PageID    int64  `json:"pageId"`
	ShareCode string `json:"shareCode"`
	ExpiresAt string `json:"expiresAt,omitempty"`
	CreatedAt string `json:"createdAt"`
	PageTitle string `json:"pageTitle,omitempty"`
}

func toShareLinkDTO(l *models.ShareLink) shareLinkDTO {
	dto := shareLinkDTO{
		ID:        l.ID,
		PageID:    l.PageID,
		ShareCode: l.ShareCode,
		CreatedAt: l.CreatedAt.UTC().Format(time.RFC3339),
		PageTitle: l.PageTitle,
	}
	if l.ExpiresAt != nil {
		dto.ExpiresAt = l.ExpiresAt.UTC().Format(time.RFC3339)
	}
	return dto
}

func toShareLinkDTOs(list []*models.ShareLink) []shareLinkDTO {
	result := make([]shareLinkDTO, 0, len(list))
	for _, l := range list {
		result = append(result, toShareLinkDTO(l))
	}
	return result
}

type createShareRequest struct {
	PageID    int64 `json:"pageId"`
	ExpiresIn *int  `json:"expiresIn,omitempty"` // hours; null or 0 means never expires
}

func (s *Server) handleCreateShare(w http.ResponseWriter, r *http.Request) {
	var req createShareRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	link, err := s.shareService.CreateShareLink(r.Context(), req.PageID, req.ExpiresIn)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toShareLinkDTO(link))
}

func (s *Server) handleListAllShares(w http.ResponseWriter, r *http.Request) {
	list, err := s.shareService.ListAllShareLinks(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toShareLinkDTOs(list))
}

func (s *Server) handleListPageShares(w http.ResponseWriter, r *http.Request) {
	pageID, err := pathID(r, "pageId")
	if err != nil {
		writeError(w, err)
		return
	}
	list, err := s.shareService.ListShareLinksForPage(r.Context(), pageID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toShareLinkDTOs(list))
}

// handleInspectShare returns the raw link row regardless of expiry, with an
// expired flag, for the admin UI.
func (s *Server) handleInspectShare(w http.ResponseWriter, r *http.Request) {
	link, err := s.shareService.GetShareLinkByCode(r.Context(), r.PathValue("code"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"link":    toShareLinkDTO(link),
		"expired": s.shareService.IsExpired(link),
	})
}

func (s *Server) handleDeleteShare(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.shareService.DeleteShareLink(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "ok")
}

// handleViewShare serves the public share-view flow. No auth gate: the share
// code is the capability.
func (s *Server) handleViewShare(w http.ResponseWriter, r *http.Request) {
	_, page, err := s.shareService.ResolveShareCode(r.Context(), r.PathValue("code"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPageDTO(page))
}

func (s *Server) handleViewShareContent(w http.ResponseWriter, r *http.Request) {
	_, page, err := s.shareService.ResolveShareCode(r.Context(), r.PathValue("code"))
	if err != nil {
		writeError(w, err)
		return
	}
	data, err := s.pageService.GetPageContent(r.Context(), page.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(data)
}
