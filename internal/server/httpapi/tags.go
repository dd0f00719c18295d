package httpapi

import (
	"net/http"

	"webvault/internal/server/models"
)

type tagDTO struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	Color   string  `json:"color"`
	PageIDs []int64 `json:"pageIds"`
}

func toTagDTO(t *models.Tag) tagDTO {
	pageIDs := t.PageIDs
	if pageIDs == nil {
		pageIDs = []int64{}
	}
	return tagDTO{ID: t.ID, Name: t.Name, Color: t.Color, PageIDs: pageIDs}
}

func (s *Server) handleListTags(w http.ResponseWriter, r *http.Request) {
	list, err := s.tagService.ListTags(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	result := make([]tagDTO, 0, len(list))
	for _, t := range list {
		result = append(result, toTagDTO(t))
	}
	writeJSON(w, http.StatusOK, result)
}

type createTagRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

func (s *Server) handleCreateTag(w http.ResponseWriter, r *http.Request) {
	var req createTagRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	id, err := s.tagService.CreateTag(r.Context(), req.Name, req.Color)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"id": id})
}

type updateTagRequest struct {
	Name  *string `json:"name,omitempty"`
	Color *string `json:"color,omitempty"`
}

func (s *Server) handleUpdateTag(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req updateTagRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := s.tagService.UpdateTag(r.Context(), id, req.Name, req.Color); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "ok")
}

type syncTagsRequest struct {
	BindTags   []tagEdgeDTO `json:"bindTags,omitempty"`
	UnbindTags []tagEdgeDTO `json:"unbindTags,omitempty"`
}

// handleSyncTags applies bind/unbind edges outside of a page update.
func (s *Server) handleSyncTags(w http.ResponseWriter, r *http.Request) {
	var req syncTagsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := s.tagService.SyncBindings(r.Context(), toBindRecords(req.BindTags), toBindRecords(req.UnbindTags)); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "ok")
}

func (s *Server) handleDeleteTag(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.tagService.DeleteTag(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "ok")
}
