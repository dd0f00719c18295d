package httpapi

import (
	"net/http"

	"webvault/internal/server/models"
)

type folderDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func (s *Server) handleListFolders(w http.ResponseWriter, r *http.Request) {
	list, err := s.folderService.ListFolders(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	result := make([]folderDTO, 0, len(list))
	for _, f := range list {
		result = append(result, toFolderDTO(f))
	}
	writeJSON(w, http.StatusOK, result)
}

func toFolderDTO(f *models.Folder) folderDTO {
	return folderDTO{ID: f.ID, Name: f.Name}
}

func (s *Server) handleGetFolder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	folder, err := s.folderService.GetFolder(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toFolderDTO(folder))
}

type folderNameRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleCreateFolder(w http.ResponseWriter, r *http.Request) {
	var req folderNameRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	id, err := s.folderService.CreateFolder(r.Context(), req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"id": id})
}

func (s *Server) handleRenameFolder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req folderNameRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := s.folderService.RenameFolder(r.Context(), id, req.Name); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "ok")
}

func (s *Server) handleFolderPageIDs(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	ids, err := s.pageService.PageIDsInFolder(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if ids == nil {
		ids = []int64{}
	}
	writeJSON(w, http.StatusOK, ids)
}
