package httpapi

import (
	"context"
	"net/http"
	"time"

	"webvault/internal/common"
	"webvault/internal/server/models"
	"webvault/internal/server/repositories/pages"
	"webvault/internal/server/repositories/tags"
	"webvault/internal/server/services"
)

type pageDTO struct {
	ID            int64   `json:"id"`
	Title         string  `json:"title"`
	PageDesc      string  `json:"pageDesc"`
	PageURL       string  `json:"pageUrl"`
	FolderID      int64   `json:"folderId"`
	ScreenshotKey *string `json:"screenshotId,omitempty"`
	Note          *string `json:"note,omitempty"`
	IsShowcased   bool    `json:"isShowcased"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}

func toPageDTO(p *models.Page) pageDTO {
	return pageDTO{
		ID:            p.ID,
		Title:         p.Title,
		PageDesc:      p.PageDesc,
		PageURL:       p.PageURL,
		FolderID:      p.FolderID,
		ScreenshotKey: p.ScreenshotKey,
		Note:          p.Note,
		IsShowcased:   p.IsShowcased,
		CreatedAt:     p.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:     p.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func toPageDTOs(list []*models.Page) []pageDTO {
	result := make([]pageDTO, 0, len(list))
	for _, p := range list {
		result = append(result, toPageDTO(p))
	}
	return result
}

func (s *Server) handleQueryPages(w http.ResponseWriter, r *http.Request) {
	f := pages.Filter{
		FolderID: queryInt64Ptr(r, "folderId"),
		Keyword:  r.URL.Query().Get("keyword"),
		TagID:    queryInt64Ptr(r, "tagId"),
	}
	pageNumber, _ := queryInt(r, "pageNumber")
	pageSize, _ := queryInt(r, "pageSize")

	list, total, err := s.pageService.QueryPages(r.Context(), f, pageNumber, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"list":  toPageDTOs(list),
		"total": total,
	})
}

func (s *Server) handleRecentPages(w http.ResponseWriter, r *http.Request) {
	list, err := s.pageService.RecentPages(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPageDTOs(list))
}

// handleGetPagesByURL lets the capture extension ask whether a URL has
// already been archived.
func (s *Server) handleGetPagesByURL(w http.ResponseWriter, r *http.Request) {
	pageURL := r.URL.Query().Get("url")
	if pageURL == "" {
		writeError(w, common.ErrValidation)
		return
	}
	list, err := s.pageService.GetPagesByURL(r.Context(), pageURL)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPageDTOs(list))
}

func (s *Server) handleCountPages(w http.ResponseWriter, r *http.Request) {
	total, err := s.pageService.CountAllPages(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"total": total})
}

func (s *Server) handleGetPage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	page, err := s.pageService.GetPage(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPageDTO(page))
}

func (s *Server) handleGetPageContent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	data, err := s.pageService.GetPageContent(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(data)
}

type createPageRequest struct {
	Title       string `json:"title"`
	PageDesc    string `json:"pageDesc"`
	PageURL     string `json:"pageUrl"`
	FolderID    int64  `json:"folderId"`
	IsShowcased bool   `json:"isShowcased"`
	Content     string `json:"content"`
	Screenshot  []byte `json:"screenshot,omitempty"`
}

func (s *Server) handleCreatePage(w http.ResponseWriter, r *http.Request) {
	var req createPageRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	id, err := s.pageService.CreatePage(r.Context(), services.CreatePageParams{
		Title:       req.Title,
		PageDesc:    req.PageDesc,
		PageURL:     req.PageURL,
		FolderID:    req.FolderID,
		IsShowcased: req.IsShowcased,
		Content:     []byte(req.Content),
		Screenshot:  req.Screenshot,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"id": id})
}

type tagEdgeDTO struct {
	TagName string  `json:"tagName"`
	PageIDs []int64 `json:"pageIds"`
}

func toBindRecords(list []tagEdgeDTO) []tags.BindRecord {
	result := make([]tags.BindRecord, 0, len(list))
	for _, e := range list {
		result = append(result, tags.BindRecord{TagName: e.TagName, PageIDs: e.PageIDs})
	}
	return result
}

type updatePageRequest struct {
	FolderID    int64        `json:"folderId"`
	Title       string       `json:"title"`
	IsShowcased bool         `json:"isShowcased"`
	PageDesc    string       `json:"pageDesc"`
	PageURL     string       `json:"pageUrl"`
	Note        *string      `json:"note,omitempty"`
	BindTags    []tagEdgeDTO `json:"bindTags,omitempty"`
	UnbindTags  []tagEdgeDTO `json:"unbindTags,omitempty"`
}

func (s *Server) handleUpdatePage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req updatePageRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	err = s.pageService.UpdatePage(r.Context(), services.UpdatePageParams{
		ID:          id,
		FolderID:    req.FolderID,
		Title:       req.Title,
		IsShowcased: req.IsShowcased,
		PageDesc:    req.PageDesc,
		PageURL:     req.PageURL,
		Note:        req.Note,
		BindTags:    toBindRecords(req.BindTags),
		UnbindTags:  toBindRecords(req.UnbindTags),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "ok")
}

func (s *Server) handleDeletePage(w http.ResponseWriter, r *http.Request) {
	s.pageTransition(w, r, s.pageService.DeletePage)
}

func (s *Server) handleRestorePage(w http.ResponseWriter, r *http.Request) {
	s.pageTransition(w, r, s.pageService.RestorePage)
}

func (s *Server) handlePurgePage(w http.ResponseWriter, r *http.Request) {
	s.pageTransition(w, r, s.pageService.PurgePage)
}

func (s *Server) pageTransition(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, id int64) error) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := op(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "ok")
}
