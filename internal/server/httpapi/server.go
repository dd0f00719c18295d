package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/cors"

	"webvault/internal/logging"
	"webvault/internal/server/config"
	"webvault/internal/server/services"
)

// Server wires the service layer to HTTP routes.
type Server struct {
	cfg            *config.Config
	logger         logging.Logger
	authService    *services.AuthService
	pageService    *services.PageService
	tagService     *services.TagService
	folderService  *services.FolderService
	shareService   *services.ShareService
	settingService *services.SettingService
}

// NewServer constructs the HTTP server around the given services.
func NewServer(
	cfg *config.Config,
	logger logging.Logger,
	authService *services.AuthService,
	pageService *services.PageService,
	tagService *services.TagService,
	folderService *services.FolderService,
	shareService *services.ShareService,
	settingService *services.SettingService,
) *Server {
	return &Server{
		cfg:            cfg,
		logger:         logger,
		authService:    authService,
		pageService:    pageService,
		tagService:     tagService,
		folderService:  folderService,
		shareService:   shareService,
		settingService: settingService,
	}
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/login", s.handleLogin)

	// public share-view flow, no auth gate
	mux.HandleFunc("GET /api/public/shares/{code}", s.handleViewShare)
	mux.HandleFunc("GET /api/public/shares/{code}/content", s.handleViewShareContent)

	mux.HandleFunc("GET /api/pages", s.requireAuth(s.handleQueryPages))
	mux.HandleFunc("GET /api/pages/recent", s.requireAuth(s.handleRecentPages))
	mux.HandleFunc("GET /api/pages/byUrl", s.requireAuth(s.handleGetPagesByURL))
	mux.HandleFunc("GET /api/pages/count", s.requireAuth(s.handleCountPages))
	mux.HandleFunc("GET /api/pages/{id}", s.requireAuth(s.handleGetPage))
	mux.HandleFunc("GET /api/pages/{id}/content", s.requireAuth(s.handleGetPageContent))
	mux.HandleFunc("POST /api/pages", s.requireAuth(s.handleCreatePage))
	mux.HandleFunc("PUT /api/pages/{id}", s.requireAuth(s.handleUpdatePage))
	mux.HandleFunc("DELETE /api/pages/{id}", s.requireAuth(s.handleDeletePage))
	mux.HandleFunc("POST /api/pages/{id}/restore", s.requireAuth(s.handleRestorePage))
	mux.HandleFunc("DELETE /api/pages/{id}/purge", s.requireAuth(s.handlePurgePage))

	mux.HandleFunc("GET /api/folders", s.requireAuth(s.handleListFolders))
	mux.HandleFunc("GET /api/folders/{id}", s.requireAuth(s.handleGetFolder))
	mux.HandleFunc("POST /api/folders", s.requireAuth(s.handleCreateFolder))
	mux.HandleFunc("PUT /api/folders/{id}", s.requireAuth(s.handleRenameFolder))
	mux.HandleFunc("GET /api/folders/{id}/pageIds", s.requireAuth(s.handleFolderPageIDs))

	mux.HandleFunc("GET /api/tags", s.requireAuth(s.handleListTags))
	mux.HandleFunc("POST /api/tags", s.requireAuth(s.handleCreateTag))
	mux.HandleFunc("PUT /api/tags/{id}", s.requireAuth(s.handleUpdateTag))
	mux.HandleFunc("DELETE /api/tags/{id}", s.requireAuth(s.handleDeleteTag))
	mux.HandleFunc("POST /api/tags/sync", s.requireAuth(s.handleSyncTags))

	mux.HandleFunc("POST /api/shares", s.requireAuth(s.handleCreateShare))
	mux.HandleFunc("GET /api/shares", s.requireAuth(s.handleListAllShares))
	mux.HandleFunc("GET /api/shares/page/{pageId}", s.requireAuth(s.handleListPageShares))
	mux.HandleFunc("GET /api/shares/code/{code}", s.requireAuth(s.handleInspectShare))
	mux.HandleFunc("DELETE /api/shares/{id}", s.requireAuth(s.handleDeleteShare))

	mux.HandleFunc("GET /api/settings/recent", s.requireAuth(s.handleGetShowRecent))
	mux.HandleFunc("PUT /api/settings/recent", s.requireAuth(s.handleSetShowRecent))

	c := cors.New(cors.Options{
		AllowedOrigins: s.cfg.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	})
	return c.Handler(mux)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.EndpointAddrHTTP,
		Handler: s.routes(),
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "http server listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
