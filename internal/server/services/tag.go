package services

import (
	"context"
	"database/sql"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"webvault/internal/common"
	"webvault/internal/dbx"
	"webvault/internal/server/models"
	"webvault/internal/server/repositories/repomanager"
	"webvault/internal/server/repositories/tags"
)

// TagService owns tag CRUD and the bind/unbind sync path.
type TagService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewTagService constructs a TagService.
func NewTagService(db *sql.DB, m repomanager.RepositoryManager) *TagService {
	return &TagService{db: db, repomanager: m}
}

// ListTags returns all tags with their derived page-id sets.
func (s *TagService) ListTags(ctx context.Context) ([]*models.Tag, error) {
	return s.repomanager.Tags(s.db).List(ctx)
}

// GetTag returns one tag.
func (s *TagService) GetTag(ctx context.Context, id int64) (*models.Tag, error) {
	return s.repomanager.Tags(s.db).GetByID(ctx, id)
}

// CreateTag creates a tag with a unique name.
func (s *TagService) CreateTag(ctx context.Context, name, color string) (int64, error) {
	if err := validation.Validate(name, validation.Required); err != nil {
		return 0, fmt.Errorf("%w: name %v", common.ErrValidation, err)
	}
	return s.repomanager.Tags(s.db).Insert(ctx, name, color)
}

// UpdateTag changes name and/or color; at least one must be given.
func (s *TagService) UpdateTag(ctx context.Context, id int64, name, color *string) error {
	if name == nil && color == nil {
		return fmt.Errorf("%w: at least one field is required", common.ErrValidation)
	}
	ok, err := s.repomanager.Tags(s.db).Update(ctx, id, name, color)
	if err != nil {
		return err
	}
	if !ok {
		return common.ErrNotFound
	}
	return nil
}

// DeleteTag removes the tag and its edges.
func (s *TagService) DeleteTag(ctx context.Context, id int64) error {
	ok, err := s.repomanager.Tags(s.db).Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return common.ErrNotFound
	}
	return nil
}

// SyncBindings applies bind/unbind edges as one atomic batch, outside of any
// page update. An empty input is a no-op.
func (s *TagService) SyncBindings(ctx context.Context, bind, unbind []tags.BindRecord) error {
	stmts := tags.BuildSyncStatements(bind, unbind)
	if len(stmts) == 0 {
		return nil
	}
	if err := dbx.ExecBatch(ctx, s.db, stmts); err != nil {
		return fmt.Errorf("error syncing tag bindings: %w", err)
	}
	return nil
}
