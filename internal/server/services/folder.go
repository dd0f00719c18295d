package services

import (
	"context"
	"database/sql"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"webvault/internal/common"
	"webvault/internal/server/models"
	"webvault/internal/server/repositories/repomanager"
)

// FolderService owns folder CRUD. Cascading folder deletion is out of scope;
// pages keep referencing their folder by id.
type FolderService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewFolderService constructs a FolderService.
func NewFolderService(db *sql.DB, m repomanager.RepositoryManager) *FolderService {
	return &FolderService{db: db, repomanager: m}
}

// ListFolders returns all live folders.
func (s *FolderService) ListFolders(ctx context.Context) ([]*models.Folder, error) {
	return s.repomanager.Folders(s.db).List(ctx)
}

// GetFolder returns one folder.
func (s *FolderService) GetFolder(ctx context.Context, id int64) (*models.Folder, error) {
	return s.repomanager.Folders(s.db).GetByID(ctx, id)
}

// CreateFolder creates a named folder.
func (s *FolderService) CreateFolder(ctx context.Context, name string) (int64, error) {
	if err := validation.Validate(name, validation.Required); err != nil {
		return 0, fmt.Errorf("%w: name %v", common.ErrValidation, err)
	}
	return s.repomanager.Folders(s.db).Insert(ctx, name)
}

// RenameFolder renames a folder.
func (s *FolderService) RenameFolder(ctx context.Context, id int64, name string) error {
	if err := validation.Validate(name, validation.Required); err != nil {
		return fmt.Errorf("%w: name %v", common.ErrValidation, err)
	}
	ok, err := s.repomanager.Folders(s.db).Rename(ctx, id, name)
	if err != nil {
		return err
	}
	if !ok {
		return common.ErrNotFound
	}
	return nil
}
