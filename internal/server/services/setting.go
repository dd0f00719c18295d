package services

import (
	"context"
	"database/sql"

	"webvault/internal/server/repositories/repomanager"
)

// SettingService exposes the key/value settings that are not credentials.
type SettingService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewSettingService constructs a SettingService.
func NewSettingService(db *sql.DB, m repomanager.RepositoryManager) *SettingService {
	return &SettingService{db: db, repomanager: m}
}

// ShouldShowRecent reads the public-showcase toggle; absent means enabled.
func (s *SettingService) ShouldShowRecent(ctx context.Context) (bool, error) {
	return s.repomanager.Stores(s.db).GetShouldShowRecent(ctx)
}

// SetShouldShowRecent writes the public-showcase toggle.
func (s *SettingService) SetShouldShowRecent(ctx context.Context, value bool) error {
	return s.repomanager.Stores(s.db).SetShouldShowRecent(ctx, value)
}
