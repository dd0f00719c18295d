// Package repomanager wires repository constructors to a database handle
// and exposes the schema migration hook.
package repomanager

import (
	"context"
	"database/sql"

	"webvault/internal/dbx"
	"webvault/internal/server/repositories/folders"
	"webvault/internal/server/repositories/pages"
	"webvault/internal/server/repositories/shares"
	"webvault/internal/server/repositories/stores"
	"webvault/internal/server/repositories/tags"
)

// RepositoryManager vends repositories bound to a DBTX, so a service can run
// the same repository code against *sql.DB or inside a transaction.
type RepositoryManager interface {
	Pages(db dbx.DBTX) pages.Repository
	Tags(db dbx.DBTX) tags.Repository
	Folders(db dbx.DBTX) folders.Repository
	Shares(db dbx.DBTX) shares.Repository
	Stores(db dbx.DBTX) stores.Repository
	RunMigrations(ctx context.Context, db *sql.DB) error
}
