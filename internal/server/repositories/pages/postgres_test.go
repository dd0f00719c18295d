package pages

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"webvault/internal/common"
	"webvault/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

var pageRowColumns = []string{
	"id", "title", "page_desc", "page_url", "content_key", "folder_id",
	"screenshot_key", "note", "is_showcased", "is_deleted", "deleted_at",
	"created_at", "updated_at",
}

func addPageRow(rows *sqlmock.Rows, id int64, title string) *sqlmock.Rows {
	now := time.Now()
	return rows.AddRow(id, title, "", "https://example.com", "key-"+title, int64(1),
		nil, nil, false, false, nil, now, now)
}

func TestCount_AppliesFilterArgs(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM pages WHERE is_deleted = FALSE AND folder_id = \$1 AND title ILIKE \$2`).
		WithArgs(int64(3), "%rust%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(42)))

	got, err := repo.Count(context.Background(), Filter{FolderID: int64p(3), Keyword: "rust"})
	if err != nil {
		t.Fatalf("Count error: %v", err)
	}
	if got != 42 {
		t.Fatalf("unexpected count: %d", got)
	}
}

func TestList_PaginationOffset(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows(pageRowColumns)
	addPageRow(rows, 11, "eleventh")

	// page 2 of size 10 means LIMIT 10 OFFSET 10
	mock.ExpectQuery(`ORDER BY created_at DESC LIMIT \$2 OFFSET \$3`).
		WithArgs(int64(3), 10, 10).
		WillReturnRows(rows)

	got, err := repo.List(context.Background(), Filter{FolderID: int64p(3)}, 2, 10)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(got) != 1 || got[0].ID != 11 {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestList_NoPaginationWhenSizeOmitted(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows(pageRowColumns)
	addPageRow(rows, 1, "one")
	addPageRow(rows, 2, "two")

	mock.ExpectQuery(`FROM pages WHERE is_deleted = FALSE ORDER BY created_at DESC$`).
		WillReturnRows(rows)

	got, err := repo.List(context.Background(), Filter{}, 1, 0)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected full set, got %d rows", len(got))
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FROM pages WHERE id = \$1`).
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 99)
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("want common.ErrNotFound, got %v", err)
	}
}

func TestSoftDelete_OnlyLivePagesAffected(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE pages SET is_deleted = TRUE, deleted_at = now\(\)`).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	ok, err := repo.SoftDelete(context.Background(), 5)
	if err != nil {
		t.Fatalf("SoftDelete error: %v", err)
	}
	if !ok {
		t.Fatal("expected true")
	}
}

func TestSoftDelete_AlreadyDeletedReportsFalse(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE pages SET is_deleted = TRUE`).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := repo.SoftDelete(context.Background(), 5)
	if err != nil {
		t.Fatalf("SoftDelete error: %v", err)
	}
	if ok {
		t.Fatal("expected false for already-deleted page")
	}
}

func TestRestore_ClearsDeletionStamp(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE pages SET is_deleted = FALSE, deleted_at = NULL`).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	ok, err := repo.Restore(context.Background(), 5)
	if err != nil {
		t.Fatalf("Restore error: %v", err)
	}
	if !ok {
		t.Fatal("expected true")
	}
}

func TestAllIDsByFolder(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id"}).AddRow(int64(1)).AddRow(int64(4)).AddRow(int64(9))
	mock.ExpectQuery(`SELECT id FROM pages WHERE folder_id = \$1 AND is_deleted = FALSE`).
		WithArgs(int64(2)).
		WillReturnRows(rows)

	got, err := repo.AllIDsByFolder(context.Background(), 2)
	if err != nil {
		t.Fatalf("AllIDsByFolder error: %v", err)
	}
	if len(got) != 3 || got[2] != 9 {
		t.Fatalf("unexpected ids: %v", got)
	}
}

func TestInsert_ReturnsAssignedID(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO pages`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(123)))

	p := &models.Page{Title: "t", PageURL: "https://example.com", ContentKey: "k", FolderID: 1}
	id, err := repo.Insert(context.Background(), p)
	if err != nil {
		t.Fatalf("Insert error: %v", err)
	}
	if id != 123 {
		t.Fatalf("unexpected id: %d", id)
	}
}
