package dbx

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestExecBatch_AllStatementsCommit(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE pages").WithArgs(int64(1)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO tags").WithArgs("foo").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	stmts := []Statement{
		{SQL: "UPDATE pages SET title = 'x' WHERE id = $1", Args: []any{int64(1)}},
		{SQL: "INSERT INTO tags (name) VALUES ($1)", Args: []any{"foo"}},
	}
	if err := ExecBatch(context.Background(), db, stmts); err != nil {
		t.Fatalf("ExecBatch error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestExecBatch_MidBatchFailureRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE pages").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO tags").WillReturnError(errors.New("constraint violated"))
	mock.ExpectRollback()

	stmts := []Statement{
		{SQL: "UPDATE pages SET title = 'x' WHERE id = $1", Args: []any{int64(1)}},
		{SQL: "INSERT INTO tags (name) VALUES ($1)", Args: []any{"foo"}},
		{SQL: "DELETE FROM page_tags WHERE page_id = $1", Args: []any{int64(1)}},
	}
	err = ExecBatch(context.Background(), db, stmts)
	if err == nil {
		t.Fatal("expected error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestExecBatch_EmptyIsNoop(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	defer db.Close()

	// no expectations: an empty batch must not even begin a transaction
	if err := ExecBatch(context.Background(), db, nil); err != nil {
		t.Fatalf("ExecBatch error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
