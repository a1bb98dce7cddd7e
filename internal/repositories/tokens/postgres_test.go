package tokens

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/lenshive/backend/internal/common"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestGet_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+user_id,\s*token,\s*created_at\s+FROM\s+auth_tokens\s+WHERE\s+user_id\s*=\s*\$1\s*$`

	rows := sqlmock.NewRows([]string{"user_id", "token", "created_at"}).
		AddRow("u-1", "tok-abc", time.Now())
	mock.ExpectQuery(q).WithArgs("u-1").WillReturnRows(rows)

	got, err := repo.Get(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.UserID != "u-1" || got.Token != "tok-abc" {
		t.Fatalf("unexpected token: %+v", got)
	}
}

func TestGet_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+user_id,\s*token`).
		WithArgs("u-none").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), "u-none")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected common.ErrorNotFound, got %v", err)
	}
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+auth_tokens\s*\(user_id,\s*token\)\s*VALUES\s*\(\$1,\s*\$2\)\s*RETURNING\s+user_id,\s*token,\s*created_at\s*$`

	rows := sqlmock.NewRows([]string{"user_id", "token", "created_at"}).
		AddRow("u-1", "tok-new", time.Now())
	mock.ExpectQuery(q).WithArgs("u-1", "tok-new").WillReturnRows(rows)

	got, err := repo.Create(context.Background(), "u-1", "tok-new")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.Token != "tok-new" {
		t.Fatalf("unexpected token: %+v", got)
	}
}

func TestCreate_Conflict(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT\s+INTO\s+auth_tokens`).
		WithArgs("u-1", "tok-lost").
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := repo.Create(context.Background(), "u-1", "tok-lost")
	if !errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("expected common.ErrorAlreadyExists, got %v", err)
	}
}

func TestFind_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+user_id,\s*token,\s*created_at\s+FROM\s+auth_tokens\s+WHERE\s+token\s*=\s*\$1\s*$`

	rows := sqlmock.NewRows([]string{"user_id", "token", "created_at"}).
		AddRow("u-1", "tok-abc", time.Now())
	mock.ExpectQuery(q).WithArgs("tok-abc").WillReturnRows(rows)

	got, err := repo.Find(context.Background(), "tok-abc")
	if err != nil {
		t.Fatalf("Find error: %v", err)
	}
	if got.UserID != "u-1" {
		t.Fatalf("unexpected token: %+v", got)
	}
}

func TestFind_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+user_id,\s*token`).
		WithArgs("stale").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Find(context.Background(), "stale")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected common.ErrorNotFound, got %v", err)
	}
}

func TestDelete_Existed(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^DELETE\s+FROM\s+auth_tokens\s+WHERE\s+user_id\s*=\s*\$1\s*$`

	mock.ExpectExec(q).WithArgs("u-1").WillReturnResult(sqlmock.NewResult(0, 1))

	existed, err := repo.Delete(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if !existed {
		t.Fatal("expected existed=true")
	}
}

func TestDelete_NothingToDelete(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE\s+FROM\s+auth_tokens`).
		WithArgs("u-none").
		WillReturnResult(sqlmock.NewResult(0, 0))

	existed, err := repo.Delete(context.Background(), "u-none")
	if err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if existed {
		t.Fatal("expected existed=false")
	}
}

func TestDelete_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE\s+FROM\s+auth_tokens`).
		WithArgs("u-1").
		WillReturnError(errors.New("db down"))

	_, err := repo.Delete(context.Background(), "u-1")
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}
