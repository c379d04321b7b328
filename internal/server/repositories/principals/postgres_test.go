package principals

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/verischol/internal/common"
	"github.com/dmitrijs2005/verischol/internal/server/access"
	"github.com/dmitrijs2005/verischol/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

var principalCols = []string{"id", "username", "email", "password_hash", "role", "public_key", "sealed_private_key", "created_at", "updated_at"}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+principals\s*\(username,\s*email,\s*password_hash,\s*role,\s*public_key,\s*sealed_private_key\).*RETURNING\s+id,\s*created_at,\s*updated_at$`).
		WithArgs("alice", "alice@example.com", []byte("hash"), "producer", "PEM", "BLOB").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow("p-1", now, now))

	got, err := repo.Create(context.Background(), &models.Principal{
		Username: "alice", Email: "alice@example.com", PasswordHash: []byte("hash"),
		Role: access.RoleProducer, PublicKey: "PEM", SealedPrivateKey: "BLOB",
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != "p-1" || !got.CreatedAt.Equal(now) {
		t.Fatalf("unexpected principal: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestCreate_UniqueViolation(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT\s+INTO\s+principals`).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := repo.Create(context.Background(), &models.Principal{Role: access.RoleProducer})
	if !errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("want ErrorAlreadyExists, got %v", err)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT\s+INTO\s+principals`).WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &models.Principal{Role: access.RoleProducer})
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestGetByEmail_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`(?s)^SELECT\s+id,\s*username,.*FROM\s+principals\s+WHERE\s+email\s*=\s*\$1$`).
		WithArgs("alice@example.com").
		WillReturnRows(sqlmock.NewRows(principalCols).
			AddRow("p-1", "alice", "alice@example.com", []byte("hash"), "verifier", "PEM", "BLOB", now, now))

	got, err := repo.GetByEmail(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("GetByEmail error: %v", err)
	}
	if got.ID != "p-1" || got.Role != access.RoleVerifier || got.SealedPrivateKey != "BLOB" {
		t.Fatalf("unexpected principal: %+v", got)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FROM\s+principals\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "ghost")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestGetByID_UnknownStoredRole(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`FROM\s+principals\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs("p-1").
		WillReturnRows(sqlmock.NewRows(principalCols).
			AddRow("p-1", "alice", "a@example.com", []byte("h"), "researcher", "PEM", "BLOB", now, now))

	_, err := repo.GetByID(context.Background(), "p-1")
	if err == nil || !errors.Is(err, common.ErrorValidation) {
		t.Fatalf("expected validation error for unknown role, got %v", err)
	}
}

func TestExists(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+EXISTS`).
		WithArgs("a@example.com", "alice").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := repo.Exists(context.Background(), "a@example.com", "alice")
	if err != nil || !ok {
		t.Fatalf("Exists = %v, %v", ok, err)
	}
}

func TestList(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`FROM\s+principals\s+ORDER\s+BY\s+created_at\s+DESC`).
		WillReturnRows(sqlmock.NewRows(principalCols).
			AddRow("p-1", "alice", "a@example.com", []byte("h"), "producer", "PEM", "BLOB", now, now).
			AddRow("p-2", "bob", "b@example.com", []byte("h"), "administrator", "PEM", "BLOB", now, now))

	got, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(got) != 2 || got[1].Role != access.RoleAdministrator {
		t.Fatalf("unexpected list: %+v", got)
	}
}

func TestUpdateRole(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE\s+principals\s+SET\s+role\s*=\s*\$2`).
		WithArgs("p-1", "verifier").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE\s+principals\s+SET\s+role\s*=\s*\$2`).
		WithArgs("ghost", "verifier").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.UpdateRole(context.Background(), "p-1", access.RoleVerifier); err != nil {
		t.Fatalf("UpdateRole error: %v", err)
	}
	if err := repo.UpdateRole(context.Background(), "ghost", access.RoleVerifier); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want ErrorNotFound, got %v", err)
	}
}

func TestUpdateCredentials(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE\s+principals\s+SET\s+password_hash\s*=\s*\$2,\s*sealed_private_key\s*=\s*\$3`).
		WithArgs("p-1", []byte("newhash"), "NEWBLOB").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.UpdateCredentials(context.Background(), "p-1", []byte("newhash"), "NEWBLOB"); err != nil {
		t.Fatalf("UpdateCredentials error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}
