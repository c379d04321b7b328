package plaintexts

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/verischol/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return NewPostgresRepository(db), mock, db
}

func TestPut_Upserts(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)INSERT\s+INTO\s+debug_plaintexts.*ON\s+CONFLICT\s+\(record_id\)\s+DO\s+UPDATE`).
		WithArgs("r-1", []byte("hello")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Put(context.Background(), "r-1", []byte("hello")))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGet(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`FROM\s+debug_plaintexts\s+WHERE\s+record_id\s*=\s*\$1`).
		WithArgs("r-1").
		WillReturnRows(sqlmock.NewRows([]string{"record_id", "content", "updated_at"}).AddRow("r-1", []byte("hello"), now))

	got, err := repo.Get(context.Background(), "r-1")
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), got.Content)
}

func TestGet_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FROM\s+debug_plaintexts`).WithArgs("r-1").WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), "r-1")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestDrop(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE\s+FROM\s+debug_plaintexts\s+WHERE\s+record_id\s*=\s*\$1`).
		WithArgs("r-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Drop(context.Background(), "r-1"))
	require.NoError(t, mock.ExpectationsWereMet())
}
