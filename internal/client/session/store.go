// Package session opens the CLI's local SQLite database and exposes the
// session kept for each server endpoint.
package session

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/verischol/internal/client/migrations"
	"github.com/dmitrijs2005/verischol/internal/client/repositories/sessions"
	"github.com/dmitrijs2005/verischol/internal/filex"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

type Store struct {
	db       *sql.DB
	sessions sessions.Repository
	now      func() time.Time
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// Open creates the database file and its directory if needed and brings the
// schema up to date. Use ":memory:" for a throwaway store.
func Open(ctx context.Context, path string) (*Store, error) {
	if path != ":memory:" {
		if err := filex.EnsureParentDir(path); err != nil {
			return nil, fmt.Errorf("create session dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate session db: %w", err)
	}

	return &Store{db: db, sessions: sessions.NewSQLiteRepository(db), now: time.Now}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Load returns the session for endpoint, or nil if there is none.
func (s *Store) Load(ctx context.Context, endpoint string) (*sessions.Session, error) {
	return s.sessions.Get(ctx, endpoint)
}

func (s *Store) Save(ctx context.Context, endpoint, principalID, email, role, token string) error {
	return s.sessions.Save(ctx, &sessions.Session{
		Endpoint:    endpoint,
		PrincipalID: principalID,
		Email:       email,
		Role:        role,
		AccessToken: token,
		SavedAt:     s.now(),
	})
}

func (s *Store) Clear(ctx context.Context, endpoint string) error {
	return s.sessions.Delete(ctx, endpoint)
}
