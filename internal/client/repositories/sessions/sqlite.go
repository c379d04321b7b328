package sessions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/verischol/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Get(ctx context.Context, endpoint string) (*Session, error) {
	s := &Session{}
	err := r.db.QueryRowContext(ctx, `
		SELECT endpoint, principal_id, email, role, access_token, saved_at
		FROM sessions WHERE endpoint = ?`, endpoint).
		Scan(&s.Endpoint, &s.PrincipalID, &s.Email, &s.Role, &s.AccessToken, &s.SavedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session[%s]: %w", endpoint, err)
	}
	return s, nil
}

func (r *SQLiteRepository) Save(ctx context.Context, s *Session) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sessions (endpoint, principal_id, email, role, access_token, saved_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(endpoint) DO UPDATE SET
			principal_id = excluded.principal_id,
			email = excluded.email,
			role = excluded.role,
			access_token = excluded.access_token,
			saved_at = excluded.saved_at
	`, s.Endpoint, s.PrincipalID, s.Email, s.Role, s.AccessToken, s.SavedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to save session[%s]: %w", s.Endpoint, err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, endpoint string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE endpoint = ?`, endpoint)
	if err != nil {
		return fmt.Errorf("failed to delete session[%s]: %w", endpoint, err)
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]Session, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT endpoint, principal_id, email, role, access_token, saved_at
		FROM sessions ORDER BY endpoint`)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var result []Session
	for rows.Next() {
		var s Session
		if err := rows.Scan(&s.Endpoint, &s.PrincipalID, &s.Email, &s.Role, &s.AccessToken, &s.SavedAt); err != nil {
			return nil, fmt.Errorf("failed to scan session row: %w", err)
		}
		result = append(result, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate session rows: %w", err)
	}

	return result, nil
}
