// Package otp provides the PostgreSQL-backed store of one-time login codes.
package otp

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/verischol/internal/common"
	"github.com/dmitrijs2005/verischol/internal/dbx"
	"github.com/dmitrijs2005/verischol/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// PostgresRepository implements one-time code storage over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Supersede(ctx context.Context, principalID string) error {
	query := `
		UPDATE otp_codes
		SET state = 'superseded'
		WHERE principal_id = $1 AND state = 'issued'
	`
	if _, err := r.db.ExecContext(ctx, query, principalID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Create inserts an issued code for the principal. It returns
// common.ErrorAlreadyExists when the principal still has an issued code.
func (r *PostgresRepository) Create(ctx context.Context, c *models.OneTimeCode) (*models.OneTimeCode, error) {
	query := `
		INSERT INTO otp_codes (principal_id, code, state, expires_at)
		VALUES ($1, $2, 'issued', $3)
		RETURNING id, created_at
	`
	if err := r.db.QueryRowContext(ctx, query, c.PrincipalID, c.Code, c.ExpiresAt).Scan(&c.ID, &c.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	c.State = models.OTPIssued
	c.ConsumedAt = nil
	return c, nil
}

// Latest returns common.ErrorNotFound when the principal has no live code.
func (r *PostgresRepository) Latest(ctx context.Context, principalID string) (*models.OneTimeCode, error) {
	query := `
		SELECT id, principal_id, code, state, expires_at, consumed_at, created_at
		FROM otp_codes
		WHERE principal_id = $1 AND state <> 'superseded'
		ORDER BY created_at DESC
		LIMIT 1
	`
	c := &models.OneTimeCode{}
	var (
		state    string
		consumed sql.NullTime
	)
	err := r.db.QueryRowContext(ctx, query, principalID).
		Scan(&c.ID, &c.PrincipalID, &c.Code, &state, &c.ExpiresAt, &consumed, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	c.State = models.OTPState(state)
	if consumed.Valid {
		c.ConsumedAt = &consumed.Time
	}
	return c, nil
}

func (r *PostgresRepository) MarkVerified(ctx context.Context, id string, at time.Time) (bool, error) {
	query := `
		UPDATE otp_codes
		SET state = 'verified', consumed_at = $2
		WHERE id = $1 AND state = 'issued'
	`
	res, err := r.db.ExecContext(ctx, query, id, at)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected error: %w", err)
	}
	return n == 1, nil
}
