// Package principals provides the PostgreSQL-backed store of registered
// principals and their sealed key material.
package principals

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/verischol/internal/common"
	"github.com/dmitrijs2005/verischol/internal/dbx"
	"github.com/dmitrijs2005/verischol/internal/server/access"
	"github.com/dmitrijs2005/verischol/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

const selectColumns = `id, username, email, password_hash, role, public_key, sealed_private_key, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, p *models.Principal) (*models.Principal, error) {
	query :=
		`INSERT INTO principals (username, email, password_hash, role, public_key, sealed_private_key)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		p.Username, p.Email, p.PasswordHash, p.Role.String(), p.PublicKey, p.SealedPrivateKey,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return p, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Principal, error) {
	query := `SELECT ` + selectColumns + ` FROM principals WHERE id = $1`
	return r.getOne(ctx, query, id)
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.Principal, error) {
	query := `SELECT ` + selectColumns + ` FROM principals WHERE email = $1`
	return r.getOne(ctx, query, email)
}

func (r *PostgresRepository) Exists(ctx context.Context, email, username string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM principals WHERE email = $1 OR username = $2)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, email, username).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Principal, error) {
	query := `SELECT ` + selectColumns + ` FROM principals ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Principal
	for rows.Next() {
		p, err := scanPrincipal(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) UpdateRole(ctx context.Context, id string, role access.Role) error {
	query := `UPDATE principals SET role = $2, updated_at = NOW() WHERE id = $1`
	return r.execOne(ctx, query, id, role.String())
}

func (r *PostgresRepository) UpdateCredentials(ctx context.Context, id string, passwordHash []byte, sealedPrivateKey string) error {
	query :=
		`UPDATE principals SET password_hash = $2, sealed_private_key = $3, updated_at = NOW()
		 WHERE id = $1`
	return r.execOne(ctx, query, id, passwordHash, sealedPrivateKey)
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, arg any) (*models.Principal, error) {
	p, err := scanPrincipal(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *PostgresRepository) execOne(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPrincipal(s scanner) (*models.Principal, error) {
	p := &models.Principal{}
	var role string
	err := s.Scan(&p.ID, &p.Username, &p.Email, &p.PasswordHash, &role,
		&p.PublicKey, &p.SealedPrivateKey, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	if p.Role, err = access.ParseRole(role); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}
