// Package records provides the PostgreSQL-backed store of sealed records.
package records

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/verischol/internal/common"
	"github.com/dmitrijs2005/verischol/internal/dbx"
	"github.com/dmitrijs2005/verischol/internal/server/models"
)

const selectColumns = `id, project_id, producer_id, recipient_id, title, description,
	ciphertext, iv, auth_tag, wrapped_key, digest, status,
	last_verified_by, last_verified_at, created_at, updated_at`

// PostgresRepository implements record storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a record in pending state and fills in its ID and timestamps.
func (r *PostgresRepository) Create(ctx context.Context, rec *models.SealedRecord) (*models.SealedRecord, error) {
	query := `
		INSERT INTO sealed_records
			(project_id, producer_id, recipient_id, title, description,
			 ciphertext, iv, auth_tag, wrapped_key, digest, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, 'pending')
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		rec.ProjectID, rec.ProducerID, rec.RecipientID, rec.Title, rec.Description,
		rec.Ciphertext, rec.IV, rec.AuthTag, rec.WrappedKey, rec.Digest,
	).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	rec.Status = models.StatusPending
	rec.LastVerifiedBy = nil
	rec.LastVerifiedAt = nil
	return rec, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.SealedRecord, error) {
	return r.getOne(ctx, `SELECT `+selectColumns+` FROM sealed_records WHERE id = $1 AND deleted_at IS NULL`, id)
}

func (r *PostgresRepository) GetForUpdate(ctx context.Context, id string) (*models.SealedRecord, error) {
	return r.getOne(ctx, `SELECT `+selectColumns+` FROM sealed_records WHERE id = $1 AND deleted_at IS NULL FOR UPDATE`, id)
}

// ListByProject returns the project's records, most recently updated first.
func (r *PostgresRepository) ListByProject(ctx context.Context, projectID string) ([]*models.SealedRecord, error) {
	query := `SELECT ` + selectColumns + ` FROM sealed_records WHERE project_id = $1 AND deleted_at IS NULL ORDER BY updated_at DESC`

	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to select records: %w", err)
	}
	defer rows.Close()

	var result []*models.SealedRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) ReplaceContent(ctx context.Context, rec *models.SealedRecord) error {
	query := `
		UPDATE sealed_records
		SET title = $2, description = $3, recipient_id = $4,
			ciphertext = $5, iv = $6, auth_tag = $7, wrapped_key = $8, digest = $9,
			status = 'pending', last_verified_by = NULL, last_verified_at = NULL,
			updated_at = NOW()
		WHERE id = $1`

	return r.execOne(ctx, query,
		rec.ID, rec.Title, rec.Description, rec.RecipientID,
		rec.Ciphertext, rec.IV, rec.AuthTag, rec.WrappedKey, rec.Digest)
}

func (r *PostgresRepository) SetVerification(ctx context.Context, id string, status models.RecordStatus, verifierID string, at time.Time) error {
	query := `
		UPDATE sealed_records
		SET status = $2, last_verified_by = $3, last_verified_at = $4
		WHERE id = $1`

	return r.execOne(ctx, query, id, string(status), verifierID, at)
}

func (r *PostgresRepository) OverwriteCiphertext(ctx context.Context, id string, ciphertext []byte) error {
	return r.execOne(ctx, `UPDATE sealed_records SET ciphertext = $2 WHERE id = $1`, id, ciphertext)
}

// Delete retires a record. The row stays so audit entries keep their
// reference; every read above skips it from then on.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	return r.execOne(ctx, `UPDATE sealed_records SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`, id)
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, id string) (*models.SealedRecord, error) {
	rec, err := scanRecord(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return rec, nil
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

func scanRecord(s scanner) (*models.SealedRecord, error) {
	rec := &models.SealedRecord{}
	var (
		status     string
		verifiedBy sql.NullString
		verifiedAt sql.NullTime
	)
	err := s.Scan(
		&rec.ID, &rec.ProjectID, &rec.ProducerID, &rec.RecipientID, &rec.Title, &rec.Description,
		&rec.Ciphertext, &rec.IV, &rec.AuthTag, &rec.WrappedKey, &rec.Digest, &status,
		&verifiedBy, &verifiedAt, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	rec.Status = models.RecordStatus(status)
	if verifiedBy.Valid {
		rec.LastVerifiedBy = &verifiedBy.String
	}
	if verifiedAt.Valid {
		rec.LastVerifiedAt = &verifiedAt.Time
	}
	return rec, nil
}
