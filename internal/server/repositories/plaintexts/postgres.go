// Package plaintexts stores debug copies of record content.
package plaintexts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/verischol/internal/common"
	"github.com/dmitrijs2005/verischol/internal/dbx"
	"github.com/dmitrijs2005/verischol/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Put stores content for the record, replacing any earlier copy.
func (r *PostgresRepository) Put(ctx context.Context, recordID string, content []byte) error {
	query := `
		INSERT INTO debug_plaintexts (record_id, content)
		VALUES ($1, $2)
		ON CONFLICT (record_id) DO UPDATE SET content = EXCLUDED.content, updated_at = NOW()`

	if _, err := r.db.ExecContext(ctx, query, recordID, content); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Drop(ctx context.Context, recordID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM debug_plaintexts WHERE record_id = $1`, recordID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, recordID string) (*models.RetainedPlaintext, error) {
	query := `SELECT record_id, content, updated_at FROM debug_plaintexts WHERE record_id = $1`

	p := &models.RetainedPlaintext{}
	if err := r.db.QueryRowContext(ctx, query, recordID).Scan(&p.RecordID, &p.Content, &p.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}
