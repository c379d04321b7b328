// Package stats counts principals, projects, records and audit entries for
// the administrator overview.
package stats

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/verischol/internal/dbx"
	"github.com/dmitrijs2005/verischol/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Collect(ctx context.Context) (*models.SystemStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM principals),
			(SELECT COUNT(*) FROM principals WHERE role = 'producer'),
			(SELECT COUNT(*) FROM principals WHERE role = 'verifier'),
			(SELECT COUNT(*) FROM principals WHERE role = 'administrator'),
			(SELECT COUNT(*) FROM projects),
			(SELECT COUNT(*) FROM sealed_records WHERE deleted_at IS NULL),
			(SELECT COUNT(*) FROM sealed_records WHERE deleted_at IS NULL AND status = 'pending'),
			(SELECT COUNT(*) FROM sealed_records WHERE deleted_at IS NULL AND status = 'verified'),
			(SELECT COUNT(*) FROM sealed_records WHERE deleted_at IS NULL AND status = 'corrupted'),
			(SELECT COUNT(*) FROM audit_log)`

	s := &models.SystemStats{}
	err := r.db.QueryRowContext(ctx, query).Scan(
		&s.Principals, &s.Producers, &s.Verifiers, &s.Administrators,
		&s.Projects,
		&s.Records, &s.PendingRecords, &s.VerifiedRecords, &s.CorruptedRecords,
		&s.AuditEntries,
	)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return s, nil
}
