// Package audit stores the per-record audit trail.
package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/verischol/internal/common"
	"github.com/dmitrijs2005/verischol/internal/dbx"
	"github.com/dmitrijs2005/verischol/internal/server/models"
)

const selectColumns = `a.id, a.record_id, a.actor_id, a.action, a.result, a.details,
	a.verified_by, a.verification_status, a.verified_at, a.created_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Append(ctx context.Context, e *models.AuditEntry) (*models.AuditEntry, error) {
	details := e.Details
	if len(details) == 0 {
		details = json.RawMessage(`{}`)
	}

	query := `
		INSERT INTO audit_log (record_id, actor_id, action, result, details)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		e.RecordID, nullString(e.ActorID), string(e.Action), e.Result, []byte(details),
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	e.Details = details
	return e, nil
}

func (r *PostgresRepository) AttachVerification(ctx context.Context, recordID, verifierID string, status models.RecordStatus, at time.Time) error {
	query := `
		UPDATE audit_log
		SET verified_by = $2, verification_status = $3, verified_at = $4
		WHERE id = (
			SELECT id FROM audit_log
			WHERE record_id = $1 AND action IN ('upload', 'update')
			ORDER BY created_at DESC
			LIMIT 1
		)`

	res, err := r.db.ExecContext(ctx, query, recordID, verifierID, string(status), at)
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

// ListByRecord returns the trail of one record, oldest first.
func (r *PostgresRepository) ListByRecord(ctx context.Context, recordID string) ([]*models.AuditEntry, error) {
	query := `SELECT ` + selectColumns + ` FROM audit_log a WHERE a.record_id = $1 ORDER BY a.created_at ASC`
	return r.list(ctx, query, recordID)
}

// ListByProject returns the trail of every record in the project, oldest first.
func (r *PostgresRepository) ListByProject(ctx context.Context, projectID string) ([]*models.AuditEntry, error) {
	query := `SELECT ` + selectColumns + ` FROM audit_log a
		JOIN sealed_records s ON s.id = a.record_id
		WHERE s.project_id = $1
		ORDER BY a.created_at ASC`
	return r.list(ctx, query, projectID)
}

func (r *PostgresRepository) list(ctx context.Context, query string, arg string) ([]*models.AuditEntry, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to select audit entries: %w", err)
	}
	defer rows.Close()

	var result []*models.AuditEntry
	for rows.Next() {
		var (
			e          models.AuditEntry
			actor      sql.NullString
			action     string
			details    []byte
			verifiedBy sql.NullString
			status     sql.NullString
			verifiedAt sql.NullTime
		)
		if err := rows.Scan(&e.ID, &e.RecordID, &actor, &action, &e.Result, &details,
			&verifiedBy, &status, &verifiedAt, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		e.Action = models.AuditAction(action)
		e.Details = json.RawMessage(details)
		if actor.Valid {
			e.ActorID = &actor.String
		}
		if verifiedBy.Valid {
			e.VerifiedBy = &verifiedBy.String
		}
		if status.Valid {
			s := models.RecordStatus(status.String)
			e.VerificationStatus = &s
		}
		if verifiedAt.Valid {
			e.VerifiedAt = &verifiedAt.Time
		}
		result = append(result, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
