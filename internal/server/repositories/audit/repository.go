package audit

import (
	"context"
	"time"

	"github.com/dmitrijs2005/verischol/internal/server/models"
)

// Repository is the append-only audit log. Entries are never deleted through
// it; AttachVerification is the single permitted in-place update.
type Repository interface {
	Append(ctx context.Context, e *models.AuditEntry) (*models.AuditEntry, error)
	// AttachVerification stamps the verification outcome on the latest
	// upload or update entry of the record.
	AttachVerification(ctx context.Context, recordID, verifierID string, status models.RecordStatus, at time.Time) error
	ListByRecord(ctx context.Context, recordID string) ([]*models.AuditEntry, error)
	ListByProject(ctx context.Context, projectID string) ([]*models.AuditEntry, error)
}
