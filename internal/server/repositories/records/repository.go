package records

import (
	"context"
	"time"

	"github.com/dmitrijs2005/verischol/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, r *models.SealedRecord) (*models.SealedRecord, error)
	Get(ctx context.Context, id string) (*models.SealedRecord, error)
	// GetForUpdate reads the record and holds a row lock until the
	// surrounding transaction ends.
	GetForUpdate(ctx context.Context, id string) (*models.SealedRecord, error)
	ListByProject(ctx context.Context, projectID string) ([]*models.SealedRecord, error)
	// ReplaceContent stores a fresh envelope and digest and resets the
	// verification state to pending.
	ReplaceContent(ctx context.Context, r *models.SealedRecord) error
	SetVerification(ctx context.Context, id string, status models.RecordStatus, verifierID string, at time.Time) error
	// OverwriteCiphertext writes ciphertext bytes without touching the digest.
	// It exists for attack simulation only.
	OverwriteCiphertext(ctx context.Context, id string, ciphertext []byte) error
	// Delete hides the record from every read. Its audit entries stay.
	Delete(ctx context.Context, id string) error
}
