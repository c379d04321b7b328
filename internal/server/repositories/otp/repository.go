package otp

import (
	"context"
	"time"

	"github.com/dmitrijs2005/verischol/internal/server/models"
)

type Repository interface {
	// Supersede moves every issued code of the principal to superseded.
	Supersede(ctx context.Context, principalID string) error
	Create(ctx context.Context, c *models.OneTimeCode) (*models.OneTimeCode, error)
	// Latest returns the most recent code of the principal that was not
	// superseded, whatever its state.
	Latest(ctx context.Context, principalID string) (*models.OneTimeCode, error)
	// MarkVerified flips an issued code to verified. It reports false when
	// the code was no longer in the issued state.
	MarkVerified(ctx context.Context, id string, at time.Time) (bool, error)
}
