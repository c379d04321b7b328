package plaintexts

import (
	"context"

	"github.com/dmitrijs2005/verischol/internal/server/models"
)

type Repository interface {
	Put(ctx context.Context, recordID string, content []byte) error
	Get(ctx context.Context, recordID string) (*models.RetainedPlaintext, error)
	// Drop removes the copy if there is one.
	Drop(ctx context.Context, recordID string) error
}
