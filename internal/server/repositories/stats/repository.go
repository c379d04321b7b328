package stats

import (
	"context"

	"github.com/dmitrijs2005/verischol/internal/server/models"
)

type Repository interface {
	Collect(ctx context.Context) (*models.SystemStats, error)
}
