package principals

import (
	"context"

	"github.com/dmitrijs2005/verischol/internal/server/access"
	"github.com/dmitrijs2005/verischol/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, p *models.Principal) (*models.Principal, error)
	GetByID(ctx context.Context, id string) (*models.Principal, error)
	GetByEmail(ctx context.Context, email string) (*models.Principal, error)
	Exists(ctx context.Context, email, username string) (bool, error)
	List(ctx context.Context) ([]*models.Principal, error)
	UpdateRole(ctx context.Context, id string, role access.Role) error
	UpdateCredentials(ctx context.Context, id string, passwordHash []byte, sealedPrivateKey string) error
}
