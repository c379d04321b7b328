package projects

import (
	"context"

	"github.com/dmitrijs2005/verischol/internal/server/access"
	"github.com/dmitrijs2005/verischol/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, p *models.Project) (*models.Project, error)
	Get(ctx context.Context, id string) (*models.Project, error)
	List(ctx context.Context) ([]*models.Project, error)
	ListForPrincipal(ctx context.Context, principalID string) ([]*models.Project, error)
	// Assign places the principal on the project, replacing an existing
	// assignment's role.
	Assign(ctx context.Context, projectID, principalID string, role access.Role) error
	Assignment(ctx context.Context, projectID, principalID string) (*models.ProjectAssignment, error)
	// ClearMismatchedAssignments removes the principal's assignments whose
	// role differs from role and reports how many went.
	ClearMismatchedAssignments(ctx context.Context, principalID string, role access.Role) (int64, error)
	// VerifierOf returns the earliest verifier assigned to the project.
	VerifierOf(ctx context.Context, projectID string) (string, error)
}
