package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/verischol/internal/common"
	"github.com/dmitrijs2005/verischol/internal/dbx"
	"github.com/dmitrijs2005/verischol/internal/logging"
	"github.com/dmitrijs2005/verischol/internal/server/access"
	"github.com/dmitrijs2005/verischol/internal/server/auth"
	"github.com/dmitrijs2005/verischol/internal/server/models"
	"github.com/dmitrijs2005/verischol/internal/server/repositories/repomanager"
)

type ProjectService struct {
	tx     dbx.Transactor
	repos  repomanager.RepositoryManager
	logger logging.Logger
}

func NewProjectService(tx dbx.Transactor, repos repomanager.RepositoryManager, logger logging.Logger) *ProjectService {
	return &ProjectService{tx: tx, repos: repos, logger: logger.With("module", "projects")}
}

func (s *ProjectService) Create(ctx context.Context, id *auth.Identity, name, description string) (*models.Project, error) {
	if err := requireRole(ctx, s.logger, id, access.ResourceProjects, access.ActionCreate); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: project name is required", common.ErrorValidation)
	}

	p, err := s.repos.Projects(s.tx.Conn()).Create(ctx, &models.Project{
		Name:        name,
		Description: description,
		CreatedBy:   id.PrincipalID,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating project: %w", err)
	}
	s.logger.Info(ctx, "project created", "project_id", p.ID, "by", id.PrincipalID)
	return p, nil
}

// Assign places a principal on a project. The project role must match the
// principal's own role and may not be administrator.
func (s *ProjectService) Assign(ctx context.Context, id *auth.Identity, projectID, principalID string, role access.Role) error {
	if err := requireRole(ctx, s.logger, id, access.ResourceProjects, access.ActionAssign); err != nil {
		return err
	}
	if role != access.RoleProducer && role != access.RoleVerifier {
		return fmt.Errorf("%w: only producers and verifiers are assigned to projects", common.ErrorValidation)
	}

	return s.tx.WithinTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.repos.Projects(tx).Get(ctx, projectID); err != nil {
			return err
		}
		p, err := s.repos.Principals(tx).GetByID(ctx, principalID)
		if err != nil {
			return err
		}
		if p.Role != role {
			return fmt.Errorf("%w: %s holds role %s", common.ErrorValidation, p.Username, p.Role)
		}
		if err := s.repos.Projects(tx).Assign(ctx, projectID, principalID, role); err != nil {
			return err
		}
		s.logger.Info(ctx, "principal assigned", "project_id", projectID, "principal_id", principalID, "role", role.String())
		return nil
	})
}

// ListMine returns every project for administrators and the assigned ones
// for everybody else.
func (s *ProjectService) ListMine(ctx context.Context, id *auth.Identity) ([]*models.Project, error) {
	if err := requireRole(ctx, s.logger, id, access.ResourceProjects, access.ActionRead); err != nil {
		return nil, err
	}
	repo := s.repos.Projects(s.tx.Conn())
	if id.Role == access.RoleAdministrator {
		return repo.List(ctx)
	}
	return repo.ListForPrincipal(ctx, id.PrincipalID)
}

func (s *ProjectService) Get(ctx context.Context, id *auth.Identity, projectID string) (*models.Project, error) {
	if err := requireRole(ctx, s.logger, id, access.ResourceProjects, access.ActionRead); err != nil {
		return nil, err
	}
	if _, err := membership(ctx, s.repos, s.tx.Conn(), id, projectID); err != nil {
		return nil, err
	}
	return s.repos.Projects(s.tx.Conn()).Get(ctx, projectID)
}

func requireRole(ctx context.Context, logger logging.Logger, id *auth.Identity, res access.Resource, act access.Action) error {
	if err := access.Require(id.Role, res, act); err != nil {
		logger.Warn(ctx, "access denied", "principal_id", id.PrincipalID, "reason", err.Error())
		return err
	}
	return nil
}

// membership returns the caller's assignment on the project. Administrators
// pass without one and get a nil assignment.
func membership(ctx context.Context, repos repomanager.RepositoryManager, db dbx.DBTX, id *auth.Identity, projectID string) (*models.ProjectAssignment, error) {
	if id.Role == access.RoleAdministrator {
		if _, err := repos.Projects(db).Get(ctx, projectID); err != nil {
			return nil, err
		}
		return nil, nil
	}
	a, err := repos.Projects(db).Assignment(ctx, projectID, id.PrincipalID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("%w: not assigned to project", common.ErrAuthorizationDenied)
		}
		return nil, err
	}
	return a, nil
}
