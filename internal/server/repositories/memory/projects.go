package memory

import (
	"context"
	"sort"

	"github.com/dmitrijs2005/verischol/internal/common"
	"github.com/dmitrijs2005/verischol/internal/server/access"
	"github.com/dmitrijs2005/verischol/internal/server/models"
)

type projectRepo struct {
	s  *Store
	tx bool
}

func (r *projectRepo) Create(_ context.Context, p *models.Project) (*models.Project, error) {
	defer r.s.lock(r.tx)()

	p.ID = r.s.newID()
	p.CreatedAt = r.s.now()
	r.s.data.projects[p.ID] = *p
	return p, nil
}

func (r *projectRepo) Get(_ context.Context, id string) (*models.Project, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.data.projects[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &p, nil
}

func (r *projectRepo) List(_ context.Context) ([]*models.Project, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	result := make([]*models.Project, 0, len(r.s.data.projects))
	for _, p := range r.s.data.projects {
		result = append(result, &p)
	}
	sortProjects(result)
	return result, nil
}

func (r *projectRepo) ListForPrincipal(_ context.Context, principalID string) ([]*models.Project, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var result []*models.Project
	for _, a := range r.s.data.assignments {
		if a.PrincipalID != principalID {
			continue
		}
		if p, ok := r.s.data.projects[a.ProjectID]; ok {
			result = append(result, &p)
		}
	}
	sortProjects(result)
	return result, nil
}

func (r *projectRepo) Assign(_ context.Context, projectID, principalID string, role access.Role) error {
	defer r.s.lock(r.tx)()

	if _, ok := r.s.data.projects[projectID]; !ok {
		return common.ErrorNotFound
	}
	if _, ok := r.s.data.principals[principalID]; !ok {
		return common.ErrorNotFound
	}
	for i, a := range r.s.data.assignments {
		if a.ProjectID == projectID && a.PrincipalID == principalID {
			a.Role = role
			r.s.data.assignments[i] = a
			return nil
		}
	}
	r.s.data.assignments = append(r.s.data.assignments, models.ProjectAssignment{
		ProjectID:   projectID,
		PrincipalID: principalID,
		Role:        role,
		CreatedAt:   r.s.now(),
	})
	return nil
}

func (r *projectRepo) Assignment(_ context.Context, projectID, principalID string) (*models.ProjectAssignment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, a := range r.s.data.assignments {
		if a.ProjectID == projectID && a.PrincipalID == principalID {
			return &a, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *projectRepo) ClearMismatchedAssignments(_ context.Context, principalID string, role access.Role) (int64, error) {
	defer r.s.lock(r.tx)()

	var removed int64
	kept := r.s.data.assignments[:0:0]
	for _, a := range r.s.data.assignments {
		if a.PrincipalID == principalID && a.Role != role {
			removed++
			continue
		}
		kept = append(kept, a)
	}
	r.s.data.assignments = kept
	return removed, nil
}

func (r *projectRepo) VerifierOf(_ context.Context, projectID string) (string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, a := range r.s.data.assignments {
		if a.ProjectID == projectID && a.Role == access.RoleVerifier {
			return a.PrincipalID, nil
		}
	}
	return "", common.ErrorNotFound
}

func sortProjects(ps []*models.Project) {
	sort.SliceStable(ps, func(i, j int) bool { return ps[i].CreatedAt.Before(ps[j].CreatedAt) })
}
