package memory

import (
	"context"
	"sort"

	"github.com/dmitrijs2005/verischol/internal/common"
	"github.com/dmitrijs2005/verischol/internal/server/access"
	"github.com/dmitrijs2005/verischol/internal/server/models"
)

type principalRepo struct {
	s  *Store
	tx bool
}

func (r *principalRepo) Create(_ context.Context, p *models.Principal) (*models.Principal, error) {
	defer r.s.lock(r.tx)()

	for _, existing := range r.s.data.principals {
		if existing.Email == p.Email || existing.Username == p.Username {
			return nil, common.ErrorAlreadyExists
		}
	}
	now := r.s.now()
	p.ID = r.s.newID()
	p.CreatedAt, p.UpdatedAt = now, now

	stored := *p
	stored.PasswordHash = cloneBytes(p.PasswordHash)
	r.s.data.principals[p.ID] = stored
	return p, nil
}

func (r *principalRepo) GetByID(_ context.Context, id string) (*models.Principal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.data.principals[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return copyPrincipal(p), nil
}

func (r *principalRepo) GetByEmail(_ context.Context, email string) (*models.Principal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, p := range r.s.data.principals {
		if p.Email == email {
			return copyPrincipal(p), nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *principalRepo) Exists(_ context.Context, email, username string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, p := range r.s.data.principals {
		if p.Email == email || p.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *principalRepo) List(_ context.Context) ([]*models.Principal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	result := make([]*models.Principal, 0, len(r.s.data.principals))
	for _, p := range r.s.data.principals {
		result = append(result, copyPrincipal(p))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Username < result[j].Username })
	return result, nil
}

func (r *principalRepo) UpdateRole(_ context.Context, id string, role access.Role) error {
	defer r.s.lock(r.tx)()

	p, ok := r.s.data.principals[id]
	if !ok {
		return common.ErrorNotFound
	}
	p.Role = role
	p.UpdatedAt = r.s.now()
	r.s.data.principals[id] = p
	return nil
}

func (r *principalRepo) UpdateCredentials(_ context.Context, id string, passwordHash []byte, sealedPrivateKey string) error {
	defer r.s.lock(r.tx)()

	p, ok := r.s.data.principals[id]
	if !ok {
		return common.ErrorNotFound
	}
	p.PasswordHash = cloneBytes(passwordHash)
	p.SealedPrivateKey = sealedPrivateKey
	p.UpdatedAt = r.s.now()
	r.s.data.principals[id] = p
	return nil
}

func copyPrincipal(p models.Principal) *models.Principal {
	p.PasswordHash = cloneBytes(p.PasswordHash)
	return &p
}
