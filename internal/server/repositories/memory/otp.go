package memory

import (
	"context"
	"time"

	"github.com/dmitrijs2005/verischol/internal/common"
	"github.com/dmitrijs2005/verischol/internal/server/models"
)

type otpRepo struct {
	s  *Store
	tx bool
}

func (r *otpRepo) Supersede(_ context.Context, principalID string) error {
	defer r.s.lock(r.tx)()

	for i, c := range r.s.data.otps {
		if c.PrincipalID == principalID && c.State == models.OTPIssued {
			c.State = models.OTPSuperseded
			r.s.data.otps[i] = c
		}
	}
	return nil
}

func (r *otpRepo) Create(_ context.Context, c *models.OneTimeCode) (*models.OneTimeCode, error) {
	defer r.s.lock(r.tx)()

	for _, existing := range r.s.data.otps {
		if existing.PrincipalID == c.PrincipalID && existing.State == models.OTPIssued {
			return nil, common.ErrorAlreadyExists
		}
	}
	c.ID = r.s.newID()
	c.State = models.OTPIssued
	c.ConsumedAt = nil
	c.CreatedAt = r.s.now()
	r.s.data.otps = append(r.s.data.otps, *c)
	return c, nil
}

func (r *otpRepo) Latest(_ context.Context, principalID string) (*models.OneTimeCode, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i := len(r.s.data.otps) - 1; i >= 0; i-- {
		c := r.s.data.otps[i]
		if c.PrincipalID == principalID && c.State != models.OTPSuperseded {
			return &c, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *otpRepo) MarkVerified(_ context.Context, id string, at time.Time) (bool, error) {
	defer r.s.lock(r.tx)()

	for i, c := range r.s.data.otps {
		if c.ID != id {
			continue
		}
		if c.State != models.OTPIssued {
			return false, nil
		}
		c.State = models.OTPVerified
		c.ConsumedAt = &at
		r.s.data.otps[i] = c
		return true, nil
	}
	return false, nil
}
