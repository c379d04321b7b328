package memory

import (
	"context"

	"github.com/dmitrijs2005/verischol/internal/server/access"
	"github.com/dmitrijs2005/verischol/internal/server/models"
)

type statsRepo struct {
	s *Store
}

func (r *statsRepo) Collect(_ context.Context) (*models.SystemStats, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	st := &models.SystemStats{
		Principals:   int64(len(r.s.data.principals)),
		Projects:     int64(len(r.s.data.projects)),
		Records:      int64(len(r.s.data.records)),
		AuditEntries: int64(len(r.s.data.audit)),
	}
	for _, p := range r.s.data.principals {
		switch p.Role {
		case access.RoleProducer:
			st.Producers++
		case access.RoleVerifier:
			st.Verifiers++
		case access.RoleAdministrator:
			st.Administrators++
		}
	}
	for _, rec := range r.s.data.records {
		switch rec.Status {
		case models.StatusPending:
			st.PendingRecords++
		case models.StatusVerified:
			st.VerifiedRecords++
		case models.StatusCorrupted:
			st.CorruptedRecords++
		}
	}
	return st, nil
}
