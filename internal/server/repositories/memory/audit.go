package memory

import (
	"context"
	"encoding/json"
	"time"

	"github.com/dmitrijs2005/verischol/internal/common"
	"github.com/dmitrijs2005/verischol/internal/server/models"
)

type auditRepo struct {
	s  *Store
	tx bool
}

func (r *auditRepo) Append(_ context.Context, e *models.AuditEntry) (*models.AuditEntry, error) {
	defer r.s.lock(r.tx)()

	if _, ok := r.s.data.records[e.RecordID]; !ok {
		return nil, common.ErrorNotFound
	}
	if len(e.Details) == 0 {
		e.Details = json.RawMessage(`{}`)
	}
	e.ID = r.s.newID()
	e.CreatedAt = r.s.now()

	stored := *e
	stored.Details = cloneBytes(e.Details)
	r.s.data.audit = append(r.s.data.audit, stored)
	return e, nil
}

func (r *auditRepo) AttachVerification(_ context.Context, recordID, verifierID string, status models.RecordStatus, at time.Time) error {
	defer r.s.lock(r.tx)()

	for i := len(r.s.data.audit) - 1; i >= 0; i-- {
		e := r.s.data.audit[i]
		if e.RecordID != recordID {
			continue
		}
		if e.Action != models.ActionUpload && e.Action != models.ActionUpdate {
			continue
		}
		st := status
		e.VerifiedBy = &verifierID
		e.VerificationStatus = &st
		e.VerifiedAt = &at
		r.s.data.audit[i] = e
		return nil
	}
	return common.ErrorNotFound
}

func (r *auditRepo) ListByRecord(_ context.Context, recordID string) ([]*models.AuditEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var result []*models.AuditEntry
	for _, e := range r.s.data.audit {
		if e.RecordID == recordID {
			result = append(result, copyEntry(e))
		}
	}
	return result, nil
}

func (r *auditRepo) ListByProject(_ context.Context, projectID string) ([]*models.AuditEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var result []*models.AuditEntry
	for _, e := range r.s.data.audit {
		rec, ok := r.s.data.records[e.RecordID]
		if !ok {
			rec, ok = r.s.data.retired[e.RecordID]
		}
		if ok && rec.ProjectID == projectID {
			result = append(result, copyEntry(e))
		}
	}
	return result, nil
}

func copyEntry(e models.AuditEntry) *models.AuditEntry {
	e.Details = cloneBytes(e.Details)
	return &e
}
