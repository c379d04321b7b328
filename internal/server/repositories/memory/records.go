package memory

import (
	"context"
	"sort"
	"time"

	"github.com/dmitrijs2005/verischol/internal/common"
	"github.com/dmitrijs2005/verischol/internal/server/models"
)

type recordRepo struct {
	s  *Store
	tx bool
}

func (r *recordRepo) Create(_ context.Context, rec *models.SealedRecord) (*models.SealedRecord, error) {
	defer r.s.lock(r.tx)()

	if _, ok := r.s.data.projects[rec.ProjectID]; !ok {
		return nil, common.ErrorNotFound
	}
	now := r.s.now()
	rec.ID = r.s.newID()
	rec.Status = models.StatusPending
	rec.LastVerifiedBy, rec.LastVerifiedAt = nil, nil
	rec.CreatedAt, rec.UpdatedAt = now, now

	r.s.data.records[rec.ID] = *copyRecord(*rec)
	return rec, nil
}

func (r *recordRepo) Get(_ context.Context, id string) (*models.SealedRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rec, ok := r.s.data.records[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return copyRecord(rec), nil
}

// GetForUpdate relies on Transactor serializing transactions.
func (r *recordRepo) GetForUpdate(ctx context.Context, id string) (*models.SealedRecord, error) {
	return r.Get(ctx, id)
}

func (r *recordRepo) ListByProject(_ context.Context, projectID string) ([]*models.SealedRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var result []*models.SealedRecord
	for _, rec := range r.s.data.records {
		if rec.ProjectID == projectID {
			result = append(result, copyRecord(rec))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].UpdatedAt.After(result[j].UpdatedAt) })
	return result, nil
}

func (r *recordRepo) ReplaceContent(_ context.Context, rec *models.SealedRecord) error {
	defer r.s.lock(r.tx)()

	cur, ok := r.s.data.records[rec.ID]
	if !ok {
		return common.ErrorNotFound
	}
	cur.Title = rec.Title
	cur.Description = rec.Description
	cur.RecipientID = rec.RecipientID
	cur.Ciphertext = cloneBytes(rec.Ciphertext)
	cur.IV = cloneBytes(rec.IV)
	cur.AuthTag = cloneBytes(rec.AuthTag)
	cur.WrappedKey = cloneBytes(rec.WrappedKey)
	cur.Digest = rec.Digest
	cur.Status = models.StatusPending
	cur.LastVerifiedBy, cur.LastVerifiedAt = nil, nil
	cur.UpdatedAt = r.s.now()
	r.s.data.records[rec.ID] = cur
	return nil
}

func (r *recordRepo) SetVerification(_ context.Context, id string, status models.RecordStatus, verifierID string, at time.Time) error {
	defer r.s.lock(r.tx)()

	cur, ok := r.s.data.records[id]
	if !ok {
		return common.ErrorNotFound
	}
	cur.Status = status
	cur.LastVerifiedBy = &verifierID
	cur.LastVerifiedAt = &at
	r.s.data.records[id] = cur
	return nil
}

func (r *recordRepo) OverwriteCiphertext(_ context.Context, id string, ciphertext []byte) error {
	defer r.s.lock(r.tx)()

	cur, ok := r.s.data.records[id]
	if !ok {
		return common.ErrorNotFound
	}
	cur.Ciphertext = cloneBytes(ciphertext)
	r.s.data.records[id] = cur
	return nil
}

// Delete moves the record out of sight. Audit entries keep pointing at it
// and ListByProject still finds them.
func (r *recordRepo) Delete(_ context.Context, id string) error {
	defer r.s.lock(r.tx)()

	rec, ok := r.s.data.records[id]
	if !ok {
		return common.ErrorNotFound
	}
	delete(r.s.data.records, id)
	r.s.data.retired[id] = rec
	return nil
}

func copyRecord(rec models.SealedRecord) *models.SealedRecord {
	rec.Ciphertext = cloneBytes(rec.Ciphertext)
	rec.IV = cloneBytes(rec.IV)
	rec.AuthTag = cloneBytes(rec.AuthTag)
	rec.WrappedKey = cloneBytes(rec.WrappedKey)
	if rec.LastVerifiedBy != nil {
		v := *rec.LastVerifiedBy
		rec.LastVerifiedBy = &v
	}
	if rec.LastVerifiedAt != nil {
		v := *rec.LastVerifiedAt
		rec.LastVerifiedAt = &v
	}
	return &rec
}
