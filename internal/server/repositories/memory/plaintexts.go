package memory

import (
	"context"

	"github.com/dmitrijs2005/verischol/internal/common"
	"github.com/dmitrijs2005/verischol/internal/server/models"
)

type plaintextRepo struct {
	s  *Store
	tx bool
}

func (r *plaintextRepo) Put(_ context.Context, recordID string, content []byte) error {
	defer r.s.lock(r.tx)()

	if _, ok := r.s.data.records[recordID]; !ok {
		return common.ErrorNotFound
	}
	r.s.data.plaintexts[recordID] = models.RetainedPlaintext{
		RecordID:  recordID,
		Content:   cloneBytes(content),
		UpdatedAt: r.s.now(),
	}
	return nil
}

func (r *plaintextRepo) Drop(_ context.Context, recordID string) error {
	defer r.s.lock(r.tx)()

	delete(r.s.data.plaintexts, recordID)
	return nil
}

func (r *plaintextRepo) Get(_ context.Context, recordID string) (*models.RetainedPlaintext, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.data.plaintexts[recordID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	p.Content = cloneBytes(p.Content)
	return &p, nil
}
