// Package memory holds in-process implementations of every repository. They
// back the service tests and the server's -memory mode. Writes inside
// Transactor.WithinTx are rolled back when the callback fails. Writes made
// through any other handle wait for the running transaction to finish, so a
// rollback never discards them.
package memory

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/verischol/internal/dbx"
	"github.com/dmitrijs2005/verischol/internal/server/models"
	"github.com/google/uuid"
)

var errNoSQL = errors.New("memory handle does not execute SQL")

// handle satisfies dbx.DBTX so memory repositories can be vended through the
// same RepositoryManager interface as the SQL ones. It never runs queries.
type handle struct {
	tx bool
}

func inTx(db dbx.DBTX) bool {
	h, ok := db.(handle)
	return ok && h.tx
}

func (handle) ExecContext(context.Context, string, ...any) (sql.Result, error) {
	return nil, errNoSQL
}

func (handle) QueryContext(context.Context, string, ...any) (*sql.Rows, error) {
	return nil, errNoSQL
}

func (handle) QueryRowContext(context.Context, string, ...any) *sql.Row {
	return nil
}

type state struct {
	principals  map[string]models.Principal
	records     map[string]models.SealedRecord
	retired     map[string]models.SealedRecord
	audit       []models.AuditEntry
	otps        []models.OneTimeCode
	projects    map[string]models.Project
	assignments []models.ProjectAssignment
	plaintexts  map[string]models.RetainedPlaintext
}

func newState() state {
	return state{
		principals: map[string]models.Principal{},
		records:    map[string]models.SealedRecord{},
		retired:    map[string]models.SealedRecord{},
		projects:   map[string]models.Project{},
		plaintexts: map[string]models.RetainedPlaintext{},
	}
}

// clone copies the containers. Stored values are treated as immutable, so a
// shallow copy of each is enough to restore them later.
func (s state) clone() state {
	return state{
		principals:  maps.Clone(s.principals),
		records:     maps.Clone(s.records),
		retired:     maps.Clone(s.retired),
		audit:       slices.Clone(s.audit),
		otps:        slices.Clone(s.otps),
		projects:    maps.Clone(s.projects),
		assignments: slices.Clone(s.assignments),
		plaintexts:  maps.Clone(s.plaintexts),
	}
}

// Store is the shared in-memory database.
type Store struct {
	// txMu is held for a whole transaction and for every write outside one.
	txMu sync.Mutex
	mu   sync.Mutex
	data state
	now  func() time.Time
}

func NewStore() *Store {
	return &Store{data: newState(), now: time.Now}
}

// lock guards one repository write. Inside a transaction the caller already
// holds txMu.
func (s *Store) lock(tx bool) func() {
	if tx {
		s.mu.Lock()
		return s.mu.Unlock
	}
	s.txMu.Lock()
	s.mu.Lock()
	return func() {
		s.mu.Unlock()
		s.txMu.Unlock()
	}
}

func (s *Store) newID() string {
	return uuid.NewString()
}

// Transactor serializes transactions over a Store and restores the previous
// contents when a transaction fails.
type Transactor struct {
	store *Store
}

func NewTransactor(s *Store) *Transactor {
	return &Transactor{store: s}
}

func (t *Transactor) Conn() dbx.DBTX {
	return handle{}
}

func (t *Transactor) WithinTx(ctx context.Context, fn func(ctx context.Context, tx dbx.DBTX) error) (err error) {
	t.store.txMu.Lock()
	defer t.store.txMu.Unlock()

	t.store.mu.Lock()
	snapshot := t.store.data.clone()
	t.store.mu.Unlock()

	defer func() {
		p := recover()
		if p != nil || err != nil {
			t.store.mu.Lock()
			t.store.data = snapshot
			t.store.mu.Unlock()
		}
		if p != nil {
			panic(p)
		}
	}()

	return fn(ctx, handle{tx: true})
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	return bytes.Clone(b)
}
