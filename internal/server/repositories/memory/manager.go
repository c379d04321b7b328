package memory

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/verischol/internal/dbx"
	"github.com/dmitrijs2005/verischol/internal/server/repositories/audit"
	"github.com/dmitrijs2005/verischol/internal/server/repositories/otp"
	"github.com/dmitrijs2005/verischol/internal/server/repositories/plaintexts"
	"github.com/dmitrijs2005/verischol/internal/server/repositories/principals"
	"github.com/dmitrijs2005/verischol/internal/server/repositories/projects"
	"github.com/dmitrijs2005/verischol/internal/server/repositories/records"
	"github.com/dmitrijs2005/verischol/internal/server/repositories/stats"
)

// Manager vends repositories that all share one Store. The DBTX argument of
// each factory only tells whether the repository runs inside WithinTx.
type Manager struct {
	store *Store
}

func NewManager(s *Store) *Manager {
	return &Manager{store: s}
}

func (m *Manager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (m *Manager) Principals(db dbx.DBTX) principals.Repository {
	return &principalRepo{s: m.store, tx: inTx(db)}
}
func (m *Manager) Records(db dbx.DBTX) records.Repository {
	return &recordRepo{s: m.store, tx: inTx(db)}
}
func (m *Manager) Audit(db dbx.DBTX) audit.Repository { return &auditRepo{s: m.store, tx: inTx(db)} }
func (m *Manager) OTP(db dbx.DBTX) otp.Repository     { return &otpRepo{s: m.store, tx: inTx(db)} }
func (m *Manager) Projects(db dbx.DBTX) projects.Repository {
	return &projectRepo{s: m.store, tx: inTx(db)}
}
func (m *Manager) Plaintexts(db dbx.DBTX) plaintexts.Repository {
	return &plaintextRepo{s: m.store, tx: inTx(db)}
}
func (m *Manager) Stats(dbx.DBTX) stats.Repository { return &statsRepo{s: m.store} }
