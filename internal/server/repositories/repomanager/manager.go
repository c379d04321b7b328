package repomanager

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

// RepositoryManager vends repositories bound to a handle obtained from a
// dbx.Transactor, so one service call can use several of them inside the same
// transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Principals(db dbx.DBTX) principals.Repository
	Records(db dbx.DBTX) records.Repository
	Audit(db dbx.DBTX) audit.Repository
	OTP(db dbx.DBTX) otp.Repository
	Projects(db dbx.DBTX) projects.Repository
	Plaintexts(db dbx.DBTX) plaintexts.Repository
	Stats(db dbx.DBTX) stats.Repository
}
