// Package server wires storage, the cryptographic core and the services
// together and runs the gRPC endpoint until the process is signalled.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/verischol/internal/cryptox"
	"github.com/dmitrijs2005/verischol/internal/dbx"
	"github.com/dmitrijs2005/verischol/internal/logging"
	"github.com/dmitrijs2005/verischol/internal/server/config"
	"github.com/dmitrijs2005/verischol/internal/server/debugcopy"
	"github.com/dmitrijs2005/verischol/internal/server/ledger"
	"github.com/dmitrijs2005/verischol/internal/server/mfa"
	"github.com/dmitrijs2005/verischol/internal/server/repositories/memory"
	"github.com/dmitrijs2005/verischol/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/verischol/internal/server/services"

	gs "github.com/dmitrijs2005/verischol/internal/server/grpc"
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	db       *sql.DB
	identity *services.IdentityService
	projects *services.ProjectService
	records  *services.RecordService
	reports  *services.ReportService
}

// storage opens the configured backend and returns it ready for use.
func storage(ctx context.Context, c *config.Config, logger logging.Logger) (dbx.Transactor, repomanager.RepositoryManager, *sql.DB, error) {
	if c.InMemory {
		logger.Warn(ctx, "using in-memory storage, state is lost on exit")
		store := memory.NewStore()
		return memory.NewTransactor(store), memory.NewManager(store), nil, nil
	}

	db, err := repomanager.Open(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("db init error: %w", err)
	}

	m := repomanager.NewPostgresRepositoryManager()
	if err := m.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, nil, nil, fmt.Errorf("migration error: %w", err)
	}

	return dbx.NewSQLTransactor(db), m, db, nil
}

func NewApp(c *config.Config) (*App, error) {

	logger := logging.NewJSONLogger(os.Stdout, slog.LevelInfo)
	ctx := context.Background()

	custody, err := cryptox.NewKeyCustody(cryptox.ScryptParams{CostLog2: c.KDFCostLog2, R: 8, P: 1})
	if err != nil {
		return nil, fmt.Errorf("key custody: %w", err)
	}

	tx, repos, db, err := storage(ctx, c, logger)
	if err != nil {
		return nil, err
	}

	keys := services.NewKeyRing(custody, c.KDFConcurrency)
	session := mfa.NewSession(tx, repos, []byte(c.SecretKey), c.OTPValidityDuration, c.SessionTokenValidityDuration, logger)
	l := ledger.New(tx, repos, []byte(c.SystemSalt), logger)
	debug := debugcopy.New(c.DebugRetainPlaintext, tx, repos, logger)

	if c.DemoOTP {
		logger.Warn(ctx, "one-time codes are echoed in login responses")
	}

	return &App{
		config:   c,
		logger:   logger,
		db:       db,
		identity: services.NewIdentityService(tx, repos, keys, session, services.NewLogCodeSender(logger), logger).WithDemoCode(c.DemoOTP),
		projects: services.NewProjectService(tx, repos, logger),
		records:  services.NewRecordService(tx, repos, keys, l, debug, logger),
		reports:  services.NewReportService(tx, repos, c, logger),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {

	limiter := gs.NewRateLimiter(app.config.OTPRedeemRate, app.config.OTPRedeemBurst)

	s, err := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.config.SecretKey, limiter,
		app.identity, app.projects, app.records, app.reports)

	if err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	} else {

		if err := s.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error(ctx, "closing database", "error", err.Error())
		}
	}
	app.logger.Info(ctx, "App stopped")
}
