package grpc

import (
	"context"
	"net"
	"time"

	"github.com/dmitrijs2005/verischol/internal/api"
	"github.com/dmitrijs2005/verischol/internal/logging"
	"github.com/dmitrijs2005/verischol/internal/server/access"
	"github.com/dmitrijs2005/verischol/internal/server/auth"
	"github.com/dmitrijs2005/verischol/internal/server/ledger"
	"github.com/dmitrijs2005/verischol/internal/server/models"
	"github.com/dmitrijs2005/verischol/internal/server/services"
	"google.golang.org/grpc"
)

type identityService interface {
	Register(ctx context.Context, username, email, password string, role access.Role) (*models.Principal, error)
	Login(ctx context.Context, email, password string) (*services.LoginChallenge, error)
	VerifyOTP(ctx context.Context, principalID, code string) (string, *models.Principal, error)
	Profile(ctx context.Context, id *auth.Identity) (*models.Principal, error)
	ListPrincipals(ctx context.Context, id *auth.Identity) ([]*models.Principal, error)
	ChangeRole(ctx context.Context, id *auth.Identity, principalID string, role access.Role) error
	ChangePassword(ctx context.Context, id *auth.Identity, oldPassword, newPassword string) error
}

type projectService interface {
	Create(ctx context.Context, id *auth.Identity, name, description string) (*models.Project, error)
	Assign(ctx context.Context, id *auth.Identity, projectID, principalID string, role access.Role) error
	ListMine(ctx context.Context, id *auth.Identity) ([]*models.Project, error)
	Get(ctx context.Context, id *auth.Identity, projectID string) (*models.Project, error)
}

type recordService interface {
	Upload(ctx context.Context, id *auth.Identity, projectID string, in services.RecordContent) (*models.SealedRecord, error)
	Update(ctx context.Context, id *auth.Identity, recordID string, in services.RecordContent) (*models.SealedRecord, error)
	Get(ctx context.Context, id *auth.Identity, recordID string) (*models.SealedRecord, error)
	List(ctx context.Context, id *auth.Identity, projectID string) ([]*models.SealedRecord, error)
	Read(ctx context.Context, id *auth.Identity, recordID, password string) ([]byte, error)
	Verify(ctx context.Context, id *auth.Identity, recordID, password string) (*ledger.Verdict, error)
	SimulateAttack(ctx context.Context, id *auth.Identity, recordID string) error
	Delete(ctx context.Context, id *auth.Identity, recordID string) error
	AuditTrail(ctx context.Context, id *auth.Identity, recordID string) ([]*models.AuditEntry, error)
	ProjectAuditLog(ctx context.Context, id *auth.Identity, projectID string) ([]*models.AuditEntry, error)
	ReadRetained(ctx context.Context, id *auth.Identity, recordID string) ([]byte, error)
}

type reportService interface {
	ExportProjectReport(ctx context.Context, id *auth.Identity, projectID string) (*services.ExportedReport, error)
	SystemStats(ctx context.Context, id *auth.Identity) (*models.SystemStats, error)
}

// limiterIdle is how long an untouched rate-limit bucket is kept.
const limiterIdle = 10 * time.Minute

type GRPCServer struct {
	api.UnimplementedVeriScholServer
	address   string
	identity  identityService
	projects  projectService
	records   recordService
	reports   reportService
	limiter   *RateLimiter
	logger    logging.Logger
	jwtSecret []byte
}

func NewGRPCServer(a string, l logging.Logger, secretKey string, limiter *RateLimiter,
	is identityService, ps projectService, rs recordService, reps reportService) (*GRPCServer, error) {
	return &GRPCServer{
		address:   a,
		logger:    l.With("module", "grpc_server"),
		identity:  is,
		projects:  ps,
		records:   rs,
		reports:   reps,
		limiter:   limiter,
		jwtSecret: []byte(secretKey),
	}, nil
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve runs the server on an existing listener until ctx is cancelled.
func (s *GRPCServer) Serve(ctx context.Context, listen net.Listener) error {

	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.rateLimitInterceptor, s.accessTokenInterceptor))
	api.RegisterVeriScholServer(srv, s)

	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				s.logger.Info(ctx, "Stopping gRPC server...")
				srv.GracefulStop()
				return
			case <-ticker.C:
				if s.limiter != nil {
					s.limiter.Forget(limiterIdle)
				}
			}
		}
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
