package cli

import (
	"context"

	"github.com/dmitrijs2005/verischol/internal/api"
	"github.com/dmitrijs2005/verischol/internal/client/repositories/sessions"
)

// Client is the part of client.GRPCClient the commands use.
type Client interface {
	SetAccessToken(token string)
	Close() error

	Ping(ctx context.Context) error
	Register(ctx context.Context, username, email, password, role string) (*api.Principal, error)
	Login(ctx context.Context, email, password string) (*api.LoginResponse, error)
	VerifyOTP(ctx context.Context, principalID, code string) (*api.VerifyOTPResponse, error)
	Profile(ctx context.Context) (*api.Principal, error)
	ChangePassword(ctx context.Context, oldPassword, newPassword string) error
	ListPrincipals(ctx context.Context) ([]api.Principal, error)
	ChangeRole(ctx context.Context, principalID, role string) error

	CreateProject(ctx context.Context, name, description string) (*api.Project, error)
	AssignToProject(ctx context.Context, projectID, principalID, role string) error
	ListProjects(ctx context.Context) ([]api.Project, error)
	GetProject(ctx context.Context, projectID string) (*api.Project, error)

	UploadRecord(ctx context.Context, projectID, title, description string, content []byte) (*api.Record, error)
	UpdateRecord(ctx context.Context, recordID, title, description string, content []byte) (*api.Record, error)
	GetRecord(ctx context.Context, recordID string) (*api.Record, error)
	ListRecords(ctx context.Context, projectID string) ([]api.Record, error)
	ReadRecord(ctx context.Context, recordID, password string) ([]byte, error)
	VerifyRecord(ctx context.Context, recordID, password string) (*api.Verdict, error)
	SimulateAttack(ctx context.Context, recordID string) error
	DeleteRecord(ctx context.Context, recordID string) error
	AuditTrail(ctx context.Context, recordID string) ([]api.AuditEntry, error)
	ListAuditLog(ctx context.Context, projectID string) ([]api.AuditEntry, error)
	SystemStats(ctx context.Context) (*api.SystemStats, error)
	ExportReport(ctx context.Context, projectID string) (*api.ExportReportResponse, error)
	ReadRetained(ctx context.Context, recordID string) ([]byte, error)
}

// SessionStore keeps the signed-in session per server endpoint.
type SessionStore interface {
	Load(ctx context.Context, endpoint string) (*sessions.Session, error)
	Save(ctx context.Context, endpoint, principalID, email, role, token string) error
	Clear(ctx context.Context, endpoint string) error
	Close() error
}
