package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/verischol/internal/api"
	"github.com/dmitrijs2005/verischol/internal/client/repositories/sessions"
	"github.com/fatih/color"
)

type fakeClient struct {
	Client

	addr   string
	token  string
	closed bool
	err    error

	loginEmail, loginPassword string
	otpCode                   string
	registered                *api.RegisterRequest
	changedPassword           [2]string
	uploaded                  *api.UploadRecordRequest
	gotPassword               string

	verdict  *api.Verdict
	content  []byte
	projects []api.Project
	entries  []api.AuditEntry
	stats    *api.SystemStats

	auditProject string
}

func (f *fakeClient) SetAccessToken(token string) { f.token = token }
func (f *fakeClient) Close() error                { f.closed = true; return nil }

func (f *fakeClient) Ping(ctx context.Context) error { return f.err }

func (f *fakeClient) Register(ctx context.Context, username, email, password, role string) (*api.Principal, error) {
	f.registered = &api.RegisterRequest{Username: username, Email: email, Password: password, Role: role}
	if f.err != nil {
		return nil, f.err
	}
	return &api.Principal{ID: "p1", Username: username, Email: email, Role: role}, nil
}

func (f *fakeClient) Login(ctx context.Context, email, password string) (*api.LoginResponse, error) {
	f.loginEmail, f.loginPassword = email, password
	if f.err != nil {
		return nil, f.err
	}
	return &api.LoginResponse{
		PrincipalID: "p1",
		SentTo:      "a***@lab.org",
		ExpiresAt:   time.Now().Add(5 * time.Minute),
		DemoCode:    "424242",
	}, nil
}

func (f *fakeClient) VerifyOTP(ctx context.Context, principalID, code string) (*api.VerifyOTPResponse, error) {
	f.otpCode = code
	return &api.VerifyOTPResponse{
		AccessToken: "fresh-token",
		Principal:   api.Principal{ID: principalID, Username: "alice", Email: "alice@lab.org", Role: "producer"},
	}, nil
}

func (f *fakeClient) Profile(ctx context.Context) (*api.Principal, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &api.Principal{ID: "p1", Username: "alice", Email: "alice@lab.org", Role: "producer"}, nil
}

func (f *fakeClient) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	f.changedPassword = [2]string{oldPassword, newPassword}
	return f.err
}

func (f *fakeClient) ListProjects(ctx context.Context) ([]api.Project, error) {
	return f.projects, f.err
}

func (f *fakeClient) UploadRecord(ctx context.Context, projectID, title, description string, content []byte) (*api.Record, error) {
	f.uploaded = &api.UploadRecordRequest{ProjectID: projectID, Title: title, Description: description, Content: content}
	if f.err != nil {
		return nil, f.err
	}
	return &api.Record{ID: "r1", ProjectID: projectID, Title: title, Status: "pending", Digest: "d1gest"}, nil
}

func (f *fakeClient) ReadRecord(ctx context.Context, recordID, password string) ([]byte, error) {
	f.gotPassword = password
	return f.content, f.err
}

func (f *fakeClient) VerifyRecord(ctx context.Context, recordID, password string) (*api.Verdict, error) {
	f.gotPassword = password
	return f.verdict, f.err
}

func (f *fakeClient) AuditTrail(ctx context.Context, recordID string) ([]api.AuditEntry, error) {
	return f.entries, f.err
}

func (f *fakeClient) ListAuditLog(ctx context.Context, projectID string) ([]api.AuditEntry, error) {
	f.auditProject = projectID
	return f.entries, f.err
}

func (f *fakeClient) SystemStats(ctx context.Context) (*api.SystemStats, error) {
	return f.stats, f.err
}

func (f *fakeClient) ExportReport(ctx context.Context, projectID string) (*api.ExportReportResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &api.ExportReportResponse{
		Key: "reports/" + projectID + "/r.json",
		URL: "https://s3.local/bucket/reports/" + projectID + "/r.json",
	}, nil
}

type fakeStore struct {
	path     string
	sessions map[string]*sessions.Session
	closed   bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{sessions: map[string]*sessions.Session{}}
}

func (s *fakeStore) Load(ctx context.Context, endpoint string) (*sessions.Session, error) {
	return s.sessions[endpoint], nil
}

func (s *fakeStore) Save(ctx context.Context, endpoint, principalID, email, role, token string) error {
	s.sessions[endpoint] = &sessions.Session{
		Endpoint: endpoint, PrincipalID: principalID, Email: email, Role: role, AccessToken: token,
	}
	return nil
}

func (s *fakeStore) Clear(ctx context.Context, endpoint string) error {
	delete(s.sessions, endpoint)
	return nil
}

func (s *fakeStore) Close() error { s.closed = true; return nil }

// run executes the command line against the fakes with stdin as piped input.
func run(t *testing.T, f *fakeClient, st *fakeStore, env map[string]string, stdin string, args ...string) (string, error) {
	t.Helper()

	resetState()
	oldDial, oldOpen, oldEnv, oldTTY, oldColor := dialClient, openSessionStore, lookupEnv, isTerminal, color.NoColor
	t.Cleanup(func() {
		resetState()
		dialClient, openSessionStore, lookupEnv, isTerminal, color.NoColor = oldDial, oldOpen, oldEnv, oldTTY, oldColor
	})

	dialClient = func(addr string) (Client, error) {
		f.addr = addr
		return f, nil
	}
	openSessionStore = func(ctx context.Context, path string) (SessionStore, error) {
		st.path = path
		return st, nil
	}
	lookupEnv = func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}
	isTerminal = func(int) bool { return false }
	color.NoColor = true

	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetErr(&out)
	RootCmd.SetIn(strings.NewReader(stdin))
	RootCmd.SetArgs(args)

	err := Execute(context.Background())
	return out.String(), err
}
