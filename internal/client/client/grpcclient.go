package client

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/verischol/internal/api"
	"github.com/dmitrijs2005/verischol/internal/common"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      api.VeriScholClient

	mu          sync.RWMutex
	accessToken string
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.AccessTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {

	if token := s.AccessToken(); token != "" {
		ctx = withAccessToken(ctx, token)
	}

	return invoker(ctx, method, req, reply, cc, opts...)
}

// NewVeriScholClient dials endpointURL. The connection is established lazily
// on the first call.
func NewVeriScholClient(endpointURL string) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}

	conn, err := grpc.NewClient(endpointURL,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(c.accessTokenInterceptor),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(api.CodecName)),
	)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	c.client = api.NewVeriScholClient(conn)
	return c, nil
}

// NewFromAPI wraps an existing service client, typically a fake in tests.
func NewFromAPI(c api.VeriScholClient) *GRPCClient {
	return &GRPCClient{client: c}
}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func (s *GRPCClient) SetAccessToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = token
}

func (s *GRPCClient) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	switch st.Code() {
	case codes.Unauthenticated:
		msg := st.Message()
		switch {
		case msg == common.ErrOtpAlreadyUsed.Error():
			return common.ErrOtpAlreadyUsed
		case msg == common.ErrOtpInvalidOrExpired.Error():
			return common.ErrOtpInvalidOrExpired
		case strings.Contains(msg, common.ErrTokenExpired.Error()):
			return common.ErrTokenExpired
		case strings.Contains(msg, common.ErrInvalidToken.Error()), strings.HasPrefix(msg, "missing"):
			return common.ErrInvalidToken
		}
		return common.ErrAuthenticationFailure
	case codes.PermissionDenied:
		return fmt.Errorf("%w: %s", common.ErrAuthorizationDenied, st.Message())
	case codes.NotFound:
		return common.ErrorNotFound
	case codes.AlreadyExists:
		return common.ErrorAlreadyExists
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", common.ErrorValidation, st.Message())
	case codes.DataLoss:
		return common.ErrIntegrityFailure
	case codes.ResourceExhausted:
		return ErrRateLimited
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	_, err := s.client.Ping(ctx, &api.PingRequest{})
	return s.mapError(err)
}

func (s *GRPCClient) Register(ctx context.Context, username, email, password, role string) (*api.Principal, error) {
	resp, err := s.client.Register(ctx, &api.RegisterRequest{Username: username, Email: email, Password: password, Role: role})
	if err != nil {
		return nil, s.mapError(err)
	}
	return &resp.Principal, nil
}

func (s *GRPCClient) Login(ctx context.Context, email, password string) (*api.LoginResponse, error) {
	resp, err := s.client.Login(ctx, &api.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

// VerifyOTP redeems a one-time code. On success the returned token is used
// for every following call.
func (s *GRPCClient) VerifyOTP(ctx context.Context, principalID, code string) (*api.VerifyOTPResponse, error) {
	resp, err := s.client.VerifyOTP(ctx, &api.VerifyOTPRequest{PrincipalID: principalID, Code: code})
	if err != nil {
		return nil, s.mapError(err)
	}
	s.SetAccessToken(resp.AccessToken)
	return resp, nil
}

func (s *GRPCClient) Profile(ctx context.Context) (*api.Principal, error) {
	resp, err := s.client.Profile(ctx, &api.ProfileRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return &resp.Principal, nil
}

func (s *GRPCClient) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	_, err := s.client.ChangePassword(ctx, &api.ChangePasswordRequest{OldPassword: oldPassword, NewPassword: newPassword})
	return s.mapError(err)
}

func (s *GRPCClient) ListPrincipals(ctx context.Context) ([]api.Principal, error) {
	resp, err := s.client.ListPrincipals(ctx, &api.ListPrincipalsRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Principals, nil
}

func (s *GRPCClient) ChangeRole(ctx context.Context, principalID, role string) error {
	_, err := s.client.ChangeRole(ctx, &api.ChangeRoleRequest{PrincipalID: principalID, Role: role})
	return s.mapError(err)
}

func (s *GRPCClient) CreateProject(ctx context.Context, name, description string) (*api.Project, error) {
	resp, err := s.client.CreateProject(ctx, &api.CreateProjectRequest{Name: name, Description: description})
	if err != nil {
		return nil, s.mapError(err)
	}
	return &resp.Project, nil
}

func (s *GRPCClient) AssignToProject(ctx context.Context, projectID, principalID, role string) error {
	_, err := s.client.AssignToProject(ctx, &api.AssignToProjectRequest{ProjectID: projectID, PrincipalID: principalID, Role: role})
	return s.mapError(err)
}

func (s *GRPCClient) ListProjects(ctx context.Context) ([]api.Project, error) {
	resp, err := s.client.ListProjects(ctx, &api.ListProjectsRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Projects, nil
}

func (s *GRPCClient) GetProject(ctx context.Context, projectID string) (*api.Project, error) {
	resp, err := s.client.GetProject(ctx, &api.GetProjectRequest{ProjectID: projectID})
	if err != nil {
		return nil, s.mapError(err)
	}
	return &resp.Project, nil
}

func (s *GRPCClient) UploadRecord(ctx context.Context, projectID, title, description string, content []byte) (*api.Record, error) {
	resp, err := s.client.UploadRecord(ctx, &api.UploadRecordRequest{
		ProjectID: projectID, Title: title, Description: description, Content: content,
	})
	if err != nil {
		return nil, s.mapError(err)
	}
	return &resp.Record, nil
}

func (s *GRPCClient) UpdateRecord(ctx context.Context, recordID, title, description string, content []byte) (*api.Record, error) {
	resp, err := s.client.UpdateRecord(ctx, &api.UpdateRecordRequest{
		RecordID: recordID, Title: title, Description: description, Content: content,
	})
	if err != nil {
		return nil, s.mapError(err)
	}
	return &resp.Record, nil
}

func (s *GRPCClient) GetRecord(ctx context.Context, recordID string) (*api.Record, error) {
	resp, err := s.client.GetRecord(ctx, &api.GetRecordRequest{RecordID: recordID})
	if err != nil {
		return nil, s.mapError(err)
	}
	return &resp.Record, nil
}

func (s *GRPCClient) ListRecords(ctx context.Context, projectID string) ([]api.Record, error) {
	resp, err := s.client.ListRecords(ctx, &api.ListRecordsRequest{ProjectID: projectID})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Records, nil
}

func (s *GRPCClient) ReadRecord(ctx context.Context, recordID, password string) ([]byte, error) {
	resp, err := s.client.ReadRecord(ctx, &api.ReadRecordRequest{RecordID: recordID, Password: password})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Content, nil
}

func (s *GRPCClient) VerifyRecord(ctx context.Context, recordID, password string) (*api.Verdict, error) {
	resp, err := s.client.VerifyRecord(ctx, &api.VerifyRecordRequest{RecordID: recordID, Password: password})
	if err != nil {
		return nil, s.mapError(err)
	}
	return &resp.Verdict, nil
}

func (s *GRPCClient) SimulateAttack(ctx context.Context, recordID string) error {
	_, err := s.client.SimulateAttack(ctx, &api.SimulateAttackRequest{RecordID: recordID})
	return s.mapError(err)
}

func (s *GRPCClient) DeleteRecord(ctx context.Context, recordID string) error {
	_, err := s.client.DeleteRecord(ctx, &api.DeleteRecordRequest{RecordID: recordID})
	return s.mapError(err)
}

func (s *GRPCClient) AuditTrail(ctx context.Context, recordID string) ([]api.AuditEntry, error) {
	resp, err := s.client.AuditTrail(ctx, &api.AuditTrailRequest{RecordID: recordID})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Entries, nil
}

// ListAuditLog returns the trail of every record in a project, deleted
// records included.
func (s *GRPCClient) ListAuditLog(ctx context.Context, projectID string) ([]api.AuditEntry, error) {
	resp, err := s.client.ListAuditLog(ctx, &api.ListAuditLogRequest{ProjectID: projectID})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Entries, nil
}

func (s *GRPCClient) SystemStats(ctx context.Context) (*api.SystemStats, error) {
	resp, err := s.client.SystemStats(ctx, &api.SystemStatsRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return &resp.Stats, nil
}

func (s *GRPCClient) ExportReport(ctx context.Context, projectID string) (*api.ExportReportResponse, error) {
	resp, err := s.client.ExportReport(ctx, &api.ExportReportRequest{ProjectID: projectID})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) ReadRetained(ctx context.Context, recordID string) ([]byte, error) {
	resp, err := s.client.ReadRetained(ctx, &api.ReadRetainedRequest{RecordID: recordID})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Content, nil
}
