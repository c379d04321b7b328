package client

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/verischol/internal/api"
	"github.com/dmitrijs2005/verischol/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type fakeAPI struct {
	api.VeriScholClient

	lastLogin   *api.LoginRequest
	lastVerify  *api.VerifyOTPRequest
	lastUpload  *api.UploadRecordRequest
	lastRead    *api.ReadRecordRequest
	lastAssign  *api.AssignToProjectRequest
	verifyResp  *api.VerifyOTPResponse
	readResp    *api.ReadRecordResponse
	auditResp   *api.AuditTrailResponse
	logResp     *api.ListAuditLogResponse
	lastLog     *api.ListAuditLogRequest
	err         error
	pingCalls   int
	deleteCalls int
}

func (f *fakeAPI) Ping(ctx context.Context, in *api.PingRequest, opts ...grpc.CallOption) (*api.PingResponse, error) {
	f.pingCalls++
	if f.err != nil {
		return nil, f.err
	}
	return &api.PingResponse{Status: "ok"}, nil
}

func (f *fakeAPI) Login(ctx context.Context, in *api.LoginRequest, opts ...grpc.CallOption) (*api.LoginResponse, error) {
	f.lastLogin = in
	if f.err != nil {
		return nil, f.err
	}
	return &api.LoginResponse{PrincipalID: "p1", SentTo: "a***@x.org", DemoCode: "123456"}, nil
}

func (f *fakeAPI) VerifyOTP(ctx context.Context, in *api.VerifyOTPRequest, opts ...grpc.CallOption) (*api.VerifyOTPResponse, error) {
	f.lastVerify = in
	if f.err != nil {
		return nil, f.err
	}
	return f.verifyResp, nil
}

func (f *fakeAPI) UploadRecord(ctx context.Context, in *api.UploadRecordRequest, opts ...grpc.CallOption) (*api.RecordResponse, error) {
	f.lastUpload = in
	if f.err != nil {
		return nil, f.err
	}
	return &api.RecordResponse{Record: api.Record{ID: "r1", ProjectID: in.ProjectID, Title: in.Title, Status: "pending"}}, nil
}

func (f *fakeAPI) ReadRecord(ctx context.Context, in *api.ReadRecordRequest, opts ...grpc.CallOption) (*api.ReadRecordResponse, error) {
	f.lastRead = in
	if f.err != nil {
		return nil, f.err
	}
	return f.readResp, nil
}

func (f *fakeAPI) AssignToProject(ctx context.Context, in *api.AssignToProjectRequest, opts ...grpc.CallOption) (*api.AssignToProjectResponse, error) {
	f.lastAssign = in
	if f.err != nil {
		return nil, f.err
	}
	return &api.AssignToProjectResponse{}, nil
}

func (f *fakeAPI) AuditTrail(ctx context.Context, in *api.AuditTrailRequest, opts ...grpc.CallOption) (*api.AuditTrailResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.auditResp, nil
}

func (f *fakeAPI) ListAuditLog(ctx context.Context, in *api.ListAuditLogRequest, opts ...grpc.CallOption) (*api.ListAuditLogResponse, error) {
	f.lastLog = in
	if f.err != nil {
		return nil, f.err
	}
	return f.logResp, nil
}

func (f *fakeAPI) SystemStats(ctx context.Context, in *api.SystemStatsRequest, opts ...grpc.CallOption) (*api.SystemStatsResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &api.SystemStatsResponse{Stats: api.SystemStats{Principals: 4, CorruptedRecords: 1}}, nil
}

func (f *fakeAPI) DeleteRecord(ctx context.Context, in *api.DeleteRecordRequest, opts ...grpc.CallOption) (*api.DeleteRecordResponse, error) {
	f.deleteCalls++
	if f.err != nil {
		return nil, f.err
	}
	return &api.DeleteRecordResponse{}, nil
}

func TestGRPCClient_Ping(t *testing.T) {
	f := &fakeAPI{}
	c := NewFromAPI(f)

	require.NoError(t, c.Ping(context.Background()))
	assert.Equal(t, 1, f.pingCalls)

	f.err = status.Error(codes.Unavailable, "connection refused")
	assert.ErrorIs(t, c.Ping(context.Background()), ErrUnavailable)
}

func TestGRPCClient_LoginAndVerifyStoresToken(t *testing.T) {
	f := &fakeAPI{verifyResp: &api.VerifyOTPResponse{AccessToken: "tok", Principal: api.Principal{ID: "p1"}}}
	c := NewFromAPI(f)

	ch, err := c.Login(context.Background(), "alice@x.org", "pw")
	require.NoError(t, err)
	assert.Equal(t, "alice@x.org", f.lastLogin.Email)
	assert.Equal(t, "123456", ch.DemoCode)

	assert.Empty(t, c.AccessToken())
	resp, err := c.VerifyOTP(context.Background(), ch.PrincipalID, ch.DemoCode)
	require.NoError(t, err)
	assert.Equal(t, "p1", f.lastVerify.PrincipalID)
	assert.Equal(t, "123456", f.lastVerify.Code)
	assert.Equal(t, "p1", resp.Principal.ID)
	assert.Equal(t, "tok", c.AccessToken())
}

func TestGRPCClient_VerifyOTPFailureKeepsToken(t *testing.T) {
	f := &fakeAPI{err: status.Error(codes.Unauthenticated, common.ErrOtpAlreadyUsed.Error())}
	c := NewFromAPI(f)
	c.SetAccessToken("old")

	_, err := c.VerifyOTP(context.Background(), "p1", "000000")
	assert.ErrorIs(t, err, common.ErrOtpAlreadyUsed)
	assert.Equal(t, "old", c.AccessToken())
}

func TestGRPCClient_RequestsCarryArguments(t *testing.T) {
	f := &fakeAPI{
		readResp:  &api.ReadRecordResponse{Content: []byte("X")},
		auditResp: &api.AuditTrailResponse{Entries: []api.AuditEntry{{Action: "upload"}, {Action: "verify"}}},
	}
	c := NewFromAPI(f)
	ctx := context.Background()

	rec, err := c.UploadRecord(ctx, "proj", "t", "d", []byte("X"))
	require.NoError(t, err)
	assert.Equal(t, "r1", rec.ID)
	assert.Equal(t, []byte("X"), f.lastUpload.Content)

	content, err := c.ReadRecord(ctx, "r1", "pw")
	require.NoError(t, err)
	assert.Equal(t, []byte("X"), content)
	assert.Equal(t, "pw", f.lastRead.Password)

	require.NoError(t, c.AssignToProject(ctx, "proj", "p2", "verifier"))
	assert.Equal(t, &api.AssignToProjectRequest{ProjectID: "proj", PrincipalID: "p2", Role: "verifier"}, f.lastAssign)

	entries, err := c.AuditTrail(ctx, "r1")
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	require.NoError(t, c.DeleteRecord(ctx, "r1"))
	assert.Equal(t, 1, f.deleteCalls)
}

func TestGRPCClient_ProjectAuditLogAndStats(t *testing.T) {
	f := &fakeAPI{
		logResp: &api.ListAuditLogResponse{Entries: []api.AuditEntry{{Action: "upload"}, {Action: "delete"}}},
	}
	c := NewFromAPI(f)
	ctx := context.Background()

	entries, err := c.ListAuditLog(ctx, "proj")
	require.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.Equal(t, "proj", f.lastLog.ProjectID)

	st, err := c.SystemStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), st.Principals)
	assert.Equal(t, int64(1), st.CorruptedRecords)

	f.err = status.Error(codes.PermissionDenied, "denied")
	_, err = c.SystemStats(ctx)
	require.ErrorIs(t, err, common.ErrAuthorizationDenied)
	_, err = c.ListAuditLog(ctx, "proj")
	require.ErrorIs(t, err, common.ErrAuthorizationDenied)
}

func TestGRPCClient_MapError(t *testing.T) {
	c := NewFromAPI(&fakeAPI{})

	tests := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"bad credentials", status.Error(codes.Unauthenticated, "authentication failure"), common.ErrAuthenticationFailure},
		{"otp expired", status.Error(codes.Unauthenticated, common.ErrOtpInvalidOrExpired.Error()), common.ErrOtpInvalidOrExpired},
		{"otp used", status.Error(codes.Unauthenticated, common.ErrOtpAlreadyUsed.Error()), common.ErrOtpAlreadyUsed},
		{"token expired", status.Error(codes.Unauthenticated, "token expired: exp"), common.ErrTokenExpired},
		{"missing token", status.Error(codes.Unauthenticated, "missing token"), common.ErrInvalidToken},
		{"denied", status.Error(codes.PermissionDenied, "nope"), common.ErrAuthorizationDenied},
		{"not found", status.Error(codes.NotFound, "not found"), common.ErrorNotFound},
		{"exists", status.Error(codes.AlreadyExists, "already exists"), common.ErrorAlreadyExists},
		{"invalid", status.Error(codes.InvalidArgument, "bad"), common.ErrorValidation},
		{"tampered", status.Error(codes.DataLoss, "integrity failure"), common.ErrIntegrityFailure},
		{"throttled", status.Error(codes.ResourceExhausted, "slow down"), ErrRateLimited},
		{"deadline", status.Error(codes.DeadlineExceeded, "late"), ErrUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.mapError(tt.in)
			if tt.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.want)
		})
	}

	plain := errors.New("plain")
	assert.Same(t, plain, c.mapError(plain))

	internal := c.mapError(status.Error(codes.Internal, "internal error"))
	assert.Contains(t, internal.Error(), "internal error")
}

func TestAccessTokenInterceptor(t *testing.T) {
	c := NewFromAPI(&fakeAPI{})

	var seen metadata.MD
	invoker := func(ctx context.Context, method string, req, reply interface{}, cc *grpc.ClientConn, opts ...grpc.CallOption) error {
		seen, _ = metadata.FromOutgoingContext(ctx)
		return nil
	}

	require.NoError(t, c.accessTokenInterceptor(context.Background(), api.MethodPing, nil, nil, nil, invoker))
	assert.Empty(t, seen.Get(common.AccessTokenHeaderName))

	c.SetAccessToken("tok")
	ctx := metadata.AppendToOutgoingContext(context.Background(), "x-trace", "1")
	require.NoError(t, c.accessTokenInterceptor(ctx, api.MethodProfile, nil, nil, nil, invoker))
	assert.Equal(t, []string{"tok"}, seen.Get(common.AccessTokenHeaderName))
	assert.Equal(t, []string{"1"}, seen.Get("x-trace"))
}

func TestNewVeriScholClient(t *testing.T) {
	c, err := NewVeriScholClient("127.0.0.1:1")
	require.NoError(t, err)
	require.NotNil(t, c.client)
	require.NoError(t, c.Close())

	assert.NoError(t, NewFromAPI(&fakeAPI{}).Close())
}
