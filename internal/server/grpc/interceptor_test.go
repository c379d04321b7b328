package grpc

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/verischol/internal/api"
	"github.com/dmitrijs2005/verischol/internal/common"
	"github.com/dmitrijs2005/verischol/internal/logging"
	"github.com/dmitrijs2005/verischol/internal/server/access"
	"github.com/dmitrijs2005/verischol/internal/server/auth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

func newTestServer(secret string) *GRPCServer {
	return &GRPCServer{
		logger:    logging.Discard(),
		jwtSecret: []byte(secret),
		limiter:   NewRateLimiter(0, 2),
	}
}

func TestInterceptor_PublicMethodWithoutToken(t *testing.T) {
	s := newTestServer("secret")

	info := &grpc.UnaryServerInfo{FullMethod: api.MethodLogin}
	handlerCalled := false

	h := func(ctx context.Context, req interface{}) (interface{}, error) {
		handlerCalled = true
		return "ok", nil
	}

	resp, err := s.accessTokenInterceptor(context.Background(), nil, info, h)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !handlerCalled || resp != "ok" {
		t.Fatalf("handler not called properly: %v", resp)
	}
}

func TestInterceptor_MissingToken(t *testing.T) {
	s := newTestServer("secret")
	info := &grpc.UnaryServerInfo{FullMethod: api.MethodReadRecord}

	h := func(ctx context.Context, req interface{}) (interface{}, error) {
		t.Fatal("handler should not be called when token missing")
		return nil, nil
	}

	_, err := s.accessTokenInterceptor(context.Background(), nil, info, h)
	if status.Code(err) != codes.Unauthenticated {
		t.Fatalf("expected Unauthenticated, got %v", status.Code(err))
	}
	if status.Convert(err).Message() != "missing token" {
		t.Fatalf("expected 'missing token', got %q", status.Convert(err).Message())
	}
}

func TestInterceptor_InvalidToken(t *testing.T) {
	s := newTestServer("secret")

	md := metadata.New(map[string]string{common.AccessTokenHeaderName: "not-a-valid-jwt"})
	ctx := metadata.NewIncomingContext(context.Background(), md)
	info := &grpc.UnaryServerInfo{FullMethod: api.MethodReadRecord}

	h := func(ctx context.Context, req interface{}) (interface{}, error) {
		t.Fatal("handler should not be called for invalid token")
		return nil, nil
	}

	_, err := s.accessTokenInterceptor(ctx, nil, info, h)
	if status.Code(err) != codes.Unauthenticated {
		t.Fatalf("expected Unauthenticated, got %v", status.Code(err))
	}
}

func TestInterceptor_ValidToken_SetsIdentity(t *testing.T) {
	secret := "super-secret"
	s := newTestServer(secret)

	token, err := auth.GenerateToken(auth.Identity{PrincipalID: "p-1", Email: "a@b.c", Role: access.RoleVerifier}, []byte(secret), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	md := metadata.New(map[string]string{common.AccessTokenHeaderName: token})
	ctx := metadata.NewIncomingContext(context.Background(), md)
	info := &grpc.UnaryServerInfo{FullMethod: api.MethodVerifyRecord}

	var got *auth.Identity
	h := func(ctx context.Context, req interface{}) (interface{}, error) {
		got, _ = auth.IdentityFromContext(ctx)
		return "ok", nil
	}

	if _, err := s.accessTokenInterceptor(ctx, nil, info, h); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || got.PrincipalID != "p-1" || got.Role != access.RoleVerifier {
		t.Fatalf("identity not propagated: %+v", got)
	}
}

func TestRateLimitInterceptor(t *testing.T) {
	s := newTestServer("secret")
	info := &grpc.UnaryServerInfo{FullMethod: api.MethodLogin}
	h := func(ctx context.Context, req interface{}) (interface{}, error) { return "ok", nil }

	req := &api.LoginRequest{Email: "a@example.com"}
	for i := 0; i < 2; i++ {
		if _, err := s.rateLimitInterceptor(context.Background(), req, info, h); err != nil {
			t.Fatalf("attempt %d: unexpected error %v", i, err)
		}
	}

	_, err := s.rateLimitInterceptor(context.Background(), &api.LoginRequest{Email: " A@example.com"}, info, h)
	if status.Code(err) != codes.ResourceExhausted {
		t.Fatalf("expected ResourceExhausted, got %v", status.Code(err))
	}

	if _, err := s.rateLimitInterceptor(context.Background(), &api.LoginRequest{Email: "b@example.com"}, info, h); err != nil {
		t.Fatalf("other email should not be throttled: %v", err)
	}

	otpInfo := &grpc.UnaryServerInfo{FullMethod: api.MethodVerifyOTP}
	for i := 0; i < 2; i++ {
		if _, err := s.rateLimitInterceptor(context.Background(), &api.VerifyOTPRequest{PrincipalID: "p"}, otpInfo, h); err != nil {
			t.Fatalf("otp attempt %d: %v", i, err)
		}
	}
	_, err = s.rateLimitInterceptor(context.Background(), &api.VerifyOTPRequest{PrincipalID: "p"}, otpInfo, h)
	if status.Code(err) != codes.ResourceExhausted {
		t.Fatalf("expected ResourceExhausted, got %v", status.Code(err))
	}

	// other requests are never throttled
	for i := 0; i < 5; i++ {
		if _, err := s.rateLimitInterceptor(context.Background(), &api.PingRequest{}, &grpc.UnaryServerInfo{FullMethod: api.MethodPing}, h); err != nil {
			t.Fatalf("ping throttled: %v", err)
		}
	}
}
