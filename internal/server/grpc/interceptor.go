package grpc

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/verischol/internal/api"
	"github.com/dmitrijs2005/verischol/internal/common"
	"github.com/dmitrijs2005/verischol/internal/server/auth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// publicMethods are served without a session token.
var publicMethods = map[string]bool{
	api.MethodPing:      true,
	api.MethodRegister:  true,
	api.MethodLogin:     true,
	api.MethodVerifyOTP: true,
}

func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {

	if publicMethods[info.FullMethod] {
		return handler(ctx, req)
	}

	var accessToken string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		values := md.Get(common.AccessTokenHeaderName)
		if len(values) > 0 {
			accessToken = values[0]
		}
	}
	if len(accessToken) == 0 {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	id, err := auth.ParseToken(accessToken, s.jwtSecret)
	if err != nil {
		return nil, toStatus(err)
	}

	return handler(auth.WithIdentity(ctx, id), req)
}

// rateLimitInterceptor throttles the two credential-guessing surfaces: login
// per email and code redemption per principal.
func (s *GRPCServer) rateLimitInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {

	var key string
	switch r := req.(type) {
	case *api.LoginRequest:
		key = "login:" + strings.ToLower(strings.TrimSpace(r.Email))
	case *api.VerifyOTPRequest:
		key = "otp:" + r.PrincipalID
	default:
		return handler(ctx, req)
	}

	if s.limiter != nil && !s.limiter.Allow(key) {
		s.logger.Warn(ctx, "rate limit exceeded", "method", info.FullMethod)
		return nil, status.Error(codes.ResourceExhausted, "too many attempts, retry later")
	}
	return handler(ctx, req)
}

func identityFrom(ctx context.Context) (*auth.Identity, error) {
	id, ok := auth.IdentityFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "missing identity")
	}
	return id, nil
}
