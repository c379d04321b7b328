package grpc

import (
	"errors"

	"github.com/dmitrijs2005/verischol/internal/common"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// toStatus maps service errors onto gRPC status codes. Unknown errors are
// reported as internal without their text.
func toStatus(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, common.ErrAuthenticationFailure):
		return status.Error(codes.Unauthenticated, common.ErrAuthenticationFailure.Error())
	case errors.Is(err, common.ErrOtpInvalidOrExpired):
		return status.Error(codes.Unauthenticated, common.ErrOtpInvalidOrExpired.Error())
	case errors.Is(err, common.ErrOtpAlreadyUsed):
		return status.Error(codes.Unauthenticated, common.ErrOtpAlreadyUsed.Error())
	case errors.Is(err, common.ErrTokenExpired), errors.Is(err, common.ErrInvalidToken):
		return status.Error(codes.Unauthenticated, err.Error())
	case errors.Is(err, common.ErrAuthorizationDenied):
		return status.Error(codes.PermissionDenied, err.Error())
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, "not found")
	case errors.Is(err, common.ErrorAlreadyExists):
		return status.Error(codes.AlreadyExists, "already exists")
	case errors.Is(err, common.ErrorValidation):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrIntegrityFailure):
		return status.Error(codes.DataLoss, common.ErrIntegrityFailure.Error())
	}
	return status.Error(codes.Internal, "internal error")
}
