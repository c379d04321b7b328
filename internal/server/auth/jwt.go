// Package auth issues and validates the signed session tokens handed out
// after a successful second-factor login, and carries the authenticated
// identity through request contexts.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/verischol/internal/common"
	"github.com/dmitrijs2005/verischol/internal/server/access"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Identity is the authenticated caller of a request.
type Identity struct {
	PrincipalID string
	Email       string
	Role        access.Role
}

// Claims are the registered JWT claims plus the caller's identity.
type Claims struct {
	jwt.RegisteredClaims
	PrincipalID string `json:"pid"`
	Email       string `json:"email"`
	Role        string `json:"role"`
}

// GenerateToken signs an HS256 token for id that expires after validity.
func GenerateToken(id Identity, secretKey []byte, validity time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   id.PrincipalID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validity)),
		},
		PrincipalID: id.PrincipalID,
		Email:       id.Email,
		Role:        id.Role.String(),
	})

	return token.SignedString(secretKey)
}

// ParseToken validates tokenString and returns the identity it carries.
// Expired tokens yield common.ErrTokenExpired, anything else wrong with the
// token yields common.ErrInvalidToken.
func ParseToken(tokenString string, secretKey []byte) (*Identity, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid || claims.PrincipalID == "" {
		return nil, common.ErrInvalidToken
	}

	role, err := access.ParseRole(claims.Role)
	if err != nil {
		return nil, common.ErrInvalidToken
	}

	return &Identity{PrincipalID: claims.PrincipalID, Email: claims.Email, Role: role}, nil
}
