// Package models defines server-side data models persisted in the database.
package models

import (
	"time"

	"github.com/dmitrijs2005/verischol/internal/server/access"
)

// Principal is a registered party. The private key is only ever stored
// sealed under the principal's password.
type Principal struct {
	ID               string
	Username         string
	Email            string
	PasswordHash     []byte
	Role             access.Role
	PublicKey        string
	SealedPrivateKey string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
