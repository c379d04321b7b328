package models

import (
	"time"

	"github.com/dmitrijs2005/verischol/internal/server/access"
)

// Project groups records and the principals allowed to work on them.
type Project struct {
	ID          string
	Name        string
	Description string
	CreatedBy   string
	CreatedAt   time.Time
}

// ProjectAssignment places a principal on a project with a role inside it.
// The project's verifier assignment decides whose public key wraps new
// records.
type ProjectAssignment struct {
	ProjectID   string
	PrincipalID string
	Role        access.Role
	CreatedAt   time.Time
}
