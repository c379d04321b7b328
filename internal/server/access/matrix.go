// Package access holds the static capability matrix that answers which role
// may perform which action on which kind of resource. It carries no state;
// record-level ownership and project assignment are checked by the services
// on top of it.
package access

import (
	"fmt"

	"github.com/dmitrijs2005/verischol/internal/common"
)

// Role is the single role a principal holds.
type Role int

const (
	RoleUnknown Role = iota
	RoleProducer
	RoleVerifier
	RoleAdministrator
)

var roleNames = map[Role]string{
	RoleProducer:      "producer",
	RoleVerifier:      "verifier",
	RoleAdministrator: "administrator",
}

func (r Role) String() string {
	if s, ok := roleNames[r]; ok {
		return s
	}
	return "unknown"
}

// Valid reports whether r is one of the defined roles.
func (r Role) Valid() bool {
	_, ok := roleNames[r]
	return ok
}

// ParseRole maps a stored or transmitted role name to a Role.
func ParseRole(s string) (Role, error) {
	for r, name := range roleNames {
		if name == s {
			return r, nil
		}
	}
	return RoleUnknown, fmt.Errorf("%w: unknown role %q", common.ErrorValidation, s)
}

// Resource is a kind of object guarded by the matrix.
type Resource int

const (
	ResourceProjects Resource = iota + 1
	ResourceRecords
	ResourceAuditLog
	ResourceSystemSettings
)

func (r Resource) String() string {
	switch r {
	case ResourceProjects:
		return "projects"
	case ResourceRecords:
		return "records"
	case ResourceAuditLog:
		return "audit_log"
	case ResourceSystemSettings:
		return "system_settings"
	}
	return "unknown"
}

// Action is an operation on a resource.
type Action int

const (
	ActionRead Action = iota + 1
	ActionCreate
	ActionUpdate
	ActionDelete
	ActionAssign
	ActionVerify
	ActionSimulateAttack
)

func (a Action) String() string {
	switch a {
	case ActionRead:
		return "read"
	case ActionCreate:
		return "create"
	case ActionUpdate:
		return "update"
	case ActionDelete:
		return "delete"
	case ActionAssign:
		return "assign"
	case ActionVerify:
		return "verify"
	case ActionSimulateAttack:
		return "simulate_attack"
	}
	return "unknown"
}

type actionSet map[Action]struct{}

func allow(actions ...Action) actionSet {
	s := make(actionSet, len(actions))
	for _, a := range actions {
		s[a] = struct{}{}
	}
	return s
}

var matrix = map[Role]map[Resource]actionSet{
	RoleProducer: {
		ResourceProjects: allow(ActionRead),
		ResourceRecords:  allow(ActionCreate, ActionRead, ActionUpdate, ActionDelete),
	},
	RoleVerifier: {
		ResourceProjects: allow(ActionRead),
		ResourceRecords:  allow(ActionRead, ActionVerify, ActionSimulateAttack),
		ResourceAuditLog: allow(ActionRead),
	},
	RoleAdministrator: {
		ResourceProjects:       allow(ActionRead, ActionCreate, ActionUpdate, ActionDelete, ActionAssign),
		ResourceRecords:        allow(ActionRead, ActionDelete),
		ResourceAuditLog:       allow(ActionRead),
		ResourceSystemSettings: allow(ActionRead, ActionCreate, ActionUpdate, ActionDelete, ActionAssign),
	},
}

// Authorize reports whether role may perform action on resource.
func Authorize(role Role, resource Resource, action Action) bool {
	_, ok := matrix[role][resource][action]
	return ok
}

// Require is Authorize returning common.ErrAuthorizationDenied on refusal.
func Require(role Role, resource Resource, action Action) error {
	if !Authorize(role, resource, action) {
		return fmt.Errorf("%w: %s cannot %s %s", common.ErrAuthorizationDenied, role, action, resource)
	}
	return nil
}
