package models

import (
	"encoding/json"
	"time"
)

// AuditAction is the kind of event recorded in the audit trail.
type AuditAction string

const (
	ActionUpload          AuditAction = "upload"
	ActionUpdate          AuditAction = "update"
	ActionVerify          AuditAction = "verify"
	ActionSimulatedAttack AuditAction = "simulated_attack"
	ActionDelete          AuditAction = "delete"
)

// AuditEntry is an append-only event about a record. Only the
// Verified* fields of the latest upload/update entry are ever written after
// insertion.
type AuditEntry struct {
	ID                 string
	RecordID           string
	ActorID            *string
	Action             AuditAction
	Result             string
	Details            json.RawMessage
	VerifiedBy         *string
	VerificationStatus *RecordStatus
	VerifiedAt         *time.Time
	CreatedAt          time.Time
}
