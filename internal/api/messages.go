package api

import (
	"encoding/json"
	"time"
)

type Principal struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	PublicKey string    `json:"public_key,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// Record is record metadata together with its sealed envelope. Nothing in it
// is readable without the recipient's private key.
type Record struct {
	ID             string     `json:"id"`
	ProjectID      string     `json:"project_id"`
	ProducerID     string     `json:"producer_id"`
	RecipientID    string     `json:"recipient_id"`
	Title          string     `json:"title"`
	Description    string     `json:"description,omitempty"`
	Ciphertext     []byte     `json:"ciphertext,omitempty"`
	IV             []byte     `json:"iv,omitempty"`
	AuthTag        []byte     `json:"auth_tag,omitempty"`
	WrappedKey     []byte     `json:"wrapped_key,omitempty"`
	Digest         string     `json:"digest"`
	Status         string     `json:"status"`
	LastVerifiedBy string     `json:"last_verified_by,omitempty"`
	LastVerifiedAt *time.Time `json:"last_verified_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

type Verdict struct {
	RecordID      string    `json:"record_id"`
	Status        string    `json:"status"`
	StoredDigest  string    `json:"stored_digest"`
	CurrentDigest string    `json:"current_digest"`
	Match         bool      `json:"match"`
	VerifiedBy    string    `json:"verified_by"`
	VerifiedAt    time.Time `json:"verified_at"`
}

type AuditEntry struct {
	ID                 string          `json:"id"`
	RecordID           string          `json:"record_id"`
	ActorID            string          `json:"actor_id,omitempty"`
	Action             string          `json:"action"`
	Result             string          `json:"result"`
	Details            json.RawMessage `json:"details,omitempty"`
	VerifiedBy         string          `json:"verified_by,omitempty"`
	VerificationStatus string          `json:"verification_status,omitempty"`
	VerifiedAt         *time.Time      `json:"verified_at,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
}

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type RegisterResponse struct {
	Principal Principal `json:"principal"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse acknowledges the password step. DemoCode is only filled in
// when the server runs with demo codes enabled.
type LoginResponse struct {
	PrincipalID string    `json:"principal_id"`
	SentTo      string    `json:"sent_to"`
	ExpiresAt   time.Time `json:"expires_at"`
	DemoCode    string    `json:"demo_code,omitempty"`
}

type VerifyOTPRequest struct {
	PrincipalID string `json:"principal_id"`
	Code        string `json:"code"`
}

type VerifyOTPResponse struct {
	AccessToken string    `json:"access_token"`
	Principal   Principal `json:"principal"`
}

type ProfileRequest struct{}

type ProfileResponse struct {
	Principal Principal `json:"principal"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

type ChangePasswordResponse struct{}

type ListPrincipalsRequest struct{}

type ListPrincipalsResponse struct {
	Principals []Principal `json:"principals"`
}

type ChangeRoleRequest struct {
	PrincipalID string `json:"principal_id"`
	Role        string `json:"role"`
}

type ChangeRoleResponse struct{}

type CreateProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type AssignToProjectRequest struct {
	ProjectID   string `json:"project_id"`
	PrincipalID string `json:"principal_id"`
	Role        string `json:"role"`
}

type AssignToProjectResponse struct{}

type ListProjectsRequest struct{}

type ListProjectsResponse struct {
	Projects []Project `json:"projects"`
}

type GetProjectRequest struct {
	ProjectID string `json:"project_id"`
}

type ProjectResponse struct {
	Project Project `json:"project"`
}

type UploadRecordRequest struct {
	ProjectID   string `json:"project_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     []byte `json:"content"`
}

type UpdateRecordRequest struct {
	RecordID    string `json:"record_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     []byte `json:"content"`
}

type GetRecordRequest struct {
	RecordID string `json:"record_id"`
}

type RecordResponse struct {
	Record Record `json:"record"`
}

type ListRecordsRequest struct {
	ProjectID string `json:"project_id"`
}

type ListRecordsResponse struct {
	Records []Record `json:"records"`
}

// ReadRecordRequest carries the caller's password, which is needed to open
// their private key. It is never stored.
type ReadRecordRequest struct {
	RecordID string `json:"record_id"`
	Password string `json:"password"`
}

type ReadRecordResponse struct {
	Content []byte `json:"content"`
}

type VerifyRecordRequest struct {
	RecordID string `json:"record_id"`
	Password string `json:"password"`
}

type VerifyRecordResponse struct {
	Verdict Verdict `json:"verdict"`
}

type SimulateAttackRequest struct {
	RecordID string `json:"record_id"`
}

type SimulateAttackResponse struct{}

type DeleteRecordRequest struct {
	RecordID string `json:"record_id"`
}

type DeleteRecordResponse struct{}

type AuditTrailRequest struct {
	RecordID string `json:"record_id"`
}

type AuditTrailResponse struct {
	Entries []AuditEntry `json:"entries"`
}

type ListAuditLogRequest struct {
	ProjectID string `json:"project_id"`
}

type ListAuditLogResponse struct {
	Entries []AuditEntry `json:"entries"`
}

type SystemStatsRequest struct{}

type SystemStats struct {
	Principals       int64 `json:"principals"`
	Producers        int64 `json:"producers"`
	Verifiers        int64 `json:"verifiers"`
	Administrators   int64 `json:"administrators"`
	Projects         int64 `json:"projects"`
	Records          int64 `json:"records"`
	PendingRecords   int64 `json:"pending_records"`
	VerifiedRecords  int64 `json:"verified_records"`
	CorruptedRecords int64 `json:"corrupted_records"`
	AuditEntries     int64 `json:"audit_entries"`
}

type SystemStatsResponse struct {
	Stats SystemStats `json:"stats"`
}

type ExportReportRequest struct {
	ProjectID string `json:"project_id"`
}

type ExportReportResponse struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

type ReadRetainedRequest struct {
	RecordID string `json:"record_id"`
}
