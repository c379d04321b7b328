package models

import (
	"time"

	"github.com/dmitrijs2005/verischol/internal/cryptox"
)

// RecordStatus is the outcome of the most recent integrity verification.
type RecordStatus string

const (
	StatusPending   RecordStatus = "pending"
	StatusVerified  RecordStatus = "verified"
	StatusCorrupted RecordStatus = "corrupted"
)

// SealedRecord is a producer's content kept as an envelope wrapped for a
// single recipient, together with the digest taken over the plaintext when
// the content was written.
type SealedRecord struct {
	ID          string
	ProjectID   string
	ProducerID  string
	RecipientID string
	Title       string
	Description string

	Ciphertext []byte
	IV         []byte
	AuthTag    []byte
	WrappedKey []byte
	Digest     string

	Status         RecordStatus
	LastVerifiedBy *string
	LastVerifiedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Envelope returns the stored envelope fields.
func (r *SealedRecord) Envelope() *cryptox.Envelope {
	return &cryptox.Envelope{
		Ciphertext: r.Ciphertext,
		IV:         r.IV,
		AuthTag:    r.AuthTag,
		WrappedKey: r.WrappedKey,
	}
}

// SetEnvelope replaces the stored envelope fields with env.
func (r *SealedRecord) SetEnvelope(env *cryptox.Envelope) {
	r.Ciphertext = env.Ciphertext
	r.IV = env.IV
	r.AuthTag = env.AuthTag
	r.WrappedKey = env.WrappedKey
}
