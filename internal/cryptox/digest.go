package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// Fingerprinter computes salted SHA-256 digests of record content. The salt
// is system-wide configuration, so equal content always yields an equal
// digest.
type Fingerprinter struct {
	salt []byte
}

// NewFingerprinter returns a Fingerprinter using a copy of salt.
func NewFingerprinter(salt []byte) *Fingerprinter {
	s := make([]byte, len(salt))
	copy(s, salt)
	return &Fingerprinter{salt: s}
}

// Digest returns hex(SHA-256(plaintext || salt)).
func (f *Fingerprinter) Digest(plaintext []byte) string {
	h := sha256.New()
	h.Write(plaintext)
	h.Write(f.salt)
	return hex.EncodeToString(h.Sum(nil))
}

// Match reports whether plaintext hashes to digest. The comparison runs in
// constant time.
func (f *Fingerprinter) Match(plaintext []byte, digest string) bool {
	return DigestsEqual(f.Digest(plaintext), digest)
}

// DigestsEqual compares two hex digests in constant time.
func DigestsEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
