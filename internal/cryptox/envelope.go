package cryptox

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"errors"

	"github.com/dmitrijs2005/verischol/internal/common"
)

const contentKeySize = 32

// Envelope is the output of hybrid encryption: AES-256-GCM ciphertext with
// its nonce and tag, plus the content key wrapped for a single recipient.
type Envelope struct {
	Ciphertext []byte `json:"ciphertext"`
	IV         []byte `json:"iv"`
	AuthTag    []byte `json:"auth_tag"`
	WrappedKey []byte `json:"wrapped_key"`
}

// Seal encrypts plaintext under a fresh random content key and nonce and wraps
// the key for recipient with RSA-OAEP (SHA-256). Sealing the same plaintext
// twice never produces the same ciphertext.
func Seal(plaintext []byte, recipient *rsa.PublicKey) (*Envelope, error) {
	if recipient == nil {
		return nil, errors.New("nil recipient key")
	}

	key := make([]byte, contentKeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, err
	}
	defer common.WipeByteArray(key)

	aead, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	iv := make([]byte, aead.NonceSize())
	if _, err := rand.Read(iv); err != nil {
		return nil, err
	}

	ct, tag := splitTag(aead.Seal(nil, iv, plaintext, nil))

	wrapped, err := rsa.EncryptOAEP(sha256.New(), rand.Reader, recipient, key, nil)
	if err != nil {
		return nil, err
	}

	return &Envelope{Ciphertext: ct, IV: iv, AuthTag: tag, WrappedKey: wrapped}, nil
}

// Open unwraps the content key with priv and decrypts the envelope. Any
// failure, whether of the key unwrap or of the GCM tag, is reported as
// common.ErrIntegrityFailure with nil plaintext.
func Open(env *Envelope, priv *rsa.PrivateKey) ([]byte, error) {
	if env == nil || priv == nil {
		return nil, common.ErrIntegrityFailure
	}
	if len(env.IV) != gcmNonceSize || len(env.AuthTag) != gcmTagSize {
		return nil, common.ErrIntegrityFailure
	}

	key, err := rsa.DecryptOAEP(sha256.New(), rand.Reader, priv, env.WrappedKey, nil)
	if err != nil {
		return nil, common.ErrIntegrityFailure
	}
	defer common.WipeByteArray(key)

	if len(key) != contentKeySize {
		return nil, common.ErrIntegrityFailure
	}

	aead, err := newGCM(key)
	if err != nil {
		return nil, common.ErrIntegrityFailure
	}

	plaintext, err := aead.Open(nil, env.IV, joinTag(env.Ciphertext, env.AuthTag), nil)
	if err != nil {
		return nil, common.ErrIntegrityFailure
	}
	return plaintext, nil
}
