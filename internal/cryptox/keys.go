package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/verischol/internal/common"
	"golang.org/x/crypto/scrypt"
)

const (
	// RSAKeyBits is the modulus size of every generated key pair.
	RSAKeyBits = 2048

	// MinScryptCostLog2 is the lowest work factor accepted when sealing or
	// opening a private key blob (N = 2^14).
	MinScryptCostLog2 = 14

	blobVersion   = 1
	blobKDF       = "scrypt"
	kdfSaltSize   = 16
	kdfKeySize    = 32
	gcmNonceSize  = 12
	gcmTagSize    = 16
	pemPublicType = "PUBLIC KEY"
)

// ScryptParams controls the password-based key derivation.
type ScryptParams struct {
	CostLog2 int
	R        int
	P        int
}

// DefaultScryptParams derives keys with N = 2^15, r = 8, p = 1.
var DefaultScryptParams = ScryptParams{CostLog2: 15, R: 8, P: 1}

// sealedKeyBlob is the JSON layout of a sealed private key. It carries
// everything needed to re-derive the key except the password.
type sealedKeyBlob struct {
	Version    int    `json:"v"`
	KDF        string `json:"kdf"`
	N          int    `json:"n"`
	R          int    `json:"r"`
	P          int    `json:"p"`
	Salt       []byte `json:"salt"`
	IV         []byte `json:"iv"`
	Ciphertext []byte `json:"ciphertext"`
	Tag        []byte `json:"tag"`
}

// KeyCustody generates RSA key pairs and keeps private keys sealed under a
// password-derived AES-256-GCM key. Each blob gets its own random salt.
type KeyCustody struct {
	params ScryptParams
}

// NewKeyCustody returns a KeyCustody deriving keys with p. Parameters below
// MinScryptCostLog2 are rejected.
func NewKeyCustody(p ScryptParams) (*KeyCustody, error) {
	if p.CostLog2 < MinScryptCostLog2 || p.CostLog2 > 30 {
		return nil, fmt.Errorf("%w: scrypt cost 2^%d out of range", common.ErrorValidation, p.CostLog2)
	}
	if p.R <= 0 || p.P <= 0 {
		return nil, fmt.Errorf("%w: scrypt r and p must be positive", common.ErrorValidation)
	}
	return &KeyCustody{params: p}, nil
}

// GenerateKeyPair produces a fresh RSA-2048 key pair. Persisting it is up to
// the caller.
func (k *KeyCustody) GenerateKeyPair() (*rsa.PrivateKey, error) {
	return rsa.GenerateKey(rand.Reader, RSAKeyBits)
}

// SealPrivateKey encrypts priv under a key derived from password and returns
// a self-describing text blob.
func (k *KeyCustody) SealPrivateKey(priv *rsa.PrivateKey, password []byte) (string, error) {
	der, err := x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		return "", fmt.Errorf("marshal private key: %w", err)
	}
	defer common.WipeByteArray(der)

	salt := make([]byte, kdfSaltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	n := 1 << k.params.CostLog2
	key, err := scrypt.Key(password, salt, n, k.params.R, k.params.P, kdfKeySize)
	if err != nil {
		return "", fmt.Errorf("derive key: %w", err)
	}
	defer common.WipeByteArray(key)

	aead, err := newGCM(key)
	if err != nil {
		return "", err
	}

	iv := make([]byte, gcmNonceSize)
	if _, err := rand.Read(iv); err != nil {
		return "", err
	}

	sealed := aead.Seal(nil, iv, der, nil)
	ct, tag := splitTag(sealed)

	blob, err := json.Marshal(sealedKeyBlob{
		Version:    blobVersion,
		KDF:        blobKDF,
		N:          n,
		R:          k.params.R,
		P:          k.params.P,
		Salt:       salt,
		IV:         iv,
		Ciphertext: ct,
		Tag:        tag,
	})
	if err != nil {
		return "", err
	}
	return string(blob), nil
}

// OpenPrivateKey reverses SealPrivateKey. A wrong password, an altered blob
// and a malformed blob all yield common.ErrAuthenticationFailure.
func (k *KeyCustody) OpenPrivateKey(blob string, password []byte) (*rsa.PrivateKey, error) {
	var b sealedKeyBlob
	if err := json.Unmarshal([]byte(blob), &b); err != nil {
		return nil, common.ErrAuthenticationFailure
	}
	if b.Version != blobVersion || b.KDF != blobKDF || b.N < 1<<MinScryptCostLog2 ||
		b.R <= 0 || b.P <= 0 || len(b.Salt) == 0 || len(b.IV) != gcmNonceSize || len(b.Tag) != gcmTagSize {
		return nil, common.ErrAuthenticationFailure
	}

	key, err := scrypt.Key(password, b.Salt, b.N, b.R, b.P, kdfKeySize)
	if err != nil {
		return nil, common.ErrAuthenticationFailure
	}
	defer common.WipeByteArray(key)

	aead, err := newGCM(key)
	if err != nil {
		return nil, common.ErrAuthenticationFailure
	}

	der, err := aead.Open(nil, b.IV, joinTag(b.Ciphertext, b.Tag), nil)
	if err != nil {
		return nil, common.ErrAuthenticationFailure
	}
	defer common.WipeByteArray(der)

	parsed, err := x509.ParsePKCS8PrivateKey(der)
	if err != nil {
		return nil, common.ErrAuthenticationFailure
	}
	priv, ok := parsed.(*rsa.PrivateKey)
	if !ok {
		return nil, common.ErrAuthenticationFailure
	}
	return priv, nil
}

// Provision generates a key pair and returns the PEM public key together with
// the private key sealed under password. It is the registration hook.
func (k *KeyCustody) Provision(password []byte) (publicKeyPEM string, sealedPrivateKey string, err error) {
	priv, err := k.GenerateKeyPair()
	if err != nil {
		return "", "", fmt.Errorf("generate key pair: %w", err)
	}
	pub, err := EncodePublicKey(&priv.PublicKey)
	if err != nil {
		return "", "", err
	}
	blob, err := k.SealPrivateKey(priv, password)
	if err != nil {
		return "", "", err
	}
	return pub, blob, nil
}

// EncodePublicKey renders pub as a PEM "PUBLIC KEY" (SPKI) block.
func EncodePublicKey(pub *rsa.PublicKey) (string, error) {
	der, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		return "", fmt.Errorf("marshal public key: %w", err)
	}
	return string(pem.EncodeToMemory(&pem.Block{Type: pemPublicType, Bytes: der})), nil
}

// ParsePublicKey decodes a PEM block produced by EncodePublicKey.
func ParsePublicKey(s string) (*rsa.PublicKey, error) {
	block, _ := pem.Decode([]byte(s))
	if block == nil || block.Type != pemPublicType {
		return nil, errors.New("invalid public key PEM")
	}
	parsed, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("parse public key: %w", err)
	}
	pub, ok := parsed.(*rsa.PublicKey)
	if !ok {
		return nil, errors.New("public key is not RSA")
	}
	return pub, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// splitTag separates the trailing GCM tag from the output of Seal.
func splitTag(sealed []byte) (ct, tag []byte) {
	cut := len(sealed) - gcmTagSize
	return sealed[:cut:cut], sealed[cut:]
}

func joinTag(ct, tag []byte) []byte {
	out := make([]byte, 0, len(ct)+len(tag))
	out = append(out, ct...)
	return append(out, tag...)
}
