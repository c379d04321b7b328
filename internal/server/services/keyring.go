package services

import (
	"context"
	"crypto/rsa"
	"fmt"

	"github.com/dmitrijs2005/verischol/internal/cryptox"
	"golang.org/x/sync/semaphore"
)

// KeyRing runs key custody operations under a weighted semaphore so that at
// most a fixed number of scrypt derivations run at once.
type KeyRing struct {
	custody *cryptox.KeyCustody
	sem     *semaphore.Weighted
}

func NewKeyRing(custody *cryptox.KeyCustody, concurrency int) *KeyRing {
	if concurrency < 1 {
		concurrency = 1
	}
	return &KeyRing{custody: custody, sem: semaphore.NewWeighted(int64(concurrency))}
}

// Provision creates a key pair and seals its private half under password.
func (k *KeyRing) Provision(ctx context.Context, password []byte) (string, string, error) {
	if err := k.sem.Acquire(ctx, 1); err != nil {
		return "", "", fmt.Errorf("wait for key derivation slot: %w", err)
	}
	defer k.sem.Release(1)
	return k.custody.Provision(password)
}

// Open unseals a private key blob. Every failure is common.ErrAuthenticationFailure
// apart from a cancelled context.
func (k *KeyRing) Open(ctx context.Context, sealed string, password []byte) (*rsa.PrivateKey, error) {
	if err := k.sem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("wait for key derivation slot: %w", err)
	}
	defer k.sem.Release(1)
	return k.custody.OpenPrivateKey(sealed, password)
}

// Reseal seals priv under a new password with a fresh salt.
func (k *KeyRing) Reseal(ctx context.Context, priv *rsa.PrivateKey, password []byte) (string, error) {
	if err := k.sem.Acquire(ctx, 1); err != nil {
		return "", fmt.Errorf("wait for key derivation slot: %w", err)
	}
	defer k.sem.Release(1)
	return k.custody.SealPrivateKey(priv, password)
}
