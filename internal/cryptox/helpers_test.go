package cryptox

import (
	"crypto/rsa"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	testKeyOnce sync.Once
	testKey     *rsa.PrivateKey
	testKeyErr  error
)

// sharedKey returns one RSA key per test binary; generating 2048-bit keys is
// too slow to repeat in every property iteration.
func sharedKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	testKeyOnce.Do(func() {
		k, err := NewKeyCustody(ScryptParams{CostLog2: MinScryptCostLog2, R: 8, P: 1})
		if err != nil {
			testKeyErr = err
			return
		}
		testKey, testKeyErr = k.GenerateKeyPair()
	})
	require.NoError(t, testKeyErr)
	return testKey
}

func fastCustody(t *testing.T) *KeyCustody {
	t.Helper()
	k, err := NewKeyCustody(ScryptParams{CostLog2: MinScryptCostLog2, R: 8, P: 1})
	require.NoError(t, err)
	return k
}
