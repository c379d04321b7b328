package ledger

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/verischol/internal/common"
	"github.com/dmitrijs2005/verischol/internal/cryptox"
	"github.com/dmitrijs2005/verischol/internal/dbx"
	"github.com/dmitrijs2005/verischol/internal/logging"
	"github.com/dmitrijs2005/verischol/internal/server/access"
	"github.com/dmitrijs2005/verischol/internal/server/models"
	"github.com/dmitrijs2005/verischol/internal/server/repositories/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	keyOnce sync.Once
	testKey *rsa.PrivateKey
)

func recipientKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	keyOnce.Do(func() {
		k, err := rsa.GenerateKey(rand.Reader, cryptox.RSAKeyBits)
		if err != nil {
			panic(err)
		}
		testKey = k
	})
	return testKey
}

type fixture struct {
	ledger  *Ledger
	manager *memory.Manager
	tx      *memory.Transactor
	project *models.Project
	alice   *models.Principal
	bob     *models.Principal
	fixed   time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	m := memory.NewManager(store)
	tr := memory.NewTransactor(store)
	ctx := context.Background()

	alice, err := m.Principals(nil).Create(ctx, &models.Principal{Username: "alice", Email: "alice@x", Role: access.RoleProducer})
	require.NoError(t, err)
	bob, err := m.Principals(nil).Create(ctx, &models.Principal{Username: "bob", Email: "bob@x", Role: access.RoleVerifier})
	require.NoError(t, err)
	prj, err := m.Projects(nil).Create(ctx, &models.Project{Name: "trial", CreatedBy: alice.ID})
	require.NoError(t, err)

	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	l := New(tr, m, []byte("system-salt"), logging.Discard()).WithClock(func() time.Time { return fixed })
	return &fixture{ledger: l, manager: m, tx: tr, project: prj, alice: alice, bob: bob, fixed: fixed}
}

func (f *fixture) upload(t *testing.T, plaintext []byte) *models.SealedRecord {
	t.Helper()
	env, err := cryptox.Seal(plaintext, &recipientKey(t).PublicKey)
	require.NoError(t, err)

	rec := &models.SealedRecord{
		ProjectID: f.project.ID, ProducerID: f.alice.ID, RecipientID: f.bob.ID, Title: "results",
	}
	rec.SetEnvelope(env)

	var out *models.SealedRecord
	err = f.tx.WithinTx(context.Background(), func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		out, err = f.ledger.RecordCreated(ctx, tx, rec, f.ledger.Fingerprint(plaintext), models.ActionUpload, f.alice.ID)
		return err
	})
	require.NoError(t, err)
	return out
}

func decrypt(t *testing.T) ReferenceFunc {
	return func(ctx context.Context, rec *models.SealedRecord) ([]byte, error) {
		return cryptox.Open(rec.Envelope(), recipientKey(t))
	}
}

func TestRecordCreated_StartsPendingWithUploadEntry(t *testing.T) {
	f := newFixture(t)
	rec := f.upload(t, []byte("dose=5mg"))

	assert.Equal(t, models.StatusPending, rec.Status)
	assert.Equal(t, f.ledger.Fingerprint([]byte("dose=5mg")), rec.Digest)

	trail, err := f.ledger.Trail(context.Background(), rec.ID)
	require.NoError(t, err)
	require.Len(t, trail, 1)
	assert.Equal(t, models.ActionUpload, trail[0].Action)
	assert.Equal(t, f.alice.ID, *trail[0].ActorID)
}

func TestRecordCreated_RejectsNonContentAction(t *testing.T) {
	f := newFixture(t)
	err := f.tx.WithinTx(context.Background(), func(ctx context.Context, tx dbx.DBTX) error {
		_, err := f.ledger.RecordCreated(ctx, tx, &models.SealedRecord{ProjectID: f.project.ID}, "d", models.ActionVerify, f.alice.ID)
		return err
	})
	require.ErrorIs(t, err, common.ErrorValidation)
}

func TestRecordDeleted_AppendsAndKeepsTrail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	rec := f.upload(t, []byte("dose=5mg"))
	_, err := f.ledger.Verify(ctx, rec.ID, f.bob.ID, decrypt(t))
	require.NoError(t, err)

	err = f.tx.WithinTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		return f.ledger.RecordDeleted(ctx, tx, rec, f.alice.ID)
	})
	require.NoError(t, err)

	_, err = f.manager.Records(nil).Get(ctx, rec.ID)
	require.ErrorIs(t, err, common.ErrorNotFound)

	trail, err := f.ledger.ProjectTrail(ctx, f.project.ID)
	require.NoError(t, err)
	require.Len(t, trail, 3)
	assert.Equal(t, models.ActionDelete, trail[2].Action)
	assert.Contains(t, string(trail[2].Details), rec.Digest)

	_, err = f.ledger.Verify(ctx, rec.ID, f.bob.ID, decrypt(t))
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestVerify_CleanRecord(t *testing.T) {
	f := newFixture(t)
	rec := f.upload(t, []byte("dose=5mg"))

	v, err := f.ledger.Verify(context.Background(), rec.ID, f.bob.ID, decrypt(t))
	require.NoError(t, err)
	assert.True(t, v.Match())
	assert.Equal(t, models.StatusVerified, v.Status)
	assert.Equal(t, rec.Digest, v.CurrentDigest)
	assert.Equal(t, f.fixed, v.VerifiedAt)

	stored, err := f.manager.Records(nil).Get(context.Background(), rec.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusVerified, stored.Status)
	assert.Equal(t, f.bob.ID, *stored.LastVerifiedBy)

	trail, err := f.ledger.Trail(context.Background(), rec.ID)
	require.NoError(t, err)
	require.Len(t, trail, 2)
	require.NotNil(t, trail[0].VerificationStatus)
	assert.Equal(t, models.StatusVerified, *trail[0].VerificationStatus)
	assert.Equal(t, models.ActionVerify, trail[1].Action)
	assert.Equal(t, "verified", trail[1].Result)
}

func TestSimulateAttack_ThenVerifyReportsCorrupted(t *testing.T) {
	f := newFixture(t)
	rec := f.upload(t, []byte("dose=5mg"))
	ctx := context.Background()

	_, err := f.ledger.Verify(ctx, rec.ID, f.bob.ID, decrypt(t))
	require.NoError(t, err)

	require.NoError(t, f.ledger.SimulateAttack(ctx, rec.ID, f.bob.ID))

	after, err := f.manager.Records(nil).Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.Digest, after.Digest, "attack must not touch the digest")
	assert.NotEqual(t, rec.Ciphertext, after.Ciphertext)

	v, err := f.ledger.Verify(ctx, rec.ID, f.bob.ID, decrypt(t))
	require.NoError(t, err)
	assert.Equal(t, models.StatusCorrupted, v.Status)
	assert.Empty(t, v.CurrentDigest)
	assert.Equal(t, rec.Digest, v.StoredDigest)

	trail, err := f.ledger.Trail(ctx, rec.ID)
	require.NoError(t, err)
	actions := make([]models.AuditAction, 0, len(trail))
	for _, e := range trail {
		actions = append(actions, e.Action)
	}
	assert.Equal(t, []models.AuditAction{
		models.ActionUpload, models.ActionVerify, models.ActionSimulatedAttack, models.ActionVerify,
	}, actions)
	assert.Equal(t, models.StatusCorrupted, *trail[0].VerificationStatus)
}

func TestSimulateAttack_EmptyCiphertext(t *testing.T) {
	f := newFixture(t)
	rec := f.upload(t, nil)
	ctx := context.Background()

	require.NoError(t, f.ledger.SimulateAttack(ctx, rec.ID, f.bob.ID))

	v, err := f.ledger.Verify(ctx, rec.ID, f.bob.ID, decrypt(t))
	require.NoError(t, err)
	assert.Equal(t, models.StatusCorrupted, v.Status)
}

func TestVerify_DigestMismatchWithoutCiphertextDamage(t *testing.T) {
	f := newFixture(t)
	rec := f.upload(t, []byte("original"))

	v, err := f.ledger.Verify(context.Background(), rec.ID, f.bob.ID, func(context.Context, *models.SealedRecord) ([]byte, error) {
		return []byte("something else"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusCorrupted, v.Status)
	assert.NotEmpty(t, v.CurrentDigest)
}

func TestVerify_ReferenceErrorAbortsAndLeavesStateUntouched(t *testing.T) {
	f := newFixture(t)
	rec := f.upload(t, []byte("original"))
	boom := errors.New("key unavailable")

	_, err := f.ledger.Verify(context.Background(), rec.ID, f.bob.ID, func(context.Context, *models.SealedRecord) ([]byte, error) {
		return nil, boom
	})
	require.ErrorIs(t, err, boom)

	stored, err := f.manager.Records(nil).Get(context.Background(), rec.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, stored.Status)

	trail, err := f.ledger.Trail(context.Background(), rec.ID)
	require.NoError(t, err)
	assert.Len(t, trail, 1)
}

func TestUpdate_ResetsToPending(t *testing.T) {
	f := newFixture(t)
	rec := f.upload(t, []byte("v1"))
	ctx := context.Background()

	_, err := f.ledger.Verify(ctx, rec.ID, f.bob.ID, decrypt(t))
	require.NoError(t, err)

	env, err := cryptox.Seal([]byte("v2"), &recipientKey(t).PublicKey)
	require.NoError(t, err)
	rec.SetEnvelope(env)

	err = f.tx.WithinTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		_, err := f.ledger.RecordCreated(ctx, tx, rec, f.ledger.Fingerprint([]byte("v2")), models.ActionUpdate, f.alice.ID)
		return err
	})
	require.NoError(t, err)

	stored, err := f.manager.Records(nil).Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, stored.Status)
	assert.Nil(t, stored.LastVerifiedBy)

	v, err := f.ledger.Verify(ctx, rec.ID, f.bob.ID, decrypt(t))
	require.NoError(t, err)
	assert.Equal(t, models.StatusVerified, v.Status)
}

func TestVerify_UnknownRecord(t *testing.T) {
	f := newFixture(t)
	_, err := f.ledger.Verify(context.Background(), "ghost", f.bob.ID, decrypt(t))
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestVerify_ConcurrentCallsAgree(t *testing.T) {
	f := newFixture(t)
	rec := f.upload(t, []byte("payload"))

	var wg sync.WaitGroup
	results := make([]models.RecordStatus, 6)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := f.ledger.Verify(context.Background(), rec.ID, f.bob.ID, decrypt(t))
			if err == nil {
				results[i] = v.Status
			}
		}(i)
	}
	wg.Wait()

	for _, s := range results {
		assert.Equal(t, models.StatusVerified, s)
	}
	trail, err := f.ledger.Trail(context.Background(), rec.ID)
	require.NoError(t, err)
	assert.Len(t, trail, 1+len(results))
}

func TestTamper_FlipsExactlyOneBit(t *testing.T) {
	ct := []byte{0, 0, 0, 0}
	out, off := tamper(ct)
	require.GreaterOrEqual(t, off, 0)
	assert.Equal(t, []byte{0, 0, 0, 0}, ct)
	assert.Equal(t, byte(0x01), out[off])

	out, off = tamper(nil)
	assert.Equal(t, -1, off)
	assert.Equal(t, []byte{0x01}, out)
}
