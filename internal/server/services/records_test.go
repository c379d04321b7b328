package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/verischol/internal/common"
	"github.com/dmitrijs2005/verischol/internal/server/access"
	"github.com/dmitrijs2005/verischol/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countActions(trail []*models.AuditEntry, action models.AuditAction) []*models.AuditEntry {
	var out []*models.AuditEntry
	for _, e := range trail {
		if e.Action == action {
			out = append(out, e)
		}
	}
	return out
}

// upload → verify → tamper → verify reports corruption with two differing
// verdicts in the trail.
func TestIntegrityScenario(t *testing.T) {
	h := newHarness(t, false)
	ctx := context.Background()
	c := h.setup(t)

	rec, err := h.records.Upload(ctx, c.alice, c.project.ID, RecordContent{Title: "Batch 12", Content: []byte("X")})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, rec.Status)
	assert.Equal(t, c.bob.PrincipalID, rec.RecipientID)
	d := rec.Digest
	assert.Equal(t, h.ledger.Fingerprint([]byte("X")), d)

	v, err := h.records.Verify(ctx, c.bob, rec.ID, testPassword)
	require.NoError(t, err)
	assert.Equal(t, models.StatusVerified, v.Status)
	assert.Equal(t, d, v.CurrentDigest)
	assert.True(t, v.Match())

	stored, err := h.records.Get(ctx, c.bob, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusVerified, stored.Status)
	require.NotNil(t, stored.LastVerifiedBy)
	assert.Equal(t, c.bob.PrincipalID, *stored.LastVerifiedBy)

	// corrupt the stored ciphertext behind the service's back
	corrupted := append([]byte(nil), stored.Ciphertext...)
	corrupted[0] ^= 0xFF
	require.NoError(t, h.manager.Records(nil).OverwriteCiphertext(ctx, rec.ID, corrupted))

	v, err = h.records.Verify(ctx, c.bob, rec.ID, testPassword)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCorrupted, v.Status)
	assert.False(t, v.Match())

	trail, err := h.records.AuditTrail(ctx, c.bob, rec.ID)
	require.NoError(t, err)
	verifies := countActions(trail, models.ActionVerify)
	require.Len(t, verifies, 2)
	assert.Equal(t, string(models.StatusVerified), verifies[0].Result)
	assert.Equal(t, string(models.StatusCorrupted), verifies[1].Result)

	_, err = h.records.Read(ctx, c.bob, rec.ID, testPassword)
	require.ErrorIs(t, err, common.ErrIntegrityFailure)
}

func TestUpload_WithoutVerifierSealsForProducer(t *testing.T) {
	h := newHarness(t, false)
	ctx := context.Background()
	c := h.setup(t)

	solo, err := h.projects.Create(ctx, c.admin, "Solo", "")
	require.NoError(t, err)
	require.NoError(t, h.projects.Assign(ctx, c.admin, solo.ID, c.carol.PrincipalID, access.RoleProducer))

	rec, err := h.records.Upload(ctx, c.carol, solo.ID, RecordContent{Title: "draft", Content: []byte("notes")})
	require.NoError(t, err)
	assert.Equal(t, c.carol.PrincipalID, rec.RecipientID)

	got, err := h.records.Read(ctx, c.carol, rec.ID, testPassword)
	require.NoError(t, err)
	assert.Equal(t, []byte("notes"), got)
}

func TestRead_OnlyRecipient(t *testing.T) {
	h := newHarness(t, false)
	ctx := context.Background()
	c := h.setup(t)

	rec, err := h.records.Upload(ctx, c.alice, c.project.ID, RecordContent{Title: "t", Content: []byte("secret")})
	require.NoError(t, err)

	got, err := h.records.Read(ctx, c.bob, rec.ID, testPassword)
	require.NoError(t, err)
	assert.Equal(t, []byte("secret"), got)

	_, err = h.records.Read(ctx, c.bob, rec.ID, "Wr0ng!Password")
	require.ErrorIs(t, err, common.ErrAuthenticationFailure)

	_, err = h.records.Read(ctx, c.alice, rec.ID, testPassword)
	require.ErrorIs(t, err, common.ErrAuthorizationDenied)

	_, err = h.records.Read(ctx, c.admin, rec.ID, testPassword)
	require.ErrorIs(t, err, common.ErrAuthorizationDenied)

	_, err = h.records.Read(ctx, c.carol, rec.ID, testPassword)
	require.ErrorIs(t, err, common.ErrAuthorizationDenied)
}

func TestUpload_Rejections(t *testing.T) {
	h := newHarness(t, false)
	ctx := context.Background()
	c := h.setup(t)

	_, err := h.records.Upload(ctx, c.bob, c.project.ID, RecordContent{Title: "t", Content: []byte("x")})
	require.ErrorIs(t, err, common.ErrAuthorizationDenied)

	_, err = h.records.Upload(ctx, c.carol, c.project.ID, RecordContent{Title: "t", Content: []byte("x")})
	require.ErrorIs(t, err, common.ErrAuthorizationDenied)

	_, err = h.records.Upload(ctx, c.alice, c.project.ID, RecordContent{Title: "  ", Content: []byte("x")})
	require.ErrorIs(t, err, common.ErrorValidation)

	list, err := h.records.List(ctx, c.alice, c.project.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestUpdate_ResetsToPending(t *testing.T) {
	h := newHarness(t, false)
	ctx := context.Background()
	c := h.setup(t)

	rec, err := h.records.Upload(ctx, c.alice, c.project.ID, RecordContent{Title: "v1", Content: []byte("one")})
	require.NoError(t, err)
	_, err = h.records.Verify(ctx, c.bob, rec.ID, testPassword)
	require.NoError(t, err)

	_, err = h.records.Update(ctx, c.bob, rec.ID, RecordContent{Title: "v2", Content: []byte("two")})
	require.ErrorIs(t, err, common.ErrAuthorizationDenied)

	updated, err := h.records.Update(ctx, c.alice, rec.ID, RecordContent{Title: "v2", Content: []byte("two")})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, updated.Status)
	assert.Nil(t, updated.LastVerifiedBy)
	assert.Equal(t, h.ledger.Fingerprint([]byte("two")), updated.Digest)

	got, err := h.records.Read(ctx, c.bob, rec.ID, testPassword)
	require.NoError(t, err)
	assert.Equal(t, []byte("two"), got)

	v, err := h.records.Verify(ctx, c.bob, rec.ID, testPassword)
	require.NoError(t, err)
	assert.Equal(t, models.StatusVerified, v.Status)
}

func TestUpdate_OtherProducerDenied(t *testing.T) {
	h := newHarness(t, false)
	ctx := context.Background()
	c := h.setup(t)

	require.NoError(t, h.projects.Assign(ctx, c.admin, c.project.ID, c.carol.PrincipalID, access.RoleProducer))

	rec, err := h.records.Upload(ctx, c.alice, c.project.ID, RecordContent{Title: "v1", Content: []byte("one")})
	require.NoError(t, err)

	_, err = h.records.Update(ctx, c.carol, rec.ID, RecordContent{Title: "v2", Content: []byte("two")})
	require.ErrorIs(t, err, common.ErrAuthorizationDenied)

	err = h.records.Delete(ctx, c.carol, rec.ID)
	require.ErrorIs(t, err, common.ErrAuthorizationDenied)
}

func TestVerify_OnlyDesignatedVerifier(t *testing.T) {
	h := newHarness(t, false)
	ctx := context.Background()
	c := h.setup(t)

	rec, err := h.records.Upload(ctx, c.alice, c.project.ID, RecordContent{Title: "t", Content: []byte("x")})
	require.NoError(t, err)

	_, err = h.records.Verify(ctx, c.alice, rec.ID, testPassword)
	require.ErrorIs(t, err, common.ErrAuthorizationDenied)

	_, err = h.records.Verify(ctx, c.bob, rec.ID, "Wr0ng!Password")
	require.ErrorIs(t, err, common.ErrAuthenticationFailure)

	got, err := h.records.Get(ctx, c.bob, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, got.Status)
}

func TestSimulateAttack_ThenVerifyCorrupted(t *testing.T) {
	h := newHarness(t, false)
	ctx := context.Background()
	c := h.setup(t)

	rec, err := h.records.Upload(ctx, c.alice, c.project.ID, RecordContent{Title: "t", Content: []byte("payload")})
	require.NoError(t, err)

	err = h.records.SimulateAttack(ctx, c.alice, rec.ID)
	require.ErrorIs(t, err, common.ErrAuthorizationDenied)

	require.NoError(t, h.records.SimulateAttack(ctx, c.bob, rec.ID))

	v, err := h.records.Verify(ctx, c.bob, rec.ID, testPassword)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCorrupted, v.Status)
	assert.Empty(t, v.CurrentDigest)

	trail, err := h.records.AuditTrail(ctx, c.admin, rec.ID)
	require.NoError(t, err)
	require.Len(t, trail, 3)
	assert.Equal(t, models.ActionUpload, trail[0].Action)
	assert.Equal(t, models.ActionSimulatedAttack, trail[1].Action)
	assert.Equal(t, models.ActionVerify, trail[2].Action)
}

func TestAuditTrail_ProducerDenied(t *testing.T) {
	h := newHarness(t, false)
	ctx := context.Background()
	c := h.setup(t)

	rec, err := h.records.Upload(ctx, c.alice, c.project.ID, RecordContent{Title: "t", Content: []byte("x")})
	require.NoError(t, err)

	_, err = h.records.AuditTrail(ctx, c.alice, rec.ID)
	require.ErrorIs(t, err, common.ErrAuthorizationDenied)
}

func TestDelete(t *testing.T) {
	h := newHarness(t, false)
	ctx := context.Background()
	c := h.setup(t)

	r1, err := h.records.Upload(ctx, c.alice, c.project.ID, RecordContent{Title: "one", Content: []byte("1")})
	require.NoError(t, err)
	r2, err := h.records.Upload(ctx, c.alice, c.project.ID, RecordContent{Title: "two", Content: []byte("2")})
	require.NoError(t, err)

	err = h.records.Delete(ctx, c.bob, r1.ID)
	require.ErrorIs(t, err, common.ErrAuthorizationDenied)

	require.NoError(t, h.records.Delete(ctx, c.alice, r1.ID))
	require.NoError(t, h.records.Delete(ctx, c.admin, r2.ID))

	_, err = h.records.Get(ctx, c.alice, r1.ID)
	require.ErrorIs(t, err, common.ErrorNotFound)

	list, err := h.records.List(ctx, c.alice, c.project.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestReadRetained(t *testing.T) {
	ctx := context.Background()

	t.Run("disabled", func(t *testing.T) {
		h := newHarness(t, false)
		c := h.setup(t)
		rec, err := h.records.Upload(ctx, c.alice, c.project.ID, RecordContent{Title: "t", Content: []byte("x")})
		require.NoError(t, err)

		_, err = h.records.ReadRetained(ctx, c.alice, rec.ID)
		require.ErrorIs(t, err, common.ErrorNotFound)
	})

	t.Run("enabled", func(t *testing.T) {
		h := newHarness(t, true)
		c := h.setup(t)
		rec, err := h.records.Upload(ctx, c.alice, c.project.ID, RecordContent{Title: "t", Content: []byte("x")})
		require.NoError(t, err)

		got, err := h.records.ReadRetained(ctx, c.alice, rec.ID)
		require.NoError(t, err)
		assert.Equal(t, []byte("x"), got)

		_, err = h.records.Update(ctx, c.alice, rec.ID, RecordContent{Title: "t", Content: []byte("y")})
		require.NoError(t, err)
		got, err = h.records.ReadRetained(ctx, c.alice, rec.ID)
		require.NoError(t, err)
		assert.Equal(t, []byte("y"), got)

		_, err = h.records.ReadRetained(ctx, c.bob, rec.ID)
		require.ErrorIs(t, err, common.ErrAuthorizationDenied)
	})
}

func TestDelete_KeepsAuditTrail(t *testing.T) {
	h := newHarness(t, true)
	ctx := context.Background()
	c := h.setup(t)

	rec, err := h.records.Upload(ctx, c.alice, c.project.ID, RecordContent{Title: "t", Content: []byte("payload")})
	require.NoError(t, err)
	require.NoError(t, h.records.SimulateAttack(ctx, c.bob, rec.ID))
	v, err := h.records.Verify(ctx, c.bob, rec.ID, testPassword)
	require.NoError(t, err)
	require.Equal(t, models.StatusCorrupted, v.Status)

	before, err := h.records.ProjectAuditLog(ctx, c.bob, c.project.ID)
	require.NoError(t, err)
	require.Len(t, before, 3)

	require.NoError(t, h.records.Delete(ctx, c.alice, rec.ID))

	_, err = h.records.Get(ctx, c.bob, rec.ID)
	require.ErrorIs(t, err, common.ErrorNotFound)
	_, err = h.manager.Plaintexts(nil).Get(ctx, rec.ID)
	require.ErrorIs(t, err, common.ErrorNotFound)

	after, err := h.records.ProjectAuditLog(ctx, c.admin, c.project.ID)
	require.NoError(t, err)
	require.Len(t, after, 4)
	assert.Equal(t, models.ActionUpload, after[0].Action)
	assert.Equal(t, models.ActionSimulatedAttack, after[1].Action)
	assert.Equal(t, models.ActionVerify, after[2].Action)
	assert.Equal(t, models.ActionDelete, after[3].Action)
	require.NotNil(t, after[3].ActorID)
	assert.Equal(t, c.alice.PrincipalID, *after[3].ActorID)

	err = h.records.Delete(ctx, c.alice, rec.ID)
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestProjectAuditLog_Access(t *testing.T) {
	h := newHarness(t, false)
	ctx := context.Background()
	c := h.setup(t)

	_, err := h.records.Upload(ctx, c.alice, c.project.ID, RecordContent{Title: "a", Content: []byte("1")})
	require.NoError(t, err)
	_, err = h.records.Upload(ctx, c.alice, c.project.ID, RecordContent{Title: "b", Content: []byte("2")})
	require.NoError(t, err)

	trail, err := h.records.ProjectAuditLog(ctx, c.bob, c.project.ID)
	require.NoError(t, err)
	assert.Len(t, countActions(trail, models.ActionUpload), 2)

	_, err = h.records.ProjectAuditLog(ctx, c.alice, c.project.ID)
	require.ErrorIs(t, err, common.ErrAuthorizationDenied)

	other, err := h.projects.Create(ctx, c.admin, "Other", "")
	require.NoError(t, err)
	_, err = h.records.ProjectAuditLog(ctx, c.bob, other.ID)
	require.ErrorIs(t, err, common.ErrAuthorizationDenied)

	_, err = h.records.ProjectAuditLog(ctx, c.admin, "ghost")
	require.ErrorIs(t, err, common.ErrorNotFound)
}
