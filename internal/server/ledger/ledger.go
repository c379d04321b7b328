// Package ledger binds each sealed record to the digest of its plaintext,
// re-checks that binding on demand and keeps the audit trail of every
// content write, verification, simulated attack and deletion.
//
// A record moves pending → verified | corrupted only through Verify. Create
// and content updates reset it to pending.
package ledger

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/dmitrijs2005/verischol/internal/common"
	"github.com/dmitrijs2005/verischol/internal/cryptox"
	"github.com/dmitrijs2005/verischol/internal/dbx"
	"github.com/dmitrijs2005/verischol/internal/logging"
	"github.com/dmitrijs2005/verischol/internal/server/models"
	"github.com/dmitrijs2005/verischol/internal/server/repositories/repomanager"
)

// ReferenceFunc recovers the plaintext the digest is checked against. It
// receives the record as read under the row lock. Returning an error that
// wraps common.ErrIntegrityFailure marks the record corrupted; any other
// error aborts the verification.
type ReferenceFunc func(ctx context.Context, rec *models.SealedRecord) ([]byte, error)

// Verdict is the outcome of one verification.
type Verdict struct {
	RecordID      string
	Status        models.RecordStatus
	StoredDigest  string
	CurrentDigest string
	VerifiedBy    string
	VerifiedAt    time.Time
}

// Match reports whether the record verified clean.
func (v *Verdict) Match() bool {
	return v.Status == models.StatusVerified
}

type Ledger struct {
	tx     dbx.Transactor
	repos  repomanager.RepositoryManager
	fp     *cryptox.Fingerprinter
	now    func() time.Time
	logger logging.Logger
}

func New(tx dbx.Transactor, repos repomanager.RepositoryManager, systemSalt []byte, logger logging.Logger) *Ledger {
	return &Ledger{
		tx:     tx,
		repos:  repos,
		fp:     cryptox.NewFingerprinter(systemSalt),
		now:    time.Now,
		logger: logger.With("module", "ledger"),
	}
}

// WithClock replaces the time source. Tests use it.
func (l *Ledger) WithClock(now func() time.Time) *Ledger {
	l.now = now
	return l
}

// Fingerprint returns the salted digest of plaintext.
func (l *Ledger) Fingerprint(plaintext []byte) string {
	return l.fp.Digest(plaintext)
}

// RecordCreated persists rec with digest inside tx and appends the matching
// audit entry. ActionUpload inserts a new record; ActionUpdate replaces the
// content of an existing one. Either way the record comes back pending with
// no verifier.
func (l *Ledger) RecordCreated(ctx context.Context, tx dbx.DBTX, rec *models.SealedRecord, digest string, action models.AuditAction, actorID string) (*models.SealedRecord, error) {
	recs := l.repos.Records(tx)
	rec.Digest = digest

	switch action {
	case models.ActionUpload:
		created, err := recs.Create(ctx, rec)
		if err != nil {
			return nil, fmt.Errorf("store record: %w", err)
		}
		rec = created
	case models.ActionUpdate:
		if err := recs.ReplaceContent(ctx, rec); err != nil {
			return nil, fmt.Errorf("replace record content: %w", err)
		}
		rec.Status = models.StatusPending
		rec.LastVerifiedBy, rec.LastVerifiedAt = nil, nil
	default:
		return nil, fmt.Errorf("%w: %q is not a content action", common.ErrorValidation, action)
	}

	details, _ := json.Marshal(map[string]string{"digest": digest, "title": rec.Title})
	_, err := l.repos.Audit(tx).Append(ctx, &models.AuditEntry{
		RecordID: rec.ID,
		ActorID:  &actorID,
		Action:   action,
		Result:   "success",
		Details:  details,
	})
	if err != nil {
		return nil, fmt.Errorf("append audit entry: %w", err)
	}
	return rec, nil
}

// RecordDeleted retires rec inside tx and appends a delete entry. The trail
// written before it stays in place.
func (l *Ledger) RecordDeleted(ctx context.Context, tx dbx.DBTX, rec *models.SealedRecord, actorID string) error {
	details, _ := json.Marshal(map[string]string{
		"digest": rec.Digest,
		"status": string(rec.Status),
		"title":  rec.Title,
	})
	if _, err := l.repos.Audit(tx).Append(ctx, &models.AuditEntry{
		RecordID: rec.ID,
		ActorID:  &actorID,
		Action:   models.ActionDelete,
		Result:   "success",
		Details:  details,
	}); err != nil {
		return fmt.Errorf("append audit entry: %w", err)
	}
	if err := l.repos.Records(tx).Delete(ctx, rec.ID); err != nil {
		return fmt.Errorf("retire record: %w", err)
	}
	return nil
}

// Verify re-derives the digest of the record's current content and compares
// it with the stored one. The record row stays locked from the read through
// the status write, so concurrent verifications and attacks on the same
// record are serialized.
func (l *Ledger) Verify(ctx context.Context, recordID, actorID string, reference ReferenceFunc) (*Verdict, error) {
	var verdict *Verdict

	err := l.tx.WithinTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		rec, err := l.repos.Records(tx).GetForUpdate(ctx, recordID)
		if err != nil {
			return err
		}

		current := ""
		plaintext, err := reference(ctx, rec)
		switch {
		case err == nil:
			current = l.fp.Digest(plaintext)
			common.WipeByteArray(plaintext)
		case errors.Is(err, common.ErrIntegrityFailure):
		default:
			return err
		}

		status := models.StatusCorrupted
		if current != "" && cryptox.DigestsEqual(current, rec.Digest) {
			status = models.StatusVerified
		}
		at := l.now().UTC()

		if err := l.repos.Records(tx).SetVerification(ctx, rec.ID, status, actorID, at); err != nil {
			return fmt.Errorf("store verification: %w", err)
		}

		audit := l.repos.Audit(tx)
		if err := audit.AttachVerification(ctx, rec.ID, actorID, status, at); err != nil && !errors.Is(err, common.ErrorNotFound) {
			return fmt.Errorf("attach verification: %w", err)
		}

		details, _ := json.Marshal(map[string]any{
			"stored_digest":  rec.Digest,
			"current_digest": current,
			"match":          status == models.StatusVerified,
		})
		if _, err := audit.Append(ctx, &models.AuditEntry{
			RecordID: rec.ID,
			ActorID:  &actorID,
			Action:   models.ActionVerify,
			Result:   string(status),
			Details:  details,
		}); err != nil {
			return fmt.Errorf("append audit entry: %w", err)
		}

		verdict = &Verdict{
			RecordID:      rec.ID,
			Status:        status,
			StoredDigest:  rec.Digest,
			CurrentDigest: current,
			VerifiedBy:    actorID,
			VerifiedAt:    at,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if verdict.Status == models.StatusCorrupted {
		l.logger.Warn(ctx, "record failed verification", "record_id", recordID, "verifier", actorID)
	} else {
		l.logger.Info(ctx, "record verified", "record_id", recordID, "verifier", actorID)
	}
	return verdict, nil
}

// SimulateAttack corrupts the stored ciphertext of a record the way an
// attacker with raw database access would. The digest is left alone, so the
// next Verify reports the record corrupted.
func (l *Ledger) SimulateAttack(ctx context.Context, recordID, actorID string) error {
	err := l.tx.WithinTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		rec, err := l.repos.Records(tx).GetForUpdate(ctx, recordID)
		if err != nil {
			return err
		}

		tampered, offset := tamper(rec.Ciphertext)
		if err := l.repos.Records(tx).OverwriteCiphertext(ctx, rec.ID, tampered); err != nil {
			return fmt.Errorf("overwrite ciphertext: %w", err)
		}

		details, _ := json.Marshal(map[string]any{
			"field":  "ciphertext",
			"offset": offset,
		})
		_, err = l.repos.Audit(tx).Append(ctx, &models.AuditEntry{
			RecordID: rec.ID,
			ActorID:  &actorID,
			Action:   models.ActionSimulatedAttack,
			Result:   "ciphertext modified",
			Details:  details,
		})
		if err != nil {
			return fmt.Errorf("append audit entry: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	l.logger.Warn(ctx, "simulated attack on record", "record_id", recordID, "actor", actorID)
	return nil
}

// Trail returns the audit entries of a record, oldest first.
func (l *Ledger) Trail(ctx context.Context, recordID string) ([]*models.AuditEntry, error) {
	return l.repos.Audit(l.tx.Conn()).ListByRecord(ctx, recordID)
}

// ProjectTrail returns the audit entries of every record in a project,
// deleted ones included, oldest first.
func (l *Ledger) ProjectTrail(ctx context.Context, projectID string) ([]*models.AuditEntry, error) {
	return l.repos.Audit(l.tx.Conn()).ListByProject(ctx, projectID)
}

// tamper returns a copy of ct with one bit flipped at a random offset. An
// empty ciphertext gets a byte appended instead. The offset is -1 then.
func tamper(ct []byte) ([]byte, int) {
	out := make([]byte, len(ct), len(ct)+1)
	copy(out, ct)
	if len(out) == 0 {
		return append(out, 0x01), -1
	}

	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(out))))
	if err != nil {
		panic(err)
	}
	i := int(n.Int64())
	out[i] ^= 0x01
	return out, i
}
