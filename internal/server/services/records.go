package services

import (
	"context"
	"crypto/rsa"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/verischol/internal/common"
	"github.com/dmitrijs2005/verischol/internal/cryptox"
	"github.com/dmitrijs2005/verischol/internal/dbx"
	"github.com/dmitrijs2005/verischol/internal/logging"
	"github.com/dmitrijs2005/verischol/internal/server/access"
	"github.com/dmitrijs2005/verischol/internal/server/auth"
	"github.com/dmitrijs2005/verischol/internal/server/debugcopy"
	"github.com/dmitrijs2005/verischol/internal/server/ledger"
	"github.com/dmitrijs2005/verischol/internal/server/models"
	"github.com/dmitrijs2005/verischol/internal/server/repositories/repomanager"
)

// RecordContent is the caller-supplied part of a record.
type RecordContent struct {
	Title       string
	Description string
	Content     []byte
}

type RecordService struct {
	tx     dbx.Transactor
	repos  repomanager.RepositoryManager
	keys   *KeyRing
	ledger *ledger.Ledger
	debug  *debugcopy.Store
	logger logging.Logger
}

func NewRecordService(tx dbx.Transactor, repos repomanager.RepositoryManager, keys *KeyRing, l *ledger.Ledger, debug *debugcopy.Store, logger logging.Logger) *RecordService {
	return &RecordService{
		tx:     tx,
		repos:  repos,
		keys:   keys,
		ledger: l,
		debug:  debug,
		logger: logger.With("module", "records"),
	}
}

// Upload seals content for the project's verifier, or for the producer when
// the project has none yet, and records its fingerprint.
func (s *RecordService) Upload(ctx context.Context, id *auth.Identity, projectID string, in RecordContent) (*models.SealedRecord, error) {
	if err := requireRole(ctx, s.logger, id, access.ResourceRecords, access.ActionCreate); err != nil {
		return nil, err
	}
	if err := validateContent(in); err != nil {
		return nil, err
	}
	if _, err := membership(ctx, s.repos, s.tx.Conn(), id, projectID); err != nil {
		return nil, err
	}

	rec := &models.SealedRecord{
		ProjectID:   projectID,
		ProducerID:  id.PrincipalID,
		Title:       in.Title,
		Description: in.Description,
	}
	if err := s.seal(ctx, rec, in.Content); err != nil {
		return nil, err
	}
	digest := s.ledger.Fingerprint(in.Content)

	err := s.tx.WithinTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		rec, err = s.ledger.RecordCreated(ctx, tx, rec, digest, models.ActionUpload, id.PrincipalID)
		if err != nil {
			return err
		}
		return s.debug.Retain(ctx, tx, rec.ID, in.Content)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "record uploaded", "record_id", rec.ID, "project_id", projectID, "recipient_id", rec.RecipientID)
	return rec, nil
}

// Update replaces the content of a record owned by the caller. The content
// is sealed afresh and the record goes back to pending.
func (s *RecordService) Update(ctx context.Context, id *auth.Identity, recordID string, in RecordContent) (*models.SealedRecord, error) {
	if err := requireRole(ctx, s.logger, id, access.ResourceRecords, access.ActionUpdate); err != nil {
		return nil, err
	}
	if err := validateContent(in); err != nil {
		return nil, err
	}

	var rec *models.SealedRecord
	err := s.tx.WithinTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		rec, err = s.repos.Records(tx).GetForUpdate(ctx, recordID)
		if err != nil {
			return err
		}
		if rec.ProducerID != id.PrincipalID {
			return fmt.Errorf("%w: only the producer may update a record", common.ErrAuthorizationDenied)
		}

		rec.Title = in.Title
		rec.Description = in.Description
		if err := s.seal(ctx, rec, in.Content); err != nil {
			return err
		}
		rec, err = s.ledger.RecordCreated(ctx, tx, rec, s.ledger.Fingerprint(in.Content), models.ActionUpdate, id.PrincipalID)
		if err != nil {
			return err
		}
		return s.debug.Retain(ctx, tx, rec.ID, in.Content)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "record updated", "record_id", rec.ID)
	return rec, nil
}

// Get returns record metadata and envelope without decrypting anything.
// Administrators see every record; others need a project assignment.
func (s *RecordService) Get(ctx context.Context, id *auth.Identity, recordID string) (*models.SealedRecord, error) {
	if err := requireRole(ctx, s.logger, id, access.ResourceRecords, access.ActionRead); err != nil {
		return nil, err
	}
	return s.visibleRecord(ctx, id, recordID)
}

func (s *RecordService) List(ctx context.Context, id *auth.Identity, projectID string) ([]*models.SealedRecord, error) {
	if err := requireRole(ctx, s.logger, id, access.ResourceRecords, access.ActionRead); err != nil {
		return nil, err
	}
	if _, err := membership(ctx, s.repos, s.tx.Conn(), id, projectID); err != nil {
		return nil, err
	}
	return s.repos.Records(s.tx.Conn()).ListByProject(ctx, projectID)
}

// Read decrypts a record for its recipient. The caller's password opens the
// private key. A record whose envelope fails authentication yields
// common.ErrIntegrityFailure.
func (s *RecordService) Read(ctx context.Context, id *auth.Identity, recordID, password string) ([]byte, error) {
	if err := requireRole(ctx, s.logger, id, access.ResourceRecords, access.ActionRead); err != nil {
		return nil, err
	}
	if id.Role == access.RoleAdministrator {
		return nil, fmt.Errorf("%w: administrators cannot read record content", common.ErrAuthorizationDenied)
	}

	rec, err := s.visibleRecord(ctx, id, recordID)
	if err != nil {
		return nil, err
	}
	if rec.RecipientID != id.PrincipalID {
		s.logger.Warn(ctx, "read refused, caller is not the recipient", "record_id", rec.ID, "principal_id", id.PrincipalID)
		return nil, fmt.Errorf("%w: record is not sealed for the caller", common.ErrAuthorizationDenied)
	}

	priv, err := s.privateKey(ctx, id.PrincipalID, password)
	if err != nil {
		return nil, err
	}

	plaintext, err := cryptox.Open(rec.Envelope(), priv)
	if err != nil {
		s.logger.Warn(ctx, "record failed authenticated decryption", "record_id", rec.ID)
		return nil, err
	}
	return plaintext, nil
}

// Verify decrypts the record under a row lock and checks the result against
// the stored fingerprint. Only the recipient can do this, since nobody else
// holds the key. A tampered record is reported through the verdict, not as
// an error.
func (s *RecordService) Verify(ctx context.Context, id *auth.Identity, recordID, password string) (*ledger.Verdict, error) {
	if err := requireRole(ctx, s.logger, id, access.ResourceRecords, access.ActionVerify); err != nil {
		return nil, err
	}

	rec, err := s.visibleRecord(ctx, id, recordID)
	if err != nil {
		return nil, err
	}
	if rec.RecipientID != id.PrincipalID {
		return nil, fmt.Errorf("%w: caller is not the designated verifier", common.ErrAuthorizationDenied)
	}

	priv, err := s.privateKey(ctx, id.PrincipalID, password)
	if err != nil {
		return nil, err
	}

	return s.ledger.Verify(ctx, rec.ID, id.PrincipalID, func(ctx context.Context, locked *models.SealedRecord) ([]byte, error) {
		return cryptox.Open(locked.Envelope(), priv)
	})
}

// SimulateAttack corrupts a record's ciphertext for demonstrations.
func (s *RecordService) SimulateAttack(ctx context.Context, id *auth.Identity, recordID string) error {
	if err := requireRole(ctx, s.logger, id, access.ResourceRecords, access.ActionSimulateAttack); err != nil {
		return err
	}
	if _, err := s.visibleRecord(ctx, id, recordID); err != nil {
		return err
	}
	return s.ledger.SimulateAttack(ctx, recordID, id.PrincipalID)
}

// Delete retires a record. Producers may only delete their own. The audit
// trail, including the delete entry, stays readable through ProjectAuditLog.
func (s *RecordService) Delete(ctx context.Context, id *auth.Identity, recordID string) error {
	if err := requireRole(ctx, s.logger, id, access.ResourceRecords, access.ActionDelete); err != nil {
		return err
	}
	rec, err := s.visibleRecord(ctx, id, recordID)
	if err != nil {
		return err
	}
	if id.Role != access.RoleAdministrator && rec.ProducerID != id.PrincipalID {
		return fmt.Errorf("%w: only the producer may delete a record", common.ErrAuthorizationDenied)
	}
	err = s.tx.WithinTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		locked, err := s.repos.Records(tx).GetForUpdate(ctx, rec.ID)
		if err != nil {
			return err
		}
		if err := s.ledger.RecordDeleted(ctx, tx, locked, id.PrincipalID); err != nil {
			return err
		}
		return s.debug.Forget(ctx, tx, locked.ID)
	})
	if err != nil {
		return err
	}
	s.logger.Info(ctx, "record deleted", "record_id", rec.ID, "by", id.PrincipalID)
	return nil
}

// AuditTrail returns the audit entries of one record, oldest first.
func (s *RecordService) AuditTrail(ctx context.Context, id *auth.Identity, recordID string) ([]*models.AuditEntry, error) {
	if err := requireRole(ctx, s.logger, id, access.ResourceAuditLog, access.ActionRead); err != nil {
		return nil, err
	}
	if _, err := s.visibleRecord(ctx, id, recordID); err != nil {
		return nil, err
	}
	return s.ledger.Trail(ctx, recordID)
}

// ProjectAuditLog returns the trail of every record in a project, including
// records that have since been deleted.
func (s *RecordService) ProjectAuditLog(ctx context.Context, id *auth.Identity, projectID string) ([]*models.AuditEntry, error) {
	if err := requireRole(ctx, s.logger, id, access.ResourceAuditLog, access.ActionRead); err != nil {
		return nil, err
	}
	if _, err := membership(ctx, s.repos, s.tx.Conn(), id, projectID); err != nil {
		return nil, err
	}
	return s.ledger.ProjectTrail(ctx, projectID)
}

// ReadRetained returns the debug plaintext copy of a record to its producer.
// It fails with common.ErrorNotFound unless plaintext retention is enabled.
func (s *RecordService) ReadRetained(ctx context.Context, id *auth.Identity, recordID string) ([]byte, error) {
	if err := requireRole(ctx, s.logger, id, access.ResourceRecords, access.ActionRead); err != nil {
		return nil, err
	}
	rec, err := s.visibleRecord(ctx, id, recordID)
	if err != nil {
		return nil, err
	}
	if rec.ProducerID != id.PrincipalID {
		return nil, fmt.Errorf("%w: only the producer may read the debug copy", common.ErrAuthorizationDenied)
	}
	return s.debug.Read(ctx, rec.ID)
}

func (s *RecordService) visibleRecord(ctx context.Context, id *auth.Identity, recordID string) (*models.SealedRecord, error) {
	rec, err := s.repos.Records(s.tx.Conn()).Get(ctx, recordID)
	if err != nil {
		return nil, err
	}
	if _, err := membership(ctx, s.repos, s.tx.Conn(), id, rec.ProjectID); err != nil {
		s.logger.Warn(ctx, "access denied", "principal_id", id.PrincipalID, "record_id", rec.ID)
		return nil, err
	}
	return rec, nil
}

// seal picks the recipient and fills rec's envelope fields.
func (s *RecordService) seal(ctx context.Context, rec *models.SealedRecord, content []byte) error {
	recipientID, err := s.repos.Projects(s.tx.Conn()).VerifierOf(ctx, rec.ProjectID)
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			return fmt.Errorf("error resolving verifier: %w", err)
		}
		recipientID = rec.ProducerID
	}

	recipient, err := s.repos.Principals(s.tx.Conn()).GetByID(ctx, recipientID)
	if err != nil {
		return fmt.Errorf("error loading recipient: %w", err)
	}
	pub, err := cryptox.ParsePublicKey(recipient.PublicKey)
	if err != nil {
		return fmt.Errorf("error parsing recipient key: %w", err)
	}

	env, err := cryptox.Seal(content, pub)
	if err != nil {
		return fmt.Errorf("error sealing record: %w", err)
	}
	rec.RecipientID = recipient.ID
	rec.SetEnvelope(env)
	return nil
}

func (s *RecordService) privateKey(ctx context.Context, principalID, password string) (*rsa.PrivateKey, error) {
	p, err := s.repos.Principals(s.tx.Conn()).GetByID(ctx, principalID)
	if err != nil {
		return nil, err
	}
	priv, err := s.keys.Open(ctx, p.SealedPrivateKey, []byte(password))
	if err != nil {
		s.logger.Warn(ctx, "private key could not be opened", "principal_id", principalID)
		return nil, err
	}
	return priv, nil
}

func validateContent(in RecordContent) error {
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("%w: title is required", common.ErrorValidation)
	}
	return nil
}
