// Package debugcopy keeps plaintext copies of record content for debugging.
// It is inert unless the server was started with plaintext retention
// enabled, and nothing on the regular read or verification paths uses it.
package debugcopy

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/verischol/internal/common"
	"github.com/dmitrijs2005/verischol/internal/dbx"
	"github.com/dmitrijs2005/verischol/internal/logging"
	"github.com/dmitrijs2005/verischol/internal/server/repositories/repomanager"
)

type Store struct {
	enabled bool
	tx      dbx.Transactor
	repos   repomanager.RepositoryManager
	logger  logging.Logger
}

func New(enabled bool, tx dbx.Transactor, repos repomanager.RepositoryManager, logger logging.Logger) *Store {
	s := &Store{enabled: enabled, tx: tx, repos: repos, logger: logger.With("module", "debugcopy")}
	if enabled {
		s.logger.Warn(context.Background(), "plaintext retention is enabled; do not run this configuration in production")
	}
	return s
}

func (s *Store) Enabled() bool {
	return s.enabled
}

// Retain stores content for recordID through db, normally the transaction
// that wrote the record. It does nothing when retention is disabled.
func (s *Store) Retain(ctx context.Context, db dbx.DBTX, recordID string, content []byte) error {
	if !s.enabled {
		return nil
	}
	if err := s.repos.Plaintexts(db).Put(ctx, recordID, content); err != nil {
		return fmt.Errorf("retain plaintext: %w", err)
	}
	s.logger.Debug(ctx, "plaintext retained", "record_id", recordID)
	return nil
}

// Forget drops the copy kept for recordID, if any. It runs whether or not
// retention is currently enabled, so copies from an earlier run go too.
func (s *Store) Forget(ctx context.Context, db dbx.DBTX, recordID string) error {
	if err := s.repos.Plaintexts(db).Drop(ctx, recordID); err != nil {
		return fmt.Errorf("drop plaintext: %w", err)
	}
	return nil
}

// Read returns the retained copy. With retention disabled it reports
// common.ErrorNotFound, as if nothing had been kept.
func (s *Store) Read(ctx context.Context, recordID string) ([]byte, error) {
	if !s.enabled {
		return nil, common.ErrorNotFound
	}
	p, err := s.repos.Plaintexts(s.tx.Conn()).Get(ctx, recordID)
	if err != nil {
		return nil, err
	}
	return p.Content, nil
}
