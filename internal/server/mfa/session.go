// Package mfa implements the second login factor: short-lived six digit
// codes bound to one principal, redeemed at most once for a session token.
package mfa

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/dmitrijs2005/verischol/internal/common"
	"github.com/dmitrijs2005/verischol/internal/dbx"
	"github.com/dmitrijs2005/verischol/internal/logging"
	"github.com/dmitrijs2005/verischol/internal/server/auth"
	"github.com/dmitrijs2005/verischol/internal/server/models"
	"github.com/dmitrijs2005/verischol/internal/server/repositories/otp"
	"github.com/dmitrijs2005/verischol/internal/server/repositories/repomanager"
)

const (
	CodeDigits      = 6
	DefaultValidity = 5 * time.Minute

	issueAttempts = 3
)

var codeSpace = big.NewInt(1_000_000)

type Session struct {
	tx            dbx.Transactor
	repos         repomanager.RepositoryManager
	secretKey     []byte
	codeValidity  time.Duration
	tokenValidity time.Duration
	now           func() time.Time
	logger        logging.Logger
}

func NewSession(tx dbx.Transactor, repos repomanager.RepositoryManager, secretKey []byte, codeValidity, tokenValidity time.Duration, logger logging.Logger) *Session {
	if codeValidity <= 0 {
		codeValidity = DefaultValidity
	}
	return &Session{
		tx:            tx,
		repos:         repos,
		secretKey:     secretKey,
		codeValidity:  codeValidity,
		tokenValidity: tokenValidity,
		now:           time.Now,
		logger:        logger.With("module", "mfa"),
	}
}

// WithClock replaces the time source.
func (s *Session) WithClock(now func() time.Time) *Session {
	s.now = now
	return s
}

// Issue supersedes every code still open for the principal and stores a new
// one. Both steps commit together. When a concurrent Issue stores its code
// first, the attempt is repeated so the later caller's code wins.
func (s *Session) Issue(ctx context.Context, principalID string) (*models.OneTimeCode, error) {
	code, err := generateCode()
	if err != nil {
		return nil, fmt.Errorf("generate code: %w", err)
	}

	var issued *models.OneTimeCode
	for attempt := 1; ; attempt++ {
		err = s.tx.WithinTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
			repo := s.repos.OTP(tx)
			if err := repo.Supersede(ctx, principalID); err != nil {
				return err
			}
			issued, err = repo.Create(ctx, &models.OneTimeCode{
				PrincipalID: principalID,
				Code:        code,
				ExpiresAt:   s.now().Add(s.codeValidity),
			})
			return err
		})
		if !errors.Is(err, common.ErrorAlreadyExists) || attempt == issueAttempts {
			break
		}
		s.logger.Warn(ctx, "concurrent code issue, retrying", "principal_id", principalID, "attempt", attempt)
	}
	if err != nil {
		return nil, fmt.Errorf("issue code: %w", err)
	}

	s.logger.Info(ctx, "one-time code issued", "principal_id", principalID, "expires_at", issued.ExpiresAt)
	return issued, nil
}

// Redeem checks code against the principal's latest code and, on success,
// returns a signed session token. A wrong or expired code yields
// common.ErrOtpInvalidOrExpired, as does a code superseded by a concurrent
// Issue; a code that was already redeemed, including by a concurrent caller,
// yields common.ErrOtpAlreadyUsed.
func (s *Session) Redeem(ctx context.Context, principal *models.Principal, code string) (string, error) {
	repo := s.repos.OTP(s.tx.Conn())

	latest, err := repo.Latest(ctx, principal.ID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrOtpInvalidOrExpired
		}
		return "", fmt.Errorf("load code: %w", err)
	}

	now := s.now()
	if subtle.ConstantTimeCompare([]byte(latest.Code), []byte(code)) != 1 || latest.Expired(now) {
		s.logger.Warn(ctx, "one-time code rejected", "principal_id", principal.ID)
		return "", common.ErrOtpInvalidOrExpired
	}
	if latest.State == models.OTPVerified {
		return "", common.ErrOtpAlreadyUsed
	}

	ok, err := repo.MarkVerified(ctx, latest.ID, now)
	if err != nil {
		return "", fmt.Errorf("consume code: %w", err)
	}
	if !ok {
		return "", s.lostRace(ctx, repo, principal.ID, latest.ID)
	}

	token, err := auth.GenerateToken(auth.Identity{
		PrincipalID: principal.ID,
		Email:       principal.Email,
		Role:        principal.Role,
	}, s.secretKey, s.tokenValidity)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	s.logger.Info(ctx, "second factor accepted", "principal_id", principal.ID)
	return token, nil
}

// lostRace classifies a failed consume. The code is still the principal's
// latest only when another caller verified it first.
func (s *Session) lostRace(ctx context.Context, repo otp.Repository, principalID, codeID string) error {
	current, err := repo.Latest(ctx, principalID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrOtpInvalidOrExpired
		}
		return fmt.Errorf("reload code: %w", err)
	}
	if current.ID == codeID && current.State == models.OTPVerified {
		return common.ErrOtpAlreadyUsed
	}
	s.logger.Warn(ctx, "one-time code superseded while redeeming", "principal_id", principalID)
	return common.ErrOtpInvalidOrExpired
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, codeSpace)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", CodeDigits, n.Int64()), nil
}
