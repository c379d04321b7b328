package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode"

	"github.com/dmitrijs2005/verischol/internal/common"
	"github.com/dmitrijs2005/verischol/internal/dbx"
	"github.com/dmitrijs2005/verischol/internal/logging"
	"github.com/dmitrijs2005/verischol/internal/server/access"
	"github.com/dmitrijs2005/verischol/internal/server/auth"
	"github.com/dmitrijs2005/verischol/internal/server/mfa"
	"github.com/dmitrijs2005/verischol/internal/server/models"
	"github.com/dmitrijs2005/verischol/internal/server/repositories/repomanager"
	"golang.org/x/crypto/bcrypt"
)

// CodeSender delivers a freshly issued one-time code to its principal.
type CodeSender interface {
	SendCode(ctx context.Context, p *models.Principal, code *models.OneTimeCode) error
}

// LogCodeSender "delivers" codes by writing them to the log. It stands in for
// email delivery in development setups.
type LogCodeSender struct {
	logger logging.Logger
}

func NewLogCodeSender(logger logging.Logger) *LogCodeSender {
	return &LogCodeSender{logger: logger.With("module", "code_sender")}
}

func (s *LogCodeSender) SendCode(ctx context.Context, p *models.Principal, code *models.OneTimeCode) error {
	s.logger.Info(ctx, "one-time code", "email", p.Email, "otp", code.Code, "expires_at", code.ExpiresAt)
	return nil
}

// LoginChallenge is returned after the password step. DemoCode is only set
// when the service runs in debug mode.
type LoginChallenge struct {
	PrincipalID string
	SentTo      string
	ExpiresAt   time.Time
	DemoCode    string
}

type IdentityService struct {
	tx       dbx.Transactor
	repos    repomanager.RepositoryManager
	keys     *KeyRing
	session  *mfa.Session
	sender   CodeSender
	logger   logging.Logger
	demoCode bool

	// dummyHash is compared against when the email is unknown so that both
	// branches of Login cost one bcrypt comparison.
	dummyHash []byte
}

func NewIdentityService(tx dbx.Transactor, repos repomanager.RepositoryManager, keys *KeyRing, session *mfa.Session, sender CodeSender, logger logging.Logger) *IdentityService {
	dummy, err := bcrypt.GenerateFromPassword([]byte("verischol-dummy-password"), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return &IdentityService{
		tx:        tx,
		repos:     repos,
		keys:      keys,
		session:   session,
		sender:    sender,
		logger:    logger.With("module", "identity"),
		dummyHash: dummy,
	}
}

// WithDemoCode makes Login echo the issued code back to the caller.
func (s *IdentityService) WithDemoCode(enabled bool) *IdentityService {
	s.demoCode = enabled
	return s
}

// Register creates a principal with a fresh key pair whose private half is
// sealed under password. Administrators can only self-register while no
// principal exists yet.
func (s *IdentityService) Register(ctx context.Context, username, email, password string, role access.Role) (*models.Principal, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))

	if username == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: username, email and password are required", common.ErrorValidation)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: malformed email", common.ErrorValidation)
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role", common.ErrorValidation)
	}
	if err := ValidatePassword(password); err != nil {
		return nil, err
	}

	repo := s.repos.Principals(s.tx.Conn())

	exists, err := repo.Exists(ctx, email, username)
	if err != nil {
		return nil, fmt.Errorf("error checking principal: %w", err)
	}
	if exists {
		return nil, common.ErrorAlreadyExists
	}

	if role == access.RoleAdministrator {
		all, err := repo.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("error listing principals: %w", err)
		}
		if len(all) > 0 {
			return nil, fmt.Errorf("%w: administrators are appointed by an administrator", common.ErrAuthorizationDenied)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	publicKey, sealed, err := s.keys.Provision(ctx, []byte(password))
	if err != nil {
		return nil, fmt.Errorf("error provisioning keys: %w", err)
	}

	p, err := repo.Create(ctx, &models.Principal{
		Username:         username,
		Email:            email,
		PasswordHash:     hash,
		Role:             role,
		PublicKey:        publicKey,
		SealedPrivateKey: sealed,
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating principal: %w", err)
	}

	s.logger.Info(ctx, "principal registered", "principal_id", p.ID, "role", p.Role.String())
	return p, nil
}

// Login checks the password and issues a one-time code. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *IdentityService) Login(ctx context.Context, email, password string) (*LoginChallenge, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	p, err := s.repos.Principals(s.tx.Conn()).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
			return nil, common.ErrAuthenticationFailure
		}
		return nil, fmt.Errorf("error loading principal: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(p.PasswordHash, []byte(password)); err != nil {
		s.logger.Warn(ctx, "password rejected", "principal_id", p.ID)
		return nil, common.ErrAuthenticationFailure
	}

	code, err := s.session.Issue(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	if err := s.sender.SendCode(ctx, p, code); err != nil {
		return nil, fmt.Errorf("error sending code: %w", err)
	}

	ch := &LoginChallenge{PrincipalID: p.ID, SentTo: p.Email, ExpiresAt: code.ExpiresAt}
	if s.demoCode {
		ch.DemoCode = code.Code
	}
	return ch, nil
}

// VerifyOTP redeems a one-time code and returns a session token.
func (s *IdentityService) VerifyOTP(ctx context.Context, principalID, code string) (string, *models.Principal, error) {
	p, err := s.repos.Principals(s.tx.Conn()).GetByID(ctx, principalID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", nil, common.ErrOtpInvalidOrExpired
		}
		return "", nil, fmt.Errorf("error loading principal: %w", err)
	}

	token, err := s.session.Redeem(ctx, p, code)
	if err != nil {
		return "", nil, err
	}
	return token, p, nil
}

func (s *IdentityService) Profile(ctx context.Context, id *auth.Identity) (*models.Principal, error) {
	return s.repos.Principals(s.tx.Conn()).GetByID(ctx, id.PrincipalID)
}

// ListPrincipals is limited to administrators.
func (s *IdentityService) ListPrincipals(ctx context.Context, id *auth.Identity) ([]*models.Principal, error) {
	if err := requireRole(ctx, s.logger, id, access.ResourceSystemSettings, access.ActionRead); err != nil {
		return nil, err
	}
	return s.repos.Principals(s.tx.Conn()).List(ctx)
}

// ChangeRole sets the global role of another principal. Administrators
// cannot change their own role, so the system always keeps one. Project
// assignments held under the old role are dropped with it, so a demoted
// verifier stops being picked as the recipient of new records.
func (s *IdentityService) ChangeRole(ctx context.Context, id *auth.Identity, principalID string, role access.Role) error {
	if err := requireRole(ctx, s.logger, id, access.ResourceSystemSettings, access.ActionUpdate); err != nil {
		return err
	}
	if !role.Valid() {
		return fmt.Errorf("%w: unknown role", common.ErrorValidation)
	}
	if principalID == id.PrincipalID {
		return fmt.Errorf("%w: cannot change own role", common.ErrorValidation)
	}
	var dropped int64
	err := s.tx.WithinTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repos.Principals(tx).UpdateRole(ctx, principalID, role); err != nil {
			return err
		}
		var err error
		dropped, err = s.repos.Projects(tx).ClearMismatchedAssignments(ctx, principalID, role)
		return err
	})
	if err != nil {
		return err
	}
	s.logger.Info(ctx, "role changed", "principal_id", principalID, "role", role.String(), "by", id.PrincipalID, "assignments_dropped", dropped)
	return nil
}

// ChangePassword re-seals the caller's private key under a new password. The
// key pair itself does not change, so existing records stay readable.
func (s *IdentityService) ChangePassword(ctx context.Context, id *auth.Identity, oldPassword, newPassword string) error {
	if err := ValidatePassword(newPassword); err != nil {
		return err
	}

	return s.tx.WithinTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repos.Principals(tx)
		p, err := repo.GetByID(ctx, id.PrincipalID)
		if err != nil {
			return err
		}
		if err := bcrypt.CompareHashAndPassword(p.PasswordHash, []byte(oldPassword)); err != nil {
			return common.ErrAuthenticationFailure
		}

		priv, err := s.keys.Open(ctx, p.SealedPrivateKey, []byte(oldPassword))
		if err != nil {
			return err
		}
		sealed, err := s.keys.Reseal(ctx, priv, []byte(newPassword))
		if err != nil {
			return fmt.Errorf("error sealing key: %w", err)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("error hashing password: %w", err)
		}
		return repo.UpdateCredentials(ctx, p.ID, hash, sealed)
	})
}

// ValidatePassword enforces the password policy: at least eight characters
// with upper and lower case letters, a digit and a symbol.
func ValidatePassword(password string) error {
	var upper, lower, digit, symbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			symbol = true
		}
	}

	var missing []string
	if len([]rune(password)) < 8 {
		missing = append(missing, "at least 8 characters")
	}
	if !upper {
		missing = append(missing, "an uppercase letter")
	}
	if !lower {
		missing = append(missing, "a lowercase letter")
	}
	if !digit {
		missing = append(missing, "a digit")
	}
	if !symbol {
		missing = append(missing, "a symbol")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: password needs %s", common.ErrorValidation, strings.Join(missing, ", "))
	}
	return nil
}
