package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/verischol/internal/cryptox"
	"github.com/dmitrijs2005/verischol/internal/logging"
	"github.com/dmitrijs2005/verischol/internal/server/access"
	"github.com/dmitrijs2005/verischol/internal/server/auth"
	sc "github.com/dmitrijs2005/verischol/internal/server/config"
	"github.com/dmitrijs2005/verischol/internal/server/debugcopy"
	"github.com/dmitrijs2005/verischol/internal/server/ledger"
	"github.com/dmitrijs2005/verischol/internal/server/mfa"
	"github.com/dmitrijs2005/verischol/internal/server/models"
	"github.com/dmitrijs2005/verischol/internal/server/repositories/memory"
	"github.com/stretchr/testify/require"
)

const (
	testSecret   = "test-secret"
	testPassword = "Str0ng!Passw0rd"
)

type captureSender struct {
	mu    sync.Mutex
	codes map[string]string
}

func (c *captureSender) SendCode(_ context.Context, p *models.Principal, code *models.OneTimeCode) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.codes == nil {
		c.codes = map[string]string{}
	}
	c.codes[p.ID] = code.Code
	return nil
}

func (c *captureSender) last(principalID string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.codes[principalID]
}

type harness struct {
	store    *memory.Store
	manager  *memory.Manager
	tx       *memory.Transactor
	config   *sc.Config
	ledger   *ledger.Ledger
	sender   *captureSender
	identity *IdentityService
	projects *ProjectService
	records  *RecordService
	reports  *ReportService
}

func newHarness(t *testing.T, retainPlaintext bool) *harness {
	t.Helper()

	store := memory.NewStore()
	m := memory.NewManager(store)
	tr := memory.NewTransactor(store)
	log := logging.Discard()

	cfg := &sc.Config{}
	cfg.LoadDefaults()
	cfg.SecretKey = testSecret
	cfg.DebugRetainPlaintext = retainPlaintext

	custody, err := cryptox.NewKeyCustody(cryptox.ScryptParams{CostLog2: cryptox.MinScryptCostLog2, R: 8, P: 1})
	require.NoError(t, err)
	keys := NewKeyRing(custody, 2)

	l := ledger.New(tr, m, []byte(cfg.SystemSalt), log)
	session := mfa.NewSession(tr, m, []byte(cfg.SecretKey), cfg.OTPValidityDuration, cfg.SessionTokenValidityDuration, log)
	sender := &captureSender{}
	debug := debugcopy.New(cfg.DebugRetainPlaintext, tr, m, log)

	return &harness{
		store:    store,
		manager:  m,
		tx:       tr,
		config:   cfg,
		ledger:   l,
		sender:   sender,
		identity: NewIdentityService(tr, m, keys, session, sender, log),
		projects: NewProjectService(tr, m, log),
		records:  NewRecordService(tr, m, keys, l, debug, log),
		reports:  NewReportService(tr, m, cfg, log),
	}
}

// register creates a principal directly with the given role, bypassing the
// administrator bootstrap rule.
func (h *harness) register(t *testing.T, name string, role access.Role) *models.Principal {
	t.Helper()
	ctx := context.Background()

	p, err := h.identity.Register(ctx, name, name+"@example.com", testPassword, access.RoleProducer)
	require.NoError(t, err)
	if role != access.RoleProducer {
		require.NoError(t, h.manager.Principals(nil).UpdateRole(ctx, p.ID, role))
		p.Role = role
	}
	return p
}

// login runs both factors and returns the identity carried by the token.
func (h *harness) login(t *testing.T, p *models.Principal) *auth.Identity {
	t.Helper()
	ctx := context.Background()

	ch, err := h.identity.Login(ctx, p.Email, testPassword)
	require.NoError(t, err)
	token, _, err := h.identity.VerifyOTP(ctx, ch.PrincipalID, h.sender.last(p.ID))
	require.NoError(t, err)

	id, err := auth.ParseToken(token, []byte(testSecret))
	require.NoError(t, err)
	return id
}

type cast struct {
	admin, alice, bob, carol *auth.Identity
	project                  *models.Project
}

// setup registers an administrator, two producers (alice, carol) and a
// verifier (bob), and puts alice and bob on one project.
func (h *harness) setup(t *testing.T) *cast {
	t.Helper()
	ctx := context.Background()

	admin := h.register(t, "admin", access.RoleAdministrator)
	alice := h.register(t, "alice", access.RoleProducer)
	bob := h.register(t, "bob", access.RoleVerifier)
	carol := h.register(t, "carol", access.RoleProducer)

	c := &cast{
		admin: h.login(t, admin),
		alice: h.login(t, alice),
		bob:   h.login(t, bob),
		carol: h.login(t, carol),
	}

	prj, err := h.projects.Create(ctx, c.admin, "Trial 7", "phase II")
	require.NoError(t, err)
	require.NoError(t, h.projects.Assign(ctx, c.admin, prj.ID, alice.ID, access.RoleProducer))
	require.NoError(t, h.projects.Assign(ctx, c.admin, prj.ID, bob.ID, access.RoleVerifier))
	c.project = prj
	return c
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
