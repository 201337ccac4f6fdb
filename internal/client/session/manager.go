// Package session owns the client's identity lifecycle: acquiring an
// identity (interactive, anonymous, or guest), restoring a prior session,
// and keeping the identity-bound remote client in step with it.
package session

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/notechain/notechain/internal/identity"
	"github.com/notechain/notechain/internal/client/remote"
	"github.com/notechain/notechain/internal/common"
	"github.com/notechain/notechain/internal/logging"
)

// Mode tags the session's authentication state.
type Mode string

const (
	ModeUnauthenticated Mode = "unauthenticated"
	ModeInteractive     Mode = "interactive"
	ModeAnonymous       Mode = "anonymous"
	ModeGuest           Mode = "guest"
)

// GuestPrincipal is the displayable principal of guest sessions, which have
// no backing remote identity.
const GuestPrincipal = "guest-user"

// CredentialStore persists the session credential between runs.
type CredentialStore interface {
	SaveCredential(identity.Credential) error
	LoadCredential() (identity.Credential, error)
	ClearCredential() error
}

// IdentityProvider performs the interactive acquisition round trip and
// returns a delegation token on success.
type IdentityProvider interface {
	Login(ctx context.Context, username string, password []byte) (string, error)
}

// ClientFactory builds a remote client bound to an identity.
type ClientFactory func(id *identity.Identity) (remote.Client, error)

// Status is a read-only snapshot of the session, safe for the view layer
// to hold across a render.
type Status struct {
	Authenticated bool
	Mode          Mode
	Principal     string
}

// Manager is the single owner of the identity/client pair. It is explicitly
// constructed and injected into the view layer; there is no package-level
// session state.
type Manager struct {
	creds    CredentialStore
	provider IdentityProvider
	factory  ClientFactory
	logger   logging.Logger

	// Concurrent logins share one in-flight acquisition: a second caller
	// waits for and receives the first caller's result.
	flight singleflight.Group

	mu          sync.Mutex
	initialized bool
	mode        Mode
	principal   string
	identity    *identity.Identity
	client      remote.Client
}

// NewManager constructs an unauthenticated session manager.
func NewManager(creds CredentialStore, provider IdentityProvider, factory ClientFactory, logger logging.Logger) *Manager {
	return &Manager{
		creds:    creds,
		provider: provider,
		factory:  factory,
		logger:   logger,
		mode:     ModeUnauthenticated,
	}
}

// Initialize attempts to restore a previously established session from the
// persisted credential. It is idempotent: once it has run, further calls
// are no-ops. A missing credential is not an error; the session simply
// stays unauthenticated.
func (m *Manager) Initialize(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}
	m.initialized = true

	cred, err := m.creds.LoadCredential()
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			m.logger.Warn(ctx, "could not read persisted credential", "error", err)
		}
		return nil
	}

	id, err := identity.FromCredential(cred)
	if err != nil {
		m.logger.Warn(ctx, "persisted credential is invalid, discarding", "error", err)
		_ = m.creds.ClearCredential()
		return nil
	}

	m.installLocked(ctx, id, modeForKind(id.Kind()))
	m.logger.Info(ctx, "session restored", "mode", m.mode, "principal", m.principal)
	return nil
}

func modeForKind(k identity.Kind) Mode {
	if k == identity.KindInteractive {
		return ModeInteractive
	}
	return ModeAnonymous
}

// LoginInteractive delegates to the identity provider and, on success,
// installs the returned delegation as the session identity. On failure the
// session is left unauthenticated.
func (m *Manager) LoginInteractive(ctx context.Context, username string, password []byte) error {
	defer common.WipeByteArray(password)
	return m.loginSingleFlight(func() error {
		token, err := m.provider.Login(ctx, username, password)
		if err != nil {
			m.logger.Error(ctx, "interactive login failed", "error", err)
			return err
		}
		id, err := identity.NewInteractive(token)
		if err != nil {
			return err
		}
		m.install(ctx, id, ModeInteractive)
		return nil
	})
}

// LoginAnonymous synthesizes a local identity with no external round trip.
func (m *Manager) LoginAnonymous(ctx context.Context) error {
	return m.loginSingleFlight(func() error {
		id, err := identity.NewAnonymous()
		if err != nil {
			return err
		}
		m.install(ctx, id, ModeAnonymous)
		return nil
	})
}

// LoginGuest marks the session authenticated with no identity handle and no
// remote client; the local note store becomes the data source.
func (m *Manager) LoginGuest(ctx context.Context) error {
	return m.loginSingleFlight(func() error {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.dropClientLocked()
		m.identity = nil
		m.mode = ModeGuest
		m.principal = GuestPrincipal
		m.logger.Info(ctx, "guest login successful")
		return nil
	})
}

// loginSingleFlight collapses concurrent login attempts onto one in-flight
// acquisition, whatever their requested mode.
func (m *Manager) loginSingleFlight(fn func() error) error {
	_, err, _ := m.flight.Do("login", func() (any, error) {
		return nil, fn()
	})
	return err
}

// install makes id the active identity, persists its credential, and
// rebinds the remote client.
func (m *Manager) install(ctx context.Context, id *identity.Identity, mode Mode) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.installLocked(ctx, id, mode)

	if err := m.creds.SaveCredential(id.Credential()); err != nil {
		// The session stays valid; only restore-on-restart is lost.
		m.logger.Warn(ctx, "could not persist credential", "error", err)
	}
}

func (m *Manager) installLocked(ctx context.Context, id *identity.Identity, mode Mode) {
	m.dropClientLocked()
	m.identity = id
	m.mode = mode
	m.principal = id.Principal()
	m.createClientLocked(ctx)
}

// createClientLocked constructs the remote client for the current identity.
// On failure the client stays nil and the condition is logged; a client from
// a previous identity is never left behind.
func (m *Manager) createClientLocked(ctx context.Context) {
	if m.identity == nil {
		return
	}
	client, err := m.factory(m.identity)
	if err != nil {
		m.logger.Error(ctx, "could not create note service client", "error", err)
		m.client = nil
		return
	}
	m.client = client
}

func (m *Manager) dropClientLocked() {
	if m.client != nil {
		_ = m.client.Close()
		m.client = nil
	}
}

// Logout clears identity, principal, and remote client, returning the
// session to unauthenticated. Logging out with no active session is safe.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.dropClientLocked()
	m.identity = nil
	m.principal = ""
	m.mode = ModeUnauthenticated

	if err := m.creds.ClearCredential(); err != nil {
		m.logger.Warn(ctx, "could not clear persisted credential", "error", err)
	}
	m.logger.Info(ctx, "logout successful")
}

// IsAuthenticated reports whether any login (including guest) is active.
func (m *Manager) IsAuthenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mode != ModeUnauthenticated
}

// Mode returns the current session mode.
func (m *Manager) Mode() Mode {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mode
}

// Principal returns the displayable principal, or "" when unauthenticated.
func (m *Manager) Principal() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.principal
}

// Client returns the identity-bound remote client. It is non-nil exactly
// when the session is in a remote-backed mode and client construction
// succeeded; guest and unauthenticated sessions always get nil.
func (m *Manager) Client() remote.Client {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.client
}

// Status returns a point-in-time snapshot for rendering.
func (m *Manager) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Status{
		Authenticated: m.mode != ModeUnauthenticated,
		Mode:          m.mode,
		Principal:     m.principal,
	}
}
