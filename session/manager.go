// Package session owns the answer to "is the user logged in, and as whom".
// The Manager is the single writer of session state, reconciling three input
// channels: the durable token store, claims decoded from the access token,
// and the backend identity endpoint. Everything else reads projections.
package session

import (
	"context"
	"sync"

	"github.com/insightworks/insights-cli/api"
	"github.com/insightworks/insights-cli/httpclient"
	"github.com/insightworks/insights-cli/token/claims"
	"github.com/insightworks/insights-cli/tokenstore"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// User is the current display identity. Derived from token claims right
// after login, then superseded by the backend-confirmed identity when the
// me call succeeds.
type User = claims.Identity

// IdentityFetcher fetches the backend-confirmed identity for the current
// access token.
type IdentityFetcher interface {
	Me(ctx context.Context) (api.User, error)
}

// Manager derives and mutates session state. All mutation goes through
// Login, Logout, RefreshMe and the forced-logout subscription; resource code
// never writes session state directly.
type Manager struct {
	store tokenstore.Repo
	me    IdentityFetcher
	log   zerolog.Logger

	lock        sync.Mutex
	accessToken string
	user        *User

	// epoch increments on every login and logout so a late identity
	// response from a previous session generation can be recognized and
	// discarded instead of resurrecting stale state.
	epoch uint64

	unsubscribe func()
}

// ManagerOption mutates the Manager during construction.
type ManagerOption func(*Manager)

// WithLogger sets the logger used for the otherwise-invisible identity
// refresh failures and discards.
func WithLogger(log zerolog.Logger) ManagerOption {
	return func(m *Manager) {
		m.log = log
	}
}

// NewManager builds a manager whose initial state mirrors whatever the store
// already holds, so a stored login survives process restarts. It subscribes
// to the forced-logout broadcaster immediately; call Close to detach.
func NewManager(store tokenstore.Repo, me IdentityFetcher, logouts *httpclient.LogoutBroadcaster, options ...ManagerOption) (*Manager, error) {
	if store == nil {
		return nil, errors.New("[NewManager] token store is required")
	}
	if me == nil {
		return nil, errors.New("[NewManager] identity fetcher is required")
	}
	if logouts == nil {
		return nil, errors.New("[NewManager] logout broadcaster is required")
	}

	m := &Manager{
		store: store,
		me:    me,
		log:   zerolog.Nop(),
	}
	for _, opt := range options {
		opt(m)
	}

	token := store.Access()
	m.accessToken = token
	m.user = claims.FromToken(token)

	m.unsubscribe = logouts.Subscribe(m.handleForcedLogout)
	return m, nil
}

// Close detaches the manager from the forced-logout broadcaster.
func (m *Manager) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
}

// IsAuthenticated reports whether an access token is held. True does not
// imply the backend still accepts the token; that is decided per request.
func (m *Manager) IsAuthenticated() bool {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.accessToken != ""
}

// AccessToken returns the current access token, or "".
func (m *Manager) AccessToken() string {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.accessToken
}

// User returns the current display identity, or nil when logged out.
func (m *Manager) User() *User {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.user
}

// Login persists the pair and establishes the claims-derived identity before
// the identity refresh is issued, so IsAuthenticated is true the moment
// Login's persistence step completes. The refresh is best-effort: on failure
// the claims-derived identity stays in place and no error is surfaced.
func (m *Manager) Login(ctx context.Context, pair tokenstore.Pair) error {
	m.lock.Lock()
	if err := m.store.SetTokens(pair); err != nil {
		m.lock.Unlock()
		return errors.Wrap(err, "[Manager.Login] persisting tokens")
	}
	m.accessToken = pair.Access
	m.user = claims.FromToken(pair.Access)
	m.epoch++
	epoch := m.epoch
	m.lock.Unlock()

	m.refreshIdentity(ctx, epoch)
	return nil
}

// Logout clears the store and resets session state. Local only; server-side
// invalidation is a separate best-effort call made by the frontend.
func (m *Manager) Logout() {
	m.reset()
}

// RefreshMe re-fetches the backend identity. A no-op when no token is held.
// Failures are swallowed: identity refresh is best-effort and the existing
// identity stays authoritative.
func (m *Manager) RefreshMe(ctx context.Context) {
	m.lock.Lock()
	if m.accessToken == "" {
		m.lock.Unlock()
		return
	}
	epoch := m.epoch
	m.lock.Unlock()

	m.refreshIdentity(ctx, epoch)
}

// Bootstrap runs the process-start behaviour: if a token was restored from
// the store, attempt one identity refresh. Without a token nothing happens.
func (m *Manager) Bootstrap(ctx context.Context) {
	m.RefreshMe(ctx)
}

func (m *Manager) handleForcedLogout() {
	// The HTTP layer already cleared the store; clearing again is harmless
	// and keeps this path correct if the broadcast ever comes from elsewhere.
	m.reset()
}

func (m *Manager) reset() {
	m.lock.Lock()
	defer m.lock.Unlock()

	if err := m.store.Clear(); err != nil {
		m.log.Error().Err(err).Msg("clearing token store on logout")
	}
	m.accessToken = ""
	m.user = nil
	m.epoch++
}

// refreshIdentity applies the me response only if the session generation it
// was issued for is still current and the store still holds a token. A stale
// response is logged and dropped; it must never resurrect IsAuthenticated.
func (m *Manager) refreshIdentity(ctx context.Context, epoch uint64) {
	confirmed, err := m.me.Me(ctx)
	if err != nil {
		m.log.Debug().Err(err).Msg("identity refresh failed, keeping current identity")
		return
	}

	m.lock.Lock()
	defer m.lock.Unlock()

	if m.epoch != epoch || m.store.Access() == "" {
		m.log.Debug().
			Uint64("issued_epoch", epoch).
			Uint64("current_epoch", m.epoch).
			Msg("discarding identity response from a stale session")
		return
	}

	id := confirmed.ID
	m.user = &User{ID: &id, Username: confirmed.Username}
}
