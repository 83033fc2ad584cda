package session_test

import (
	"context"
	"encoding/base64"
	"sync"
	"testing"

	"github.com/insightworks/insights-cli/api"
	"github.com/insightworks/insights-cli/httpclient"
	"github.com/insightworks/insights-cli/session"
	"github.com/insightworks/insights-cli/tokenstore"
	faketokenstore "github.com/insightworks/insights-cli/tokenstore/repofake"
	"github.com/stretchr/testify/require"
)

type fakeIdentityFetcher struct {
	lock  sync.Mutex
	user  api.User
	err   error
	calls int

	// onCall runs inside Me, before returning, letting tests observe state
	// mid-refresh or block until released.
	onCall func()
}

func (f *fakeIdentityFetcher) Me(_ context.Context) (api.User, error) {
	f.lock.Lock()
	f.calls++
	user, err, onCall := f.user, f.err, f.onCall
	f.lock.Unlock()

	if onCall != nil {
		onCall()
	}
	return user, err
}

func (f *fakeIdentityFetcher) callCount() int {
	f.lock.Lock()
	defer f.lock.Unlock()
	return f.calls
}

func tokenFor(payload string) string {
	return "h." + base64.RawURLEncoding.EncodeToString([]byte(payload)) + ".s"
}

type fixture struct {
	store   *faketokenstore.FakeTokenStore
	me      *fakeIdentityFetcher
	logouts *httpclient.LogoutBroadcaster
	manager *session.Manager
}

func setup(t *testing.T, me *fakeIdentityFetcher) *fixture {
	t.Helper()

	f := &fixture{
		store:   faketokenstore.NewFakeTokenStore(),
		me:      me,
		logouts: httpclient.NewLogoutBroadcaster(),
	}
	if f.me == nil {
		f.me = &fakeIdentityFetcher{user: api.User{ID: 1, Username: "confirmed"}}
	}

	manager, err := session.NewManager(f.store, f.me, f.logouts)
	require.NoError(t, err)
	t.Cleanup(manager.Close)

	f.manager = manager
	return f
}

func TestNewManager_Validation(t *testing.T) {
	store := faketokenstore.NewFakeTokenStore()
	me := &fakeIdentityFetcher{}
	logouts := httpclient.NewLogoutBroadcaster()

	t.Run("store required", func(t *testing.T) {
		_, err := session.NewManager(nil, me, logouts)
		require.Error(t, err)
	})

	t.Run("identity fetcher required", func(t *testing.T) {
		_, err := session.NewManager(store, nil, logouts)
		require.Error(t, err)
	})

	t.Run("broadcaster required", func(t *testing.T) {
		_, err := session.NewManager(store, me, nil)
		require.Error(t, err)
	})
}

func TestNewManager_RestoresStoredSession(t *testing.T) {
	store := faketokenstore.NewFakeTokenStore()
	require.NoError(t, store.SetTokens(tokenstore.Pair{
		Access:  tokenFor(`{"username":"restored","user_id":5}`),
		Refresh: "r",
	}))

	me := &fakeIdentityFetcher{}
	manager, err := session.NewManager(store, me, httpclient.NewLogoutBroadcaster())
	require.NoError(t, err)
	defer manager.Close()

	require.True(t, manager.IsAuthenticated())
	user := manager.User()
	require.NotNil(t, user)
	require.Equal(t, "restored", user.Username)
	require.NotNil(t, user.ID)
	require.EqualValues(t, 5, *user.ID)
	require.Zero(t, me.callCount(), "construction alone must not call the identity endpoint")
}

func TestNewManager_LoggedOutWithoutStoredToken(t *testing.T) {
	f := setup(t, nil)

	require.False(t, f.manager.IsAuthenticated())
	require.Nil(t, f.manager.User())
	require.Empty(t, f.manager.AccessToken())
}

func TestLogin(t *testing.T) {
	pair := tokenstore.Pair{Access: tokenFor(`{"username":"fromClaims"}`), Refresh: "r1"}

	t.Run("authenticated before the identity refresh resolves", func(t *testing.T) {
		me := &fakeIdentityFetcher{user: api.User{ID: 99, Username: "fromMe"}}
		f := setup(t, me)

		var authedDuringRefresh bool
		var userDuringRefresh *session.User
		me.onCall = func() {
			authedDuringRefresh = f.manager.IsAuthenticated()
			userDuringRefresh = f.manager.User()
		}

		require.NoError(t, f.manager.Login(context.Background(), pair))

		require.True(t, authedDuringRefresh)
		require.NotNil(t, userDuringRefresh)
		require.Equal(t, "fromClaims", userDuringRefresh.Username)
	})

	t.Run("identity refresh success supersedes claims identity", func(t *testing.T) {
		me := &fakeIdentityFetcher{user: api.User{ID: 99, Username: "fromMe"}}
		f := setup(t, me)

		require.NoError(t, f.manager.Login(context.Background(), pair))

		user := f.manager.User()
		require.NotNil(t, user)
		require.Equal(t, "fromMe", user.Username)
		require.NotNil(t, user.ID)
		require.EqualValues(t, 99, *user.ID)
	})

	t.Run("identity refresh failure keeps claims identity", func(t *testing.T) {
		me := &fakeIdentityFetcher{err: context.DeadlineExceeded}
		f := setup(t, me)

		require.NoError(t, f.manager.Login(context.Background(), pair))

		require.True(t, f.manager.IsAuthenticated())
		user := f.manager.User()
		require.NotNil(t, user)
		require.Equal(t, "fromClaims", user.Username)
	})

	t.Run("tokens are persisted", func(t *testing.T) {
		f := setup(t, nil)
		require.NoError(t, f.manager.Login(context.Background(), pair))
		require.Equal(t, pair.Access, f.store.Access())
		require.Equal(t, "r1", f.store.Refresh())
	})

	t.Run("undecodable token still authenticates with nil user", func(t *testing.T) {
		f := setup(t, &fakeIdentityFetcher{err: context.DeadlineExceeded})
		require.NoError(t, f.manager.Login(context.Background(), tokenstore.Pair{Access: "opaque", Refresh: "r"}))
		require.True(t, f.manager.IsAuthenticated())
		require.Nil(t, f.manager.User())
	})
}

func TestLogout(t *testing.T) {
	f := setup(t, nil)
	require.NoError(t, f.manager.Login(context.Background(), tokenstore.Pair{Access: tokenFor(`{}`), Refresh: "r"}))

	f.manager.Logout()

	require.False(t, f.manager.IsAuthenticated())
	require.Nil(t, f.manager.User())
	require.Empty(t, f.store.Access())
	require.Empty(t, f.store.Refresh())
}

func TestRefreshMe(t *testing.T) {
	t.Run("no-op without a token", func(t *testing.T) {
		me := &fakeIdentityFetcher{}
		f := setup(t, me)

		f.manager.RefreshMe(context.Background())
		require.Zero(t, me.callCount())
	})

	t.Run("success updates the identity", func(t *testing.T) {
		me := &fakeIdentityFetcher{user: api.User{ID: 7, Username: "updated"}}
		f := setup(t, me)
		require.NoError(t, f.manager.Login(context.Background(), tokenstore.Pair{Access: tokenFor(`{"sub":"old"}`), Refresh: "r"}))

		f.manager.RefreshMe(context.Background())

		user := f.manager.User()
		require.Equal(t, "updated", user.Username)
	})

	t.Run("failure leaves the identity untouched", func(t *testing.T) {
		me := &fakeIdentityFetcher{user: api.User{ID: 7, Username: "confirmed"}}
		f := setup(t, me)
		require.NoError(t, f.manager.Login(context.Background(), tokenstore.Pair{Access: tokenFor(`{"sub":"old"}`), Refresh: "r"}))
		require.Equal(t, "confirmed", f.manager.User().Username)

		me.lock.Lock()
		me.err = context.DeadlineExceeded
		me.lock.Unlock()

		f.manager.RefreshMe(context.Background())
		require.Equal(t, "confirmed", f.manager.User().Username)
	})
}

func TestForcedLogoutBroadcast(t *testing.T) {
	f := setup(t, nil)
	require.NoError(t, f.manager.Login(context.Background(), tokenstore.Pair{Access: tokenFor(`{"sub":"u"}`), Refresh: "r"}))
	require.True(t, f.manager.IsAuthenticated())

	f.logouts.Dispatch()

	require.False(t, f.manager.IsAuthenticated())
	require.Nil(t, f.manager.User())
	require.Empty(t, f.store.Access())
}

func TestLateIdentityResponseAfterLogoutIsDiscarded(t *testing.T) {
	me := &fakeIdentityFetcher{user: api.User{ID: 42, Username: "stale"}}
	f := setup(t, me)
	require.NoError(t, f.manager.Login(context.Background(), tokenstore.Pair{Access: tokenFor(`{"sub":"u"}`), Refresh: "r"}))

	inFlight := make(chan struct{})
	release := make(chan struct{})
	me.lock.Lock()
	me.onCall = func() {
		close(inFlight)
		<-release
	}
	me.lock.Unlock()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		f.manager.RefreshMe(context.Background())
	}()

	<-inFlight
	f.manager.Logout()
	close(release)
	wg.Wait()

	require.False(t, f.manager.IsAuthenticated(), "a late identity response must not resurrect the session")
	require.Nil(t, f.manager.User())
	require.Empty(t, f.store.Access())
}

func TestBootstrap(t *testing.T) {
	t.Run("refreshes once when a token was restored", func(t *testing.T) {
		store := faketokenstore.NewFakeTokenStore()
		require.NoError(t, store.SetTokens(tokenstore.Pair{Access: tokenFor(`{"sub":"u"}`), Refresh: "r"}))

		me := &fakeIdentityFetcher{user: api.User{ID: 3, Username: "booted"}}
		manager, err := session.NewManager(store, me, httpclient.NewLogoutBroadcaster())
		require.NoError(t, err)
		defer manager.Close()

		manager.Bootstrap(context.Background())

		require.Equal(t, 1, me.callCount())
		require.Equal(t, "booted", manager.User().Username)
	})

	t.Run("does nothing when logged out", func(t *testing.T) {
		me := &fakeIdentityFetcher{}
		f := setup(t, me)

		f.manager.Bootstrap(context.Background())
		require.Zero(t, me.callCount())
	})
}
