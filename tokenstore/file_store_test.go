package tokenstore_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/insightworks/insights-cli/tokenstore"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *tokenstore.FileStore {
	t.Helper()
	store, err := tokenstore.NewFileStore(filepath.Join(t.TempDir(), "state", "tokens.json"))
	require.NoError(t, err)
	return store
}

func TestFileStore_EmptyBeforeFirstWrite(t *testing.T) {
	store := newStore(t)

	require.Empty(t, store.Access())
	require.Empty(t, store.Refresh())
}

func TestFileStore_RoundTrip(t *testing.T) {
	store := newStore(t)

	require.NoError(t, store.SetTokens(tokenstore.Pair{Access: "a", Refresh: "b"}))
	require.Equal(t, "a", store.Access())
	require.Equal(t, "b", store.Refresh())

	t.Run("overwrite replaces both values", func(t *testing.T) {
		require.NoError(t, store.SetTokens(tokenstore.Pair{Access: "a2", Refresh: "b2"}))
		require.Equal(t, "a2", store.Access())
		require.Equal(t, "b2", store.Refresh())
	})
}

func TestFileStore_Clear(t *testing.T) {
	store := newStore(t)

	require.NoError(t, store.SetTokens(tokenstore.Pair{Access: "a", Refresh: "b"}))
	require.NoError(t, store.Clear())

	require.Empty(t, store.Access())
	require.Empty(t, store.Refresh())

	t.Run("clear is idempotent", func(t *testing.T) {
		require.NoError(t, store.Clear())
	})
}

func TestFileStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.json")

	store, err := tokenstore.NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, store.SetTokens(tokenstore.Pair{Access: "a", Refresh: "b"}))

	reopened, err := tokenstore.NewFileStore(path)
	require.NoError(t, err)
	require.Equal(t, "a", reopened.Access())
	require.Equal(t, "b", reopened.Refresh())
}

func TestFileStore_CorruptFileReadsAsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))

	store, err := tokenstore.NewFileStore(path)
	require.NoError(t, err)
	require.Empty(t, store.Access())
	require.Empty(t, store.Refresh())
}

func TestNewFileStore_RequiresPath(t *testing.T) {
	_, err := tokenstore.NewFileStore("")
	require.Error(t, err)
}
