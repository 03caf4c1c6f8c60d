package session

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alertemedicaments/prescription-scan/internal/core/catalog"
	"github.com/alertemedicaments/prescription-scan/internal/shared/database"
)

var _ catalog.TokenSource = (*Store)(nil)

func newTestStore(t *testing.T, path string) *Store {
	t.Helper()
	ctx := context.Background()
	db, err := database.Open(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	store, err := NewStore(ctx, db)
	require.NoError(t, err)
	return store
}

func TestStore_Empty(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, ":memory:")

	token, err := store.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)

	user, err := store.User(ctx)
	require.NoError(t, err)
	assert.Nil(t, user)

	loggedIn, err := store.LoggedIn(ctx)
	require.NoError(t, err)
	assert.False(t, loggedIn)
}

func TestStore_SaveAndClear(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, ":memory:")

	require.NoError(t, store.SaveSession(ctx, &catalog.AuthResponse{
		Token: "tok-1",
		User:  catalog.User{ID: "u1", Email: "alice@example.fr", Name: "Alice"},
	}))

	token, err := store.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)

	user, err := store.User(ctx)
	require.NoError(t, err)
	assert.Equal(t, &catalog.User{ID: "u1", Email: "alice@example.fr", Name: "Alice"}, user)

	// A new login replaces everything, including the optional name.
	require.NoError(t, store.SaveSession(ctx, &catalog.AuthResponse{
		Token: "tok-2",
		User:  catalog.User{ID: "u2", Email: "bob@example.fr"},
	}))
	user, err = store.User(ctx)
	require.NoError(t, err)
	assert.Equal(t, "u2", user.ID)
	assert.Empty(t, user.Name)

	require.NoError(t, store.Clear(ctx))
	loggedIn, err := store.LoggedIn(ctx)
	require.NoError(t, err)
	assert.False(t, loggedIn)
}

func TestStore_PersistsAcrossOpen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.db")

	db, err := database.Open(ctx, path)
	require.NoError(t, err)
	store, err := NewStore(ctx, db)
	require.NoError(t, err)
	require.NoError(t, store.SaveSession(ctx, &catalog.AuthResponse{
		Token: "persisted",
		User:  catalog.User{ID: "u1", Email: "a@b.fr"},
	}))
	require.NoError(t, db.Close())

	reopened := newTestStore(t, path)
	token, err := reopened.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "persisted", token)
}
