package session

import (
	"path/filepath"
	"testing"

	"bandmate/internal/pkg/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAccessToken(t *testing.T) string {
	t.Helper()
	token, err := jwt.GenerateAccessToken(5, "jo@example.com", "Jo", "Reed", "member", "unit-secret", 15)
	require.NoError(t, err)
	return token
}

func TestStoreHydratesAuthenticated(t *testing.T) {
	storage := NewMemoryStorage()
	require.NoError(t, storage.Save(testAccessToken(t), "refresh-token"))

	store := NewStore(storage)
	state := store.State()

	assert.True(t, state.IsAuthenticated())
	require.NotNil(t, state.Identity)
	assert.Equal(t, uint(5), state.Identity.ID)
	assert.Equal(t, "jo@example.com", state.Identity.Email)
}

func TestStoreHydratesIdentityPending(t *testing.T) {
	storage := NewMemoryStorage()
	require.NoError(t, storage.Save("garbage-token", "refresh-token"))

	store := NewStore(storage)
	state := store.State()

	assert.Equal(t, StatusIdentityPending, state.Status)
	assert.False(t, state.IsAuthenticated())
	assert.Equal(t, "garbage-token", state.AccessToken)
	assert.Equal(t, "refresh-token", state.RefreshToken)
}

func TestStoreHydratesAnonymousWhenEmpty(t *testing.T) {
	store := NewStore(NewMemoryStorage())
	assert.Equal(t, StatusAnonymous, store.State().Status)
}

func TestDispatchPersistsTokenPairTogether(t *testing.T) {
	storage := NewMemoryStorage()
	store := NewStore(storage)

	store.Dispatch(AuthSucceeded(&Identity{ID: 1}, "acc", "ref"))
	access, refresh, err := storage.Load()
	require.NoError(t, err)
	assert.Equal(t, "acc", access)
	assert.Equal(t, "ref", refresh)

	store.Dispatch(LoggedOut())
	access, refresh, err = storage.Load()
	require.NoError(t, err)
	assert.Empty(t, access)
	assert.Empty(t, refresh)
}

func TestFileStorageRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.json")
	storage := NewFileStorage(path)

	// Missing file reads as empty, not as an error
	access, refresh, err := storage.Load()
	require.NoError(t, err)
	assert.Empty(t, access)
	assert.Empty(t, refresh)

	require.NoError(t, storage.Save("acc", "ref"))
	access, refresh, err = storage.Load()
	require.NoError(t, err)
	assert.Equal(t, "acc", access)
	assert.Equal(t, "ref", refresh)

	require.NoError(t, storage.Clear())
	access, refresh, err = storage.Load()
	require.NoError(t, err)
	assert.Empty(t, access)
	assert.Empty(t, refresh)

	// Clearing twice is fine
	require.NoError(t, storage.Clear())
}
