package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeJSON(w http.ResponseWriter, status int, body map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func authPayload(accessToken, refreshToken string) map[string]any {
	return map[string]any{
		"success": true,
		"message": "ok",
		"data": map[string]any{
			"user":          map[string]any{"id": 5, "email": "jo@example.com"},
			"access_token":  accessToken,
			"refresh_token": refreshToken,
		},
	}
}

func TestClientLoginSuccess(t *testing.T) {
	access := testAccessToken(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/login", r.URL.Path)
		writeJSON(w, http.StatusOK, authPayload(access, "refresh-1"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, NewMemoryStorage())
	state, err := client.Login(context.Background(), "jo@example.com", "Passw0rd")
	require.NoError(t, err)

	assert.True(t, state.IsAuthenticated())
	require.NotNil(t, state.Identity)
	assert.Equal(t, uint(5), state.Identity.ID)
	assert.Equal(t, access, state.AccessToken)
	assert.Equal(t, "refresh-1", state.RefreshToken)
}

func TestClientLoginFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{
			"success": false,
			"message": "Invalid email or password",
		})
	}))
	defer srv.Close()

	storage := NewMemoryStorage()
	client := NewClient(srv.URL, storage)
	state, err := client.Login(context.Background(), "jo@example.com", "wrong")
	require.Error(t, err)

	assert.Equal(t, StatusFailed, state.Status)
	assert.Contains(t, state.Err, "Invalid email or password")

	// Nothing persisted on a failed login
	access, refresh, lerr := storage.Load()
	require.NoError(t, lerr)
	assert.Empty(t, access)
	assert.Empty(t, refresh)
}

func TestClientLoginUndecodableTokenLandsIdentityPending(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, authPayload("not-a-jwt", "refresh-1"))
	}))
	defer srv.Close()

	storage := NewMemoryStorage()
	client := NewClient(srv.URL, storage)
	state, err := client.Login(context.Background(), "jo@example.com", "Passw0rd")
	require.NoError(t, err)

	assert.Equal(t, StatusIdentityPending, state.Status)
	assert.False(t, state.IsAuthenticated())
	assert.Nil(t, state.Identity)

	// Tokens are still persisted for a later ResolveIdentity
	access, refresh, lerr := storage.Load()
	require.NoError(t, lerr)
	assert.Equal(t, "not-a-jwt", access)
	assert.Equal(t, "refresh-1", refresh)
}

func TestClientResolveIdentity(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			writeJSON(w, http.StatusOK, authPayload("not-a-jwt", "refresh-1"))
		case "/api/auth/me":
			assert.Equal(t, "Bearer not-a-jwt", r.Header.Get("Authorization"))
			writeJSON(w, http.StatusOK, map[string]any{
				"success": true,
				"message": "ok",
				"data": map[string]any{
					"user": map[string]any{"id": 5, "email": "jo@example.com", "role": "member"},
				},
			})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL, NewMemoryStorage())
	state, err := client.Login(context.Background(), "jo@example.com", "Passw0rd")
	require.NoError(t, err)
	require.Equal(t, StatusIdentityPending, state.Status)

	state, err = client.ResolveIdentity(context.Background())
	require.NoError(t, err)

	assert.True(t, state.IsAuthenticated())
	require.NotNil(t, state.Identity)
	assert.Equal(t, "member", state.Identity.Role)
}

func TestClientRefreshRotates(t *testing.T) {
	access := testAccessToken(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			writeJSON(w, http.StatusOK, authPayload(access, "refresh-1"))
		case "/api/auth/refresh-token":
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "refresh-1", body["refresh_token"])
			writeJSON(w, http.StatusOK, authPayload(access, "refresh-2"))
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL, NewMemoryStorage())
	_, err := client.Login(context.Background(), "jo@example.com", "Passw0rd")
	require.NoError(t, err)

	state, err := client.Refresh(context.Background())
	require.NoError(t, err)

	assert.True(t, state.IsAuthenticated())
	assert.Equal(t, "refresh-2", state.RefreshToken)
}

func TestClientRefreshFailureIsTerminal(t *testing.T) {
	access := testAccessToken(t)
	var logoutCalls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			writeJSON(w, http.StatusOK, authPayload(access, "refresh-1"))
		case "/api/auth/refresh-token":
			writeJSON(w, http.StatusUnauthorized, map[string]any{
				"success": false,
				"message": "Refresh token has been revoked",
			})
		case "/api/auth/logout":
			logoutCalls.Add(1)
			writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "ok"})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	storage := NewMemoryStorage()
	client := NewClient(srv.URL, storage)
	_, err := client.Login(context.Background(), "jo@example.com", "Passw0rd")
	require.NoError(t, err)

	state, err := client.Refresh(context.Background())
	require.Error(t, err)

	// Terminal teardown: no retry with the suspect token, local tokens
	// gone, server-side revocation attempted
	assert.Equal(t, StatusFailed, state.Status)
	assert.Empty(t, state.AccessToken)
	assert.Empty(t, state.RefreshToken)
	assert.Equal(t, int32(1), logoutCalls.Load())

	accessStored, refreshStored, lerr := storage.Load()
	require.NoError(t, lerr)
	assert.Empty(t, accessStored)
	assert.Empty(t, refreshStored)
}

func TestClientLogoutAlwaysClears(t *testing.T) {
	access := testAccessToken(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			writeJSON(w, http.StatusOK, authPayload(access, "refresh-1"))
		case "/api/auth/logout":
			// Server-side revocation blows up; the client must not care
			writeJSON(w, http.StatusInternalServerError, map[string]any{
				"success": false,
				"message": "database unavailable",
			})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	storage := NewMemoryStorage()
	client := NewClient(srv.URL, storage)
	_, err := client.Login(context.Background(), "jo@example.com", "Passw0rd")
	require.NoError(t, err)

	state := client.Logout(context.Background())

	assert.Equal(t, StatusAnonymous, state.Status)
	assert.Empty(t, state.AccessToken)
	assert.Empty(t, state.RefreshToken)
	assert.Empty(t, state.Err)

	accessStored, refreshStored, lerr := storage.Load()
	require.NoError(t, lerr)
	assert.Empty(t, accessStored)
	assert.Empty(t, refreshStored)
}

func TestClientRefreshWithoutToken(t *testing.T) {
	client := NewClient("http://127.0.0.1:0", NewMemoryStorage())

	state, err := client.Refresh(context.Background())
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	assert.Equal(t, StatusFailed, state.Status)
}
