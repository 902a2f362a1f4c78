package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrNotAuthenticated is returned by calls that need a live session
var ErrNotAuthenticated = errors.New("session: not authenticated")

// Client drives the auth API and keeps the session store in sync with
// the server's responses.
type Client struct {
	baseURL string
	http    *http.Client
	store   *Store
}

// NewClient creates a session client against baseURL
func NewClient(baseURL string, storage TokenStorage) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
		store:   NewStore(storage),
	}
}

// State returns the current session snapshot
func (c *Client) State() State {
	return c.store.State()
}

type envelope struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Errors  []string `json:"errors"`
	Data    struct {
		User         *Identity `json:"user"`
		AccessToken  string    `json:"access_token"`
		RefreshToken string    `json:"refresh_token"`
	} `json:"data"`
}

// RegisterInput is the registration request body
type RegisterInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Register creates an account and enters the authenticated state
func (c *Client) Register(ctx context.Context, input RegisterInput) (State, error) {
	c.store.Dispatch(AuthStarted())
	return c.fulfillAuth(ctx, "/api/auth/register", input)
}

// Login authenticates and enters the authenticated state
func (c *Client) Login(ctx context.Context, email, password string) (State, error) {
	c.store.Dispatch(AuthStarted())
	return c.fulfillAuth(ctx, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
}

// fulfillAuth posts credentials and settles the transition. A token pair
// whose access token fails to decode is still stored, but the session
// lands in the identity-pending state with an invalid-token error.
func (c *Client) fulfillAuth(ctx context.Context, path string, body any) (State, error) {
	env, err := c.post(ctx, path, body, "")
	if err != nil {
		return c.store.Dispatch(AuthFailed(err.Error())), err
	}

	access := env.Data.AccessToken
	refresh := env.Data.RefreshToken

	identity, derr := identityFromToken(access)
	if derr != nil {
		return c.store.Dispatch(DecodeFailed(access, refresh)), nil
	}
	return c.store.Dispatch(AuthSucceeded(identity, access, refresh)), nil
}

// Refresh redeems the stored refresh token for a new pair. Any failure
// is a terminal teardown: both tokens are cleared locally and the
// server-side record is revoked best-effort. The suspect token is never
// silently retried.
func (c *Client) Refresh(ctx context.Context) (State, error) {
	prev := c.store.State()
	if prev.RefreshToken == "" {
		return c.store.Dispatch(SessionCleared("no refresh token")), ErrNotAuthenticated
	}

	c.store.Dispatch(RefreshStarted())

	env, err := c.post(ctx, "/api/auth/refresh-token", map[string]string{
		"refresh_token": prev.RefreshToken,
	}, "")
	if err != nil {
		c.revokeQuietly(ctx, prev)
		return c.store.Dispatch(SessionCleared(err.Error())), err
	}

	access := env.Data.AccessToken
	refresh := env.Data.RefreshToken

	identity, derr := identityFromToken(access)
	if derr != nil {
		return c.store.Dispatch(DecodeFailed(access, refresh)), nil
	}
	return c.store.Dispatch(AuthSucceeded(identity, access, refresh)), nil
}

// Logout tears the session down locally no matter what the server says;
// the caller never sees a logout error.
func (c *Client) Logout(ctx context.Context) State {
	prev := c.store.State()
	if prev.RefreshToken != "" {
		c.revokeQuietly(ctx, prev)
	}
	return c.store.Dispatch(LoggedOut())
}

// ResolveIdentity force-fetches /api/auth/me, required before UI access
// when the session is identity-pending.
func (c *Client) ResolveIdentity(ctx context.Context) (State, error) {
	state := c.store.State()
	if state.AccessToken == "" {
		return state, ErrNotAuthenticated
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/auth/me", nil)
	if err != nil {
		return state, err
	}
	req.Header.Set("Authorization", "Bearer "+state.AccessToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return state, err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return state, err
	}
	if resp.StatusCode != http.StatusOK || !env.Success || env.Data.User == nil {
		return state, fmt.Errorf("session: %s", env.Message)
	}

	return c.store.Dispatch(IdentityResolved(env.Data.User)), nil
}

// revokeQuietly asks the server to revoke the persisted refresh token,
// ignoring every error.
func (c *Client) revokeQuietly(ctx context.Context, state State) {
	_, _ = c.post(ctx, "/api/auth/logout", map[string]string{
		"refresh_token": state.RefreshToken,
	}, state.AccessToken)
}

func (c *Client) post(ctx context.Context, path string, body any, bearer string) (*envelope, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 || !env.Success {
		if env.Message == "" {
			env.Message = http.StatusText(resp.StatusCode)
		}
		return nil, fmt.Errorf("session: %s", env.Message)
	}
	return &env, nil
}
