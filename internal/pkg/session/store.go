package session

import (
	"sync"

	"bandmate/internal/pkg/jwt"
)

// Store serializes session transitions: every mutation goes through
// Dispatch under one lock, so transitions apply in dispatch order. Token
// persistence is a side effect of dispatch, keeping storage and state in
// step.
type Store struct {
	mu      sync.Mutex
	state   State
	storage TokenStorage
}

// NewStore creates a store hydrated from durable storage. Tokens found
// there produce an authenticated state when the access token decodes,
// and the identity-pending state when it does not.
func NewStore(storage TokenStorage) *Store {
	s := &Store{
		state:   State{Status: StatusAnonymous},
		storage: storage,
	}

	access, refresh, err := storage.Load()
	if err != nil || refresh == "" {
		return s
	}

	if identity, derr := identityFromToken(access); derr == nil {
		s.state = Reduce(s.state, AuthSucceeded(identity, access, refresh))
	} else {
		s.state = Reduce(s.state, DecodeFailed(access, refresh))
	}
	return s
}

// State returns the current session snapshot
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch applies an action and persists or clears the token pair to
// match the new state. Both tokens are always written together.
func (s *Store) Dispatch(a Action) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = Reduce(s.state, a)

	if s.state.AccessToken != "" || s.state.RefreshToken != "" {
		s.storage.Save(s.state.AccessToken, s.state.RefreshToken)
	} else {
		s.storage.Clear()
	}

	return s.state
}

// identityFromToken builds a display identity from an access token just
// received over a trusted channel. The signature is NOT verified here;
// this is never an authorization decision.
func identityFromToken(accessToken string) (*Identity, error) {
	claims, err := jwt.DecodeAccessToken(accessToken)
	if err != nil {
		return nil, err
	}
	if claims.UserID == 0 || claims.Email == "" {
		return nil, jwt.ErrTokenInvalid
	}
	return &Identity{
		ID:        claims.UserID,
		Email:     claims.Email,
		FirstName: claims.FirstName,
		LastName:  claims.LastName,
		Role:      claims.Role,
	}, nil
}
