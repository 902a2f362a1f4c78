// Package session mirrors server session state on the client side of the
// API: an explicit store whose state changes only through pure reducer
// transitions, persisted token storage, and an HTTP client driving the
// register/login/refresh/logout round-trips.
package session

// Status is the client-side session lifecycle state
type Status string

const (
	StatusAnonymous       Status = "anonymous"
	StatusAuthenticating  Status = "authenticating"
	StatusAuthenticated   Status = "authenticated"
	StatusIdentityPending Status = "identity_pending"
	StatusRefreshing      Status = "refreshing"
	StatusFailed          Status = "failed"
)

// Identity is the decoded display identity of the logged-in user
type Identity struct {
	ID        uint   `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
}

// State is the session snapshot held by the store
type State struct {
	Identity     *Identity
	AccessToken  string
	RefreshToken string
	Status       Status
	Err          string
}

// IsAuthenticated reports whether the UI may treat the session as live.
// StatusIdentityPending deliberately returns false: tokens are held but
// the identity is unresolved, and ResolveIdentity must succeed first.
func (s State) IsAuthenticated() bool {
	return s.Status == StatusAuthenticated
}

type actionType int

const (
	actAuthStarted actionType = iota
	actAuthSucceeded
	actDecodeFailed
	actAuthFailed
	actRefreshStarted
	actIdentityResolved
	actSessionCleared
	actLoggedOut
)

// Action is a reducer input. Construct actions with the functions below;
// the zero Action is not valid.
type Action struct {
	typ          actionType
	identity     *Identity
	accessToken  string
	refreshToken string
	errMsg       string
}

// AuthStarted begins a login or register transition
func AuthStarted() Action {
	return Action{typ: actAuthStarted}
}

// AuthSucceeded completes a login/register/refresh with a resolved identity
func AuthSucceeded(identity *Identity, accessToken, refreshToken string) Action {
	return Action{typ: actAuthSucceeded, identity: identity, accessToken: accessToken, refreshToken: refreshToken}
}

// DecodeFailed records the edge case where freshly issued tokens arrived
// but the access token claims could not be decoded: tokens are kept, the
// identity stays unset and an invalid-token error is recorded.
func DecodeFailed(accessToken, refreshToken string) Action {
	return Action{typ: actDecodeFailed, accessToken: accessToken, refreshToken: refreshToken, errMsg: "invalid access token received"}
}

// AuthFailed fails a login or register transition; nothing is persisted
func AuthFailed(msg string) Action {
	return Action{typ: actAuthFailed, errMsg: msg}
}

// RefreshStarted begins a refresh transition
func RefreshStarted() Action {
	return Action{typ: actRefreshStarted}
}

// IdentityResolved completes a forced identity fetch after DecodeFailed
func IdentityResolved(identity *Identity) Action {
	return Action{typ: actIdentityResolved, identity: identity}
}

// SessionCleared is the terminal teardown after a failed refresh: every
// token and the identity are dropped
func SessionCleared(msg string) Action {
	return Action{typ: actSessionCleared, errMsg: msg}
}

// LoggedOut clears the session with no error, whatever the server said
func LoggedOut() Action {
	return Action{typ: actLoggedOut}
}

// Reduce is the pure transition function over {state, action}. It never
// touches storage or the network; the store owns those side effects.
func Reduce(s State, a Action) State {
	switch a.typ {
	case actAuthStarted:
		s.Status = StatusAuthenticating
		s.Err = ""
		return s
	case actAuthSucceeded:
		return State{
			Identity:     a.identity,
			AccessToken:  a.accessToken,
			RefreshToken: a.refreshToken,
			Status:       StatusAuthenticated,
		}
	case actDecodeFailed:
		return State{
			AccessToken:  a.accessToken,
			RefreshToken: a.refreshToken,
			Status:       StatusIdentityPending,
			Err:          a.errMsg,
		}
	case actAuthFailed:
		return State{Status: StatusFailed, Err: a.errMsg}
	case actRefreshStarted:
		s.Status = StatusRefreshing
		return s
	case actIdentityResolved:
		s.Identity = a.identity
		s.Status = StatusAuthenticated
		s.Err = ""
		return s
	case actSessionCleared:
		return State{Status: StatusFailed, Err: a.errMsg}
	case actLoggedOut:
		return State{Status: StatusAnonymous}
	}
	return s
}
