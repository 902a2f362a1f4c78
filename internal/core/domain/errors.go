package domain

import "errors"

// Kind is the closed set of error categories the HTTP boundary maps to
// status codes. Upstream library error shapes (GORM, JWT) are translated
// into a Kind at the point of detection and never inspected again.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindAuth
	KindForbidden
	KindNotFound
	KindConflict
)

// Error is a tagged domain error
type Error struct {
	Kind    Kind
	Message string
	Details []string
}

func (e *Error) Error() string {
	return e.Message
}

// New creates a domain error with the given kind
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Validation creates a 400-class error with optional field details
func Validation(message string, details ...string) *Error {
	return &Error{Kind: KindValidation, Message: message, Details: details}
}

// Auth creates a 401-class error
func Auth(message string) *Error {
	return &Error{Kind: KindAuth, Message: message}
}

// Forbidden creates a 403-class error
func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

// NotFound creates a 404-class error
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Conflict creates a 409-class error
func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// KindOf returns the kind of a domain error, or KindInternal for
// anything else.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

// Auth & token errors
var (
	ErrInvalidCredentials = Auth("invalid email or password")
	ErrInvalidToken       = Auth("invalid token")
	ErrTokenExpired       = Auth("token expired")
	ErrTokenRevoked       = Auth("token revoked")
	ErrUserInactive       = Forbidden("user account is inactive")
)

// User errors
var (
	ErrUserNotFound  = NotFound("user not found")
	ErrEmailInUse    = Conflict("email already registered")
	ErrWeakPassword  = Validation("password must be at least 8 characters with upper, lower and digit")
	ErrNotAuthorized = Forbidden("you don't have permission to access this resource")
)

// Band & rehearsal errors
var (
	ErrBandNotFound      = NotFound("band not found")
	ErrNotBandMember     = Forbidden("not a member of this band")
	ErrNotBandOwner      = Forbidden("only the band owner can do this")
	ErrAlreadyMember     = Conflict("user is already a member of this band")
	ErrMemberNotFound    = NotFound("membership not found")
	ErrRehearsalNotFound = NotFound("rehearsal not found")
	ErrResourceNotFound  = NotFound("resource not found")
)
