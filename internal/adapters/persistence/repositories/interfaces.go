package repositories

import (
	"context"
	"time"

	"bandmate/internal/adapters/persistence/models"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, offset, limit int) ([]*models.User, int64, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	// Rotate atomically consumes the stored token identified by oldID and
	// persists its replacement. When the token was already consumed it
	// returns domain.ErrTokenRevoked and persists nothing, so concurrent
	// refresh calls presenting the same token produce at most one winner.
	Rotate(ctx context.Context, oldID uint, replacement *models.RefreshToken) error
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) error
	CountActiveByUserID(ctx context.Context, userID uint) (int64, error)
}

// BandRepository defines band and membership repository interface
type BandRepository interface {
	Create(ctx context.Context, band *models.Band) error
	GetByID(ctx context.Context, id uint) (*models.Band, error)
	Update(ctx context.Context, band *models.Band) error
	Delete(ctx context.Context, id uint) error
	ListByUserID(ctx context.Context, userID uint) ([]*models.Band, error)
	ListAll(ctx context.Context, offset, limit int) ([]*models.Band, int64, error)

	AddMember(ctx context.Context, member *models.BandMember) error
	GetMember(ctx context.Context, bandID, userID uint) (*models.BandMember, error)
	ListMembers(ctx context.Context, bandID uint) ([]*models.BandMember, error)
	UpdateMemberRole(ctx context.Context, bandID, userID uint, role string) error
	RemoveMember(ctx context.Context, bandID, userID uint) error
}

// RehearsalRepository defines rehearsal and attendance repository interface
type RehearsalRepository interface {
	Create(ctx context.Context, rehearsal *models.Rehearsal) error
	GetByID(ctx context.Context, id uint) (*models.Rehearsal, error)
	Update(ctx context.Context, rehearsal *models.Rehearsal) error
	ListByBandID(ctx context.Context, bandID uint, offset, limit int) ([]*models.Rehearsal, int64, error)
	ListUpcoming(ctx context.Context, from, to time.Time) ([]*models.Rehearsal, error)

	UpsertAttendance(ctx context.Context, att *models.Attendance) error
	ListAttendance(ctx context.Context, rehearsalID uint) ([]*models.Attendance, error)
}

// ResourceRepository defines resource repository interface
type ResourceRepository interface {
	Create(ctx context.Context, resource *models.Resource) error
	GetByID(ctx context.Context, id uint) (*models.Resource, error)
	Update(ctx context.Context, resource *models.Resource) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, offset, limit int) ([]*models.Resource, int64, error)
}

// NotificationRepository defines notification repository interface
type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	CreateBatch(ctx context.Context, notifications []*models.Notification) error
	ListByUserID(ctx context.Context, userID uint, unreadOnly bool, offset, limit int) ([]*models.Notification, int64, error)
	MarkRead(ctx context.Context, id, userID uint) error
	MarkAllRead(ctx context.Context, userID uint) error
	ExistsForRehearsal(ctx context.Context, userID, rehearsalID uint, notifType string) (bool, error)
}
