package models

import (
	"time"

	"gorm.io/gorm"
)

// Global roles
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleMember  = "member"
)

// Band membership roles
const (
	BandRoleOwner   = "owner"
	BandRoleManager = "manager"
	BandRoleMember  = "member"
)

// Rehearsal status
const (
	RehearsalScheduled = "scheduled"
	RehearsalCancelled = "cancelled"
)

// Attendance status
const (
	AttendanceYes   = "yes"
	AttendanceNo    = "no"
	AttendanceMaybe = "maybe"
)

// Notification types
const (
	NotifyRehearsalCreated   = "rehearsal_created"
	NotifyRehearsalUpdated   = "rehearsal_updated"
	NotifyRehearsalCancelled = "rehearsal_cancelled"
	NotifyRehearsalReminder  = "rehearsal_reminder"
)

// ============================================================
// Auth & User Tables
// ============================================================

// User represents users table
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Email     string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password  string         `gorm:"size:255;not null" json:"-"`
	FirstName string         `gorm:"size:50;not null" json:"first_name"`
	LastName  string         `gorm:"size:50;not null" json:"last_name"`
	Role      string         `gorm:"size:20;default:'member'" json:"role"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

// RefreshToken represents refresh_tokens table.
// Only the SHA-256 digest of the token is stored; a leaked table cannot
// be replayed.
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Band Tables
// ============================================================

// Band represents bands table
type Band struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"size:100;not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	CreatedByID uint           `gorm:"not null;index" json:"created_by_id"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Creator *User        `gorm:"foreignKey:CreatedByID" json:"creator,omitempty"`
	Members []BandMember `gorm:"foreignKey:BandID" json:"members,omitempty"`
}

func (Band) TableName() string {
	return "bands"
}

// BandMember links a user to a band with a role inside that band
type BandMember struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	BandID    uint      `gorm:"not null;uniqueIndex:idx_band_user" json:"band_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_band_user" json:"user_id"`
	Role      string    `gorm:"size:20;not null;default:'member'" json:"role"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relations
	Band *Band `gorm:"foreignKey:BandID" json:"band,omitempty"`
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (BandMember) TableName() string {
	return "band_members"
}

// CanManageRehearsals reports whether this membership may create or
// change rehearsals for its band.
func (m *BandMember) CanManageRehearsals() bool {
	return m.Role == BandRoleOwner || m.Role == BandRoleManager
}

// BandMemberResponse DTO
type BandMemberResponse struct {
	ID        uint      `json:"id"`
	BandID    uint      `json:"band_id"`
	UserID    uint      `json:"user_id"`
	Role      string    `json:"role"`
	FirstName string    `json:"first_name,omitempty"`
	LastName  string    `json:"last_name,omitempty"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (m *BandMember) ToResponse() *BandMemberResponse {
	resp := &BandMemberResponse{
		ID:        m.ID,
		BandID:    m.BandID,
		UserID:    m.UserID,
		Role:      m.Role,
		CreatedAt: m.CreatedAt,
	}
	if m.User != nil {
		resp.FirstName = m.User.FirstName
		resp.LastName = m.User.LastName
		resp.Email = m.User.Email
	}
	return resp
}

// ============================================================
// Rehearsal Tables
// ============================================================

// Rehearsal represents rehearsals table
type Rehearsal struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	BandID      uint           `gorm:"not null;index" json:"band_id"`
	Title       string         `gorm:"size:150;not null" json:"title"`
	Location    string         `gorm:"size:200" json:"location"`
	StartsAt    time.Time      `gorm:"not null;index" json:"starts_at"`
	EndsAt      time.Time      `gorm:"not null" json:"ends_at"`
	Notes       string         `gorm:"type:text" json:"notes"`
	Status      string         `gorm:"size:20;not null;default:'scheduled'" json:"status"`
	ResourceID  *uint          `json:"resource_id"`
	CreatedByID uint           `gorm:"not null" json:"created_by_id"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Band       *Band        `gorm:"foreignKey:BandID" json:"band,omitempty"`
	Resource   *Resource    `gorm:"foreignKey:ResourceID" json:"resource,omitempty"`
	Creator    *User        `gorm:"foreignKey:CreatedByID" json:"creator,omitempty"`
	Attendance []Attendance `gorm:"foreignKey:RehearsalID" json:"attendance,omitempty"`
}

func (Rehearsal) TableName() string {
	return "rehearsals"
}

func (r *Rehearsal) IsCancelled() bool {
	return r.Status == RehearsalCancelled
}

// Attendance is one member's RSVP for a rehearsal, one row per
// (rehearsal, user) pair
type Attendance struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	RehearsalID uint      `gorm:"not null;uniqueIndex:idx_rehearsal_user" json:"rehearsal_id"`
	UserID      uint      `gorm:"not null;uniqueIndex:idx_rehearsal_user" json:"user_id"`
	Status      string    `gorm:"size:10;not null" json:"status"`
	Comment     string    `gorm:"size:255" json:"comment"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	Rehearsal *Rehearsal `gorm:"foreignKey:RehearsalID" json:"rehearsal,omitempty"`
	User      *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Attendance) TableName() string {
	return "attendance"
}

// ============================================================
// Resource & Notification Tables
// ============================================================

// Resource is a room or piece of equipment a rehearsal can book
type Resource struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"size:100;not null" json:"name"`
	Type        string         `gorm:"size:30;not null" json:"type"`
	Location    string         `gorm:"size:200" json:"location"`
	Capacity    int            `json:"capacity"`
	Description string         `gorm:"type:text" json:"description"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Resource) TableName() string {
	return "resources"
}

// Notification is a per-user message created by rehearsal fan-out or
// the reminder job
type Notification struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	RehearsalID *uint     `gorm:"index" json:"rehearsal_id"`
	Type        string    `gorm:"size:30;not null" json:"type"`
	Message     string    `gorm:"size:500;not null" json:"message"`
	IsRead      bool      `gorm:"default:false;index" json:"is_read"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relations
	User      *User      `gorm:"foreignKey:UserID" json:"-"`
	Rehearsal *Rehearsal `gorm:"foreignKey:RehearsalID" json:"-"`
}

func (Notification) TableName() string {
	return "notifications"
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&RefreshToken{},
		&Band{},
		&BandMember{},
		&Rehearsal{},
		&Attendance{},
		&Resource{},
		&Notification{},
	)
}
