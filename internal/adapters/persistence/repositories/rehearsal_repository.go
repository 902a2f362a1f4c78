package repositories

import (
	"context"
	"errors"
	"time"

	"bandmate/internal/adapters/persistence/models"
	"bandmate/internal/core/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// rehearsalRepository implements RehearsalRepository interface
type rehearsalRepository struct {
	db *gorm.DB
}

// NewRehearsalRepository creates a new rehearsal repository
func NewRehearsalRepository(db *gorm.DB) RehearsalRepository {
	return &rehearsalRepository{db: db}
}

// Create creates a new rehearsal
func (r *rehearsalRepository) Create(ctx context.Context, rehearsal *models.Rehearsal) error {
	return r.db.WithContext(ctx).Create(rehearsal).Error
}

// GetByID gets a rehearsal by ID with resource preloaded
func (r *rehearsalRepository) GetByID(ctx context.Context, id uint) (*models.Rehearsal, error) {
	var rehearsal models.Rehearsal
	err := r.db.WithContext(ctx).
		Preload("Resource").
		Where("id = ?", id).
		First(&rehearsal).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRehearsalNotFound
		}
		return nil, err
	}
	return &rehearsal, nil
}

// Update updates a rehearsal
func (r *rehearsalRepository) Update(ctx context.Context, rehearsal *models.Rehearsal) error {
	return r.db.WithContext(ctx).Save(rehearsal).Error
}

// ListByBandID lists rehearsals of a band, soonest first
func (r *rehearsalRepository) ListByBandID(ctx context.Context, bandID uint, offset, limit int) ([]*models.Rehearsal, int64, error) {
	var rehearsals []*models.Rehearsal
	var total int64

	base := r.db.WithContext(ctx).Model(&models.Rehearsal{}).Where("band_id = ?", bandID)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Preload("Resource").
		Where("band_id = ?", bandID).
		Order("starts_at").
		Offset(offset).
		Limit(limit).
		Find(&rehearsals).Error
	if err != nil {
		return nil, 0, err
	}

	return rehearsals, total, nil
}

// ListUpcoming lists scheduled rehearsals starting in [from, to)
func (r *rehearsalRepository) ListUpcoming(ctx context.Context, from, to time.Time) ([]*models.Rehearsal, error) {
	var rehearsals []*models.Rehearsal
	err := r.db.WithContext(ctx).
		Where("status = ?", models.RehearsalScheduled).
		Where("starts_at >= ?", from).
		Where("starts_at < ?", to).
		Find(&rehearsals).Error
	if err != nil {
		return nil, err
	}
	return rehearsals, nil
}

// UpsertAttendance inserts or updates the RSVP for (rehearsal, user)
func (r *rehearsalRepository) UpsertAttendance(ctx context.Context, att *models.Attendance) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "rehearsal_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "comment", "updated_at"}),
		}).
		Create(att).Error
}

// ListAttendance lists RSVPs of a rehearsal with user info preloaded
func (r *rehearsalRepository) ListAttendance(ctx context.Context, rehearsalID uint) ([]*models.Attendance, error) {
	var attendance []*models.Attendance
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("rehearsal_id = ?", rehearsalID).
		Order("id").
		Find(&attendance).Error
	if err != nil {
		return nil, err
	}
	return attendance, nil
}
