package repositories

import (
	"context"
	"errors"

	"bandmate/internal/adapters/persistence/models"
	"bandmate/internal/core/domain"

	"gorm.io/gorm"
)

// bandRepository implements BandRepository interface
type bandRepository struct {
	db *gorm.DB
}

// NewBandRepository creates a new band repository
func NewBandRepository(db *gorm.DB) BandRepository {
	return &bandRepository{db: db}
}

// Create creates a band and its owner membership in one transaction
func (r *bandRepository) Create(ctx context.Context, band *models.Band) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(band).Error; err != nil {
			return err
		}
		owner := &models.BandMember{
			BandID: band.ID,
			UserID: band.CreatedByID,
			Role:   models.BandRoleOwner,
		}
		return tx.Create(owner).Error
	})
}

// GetByID gets a band by ID
func (r *bandRepository) GetByID(ctx context.Context, id uint) (*models.Band, error) {
	var band models.Band
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&band).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBandNotFound
		}
		return nil, err
	}
	return &band, nil
}

// Update updates a band
func (r *bandRepository) Update(ctx context.Context, band *models.Band) error {
	return r.db.WithContext(ctx).Save(band).Error
}

// Delete soft deletes a band and removes its memberships
func (r *bandRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("band_id = ?", id).Delete(&models.BandMember{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Band{}, id).Error
	})
}

// ListByUserID lists bands the user belongs to
func (r *bandRepository) ListByUserID(ctx context.Context, userID uint) ([]*models.Band, error) {
	var bands []*models.Band
	err := r.db.WithContext(ctx).
		Joins("JOIN band_members ON band_members.band_id = bands.id").
		Where("band_members.user_id = ?", userID).
		Order("bands.name").
		Find(&bands).Error
	if err != nil {
		return nil, err
	}
	return bands, nil
}

// ListAll lists all bands with pagination (admin view)
func (r *bandRepository) ListAll(ctx context.Context, offset, limit int) ([]*models.Band, int64, error) {
	var bands []*models.Band
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Band{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).Offset(offset).Limit(limit).Order("id").Find(&bands).Error; err != nil {
		return nil, 0, err
	}

	return bands, total, nil
}

// AddMember adds a membership row
func (r *bandRepository) AddMember(ctx context.Context, member *models.BandMember) error {
	err := r.db.WithContext(ctx).Create(member).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrAlreadyMember
	}
	return err
}

// GetMember gets the membership row for (bandID, userID)
func (r *bandRepository) GetMember(ctx context.Context, bandID, userID uint) (*models.BandMember, error) {
	var member models.BandMember
	err := r.db.WithContext(ctx).
		Where("band_id = ?", bandID).
		Where("user_id = ?", userID).
		First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, err
	}
	return &member, nil
}

// ListMembers lists memberships of a band with user info preloaded
func (r *bandRepository) ListMembers(ctx context.Context, bandID uint) ([]*models.BandMember, error) {
	var members []*models.BandMember
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("band_id = ?", bandID).
		Order("id").
		Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

// UpdateMemberRole updates a member's role inside the band
func (r *bandRepository) UpdateMemberRole(ctx context.Context, bandID, userID uint, role string) error {
	res := r.db.WithContext(ctx).
		Model(&models.BandMember{}).
		Where("band_id = ?", bandID).
		Where("user_id = ?", userID).
		Update("role", role)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrMemberNotFound
	}
	return nil
}

// RemoveMember removes a membership row
func (r *bandRepository) RemoveMember(ctx context.Context, bandID, userID uint) error {
	res := r.db.WithContext(ctx).
		Where("band_id = ?", bandID).
		Where("user_id = ?", userID).
		Delete(&models.BandMember{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrMemberNotFound
	}
	return nil
}
