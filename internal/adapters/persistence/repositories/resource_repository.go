package repositories

import (
	"context"
	"errors"

	"bandmate/internal/adapters/persistence/models"
	"bandmate/internal/core/domain"

	"gorm.io/gorm"
)

// resourceRepository implements ResourceRepository interface
type resourceRepository struct {
	db *gorm.DB
}

// NewResourceRepository creates a new resource repository
func NewResourceRepository(db *gorm.DB) ResourceRepository {
	return &resourceRepository{db: db}
}

// Create creates a new resource
func (r *resourceRepository) Create(ctx context.Context, resource *models.Resource) error {
	return r.db.WithContext(ctx).Create(resource).Error
}

// GetByID gets a resource by ID
func (r *resourceRepository) GetByID(ctx context.Context, id uint) (*models.Resource, error) {
	var resource models.Resource
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&resource).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrResourceNotFound
		}
		return nil, err
	}
	return &resource, nil
}

// Update updates a resource
func (r *resourceRepository) Update(ctx context.Context, resource *models.Resource) error {
	return r.db.WithContext(ctx).Save(resource).Error
}

// Delete soft deletes a resource
func (r *resourceRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Resource{}, id).Error
}

// List lists resources with pagination
func (r *resourceRepository) List(ctx context.Context, offset, limit int) ([]*models.Resource, int64, error) {
	var resources []*models.Resource
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Resource{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).Offset(offset).Limit(limit).Order("name").Find(&resources).Error; err != nil {
		return nil, 0, err
	}

	return resources, total, nil
}
