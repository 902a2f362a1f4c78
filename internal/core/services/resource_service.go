package services

import (
	"context"
	"strings"

	"bandmate/internal/adapters/persistence/models"
	"bandmate/internal/adapters/persistence/repositories"
	"bandmate/internal/core/domain"
)

// Resource types
const (
	ResourceTypeRoom      = "room"
	ResourceTypeEquipment = "equipment"
)

// ResourceService handles rehearsal resource business logic
type ResourceService struct {
	resourceRepo repositories.ResourceRepository
}

// NewResourceService creates a new resource service
func NewResourceService(resourceRepo repositories.ResourceRepository) *ResourceService {
	return &ResourceService{resourceRepo: resourceRepo}
}

// CreateResourceInput for creating a resource
type CreateResourceInput struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Location    string `json:"location"`
	Capacity    int    `json:"capacity"`
	Description string `json:"description"`
}

// UpdateResourceInput for updating a resource
type UpdateResourceInput struct {
	Name        *string `json:"name"`
	Location    *string `json:"location"`
	Capacity    *int    `json:"capacity"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

// Create creates a resource
func (s *ResourceService) Create(ctx context.Context, input *CreateResourceInput) (*models.Resource, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.Validation("resource name is required")
	}
	if input.Type != ResourceTypeRoom && input.Type != ResourceTypeEquipment {
		return nil, domain.Validation("resource type must be room or equipment")
	}

	resource := &models.Resource{
		Name:        name,
		Type:        input.Type,
		Location:    strings.TrimSpace(input.Location),
		Capacity:    input.Capacity,
		Description: input.Description,
		IsActive:    true,
	}

	if err := s.resourceRepo.Create(ctx, resource); err != nil {
		return nil, err
	}
	return resource, nil
}

// GetByID gets a resource by ID
func (s *ResourceService) GetByID(ctx context.Context, id uint) (*models.Resource, error) {
	return s.resourceRepo.GetByID(ctx, id)
}

// List lists resources with pagination
func (s *ResourceService) List(ctx context.Context, offset, limit int) ([]*models.Resource, int64, error) {
	return s.resourceRepo.List(ctx, offset, limit)
}

// Update updates a resource
func (s *ResourceService) Update(ctx context.Context, id uint, input *UpdateResourceInput) (*models.Resource, error) {
	resource, err := s.resourceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, domain.Validation("resource name is required")
		}
		resource.Name = name
	}
	if input.Location != nil {
		resource.Location = strings.TrimSpace(*input.Location)
	}
	if input.Capacity != nil {
		resource.Capacity = *input.Capacity
	}
	if input.Description != nil {
		resource.Description = *input.Description
	}
	if input.IsActive != nil {
		resource.IsActive = *input.IsActive
	}

	if err := s.resourceRepo.Update(ctx, resource); err != nil {
		return nil, err
	}
	return resource, nil
}

// Delete deletes a resource
func (s *ResourceService) Delete(ctx context.Context, id uint) error {
	if _, err := s.resourceRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.resourceRepo.Delete(ctx, id)
}
