package services

import (
	"context"
	"log"
	"strings"

	"bandmate/internal/adapters/persistence/models"
	"bandmate/internal/adapters/persistence/repositories"
	"bandmate/internal/core/domain"
)

// BandService handles band and membership business logic
type BandService struct {
	bandRepo repositories.BandRepository
	userRepo repositories.UserRepository
}

// NewBandService creates a new band service
func NewBandService(bandRepo repositories.BandRepository, userRepo repositories.UserRepository) *BandService {
	return &BandService{bandRepo: bandRepo, userRepo: userRepo}
}

// CreateBandInput for creating a band
type CreateBandInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// UpdateBandInput for updating a band
type UpdateBandInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// AddMemberInput for adding a member to a band
type AddMemberInput struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
}

func validBandRole(role string) bool {
	switch role {
	case models.BandRoleOwner, models.BandRoleManager, models.BandRoleMember:
		return true
	}
	return false
}

// Create creates a band; the creator becomes its owner and gets an owner
// membership row.
func (s *BandService) Create(ctx context.Context, userID uint, input *CreateBandInput) (*models.Band, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.Validation("band name is required")
	}

	band := &models.Band{
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		CreatedByID: userID,
	}

	if err := s.bandRepo.Create(ctx, band); err != nil {
		return nil, err
	}

	log.Printf("band created: %s (id=%d) by user %d", band.Name, band.ID, userID)
	return band, nil
}

// GetByID gets a band by ID
func (s *BandService) GetByID(ctx context.Context, id uint) (*models.Band, error) {
	return s.bandRepo.GetByID(ctx, id)
}

// ListForUser lists the bands the user belongs to
func (s *BandService) ListForUser(ctx context.Context, userID uint) ([]*models.Band, error) {
	return s.bandRepo.ListByUserID(ctx, userID)
}

// ListAll lists all bands with pagination (admin view)
func (s *BandService) ListAll(ctx context.Context, offset, limit int) ([]*models.Band, int64, error) {
	return s.bandRepo.ListAll(ctx, offset, limit)
}

// Update updates band fields
func (s *BandService) Update(ctx context.Context, id uint, input *UpdateBandInput) (*models.Band, error) {
	band, err := s.bandRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, domain.Validation("band name is required")
		}
		band.Name = name
	}
	if input.Description != nil {
		band.Description = strings.TrimSpace(*input.Description)
	}

	if err := s.bandRepo.Update(ctx, band); err != nil {
		return nil, err
	}
	return band, nil
}

// Delete deletes a band and its memberships
func (s *BandService) Delete(ctx context.Context, id uint) error {
	if _, err := s.bandRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.bandRepo.Delete(ctx, id)
}

// ListMembers lists a band's memberships
func (s *BandService) ListMembers(ctx context.Context, bandID uint) ([]*models.BandMember, error) {
	if _, err := s.bandRepo.GetByID(ctx, bandID); err != nil {
		return nil, err
	}
	return s.bandRepo.ListMembers(ctx, bandID)
}

// AddMember adds a user to a band
func (s *BandService) AddMember(ctx context.Context, bandID uint, input *AddMemberInput) (*models.BandMember, error) {
	role := input.Role
	if role == "" {
		role = models.BandRoleMember
	}
	if !validBandRole(role) {
		return nil, domain.Validation("invalid band role")
	}

	if _, err := s.bandRepo.GetByID(ctx, bandID); err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	member := &models.BandMember{
		BandID: bandID,
		UserID: user.ID,
		Role:   role,
	}
	if err := s.bandRepo.AddMember(ctx, member); err != nil {
		return nil, err
	}
	member.User = user
	return member, nil
}

// UpdateMemberRole changes a member's role inside a band
func (s *BandService) UpdateMemberRole(ctx context.Context, bandID, userID uint, role string) error {
	if !validBandRole(role) {
		return domain.Validation("invalid band role")
	}
	return s.bandRepo.UpdateMemberRole(ctx, bandID, userID, role)
}

// RemoveMember removes a member from a band. The band creator cannot be
// removed; delete the band instead.
func (s *BandService) RemoveMember(ctx context.Context, bandID, userID uint) error {
	band, err := s.bandRepo.GetByID(ctx, bandID)
	if err != nil {
		return err
	}
	if band.CreatedByID == userID {
		return domain.Validation("cannot remove the band owner")
	}
	return s.bandRepo.RemoveMember(ctx, bandID, userID)
}
