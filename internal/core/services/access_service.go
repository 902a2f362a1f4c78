package services

import (
	"context"

	"bandmate/internal/adapters/persistence/models"
	"bandmate/internal/adapters/persistence/repositories"
	"bandmate/internal/core/domain"
	"bandmate/internal/pkg/jwt"
)

// AccessService holds the access-control predicates gating protected
// operations. Predicates never mutate state; they only decide whether
// the caller may continue.
type AccessService struct {
	bandRepo      repositories.BandRepository
	rehearsalRepo repositories.RehearsalRepository
}

// NewAccessService creates a new access service
func NewAccessService(bandRepo repositories.BandRepository, rehearsalRepo repositories.RehearsalRepository) *AccessService {
	return &AccessService{bandRepo: bandRepo, rehearsalRepo: rehearsalRepo}
}

// RequireRole passes when the caller's global role is one of allowed
func (s *AccessService) RequireRole(claims *jwt.Claims, allowed ...string) error {
	for _, role := range allowed {
		if claims.Role == role {
			return nil
		}
	}
	return domain.ErrNotAuthorized
}

// RequireBandMembership passes for admins unconditionally; everyone else
// needs a membership row for (bandID, caller).
func (s *AccessService) RequireBandMembership(ctx context.Context, claims *jwt.Claims, bandID uint) error {
	if claims.Role == models.RoleAdmin {
		return nil
	}

	_, err := s.bandRepo.GetMember(ctx, bandID, claims.UserID)
	if err != nil {
		if domain.KindOf(err) == domain.KindNotFound {
			return domain.ErrNotBandMember
		}
		return err
	}
	return nil
}

// RequireBandOwnership passes for admins unconditionally; everyone else
// must be the band's creator. A missing band surfaces as not found.
func (s *AccessService) RequireBandOwnership(ctx context.Context, claims *jwt.Claims, bandID uint) error {
	if claims.Role == models.RoleAdmin {
		return nil
	}

	band, err := s.bandRepo.GetByID(ctx, bandID)
	if err != nil {
		return err
	}
	if band.CreatedByID != claims.UserID {
		return domain.ErrNotBandOwner
	}
	return nil
}

// RequireRehearsalManager passes for admins, the band owner and members
// whose band role allows managing rehearsals.
func (s *AccessService) RequireRehearsalManager(ctx context.Context, claims *jwt.Claims, bandID uint) error {
	if claims.Role == models.RoleAdmin {
		return nil
	}

	member, err := s.bandRepo.GetMember(ctx, bandID, claims.UserID)
	if err != nil {
		if domain.KindOf(err) == domain.KindNotFound {
			return domain.ErrNotBandMember
		}
		return err
	}
	if !member.CanManageRehearsals() {
		return domain.ErrNotAuthorized
	}
	return nil
}

// RequireRehearsalMembership resolves the rehearsal's band and requires
// membership in it.
func (s *AccessService) RequireRehearsalMembership(ctx context.Context, claims *jwt.Claims, rehearsalID uint) error {
	rehearsal, err := s.rehearsalRepo.GetByID(ctx, rehearsalID)
	if err != nil {
		return err
	}
	return s.RequireBandMembership(ctx, claims, rehearsal.BandID)
}

// RequireRehearsalManagement resolves the rehearsal's band and requires
// a managing membership in it.
func (s *AccessService) RequireRehearsalManagement(ctx context.Context, claims *jwt.Claims, rehearsalID uint) error {
	rehearsal, err := s.rehearsalRepo.GetByID(ctx, rehearsalID)
	if err != nil {
		return err
	}
	return s.RequireRehearsalManager(ctx, claims, rehearsal.BandID)
}
