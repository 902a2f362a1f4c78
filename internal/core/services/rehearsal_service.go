package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"bandmate/internal/adapters/persistence/models"
	"bandmate/internal/adapters/persistence/repositories"
	"bandmate/internal/core/domain"
)

// RehearsalService handles rehearsal and RSVP business logic
type RehearsalService struct {
	rehearsalRepo repositories.RehearsalRepository
	resourceRepo  repositories.ResourceRepository
	notifyService *NotificationService
}

// NewRehearsalService creates a new rehearsal service
func NewRehearsalService(
	rehearsalRepo repositories.RehearsalRepository,
	resourceRepo repositories.ResourceRepository,
	notifyService *NotificationService,
) *RehearsalService {
	return &RehearsalService{
		rehearsalRepo: rehearsalRepo,
		resourceRepo:  resourceRepo,
		notifyService: notifyService,
	}
}

// CreateRehearsalInput for creating a rehearsal
type CreateRehearsalInput struct {
	Title      string    `json:"title"`
	Location   string    `json:"location"`
	StartsAt   time.Time `json:"starts_at"`
	EndsAt     time.Time `json:"ends_at"`
	Notes      string    `json:"notes"`
	ResourceID *uint     `json:"resource_id"`
}

// UpdateRehearsalInput for updating a rehearsal
type UpdateRehearsalInput struct {
	Title      *string    `json:"title"`
	Location   *string    `json:"location"`
	StartsAt   *time.Time `json:"starts_at"`
	EndsAt     *time.Time `json:"ends_at"`
	Notes      *string    `json:"notes"`
	ResourceID *uint      `json:"resource_id"`
}

// RSVPInput for setting attendance
type RSVPInput struct {
	Status  string `json:"status"`
	Comment string `json:"comment"`
}

func validAttendance(status string) bool {
	switch status {
	case models.AttendanceYes, models.AttendanceNo, models.AttendanceMaybe:
		return true
	}
	return false
}

func (s *RehearsalService) validateTimes(startsAt, endsAt time.Time) error {
	if startsAt.IsZero() || endsAt.IsZero() {
		return domain.Validation("starts_at and ends_at are required")
	}
	if !endsAt.After(startsAt) {
		return domain.Validation("ends_at must be after starts_at")
	}
	return nil
}

func (s *RehearsalService) resolveResource(ctx context.Context, resourceID *uint) error {
	if resourceID == nil {
		return nil
	}
	resource, err := s.resourceRepo.GetByID(ctx, *resourceID)
	if err != nil {
		return err
	}
	if !resource.IsActive {
		return domain.Validation("resource is not available")
	}
	return nil
}

// Create schedules a rehearsal for a band and notifies its members
func (s *RehearsalService) Create(ctx context.Context, bandID, userID uint, input *CreateRehearsalInput) (*models.Rehearsal, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, domain.Validation("rehearsal title is required")
	}
	if err := s.validateTimes(input.StartsAt, input.EndsAt); err != nil {
		return nil, err
	}
	if err := s.resolveResource(ctx, input.ResourceID); err != nil {
		return nil, err
	}

	rehearsal := &models.Rehearsal{
		BandID:      bandID,
		Title:       title,
		Location:    strings.TrimSpace(input.Location),
		StartsAt:    input.StartsAt,
		EndsAt:      input.EndsAt,
		Notes:       input.Notes,
		Status:      models.RehearsalScheduled,
		ResourceID:  input.ResourceID,
		CreatedByID: userID,
	}

	if err := s.rehearsalRepo.Create(ctx, rehearsal); err != nil {
		return nil, err
	}

	log.Printf("rehearsal created: %q (id=%d) for band %d", rehearsal.Title, rehearsal.ID, bandID)

	message := fmt.Sprintf("New rehearsal %q on %s", rehearsal.Title, rehearsal.StartsAt.Format("Mon Jan 2 15:04"))
	s.notifyService.NotifyBand(ctx, rehearsal, models.NotifyRehearsalCreated, message, userID)

	return rehearsal, nil
}

// GetByID gets a rehearsal by ID
func (s *RehearsalService) GetByID(ctx context.Context, id uint) (*models.Rehearsal, error) {
	return s.rehearsalRepo.GetByID(ctx, id)
}

// ListByBand lists a band's rehearsals
func (s *RehearsalService) ListByBand(ctx context.Context, bandID uint, offset, limit int) ([]*models.Rehearsal, int64, error) {
	return s.rehearsalRepo.ListByBandID(ctx, bandID, offset, limit)
}

// Update changes rehearsal fields and notifies the band
func (s *RehearsalService) Update(ctx context.Context, id, userID uint, input *UpdateRehearsalInput) (*models.Rehearsal, error) {
	rehearsal, err := s.rehearsalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rehearsal.IsCancelled() {
		return nil, domain.Validation("cannot update a cancelled rehearsal")
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, domain.Validation("rehearsal title is required")
		}
		rehearsal.Title = title
	}
	if input.Location != nil {
		rehearsal.Location = strings.TrimSpace(*input.Location)
	}
	if input.StartsAt != nil {
		rehearsal.StartsAt = *input.StartsAt
	}
	if input.EndsAt != nil {
		rehearsal.EndsAt = *input.EndsAt
	}
	if err := s.validateTimes(rehearsal.StartsAt, rehearsal.EndsAt); err != nil {
		return nil, err
	}
	if input.Notes != nil {
		rehearsal.Notes = *input.Notes
	}
	if input.ResourceID != nil {
		if err := s.resolveResource(ctx, input.ResourceID); err != nil {
			return nil, err
		}
		rehearsal.ResourceID = input.ResourceID
	}

	if err := s.rehearsalRepo.Update(ctx, rehearsal); err != nil {
		return nil, err
	}

	message := fmt.Sprintf("Rehearsal %q was updated, now %s", rehearsal.Title, rehearsal.StartsAt.Format("Mon Jan 2 15:04"))
	s.notifyService.NotifyBand(ctx, rehearsal, models.NotifyRehearsalUpdated, message, userID)

	return rehearsal, nil
}

// Cancel marks a rehearsal cancelled and notifies the band. Cancelling
// twice is a no-op.
func (s *RehearsalService) Cancel(ctx context.Context, id, userID uint) (*models.Rehearsal, error) {
	rehearsal, err := s.rehearsalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rehearsal.IsCancelled() {
		return rehearsal, nil
	}

	rehearsal.Status = models.RehearsalCancelled
	if err := s.rehearsalRepo.Update(ctx, rehearsal); err != nil {
		return nil, err
	}

	message := fmt.Sprintf("Rehearsal %q on %s was cancelled", rehearsal.Title, rehearsal.StartsAt.Format("Mon Jan 2 15:04"))
	s.notifyService.NotifyBand(ctx, rehearsal, models.NotifyRehearsalCancelled, message, userID)

	return rehearsal, nil
}

// RSVP upserts the caller's attendance for a rehearsal
func (s *RehearsalService) RSVP(ctx context.Context, rehearsalID, userID uint, input *RSVPInput) (*models.Attendance, error) {
	if !validAttendance(input.Status) {
		return nil, domain.Validation("attendance status must be yes, no or maybe")
	}

	rehearsal, err := s.rehearsalRepo.GetByID(ctx, rehearsalID)
	if err != nil {
		return nil, err
	}
	if rehearsal.IsCancelled() {
		return nil, domain.Validation("cannot RSVP to a cancelled rehearsal")
	}

	att := &models.Attendance{
		RehearsalID: rehearsalID,
		UserID:      userID,
		Status:      input.Status,
		Comment:     strings.TrimSpace(input.Comment),
	}
	if err := s.rehearsalRepo.UpsertAttendance(ctx, att); err != nil {
		return nil, err
	}
	return att, nil
}

// ListAttendance lists RSVPs for a rehearsal
func (s *RehearsalService) ListAttendance(ctx context.Context, rehearsalID uint) ([]*models.Attendance, error) {
	if _, err := s.rehearsalRepo.GetByID(ctx, rehearsalID); err != nil {
		return nil, err
	}
	return s.rehearsalRepo.ListAttendance(ctx, rehearsalID)
}
