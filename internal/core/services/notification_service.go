package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"bandmate/internal/adapters/persistence/models"
	"bandmate/internal/adapters/persistence/repositories"
)

// NotificationService creates and serves per-user notifications
type NotificationService struct {
	notificationRepo repositories.NotificationRepository
	bandRepo         repositories.BandRepository
	rehearsalRepo    repositories.RehearsalRepository
}

// NewNotificationService creates a new notification service
func NewNotificationService(
	notificationRepo repositories.NotificationRepository,
	bandRepo repositories.BandRepository,
	rehearsalRepo repositories.RehearsalRepository,
) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		bandRepo:         bandRepo,
		rehearsalRepo:    rehearsalRepo,
	}
}

// ListForUser lists a user's notifications
func (s *NotificationService) ListForUser(ctx context.Context, userID uint, unreadOnly bool, offset, limit int) ([]*models.Notification, int64, error) {
	return s.notificationRepo.ListByUserID(ctx, userID, unreadOnly, offset, limit)
}

// MarkRead marks one notification as read
func (s *NotificationService) MarkRead(ctx context.Context, id, userID uint) error {
	return s.notificationRepo.MarkRead(ctx, id, userID)
}

// MarkAllRead marks all of a user's notifications as read
func (s *NotificationService) MarkAllRead(ctx context.Context, userID uint) error {
	return s.notificationRepo.MarkAllRead(ctx, userID)
}

// NotifyBand fans a rehearsal notification out to every member of the
// band except the actor who triggered it. Fan-out failures are logged,
// not propagated: a missed notification never fails the operation.
func (s *NotificationService) NotifyBand(ctx context.Context, rehearsal *models.Rehearsal, notifType, message string, actorID uint) {
	members, err := s.bandRepo.ListMembers(ctx, rehearsal.BandID)
	if err != nil {
		log.Printf("notification fan-out failed for rehearsal %d: %v", rehearsal.ID, err)
		return
	}

	rehearsalID := rehearsal.ID
	notifications := make([]*models.Notification, 0, len(members))
	for _, member := range members {
		if member.UserID == actorID {
			continue
		}
		notifications = append(notifications, &models.Notification{
			UserID:      member.UserID,
			RehearsalID: &rehearsalID,
			Type:        notifType,
			Message:     message,
		})
	}

	if err := s.notificationRepo.CreateBatch(ctx, notifications); err != nil {
		log.Printf("notification fan-out failed for rehearsal %d: %v", rehearsal.ID, err)
	}
}

// SendRehearsalReminders creates reminder notifications for scheduled
// rehearsals starting within the next 24 hours, one per member per
// rehearsal.
func (s *NotificationService) SendRehearsalReminders(ctx context.Context) error {
	now := time.Now()
	rehearsals, err := s.rehearsalRepo.ListUpcoming(ctx, now, now.Add(24*time.Hour))
	if err != nil {
		return err
	}

	for _, rehearsal := range rehearsals {
		members, err := s.bandRepo.ListMembers(ctx, rehearsal.BandID)
		if err != nil {
			log.Printf("reminder pass: list members of band %d: %v", rehearsal.BandID, err)
			continue
		}

		rehearsalID := rehearsal.ID
		message := fmt.Sprintf("Reminder: %q starts at %s", rehearsal.Title, rehearsal.StartsAt.Format("Mon Jan 2 15:04"))

		for _, member := range members {
			exists, err := s.notificationRepo.ExistsForRehearsal(ctx, member.UserID, rehearsal.ID, models.NotifyRehearsalReminder)
			if err != nil || exists {
				continue
			}
			notification := &models.Notification{
				UserID:      member.UserID,
				RehearsalID: &rehearsalID,
				Type:        models.NotifyRehearsalReminder,
				Message:     message,
			}
			if err := s.notificationRepo.Create(ctx, notification); err != nil {
				log.Printf("reminder pass: create notification: %v", err)
			}
		}
	}

	return nil
}
