package services

import (
	"context"
	"log"
	"time"

	"bandmate/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
)

// CronService runs the scheduled maintenance jobs: the nightly purge of
// expired refresh tokens and the hourly rehearsal reminder pass.
type CronService struct {
	cron             *cron.Cron
	refreshTokenRepo repositories.RefreshTokenRepository
	notifyService    *NotificationService
}

// NewCronService creates a new cron service
func NewCronService(refreshTokenRepo repositories.RefreshTokenRepository, notifyService *NotificationService) *CronService {
	return &CronService{
		cron:             cron.New(),
		refreshTokenRepo: refreshTokenRepo,
		notifyService:    notifyService,
	}
}

// Start registers and launches the scheduled jobs
func (s *CronService) Start() {
	// 03:00 daily: purge expired refresh tokens
	s.cron.AddFunc("0 3 * * *", s.purgeExpiredTokens)

	// Hourly: reminders for rehearsals starting within 24h
	s.cron.AddFunc("0 * * * *", s.sendReminders)

	s.cron.Start()
	log.Println("cron service started")
}

// Stop stops the scheduler and waits for running jobs
func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("cron service stopped")
}

func (s *CronService) purgeExpiredTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.refreshTokenRepo.DeleteExpired(ctx); err != nil {
		log.Printf("expired token purge failed: %v", err)
		return
	}
	log.Println("expired refresh tokens purged")
}

func (s *CronService) sendReminders() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := s.notifyService.SendRehearsalReminders(ctx); err != nil {
		log.Printf("rehearsal reminder pass failed: %v", err)
	}
}
