package config

import (
	"log"
	"os"

	"bandmate/internal/adapters/persistence/models"
	"bandmate/internal/pkg/password"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("running database seeders...")

	if err := s.seedAdminUser(); err != nil {
		log.Printf("admin seeder skipped: %v", err)
	}

	log.Println("database seeding completed")
	return nil
}

// seedAdminUser creates the bootstrap admin account when no admin
// exists. Credentials come from the environment; in production set them
// before first boot and rotate afterwards.
func (s *Seeder) seedAdminUser() error {
	var count int64
	s.db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count)
	if count > 0 {
		return nil
	}

	email := os.Getenv("ADMIN_EMAIL")
	pass := os.Getenv("ADMIN_PASSWORD")
	if email == "" || pass == "" {
		log.Println("skipping admin seed: ADMIN_EMAIL / ADMIN_PASSWORD not set")
		return nil
	}

	hashedPassword, err := password.Hash(pass)
	if err != nil {
		return err
	}

	admin := &models.User{
		Email:     email,
		Password:  hashedPassword,
		FirstName: "Admin",
		LastName:  "Account",
		Role:      models.RoleAdmin,
		IsActive:  true,
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("admin user seeded: %s", email)
	return nil
}
