package routes

import (
	"time"

	"bandmate/internal/adapters/http/handlers"
	"bandmate/internal/adapters/http/middleware"
	"bandmate/internal/adapters/persistence/repositories"
	"bandmate/internal/config"
	"bandmate/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
)

// Setup wires repositories, services and handlers and registers all
// routes on the app. It returns the cron service so main can control
// its lifecycle.
func Setup(app *fiber.App, cfg *config.Config) *services.CronService {
	db := config.DB

	// Repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	bandRepo := repositories.NewBandRepository(db)
	rehearsalRepo := repositories.NewRehearsalRepository(db)
	resourceRepo := repositories.NewResourceRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)

	// Services
	authService := services.NewAuthService(userRepo, refreshTokenRepo, cfg)
	accessService := services.NewAccessService(bandRepo, rehearsalRepo)
	bandService := services.NewBandService(bandRepo, userRepo)
	notificationService := services.NewNotificationService(notificationRepo, bandRepo, rehearsalRepo)
	rehearsalService := services.NewRehearsalService(rehearsalRepo, resourceRepo, notificationService)
	resourceService := services.NewResourceService(resourceRepo)
	userService := services.NewUserService(userRepo, refreshTokenRepo)
	cronService := services.NewCronService(refreshTokenRepo, notificationService)

	// Handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	bandHandler := handlers.NewBandHandler(bandService)
	rehearsalHandler := handlers.NewRehearsalHandler(rehearsalService)
	resourceHandler := handlers.NewResourceHandler(resourceService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	userHandler := handlers.NewUserHandler(userService)

	authRequired := middleware.AuthMiddleware(cfg)

	// Public
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.Health)
	app.Get("/swagger/*", swagger.HandlerDefault)

	api := app.Group("/api")

	// Auth
	auth := api.Group("/auth", middleware.NoCache())
	auth.Post("/register", middleware.AuthRateLimiter(), authHandler.Register)
	auth.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)
	auth.Post("/refresh-token", middleware.AuthRateLimiter(), authHandler.RefreshToken)
	auth.Post("/logout", authHandler.Logout)
	auth.Post("/logout-all", authRequired, authHandler.LogoutAll)
	auth.Get("/me", authRequired, authHandler.Me)

	// Bands
	bands := api.Group("/bands", authRequired)
	bands.Post("/", bandHandler.Create)
	bands.Get("/", bandHandler.List)
	bands.Get("/:bandId", middleware.RequireBandMembership(accessService), bandHandler.Get)
	bands.Put("/:bandId", middleware.RequireBandOwnership(accessService), bandHandler.Update)
	bands.Delete("/:bandId", middleware.RequireBandOwnership(accessService), bandHandler.Delete)

	// Band members
	bands.Get("/:bandId/members", middleware.RequireBandMembership(accessService), bandHandler.ListMembers)
	bands.Post("/:bandId/members", middleware.RequireBandOwnership(accessService), bandHandler.AddMember)
	bands.Put("/:bandId/members/:userId", middleware.RequireBandOwnership(accessService), bandHandler.UpdateMember)
	bands.Delete("/:bandId/members/:userId", middleware.RequireBandOwnership(accessService), bandHandler.RemoveMember)

	// Band rehearsals
	bands.Post("/:bandId/rehearsals", middleware.RequireRehearsalManager(accessService), rehearsalHandler.Create)
	bands.Get("/:bandId/rehearsals", middleware.RequireBandMembership(accessService), rehearsalHandler.ListByBand)

	// Rehearsals
	rehearsals := api.Group("/rehearsals", authRequired)
	rehearsals.Get("/:id", middleware.RequireRehearsalMember(accessService), rehearsalHandler.Get)
	rehearsals.Put("/:id", middleware.RequireRehearsalManagement(accessService), rehearsalHandler.Update)
	rehearsals.Delete("/:id", middleware.RequireRehearsalManagement(accessService), rehearsalHandler.Cancel)
	rehearsals.Post("/:id/attendance", middleware.RequireRehearsalMember(accessService), rehearsalHandler.RSVP)
	rehearsals.Get("/:id/attendance", middleware.RequireRehearsalMember(accessService), rehearsalHandler.ListAttendance)

	// Resources
	resources := api.Group("/resources", authRequired)
	resources.Get("/", middleware.PrivateCache(5*time.Minute), resourceHandler.List)
	resources.Get("/:id", middleware.PrivateCache(5*time.Minute), resourceHandler.Get)
	resources.Post("/", middleware.ManagerOrAdmin(accessService), resourceHandler.Create)
	resources.Put("/:id", middleware.ManagerOrAdmin(accessService), resourceHandler.Update)
	resources.Delete("/:id", middleware.ManagerOrAdmin(accessService), resourceHandler.Delete)

	// Notifications
	notifications := api.Group("/notifications", authRequired, middleware.NoCache())
	notifications.Get("/", notificationHandler.List)
	notifications.Post("/read-all", notificationHandler.MarkAllRead)
	notifications.Post("/:id/read", notificationHandler.MarkRead)

	// Admin user management
	users := api.Group("/users", authRequired, middleware.AdminOnly(accessService))
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.Get)
	users.Put("/:id/role", userHandler.ChangeRole)
	users.Post("/:id/deactivate", userHandler.Deactivate)

	return cronService
}
