package routes

import (
	"log"

	"loye-backend/internal/adapters/http/handlers"
	"loye-backend/internal/adapters/http/middleware"
	"loye-backend/internal/adapters/persistence/repositories"
	"loye-backend/internal/config"
	"loye-backend/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	profileRepo := repositories.NewLoyeProfileRepository(db)
	propertyRepo := repositories.NewPropertyRepository(db)
	inviteRepo := repositories.NewInviteCodeRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)
	verificationRepo := repositories.NewVerificationRepository(db)

	// Initialize services
	resolver := services.NewRoleResolver(services.NewRoleCache(), profileRepo)
	authService := services.NewAuthService(userRepo, refreshTokenRepo, profileRepo, resolver, cfg)
	loyeAuthService := services.NewLoyeAuthService(userRepo, profileRepo, propertyRepo, inviteRepo, authService, resolver, cfg)
	propertyService := services.NewPropertyService(propertyRepo, inviteRepo, userRepo, profileRepo, resolver)
	waveService := services.NewWaveService(services.WaveConfig{
		APIKey:     cfg.Wave.APIKey,
		BaseURL:    cfg.Wave.BaseURL,
		SuccessURL: cfg.Wave.SuccessURL,
		ErrorURL:   cfg.Wave.ErrorURL,
	})
	paymentService := services.NewPaymentService(paymentRepo, propertyRepo, waveService)
	verificationService := services.NewVerificationService(verificationRepo, resolver)
	dashboardService := services.NewDashboardService(userRepo, propertyRepo, paymentRepo, verificationRepo, paymentService)

	uploadService, err := services.NewUploadService(
		cfg.Cloudinary.CloudName,
		cfg.Cloudinary.APIKey,
		cfg.Cloudinary.APISecret,
	)
	if err != nil {
		log.Printf("⚠️ Upload service disabled: %v", err)
		uploadService = nil
	}

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	profileHandler := handlers.NewProfileHandler(authService)
	loyeAuthHandler := handlers.NewLoyeAuthHandler(loyeAuthService, cfg)
	propertyHandler := handlers.NewPropertyHandler(propertyService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	verificationHandler := handlers.NewVerificationHandler(verificationService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	uploadHandler := handlers.NewUploadHandler(uploadService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API group
	api := app.Group("/api")

	// Auth routes (public, rate limited)
	authRoutes := api.Group("/auth")
	setupAuthRoutes(authRoutes, authHandler, cfg)

	// Profile routes (authenticated)
	profileRoutes := api.Group("/profile")
	profileRoutes.Use(middleware.AuthMiddleware(cfg))
	profileRoutes.Get("/me", profileHandler.Me)
	profileRoutes.Patch("/me", profileHandler.Update)

	// Upload route (authenticated)
	api.Post("/upload", middleware.AuthMiddleware(cfg), uploadHandler.Upload)

	// Loye module routes
	loye := api.Group("/loye")
	setupLoyeRoutes(loye, resolver, loyeAuthHandler, propertyHandler, paymentHandler,
		verificationHandler, dashboardHandler, cfg)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, cfg *config.Config) {
	// Public routes
	router.Post("/register", middleware.AuthRateLimiter(), handler.Register)
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/refresh", handler.RefreshToken)

	// Protected routes
	router.Post("/logout", middleware.AuthMiddleware(cfg), handler.Logout)
}

// setupLoyeRoutes configures the Loye module routes. All of them sit
// behind AuthMiddleware; the role gate narrows each group further.
func setupLoyeRoutes(
	router fiber.Router,
	resolver *services.RoleResolver,
	loyeAuthHandler *handlers.LoyeAuthHandler,
	propertyHandler *handlers.PropertyHandler,
	paymentHandler *handlers.PaymentHandler,
	verificationHandler *handlers.VerificationHandler,
	dashboardHandler *handlers.DashboardHandler,
	cfg *config.Config,
) {
	// Wave webhook is called by the provider, not a session
	router.Post("/payments/wave/webhook", paymentHandler.Webhook)

	router.Use(middleware.AuthMiddleware(cfg))

	// Onboarding (authenticated, no role required yet)
	router.Get("/auth/check-role", loyeAuthHandler.CheckRole)
	router.Post("/auth/register-role", loyeAuthHandler.RegisterRole)
	router.Post("/invite", loyeAuthHandler.ConsumeInvite)

	// Renter and owner roles are disjoint, so the gates attach per route
	// rather than as group middleware, which fiber matches by prefix.
	renterGate := middleware.RenterOnly(resolver)
	router.Get("/dashboard", renterGate, dashboardHandler.Renter)
	router.Get("/rent-status", renterGate, paymentHandler.RentStatus)
	router.Post("/payments/wave/init", renterGate, paymentHandler.InitWave)
	router.Get("/payments/renter/payments/latest", renterGate, paymentHandler.Latest)

	ownerGate := middleware.OwnerOrManager(resolver)
	router.Get("/dashboard/owner", ownerGate, dashboardHandler.Owner)
	router.Post("/properties", ownerGate, propertyHandler.Create)
	router.Get("/properties", ownerGate, propertyHandler.List)
	router.Get("/properties/:id", ownerGate, propertyHandler.Get)
	router.Post("/properties/:id/invite-manager", ownerGate, propertyHandler.InviteManager)
	router.Patch("/units/:id", ownerGate, propertyHandler.UpdateUnit)
	router.Post("/units/:id/create-renter", ownerGate, propertyHandler.CreateRenter)
	router.Get("/verification", ownerGate, verificationHandler.Get)
	router.Post("/verification", ownerGate, verificationHandler.Submit)

	// Admin routes
	adminRoutes := router.Group("/admin")
	adminRoutes.Use(middleware.AdminOnly())
	adminRoutes.Get("/dashboard", dashboardHandler.Admin)
	adminRoutes.Get("/payments", paymentHandler.AdminListPayments)
	adminRoutes.Get("/payouts", paymentHandler.AdminListPayouts)

	verificationAdmin := router.Group("/verification/admin")
	verificationAdmin.Use(middleware.AdminOnly())
	verificationAdmin.Get("/all", verificationHandler.AdminListAll)
	verificationAdmin.Put("/:id/:decision", verificationHandler.AdminDecide)
	verificationAdmin.Post("/:id/:decision", verificationHandler.AdminDecide)
}
