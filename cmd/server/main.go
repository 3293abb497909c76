package main

import (
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"github.com/styoin/styo-server/internal/config"
	"github.com/styoin/styo-server/internal/database"
	"github.com/styoin/styo-server/internal/handlers"
	"github.com/styoin/styo-server/internal/middleware"
	"github.com/styoin/styo-server/internal/services"
	"github.com/styoin/styo-server/internal/types"

	_ "github.com/styoin/styo-server/docs/api" // Swagger docs
)

// @title STYO API
// @version 1.0.0
// @description Property listing marketplace backend
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/styoin/styo-server

// @host localhost:3000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name cookie_session

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Payment gateway client
	services.InitMidtrans(cfg.MidtransServerKey, cfg.MidtransProd)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler:          customErrorHandler,
		DisableStartupMessage: false,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("styo")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Create handlers
	listingHandler := &handlers.ListingHandler{DB: db}
	reviewHandler := &handlers.ReviewHandler{DB: db}
	leadHandler := &handlers.LeadHandler{DB: db}
	submissionHandler := &handlers.SubmissionHandler{DB: db, Cfg: cfg}
	adminHandler := &handlers.AdminHandler{DB: db, Cfg: cfg}
	cityHandler := &handlers.CityChargeHandler{DB: db}
	profileHandler := &handlers.ProfileHandler{DB: db}
	paymentHandler := &handlers.PaymentHandler{DB: db, Cfg: cfg}
	systemHandler := &handlers.SystemHandler{DB: db, Cfg: cfg}

	// Health endpoint lives outside /api so probes skip versioning
	app.Get("/health", systemHandler.HealthCheck)

	// API routes under /api
	api := app.Group("/api")
	api.Use(middleware.VersionMiddleware())

	// Public routes
	api.Get("/listings", listingHandler.GetListings)
	api.Get("/listings/featured", listingHandler.GetFeaturedListings)
	api.Get("/listings/verified", listingHandler.GetVerifiedListings)
	api.Get("/listings/available", listingHandler.GetAvailableListings)
	api.Get("/listings/nearby", listingHandler.GetListingsByLocation)
	api.Get("/listings/counts", listingHandler.GetAvailabilityCounts)
	api.Get("/listings/category/:category", listingHandler.GetListingsByCategory)
	api.Get("/listings/:id", listingHandler.GetListing)
	api.Get("/listings/:id/availability", listingHandler.GetAvailability)
	api.Get("/listings/:id/reviews", reviewHandler.GetReviews)
	api.Get("/listings/:id/reviews/average", reviewHandler.GetAverageRating)
	api.Get("/cities/:city/charges", cityHandler.GetChargeStatus)
	api.Get("/events", systemHandler.GetEventMarkers)
	api.Get("/free-trial", systemHandler.GetFreeTrialMode)

	// Anonymous listing intake, throttled per IP
	api.Post("/public/listings", middleware.PublicSubmissionLimiter(), submissionHandler.SubmitListing)

	// Authenticated user routes
	authUser := middleware.AuthUser(cfg)
	api.Post("/listings", authUser, listingHandler.CreateListing)
	api.Put("/listings/:id", authUser, listingHandler.UpdateListing)
	api.Put("/listings/:id/availability", authUser, listingHandler.UpdateAvailability)
	api.Post("/listings/:id/status/advance", authUser, listingHandler.AdvanceStatus)
	api.Post("/listings/:id/reviews", authUser, reviewHandler.AddReview)
	api.Post("/listings/:id/unlock", authUser, leadHandler.RequestOwnerInfo)
	api.Get("/profile", authUser, profileHandler.GetProfile)
	api.Put("/profile", authUser, profileHandler.SaveProfile)
	api.Get("/profile/role", authUser, profileHandler.GetCallerRole)
	api.Post("/payments/unlock", authUser, paymentHandler.CheckoutUnlock)
	api.Post("/payments/featured", authUser, paymentHandler.CheckoutFeatured)
	api.Post("/payments/listing", authUser, paymentHandler.CheckoutListing)
	api.Post("/payments/booking-hold", authUser, paymentHandler.CheckoutBookingHold)
	api.Post("/payments/:session/success", authUser, paymentHandler.PaymentSuccess)
	api.Post("/payments/:session/cancel", authUser, paymentHandler.PaymentCancel)

	// Admin routes
	admin := api.Group("/admin", middleware.AuthAdmin(cfg))
	admin.Get("/dashboard", adminHandler.GetDashboard)
	admin.Get("/listings", adminHandler.GetAllListings)
	admin.Get("/listings/:id/leads", leadHandler.GetLeadsForListing)
	admin.Post("/listings/:id/approve", submissionHandler.ApproveListing)
	admin.Post("/listings/:id/reject", submissionHandler.RejectListing)
	admin.Post("/listings/:id/verify", adminHandler.VerifyListing)
	admin.Post("/listings/:id/feature", adminHandler.FeatureListing)
	admin.Post("/listings/:id/status/advance", adminHandler.AdvanceStatus)
	admin.Get("/submissions", submissionHandler.GetPendingSubmissions)
	admin.Get("/leads", leadHandler.GetLeadAnalytics)
	admin.Get("/notifications", leadHandler.GetNotifications)
	admin.Post("/notifications/:id/read", leadHandler.MarkNotificationRead)
	admin.Get("/users", adminHandler.GetUsers)
	admin.Get("/users/:principal", adminHandler.GetUserProfile)
	admin.Get("/cities/charges", cityHandler.GetAllCharges)
	admin.Put("/cities/charges", cityHandler.BulkUpdateCharges)
	admin.Put("/cities/:city/charges", cityHandler.UpdateCharges)
	admin.Post("/free-trial", adminHandler.SetFreeTrialMode)
	admin.Post("/demo-data", adminHandler.SeedDemoData)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":    fiber.StatusNotFound,
			"message":   "[404] Resource Not Found",
			"ok":        false,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"url":       c.OriginalURL(),
		})
	})

	log.Printf("Authorizer will be initialized on first authenticated request")

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	port := cfg.Port
	log.Printf("Starting server on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Println("Server stopped")
}

// customErrorHandler handles errors globally
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()
	errorType := "unknown"

	var custom *types.CustomError
	if errors.As(err, &custom) {
		code = custom.Code
		message = custom.Message
		errorType = custom.Type
	} else if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	conflict := code == fiber.StatusConflict

	return c.Status(code).JSON(fiber.Map{
		"status":    code,
		"message":   message,
		"ok":        false,
		"conflict":  conflict,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      errorType,
	})
}
