package main

import (
	"fmt"
	"os"

	"github.com/shafee-ullah/roommate-finder/backend-go/internal/api"
	"github.com/shafee-ullah/roommate-finder/backend-go/internal/config"
	"github.com/shafee-ullah/roommate-finder/backend-go/internal/database"
	"github.com/shafee-ullah/roommate-finder/backend-go/internal/database/repository"
	"github.com/shafee-ullah/roommate-finder/backend-go/internal/database/service"
	"github.com/shafee-ullah/roommate-finder/backend-go/internal/handler"
	"github.com/shafee-ullah/roommate-finder/backend-go/internal/identity"
	"github.com/shafee-ullah/roommate-finder/backend-go/internal/logger"
	"github.com/shafee-ullah/roommate-finder/backend-go/internal/middleware"
)

func main() {
	// 1. Config
	cfg := config.LoadConfig()

	// 2. Logger
	appLogger := logger.New(cfg)

	appLogger.Info("🚀 [Go] Starting Roommate Finder API...",
		"environment", cfg.AppEnv,
	)

	// 3. Connect to Database
	db, err := database.ConnectDatabase(cfg, appLogger)
	if err != nil {
		appLogger.Error("❌ Failed to connect to database", "error", err)
		os.Exit(1)
	}

	// 4. Initialize Repositories
	userRepo := repository.NewUserRepository(db)
	listingRepo := repository.NewListingRepository(db)

	// 5. Initialize Reveal Store (Redis)
	var reveals database.RevealStore
	reveals, err = database.NewRedisRevealStore(cfg, appLogger)
	if err != nil {
		appLogger.Warn("⚠️ Failed to connect to Redis, reveal state falls back to the database", "error", err)
		reveals = database.NewNoOpRevealStore(appLogger)
	}
	defer reveals.Close()

	// 6. Initialize Services
	verifier := identity.NewVerifier(cfg, appLogger)
	userService := service.NewUserService(userRepo, appLogger)
	listingService := service.NewListingService(listingRepo, reveals, appLogger)

	// 7. Initialize Handlers & Middleware
	userHandler := handler.NewUserHandler(userService, appLogger)
	listingHandler := handler.NewListingHandler(listingService, cfg, appLogger)
	authMiddleware := middleware.NewAuthMiddleware(verifier, userService, appLogger)

	// 8. Setup Router and Start HTTP Server
	r := api.SetupRouter(userHandler, listingHandler, authMiddleware)

	addr := fmt.Sprintf(":%s", cfg.ApiServicePort)
	appLogger.Info("🌍 [Go] HTTP Server running on port...", "port", addr)
	if err := r.Run(addr); err != nil {
		appLogger.Error("❌ HTTP Server failed to start", "error", err)
		os.Exit(1)
	}
}
