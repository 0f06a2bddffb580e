package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"garagesale.backend/internal/config"
	"garagesale.backend/internal/infrastructure/jobs"
	"garagesale.backend/internal/infrastructure/repositories"
	"garagesale.backend/internal/infrastructure/storage"
	"garagesale.backend/internal/interfaces/http/handlers"
	"garagesale.backend/internal/interfaces/http/middleware"
	"garagesale.backend/internal/usecases"
	"garagesale.backend/pkg/jwt"
	"garagesale.backend/pkg/logger"
	"garagesale.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	}
	newSessionStore = redis.NewSessionStore
	newObjectStore  = func(cfg config.StorageConfig) (*storage.MinIOClient, error) {
		return storage.NewMinIOClient(cfg)
	}
	runServer = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB  = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	// Load .env file
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := loadCfg()

	// Initialize Logger
	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	// Initialize Redis
	if err := initRedis(cfg.Redis.URL, cfg.Redis.PASSWORD); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "Redis initialized")

	// Set Gin mode
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database using GORM
	dsn := cfg.Database.URL()
	db, err := openDB(dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Printf("⚠️ Database not available: %v (endpoints will return errors)", err)
	} else {
		log.Println("✅ Connected to PostgreSQL via GORM")
	}

	// Initialize JWT service
	jwtService := jwt.NewJWTService(
		cfg.JWT.Secret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	itemRepo := repositories.NewItemRepository(db)
	donationRepo := repositories.NewDonationRepository(db)
	proofRepo := repositories.NewPhotoProofRepository(db)
	messageRepo := repositories.NewMessageRepository(db)
	uow := repositories.NewUnitOfWork(db)

	// Initialize Session Store
	sessionStore, err := newSessionStore(cfg.Security.SessionEncryptionKey)
	if err != nil {
		return fmt.Errorf("failed to initialize session store: %w", err)
	}

	// Initialize object storage
	objectStore, err := newObjectStore(cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to initialize object storage: %w", err)
	}
	if err := objectStore.EnsureBucket(context.Background()); err != nil {
		log.Printf("⚠️ Object storage not available: %v (uploads will return errors)", err)
	} else {
		log.Println("✅ Object storage bucket ready")
	}

	// Initialize usecases
	authUsecase := usecases.NewAuthUsecase(userRepo, jwtService, sessionStore)
	userUsecase := usecases.NewUserUsecase(userRepo, itemRepo, donationRepo)
	verificationUsecase := usecases.NewVerificationUsecase(userRepo)
	itemUsecase := usecases.NewItemUsecase(itemRepo, objectStore)
	donationUsecase := usecases.NewDonationUsecase(donationRepo, itemRepo, userRepo, uow)
	photoProofUsecase := usecases.NewPhotoProofUsecase(proofRepo, donationRepo, donationUsecase, objectStore)
	messageUsecase := usecases.NewMessageUsecase(messageRepo, userRepo)
	adminUsecase := usecases.NewAdminUsecase(userRepo, itemRepo, donationRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authUsecase)
	userHandler := handlers.NewUserHandler(userUsecase)
	itemHandler := handlers.NewItemHandler(itemUsecase)
	donationHandler := handlers.NewDonationHandler(donationUsecase)
	photoProofHandler := handlers.NewPhotoProofHandler(photoProofUsecase)
	verificationHandler := handlers.NewVerificationHandler(verificationUsecase)
	messageHandler := handlers.NewMessageHandler(messageUsecase)
	adminHandler := handlers.NewAdminHandler(adminUsecase, verificationUsecase)

	authMiddleware := middleware.AuthMiddleware(jwtService)

	// Start background jobs
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	expiryJob := jobs.NewItemExpiryJob(itemRepo)
	go expiryJob.Start(ctx)

	allotmentJob := jobs.NewAllotmentResetJob(userRepo)
	go allotmentJob.Start(ctx)

	// Initialize router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r)
	registerMetricsRoute(r)
	registerAPIV1Routes(r, routeDeps{
		authHandler:         authHandler,
		userHandler:         userHandler,
		itemHandler:         itemHandler,
		donationHandler:     donationHandler,
		photoProofHandler:   photoProofHandler,
		verificationHandler: verificationHandler,
		messageHandler:      messageHandler,
		adminHandler:        adminHandler,
		authMiddleware:      authMiddleware,
	})

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("🛑 Shutting down server...")
		expiryJob.Stop()
		allotmentJob.Stop()
		cancel()
	}()

	// Start server
	log.Printf("🚀 GarageSale Backend starting on port %s", cfg.Server.Port)
	log.Printf("📚 API: http://localhost:%s/api/v1", cfg.Server.Port)
	log.Printf("❤️ Health: http://localhost:%s/health", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
