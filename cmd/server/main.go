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

	"cred-vault.backend/internal/config"
	"cred-vault.backend/internal/infrastructure/jobs"
	"cred-vault.backend/internal/infrastructure/models"
	"cred-vault.backend/internal/infrastructure/repositories"
	"cred-vault.backend/internal/interfaces/http/handlers"
	"cred-vault.backend/internal/interfaces/http/middleware"
	"cred-vault.backend/internal/usecases"
	"cred-vault.backend/pkg/logger"
	"cred-vault.backend/pkg/metrics"
	"cred-vault.backend/pkg/redis"
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
			TranslateError: true,
		})
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
	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
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
		if err := db.AutoMigrate(
			&models.User{},
			&models.Credential{},
			&models.Share{},
			&models.EkycSession{},
			&models.AuditLog{},
		); err != nil {
			return fmt.Errorf("failed to migrate schema: %w", err)
		}
	}

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	credentialRepo := repositories.NewCredentialRepository(db)
	shareRepo := repositories.NewShareRepository(db)
	ekycRepo := repositories.NewEkycRepository(db)
	auditRepo := repositories.NewAuditRepository(db)
	uow := repositories.NewUnitOfWork(db)

	clock := usecases.NewSystemClock()
	sessionCache := redis.NewVerificationCache(cfg.Ekyc.CacheTTL)

	// Initialize usecases
	userUsecase := usecases.NewUserUsecase(userRepo, credentialRepo, shareRepo, ekycRepo, auditRepo, uow)
	credentialUsecase := usecases.NewCredentialUsecase(credentialRepo, shareRepo, userRepo, auditRepo, uow, clock, cfg.Audit.AuditReads)
	shareUsecase := usecases.NewShareUsecase(shareRepo, credentialRepo, userRepo, auditRepo, uow, clock)
	ekycUsecase := usecases.NewEkycUsecase(ekycRepo, userRepo, auditRepo, uow, sessionCache)
	auditUsecase := usecases.NewAuditUsecase(auditRepo)

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userUsecase)
	credentialHandler := handlers.NewCredentialHandler(credentialUsecase)
	shareHandler := handlers.NewShareHandler(shareUsecase)
	ekycHandler := handlers.NewEkycHandler(ekycUsecase)
	auditHandler := handlers.NewAuditHandler(auditUsecase)

	// Start background jobs
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	expiryJob := jobs.NewEkycSessionExpiryJob(ekycRepo, auditRepo, uow, cfg.Ekyc.PendingMaxAge)
	go expiryJob.Start(ctx)

	// Initialize metrics
	m := metrics.New("cred-vault")

	// Initialize router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware(m))

	registerHealthRoute(r)
	registerMetricsRoute(r, m)
	registerAPIV1Routes(r, routeDeps{
		userHandler:        userHandler,
		credentialHandler:  credentialHandler,
		shareHandler:       shareHandler,
		ekycHandler:        ekycHandler,
		auditHandler:       auditHandler,
		identityMiddleware: middleware.IdentityMiddleware(),
	})

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("🛑 Shutting down server...")
		expiryJob.Stop()
		cancel()
	}()

	// Start server
	log.Printf("🚀 Cred-Vault Backend starting on port %s", cfg.Server.Port)
	log.Printf("📚 API: http://localhost:%s/api/v1", cfg.Server.Port)
	log.Printf("❤️ Health: http://localhost:%s/health", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
