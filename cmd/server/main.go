package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/portfoliobuilder/backend/docs"
	"github.com/portfoliobuilder/backend/internal/auth"
	"github.com/portfoliobuilder/backend/internal/config"
	"github.com/portfoliobuilder/backend/internal/handlers"
	"github.com/portfoliobuilder/backend/internal/logger"
	"github.com/portfoliobuilder/backend/internal/media"
	"github.com/portfoliobuilder/backend/internal/metrics"
	"github.com/portfoliobuilder/backend/internal/middleware"
	"github.com/portfoliobuilder/backend/internal/repositories"
	"github.com/portfoliobuilder/backend/internal/services"
	"github.com/portfoliobuilder/backend/internal/storage"
	"github.com/portfoliobuilder/backend/internal/validation"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	maxRequestSize   = 50 * 1024 * 1024 // object store uploads
	maxDraftFileSize = 10 * 1024 * 1024
)

// @title Portfolio Builder API
// @version 1.0
// @description API for building and publishing organization portfolios
// @termsOfService http://swagger.io/terms/

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Access token issued by the identity provider, as "Bearer <token>"
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
// @description API key for the object store endpoint
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v\n", err)
	}
	defer logger.Sync()

	logger.Logger.Info("Starting Portfolio Builder API")

	// Connect to database
	db, err := connectDB(cfg.DSN())
	if err != nil {
		logger.Logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	if err := runMigrations(db); err != nil {
		logger.Logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	promMetrics := metrics.NewProm(cfg.Metrics.Namespace, registry)

	// Object store backend
	fileStorage, err := newStorage(cfg)
	if err != nil {
		logger.Logger.Fatal("Failed to initialize storage", zap.Error(err))
	}

	// Draft sessions
	sessions, closeSessions, err := newSessionStore(cfg)
	if err != nil {
		logger.Logger.Fatal("Failed to initialize draft store", zap.Error(err))
	}
	defer closeSessions()

	// Initialize repositories
	organizationRepo := repositories.NewOrganizationRepository(db)
	projectRepo := repositories.NewProjectRepository(db)
	serviceRepo := repositories.NewServiceRepository(db)
	clientRepo := repositories.NewClientRepository(db)
	reviewRepo := repositories.NewReviewRepository(db)
	metadataRepo := repositories.NewMetadataRepository(db)

	// Media resolution goes through the object store endpoint over HTTP
	objectStore := media.NewObjectStoreClient(cfg.Media.GatewayURL, cfg.APIKey, cfg.Media.UploadTimeout)
	resolver := media.NewResolver(objectStore, promMetrics, logger.Logger)

	// Initialize services
	organizationService := services.NewOrganizationService(organizationRepo, resolver)
	projectService := services.NewProjectService(projectRepo, organizationRepo, resolver)
	servicesService := services.NewServicesService(serviceRepo, organizationRepo, resolver)
	clientService := services.NewClientService(clientRepo, organizationRepo, resolver)
	reviewService := services.NewReviewService(reviewRepo, organizationRepo, resolver)
	portfolioService := services.NewPortfolioService(organizationRepo, projectRepo, serviceRepo, clientRepo, reviewRepo)
	uploadService := services.NewUploadService(metadataRepo, fileStorage, cfg.Media.PublicURL, promMetrics)
	draftService := services.NewDraftService(sessions)

	validator, err := validation.New()
	if err != nil {
		logger.Logger.Fatal("Failed to compile request schemas", zap.Error(err))
	}

	// Initialize middleware
	authMw := middleware.AuthMiddleware(auth.NewTokenValidator(cfg.JWT.Secret))
	apiKeyMw := middleware.APIKeyMiddleware(cfg.APIKey)

	// Initialize handlers and router
	r := newRouter(routerConfig{
		Logger:         logger.Logger,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		SwaggerURL:     cfg.Server.BaseURL + "/swagger/doc.json",
		Health:         db.PingContext,
		Metrics:        promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		AuthMw:         authMw,
		APIKeyMw:       apiKeyMw,
		Upload:         handlers.NewUploadHandler(uploadService, logger.Logger),
		Portfolio:      handlers.NewPortfolioHandler(portfolioService, logger.Logger),
		Protected: []routeRegistrar{
			handlers.NewOrganizationHandler(organizationService, validator, draftService, logger.Logger),
			handlers.NewProjectHandler(projectService, validator, draftService, logger.Logger),
			handlers.NewServiceHandler(servicesService, validator, draftService, logger.Logger),
			handlers.NewClientHandler(clientService, validator, draftService, logger.Logger),
			handlers.NewReviewHandler(reviewService, validator, draftService, logger.Logger),
			handlers.NewDraftHandler(draftService, maxDraftFileSize, logger.Logger),
		},
	})

	// Start server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: serverWriteTimeout(cfg.Media.UploadTimeout),
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Logger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Logger.Info("Server exited")
}

// newStorage selects the object store backend
func newStorage(cfg *config.Config) (services.Storage, error) {
	if cfg.Media.Storage == config.StorageS3 {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return storage.NewS3Storage(ctx, storage.S3Config{
			Bucket:    cfg.S3.Bucket,
			Region:    cfg.S3.Region,
			Endpoint:  cfg.S3.Endpoint,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
		})
	}
	return storage.NewLocalStorage(cfg.Media.BasePath), nil
}

// newSessionStore selects the draft session store. The returned func closes
// whatever connection the store holds.
func newSessionStore(cfg *config.Config) (media.SessionStore, func(), error) {
	if cfg.Drafts.Store != config.DraftStoreRedis {
		return media.NewMemorySessionStore(cfg.Drafts.MaxSessions, cfg.Drafts.TTL, draftLimits(cfg)), func() {}, nil
	}

	opts, err := redis.ParseURL(cfg.Drafts.RedisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return media.NewRedisSessionStore(client, cfg.Drafts.TTL, draftLimits(cfg)), func() { client.Close() }, nil
}

func draftLimits(cfg *config.Config) media.SessionLimits {
	return media.SessionLimits{MaxFiles: cfg.Drafts.MaxFiles, MaxBytes: cfg.Drafts.MaxBytes}
}

// connectDB connects to the database
func connectDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// runMigrations runs database migrations
func runMigrations(db *sql.DB) error {
	driver, err := mysql.WithInstance(db, &mysql.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	migrationPath := "file://migrations"
	if _, err := os.Stat("migrations"); os.IsNotExist(err) {
		// Running from cmd/server
		if _, err := os.Stat("../../migrations"); err == nil {
			migrationPath = "file://../../migrations"
		}
	}

	m, err := migrate.NewWithDatabaseInstance(migrationPath, "mysql", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
