package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fursa_backend/database"
	"fursa_backend/internal/auth"
	"fursa_backend/internal/cache"
	"fursa_backend/internal/config"
	"fursa_backend/internal/email"
	"fursa_backend/internal/handlers"
	"fursa_backend/internal/logger"
	"fursa_backend/internal/metrics"
	"fursa_backend/internal/middleware"
	"fursa_backend/internal/repositories"
	"fursa_backend/internal/routes"
	"fursa_backend/internal/services"
	"fursa_backend/internal/storage"
	"fursa_backend/internal/validator"
	"fursa_backend/internal/workers"
	"fursa_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const Version = "1.0.0"

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)
	apperrors.SetDebug(cfg.IsDevelopment())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB, err := database.Connect(ctx, database.Options{
		DSN:          cfg.Database.DSN,
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
		Debug:        cfg.IsDevelopment(),
	})
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	defer database.Close(gormDB)

	if cfg.IsDevelopment() {
		if err := database.AutoMigrate(gormDB); err != nil {
			logger.Fatal("Failed to migrate database", "error", err)
		}
	}

	rdb := connectRedis(ctx, cfg)
	if rdb != nil {
		defer rdb.Close()
	}

	m := metrics.NewManager()
	ginRouter := SetupRouter(cfg, gormDB, rdb, m)

	workers.NewPresenceWorker(
		gormDB,
		repositories.NewProviderRepository(),
		m,
		cfg.Presence.OfflineAfter,
		cfg.Presence.SweepInterval,
	).Start(ctx)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              address,
		Handler:           ginRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", "address", address, "version", Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server startup error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}
	logger.Info("Server stopped")
}

// connectRedis: пустой адрес или недоступный redis - работаем без кэша и rate limit
func connectRedis(ctx context.Context, cfg *config.Config) *redis.Client {
	if cfg.Redis.Addr == "" {
		logger.Warn("Redis is not configured: cache and rate limiting are disabled")
		return nil
	}
	client, err := cache.NewClient(ctx, cache.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		logger.Warn("Redis unavailable: cache and rate limiting are disabled", "error", err)
		return nil
	}
	logger.Info("Redis connected", "addr", cfg.Redis.Addr)
	return client
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB, rdb *redis.Client, m *metrics.Manager) *gin.Engine {
	storageInstance, err := storage.NewStorage(storage.Config{
		Type:       cfg.Storage.Type,
		BasePath:   cfg.Storage.BasePath,
		BaseURL:    cfg.Storage.BaseURL,
		Bucket:     cfg.Storage.Bucket,
		Region:     cfg.Storage.Region,
		AccessKey:  cfg.Storage.AccessKey,
		SecretKey:  cfg.Storage.SecretKey,
		Endpoint:   cfg.Storage.Endpoint,
		UseSSL:     cfg.Storage.UseSSL,
		PublicRead: cfg.Storage.PublicRead,
	})
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.TTL)

	// 1. Сервисы
	serviceContainer := initializeServices(cfg, tokens, storageInstance, rdb, m)

	// 2. Хэндлеры
	appHandlers := initializeHandlers(serviceContainer, tokens)

	// 3. Gin
	ginRouter := initializeGinRouter(cfg, gormDB, rdb, m)

	// 4. Маршруты
	opts := routes.Options{
		Metrics: m.Handler(),
		Swagger: !cfg.IsProduction(),
		Version: Version,
	}
	if local, ok := storageInstance.(*storage.LocalStorage); ok {
		opts.UploadsDir = local.BasePath()
	}
	routes.RegisterRoutes(ginRouter, appHandlers, opts)

	return ginRouter
}

func initializeServices(cfg *config.Config, tokens *auth.TokenManager, storageInstance storage.Storage, rdb *redis.Client, m *metrics.Manager) *services.ServiceContainer {
	deps := services.Dependencies{
		Tokens:  tokens,
		Storage: storageInstance,
		Cache:   cache.NoopCache{},
		Email:   newEmailProvider(cfg),
		Upload:  cfg.Upload,
		Metrics: m,
	}
	if rdb != nil {
		deps.Cache = cache.NewRedisCache(rdb)
	}
	return services.NewServiceContainer(deps)
}

func newEmailProvider(cfg *config.Config) email.Provider {
	if !cfg.Email.Enabled {
		logger.Warn("Email is disabled, welcome emails will not be sent")
		return email.NoopProvider{}
	}

	templates, err := email.NewTemplateManager()
	if err != nil {
		logger.Fatal("Failed to load email templates", "error", err)
	}
	provider, err := email.NewSMTPProvider(email.SMTPConfig{
		Host:      cfg.Email.SMTPHost,
		Port:      cfg.Email.SMTPPort,
		Username:  cfg.Email.SMTPUsername,
		Password:  cfg.Email.SMTPPassword,
		FromEmail: cfg.Email.FromEmail,
		FromName:  cfg.Email.FromName,
	}, templates)
	if err != nil {
		logger.Fatal("Failed to initialize email provider", "error", err)
	}
	return provider
}

func initializeHandlers(services *services.ServiceContainer, tokens *auth.TokenManager) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		AuthHandler:     handlers.NewAuthHandler(baseHandler, services.AuthService, tokens),
		ProviderHandler: handlers.NewProviderHandler(baseHandler, services.ProviderService, tokens),
		TalentHandler:   handlers.NewTalentHandler(baseHandler, services.TalentService, tokens),
		SearchHandler:   handlers.NewSearchHandler(baseHandler, services.SearchService),
		UploadHandler:   handlers.NewUploadHandler(baseHandler, services.UploadService, tokens),
	}
}

func initializeGinRouter(cfg *config.Config, db *gorm.DB, rdb *redis.Client, m *metrics.Manager) *gin.Engine {
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	// загрузка: все файлы плюс запас на поля формы
	uploadLimit := int64(cfg.Upload.MaxFiles)*cfg.Upload.MaxSize + 1<<20

	var limiterClient redis.UniversalClient
	if rdb != nil {
		limiterClient = rdb
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.MetricsMiddleware(m))
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.Server.CORSOrigins))
	router.Use(middleware.BodyLimitMiddleware(cfg.Server.BodyLimitMB<<20, uploadLimit))
	router.Use(middleware.RateLimiter(limiterClient, cfg.RateLimit.Requests, cfg.RateLimit.Window, "fursa:ratelimit", m))
	router.Use(middleware.DBMiddleware(db))
	return router
}
