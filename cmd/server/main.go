package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"

	directoryapp "github.com/worklog/backend/internal/application/directory"
	identityapp "github.com/worklog/backend/internal/application/identity"
	appworklog "github.com/worklog/backend/internal/application/worklog"
	"github.com/worklog/backend/internal/domain/access"
	"github.com/worklog/backend/internal/infrastructure/auth"
	"github.com/worklog/backend/internal/infrastructure/config"
	"github.com/worklog/backend/internal/infrastructure/logger"
	"github.com/worklog/backend/internal/infrastructure/persistence"
	"github.com/worklog/backend/internal/infrastructure/rendering"
	"github.com/worklog/backend/internal/infrastructure/storage"
	"github.com/worklog/backend/internal/interfaces/http/handler"
	"github.com/worklog/backend/internal/interfaces/http/middleware"
	"github.com/worklog/backend/internal/interfaces/http/router"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "server failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	zapLogger, err := logger.NewForEnvironment(cfg.App.Env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync(zapLogger)

	zapLogger.Info("starting server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database
	gormLog := logger.NewGormLogger(zapLogger, gormlogger.Warn)
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	clientRepo := persistence.NewGormClientRepository(db.DB)
	projectRepo := persistence.NewGormProjectRepository(db.DB)
	noteRepo := persistence.NewGormDeliveryNoteRepository(db.DB)

	// Ownership resolution: who can see whose records within a tenant
	resolver := access.NewResolver(userRepo)

	// Auth
	jwtService := auth.NewJWTService(auth.JWTConfig{
		Secret:          cfg.JWT.Secret,
		Issuer:          cfg.JWT.Issuer,
		AccessTokenTTL:  cfg.JWT.AccessTokenTTL,
		RefreshTokenTTL: cfg.JWT.RefreshTokenTTL,
	})

	var blacklist auth.TokenBlacklist
	if cfg.Redis.Enabled {
		redisBlacklist, err := auth.NewRedisTokenBlacklist(auth.RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		blacklist = redisBlacklist
		zapLogger.Info("using redis token blacklist",
			zap.String("host", cfg.Redis.Host), zap.Int("port", cfg.Redis.Port))
	} else {
		blacklist = auth.NewInMemoryTokenBlacklist()
		zapLogger.Info("using in-memory token blacklist")
	}

	// Artifact storage for signatures and rendered PDFs
	var store appworklog.ArtifactStore
	s3Store, err := storage.NewS3ArtifactStore(&cfg.Storage, storage.WithLogger(zapLogger))
	if err != nil {
		if cfg.App.Env == "production" {
			return fmt.Errorf("failed to initialize artifact storage: %w", err)
		}
		zapLogger.Warn("artifact storage unavailable, using in-memory store", zap.Error(err))
		store = storage.NewMemoryArtifactStore()
	} else {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := s3Store.EnsureBucket(ctx); err != nil {
			cancel()
			return fmt.Errorf("failed to ensure artifact bucket: %w", err)
		}
		cancel()
		store = s3Store
		zapLogger.Info("using s3 artifact storage", zap.String("bucket", s3Store.GetBucket()))
	}

	// PDF renderer
	renderer := rendering.NewChromedpRenderer(&rendering.ChromedpConfig{
		ChromePath: cfg.Renderer.ChromePath,
		Timeout:    cfg.Renderer.Timeout,
		NoSandbox:  true,
		Logger:     zapLogger,
	})
	defer renderer.Close()

	// Application services
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, zapLogger)
	userService := identityapp.NewUserService(userRepo, blacklist, zapLogger)
	clientService := directoryapp.NewClientService(clientRepo, resolver, zapLogger)
	projectService := directoryapp.NewProjectService(projectRepo, clientRepo, resolver, zapLogger)
	noteService := appworklog.NewDeliveryNoteService(
		noteRepo, clientRepo, projectRepo, userRepo, resolver, store, renderer, zapLogger)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	clientHandler := handler.NewClientHandler(clientService)
	projectHandler := handler.NewProjectHandler(projectService)
	noteHandler := handler.NewDeliveryNoteHandler(noteService)
	systemHandler := handler.NewSystemHandler(db.DB)

	// HTTP engine and middleware stack
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()
	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			return fmt.Errorf("failed to set trusted proxies: %w", err)
		}
	}

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins

	jwtCfg := middleware.DefaultJWTConfig(jwtService)
	jwtCfg.TokenBlacklist = blacklist
	jwtCfg.Logger = zapLogger

	engine.Use(
		middleware.RequestID(),
		logger.Recovery(zapLogger),
		logger.GinMiddleware(zapLogger),
		middleware.Secure(),
		middleware.CORSWithConfig(corsCfg),
		middleware.JWTAuthMiddlewareWithConfig(jwtCfg),
	)

	engine.GET("/health", systemHandler.Health)
	engine.GET("/healthz", systemHandler.Ping)
	engine.GET("/api/v1/health", systemHandler.Health)
	engine.GET("/api/v1/system/ping", systemHandler.Ping)

	registerRoutes(engine, authHandler, userHandler, clientHandler, projectHandler, noteHandler)

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		zapLogger.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
		zapLogger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	zapLogger.Info("server stopped")
	return nil
}

func registerRoutes(
	engine *gin.Engine,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	clientHandler *handler.ClientHandler,
	projectHandler *handler.ProjectHandler,
	noteHandler *handler.DeliveryNoteHandler,
) {
	authGroup := router.NewDomainGroup("auth", "/auth").
		POST("/register", authHandler.Register).
		POST("/login", authHandler.Login).
		POST("/refresh", authHandler.Refresh).
		POST("/logout", authHandler.Logout)

	userGroup := router.NewDomainGroup("users", "/users").
		GET("/me", userHandler.Me).
		PUT("/me", userHandler.UpdateProfile).
		DELETE("/me", userHandler.DeleteAccount).
		PATCH("/me/company", userHandler.SetCompany)

	clientGroup := router.NewDomainGroup("clients", "/clients").
		POST("", clientHandler.Create).
		GET("", clientHandler.List).
		GET("/archived", clientHandler.ListArchived).
		GET("/archived/:id", clientHandler.GetArchived).
		GET("/:id", clientHandler.Get).
		PUT("/:id", clientHandler.Update).
		DELETE("/:id", clientHandler.Purge).
		POST("/:id/archive", clientHandler.Archive).
		POST("/:id/restore", clientHandler.Restore)

	projectGroup := router.NewDomainGroup("projects", "/projects").
		POST("", projectHandler.Create).
		GET("", projectHandler.List).
		GET("/archived", projectHandler.ListArchived).
		GET("/archived/:id", projectHandler.GetArchived).
		GET("/:id", projectHandler.Get).
		PUT("/:id", projectHandler.Update).
		DELETE("/:id", projectHandler.Purge).
		POST("/:id/archive", projectHandler.Archive).
		POST("/:id/restore", projectHandler.Restore)

	noteGroup := router.NewDomainGroup("deliverynotes", "/deliverynotes").
		POST("", noteHandler.Create).
		GET("", noteHandler.List).
		GET("/archived", noteHandler.ListArchived).
		GET("/:id", noteHandler.Get).
		DELETE("/:id", noteHandler.Delete).
		POST("/:id/sign", noteHandler.Sign).
		GET("/:id/pdf", noteHandler.GetPDF).
		POST("/:id/archive", noteHandler.Archive).
		POST("/:id/restore", noteHandler.Restore)

	router.NewRouter(engine, router.WithAPIVersion("v1")).
		Register(authGroup).
		Register(userGroup).
		Register(clientGroup).
		Register(projectGroup).
		Register(noteGroup).
		Setup()
}
