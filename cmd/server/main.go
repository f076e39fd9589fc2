package main

import (
	"context"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"feedstudio/internal/auth"
	"feedstudio/internal/config"
	"feedstudio/internal/handler"
	"feedstudio/internal/middleware"
	"feedstudio/internal/repository/postgres"
	"feedstudio/internal/service/editing"
	"feedstudio/internal/session"
	"feedstudio/internal/topics"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	var logOut io.Writer = os.Stdout
	if cfg.LogDir != "" {
		logFile, err := config.SetupLogFile(cfg.LogDir, cfg.MaxLogFiles)
		if err != nil {
			log.Fatalf("Failed to set up log file: %v", err)
		}
		defer logFile.Close()
		logOut = io.MultiWriter(os.Stdout, logFile)
	}

	logger := slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// Token verifier. Without a JWKS URL every editor resolves to a
	// placeholder identity; acceptable in dev only.
	var verifier auth.TokenVerifier
	if cfg.JWKSURL != "" {
		v, err := auth.NewJWKSVerifier(cfg.JWKSURL, logger)
		if err != nil {
			log.Fatalf("Failed to create token verifier: %v", err)
		}
		defer v.Close()
		verifier = v
	} else {
		logger.Warn("JWKS_URL not set, editor identity resolution disabled")
	}

	// Create pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected")

	// Create repositories
	tables := postgres.NewTableNames(cfg.TablePrefix)
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	contentRepo := postgres.NewContentRepository(repoConfig)
	versionRepo := postgres.NewVersionRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool, logger)

	// Topic taxonomy
	topicRegistry, err := topics.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to load topic taxonomy: %v", err)
	}
	logger.Info("topic taxonomy loaded", "topics", len(topicRegistry.All()))

	// Editing-session presence (optional)
	var sessions session.Registry = session.NoopRegistry{}
	if cfg.RedisAddr != "" {
		redisRegistry := session.NewRedisRegistry(cfg.RedisAddr, cfg.RedisPassword, cfg.SessionTTL)
		defer redisRegistry.Close()
		sessions = redisRegistry
		logger.Info("session registry connected", "addr", cfg.RedisAddr, "ttl", cfg.SessionTTL)
	}

	// Create services
	analyzer := editing.NewContentAnalyzer()
	editService := editing.NewService(contentRepo, versionRepo, txManager, analyzer, topicRegistry, sessions, logger)

	// Create handlers
	contentHandler := handler.NewContentHandler(editService, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", contentHandler.HealthCheck)

	// Content editing routes
	mux.HandleFunc("GET /api/contents/{id}/edit", contentHandler.GetForEditing)
	mux.HandleFunc("PUT /api/contents/{id}/edit", contentHandler.SaveEdit)
	mux.HandleFunc("GET /api/contents/{id}/versions", contentHandler.ListVersions)

	// Build middleware chain (applied in reverse order)
	var h http.Handler = mux
	h = middleware.Auth(verifier, logger)(h)
	h = middleware.Recovery(logger)(h)

	// CORS - must be outermost to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
