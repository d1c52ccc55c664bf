package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"newsportal/internal/bootstrap"
	"newsportal/internal/common/pagination"
	pgRepo "newsportal/internal/infra/adapter/persistence/postgres"
	"newsportal/internal/infra/db"
	"newsportal/internal/infra/imagestore"
	"newsportal/internal/infra/translator"
	"newsportal/internal/observability/logging"
	"newsportal/pkg/config"

	newsUC "newsportal/internal/usecase/news"

	hhttp "newsportal/internal/handler/http"
	hauth "newsportal/internal/handler/http/auth"
	hlang "newsportal/internal/handler/http/language"
	hnews "newsportal/internal/handler/http/news"
	"newsportal/internal/handler/http/requestid"
	authservice "newsportal/internal/service/auth"
)

func main() {
	// A missing .env file is fine; production sets real environment variables.
	_ = godotenv.Load()

	logger := initLogger()
	validateJWTSecret(logger)

	database := initDatabase(logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	seedCtx, seedCancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := bootstrap.SeedAdmin(seedCtx, pgRepo.NewAdminRepo(database), logger); err != nil {
		seedCancel()
		logger.Error("admin bootstrap failed", slog.Any("error", err))
		os.Exit(1)
	}
	seedCancel()

	handler, err := setupServer(logger, database)
	if err != nil {
		logger.Error("server setup failed", slog.Any("error", err))
		os.Exit(1)
	}

	runServer(logger, handler)
}

// initLogger initializes the structured logger and installs it as the default.
func initLogger() *slog.Logger {
	logger := logging.NewLogger()
	slog.SetDefault(logger)
	return logger
}

// validateJWTSecret enforces a usable signing secret before serving traffic.
func validateJWTSecret(logger *slog.Logger) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		logger.Error("JWT_SECRET must be set")
		os.Exit(1)
	}
	if len(secret) < 32 {
		logger.Error("JWT_SECRET must be at least 32 characters (256 bits)")
		os.Exit(1)
	}
	weakSecrets := []string{"secret", "password", "test", "admin", "default"}
	for _, weak := range weakSecrets {
		if secret == weak || secret == weak+"123" {
			logger.Error("JWT_SECRET must not be a common weak value",
				slog.String("weak_value", weak))
			os.Exit(1)
		}
	}
}

// initDatabase opens the database connection and runs migrations.
func initDatabase(logger *slog.Logger) *sql.DB {
	database := db.Open()
	if err := db.MigrateUp(database); err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		os.Exit(1)
	}
	return database
}

// newTranslator selects the translation provider from TRANSLATOR_PROVIDER:
// openai (default), claude, or noop for development.
func newTranslator(logger *slog.Logger) (translator.Translator, error) {
	provider := config.GetEnvString("TRANSLATOR_PROVIDER", "openai")
	switch provider {
	case "openai":
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			return nil, errors.New("OPENAI_API_KEY must be set for the openai translator")
		}
		return translator.NewOpenAI(apiKey), nil
	case "claude":
		apiKey := os.Getenv("ANTHROPIC_API_KEY")
		if apiKey == "" {
			return nil, errors.New("ANTHROPIC_API_KEY must be set for the claude translator")
		}
		return translator.NewClaude(apiKey), nil
	case "noop":
		logger.Warn("using noop translator, derived translations will copy the source text")
		return translator.NewNoOp(), nil
	default:
		return nil, fmt.Errorf("unknown TRANSLATOR_PROVIDER %q", provider)
	}
}

// newImageStore selects the image backend from IMAGE_STORE: minio (default)
// or local for development.
func newImageStore(logger *slog.Logger) (imagestore.Store, error) {
	backend := config.GetEnvString("IMAGE_STORE", "minio")
	switch backend {
	case "minio":
		return imagestore.NewMinIO(imagestore.LoadMinIOConfig())
	case "local":
		dir := config.GetEnvString("IMAGE_DIR", "./uploads")
		logger.Info("using local image store", slog.String("dir", dir))
		return imagestore.NewLocal(dir)
	default:
		return nil, fmt.Errorf("unknown IMAGE_STORE %q", backend)
	}
}

// setupServer wires the services, routes and middleware chain.
func setupServer(logger *slog.Logger, database *sql.DB) (http.Handler, error) {
	trans, err := newTranslator(logger)
	if err != nil {
		return nil, err
	}
	images, err := newImageStore(logger)
	if err != nil {
		return nil, err
	}

	newsRepo := pgRepo.NewNewsRepo(database)
	newsSvc := &newsUC.Service{
		Repo:   newsRepo,
		Sync:   &newsUC.Synchronizer{Repo: newsRepo, Translator: trans},
		Images: images,
	}
	authSvc := &authservice.Service{Admins: pgRepo.NewAdminRepo(database)}

	mux := http.NewServeMux()
	hnews.Register(mux, newsSvc, pagination.LoadFromEnv(), logger)

	loginLimiter := hauth.NewLoginLimiter(1, 5)
	mux.Handle("POST   /auth/token", hauth.TokenHandler(authSvc, loginLimiter))

	mux.Handle("GET    /language/{code}", hlang.SetHandler{})
	mux.Handle("GET    /healthz", &hhttp.HealthHandler{DB: database})
	mux.Handle("GET    /metrics", hhttp.MetricsHandler())

	return applyMiddleware(logger, mux), nil
}

// applyMiddleware wraps the mux, innermost first: metrics, body limit,
// logging, panic recovery, request ID.
func applyMiddleware(logger *slog.Logger, handler http.Handler) http.Handler {
	// Generous enough for multipart image uploads.
	maxBody := int64(config.GetEnvInt("MAX_REQUEST_BODY_BYTES", 20<<20))

	chain := handler
	chain = hhttp.Metrics(chain)
	chain = hhttp.LimitRequestBody(maxBody)(chain)
	chain = hhttp.Logging(logger)(chain)
	chain = hhttp.Recover(logger)(chain)
	chain = requestid.Middleware(chain)
	return chain
}

// runServer starts the HTTP server and blocks until shutdown completes.
func runServer(logger *slog.Logger, handler http.Handler) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	addr := fmt.Sprintf(":%d", config.GetEnvInt("PORT", 8080))
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
}
