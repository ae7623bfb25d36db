package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/quantifun/uxrp/internal/core/port"
	"github.com/quantifun/uxrp/internal/infra/config"
	"github.com/quantifun/uxrp/internal/infra/database"
	"github.com/quantifun/uxrp/internal/infra/logger"
	"github.com/quantifun/uxrp/internal/infra/mail"
	redisinfra "github.com/quantifun/uxrp/internal/infra/redis"
	"github.com/quantifun/uxrp/internal/infra/security"
	postgresrepo "github.com/quantifun/uxrp/internal/repository/postgres"
	redisrepo "github.com/quantifun/uxrp/internal/repository/redis"
	"github.com/quantifun/uxrp/internal/transport/http/middleware"
	"github.com/quantifun/uxrp/internal/transport/http/routes"
	"github.com/quantifun/uxrp/internal/usecase"
)

// Application owns the wired service and its connection lifecycles.
type Application struct {
	cfg    *config.AppConfig
	engine *gin.Engine
	logger *zap.Logger
	pool   *pgxpool.Pool
	redis  *redisinfra.Client
}

// New wires every component from configuration.
func New(ctx context.Context, cfg *config.AppConfig) (*Application, error) {
	log, err := logger.New(cfg.App.Env)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	pool, err := database.NewPostgresPool(ctx, cfg.Postgres, log)
	if err != nil {
		return nil, fmt.Errorf("init postgres: %w", err)
	}

	redisClient, err := redisinfra.NewClient(cfg.Redis, log)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("init redis: %w", err)
	}

	hasher, err := security.NewHasher(security.Argon2Config{
		Memory:      cfg.Argon2.Memory,
		Iterations:  cfg.Argon2.Iterations,
		Parallelism: cfg.Argon2.Parallelism,
		SaltLength:  cfg.Argon2.SaltLength,
		KeyLength:   cfg.Argon2.KeyLength,
	})
	if err != nil {
		pool.Close()
		_ = redisClient.Close()
		return nil, fmt.Errorf("init hasher: %w", err)
	}

	namespace, err := storageNamespace(cfg.Storage)
	if err != nil {
		pool.Close()
		_ = redisClient.Close()
		return nil, fmt.Errorf("init storage namespace: %w", err)
	}
	if namespace != "" {
		log.Info("storage namespace active", zap.String("namespace", namespace))
	}

	var mailer port.VerificationMailer
	if cfg.Verification.SMTPAddr != "" {
		mailer = mail.NewSMTPMailer(cfg.Verification.SMTPAddr, cfg.Verification.MailFrom, log)
	} else {
		mailer = mail.NewLogMailer(log)
	}

	repos := postgresrepo.NewRepositories(pool)

	sessions := redisrepo.NewSessionStore(redisClient.Client(), namespace+"sessions", cfg.Redis.SessionTTL)

	credentialService := usecase.NewCredentialService(
		repos.Credentials,
		repos.Verifications,
		mailer,
		hasher,
		security.DefaultPasswordValidator(),
		usecase.CredentialServiceOptions{
			Namespace:        namespace,
			SkipVerification: cfg.Verification.Skip,
		},
	)

	authService := usecase.NewAuthService(credentialService, sessions)

	metrics, err := middleware.NewHTTPMetrics(middleware.HTTPMetricsOptions{
		Namespace: cfg.Telemetry.MetricsNamespace,
	})
	if err != nil {
		pool.Close()
		_ = redisClient.Close()
		return nil, fmt.Errorf("init metrics: %w", err)
	}

	engine := routes.Register(routes.Dependencies{
		Config:   cfg,
		Logger:   log,
		Auth:     authService,
		Resolver: sessions,
		Metrics:  metrics,
		Database: pool,
		Cache:    redisClient,
	})

	return &Application{
		cfg:    cfg,
		engine: engine,
		logger: log,
		pool:   pool,
		redis:  redisClient,
	}, nil
}

// Run serves HTTP until the context is cancelled, then shuts down gracefully.
func (a *Application) Run(ctx context.Context) error {
	defer func() {
		_ = a.logger.Sync()
	}()
	defer func() {
		if a.pool != nil {
			a.pool.Close()
		}
	}()
	defer func() {
		if a.redis != nil {
			_ = a.redis.Close()
		}
	}()

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", a.cfg.App.Host, a.cfg.App.Port),
		Handler:           a.engine,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	a.logger.Info("starting auth API",
		zap.String("env", a.cfg.App.Env),
		zap.String("address", srv.Addr),
	)

	serverErrCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrCh <- fmt.Errorf("run server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown server: %w", err)
		}
		return nil
	case err := <-serverErrCh:
		return err
	}
}

// storageNamespace resolves the key namespace shared by both backing stores.
// Randomization draws a fresh token per process so parallel test deployments
// never observe each other's records.
func storageNamespace(cfg config.StorageSettings) (string, error) {
	namespace := cfg.Namespace
	if !cfg.RandomizeNamespace {
		return namespace, nil
	}

	token, err := security.GenerateSecureToken(6)
	if err != nil {
		return "", fmt.Errorf("generate namespace token: %w", err)
	}

	return fmt.Sprintf("%s%s/", namespace, token), nil
}
