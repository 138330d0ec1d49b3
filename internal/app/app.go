package app

import (
	"context"
	"errors"
	"fmt"

	"form-intake/config"
	"form-intake/internal/handler"
	"form-intake/internal/queue"
	"form-intake/internal/repository"
	"form-intake/internal/secrets"
	"form-intake/internal/server"
	"form-intake/internal/services"
	"form-intake/internal/storage"
	"form-intake/pkg/database"
	"form-intake/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App owns every client the gateway talks to. It is built once at startup
// and shared by all requests.
type App struct {
	DB         *gorm.DB
	Objects    storage.ObjectStore
	Publisher  queue.Publisher
	Repository repository.SubmissionRepository
	Service    *services.SubmissionService

	logger *logger.Logger
}

// NewResolver reads secrets from AWS Secrets Manager when a region is
// configured, falling back to the environment either way.
func NewResolver(ctx context.Context, cfg *config.Config, l *logger.Logger) *secrets.Resolver {
	var primary secrets.Store
	if cfg.SecretsRegion != "" {
		store, err := secrets.NewSecretsManagerStoreFromRegion(ctx, cfg.SecretsRegion, cfg.SecretsPrefix)
		if err != nil {
			l.Error(ctx, "secrets manager unavailable, using environment only", zap.Error(err))
		} else {
			primary = store
		}
	}
	return secrets.NewResolver(primary, secrets.EnvStore{}, l)
}

func New(ctx context.Context, cfg *config.Config, l *logger.Logger) (*App, error) {
	if l == nil {
		l = logger.NewNop()
	}
	return NewWithResolver(ctx, cfg, l, NewResolver(ctx, cfg, l))
}

// NewWithResolver connects storage, database and queue using the connection
// strings found by r. The table is created if missing.
func NewWithResolver(ctx context.Context, cfg *config.Config, l *logger.Logger, r *secrets.Resolver) (*App, error) {
	if l == nil {
		l = logger.NewNop()
	}
	values, err := r.Require(ctx,
		config.StorageConnectionSecret,
		config.PostgresConnectionSecret,
		config.ServiceBusConnectionSecret,
	)
	if err != nil {
		return nil, err
	}

	objects, err := storage.Open(ctx, values[config.StorageConnectionSecret])
	if err != nil {
		return nil, fmt.Errorf("object store: %w", err)
	}

	db, err := database.Connect(values[config.PostgresConnectionSecret], PoolConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	publisher, err := queue.Open(values[config.ServiceBusConnectionSecret])
	if err != nil {
		_ = database.Close(db)
		return nil, fmt.Errorf("queue: %w", err)
	}
	if p, ok := publisher.(pinger); ok {
		if err := p.Ping(ctx); err != nil {
			_ = publisher.Close()
			_ = database.Close(db)
			return nil, fmt.Errorf("queue: %w", err)
		}
	}

	repo := repository.NewSubmissionRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		_ = publisher.Close()
		_ = database.Close(db)
		return nil, fmt.Errorf("schema: %w", err)
	}

	svc := services.NewSubmissionService(objects, repo, publisher, l, cfg.BlobContainer, cfg.QueueName).
		WithMaxUploadBytes(cfg.MaxUploadBytes())

	l.Info(ctx, "application initialized",
		zap.String("container", cfg.BlobContainer),
		zap.String("queue", cfg.QueueName),
	)

	return &App{
		DB:         db,
		Objects:    objects,
		Publisher:  publisher,
		Repository: repo,
		Service:    svc,
		logger:     l,
	}, nil
}

type pinger interface {
	Ping(ctx context.Context) error
}

// PoolConfig applies the configured pool limits over the database defaults.
func PoolConfig(cfg *config.Config) database.PoolConfig {
	pool := database.DefaultPoolConfig()
	if cfg.DBMaxOpenConns > 0 {
		pool.MaxOpenConns = cfg.DBMaxOpenConns
	}
	if cfg.DBMaxIdleConns > 0 {
		pool.MaxIdleConns = cfg.DBMaxIdleConns
	}
	if cfg.DBConnLifetime > 0 {
		pool.ConnMaxLifetime = cfg.DBConnLifetime
	}
	return pool
}

func (a *App) Handlers() *server.Handlers {
	return &server.Handlers{
		Submission: handler.NewSubmissionHandler(a.Service),
	}
}

// Close releases the queue client and the database pool.
func (a *App) Close() error {
	var errs []error
	if a.Publisher != nil {
		errs = append(errs, a.Publisher.Close())
	}
	if a.DB != nil {
		errs = append(errs, database.Close(a.DB))
	}
	return errors.Join(errs...)
}
