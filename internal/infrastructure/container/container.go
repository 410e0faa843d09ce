package container

import (
	"errors"
	"fmt"

	"github.com/gdugdh24/studymatch-backend/internal/config"
	"github.com/gdugdh24/studymatch-backend/internal/delivery/http"
	"github.com/gdugdh24/studymatch-backend/internal/delivery/http/handler"
	"github.com/gdugdh24/studymatch-backend/internal/delivery/http/middleware"
	"github.com/gdugdh24/studymatch-backend/internal/infrastructure/database"
	"github.com/gdugdh24/studymatch-backend/internal/infrastructure/lock"
	"github.com/gdugdh24/studymatch-backend/internal/infrastructure/server"
	"github.com/gdugdh24/studymatch-backend/internal/repository"
	"github.com/gdugdh24/studymatch-backend/internal/repository/memory"
	"github.com/gdugdh24/studymatch-backend/internal/repository/postgres"
	"github.com/gdugdh24/studymatch-backend/internal/usecase/auth"
	"github.com/gdugdh24/studymatch-backend/internal/usecase/match"
	"github.com/gdugdh24/studymatch-backend/internal/usecase/profile"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Logger *zap.Logger
	DB     *sqlx.DB
	Redis  *redis.Client

	ProfileRepo repository.ProfileRepository
	MatchRepo   repository.MatchRepository

	Tokens       *auth.TokenUseCase
	MatchUseCase *match.MatchUseCase
	Server       *server.Server
}

// NewContainer wires stores, use cases and the HTTP server from cfg.
func NewContainer(cfg *config.Config, logger *zap.Logger) (*Container, error) {
	c := &Container{Config: cfg, Logger: logger}

	if err := c.initStores(); err != nil {
		_ = c.Close()
		return nil, err
	}

	var locker match.Locker
	if cfg.Redis.Enabled() {
		client, err := database.NewRedisClient(&cfg.Redis, logger)
		if err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("failed to initialize redis: %w", err)
		}
		c.Redis = client
		locker = lock.NewRedisLocker(client, cfg.Matching.LockTTL, logger)
	} else {
		logger.Info("redis not configured, regenerations are not locked across processes")
	}

	// Initialize use cases
	c.MatchUseCase = match.NewMatchUseCase(c.ProfileRepo, c.MatchRepo, locker, logger, cfg.Matching)
	profileUseCase := profile.NewProfileUseCase(c.ProfileRepo, c.MatchUseCase, logger)
	c.Tokens = auth.NewTokenUseCase(cfg.JWT.AccessSecret, cfg.JWT.AccessTTL)

	// Initialize router
	router := http.NewRouter(
		handler.NewProfileHandler(profileUseCase),
		handler.NewMatchHandler(c.MatchUseCase),
		middleware.NewAuthMiddleware(c.Tokens, logger),
		logger,
	)

	c.Server = server.NewServer(&cfg.Server, router.Setup(), logger)
	return c, nil
}

func (c *Container) initStores() error {
	switch c.Config.Storage.Type {
	case config.StorageTypeMemory:
		store := memory.NewStore()
		c.ProfileRepo = store.Profiles()
		c.MatchRepo = store.Matches()
		c.Logger.Warn("using in-memory storage, data is lost on exit")
		return nil
	case config.StorageTypePostgres:
		db, err := database.NewPostgresDB(&c.Config.Database, c.Logger)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		c.DB = db
		c.ProfileRepo = postgres.NewProfileRepository(db, c.Logger)
		c.MatchRepo = postgres.NewMatchRepository(db)
		return nil
	default:
		return fmt.Errorf("unknown storage type %q", c.Config.Storage.Type)
	}
}

// Close closes all connections
func (c *Container) Close() error {
	var errs []error
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close redis: %w", err))
		}
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}
	return errors.Join(errs...)
}
