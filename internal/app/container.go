package app

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/you/termbridge/domain"
	"github.com/you/termbridge/internal/config"
	"github.com/you/termbridge/internal/infrastructure/gateway"
	"github.com/you/termbridge/internal/infrastructure/storage"
	"github.com/you/termbridge/internal/services"
)

// Container holds all dependencies
type Container struct {
	// Config
	Config *config.Config

	// Infrastructure
	Logger      *zap.Logger
	RedisClient *redis.Client
	TokenStore  domain.TokenStore
	Gateway     domain.GatewayClient

	// Services
	PolicySvc  domain.PolicyService
	SessionSvc domain.SessionService
}

// NewContainer creates and initializes all dependencies
func NewContainer(cfg *config.Config) (*Container, error) {
	container := &Container{Config: cfg}

	if err := container.initLogger(); err != nil {
		return nil, err
	}
	if err := container.initStorage(); err != nil {
		return nil, err
	}
	if err := container.initServices(); err != nil {
		return nil, err
	}

	return container, nil
}

// Close releases held resources. Safe to call once at process exit.
func (c *Container) Close() error {
	if c.Logger != nil {
		_ = c.Logger.Sync()
	}
	if c.RedisClient != nil {
		return c.RedisClient.Close()
	}
	return nil
}

func (c *Container) initLogger() error {
	level, err := zapcore.ParseLevel(c.Config.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.Config.LogLevel, err)
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	logger, err := zcfg.Build()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	c.Logger = logger
	return nil
}

func (c *Container) initStorage() error {
	switch c.Config.StorageBackend {
	case config.BackendFile:
		c.TokenStore = storage.NewFileStore(c.Config.TokenPath)
	case config.BackendRedis:
		c.RedisClient = redis.NewClient(&redis.Options{
			Addr:     c.Config.RedisAddr,
			Password: c.Config.RedisPassword,
			DB:       c.Config.RedisDB,
		})
		if err := c.RedisClient.Ping(context.Background()).Err(); err != nil {
			return fmt.Errorf("failed to reach redis at %s: %w", c.Config.RedisAddr, err)
		}
		c.TokenStore = storage.NewRedisStore(c.RedisClient, c.Config.TokenKey)
	case config.BackendMemory:
		c.TokenStore = storage.NewMemoryStore()
	default:
		return fmt.Errorf("unknown storage backend %q", c.Config.StorageBackend)
	}
	return nil
}

func (c *Container) initServices() error {
	c.Gateway = gateway.New(c.Config.BaseURL, c.TokenStore, c.Config.RequestTimeout, c.Logger)

	var err error
	if c.Config.PolicyPath != "" {
		c.PolicySvc, err = services.NewPolicyService(c.Config.PolicyPath)
	} else {
		c.PolicySvc, err = services.NewDefaultPolicyService()
	}
	if err != nil {
		return err
	}

	c.SessionSvc = services.NewSessionService(c.Gateway, c.TokenStore, c.PolicySvc, c.Logger)
	return nil
}
