package container

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"storefront/app/internal/cart"
	"storefront/app/internal/catalog"
	"storefront/app/internal/client"
	"storefront/app/internal/config"
	"storefront/app/internal/queue"
	"storefront/app/internal/repository"
	"storefront/app/internal/server"
	"storefront/app/internal/service"
	"storefront/app/internal/state"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

const shutdownTimeout = 10 * time.Second

// Container holds all initialized components
type Container struct {
	Config     *config.Config
	Source     client.CatalogSource
	Catalog    *catalog.Store
	Cart       *cart.Store
	Storage    state.CartStorage
	Publisher  queue.Publisher
	Repository repository.OrderRepository

	Service *service.Service
	Server  *http.Server

	db    *pgxpool.Pool
	redis *redis.Client
}

// New creates a new container with all dependencies initialized
func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	container := &Container{
		Config: cfg,
	}

	if cfg.Cart.Storage == "redis" || cfg.Redis.Events {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.Database,
		})

		// Test connection. Without Redis the cart lives in memory and no
		// events are published.
		if _, err := rdb.Ping(ctx).Result(); err != nil {
			log.Warnf("⚠️ Redis unavailable at %s, cart will not persist: %v", cfg.Redis.Addr(), err)
			rdb.Close()
		} else {
			log.Info("✅ Connected to Redis successfully")
			container.redis = rdb
		}
	}

	if cfg.Cart.Storage == "redis" && container.redis != nil {
		container.Storage = state.NewRedisCartStorage(container.redis, cfg.Cart.Key)
	} else {
		log.Info("🧠 Cart kept in memory")
		container.Storage = state.NewMemoryCartStorage()
	}

	if cfg.Redis.Events && container.redis != nil {
		container.Publisher = queue.NewRedisPublisher(container.redis, cfg.Redis.StreamPrefix)
	} else {
		container.Publisher = queue.NopPublisher{}
	}

	if cfg.Database.Enabled {
		db, err := pgxpool.New(ctx, cfg.Database.DSN())
		if err != nil {
			container.Close()
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		container.db = db

		if err := repository.EnsureSchema(ctx, db); err != nil {
			container.Close()
			return nil, err
		}
		log.Info("✅ Connected to PostgreSQL successfully")
		container.Repository = repository.NewOrderRepository(db)
	} else {
		container.Repository = repository.NewNopOrderRepository()
	}

	container.Source = client.NewSource(cfg.Catalog)
	container.Catalog = catalog.NewStore(container.Source)
	container.Cart = cart.NewStore(ctx, container.Storage)

	container.Service = service.NewService(
		container.Catalog,
		container.Cart,
		container.Publisher,
		container.Repository,
	)

	container.Server = &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           server.NewRouter(server.NewHandler(container.Service)),
		ReadHeaderTimeout: 5 * time.Second,
	}

	return container, nil
}

// Run loads the catalog and serves the storefront until ctx is cancelled
func (c *Container) Run(ctx context.Context) error {
	c.Service.Init(ctx)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Infof("🚀 Storefront listening on %s", c.Server.Addr)
		if err := c.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := c.Server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down http server: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// Close performs cleanup when shutting down
func (c *Container) Close() error {
	log.Info("Shutting down container...")

	if c.db != nil {
		c.db.Close()
	}
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			log.Warnf("⚠️ Failed to close Redis client: %v", err)
		}
	}

	log.Info("Container shut down successfully")
	return nil
}
