package app

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/fjod/go_shop/internal/cache"
	"github.com/fjod/go_shop/internal/config"
	"github.com/fjod/go_shop/internal/metrics"
	"github.com/fjod/go_shop/internal/publisher"
	"github.com/fjod/go_shop/internal/repository"
	"github.com/fjod/go_shop/internal/seed"
	"github.com/fjod/go_shop/internal/service"
	"github.com/fjod/go_shop/internal/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Container holds the wired shop for one process.
type Container struct {
	Config    *config.Config
	Logger    *zap.Logger
	Registry  *prometheus.Registry
	Shop      *service.ShopService
	Invoices  *service.InvoiceService
	Customers []int64 // registration order; the first drives the console

	publisher publisher.Publisher
	redis     *redis.Client
}

// NewContainer seeds the catalog and customers and wires the shop services.
// Redis and Kafka are only used when configured.
func NewContainer(ctx context.Context, cfg *config.Config, log *zap.Logger) (_ *Container, err error) {
	c := &Container{
		Config:   cfg,
		Logger:   log,
		Registry: prometheus.NewRegistry(),
	}
	defer func() {
		if err != nil {
			if closeErr := c.Close(); closeErr != nil {
				log.Warn("failed to release resources", zap.Error(closeErr))
			}
		}
	}()

	data, err := loadSeed(cfg)
	if err != nil {
		return nil, err
	}

	catalog, err := store.NewCatalogFrom(data.Products)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog: %w", err)
	}
	log.Info("catalog loaded", zap.Int("products", len(data.Products)), zap.String("source", seedSource(cfg)))

	var invoiceCache cache.InvoiceCache = cache.NewMemoryCache()
	if cfg.RedisAddr != "" {
		c.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       0,
		})
		if err := c.redis.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("redis connection failed: %w", err)
		}
		invoiceCache = cache.NewRedisCache(c.redis)
		log.Info("redis invoice cache enabled", zap.String("addr", cfg.RedisAddr))
	}

	if len(cfg.KafkaBrokers) > 0 {
		c.publisher = publisher.NewKafkaPublisher(cfg.OrdersTopic, cfg.Currency, log, cfg.KafkaBrokers...)
		log.Info("publishing order events to kafka", zap.Strings("brokers", cfg.KafkaBrokers), zap.String("topic", cfg.OrdersTopic))
	} else {
		c.publisher = publisher.NewLogPublisher(log, cfg.Currency)
	}

	shopMetrics := metrics.NewShopMetrics(c.Registry)
	c.Shop = service.NewShopService(catalog, repository.NewMemoryLedger(),
		service.WithLogger(log),
		service.WithPublisher(c.publisher),
		service.WithMetrics(shopMetrics))

	for _, customer := range data.Customers {
		if _, err := c.Shop.RegisterCustomer(customer); err != nil {
			return nil, fmt.Errorf("failed to register customer: %w", err)
		}
		c.Customers = append(c.Customers, customer.ID)
	}

	c.Invoices = service.NewInvoiceService(c.Shop, invoiceCache, log)

	return c, nil
}

func (c *Container) Close() error {
	var firstErr error
	if c.publisher != nil {
		if err := c.publisher.Close(); err != nil {
			firstErr = err
		}
	}
	if c.redis != nil {
		if err := c.redis.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func loadSeed(cfg *config.Config) (*seed.Data, error) {
	s := cfg.Seed
	if s == 0 {
		s = time.Now().UnixNano()
	}
	stock := seed.RandomStock(rand.New(rand.NewSource(s)), cfg.StockMax)

	if cfg.CatalogFile == "" {
		return seed.Default(stock), nil
	}
	return seed.LoadFile(cfg.CatalogFile, stock)
}

func seedSource(cfg *config.Config) string {
	if cfg.CatalogFile == "" {
		return "built-in"
	}
	return cfg.CatalogFile
}
