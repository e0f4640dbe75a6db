// Package app wires together all dependencies and runs the storefront.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	addresspostgres "github.com/zahrafashion/storefront/internal/address/repository/postgres"
	addresssvc "github.com/zahrafashion/storefront/internal/address/service"
	"github.com/zahrafashion/storefront/internal/auth"
	cartevent "github.com/zahrafashion/storefront/internal/cart/event"
	cartredis "github.com/zahrafashion/storefront/internal/cart/repository/redis"
	cartsvc "github.com/zahrafashion/storefront/internal/cart/service"
	checkoutevent "github.com/zahrafashion/storefront/internal/checkout/event"
	checkoutredis "github.com/zahrafashion/storefront/internal/checkout/repository/redis"
	checkoutsvc "github.com/zahrafashion/storefront/internal/checkout/service"
	"github.com/zahrafashion/storefront/internal/config"
	orderevent "github.com/zahrafashion/storefront/internal/order/event"
	orderpostgres "github.com/zahrafashion/storefront/internal/order/repository/postgres"
	ordersvc "github.com/zahrafashion/storefront/internal/order/service"
	paymentpostgres "github.com/zahrafashion/storefront/internal/payment/repository/postgres"
	paymentsvc "github.com/zahrafashion/storefront/internal/payment/service"
	"github.com/zahrafashion/storefront/internal/shipping/cache"
	"github.com/zahrafashion/storefront/internal/shipping/rajaongkir"
	shippingsvc "github.com/zahrafashion/storefront/internal/shipping/service"
	"github.com/zahrafashion/storefront/migrations"
	"github.com/zahrafashion/storefront/pkg/database"
	"github.com/zahrafashion/storefront/pkg/health"
	"github.com/zahrafashion/storefront/pkg/httpclient"
	pkgkafka "github.com/zahrafashion/storefront/pkg/kafka"
	"github.com/zahrafashion/storefront/pkg/tracing"
)

// App holds the wired application and its infrastructure handles.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	pool           *pgxpool.Pool
	rdb            *redis.Client
	producer       *pkgkafka.Producer
	httpServer     *http.Server
	tracerShutdown func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Tracing.
	tracerShutdown, err := tracing.InitTracer(ctx, tracing.Config{
		ServiceName:  "storefront",
		Environment:  cfg.Environment,
		OTLPEndpoint: cfg.OTELEndpoint,
		SampleRate:   cfg.OTELSampleRate,
		Enabled:      cfg.OTELEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	// PostgreSQL.
	pgCfg := database.PostgresConfig{
		Host:            cfg.PostgresHost,
		Port:            cfg.PostgresPort,
		User:            cfg.PostgresUser,
		Password:        cfg.PostgresPass,
		DBName:          cfg.PostgresDB,
		SSLMode:         cfg.PostgresSSL,
		MaxConns:        cfg.DBMaxConns,
		MinConns:        cfg.DBMinConns,
		MaxConnLifetime: time.Duration(cfg.DBMaxConnLifetimeMins) * time.Minute,
		MaxConnIdleTime: time.Duration(cfg.DBMaxConnIdleTimeMins) * time.Minute,
	}
	pool, err := database.NewPostgresPool(ctx, &pgCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	if err := database.RunMigrations(ctx, pool, migrations.FS, logger); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	// Redis.
	rdb, err := database.NewRedisClient(ctx, database.RedisConfig{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	logger.Info("connected to Redis", slog.String("addr", cfg.RedisAddr))

	// Kafka producer.
	kafkaCfg := pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers)
	producer := pkgkafka.NewProducer(kafkaCfg, logger)
	logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))

	// Shipping: tiered rate cache, breaker-protected oracle client, resolver.
	cacheTTL := cfg.ShippingCacheTTL()
	rateCache := cache.NewTieredStore(
		cache.NewMemoryStore(cacheTTL),
		cache.NewRedisStore(rdb, cacheTTL, logger),
		logger,
	)

	oracleHTTP := httpclient.New(httpclient.Config{
		Timeout:    cfg.RajaOngkirRequestTimeout(),
		MaxRetries: 0, // a failed candidate falls through to the next one
	})
	oracleBreaker := httpclient.NewCircuitBreakerClient(
		oracleHTTP,
		httpclient.DefaultCircuitBreakerConfig("rajaongkir"),
		logger,
	)
	oracle := rajaongkir.NewClient(oracleBreaker, rajaongkir.Config{
		BaseURL:  cfg.RajaOngkirBaseURL,
		APIKey:   cfg.RajaOngkirAPIKey,
		OriginID: cfg.RajaOngkirOriginID,
	}, logger)
	shippingResolver := shippingsvc.NewResolver(rateCache, oracle, logger)

	// Cart.
	cartRepo := cartredis.NewCartRepository(rdb, cfg.CartTTL())
	cartService := cartsvc.NewCartService(cartRepo, cartevent.NewProducer(producer, logger), logger, cfg.CartTTL())

	// Address.
	addressRepo := addresspostgres.NewAddressRepository(pool)
	addressService := addresssvc.NewAddressService(addressRepo, logger)

	// Payment methods.
	paymentRepo := paymentpostgres.NewPaymentMethodRepository(pool)
	paymentService := paymentsvc.NewPaymentMethodService(paymentRepo, logger)

	// Orders.
	orderRepo := orderpostgres.NewOrderRepository(pool)
	orderService := ordersvc.NewOrderService(orderRepo, orderevent.NewProducer(producer, logger), logger)

	// Checkout.
	checkoutRepo := checkoutredis.NewSessionRepository(rdb, cfg.CheckoutTTL())
	checkoutService := checkoutsvc.NewCheckoutService(
		checkoutRepo,
		cartService,
		addressService,
		paymentService,
		shippingResolver,
		orderService,
		checkoutevent.NewProducer(producer, logger),
		logger,
		cfg.CheckoutTTL(),
	)

	// Auth.
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, time.Duration(cfg.JWTExpiryHours)*time.Hour)

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.Register("postgres", func(ctx context.Context) error {
		return pool.Ping(ctx)
	})
	healthHandler.Register("redis", func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	})

	router := NewRouter(RouterDeps{
		Config:          cfg,
		Logger:          logger,
		Health:          healthHandler,
		TokenValidator:  jwtManager.Validate,
		CartService:     cartService,
		AddressService:  addressService,
		PaymentService:  paymentService,
		ShippingService: shippingResolver,
		CheckoutService: checkoutService,
		OrderService:    orderService,
	})

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:            cfg,
		logger:         logger,
		pool:           pool,
		rdb:            rdb,
		producer:       producer,
		httpServer:     httpServer,
		tracerShutdown: tracerShutdown,
	}, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server", slog.String("addr", a.httpServer.Addr))
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	if err := a.producer.Close(); err != nil {
		a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
	}

	if err := a.rdb.Close(); err != nil {
		a.logger.Error("redis close error", slog.String("error", err.Error()))
	}

	a.pool.Close()

	if err := a.tracerShutdown(shutdownCtx); err != nil {
		a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
	}

	a.logger.Info("application shutdown complete")
	return nil
}
