package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/wichananm65/arix-backend/internal/auth"
	"github.com/wichananm65/arix-backend/internal/cart"
	"github.com/wichananm65/arix-backend/internal/config"
	"github.com/wichananm65/arix-backend/internal/httperr"
	"github.com/wichananm65/arix-backend/internal/infrastructure/cache"
	"github.com/wichananm65/arix-backend/internal/infrastructure/database/mongodb"
	"github.com/wichananm65/arix-backend/internal/infrastructure/database/postgres"
	"github.com/wichananm65/arix-backend/internal/logger"
	"github.com/wichananm65/arix-backend/internal/order"
	"github.com/wichananm65/arix-backend/internal/product"
	"github.com/wichananm65/arix-backend/internal/slider"
	"github.com/wichananm65/arix-backend/internal/taxonomy"
	"github.com/wichananm65/arix-backend/internal/tracking"
	"github.com/wichananm65/arix-backend/internal/upload"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const (
	cartTTL     = 30 * 24 * time.Hour
	trackingTTL = 24 * time.Hour
)

func main() {
	cfg := config.Load()
	log, err := logger.New(cfg.Env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

// repositories groups the store-backed dependencies chosen by STORE_DRIVER.
type repositories struct {
	products product.Repository
	orders   order.Repository
	sliders  slider.Repository
	closers  []func() error
}

func openRepositories(ctx context.Context, cfg config.Config, log *zap.Logger) (*repositories, error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		db, err := postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, err
		}
		log.Info("using postgres store")
		return postgresRepositories(db), nil

	case config.DriverMongo:
		client, db, err := mongodb.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, err
		}
		if err := mongodb.EnsureIndexes(ctx, db); err != nil {
			_ = mongodb.Disconnect(client)
			return nil, err
		}
		log.Info("using mongo store", zap.String("db", cfg.MongoDB))
		return mongoRepositories(client, db), nil

	case config.DriverMemory:
		log.Info("using in-memory store with sample catalog")
		return &repositories{
			products: product.NewInMemoryRepository(product.SampleProducts(time.Now().UTC())),
			orders:   order.NewInMemoryRepository(),
			sliders:  slider.NewInMemoryRepository(),
		}, nil
	}
	return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
}

func postgresRepositories(db *sql.DB) *repositories {
	return &repositories{
		products: product.NewPostgresRepository(db),
		orders:   order.NewPostgresRepository(db),
		sliders:  slider.NewPostgresRepository(db),
		closers:  []func() error{db.Close},
	}
}

func mongoRepositories(client *mongo.Client, db *mongo.Database) *repositories {
	return &repositories{
		products: product.NewMongoRepository(db),
		orders:   order.NewMongoRepository(db),
		sliders:  slider.NewMongoRepository(db),
		closers:  []func() error{func() error { return mongodb.Disconnect(client) }},
	}
}

func (r *repositories) Close() {
	for _, c := range r.closers {
		_ = c()
	}
}

func cartStore(cfg config.Config, rdb *redis.Client) (cart.Store, error) {
	switch {
	case rdb != nil:
		return cart.NewRedisStore(rdb, cartTTL), nil
	case cfg.CartDir != "":
		return cart.NewFileStore(cfg.CartDir)
	default:
		return cart.NewMemoryStore(), nil
	}
}

func trackingCache(rdb *redis.Client) tracking.Cache {
	if rdb != nil {
		return tracking.NewRedisCache(rdb, trackingTTL)
	}
	return tracking.NewMemoryCache(0)
}

func adminAuth(cfg config.Config, log *zap.Logger) (*auth.Credentials, *auth.Issuer, string, error) {
	secret := cfg.JWTSecret
	if secret == "" {
		if cfg.IsProduction() {
			return nil, nil, "", errors.New("JWT_SECRET is required in production")
		}
		secret = uuid.NewString()
		log.Warn("JWT_SECRET not set, using a random secret; tokens will not survive a restart")
	}
	issuer, err := auth.NewIssuer(secret, cfg.TokenTTL)
	if err != nil {
		return nil, nil, "", err
	}
	creds, err := auth.NewCredentials(cfg.AdminUsername, cfg.AdminPassword, cfg.AdminPasswordHash)
	if err != nil {
		// admin login answers 500 until credentials are set
		log.Warn("admin credentials unavailable", zap.Error(err))
		creds = nil
	}
	return creds, issuer, secret, nil
}

func objectStorage(ctx context.Context, cfg config.Config, log *zap.Logger) upload.Storage {
	storage, err := upload.NewS3Storage(ctx, upload.S3Options{
		Bucket:        cfg.S3Bucket,
		Region:        cfg.AWSRegion,
		Endpoint:      cfg.S3Endpoint,
		PublicBaseURL: cfg.S3PublicBaseURL,
		AccessKeyID:   cfg.AWSAccessKeyID,
		SecretKey:     cfg.AWSSecretKey,
	})
	if err != nil {
		log.Warn("image uploads disabled", zap.Error(err))
		return nil
	}
	return storage
}

func run(cfg config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, err := openRepositories(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer repos.Close()

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb, err = cache.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			return err
		}
		defer rdb.Close()
		log.Info("redis connected", zap.String("addr", cfg.RedisAddr))
	}

	carts, err := cartStore(cfg, rdb)
	if err != nil {
		return err
	}
	creds, issuer, secret, err := adminAuth(cfg, log)
	if err != nil {
		return err
	}

	recent := trackingCache(rdb)
	productService := product.NewService(repos.products)
	orderService := order.NewService(repos.orders, order.Options{
		ShippingFee: cfg.ShippingFee,
		Permissive:  cfg.StatusPermissive,
	}, log).WithRecorder(recent)
	sliderService := slider.NewService(repos.sliders)
	trackingService := tracking.NewService(orderService, recent, log)

	app := fiber.New(fiber.Config{
		AppName:      "arix-backend",
		ErrorHandler: httperr.Handler(log),
		BodyLimit:    upload.MaxFileSize + 1<<20,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.RequestLogger(log))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.CORSOrigins, ","),
		AllowMethods:     "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true, "store": cfg.StoreDriver})
	})

	guard := auth.RequireAdmin(secret)
	authHandler := auth.NewHandler(creds, issuer, auth.LoginLimiter(), cfg.IsProduction(), log)
	productHandler := product.NewHandler(productService)
	orderHandler := order.NewHandler(orderService)
	sliderHandler := slider.NewHandler(sliderService)
	uploadHandler := upload.NewHandler(objectStorage(ctx, cfg, log), log)

	// static admin paths (/api/orders/stats, /api/sliders/all) must be
	// registered before the public :param routes
	authHandler.RegisterProtectedRoutes(app, guard)
	productHandler.RegisterProtectedRoutes(app, guard)
	orderHandler.RegisterProtectedRoutes(app, guard)
	sliderHandler.RegisterProtectedRoutes(app, guard)
	uploadHandler.RegisterProtectedRoutes(app, guard)

	authHandler.RegisterPublicRoutes(app)
	taxonomy.NewHandler().RegisterPublicRoutes(app)
	productHandler.RegisterPublicRoutes(app)
	cart.NewHandler(cart.NewSessions(carts, log), productService, orderService, cfg.IsProduction()).RegisterPublicRoutes(app)
	orderHandler.RegisterPublicRoutes(app)
	tracking.NewHandler(trackingService).RegisterPublicRoutes(app)
	sliderHandler.RegisterPublicRoutes(app)

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", zap.String("addr", cfg.Addr), zap.String("env", cfg.Env))
		errCh <- app.Listen(cfg.Addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	return app.ShutdownWithTimeout(10 * time.Second)
}
