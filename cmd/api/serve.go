package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"storefront/docs"
	"storefront/internal/auth"
	"storefront/internal/cache"
	"storefront/internal/database"
	"storefront/internal/database/migration"
	handlers "storefront/internal/http/handler"
	"storefront/internal/http/middleware"
	tracing "storefront/internal/otel"
	"storefront/internal/repository/postgres"
	"storefront/internal/service"
	"storefront/internal/storage"
	"storefront/internal/web/cartctx"
	"storefront/internal/web/components"
	"storefront/internal/web/lazy"
	"storefront/internal/web/shell"
)

// bodyLimit leaves room for form fields next to a maximum size image.
const bodyLimit = storage.MaxImageSize + 1<<20

var shutdownTimeout time.Duration

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the shop pages and the JSON API",
	Long: `Connects to PostgreSQL, Redis and object storage, migrates the schema when
it is missing and listens on PORT until interrupted.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().DurationVar(&shutdownTimeout, "shutdown-timeout", 10*time.Second, "grace period for in-flight requests")
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init(ctx, cfg.Tracing, logger)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			logger.WithError(err).Warn("tracing shutdown failed")
		}
	}()

	db, err := database.NewPostgres(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, logger, cfg.Database.Host); err != nil {
		return err
	}

	objects, err := storage.NewMinIO(ctx, cfg.MinIO, logger)
	if err != nil {
		return fmt.Errorf("init object storage: %w", err)
	}
	images := storage.NewImageStore(objects, cfg.MinIO.PublicBaseURL, logger)

	rdb, err := cache.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	defer rdb.Close()
	carts := cache.NewRedisCartStore(rdb, cfg.Cart.TTL)

	tokens, err := auth.NewTokens(cfg.Auth)
	if err != nil {
		return err
	}

	svc := newServices(db, images, carts, tokens)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		return fmt.Errorf("register http metrics: %w", err)
	}
	loads, err := lazy.NewRegistry(reg)
	if err != nil {
		return fmt.Errorf("register component metrics: %w", err)
	}

	catalog := components.NewCatalog(components.Deps{
		SiteName:      cfg.Web.SiteName,
		Products:      svc.Products,
		Categories:    svc.Categories,
		Subcategories: svc.Subcategories,
		Invoices:      svc.Invoices,
		Banners:       components.StorageBanners{Store: objects, Keys: cfg.Web.Banners, TTL: cfg.Web.BannerTTL},
		Logger:        logger,
	}, loads)

	app := fiber.New(fiber.Config{
		ErrorHandler:          handlers.ErrorHandler(),
		BodyLimit:             bodyLimit,
		DisableStartupMessage: true,
	})

	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(logger))
	app.Use(metrics.Handler())
	app.Use(otelfiber.Middleware())
	app.Use(cartctx.Provider(carts, cartctx.Options{
		CookieName: cfg.Cart.CookieName,
		TTL:        cfg.Cart.TTL,
		Secure:     cfg.Cart.SecureCookie,
		Logger:     logger,
	}))

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	app.Get("/swagger/*", swaggerHandler)

	handlers.RegisterRoutes(app, svc, tokens, db, redisPinger(rdb))
	shell.Mount(app, catalog, shell.Options{SiteName: cfg.Web.SiteName, Logger: logger})

	errCh := make(chan error, 1)
	go func() {
		logger.WithFields(log.Fields{"event": "server_start", "port": cfg.Port}).Info("listening")
		errCh <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server stopped: %w", err)
	case <-ctx.Done():
	}

	logger.WithField("event", "server_shutdown").Info("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return app.ShutdownWithContext(sctx)
}

func newServices(db *sql.DB, images storage.ImageStore, carts cache.CartStore, tokens service.TokenIssuer) handlers.Services {
	users := postgres.NewUserPostgres(db)
	categories := postgres.NewCategoryPostgres(db)
	subcategories := postgres.NewSubcategoryPostgres(db)
	products := postgres.NewProductPostgres(db)
	invoices := postgres.NewInvoicePostgres(db)

	return handlers.Services{
		Auth:          service.NewAuthService(users, tokens, logger),
		Users:         service.NewUserService(users, logger),
		Categories:    service.NewCategoryService(categories, images, logger),
		Subcategories: service.NewSubcategoryService(subcategories, categories),
		Products:      service.NewProductService(products, subcategories, images, logger),
		Cart:          service.NewCartService(carts, products, logger),
		Invoices:      service.NewInvoiceService(invoices, products, carts, cfg.Invoice.TaxPercent, logger),
	}
}

func redisPinger(rdb *redis.Client) handlers.Pinger {
	return handlers.PingFunc(func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	})
}

// swaggerHandler serves the API docs with the host and scheme the caller used.
func swaggerHandler(c *fiber.Ctx) error {
	scheme := c.Protocol()
	if proto := c.Get("X-Forwarded-Proto"); proto != "" {
		scheme = strings.TrimSpace(strings.Split(proto, ",")[0])
	}

	docs.SwaggerInfo.Host = c.Get("Host")
	docs.SwaggerInfo.Schemes = []string{scheme}

	return swagger.HandlerDefault(c)
}
