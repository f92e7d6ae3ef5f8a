package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dlcastillo/storefront/internal/api/handlers"
	"github.com/dlcastillo/storefront/internal/api/middleware"
	"github.com/dlcastillo/storefront/internal/cache"
	"github.com/dlcastillo/storefront/internal/cart"
	"github.com/dlcastillo/storefront/internal/config"
	"github.com/dlcastillo/storefront/internal/health"
	"github.com/dlcastillo/storefront/internal/metrics"
	repository "github.com/dlcastillo/storefront/internal/repositories"
	"github.com/dlcastillo/storefront/internal/repositories/redis"
	service "github.com/dlcastillo/storefront/internal/services"
	"github.com/dlcastillo/storefront/internal/tracing"
	"github.com/dlcastillo/storefront/pkg/sendgrid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	// Gateway setup
	repos, err := repository.New(cfg)
	if err != nil {
		slog.Error("❌ Error connecting to the gateway", "error", err.Error())
		os.Exit(1)
	}

	// Redis setup
	redisRepo, err := redis.NewRedisRepo(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the redis instance", "error", err.Error())
		os.Exit(1)
	}

	defer func() {
		if err := repos.Close(); err != nil {
			slog.Error("⚠️ Error closing gateway connection", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Gateway connection closed")
		}

		if err := redisRepo.Close(); err != nil {
			slog.Error("⚠️ Error closing redis connection", slog.String("error", err.Error()))
		}
	}()

	// Tracing setup (optional; skipped when no collector is configured)
	if cfg.Tracing.Endpoint != "" {

		tp, err := tracing.Init(context.Background(), "storefront", cfg.Tracing.Endpoint)
		if err != nil {
			slog.Error("❌ Error initializing tracing", "error", err.Error())
			os.Exit(1)
		}

		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := tp.Shutdown(shutdownCtx); err != nil {
				slog.Error("⚠️ Error shutting down tracer provider", slog.String("error", err.Error()))
			}
		}()
	}

	jwtKey := []byte(cfg.Security.JWTKey)

	var emailService sendgrid.EmailService
	if cfg.SendGrid.APIKey != "" {
		emailService = sendgrid.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
	}

	productCache := cache.NewRedisCache(redisRepo.Client(), &cfg.Cache)
	carts := cart.NewStore()

	userService := service.NewUserService(repos.User, repos.Profile, redisRepo, jwtKey)
	catalogService := service.NewCatalogService(repos.Product, productCache)
	checkoutService := service.NewCheckoutService(repos.Order, emailService)
	reportService := service.NewReportService(repos.Order, repos.Product)

	userHandler := handlers.NewUserHandler(userService, carts)
	productHandler := handlers.NewProductHandler(catalogService)
	cartHandler := handlers.NewCartHandler(carts, catalogService)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService, carts)
	reportHandler := handlers.NewReportHandler(reportService)
	authMiddleware := middleware.NewAuthMiddleware(jwtKey, userService)

	healthHandler, err := health.NewHealthHandler(cfg)
	if err != nil {
		slog.Error("❌ Error creating health handler", "error", err.Error())
		os.Exit(1)
	}

	slog.Info("storefront initialized", slog.String("env", cfg.Env), slog.String("version", "1.0.0"))

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.HandleFunc("POST /api/v1/users/register", userHandler.Register())
	routerMux.HandleFunc("POST /api/v1/users/login", userHandler.Login())
	routerMux.HandleFunc("GET /api/v1/users/profile", authMiddleware.Authenticate(userHandler.Profile()))
	routerMux.HandleFunc("POST /api/v1/users/logout", authMiddleware.Authenticate(userHandler.Logout()))

	routerMux.HandleFunc("GET /api/v1/products", productHandler.ListProducts())
	routerMux.HandleFunc("GET /api/v1/products/{id}", productHandler.GetProduct())

	routerMux.HandleFunc("GET /api/v1/cart", authMiddleware.Authenticate(cartHandler.GetCart()))
	routerMux.HandleFunc("DELETE /api/v1/cart", authMiddleware.Authenticate(cartHandler.ClearCart()))
	routerMux.HandleFunc("POST /api/v1/cart/items", authMiddleware.Authenticate(cartHandler.AddItem()))
	routerMux.HandleFunc("PUT /api/v1/cart/items/{productId}", authMiddleware.Authenticate(cartHandler.UpdateItem()))
	routerMux.HandleFunc("DELETE /api/v1/cart/items/{productId}", authMiddleware.Authenticate(cartHandler.RemoveItem()))

	routerMux.HandleFunc("POST /api/v1/checkout", authMiddleware.Authenticate(checkoutHandler.Checkout()))

	routerMux.HandleFunc("POST /api/v1/admin/products", authMiddleware.RequireAdmin(productHandler.CreateProduct()))
	routerMux.HandleFunc("PUT /api/v1/admin/products/{id}", authMiddleware.RequireAdmin(productHandler.UpdateProduct()))
	routerMux.HandleFunc("DELETE /api/v1/admin/products/{id}", authMiddleware.RequireAdmin(productHandler.DeleteProduct()))
	routerMux.HandleFunc("GET /api/v1/admin/reports", authMiddleware.RequireAdmin(reportHandler.SalesStats()))

	routerMux.Handle("GET /metrics", metrics.Handler())
	routerMux.Handle("GET /health", healthHandler.Handler())

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)

	if cfg.Tracing.Endpoint != "" {
		handler = otelhttp.NewHandler(handler, "storefront")
	}

	// Setup http server
	server := http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("❌ Failed to start server", slog.Any("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

}
