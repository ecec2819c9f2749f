package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/joho/godotenv"
	"github.com/segmentio/kafka-go"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/eleontev/flower-shop-api/internal/facades"
	"github.com/eleontev/flower-shop-api/internal/handlers"
	appjwt "github.com/eleontev/flower-shop-api/internal/jwt"
	"github.com/eleontev/flower-shop-api/internal/logger"
	"github.com/eleontev/flower-shop-api/internal/middlewares"
	"github.com/eleontev/flower-shop-api/internal/models"
	"github.com/eleontev/flower-shop-api/internal/repositories"
	"github.com/eleontev/flower-shop-api/internal/services"
	"github.com/eleontev/flower-shop-api/internal/storage"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// @title Flower Shop API
// @version 1.0.0
// @description Backend for a flower shop: accounts, cart, catalog, admin panel and order forwarding
// @host localhost:4000
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	printBuildInfo()
	configPath := parseFlags()

	cfg, err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(), cfg); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Starting service version %s, commit %s, build %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

type config struct {
	appHost  string
	appPort  string
	env      string
	logLevel string

	storageDir string

	jwtSecretKey string
	jwtExpSecond int

	adminEmails []string

	tgBotToken      string
	tgOrderBotToken string
	tgChatID        string

	kafkaBrokers    []string
	kafkaOrderTopic string

	corsOrigins []string
}

// parseConfig loads environment variables from a file and returns the
// application configuration.
func parseConfig(path string) (cfg config, err error) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}
	splitList := func(raw string) []string {
		if raw == "" {
			return nil
		}
		parts := strings.Split(raw, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		return out
	}

	cfg.appHost = getEnv("APP_HOST", "localhost")
	cfg.appPort = getEnv("APP_PORT", "4000")
	cfg.env = getEnv("APP_ENV", "development")
	cfg.logLevel = getEnv("APP_LOG_LEVEL", "info")

	cfg.storageDir = getEnv("STORAGE_DIR", ".")

	cfg.jwtSecretKey = getEnv("JWT_SECRET_KEY", "secret")
	if cfg.jwtExpSecond, err = strconv.Atoi(getEnv("JWT_EXP_SECOND", "604800")); err != nil {
		return
	}

	cfg.adminEmails = splitList(getEnv("ADMIN_EMAILS", ""))

	cfg.tgBotToken = getEnv("TELEGRAM_BOT_TOKEN", "")
	cfg.tgOrderBotToken = getEnv("TELEGRAM_ORDER_BOT_TOKEN", cfg.tgBotToken)
	cfg.tgChatID = getEnv("TELEGRAM_CHAT_ID", "")

	cfg.kafkaBrokers = splitList(getEnv("KAFKA_BROKERS", ""))
	cfg.kafkaOrderTopic = getEnv("KAFKA_ORDER_TOPIC", "orders")

	cfg.corsOrigins = splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"))

	return cfg, nil
}

// run initializes the logger, stores, services, and HTTP server. It sets up
// routes, applies middleware, and handles graceful shutdown.
func run(ctx context.Context, cfg config) error {
	if err := logger.Initialize(cfg.logLevel); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Log.Sync()
	logger.Log.Infof("Logger initialized with level %s", cfg.logLevel)

	// Open the JSON documents
	userDoc, err := storage.Open[models.User](filepath.Join(cfg.storageDir, "users.json"))
	if err != nil {
		return err
	}
	cartDoc, err := storage.Open[models.CartItem](filepath.Join(cfg.storageDir, "cart.json"))
	if err != nil {
		return err
	}
	passwordDoc, err := storage.Open[string](filepath.Join(cfg.storageDir, "passwords.json"))
	if err != nil {
		return err
	}
	flowerDoc, err := storage.Open[models.Flower](filepath.Join(cfg.storageDir, "flowers.json"))
	if err != nil {
		return err
	}

	// Initialize JWT service with environment-resolved cookie attributes
	cookieCfg := appjwt.DevelopmentCookies()
	if cfg.env == "production" {
		cookieCfg = appjwt.ProductionCookies()
	}
	tokens := appjwt.New(
		appjwt.WithSecretKey(cfg.jwtSecretKey),
		appjwt.WithExpiration(time.Duration(cfg.jwtExpSecond)*time.Second),
		appjwt.WithCookieConfig(cookieCfg),
	)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(userDoc)
	cartRepo := repositories.NewCartRepository(cartDoc)
	passwordRepo := repositories.NewPasswordRepository(passwordDoc)
	flowerRepo := repositories.NewFlowerRepository(flowerDoc)

	// Initialize Telegram facades (contact form and orders may use
	// different bots)
	contactBot := facades.NewTelegramFacade(cfg.tgBotToken, cfg.tgChatID)
	orderBot := facades.NewTelegramFacade(cfg.tgOrderBotToken, cfg.tgChatID)

	// Initialize Kafka writer when a broker is configured
	var kafkaWriter services.KafkaWriter
	if len(cfg.kafkaBrokers) > 0 {
		w := &kafka.Writer{
			Addr:     kafka.TCP(cfg.kafkaBrokers...),
			Topic:    cfg.kafkaOrderTopic,
			Balancer: &kafka.LeastBytes{},
		}
		defer w.Close()
		kafkaWriter = w
		logger.Log.Infof("Kafka order events enabled, topic %s", cfg.kafkaOrderTopic)
	}

	// Initialize services
	authService := services.NewAuthService(userRepo, userRepo, passwordRepo)
	userService := services.NewUserService(userRepo, userRepo, userRepo, cartRepo, passwordRepo)
	cartService := services.NewCartService(cartRepo, orderBot, kafkaWriter)
	adminService := services.NewAdminService(userRepo, userRepo, cartRepo, userService, cfg.adminEmails)

	// Setup router
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middlewares.LoggingMiddleware(logger.Log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))
	r.Use(httprate.LimitByIP(100, 15*time.Minute))

	authMiddleware := middlewares.AuthMiddleware(tokens)
	adminMiddleware := middlewares.AdminMiddleware(adminService)

	// Public routes
	r.Get("/", handlers.NewIndexHandler(buildVersion))
	r.Get("/health", handlers.NewHealthHandler(cfg.env))
	r.With(httprate.LimitByIP(5, time.Minute)).
		Post("/contact", handlers.NewContactHandler(contactBot))

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", handlers.NewRegisterHandler(authService, tokens))
		r.Post("/login", handlers.NewLoginHandler(authService, tokens))
		r.Post("/logout", handlers.NewLogoutHandler(tokens))
		r.Get("/check", handlers.NewAuthCheckHandler(tokens, userRepo))
	})

	r.Route("/flowers", func(r chi.Router) {
		r.Get("/", handlers.NewListFlowersHandler(flowerRepo))
		r.Get("/{id}", handlers.NewGetFlowerHandler(flowerRepo))
		r.Patch("/{id}", handlers.NewRateFlowerHandler(flowerRepo))
	})

	// Protected routes with JWT middleware
	r.Route("/users", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/me", handlers.NewGetProfileHandler(userService))
		r.Patch("/me", handlers.NewUpdateProfileHandler(userService))
		r.Delete("/me", handlers.NewDeleteProfileHandler(userService, tokens))
	})

	r.Route("/cart", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/", handlers.NewGetCartHandler(cartService))
		r.Post("/add", handlers.NewAddToCartHandler(cartService))
		r.Post("/update", handlers.NewUpdateCartHandler(cartService))
		r.Post("/checkout", handlers.NewCheckoutHandler(cartService))
		r.Get("/total", handlers.NewCartTotalHandler(cartService))
		r.Delete("/", handlers.NewClearCartHandler(cartService))
		r.Delete("/{id}", handlers.NewRemoveFromCartHandler(cartService))
	})

	r.Route("/admin", func(r chi.Router) {
		r.Get("/check", handlers.NewAdminCheckHandler(tokens, adminService))
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Use(adminMiddleware)
			r.Get("/users", handlers.NewAdminListUsersHandler(adminService))
			r.Delete("/users/{userId}", handlers.NewAdminDeleteUserHandler(adminService))
		})
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://%s:%s/swagger/doc.json", cfg.appHost, cfg.appPort)),
	))

	r.NotFound(handlers.NewNotFoundHandler())

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", cfg.appHost, cfg.appPort),
		Handler: r,
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		logger.Log.Infof("HTTP server listening on %s:%s", cfg.appHost, cfg.appPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		logger.Log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("HTTP server shutdown error", "error", err)
	}

	logger.Log.Info("HTTP server stopped gracefully")
	return nil
}
