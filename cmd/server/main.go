package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/viper"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/fitcenter/backend/docs"
	"github.com/fitcenter/backend/internal/audit"
	"github.com/fitcenter/backend/internal/config"
	"github.com/fitcenter/backend/internal/database"
	"github.com/fitcenter/backend/internal/handlers"
	"github.com/fitcenter/backend/internal/logger"
	"github.com/fitcenter/backend/internal/metrics"
	mW "github.com/fitcenter/backend/internal/middleware"
	"github.com/fitcenter/backend/internal/services"
)

// @title Fitness Center Points API
// @version 1.0
// @description Points ledger and staff-verified redemption for fitness center members
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	// Initialize config
	viper.SetConfigFile(".env") // explicitly point to .env file
	viper.AutomaticEnv()        // allow environment variables to override .env

	viper.BindEnv("server.port", "PORT")
	viper.BindEnv("log.level", "LOG_LEVEL")
	viper.BindEnv("log.format", "LOG_FORMAT")
	viper.BindEnv("store.driver", "STORE_DRIVER")

	viper.BindEnv("database.host", "DATABASE_HOST")
	viper.BindEnv("database.port", "DATABASE_PORT")
	viper.BindEnv("database.user", "DATABASE_USER")
	viper.BindEnv("database.password", "DATABASE_PASSWORD")
	viper.BindEnv("database.name", "DATABASE_NAME")
	viper.BindEnv("database.ssl_mode", "DATABASE_SSL_MODE")
	viper.BindEnv("database.auto_migrate", "DATABASE_AUTO_MIGRATE")

	viper.BindEnv("redis.enabled", "REDIS_ENABLED")
	viper.BindEnv("redis.host", "REDIS_HOST")
	viper.BindEnv("redis.port", "REDIS_PORT")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")
	viper.BindEnv("redis.db", "REDIS_DB")

	viper.BindEnv("jwt.secret_key", "JWT_SECRET_KEY")

	viper.BindEnv("redemption.code_length", "REDEMPTION_CODE_LENGTH")
	viper.BindEnv("redemption.code_alphabet", "REDEMPTION_CODE_ALPHABET")
	viper.BindEnv("redemption.code_timeout", "REDEMPTION_CODE_TIMEOUT")
	viper.BindEnv("redemption.max_code_attempts", "REDEMPTION_MAX_CODE_ATTEMPTS")
	viper.BindEnv("redemption.max_requests_per_member", "REDEMPTION_MAX_REQUESTS_PER_MEMBER")
	viper.BindEnv("redemption.rate_limit_window", "REDEMPTION_RATE_LIMIT_WINDOW")
	viper.BindEnv("redemption.sweep_interval", "REDEMPTION_SWEEP_INTERVAL")
	viper.BindEnv("redemption.spend_description", "REDEMPTION_SPEND_DESCRIPTION")
	viper.BindEnv("awards.attendance", "AWARDS_ATTENDANCE")
	viper.BindEnv("awards.workout", "AWARDS_WORKOUT")
	viper.BindEnv("awards.signup", "AWARDS_SIGNUP")

	viper.SetDefault("server.port", "8080")
	viper.SetDefault("store.driver", "memory")

	configErr := viper.ReadInConfig()

	log := logger.New(logger.Options{
		ServiceName: "fitcenter-points",
		Level:       logger.ParseLevel(viper.GetString("log.level")),
		Format:      viper.GetString("log.format"),
	})
	ctx := context.Background()
	if configErr != nil {
		log.Zerolog(ctx).Info().Err(configErr).Msg("config file not found, using environment and defaults")
	}
	if viper.GetString("jwt.secret_key") == "" {
		log.Warn(ctx, "jwt.secret_key is not set")
	}

	// Initialize Swagger docs
	docs.SwaggerInfo.Host = "localhost:" + viper.GetString("server.port")
	docs.SwaggerInfo.BasePath = "/api/v1"
	docs.SwaggerInfo.Schemes = []string{"http", "https"}

	redemptionConfig := config.LoadRedemptionConfig()
	awardConfig := config.LoadAwardConfig()

	// Initialize services
	store, db := openStore(ctx, log)
	if db != nil {
		defer db.Close()
	}

	redisClient := database.InitRedis(ctx, log)
	if redisClient != nil {
		defer redisClient.Close()
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	pointsMetrics := metrics.NewPointsMetrics(registry)
	auditLog := audit.NewLogger(os.Stdout)

	codes, err := services.NewCodeGenerator(redemptionConfig)
	if err != nil {
		log.Zerolog(ctx).Fatal().Err(err).Msg("invalid redemption code configuration")
	}

	notifier := services.NewNotifier(redisClient, log)
	ledgerService := services.NewLedgerService(store, notifier, pointsMetrics, auditLog, log)
	redemptionService := services.NewRedemptionService(services.RedemptionDeps{
		Store:    store,
		Codes:    codes,
		Config:   redemptionConfig,
		Limiter:  services.NewRateLimiter(redisClient, redemptionConfig.MaxRequestsPerMember, redemptionConfig.RateLimitWindow),
		Notifier: notifier,
		Metrics:  pointsMetrics,
		Audit:    auditLog,
		Logger:   log,
	})
	awardService := services.NewAwardService(ledgerService, awardConfig)
	qrService := services.NewQRService(256)

	sweeperCtx, stopSweeper := context.WithCancel(ctx)
	defer stopSweeper()
	sweeper := services.NewExpirySweeper(store, redemptionConfig.SweepInterval, pointsMetrics, log)
	go sweeper.Run(sweeperCtx)

	pointsHandler := handlers.NewPointsHandler(ledgerService)
	redemptionHandler := handlers.NewRedemptionHandler(redemptionService, qrService, nil)
	awardHandler := handlers.NewAwardHandler(awardService)

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(mW.SecurityHeaders)
	r.Use(mW.RequestID(log))
	r.Use(mW.Logging(log))
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		status := http.StatusOK
		body := map[string]string{"status": "healthy", "store": viper.GetString("store.driver")}
		if db != nil {
			if err := db.PingContext(r.Context()); err != nil {
				status = http.StatusServiceUnavailable
				body["status"] = "degraded"
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(body)
	})

	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(mW.AuthMiddleware)

		// Member endpoints
		r.Group(func(r chi.Router) {
			r.Use(mW.RequireRole(mW.RoleMember))

			r.Get("/points/balance", pointsHandler.GetBalance)
			r.Get("/points/transactions", pointsHandler.GetTransactions)

			r.Post("/redemptions", redemptionHandler.CreateUsageRequest)
			r.Get("/redemptions", redemptionHandler.ListRequests)
			r.Get("/redemptions/{requestId}", redemptionHandler.GetRequest)
			r.Get("/redemptions/{requestId}/qr", redemptionHandler.GetRequestQR)
		})

		// Members cancel their own requests; staff may cancel any
		r.With(mW.RequireRole(mW.RoleMember, mW.RoleStaff)).
			Delete("/redemptions/{requestId}", redemptionHandler.CancelRequest)

		// Front desk endpoints
		r.Group(func(r chi.Router) {
			r.Use(mW.RequireRole(mW.RoleStaff))

			r.Get("/staff/redemptions/{code}", redemptionHandler.PreviewRequest)
			r.Post("/staff/redemptions/confirm", redemptionHandler.ConfirmUsage)
		})

		// Collaborator endpoints (attendance, workout verification, registration)
		r.Group(func(r chi.Router) {
			r.Use(mW.RequireRole(mW.RoleSystem, mW.RoleStaff))

			r.Post("/awards/{kind}", awardHandler.Award)
			r.Post("/points/earn", pointsHandler.EarnPoints)
		})
	})

	port := viper.GetString("server.port")

	// Start server
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Zerolog(ctx).Info().Str("port", port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Zerolog(ctx).Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info(ctx, "server shutting down")
	stopSweeper()
	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server forced to shutdown", err)
	}

	log.Info(ctx, "server stopped")
}

// openStore selects the ledger backend from store.driver. The memory store
// loses all state on restart.
func openStore(ctx context.Context, log *logger.Logger) (services.Store, *sql.DB) {
	switch driver := viper.GetString("store.driver"); driver {
	case "postgres":
		db, err := database.InitDB(ctx, database.GetConfig(), log)
		if err != nil {
			log.Zerolog(ctx).Fatal().Err(err).Msg("failed to initialize database")
		}
		return services.NewPostgresStore(db), db
	case "memory", "":
		log.Warn(ctx, "using in-memory store; balances are lost on restart")
		return services.NewMemoryStore(), nil
	default:
		log.Zerolog(ctx).Fatal().Str("driver", driver).Msg("unknown store driver")
		return nil, nil
	}
}
