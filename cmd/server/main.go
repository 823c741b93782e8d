package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/tair/bookbank/docs"
	"github.com/tair/bookbank/internal/config"
	recHTTP "github.com/tair/bookbank/internal/recommendation/delivery/http"
	recRepository "github.com/tair/bookbank/internal/recommendation/repository"
	searchHTTP "github.com/tair/bookbank/internal/search/delivery/http"
	"github.com/tair/bookbank/internal/search/googlebooks"
	"github.com/tair/bookbank/internal/session"
	userHTTP "github.com/tair/bookbank/internal/user/delivery/http"
	userdomain "github.com/tair/bookbank/internal/user/domain"
	userRepository "github.com/tair/bookbank/internal/user/repository"
	"github.com/tair/bookbank/internal/web"
	"github.com/tair/bookbank/pkg/auth"
	"github.com/tair/bookbank/pkg/database"
	"github.com/tair/bookbank/pkg/logger"
	"github.com/tair/bookbank/pkg/tracing"
)

func main() {
	cfg := config.Load()

	logger.Init("bookbank", cfg.LogLevel, cfg.IsDevelopment())
	auth.Configure(cfg.JWTSecret)

	// Tracing
	tp, err := tracing.InitTracer("bookbank", cfg.JaegerEndpoint)
	if err != nil {
		logger.Logger.Warn().Err(err).Msg("Tracing disabled")
	}

	// Database
	db, err := database.NewGormConnection(cfg.Database)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
	}
	defer sqlDB.Close()

	// User repository; DB_DRIVER picks the ORM or the raw SQL implementation
	var userRepo userdomain.UserRepository
	if cfg.DBDriver == config.DBDriverPostgres {
		pgDB, err := database.NewPostgresConnection(cfg.Database)
		if err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
		}
		defer pgDB.Close()
		pgRepo := userRepository.NewPostgresUserRepository(pgDB)
		if err := pgRepo.InitSchema(); err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to init user schema")
		}
		userRepo = pgRepo
		logger.Logger.Info().Msg("Using raw SQL user repository")
	} else {
		gormUserRepo := userRepository.NewGormUserRepository(db)
		if err := gormUserRepo.AutoMigrate(); err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to run user migrations")
		}
		userRepo = gormUserRepo
	}

	gormRecRepo := recRepository.NewGormRecommendationRepository(db)
	if err := gormRecRepo.AutoMigrate(); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run recommendation migrations")
	}
	recRepo := recRepository.NewRecommendationRepositoryWithTracing(gormRecRepo)

	// Session store; falls back to process memory without Redis
	var sessions session.Store
	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		sessions = session.NewRedisStore(redisClient)
		logger.Logger.Info().Str("addr", cfg.Redis.Addr).Msg("Using Redis session store")
	} else {
		sessions = session.NewMemoryStore()
		logger.Logger.Info().Msg("Using in-memory session store")
	}

	// External catalog client
	booksClient := googlebooks.NewClient(cfg.GoogleBooks)

	// Handlers
	userHandler := userHTTP.NewUserHandler(userRepo)
	recHandler := recHTTP.NewRecommendationHandler(recRepo)
	searchHandler := searchHTTP.NewSearchHandler(booksClient)
	webHandler := web.NewHandler(userRepo, recRepo, booksClient, sessions, cfg.SessionTTL)

	// Router
	router := mux.NewRouter()
	userHandler.RegisterRoutes(router)
	recHandler.RegisterRoutes(router)
	searchHandler.RegisterRoutes(router)

	router.Handle("/metrics", promhttp.Handler())
	router.HandleFunc("/health", healthCheck(sqlDB)).Methods(http.MethodGet)
	userHTTP.RegisterSwaggerDocs(router, httpSwagger.Handler())

	// Page routes last; "/" must not shadow the API prefixes
	webHandler.RegisterRoutes(router)

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      c.Handler(router),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Logger.Info().Str("port", cfg.HTTPPort).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Logger.Error().Err(err).Msg("Server shutdown failed")
	}
	if tp != nil {
		if err := tracing.Shutdown(ctx, tp); err != nil {
			logger.Logger.Error().Err(err).Msg("Tracer shutdown failed")
		}
	}
}

func healthCheck(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		w.Header().Set("Content-Type", "application/json")
		if err := db.PingContext(ctx); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"unhealthy"}`))
			return
		}
		_, _ = w.Write([]byte(`{"status":"healthy"}`))
	}
}
