package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/multierr"

	"github.com/pagemarket/bookstore-backend/api/controllers"
	"github.com/pagemarket/bookstore-backend/api/middleware"
	"github.com/pagemarket/bookstore-backend/api/routes"
	authsvc "github.com/pagemarket/bookstore-backend/internal/auth"
	"github.com/pagemarket/bookstore-backend/internal/cart"
	"github.com/pagemarket/bookstore-backend/internal/catalog"
	"github.com/pagemarket/bookstore-backend/internal/interactions"
	"github.com/pagemarket/bookstore-backend/internal/users"
	pkgauth "github.com/pagemarket/bookstore-backend/pkg/auth"
	"github.com/pagemarket/bookstore-backend/pkg/auth/session"
	"github.com/pagemarket/bookstore-backend/pkg/config"
	"github.com/pagemarket/bookstore-backend/pkg/db"
	"github.com/pagemarket/bookstore-backend/pkg/logger"
	"github.com/pagemarket/bookstore-backend/pkg/metrics"
	"github.com/pagemarket/bookstore-backend/pkg/migrate"
	"github.com/pagemarket/bookstore-backend/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	if err := run(cfg, logg); err != nil {
		logg.Error(context.Background(), "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logg *logger.Logger) (err error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbClient, dbErr := db.New(ctx, cfg.DB, logg)
	if dbErr != nil {
		return dbErr
	}
	defer func() {
		err = multierr.Append(err, dbClient.Close())
	}()

	if migrateErr := migrate.MaybeRunDev(ctx, cfg, dbClient, logg); migrateErr != nil {
		return migrateErr
	}

	redisClient, redisErr := redis.New(ctx, cfg.Redis)
	if redisErr != nil {
		return redisErr
	}
	defer func() {
		err = multierr.Append(err, redisClient.Close())
	}()

	minter, minterErr := pkgauth.NewMinter(cfg.JWT)
	if minterErr != nil {
		return minterErr
	}

	sessions, sessionsErr := session.NewManager(redisClient, cfg.JWT.RefreshTokenTTL())
	if sessionsErr != nil {
		return sessionsErr
	}

	conn := dbClient.DB()
	usersRepo := users.NewRepo(conn)
	reg := metrics.New()

	interactionsSvc := interactions.NewService(interactions.NewRepo(conn), reg, logg)

	deps := routes.Deps{
		Logger:        logg,
		Metrics:       reg,
		Authenticator: middleware.NewAuthenticator(minter, sessions, logg),
		RateLimiter:   middleware.NewAuthRateLimiter(redisClient, cfg.AuthRateLimit, logg),

		AuthService:         authsvc.NewService(dbClient, usersRepo, minter, sessions, cfg.Password, logg),
		UsersService:        users.NewService(usersRepo, cfg.Password, logg),
		CatalogService:      catalog.NewService(catalog.NewRepo(conn), interactionsSvc, logg),
		InteractionsService: interactionsSvc,
		CartService:         cart.NewService(cart.NewRepo(conn), logg),

		HealthDeps: map[string]controllers.Pinger{
			"postgres": dbClient,
			"redis":    redisClient,
		},
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	server := &http.Server{
		Addr:              addr,
		Handler:           routes.New(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.ListenAndServe()
	}()

	logCtx := logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(logCtx, "starting api server")

	select {
	case listenErr := <-serveErr:
		if listenErr != nil && listenErr != http.ErrServerClosed {
			return listenErr
		}
		return nil
	case <-ctx.Done():
	}

	logg.Info(logCtx, "shutting down api server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
