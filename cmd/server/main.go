package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/anonto42/nexa/backend/internal/cache"
	"github.com/anonto42/nexa/backend/internal/middleware"
	"github.com/anonto42/nexa/backend/internal/notifications"
	"github.com/anonto42/nexa/backend/internal/repositories"
	"github.com/anonto42/nexa/backend/internal/router"
	"github.com/anonto42/nexa/backend/pkg/config"
	"github.com/anonto42/nexa/backend/pkg/firebase"
	"github.com/anonto42/nexa/backend/pkg/log"
	"github.com/pkg/errors"
)

func main() {
	config.LoadDotEnvs()
	log.InitLogger()
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Log.WithError(err).Fatal("server exited")
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	db, err := config.InitDB(cfg)
	if err != nil {
		return errors.Wrap(err, "initialize databases")
	}
	defer db.CloseDB()

	if err := repositories.Migrate(db.Postgres); err != nil {
		return errors.Wrap(err, "auto migrate")
	}
	log.Log.Info("PostgreSQL auto-migrations completed for all models.")

	sqlDB, err := db.Postgres.DB()
	if err != nil {
		return errors.Wrap(err, "get sql.DB")
	}

	repos := router.Repositories{
		Users:         repositories.NewPostgresUserRepository(db.Postgres),
		Posts:         repositories.NewPostgresPostRepository(db.Postgres),
		Comments:      repositories.NewPostgresCommentRepository(db.Postgres),
		Likes:         repositories.NewPostgresLikeRepository(db.Postgres),
		Follows:       repositories.NewPostgresFollowRepository(db.Postgres),
		Notifications: repositories.NewPostgresNotificationRepository(db.Postgres),
	}

	var postCache cache.PostCache = cache.NopPostCache{}
	if db.Redis != nil {
		postCache = cache.NewRedisPostCache(db.Redis, cfg.PostCacheTTL)
	}

	var forwarder notifications.Forwarder
	if db.Nats != nil {
		forwarder = notifications.NewNatsForwarder(db.Nats)
	}

	eventBus := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false))
	dispatcherCtx, stopDispatcher := context.WithCancel(context.Background())
	defer stopDispatcher()
	dispatcher := notifications.NewDispatcher(eventBus, repos.Users, repos.Notifications, forwarder)
	if err := dispatcher.Start(dispatcherCtx); err != nil {
		return err
	}

	verifier, err := newVerifier(ctx, cfg)
	if err != nil {
		return err
	}

	e := router.New()
	router.SetupRoutes(e, router.Dependencies{
		Repos:     repos,
		DB:        sqlDB,
		PostCache: postCache,
		Notifier:  notifications.NewPublisher(eventBus),
		Verifier:  verifier,
	})

	serverErr := make(chan error, 1)
	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}
	log.Log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Log.WithError(err).Error("HTTP server shutdown")
	}

	// Let in-flight notifications land before the database closes.
	if err := eventBus.Close(); err != nil {
		log.Log.WithError(err).Error("event bus close")
	}
	select {
	case <-dispatcher.Done():
	case <-shutdownCtx.Done():
		log.Log.Warn("notification dispatcher did not drain in time")
	}
	return nil
}

// newVerifier prefers Firebase and falls back to a shared-secret JWT. Neither
// configured means anonymous access only.
func newVerifier(ctx context.Context, cfg *config.Config) (middleware.TokenVerifier, error) {
	switch {
	case cfg.FirebaseCredentialsPath != "":
		authClient, err := firebase.NewAuthClient(ctx, cfg.FirebaseCredentialsPath)
		if err != nil {
			return nil, err
		}
		return middleware.NewFirebaseVerifier(authClient), nil
	case cfg.JWTSecret != "":
		return middleware.NewJWTVerifier(cfg.JWTSecret), nil
	default:
		log.Log.Warn("No identity provider configured; all requests are anonymous")
		return nil, nil
	}
}
