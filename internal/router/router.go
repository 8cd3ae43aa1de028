package router

import (
	"database/sql"

	"github.com/anonto42/nexa/backend/internal/cache"
	"github.com/anonto42/nexa/backend/internal/feed"
	"github.com/anonto42/nexa/backend/internal/handlers"
	"github.com/anonto42/nexa/backend/internal/middleware"
	"github.com/anonto42/nexa/backend/internal/notifications"
	"github.com/anonto42/nexa/backend/internal/repositories"
	"github.com/anonto42/nexa/backend/internal/validators"
	"github.com/anonto42/nexa/backend/pkg/log"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
)

// Repositories bundles the persistence dependencies of the HTTP layer.
type Repositories struct {
	Users         repositories.UserRepository
	Posts         repositories.PostRepository
	Comments      repositories.CommentRepository
	Likes         repositories.LikeRepository
	Follows       repositories.FollowRepository
	Notifications repositories.NotificationRepository
}

// Dependencies is everything SetupRoutes wires together. Verifier may be nil,
// in which case every request is anonymous. A nil Notifier drops events.
type Dependencies struct {
	Repos     Repositories
	DB        *sql.DB
	PostCache cache.PostCache
	Notifier  notifications.Notifier
	Verifier  middleware.TokenVerifier
}

// New builds an echo instance with the error handler, serializer, validator
// and global middleware installed.
func New() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = handlers.ErrorHandler
	e.JSONSerializer = validators.StrictJSONSerializer{}
	e.Validator = validators.NewValidator()
	SetupMiddleware(e)
	return e
}

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.RequestID())
	e.Use(middleware.RequestLogger())
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, deps Dependencies) {
	if deps.DB != nil {
		e.GET("/health", handlers.NewHealthHandler(deps.DB).HealthCheck)
	}

	api := e.Group("")
	if deps.Verifier != nil {
		api.Use(middleware.Identity(deps.Verifier))
		log.Log.Info("Identity middleware enabled.")
	}

	postCache := deps.PostCache
	if postCache == nil {
		postCache = cache.NopPostCache{}
	}
	notifier := deps.Notifier
	if notifier == nil {
		notifier = notifications.NopNotifier{}
	}
	repos := deps.Repos

	handlers.NewUserHandler(repos.Users).RegisterUserRoutes(api)
	handlers.NewPostHandler(repos.Posts, postCache).RegisterPostRoutes(api)
	handlers.NewFeedHandler(feed.NewAssembler(repos.Posts, repos.Follows)).RegisterFeedRoutes(api)
	handlers.NewSearchHandler(repos.Posts, repos.Users).RegisterSearchRoutes(api)
	handlers.NewCommentHandler(repos.Comments, repos.Posts, postCache, notifier).RegisterCommentRoutes(api)
	handlers.NewLikeHandler(repos.Likes, repos.Posts, postCache, notifier).RegisterLikeRoutes(api)
	handlers.NewFollowHandler(repos.Follows, notifier).RegisterFollowRoutes(api)
	handlers.NewNotificationHandler(repos.Notifications).RegisterNotificationRoutes(api)

	log.Log.Info("All routes configured.")
}
