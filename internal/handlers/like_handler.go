package handlers

import (
	"net/http"

	"github.com/anonto42/nexa/backend/internal/cache"
	"github.com/anonto42/nexa/backend/internal/models"
	"github.com/anonto42/nexa/backend/internal/notifications"
	"github.com/anonto42/nexa/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

type LikeHandler struct {
	likeRepository repositories.LikeRepository
	postRepository repositories.PostRepository
	postCache      cache.PostCache
	notifier       notifications.Notifier
}

func NewLikeHandler(likeRepo repositories.LikeRepository, postRepo repositories.PostRepository, postCache cache.PostCache, notifier notifications.Notifier) *LikeHandler {
	return &LikeHandler{
		likeRepository: likeRepo,
		postRepository: postRepo,
		postCache:      postCache,
		notifier:       notifier,
	}
}

func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/like/create", h.LikePost)
	g.POST("/like/delete", h.UnlikePost)
}

// LikePost relies on the (user, post) unique index, so two identical
// concurrent requests produce one like and one 409.
func (h *LikeHandler) LikePost(c echo.Context) error {
	var req models.LikeRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}
	ctx := c.Request().Context()

	postAuthorID, err := h.postRepository.GetPostAuthorID(ctx, req.PostID)
	if err != nil {
		return repoError(err, errorMessages{notFound: "Post not found"})
	}

	like := &models.Like{
		UserID: req.UserID,
		PostID: req.PostID,
	}
	if err := h.likeRepository.CreateLike(ctx, like); err != nil {
		return repoError(err, errorMessages{
			conflict:   "Like already exists",
			invalidRef: "User or post not found",
		})
	}
	invalidatePost(c, h.postCache, req.PostID)

	postID := req.PostID
	h.notifier.Notify(ctx, notifications.Event{
		Type:        models.NotificationLike,
		RecipientID: postAuthorID,
		ActorID:     req.UserID,
		PostID:      &postID,
	})

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "like": like})
}

func (h *LikeHandler) UnlikePost(c echo.Context) error {
	var req models.LikeRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}

	if err := h.likeRepository.DeleteLike(c.Request().Context(), req.UserID, req.PostID); err != nil {
		return repoError(err, errorMessages{notFound: "Like does not exist"})
	}
	invalidatePost(c, h.postCache, req.PostID)

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
