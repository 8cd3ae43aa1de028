package handlers

import (
	"net/http"

	"github.com/anonto42/nexa/backend/internal/cache"
	"github.com/anonto42/nexa/backend/internal/models"
	"github.com/anonto42/nexa/backend/internal/notifications"
	"github.com/anonto42/nexa/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

type CommentHandler struct {
	commentRepository repositories.CommentRepository
	postRepository    repositories.PostRepository
	postCache         cache.PostCache
	notifier          notifications.Notifier
}

func NewCommentHandler(commentRepo repositories.CommentRepository, postRepo repositories.PostRepository, postCache cache.PostCache, notifier notifications.Notifier) *CommentHandler {
	return &CommentHandler{
		commentRepository: commentRepo,
		postRepository:    postRepo,
		postCache:         postCache,
		notifier:          notifier,
	}
}

func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/comments/create", h.CreateComment)
}

func (h *CommentHandler) CreateComment(c echo.Context) error {
	var req models.CreateCommentRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}
	ctx := c.Request().Context()

	postAuthorID, err := h.postRepository.GetPostAuthorID(ctx, req.PostID)
	if err != nil {
		return repoError(err, errorMessages{notFound: "Post not found"})
	}

	comment := &models.Comment{
		Content:  req.Content,
		PostID:   req.PostID,
		AuthorID: req.UserID,
	}
	if err := h.commentRepository.CreateComment(ctx, comment); err != nil {
		return repoError(err, errorMessages{invalidRef: "User or post not found"})
	}
	invalidatePost(c, h.postCache, req.PostID)

	postID := req.PostID
	h.notifier.Notify(ctx, notifications.Event{
		Type:        models.NotificationComment,
		RecipientID: postAuthorID,
		ActorID:     req.UserID,
		PostID:      &postID,
	})

	return c.JSON(http.StatusCreated, echo.Map{"message": "Comment created successfully", "comment": comment.ToView()})
}
