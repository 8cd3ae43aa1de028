package handlers

import (
	"net/http"

	"github.com/anonto42/nexa/backend/internal/cache"
	"github.com/anonto42/nexa/backend/internal/models"
	"github.com/anonto42/nexa/backend/internal/repositories"
	"github.com/anonto42/nexa/backend/pkg/log"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type PostHandler struct {
	postRepository repositories.PostRepository
	postCache      cache.PostCache
}

func NewPostHandler(postRepo repositories.PostRepository, postCache cache.PostCache) *PostHandler {
	return &PostHandler{
		postRepository: postRepo,
		postCache:      postCache,
	}
}

func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts/create", h.CreatePost)
	g.GET("/posts/get/:id", h.GetPost)
}

func (h *PostHandler) CreatePost(c echo.Context) error {
	var req models.CreatePostRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}

	post := &models.Post{
		Content:  req.BodyText,
		ImageURL: req.Image,
		AuthorID: req.AuthorID,
	}
	if err := h.postRepository.CreatePost(c.Request().Context(), post); err != nil {
		return repoError(err, errorMessages{invalidRef: "Author not found"})
	}

	return c.JSON(http.StatusCreated, echo.Map{"message": "Post created successfully", "post": post})
}

// GetPost reads through the post cache. Cache failures only cost a database
// round trip.
func (h *PostHandler) GetPost(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post id")
	}
	ctx := c.Request().Context()

	cached, err := h.postCache.GetPost(ctx, id)
	if err != nil {
		log.Log.WithError(err).WithField("post", id).Warn("post cache read failed")
	}
	if cached != nil {
		return c.JSON(http.StatusOK, cached)
	}

	post, err := h.postRepository.GetPostByID(ctx, id)
	if err != nil {
		return repoError(err, errorMessages{notFound: "Post not found"})
	}

	view := post.ToView()
	if err := h.postCache.SetPost(ctx, &view); err != nil {
		log.Log.WithError(err).WithField("post", id).Warn("post cache write failed")
	}
	return c.JSON(http.StatusOK, view)
}

// invalidatePost drops a post whose comments or likes just changed.
func invalidatePost(c echo.Context, postCache cache.PostCache, id uuid.UUID) {
	if err := postCache.InvalidatePost(c.Request().Context(), id); err != nil {
		log.Log.WithError(err).WithField("post", id).Warn("post cache invalidation failed")
	}
}
