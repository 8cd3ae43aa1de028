package handlers

import (
	"net/http"
	"strings"

	"github.com/anonto42/nexa/backend/internal/models"
	"github.com/anonto42/nexa/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

const searchLimit = 20

type SearchHandler struct {
	postRepository repositories.PostRepository
	userRepository repositories.UserRepository
}

func NewSearchHandler(postRepo repositories.PostRepository, userRepo repositories.UserRepository) *SearchHandler {
	return &SearchHandler{
		postRepository: postRepo,
		userRepository: userRepo,
	}
}

func (h *SearchHandler) RegisterSearchRoutes(g *echo.Group) {
	g.GET("/search/posts", h.SearchPosts)
	g.GET("/search/users", h.SearchUsers)
}

// SearchPosts matches content or author username; an empty query matches
// nothing.
func (h *SearchHandler) SearchPosts(c echo.Context) error {
	query := strings.TrimSpace(c.QueryParam("searchQuery"))
	if query == "" {
		return c.JSON(http.StatusOK, []models.PostView{})
	}

	posts, err := h.postRepository.SearchPosts(c.Request().Context(), query, searchLimit)
	if err != nil {
		return internalError(err)
	}
	return c.JSON(http.StatusOK, models.ToPostViews(posts))
}

func (h *SearchHandler) SearchUsers(c echo.Context) error {
	query := strings.TrimSpace(c.QueryParam("searchQuery"))
	if query == "" {
		return c.JSON(http.StatusOK, []models.User{})
	}

	users, err := h.userRepository.SearchUsers(c.Request().Context(), query, searchLimit)
	if err != nil {
		return internalError(err)
	}
	if users == nil {
		users = []models.User{}
	}
	return c.JSON(http.StatusOK, users)
}
