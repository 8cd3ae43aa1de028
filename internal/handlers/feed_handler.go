package handlers

import (
	"context"
	"net/http"

	"github.com/anonto42/nexa/backend/internal/feed"
	"github.com/anonto42/nexa/backend/internal/middleware"
	"github.com/anonto42/nexa/backend/internal/models"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type FeedAssembler interface {
	Assemble(ctx context.Context, viewer uuid.UUID, page feed.Page) ([]models.Post, error)
}

type FeedHandler struct {
	assembler FeedAssembler
}

func NewFeedHandler(assembler FeedAssembler) *FeedHandler {
	return &FeedHandler{assembler: assembler}
}

func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/posts/get", h.GetFeed)
}

// GetFeed serves ?skip=&limit=&userId=. Without userId the authenticated
// viewer is used, and without either the feed is not personalised.
func (h *FeedHandler) GetFeed(c echo.Context) error {
	viewer := uuid.Nil
	if raw := c.QueryParam("userId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid userId")
		}
		viewer = id
	} else if id, ok := middleware.ViewerID(c); ok {
		viewer = id
	}

	page := feed.ParsePage(c.QueryParam("skip"), c.QueryParam("limit"))
	posts, err := h.assembler.Assemble(c.Request().Context(), viewer, page)
	if err != nil {
		return internalError(err)
	}
	return c.JSON(http.StatusOK, models.ToPostViews(posts))
}
