package handlers

import (
	"net/http"

	"github.com/anonto42/nexa/backend/internal/models"
	"github.com/anonto42/nexa/backend/internal/notifications"
	"github.com/anonto42/nexa/backend/internal/repositories"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// followListCacheControl lets a CDN serve follower lists for 30 minutes and
// stale copies for a day while revalidating.
const followListCacheControl = "public, s-maxage=1800, stale-while-revalidate=86400"

// FollowHandler handles follow/unfollow HTTP requests
type FollowHandler struct {
	followRepository repositories.FollowRepository
	notifier         notifications.Notifier
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followRepo repositories.FollowRepository, notifier notifications.Notifier) *FollowHandler {
	return &FollowHandler{
		followRepository: followRepo,
		notifier:         notifier,
	}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/follow/create", h.FollowUser)
	g.POST("/follow/delete", h.UnfollowUser)
	g.GET("/follow/check", h.CheckFollow)
	g.POST("/followers/get", h.GetFollowers)
	g.POST("/following/get", h.GetFollowing)
}

// FollowUser follows a user
func (h *FollowHandler) FollowUser(c echo.Context) error {
	var req models.FollowRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}
	if req.FollowerID == req.FollowingID {
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot follow yourself")
	}

	follow := &models.Follow{
		FollowerID:  req.FollowerID,
		FollowingID: req.FollowingID,
	}
	if err := h.followRepository.CreateFollow(c.Request().Context(), follow); err != nil {
		return repoError(err, errorMessages{
			conflict:   "Already following this user",
			invalidRef: "User not found",
		})
	}

	h.notifier.Notify(c.Request().Context(), notifications.Event{
		Type:        models.NotificationFollow,
		RecipientID: req.FollowingID,
		ActorID:     req.FollowerID,
	})

	return c.JSON(http.StatusCreated, echo.Map{"message": "Follow successful", "follow": follow})
}

// UnfollowUser unfollows a user
func (h *FollowHandler) UnfollowUser(c echo.Context) error {
	var req models.FollowRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}

	follow, err := h.followRepository.DeleteFollow(c.Request().Context(), req.FollowerID, req.FollowingID)
	if err != nil {
		return repoError(err, errorMessages{notFound: "Follow relationship not found"})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Unfollow successful", "follow": follow})
}

func (h *FollowHandler) CheckFollow(c echo.Context) error {
	followerID, err := uuid.Parse(c.QueryParam("followerId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "followerId is invalid")
	}
	followingID, err := uuid.Parse(c.QueryParam("followingId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "followingId is invalid")
	}

	isFollowing, err := h.followRepository.IsFollowing(c.Request().Context(), followerID, followingID)
	if err != nil {
		return internalError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"isFollowing": isFollowing})
}

func (h *FollowHandler) GetFollowers(c echo.Context) error {
	var req models.UserIDRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}

	followers, err := h.followRepository.GetFollowers(c.Request().Context(), req.UserID)
	if err != nil {
		return internalError(err)
	}
	if len(followers) == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "No followers found")
	}

	c.Response().Header().Set(echo.HeaderCacheControl, followListCacheControl)
	return c.JSON(http.StatusOK, followers)
}

func (h *FollowHandler) GetFollowing(c echo.Context) error {
	var req models.UserIDRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}

	following, err := h.followRepository.GetFollowing(c.Request().Context(), req.UserID)
	if err != nil {
		return internalError(err)
	}
	if len(following) == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "Not following anyone")
	}

	c.Response().Header().Set(echo.HeaderCacheControl, followListCacheControl)
	return c.JSON(http.StatusOK, following)
}
