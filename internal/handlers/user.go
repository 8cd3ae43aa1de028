package handlers

import (
	"net/http"

	"github.com/anonto42/nexa/backend/internal/models"
	"github.com/anonto42/nexa/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

var userErrors = errorMessages{
	notFound: "User not found",
	conflict: "Username or email already exists",
}

type UserHandler struct {
	userRepository repositories.UserRepository
}

func NewUserHandler(userRepo repositories.UserRepository) *UserHandler {
	return &UserHandler{userRepository: userRepo}
}

func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.POST("/users/create", h.CreateUser)
	g.POST("/users/get", h.GetUser)
	g.POST("/users/update", h.UpdateUser)
}

// CreateUser accepts an optional id so that the identity provider's user id
// can be reused.
func (h *UserHandler) CreateUser(c echo.Context) error {
	var req models.CreateUserRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Bio:      req.Bio,
		Avatar:   req.Avatar,
		Location: req.Location,
	}
	if req.ID != nil {
		user.ID = *req.ID
	}

	if err := h.userRepository.CreateUser(c.Request().Context(), user); err != nil {
		return repoError(err, userErrors)
	}

	return c.JSON(http.StatusCreated, echo.Map{"message": "User created successfully", "user": user})
}

func (h *UserHandler) GetUser(c echo.Context) error {
	var req models.GetUserRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}

	user, err := h.userRepository.GetUserByID(c.Request().Context(), req.UserID)
	if err != nil {
		return repoError(err, userErrors)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *UserHandler) UpdateUser(c echo.Context) error {
	var req models.UpdateUserRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}

	user := &models.User{
		ID:       req.ID,
		Username: req.Username,
		Email:    req.Email,
		Bio:      req.Bio,
		Avatar:   req.Avatar,
		Location: req.Location,
	}
	if err := h.userRepository.UpdateUser(c.Request().Context(), user); err != nil {
		return repoError(err, userErrors)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "User updated successfully", "user": user})
}
