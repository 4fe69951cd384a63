package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/task-analytics-api/internal/dto"
	apierrors "github.com/yukikurage/task-analytics-api/internal/errors"
	"github.com/yukikurage/task-analytics-api/internal/logging"
	"github.com/yukikurage/task-analytics-api/internal/models"
	"github.com/yukikurage/task-analytics-api/internal/services"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

type createUserRequest struct {
	Name     string          `json:"name" binding:"required,min=4,max=20"`
	Email    string          `json:"email" binding:"required,email"`
	Role     models.UserRole `json:"role" binding:"omitempty,oneof=MEMBER ADMIN"`
	Password string          `json:"password" binding:"required,min=8,max=20"`
}

// CreateUser registers a new user
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid request body", err.Error())
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), services.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Role:     req.Role,
		Password: req.Password,
	})
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserDTO(*user))
}

// ListUsers returns users with their completed task stats. Role, name and
// email query parameters narrow the result.
func (h *UserHandler) ListUsers(c *gin.Context) {
	input := services.ListUsersInput{
		Name:  c.Query("name"),
		Email: c.Query("email"),
	}

	if raw := c.Query("role"); raw != "" {
		role := models.UserRole(strings.ToUpper(raw))
		if role != models.RoleMember && role != models.RoleAdmin {
			apierrors.BadRequest(c, services.ErrInvalidRole.Error())
			return
		}
		input.Role = &role
	}

	users, err := h.userService.ListUsers(c.Request.Context(), input)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

// GetUser returns a user by ID
func (h *UserHandler) GetUser(c *gin.Context) {
	userID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), userID)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// DeleteUser deletes a user and unassigns it from every task
func (h *UserHandler) DeleteUser(c *gin.Context) {
	userID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), userID); err != nil {
		respondUserError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func respondUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, "User not found")
	case errors.Is(err, services.ErrEmailTaken):
		apierrors.AlreadyExists(c, err.Error())
	case errors.Is(err, services.ErrInvalidName),
		errors.Is(err, services.ErrEmailRequired),
		errors.Is(err, services.ErrInvalidRole),
		errors.Is(err, services.ErrInvalidPassword):
		apierrors.BadRequest(c, err.Error())
	default:
		logging.Logger.WithError(err).Error("User operation failed")
		apierrors.InternalError(c, "")
	}
}
