package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/ErlanBelekov/league-manager/internal/domain"
	"github.com/ErlanBelekov/league-manager/internal/transport/http/middleware"
	"github.com/ErlanBelekov/league-manager/internal/usecase"
	"github.com/gin-gonic/gin"
)

type userUsecaser interface {
	List(ctx context.Context) ([]*domain.User, error)
	Get(ctx context.Context, id int64) (*domain.User, error)
	Create(ctx context.Context, who domain.Identity, c domain.UserCandidate) (*domain.User, error)
	Update(ctx context.Context, who domain.Identity, id int64, in usecase.UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, who domain.Identity, id int64) error
}

type UserHandler struct {
	users  userUsecaser
	logger *slog.Logger
}

func NewUserHandler(users userUsecaser, logger *slog.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger.With("component", "user_handler")}
}

type updateUserRequest struct {
	FirstName *string      `json:"first_name"`
	LastName  *string      `json:"last_name"`
	Email     *string      `json:"email"`
	Phone     *string      `json:"phone"`
	Password  *string      `json:"password"`
	Role      *domain.Role `json:"role"`
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, "list users", err)
		return
	}
	c.JSON(http.StatusOK, mapSlice(users, toUserResponse))
}

func (h *UserHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	user, err := h.users.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, "get user", err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

// POST /users (admin)
func (h *UserHandler) Create(c *gin.Context) {
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}
	user, err := h.users.Create(c.Request.Context(), middleware.IdentityFrom(c), req.candidate())
	if err != nil {
		writeError(c, h.logger, "create user", err)
		return
	}
	c.JSON(http.StatusCreated, toUserResponse(user))
}

func (h *UserHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}
	user, err := h.users.Update(c.Request.Context(), middleware.IdentityFrom(c), id, usecase.UpdateUserInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Password:  req.Password,
		Role:      req.Role,
	})
	if err != nil {
		writeError(c, h.logger, "update user", err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.users.Delete(c.Request.Context(), middleware.IdentityFrom(c), id); err != nil {
		writeError(c, h.logger, "delete user", err)
		return
	}
	c.Status(http.StatusNoContent)
}
