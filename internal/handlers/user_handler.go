package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"urbanpantry/internal/auth"
	"urbanpantry/internal/models"
	"urbanpantry/internal/repository"
)

type UserHandler struct {
	users  repository.UserStore
	tokens *auth.Manager
}

func NewUserHandler(users repository.UserStore, tokens *auth.Manager) *UserHandler {
	return &UserHandler{users: users, tokens: tokens}
}

type registerRequest struct {
	FullName string `json:"fullName" binding:"required"`
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// POST /api/users/register
func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindingErrorMessage(err)})
		return
	}

	user := models.User{
		FullName: req.FullName,
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     models.RoleUser,
	}
	if err := h.users.Create(c.Request.Context(), &user); err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		slog.Error("user registration failed", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not register user"})
		return
	}

	token, err := h.tokens.Issue(user.ID.Hex(), user.Role)
	if err != nil {
		slog.Error("token issue failed", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not register user"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": token, "user": user})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// POST /api/users/login
func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindingErrorMessage(err)})
		return
	}

	user, err := h.users.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid credentials"})
			return
		}
		slog.Error("login lookup failed", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not log in"})
		return
	}
	if !user.MatchPassword(req.Password) {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid credentials"})
		return
	}

	token, err := h.tokens.Issue(user.ID.Hex(), user.Role)
	if err != nil {
		slog.Error("token issue failed", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not log in"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}
