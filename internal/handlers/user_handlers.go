package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/01moynul/marketpro-admin/internal/logging"
	"github.com/01moynul/marketpro-admin/internal/middleware"
	"github.com/01moynul/marketpro-admin/internal/models"
	"github.com/01moynul/marketpro-admin/internal/store"
	"github.com/gin-gonic/gin"
)

// RegisterInput is separate from models.User because we never accept an id
// or a hash from the caller.
type RegisterInput struct {
	Username string `json:"username" binding:"required,min=3,max=64"`
	Password string `json:"password" binding:"required,min=6"`
	Email    string `json:"email" binding:"required,email"`
}

type LoginInput struct {
	UsernameOrEmail string `json:"usernameOrEmail" binding:"required"`
	Password        string `json:"password" binding:"required"`
}

// Register handles POST /auth/register.
func (h *Handlers) Register(c *gin.Context) {
	// 1. --- Bind & Validate JSON ---
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		jsonError(c, http.StatusBadRequest, err.Error())
		return
	}

	// 2. --- Hash the Password ---
	var password models.Password
	if err := password.Set(input.Password); err != nil {
		jsonError(c, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	user := &models.User{
		Username:     strings.TrimSpace(input.Username),
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		PasswordHash: password.Hash,
	}

	// 3. --- Save ---
	if err := h.Store.CreateUser(c.Request.Context(), user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			jsonError(c, http.StatusConflict, "Username or email already registered")
			return
		}
		logging.FromContext(c.Request.Context()).Error("register user", "error", err)
		jsonError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	// The hash is tagged json:"-" and never leaves the server.
	c.JSON(http.StatusCreated, user)
}

// Login handles POST /auth/login and answers with the user and a fresh token.
func (h *Handlers) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		jsonError(c, http.StatusBadRequest, err.Error())
		return
	}

	ctx := c.Request.Context()
	user, err := h.Store.FindUserByLogin(ctx, strings.TrimSpace(input.UsernameOrEmail))
	if errors.Is(err, store.ErrNotFound) {
		jsonError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err != nil {
		logging.FromContext(ctx).Error("login lookup", "error", err)
		jsonError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	password := models.Password{Hash: user.PasswordHash}
	match, err := password.Matches(input.Password)
	if err != nil {
		logging.FromContext(ctx).Error("compare password", "user_id", user.ID, "error", err)
		jsonError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	if !match {
		jsonError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := h.Tokens.Generate(user.ID, user.Username)
	if err != nil {
		logging.FromContext(ctx).Error("issue token", "user_id", user.ID, "error", err)
		jsonError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user, "token": token})
}

// Me handles GET /auth/me.
func (h *Handlers) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		jsonError(c, http.StatusUnauthorized, "User ID not found")
		return
	}
	c.JSON(http.StatusOK, user)
}
