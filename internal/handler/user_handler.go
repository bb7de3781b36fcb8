package handler

import (
	"errors"
	"net/http"

	"messagebox/internal/services"
	"messagebox/internal/transport/httpdto"
	mb_errors "messagebox/pkg/errors"

	"github.com/gin-gonic/gin"
)

// UserHandler handles account and authentication HTTP endpoints.
type UserHandler struct {
	users *services.UserService
	auth  *services.AuthService
}

// NewUserHandler creates a user handler.
func NewUserHandler(users *services.UserService, auth *services.AuthService) *UserHandler {
	return &UserHandler{users: users, auth: auth}
}

// Register handles POST /api/user/create/.
func (h *UserHandler) Register(c *gin.Context) {
	var req httpdto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}

	u, err := h.users.Register(c.Request.Context(), services.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		// A duplicate email is a validation failure on this endpoint,
		// not a conflict.
		if errors.Is(err, mb_errors.ErrAlreadyExists) {
			c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("user with this email already exists", "INVALID_INPUT"))
			return
		}
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, httpdto.NewSuccessResponse(httpdto.UserResponse{
		ID:    u.ID.String(),
		Email: u.Email,
		Name:  u.Name,
	}))
}

// Token handles POST /api/user/token/.
func (h *UserHandler) Token(c *gin.Context) {
	var req httpdto.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}

	token, err := h.auth.Token(c.Request.Context(), services.TokenInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		// Bad credentials are a 400 on the token endpoint; 401 is
		// reserved for requests carrying a missing or invalid token.
		if errors.Is(err, mb_errors.ErrUnauthorized) {
			c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("unable to authenticate with provided credentials", "INVALID_INPUT"))
			return
		}
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.TokenResponse{Token: token}))
}

// Profile handles GET /api/user/profile/.
func (h *UserHandler) Profile(c *gin.Context) {
	userID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}

	u, err := h.users.Profile(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.ProfileResponse{
		Name:  u.Name,
		Email: u.Email,
	}))
}

// UpdateProfile handles PATCH /api/user/profile/.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}

	var req httpdto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}

	u, err := h.users.UpdateProfile(c.Request.Context(), userID, services.UpdateProfileInput{
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.ProfileResponse{
		Name:  u.Name,
		Email: u.Email,
	}))
}

// DeleteProfile handles DELETE /api/user/profile/.
func (h *UserHandler) DeleteProfile(c *gin.Context) {
	userID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}

	if err := h.users.DeleteAccount(c.Request.Context(), userID); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
