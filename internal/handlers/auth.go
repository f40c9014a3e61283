package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/keynertyc/Fullstack-Test-01/internal/dto"
	apierrors "github.com/keynertyc/Fullstack-Test-01/internal/errors"
	"github.com/keynertyc/Fullstack-Test-01/internal/middleware"
	"github.com/keynertyc/Fullstack-Test-01/internal/services"
	"github.com/keynertyc/Fullstack-Test-01/pkg/logger"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register creates a new user and returns it with a bearer token.
func (h *AuthHandler) Register(c *gin.Context) {
	type RegisterRequest struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
		Name     string `json:"name" binding:"required,min=2,max=255"`
	}

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindingError(c, err)
		return
	}

	user, token, err := h.authService.Register(services.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		h.respondAuthError(c, err)
		return
	}

	respondCreated(c, dto.AuthResponse{User: dto.ToUserDTO(*user), Token: token}, "User registered successfully")
}

// Login authenticates a user and returns a bearer token.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindingError(c, err)
		return
	}

	user, token, err := h.authService.Login(services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.respondAuthError(c, err)
		return
	}

	respondOK(c, dto.AuthResponse{User: dto.ToUserDTO(*user), Token: token}, "Login successful")
}

// GetProfile returns the authenticated user.
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	user, err := h.authService.GetUser(userID)
	if err != nil {
		h.respondAuthError(c, err)
		return
	}

	respondOK(c, dto.ToUserDTO(*user), "")
}

func (h *AuthHandler) respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPasswordTooShort),
		errors.Is(err, services.ErrNameTooShort):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrEmailTaken):
		apierrors.Conflict(c, "Email already registered")
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.Unauthorized(c, "Invalid email or password")
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, "User not found")
	default:
		log := logger.Get()
		log.Error().Err(err).Msg("auth handler failure")
		apierrors.InternalError(c, "")
	}
}
