package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/team-collab-api/internal/auth"
	"github.com/yukikurage/team-collab-api/internal/constants"
	"github.com/yukikurage/team-collab-api/internal/dto"
	apierrors "github.com/yukikurage/team-collab-api/internal/errors"
	"github.com/yukikurage/team-collab-api/internal/logging"
	"github.com/yukikurage/team-collab-api/internal/services"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService  *services.AuthService
	tokens       *auth.TokenManager
	log          logging.Logger
	secureCookie bool
}

// NewAuthHandler creates a new AuthHandler. secureCookie marks the token
// cookie Secure and should be set in production.
func NewAuthHandler(authService *services.AuthService, tokens *auth.TokenManager, log logging.Logger, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		tokens:       tokens,
		log:          log,
		secureCookie: secureCookie,
	}
}

// Register creates a new user and signs them in.
func (h *AuthHandler) Register(c *gin.Context) {
	type RegisterRequest struct {
		Username string `json:"username" binding:"required,min=3,max=50"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
		FullName string `json:"full_name" binding:"max=100"`
	}

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, invalidBodyMessage)
		return
	}

	user, err := h.authService.Register(services.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
	})
	if err != nil {
		h.respondAuthError(c, err)
		return
	}

	if err := h.setTokenCookie(c, user.ID); err != nil {
		respondInternalError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"user":    dto.ToUserSummaryDTO(*user),
	})
}

// Login authenticates a user and sets the token cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, invalidBodyMessage)
		return
	}

	user, err := h.authService.Login(services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.respondAuthError(c, err)
		return
	}

	if err := h.setTokenCookie(c, user.ID); err != nil {
		respondInternalError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged in successfully",
		"user":    dto.ToUserDTO(*user),
	})
}

// Logout expires the token cookie. It succeeds whether or not one was set.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(constants.TokenCookieName, "", -1, "/", "", h.secureCookie, true)

	respondMessage(c, "Logged out successfully")
}

// GetCurrentUser returns the authenticated user.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}

	user, err := h.authService.GetUser(userID)
	if err != nil {
		h.respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": dto.ToUserSummaryDTO(*user)})
}

func (h *AuthHandler) setTokenCookie(c *gin.Context, userID uint64) error {
	token, err := h.tokens.Issue(userID)
	if err != nil {
		return err
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(constants.TokenCookieName, token, int(h.tokens.TTL().Seconds()), "/", "", h.secureCookie, true)
	return nil
}

func (h *AuthHandler) respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPasswordTooShort):
		apierrors.BadRequest(c, fmt.Sprintf("Password must be at least %d characters", constants.MinPasswordLength))
	case errors.Is(err, services.ErrUsernameRequired),
		errors.Is(err, services.ErrEmailRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrUserExists):
		apierrors.AlreadyExists(c, "User already exists")
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.InvalidCredentials(c)
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, "User not found")
	default:
		respondInternalError(c, h.log, err)
	}
}
