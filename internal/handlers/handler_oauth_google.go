package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/aqilnajmi/sales_commission_tracker/internal/core/domain"
	portssvc "github.com/aqilnajmi/sales_commission_tracker/internal/core/ports/services"
	"github.com/aqilnajmi/sales_commission_tracker/internal/dto"
	"github.com/aqilnajmi/sales_commission_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

// GoogleOAuthHandler handles Google OAuth related requests. Accounts are
// provisioned by admins, so Google sign-in only matches existing users by
// their email username; it never creates accounts.
type GoogleOAuthHandler struct {
	googleOAuthService portssvc.GoogleOAuthHandlerSvcFacade
	userService        portssvc.UserSvcFacade
	tokenService       portssvc.TokenSvcFacade
	activityService    portssvc.ActivitySvcFacade
}

// NewGoogleOAuthHandler creates a new instance of GoogleOAuthHandler.
func NewGoogleOAuthHandler(services *portssvc.ServiceContainer) *GoogleOAuthHandler {
	return &GoogleOAuthHandler{
		googleOAuthService: services.GoogleOAuth,
		userService:        services.User,
		tokenService:       services.Token,
		activityService:    services.Activity,
	}
}

// registerGoogleOAuthRoutes registers the Google OAuth routes.
func registerGoogleOAuthRoutes(rg *gin.Engine, services *portssvc.ServiceContainer) {
	h := NewGoogleOAuthHandler(services)

	google := rg.Group("/api/v1/auth/google")
	{
		google.GET("/login", h.LoginURL)
		google.POST("/callback", h.Callback)
	}
}

// LoginURL godoc
// @Summary Google login URL
// @Description Returns the Google consent page URL with a fresh CSRF state string.
// @Tags oauth
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 500 {object} ErrorResponse
// @Router /auth/google/login [get]
func (h *GoogleOAuthHandler) LoginURL(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	state, err := h.googleOAuthService.GenerateStateString(c.Request.Context())
	if err != nil {
		logger.Error("Failed to generate OAuth state string", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to start Google login"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"url":   h.googleOAuthService.GetGoogleLoginURL(c.Request.Context(), state),
		"state": state,
	})
}

// Callback godoc
// @Summary Google ID token sign-in
// @Description Validates a Google ID token and signs in the matching account. Unknown emails are rejected.
// @Tags oauth
// @Accept json
// @Produce json
// @Param callback body dto.GoogleCallbackRequest true "Google ID token"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/google/callback [post]
func (h *GoogleOAuthHandler) Callback(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	var req dto.GoogleCallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	payload, err := h.googleOAuthService.ValidateGoogleIDToken(ctx, req.IDToken)
	if err != nil {
		logger.Warn("Google ID token validation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid Google ID token"})
		return
	}

	email, _ := payload.Claims["email"].(string)
	emailVerified, _ := payload.Claims["email_verified"].(bool)
	if email == "" || !emailVerified {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Google account email is missing or unverified"})
		return
	}

	// Usernames are stored lowercase; the email local form is the username.
	user, err := h.userService.GetUserByUsername(ctx, strings.ToLower(email))
	if err != nil {
		logger.Warn("Google sign-in for unprovisioned email", slog.String("email", email))
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "No account exists for this Google email"})
		return
	}

	accessToken, _, err := h.tokenService.GenerateAccessToken(ctx, user)
	if err != nil {
		logger.Error("Failed to generate access token for Google sign-in", slog.String("error", err.Error()), slog.String("user_id", user.UserID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate token"})
		return
	}

	h.activityService.Record(ctx, portssvc.ActivityRecord{
		UserID:     user.UserID,
		Action:     domain.ActionLogin,
		TargetType: domain.TargetUser,
		TargetID:   user.UserID,
		TargetName: user.Name,
		IPAddress:  c.ClientIP(),
	})

	c.JSON(http.StatusOK, dto.LoginResponse{Token: accessToken, User: dto.ToUserResponse(user)})
}
