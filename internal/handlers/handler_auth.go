package handlers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ulule/limiter/v3"
	limitergin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/aqilnajmi/sales_commission_tracker/internal/core/domain"
	portssvc "github.com/aqilnajmi/sales_commission_tracker/internal/core/ports/services"
	"github.com/aqilnajmi/sales_commission_tracker/internal/dto"
	"github.com/aqilnajmi/sales_commission_tracker/internal/middleware"
	"github.com/aqilnajmi/sales_commission_tracker/internal/platform/config"
	"github.com/aqilnajmi/sales_commission_tracker/internal/utils"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles authentication related requests.
type AuthHandler struct {
	userService     portssvc.UserSvcFacade
	tokenService    portssvc.TokenSvcFacade
	activityService portssvc.ActivitySvcFacade
	cfg             *config.Config
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(services *portssvc.ServiceContainer, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		userService:     services.User,
		tokenService:    services.Token,
		activityService: services.Activity,
		cfg:             cfg,
	}
}

// registerAuthRoutes sets up the routes for authentication.
func registerAuthRoutes(rg *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := NewAuthHandler(services, cfg)

	// Define rate limit: 5 requests per minute
	rate, _ := limiter.NewRateFromFormatted("5-M")
	store := memory.NewStore()
	ipLimiter := limiter.New(store, rate)
	limitMiddleware := limitergin.NewMiddleware(ipLimiter)

	// Refresh gets a looser limit; rotation happens on every page load in
	// some clients.
	refreshRate, _ := limiter.NewRateFromFormatted("30-M")
	refreshLimiter := limiter.New(memory.NewStore(), refreshRate)

	auth := rg.Group("/api/v1/auth")
	{
		auth.POST("/login", limitMiddleware, h.Login) // Apply rate limiting middleware here
		auth.POST("/refresh", middleware.RateLimit(refreshLimiter), h.Refresh)
		auth.POST("/logout", h.Logout)
		auth.GET("/me", middleware.AuthMiddleware(cfg.JWTSecret), h.Me)
	}
}

// The refresh token travels as "<userID>.<secret>" so the refresh endpoint
// can find the stored hash without an extra identifier in the request.
func composeRefreshToken(userID, secret string) string {
	return userID + "." + secret
}

func splitRefreshToken(composite string) (userID, secret string, ok bool) {
	userID, secret, ok = strings.Cut(composite, ".")
	if userID == "" || secret == "" {
		return "", "", false
	}
	return userID, secret, ok
}

func (h *AuthHandler) setRefreshCookie(c *gin.Context, composite string, expiry time.Time) {
	maxAge := int(time.Until(expiry).Seconds())
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(h.cfg.RefreshTokenCookieName, composite, maxAge, h.cfg.RefreshTokenCookiePath, "", h.cfg.IsProduction, true)
}

func (h *AuthHandler) clearRefreshCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(h.cfg.RefreshTokenCookieName, "", -1, h.cfg.RefreshTokenCookiePath, "", h.cfg.IsProduction, true)
}

// refreshTokenFromRequest prefers the HTTPOnly cookie and falls back to the
// JSON body for clients that cannot hold cookies.
func (h *AuthHandler) refreshTokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie(h.cfg.RefreshTokenCookieName); err == nil && cookie != "" {
		return cookie
	}
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err == nil {
		return req.RefreshToken
	}
	return ""
}

// issueTokens generates the access and refresh token pair, persists the
// refresh token hash and sets the cookie.
func (h *AuthHandler) issueTokens(c *gin.Context, user *domain.User) (accessToken, composite string, err error) {
	ctx := c.Request.Context()

	accessToken, _, err = h.tokenService.GenerateAccessToken(ctx, user)
	if err != nil {
		return "", "", err
	}

	rawRefresh, refreshExpiry, err := h.tokenService.GenerateRefreshToken(ctx, user)
	if err != nil {
		return "", "", err
	}
	if err := h.userService.UpdateRefreshToken(ctx, user.UserID, utils.HashRefreshToken(rawRefresh), refreshExpiry); err != nil {
		return "", "", err
	}

	composite = composeRefreshToken(user.UserID, rawRefresh)
	h.setRefreshCookie(c, composite, refreshExpiry)
	return accessToken, composite, nil
}

// Login godoc
// @Summary User login
// @Description Authenticates a user and returns a JWT access token plus a refresh token.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	user, err := h.userService.AuthenticateUser(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid username or password"})
		return
	}

	accessToken, composite, err := h.issueTokens(c, user)
	if err != nil {
		logger.Error("Failed to issue tokens on login", slog.String("error", err.Error()), slog.String("user_id", user.UserID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate token"})
		return
	}

	h.activityService.Record(c.Request.Context(), portssvc.ActivityRecord{
		UserID:     user.UserID,
		Action:     domain.ActionLogin,
		TargetType: domain.TargetUser,
		TargetID:   user.UserID,
		TargetName: user.Name,
		IPAddress:  c.ClientIP(),
	})

	c.JSON(http.StatusOK, dto.LoginResponse{
		Token:        accessToken,
		RefreshToken: composite,
		User:         dto.ToUserResponse(user),
	})
}

// Refresh godoc
// @Summary Refresh access token
// @Description Exchanges a valid refresh token (cookie or body) for a new token pair. The old refresh token is rotated out.
// @Tags auth
// @Accept json
// @Produce json
// @Param refresh body dto.RefreshTokenRequest false "Refresh token when not sent as a cookie"
// @Success 200 {object} dto.RefreshTokenResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	composite := h.refreshTokenFromRequest(c)
	userID, secret, ok := splitRefreshToken(composite)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Refresh token missing or malformed"})
		return
	}

	user, err := h.tokenService.ValidateAndParseRefreshToken(c.Request.Context(), userID, secret)
	if err != nil {
		h.clearRefreshCookie(c)
		respondError(c, err, "Failed to validate refresh token")
		return
	}

	accessToken, newComposite, err := h.issueTokens(c, user)
	if err != nil {
		logger.Error("Failed to rotate tokens on refresh", slog.String("error", err.Error()), slog.String("user_id", user.UserID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, dto.RefreshTokenResponse{Token: accessToken, RefreshToken: newComposite})
}

// Logout godoc
// @Summary Log out
// @Description Invalidates the stored refresh token and clears the cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 401 {object} ErrorResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	composite := h.refreshTokenFromRequest(c)
	userID, secret, ok := splitRefreshToken(composite)
	if !ok {
		h.clearRefreshCookie(c)
		c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
		return
	}

	user, err := h.tokenService.ValidateAndParseRefreshToken(c.Request.Context(), userID, secret)
	if err != nil {
		// Nothing server-side to revoke for an invalid token.
		h.clearRefreshCookie(c)
		c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
		return
	}

	if err := h.userService.ClearRefreshToken(c.Request.Context(), user.UserID); err != nil {
		logger.Error("Failed to clear refresh token on logout", slog.String("error", err.Error()), slog.String("user_id", user.UserID))
	}
	h.clearRefreshCookie(c)

	h.activityService.Record(c.Request.Context(), portssvc.ActivityRecord{
		UserID:     user.UserID,
		Action:     domain.ActionLogout,
		TargetType: domain.TargetUser,
		TargetID:   user.UserID,
		TargetName: user.Name,
		IPAddress:  c.ClientIP(),
	})

	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Me godoc
// @Summary Current user
// @Description Returns the account behind the presented access token.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve user")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}
