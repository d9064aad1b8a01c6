package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aqilnajmi/sales_commission_tracker/internal/core/domain"
	portssvc "github.com/aqilnajmi/sales_commission_tracker/internal/core/ports/services"
	"github.com/aqilnajmi/sales_commission_tracker/internal/dto"
	"github.com/aqilnajmi/sales_commission_tracker/internal/middleware"

	"github.com/gin-gonic/gin"
)

// userHandler handles HTTP requests related to users.
type userHandler struct {
	userService     portssvc.UserSvcFacade
	activityService portssvc.ActivitySvcFacade
}

// newUserHandler creates a new userHandler.
func newUserHandler(us portssvc.UserSvcFacade, as portssvc.ActivitySvcFacade) *userHandler {
	return &userHandler{
		userService:     us,
		activityService: as,
	}
}

// registerUserRoutes registers all user-related routes.
func registerUserRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade, activityService portssvc.ActivitySvcFacade) {
	h := newUserHandler(userService, activityService)

	manage := middleware.RequireCapability(domain.CapUserManage)

	users := rg.Group("/users")
	{
		users.GET("", manage, h.listUsers)
		users.POST("", manage, h.createUser)
		users.GET("/salespersons", manage, h.listSalesPersons)
		users.GET("/:id", h.getUser) // Own or admin, checked inline
		users.PUT("/:id", manage, h.updateUser)
		users.DELETE("/:id", manage, h.deleteUser)
		users.GET("/:id/impact", manage, h.getUserImpact)
	}
}

// createUser godoc
// @Summary Create a new user
// @Description Creates a new admin or sales person account. The initial commission rate seeds the rate history.
// @Tags users
// @Accept  json
// @Produce  json
// @Param   user body dto.CreateUserRequest true "User details"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Username already taken"
// @Failure 500 {object} map[string]string "Failed to create user"
// @Security BearerAuth
// @Router /users [post]
func (h *userHandler) createUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for create user request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("creator_user_id", creatorUserID))
	logger.Info("Received request to create user", slog.String("user_name", req.Name))

	createdUser, err := h.userService.CreateUser(c.Request.Context(), req, creatorUserID)
	if err != nil {
		logger.Error("Failed to create user in service", slog.String("error", err.Error()))
		respondError(c, err, "Failed to create user")
		return
	}

	h.activityService.Record(c.Request.Context(), portssvc.ActivityRecord{
		UserID:     creatorUserID,
		Action:     domain.ActionCreateUser,
		TargetType: domain.TargetUser,
		TargetID:   createdUser.UserID,
		TargetName: createdUser.Name,
		Details:    map[string]any{"role": createdUser.Role, "commissionRate": createdUser.CommissionRate},
		IPAddress:  c.ClientIP(),
	})

	logger.Info("User created successfully", slog.String("new_user_id", createdUser.UserID))
	c.JSON(http.StatusCreated, dto.ToUserResponse(createdUser))
}

// getUser godoc
// @Summary Get a user by ID
// @Description Retrieves details for a specific user. Sales persons can only read their own account.
// @Tags users
// @Produce  json
// @Param   id path string true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "User not found"
// @Failure 500 {object} map[string]string "Failed to retrieve user"
// @Security BearerAuth
// @Router /users/{id} [get]
func (h *userHandler) getUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID := c.Param("id")

	loggedInUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Logged-in user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	role, _ := middleware.GetUserRoleFromContext(c)
	if loggedInUserID != userID && !domain.RoleAllows(role, domain.CapUserManage) {
		logger.Warn("User forbidden to access another user's details", slog.String("accessor_id", loggedInUserID), slog.String("target_id", userID))
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}

	logger = logger.With(slog.String("target_user_id", userID))

	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve user")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// listUsers godoc
// @Summary List users
// @Description Retrieves a filtered, paginated list of users.
// @Tags users
// @Produce  json
// @Param   search query string false "Match against name or username"
// @Param   role query string false "Filter by role" Enums(admin, sales_person)
// @Param   limit query int false "Limit number of results" default(20)
// @Param   offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.ListUsersResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to list users"
// @Security BearerAuth
// @Router /users [get]
func (h *userHandler) listUsers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListUsersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListUsers", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	users, total, err := h.userService.ListUsers(c.Request.Context(), params)
	if err != nil {
		logger.Error("Failed to list users from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list users"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListUserResponse(users, total, params.Limit, params.Offset))
}

// listSalesPersons godoc
// @Summary List sales persons
// @Description Retrieves every sales person account, for campaign owner pickers.
// @Tags users
// @Produce  json
// @Success 200 {array} dto.UserResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to list sales persons"
// @Security BearerAuth
// @Router /users/salespersons [get]
func (h *userHandler) listSalesPersons(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	salesPersons, err := h.userService.ListSalesPersons(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list sales persons from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list sales persons"})
		return
	}

	out := make([]dto.UserResponse, 0, len(salesPersons))
	for i := range salesPersons {
		out = append(out, dto.ToUserResponse(&salesPersons[i]))
	}
	c.JSON(http.StatusOK, out)
}

// updateUser godoc
// @Summary Update a user
// @Description Updates an existing user. A commission rate change is appended to the rate history; existing orders keep their frozen snapshot.
// @Tags users
// @Accept  json
// @Produce  json
// @Param   id path string true "User ID"
// @Param   user body dto.UpdateUserRequest true "Fields to update"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "User not found"
// @Failure 409 {object} map[string]string "Username already taken"
// @Failure 500 {object} map[string]string "Failed to update user"
// @Security BearerAuth
// @Router /users/{id} [put]
func (h *userHandler) updateUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID := c.Param("id")

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for update user request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("target_user_id", userID))

	updatedUser, err := h.userService.UpdateUser(c.Request.Context(), userID, req, requestingUserID)
	if err != nil {
		logger.Error("Failed to update user in service", slog.String("error", err.Error()))
		respondError(c, err, "Failed to update user")
		return
	}

	details := map[string]any{}
	if req.CommissionRate != nil {
		details["commissionRate"] = *req.CommissionRate
	}
	h.activityService.Record(c.Request.Context(), portssvc.ActivityRecord{
		UserID:     requestingUserID,
		Action:     domain.ActionUpdateUser,
		TargetType: domain.TargetUser,
		TargetID:   updatedUser.UserID,
		TargetName: updatedUser.Name,
		Details:    details,
		IPAddress:  c.ClientIP(),
	})

	logger.Info("User updated successfully")
	c.JSON(http.StatusOK, dto.ToUserResponse(updatedUser))
}

// deleteUser godoc
// @Summary Delete a user
// @Description Permanently removes a user account. Deleting your own account is rejected. Campaigns and orders owned by the user survive; check the impact endpoint first.
// @Tags users
// @Produce  json
// @Param   id path string true "User ID"
// @Success 200 {object} map[string]string
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Cannot delete own account"
// @Failure 404 {object} map[string]string "User not found"
// @Failure 500 {object} map[string]string "Failed to delete user"
// @Security BearerAuth
// @Router /users/{id} [delete]
func (h *userHandler) deleteUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID := c.Param("id")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	// Grab the name for the audit trail before the row disappears.
	target, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve user")
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), userID, requestingUserID); err != nil {
		logger.Error("Failed to delete user in service", slog.String("error", err.Error()), slog.String("target_user_id", userID))
		respondError(c, err, "Failed to delete user")
		return
	}

	h.activityService.Record(c.Request.Context(), portssvc.ActivityRecord{
		UserID:     requestingUserID,
		Action:     domain.ActionDeleteUser,
		TargetType: domain.TargetUser,
		TargetID:   userID,
		TargetName: target.Name,
		IPAddress:  c.ClientIP(),
	})

	logger.Info("User deleted successfully", slog.String("target_user_id", userID))
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}

// getUserImpact godoc
// @Summary Preview user deletion impact
// @Description Reports the campaigns and live order figures attributed to a user, for the delete confirmation dialog.
// @Tags users
// @Produce  json
// @Param   id path string true "User ID"
// @Success 200 {object} dto.UserImpactResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "User not found"
// @Failure 500 {object} map[string]string "Failed to compute impact"
// @Security BearerAuth
// @Router /users/{id}/impact [get]
func (h *userHandler) getUserImpact(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID := c.Param("id")

	impact, err := h.userService.GetUserImpact(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to compute user impact", slog.String("error", err.Error()), slog.String("target_user_id", userID))
		respondError(c, err, "Failed to compute impact")
		return
	}

	c.JSON(http.StatusOK, impact)
}
