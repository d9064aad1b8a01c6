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

// activityHandler serves the append-only audit trail.
type activityHandler struct {
	activityService portssvc.ActivitySvcFacade
	userService     portssvc.UserSvcFacade
}

// newActivityHandler creates a new activityHandler.
func newActivityHandler(as portssvc.ActivitySvcFacade, us portssvc.UserSvcFacade) *activityHandler {
	return &activityHandler{
		activityService: as,
		userService:     us,
	}
}

// registerActivityRoutes registers the audit trail routes.
func registerActivityRoutes(rg *gin.RouterGroup, activityService portssvc.ActivitySvcFacade, userService portssvc.UserSvcFacade) {
	h := newActivityHandler(activityService, userService)

	activities := rg.Group("/activities", middleware.RequireCapability(domain.CapActivityView))
	{
		activities.GET("", h.listActivities)
	}
}

// listActivities godoc
// @Summary List audit entries
// @Description Retrieves a filtered page of audit entries, newest first, with acting user names resolved where the accounts still exist.
// @Tags activities
// @Produce  json
// @Param   action query string false "Filter by action, e.g. CREATE_ORDER"
// @Param   userID query string false "Filter by acting user"
// @Param   limit query int false "Limit number of results" default(50)
// @Param   offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.ListActivitiesResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to list activities"
// @Security BearerAuth
// @Router /activities [get]
func (h *activityHandler) listActivities(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListActivitiesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListActivities", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	entries, total, err := h.activityService.ListActivities(c.Request.Context(), params)
	if err != nil {
		logger.Error("Failed to list activities from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list activities"})
		return
	}

	resp := dto.ListActivitiesResponse{
		Activities: make([]dto.ActivityResponse, 0, len(entries)),
		Total:      total,
		Limit:      params.Limit,
		Offset:     params.Offset,
	}

	// Resolve acting user names once per page. Deleted accounts stay blank.
	names := make(map[string]string)
	for i := range entries {
		out := dto.ToActivityResponse(&entries[i])
		name, seen := names[entries[i].UserID]
		if !seen {
			if user, err := h.userService.GetUserByID(c.Request.Context(), entries[i].UserID); err == nil {
				name = user.Name
			}
			names[entries[i].UserID] = name
		}
		out.UserName = name
		resp.Activities = append(resp.Activities, out)
	}

	c.JSON(http.StatusOK, resp)
}
