package middleware

import (
	"net/http"
	"strings"

	"github.com/aqilnajmi/sales_commission_tracker/internal/utils"
	"github.com/gin-gonic/gin"
)

// pathsToSkip contains paths that should not be tracked by PostHog
var pathsToSkip = map[string]bool{
	"/health": true,
	"/":       true,
}

// eventNameForRoute turns a matched route into a PostHog event name, e.g.
// "/api/v1/campaigns/:id" -> "api_v1_campaigns_:id". Empty for unmatched
// routes (404s), which are not tracked.
func eventNameForRoute(c *gin.Context) string {
	name := strings.TrimPrefix(c.FullPath(), "/")
	return strings.ReplaceAll(name, "/", "_")
}

// PosthogMiddleware creates a Gin middleware handler that tracks successful
// authenticated API calls with PostHog. Requests that fail, hit an untracked
// path, or carry no authenticated user are not captured.
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		if posthogClient == nil || !posthogClient.IsInitialized() || pathsToSkip[c.Request.URL.Path] {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		userID, ok := GetUserIDFromContext(c)
		if !ok {
			return
		}

		eventName := eventNameForRoute(c)
		if eventName == "" {
			return
		}

		props := map[string]any{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status_code": c.Writer.Status(),
		}
		if len(c.Params) > 0 {
			params := make(map[string]string, len(c.Params))
			for _, param := range c.Params {
				params[param.Key] = param.Value
			}
			props["params"] = params
		}

		posthogClient.Enqueue(userID, eventName, props)
	}
}

// PosthogEvent sends a custom event from a handler, enriched with the request
// method and path. No-op when the client is uninitialized or the request is
// unauthenticated.
func PosthogEvent(c *gin.Context, posthogClient *utils.PosthogClientWrapper, eventName string, properties map[string]any) {
	if posthogClient == nil || !posthogClient.IsInitialized() {
		return
	}
	userID, ok := GetUserIDFromContext(c)
	if !ok {
		return
	}
	if properties == nil {
		properties = make(map[string]any)
	}
	properties["method"] = c.Request.Method
	properties["path"] = c.Request.URL.Path

	posthogClient.Enqueue(userID, eventName, properties)
}
