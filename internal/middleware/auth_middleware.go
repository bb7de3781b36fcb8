package middleware

import (
	"net/http"
	"strings"

	"messagebox/internal/services"
	"messagebox/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware resolves the bearer token to a user id and stores it in
// the request context. rejectStatus is the status for anonymous callers:
// profile endpoints answer 401, message endpoints answer 403.
func AuthMiddleware(service *services.AuthService, rejectStatus int) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearer(c)
		userID, err := service.ResolveUser(c.Request.Context(), token)
		if err != nil {
			code := "UNAUTHORIZED"
			if rejectStatus == http.StatusForbidden {
				code = "FORBIDDEN"
			}
			c.JSON(rejectStatus, httpdto.NewErrorResponse("authentication credentials were not provided or are invalid", code))
			c.Abort()
			return
		}

		ctx := services.WithUserContext(c.Request.Context(), userID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func extractBearer(c *gin.Context) string {
	value := c.GetHeader("Authorization")
	parts := strings.SplitN(value, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
