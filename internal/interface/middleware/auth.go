package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/elprofecharles/registration-api/internal/application"
	"github.com/elprofecharles/registration-api/pkg/response"
)

const CtxUserIDKey = "userID"

// Auth validates the Authorization bearer token against the service, which
// also checks the record still exists and is active. On success it sets
// userID and documentID in the Gin context.
func Auth(svc *application.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			response.Error[any](c, http.StatusUnauthorized, "authentication token required", nil)
			c.Abort()
			return
		}
		u, err := svc.VerifyToken(c.Request.Context(), token)
		if err != nil {
			response.Error[any](c, http.StatusUnauthorized, "invalid token", nil)
			c.Abort()
			return
		}
		c.Set(CtxUserIDKey, u.ID)
		c.Set("documentID", u.DocumentID)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if h == "" {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
}
