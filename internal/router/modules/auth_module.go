package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/elprofecharles/registration-api/internal/interface/http"
)

// AuthModule wires the public registration/authentication routes:
// POST /api/auth/register, POST /api/auth/login, GET /api/auth/verify,
// GET /api/auth/lists

type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/register", m.Handler.Register)
		auth.POST("/login", m.Handler.Login)
		auth.GET("/verify", m.Handler.Verify)
		auth.GET("/lists", m.Handler.Lists)
	}
}
