package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/elprofecharles/registration-api/internal/application"
	handlers "github.com/elprofecharles/registration-api/internal/interface/http"
	"github.com/elprofecharles/registration-api/internal/interface/middleware"
)

// UserModule wires the authenticated profile routes:
// GET/PUT /api/users/profile, POST /api/users/logout, GET /api/users/stats

type UserModule struct {
	Handler *handlers.UserHandler
	Svc     *application.Service
}

func NewUserModule(h *handlers.UserHandler, svc *application.Service) *UserModule {
	return &UserModule{Handler: h, Svc: svc}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	users := rg.Group("/users")

	// stats is unauthenticated, mirroring the public counters endpoint
	users.GET("/stats", m.Handler.Stats)

	auth := users.Group("/")
	auth.Use(middleware.Auth(m.Svc))
	{
		auth.GET("/profile", m.Handler.GetProfile)
		auth.PUT("/profile", m.Handler.UpdateProfile)
		auth.POST("/logout", m.Handler.Logout)
	}
}
