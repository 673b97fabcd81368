package router

import (
	"github.com/elprofecharles/registration-api/internal/application"
	"github.com/elprofecharles/registration-api/internal/container"
	pginfra "github.com/elprofecharles/registration-api/internal/infrastructure/postgres"
	handlers "github.com/elprofecharles/registration-api/internal/interface/http"
	"github.com/elprofecharles/registration-api/internal/router/modules"
)

func buildService() *application.Service {
	repo := pginfra.NewUserRepository(container.GetPGPool())
	return application.NewService(
		repo,
		container.GetJWT(),
		container.GetRedis(),
		container.GetLogger(),
		container.GetRabbitPub(),
		container.GetConfig().MailSendEnabled,
	)
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	svc := buildService()
	cfg := container.GetConfig()
	logger := container.GetLogger()

	authHandler := handlers.NewAuthHandler(svc, logger, cfg)
	userHandler := handlers.NewUserHandler(svc, logger, cfg)

	r.Add(modules.NewAuthModule(authHandler))
	r.Add(modules.NewUserModule(userHandler, svc))
}
