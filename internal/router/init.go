package router

import (
	accountapp "github.com/carbonsaathi/carbonsaathi-api/internal/application"
	"github.com/carbonsaathi/carbonsaathi-api/internal/container"
	accountrepo "github.com/carbonsaathi/carbonsaathi-api/internal/domain/repository"
	pginfra "github.com/carbonsaathi/carbonsaathi-api/internal/infrastructure/postgres"
	handlers "github.com/carbonsaathi/carbonsaathi-api/internal/interface/http"
	"github.com/carbonsaathi/carbonsaathi-api/internal/router/modules"
)

type AccountModuleDeps struct {
	Repo    accountrepo.UserRepository
	Service *accountapp.Service
	Handler *handlers.AccountHandler
}

func buildAccountDeps() AccountModuleDeps {
	repo := pginfra.NewUserRepository(container.GetPGPool())

	service := accountapp.NewService(
		repo,
		container.GetJWT(),
		container.GetLogger(),
		container.GetRabbitPub(),
		container.GetES(),
		container.GetConfig().ESAccountsIndex,
	)

	handler := handlers.NewAccountHandler(service, container.GetLogger())

	return AccountModuleDeps{
		Repo:    repo,
		Service: service,
		Handler: handler,
	}
}

// InitModules initializes all application modules and registers them with the
// router registry. Called once during startup.
func InitModules(r *Registry) {
	deps := buildAccountDeps()
	r.Add(modules.NewAccountModule(deps.Handler, container.GetJWT()))
	r.Add(modules.NewCarbonModule(handlers.NewCarbonHandler()))
	if container.GetConfig().DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
