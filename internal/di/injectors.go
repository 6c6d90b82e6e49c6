//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"nightlock/internal"
	"nightlock/internal/challenge"
	"nightlock/internal/controllers"
	"nightlock/internal/lockdown"
	"nightlock/internal/providers"
	"nightlock/internal/services"
	"nightlock/internal/storage"
	"nightlock/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		storage.NewStore,
		challenge.NewDefaultGenerator,
		services.NewDisplayHook,
		services.NewStreakService,
		services.NewLockdownService,
		lockdown.NewScheduler,
		controllers.NewApiController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
