//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"

	"corpusdash/internal"
	"corpusdash/internal/controllers"
	"corpusdash/internal/corpus"
	"corpusdash/internal/providers"
	"corpusdash/internal/services"
	"corpusdash/internal/structures"
)

func provideSnapshotSource(service services.AnalyticsServiceInterface) corpus.SnapshotSource {
	return service
}

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewInstrumentedCacheProvider,
		providers.NewMetricsProvider,

		corpus.NewBackendClient,
		corpus.NewFetcher,
		corpus.NewNormalizer,
		corpus.NewCategoryResolver,
		corpus.NewUserDirectory,
		corpus.NewAggregator,
		corpus.NewComparer,
		corpus.NewZstdCompressor,
		corpus.NewSnapshotManager,
		corpus.NewScheduler,
		services.NewAnalyticsService,
		provideSnapshotSource,
		controllers.NewApiController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
