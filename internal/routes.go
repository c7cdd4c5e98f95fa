package internal

import (
	"corpusdash/internal/controllers"
	"corpusdash/internal/providers"
	"corpusdash/internal/structures"
	"net/http"
)

func InitRoutes(apiController *controllers.ApiController, conf *structures.Config) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/summary", http.HandlerFunc(apiController.GetSummary))
	routers.Get("/compare", http.HandlerFunc(apiController.GetComparison))
	routers.Get("/insights", http.HandlerFunc(apiController.GetInsights))
	routers.Get("/export/records", http.HandlerFunc(apiController.ExportRecords))
	return routers
}
