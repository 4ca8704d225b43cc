package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/salesdash-backend/api/controllers"
	"github.com/angelmondragon/salesdash-backend/api/middleware"
	"github.com/angelmondragon/salesdash-backend/internal/sales"
	"github.com/angelmondragon/salesdash-backend/pkg/config"
	"github.com/angelmondragon/salesdash-backend/pkg/db"
	"github.com/angelmondragon/salesdash-backend/pkg/logger"
	"github.com/angelmondragon/salesdash-backend/pkg/metrics"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	salesService *sales.Service,
	registry *prometheus.Registry,
) http.Handler {
	r := chi.NewRouter()

	httpMetrics := metrics.NewHTTPMetrics(registry)

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", controllers.HealthReady(cfg, logg, dbP))

		r.Route("/sales", func(r chi.Router) {
			r.Get("/", controllers.ListSales(salesService, logg))
			r.Get("/metrics", controllers.SalesMetrics(salesService, logg))
			r.Get("/filter-options", controllers.SalesFilterOptions(salesService, logg))
		})
	})

	r.Get("/health/live", controllers.HealthLive(cfg))

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	return r
}
