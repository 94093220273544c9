package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/orderdesk/backoffice-backend/api/controllers"
	assignmentcontrollers "github.com/orderdesk/backoffice-backend/api/controllers/assignments"
	vendorordercontrollers "github.com/orderdesk/backoffice-backend/api/controllers/vendororders"
	"github.com/orderdesk/backoffice-backend/api/middleware"
	"github.com/orderdesk/backoffice-backend/internal/assignments"
	"github.com/orderdesk/backoffice-backend/internal/vendororders"
	"github.com/orderdesk/backoffice-backend/pkg/config"
	"github.com/orderdesk/backoffice-backend/pkg/db"
	"github.com/orderdesk/backoffice-backend/pkg/logger"
	"github.com/orderdesk/backoffice-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	metricsRegistry *prometheus.Registry,
	assignmentsSvc assignments.Service,
	vendorOrdersSvc vendororders.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	readiness := map[string]controllers.Pinger{}
	if dbP != nil {
		readiness["database"] = dbP
	}
	if redisClient != nil {
		readiness["redis"] = redisClient
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, readiness))
	})

	if metricsRegistry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(metricsRegistry, promhttp.HandlerOpts{}))
	}

	var idemStore redis.IdempotencyStore
	if redisClient != nil {
		idemStore = redisClient
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Idempotency(idemStore, logg))

		r.Post("/assignments/{assignmentId}/status", assignmentcontrollers.UpdateStatus(assignmentsSvc, logg))
		r.Get("/vendors/{vendorId}/assignments", vendorordercontrollers.ListVendorAssignments(vendorOrdersSvc, logg))
		r.Route("/accounts/vendor-orders", func(r chi.Router) {
			r.Get("/", vendorordercontrollers.ListConfirmedVendorOrders(vendorOrdersSvc, logg))
			r.Get("/{vendorOrderId}", vendorordercontrollers.GetVendorOrder(vendorOrdersSvc, logg))
		})
	})

	return r
}
