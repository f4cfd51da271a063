package serverhttp

import (
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"planboard-service/internal/middleware"
	planHnd "planboard-service/internal/plan/handler"
	"planboard-service/server/http/handlers"
)

func NewRouter(deps planHnd.Deps, logger zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// order matters: recover -> requestID -> logging -> cors -> limit
	r.Use(middleware.Recover(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS(deps.Cfg.AllowOrigins))
	r.Use(middleware.LimitBytes(int64(deps.Cfg.MaxUploadMB) * 1024 * 1024))

	r.Get("/health", handlers.Health)

	r.Post("/analyze", planHnd.Analyze(deps))
	r.Post("/analyze/export", planHnd.AnalyzeExport(deps))
	r.Post("/purchase-orders", planHnd.PurchaseOrders(deps))
	r.Post("/purchase-orders/export", planHnd.PurchaseOrdersExport(deps))
	r.Post("/lead-times", planHnd.LeadTimes(deps))

	return r
}
