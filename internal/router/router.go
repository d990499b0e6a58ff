package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"petledger/internal/handler"
	"petledger/internal/middleware"
	"petledger/internal/telemetry"
)

// Handlers bundles the HTTP handlers mounted by Setup.
type Handlers struct {
	Health      *handler.HealthHandler
	Tax         *handler.TaxHandler
	Sales       *handler.SalesHandler
	Import      *handler.ImportHandler
	TaxSettings *handler.TaxSettingsHandler
}

// Options holds the cross-cutting pieces of the engine. Gatherer serves
// /metrics; when nil the endpoint is not mounted.
type Options struct {
	Logger      *slog.Logger
	Metrics     *telemetry.Metrics
	Gatherer    prometheus.Gatherer
	CORSOrigins []string
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(h Handlers, opts Options) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(opts.Logger))
	r.Use(middleware.Metrics(opts.Metrics))
	r.Use(middleware.CORS(opts.CORSOrigins))

	// Health checks
	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)
	if opts.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	}

	v1 := r.Group("/api/v1")

	// Stateless tax computations
	taxGroup := v1.Group("/tax")
	taxGroup.POST("/breakdown", h.Tax.Breakdown)
	taxGroup.GET("/states", h.Tax.States)
	taxGroup.GET("/states/:code", h.Tax.State)
	taxGroup.GET("/rates", h.Tax.Rates)

	v1.POST("/sales/lines", h.Sales.Lines)

	// Bulk product import
	imports := v1.Group("/imports")
	imports.POST("/validate", h.Import.Validate)
	imports.GET("", h.Import.List)
	imports.GET("/schema", h.Import.Schema)
	imports.GET("/:id", h.Import.Get)
	imports.POST("/:id/submit", h.Import.Submit)
	imports.GET("/:id/issues.csv", h.Import.Issues)

	// Per-item tax settings
	items := v1.Group("/items")
	items.PUT("/tax-settings", h.TaxSettings.Update)
	items.GET("/:id/tax-settings", h.TaxSettings.Get)

	return r
}
