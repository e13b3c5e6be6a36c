package server

import (
	"net/http"
	"time"

	"github.com/shashiranjanraj/inventory/app/controllers"
	"github.com/shashiranjanraj/inventory/app/routes"
	"github.com/shashiranjanraj/inventory/pkg/metrics"
	"github.com/shashiranjanraj/inventory/pkg/middleware"
	"github.com/shashiranjanraj/inventory/pkg/response"
	"github.com/shashiranjanraj/inventory/pkg/router"
)

// HandlerOptions tunes the HTTP kernel.
type HandlerOptions struct {
	CORSOrigins []string
	// LookupPerMinute caps lookup calls per client; <= 0 disables the cap.
	LookupPerMinute int
}

// NewRouter builds the router with the global middleware stack and every
// route mounted. Exposed so the CLI can list routes.
func NewRouter(products *controllers.ProductController, opts HandlerOptions) *router.Router {
	r := router.New()

	// Global middleware stack (outermost → innermost):
	//  1. Prometheus metrics, outermost for accurate total latency
	//  2. Request ID, before anything logs
	//  3. Recovery
	//  4. Logger, logs request_id from context
	//  5. CORS
	r.Use(metrics.Middleware())
	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery)
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions(opts.CORSOrigins)))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.NotFound(w, "")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.Error(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	r.Handle("/metrics", "metrics", metrics.Handler())

	routes.RegisterAPI(r, products, middleware.NewRateLimiter(opts.LookupPerMinute, time.Minute))
	return r
}
