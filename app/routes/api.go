package routes

import (
	"github.com/shashiranjanraj/inventory/app/controllers"
	"github.com/shashiranjanraj/inventory/pkg/middleware"
	"github.com/shashiranjanraj/inventory/pkg/router"
)

// RegisterAPI mounts the product API. lookupLimit fronts the lookup route.
func RegisterAPI(r *router.Router, products *controllers.ProductController, lookupLimit *middleware.RateLimiter) {
	api := r.Group("/api")

	api.Get("/products", "products.index", products.Index)
	api.Post("/products", "products.store", products.Store)
	api.Post("/products/export", "products.export", products.Export)
	api.Delete("/products/{barcode}", "products.destroy", products.Destroy)
	api.Put("/products/{barcode}/quantity", "products.quantity", products.UpdateQuantity)

	api.Get("/lookup/{barcode}", "lookup.show", products.Lookup, lookupLimit.Middleware)
}
