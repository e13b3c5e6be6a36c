package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/inventory/pkg/router"
)

func TestGroupRoutesAndURL(t *testing.T) {
	r := router.New()
	api := r.Group("/api/")
	api.Delete("/products/{barcode}", "products.destroy", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte("deleted " + chi.URLParam(req, "barcode")))
	})
	api.Put("products/{barcode}/quantity", "products.quantity", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	url, err := r.URL("products.destroy", map[string]string{"barcode": "111"})
	require.NoError(t, err)
	assert.Equal(t, "/api/products/111", url)

	_, err = r.URL("products.quantity", nil)
	assert.Error(t, err, "missing barcode parameter")

	_, err = r.URL("nope", nil)
	assert.Error(t, err)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/products/111", nil))
	assert.Equal(t, "deleted 111", rec.Body.String())

	rec = httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/products/111/quantity", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestMiddlewareOrder(t *testing.T) {
	var order []string
	mark := func(tag string) router.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, tag)
				next.ServeHTTP(w, r)
			})
		}
	}

	r := router.New()
	r.Use(mark("global"))
	g := r.Group("/api", mark("group"))
	g.Get("/ping", "", func(w http.ResponseWriter, _ *http.Request) {
		order = append(order, "handler")
	}, mark("route"))

	r.Handler().ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/ping", nil))
	assert.Equal(t, []string{"global", "group", "route", "handler"}, order)
}

func TestRoutesListing(t *testing.T) {
	r := router.New()
	noop := func(http.ResponseWriter, *http.Request) {}
	api := r.Group("/api")
	api.Post("/products", "products.store", noop)
	api.Get("/products", "products.index", noop)
	r.Handle("/metrics", "", http.NotFoundHandler())

	assert.Equal(t, []router.Route{
		{Method: http.MethodGet, Path: "/api/products", Name: "products.index"},
		{Method: http.MethodPost, Path: "/api/products", Name: "products.store"},
		{Method: http.MethodGet, Path: "/metrics"},
	}, r.Routes())
}
