package server_test

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/inventory/app/controllers"
	"github.com/shashiranjanraj/inventory/app/repositories"
	"github.com/shashiranjanraj/inventory/app/services"
	"github.com/shashiranjanraj/inventory/internal/server"
	"github.com/shashiranjanraj/inventory/pkg/database"
	"github.com/shashiranjanraj/inventory/pkg/middleware"
	"github.com/shashiranjanraj/inventory/pkg/router"
)

func newController(t *testing.T) *controllers.ProductController {
	t.Helper()
	db, err := database.Open(database.Config{Driver: "sqlite", DSN: filepath.Join(t.TempDir(), "inventory.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	repo := repositories.NewProductRepository(db)
	require.NoError(t, repo.Initialize(context.Background()))
	return controllers.NewProductController(services.NewInventoryService(repo, nil, nil, nil, services.Options{}))
}

func TestNewRouter_Routes(t *testing.T) {
	r := server.NewRouter(newController(t), server.HandlerOptions{})

	var got []string
	for _, rt := range r.Routes() {
		got = append(got, rt.Method+" "+rt.Path)
	}
	assert.Equal(t, []string{
		"GET /api/lookup/{barcode}",
		"GET /api/products",
		"POST /api/products",
		"POST /api/products/export",
		"DELETE /api/products/{barcode}",
		"PUT /api/products/{barcode}/quantity",
		"GET /metrics",
	}, got)

	path, ok := r.Path("products.quantity")
	assert.True(t, ok)
	assert.Equal(t, "/api/products/{barcode}/quantity", path)
}

func TestNewRouter_MiddlewareAndFallbacks(t *testing.T) {
	h := server.NewRouter(newController(t), server.HandlerOptions{}).Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/products", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"status":404,"message":"Not found"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/api/products", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "inventory_http_requests_total")
}

func TestServe_GracefulShutdown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	r := router.New()
	r.Get("/ping", "", func(w http.ResponseWriter, _ *http.Request) { w.Write([]byte("pong")) })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- server.Serve(ctx, ln, r.Handler()) }()

	var resp *http.Response
	require.Eventually(t, func() bool {
		resp, err = http.Get("http://" + ln.Addr().String() + "/ping")
		return err == nil
	}, 2*time.Second, 10*time.Millisecond)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestStart_BadAddress(t *testing.T) {
	err := server.Start(context.Background(), "not-an-address", http.NotFoundHandler())
	assert.Error(t, err)
}
