package lookup_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/inventory/pkg/lookup"
)

// fakeOpenFoodFacts serves /product/{barcode}.json from a fixed table.
func fakeOpenFoodFacts(t *testing.T, bodies map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := bodies[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"status":0,"status_verbose":"product not found"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newClient(srv *httptest.Server) *lookup.Client {
	return lookup.NewClient(lookup.Config{URLTemplate: srv.URL + "/product/%s.json", Timeout: time.Second})
}

func TestLookup_Found(t *testing.T) {
	srv := fakeOpenFoodFacts(t, map[string]string{
		"/product/3017620422003.json": `{"code":"3017620422003","product":{"product_name":"Nutella"},"status":1}`,
	})

	res := newClient(srv).Lookup(context.Background(), "3017620422003")

	assert.True(t, res.Found())
	assert.Equal(t, lookup.StatusFound, res.Status)
	assert.Equal(t, "Nutella", res.Name)
	assert.Equal(t, "Nutella", res.NameOr("typed"))
}

func TestLookup_UnknownBarcode(t *testing.T) {
	srv := fakeOpenFoodFacts(t, nil)

	res := newClient(srv).Lookup(context.Background(), "000")

	assert.False(t, res.Found())
	assert.Equal(t, lookup.StatusNotFound, res.Status)
	assert.Empty(t, res.Name)
	assert.Equal(t, "typed", res.NameOr("typed"))
}

func TestLookup_NoProductOrName(t *testing.T) {
	srv := fakeOpenFoodFacts(t, map[string]string{
		"/product/1.json": `{"status":0}`,
		"/product/2.json": `{"product":{"product_name":null}}`,
		"/product/3.json": `{"product":{"product_name":"  "}}`,
		"/product/4.json": `{"product":{}}`,
	})
	c := newClient(srv)

	for _, code := range []string{"1", "2", "3", "4"} {
		res := c.Lookup(context.Background(), code)
		assert.Equal(t, lookup.StatusNotFound, res.Status, "barcode %s", code)
	}
}

func TestLookup_MalformedJSON(t *testing.T) {
	srv := fakeOpenFoodFacts(t, map[string]string{"/product/1.json": `{"product":`})

	res := newClient(srv).Lookup(context.Background(), "1")

	assert.Equal(t, lookup.StatusFailed, res.Status)
	assert.NotEmpty(t, res.Reason)
}

func TestLookup_NetworkFailure(t *testing.T) {
	srv := fakeOpenFoodFacts(t, nil)
	c := newClient(srv)
	srv.Close()

	res := c.Lookup(context.Background(), "1")

	assert.Equal(t, lookup.StatusFailed, res.Status)
}

func TestLookup_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	c := lookup.NewClient(lookup.Config{URLTemplate: srv.URL + "/%s", Timeout: 50 * time.Millisecond})
	res := c.Lookup(context.Background(), "1")

	assert.Equal(t, lookup.StatusFailed, res.Status)
}

func TestLookup_EscapesBarcode(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := lookup.NewClient(lookup.Config{URLTemplate: srv.URL + "/product/%s.json"})
	c.Lookup(context.Background(), "a/b c")

	assert.Equal(t, "/product/a%2Fb%20c.json", gotPath)
}

func TestLookup_EmptyBarcodeSkipsRequest(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true }))
	defer srv.Close()

	res := newClient(srv).Lookup(context.Background(), "  ")

	assert.Equal(t, lookup.StatusNotFound, res.Status)
	assert.False(t, called)
}

func TestLookupAsync(t *testing.T) {
	srv := fakeOpenFoodFacts(t, map[string]string{"/product/1.json": `{"product":{"product_name":"Water"}}`})

	ch := newClient(srv).LookupAsync(context.Background(), "1")

	select {
	case res, ok := <-ch:
		require.True(t, ok)
		assert.Equal(t, "Water", res.Name)
	case <-time.After(2 * time.Second):
		t.Fatal("LookupAsync did not deliver a result")
	}

	_, ok := <-ch
	assert.False(t, ok, "channel is closed after the single result")
}

func TestLookupAsync_QueueFullFails(t *testing.T) {
	started := make(chan struct{}, 8)
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started <- struct{}{}
		select {
		case <-release:
		case <-r.Context().Done():
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })

	// One worker plus a queue of two: the fourth call has nowhere to go.
	c := lookup.NewClient(lookup.Config{URLTemplate: srv.URL + "/%s", Timeout: 5 * time.Second, MaxConcurrent: 1})
	ctx := context.Background()

	c.LookupAsync(ctx, "1")
	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("first lookup never reached the server")
	}
	c.LookupAsync(ctx, "2")
	c.LookupAsync(ctx, "3")

	res := <-c.LookupAsync(ctx, "4")
	assert.Equal(t, lookup.StatusFailed, res.Status)
	assert.Contains(t, res.Reason, "pool is full")
}

func TestClose_WaitsForQueuedLookups(t *testing.T) {
	srv := fakeOpenFoodFacts(t, map[string]string{"/product/1.json": `{"product":{"product_name":"Water"}}`})
	c := newClient(srv)

	ch := c.LookupAsync(context.Background(), "1")
	require.NoError(t, c.Close())

	res := <-ch
	assert.Equal(t, "Water", res.Name)

	res = <-c.LookupAsync(context.Background(), "1")
	assert.Equal(t, lookup.StatusFailed, res.Status, "closed client does not schedule")
}
