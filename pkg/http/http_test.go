package http_test

import (
	"context"
	"errors"
	gohttp "net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/inventory/pkg/http"
)

func TestGet_DecodesJSON(t *testing.T) {
	srv := httptest.NewServer(gohttp.HandlerFunc(func(w gohttp.ResponseWriter, r *gohttp.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	resp, err := http.Get(srv.URL).Send()
	require.NoError(t, err)
	assert.True(t, resp.OK())

	var body struct{ OK bool }
	require.NoError(t, resp.JSON(&body))
	assert.True(t, body.OK)
}

func TestGet_Non2xxIsNotATransportError(t *testing.T) {
	srv := httptest.NewServer(gohttp.HandlerFunc(func(w gohttp.ResponseWriter, r *gohttp.Request) {
		w.WriteHeader(gohttp.StatusNotFound)
	}))
	defer srv.Close()

	resp, err := http.Get(srv.URL).Send()
	require.NoError(t, err)
	assert.False(t, resp.OK())
	assert.Equal(t, gohttp.StatusNotFound, resp.StatusCode)
}

func TestGet_Timeout(t *testing.T) {
	srv := httptest.NewServer(gohttp.HandlerFunc(func(w gohttp.ResponseWriter, r *gohttp.Request) {
		select {
		case <-time.After(time.Second):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	_, err := http.Get(srv.URL).Timeout(50 * time.Millisecond).Send()
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestGet_SingleAttempt(t *testing.T) {
	var calls atomic.Int32
	http.DefaultClient.Transport = roundTripFunc(func(r *gohttp.Request) (*gohttp.Response, error) {
		calls.Add(1)
		return nil, errors.New("connection refused")
	})
	defer http.ResetTransport()

	_, err := http.Get("http://example.invalid").Send()
	require.Error(t, err)
	assert.ErrorContains(t, err, "connection refused")
	assert.Equal(t, int32(1), calls.Load())
}

type roundTripFunc func(*gohttp.Request) (*gohttp.Response, error)

func (f roundTripFunc) RoundTrip(r *gohttp.Request) (*gohttp.Response, error) { return f(r) }
