package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveImport(t *testing.T) {
	m := New()
	m.ObserveImport("sales", 120, nil, 2*time.Second)
	m.ObserveImport("sales", 0, errors.New("MISSING_DATE"), time.Second)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.importsTotal.WithLabelValues("sales", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.importsTotal.WithLabelValues("sales", "error")))
	assert.Equal(t, 120.0, testutil.ToFloat64(m.importRows.WithLabelValues("sales")))
}

func TestCacheLookup(t *testing.T) {
	m := New()
	m.CacheLookup("dates", true)
	m.CacheLookup("dates", false)
	m.CacheLookup("dates", true)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.cacheLookups.WithLabelValues("dates", "hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheLookups.WithLabelValues("dates", "miss")))
}

func TestMiddlewareYHandler(t *testing.T) {
	m := New()
	app := fiber.New()
	app.Use(m.Middleware())
	app.Get("/api/shops/:id", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNotFound) })
	app.Get("/metrics", m.Handler())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/shops/7", nil), -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("GET", "/api/shops/:id", "404")))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.Contains(string(body), "changerank_http_requests_total"))
}
