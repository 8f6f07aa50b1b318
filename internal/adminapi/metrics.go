package adminapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/talkincode/taskrest/internal/service"
	"github.com/talkincode/taskrest/internal/webserver"
	"github.com/talkincode/taskrest/pkg/metrics"
)

type storeOpStats struct {
	Op     string  `json:"op"`
	Window string  `json:"window"`
	Ok     float64 `json:"ok"`
	Error  float64 `json:"error"`
}

func registerMetricsRoutes(srv *webserver.WebServer) {
	srv.ApiGET("/metrics/store", getStoreOpStats)
}

// getStoreOpStats counts successful and failed calls of one service operation
// within a window (default 24h)
func getStoreOpStats(c echo.Context) error {
	op := strings.TrimSpace(c.QueryParam("op"))
	if op == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "op is required", nil)
	}
	window := 24 * time.Hour
	if raw := c.QueryParam("window"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid window", raw)
		}
		window = d
	}

	stats := storeOpStats{Op: op, Window: window.String()}
	var err error
	if stats.Ok, err = metrics.Sum(service.StoreOpMetric, window, metrics.Label("op", op), metrics.Label("result", "ok")); err != nil {
		return fail(c, http.StatusInternalServerError, "METRICS_ERROR", "Failed to query metrics", err.Error())
	}
	if stats.Error, err = metrics.Sum(service.StoreOpMetric, window, metrics.Label("op", op), metrics.Label("result", "error")); err != nil {
		return fail(c, http.StatusInternalServerError, "METRICS_ERROR", "Failed to query metrics", err.Error())
	}
	return ok(c, stats)
}
