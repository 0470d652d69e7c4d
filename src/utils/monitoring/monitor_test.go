package monitoring

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestAverageRequests(t *testing.T) {
	monitor := NewMonitor().WithMaxHistorySize(3)

	// Nothing served yet
	require.Nil(t, monitor.monitorRequests())
	require.Equal(t, 0, monitor.RequestCounts.Len())

	for _, served := range []uint64{10, 20, 40, 70} {
		monitor.Report.Gateway.State.RequestsServed.Store(served)
		require.Nil(t, monitor.monitorRequests())
	}

	// History keeps 20, 40, 70
	require.Equal(t, 3, monitor.RequestCounts.Len())
	require.Equal(t, round(50.0/3), monitor.Report.Gateway.State.AverageRequestsPerMinute.Load())
}

func TestHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	monitor := NewMonitor()

	router := gin.New()
	router.GET("/health", monitor.OnGetHealth)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)

	monitor.Report.Backlog.Errors.ConsecutiveFailures.Store(3)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestState(t *testing.T) {
	gin.SetMode(gin.TestMode)
	monitor := NewMonitor()
	monitor.Report.Gateway.State.BatchesRegistered.Store(2)
	monitor.Report.Backlog.State.Pending.Store(1)

	router := gin.New()
	router.GET("/state", monitor.OnGetState)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/state", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Gateway struct {
			State struct {
				BatchesRegistered uint64 `json:"batches_registered"`
			} `json:"state"`
		} `json:"gateway"`
		Backlog struct {
			State struct {
				Pending int64 `json:"pending"`
			} `json:"state"`
		} `json:"backlog"`
	}
	require.Nil(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, uint64(2), body.Gateway.State.BatchesRegistered)
	require.Equal(t, int64(1), body.Backlog.State.Pending)
}

func TestCollector(t *testing.T) {
	monitor := NewMonitor()
	monitor.Report.Registry.Errors.Write.Store(5)

	registry := prometheus.NewRegistry()
	require.Nil(t, registry.Register(monitor.GetPrometheusCollector()))

	count, err := testutil.GatherAndCount(registry, "registry_error_write")
	require.Nil(t, err)
	require.Equal(t, 1, count)

	require.Equal(t, 21, testutil.CollectAndCount(monitor.GetPrometheusCollector()))
}
