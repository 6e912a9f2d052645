package internal

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-redis/redismock/v8"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dalmiro47/GymTrackerv2-sub001/internal/cache"
	"github.com/Dalmiro47/GymTrackerv2-sub001/internal/config"
	"github.com/Dalmiro47/GymTrackerv2-sub001/internal/gymstats/warmup"
	"github.com/Dalmiro47/GymTrackerv2-sub001/internal/telemetry/metrics"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	metricsManager, promRegistry := metrics.NewTestManagerAndRegistry()
	prescriptionCache := cache.NewPrescriptionCache(0, 0)
	return &Server{
		config: &config.Config{
			AllowedOrigins:     []string{"https://gymtracker.app"},
			RateLimitPerMinute: 0,
		},
		versionInfo:       "v1.2.3",
		prescriptionCache: prescriptionCache,
		warmupService:     warmup.NewService(nil, prescriptionCache, metricsManager),
		metricsManager:    metricsManager,
		promRegistry:      promRegistry,
	}
}

func TestPingRedis(t *testing.T) {
	db, mock := redismock.NewClientMock()
	mock.ExpectPing().SetVal("PONG")

	pong, err := pingRedis(context.Background(), db)
	require.NoError(t, err)
	assert.Equal(t, "PONG", pong)
	require.NoError(t, mock.ExpectationsWereMet())

	mock.ExpectPing().SetErr(errors.New("connection refused"))
	_, err = pingRedis(context.Background(), db)
	require.EqualError(t, err, "connection refused")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestServer_RouterSetup_Prescribe(t *testing.T) {
	s := newTestServer(t)
	r := s.routerSetup()

	body := `{"exercise":"Back Squat","workingWeight":100}`
	req := httptest.NewRequest(http.MethodPost, "/gymstats/warmup", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", "https://gymtracker.app")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "https://gymtracker.app", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rr.Body.String(), `"archetype":"heavy_barbell"`)
	assert.Contains(t, rr.Body.String(), `"label":"Empty Bar"`)

	assert.Equal(t, float64(1), testutil.ToFloat64(s.metricsManager.CounterRequests.WithLabelValues("POST", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(s.metricsManager.CounterPrescriptions.WithLabelValues("heavy_barbell")))
}

func TestServer_RouterSetup_Routes(t *testing.T) {
	s := newTestServer(t)
	r := s.routerSetup()

	tests := []struct {
		name       string
		method     string
		target     string
		origin     string
		wantStatus int
		wantBody   string
	}{
		{"version", http.MethodGet, "/version", "", http.StatusOK, "v1.2.3"},
		{"classify", http.MethodGet, "/gymstats/warmup/classify?name=Leg%20Press", "", http.StatusOK, "machine_compound"},
		{"templates", http.MethodGet, "/gymstats/warmup/templates", "", http.StatusOK, warmup.DefaultCatalogVersion},
		{"round", http.MethodGet, "/gymstats/warmup/round?value=41.3", "", http.StatusOK, "41.5"},
		{"unknown", http.MethodGet, "/nothing-here", "", http.StatusNotFound, "404 page not found"},
		{"preflight", http.MethodOptions, "/gymstats/warmup", "https://gymtracker.app", http.StatusOK, ""},
		{"forbidden_origin", http.MethodGet, "/version", "https://evil.example", http.StatusForbidden, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			} else {
				req.Header.Set("User-Agent", "test-agent")
			}
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantBody != "" {
				assert.Contains(t, rr.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestServer_GracefulShutdown_NothingStarted(t *testing.T) {
	s := newTestServer(t)
	s.metricsManager.GaugeLifeSignal.Set(1)

	require.NoError(t, s.GracefulShutdown())
	assert.Equal(t, float64(0), testutil.ToFloat64(s.metricsManager.GaugeLifeSignal))
}
