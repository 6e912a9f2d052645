package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dalmiro47/GymTrackerv2-sub001/internal/gymstats/warmup"
)

func (s *IntegrationTestSuite) doRequest(req *http.Request, clientIP string) (int, []byte) {
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("X-Real-Ip", clientIP)

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)
	return resp.StatusCode, respBytes
}

func (s *IntegrationTestSuite) prescribeRequest(
	ctx context.Context,
	prescribeReq warmup.PrescribeRequest,
) (int, []byte) {
	reqJson, err := json.Marshal(prescribeReq)
	require.NoError(s.T(), err)

	req, err := http.NewRequestWithContext(
		ctx,
		"POST", fmt.Sprintf("%s/gymstats/warmup", s.serverEndpoint),
		bytes.NewReader(reqJson),
	)
	require.NoError(s.T(), err)
	req.Header.Set("Content-Type", "application/json")

	return s.doRequest(req, s.clientIP())
}

func (s *IntegrationTestSuite) getRequest(ctx context.Context, path string) (int, []byte) {
	req, err := http.NewRequestWithContext(ctx, "GET", s.serverEndpoint+path, nil)
	require.NoError(s.T(), err)
	return s.doRequest(req, s.clientIP())
}

func (s *IntegrationTestSuite) TestWarmup_Prescribe() {
	ctx := context.Background()

	status, body := s.prescribeRequest(ctx, warmup.PrescribeRequest{
		Exercise:      "Back Squat",
		WorkingWeight: 100,
	})
	require.Equal(s.T(), http.StatusOK, status, string(body))

	var prescription warmup.Prescription
	require.NoError(s.T(), json.Unmarshal(body, &prescription))
	assert.Equal(s.T(), warmup.ArchetypeHeavyBarbell, prescription.Archetype)
	assert.True(s.T(), prescription.IsLowerBodyBarbell)
	assert.True(s.T(), prescription.ClassifiedFromName)
	require.Len(s.T(), prescription.Steps, 4)
	assert.Equal(s.T(), "Empty Bar", prescription.Steps[0].Label)

	var weights []float64
	for _, step := range prescription.Steps {
		weights = append(weights, step.WeightTotal)
	}
	assert.Equal(s.T(), []float64{20, 40, 65, 80}, weights)

	// same request again, served from the prescription cache
	status, cachedBody := s.prescribeRequest(ctx, warmup.PrescribeRequest{
		Exercise:      "Back Squat",
		WorkingWeight: 100,
	})
	require.Equal(s.T(), http.StatusOK, status)
	assert.JSONEq(s.T(), string(body), string(cachedBody))
}

func (s *IntegrationTestSuite) TestWarmup_Prescribe_RandomWeightsStayBelowWorking() {
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		workingWeight := float64(s.faker.IntRange(30, 250))
		status, body := s.prescribeRequest(ctx, warmup.PrescribeRequest{
			Exercise:      "Bench Press",
			WorkingWeight: workingWeight,
		})
		require.Equal(s.T(), http.StatusOK, status, string(body))

		var prescription warmup.Prescription
		require.NoError(s.T(), json.Unmarshal(body, &prescription))
		for _, step := range prescription.Steps {
			assert.Less(s.T(), step.WeightTotal, workingWeight)
		}
	}
}

func (s *IntegrationTestSuite) TestWarmup_Prescribe_BadRequest() {
	status, body := s.prescribeRequest(context.Background(), warmup.PrescribeRequest{
		Exercise:      "Bench Press",
		Archetype:     "powerlifting",
		WorkingWeight: 100,
	})
	assert.Equal(s.T(), http.StatusBadRequest, status)
	assert.Contains(s.T(), string(body), "unknown warm-up archetype")
}

func (s *IntegrationTestSuite) TestWarmup_ClassifyTemplatesRound() {
	ctx := context.Background()

	status, body := s.getRequest(ctx, "/gymstats/warmup/classify?name=Incline%20DB%20Press")
	require.Equal(s.T(), http.StatusOK, status)
	assert.Contains(s.T(), string(body), `"heavy_dumbbell"`)

	status, body = s.getRequest(ctx, "/gymstats/warmup/templates")
	require.Equal(s.T(), http.StatusOK, status)
	var templates warmup.TemplatesResponse
	require.NoError(s.T(), json.Unmarshal(body, &templates))
	assert.Equal(s.T(), warmup.DefaultCatalogVersion, templates.Version)
	assert.Len(s.T(), templates.Templates, len(warmup.Archetypes))

	status, body = s.getRequest(ctx, "/gymstats/warmup/round?value=44.9&step=2.5&mode=floor")
	require.Equal(s.T(), http.StatusOK, status)
	var rounded warmup.RoundResponse
	require.NoError(s.T(), json.Unmarshal(body, &rounded))
	assert.Equal(s.T(), 42.5, rounded.Rounded)
}

func (s *IntegrationTestSuite) TestRateLimit() {
	ctx := context.Background()
	clientIP := s.clientIP()

	for i := 0; i < rateLimitPerMinute; i++ {
		req, err := http.NewRequestWithContext(ctx, "GET", s.serverEndpoint+"/gymstats/warmup/round?value=41.3", nil)
		require.NoError(s.T(), err)
		status, _ := s.doRequest(req, clientIP)
		require.Equal(s.T(), http.StatusOK, status, "request %d", i)
	}

	req, err := http.NewRequestWithContext(ctx, "GET", s.serverEndpoint+"/gymstats/warmup/round?value=41.3", nil)
	require.NoError(s.T(), err)
	status, body := s.doRequest(req, clientIP)
	assert.Equal(s.T(), http.StatusTooManyRequests, status)
	assert.Contains(s.T(), string(body), "retry after")
}

func (s *IntegrationTestSuite) TestMetricsEndpoint() {
	resp, err := s.httpClient.Get(s.metricsEndpoint + "/metrics")
	require.NoError(s.T(), err)
	defer resp.Body.Close()
	require.Equal(s.T(), http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)
	assert.Contains(s.T(), string(body), "backend_main_life_signal")
	assert.Contains(s.T(), string(body), "backend_main_warmup_prescription_cache_entries")
}
