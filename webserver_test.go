package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Dashboard API tests
//
// The JSON API speaks percentages (10 means 10%) while config files and the
// engine use fractions, so several tests pin the conversion down by checking
// engine-derived numbers against requests written in percent form.

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ws := NewWebServer(nil, "localhost:0", zap.NewNop())
	srv := httptest.NewServer(ws.buildMux())
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	return resp
}

// defaultSimRequest mirrors the default preset in dashboard percent form
func defaultSimRequest() APISimulationRequest {
	return APISimulationRequest{
		PurchasePrice:      1000000,
		Deposit:            200000,
		UpfrontFees:        50000,
		AnnualInterestRate: 10.0,
		TermYears:          20,
		MonthlyRent:        15000,
		MonthlyCosts:       5000,
		RentalEscalation:   5.0,
		CostsEscalation:    3.0,
		CapitalGrowth:      4.0,
		Strategy:           "access-bond",
	}
}

// =============================================================================
// Simulation endpoint
// =============================================================================

func TestWebServer_SimulateHappyPath(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/simulate", defaultSimRequest())
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "application/json")

	var body APISimulationResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	require.True(t, body.Success, "response error: %s", body.Error)
	require.NotNil(t, body.Summary)

	// 10.0 on the wire must reach the engine as 0.10; the contract payment
	// only comes out right if the conversion happened
	assert.InDelta(t, 7720.17, body.Summary.ContractPayment, 0.5)
	assert.Equal(t, "Access Bond", body.Summary.Strategy)
	assert.InDelta(t, 800000, body.Summary.LoanAmount, 0.001)
	assert.InDelta(t, 250000, body.Summary.InitialOutlay, 0.001)
	assert.Equal(t, 240, body.Summary.TotalMonths)
	assert.GreaterOrEqual(t, body.Summary.PayoffMonth, 95)
	assert.LessOrEqual(t, body.Summary.PayoffMonth, 101)

	require.Len(t, body.Records, 240)
	assert.Equal(t, 1, body.Records[0].Month)
	assert.InDelta(t, 15000, body.Records[0].Rent, 0.001)
	assert.InDelta(t, 796666.67, body.Records[0].LoanBalance, 0.01)
	assert.LessOrEqual(t, body.Records[239].LoanBalance, 0.01)
}

func TestWebServer_SimulateInvalidJSON(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/simulate", "application/json",
		strings.NewReader("{not valid json"))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body APISimulationResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.False(t, body.Success)
	assert.Contains(t, body.Error, "Invalid request body")
	assert.Nil(t, body.Summary)
}

func TestWebServer_SimulateRejectsBadParameters(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		description   string
		mutate        func(*APISimulationRequest)
		expectedError string
	}{
		{
			"deposit at purchase price",
			func(r *APISimulationRequest) { r.Deposit = 1000000 },
			"deposit must be less than purchase price",
		},
		{
			"negative interest rate",
			func(r *APISimulationRequest) { r.AnnualInterestRate = -1 },
			"interest rate cannot be negative",
		},
		{
			"unknown strategy",
			func(r *APISimulationRequest) { r.Strategy = "winging-it" },
			"unknown payment strategy",
		},
	}

	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			req := defaultSimRequest()
			tc.mutate(&req)

			resp := postJSON(t, srv.URL+"/api/simulate", req)
			defer resp.Body.Close()
			require.Equal(t, http.StatusBadRequest, resp.StatusCode)

			var body APISimulationResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.False(t, body.Success)
			assert.Contains(t, body.Error, tc.expectedError)
		})
	}
}

func TestWebServer_PostOnlyEndpoints(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{
		"/api/simulate",
		"/api/sensitivity",
		"/api/solve",
		"/api/export/csv",
		"/api/export/pdf",
	} {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode, "GET %s", path)
	}
}

// =============================================================================
// Config and presets
// =============================================================================

func TestWebServer_ConfigEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/config")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var cfg Config
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&cfg))

	// Config rates stay in fraction form on this endpoint
	assert.InDelta(t, 1000000, cfg.Property.PurchasePrice, 0.001)
	assert.InDelta(t, 0.10, cfg.Loan.AnnualInterestRate, 1e-9)
	assert.Equal(t, 20, cfg.Loan.TermYears)
	assert.InDelta(t, 0.05, cfg.Rental.RentalEscalation, 1e-9)
	assert.Equal(t, "access-bond", cfg.Simulation.Strategy)
	assert.InDelta(t, 0.01, cfg.Sensitivity.StepSize, 1e-9)
}

func TestWebServer_PresetsEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/presets")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var presets []APIPreset
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&presets))
	require.Len(t, presets, len(ScenarioPresets))

	assert.Equal(t, "default", presets[0].ID)
	// Preset requests arrive in dashboard percent form, ready to populate inputs
	assert.InDelta(t, 10.0, presets[0].Request.AnnualInterestRate, 1e-9)
	assert.InDelta(t, 5.0, presets[0].Request.RentalEscalation, 1e-9)

	for _, p := range presets {
		assert.NotEmpty(t, p.Name, "preset %s", p.ID)
		assert.NotEmpty(t, p.Description, "preset %s", p.ID)
		_, err := ParsePaymentStrategy(p.Request.Strategy)
		assert.NoError(t, err, "preset %s strategy", p.ID)
	}
}

// =============================================================================
// Sensitivity and solver endpoints
// =============================================================================

func TestWebServer_SensitivityExplicitRanges(t *testing.T) {
	srv := newTestServer(t)

	req := APISensitivityRequest{
		APISimulationRequest: defaultSimRequest(),
		CapitalGrowthMin:     2,
		CapitalGrowthMax:     6,
		RentalEscalationMin:  3,
		RentalEscalationMax:  7,
		StepSize:             2,
	}

	resp := postJSON(t, srv.URL+"/api/sensitivity", req)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body APISensitivityResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.True(t, body.Success, "response error: %s", body.Error)
	require.NotNil(t, body.Grid)

	// 2% to 6% and 3% to 7% in 2% steps
	assert.Len(t, body.Grid.CapitalGrowthRates, 3)
	assert.Len(t, body.Grid.RentalEscalationRates, 3)
	require.Len(t, body.Grid.Cells, 3)
	for _, row := range body.Grid.Cells {
		assert.Len(t, row, 3)
	}
	assert.InDelta(t, 0.02, body.Grid.CapitalGrowthRates[0], 1e-9)
}

func TestWebServer_SensitivityDefaultRanges(t *testing.T) {
	srv := newTestServer(t)

	// No ranges in the request selects the config file sweep, 2-6% by 1%
	req := APISensitivityRequest{APISimulationRequest: defaultSimRequest()}

	resp := postJSON(t, srv.URL+"/api/sensitivity", req)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body APISensitivityResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.True(t, body.Success, "response error: %s", body.Error)
	require.NotNil(t, body.Grid)

	assert.Len(t, body.Grid.CapitalGrowthRates, 5)
	assert.Len(t, body.Grid.RentalEscalationRates, 5)
}

func TestWebServer_SolveEndpoint(t *testing.T) {
	srv := newTestServer(t)

	req := APISolveRequest{
		APISimulationRequest: defaultSimRequest(),
		TargetPayoffMonth:    120,
	}

	resp := postJSON(t, srv.URL+"/api/solve", req)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body APISolveResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.True(t, body.Success, "response error: %s", body.Error)

	assert.Greater(t, body.RequiredRent, 0.0)
	assert.NotZero(t, body.PayoffMonth)
	assert.LessOrEqual(t, body.PayoffMonth, 120)
	require.NotNil(t, body.Summary)
	assert.Equal(t, "Access Bond", body.Summary.Strategy)
}

func TestWebServer_SolveRejectsBadTarget(t *testing.T) {
	srv := newTestServer(t)

	req := APISolveRequest{
		APISimulationRequest: defaultSimRequest(),
		TargetPayoffMonth:    0,
	}

	resp := postJSON(t, srv.URL+"/api/solve", req)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body APISolveResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.False(t, body.Success)
	assert.Contains(t, body.Error, "target payoff month must be between 1 and 240")
}

// =============================================================================
// Exports
// =============================================================================

func TestWebServer_ExportCSV(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/export/csv", defaultSimRequest())
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")
	assert.Equal(t, `attachment; filename="schedule-accessbond.csv"`,
		resp.Header.Get("Content-Disposition"))

	rows, err := csv.NewReader(resp.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 241, "header plus one row per month")

	assert.Equal(t, scheduleCSVHeader, rows[0])
	assert.Equal(t, "1", rows[1][0])
	assert.Equal(t, "240", rows[240][0])
}

func TestWebServer_ExportPDF(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/export/pdf", defaultSimRequest())
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Equal(t, `attachment; filename="property-roi-accessbond.pdf"`,
		resp.Header.Get("Content-Disposition"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Greater(t, len(body), 1000, "PDF should have real content")
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")), "body should start with the PDF magic")
}

// =============================================================================
// Dashboard page
// =============================================================================

func TestWebServer_ServesDashboard(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("<!DOCTYPE html>")))
	assert.Contains(t, string(body), "/api/simulate")

	// The embedded favicon URI is percent-encoded, so the handler must
	// emit the page bytes untouched.
	assert.Contains(t, string(body), "data:image/svg+xml,%3Csvg")
	assert.Equal(t, webUIHTML, string(body))
}

func TestWebServer_UnknownPathIs404(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/definitely-not-here")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
