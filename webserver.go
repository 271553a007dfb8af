package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// WebServer serves the browser dashboard and its JSON API
type WebServer struct {
	config *Config
	addr   string
	logger *zap.Logger
}

// NewWebServer creates a new web server instance. A nil logger is replaced
// with a no-op logger so embedded callers don't have to supply one.
func NewWebServer(config *Config, addr string, logger *zap.Logger) *WebServer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebServer{
		config: config,
		addr:   addr,
		logger: logger,
	}
}

// APISimulationRequest carries one complete parameter set.
// Rates are percentages as shown in the dashboard inputs (10 means 10%),
// unlike config files where rates are fractions.
type APISimulationRequest struct {
	PurchasePrice      float64 `json:"purchase_price"`
	Deposit            float64 `json:"deposit"`
	UpfrontFees        float64 `json:"upfront_fees"`
	AnnualInterestRate float64 `json:"annual_interest_rate"`
	TermYears          int     `json:"term_years"`
	MonthlyRent        float64 `json:"monthly_rent"`
	MonthlyCosts       float64 `json:"monthly_costs"`
	RentalEscalation   float64 `json:"rental_escalation"`
	CostsEscalation    float64 `json:"costs_escalation"`
	CapitalGrowth      float64 `json:"capital_growth"`
	Strategy           string  `json:"strategy"`
}

// parameters converts the wire form into simulation parameters.
// Validation happens when the simulation runs.
func (req *APISimulationRequest) parameters() (SimulationParameters, error) {
	strategy, err := ParsePaymentStrategy(req.Strategy)
	if err != nil {
		return SimulationParameters{}, err
	}
	return SimulationParameters{
		PurchasePrice:        req.PurchasePrice,
		Deposit:              req.Deposit,
		UpfrontFees:          req.UpfrontFees,
		AnnualInterestRate:   req.AnnualInterestRate / 100,
		TermYears:            req.TermYears,
		StartingMonthlyRent:  req.MonthlyRent,
		StartingMonthlyCosts: req.MonthlyCosts,
		RentalEscalation:     req.RentalEscalation / 100,
		CostsEscalation:      req.CostsEscalation / 100,
		CapitalGrowth:        req.CapitalGrowth / 100,
		Strategy:             strategy,
	}, nil
}

// requestFromParameters converts simulation parameters back into wire form,
// used when handing presets to the dashboard.
func requestFromParameters(p SimulationParameters) APISimulationRequest {
	return APISimulationRequest{
		PurchasePrice:      p.PurchasePrice,
		Deposit:            p.Deposit,
		UpfrontFees:        p.UpfrontFees,
		AnnualInterestRate: p.AnnualInterestRate * 100,
		TermYears:          p.TermYears,
		MonthlyRent:        p.StartingMonthlyRent,
		MonthlyCosts:       p.StartingMonthlyCosts,
		RentalEscalation:   p.RentalEscalation * 100,
		CostsEscalation:    p.CostsEscalation * 100,
		CapitalGrowth:      p.CapitalGrowth * 100,
		Strategy:           p.Strategy.ID(),
	}
}

// APIMonthRecord is one schedule row in wire form
type APIMonthRecord struct {
	Month             int     `json:"month"`
	Year              int     `json:"year"`
	Rent              float64 `json:"rent"`
	Costs             float64 `json:"costs"`
	NetRent           float64 `json:"net_rent"`
	TotalPayment      float64 `json:"total_payment"`
	BasePayment       float64 `json:"base_payment"`
	ExtraPayment      float64 `json:"extra_payment"`
	InterestPaid      float64 `json:"interest_paid"`
	InterestFromRent  float64 `json:"interest_from_rent"`
	InterestFromCash  float64 `json:"interest_from_cash"`
	PrincipalFromRent float64 `json:"principal_from_rent"`
	PrincipalFromCash float64 `json:"principal_from_cash"`
	LoanBalance       float64 `json:"loan_balance"`
	Equity            float64 `json:"equity"`
	GainFromRent      float64 `json:"gain_from_rent"`
	ROIFromRent       float64 `json:"roi_from_rent"`
	PropertyValue     float64 `json:"property_value"`
	CapitalGain       float64 `json:"capital_gain"`
	ROIFromCapital    float64 `json:"roi_from_capital"`
	TotalReturn       float64 `json:"total_return"`
	TotalROI          float64 `json:"total_roi"`
	CashInvested      float64 `json:"cash_invested"`
}

// APIResultSummary is the headline result set for API responses
type APIResultSummary struct {
	Strategy               string  `json:"strategy"`
	LoanAmount             float64 `json:"loan_amount"`
	InitialOutlay          float64 `json:"initial_outlay"`
	ContractPayment        float64 `json:"contract_payment"`
	TotalMonths            int     `json:"total_months"`
	PayoffMonth            int     `json:"payoff_month,omitempty"`
	TotalInterestPaid      float64 `json:"total_interest_paid"`
	TotalInterestFromCash  float64 `json:"total_interest_from_cash"`
	TotalPrincipalFromRent float64 `json:"total_principal_from_rent"`
	TotalExtraPaid         float64 `json:"total_extra_paid"`
	FinalEquity            float64 `json:"final_equity"`
	FinalPropertyValue     float64 `json:"final_property_value"`
	FinalCashInvested      float64 `json:"final_cash_invested"`
	FinalGainFromRent      float64 `json:"final_gain_from_rent"`
	FinalCapitalGain       float64 `json:"final_capital_gain"`
	FinalTotalReturn       float64 `json:"final_total_return"`
	FinalTotalROI          float64 `json:"final_total_roi"`
}

// APISimulationResponse represents the simulation results
type APISimulationResponse struct {
	Success bool              `json:"success"`
	Error   string            `json:"error,omitempty"`
	Summary *APIResultSummary `json:"summary,omitempty"`
	Records []APIMonthRecord  `json:"records,omitempty"`
}

// APISensitivityRequest sweeps capital growth against rental escalation.
// Range fields are percentages; leaving them all zero selects the ranges
// from the server's config file.
type APISensitivityRequest struct {
	APISimulationRequest
	CapitalGrowthMin    float64 `json:"capital_growth_min"`
	CapitalGrowthMax    float64 `json:"capital_growth_max"`
	RentalEscalationMin float64 `json:"rental_escalation_min"`
	RentalEscalationMax float64 `json:"rental_escalation_max"`
	StepSize            float64 `json:"step_size"`
}

// APISensitivityResponse carries the computed grid
type APISensitivityResponse struct {
	Success bool             `json:"success"`
	Error   string           `json:"error,omitempty"`
	Grid    *SensitivityGrid `json:"grid,omitempty"`
}

// APISolveRequest asks for the starting rent that settles the bond in time
type APISolveRequest struct {
	APISimulationRequest
	TargetPayoffMonth int `json:"target_payoff_month"`
}

// APISolveResponse carries the solved rent and its verification run
type APISolveResponse struct {
	Success      bool              `json:"success"`
	Error        string            `json:"error,omitempty"`
	RequiredRent float64           `json:"required_rent,omitempty"`
	PayoffMonth  int               `json:"payoff_month,omitempty"`
	Summary      *APIResultSummary `json:"summary,omitempty"`
}

// APIPreset is a bundled scenario in wire form
type APIPreset struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Request     APISimulationRequest `json:"request"`
}

// buildMux wires up all routes. Shared between Start and StartForEmbedded.
func (ws *WebServer) buildMux() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/", ws.handleIndex)
	mux.HandleFunc("/api/config", ws.handleGetConfig)
	mux.HandleFunc("/api/presets", ws.handleGetPresets)
	mux.HandleFunc("/api/simulate", ws.handleSimulate)
	mux.HandleFunc("/api/sensitivity", ws.handleSensitivity)
	mux.HandleFunc("/api/solve", ws.handleSolve)
	mux.HandleFunc("/api/export/csv", ws.handleExportCSV)
	mux.HandleFunc("/api/export/pdf", ws.handleExportPDF)

	return mux
}

// Start runs the web server and blocks. It opens the dashboard in the
// system browser once the listener is up.
func (ws *WebServer) Start() error {
	mux := ws.buildMux()

	// Listen on the address (use :0 for auto-assign)
	listener, err := net.Listen("tcp", ws.addr)
	if err != nil {
		return err
	}

	// Get the actual address (with assigned port)
	actualAddr := listener.Addr().String()
	url := fmt.Sprintf("http://%s", actualAddr)

	// If listening on all interfaces, use localhost for the URL
	if strings.HasPrefix(actualAddr, ":") || strings.HasPrefix(actualAddr, "0.0.0.0:") {
		port := actualAddr[strings.LastIndex(actualAddr, ":")+1:]
		url = fmt.Sprintf("http://localhost:%s", port)
	}

	ws.logger.Info("starting web server", zap.String("addr", actualAddr), zap.String("url", url))

	go openBrowser(url)

	return http.Serve(listener, mux)
}

// StartForEmbedded starts the server and returns the URL and a cleanup
// function. Unlike Start(), this does NOT open the browser and does NOT
// block. The caller is responsible for stopping the server via cleanup.
func (ws *WebServer) StartForEmbedded() (url string, cleanup func(), err error) {
	mux := ws.buildMux()

	listener, err := net.Listen("tcp", ws.addr)
	if err != nil {
		return "", nil, err
	}

	actualAddr := listener.Addr().String()
	url = fmt.Sprintf("http://%s", actualAddr)
	if strings.HasPrefix(actualAddr, ":") || strings.HasPrefix(actualAddr, "0.0.0.0:") {
		port := actualAddr[strings.LastIndex(actualAddr, ":")+1:]
		url = fmt.Sprintf("http://localhost:%s", port)
	}

	ws.logger.Info("starting embedded web server", zap.String("addr", actualAddr))

	server := &http.Server{Handler: mux}

	go func() {
		if err := server.Serve(listener); err != http.ErrServerClosed {
			ws.logger.Error("server error", zap.Error(err))
		}
	}()

	cleanup = func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}

	return url, cleanup, nil
}

// handleIndex serves the main web UI
func (ws *WebServer) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	io.WriteString(w, webUIHTML)
}

// activeConfig returns the loaded config, falling back to embedded defaults
func (ws *WebServer) activeConfig() *Config {
	if ws.config != nil {
		return ws.config
	}
	cfg, err := LoadDefaultConfig()
	if err != nil {
		ws.logger.Error("loading default config", zap.Error(err))
		return nil
	}
	return cfg
}

// handleGetConfig returns the current configuration (rates as fractions,
// exactly as stored in config files)
func (ws *WebServer) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	cfg := ws.activeConfig()
	if cfg == nil {
		json.NewEncoder(w).Encode(map[string]string{"error": "no configuration available"})
		return
	}
	json.NewEncoder(w).Encode(cfg)
}

// handleGetPresets returns the bundled scenario presets
func (ws *WebServer) handleGetPresets(w http.ResponseWriter, r *http.Request) {
	presets := make([]APIPreset, 0, len(ScenarioPresets))
	for _, p := range ScenarioPresets {
		presets = append(presets, APIPreset{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Request:     requestFromParameters(p.Params),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(presets)
}

// convertSummary flattens a finished run into the wire summary
func convertSummary(result SimulationResult) APIResultSummary {
	return APIResultSummary{
		Strategy:               result.Params.Strategy.String(),
		LoanAmount:             result.Params.LoanAmount(),
		InitialOutlay:          result.Params.InitialOutlay(),
		ContractPayment:        result.Params.ContractPayment(),
		TotalMonths:            result.Params.TotalPeriods(),
		PayoffMonth:            result.Summary.PayoffMonth,
		TotalInterestPaid:      result.Summary.TotalInterestPaid,
		TotalInterestFromCash:  result.Summary.TotalInterestFromCash,
		TotalPrincipalFromRent: result.Summary.TotalPrincipalFromRent,
		TotalExtraPaid:         result.Summary.TotalExtraPaid,
		FinalEquity:            result.Summary.FinalEquity,
		FinalPropertyValue:     result.Summary.FinalPropertyValue,
		FinalCashInvested:      result.Summary.FinalCashInvested,
		FinalGainFromRent:      result.Summary.FinalGainFromRent,
		FinalCapitalGain:       result.Summary.FinalCapitalGain,
		FinalTotalReturn:       result.Summary.FinalTotalReturn,
		FinalTotalROI:          result.Summary.FinalTotalROI,
	}
}

// convertRecords maps the schedule into wire rows
func convertRecords(result SimulationResult) []APIMonthRecord {
	records := make([]APIMonthRecord, 0, len(result.Records))
	for _, rec := range result.Records {
		records = append(records, APIMonthRecord{
			Month:             rec.Month,
			Year:              rec.Year,
			Rent:              rec.Rent,
			Costs:             rec.Costs,
			NetRent:           rec.NetRent,
			TotalPayment:      rec.TotalPayment,
			BasePayment:       rec.BasePayment,
			ExtraPayment:      rec.ExtraPayment,
			InterestPaid:      rec.InterestPaid,
			InterestFromRent:  rec.InterestFromRent,
			InterestFromCash:  rec.InterestFromCash,
			PrincipalFromRent: rec.PrincipalFromRent,
			PrincipalFromCash: rec.PrincipalFromCash,
			LoanBalance:       rec.LoanBalance,
			Equity:            rec.Equity,
			GainFromRent:      rec.GainFromRent,
			ROIFromRent:       rec.ROIFromRent,
			PropertyValue:     rec.PropertyValue,
			CapitalGain:       rec.CapitalGain,
			ROIFromCapital:    rec.ROIFromCapital,
			TotalReturn:       rec.TotalReturn,
			TotalROI:          rec.TotalROI,
			CashInvested:      rec.CashInvested,
		})
	}
	return records
}

// handleSimulate runs one simulation from a JSON parameter set.
// The endpoint is stateless: every request carries its own parameters.
func (ws *WebServer) handleSimulate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req APISimulationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendJSONError(w, "Invalid request body: "+err.Error())
		return
	}

	params, err := req.parameters()
	if err != nil {
		sendJSONError(w, err.Error())
		return
	}

	result, err := Simulate(params)
	if err != nil {
		ws.logger.Warn("simulation rejected", zap.Error(err))
		sendJSONError(w, err.Error())
		return
	}

	summary := convertSummary(result)
	response := APISimulationResponse{
		Success: true,
		Summary: &summary,
		Records: convertRecords(result),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// handleSensitivity computes the rate sweep grid
func (ws *WebServer) handleSensitivity(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req APISensitivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendJSONError(w, "Invalid request body: "+err.Error())
		return
	}

	params, err := req.parameters()
	if err != nil {
		sendJSONError(w, err.Error())
		return
	}

	opts := GridOptions{
		CapitalGrowthMin:    req.CapitalGrowthMin / 100,
		CapitalGrowthMax:    req.CapitalGrowthMax / 100,
		RentalEscalationMin: req.RentalEscalationMin / 100,
		RentalEscalationMax: req.RentalEscalationMax / 100,
		StepSize:            req.StepSize / 100,
	}
	if opts.StepSize == 0 && opts.CapitalGrowthMax == 0 && opts.RentalEscalationMax == 0 {
		if cfg := ws.activeConfig(); cfg != nil {
			opts = cfg.GridOptions(params)
		}
	}

	grid, err := RunSensitivityGrid(params, opts)
	if err != nil {
		ws.logger.Warn("sensitivity run rejected", zap.Error(err))
		sendJSONError(w, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(APISensitivityResponse{Success: true, Grid: grid})
}

// handleSolve finds the starting rent that settles the bond by a target month
func (ws *WebServer) handleSolve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req APISolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendJSONError(w, "Invalid request body: "+err.Error())
		return
	}

	params, err := req.parameters()
	if err != nil {
		sendJSONError(w, err.Error())
		return
	}

	solution, err := SolveRequiredRent(params, req.TargetPayoffMonth)
	if err != nil {
		ws.logger.Warn("rent solve rejected", zap.Error(err))
		sendJSONError(w, err.Error())
		return
	}

	summary := convertSummary(solution.Result)
	response := APISolveResponse{
		Success:      true,
		RequiredRent: solution.RequiredRent,
		PayoffMonth:  solution.PayoffMonth,
		Summary:      &summary,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// handleExportCSV streams the full schedule as a CSV attachment
func (ws *WebServer) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req APISimulationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request: "+err.Error(), http.StatusBadRequest)
		return
	}

	params, err := req.parameters()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := Simulate(params)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	filename := fmt.Sprintf("schedule-%s.csv", strings.ToLower(result.Params.Strategy.ShortName()))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))

	if err := WriteScheduleCSV(w, result); err != nil {
		ws.logger.Error("writing csv export", zap.Error(err))
	}
}

// handleExportPDF returns the PDF report directly for browser download
func (ws *WebServer) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req APISimulationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request: "+err.Error(), http.StatusBadRequest)
		return
	}

	params, err := req.parameters()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := Simulate(params)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	pdfBuf, err := GeneratePDFReport(result)
	if err != nil {
		ws.logger.Error("generating pdf export", zap.Error(err))
		http.Error(w, "Failed to generate PDF: "+err.Error(), http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("property-roi-%s.pdf", strings.ToLower(result.Params.Strategy.ShortName()))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", pdfBuf.Len()))
	w.Write(pdfBuf.Bytes())
}

// sendJSONError sends a JSON error response
func sendJSONError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	json.NewEncoder(w).Encode(APISimulationResponse{
		Success: false,
		Error:   message,
	})
}

// webUIHTML is the embedded web interface HTML
const webUIHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Property Investment Dashboard</title>
    <link rel="icon" type="image/svg+xml" href="data:image/svg+xml,%3Csvg xmlns='http://www.w3.org/2000/svg' viewBox='0 0 64 64'%3E%3Crect x='8' y='30' width='48' height='28' rx='2' fill='%232563eb'/%3E%3Cpolygon points='32,8 58,32 6,32' fill='%231d4ed8'/%3E%3Crect x='26' y='40' width='12' height='18' fill='white'/%3E%3C/svg%3E">
    <style>
        :root {
            --primary: #2563eb;
            --primary-dark: #1d4ed8;
            --success: #16a34a;
            --warning: #ea580c;
            --danger: #dc2626;
            --bg: #f1f5f9;
            --card-bg: #ffffff;
            --text: #1e293b;
            --text-muted: #64748b;
            --border: #e2e8f0;
        }
        * { box-sizing: border-box; margin: 0; padding: 0; }
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            background: var(--bg);
            color: var(--text);
            line-height: 1.6;
        }
        .header {
            background: linear-gradient(135deg, var(--primary) 0%, var(--primary-dark) 100%);
            color: white;
            padding: 1.25rem 2rem;
            box-shadow: 0 2px 4px rgba(0,0,0,0.1);
        }
        .header h1 { font-size: 1.5rem; font-weight: 600; }
        .header p { opacity: 0.9; font-size: 0.875rem; }
        .container {
            display: flex;
            height: calc(100vh - 80px);
            overflow: hidden;
        }
        .config-panel {
            width: 360px;
            min-width: 360px;
            background: var(--card-bg);
            border-right: 1px solid var(--border);
            overflow-y: auto;
            padding: 0.75rem;
        }
        .results-panel {
            flex: 1;
            overflow-y: auto;
            padding: 1rem;
        }
        .grid { display: grid; gap: 1rem; }
        .grid-2 { grid-template-columns: 1fr 1fr; }
        @media (max-width: 1100px) {
            .grid-2 { grid-template-columns: 1fr; }
        }
        .card {
            background: var(--card-bg);
            border-radius: 8px;
            padding: 1rem;
            margin-bottom: 0.75rem;
            box-shadow: 0 1px 3px rgba(0,0,0,0.08);
        }
        .card h2 {
            font-size: 0.8rem;
            font-weight: 600;
            text-transform: uppercase;
            letter-spacing: 0.03em;
            color: var(--text-muted);
            margin-bottom: 0.6rem;
        }
        .form-group { margin-bottom: 0.5rem; }
        .form-group label {
            display: block;
            font-size: 0.7rem;
            font-weight: 500;
            color: var(--text-muted);
            margin-bottom: 0.15rem;
        }
        .form-group input, .form-group select {
            width: 100%;
            padding: 0.4rem 0.5rem;
            font-size: 0.85rem;
            border: 1px solid var(--border);
            border-radius: 6px;
        }
        .form-group input:focus, .form-group select:focus {
            outline: none;
            border-color: var(--primary);
        }
        .form-row { display: grid; grid-template-columns: 1fr 1fr; gap: 0.5rem; }
        .btn {
            display: inline-flex;
            align-items: center;
            justify-content: center;
            gap: 0.3rem;
            padding: 0.5rem 1rem;
            font-size: 0.8rem;
            font-weight: 500;
            border: none;
            border-radius: 6px;
            cursor: pointer;
            transition: all 0.2s;
        }
        .btn-primary { background: var(--primary); color: white; }
        .btn-primary:hover { background: var(--primary-dark); }
        .btn-primary:disabled { background: var(--text-muted); cursor: not-allowed; }
        .btn-secondary {
            background: var(--bg);
            color: var(--text);
            border: 1px solid var(--border);
        }
        .btn-secondary:hover { background: var(--border); }
        .btn-group { display: flex; gap: 0.5rem; flex-wrap: wrap; }
        .mode-selector {
            display: grid;
            grid-template-columns: 1fr 1fr;
            gap: 0.3rem;
        }
        .mode-btn {
            padding: 0.4rem;
            border: 2px solid var(--border);
            border-radius: 6px;
            background: white;
            cursor: pointer;
            text-align: center;
            transition: all 0.2s;
        }
        .mode-btn:hover { border-color: var(--primary); }
        .mode-btn.active {
            border-color: var(--primary);
            background: rgba(37, 99, 235, 0.05);
        }
        .mode-btn .title { font-weight: 600; font-size: 0.75rem; }
        .mode-btn .desc { font-size: 0.6rem; color: var(--text-muted); }
        .results-grid {
            display: grid;
            grid-template-columns: repeat(auto-fit, minmax(170px, 1fr));
            gap: 0.75rem;
            margin-bottom: 1rem;
        }
        .metric {
            text-align: center;
            padding: 0.9rem;
            background: var(--card-bg);
            border-radius: 8px;
            box-shadow: 0 1px 3px rgba(0,0,0,0.08);
        }
        .metric-value {
            font-size: 1.3rem;
            font-weight: 700;
            color: var(--primary);
        }
        .metric-label {
            font-size: 0.65rem;
            color: var(--text-muted);
            text-transform: uppercase;
        }
        .metric.success .metric-value { color: var(--success); }
        .metric.warning .metric-value { color: var(--warning); }
        .metric.danger .metric-value { color: var(--danger); }
        .schedule-table {
            width: 100%;
            border-collapse: collapse;
            font-size: 0.8rem;
        }
        .schedule-table th, .schedule-table td {
            padding: 0.45rem 0.6rem;
            text-align: right;
            border-bottom: 1px solid var(--border);
            white-space: nowrap;
        }
        .schedule-table th {
            background: var(--bg);
            font-weight: 600;
            font-size: 0.7rem;
            text-transform: uppercase;
            color: var(--text-muted);
        }
        .schedule-table th:first-child, .schedule-table td:first-child { text-align: left; }
        .schedule-table tr:hover { background: rgba(37, 99, 235, 0.02); }
        .schedule-table .payoff-row { background: rgba(22, 163, 74, 0.1); font-weight: 600; }
        .table-scroll { overflow-x: auto; }
        .chart { width: 100%; height: auto; }
        .chart .gridline { stroke: var(--border); stroke-width: 1; }
        .chart .zeroline { stroke: var(--text-muted); stroke-width: 1; stroke-dasharray: 4 3; }
        .chart .payoffline { stroke: var(--success); stroke-width: 1.5; stroke-dasharray: 5 4; }
        .chart .tick { font-size: 11px; fill: var(--text-muted); }
        .legend { display: flex; gap: 1rem; flex-wrap: wrap; margin-top: 0.4rem; font-size: 0.75rem; color: var(--text-muted); }
        .legend-item { display: inline-flex; align-items: center; gap: 0.3rem; }
        .swatch { display: inline-block; width: 10px; height: 10px; border-radius: 2px; }
        .sens-table { border-collapse: collapse; font-size: 0.75rem; }
        .sens-table th, .sens-table td {
            padding: 0.4rem 0.55rem;
            border: 1px solid var(--border);
            text-align: right;
            white-space: nowrap;
        }
        .sens-table th { background: var(--bg); color: var(--text-muted); }
        .sens-table .cell-best { background: rgba(22, 163, 74, 0.15); }
        .sens-table .cell-ok { background: rgba(37, 99, 235, 0.08); }
        .sens-table .cell-warn { background: rgba(234, 88, 12, 0.12); }
        .checkbox-label {
            display: flex;
            align-items: center;
            gap: 0.4rem;
            font-size: 0.75rem;
            color: var(--text);
            cursor: pointer;
        }
        .checkbox-label input[type="checkbox"] { width: auto; margin: 0; }
        .muted { color: var(--text-muted); font-size: 0.8rem; }
        .error-box {
            background: rgba(220, 38, 38, 0.08);
            border: 1px solid var(--danger);
            color: var(--danger);
            border-radius: 6px;
            padding: 0.6rem 0.9rem;
            margin-bottom: 1rem;
            font-size: 0.85rem;
        }
        details summary {
            font-size: 0.75rem;
            font-weight: 600;
            color: var(--text-muted);
            cursor: pointer;
            padding: 0.25rem 0;
        }
        details summary:hover { color: var(--primary); }
        .card-head { display: flex; justify-content: space-between; align-items: center; margin-bottom: 0.6rem; }
        .card-head h2 { margin-bottom: 0; }
    </style>
</head>
<body>
    <div class="header">
        <h1>Property Investment Dashboard</h1>
        <p>Rental ROI, access bond payoff and capital growth</p>
    </div>
    <div class="container">
        <div class="config-panel">
            <div class="card">
                <h2>Scenario</h2>
                <div class="form-group">
                    <label for="preset">Preset</label>
                    <select id="preset"></select>
                </div>
                <p class="muted" id="preset-desc"></p>
                <div class="form-group" style="margin-top:0.5rem;">
                    <label>Payment strategy</label>
                    <div class="mode-selector">
                        <div class="mode-btn active" data-strategy="access-bond">
                            <div class="title">Access Bond</div>
                            <div class="desc">Surplus rent pays down the bond</div>
                        </div>
                        <div class="mode-btn" data-strategy="contract-only">
                            <div class="title">Contract Only</div>
                            <div class="desc">Only the contract payment</div>
                        </div>
                    </div>
                </div>
            </div>
            <div class="card">
                <h2>Property</h2>
                <div class="form-group">
                    <label for="purchase-price">Purchase price (R)</label>
                    <input type="text" id="purchase-price" value="1,000,000">
                </div>
                <div class="form-row">
                    <div class="form-group">
                        <label for="deposit">Deposit (R)</label>
                        <input type="text" id="deposit" value="200,000">
                    </div>
                    <div class="form-group">
                        <label for="upfront-fees">Upfront fees (R)</label>
                        <input type="text" id="upfront-fees" value="50,000">
                    </div>
                </div>
            </div>
            <div class="card">
                <h2>Bond</h2>
                <div class="form-row">
                    <div class="form-group">
                        <label for="interest-rate">Interest rate (%)</label>
                        <input type="number" id="interest-rate" value="10.0" step="0.1">
                    </div>
                    <div class="form-group">
                        <label for="term-years">Term (years)</label>
                        <input type="number" id="term-years" value="20" step="1" min="1">
                    </div>
                </div>
            </div>
            <div class="card">
                <h2>Rental</h2>
                <div class="form-row">
                    <div class="form-group">
                        <label for="monthly-rent">Monthly rent (R)</label>
                        <input type="text" id="monthly-rent" value="15,000">
                    </div>
                    <div class="form-group">
                        <label for="monthly-costs">Monthly costs (R)</label>
                        <input type="text" id="monthly-costs" value="5,000">
                    </div>
                </div>
                <div class="form-row">
                    <div class="form-group">
                        <label for="rental-escalation">Rent escalation (%/y)</label>
                        <input type="number" id="rental-escalation" value="5.0" step="0.1">
                    </div>
                    <div class="form-group">
                        <label for="costs-escalation">Costs escalation (%/y)</label>
                        <input type="number" id="costs-escalation" value="3.0" step="0.1">
                    </div>
                </div>
            </div>
            <div class="card">
                <h2>Growth</h2>
                <div class="form-group">
                    <label for="capital-growth">Capital growth (%/y)</label>
                    <input type="number" id="capital-growth" value="4.0" step="0.1">
                </div>
            </div>
            <div class="card">
                <div class="btn-group">
                    <button id="run-btn" class="btn btn-primary">Run Simulation</button>
                    <button id="csv-btn" class="btn btn-secondary">CSV</button>
                    <button id="pdf-btn" class="btn btn-secondary">PDF</button>
                </div>
            </div>
            <div class="card">
                <details>
                    <summary>Sensitivity sweep</summary>
                    <div class="form-row" style="margin-top:0.5rem;">
                        <div class="form-group">
                            <label for="growth-min">Growth min (%)</label>
                            <input type="number" id="growth-min" value="2.0" step="0.5">
                        </div>
                        <div class="form-group">
                            <label for="growth-max">Growth max (%)</label>
                            <input type="number" id="growth-max" value="6.0" step="0.5">
                        </div>
                    </div>
                    <div class="form-row">
                        <div class="form-group">
                            <label for="esc-min">Escalation min (%)</label>
                            <input type="number" id="esc-min" value="3.0" step="0.5">
                        </div>
                        <div class="form-group">
                            <label for="esc-max">Escalation max (%)</label>
                            <input type="number" id="esc-max" value="7.0" step="0.5">
                        </div>
                    </div>
                    <div class="form-group">
                        <label for="step-size">Step (%)</label>
                        <input type="number" id="step-size" value="1.0" step="0.5" min="0.1">
                    </div>
                    <button id="sensitivity-btn" class="btn btn-secondary">Run Sweep</button>
                </details>
            </div>
            <div class="card">
                <details>
                    <summary>Required rent solver</summary>
                    <div class="form-group" style="margin-top:0.5rem;">
                        <label for="target-month">Settle bond by month</label>
                        <input type="number" id="target-month" value="120" step="12" min="1">
                    </div>
                    <button id="solve-btn" class="btn btn-secondary">Solve</button>
                </details>
            </div>
        </div>
        <div class="results-panel">
            <div id="error-box" class="error-box" style="display:none;"></div>
            <div id="summary-cards" class="results-grid"></div>
            <div class="grid grid-2">
                <div class="card">
                    <h2>Return on investment (%)</h2>
                    <div id="chart-roi"><p class="muted">Run a simulation to see results.</p></div>
                </div>
                <div class="card">
                    <h2>Cumulative gains (R)</h2>
                    <div id="chart-gain"></div>
                </div>
            </div>
            <div class="card" id="sensitivity-card" style="display:none;">
                <h2>Sensitivity: capital growth vs rent escalation</h2>
                <div id="sensitivity-content"></div>
            </div>
            <div class="card" id="solver-card" style="display:none;">
                <h2>Required rent</h2>
                <div id="solver-content"></div>
            </div>
            <div class="card">
                <div class="card-head">
                    <h2>Amortization schedule</h2>
                    <label class="checkbox-label"><input type="checkbox" id="show-all-months"> Show every month</label>
                </div>
                <div class="table-scroll">
                    <div id="schedule-content"><p class="muted">No schedule yet.</p></div>
                </div>
            </div>
        </div>
    </div>
    <script>
        let lastData = null;
        let currentStrategy = 'access-bond';
        let presets = [];
        let runTimer = null;

        function parseMoney(val) {
            if (!val) return 0;
            val = val.toString().toLowerCase().replace(/[,\s]/g, '');
            if (val.endsWith('m')) return parseFloat(val) * 1000000;
            if (val.endsWith('k')) return parseFloat(val) * 1000;
            return parseFloat(val) || 0;
        }

        function formatMoney(val) {
            if (val === undefined || val === null || isNaN(val)) return 'N/A';
            const sign = val < 0 ? '-' : '';
            const abs = Math.abs(val);
            if (abs >= 1000000) return sign + 'R' + (abs / 1000000).toFixed(2) + 'M';
            if (abs >= 1000) return sign + 'R' + Math.round(abs / 1000) + 'k';
            return sign + 'R' + Math.round(abs);
        }

        function formatMoneyFull(val) {
            if (val === undefined || val === null || isNaN(val)) return 'N/A';
            const sign = val < 0 ? '-' : '';
            return sign + 'R ' + Math.round(Math.abs(val)).toLocaleString('en-ZA');
        }

        function formatPercent(val) {
            if (val === undefined || val === null || isNaN(val)) return 'N/A';
            return val.toFixed(1) + '%';
        }

        function showError(message) {
            const box = document.getElementById('error-box');
            box.textContent = message;
            box.style.display = 'block';
        }

        function clearError() {
            document.getElementById('error-box').style.display = 'none';
        }

        function buildRequest() {
            return {
                purchase_price: parseMoney(document.getElementById('purchase-price').value),
                deposit: parseMoney(document.getElementById('deposit').value),
                upfront_fees: parseMoney(document.getElementById('upfront-fees').value),
                annual_interest_rate: parseFloat(document.getElementById('interest-rate').value) || 0,
                term_years: parseInt(document.getElementById('term-years').value) || 0,
                monthly_rent: parseMoney(document.getElementById('monthly-rent').value),
                monthly_costs: parseMoney(document.getElementById('monthly-costs').value),
                rental_escalation: parseFloat(document.getElementById('rental-escalation').value) || 0,
                costs_escalation: parseFloat(document.getElementById('costs-escalation').value) || 0,
                capital_growth: parseFloat(document.getElementById('capital-growth').value) || 0,
                strategy: currentStrategy
            };
        }

        async function runSimulation() {
            try {
                const res = await fetch('/api/simulate', {
                    method: 'POST',
                    headers: { 'Content-Type': 'application/json' },
                    body: JSON.stringify(buildRequest())
                });
                const data = await res.json();
                if (!data.success) {
                    showError(data.error || 'Simulation failed');
                    return;
                }
                clearError();
                lastData = data;
                renderMetrics(data);
                renderCharts(data);
                renderSchedule(data);
            } catch (err) {
                showError('Error: ' + err.message);
            }
        }

        // Debounced recompute so typing in a field doesn't fire a request per keystroke
        function scheduleRun() {
            clearTimeout(runTimer);
            runTimer = setTimeout(runSimulation, 400);
        }

        function metricHTML(label, value, cls) {
            return '<div class="metric ' + (cls || '') + '">' +
                '<div class="metric-value">' + value + '</div>' +
                '<div class="metric-label">' + label + '</div></div>';
        }

        function renderMetrics(data) {
            const s = data.summary;
            let html = '';
            html += metricHTML('Contract payment', formatMoneyFull(s.contract_payment) + '/m');
            if (s.payoff_month) {
                const saved = s.total_months - s.payoff_month;
                html += metricHTML('Bond settled', 'Month ' + s.payoff_month, 'success');
                html += metricHTML('Months saved', saved.toString(), saved > 0 ? 'success' : '');
            } else {
                html += metricHTML('Bond settled', 'Not in term', 'warning');
                html += metricHTML('Months saved', '0');
            }
            html += metricHTML('Total interest', formatMoney(s.total_interest_paid));
            html += metricHTML('Interest from cash', formatMoney(s.total_interest_from_cash),
                s.total_interest_from_cash > 0 ? 'warning' : 'success');
            html += metricHTML('Final equity', formatMoney(s.final_equity));
            html += metricHTML('Property value', formatMoney(s.final_property_value));
            html += metricHTML('Total return', formatMoney(s.final_total_return), 'success');
            html += metricHTML('Total ROI', formatPercent(s.final_total_roi),
                s.final_total_roi >= 0 ? 'success' : 'danger');
            document.getElementById('summary-cards').innerHTML = html;
        }

        // buildLineChart renders one SVG line chart from schedule records.
        // series: [{key, label, color}]. isMoney switches the y-axis format.
        function buildLineChart(records, series, isMoney, payoffMonth) {
            if (!records || records.length < 2) return '<p class="muted">Not enough data.</p>';
            const W = 760, H = 300, padL = 64, padR = 14, padT = 14, padB = 34;
            let min = 0, max = -Infinity;
            series.forEach(s => records.forEach(rec => {
                const v = rec[s.key];
                if (v < min) min = v;
                if (v > max) max = v;
            }));
            if (max <= min) max = min + 1;
            const plotW = W - padL - padR, plotH = H - padT - padB;
            const x = i => padL + i / (records.length - 1) * plotW;
            const y = v => padT + (1 - (v - min) / (max - min)) * plotH;

            let svg = '<svg viewBox="0 0 ' + W + ' ' + H + '" class="chart" preserveAspectRatio="xMidYMid meet">';
            const ticks = 5;
            for (let t = 0; t <= ticks; t++) {
                const v = min + (max - min) * t / ticks;
                const yy = y(v).toFixed(1);
                svg += '<line class="gridline" x1="' + padL + '" y1="' + yy + '" x2="' + (W - padR) + '" y2="' + yy + '"/>';
                svg += '<text class="tick" x="' + (padL - 6) + '" y="' + (parseFloat(yy) + 4) + '" text-anchor="end">' +
                    (isMoney ? formatMoney(v) : v.toFixed(0) + '%') + '</text>';
            }
            const stepMonths = records.length > 150 ? 24 : 12;
            for (let i = stepMonths - 1; i < records.length; i += stepMonths) {
                svg += '<text class="tick" x="' + x(i).toFixed(1) + '" y="' + (H - 10) + '" text-anchor="middle">Y' +
                    records[i].year + '</text>';
            }
            if (min < 0) {
                svg += '<line class="zeroline" x1="' + padL + '" y1="' + y(0).toFixed(1) + '" x2="' + (W - padR) + '" y2="' + y(0).toFixed(1) + '"/>';
            }
            if (payoffMonth && payoffMonth > 0 && payoffMonth <= records.length) {
                const px = x(payoffMonth - 1).toFixed(1);
                svg += '<line class="payoffline" x1="' + px + '" y1="' + padT + '" x2="' + px + '" y2="' + (H - padB) + '"/>';
            }
            series.forEach(s => {
                const pts = records.map((rec, i) => x(i).toFixed(1) + ',' + y(rec[s.key]).toFixed(1)).join(' ');
                svg += '<polyline points="' + pts + '" fill="none" stroke="' + s.color + '" stroke-width="2"/>';
            });
            svg += '</svg>';
            svg += '<div class="legend">' + series.map(s =>
                '<span class="legend-item"><span class="swatch" style="background:' + s.color + '"></span>' + s.label + '</span>'
            ).join('') + (payoffMonth ? '<span class="legend-item"><span class="swatch" style="background:var(--success)"></span>Bond settled</span>' : '') + '</div>';
            return svg;
        }

        function renderCharts(data) {
            const payoff = data.summary.payoff_month || 0;
            document.getElementById('chart-roi').innerHTML = buildLineChart(data.records, [
                { key: 'roi_from_rent', label: 'ROI from rent', color: '#16a34a' },
                { key: 'roi_from_capital', label: 'ROI from capital', color: '#ea580c' },
                { key: 'total_roi', label: 'Total ROI', color: '#2563eb' }
            ], false, payoff);
            document.getElementById('chart-gain').innerHTML = buildLineChart(data.records, [
                { key: 'gain_from_rent', label: 'Gain from rent', color: '#16a34a' },
                { key: 'capital_gain', label: 'Capital gain', color: '#ea580c' },
                { key: 'total_return', label: 'Total return', color: '#2563eb' }
            ], true, payoff);
        }

        function renderSchedule(data) {
            const showAll = document.getElementById('show-all-months').checked;
            const payoff = data.summary.payoff_month || 0;
            const rows = data.records.filter((rec, i) =>
                showAll || rec.month === 1 || rec.month % 12 === 0 || rec.month === payoff || i === data.records.length - 1);

            let html = '<table class="schedule-table"><thead><tr>' +
                '<th>Month</th><th>Year</th><th>Rent</th><th>Net Rent</th><th>Payment</th>' +
                '<th>Extra</th><th>Interest</th><th>Balance</th><th>Equity</th><th>Value</th><th>Total ROI</th>' +
                '</tr></thead><tbody>';
            rows.forEach(rec => {
                const cls = rec.month === payoff ? ' class="payoff-row"' : '';
                html += '<tr' + cls + '><td>' + rec.month + '</td><td>' + rec.year + '</td>' +
                    '<td>' + formatMoneyFull(rec.rent) + '</td>' +
                    '<td>' + formatMoneyFull(rec.net_rent) + '</td>' +
                    '<td>' + formatMoneyFull(rec.total_payment) + '</td>' +
                    '<td>' + formatMoneyFull(rec.extra_payment) + '</td>' +
                    '<td>' + formatMoneyFull(rec.interest_paid) + '</td>' +
                    '<td>' + formatMoneyFull(rec.loan_balance) + '</td>' +
                    '<td>' + formatMoneyFull(rec.equity) + '</td>' +
                    '<td>' + formatMoneyFull(rec.property_value) + '</td>' +
                    '<td>' + formatPercent(rec.total_roi) + '</td></tr>';
            });
            html += '</tbody></table>';
            document.getElementById('schedule-content').innerHTML = html;
        }

        async function runSensitivity() {
            const btn = document.getElementById('sensitivity-btn');
            btn.disabled = true;
            try {
                const req = buildRequest();
                req.capital_growth_min = parseFloat(document.getElementById('growth-min').value) || 0;
                req.capital_growth_max = parseFloat(document.getElementById('growth-max').value) || 0;
                req.rental_escalation_min = parseFloat(document.getElementById('esc-min').value) || 0;
                req.rental_escalation_max = parseFloat(document.getElementById('esc-max').value) || 0;
                req.step_size = parseFloat(document.getElementById('step-size').value) || 0;
                const res = await fetch('/api/sensitivity', {
                    method: 'POST',
                    headers: { 'Content-Type': 'application/json' },
                    body: JSON.stringify(req)
                });
                const data = await res.json();
                if (!data.success) {
                    showError(data.error || 'Sensitivity run failed');
                    return;
                }
                clearError();
                renderSensitivityGrid(data.grid);
            } catch (err) {
                showError('Error: ' + err.message);
            } finally {
                btn.disabled = false;
            }
        }

        function sensCellClass(cell, basePayoff) {
            if (!cell.payoff_month) return 'cell-warn';
            if (basePayoff && cell.payoff_month <= basePayoff) return 'cell-best';
            return 'cell-ok';
        }

        function renderSensitivityGrid(grid) {
            const basePayoff = lastData && lastData.summary ? lastData.summary.payoff_month : 0;
            let html = '<p class="muted">Each cell: total ROI at end of term, and the month the bond settles (&mdash; means not settled inside the term).</p>';
            html += '<div class="table-scroll"><table class="sens-table"><thead><tr><th>Growth \\ Escalation</th>';
            grid.rental_escalation_rates.forEach(esc => {
                html += '<th>' + (esc * 100).toFixed(1) + '%</th>';
            });
            html += '</tr></thead><tbody>';
            grid.capital_growth_rates.forEach((growth, gi) => {
                html += '<tr><th>' + (growth * 100).toFixed(1) + '%</th>';
                grid.cells[gi].forEach(cell => {
                    const payoff = cell.payoff_month ? 'm' + cell.payoff_month : '&mdash;';
                    html += '<td class="' + sensCellClass(cell, basePayoff) + '">' +
                        cell.final_total_roi.toFixed(0) + '% &middot; ' + payoff + '</td>';
                });
                html += '</tr>';
            });
            html += '</tbody></table></div>';
            document.getElementById('sensitivity-card').style.display = 'block';
            document.getElementById('sensitivity-content').innerHTML = html;
        }

        async function runSolver() {
            const btn = document.getElementById('solve-btn');
            btn.disabled = true;
            try {
                const req = buildRequest();
                req.target_payoff_month = parseInt(document.getElementById('target-month').value) || 0;
                const res = await fetch('/api/solve', {
                    method: 'POST',
                    headers: { 'Content-Type': 'application/json' },
                    body: JSON.stringify(req)
                });
                const data = await res.json();
                if (!data.success) {
                    showError(data.error || 'Solver failed');
                    return;
                }
                clearError();
                const currentRent = parseMoney(document.getElementById('monthly-rent').value);
                const diff = data.required_rent - currentRent;
                let html = '<div class="results-grid">';
                html += metricHTML('Required starting rent', formatMoneyFull(data.required_rent) + '/m');
                html += metricHTML('Settles in', 'Month ' + data.payoff_month, 'success');
                html += metricHTML('vs current rent', (diff >= 0 ? '+' : '') + formatMoneyFull(diff),
                    diff <= 0 ? 'success' : 'warning');
                html += '</div>';
                document.getElementById('solver-card').style.display = 'block';
                document.getElementById('solver-content').innerHTML = html;
            } catch (err) {
                showError('Error: ' + err.message);
            } finally {
                btn.disabled = false;
            }
        }

        async function downloadExport(path, fallbackName) {
            try {
                const res = await fetch(path, {
                    method: 'POST',
                    headers: { 'Content-Type': 'application/json' },
                    body: JSON.stringify(buildRequest())
                });
                if (!res.ok) {
                    const text = await res.text();
                    throw new Error(text || 'Server error: ' + res.status);
                }
                const blob = await res.blob();
                const disposition = res.headers.get('Content-Disposition') || '';
                const match = disposition.match(/filename="([^"]+)"/);
                const a = document.createElement('a');
                a.href = URL.createObjectURL(blob);
                a.download = match ? match[1] : fallbackName;
                document.body.appendChild(a);
                a.click();
                a.remove();
                URL.revokeObjectURL(a.href);
            } catch (err) {
                showError('Export failed: ' + err.message);
            }
        }

        function applyPreset(id) {
            const preset = presets.find(p => p.id === id);
            if (!preset) return;
            const req = preset.request;
            document.getElementById('preset-desc').textContent = preset.description;
            document.getElementById('purchase-price').value = req.purchase_price.toLocaleString('en-ZA');
            document.getElementById('deposit').value = req.deposit.toLocaleString('en-ZA');
            document.getElementById('upfront-fees').value = req.upfront_fees.toLocaleString('en-ZA');
            document.getElementById('interest-rate').value = req.annual_interest_rate.toFixed(2);
            document.getElementById('term-years').value = req.term_years;
            document.getElementById('monthly-rent').value = req.monthly_rent.toLocaleString('en-ZA');
            document.getElementById('monthly-costs').value = req.monthly_costs.toLocaleString('en-ZA');
            document.getElementById('rental-escalation').value = req.rental_escalation.toFixed(2);
            document.getElementById('costs-escalation').value = req.costs_escalation.toFixed(2);
            document.getElementById('capital-growth').value = req.capital_growth.toFixed(2);
            runSimulation();
        }

        async function loadPresets() {
            try {
                const res = await fetch('/api/presets');
                presets = await res.json();
                const select = document.getElementById('preset');
                select.innerHTML = presets.map(p =>
                    '<option value="' + p.id + '">' + p.name + '</option>').join('');
                select.addEventListener('change', () => applyPreset(select.value));
                if (presets.length > 0) {
                    document.getElementById('preset-desc').textContent = presets[0].description;
                }
            } catch (err) {
                console.log('Could not load presets:', err);
            }
        }

        async function loadConfig() {
            try {
                const res = await fetch('/api/config');
                const config = await res.json();
                if (config.property) {
                    document.getElementById('purchase-price').value = (config.property.purchase_price || 1000000).toLocaleString('en-ZA');
                    document.getElementById('deposit').value = (config.property.deposit || 0).toLocaleString('en-ZA');
                    document.getElementById('upfront-fees').value = (config.property.upfront_fees || 0).toLocaleString('en-ZA');
                }
                if (config.loan) {
                    document.getElementById('interest-rate').value = ((config.loan.annual_interest_rate || 0.10) * 100).toFixed(1);
                    document.getElementById('term-years').value = config.loan.term_years || 20;
                }
                if (config.rental) {
                    document.getElementById('monthly-rent').value = (config.rental.monthly_rent || 0).toLocaleString('en-ZA');
                    document.getElementById('monthly-costs').value = (config.rental.monthly_costs || 0).toLocaleString('en-ZA');
                    document.getElementById('rental-escalation').value = ((config.rental.rental_escalation || 0) * 100).toFixed(1);
                    document.getElementById('costs-escalation').value = ((config.rental.costs_escalation || 0) * 100).toFixed(1);
                }
                if (config.growth) {
                    document.getElementById('capital-growth').value = ((config.growth.capital_growth || 0) * 100).toFixed(1);
                }
                if (config.simulation && config.simulation.strategy) {
                    setStrategy(config.simulation.strategy);
                }
                if (config.sensitivity) {
                    const sens = config.sensitivity;
                    if (sens.capital_growth_max) {
                        document.getElementById('growth-min').value = (sens.capital_growth_min * 100).toFixed(1);
                        document.getElementById('growth-max').value = (sens.capital_growth_max * 100).toFixed(1);
                        document.getElementById('esc-min').value = (sens.rental_escalation_min * 100).toFixed(1);
                        document.getElementById('esc-max').value = (sens.rental_escalation_max * 100).toFixed(1);
                        document.getElementById('step-size').value = (sens.step_size * 100).toFixed(1);
                    }
                }
            } catch (err) {
                console.log('Could not load config:', err);
            }
            // Run initial simulation after config loaded
            runSimulation();
        }

        function setStrategy(strategy) {
            currentStrategy = strategy;
            document.querySelectorAll('.mode-btn').forEach(b => {
                b.classList.toggle('active', b.dataset.strategy === strategy);
            });
        }

        document.querySelectorAll('.mode-btn').forEach(btn => {
            btn.addEventListener('click', () => {
                setStrategy(btn.dataset.strategy);
                runSimulation();
            });
        });

        document.getElementById('run-btn').addEventListener('click', runSimulation);
        document.getElementById('csv-btn').addEventListener('click', () => downloadExport('/api/export/csv', 'schedule.csv'));
        document.getElementById('pdf-btn').addEventListener('click', () => downloadExport('/api/export/pdf', 'property-roi.pdf'));
        document.getElementById('sensitivity-btn').addEventListener('click', runSensitivity);
        document.getElementById('solve-btn').addEventListener('click', runSolver);
        document.getElementById('show-all-months').addEventListener('change', () => {
            if (lastData) renderSchedule(lastData);
        });

        ['purchase-price', 'deposit', 'upfront-fees', 'interest-rate', 'term-years',
         'monthly-rent', 'monthly-costs', 'rental-escalation', 'costs-escalation',
         'capital-growth'].forEach(id => {
            document.getElementById(id).addEventListener('input', scheduleRun);
        });

        loadPresets();
        loadConfig();
    </script>
</body>
</html>
`
