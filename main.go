package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"go.uber.org/zap"
)

func main() {
	// Custom usage message
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Property Investment ROI Simulator

Simulates a rental property bought with a fixed-rate mortgage, month by month
over the full bond term: rental income against holding costs, an access bond
that soaks up every rand of surplus rent as extra principal, and capital
appreciation of the property itself. Reports where each rand of interest and
principal came from (rental income vs your own pocket) and what the investment
returned on the cash you actually put in.

STRATEGIES:
  ACCESS BOND (default)
    Rental surplus above the required bond payment is paid straight into the
    bond as extra principal. The bond settles early; once settled, the full
    net rent accrues to you.
    - Best for: "How fast can the rent pay off my bond?"

  CONTRACT ONLY (-strategy contract-only)
    Only the contractual payment is made each month. Surplus rent stays with
    you. The bond runs its full term.
    - Best for: a baseline to measure the access bond strategy against
      (use -compare to see both side by side)

PRESETS (-preset <id>):
%s
SENSITIVITY ANALYSIS (-sensitivity)
  Re-runs the simulation across a grid of capital growth and rent escalation
  rates to show how the outcome shifts with the market. Ranges come from the
  sensitivity section of the config file.

REQUIRED RENT SOLVER (-solve-rent <month>)
  Binary-searches for the smallest starting rent whose access bond run
  settles the bond by the given month.

Usage:
  %s [options]

Options:
`, presetUsageLines(), os.Args[0])
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  %s                            Desktop dashboard (webview window)
  %s -console                   Console summary and key-month schedule
  %s -details                   Console with every month printed
  %s -compare                   Access bond vs contract-only, side by side
  %s -preset cash-cow           Run a bundled scenario
  %s -csv schedule.csv          Export the full month-by-month schedule
  %s -html report.html          Self-contained HTML report with charts
  %s -pdf report.pdf            Printable PDF report
  %s -sensitivity               Growth vs escalation sweep
  %s -solve-rent 120            Rent needed to settle the bond in 10 years
  %s -web -addr :8080           Web dashboard on a fixed port

Configuration:
  Edit config.yaml to change the property, bond, rental and growth numbers.
  Rates accept percent strings ("10%%") or fractions (0.10). Run with
  -save-config to write the resolved settings back to the file.
`, os.Args[0], os.Args[0], os.Args[0], os.Args[0], os.Args[0], os.Args[0],
			os.Args[0], os.Args[0], os.Args[0], os.Args[0], os.Args[0])
	}

	// Command line flags
	configFile := flag.String("config", "config.yaml", "Path to YAML configuration file")
	saveConfig := flag.Bool("save-config", false, "Write the resolved configuration back to the config file and exit")
	presetID := flag.String("preset", "", "Run a bundled scenario preset (see PRESETS above)")
	strategyName := flag.String("strategy", "", "Payment strategy: access-bond or contract-only")
	showDetails := flag.Bool("details", false, "Show every month in the console schedule instead of key months")
	compareMode := flag.Bool("compare", false, "Run both payment strategies and compare outcomes")
	csvFile := flag.String("csv", "", "Write the full schedule to this CSV file")
	htmlFile := flag.String("html", "", "Write a self-contained HTML report to this file")
	pdfFile := flag.String("pdf", "", "Write a PDF report to this file")
	sensitivityMode := flag.Bool("sensitivity", false, "Run the capital growth vs rent escalation sweep")
	solveMonth := flag.Int("solve-rent", 0, "Find the starting rent that settles the bond by this month")
	consoleMode := flag.Bool("console", false, "Use console interface instead of GUI (default is GUI)")
	webMode := flag.Bool("web", false, "Start web server mode (opens external browser)")
	uiMode := flag.Bool("ui", false, "Start embedded browser mode (webview window)")
	webAddr := flag.String("addr", "localhost:0", "Web server address (for -web mode, use :0 for auto port)")
	verbose := flag.Bool("verbose", false, "Enable debug logging")
	flag.Parse()

	logger := newLogger(*verbose)
	defer logger.Sync()

	// Embedded browser mode
	if *uiMode {
		if err := runEmbeddedUI(*configFile, logger); err != nil {
			fmt.Fprintf(os.Stderr, "Embedded UI error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Web server mode (external browser)
	if *webMode {
		config, err := LoadConfig(*configFile)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		server := NewWebServer(config, *webAddr, logger)
		if err := server.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "Web server error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	opts := consoleOptions{
		configFile:  *configFile,
		saveConfig:  *saveConfig,
		presetID:    *presetID,
		strategy:    *strategyName,
		details:     *showDetails,
		compare:     *compareMode,
		csvFile:     *csvFile,
		htmlFile:    *htmlFile,
		pdfFile:     *pdfFile,
		sensitivity: *sensitivityMode,
		solveMonth:  *solveMonth,
	}

	// Determine if we should run in console mode:
	// - Explicit -console flag, OR
	// - Any output/mode flags set (for automation/scripting)
	useConsole := *consoleMode || opts.anySet()

	if useConsole {
		runConsoleMode(opts)
		return
	}

	// Default: GUI mode
	if err := runGUI(*configFile, logger); err != nil {
		fmt.Fprintf(os.Stderr, "GUI error: %v\n", err)
		// Fall back to console mode if GUI fails
		fmt.Println("Falling back to console mode...")
		runConsoleMode(opts)
	}
}

// newLogger builds the process logger. Verbose selects the development
// config with debug level enabled.
func newLogger(verbose bool) *zap.Logger {
	var logger *zap.Logger
	var err error
	if verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// presetUsageLines renders the bundled presets for the usage message
func presetUsageLines() string {
	out := ""
	for _, p := range ScenarioPresets {
		out += fmt.Sprintf("  %-14s %s: %s\n", p.ID, p.Name, p.Description)
	}
	return out
}

// consoleOptions collects everything the console path needs
type consoleOptions struct {
	configFile  string
	saveConfig  bool
	presetID    string
	strategy    string
	details     bool
	compare     bool
	csvFile     string
	htmlFile    string
	pdfFile     string
	sensitivity bool
	solveMonth  int
}

// anySet reports whether any console output or mode flag was given
func (o consoleOptions) anySet() bool {
	return o.saveConfig || o.presetID != "" || o.strategy != "" || o.details ||
		o.compare || o.csvFile != "" || o.htmlFile != "" || o.pdfFile != "" ||
		o.sensitivity || o.solveMonth > 0
}

// resolveParameters builds the simulation inputs from the config file, an
// optional preset and an optional strategy override, in that order.
func resolveParameters(opts consoleOptions) (*Config, SimulationParameters, error) {
	config, err := LoadConfig(opts.configFile)
	if errors.Is(err, os.ErrNotExist) {
		config, err = LoadDefaultConfig()
	}
	if err != nil {
		return nil, SimulationParameters{}, err
	}

	var params SimulationParameters
	if opts.presetID != "" {
		preset := GetPresetByID(opts.presetID)
		if preset == nil {
			return nil, SimulationParameters{}, invalidInput(fmt.Sprintf(
				"unknown preset %q (available: %v)", opts.presetID, PresetIDs()))
		}
		params = preset.Params
	} else {
		params, err = config.Parameters()
		if err != nil {
			return nil, SimulationParameters{}, err
		}
	}

	if opts.strategy != "" {
		strategy, err := ParsePaymentStrategy(opts.strategy)
		if err != nil {
			return nil, SimulationParameters{}, err
		}
		params.Strategy = strategy
	}

	return config, params, nil
}

// configFromParameters rebuilds a config from resolved parameters so that
// -save-config writes back exactly what ran.
func configFromParameters(params SimulationParameters, sensitivity SensitivityConfig) *Config {
	return &Config{
		Property: PropertyConfig{
			PurchasePrice: params.PurchasePrice,
			Deposit:       params.Deposit,
			UpfrontFees:   params.UpfrontFees,
		},
		Loan: LoanConfig{
			AnnualInterestRate: params.AnnualInterestRate,
			TermYears:          params.TermYears,
		},
		Rental: RentalConfig{
			MonthlyRent:      params.StartingMonthlyRent,
			MonthlyCosts:     params.StartingMonthlyCosts,
			RentalEscalation: params.RentalEscalation,
			CostsEscalation:  params.CostsEscalation,
		},
		Growth: GrowthConfig{
			CapitalGrowth: params.CapitalGrowth,
		},
		Simulation: SimulationConfig{
			Strategy: params.Strategy.ID(),
		},
		Sensitivity: sensitivity,
	}
}

// runConsoleMode runs the application in console/terminal mode
func runConsoleMode(opts consoleOptions) {
	config, params, err := resolveParameters(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if opts.saveConfig {
		resolved := configFromParameters(params, config.Sensitivity)
		if err := SaveConfig(resolved, opts.configFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Configuration saved to %s\n", opts.configFile)
		fmt.Println("You can edit this file to adjust settings for future runs.")
		return
	}

	PrintHeader(params)

	// Required rent solver is its own mode: it answers one question and exits
	if opts.solveMonth > 0 {
		solution, err := SolveRequiredRent(params, opts.solveMonth)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Settling the bond by month %d needs a starting rent of %s/month.\n",
			opts.solveMonth, FormatMoneyFull(solution.RequiredRent))
		fmt.Printf("Current starting rent: %s/month. At the solved rent the bond settles in month %d.\n",
			FormatMoneyFull(params.StartingMonthlyRent), solution.PayoffMonth)
		PrintResultSummary(solution.Result)
		return
	}

	if opts.compare {
		accessParams, contractParams := params, params
		accessParams.Strategy = StrategyAccessBond
		contractParams.Strategy = StrategyContractOnly

		accessResult, err := Simulate(accessParams)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		contractResult, err := Simulate(contractParams)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		PrintComparison([]SimulationResult{accessResult, contractResult})
		return
	}

	result, err := Simulate(params)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	PrintResultSummary(result)
	PrintSchedule(result, opts.details)

	if opts.csvFile != "" {
		if err := writeCSVFile(opts.csvFile, result); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing CSV: %v\n", err)
		} else {
			fmt.Printf("\nSchedule written to %s\n", opts.csvFile)
		}
	}

	if opts.htmlFile != "" {
		if err := GenerateHTMLReport(result, opts.htmlFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error generating HTML report: %v\n", err)
		} else {
			fmt.Printf("\nHTML report written to %s\n", opts.htmlFile)
			openBrowser(opts.htmlFile)
		}
	}

	if opts.pdfFile != "" {
		if err := SavePDFReport(opts.pdfFile, result); err != nil {
			fmt.Fprintf(os.Stderr, "Error generating PDF report: %v\n", err)
		} else {
			fmt.Printf("\nPDF report written to %s\n", opts.pdfFile)
		}
	}

	if opts.sensitivity {
		gridOpts := config.GridOptions(params)
		fmt.Printf("\nRunning sensitivity sweep (growth %s-%s, escalation %s-%s)...\n",
			FormatPercent(gridOpts.CapitalGrowthMin), FormatPercent(gridOpts.CapitalGrowthMax),
			FormatPercent(gridOpts.RentalEscalationMin), FormatPercent(gridOpts.RentalEscalationMax))
		grid, err := RunSensitivityGrid(params, gridOpts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running sensitivity sweep: %v\n", err)
			return
		}
		PrintSensitivityGrid(grid)
	}
}

// writeCSVFile exports the schedule to a file on disk
func writeCSVFile(filename string, result SimulationResult) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteScheduleCSV(f, result)
}

// openBrowser opens a file in the default browser
func openBrowser(filename string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "linux":
		cmd = exec.Command("xdg-open", filename)
	case "darwin":
		cmd = exec.Command("open", filename)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", filename)
	default:
		fmt.Fprintf(os.Stderr, "Cannot open browser on %s\n", runtime.GOOS)
		return
	}

	err := cmd.Start()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening browser: %v\n", err)
	}
}
