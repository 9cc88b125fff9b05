// Package main is the entry point for Gig Worker Hub.
// It initializes configuration, services, and runs the Bubble Tea program,
// or one of the headless subcommands.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/gig-worker-hub/internal/advisor"
	"github.com/j-veylop/gig-worker-hub/internal/app"
	"github.com/j-veylop/gig-worker-hub/internal/config"
	"github.com/j-veylop/gig-worker-hub/internal/logger"
	"github.com/j-veylop/gig-worker-hub/internal/services"
	advisortab "github.com/j-veylop/gig-worker-hub/internal/ui/tabs/advisor"
	"github.com/j-veylop/gig-worker-hub/internal/ui/tabs/breakdown"
	"github.com/j-veylop/gig-worker-hub/internal/ui/tabs/data"
	"github.com/j-veylop/gig-worker-hub/internal/ui/tabs/info"
	"github.com/j-veylop/gig-worker-hub/internal/ui/tabs/overview"
	"github.com/j-veylop/gig-worker-hub/internal/version"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "-v", "--version":
			fmt.Println(version.Info())
			os.Exit(0)
		case "-h", "--help":
			printUsage()
			os.Exit(0)
		case cmdExportSample, cmdValidate:
			os.Exit(runCommand(os.Args[1], os.Args[2:], os.Stdout, os.Stderr))
		default:
			fmt.Fprintf(os.Stderr, "Unknown argument %q\n\n", os.Args[1])
			printUsage()
			os.Exit(2)
		}
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run contains the main application logic, separated for cleaner error handling.
func run() error {
	// 1. Load configuration from .env files and environment variables
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	closer, err := logger.Init(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer func() { _ = closer.Close() }()

	// 2. The advisor is required; missing credentials end the program here
	granite, err := advisor.NewGranite(cfg.GraniteCredentials())
	if err != nil {
		return err
	}

	// 3. Initialize the service manager (journal, file watcher)
	svcManager, err := services.NewManager(cfg, granite)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}

	defer func() {
		if closeErr := svcManager.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: error closing services: %v\n", closeErr)
		}
	}()

	// 4. Create the root Bubble Tea model and its tabs
	model := app.NewModel(svcManager)
	state := model.GetState()
	model.SetTabs([]app.Tab{
		data.New(state),
		overview.New(state),
		breakdown.New(state),
		advisortab.New(state, svcManager.HasAdvisor()),
		info.New(state, cfg),
	})

	// 5. Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	go func() {
		<-sigChan
		p.Send(tea.Quit())
	}()

	logger.Info("starting", "version", version.Info())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

// printUsage prints the command-line usage information.
func printUsage() {
	fmt.Println(`Gig Worker Hub - earnings dashboard and advisor for gig workers

Usage:
  gighub [flags]
  gighub export-sample <path>   Write a generated sample CSV to path
  gighub validate <path>        Validate a CSV or XLSX file and print its summary

Flags:
  -h, --help      Show this help message
  -v, --version   Show version information

Keyboard Shortcuts:
  1-5             Switch between tabs (Data, Overview, Breakdown, Advisor, Info)
  Tab/Shift+Tab   Navigate between tabs
  j/k, Up/Down    Scroll
  o               Open a data file (Data tab)
  s / w           Load / write sample data (Data tab)
  g / i           Generate report / ask a question (Advisor tab)
  r               Reload the watched file
  ?               Toggle help
  q, Ctrl+C       Quit

Environment Variables:
  IBM_GRANITE_API_KEY      watsonx.ai API key (required)
  IBM_GRANITE_URL          watsonx.ai endpoint (default: https://us-south.ml.cloud.ibm.com)
  IBM_GRANITE_PROJECT_ID   watsonx.ai project (required)
  IBM_GRANITE_MODEL_ID     Model to call (default: ibm/granite-13b-instruct-v2)
  ADVISOR_TIMEOUT          Advisor request timeout (default: 60s)
  DATABASE_PATH            SQLite journal path
  SAMPLE_EXPORT_PATH       Where 'w' writes the sample CSV
  LOG_PATH, LOG_LEVEL      Log file and level (default: info)
  WATCH_DATA_FILE          Reload loaded files on change (default: true)
  DESKTOP_NOTIFY           Desktop notifications on reload (default: false)

Configuration:
  The application looks for .env files in the following locations:
  - Current directory
  - ~/.config/gighub/.env
  - ~/.gighub/.env`)
}
