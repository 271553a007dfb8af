//go:build !console

package main

import (
	"errors"
	"fmt"
	"os"

	webview "github.com/webview/webview_go"
	"go.uber.org/zap"
)

// runEmbeddedUI starts the web server and opens an embedded browser window
func runEmbeddedUI(configFile string, logger *zap.Logger) error {
	// Load configuration (ignore error if file doesn't exist)
	config, err := LoadConfig(configFile)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("error loading config: %w", err)
	}

	ws := NewWebServer(config, "localhost:0", logger)

	url, cleanup, err := ws.StartForEmbedded()
	if err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	defer cleanup()

	// Create webview window (false = no debug mode)
	w := webview.New(false)
	defer w.Destroy()

	w.SetTitle("Property Investment Dashboard")
	w.SetSize(1280, 840, webview.HintNone)
	w.Navigate(url)

	// Run blocks until window is closed
	w.Run()

	return nil
}

// runGUI starts the graphical user interface (uses embedded browser)
func runGUI(configFile string, logger *zap.Logger) error {
	return runEmbeddedUI(configFile, logger)
}
