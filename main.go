// Package main provides the entry point for Twingate Tray.
// Twingate Tray puts the Twingate client's resources in the desktop's
// system tray: the signed-in user, one submenu per resource with its
// address, and actions to copy addresses, authenticate and stop the service.
//
// Features:
//   - Menu refreshed from the client every few seconds
//   - Copy resource addresses to the clipboard
//   - Start authentication for resources that need it
//   - Terminal mode and status output for headless sessions
//   - Local journal of dispatched actions
//
// Usage:
//
//	twingate-tray [options]
//
// Environment:
//
//	The application requires the twingate and twingate-notifier commands.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"

	"github.com/yllada/twingate-tray/cli"
	"github.com/yllada/twingate-tray/common"
	"github.com/yllada/twingate-tray/config"
	"github.com/yllada/twingate-tray/history"
	"github.com/yllada/twingate-tray/ui"
)

// Build-time variables injected via ldflags (-X main.appVersion=x.y.z)
// Default values are used for local development builds
var (
	appVersion = "dev"
	buildTime  = "unknown"
	commitSHA  = "unknown"
)

var (
	showVersion = flag.Bool("version", false, "Show version and exit")
	verbose     = flag.Bool("verbose", false, "Enable verbose logging")
	showHelp    = flag.Bool("help", false, "Show help message")

	// CLI flags
	showStatus  = flag.Bool("status", false, "Print the signed-in user and resources")
	showHistory = flag.Bool("history", false, "Print recently dispatched actions")
	watch       = flag.Bool("watch", false, "Show the menu in the terminal")
	interval    = flag.Duration("interval", 0, "Refresh interval (overrides the config file)")
)

func main() {
	flag.Parse()

	if *showHelp {
		cli.PrintHelp()
		os.Exit(0)
	}

	if *showVersion {
		fmt.Printf("%s v%s\n", common.AppName, appVersion)
		if buildTime != "unknown" {
			fmt.Printf("  Build:  %s\n", buildTime)
			fmt.Printf("  Commit: %s\n", commitSHA)
		}
		os.Exit(0)
	}

	if err := common.InitLogger(common.LogConfig{
		Level:       common.LevelInfo,
		EnableFile:  true,
		MaxFileSize: 5 * 1024 * 1024, // 5MB
		MaxBackups:  5,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not initialize file logging: %v\n", err)
	}
	defer common.CloseLogger()

	cfg, err := config.Load()
	if err != nil {
		common.LogWarn("Using default configuration: %v", err)
		cfg = config.DefaultConfig()
	}
	if *verbose {
		common.GetLogger().SetLevel(common.LevelDebug)
	} else {
		common.GetLogger().SetLevel(common.ParseLogLevel(cfg.LogLevel))
	}
	if err := applyInterval(cfg, *interval); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	setupSignalHandler(cancel)

	if *showStatus || *showHistory {
		// Terminal output should not be interleaved with log lines.
		common.GetLogger().SetOutput(nil)
		if err := runCLI(ctx, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if !checkClientInstalled(cfg) {
		common.LogWarn("%s not found in PATH, the menu will show it as unavailable", cfg.ClientBinary)
	}

	app := ui.NewApplication(cfg, appVersion)
	if *watch {
		common.GetLogger().SetOutput(nil)
		err = app.RunTerminal(ctx)
	} else {
		err = app.RunTray(ctx)
	}
	if err != nil {
		common.LogError("Application exited: %v", err)
		os.Exit(1)
	}
}

// applyInterval overrides the configured refresh interval with d when set.
func applyInterval(cfg *config.Config, d time.Duration) error {
	if d == 0 {
		return nil
	}
	if d < common.MinRefreshInterval {
		return fmt.Errorf("%w: --interval must be at least %v", common.ErrInvalidConfig, common.MinRefreshInterval)
	}
	cfg.RefreshInterval = d
	return nil
}

// runCLI handles command-line interface operations.
func runCLI(ctx context.Context, cfg *config.Config) error {
	c := cli.New(cfg)

	if *showStatus {
		return c.Status(ctx)
	}

	path, err := history.DefaultPath()
	if err != nil {
		return err
	}
	journal, err := history.Open(path)
	if err != nil {
		return err
	}
	defer journal.Close()
	return c.History(ctx, journal, cfg.HistoryLimit)
}

// setupSignalHandler configures graceful shutdown on SIGINT/SIGTERM.
// When a signal is received, it cancels the context to allow cleanup.
func setupSignalHandler(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		common.LogInfo("Received signal %v, initiating graceful shutdown...", sig)
		cancel()
	}()
}

// checkClientInstalled reports whether the client binary is in PATH.
func checkClientInstalled(cfg *config.Config) bool {
	_, err := exec.LookPath(cfg.ClientBinary)
	return err == nil
}
