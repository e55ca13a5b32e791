// Package common provides shared constants, types, and utilities
// used across the Twingate Tray application.
package common

import "time"

// Application metadata.
const (
	// AppID is the unique identifier for the application.
	AppID = "com.twingatetray.app"
	// AppName is the display name of the application.
	AppName = "Twingate Tray"
	// ConfigDirName is the name of the configuration directory.
	ConfigDirName = "twingate-tray"
)

// File names used by the application.
const (
	ConfigFileName  = "config.yaml"
	HistoryFileName = "history.db"
	LogFileName     = "twingate-tray.log"
)

// Network client defaults.
const (
	// DefaultClientBinary is the CLI used for status, start, stop and auth.
	DefaultClientBinary = "twingate"
	// DefaultNotifierBinary is the CLI that lists resources as JSON.
	DefaultNotifierBinary = "twingate-notifier"
	// DefaultClientName is the client name shown in menu labels.
	DefaultClientName = "Twingate"
	// DefaultElevationCommand wraps privileged subcommands.
	DefaultElevationCommand = "pkexec"
)

// Default timeouts and intervals.
const (
	// RefreshInterval is the fixed cadence of the menu refresh loop.
	RefreshInterval = 3 * time.Second
	// MinRefreshInterval is the smallest accepted refresh cadence.
	MinRefreshInterval = 500 * time.Millisecond
	// NotificationTimeout is how long desktop notifications stay visible.
	NotificationTimeout = 5 * time.Second
)

// History defaults.
const (
	// DefaultHistoryLimit is how many journal entries --history prints.
	DefaultHistoryLimit = 20
)

// UI constants.
const (
	// TrayIconSize is the size of the system tray icon.
	TrayIconSize = 22
)
