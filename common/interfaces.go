// Package common provides shared constants, types, and utilities
// used across the Twingate Tray application.
package common

// Clipboard accepts text for the system clipboard.
type Clipboard interface {
	// WriteText replaces the clipboard content with text.
	WriteText(text string) error
}

// Notifier defines the interface for sending notifications.
type Notifier interface {
	// Notify sends a notification with the given title and message.
	Notify(title, message string) error
}

