// Package ui provides the menu surfaces for Twingate Tray.
//
// Two surfaces render the same menu:
//
//   - TraySurface: the desktop status notifier icon and its menu (fyne.io/systray)
//   - TerminalSurface: an interactive list for terminals (bubbletea)
//
// Both replace their menu as a whole on every publish and deliver clicked
// item ids on a channel that the Application drains one at a time.
//
// # Status
//
// After every refresh the icon and tooltip follow StatusFor: online when
// the client answered, attention when some resource needs authentication,
// offline when the client could not be queried.
//
// # Effects
//
// SystemClipboard and DBusNotifier are the clipboard and notification
// sinks used by the dispatcher.
package ui
