// Package ui provides the menu surfaces for Twingate Tray.
// This file contains the desktop notification sink.
package ui

import (
	"fmt"
	"os/exec"
	"sync"

	"github.com/godbus/dbus/v5"

	"github.com/yllada/twingate-tray/common"
)

const (
	notificationsService = "org.freedesktop.Notifications"
	notificationsPath    = "/org/freedesktop/Notifications"
	notifyMethod         = notificationsService + ".Notify"
)

// urgencyNormal is the "normal" level of the urgency hint.
const urgencyNormal byte = 1

// DBusNotifier sends desktop notifications over the session bus and falls
// back to notify-send when the bus is unreachable.
type DBusNotifier struct {
	appName string
	icon    string

	mu   sync.Mutex
	conn *dbus.Conn
}

// NewDBusNotifier creates a notifier announcing itself as appName.
func NewDBusNotifier(appName string) *DBusNotifier {
	return &DBusNotifier{appName: appName, icon: "network-vpn"}
}

// Notify shows a notification. Failures are reported as errors only.
func (n *DBusNotifier) Notify(title, message string) error {
	conn, err := n.connection()
	if err != nil {
		common.LogDebug("Notifications: session bus unavailable (%v), trying notify-send", err)
		return n.notifySend(title, message)
	}

	hints := map[string]dbus.Variant{
		"urgency":       dbus.MakeVariant(urgencyNormal),
		"desktop-entry": dbus.MakeVariant(common.AppID),
	}
	call := conn.Object(notificationsService, notificationsPath).Call(notifyMethod, 0,
		n.appName,
		uint32(0),
		n.icon,
		title,
		message,
		[]string{},
		hints,
		int32(common.NotificationTimeout.Milliseconds()),
	)
	if call.Err != nil {
		return fmt.Errorf("notify: %w", call.Err)
	}
	return nil
}

// Close releases the session bus connection.
func (n *DBusNotifier) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.conn == nil {
		return nil
	}
	err := n.conn.Close()
	n.conn = nil
	return err
}

func (n *DBusNotifier) connection() (*dbus.Conn, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.conn != nil && n.conn.Connected() {
		return n.conn, nil
	}

	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, err
	}
	n.conn = conn
	return conn, nil
}

func (n *DBusNotifier) notifySend(title, message string) error {
	cmd := exec.Command("notify-send",
		"--app-name="+n.appName,
		"--icon="+n.icon,
		"--urgency=normal",
		title,
		message,
	)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("notify-send: %w", err)
	}
	return nil
}
