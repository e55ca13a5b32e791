// Package ui provides the menu surfaces for Twingate Tray.
// This file contains the system tray indicator functionality.
package ui

import (
	"errors"
	"sync"

	"fyne.io/systray"

	"github.com/yllada/twingate-tray/common"
	"github.com/yllada/twingate-tray/menu"
)

// clickBuffer bounds clicks waiting for the dispatcher.
const clickBuffer = 16

var errTrayNotReady = errors.New("tray indicator is not ready")

// TraySurface shows menus in the desktop's status notifier area.
type TraySurface struct {
	title  string
	clicks chan string
	ready  chan struct{}

	mu    sync.Mutex
	done  chan struct{} // closed when the installed menu is replaced
	state IconState
	tip   string
}

// NewTraySurface creates a tray surface titled title.
func NewTraySurface(title string) *TraySurface {
	return &TraySurface{
		title:  title,
		clicks: make(chan string, clickBuffer),
		ready:  make(chan struct{}),
		state:  IconOffline,
	}
}

// Run starts the tray and blocks until Quit. It must be called from the
// main goroutine. onReady runs once the tray can accept menus.
func (t *TraySurface) Run(onReady, onExit func()) {
	systray.Run(func() {
		systray.SetIcon(Icon(IconOffline))
		systray.SetTitle(t.title)
		systray.SetTooltip(t.title)
		close(t.ready)
		common.LogInfo("Tray indicator ready")
		if onReady != nil {
			onReady()
		}
	}, func() {
		t.mu.Lock()
		if t.done != nil {
			close(t.done)
			t.done = nil
		}
		t.mu.Unlock()
		common.LogInfo("Tray indicator cleanup completed")
		if onExit != nil {
			onExit()
		}
	})
}

// Quit stops the tray and makes Run return.
func (t *TraySurface) Quit() {
	systray.Quit()
}

// Clicks delivers the ids of clicked items.
func (t *TraySurface) Clicks() <-chan string {
	return t.clicks
}

// Replace discards the live menu and installs spec. Click listeners of the
// previous menu are stopped before the new items are added.
func (t *TraySurface) Replace(spec menu.Spec) error {
	select {
	case <-t.ready:
	default:
		return errTrayNotReady
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.done != nil {
		close(t.done)
	}
	done := make(chan struct{})
	t.done = done

	systray.ResetMenu()
	for _, it := range spec.Items {
		t.add(nil, it, done)
	}
	return nil
}

// SetStatus updates the icon and tooltip when they changed.
func (t *TraySurface) SetStatus(state IconState, tooltip string) {
	select {
	case <-t.ready:
	default:
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if state != t.state {
		systray.SetIcon(Icon(state))
		t.state = state
	}
	if tooltip != t.tip {
		systray.SetTooltip(tooltip)
		t.tip = tooltip
	}
}

func (t *TraySurface) add(parent *systray.MenuItem, it menu.Item, done <-chan struct{}) {
	if it.Kind == menu.KindSeparator {
		if parent == nil {
			systray.AddSeparator()
		} else {
			parent.AddSeparator()
		}
		return
	}

	var item *systray.MenuItem
	if parent == nil {
		item = systray.AddMenuItem(it.Title, it.Tooltip)
	} else {
		item = parent.AddSubMenuItem(it.Title, it.Tooltip)
	}
	if it.Disabled {
		item.Disable()
	}

	for _, child := range it.Children {
		t.add(item, child, done)
	}

	if it.Kind == menu.KindItem && !it.Disabled {
		go t.forward(item, it.ID, done)
	}
}

// forward relays clicks on item until its menu is replaced.
func (t *TraySurface) forward(item *systray.MenuItem, id string, done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case <-item.ClickedCh:
			select {
			case t.clicks <- id:
			default:
				common.LogWarn("Tray: dropping click on %s, dispatcher busy", id)
			}
		}
	}
}
