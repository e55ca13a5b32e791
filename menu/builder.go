package menu

import (
	"fmt"
	"time"

	"github.com/yllada/twingate-tray/network"
)

const millisPerDay = int64(24 * time.Hour / time.Millisecond)

// Builder lays out snapshots as menus.
type Builder struct {
	clientName string
}

// NewBuilder creates a builder labelling service actions with clientName.
func NewBuilder(clientName string) *Builder {
	return &Builder{clientName: clientName}
}

// Build renders snap at instant now. Visible resources come first, then
// background ones, each group in snapshot order.
func (b *Builder) Build(snap *network.Snapshot, now time.Time) Spec {
	visible, background := snap.Partition()

	items := []Item{
		Label(UserStatusID, snap.User.Email),
		Clickable(StopServiceID, fmt.Sprintf("Stop %s Service", b.clientName), "Stop the client service"),
		Clickable(QuitID, "Quit", "Close the tray"),
		Separator(),
		Label(ResourceCountID, fmt.Sprintf("%d Resources", len(visible))),
	}
	for i := range visible {
		items = append(items, resourceSubmenu(&visible[i], now))
	}

	// Submenus cannot nest, so background resources get a header instead.
	items = append(items,
		Separator(),
		Label(BackgroundCountID, fmt.Sprintf("%d Background Resources", len(background))),
	)
	for i := range background {
		items = append(items, resourceSubmenu(&background[i], now))
	}

	return Spec{Items: items}
}

func resourceSubmenu(r *network.Resource, now time.Time) Item {
	children := []Item{
		Label(ItemID(ActionResourceAddress, r.ID), r.Address),
		Clickable(ItemID(ActionCopyAddress, r.ID), "Copy Address", "Copy "+r.Address),
		Separator(),
	}

	if r.RequiresAuth() {
		children = append(children,
			Label(ItemID(ActionAuthStatus, r.ID), "Authentication Required"),
			Clickable(ItemID(ActionAuthenticate, r.ID), "Authenticate...", "Sign in to "+r.Name),
		)
	} else {
		days := AuthDaysRemaining(r.AuthExpiresAt, now)
		children = append(children,
			Label(ItemID(ActionAuthStatus, r.ID), fmt.Sprintf("Auth expires in %d days", days)),
		)
	}

	return Submenu(ItemID(ActionResourceMenu, r.ID), r.Name, children...)
}

// AuthDaysRemaining returns the whole days between now and an expiry given
// in epoch milliseconds, floored. Sub-day remainders are not distinguished
// and expiries in the past count as zero days.
func AuthDaysRemaining(expiresAtMillis int64, now time.Time) int64 {
	remaining := expiresAtMillis - now.UnixMilli()
	if remaining <= 0 {
		return 0
	}
	return remaining / millisPerDay
}
