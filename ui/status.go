package ui

import (
	"fmt"

	"github.com/yllada/twingate-tray/tray"
)

// StatusFor derives the tray icon and tooltip from a refresh result.
func StatusFor(clientName string, result tray.RefreshResult) (IconState, string) {
	snap := result.Snapshot
	if snap == nil {
		return IconOffline, fmt.Sprintf("%s — unavailable", clientName)
	}

	tooltip := fmt.Sprintf("%s — %d resources", clientName, len(snap.Resources))
	if pending := snap.AuthRequiredCount(); pending > 0 {
		return IconAttention, fmt.Sprintf("%s (%d need authentication)", tooltip, pending)
	}
	return IconOnline, tooltip
}
