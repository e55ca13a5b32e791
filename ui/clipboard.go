package ui

import (
	"fmt"

	"github.com/atotto/clipboard"

	"github.com/yllada/twingate-tray/common"
)

// SystemClipboard writes to the desktop clipboard through xclip, xsel or
// wl-copy, whichever is installed.
type SystemClipboard struct{}

// WriteText replaces the clipboard content with text.
func (SystemClipboard) WriteText(text string) error {
	if clipboard.Unsupported {
		return common.ErrClipboardUnavailable
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("%w: %w", common.ErrClipboardUnavailable, err)
	}
	return nil
}
