// Package cli provides command-line interface functionality for Twingate Tray.
// This allows users to inspect the network client and the action history
// from the terminal without starting the tray.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"golang.org/x/term"

	"github.com/yllada/twingate-tray/common"
	"github.com/yllada/twingate-tray/config"
	"github.com/yllada/twingate-tray/history"
	"github.com/yllada/twingate-tray/menu"
	"github.com/yllada/twingate-tray/network"
	"github.com/yllada/twingate-tray/tray"
)

// HistoryReader lists journaled actions, newest first.
type HistoryReader interface {
	Recent(ctx context.Context, limit int) ([]history.Entry, error)
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	warnStyle   = cellStyle.Foreground(lipgloss.AdaptiveColor{Light: "166", Dark: "208"})
	failStyle   = cellStyle.Foreground(lipgloss.AdaptiveColor{Light: "160", Dark: "196"})
)

// CLI represents the command-line interface.
type CLI struct {
	provider tray.StatusProvider
	out      io.Writer
	styled   bool
	now      func() time.Time
}

// New creates a CLI that queries the client configured in cfg and prints
// to stdout, styled when stdout is a terminal.
func New(cfg *config.Config) *CLI {
	runner := network.NewExecRunner(cfg.CommandTimeout)
	return NewWithProvider(network.NewProvider(runner, cfg), os.Stdout, term.IsTerminal(int(os.Stdout.Fd())))
}

// NewWithProvider creates a CLI printing to out.
func NewWithProvider(provider tray.StatusProvider, out io.Writer, styled bool) *CLI {
	return &CLI{
		provider: provider,
		out:      out,
		styled:   styled,
		now:      time.Now,
	}
}

// newTable creates a table, coloured when the output is a terminal.
// highlight picks the style of a body cell, or nil for the default.
func (c *CLI) newTable(highlight func(row, col int) *lipgloss.Style) *table.Table {
	t := table.New().Border(lipgloss.NormalBorder())
	if !c.styled {
		return t.StyleFunc(func(row, col int) lipgloss.Style {
			return lipgloss.NewStyle().Padding(0, 1)
		})
	}
	return t.StyleFunc(func(row, col int) lipgloss.Style {
		if row == table.HeaderRow {
			return headerStyle
		}
		if highlight != nil && row >= 0 {
			if s := highlight(row, col); s != nil {
				return *s
			}
		}
		return cellStyle
	})
}

// Status prints the signed-in user and every resource.
func (c *CLI) Status(ctx context.Context) error {
	snap, err := c.provider.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("querying network client: %w", err)
	}

	user := snap.User.Email
	if user == "" {
		user = "unknown user"
	}
	fmt.Fprintf(c.out, "Signed in as %s\n", user)

	if len(snap.Resources) == 0 {
		fmt.Fprintln(c.out, "No resources available.")
		return nil
	}

	visible, background := snap.Partition()
	resources := append(visible, background...)

	rows := make([][]string, 0, len(resources))
	now := c.now()
	for _, r := range resources {
		kind := "resource"
		if !r.IsVisibleInClient {
			kind = "background"
		}
		auth := "required"
		if !r.RequiresAuth() {
			auth = fmt.Sprintf("expires in %d days", menu.AuthDaysRemaining(r.AuthExpiresAt, now))
		}
		rows = append(rows, []string{r.Name, r.Address, kind, auth})
	}

	tbl := c.newTable(func(row, col int) *lipgloss.Style {
		if col == 3 && row < len(resources) && resources[row].RequiresAuth() {
			return &warnStyle
		}
		return nil
	})
	tbl.Headers("NAME", "ADDRESS", "KIND", "AUTH").Rows(rows...)
	fmt.Fprintln(c.out, tbl)

	if n := snap.AuthRequiredCount(); n > 0 {
		fmt.Fprintf(c.out, "%d resource(s) need authentication.\n", n)
	}
	return nil
}

// History prints the most recent journaled actions.
func (c *CLI) History(ctx context.Context, journal HistoryReader, limit int) error {
	entries, err := journal.Recent(ctx, limit)
	if err != nil {
		return fmt.Errorf("reading history: %w", err)
	}
	if len(entries) == 0 {
		fmt.Fprintln(c.out, "No actions recorded yet.")
		return nil
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		resource := e.ResourceName
		if resource == "" {
			resource = e.ResourceID
		}
		if resource == "" {
			resource = "-"
		}
		rows = append(rows, []string{
			humanize.Time(e.Time),
			e.Action,
			resource,
			string(e.Outcome),
			truncate(e.Error, 60),
		})
	}

	tbl := c.newTable(func(row, col int) *lipgloss.Style {
		if col == 3 && row < len(entries) && entries[row].Outcome == history.OutcomeFailed {
			return &failStyle
		}
		return nil
	})
	tbl.Headers("WHEN", "ACTION", "RESOURCE", "OUTCOME", "ERROR").Rows(rows...)
	fmt.Fprintln(c.out, tbl)
	return nil
}

func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-3]) + "..."
}

// PrintHelp prints CLI usage help.
func PrintHelp() {
	fmt.Printf(`%s - tray menu for the Twingate client

Usage:
  twingate-tray [OPTIONS]

Options:
  --version         Show version and exit
  --verbose         Enable verbose logging
  --status          Print the signed-in user and resources
  --history         Print recently dispatched actions
  --watch           Show the menu in the terminal instead of the tray
  --interval DUR    Refresh interval (default %s)
  --help            Show this help message

Examples:
  twingate-tray
  twingate-tray --status
  twingate-tray --watch --interval 10s

Notes:
  - Configuration is read from ~/.config/%s/%s
  - Stopping the service and authenticating use %s
`, common.AppName, common.RefreshInterval, common.ConfigDirName, common.ConfigFileName, common.DefaultElevationCommand)
}
