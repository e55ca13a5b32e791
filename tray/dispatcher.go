package tray

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yllada/twingate-tray/common"
	"github.com/yllada/twingate-tray/history"
	"github.com/yllada/twingate-tray/menu"
	"github.com/yllada/twingate-tray/network"
)

// Effects launches the client's privileged subcommands.
type Effects interface {
	Stop() error
	Authenticate(resourceName string) error
}

// Journal records dispatched actions.
type Journal interface {
	Record(ctx context.Context, entry history.Entry) error
}

// Dispatcher turns clicked item ids into effects. It keeps no state between
// calls: resources are looked up in a snapshot fetched for each click.
type Dispatcher struct {
	provider  StatusProvider
	effects   Effects
	clipboard common.Clipboard
	quit      func()
	now       func() time.Time

	mu       sync.RWMutex
	journal  Journal
	notifier common.Notifier
	onEffect func()
}

// NewDispatcher creates a dispatcher. A nil quit exits the process.
func NewDispatcher(provider StatusProvider, effects Effects, clipboard common.Clipboard, quit func()) *Dispatcher {
	if quit == nil {
		quit = func() { os.Exit(0) }
	}
	return &Dispatcher{
		provider:  provider,
		effects:   effects,
		clipboard: clipboard,
		quit:      quit,
		now:       time.Now,
	}
}

// SetJournal sets where dispatched actions are recorded.
func (d *Dispatcher) SetJournal(journal Journal) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.journal = journal
}

// SetNotifier sets where failed actions are reported to the user.
func (d *Dispatcher) SetNotifier(notifier common.Notifier) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.notifier = notifier
}

// SetOnEffect sets a callback run after stop or authenticate was launched,
// typically a refresh trigger.
func (d *Dispatcher) SetOnEffect(callback func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.onEffect = callback
}

// Dispatch handles one click. Informational items are ignored and unknown
// ids return common.ErrUnknownAction. Action failures are logged, journaled,
// notified and returned; none of them panic or exit, only quit does.
func (d *Dispatcher) Dispatch(ctx context.Context, itemID string) error {
	action, err := menu.ParseID(itemID)
	if err != nil {
		common.LogDebug("Dispatcher: ignoring click on %q: %v", itemID, err)
		return err
	}

	entry := history.Entry{
		ID:         uuid.NewString(),
		Time:       d.now(),
		Action:     action.Kind.String(),
		ResourceID: action.ResourceID,
	}

	switch action.Kind {
	case menu.ActionQuit:
		common.LogInfo("Dispatcher: quit requested")
		d.record(ctx, entry, nil)
		d.quit()
		return nil

	case menu.ActionStopService:
		err = d.effects.Stop()
		if err == nil {
			d.effectLaunched()
		}

	case menu.ActionCopyAddress:
		var resource *network.Resource
		resource, err = d.resolve(ctx, action.ResourceID)
		if err == nil {
			entry.ResourceName = resource.Name
			err = d.clipboard.WriteText(resource.Address)
		}

	case menu.ActionAuthenticate:
		var resource *network.Resource
		resource, err = d.resolve(ctx, action.ResourceID)
		if err == nil {
			entry.ResourceName = resource.Name
			err = d.effects.Authenticate(resource.Name)
		}
		if err == nil {
			d.effectLaunched()
		}

	default:
		common.LogDebug("Dispatcher: %s is informational", itemID)
		return nil
	}

	if err != nil {
		common.LogWarn("Dispatcher: %s failed: %v", itemID, err)
		d.notifyFailure(action, err)
	} else {
		common.LogInfo("Dispatcher: %s done", itemID)
	}
	d.record(ctx, entry, err)
	return err
}

// resolve finds resourceID in a fresh snapshot.
func (d *Dispatcher) resolve(ctx context.Context, resourceID string) (*network.Resource, error) {
	snap, err := d.provider.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	resource, ok := snap.FindResource(resourceID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", common.ErrResourceNotFound, resourceID)
	}
	return resource, nil
}

func (d *Dispatcher) effectLaunched() {
	d.mu.RLock()
	callback := d.onEffect
	d.mu.RUnlock()
	if callback != nil {
		callback()
	}
}

func (d *Dispatcher) record(ctx context.Context, entry history.Entry, err error) {
	d.mu.RLock()
	journal := d.journal
	d.mu.RUnlock()
	if journal == nil {
		return
	}

	entry.Outcome = history.OutcomeOK
	if err != nil {
		entry.Outcome = history.OutcomeFailed
		entry.Error = err.Error()
	}
	if jerr := journal.Record(ctx, entry); jerr != nil {
		common.LogWarn("Dispatcher: could not journal %s: %v", entry.ID, jerr)
	}
}

func (d *Dispatcher) notifyFailure(action menu.Action, err error) {
	d.mu.RLock()
	notifier := d.notifier
	d.mu.RUnlock()
	if notifier == nil {
		return
	}

	if nerr := notifier.Notify(failureTitle(action.Kind), failureMessage(err)); nerr != nil {
		common.LogDebug("Dispatcher: notification failed: %v", nerr)
	}
}

func failureTitle(kind menu.ActionKind) string {
	switch kind {
	case menu.ActionStopService:
		return "Could not stop the service"
	case menu.ActionCopyAddress:
		return "Could not copy address"
	case menu.ActionAuthenticate:
		return "Could not start authentication"
	default:
		return "Action failed"
	}
}

func failureMessage(err error) string {
	switch {
	case errors.Is(err, common.ErrResourceNotFound):
		return "The resource is no longer available."
	case errors.Is(err, common.ErrClipboardUnavailable):
		return "No clipboard is available."
	case errors.Is(err, common.ErrElevationUnavailable):
		return "No way to request administrator rights was found."
	case errors.Is(err, common.ErrProviderUnavailable):
		return "The network client could not be reached."
	default:
		return err.Error()
	}
}
