package ui

import (
	"context"
	"sync"

	"github.com/yllada/twingate-tray/common"
	"github.com/yllada/twingate-tray/config"
	"github.com/yllada/twingate-tray/history"
	"github.com/yllada/twingate-tray/menu"
	"github.com/yllada/twingate-tray/network"
	"github.com/yllada/twingate-tray/tray"
)

// Surface is a menu surface the application can drive.
type Surface interface {
	tray.Surface
	SetStatus(state IconState, tooltip string)
	Clicks() <-chan string
	Quit()
}

// Application wires the provider, builder, publisher, scheduler and
// dispatcher to a surface.
type Application struct {
	config  *config.Config
	version string

	runner     *network.ExecRunner
	provider   *network.Provider
	publisher  *tray.Publisher
	scheduler  *tray.Scheduler
	dispatcher *tray.Dispatcher
	journal    *history.Store
	notifier   *DBusNotifier

	closeOnce sync.Once
}

// NewApplication creates an application for cfg.
func NewApplication(cfg *config.Config, version string) *Application {
	runner := network.NewExecRunner(cfg.CommandTimeout)
	return &Application{
		config:   cfg,
		version:  version,
		runner:   runner,
		provider: network.NewProvider(runner, cfg),
	}
}

// wire builds the refresh and dispatch pipeline around surface.
func (a *Application) wire(surface Surface) {
	a.publisher = tray.NewPublisher(surface)
	a.scheduler = tray.NewScheduler(a.provider, menu.NewBuilder(a.config.ClientName), a.publisher, a.config.RefreshInterval)
	a.scheduler.SetOnRefresh(func(result tray.RefreshResult) {
		state, tooltip := StatusFor(a.config.ClientName, result)
		surface.SetStatus(state, tooltip)
	})

	a.dispatcher = tray.NewDispatcher(a.provider, network.NewPrivileged(a.runner, a.config), SystemClipboard{}, surface.Quit)
	a.dispatcher.SetOnEffect(a.scheduler.Trigger)

	if a.config.ShowNotifications {
		a.notifier = NewDBusNotifier(common.AppName)
		a.dispatcher.SetNotifier(a.notifier)
	}

	if a.config.RecordHistory {
		a.openJournal()
	}
}

func (a *Application) openJournal() {
	path, err := history.DefaultPath()
	if err != nil {
		common.LogWarn("History disabled: %v", err)
		return
	}
	journal, err := history.Open(path)
	if err != nil {
		common.LogWarn("History disabled: %v", err)
		return
	}
	a.journal = journal
	a.dispatcher.SetJournal(journal)
}

// start launches the refresh loop and the click consumer.
func (a *Application) start(ctx context.Context, surface Surface) {
	go a.scheduler.Run(ctx)
	go a.consumeClicks(ctx, surface.Clicks())
}

// consumeClicks dispatches clicks one at a time.
func (a *Application) consumeClicks(ctx context.Context, clicks <-chan string) {
	for {
		select {
		case <-ctx.Done():
			return
		case id := <-clicks:
			// Errors are logged and reported by the dispatcher.
			_ = a.dispatcher.Dispatch(ctx, id)
		}
	}
}

// RunTray shows the menu in the system tray until Quit is clicked or ctx is
// cancelled. It must be called from the main goroutine.
func (a *Application) RunTray(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	surface := NewTraySurface(a.config.ClientName)
	a.wire(surface)

	go func() {
		<-ctx.Done()
		surface.Quit()
	}()

	common.LogInfo("Starting %s v%s in tray mode", common.AppName, a.version)
	surface.Run(func() { a.start(ctx, surface) }, cancel)
	a.close()
	return nil
}

// RunTerminal shows the menu as an interactive terminal list.
func (a *Application) RunTerminal(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	surface := NewTerminalSurface(a.config.ClientName, a.requestRefresh)
	a.wire(surface)

	go func() {
		<-ctx.Done()
		surface.Quit()
	}()

	common.LogInfo("Starting %s v%s in terminal mode", common.AppName, a.version)
	a.start(ctx, surface)
	err := surface.Run()
	cancel()
	a.close()
	return err
}

func (a *Application) requestRefresh() {
	if a.scheduler != nil {
		a.scheduler.Trigger()
	}
}

// close releases the journal and the notification bus.
func (a *Application) close() {
	a.closeOnce.Do(func() {
		if a.journal != nil {
			if err := a.journal.Close(); err != nil {
				common.LogWarn("Closing history: %v", err)
			}
		}
		if a.notifier != nil {
			a.notifier.Close()
		}
	})
}
