// Package tray runs the refresh and action loop behind the tray menu.
//
// Three components share one live menu:
//
//   - Publisher owns the currently displayed Spec and installs replacements
//     on a Surface, one at a time
//   - Scheduler fetches a snapshot, builds a Spec and publishes it on a fixed
//     cadence until its context is cancelled
//   - Dispatcher decodes clicked item ids and runs the matching effect,
//     resolving resources against a freshly fetched snapshot
//
// # Concurrency
//
// The scheduler is the only writer of the live menu. Clicks arrive from the
// surface's event source and are dispatched one at a time; an id clicked on an
// old menu is resolved against current state, so a resource that vanished in
// between is reported instead of acted upon.
package tray
