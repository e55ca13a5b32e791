// Package network talks to the external network client through its CLIs.
//
// It provides:
//
//   - Snapshot: one immutable view of the user and resources reported by the client
//   - Provider: fetches a fresh Snapshot, starting the client when it is not running
//   - Privileged: launches stop and auth subcommands through an elevation wrapper
//   - Runner: the subprocess boundary, replaceable in tests
//
// # Subprocess Model
//
// Blocking queries (status, resource listing) run to completion and their
// failures are classified into common.ErrProviderUnavailable,
// common.ErrProviderNonZeroExit and common.ErrProviderMalformed. Effects
// (start, stop, auth) are fire-and-forget: the process is started and reaped
// in the background, only a failure to spawn is reported.
//
// # Thread Safety
//
// Provider and Privileged hold no mutable state and are safe for concurrent use.
package network
