// Package common provides shared constants, types, utilities, and interfaces
// used throughout the Twingate Tray application.
//
// This package holds the cross-cutting concerns:
//
//   - Constants: application metadata, client defaults, refresh cadence
//   - Errors: sentinel errors for every failure kind of the refresh and action paths
//   - Interfaces: clipboard and notification sinks consumed by the tray core
//   - Logger: levelled logging to stdout and an optional rotated file
//   - Utils: config and data directory helpers
//
// # Usage
//
//	common.LogInfo("Refreshed menu with %d resources", n)
//
//	if errors.Is(err, common.ErrResourceNotFound) {
//	    // the resource disappeared between menu build and click
//	}
package common
