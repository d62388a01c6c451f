// Package pkg provides shared utilities for the softmatrix scanner stack.
//
// This package contains common functionality used across the matrix, key
// mapping and scanner packages, including:
//
//   - Structured logging via Go's standard [log/slog] package
//   - Sentinel error values for scanner, mapper and buffer failures
//   - Component identifiers for log filtering
//
// # Logging
//
// The logging subsystem wraps [log/slog] with a component attribute:
//
//	pkg.SetLogLevel(slog.LevelDebug)
//	pkg.LogInfo(pkg.ComponentMapper, "starting up", "mode", "symbolic")
//
// Logging is diagnostic only. No scanner decision depends on whether a
// message was emitted, and the interrupt path never logs.
//
// # Errors
//
// Failures are reported as sentinel values:
//
//	if errors.Is(err, pkg.ErrBufferFull) {
//	    // The cycle already holds six keys
//	}
package pkg
