// Package logging constructs the application's slog loggers.
//
// Output format is console text or JSON; "auto" picks console on a
// terminal and JSON otherwise, so piped output stays machine-readable.
// When a log directory is configured, everything is mirrored into
// shelfscan.log inside it.
//
// The Attr helpers alias log/slog attribute constructors so call sites
// stay terse and consistent across packages.
package logging
