// Package config loads and validates shelfscan configuration.
//
// Configuration lives in a TOML file, by default at
// ~/.config/shelfscan/config.toml, with a shelfscan.toml in the working
// directory as a project-local override location. Load applies defaults,
// decodes the file when present, expands ~ in path values, and validates
// the result; callers never see a partially-normalized Config.
//
// Sections by subsystem:
//   - Paths: state and log directories
//   - Catalog: canonical catalog API endpoint and key
//   - Matching: search limits, score threshold, per-title timeout
//   - Collection: collection owner identity
//   - Notifications: ntfy push notification settings
//   - Logging: log format and level
package config
