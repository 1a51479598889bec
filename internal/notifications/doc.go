// Package notifications delivers scan and collection events via pluggable
// notifiers.
//
// The default implementation publishes to ntfy using the topic configured in
// config.toml and gracefully degrades to a no-op when notifications are
// disabled. Per-event toggles in the notifications config section let users
// silence scan summaries or collection updates without losing error alerts.
//
// Extend this package if you need alternative transports; callers depend only
// on the simple Service interface.
package notifications
