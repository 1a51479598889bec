package recon

import "errors"

var (
	// ErrNoSelection is returned when commit is attempted with nothing
	// selected. User-correctable; no write is performed.
	ErrNoSelection = errors.New("no games selected")

	// ErrNoValidSelection is returned when every selected id lacks a
	// catalog match at commit time. Defensive; selection invariants
	// should make this unreachable.
	ErrNoValidSelection = errors.New("no selected game has a catalog match")

	// ErrUpsert marks a failed collection write. Retryable; no partial
	// state is assumed committed.
	ErrUpsert = errors.New("collection upsert failed")
)
