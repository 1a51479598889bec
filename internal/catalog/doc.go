// Package catalog provides access to the canonical board game catalog.
//
// The Client wraps the catalog's HTTP search API. Responses are validated
// at this boundary: records without a positive id or a non-empty name are
// dropped before they reach the reconciliation engine, so downstream code
// can rely on the Record schema.
//
// Search results come back pre-ordered by catalog popularity (ascending
// Rank); fuzzy scoring happens later in internal/recon. NewCachedSearcher
// adds a TTL cache and request spacing for batch resolution, where the
// same shelf often produces repeated queries.
package catalog
