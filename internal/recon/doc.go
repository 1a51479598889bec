// Package recon reconciles detected game titles with the canonical catalog
// and the user's collection.
//
// A batch of detected titles (from the external shelf-photo analysis
// service) flows through the Resolver, which fans out one task per title:
// catalog search, fuzzy ranking, and an ownership lookup for the best
// match. One title's failure never aborts the batch; failed titles are
// simply absent from the result set. The Resolver runs each batch at most
// once, keyed by batch identity, because re-running wastes catalog queries
// and can race ownership state.
//
// Resolutions feed a Selection (default: everything matched and not yet
// owned), and the Committer persists the confirmed selection. The commit
// re-checks ownership and relies on the collection store's conflict key
// for duplicate safety, so overlapping commits cannot create duplicate
// rows.
package recon
