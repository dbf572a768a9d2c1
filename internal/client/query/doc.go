// Package query caches backend reads for the console.
//
// Reads go through Query with a Key of (kind, id, filter). A fresh entry
// is returned as is; a stale one is returned and refreshed in the
// background; a missing one is fetched, with concurrent callers for the
// same key sharing a single request. A failed fetch is retried once after
// RetryDelay.
//
// Writes go through Mutate, which never retries and invalidates the named
// kinds only when the write succeeded. Invalidation bumps a per-kind
// generation, so a read that starts after it can neither observe nor store
// a value fetched before it.
package query
