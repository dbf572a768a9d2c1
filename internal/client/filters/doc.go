// Package filters narrows and orders fetched listings the way the search
// panels of the console do: keyword, status, ranges and flags per kind,
// plus a sort order. A Criteria has a canonical Key so that a filtered
// view can be cached under its own query key.
package filters
