// Package cache provides a byte-bounded LRU for immutable blob contents.
//
// Entries are keyed by blob name and charged by their length. Values larger
// than the capacity are never cached.
package cache
