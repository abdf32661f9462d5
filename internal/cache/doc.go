// Package cache provides a Redis read-through layer for hot deny-list
// lookups. Cache failures degrade to the underlying repository; the cache is
// never authoritative.
package cache
