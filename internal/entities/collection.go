package entities

import (
	"strings"
	"time"
)

// CollectionEntry records one claimed stamp. Entries are immutable once created.
type CollectionEntry struct {
	ID          string      `json:"id"`
	Destination Destination `json:"city"`
	Stamp       Stamp       `json:"stampData"`
	CreatedAt   time.Time   `json:"date"`
}

// Collection is the append-only passport of claimed stamps
type Collection struct {
	entries []CollectionEntry
}

// NewCollection builds a collection from previously persisted entries
func NewCollection(entries []CollectionEntry) *Collection {
	return &Collection{entries: append([]CollectionEntry(nil), entries...)}
}

// Append adds an entry at the end
func (c *Collection) Append(entry CollectionEntry) {
	c.entries = append(c.entries, entry)
}

// All returns the entries in insertion order
func (c *Collection) All() []CollectionEntry {
	return append([]CollectionEntry(nil), c.entries...)
}

// Len returns the number of entries
func (c *Collection) Len() int {
	return len(c.entries)
}

// CitiesVisited counts distinct destinations, ignoring case
func (c *Collection) CitiesVisited() int {
	seen := make(map[string]struct{}, len(c.entries))
	for _, e := range c.entries {
		seen[strings.ToLower(string(e.Destination))] = struct{}{}
	}
	return len(seen)
}
