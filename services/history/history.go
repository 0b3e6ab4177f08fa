package history

import (
	"sjsage522/shoetracker/internal/extractor"
)

// MaxEntries caps the per-item history length; the oldest entry is
// evicted first once the cap is reached.
const MaxEntries = 30

// Store keeps a bounded, time-ordered record of past price checks per
// tracked item. Keys are item identities (URLs).
type Store interface {
	// Append adds a record to the item's history, evicting the oldest
	// entry when the cap is exceeded
	Append(key string, record extractor.PriceRecord)

	// Get returns the item's records ordered oldest to newest
	Get(key string) []extractor.PriceRecord

	// Len returns the number of records for the item
	Len(key string) int

	// Save persists the full history mapping to durable storage
	Save() error
}
