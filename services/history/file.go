package history

import (
	"encoding/json"
	"os"
	"path/filepath"

	"sjsage522/shoetracker/internal/extractor"
	"sjsage522/shoetracker/logger"
	apperrors "sjsage522/shoetracker/pkg/errors"
)

// FileStore implements Store backed by a single JSON file. The file maps
// item identity to an ordered array of price records. Writes replace the
// file atomically so a crash mid-write never corrupts existing history.
type FileStore struct {
	path    string
	entries map[string][]extractor.PriceRecord
	log     *logger.Logger
}

// NewFileStore creates a FileStore, loading existing history from path.
// A missing or corrupt file starts an empty history with a warning; losing
// old history is preferable to refusing to run.
func NewFileStore(path string) *FileStore {
	s := &FileStore{
		path:    path,
		entries: make(map[string][]extractor.PriceRecord),
		log:     logger.ForHistory(),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn().Err(err).Str("path", path).Msg("History file unreadable, starting empty")
		}
		return s
	}

	if err := json.Unmarshal(data, &s.entries); err != nil {
		s.log.Warn().Err(err).Str("path", path).Msg("History file corrupt, starting empty")
		s.entries = make(map[string][]extractor.PriceRecord)
	}
	return s
}

// Append adds a record to the item's history with FIFO eviction at the cap
func (s *FileStore) Append(key string, record extractor.PriceRecord) {
	records := append(s.entries[key], record)
	if len(records) > MaxEntries {
		records = records[len(records)-MaxEntries:]
	}
	s.entries[key] = records
}

// Get returns the item's records ordered oldest to newest
func (s *FileStore) Get(key string) []extractor.PriceRecord {
	return s.entries[key]
}

// Len returns the number of records for the item
func (s *FileStore) Len(key string) int {
	return len(s.entries[key])
}

// Save writes the history mapping to disk via a temp file and rename, so
// the replace is all-or-nothing
func (s *FileStore) Save() error {
	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return apperrors.NewPersistence("history", "failed to encode history", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".history-*.json")
	if err != nil {
		return apperrors.NewPersistence("history", "failed to create temp file in "+dir, err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return apperrors.NewPersistence("history", "failed to write history", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return apperrors.NewPersistence("history", "failed to flush history", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return apperrors.NewPersistence("history", "failed to replace "+s.path, err)
	}

	s.log.Debug().Str("path", s.path).Int("items", len(s.entries)).Msg("History persisted")
	return nil
}
