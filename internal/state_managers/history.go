package state_managers

import (
	"errors"
	"os"
	"sync"
	"time"

	"github.com/benmeehan/climate-search/internal/models"
	"github.com/benmeehan/climate-search/pkg/file"
	"github.com/benmeehan/climate-search/pkg/geo"
	"github.com/rs/zerolog"
)

// HistoryStateManager keeps the page's history stack and persists it to a JSON
// file so the latest URL survives between runs. An empty file path keeps the
// history in memory only.
type HistoryStateManager struct {
	filePath   string
	basePath   string
	fileClient file.FileOperations
	logger     zerolog.Logger

	mu      sync.Mutex
	entries []models.HistoryEntry
	now     func() time.Time
}

// NewHistoryStateManager initializes a new HistoryStateManager. basePath is the
// path the query string is appended to ("/" when empty).
func NewHistoryStateManager(filePath, basePath string, fileClient file.FileOperations, logger zerolog.Logger) *HistoryStateManager {
	if basePath == "" {
		basePath = "/"
	}
	return &HistoryStateManager{
		filePath:   filePath,
		basePath:   basePath,
		fileClient: fileClient,
		logger:     logger,
		now:        time.Now,
	}
}

// LoadState reads the history from the state file. A missing file is an empty history.
func (sm *HistoryStateManager) LoadState() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.filePath == "" {
		return nil
	}

	var entries []models.HistoryEntry
	if err := sm.fileClient.ReadJsonFile(sm.filePath, &entries); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			sm.entries = nil
			return nil
		}
		sm.logger.Error().Err(err).Str("file", sm.filePath).Msg("Failed to read history state file")
		return err
	}

	sm.entries = entries
	return nil
}

// PushState appends the URL for c to the history, without any navigation, and
// persists the stack.
func (sm *HistoryStateManager) PushState(c geo.Coordinates) (models.HistoryEntry, error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	entry := models.HistoryEntry{
		URL:       c.URL(sm.basePath),
		Latitude:  c.Latitude,
		Longitude: c.Longitude,
		Timestamp: sm.now().UTC(),
	}

	entries := append(append([]models.HistoryEntry(nil), sm.entries...), entry)
	if sm.filePath != "" {
		if err := sm.fileClient.WriteJsonFile(sm.filePath, entries); err != nil {
			sm.logger.Error().Err(err).Str("file", sm.filePath).Msg("Failed to write history state file")
			return models.HistoryEntry{}, err
		}
	}
	sm.entries = entries

	sm.logger.Info().Str("url", entry.URL).Msg("History state pushed")
	return entry, nil
}

// Current returns the URL of the latest entry, or the base path when the history is empty.
func (sm *HistoryStateManager) Current() string {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if len(sm.entries) == 0 {
		return sm.basePath
	}
	return sm.entries[len(sm.entries)-1].URL
}

// Entries returns a copy of the history, oldest first.
func (sm *HistoryStateManager) Entries() []models.HistoryEntry {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return append([]models.HistoryEntry(nil), sm.entries...)
}
