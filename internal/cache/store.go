package cache

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/MelDxKviel/reels-downloader-bot/internal/domain"
)

// indexFile is the name of the persisted cache index inside the managed
// download directory.
const indexFile = "cache.json"

// Entry is one persisted cache record, keyed by cache key in the index.
type Entry struct {
	FilePath string  `json:"file_path"`
	Title    string  `json:"title,omitempty"`
	Duration float64 `json:"duration_seconds,omitempty"`
}

// Store maps cache keys to downloaded artifacts on disk. The in-memory map
// is authoritative; the on-disk index is a best-effort mirror rewritten
// after every mutation. All methods are safe for concurrent use.
type Store struct {
	dir       string
	indexPath string
	logger    *slog.Logger

	mu      sync.Mutex
	entries map[string]Entry
}

// Open creates the managed directory if needed, loads the persisted index
// and drops entries whose backing file no longer exists.
func Open(dir string, logger *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}

	s := &Store{
		dir:       dir,
		indexPath: filepath.Join(dir, indexFile),
		logger:    logger,
		entries:   make(map[string]Entry),
	}
	s.load()
	return s, nil
}

// load reads the index file. Entries that fail verification are excluded;
// the pruned index is not written back until the next successful write.
func (s *Store) load() {
	data, err := os.ReadFile(s.indexPath)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("failed to read cache index", "path", s.indexPath, "error", err)
		}
		return
	}

	var raw map[string]Entry
	if err := json.Unmarshal(data, &raw); err != nil {
		s.logger.Warn("cache index is corrupt, starting empty", "path", s.indexPath, "error", err)
		return
	}

	for key, entry := range raw {
		if entry.FilePath == "" {
			continue
		}
		if _, err := os.Stat(entry.FilePath); err != nil {
			continue
		}
		s.entries[key] = entry
	}
}

// Get looks up a URL in the cache. When the entry's backing file has been
// deleted externally, the entry is removed and persisted immediately, and a
// miss is reported.
func (s *Store) Get(url string) (domain.DownloadResult, bool) {
	key := Key(url)

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok {
		return domain.DownloadResult{}, false
	}

	if _, err := os.Stat(entry.FilePath); err != nil {
		delete(s.entries, key)
		s.persistLocked()
		return domain.DownloadResult{}, false
	}

	return domain.DownloadResult{
		Success:   true,
		FilePath:  entry.FilePath,
		Title:     entry.Title,
		Duration:  entry.Duration,
		FromCache: true,
	}, true
}

// Put stores a successful download under the URL's cache key and rewrites
// the index before returning. Results without a file path are ignored.
func (s *Store) Put(url string, result domain.DownloadResult) {
	if !result.Success || result.FilePath == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[Key(url)] = Entry{
		FilePath: result.FilePath,
		Title:    result.Title,
		Duration: result.Duration,
	}
	s.persistLocked()
}

// Clear deletes every cache-owned file that still exists, empties the map
// and persists the empty index. Returns the number of files deleted.
func (s *Store) Clear() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, entry := range s.entries {
		if _, err := os.Stat(entry.FilePath); err != nil {
			continue
		}
		if err := os.Remove(entry.FilePath); err != nil {
			s.logger.Warn("failed to remove cached file", "path", entry.FilePath, "error", err)
			continue
		}
		count++
	}

	s.entries = make(map[string]Entry)
	s.persistLocked()
	return count
}

// Len returns the number of cached entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// TotalBytes sums the sizes of cached files that still exist on disk.
func (s *Store) TotalBytes() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total int64
	for _, entry := range s.entries {
		if info, err := os.Stat(entry.FilePath); err == nil {
			total += info.Size()
		}
	}
	return total
}

// Dir returns the managed download directory.
func (s *Store) Dir() string {
	return s.dir
}

// Close rewrites the index one final time.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.persistLocked()
	return nil
}

// persistLocked rewrites the index file. I/O failures are logged, never
// surfaced: losing the index only costs a re-download.
func (s *Store) persistLocked() {
	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		s.logger.Warn("failed to marshal cache index", "error", err)
		return
	}

	tmp := s.indexPath + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		s.logger.Warn("failed to write cache index", "path", tmp, "error", err)
		return
	}
	if err := os.Rename(tmp, s.indexPath); err != nil {
		os.Remove(tmp)
		s.logger.Warn("failed to replace cache index", "path", s.indexPath, "error", err)
	}
}
