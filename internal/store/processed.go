package store

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"sync"
)

// ProcessedStore is the append-only record of ticket IDs already evaluated.
// The backing file holds one ID per line and is never rewritten or
// compacted; duplicate appends are harmless because reads have set
// semantics.
type ProcessedStore struct {
	path string
	mu   sync.Mutex
}

// NewProcessedStore creates a store backed by the given file path.
// The file is created lazily on the first Mark.
func NewProcessedStore(path string) *ProcessedStore {
	return &ProcessedStore{path: path}
}

// ReadAll loads the full processed set. A missing file reads as empty.
func (s *ProcessedStore) ReadAll() (map[string]struct{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]struct{}{}, nil
		}
		return nil, fmt.Errorf("failed to open processed file: %w", err)
	}
	defer f.Close()

	ids := make(map[string]struct{})
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		id := strings.TrimSpace(scanner.Text())
		if id == "" {
			continue
		}
		ids[id] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read processed file: %w", err)
	}

	return ids, nil
}

// Mark appends the ticket ID as a new line. The append is not atomic with
// a preceding ReadAll; a crash between the two can cause re-processing on
// restart, which the recency window tolerates.
func (s *ProcessedStore) Mark(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open processed file for append: %w", err)
	}
	defer f.Close()

	if _, err := fmt.Fprintln(f, id); err != nil {
		return fmt.Errorf("failed to append processed id: %w", err)
	}
	return nil
}
