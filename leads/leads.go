// Package leads persists finalized project inquiries. Storage is an
// append-only JSONL file: one lead per line, never rewritten. A file lock
// guards the file against concurrent writers from other processes; an
// in-process mutex serializes writers within this one.
package leads

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"github.com/agencyos/leadbot/core"
)

// Lead is one finalized project inquiry.
type Lead struct {
	SessionID string           `json:"session_id"`
	Data      core.SessionData `json:"data"`
	CreatedAt time.Time        `json:"created_at"`
}

// Store appends leads to a JSONL file and reads them back for the admin
// endpoint.
type Store struct {
	path string
	lock *flock.Flock
	mu   sync.Mutex
}

// NewStore creates a Store writing to path. The file and its lock file are
// created lazily on first append.
func NewStore(path string) *Store {
	return &Store{path: path, lock: flock.New(path + ".lock")}
}

// Append durably adds one lead to the end of the file.
func (s *Store) Append(lead Lead) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("lock leads file: %w", err)
	}
	defer s.lock.Unlock()

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open leads file: %w", err)
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(lead); err != nil {
		return fmt.Errorf("append lead: %w", err)
	}
	return nil
}

// All reads every persisted lead in append order. A missing file is an empty
// store, not an error. Unparseable lines are skipped so one bad record never
// hides the rest.
func (s *Store) All() ([]Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.lock.RLock(); err != nil {
		return nil, fmt.Errorf("lock leads file: %w", err)
	}
	defer s.lock.Unlock()

	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []Lead{}, nil
		}
		return nil, fmt.Errorf("open leads file: %w", err)
	}
	defer f.Close()

	leads := []Lead{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var lead Lead
		if err := json.Unmarshal(line, &lead); err != nil {
			continue
		}
		leads = append(leads, lead)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read leads file: %w", err)
	}
	return leads, nil
}
