package identity

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Record is the durable state kept per identity token.
type Record struct {
	Nick     string `json:"nick"`
	LastSeen int64  `json:"lastSeen"`
}

// Store is a durable token -> record map, written through to a JSON
// document on every mutation. Records are upserted, never merged.
type Store struct {
	mu      sync.Mutex
	path    string
	records map[string]Record
	now     func() time.Time
	log     *zerolog.Logger
}

// Open loads the store from path, tolerating a missing or corrupt file.
func Open(path string, logger *zerolog.Logger) (*Store, error) {
	s := &Store{
		path:    path,
		records: make(map[string]Record),
		now:     time.Now,
		log:     logger,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read identity file: %w", err)
		}
		return s, nil
	}

	if err := json.Unmarshal(data, &s.records); err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("identity file corrupt, starting empty")
		s.records = make(map[string]Record)
	}

	return s, nil
}

// Lookup returns the display name stored under token.
func (s *Store) Lookup(token string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[token]
	return rec.Nick, ok
}

// Get returns the full record stored under token.
func (s *Store) Get(token string) (Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[token]
	return rec, ok
}

// Upsert overwrites the name under token and refreshes lastSeen.
func (s *Store) Upsert(token, nick string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[token] = Record{
		Nick:     nick,
		LastSeen: s.now().UnixMilli(),
	}
	s.persistLocked()
}

// Len reports the number of stored records.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

func (s *Store) persistLocked() {
	data, err := json.MarshalIndent(s.records, "", "  ")
	if err != nil {
		s.log.Error().Err(err).Msg("marshal identities")
		return
	}
	if err := writeFileAtomic(s.path, data); err != nil {
		s.log.Error().Err(err).Str("path", s.path).Msg("persist identities")
	}
}

func writeFileAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
