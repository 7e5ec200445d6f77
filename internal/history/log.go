package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

// Entry kinds stored in the public log. File entries are appended by the
// upload subsystem through the same interface.
const (
	KindMessage = "message"
	KindSystem  = "system"
	KindFile    = "file"
)

// Entry is one immutable public event. The nick is the author's display
// name at posting time; history is never retroactively renamed.
type Entry struct {
	Kind string `json:"kind"`
	Nick string `json:"nick"`
	Text string `json:"text"`
	TS   int64  `json:"ts"`
}

// Log is a bounded FIFO of public history, written through to a JSON
// document on every mutation. A failed disk write is logged and the
// in-memory state stays authoritative for the running process.
type Log struct {
	mu      sync.Mutex
	path    string
	limit   int
	entries []Entry
	log     *zerolog.Logger
}

// Open loads the log from path, tolerating a missing or corrupt file.
func Open(path string, limit int, logger *zerolog.Logger) (*Log, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("history limit must be positive, got %d", limit)
	}

	l := &Log{path: path, limit: limit, log: logger}

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read history file: %w", err)
		}
		return l, nil
	}

	if err := json.Unmarshal(data, &l.entries); err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("history file corrupt, starting empty")
		l.entries = nil
	}
	if len(l.entries) > limit {
		l.entries = l.entries[len(l.entries)-limit:]
	}

	return l, nil
}

// Append adds an entry to the tail, evicting from the head once the log
// exceeds its limit. Timestamps are clamped so the log stays
// non-decreasing even if the wall clock steps backwards.
func (l *Log) Append(e Entry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if n := len(l.entries); n > 0 && e.TS < l.entries[n-1].TS {
		e.TS = l.entries[n-1].TS
	}
	l.entries = append(l.entries, e)
	for len(l.entries) > l.limit {
		l.entries = l.entries[1:]
	}
	l.persistLocked()
}

// Snapshot returns the entries in order for replay to a new session.
func (l *Log) Snapshot() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Clear empties the log. Authorization is the dispatcher's concern.
func (l *Log) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = nil
	l.persistLocked()
}

// Len reports the current number of entries.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

func (l *Log) persistLocked() {
	entries := l.entries
	if entries == nil {
		entries = []Entry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		l.log.Error().Err(err).Msg("marshal history")
		return
	}
	if err := writeFileAtomic(l.path, data); err != nil {
		l.log.Error().Err(err).Str("path", l.path).Msg("persist history")
	}
}

// writeFileAtomic replaces path via a temp file and rename so the
// document is valid JSON at every point in time.
func writeFileAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
