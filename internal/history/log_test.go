package history

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func openTestLog(t *testing.T, path string, limit int) *Log {
	t.Helper()
	logger := zerolog.Nop()
	l, err := Open(path, limit, &logger)
	if err != nil {
		t.Fatalf("open log: %v", err)
	}
	return l
}

func TestAppendEvictsOldestBeyondLimit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	l := openTestLog(t, path, 3)

	for i := 0; i < 5; i++ {
		l.Append(Entry{Kind: KindMessage, Nick: "alice", Text: string(rune('a' + i)), TS: int64(i)})
	}

	snap := l.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(snap))
	}
	for i, want := range []string{"c", "d", "e"} {
		if snap[i].Text != want {
			t.Fatalf("entry %d: got %q, want %q", i, snap[i].Text, want)
		}
	}
}

func TestLogSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")

	l := openTestLog(t, path, 10)
	l.Append(Entry{Kind: KindMessage, Nick: "alice", Text: "persisted", TS: 1})

	reopened := openTestLog(t, path, 10)
	snap := reopened.Snapshot()
	if len(snap) != 1 || snap[0].Text != "persisted" {
		t.Fatalf("unexpected reloaded entries: %+v", snap)
	}
}

func TestClearPersistsEmptyLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")

	l := openTestLog(t, path, 10)
	l.Append(Entry{Kind: KindMessage, Nick: "alice", Text: "gone", TS: 1})
	l.Clear()

	if l.Len() != 0 {
		t.Fatalf("expected empty log, got %d", l.Len())
	}

	reopened := openTestLog(t, path, 10)
	if reopened.Len() != 0 {
		t.Fatalf("clear not persisted, got %d entries", reopened.Len())
	}
}

func TestTimestampsNeverDecrease(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	l := openTestLog(t, path, 10)

	l.Append(Entry{Kind: KindMessage, TS: 100})
	l.Append(Entry{Kind: KindMessage, TS: 50}) // clock stepped back

	snap := l.Snapshot()
	if snap[1].TS < snap[0].TS {
		t.Fatalf("timestamps must be non-decreasing: %d then %d", snap[0].TS, snap[1].TS)
	}
}

func TestPersistedFileIsValidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	l := openTestLog(t, path, 10)
	l.Append(Entry{Kind: KindMessage, Nick: "alice", Text: "hi", TS: 1})

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read persisted file: %v", err)
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		t.Fatalf("persisted file is not valid JSON: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 persisted entry, got %d", len(entries))
	}
}

func TestOpenToleratesCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}

	l := openTestLog(t, path, 10)
	if l.Len() != 0 {
		t.Fatalf("expected empty log from corrupt file, got %d", l.Len())
	}
}

func TestOpenTruncatesOversizedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")

	l := openTestLog(t, path, 10)
	for i := 0; i < 10; i++ {
		l.Append(Entry{Kind: KindMessage, Text: "x", TS: int64(i)})
	}

	reopened := openTestLog(t, path, 4)
	if reopened.Len() != 4 {
		t.Fatalf("expected log trimmed to new limit, got %d", reopened.Len())
	}
	if snap := reopened.Snapshot(); snap[0].TS != 6 {
		t.Fatalf("expected newest entries kept, first TS %d", snap[0].TS)
	}
}
