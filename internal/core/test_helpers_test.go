package core

import "testing"

// fakeIdentities is an in-memory IdentityStore for registry tests.
type fakeIdentities struct {
	names map[string]string
}

func newFakeIdentities() *fakeIdentities {
	return &fakeIdentities{names: make(map[string]string)}
}

func (f *fakeIdentities) Lookup(token string) (string, bool) {
	name, ok := f.names[token]
	return name, ok
}

func (f *fakeIdentities) Upsert(token, name string) {
	f.names[token] = name
}

// drain empties a session's outbound queue.
func drain(s *Session) []*Event {
	var out []*Event
	for {
		select {
		case ev := <-s.Events:
			out = append(out, ev)
		default:
			return out
		}
	}
}

// mustEvent pops the next queued event and asserts its kind.
func mustEvent(t *testing.T, s *Session, kind EventKind) *Event {
	t.Helper()
	select {
	case ev := <-s.Events:
		if ev.Kind != kind {
			t.Fatalf("expected event kind %d, got %d (%+v)", kind, ev.Kind, ev)
		}
		return ev
	default:
		t.Fatalf("no event queued, expected kind %d", kind)
		return nil
	}
}

// eventsOfKind filters a drained slice by kind.
func eventsOfKind(events []*Event, kind EventKind) []*Event {
	var out []*Event
	for _, ev := range events {
		if ev.Kind == kind {
			out = append(out, ev)
		}
	}
	return out
}
