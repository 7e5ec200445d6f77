package core

import (
	"strings"
	"testing"
)

func TestRegisterAssignsGuestName(t *testing.T) {
	reg := NewRegistry("secret", newFakeIdentities())

	s := reg.Register()
	if !strings.HasPrefix(s.Name(), "guest_") {
		t.Fatalf("expected guest name, got %q", s.Name())
	}
	if s.IdentityToken() != "" {
		t.Fatalf("expected no identity token before identify, got %q", s.IdentityToken())
	}
	if reg.Len() != 1 {
		t.Fatalf("expected 1 live session, got %d", reg.Len())
	}
}

func TestRenameKeepsLastValidName(t *testing.T) {
	reg := NewRegistry("secret", newFakeIdentities())
	s := reg.Register()

	if _, err := reg.Rename(s, "alice"); err != nil {
		t.Fatalf("rename alice: %v", err)
	}
	if _, err := reg.Rename(s, "   "); err == nil {
		t.Fatal("expected invalid name error for blank rename")
	}
	if s.Name() != "alice" {
		t.Fatalf("invalid rename must not change name, got %q", s.Name())
	}

	if _, err := reg.Rename(s, "  bob  "); err != nil {
		t.Fatalf("rename bob: %v", err)
	}
	if s.Name() != "bob" {
		t.Fatalf("expected trimmed name bob, got %q", s.Name())
	}
}

func TestRenameTruncatesLongNames(t *testing.T) {
	reg := NewRegistry("secret", newFakeIdentities())
	s := reg.Register()

	long := strings.Repeat("x", NameMaxLen+20)
	name, err := reg.Rename(s, long)
	if err != nil {
		t.Fatalf("rename: %v", err)
	}
	if len([]rune(name)) != NameMaxLen {
		t.Fatalf("expected name capped at %d runes, got %d", NameMaxLen, len([]rune(name)))
	}
}

func TestIdentifyMintsTokenWhenAbsent(t *testing.T) {
	ids := newFakeIdentities()
	reg := NewRegistry("secret", ids)
	s := reg.Register()

	name, token := reg.Identify(s, "", "alice")
	if name != "alice" {
		t.Fatalf("expected alice, got %q", name)
	}
	if token == "" {
		t.Fatal("expected minted token")
	}
	if s.IdentityToken() != token {
		t.Fatalf("token not bound to session")
	}
	if stored, ok := ids.Lookup(token); !ok || stored != "alice" {
		t.Fatalf("expected upserted identity, got %q ok=%v", stored, ok)
	}
}

func TestIdentifyRestoresNameAcrossReconnect(t *testing.T) {
	ids := newFakeIdentities()
	reg := NewRegistry("secret", ids)

	s1 := reg.Register()
	_, token := reg.Identify(s1, "", "alice")
	reg.Unregister(s1)

	s2 := reg.Register()
	name, token2 := reg.Identify(s2, token, "")
	if name != "alice" {
		t.Fatalf("expected restored name alice, got %q", name)
	}
	if token2 != token {
		t.Fatalf("expected same token back, got %q", token2)
	}
}

func TestUnregisterFlushesIdentity(t *testing.T) {
	ids := newFakeIdentities()
	reg := NewRegistry("secret", ids)

	s := reg.Register()
	_, token := reg.Identify(s, "", "alice")
	if _, err := reg.Rename(s, "alice2"); err != nil {
		t.Fatalf("rename: %v", err)
	}
	reg.Unregister(s)

	if stored, _ := ids.Lookup(token); stored != "alice2" {
		t.Fatalf("expected flushed name alice2, got %q", stored)
	}
	if reg.Len() != 0 {
		t.Fatalf("expected empty live set, got %d", reg.Len())
	}
}

func TestSetAdminRequiresExactSecret(t *testing.T) {
	reg := NewRegistry("supersecret123", newFakeIdentities())
	s := reg.Register()

	if reg.SetAdmin(s, "wrong") {
		t.Fatal("wrong secret must not grant admin")
	}
	if s.IsAdmin() {
		t.Fatal("admin flag set after failed login")
	}

	if !reg.SetAdmin(s, "supersecret123") {
		t.Fatal("correct secret must grant admin")
	}
	if !s.IsAdmin() {
		t.Fatal("admin flag not set")
	}

	reg.ClearAdmin(s)
	if s.IsAdmin() {
		t.Fatal("admin flag survived ClearAdmin")
	}
}

func TestSnapshotCoversAllLiveSessions(t *testing.T) {
	reg := NewRegistry("secret", newFakeIdentities())

	a := reg.Register()
	b := reg.Register()
	if _, err := reg.Rename(a, "alice"); err != nil {
		t.Fatalf("rename: %v", err)
	}
	if _, err := reg.Rename(b, "bob"); err != nil {
		t.Fatalf("rename: %v", err)
	}
	reg.SetAdmin(b, "secret")

	snap := reg.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("expected 2 presence rows, got %d", len(snap))
	}
	if snap[0].Name != "alice" || snap[0].Admin {
		t.Fatalf("unexpected first row: %+v", snap[0])
	}
	if snap[1].Name != "bob" || !snap[1].Admin {
		t.Fatalf("unexpected second row: %+v", snap[1])
	}
}

func TestFindByDisplayNameFirstRegisteredWins(t *testing.T) {
	reg := NewRegistry("secret", newFakeIdentities())

	first := reg.Register()
	second := reg.Register()
	if _, err := reg.Rename(first, "dup"); err != nil {
		t.Fatalf("rename: %v", err)
	}
	if _, err := reg.Rename(second, "dup"); err != nil {
		t.Fatalf("rename: %v", err)
	}

	if got := reg.FindByDisplayName("dup"); got != first {
		t.Fatal("expected first-registered session to win the tie-break")
	}

	reg.Unregister(first)
	if got := reg.FindByDisplayName("dup"); got != second {
		t.Fatal("expected second session after first unregistered")
	}

	if reg.FindByDisplayName("nobody") != nil {
		t.Fatal("expected nil for unknown name")
	}
}

func TestFindByDisplayNameIsCaseSensitive(t *testing.T) {
	reg := NewRegistry("secret", newFakeIdentities())
	s := reg.Register()
	if _, err := reg.Rename(s, "Alice"); err != nil {
		t.Fatalf("rename: %v", err)
	}

	if reg.FindByDisplayName("alice") != nil {
		t.Fatal("lookup must be case-sensitive")
	}
	if reg.FindByDisplayName("Alice") != s {
		t.Fatal("exact match not found")
	}
}
