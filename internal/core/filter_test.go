package core

import "testing"

func TestFilterMasksWholeWords(t *testing.T) {
	f := NewFilter([]string{"darn", "heck"}, "***")

	got := f.Apply("darn it all to heck")
	want := "*** it all to ***"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFilterIsCaseInsensitive(t *testing.T) {
	f := NewFilter([]string{"darn"}, "***")

	if got := f.Apply("DARN Darn darn"); got != "*** *** ***" {
		t.Fatalf("got %q", got)
	}
}

func TestFilterLeavesSubstringsAlone(t *testing.T) {
	f := NewFilter([]string{"ass"}, "***")

	if got := f.Apply("classic assassin passes"); got != "classic assassin passes" {
		t.Fatalf("substring must not match, got %q", got)
	}
	if got := f.Apply("you ass"); got != "you ***" {
		t.Fatalf("whole word must match, got %q", got)
	}
}

func TestFilterIsIdempotent(t *testing.T) {
	f := NewFilter([]string{"darn", "heck"}, "***")

	once := f.Apply("darn this heck")
	twice := f.Apply(once)
	if once != twice {
		t.Fatalf("filter not idempotent: %q vs %q", once, twice)
	}
}

func TestFilterEmptyListPassesThrough(t *testing.T) {
	f := NewFilter(nil, "***")

	if got := f.Apply("anything goes"); got != "anything goes" {
		t.Fatalf("got %q", got)
	}
}

func TestNilFilterPassesThrough(t *testing.T) {
	var f *Filter
	if got := f.Apply("text"); got != "text" {
		t.Fatalf("got %q", got)
	}
}
