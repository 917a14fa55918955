package boot

import (
	"errors"
	"strings"
	"testing"
)

func TestAllStepsHaveContent(t *testing.T) {
	if got := Count(); got != 7 {
		t.Fatalf("expected 7 steps, got %d", got)
	}
	for _, id := range IDs() {
		s, ok := Lookup(id)
		if !ok {
			t.Fatalf("lookup %q: not found", id)
		}
		if strings.TrimSpace(s.Title) == "" || strings.TrimSpace(s.Content) == "" {
			t.Fatalf("step %q has empty title or content: %+v", id, s)
		}
		if s.TestID == "" || s.Label == "" {
			t.Fatalf("step %q missing flowchart metadata", id)
		}
	}
}

func TestLookupUnknown(t *testing.T) {
	for _, id := range []StepID{"", "0", "8", "9", "six", " 6"} {
		if _, ok := Lookup(id); ok {
			t.Fatalf("expected %q to be unknown", id)
		}
		if _, err := Get(id); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound for %q, got %v", id, err)
		}
	}
}

func TestSystemdStep(t *testing.T) {
	s, err := Get("6")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if s.Title != "systemd Init System" {
		t.Fatalf("unexpected title %q", s.Title)
	}
	if !strings.HasPrefix(s.Content, "systemd is the first userspace process") {
		t.Fatalf("unexpected content %q", s.Content)
	}
}

func TestAllReturnsCopy(t *testing.T) {
	a := All()
	a[0].Title = "mutated"
	if s, _ := Lookup("1"); s.Title != "Power On" {
		t.Fatalf("table mutated through All(): %q", s.Title)
	}
}

func TestRows(t *testing.T) {
	var first, second int
	for _, s := range All() {
		switch s.Row() {
		case 1:
			first++
		case 2:
			second++
		}
	}
	if first != 4 || second != 3 {
		t.Fatalf("expected 4+3 rows, got %d+%d", first, second)
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize("  3 \n"); got != "3" {
		t.Fatalf("expected 3, got %q", got)
	}
}
