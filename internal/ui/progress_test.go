package ui

import (
	"strings"
	"testing"

	"jlower/internal/driver"
)

func newTestModel(files ...string) *progressModel {
	return NewProgressModel("lowering", files, nil).(*progressModel)
}

func TestApplyEventTracksStages(t *testing.T) {
	m := newTestModel("a.jlu", "b.jlu")
	m.applyEvent(driver.Event{File: "a.jlu", Stage: driver.StageLower, Status: driver.StatusWorking})
	if got := m.items[0].status; got != "lowering" {
		t.Fatalf("status = %q, want lowering", got)
	}
	m.applyEvent(driver.Event{File: "a.jlu", Status: driver.StatusDone})
	m.applyEvent(driver.Event{File: "b.jlu", Status: driver.StatusCached})
	if m.finished != 2 {
		t.Fatalf("finished = %d, want 2", m.finished)
	}
	// A repeated final event must not count twice.
	m.applyEvent(driver.Event{File: "b.jlu", Status: driver.StatusDone})
	if m.finished != 2 {
		t.Fatalf("finished = %d after repeat, want 2", m.finished)
	}
}

func TestApplyEventIgnoresUnknownFiles(t *testing.T) {
	m := newTestModel("a.jlu")
	if cmd := m.applyEvent(driver.Event{File: "other.jlu", Status: driver.StatusDone}); cmd != nil {
		t.Fatal("expected no command for an unknown file")
	}
	if m.items[0].status != "queued" {
		t.Fatalf("status = %q", m.items[0].status)
	}
}

func TestViewListsUnits(t *testing.T) {
	m := newTestModel("a.jlu", "b.jlu")
	m.applyEvent(driver.Event{File: "b.jlu", Status: driver.StatusError})
	view := m.View()
	for _, want := range []string{"a.jlu", "b.jlu", "(1/2)", "queued", "error"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("abcdefgh", 6); got != "abc..." {
		t.Fatalf("truncate = %q", got)
	}
	if got := truncate("abc", 6); got != "abc" {
		t.Fatalf("truncate = %q", got)
	}
}
