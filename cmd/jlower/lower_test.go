package main

import "testing"

func TestUseProgressUI(t *testing.T) {
	if on, err := useProgressUI("on", true); err != nil || !on {
		t.Fatalf("on: got %v, %v", on, err)
	}
	if on, err := useProgressUI("off", false); err != nil || on {
		t.Fatalf("off: got %v, %v", on, err)
	}
	if on, err := useProgressUI("auto", true); err != nil || on {
		t.Fatalf("auto while quiet: got %v, %v", on, err)
	}
	if _, err := useProgressUI("sometimes", false); err == nil {
		t.Fatal("expected an error for an unknown mode")
	}
}
