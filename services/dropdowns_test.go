package services

import (
	"testing"
)

func TestUOMOptions(t *testing.T) {
	if len(UOMOptions) == 0 {
		t.Fatal("UOMOptions should not be empty")
	}

	// Check some expected values
	expected := map[string]bool{
		"Nos": true, "Sqm": true, "Sqft": true, "Kg": true, "Lumpsum": true,
	}
	found := make(map[string]bool)
	for _, opt := range UOMOptions {
		if opt == "" {
			t.Error("UOMOptions contains empty string")
		}
		if found[opt] {
			t.Errorf("duplicate UOM option %q", opt)
		}
		found[opt] = true
	}
	for k := range expected {
		if !found[k] {
			t.Errorf("expected UOM option %q not found", k)
		}
	}
}
