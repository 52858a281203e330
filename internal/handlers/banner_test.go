package handlers

import "testing"

func TestValidPlacement(t *testing.T) {
	for _, value := range []string{"top-of-page", "after-section", "bottom-of-page", "above-header"} {
		if !validPlacement(value) {
			t.Fatalf("expected %q to be accepted", value)
		}
	}
	for _, value := range []string{"", "sidebar", "TOP-OF-PAGE"} {
		if validPlacement(value) {
			t.Fatalf("expected %q to be rejected", value)
		}
	}
}
