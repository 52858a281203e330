package handlers

import (
	"strings"
	"testing"
)

func TestNewProductIDShapeAndUniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id, err := newProductID()
		if err != nil {
			t.Fatalf("newProductID returned error: %v", err)
		}
		if len(id) != productIDLength {
			t.Fatalf("expected %d characters, got %q", productIDLength, id)
		}
		for _, r := range id {
			if !strings.ContainsRune(productIDAlphabet, r) {
				t.Fatalf("unexpected character %q in %q", r, id)
			}
		}
		if seen[id] {
			t.Fatalf("duplicate id generated: %q", id)
		}
		seen[id] = true
	}
}
