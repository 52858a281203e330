package handlers

import (
	"regexp"
	"testing"
)

var uuidShape = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

func TestNewAddressID(t *testing.T) {
	first, err := newAddressID()
	if err != nil {
		t.Fatalf("newAddressID returned error: %v", err)
	}
	if !uuidShape.MatchString(first) {
		t.Fatalf("unexpected id shape: %q", first)
	}

	second, err := newAddressID()
	if err != nil {
		t.Fatalf("newAddressID returned error: %v", err)
	}
	if first == second {
		t.Fatal("consecutive ids must differ")
	}
}

func TestLowerCamel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Email", "email"},
		{"FirstName", "firstName"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := lowerCamel(tt.in); got != tt.want {
			t.Fatalf("lowerCamel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
