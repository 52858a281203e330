package handlers

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Summer Collection", "summer-collection"},
		{"  Kids & Babies  ", "kids-babies"},
		{"T-Shirts", "tshirts"},
		{"Accessories 2024", "accessories-2024"},
		{"!!!", ""},
	}
	for _, tt := range tests {
		if got := slugify(tt.name); got != tt.want {
			t.Fatalf("slugify(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}
