package validators

import "testing"

func TestSanitizeString(t *testing.T) {
	if got := SanitizeString("  alice  ", 0); got != "alice" {
		t.Fatalf("expected trimmed value got %q", got)
	}
	if got := SanitizeString("abcdef", 3); got != "abc" {
		t.Fatalf("expected capped value got %q", got)
	}
	if got := SanitizeString("   ", 10); got != "" {
		t.Fatalf("expected empty value got %q", got)
	}
}
