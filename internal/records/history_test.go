package records

import "testing"

func TestAppendHistory(t *testing.T) {
	tests := []struct {
		existing, next string
		want           string
	}{
		{"", "70kg", "70kg"},
		{"70kg", "72kg", "70kg | 72kg"},
		{"70kg | 72kg", "71kg", "70kg | 72kg | 71kg"},
		{"120/80", "", "120/80 | "},
	}
	for _, tt := range tests {
		if got := AppendHistory(tt.existing, tt.next); got != tt.want {
			t.Errorf("AppendHistory(%q, %q) = %q, want %q", tt.existing, tt.next, got, tt.want)
		}
	}
}

func TestLiteralFragmentThroughAppend(t *testing.T) {
	first := AppendHistory("", LiteralFragment("2025-01-01 09:00"))
	if first != "2025-01-01 09:00 | " {
		t.Errorf("Unexpected first literal write %q", first)
	}

	second := AppendHistory(first, LiteralFragment("2025-02-01 09:00"))
	if second != "2025-01-01 09:00 |  | 2025-02-01 09:00 | " {
		t.Errorf("Unexpected second literal write %q", second)
	}

	if LiteralFragment("") != "" {
		t.Error("Expected empty fragment for empty value")
	}
}
