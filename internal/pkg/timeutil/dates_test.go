package timeutil

import (
	"testing"
	"time"
)

func TestResolveDate(t *testing.T) {
	// 23:30 UTC is already the next day in Tokyo
	now := time.Date(2024, 3, 10, 23, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		value    string
		timezone string
		expected string
		wantErr  bool
	}{
		{"empty", "", "", "", false},
		{"explicit date", "2024-01-31", "", "2024-01-31", false},
		{"today utc", "today", "", "2024-03-10", false},
		{"today tokyo", "today", "Asia/Tokyo", "2024-03-11", false},
		{"yesterday", "Yesterday", "", "2024-03-09", false},
		{"seven days", "-7d", "", "2024-03-03", false},
		{"zero days", "-0d", "", "2024-03-10", false},
		{"invalid timezone falls back to utc", "today", "Mars/Olympus", "2024-03-10", false},
		{"bad relative", "-xd", "", "", true},
		{"bad date", "2024-02-30", "", "", true},
		{"wrong layout", "10/03/2024", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveDate(tt.value, now, tt.timezone)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ResolveDate(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
			if got != tt.expected {
				t.Errorf("ResolveDate(%q) = %q, want %q", tt.value, got, tt.expected)
			}
		})
	}
}

func TestResolveRange(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	from, to, err := ResolveRange("-7d", "today", now, "")
	if err != nil || from != "2024-03-03" || to != "2024-03-10" {
		t.Errorf("ResolveRange(-7d, today) = %q, %q, %v", from, to, err)
	}

	if _, _, err := ResolveRange("2024-03-10", "2024-03-01", now, ""); err == nil {
		t.Error("ResolveRange(inverted) error = nil")
	}

	if from, to, err := ResolveRange("", "2024-03-01", now, ""); err != nil || from != "" || to != "2024-03-01" {
		t.Errorf("ResolveRange(open start) = %q, %q, %v", from, to, err)
	}
}

func TestIsValidTimezone(t *testing.T) {
	if IsValidTimezone("") {
		t.Error("IsValidTimezone(\"\") = true")
	}
	if !IsValidTimezone("Europe/Berlin") {
		t.Error("IsValidTimezone(Europe/Berlin) = false")
	}
	if IsValidTimezone("Not/AZone") {
		t.Error("IsValidTimezone(Not/AZone) = true")
	}
}
