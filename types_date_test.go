package apura

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want Date
	}{
		{"2024-03-05", NewDate(2024, time.March, 5)},
		{"2024-3-5", NewDate(2024, time.March, 5)}, // lenient single digits
		{" 2024-03-05 ", NewDate(2024, time.March, 5)},
	}
	for _, tt := range tests {
		got, err := ParseDate(tt.in)
		if err != nil {
			t.Errorf("ParseDate(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDate(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
	if _, err := ParseDate("05/03/2024"); err == nil {
		t.Error("expected an error for a non ISO date")
	}
}

func TestDate_Normalization(t *testing.T) {
	// Overflowing days roll into the next month, like time.Date.
	if got := NewDate(2024, time.January, 32); got != NewDate(2024, time.February, 1) {
		t.Errorf("got %s, want 2024-02-01", got)
	}
	if got := MustParse("2024-02-28").Add(1); got != MustParse("2024-02-29") {
		t.Errorf("got %s, want leap day", got)
	}
}

func TestDate_JSON(t *testing.T) {
	b, err := json.Marshal(MustParse("2024-03-05"))
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `"2024-03-05"` {
		t.Errorf("marshal = %s", b)
	}
	var d Date
	if err := json.Unmarshal([]byte(`"2024-3-5"`), &d); err != nil {
		t.Fatal(err)
	}
	if d != MustParse("2024-03-05") {
		t.Errorf("unmarshal = %s", d)
	}
}

func TestRange_Contains(t *testing.T) {
	r := YearRange(2024)
	tests := []struct {
		on   string
		want bool
	}{
		{"2024-01-01", true}, // both ends inclusive
		{"2024-12-31", true},
		{"2024-06-15", true},
		{"2023-12-31", false},
		{"2025-01-01", false},
	}
	for _, tt := range tests {
		if got := r.Contains(MustParse(tt.on)); got != tt.want {
			t.Errorf("Contains(%s) = %v, want %v", tt.on, got, tt.want)
		}
	}

	open := Range{To: MustParse("2024-12-31")}
	if !open.Contains(MustParse("1990-01-01")) {
		t.Error("a zero From must be open ended")
	}
}
