package dateutil

import (
	"errors"
	"testing"
	"time"

	"github.com/starford/gestorplan/internal/apperr"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseDay(s)
	if err != nil {
		t.Fatalf("ParseDay(%q): %v", s, err)
	}
	return d
}

func TestParseDay_RoundTrip(t *testing.T) {
	d := day(t, "2024-12-20")
	if got := FormatDay(d); got != "2024-12-20" {
		t.Errorf("FormatDay = %q, want 2024-12-20", got)
	}
	if d.Hour() != 0 || d.Location() != time.UTC {
		t.Errorf("ParseDay should yield UTC midnight, got %v", d)
	}
}

func TestParseDay_Invalid(t *testing.T) {
	for _, s := range []string{"", "20-12-2024", "2024-13-01", "2024-12-20T10:00:00Z", "mañana"} {
		if _, err := ParseDay(s); err == nil {
			t.Errorf("ParseDay(%q) should fail", s)
		}
	}
}

func TestContainsDay_Boundaries(t *testing.T) {
	const start, end = "2024-12-20", "2024-12-31"
	tests := []struct {
		probe string
		want  bool
	}{
		{"2024-12-19", false}, // day before start
		{"2024-12-20", true},  // start itself
		{"2024-12-25", true},  // interior
		{"2024-12-31", true},  // end itself
		{"2025-01-01", false}, // day after end
	}
	for _, tt := range tests {
		if got := ContainsDay(start, end, day(t, tt.probe)); got != tt.want {
			t.Errorf("ContainsDay(%s..%s, %s) = %v, want %v", start, end, tt.probe, got, tt.want)
		}
	}
}

func TestContainsDay_EndOfDayInclusive(t *testing.T) {
	// A probe late on the end day is still inside.
	probe := time.Date(2024, 12, 31, 23, 0, 0, 0, time.UTC)
	if !ContainsDay("2024-12-20", "2024-12-31", probe) {
		t.Error("probe at 23:00 on the end day should be contained")
	}
}

func TestContainsDay_SingleDay(t *testing.T) {
	if !ContainsDay("2024-12-20", "2024-12-20", day(t, "2024-12-20")) {
		t.Error("single-day interval should contain its day")
	}
}

func TestContainsDay_MalformedDates(t *testing.T) {
	probe := day(t, "2024-12-20")
	if ContainsDay("garbage", "2024-12-31", probe) {
		t.Error("malformed start should never contain")
	}
	if ContainsDay("2024-12-20", "garbage", probe) {
		t.Error("malformed end should never contain")
	}
}

func TestSameDay(t *testing.T) {
	a := time.Date(2024, 12, 20, 8, 30, 0, 0, time.UTC)
	b := time.Date(2024, 12, 20, 23, 59, 0, 0, time.UTC)
	if !SameDay(a, b) {
		t.Error("same calendar day with different times should match")
	}
	if SameDay(a, b.AddDate(0, 0, 1)) {
		t.Error("different days should not match")
	}
}

func TestValidateRange(t *testing.T) {
	if err := ValidateRange("2024-12-20", "2024-12-31"); err != nil {
		t.Errorf("valid range should pass: %v", err)
	}
	if err := ValidateRange("2024-12-20", "2024-12-20"); err != nil {
		t.Errorf("single-day range should pass: %v", err)
	}

	err := ValidateRange("2024-12-31", "2024-12-20")
	if err == nil {
		t.Fatal("inverted range should fail")
	}
	if !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("inverted range error should wrap ErrValidation, got %v", err)
	}

	if err := ValidateRange("nope", "2024-12-20"); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("bad start date should wrap ErrValidation, got %v", err)
	}
	if err := ValidateRange("2024-12-20", "nope"); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("bad end date should wrap ErrValidation, got %v", err)
	}
}
