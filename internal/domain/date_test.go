package domain

import (
	"encoding/json"
	"testing"
	"time"
)

func TestNewDate(t *testing.T) {
	t.Parallel() // Enable parallel execution
	// Test valid date creation
	d, err := NewDate(1990, time.March, 10)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if d.String() != "1990-03-10" {
		t.Errorf("Expected 1990-03-10, got %s", d)
	}

	// Leap day in a leap year is valid
	if _, err := NewDate(2024, time.February, 29); err != nil {
		t.Errorf("Expected no error for 2024-02-29, got %v", err)
	}

	// Leap day in a non-leap year is not
	if _, err := NewDate(2023, time.February, 29); err == nil {
		t.Error("Expected error for 2023-02-29, got nil")
	}

	// Impossible dates are rejected
	for _, tc := range []struct {
		year  int
		month time.Month
		day   int
	}{
		{2024, time.February, 30},
		{2024, time.April, 31},
		{2024, time.January, 0},
		{2024, 13, 1},
	} {
		if _, err := NewDate(tc.year, tc.month, tc.day); err == nil {
			t.Errorf("Expected error for %04d-%02d-%02d, got nil", tc.year, tc.month, tc.day)
		}
	}
}

func TestParseDate(t *testing.T) {
	t.Parallel() // Enable parallel execution
	d, err := ParseDate("2024-12-31")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if d.Year != 2024 || d.Month != time.December || d.Day != 31 {
		t.Errorf("Expected 2024-12-31, got %s", d)
	}

	for _, input := range []string{"", "31-12-2024", "2024-02-30", "not a date"} {
		if _, err := ParseDate(input); err == nil {
			t.Errorf("Expected error for %q, got nil", input)
		}
	}
}

func TestDateAddDays(t *testing.T) {
	t.Parallel() // Enable parallel execution
	d := Date{Year: 2023, Month: time.December, Day: 29}

	got := d.AddDays(7)
	want := Date{Year: 2024, Month: time.January, Day: 5}
	if got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}

	if d.AddDays(0) != d {
		t.Errorf("Expected AddDays(0) to be identity, got %s", d.AddDays(0))
	}
}

func TestDateComparisons(t *testing.T) {
	t.Parallel() // Enable parallel execution
	earlier := Date{Year: 2024, Month: time.March, Day: 8}
	later := Date{Year: 2024, Month: time.March, Day: 10}

	if !earlier.Before(later) {
		t.Error("Expected earlier.Before(later) to be true")
	}
	if earlier.After(later) {
		t.Error("Expected earlier.After(later) to be false")
	}
	if earlier.Before(earlier) || earlier.After(earlier) {
		t.Error("Expected a date to be neither before nor after itself")
	}
}

func TestDateJSONRoundTrip(t *testing.T) {
	t.Parallel() // Enable parallel execution
	d := Date{Year: 1995, Month: time.June, Day: 1}

	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if string(data) != `"1995-06-01"` {
		t.Errorf(`Expected "1995-06-01", got %s`, data)
	}

	var decoded Date
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if decoded != d {
		t.Errorf("Expected %s after round trip, got %s", d, decoded)
	}

	// Malformed input fails with ErrInvalidDate
	if err := json.Unmarshal([]byte(`"2024-02-30"`), &decoded); err == nil {
		t.Error("Expected error for impossible date, got nil")
	}
}

func TestDateScan(t *testing.T) {
	t.Parallel() // Enable parallel execution
	var d Date

	if err := d.Scan(time.Date(1990, time.March, 10, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if d.String() != "1990-03-10" {
		t.Errorf("Expected 1990-03-10, got %s", d)
	}

	if err := d.Scan("2001-07-15"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if d.String() != "2001-07-15" {
		t.Errorf("Expected 2001-07-15, got %s", d)
	}

	if err := d.Scan(nil); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !d.IsZero() {
		t.Errorf("Expected zero date after scanning nil, got %s", d)
	}

	if err := d.Scan(42); err == nil {
		t.Error("Expected error scanning an int, got nil")
	}
}
