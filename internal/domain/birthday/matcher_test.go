package birthday

import (
	"testing"
	"time"

	"github.com/dutsenko/contacts-api/internal/domain"
	"github.com/google/uuid"
)

// contactWithBirthday builds a minimal valid contact for matcher tests.
func contactWithBirthday(t *testing.T, name string, birthday domain.Date) *domain.Contact {
	t.Helper()
	return &domain.Contact{
		ID:        uuid.New(),
		FirstName: name,
		LastName:  "Test",
		Email:     name + "@example.com",
		Phone:     "+380000000000",
		Birthday:  birthday,
	}
}

func date(year int, month time.Month, day int) domain.Date {
	return domain.Date{Year: year, Month: month, Day: day}
}

func TestUpcoming(t *testing.T) {
	t.Parallel() // Enable parallel execution

	testCases := []struct {
		name       string
		birthday   domain.Date
		today      domain.Date
		windowDays int
		matched    bool
	}{
		{
			name:       "birthday inside window",
			birthday:   date(1990, time.March, 10),
			today:      date(2024, time.March, 8),
			windowDays: 7,
			matched:    true,
		},
		{
			name:       "birthday on window start",
			birthday:   date(1985, time.March, 8),
			today:      date(2024, time.March, 8),
			windowDays: 7,
			matched:    true,
		},
		{
			name:       "birthday on window end",
			birthday:   date(1985, time.March, 15),
			today:      date(2024, time.March, 8),
			windowDays: 7,
			matched:    true,
		},
		{
			name:       "birthday one day past window end",
			birthday:   date(1985, time.March, 16),
			today:      date(2024, time.March, 8),
			windowDays: 7,
			matched:    false,
		},
		{
			name:       "birthday months away",
			birthday:   date(1992, time.June, 1),
			today:      date(2024, time.March, 8),
			windowDays: 7,
			matched:    false,
		},
		{
			name:       "birthday just passed this year",
			birthday:   date(1992, time.March, 7),
			today:      date(2024, time.March, 8),
			windowDays: 7,
			matched:    false,
		},
		{
			name:       "window wraps into next year",
			birthday:   date(1988, time.January, 2),
			today:      date(2023, time.December, 29),
			windowDays: 7,
			matched:    true,
		},
		{
			name:       "wraparound birthday just past window end",
			birthday:   date(1988, time.January, 6),
			today:      date(2023, time.December, 29),
			windowDays: 7,
			matched:    false,
		},
		{
			name:       "december birthday within wrapping window",
			birthday:   date(1970, time.December, 30),
			today:      date(2023, time.December, 28),
			windowDays: 7,
			matched:    true,
		},
		{
			name:       "leap day birthday in non-leap year clamps to feb 28",
			birthday:   date(1996, time.February, 29),
			today:      date(2023, time.February, 25),
			windowDays: 7,
			matched:    true,
		},
		{
			name:       "leap day birthday outside non-leap window",
			birthday:   date(1996, time.February, 29),
			today:      date(2023, time.March, 1),
			windowDays: 7,
			matched:    false,
		},
		{
			name:       "leap day birthday in leap year",
			birthday:   date(1996, time.February, 29),
			today:      date(2024, time.February, 25),
			windowDays: 7,
			matched:    true,
		},
		{
			name:       "zero window matches only today",
			birthday:   date(1990, time.March, 8),
			today:      date(2024, time.March, 8),
			windowDays: 0,
			matched:    true,
		},
		{
			name:       "zero window excludes tomorrow",
			birthday:   date(1990, time.March, 9),
			today:      date(2024, time.March, 8),
			windowDays: 0,
			matched:    false,
		},
		{
			name:       "negative window treated as zero",
			birthday:   date(1990, time.March, 9),
			today:      date(2024, time.March, 8),
			windowDays: -3,
			matched:    false,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			contact := contactWithBirthday(t, "subject", tc.birthday)

			matched := Upcoming([]*domain.Contact{contact}, tc.today, tc.windowDays)

			if tc.matched && len(matched) != 1 {
				t.Errorf("Expected contact to match, got %d matches", len(matched))
			}
			if !tc.matched && len(matched) != 0 {
				t.Errorf("Expected contact not to match, got %d matches", len(matched))
			}
		})
	}
}

func TestUpcomingFiltersAndPreservesOrder(t *testing.T) {
	t.Parallel() // Enable parallel execution
	today := date(2024, time.March, 8)

	first := contactWithBirthday(t, "first", date(1990, time.March, 9))
	skipped := contactWithBirthday(t, "skipped", date(1990, time.June, 1))
	second := contactWithBirthday(t, "second", date(1990, time.March, 12))
	third := contactWithBirthday(t, "third", date(1990, time.March, 15))

	matched := Upcoming([]*domain.Contact{first, skipped, second, third}, today, DefaultWindowDays)

	if len(matched) != 3 {
		t.Fatalf("Expected 3 matches, got %d", len(matched))
	}
	for i, want := range []*domain.Contact{first, second, third} {
		if matched[i] != want {
			t.Errorf("Expected match %d to be %s, got %s", i, want.FirstName, matched[i].FirstName)
		}
	}
}

func TestUpcomingEdgeInputs(t *testing.T) {
	t.Parallel() // Enable parallel execution
	today := date(2024, time.March, 8)

	// No contacts: empty, non-nil result
	matched := Upcoming(nil, today, DefaultWindowDays)
	if matched == nil {
		t.Error("Expected empty slice, got nil")
	}
	if len(matched) != 0 {
		t.Errorf("Expected no matches, got %d", len(matched))
	}

	// A contact without a birthday never matches
	noBirthday := contactWithBirthday(t, "nobday", domain.Date{})
	matched = Upcoming([]*domain.Contact{noBirthday}, today, DefaultWindowDays)
	if len(matched) != 0 {
		t.Errorf("Expected no matches for unset birthday, got %d", len(matched))
	}
}

func TestUpcomingIsDeterministic(t *testing.T) {
	t.Parallel() // Enable parallel execution
	// The leap-day clamp policy must give the same answer on repeated runs.
	leapling := contactWithBirthday(t, "leapling", date(1996, time.February, 29))
	today := date(2023, time.February, 21)

	for i := 0; i < 5; i++ {
		matched := Upcoming([]*domain.Contact{leapling}, today, DefaultWindowDays)
		if len(matched) != 1 {
			t.Fatalf("Run %d: expected leap-day birthday to clamp to Feb 28 and match, got %d matches", i, len(matched))
		}
	}
}
