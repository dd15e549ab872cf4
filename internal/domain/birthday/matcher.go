// Package birthday implements the birthday-window matcher: given a list of
// contacts and a calendar date, it selects the contacts whose birthday
// (month and day, year-independent) falls within an inclusive window
// starting at that date. The calendar is treated as cyclic, so a window
// opened in late December reaches into January of the following year.
//
// The matcher is a pure function over an already-fetched contact list. It
// performs no I/O and holds no state, so it is safe to call from any number
// of concurrent requests without synchronization.
package birthday

import (
	"time"

	"github.com/dutsenko/contacts-api/internal/domain"
)

// DefaultWindowDays is the window length used by the upcoming-birthdays
// endpoint: today plus the next seven days, both ends inclusive.
const DefaultWindowDays = 7

// Upcoming returns the contacts whose birthday falls within
// [today, today+windowDays], preserving the input order. Contacts with an
// unset birthday never match. A non-positive windowDays degenerates to
// exact-date matching (windowDays = 0).
func Upcoming(contacts []*domain.Contact, today domain.Date, windowDays int) []*domain.Contact {
	if windowDays < 0 {
		windowDays = 0
	}
	windowEnd := today.AddDays(windowDays)

	matched := make([]*domain.Contact, 0)
	for _, contact := range contacts {
		if contact.Birthday.IsZero() {
			continue
		}
		c := candidate(contact.Birthday, today)
		if !c.Before(today) && !c.After(windowEnd) {
			matched = append(matched, contact)
		}
	}
	return matched
}

// candidate projects the birthday's month and day onto today's year. If the
// projection has already passed this year, it rolls over to the next year so
// that windows spanning a year boundary still see it. A Feb 29 birthday in a
// non-leap candidate year is clamped to Feb 28.
func candidate(birthday, today domain.Date) domain.Date {
	c := project(birthday, today.Year)
	if c.Before(today) {
		c = project(birthday, today.Year+1)
	}
	return c
}

// project places the birthday's month and day in the given year, clamping
// Feb 29 to Feb 28 when the year is not a leap year.
func project(birthday domain.Date, year int) domain.Date {
	day := birthday.Day
	if birthday.Month == time.February && day == 29 && !isLeapYear(year) {
		day = 28
	}
	return domain.Date{Year: year, Month: birthday.Month, Day: day}
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
