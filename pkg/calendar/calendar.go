// Copyright (c) 2026 Sanctorale. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package calendar implements the yearly-recurrence arithmetic behind feast days.

A feast is identified by its month and day only; the stored year is a
placeholder. Dates handled here are civil dates represented as midnight UTC,
so day differences are exact regardless of the server time zone.

Leap days:

	A Feb 29 feast is observed on Feb 28 in common years.
*/
package calendar

import (
	"fmt"
	"time"
)

// MonthDay is a recurring calendar day.
type MonthDay struct {
	Month time.Month
	Day   int
}

// Of extracts the month and day of t.
func Of(t time.Time) MonthDay {
	return MonthDay{Month: t.Month(), Day: t.Day()}
}

// Key renders the "MM-DD" form.
func (md MonthDay) Key() string {
	return fmt.Sprintf("%02d-%02d", int(md.Month), md.Day)
}

// Ordinal encodes md as month*100 + day, so 12-26 becomes 1226.
// The encoding sorts in calendar order and matches the indexed SQL expression.
func (md MonthDay) Ordinal() int {
	return int(md.Month)*100 + md.Day
}

// IsLeapDay reports whether md is Feb 29.
func (md MonthDay) IsLeapDay() bool {
	return md.Month == time.February && md.Day == 29
}

// # Civil Dates

// Date returns the civil date y-m-d at midnight UTC.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Today returns the current civil date in loc, as midnight UTC.
func Today(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	local := now.In(loc)
	return Date(local.Year(), local.Month(), local.Day())
}

// IsLeapYear reports whether year has a Feb 29.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// OccurrenceIn returns the date md is observed on in year.
func OccurrenceIn(year int, md MonthDay) time.Time {
	if md.IsLeapDay() && !IsLeapYear(year) {
		return Date(year, time.February, 28)
	}
	return Date(year, md.Month, md.Day)
}

// NextOccurrence returns the first observance of md on or after today.
func NextOccurrence(today time.Time, md MonthDay) time.Time {
	occurrence := OccurrenceIn(today.Year(), md)
	if occurrence.Before(today) {
		occurrence = OccurrenceIn(today.Year()+1, md)
	}
	return occurrence
}

// DaysUntil counts whole days from today to the next observance of md; 0 means today.
func DaysUntil(today time.Time, md MonthDay) int {
	return int(NextOccurrence(today, md).Sub(today).Hours() / 24)
}

// # Observance Sets

// ObservedOn lists the feast days celebrated on date, including Feb 29
// feasts when date is Feb 28 of a common year.
func ObservedOn(date time.Time) []MonthDay {
	days := []MonthDay{Of(date)}
	if date.Month() == time.February && date.Day() == 28 && !IsLeapYear(date.Year()) {
		days = append(days, MonthDay{Month: time.February, Day: 29})
	}
	return days
}

// Window lists the feast days observed from today through today+days inclusive.
func Window(today time.Time, days int) []MonthDay {
	if days < 0 {
		return nil
	}

	seen := make(map[MonthDay]struct{}, days+2)
	window := make([]MonthDay, 0, days+2)
	for offset := 0; offset <= days; offset++ {
		for _, md := range ObservedOn(today.AddDate(0, 0, offset)) {
			if _, dup := seen[md]; dup {
				continue
			}
			seen[md] = struct{}{}
			window = append(window, md)
		}
	}
	return window
}

// Ordinals encodes each day with [MonthDay.Ordinal].
func Ordinals(days []MonthDay) []int {
	ordinals := make([]int, len(days))
	for i, md := range days {
		ordinals[i] = md.Ordinal()
	}
	return ordinals
}
