package domain

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DefaultDueDate is assigned to tasks created without a due date.
const DefaultDueDate = "Due today"

// DateKeyLayout formats the normalized calendar key of a due date.
const DateKeyLayout = "2006-01-02"

// ClassifyDueDate picks the column a task with the given due date descriptor
// starts in. Blank descriptors and anything mentioning today land in Today;
// every other value (tomorrow, next week, "due <date>") lands in Upcoming.
func ClassifyDueDate(dueDate string) string {
	d := strings.ToLower(strings.TrimSpace(dueDate))
	if d == "" || strings.Contains(d, "today") {
		return ColumnToday
	}
	return ColumnUpcoming
}

// IsPlanned reports whether the descriptor carries an actual date.
func IsPlanned(dueDate string) bool {
	d := strings.ToLower(strings.TrimSpace(dueDate))
	return d != "" && d != "no date"
}

var (
	duePrefix    = regexp.MustCompile(`(?i)^due\s+`)
	monthDayForm = regexp.MustCompile(`^([a-z]{3,9})\.?\s+(\d{1,2})(?:st|nd|rd|th)?(?:,\s*(\d{2,4})\b|\s+(\d{4})\b)?(?:[\s,].*)?$`)
	slashForm    = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})(?:/(\d{4}|\d{2}))?(?:[\s,].*)?$`)
)

var monthsByPrefix = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// ResolveDueDate turns a descriptor into an instant. Any mention of "today"
// resolves to now and of "tomorrow" to now plus one day; explicit dates,
// optionally followed by a time or note, resolve to local midnight in now's
// location. The boolean is false when nothing parses.
func ResolveDueDate(dueDate string, now time.Time) (time.Time, bool) {
	s := strings.TrimSpace(duePrefix.ReplaceAllString(strings.TrimSpace(dueDate), ""))
	lower := strings.ToLower(s)
	switch {
	case lower == "", lower == "no date":
		return time.Time{}, false
	case strings.Contains(lower, "today"):
		return now, true
	case strings.Contains(lower, "tomorrow"):
		return now.Add(24 * time.Hour), true
	}

	loc := now.Location()
	if m := monthDayForm.FindStringSubmatch(lower); m != nil {
		if len(m[1]) < 3 {
			return time.Time{}, false
		}
		month, ok := monthsByPrefix[m[1][:3]]
		if !ok {
			return time.Time{}, false
		}
		day, _ := strconv.Atoi(m[2])
		return calendarDate(explicitYear(m[3]+m[4], now), month, day, loc)
	}
	if m := slashForm.FindStringSubmatch(lower); m != nil {
		month, _ := strconv.Atoi(m[1])
		day, _ := strconv.Atoi(m[2])
		if month < 1 || month > 12 {
			return time.Time{}, false
		}
		return calendarDate(explicitYear(m[3], now), time.Month(month), day, loc)
	}
	if t, err := time.ParseInLocation(DateKeyLayout, s, loc); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(loc), true
	}
	return time.Time{}, false
}

// explicitYear reads a two- or four-digit year, defaulting to now's year.
func explicitYear(s string, now time.Time) int {
	if s == "" {
		return now.Year()
	}
	year, _ := strconv.Atoi(s)
	if len(s) == 2 {
		year += 2000
	}
	return year
}

// calendarDate rejects dates that time.Date would silently normalize.
func calendarDate(year int, month time.Month, day int, loc *time.Location) (time.Time, bool) {
	t := time.Date(year, month, day, 0, 0, 0, 0, loc)
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

// DueDateKey returns the YYYY-MM-DD key used to group tasks by day.
func DueDateKey(dueDate string, now time.Time) (string, bool) {
	t, ok := ResolveDueDate(dueDate, now)
	if !ok {
		return "", false
	}
	return t.Format(DateKeyLayout), true
}
