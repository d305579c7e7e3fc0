package timeutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the calendar date format the API accepts in filters
const DateLayout = "2006-01-02"

// Location resolves an IANA timezone name, falling back to UTC when empty or invalid
func Location(timezone string) *time.Location {
	if timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// IsValidTimezone checks if a timezone string is valid
func IsValidTimezone(timezone string) bool {
	if timezone == "" {
		return false
	}
	_, err := time.LoadLocation(timezone)
	return err == nil
}

// LocalDate returns the calendar date of now in the given timezone
func LocalDate(now time.Time, timezone string) string {
	return now.In(Location(timezone)).Format(DateLayout)
}

// ResolveDate turns a date filter value into YYYY-MM-DD.
//
// Accepted forms are an explicit YYYY-MM-DD date, "today", "yesterday" and
// a relative "-Nd" meaning N days before today. Relative forms are evaluated
// in timezone. An empty value stays empty.
func ResolveDate(value string, now time.Time, timezone string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", nil
	}

	local := now.In(Location(timezone))
	switch strings.ToLower(value) {
	case "today":
		return local.Format(DateLayout), nil
	case "yesterday":
		return local.AddDate(0, 0, -1).Format(DateLayout), nil
	}

	if strings.HasPrefix(value, "-") && strings.HasSuffix(value, "d") {
		days, err := strconv.Atoi(value[1 : len(value)-1])
		if err != nil || days < 0 {
			return "", fmt.Errorf("invalid relative date %q: want -Nd", value)
		}
		return local.AddDate(0, 0, -days).Format(DateLayout), nil
	}

	if _, err := time.Parse(DateLayout, value); err != nil {
		return "", fmt.Errorf("invalid date %q: want YYYY-MM-DD, today, yesterday or -Nd", value)
	}
	return value, nil
}

// ResolveRange resolves both ends of a date range and rejects an inverted one
func ResolveRange(start, end string, now time.Time, timezone string) (string, string, error) {
	from, err := ResolveDate(start, now, timezone)
	if err != nil {
		return "", "", err
	}
	to, err := ResolveDate(end, now, timezone)
	if err != nil {
		return "", "", err
	}
	// YYYY-MM-DD compares correctly as a string
	if from != "" && to != "" && from > to {
		return "", "", fmt.Errorf("start date %s is after end date %s", from, to)
	}
	return from, to, nil
}
