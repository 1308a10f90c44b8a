package parser

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	dmyRegex     = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	isoRegex     = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})$`)
	daysAgoRegex = regexp.MustCompile(`^(\d+)\s*(?:d|day|days)\s+ago$`)
)

// ParseEntryDate parses the date an entry is attributed to.
// Supported formats:
// - dd/mm/yyyy (e.g., "15/12/2024")
// - yyyy-mm-dd (e.g., "2024-12-15")
// - today, yesterday
// - X days ago (e.g., "3 days ago", "1 day ago")
// The time of day is taken from now so the entry keeps a stable ordering within its day.
func ParseEntryDate(input string, now time.Time) (time.Time, error) {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	switch input {
	case "today", "now":
		return now, nil
	case "yesterday":
		return now.AddDate(0, 0, -1), nil
	}

	if matches := daysAgoRegex.FindStringSubmatch(input); matches != nil {
		days, err := strconv.Atoi(matches[1])
		if err != nil || days > 3660 {
			return time.Time{}, fmt.Errorf("days must be between 0 and 3660")
		}
		return now.AddDate(0, 0, -days), nil
	}

	if matches := dmyRegex.FindStringSubmatch(input); matches != nil {
		return buildDate(matches[3], matches[2], matches[1], now)
	}

	if matches := isoRegex.FindStringSubmatch(input); matches != nil {
		return buildDate(matches[1], matches[2], matches[3], now)
	}

	return time.Time{}, fmt.Errorf("invalid date format. Use: dd/mm/yyyy, yyyy-mm-dd, today, yesterday or X days ago")
}

// buildDate validates calendar fields and places them at now's time of day
func buildDate(yearStr, monthStr, dayStr string, now time.Time) (time.Time, error) {
	year, _ := strconv.Atoi(yearStr)
	month, _ := strconv.Atoi(monthStr)
	day, _ := strconv.Atoi(dayStr)

	if day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("day must be between 1 and 31")
	}
	if month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("month must be between 1 and 12")
	}
	if year < 1970 || year > 2100 {
		return time.Time{}, fmt.Errorf("year must be between 1970 and 2100")
	}

	date := time.Date(year, time.Month(month), day,
		now.Hour(), now.Minute(), now.Second(), 0, now.Location())

	// Reject dates that time.Date normalized (e.g., 31/02)
	if date.Day() != day || date.Month() != time.Month(month) || date.Year() != year {
		return time.Time{}, fmt.Errorf("invalid date")
	}

	return date, nil
}

// FormatEntryDate formats an entry date for display, relative to now
func FormatEntryDate(date, now time.Time) string {
	date = date.In(now.Location())
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, now.Location())
	daysDiff := int(math.Round(today.Sub(day).Hours() / 24))

	dateStr := date.Format("02/01/2006")

	switch {
	case daysDiff == 0:
		return fmt.Sprintf("today (%s)", dateStr)
	case daysDiff == 1:
		return fmt.Sprintf("yesterday (%s)", dateStr)
	case daysDiff > 1 && daysDiff <= 6:
		return fmt.Sprintf("%s (%s)", date.Format("Mon"), dateStr)
	default:
		return dateStr
	}
}
