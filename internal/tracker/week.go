package tracker

import (
	"fmt"
	"math"
	"time"

	"github.com/balkashynov/durok/internal/parser"
)

// DefaultWeeklyTargetHours is used when no weekly target is configured
const DefaultWeeklyTargetHours = "40"

// DatedInput is an entry's duration input with the date it is attributed to
type DatedInput struct {
	Input parser.Input
	Date  time.Time
}

// DayBucket is the logged time for one calendar day of the week
type DayBucket struct {
	Date    time.Time `json:"date" yaml:"date"`
	Label   string    `json:"day" yaml:"day"`
	Minutes int       `json:"minutes" yaml:"minutes"`
	// Hours is rounded to 2 decimals, for display only
	Hours float64 `json:"hours" yaml:"hours"`
}

// WeekSummary aggregates entries over a Monday..Sunday week
type WeekSummary struct {
	Start                  time.Time   `json:"week_start" yaml:"week_start"`
	End                    time.Time   `json:"week_end" yaml:"week_end"`
	Days                   []DayBucket `json:"days" yaml:"days"`
	TotalMinutes           int         `json:"total_minutes" yaml:"total_minutes"`
	TargetMinutes          int         `json:"target_minutes" yaml:"target_minutes"`
	RemainingWeeklyMinutes int         `json:"remaining_minutes" yaml:"remaining_minutes"`
}

// WeekStart returns Monday 00:00 of the calendar week containing t
func WeekStart(t time.Time) time.Time {
	weekday := t.Weekday()
	daysFromMonday := int(weekday - time.Monday)
	if weekday == time.Sunday {
		daysFromMonday = 6 // Sunday is 6 days from Monday
	}

	weekStart := t.AddDate(0, 0, -daysFromMonday)
	return time.Date(weekStart.Year(), weekStart.Month(), weekStart.Day(), 0, 0, 0, 0, weekStart.Location())
}

// WeekEnd returns the last instant of the Sunday ending the week that starts at weekStart
func WeekEnd(weekStart time.Time) time.Time {
	return weekStart.AddDate(0, 0, 7).Add(-time.Nanosecond)
}

// Week buckets entries into the calendar week containing now.
// Entries outside the week contribute nothing. The weekly total is summed from
// raw minutes, never from the rounded per-day hours.
func Week(strategy parser.Strategy, entries []DatedInput, weeklyTargetHours string, now time.Time) WeekSummary {
	start := WeekStart(now)
	end := WeekEnd(start)

	summary := WeekSummary{
		Start: start,
		End:   end,
		Days:  make([]DayBucket, 7),
	}

	dayIndex := make(map[string]int, 7)
	for i := range summary.Days {
		day := start.AddDate(0, 0, i)
		summary.Days[i] = DayBucket{Date: day, Label: day.Format("Mon")}
		dayIndex[day.Format("2006-01-02")] = i
	}

	for _, entry := range entries {
		date := entry.Date.In(now.Location())
		if date.Before(start) || date.After(end) {
			continue
		}

		minutes := strategy.Minutes(entry.Input)
		if i, ok := dayIndex[date.Format("2006-01-02")]; ok {
			summary.Days[i].Minutes += minutes
		}
		summary.TotalMinutes += minutes
	}

	for i := range summary.Days {
		hours := float64(summary.Days[i].Minutes) / 60
		summary.Days[i].Hours = math.Round(hours*100) / 100
	}

	summary.TargetMinutes = parser.Atoi(weeklyTargetHours) * 60
	summary.RemainingWeeklyMinutes = summary.TargetMinutes - summary.TotalMinutes
	return summary
}

// Over reports whether the weekly total is past the weekly target
func (w WeekSummary) Over() bool {
	return w.RemainingWeeklyMinutes < 0
}

// RemainingText renders "Xh Ym" or "Over by Xh Ym"
func (w WeekSummary) RemainingText() string {
	if w.Over() {
		return fmt.Sprintf("Over by %s", parser.FormatMinutes(-w.RemainingWeeklyMinutes))
	}
	return parser.FormatMinutes(w.RemainingWeeklyMinutes)
}
