// Package report renders session totals and weekly summaries as text, JSON or YAML.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/balkashynov/durok/internal/parser"
	"github.com/balkashynov/durok/internal/tracker"
)

// Format is an output format
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name; empty means text
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(name))) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown format %q (use text, json or yaml)", name)
	}
}

// Line is one entry as read by the active strategy
type Line struct {
	Input   parser.Input `json:"input" yaml:"input"`
	Minutes int          `json:"minutes" yaml:"minutes"`
}

// TotalsReport is the result of summing a list of entries against a target
type TotalsReport struct {
	Mode      string         `json:"mode" yaml:"mode"`
	Entries   []Line         `json:"entries" yaml:"entries"`
	Totals    tracker.Totals `json:"totals" yaml:"totals"`
	Total     string         `json:"total" yaml:"total"`
	Remaining string         `json:"remaining" yaml:"remaining"`
}

// NewTotalsReport reads every entry with strategy and sums them against target
func NewTotalsReport(strategy parser.Strategy, entries []parser.Input, target parser.Input) TotalsReport {
	lines := make([]Line, 0, len(entries))
	for _, entry := range entries {
		lines = append(lines, Line{Input: entry, Minutes: strategy.Minutes(entry)})
	}
	totals := tracker.ComputeTotals(strategy, entries, target)

	return TotalsReport{
		Mode:      strategy.Name(),
		Entries:   lines,
		Totals:    totals,
		Total:     parser.FormatMinutes(totals.TotalMinutes),
		Remaining: totals.RemainingText(),
	}
}

// WriteTotals writes a totals report in the given format
func WriteTotals(w io.Writer, format Format, r TotalsReport) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, r)
	case FormatYAML:
		return writeYAML(w, r)
	}

	for i, line := range r.Entries {
		if _, err := fmt.Fprintf(w, "%3d. %-16s %s\n", i+1, describeInput(line.Input), parser.FormatMinutes(line.Minutes)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "\nTotal:     %s\nRemaining: %s\n", r.Total, r.Remaining)
	return err
}

// describeInput shows an entry the way it was typed
func describeInput(in parser.Input) string {
	if in.Text != "" {
		return in.Text
	}
	if in.Hours == "" && in.Minutes == "" {
		return "-"
	}
	return fmt.Sprintf("%sh %sm", orZero(in.Hours), orZero(in.Minutes))
}

func orZero(s string) string {
	if s == "" {
		return "0"
	}
	return s
}

// WeekReport is a weekly summary ready for output
type WeekReport struct {
	tracker.WeekSummary `yaml:",inline"`
	Total               string `json:"total" yaml:"total"`
	Remaining           string `json:"remaining" yaml:"remaining"`
	Over                bool   `json:"over" yaml:"over"`
}

// NewWeekReport wraps a summary with its display strings
func NewWeekReport(w tracker.WeekSummary) WeekReport {
	return WeekReport{
		WeekSummary: w,
		Total:       parser.FormatMinutes(w.TotalMinutes),
		Remaining:   w.RemainingText(),
		Over:        w.Over(),
	}
}

const (
	labelColumnWidth = 12
	dayColumnWidth   = 6
)

// WriteWeek writes a weekly report in the given format
func WriteWeek(w io.Writer, format Format, r WeekReport) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, r)
	case FormatYAML:
		return writeYAML(w, r)
	}

	var b strings.Builder

	// Header
	fmt.Fprintf(&b, "%-*s", labelColumnWidth, "")
	for _, day := range r.Days {
		fmt.Fprintf(&b, "  %*s", dayColumnWidth, day.Label)
	}
	b.WriteString("\n")

	separator := strings.Repeat("-", labelColumnWidth)
	for range r.Days {
		separator += "  " + strings.Repeat("-", dayColumnWidth)
	}
	b.WriteString(separator + "\n")

	// Hours per day, rounded to 2 decimals
	fmt.Fprintf(&b, "%-*s", labelColumnWidth, "Hours")
	for _, day := range r.Days {
		if day.Minutes > 0 {
			fmt.Fprintf(&b, "  %*.2f", dayColumnWidth, day.Hours)
		} else {
			fmt.Fprintf(&b, "  %*s", dayColumnWidth, "-")
		}
	}
	b.WriteString("\n" + separator + "\n")

	fmt.Fprintf(&b, "%-*s%s\n", labelColumnWidth, "Total", r.Total)
	fmt.Fprintf(&b, "%-*s%s\n", labelColumnWidth, "Target", parser.FormatMinutes(r.TargetMinutes))
	fmt.Fprintf(&b, "%-*s%s\n", labelColumnWidth, "Remaining", r.Remaining)

	fmt.Fprintf(&b, "\nWeek of %s to %s\n",
		r.Start.Format("Jan 2"),
		r.Start.AddDate(0, 0, 6).Format("Jan 2, 2006"))

	_, err := io.WriteString(w, b.String())
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}
