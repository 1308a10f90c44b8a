package parser

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	colonRegex    = regexp.MustCompile(`^(\d+):(\d+)$`)
	hourRegex     = regexp.MustCompile(`(\d+,\d+|\d*\.?\d+)\s*h`)
	minuteRegex   = regexp.MustCompile(`(\d+,\d+|\d*\.?\d+)\s*m`)
	trailingRegex = regexp.MustCompile(`h[a-z]*\s*(\d+)\s*$`)
	nonDigitRegex = regexp.MustCompile(`[^0-9]`)
)

// Input is the raw duration text a user typed for an entry or a target.
// Free-text mode reads Text, structured mode reads Hours and Minutes.
type Input struct {
	Text    string `json:"text,omitempty" yaml:"text,omitempty"`
	Hours   string `json:"hours,omitempty" yaml:"hours,omitempty"`
	Minutes string `json:"minutes,omitempty" yaml:"minutes,omitempty"`
}

// Strategy turns user input into whole minutes and back.
// Implementations never fail: anything they cannot read is zero minutes.
type Strategy interface {
	Name() string
	Minutes(in Input) int
	Render(minutes int) Input
}

// Mode names accepted by ForMode
const (
	ModeText   = "text"
	ModeFields = "fields"
)

// ForMode returns the strategy registered under name, defaulting to free text
func ForMode(name string) Strategy {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case ModeFields, "structured":
		return Structured{}
	default:
		return FreeText{}
	}
}

// FreeText reads durations such as "2h 30m", "2:30", "90m", "1.5h" or "2h30"
type FreeText struct{}

func (FreeText) Name() string { return ModeText }

func (FreeText) Minutes(in Input) int {
	return ParseDuration(in.Text)
}

// Render formats minutes as "{h}h {m}m", or "{h}h" when there are no minutes
func (FreeText) Render(minutes int) Input {
	if minutes < 0 {
		minutes = 0
	}
	h, m := minutes/60, minutes%60
	if m == 0 {
		return Input{Text: fmt.Sprintf("%dh", h)}
	}
	return Input{Text: fmt.Sprintf("%dh %dm", h, m)}
}

// Structured reads separate hour and minute fields
type Structured struct{}

func (Structured) Name() string { return ModeFields }

func (Structured) Minutes(in Input) int {
	return Atoi(in.Hours)*60 + Atoi(in.Minutes)
}

func (Structured) Render(minutes int) Input {
	if minutes < 0 {
		minutes = 0
	}
	return Input{
		Hours:   strconv.Itoa(minutes / 60),
		Minutes: strconv.Itoa(minutes % 60),
	}
}

// ParseDuration converts free-form duration text to whole minutes.
// Supported forms (case-insensitive, surrounding whitespace ignored):
// - H:MM (e.g., "2:30")
// - hour and/or minute tokens (e.g., "2h 30m", "1.5h", ".5h", "1,5h", "90m")
// - a bare number after an hour token (e.g., "2h30", "2h 30")
// Anything else, including the empty string, is 0.
func ParseDuration(input string) int {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return 0
	}

	if matches := colonRegex.FindStringSubmatch(input); matches != nil {
		return clampMinutes(parseNumber(matches[1])*60 + parseNumber(matches[2]))
	}

	total := 0.0
	found := false

	if matches := hourRegex.FindStringSubmatch(input); matches != nil {
		total += parseNumber(matches[1]) * 60
		found = true
	}

	if matches := minuteRegex.FindStringSubmatch(input); matches != nil {
		total += parseNumber(matches[1])
		found = true
	} else if found {
		// "2h30" or "2h 30"
		if trailing := trailingRegex.FindStringSubmatch(input); trailing != nil {
			total += parseNumber(trailing[1])
		}
	}

	if !found {
		return 0
	}
	return clampMinutes(total)
}

// parseNumber reads a matched numeric token, accepting a comma as the decimal separator
func parseNumber(token string) float64 {
	n, err := strconv.ParseFloat(strings.Replace(token, ",", ".", 1), 64)
	if err != nil && !math.IsInf(n, 0) {
		return 0
	}
	return n
}

// clampMinutes rounds to whole minutes within [0, math.MaxInt32]
func clampMinutes(total float64) int {
	if math.IsNaN(total) || total < 0 {
		return 0
	}
	if total > math.MaxInt32 {
		return math.MaxInt32
	}
	// math.Round rounds half away from zero
	return int(math.Round(total))
}

// SanitizeDigits strips every non-digit character
func SanitizeDigits(input string) string {
	return nonDigitRegex.ReplaceAllString(input, "")
}

// Atoi reads a sanitized non-negative integer, treating empty, invalid or
// out of range (> math.MaxInt32) input as 0
func Atoi(input string) int {
	n, err := strconv.Atoi(SanitizeDigits(input))
	if err != nil || n < 0 || n > math.MaxInt32 {
		return 0
	}
	return n
}

// FormatMinutes formats minutes as "{h}h {m}m". Negative values are clamped to zero.
func FormatMinutes(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

// FormatSeconds formats seconds as "{h}h {m}m {s}s"
func FormatSeconds(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%dh %dm %ds", seconds/3600, (seconds%3600)/60, seconds%60)
}
