package report

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/balkashynov/durok/internal/parser"
	"github.com/balkashynov/durok/internal/tracker"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"", FormatText, false},
		{"text", FormatText, false},
		{"JSON", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"yml", FormatYAML, false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func sampleTotals() TotalsReport {
	entries := []parser.Input{{Text: "1h"}, {Text: "2h 30m"}, {}}
	return NewTotalsReport(parser.FreeText{}, entries, parser.Input{Text: "4h"})
}

func TestNewTotalsReport(t *testing.T) {
	r := sampleTotals()

	assert.Equal(t, "text", r.Mode)
	require.Len(t, r.Entries, 3)
	assert.Equal(t, 60, r.Entries[0].Minutes)
	assert.Equal(t, 150, r.Entries[1].Minutes)
	assert.Equal(t, 0, r.Entries[2].Minutes)
	assert.Equal(t, 210, r.Totals.TotalMinutes)
	assert.Equal(t, "3h 30m", r.Total)
	assert.Equal(t, "0h 30m remaining", r.Remaining)
}

func TestWriteTotals_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTotals(&buf, FormatText, sampleTotals()))

	out := buf.String()
	assert.Contains(t, out, "2h 30m")
	assert.Contains(t, out, "Total:     3h 30m")
	assert.Contains(t, out, "Remaining: 0h 30m remaining")
}

func TestWriteTotals_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTotals(&buf, FormatJSON, sampleTotals()))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	totals := decoded["totals"].(map[string]any)
	assert.Equal(t, float64(210), totals["total_minutes"])
	assert.Equal(t, float64(30), totals["remaining_minutes"])
	assert.Equal(t, "0h 30m remaining", decoded["remaining"])
}

func TestWriteTotals_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTotals(&buf, FormatYAML, sampleTotals()))

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	totals := decoded["totals"].(map[string]any)
	assert.Equal(t, 240, totals["target_minutes"])
	assert.Equal(t, "text", decoded["mode"])
}

func sampleWeek() WeekReport {
	now := time.Date(2026, 10, 21, 12, 0, 0, 0, time.Local)
	entries := []tracker.DatedInput{
		{Input: parser.Input{Text: "2h 20m"}, Date: now},
		{Input: parser.Input{Text: "5h 30m"}, Date: now.AddDate(0, 0, -2)},
	}
	return NewWeekReport(tracker.Week(parser.FreeText{}, entries, "8", now))
}

func TestWriteWeek_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteWeek(&buf, FormatText, sampleWeek()))

	out := buf.String()
	assert.Contains(t, out, "Mon")
	assert.Contains(t, out, "Sun")
	assert.Contains(t, out, "5.50")
	assert.Contains(t, out, "2.33")
	assert.Contains(t, out, "7h 50m")
	assert.Contains(t, out, "0h 10m")
	assert.Contains(t, out, "Week of Oct 19 to Oct 25, 2026")
}

func TestWriteWeek_JSONOver(t *testing.T) {
	now := time.Date(2026, 10, 21, 12, 0, 0, 0, time.Local)
	entries := []tracker.DatedInput{{Input: parser.Input{Text: "9h"}, Date: now}}
	r := NewWeekReport(tracker.Week(parser.FreeText{}, entries, "8", now))

	var buf bytes.Buffer
	require.NoError(t, WriteWeek(&buf, FormatJSON, r))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, true, decoded["over"])
	assert.Equal(t, "Over by 1h 0m", decoded["remaining"])
	assert.Equal(t, float64(540), decoded["total_minutes"])
	assert.Len(t, decoded["days"], 7)
}

func TestWriteWeek_YAMLInlinesSummary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteWeek(&buf, FormatYAML, sampleWeek()))

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, 470, decoded["total_minutes"])
	assert.Equal(t, 480, decoded["target_minutes"])
	assert.Equal(t, "0h 10m", decoded["remaining"])
}
