package commands

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/balkashynov/durok/internal/parser"
	"github.com/balkashynov/durok/internal/report"
	"github.com/balkashynov/durok/internal/tracker"
)

var weekCmd = &cobra.Command{
	Use:   "week [DURATION@DATE...]",
	Short: "Show the current week broken down by day",
	Long: `Show logged time for the current calendar week (Monday to Sunday) by day,
with the total and the time remaining to the weekly target.

Each argument is a duration, optionally followed by @ and the date it belongs to
(today, yesterday, "3 days ago", dd/mm/yyyy or yyyy-mm-dd). Without a date the
entry counts for today. Entries outside the current week are ignored.

Example output:
                   Mon     Tue     Wed     Thu     Fri     Sat     Sun
  ------------  ------  ------  ------  ------  ------  ------  ------
  Hours           5.50       -    2.33       -       -       -       -
  ------------  ------  ------  ------  ------  ------  ------  ------
  Total       7h 50m
  Target      40h 0m
  Remaining   32h 10m`,
	Args: cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runWeek(cmd, os.Stdout, args, time.Now()); err != nil {
			fmt.Printf("Error: %v\n", err)
		}
	},
}

func runWeek(cmd *cobra.Command, w io.Writer, args []string, now time.Time) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	formatName, _ := cmd.Flags().GetString("format")
	format, err := report.ParseFormat(formatName)
	if err != nil {
		return err
	}

	weeklyHours := cfg.Weekly.TargetHours
	if cmd.Flags().Changed("target-hours") {
		weeklyHours, _ = cmd.Flags().GetString("target-hours")
		weeklyHours = parser.SanitizeDigits(weeklyHours)
	}

	strategy := parser.ForMode(cfg.Input.Mode)
	entries := make([]tracker.DatedInput, 0, len(args))
	for _, arg := range args {
		entry, err := parseDatedArg(strategy, arg, now)
		if err != nil {
			return err
		}
		entries = append(entries, entry)
	}

	summary := tracker.Week(strategy, entries, weeklyHours, now)
	return report.WriteWeek(w, format, report.NewWeekReport(summary))
}

// parseDatedArg splits "DURATION@DATE" into a dated entry
func parseDatedArg(strategy parser.Strategy, arg string, now time.Time) (tracker.DatedInput, error) {
	duration, dateText, hasDate := strings.Cut(arg, "@")

	date := now
	if hasDate {
		parsed, err := parser.ParseEntryDate(dateText, now)
		if err != nil {
			return tracker.DatedInput{}, fmt.Errorf("entry %q: %w", arg, err)
		}
		date = parsed
	}

	return tracker.DatedInput{Input: argInput(strategy, strings.TrimSpace(duration)), Date: date}, nil
}

func init() {
	weekCmd.Flags().String("target-hours", tracker.DefaultWeeklyTargetHours, "Weekly target in whole hours")
	weekCmd.Flags().StringP("format", "f", "text", "Output format: text|json|yaml")
}
