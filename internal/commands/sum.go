package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/balkashynov/durok/internal/parser"
	"github.com/balkashynov/durok/internal/report"
)

var sumCmd = &cobra.Command{
	Use:   "sum [entries...]",
	Short: "Sum durations against the target",
	Long: `Sum the given durations and show the time remaining to the target.

Text mode accepts "2h 30m", "2:30", "90m", "1.5h" or "2h30". Fields mode takes
HOURS,MINUTES per entry. Anything unreadable counts as zero.

Examples:
  durok sum --target 4h 1h "2h 30m"       # 0h 30m remaining
  durok sum --target 8h 5h 4h             # Exceeded by 1h 0m
  durok sum --mode fields 2,30 1, ,45 --format json`,
	Args: cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runSum(cmd, os.Stdout, args); err != nil {
			fmt.Printf("Error: %v\n", err)
		}
	},
}

func runSum(cmd *cobra.Command, w io.Writer, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	formatName, _ := cmd.Flags().GetString("format")
	format, err := report.ParseFormat(formatName)
	if err != nil {
		return err
	}

	strategy := parser.ForMode(cfg.Input.Mode)
	inputs := make([]parser.Input, 0, len(args))
	for _, arg := range args {
		inputs = append(inputs, argInput(strategy, arg))
	}

	return report.WriteTotals(w, format, report.NewTotalsReport(strategy, inputs, cfg.TargetInput()))
}

func init() {
	sumCmd.Flags().StringP("format", "f", "text", "Output format: text|json|yaml")
}
