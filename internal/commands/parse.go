package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/balkashynov/durok/internal/parser"
)

var parseCmd = &cobra.Command{
	Use:   "parse <duration...>",
	Short: "Show how durations are read",
	Long: `Show the whole minutes each duration is read as.

Examples:
  durok parse "2h 30m" 2:30 90m 1.5h 2h30 abc
  durok parse --mode fields 2,30`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runParse(cmd, os.Stdout, args); err != nil {
			fmt.Printf("Error: %v\n", err)
		}
	},
}

func runParse(cmd *cobra.Command, w io.Writer, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	strategy := parser.ForMode(cfg.Input.Mode)
	for _, arg := range args {
		minutes := strategy.Minutes(argInput(strategy, arg))
		if _, err := fmt.Fprintf(w, "%-12q → %4d min  (%s)\n", arg, minutes, parser.FormatMinutes(minutes)); err != nil {
			return err
		}
	}
	return nil
}
