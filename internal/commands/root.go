package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/balkashynov/durok/internal/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "durok",
	Short: "A duration tracker with a countdown timer",
	Long: `durok sums the durations you log against a target and counts down the rest.

Log entries like "2h 30m", "2:30", "90m" or "1.5h", set a target, and start the
timer. Every pause logs the whole minutes worked as a new entry. A weekly view
breaks the current Monday..Sunday week down by day.

Running durok with no command opens the interactive tracker.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		rt, err := setup(cmd)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		defer rt.Close()

		if err := tui.RunSessionTUI(rt.session, rt.clock, rt.answerer, rt.askTimeout); err != nil {
			fmt.Printf("Error: %v\n", err)
		}
	},
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("mode", "", "Input mode: text (\"2h 30m\") or fields (hours,minutes)")
	rootCmd.PersistentFlags().String("target", "", "Target duration, e.g. 8h or 7:30 (fields mode: 7,30)")
	rootCmd.PersistentFlags().String("config", "", "Config directory (default $XDG_CONFIG_HOME/durok)")

	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(sumCmd)
	rootCmd.AddCommand(weekCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(helpCmd)
	rootCmd.AddCommand(versionCmd)
}
