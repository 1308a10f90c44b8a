package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var helpCmd = &cobra.Command{
	Use:   "help",
	Short: "Show comprehensive help for durok",
	Long:  `Display detailed help for all durok commands, flags and keys.`,
	Run: func(cmd *cobra.Command, args []string) {
		showCustomHelp()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("durok %s (commit %s, built %s)\n", version, commit, date)
	},
}

func showCustomHelp() {
	fmt.Print(`
██████╗ ██╗   ██╗██████╗  ██████╗ ██╗  ██╗
██╔══██╗██║   ██║██╔══██╗██╔═══██╗██║ ██╔╝
██║  ██║██║   ██║██████╔╝██║   ██║█████╔╝
██║  ██║██║   ██║██╔══██╗██║   ██║██╔═██╗
██████╔╝╚██████╔╝██║  ██║╚██████╔╝██║  ██╗
╚═════╝  ╚═════╝ ╚═╝  ╚═╝ ╚═════╝ ╚═╝  ╚═╝

durok - duration tracker with a countdown

DURATIONS:

  Text mode (default)     2h 30m · 2:30 · 90m · 1.5h · 2h30 · 0.5h
                          Unreadable input counts as zero
  Fields mode             hours and minutes typed separately
                          (command line: HOURS,MINUTES e.g. 2,30)

COMMANDS:

  durok                   Open the interactive tracker
  start [entries...]      Log entries and start the countdown
    --no-ui               Plain countdown, ctrl+c pauses and logs

  sum [entries...]        Total entries against the target
    -f, --format          text|json|yaml

  week [DUR@DATE...]      Current Monday..Sunday week by day
    --target-hours        Weekly target in whole hours (default 40)
    -f, --format          text|json|yaml

  parse <duration...>     Show the minutes a duration is read as
  ask <question>          Ask the guide service a question
  version                 Print version information
  help                    Show this help

GLOBAL FLAGS:

  --mode                  text|fields
  --target                Target duration
  --config                Config directory

TRACKER KEYS:

  s / space     Start, pause (logs whole minutes) or resume
  r             Reset the timer (logged entries stay)
  ↑/↓           Select entry
  a             Add entry
  e / enter     Edit entry
  D             Change entry date
  d             Delete entry (the last one always stays)
  t             Set target
  w             Toggle weekly view
  W             Set weekly target hours
  ?             Ask the guide
  esc/q         Quit

  Entries and targets can't be edited while the timer is running.

CONFIG ($XDG_CONFIG_HOME/durok/config.toml):

  [input]   mode = "text"
  [target]  text = "8h"            # or hours = "8", minutes = "0"
  [weekly]  target_hours = "40"
  [log]     level = "info", file = "/tmp/durok.log"
  [guide]   endpoint = "http://...", timeout_seconds = 20

`)
}
