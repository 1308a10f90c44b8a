package commands

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/balkashynov/durok/internal/parser"
	"github.com/balkashynov/durok/internal/session"
	"github.com/balkashynov/durok/internal/tracker"
	"github.com/balkashynov/durok/internal/tui"
)

var startCmd = &cobra.Command{
	Use:   "start [entries...]",
	Short: "Start counting down toward the target",
	Long: `Start the countdown from the time remaining to the target.
Entries given as arguments are logged before the countdown starts.

Opens the interactive tracker by default. With --no-ui the countdown runs in the
terminal; press ctrl+c to pause, which logs the whole minutes worked and exits.

Examples:
  durok start --target 8h 2h 1h30m     # 4h 30m left to count down
  durok start --target 4h --no-ui      # plain countdown
  durok start --mode fields --target 7,30 2,15`,
	Args: cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		rt, err := setup(cmd)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		defer rt.Close()

		if err := rt.seed(args); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		noUI, _ := cmd.Flags().GetBool("no-ui")
		if !noUI {
			if _, err := beginCountdown(os.Stdout, rt.session); err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			if err := tui.RunSessionTUI(rt.session, rt.clock, rt.answerer, rt.askTimeout); err != nil {
				fmt.Printf("Error: %v\n", err)
			}
			return
		}

		interrupts := make(chan os.Signal, 1)
		signal.Notify(interrupts, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(interrupts)

		if err := runCountdown(os.Stdout, rt.session, rt.clock.Ticks(), interrupts); err != nil {
			fmt.Printf("Error: %v\n", err)
		}
	},
}

// runCountdown starts the session timer and drives it from ticks until it
// reaches zero or an interrupt arrives, which pauses and logs the elapsed minutes
func runCountdown(w io.Writer, s *session.Session, ticks <-chan func(), interrupts <-chan os.Signal) error {
	started, err := beginCountdown(w, s)
	if err != nil || !started {
		return err
	}

	fmt.Fprintf(w, "⏱️  Counting down %s\n", parser.FormatSeconds(s.RemainingSeconds()))

	for s.TimerState() == tracker.Running {
		select {
		case tick := <-ticks:
			tick()
			fmt.Fprintf(w, "\r%s remaining   ", parser.FormatSeconds(s.RemainingSeconds()))

		case <-interrupts:
			entry, err := s.Pause()
			if err != nil {
				return err
			}
			fmt.Fprintln(w)
			if entry != nil {
				minutes := s.Strategy().Minutes(entry.Input())
				fmt.Fprintf(w, "⏸️  Paused. Logged %s\n", parser.FormatMinutes(minutes))
			} else {
				fmt.Fprintln(w, "⏸️  Paused. Less than a minute elapsed, nothing logged")
			}
			return printTotals(w, s)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "⏰ Target reached")
	return printTotals(w, s)
}

// beginCountdown starts the session timer, reporting when there is no time
// left to count down
func beginCountdown(w io.Writer, s *session.Session) (bool, error) {
	started, err := s.Start()
	if err != nil || started {
		return started, err
	}
	totals, err := s.Totals()
	if err != nil {
		return false, err
	}
	fmt.Fprintf(w, "Nothing to count down: %s\n", totals.RemainingText())
	return false, nil
}

// printTotals prints the session's total and remaining time
func printTotals(w io.Writer, s *session.Session) error {
	totals, err := s.Totals()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Total: %s · %s\n", parser.FormatMinutes(totals.TotalMinutes), totals.RemainingText())
	return nil
}

func init() {
	startCmd.Flags().Bool("no-ui", false, "Run the countdown without the interactive UI")
}
