package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/durok/internal/guide"
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask a question about using durok",
	Long: `Send a question to the guide service configured under [guide] in the
config file and print its answer.

Example:
  durok ask "how do I log time for yesterday?"`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runAsk(cmd, os.Stdout, args); err != nil {
			fmt.Printf("Error: %v\n", err)
		}
	},
}

func runAsk(cmd *cobra.Command, w io.Writer, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), askTimeout(cfg))
	defer cancel()

	answer := guide.Ask(ctx, newAnswerer(cfg), strings.Join(args, " "))
	_, err = fmt.Fprintln(w, answer)
	return err
}
