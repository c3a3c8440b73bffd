package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// replCmd represents the repl command
var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive session",
	Long: `Starts an interactive Read-Eval-Print Loop over the seeded accounts.
Type 'help' for the session commands, 'exit' or 'quit' to leave.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		service, err := newLedger(cfg, logger)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Starting bankist REPL. Type 'exit' or 'quit' to exit.")
		printAccounts(out, service.Accounts())

		scanner := bufio.NewScanner(cmd.InOrStdin())
		for {
			fmt.Fprint(out, "> ")
			if !scanner.Scan() {
				break
			}
			input := strings.TrimSpace(scanner.Text())
			if input == "exit" || input == "quit" {
				break
			}
			if input == "" {
				continue
			}
			runLine(service, out, strings.Fields(input))
		}

		fmt.Fprintln(out, "Exiting REPL.")
		return scanner.Err()
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}
