package cmd

import (
	"github.com/spf13/cobra"
)

// accountsCmd lists the identifiers that can log in.
var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "List the seeded accounts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		service, err := newLedger(cfg, logger)
		if err != nil {
			return err
		}
		printAccounts(cmd.OutOrStdout(), service.Accounts())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(accountsCmd)
}
