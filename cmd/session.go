package cmd

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"bankist/app"
	"bankist/domain"
)

// newSessionCmd builds the command tree one REPL line is dispatched to. A
// fresh tree per line keeps flag values from leaking between lines.
func newSessionCmd(service *app.LedgerService, out io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "bankist>",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.SetErr(out)

	root.AddCommand(&cobra.Command{
		Use:   "login <identifier> <pin>",
		Short: "Log in to an account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pin, err := parsePIN(args[1])
			if err != nil {
				return err
			}
			result, err := service.Login(app.LoginCommand{Identifier: args[0], PIN: pin})
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Welcome back, %s (as of %s)\n", result.DisplayName, result.Timestamp)
			return printView(out, service)
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "transfer <identifier> <amount>",
		Short: "Transfer money to another account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount(args[1])
			if err != nil {
				return err
			}
			if err := service.Transfer(app.TransferCommand{ToIdentifier: args[0], Amount: amount}); err != nil {
				return err
			}
			fmt.Fprintf(out, "Transferred %s to '%s'.\n", amount.String(), args[0])
			return printView(out, service)
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "loan <amount>",
		Short: "Request a loan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount(args[0])
			if err != nil {
				return err
			}
			granted, err := service.RequestLoan(app.RequestLoanCommand{Amount: amount})
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Loan of %s granted.\n", granted.String())
			return printView(out, service)
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "sort",
		Short: "Toggle sorting movements by amount",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if service.ToggleSort() {
				fmt.Fprintln(out, "Movements sorted by amount.")
			} else {
				fmt.Fprintln(out, "Movements in chronological order.")
			}
			if service.CurrentIdentifier() == "" {
				return nil
			}
			return printView(out, service)
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "close <identifier> <pin>",
		Short: "Close the logged-in account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pin, err := parsePIN(args[1])
			if err != nil {
				return err
			}
			if err := service.CloseAccount(app.CloseAccountCommand{Identifier: args[0], PIN: pin}); err != nil {
				return err
			}
			fmt.Fprintf(out, "Account '%s' closed. Log in to continue.\n", args[0])
			return nil
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "view",
		Short: "Show the logged-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printView(out, service)
		},
	})

	var skip, limit int
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Show the journal of the logged-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if skip < 0 || limit < 0 {
				return fmt.Errorf("skip and limit cannot be negative")
			}
			history, err := service.GetHistory(app.GetHistoryQuery{Skip: skip, Limit: limit})
			if err != nil {
				return err
			}
			if len(history) == 0 {
				fmt.Fprintln(out, "No journal entries.")
				return nil
			}
			for i, event := range history {
				fmt.Fprintf(out, "Event %d:\n", skip+i+1)
				printEventDetails(out, event)
			}
			return nil
		},
	}
	historyCmd.Flags().IntVar(&skip, "skip", 0, "Number of events to skip")
	historyCmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of events to show (0 for no limit)")
	root.AddCommand(historyCmd)

	root.AddCommand(&cobra.Command{
		Use:   "logout",
		Short: "End the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			service.Logout()
			fmt.Fprintln(out, "Logged out.")
			return nil
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "accounts",
		Short: "List open accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printAccounts(out, service.Accounts())
			return nil
		},
	})

	return root
}

// runLine executes one REPL line. Failures are reported on out and never end
// the session.
func runLine(service *app.LedgerService, out io.Writer, args []string) {
	session := newSessionCmd(service, out)
	session.SetArgs(args)
	err := session.Execute()
	if err == nil {
		return
	}
	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		fmt.Fprintf(out, "Rejected: %v\n", err)
		return
	}
	fmt.Fprintf(out, "Error: %v\n", err)
}

func parsePIN(raw string) (int, error) {
	pin, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid pin %q: must be a number", raw)
	}
	return pin, nil
}

func parseAmount(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount format: %q. %v", raw, err)
	}
	return amount, nil
}
