package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"bankist/app"
	"bankist/config"
	"bankist/domain"
)

// demoCmd replays a fixed walk-through of every operation against the
// configured accounts.
var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a scripted walk-through of the ledger",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(cfg.Accounts) < 2 {
			return fmt.Errorf("demo needs at least two configured accounts, got %d", len(cfg.Accounts))
		}
		service, err := newLedger(cfg, logger)
		if err != nil {
			return err
		}
		return runDemo(cmd.OutOrStdout(), service, cfg.Accounts[0], cfg.Accounts[1])
	},
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

func runDemo(out io.Writer, service *app.LedgerService, first, second config.AccountConfig) error {
	from := domain.DeriveIdentifier(first.Owner)
	to := domain.DeriveIdentifier(second.Owner)

	fmt.Fprintln(out, "\n--- Simulating Operations ---")

	fmt.Fprintln(out, "\n[Step 1] Logging in...")
	_, err := service.Login(app.LoginCommand{Identifier: from, PIN: first.PIN + 1})
	expectRejected(out, "Login with a wrong pin", err, domain.ErrInvalidCredentials)
	if _, err := service.Login(app.LoginCommand{Identifier: from, PIN: first.PIN}); err != nil {
		return fmt.Errorf("demo login as %s failed: %w", from, err)
	}
	fmt.Fprintf(out, " -> Logged in as %s.\n", from)

	fmt.Fprintln(out, "\n[Step 2] Transferring money...")
	err = service.Transfer(app.TransferCommand{ToIdentifier: to, Amount: decimal.NewFromInt(100)})
	handleOperationError(out, fmt.Sprintf("Transfer of 100 to %s", to), err)
	err = service.Transfer(app.TransferCommand{ToIdentifier: from, Amount: decimal.NewFromInt(10)})
	expectRejected(out, "Transfer to self", err, domain.ErrSelfTransfer)
	err = service.Transfer(app.TransferCommand{ToIdentifier: to, Amount: decimal.NewFromInt(100_000_000)})
	expectRejected(out, "Transfer beyond the balance", err, domain.ErrInsufficientFunds)

	fmt.Fprintln(out, "\n[Step 3] Requesting loans...")
	granted, err := service.RequestLoan(app.RequestLoanCommand{Amount: decimal.RequireFromString("1000.75")})
	handleOperationError(out, fmt.Sprintf("Loan of %s", granted.String()), err)
	_, err = service.RequestLoan(app.RequestLoanCommand{Amount: decimal.NewFromInt(100_000_000)})
	expectRejected(out, "Loan without a large enough deposit", err, domain.ErrLoanNotEligible)

	fmt.Fprintln(out, "\n[Step 4] Sorted view...")
	service.ToggleSort()
	if err := printView(out, service); err != nil {
		return err
	}
	service.ToggleSort()

	fmt.Fprintln(out, "\n[Step 5] Journal...")
	history, err := service.GetHistory(app.GetHistoryQuery{})
	if err != nil {
		return err
	}
	for _, event := range history {
		printEventDetails(out, event)
	}

	fmt.Fprintln(out, "\n[Step 6] Closing the account...")
	err = service.CloseAccount(app.CloseAccountCommand{Identifier: to, PIN: second.PIN})
	expectRejected(out, "Close with another account's credentials", err, domain.ErrInvalidCredentials)
	err = service.CloseAccount(app.CloseAccountCommand{Identifier: from, PIN: first.PIN})
	handleOperationError(out, fmt.Sprintf("Close of %s", from), err)

	fmt.Fprintln(out, "\n[Step 7] Remaining accounts...")
	printAccounts(out, service.Accounts())

	fmt.Fprintln(out, "\n--- Simulation Complete ---")
	return nil
}

func handleOperationError(out io.Writer, operationName string, err error) {
	if err != nil {
		fmt.Fprintf(out, " -> ERROR during operation '%s': %v\n", operationName, err)
	} else {
		fmt.Fprintf(out, " -> Operation '%s' successful.\n", operationName)
	}
}

func expectRejected(out io.Writer, operationName string, err, want error) {
	switch {
	case errors.Is(err, want):
		fmt.Fprintf(out, " -> %s rejected as expected: %v\n", operationName, err)
	case err != nil:
		fmt.Fprintf(out, " -> %s rejected with an unexpected error: %v\n", operationName, err)
	default:
		fmt.Fprintf(out, " -> %s should have been rejected, but succeeded.\n", operationName)
	}
}
