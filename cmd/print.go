package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"bankist/app"
	"bankist/events"
)

// printView renders the logged-in account top-down: the latest sequence
// position first, as the movement list is shown on screen.
func printView(out io.Writer, service *app.LedgerService) error {
	v, err := service.GetView()
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%s (%s)  Current balance: %s\n", v.Owner, v.Identifier, v.Formatted.Balance)
	fmt.Fprintln(out, "--------------------------------------------------")
	for _, row := range v.DisplayOrder() {
		fmt.Fprintf(out, "%3d %-10s %-12s %16s\n", row.Index, row.Type, row.Date, row.FormattedAmount)
	}
	fmt.Fprintln(out, "--------------------------------------------------")
	order := "chronological"
	if v.Sorted {
		order = "sorted"
	}
	fmt.Fprintf(out, "In: %s  Out: %s  Interest: %s  (%s)\n",
		v.Formatted.TotalIncome, v.Formatted.TotalExpense, v.Formatted.TotalInterest, order)
	return nil
}

func printAccounts(out io.Writer, accounts []app.AccountSummary) {
	if len(accounts) == 0 {
		fmt.Fprintln(out, "No open accounts.")
		return
	}
	for _, acc := range accounts {
		fmt.Fprintf(out, "  %-6s %s\n", acc.Identifier, acc.Owner)
	}
}

// printEventDetails formats and prints the details of a single event.
// This function uses type assertions to print specific fields for known event types.
func printEventDetails(out io.Writer, event events.Event) {
	base := event.GetBase()
	fmt.Fprintf(out, "  Type:      %s\n", base.Type)
	fmt.Fprintf(out, "  EventID:   %s\n", base.EventID.String())
	fmt.Fprintf(out, "  Version:   %d\n", base.Version)
	fmt.Fprintf(out, "  Timestamp: %s\n", base.Timestamp.Format(time.RFC3339))

	switch e := event.(type) {
	case events.MoneyTransferredEvent:
		direction := "Outgoing"
		if e.TargetAccountID == base.AggregateID {
			direction = "Incoming"
		}
		fmt.Fprintf(out, "  Details (%s transfer %s):\n", direction, e.TransferID)
		fmt.Fprintf(out, "    From:   %s\n", e.SourceAccountID)
		fmt.Fprintf(out, "    To:     %s\n", e.TargetAccountID)
		fmt.Fprintf(out, "    Amount: %s\n", e.Amount.StringFixed(2))
	case events.LoanGrantedEvent:
		fmt.Fprintln(out, "  Details:")
		fmt.Fprintf(out, "    Amount:     %s\n", e.Amount.StringFixed(2))
		fmt.Fprintf(out, "    Collateral: %s\n", e.Collateral.StringFixed(2))
	case events.AccountClosedEvent:
		fmt.Fprintln(out, "  Details:")
		fmt.Fprintf(out, "    Owner:         %s\n", e.Owner)
		fmt.Fprintf(out, "    Final balance: %s\n", e.FinalBalance.StringFixed(2))
	default:
		fmt.Fprintln(out, "  Details (Raw JSON):")
		jsonData, err := json.MarshalIndent(event, "    ", "  ")
		if err != nil {
			fmt.Fprintf(out, "    Error marshalling event: %v\n", err)
		} else {
			fmt.Fprintf(out, "    %s\n", string(jsonData))
		}
	}
}
