// Package view derives the display state of an account: its movement rows
// and summary totals. It never mutates the account.
package view

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"bankist/domain"
	"bankist/format"
	"bankist/shared"
)

const (
	Deposit    = "deposit"
	Withdrawal = "withdrawal"
)

type Row struct {
	Index           int             `json:"index"` // 1-based chronological position
	Type            string          `json:"type"`
	Date            string          `json:"date"`
	Amount          decimal.Decimal `json:"amount"`
	FormattedAmount string          `json:"formattedAmount"`
}

type Summary struct {
	Balance       string `json:"balance"`
	TotalIncome   string `json:"totalIncome"`
	TotalExpense  string `json:"totalExpense"`
	TotalInterest string `json:"totalInterest"`
}

type View struct {
	Owner         string          `json:"owner"`
	Identifier    string          `json:"identifier"`
	Currency      shared.Currency `json:"currency"`
	Locale        shared.Locale   `json:"locale"`
	Sorted        bool            `json:"sorted"`
	Rows          []Row           `json:"rows"`
	Balance       decimal.Decimal `json:"balance"`
	TotalIncome   decimal.Decimal `json:"totalIncome"`
	TotalExpense  decimal.Decimal `json:"totalExpense"`
	TotalInterest decimal.Decimal `json:"totalInterest"`
	Formatted     Summary         `json:"formatted"`
}

// Project builds the view of acc at now. Rows come in chronological order,
// or ascending by amount when sorted is set; ties keep chronological order.
func Project(acc *domain.Account, sorted bool, now time.Time) View {
	rows := make([]Row, len(acc.Movements))
	for i, m := range acc.Movements {
		kind := Withdrawal
		if m.IsDeposit() {
			kind = Deposit
		}
		rows[i] = Row{
			Index:           i + 1,
			Type:            kind,
			Date:            format.RelativeDate(m.Timestamp, acc.Locale, now),
			Amount:          m.Amount,
			FormattedAmount: format.Currency(m.Amount, acc.Locale, acc.Currency),
		}
	}
	if sorted {
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].Amount.LessThan(rows[j].Amount)
		})
	}

	v := View{
		Owner:         acc.Owner,
		Identifier:    acc.Identifier,
		Currency:      acc.Currency,
		Locale:        acc.Locale,
		Sorted:        sorted,
		Rows:          rows,
		Balance:       acc.Balance(),
		TotalIncome:   acc.TotalIncome(),
		TotalExpense:  acc.TotalExpense(),
		TotalInterest: acc.TotalInterest(),
	}
	v.Formatted = Summary{
		Balance:       format.Currency(v.Balance, acc.Locale, acc.Currency),
		TotalIncome:   format.Currency(v.TotalIncome, acc.Locale, acc.Currency),
		TotalExpense:  format.Currency(v.TotalExpense, acc.Locale, acc.Currency),
		TotalInterest: format.Currency(v.TotalInterest, acc.Locale, acc.Currency),
	}
	return v
}

// DisplayOrder is the top-down screen order: each row is prepended as it is
// rendered, so the last row of the sequence shows first.
func (v View) DisplayOrder() []Row {
	out := make([]Row, len(v.Rows))
	for i, r := range v.Rows {
		out[len(v.Rows)-1-i] = r
	}
	return out
}
