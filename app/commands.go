package app

import (
	"github.com/shopspring/decimal"
)

// --- Command Struct Definitions ---
// Commands carry already parsed input from the presentation layer.

type LoginCommand struct {
	Identifier string
	PIN        int
}

type TransferCommand struct {
	ToIdentifier string
	Amount       decimal.Decimal
}

type RequestLoanCommand struct {
	Amount decimal.Decimal
}

type CloseAccountCommand struct {
	Identifier string
	PIN        int
}

// --- Query Structures ---

type GetHistoryQuery struct {
	Limit int
	Skip  int
}

// --- Results ---

type LoginResult struct {
	DisplayName string `json:"displayName"`
	Owner       string `json:"owner"`
	Identifier  string `json:"identifier"`
	Timestamp   string `json:"timestamp"`
}

type AccountSummary struct {
	Identifier string `json:"identifier"`
	Owner      string `json:"owner"`
}
