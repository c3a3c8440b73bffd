package events

import (
	"github.com/shopspring/decimal"
)

// MoneyTransferredEvent is recorded on both sides of a transfer. The sender
// and the receiver streams each get their own copy sharing one TransferID.
type MoneyTransferredEvent struct {
	BaseEvent
	TransferID      string          `json:"transferId"`
	SourceAccountID string          `json:"sourceAccountId"`
	TargetAccountID string          `json:"targetAccountId"`
	Amount          decimal.Decimal `json:"amount"`
}

type LoanGrantedEvent struct {
	BaseEvent
	Amount     decimal.Decimal `json:"amount"`
	Collateral decimal.Decimal `json:"collateral"` // largest deposit backing the loan
}

type AccountClosedEvent struct {
	BaseEvent
	Owner        string          `json:"owner"`
	FinalBalance decimal.Decimal `json:"finalBalance"`
}
