package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Movement is one signed ledger entry. Positive amounts are deposits or
// incoming transfers, negative amounts are withdrawals or outgoing transfers.
type Movement struct {
	ID        uuid.UUID       `json:"id"`
	Amount    decimal.Decimal `json:"amount"`
	Timestamp time.Time       `json:"timestamp"`
}

func NewMovement(amount decimal.Decimal, at time.Time) Movement {
	return Movement{ID: uuid.New(), Amount: amount, Timestamp: at.UTC()}
}

func (m Movement) IsDeposit() bool {
	return m.Amount.IsPositive()
}
