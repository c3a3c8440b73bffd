package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"bankist/events"
)

// Transfer moves amount from source to target. Every rule is checked before
// either account changes, so a rejected transfer leaves both untouched and an
// accepted one records a movement on both sides with the same timestamp.
func Transfer(source, target *Account, amount decimal.Decimal, at time.Time) (string, error) {
	if source == nil || source.Identifier == "" {
		return "", NewDomainError("cannot transfer from uninitialized account")
	}
	if !amount.IsPositive() {
		return "", fmt.Errorf("%w: transfer of %s", ErrInvalidAmount, amount.String())
	}
	if target == nil {
		return "", fmt.Errorf("%w: transfer receiver", ErrAccountNotFound)
	}
	if source.Closed || target.Closed {
		return "", ErrAccountClosed
	}
	if target.Identifier == source.Identifier {
		return "", ErrSelfTransfer
	}
	balance := source.Balance()
	if balance.LessThan(amount) {
		return "", fmt.Errorf("%w: requested %s, available %s",
			ErrInsufficientFunds, amount.String(), balance.String())
	}

	transferID := uuid.NewString()
	debit := events.MoneyTransferredEvent{
		BaseEvent:       events.NewBaseEvent(source.Identifier, source.Version+1, events.MoneyTransferredType, at),
		TransferID:      transferID,
		SourceAccountID: source.Identifier,
		TargetAccountID: target.Identifier,
		Amount:          amount,
	}
	credit := debit
	credit.BaseEvent = events.NewBaseEvent(target.Identifier, target.Version+1, events.MoneyTransferredType, at)

	if err := source.handleChange(debit); err != nil {
		return "", err
	}
	if err := target.handleChange(credit); err != nil {
		source.revertLast()
		return "", err
	}
	return transferID, nil
}

// revertLast undoes the last tracked movement change. It is only used to
// keep a transfer all-or-nothing if the credit side cannot be applied.
func (a *Account) revertLast() {
	if len(a.changes) == 0 {
		return
	}
	a.changes = a.changes[:len(a.changes)-1]
	a.Movements = a.Movements[:len(a.Movements)-1]
	a.Version--
}
