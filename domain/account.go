package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"

	"bankist/events"
	"bankist/shared"
)

// loanCollateralRatio is the share of a requested loan that some earlier
// deposit must at least match.
var loanCollateralRatio = decimal.RequireFromString("0.1")

// Account is the aggregate root of the ledger. It owns its movement history
// and enforces the transfer, loan and closure rules through its command
// handlers; accepted commands are tracked as journal events.
type Account struct {
	Owner        string          `json:"owner"`
	Identifier   string          `json:"identifier"`
	PIN          int             `json:"-"`
	InterestRate decimal.Decimal `json:"interestRate"`
	Currency     shared.Currency `json:"currency"`
	Locale       shared.Locale   `json:"locale"`
	Movements    []Movement      `json:"movements"`
	Version      int             `json:"version"`
	Closed       bool            `json:"closed"`

	changes []events.Event
}

// NewAccount builds an account from bootstrap data and derives its
// identifier. Movements are copied and kept in the given order.
func NewAccount(owner string, pin int, interestRate decimal.Decimal, currency shared.Currency, locale shared.Locale, movements []Movement) (*Account, error) {
	if strings.TrimSpace(owner) == "" {
		return nil, NewDomainError("account owner cannot be empty")
	}
	if interestRate.IsNegative() {
		return nil, NewDomainError("interest rate for %s cannot be negative: %s", owner, interestRate.String())
	}

	history := make([]Movement, len(movements))
	copy(history, movements)

	return &Account{
		Owner:        owner,
		Identifier:   DeriveIdentifier(owner),
		PIN:          pin,
		InterestRate: interestRate,
		Currency:     currency,
		Locale:       locale,
		Movements:    history,
		changes:      make([]events.Event, 0),
	}, nil
}

// FirstName is the first token of the owner's name.
func (a *Account) FirstName() string {
	fields := strings.Fields(a.Owner)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func (a *Account) CheckPIN(pin int) bool {
	return a.PIN == pin
}

// Amounts and MovementsDates are the two index aligned views of the history.
func (a *Account) Amounts() []decimal.Decimal {
	out := make([]decimal.Decimal, len(a.Movements))
	for i, m := range a.Movements {
		out[i] = m.Amount
	}
	return out
}

func (a *Account) MovementsDates() []time.Time {
	out := make([]time.Time, len(a.Movements))
	for i, m := range a.Movements {
		out[i] = m.Timestamp
	}
	return out
}

func (a *Account) GetUncommittedChanges() []events.Event {
	uncommitted := a.changes
	a.changes = make([]events.Event, 0)
	return uncommitted
}

func (a *Account) handleChange(event events.Event) error {
	if err := a.ApplyEvent(event); err != nil {
		log.Errorf("Internal apply failed for event %T on account %s: %v", event, a.Identifier, err)
		return fmt.Errorf("internal error applying event %T: %w", event, err)
	}
	a.changes = append(a.changes, event)
	return nil
}

// --- Command Handlers ---

// HandleRequestLoan floors the requested amount and grants it when some
// existing movement is at least 10% of it. It returns the granted amount.
func (a *Account) HandleRequestLoan(requested decimal.Decimal, at time.Time) (decimal.Decimal, error) {
	if a.Closed {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrAccountClosed, a.Identifier)
	}
	amount := requested.Floor()
	if !amount.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: loan of %s", ErrInvalidAmount, requested.String())
	}
	required := amount.Mul(loanCollateralRatio)
	if !a.HasDepositAtLeast(required) {
		return decimal.Zero, fmt.Errorf("%w: requested %s, needs a deposit of %s",
			ErrLoanNotEligible, amount.String(), required.String())
	}

	event := events.LoanGrantedEvent{
		BaseEvent:  events.NewBaseEvent(a.Identifier, a.Version+1, events.LoanGrantedType, at),
		Amount:     amount,
		Collateral: a.LargestDeposit(),
	}
	if err := a.handleChange(event); err != nil {
		return decimal.Zero, err
	}
	return amount, nil
}

// HandleClose accepts the closure only when both the identifier and the pin
// match this account.
func (a *Account) HandleClose(identifier string, pin int, at time.Time) error {
	if a.Closed {
		return fmt.Errorf("%w: %s", ErrAccountClosed, a.Identifier)
	}
	if identifier != a.Identifier || !a.CheckPIN(pin) {
		return fmt.Errorf("%w: close of %s refused", ErrInvalidCredentials, a.Identifier)
	}

	event := events.AccountClosedEvent{
		BaseEvent:    events.NewBaseEvent(a.Identifier, a.Version+1, events.AccountClosedType, at),
		Owner:        a.Owner,
		FinalBalance: a.Balance(),
	}
	return a.handleChange(event)
}

func (a *Account) ApplyEvent(event events.Event) error {
	base := event.GetBase()
	if base.Version != a.Version+1 {
		return fmt.Errorf("apply failed: event version mismatch for account %s: expected %d, got %d for event %T (%s)",
			a.Identifier, a.Version+1, base.Version, event, base.EventID)
	}

	switch e := event.(type) {
	case events.MoneyTransferredEvent:
		switch a.Identifier {
		case e.SourceAccountID:
			newBalance := a.Balance().Sub(e.Amount)
			if newBalance.IsNegative() {
				log.Errorf("CRITICAL: Invariant Violation! Account %s balance negative after applying %T (v%d): %s",
					a.Identifier, event, base.Version, newBalance.String())
				return fmt.Errorf("invariant violation: negative balance applying %T (v%d)", event, base.Version)
			}
			a.Movements = append(a.Movements, Movement{ID: base.EventID, Amount: e.Amount.Neg(), Timestamp: base.Timestamp})
		case e.TargetAccountID:
			a.Movements = append(a.Movements, Movement{ID: base.EventID, Amount: e.Amount, Timestamp: base.Timestamp})
		default:
			return fmt.Errorf("apply failed: transfer %s does not involve account %s", e.TransferID, a.Identifier)
		}
	case events.LoanGrantedEvent:
		a.Movements = append(a.Movements, Movement{ID: base.EventID, Amount: e.Amount, Timestamp: base.Timestamp})
	case events.AccountClosedEvent:
		a.Closed = true
	default:
		return fmt.Errorf("apply failed: unknown event type %T for account %s", event, a.Identifier)
	}

	a.Version = base.Version
	return nil
}
