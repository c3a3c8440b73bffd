package domain

import "fmt"

// DomainError is a rejected business rule. Every banking operation that
// refuses a request returns one, possibly wrapped with extra context.
type DomainError struct {
	message string
}

func NewDomainError(format string, args ...interface{}) *DomainError {
	return &DomainError{message: fmt.Sprintf(format, args...)}
}

func (e *DomainError) Error() string {
	return e.message
}

var (
	ErrInsufficientFunds  = NewDomainError("insufficient funds")
	ErrAccountExists      = NewDomainError("account already exists")
	ErrAccountNotFound    = NewDomainError("account not found")
	ErrAccountClosed      = NewDomainError("account is closed")
	ErrInvalidAmount      = NewDomainError("amount must be positive")
	ErrSelfTransfer       = NewDomainError("cannot transfer funds to the same account")
	ErrInvalidCredentials = NewDomainError("invalid identifier or pin")
	ErrNoSession          = NewDomainError("no account is logged in")
	ErrLoanNotEligible    = NewDomainError("no deposit of at least 10%% of the requested loan")
)
