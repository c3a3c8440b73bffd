package httpapi

import (
	"github.com/shopspring/decimal"

	"bankist/app"
)

type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	PIN        int    `json:"pin" validate:"gte=0"`
}

func (r LoginRequest) ToCommand() app.LoginCommand {
	return app.LoginCommand{Identifier: r.Identifier, PIN: r.PIN}
}

type TransferRequest struct {
	To     string          `json:"to" validate:"required"`
	Amount decimal.Decimal `json:"amount"`
}

func (r TransferRequest) ToCommand() app.TransferCommand {
	return app.TransferCommand{ToIdentifier: r.To, Amount: r.Amount}
}

type LoanRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

func (r LoanRequest) ToCommand() app.RequestLoanCommand {
	return app.RequestLoanCommand{Amount: r.Amount}
}

type CloseRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	PIN        int    `json:"pin" validate:"gte=0"`
}

func (r CloseRequest) ToCommand() app.CloseAccountCommand {
	return app.CloseAccountCommand{Identifier: r.Identifier, PIN: r.PIN}
}

// Response is the envelope of every answer. Rejected operations answer
// OK=false with the reason; they are expected outcomes, not HTTP errors.
type Response struct {
	OK      bool              `json:"ok"`
	Reason  string            `json:"reason,omitempty"`
	Data    any               `json:"data,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}
