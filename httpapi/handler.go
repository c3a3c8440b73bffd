package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"bankist/app"
	"bankist/domain"
	"bankist/events"
	"bankist/view"
)

// Ledger is the part of app.LedgerService the transport needs.
type Ledger interface {
	Login(cmd app.LoginCommand) (app.LoginResult, error)
	Transfer(cmd app.TransferCommand) error
	RequestLoan(cmd app.RequestLoanCommand) (decimal.Decimal, error)
	ToggleSort() bool
	CloseAccount(cmd app.CloseAccountCommand) error
	Logout()
	GetView() (view.View, error)
	GetHistory(query app.GetHistoryQuery) ([]events.Event, error)
}

type Handler struct {
	ledger    Ledger
	logger    *log.Logger
	validator *validator.Validate
}

func NewHandler(ledger Ledger, logger *log.Logger) Handler {
	return Handler{
		ledger:    ledger,
		logger:    logger,
		validator: validator.New(),
	}
}

func (h Handler) PostLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !h.decode(w, r, &req) {
		return
	}
	result, err := h.ledger.Login(req.ToCommand())
	h.respond(w, result, err)
}

func (h Handler) PostTransfer(w http.ResponseWriter, r *http.Request) {
	var req TransferRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.respond(w, nil, h.ledger.Transfer(req.ToCommand()))
}

func (h Handler) PostLoan(w http.ResponseWriter, r *http.Request) {
	var req LoanRequest
	if !h.decode(w, r, &req) {
		return
	}
	granted, err := h.ledger.RequestLoan(req.ToCommand())
	h.respond(w, map[string]decimal.Decimal{"granted": granted}, err)
}

func (h Handler) PostSort(w http.ResponseWriter, _ *http.Request) {
	h.respond(w, map[string]bool{"sorted": h.ledger.ToggleSort()}, nil)
}

func (h Handler) PostClose(w http.ResponseWriter, r *http.Request) {
	var req CloseRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.respond(w, nil, h.ledger.CloseAccount(req.ToCommand()))
}

func (h Handler) PostLogout(w http.ResponseWriter, _ *http.Request) {
	h.ledger.Logout()
	h.respond(w, nil, nil)
}

func (h Handler) GetView(w http.ResponseWriter, _ *http.Request) {
	v, err := h.ledger.GetView()
	h.respond(w, v, err)
}

func (h Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	var query app.GetHistoryQuery
	for name, dst := range map[string]*int{"skip": &query.Skip, "limit": &query.Limit} {
		raw := r.URL.Query().Get(name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeJSON(w, http.StatusBadRequest, Response{Reason: fmt.Sprintf("invalid %s: %q", name, raw)})
			return
		}
		*dst = n
	}
	history, err := h.ledger.GetHistory(query)
	h.respond(w, history, err)
}

func (h Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, Response{Reason: "invalid request body"})
		return false
	}
	if err := h.validator.Struct(dst); err != nil {
		resp := Response{Reason: "validation failed", Details: map[string]string{}}
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			for _, fe := range validationErrs {
				resp.Details[fe.Field()] = fmt.Sprintf("failed on '%s' tag", fe.Tag())
			}
		}
		writeJSON(w, http.StatusBadRequest, resp)
		return false
	}
	return true
}

// respond maps a rejected business rule to ok=false and anything else that
// failed to a 500.
func (h Handler) respond(w http.ResponseWriter, data any, err error) {
	if err == nil {
		writeJSON(w, http.StatusOK, Response{OK: true, Data: data})
		return
	}
	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		writeJSON(w, http.StatusOK, Response{Reason: err.Error()})
		return
	}
	h.logger.Errorf("Request failed: %v", err)
	writeJSON(w, http.StatusInternalServerError, Response{Reason: "internal error"})
}

func writeJSON(w http.ResponseWriter, status int, body Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
