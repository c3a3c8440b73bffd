package app

import (
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"

	"bankist/domain"
	"bankist/events"
	"bankist/format"
	"bankist/store"
	"bankist/view"
)

// session is the single logged-in user of the ledger. It references the
// current account by identifier only, so a closed account cannot leave a
// dangling handle behind.
type session struct {
	currentID string
	sorted    bool
}

// LedgerService is the application layer: it holds the account store, the
// journal and the session, and runs the banking operations against them.
// Every operation holds the service lock for its whole duration, so callers
// on different goroutines are served one at a time and never observe a half
// applied change.
type LedgerService struct {
	mu       sync.Mutex
	accounts store.AccountStore
	journal  store.EventStore
	clock    Clock
	logger   *log.Logger
	session  session
}

func NewLedgerService(accounts store.AccountStore, journal store.EventStore, clock Clock, logger *log.Logger) *LedgerService {
	if accounts == nil || journal == nil {
		log.Fatal("AccountStore and EventStore must not be nil")
	}
	if clock == nil {
		clock = SystemClock{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &LedgerService{
		accounts: accounts,
		journal:  journal,
		clock:    clock,
		logger:   logger,
	}
}

// Seed registers the bootstrap accounts. A duplicate identifier aborts
// seeding with domain.ErrAccountExists.
func (s *LedgerService) Seed(accounts []*domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, acc := range accounts {
		if err := s.accounts.Add(acc); err != nil {
			return fmt.Errorf("failed to seed account for %q: %w", acc.Owner, err)
		}
		s.logger.Debugf("Seeded account %s (%s) with %d movements", acc.Identifier, acc.Owner, len(acc.Movements))
	}
	s.logger.Infof("Ledger ready with %d accounts", len(accounts))
	return nil
}

// --- Command Handlers ---

func (s *LedgerService) Login(cmd LoginCommand) (LoginResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, err := s.accounts.Get(cmd.Identifier)
	if err != nil || !acc.CheckPIN(cmd.PIN) {
		return LoginResult{}, s.reject("Login", cmd.Identifier, fmt.Errorf("%w: %s", domain.ErrInvalidCredentials, cmd.Identifier))
	}

	s.session.currentID = acc.Identifier
	s.logger.Infof("Account %s logged in", acc.Identifier)

	return LoginResult{
		DisplayName: acc.FirstName(),
		Owner:       acc.Owner,
		Identifier:  acc.Identifier,
		Timestamp:   format.DateTime(s.clock.Now(), acc.Locale),
	}, nil
}

func (s *LedgerService) Transfer(cmd TransferCommand) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sender, err := s.currentAccount()
	if err != nil {
		return s.reject("Transfer", "", err)
	}

	receiver, err := s.accounts.Get(cmd.ToIdentifier)
	if err != nil && !errors.Is(err, domain.ErrAccountNotFound) {
		return fmt.Errorf("failed to load receiver %s for transfer: %w", cmd.ToIdentifier, err)
	}

	senderVersion := sender.Version
	receiverVersion := 0
	if receiver != nil {
		receiverVersion = receiver.Version
	}

	transferID, err := domain.Transfer(sender, receiver, cmd.Amount, s.clock.Now())
	if err != nil {
		return s.reject("Transfer", sender.Identifier, fmt.Errorf("transfer to %s: %w", cmd.ToIdentifier, err))
	}

	s.commit(sender, senderVersion)
	s.commit(receiver, receiverVersion)

	s.logger.Infof("Transfer %s of %s from %s to %s completed", transferID, cmd.Amount.String(), sender.Identifier, receiver.Identifier)
	return nil
}

// RequestLoan grants floor(amount) to the current account and returns it.
func (s *LedgerService) RequestLoan(cmd RequestLoanCommand) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, err := s.currentAccount()
	if err != nil {
		return decimal.Zero, s.reject("RequestLoan", "", err)
	}

	initialVersion := acc.Version
	granted, err := acc.HandleRequestLoan(cmd.Amount, s.clock.Now())
	if err != nil {
		return decimal.Zero, s.reject("RequestLoan", acc.Identifier, err)
	}
	s.commit(acc, initialVersion)

	s.logger.Infof("Loan of %s granted to %s. New balance: %s", granted.String(), acc.Identifier, acc.Balance().String())
	return granted, nil
}

// ToggleSort flips the movement ordering of the next view and returns the
// new state.
func (s *LedgerService) ToggleSort() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session.sorted = !s.session.sorted
	return s.session.sorted
}

func (s *LedgerService) CloseAccount(cmd CloseAccountCommand) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, err := s.currentAccount()
	if err != nil {
		return s.reject("CloseAccount", "", err)
	}

	initialVersion := acc.Version
	if err := acc.HandleClose(cmd.Identifier, cmd.PIN, s.clock.Now()); err != nil {
		return s.reject("CloseAccount", acc.Identifier, err)
	}
	if err := s.accounts.Remove(acc.Identifier); err != nil {
		s.logger.Errorf("CRITICAL: account %s closed but could not be removed from the store: %v", acc.Identifier, err)
		return fmt.Errorf("failed to remove closed account %s: %w", acc.Identifier, err)
	}
	s.commit(acc, initialVersion)
	s.session.currentID = ""

	s.logger.Infof("Account %s (%s) closed", acc.Identifier, acc.Owner)
	return nil
}

// Logout ends the session without touching any account.
func (s *LedgerService) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session.currentID != "" {
		s.logger.Infof("Account %s logged out", s.session.currentID)
	}
	s.session.currentID = ""
}

// --- Query Handlers ---

func (s *LedgerService) GetView() (view.View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, err := s.currentAccount()
	if err != nil {
		return view.View{}, err
	}
	return view.Project(acc, s.session.sorted, s.clock.Now()), nil
}

// GetHistory pages through the journal of the current account.
func (s *LedgerService) GetHistory(query GetHistoryQuery) ([]events.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, err := s.currentAccount()
	if err != nil {
		return nil, err
	}

	history, err := s.journal.GetEvents(acc.Identifier)
	if err != nil {
		return nil, fmt.Errorf("failed to get journal for account %s: %w", acc.Identifier, err)
	}

	totalEvents := len(history)
	start := query.Skip
	if start < 0 {
		start = 0
	}
	if start >= totalEvents {
		return []events.Event{}, nil
	}

	end := totalEvents
	if query.Limit > 0 && query.Limit < totalEvents-start {
		end = start + query.Limit
	}
	return history[start:end], nil
}

// CurrentIdentifier is the identifier of the logged-in account, or "".
func (s *LedgerService) CurrentIdentifier() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.currentID
}

func (s *LedgerService) Accounts() []AccountSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.accounts.List()
	out := make([]AccountSummary, 0, len(list))
	for _, acc := range list {
		out = append(out, AccountSummary{Identifier: acc.Identifier, Owner: acc.Owner})
	}
	return out
}

// --- Helpers ---

func (s *LedgerService) currentAccount() (*domain.Account, error) {
	if s.session.currentID == "" {
		return nil, domain.ErrNoSession
	}
	acc, err := s.accounts.Get(s.session.currentID)
	if err != nil {
		s.session.currentID = ""
		return nil, fmt.Errorf("%w: %v", domain.ErrNoSession, err)
	}
	return acc, nil
}

func (s *LedgerService) reject(operation, identifier string, err error) error {
	if identifier == "" {
		identifier = "<no session>"
	}
	s.logger.Infof("%s rejected for %s: %v", operation, identifier, err)
	return err
}

// commit moves the tracked changes of acc into the journal. The account
// state is already updated at this point; a journal failure is logged and
// does not undo the operation.
func (s *LedgerService) commit(acc *domain.Account, expectedVersion int) {
	changes := acc.GetUncommittedChanges()
	if len(changes) == 0 {
		s.logger.Warnf("Operation on %s produced no journal events", acc.Identifier)
		return
	}
	if err := s.journal.SaveEvents(acc.Identifier, expectedVersion, changes); err != nil {
		s.logger.Errorf("CRITICAL: failed to journal %d events for account %s: %v", len(changes), acc.Identifier, err)
	}
}
