package store

import (
	"fmt"
	"sync"

	"bankist/domain"
)

// AccountStore owns the set of open accounts, keyed by identifier.
type AccountStore interface {
	Add(account *domain.Account) error

	Get(identifier string) (*domain.Account, error)

	Remove(identifier string) error

	List() []*domain.Account
}

type InMemoryAccountStore struct {
	sync.RWMutex
	accounts map[string]*domain.Account
	order    []string
}

func NewInMemoryAccountStore() *InMemoryAccountStore {
	return &InMemoryAccountStore{
		accounts: make(map[string]*domain.Account),
	}
}

// Add registers an account. Identifiers must be unique across the store.
func (s *InMemoryAccountStore) Add(account *domain.Account) error {
	if account == nil {
		return fmt.Errorf("cannot add nil account")
	}
	s.Lock()
	defer s.Unlock()

	if existing, ok := s.accounts[account.Identifier]; ok {
		return fmt.Errorf("%w: identifier %q used by %q and %q",
			domain.ErrAccountExists, account.Identifier, existing.Owner, account.Owner)
	}
	s.accounts[account.Identifier] = account
	s.order = append(s.order, account.Identifier)
	return nil
}

func (s *InMemoryAccountStore) Get(identifier string) (*domain.Account, error) {
	s.RLock()
	defer s.RUnlock()

	account, ok := s.accounts[identifier]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrAccountNotFound, identifier)
	}
	return account, nil
}

func (s *InMemoryAccountStore) Remove(identifier string) error {
	s.Lock()
	defer s.Unlock()

	if _, ok := s.accounts[identifier]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrAccountNotFound, identifier)
	}
	delete(s.accounts, identifier)
	for i, id := range s.order {
		if id == identifier {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// List returns the accounts in insertion order.
func (s *InMemoryAccountStore) List() []*domain.Account {
	s.RLock()
	defer s.RUnlock()

	out := make([]*domain.Account, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.accounts[id])
	}
	return out
}
