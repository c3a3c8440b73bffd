package store

import (
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"bankist/events"
)

// ErrJournalConflict means the account moved on since the caller read its
// version, so the batch would not follow its last journal entry.
var ErrJournalConflict = errors.New("journal conflict: account version moved")

// EventStore is the append-only journal of accepted banking operations,
// one stream per account identifier. Streams outlive closed accounts.
type EventStore interface {
	SaveEvents(aggregateID string, expectedVersion int, eventsToSave []events.Event) error

	GetEvents(aggregateID string) ([]events.Event, error)
}

type InMemoryEventStore struct {
	sync.RWMutex
	streams map[string][]events.Event
}

func NewInMemoryEventStore() *InMemoryEventStore {
	return &InMemoryEventStore{
		streams: make(map[string][]events.Event),
	}
}

// SaveEvents appends newEvents to the stream of aggregateID. The batch must
// continue right after expectedVersion; nothing is written otherwise.
func (s *InMemoryEventStore) SaveEvents(aggregateID string, expectedVersion int, newEvents []events.Event) error {
	s.Lock()
	defer s.Unlock()

	if len(newEvents) == 0 {
		log.Warnf("Nothing to journal for account %s", aggregateID)
		return nil
	}

	stream := s.streams[aggregateID]
	currentVersion := 0
	if n := len(stream); n > 0 {
		currentVersion = stream[n-1].GetBase().Version
	}

	if currentVersion != expectedVersion {
		return fmt.Errorf("%w: account %s is at v%d, batch expects v%d",
			ErrJournalConflict, aggregateID, currentVersion, expectedVersion)
	}

	nextVersion := expectedVersion
	for _, event := range newEvents {
		base := event.GetBase()
		nextVersion++
		if base.Version != nextVersion {
			return fmt.Errorf("journal entry %s for account %s out of order: v%d where v%d belongs",
				base.EventID, aggregateID, base.Version, nextVersion)
		}
		if base.AggregateID != aggregateID {
			return fmt.Errorf("journal entry %s belongs to account %s, not %s",
				base.EventID, base.AggregateID, aggregateID)
		}
	}

	s.streams[aggregateID] = append(stream, newEvents...)
	return nil
}

func (s *InMemoryEventStore) GetEvents(aggregateID string) ([]events.Event, error) {
	s.RLock()
	defer s.RUnlock()

	entries := make([]events.Event, len(s.streams[aggregateID]))
	copy(entries, s.streams[aggregateID])
	return entries, nil
}
