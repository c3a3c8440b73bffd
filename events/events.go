package events

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

type BaseEvent struct {
	EventID     uuid.UUID `json:"eventId"`
	AggregateID string    `json:"aggregateId"`
	Version     int       `json:"version"` // Version of the account *after* this event is applied.
	Timestamp   time.Time `json:"timestamp"`
	Type        EventType `json:"type"`
}

type Event interface {
	GetBase() BaseEvent
}

func (e BaseEvent) GetBase() BaseEvent {
	return e
}

const (
	MoneyTransferredType EventType = "MoneyTransferred"
	LoanGrantedType      EventType = "LoanGranted"
	AccountClosedType    EventType = "AccountClosed"
)

func NewBaseEvent(aggregateID string, version int, eventType EventType, at time.Time) BaseEvent {
	return BaseEvent{
		EventID:     uuid.New(),
		AggregateID: aggregateID,
		Version:     version,
		Timestamp:   at.UTC(),
		Type:        eventType,
	}
}
