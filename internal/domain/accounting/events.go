package accounting

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/platform/internal/domain/shared"
)

// AggregateTypeJournalEntry is the aggregate type for journal entry events
const AggregateTypeJournalEntry = "JournalEntry"

// Event type constants
const (
	EventTypeJournalEntryCreated  = "JournalEntryCreated"
	EventTypeJournalEntryPosted   = "JournalEntryPosted"
	EventTypeJournalEntryReversed = "JournalEntryReversed"
)

// JournalEntryCreatedEvent is published when a draft entry is recorded
type JournalEntryCreatedEvent struct {
	shared.BaseDomainEvent
	EntryNumber string          `json:"entry_number"`
	Total       decimal.Decimal `json:"total"`
}

// NewJournalEntryCreatedEvent creates a new JournalEntryCreatedEvent
func NewJournalEntryCreatedEvent(e *JournalEntry) *JournalEntryCreatedEvent {
	return &JournalEntryCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeJournalEntryCreated, AggregateTypeJournalEntry, e.ID),
		EntryNumber:     e.EntryNumber,
		Total:           e.TotalDebit,
	}
}

// JournalEntryPostedEvent is published when an entry is posted
type JournalEntryPostedEvent struct {
	shared.BaseDomainEvent
	EntryNumber string `json:"entry_number"`
}

// NewJournalEntryPostedEvent creates a new JournalEntryPostedEvent
func NewJournalEntryPostedEvent(e *JournalEntry) *JournalEntryPostedEvent {
	return &JournalEntryPostedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeJournalEntryPosted, AggregateTypeJournalEntry, e.ID),
		EntryNumber:     e.EntryNumber,
	}
}

// JournalEntryReversedEvent is published when a posted entry is reversed
type JournalEntryReversedEvent struct {
	shared.BaseDomainEvent
	EntryNumber   string    `json:"entry_number"`
	ReversalID    uuid.UUID `json:"reversal_id"`
	ReversalEntry string    `json:"reversal_entry_number"`
}

// NewJournalEntryReversedEvent creates a new JournalEntryReversedEvent
func NewJournalEntryReversedEvent(e, mirror *JournalEntry) *JournalEntryReversedEvent {
	return &JournalEntryReversedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeJournalEntryReversed, AggregateTypeJournalEntry, e.ID),
		EntryNumber:     e.EntryNumber,
		ReversalID:      mirror.ID,
		ReversalEntry:   mirror.EntryNumber,
	}
}
