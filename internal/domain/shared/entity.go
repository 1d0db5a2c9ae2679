package shared

import (
	"time"

	"github.com/google/uuid"
)

// Entity is anything persisted under a UUID with audit timestamps
type Entity interface {
	GetID() uuid.UUID
	GetCreatedAt() time.Time
	GetUpdatedAt() time.Time
}

// BaseEntity carries the primary key and audit columns shared by every table
type BaseEntity struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// NewBaseEntity stamps a fresh id and sets both timestamps to now
func NewBaseEntity() BaseEntity {
	now := time.Now()
	return BaseEntity{ID: uuid.New(), CreatedAt: now, UpdatedAt: now}
}

func (e *BaseEntity) GetID() uuid.UUID        { return e.ID }
func (e *BaseEntity) GetCreatedAt() time.Time { return e.CreatedAt }
func (e *BaseEntity) GetUpdatedAt() time.Time { return e.UpdatedAt }

// Touch records a mutation. Every state-changing method calls it.
func (e *BaseEntity) Touch() {
	e.UpdatedAt = time.Now()
}

// BaseAggregateRoot is embedded by entities that record domain events while
// they change. The recorded events are drained by the owning service once
// the write commits. Version guards updates against concurrent writers.
type BaseAggregateRoot struct {
	BaseEntity
	Version int           `gorm:"not null;default:1"`
	pending []DomainEvent `gorm:"-"`
}

func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{BaseEntity: NewBaseEntity(), Version: 1}
}

func (a *BaseAggregateRoot) GetVersion() int   { return a.Version }
func (a *BaseAggregateRoot) IncrementVersion() { a.Version++ }

func (a *BaseAggregateRoot) AddDomainEvent(e DomainEvent)   { a.pending = append(a.pending, e) }
func (a *BaseAggregateRoot) GetDomainEvents() []DomainEvent { return a.pending }
func (a *BaseAggregateRoot) ClearDomainEvents()             { a.pending = nil }

// EventSource is satisfied by every aggregate embedding BaseAggregateRoot
type EventSource interface {
	GetDomainEvents() []DomainEvent
	ClearDomainEvents()
}
