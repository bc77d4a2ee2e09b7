package model

import (
	"time"

	"github.com/google/uuid"
)

type TaskPriority string

const (
	PriorityP0 TaskPriority = "p0"
	PriorityP1 TaskPriority = "p1"
	PriorityP2 TaskPriority = "p2"
	PriorityP3 TaskPriority = "p3"
)

type Task struct {
	ID          uuid.UUID    `gorm:"type:uuid;primaryKey"`
	BoardID     uuid.UUID    `gorm:"type:uuid;not null;index"`
	ColumnID    uuid.UUID    `gorm:"type:uuid;not null;index"`
	Title       string       `gorm:"not null"`
	Description string
	Priority    TaskPriority `gorm:"type:varchar(8);default:p2"`
	Status      TaskStatus   `gorm:"type:varchar(32);default:backlog"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Board  Board  `gorm:"foreignKey:BoardID;constraint:OnDelete:CASCADE"`
	Column Column `gorm:"foreignKey:ColumnID;constraint:OnDelete:CASCADE"`
}

// TaskEvent is one append-only audit record. Events are only ever written in
// the same transaction as the task mutation they describe.
type TaskEvent struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	TaskID    uuid.UUID `gorm:"type:uuid;not null;index"`
	EventType string    `gorm:"type:varchar(64);not null"`
	Payload   string    `gorm:"type:text;default:'{}'"`
	CreatedAt time.Time

	Task Task `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
}

const (
	EventCreated = "created"
	EventUpdated = "updated"
	EventMoved   = "moved"
)
