package model

import (
	"time"

	"github.com/google/uuid"
)

type RunStatus string

const (
	RunQueued    RunStatus = "queued" // reserved; runs currently start in running
	RunRunning   RunStatus = "running"
	RunSucceeded RunStatus = "succeeded"
	RunFailed    RunStatus = "failed"
	RunCanceled  RunStatus = "canceled"
)

// Terminal reports whether a run status is final. Terminal runs are never
// updated again.
func (s RunStatus) Terminal() bool {
	return s == RunSucceeded || s == RunFailed || s == RunCanceled
}

// Run is one attempt to obtain a completion from a provider in response to a
// user chat message. Assistant-authored messages never spawn a run.
type Run struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	SessionID uuid.UUID `gorm:"type:uuid;not null;index"`
	MessageID uuid.UUID `gorm:"type:uuid;not null;index"`
	Status    RunStatus `gorm:"type:varchar(16);not null"`
	Provider  string    `gorm:"type:varchar(64)"`
	Model     string    `gorm:"type:varchar(128)"`
	TraceID   string    `gorm:"type:varchar(128)"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Session ChatSession `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE"`
	Message ChatMessage `gorm:"foreignKey:MessageID;constraint:OnDelete:CASCADE"`
}
