package model

import (
	"time"

	"github.com/google/uuid"
)

// MessageRole is a closed two-variant enum; the run lifecycle branches on it
// exhaustively.
type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

func (r MessageRole) Valid() bool {
	return r == RoleUser || r == RoleAssistant
}

type ChatSession struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title     string    `gorm:"not null;default:'New Chat'"`
	CreatedAt time.Time
}

type ChatMessage struct {
	ID        uuid.UUID   `gorm:"type:uuid;primaryKey"`
	SessionID uuid.UUID   `gorm:"type:uuid;not null;index"`
	Role      MessageRole `gorm:"type:varchar(16);not null"`
	Content   string      `gorm:"type:text;not null"`
	CreatedAt time.Time

	Session ChatSession `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE"`
}
