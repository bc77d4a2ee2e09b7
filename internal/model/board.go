package model

import (
	"time"

	"github.com/google/uuid"
)

type Board struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Column struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	BoardID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Key      string    `gorm:"not null;index"`
	Name     string    `gorm:"not null"`
	Position int       `gorm:"not null"`

	Board Board `gorm:"foreignKey:BoardID;constraint:OnDelete:CASCADE"`
}

// DefaultColumn describes one entry of the fixed column set every board is
// created with, in position order.
type DefaultColumn struct {
	Key   string
	Label string
}

var DefaultColumns = []DefaultColumn{
	{Key: "backlog", Label: "Backlog"},
	{Key: "todo", Label: "Todo"},
	{Key: "in_progress", Label: "In Progress"},
	{Key: "blocked", Label: "Blocked"},
	{Key: "review", Label: "Review"},
	{Key: "done", Label: "Done"},
}
