package model

import (
	"time"

	"github.com/google/uuid"
)

type MemoryDocument struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title     string    `gorm:"not null"`
	Content   string    `gorm:"type:text;not null"`
	SourceRef string    `gorm:"type:varchar(255)"`
	CreatedAt time.Time
}

type MemoryChunk struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	DocumentID uuid.UUID `gorm:"type:uuid;not null;index"`
	Content    string    `gorm:"type:text;not null"`
	ChunkIndex int       `gorm:"not null"`
	CreatedAt  time.Time

	Document MemoryDocument `gorm:"foreignKey:DocumentID;constraint:OnDelete:CASCADE"`
}

// EmbeddingEntry holds the fixed-length vector for one chunk. It is created
// alongside its chunk and never mutated; the vector length always equals the
// configured dimensionality.
type EmbeddingEntry struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ChunkID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Vector    []float64 `gorm:"serializer:json;type:text"`
	CreatedAt time.Time

	Chunk MemoryChunk `gorm:"foreignKey:ChunkID;constraint:OnDelete:CASCADE"`
}

// EmbeddingRecord is the joined (embedding, chunk, document) row the search
// scan ranks over.
type EmbeddingRecord struct {
	Entry    EmbeddingEntry
	Chunk    MemoryChunk
	Document MemoryDocument
}
