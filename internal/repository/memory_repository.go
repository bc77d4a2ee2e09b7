package repository

import (
	"context"
	"errors"

	"agentboard/internal/model"
	"agentboard/internal/service"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MemoryRepository struct {
	db *gorm.DB
}

var _ service.MemoryStore = (*MemoryRepository)(nil)

func NewMemoryRepository(db *gorm.DB) *MemoryRepository {
	return &MemoryRepository{db: db}
}

func (r *MemoryRepository) CreateDocument(ctx context.Context, doc *model.MemoryDocument) error {
	return r.db.WithContext(ctx).Create(doc).Error
}

// AddChunk writes the chunk and its embedding entry in one transaction so no
// chunk exists without a vector.
func (r *MemoryRepository) AddChunk(ctx context.Context, chunk *model.MemoryChunk, vector []float64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(chunk).Error; err != nil {
			return err
		}
		entry := &model.EmbeddingEntry{
			ID:      uuid.New(),
			ChunkID: chunk.ID,
			Vector:  vector,
		}
		return tx.Create(entry).Error
	})
}

// ListEmbeddings loads every embedding with its chunk and document. The
// search scan is exhaustive, so no filtering happens here.
func (r *MemoryRepository) ListEmbeddings(ctx context.Context) ([]model.EmbeddingRecord, error) {
	var entries []model.EmbeddingEntry
	err := r.db.WithContext(ctx).
		Preload("Chunk").
		Preload("Chunk.Document").
		Order("created_at").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}

	records := make([]model.EmbeddingRecord, len(entries))
	for i, entry := range entries {
		records[i] = model.EmbeddingRecord{
			Entry:    entry,
			Chunk:    entry.Chunk,
			Document: entry.Chunk.Document,
		}
	}
	return records, nil
}

func (r *MemoryRepository) GetDocument(ctx context.Context, id uuid.UUID) (*model.MemoryDocument, error) {
	var doc model.MemoryDocument
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}
