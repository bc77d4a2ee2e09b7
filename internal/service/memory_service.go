package service

import (
	"context"
	"math"
	"sort"
	"strings"

	"agentboard/internal/model"

	"github.com/google/uuid"
)

// SplitChunks strips surrounding whitespace and splits the remainder into
// fixed-size rune slices, the last chunk possibly shorter. Empty content
// yields no chunks.
func SplitChunks(content string, chunkSize int) []string {
	cleaned := []rune(strings.TrimSpace(content))
	if len(cleaned) == 0 {
		return nil
	}
	if chunkSize < 1 {
		// Degenerate size: keep everything in one chunk rather than loop.
		return []string{string(cleaned)}
	}
	var chunks []string
	for i := 0; i < len(cleaned); i += chunkSize {
		end := i + chunkSize
		if end > len(cleaned) {
			end = len(cleaned)
		}
		chunks = append(chunks, string(cleaned[i:end]))
	}
	return chunks
}

// DeterministicEmbedding summarizes text into a fixed-length vector. It is a
// content-addressed hash, not a learned model: byte-for-byte reproducible for
// the same text and dimensionality. Each code point at position i contributes
// (codepoint mod 97)/100 to bucket i mod dims; buckets are then divided by
// max(1, len/dims).
func DeterministicEmbedding(text string, dims int) []float64 {
	if dims < 1 {
		return nil
	}
	vector := make([]float64, dims)
	runes := []rune(text)
	if len(runes) == 0 {
		return vector
	}
	for i, r := range runes {
		vector[i%dims] += float64(r%97) / 100.0
	}
	normalizer := float64(len(runes) / dims)
	if normalizer < 1 {
		normalizer = 1
	}
	for i := range vector {
		vector[i] /= normalizer
	}
	return vector
}

// CosineSimilarity is 0 when either vector is empty or has zero norm.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}
	var dot, normA, normB float64
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
	}
	for _, x := range a {
		normA += x * x
	}
	for _, y := range b {
		normB += y * y
	}
	if normA == 0 || normB == 0 {
		return 0.0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

type IngestResult struct {
	ID         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	ChunkCount int       `json:"chunk_count"`
}

type SearchResult struct {
	ChunkID    uuid.UUID `json:"chunk_id"`
	DocumentID uuid.UUID `json:"document_id"`
	Score      float64   `json:"score"`
	Snippet    string    `json:"snippet"`
	SourceRef  string    `json:"source_ref"`
}

const snippetLength = 180

// MemoryService is the retrieval index: deterministic chunking and embedding
// on ingest, exhaustive cosine ranking on search.
type MemoryService struct {
	store      MemoryStore
	dimensions int
	chunkSize  int
	limitMax   int
}

// NewMemoryService clamps non-positive dimensionality, chunk size and limit
// ceiling to 1; config validation should catch these earlier, but the
// service never divides or indexes by a non-positive value.
func NewMemoryService(store MemoryStore, dimensions, chunkSize, limitMax int) *MemoryService {
	if dimensions < 1 {
		dimensions = 1
	}
	if chunkSize < 1 {
		chunkSize = 1
	}
	if limitMax < 1 {
		limitMax = 1
	}
	return &MemoryService{
		store:      store,
		dimensions: dimensions,
		chunkSize:  chunkSize,
		limitMax:   limitMax,
	}
}

func (s *MemoryService) Ingest(ctx context.Context, title, content, sourceRef string) (*IngestResult, error) {
	doc := &model.MemoryDocument{
		ID:        uuid.New(),
		Title:     title,
		Content:   content,
		SourceRef: sourceRef,
	}
	if err := s.store.CreateDocument(ctx, doc); err != nil {
		return nil, err
	}

	chunks := SplitChunks(content, s.chunkSize)
	for idx, chunkContent := range chunks {
		chunk := &model.MemoryChunk{
			ID:         uuid.New(),
			DocumentID: doc.ID,
			Content:    chunkContent,
			ChunkIndex: idx,
		}
		vector := DeterministicEmbedding(chunkContent, s.dimensions)
		if err := s.store.AddChunk(ctx, chunk, vector); err != nil {
			return nil, err
		}
	}

	return &IngestResult{ID: doc.ID, Title: doc.Title, ChunkCount: len(chunks)}, nil
}

// Search embeds the query and ranks every stored chunk by cosine similarity,
// descending. Equal scores preserve storage order. This is an exhaustive O(n)
// scan over all chunks.
func (s *MemoryService) Search(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	if limit < 1 {
		limit = 1
	}
	if limit > s.limitMax {
		limit = s.limitMax
	}

	queryVector := DeterministicEmbedding(query, s.dimensions)
	records, err := s.store.ListEmbeddings(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]SearchResult, len(records))
	for i, rec := range records {
		snippet := []rune(rec.Chunk.Content)
		if len(snippet) > snippetLength {
			snippet = snippet[:snippetLength]
		}
		results[i] = SearchResult{
			ChunkID:    rec.Chunk.ID,
			DocumentID: rec.Document.ID,
			Score:      CosineSimilarity(queryVector, rec.Entry.Vector),
			Snippet:    string(snippet),
			SourceRef:  rec.Document.SourceRef,
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func (s *MemoryService) GetDocument(ctx context.Context, id uuid.UUID) (*model.MemoryDocument, error) {
	doc, err := s.store.GetDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, ErrDocumentNotFound
	}
	return doc, nil
}
