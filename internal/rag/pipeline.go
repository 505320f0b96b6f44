package rag

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/yojanasetu/voicebackend/internal/cache"
	"github.com/yojanasetu/voicebackend/internal/embedding"
	"github.com/yojanasetu/voicebackend/internal/llm"
	"github.com/yojanasetu/voicebackend/internal/vectorstore"
	"github.com/yojanasetu/voicebackend/pkg/chunker"
)

const (
	defaultTopK     = 15
	answerCacheTTL  = time.Hour
	answerCacheKeyP = "answer:"
)

// Answer is the result of running a question through the pipeline.
type Answer struct {
	Answer  string                     `json:"answer"`
	Sources []vectorstore.SearchResult `json:"sources,omitempty"`
	Cached  bool                       `json:"cached"`
}

// Pipeline ties chunking, embedding, retrieval and generation together.
type Pipeline struct {
	embedder  *embedding.Service
	store     vectorstore.VectorStore
	generator *generator
	answers   *cache.Cache // optional; nil disables answer caching
	chunkOpts chunker.ChunkOptions
}

func NewPipeline(gw llm.Gateway, embedder *embedding.Service, store vectorstore.VectorStore, answers *cache.Cache, model string) *Pipeline {
	return &Pipeline{
		embedder:  embedder,
		store:     store,
		generator: newGenerator(gw, model),
		answers:   answers,
		chunkOpts: chunker.DefaultOptions(),
	}
}

// Ingest chunks a document, embeds every chunk and writes them to the
// vector store. Replaces any chunks previously stored for the document.
func (p *Pipeline) Ingest(ctx context.Context, documentID uuid.UUID, content string) (int, error) {
	chunks := chunker.Chunk(content, p.chunkOpts)
	if len(chunks) == 0 {
		return 0, fmt.Errorf("document %s produced no chunks", documentID)
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Content
	}

	embeddings, err := p.embedder.Embed(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("embed document %s: %w", documentID, err)
	}
	if len(embeddings) != len(chunks) {
		return 0, fmt.Errorf("embedding count mismatch: %d chunks, %d embeddings", len(chunks), len(embeddings))
	}

	if err := p.store.DeleteDocument(ctx, documentID); err != nil {
		return 0, fmt.Errorf("clear previous chunks: %w", err)
	}

	stored := make([]vectorstore.Chunk, len(chunks))
	for i, c := range chunks {
		stored[i] = vectorstore.Chunk{
			ID:         uuid.New(),
			DocumentID: documentID,
			ChunkIndex: c.Index,
			Content:    c.Content,
			Embedding:  embeddings[i],
		}
	}

	if err := p.store.Upsert(ctx, stored); err != nil {
		return 0, fmt.Errorf("store chunks: %w", err)
	}

	slog.Info("document ingested", "document_id", documentID, "chunks", len(stored))
	return len(stored), nil
}

// Query answers a question from the knowledge base. Repeated questions are
// served from the answer cache without touching retrieval or the LLM.
func (p *Pipeline) Query(ctx context.Context, question string, previousContext string) (*Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("empty question")
	}

	key := answerCacheKey(question)
	if p.answers != nil {
		var cached Answer
		err := p.answers.Get(ctx, key, &cached)
		if err == nil {
			cached.Cached = true
			return &cached, nil
		}
		if !errors.Is(err, redis.Nil) {
			slog.Warn("answer cache read failed", "error", err)
		}
	}

	queryEmbedding, err := p.embedder.EmbedSingle(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("embed question: %w", err)
	}

	results, err := p.store.SimilaritySearch(ctx, queryEmbedding, vectorstore.SearchOptions{TopK: defaultTopK})
	if err != nil {
		return nil, fmt.Errorf("retrieve: %w", err)
	}

	text, err := p.generator.Generate(ctx, question, results, previousContext)
	if err != nil {
		return nil, err
	}

	answer := &Answer{Answer: text, Sources: results}
	if p.answers != nil {
		if err := p.answers.Set(ctx, key, answer, answerCacheTTL); err != nil {
			slog.Warn("answer cache write failed", "error", err)
		}
	}
	return answer, nil
}

// answerCacheKey normalizes the question so trivial variations in spacing
// and case share a cache entry.
func answerCacheKey(question string) string {
	normalized := strings.ToLower(strings.Join(strings.Fields(question), " "))
	sum := sha256.Sum256([]byte(normalized))
	return answerCacheKeyP + hex.EncodeToString(sum[:])
}
