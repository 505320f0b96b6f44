package rag

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/yojanasetu/voicebackend/internal/embedding"
	"github.com/yojanasetu/voicebackend/internal/llm"
	"github.com/yojanasetu/voicebackend/internal/vectorstore"
)

type stubGateway struct {
	answer    string
	chatCalls int
	lastChat  llm.ChatRequest
}

func (g *stubGateway) Chat(ctx context.Context, req llm.ChatRequest) (*llm.ChatResponse, error) {
	g.chatCalls++
	g.lastChat = req
	return &llm.ChatResponse{Content: g.answer}, nil
}

func (g *stubGateway) Embed(ctx context.Context, req llm.EmbeddingRequest) (*llm.EmbeddingResponse, error) {
	embeddings := make([][]float32, len(req.Input))
	for i := range embeddings {
		embeddings[i] = []float32{0.1, 0.2, 0.3}
	}
	return &llm.EmbeddingResponse{Embeddings: embeddings}, nil
}

func (g *stubGateway) Provider(name string) (llm.Provider, error) {
	return nil, nil
}

type memoryStore struct {
	chunks  []vectorstore.Chunk
	results []vectorstore.SearchResult
}

func (s *memoryStore) Upsert(ctx context.Context, chunks []vectorstore.Chunk) error {
	s.chunks = append(s.chunks, chunks...)
	return nil
}

func (s *memoryStore) SimilaritySearch(ctx context.Context, query []float32, opts vectorstore.SearchOptions) ([]vectorstore.SearchResult, error) {
	return s.results, nil
}

func (s *memoryStore) DeleteDocument(ctx context.Context, documentID uuid.UUID) error {
	kept := s.chunks[:0]
	for _, c := range s.chunks {
		if c.DocumentID != documentID {
			kept = append(kept, c)
		}
	}
	s.chunks = kept
	return nil
}

func newTestPipeline(gw *stubGateway, store *memoryStore) *Pipeline {
	embedder := embedding.NewService(gw, "")
	return NewPipeline(gw, embedder, store, nil, "llama-3.3-70b-versatile")
}

func TestQueryEmptyQuestion(t *testing.T) {
	p := newTestPipeline(&stubGateway{}, &memoryStore{})
	if _, err := p.Query(context.Background(), "   ", ""); err == nil {
		t.Fatal("expected error for empty question")
	}
}

func TestQueryGeneratesAnswer(t *testing.T) {
	gw := &stubGateway{answer: "The scheme covers hospital expenses up to Rs 5 lakh."}
	store := &memoryStore{
		results: []vectorstore.SearchResult{
			{Content: "Coverage up to Rs 5 lakh per family per year.", Score: 0.9},
		},
	}
	p := newTestPipeline(gw, store)

	answer, err := p.Query(context.Background(), "What does the scheme cover?", "")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if answer.Answer != gw.answer {
		t.Errorf("answer = %q", answer.Answer)
	}
	if answer.Cached {
		t.Error("fresh answer reported as cached")
	}
	if len(answer.Sources) != 1 {
		t.Errorf("sources = %d, want 1", len(answer.Sources))
	}
	if gw.chatCalls != 1 {
		t.Errorf("chat calls = %d, want 1", gw.chatCalls)
	}
	if !strings.Contains(gw.lastChat.Messages[1].Content, "What does the scheme cover?") {
		t.Error("question missing from prompt")
	}
}

func TestQueryFallbackWithoutResults(t *testing.T) {
	gw := &stubGateway{answer: "should not be used"}
	p := newTestPipeline(gw, &memoryStore{})

	answer, err := p.Query(context.Background(), "unknown scheme question", "")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if answer.Answer != FallbackAnswer {
		t.Errorf("answer = %q, want fallback", answer.Answer)
	}
	if gw.chatCalls != 0 {
		t.Errorf("chat calls = %d, want 0 when retrieval is empty", gw.chatCalls)
	}
}

func TestQueryPassesPreviousContext(t *testing.T) {
	gw := &stubGateway{answer: "follow-up answer"}
	store := &memoryStore{
		results: []vectorstore.SearchResult{{Content: "eligibility details", Score: 0.8}},
	}
	p := newTestPipeline(gw, store)

	_, err := p.Query(context.Background(), "and the documents?", "Q: who is eligible?\nA: all BPL families")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if !strings.Contains(gw.lastChat.Messages[1].Content, "who is eligible?") {
		t.Error("previous context missing from prompt")
	}
}

func TestIngestChunksAndStores(t *testing.T) {
	store := &memoryStore{}
	p := newTestPipeline(&stubGateway{}, store)

	docID := uuid.New()
	content := strings.Repeat("The scheme provides free treatment at empanelled hospitals. ", 30)

	n, err := p.Ingest(context.Background(), docID, content)
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if n == 0 {
		t.Fatal("no chunks stored")
	}
	if len(store.chunks) != n {
		t.Errorf("stored %d chunks, reported %d", len(store.chunks), n)
	}
	for i, c := range store.chunks {
		if c.DocumentID != docID {
			t.Errorf("chunk %d has wrong document ID", i)
		}
		if len(c.Embedding) == 0 {
			t.Errorf("chunk %d missing embedding", i)
		}
		if c.ChunkIndex != i {
			t.Errorf("chunk %d has index %d", i, c.ChunkIndex)
		}
	}
}

func TestIngestEmptyDocument(t *testing.T) {
	p := newTestPipeline(&stubGateway{}, &memoryStore{})
	if _, err := p.Ingest(context.Background(), uuid.New(), "   "); err == nil {
		t.Fatal("expected error for empty document")
	}
}

func TestAnswerCacheKeyNormalization(t *testing.T) {
	a := answerCacheKey("What  schemes are available?")
	b := answerCacheKey("what schemes are AVAILABLE?")
	if a != b {
		t.Error("case and spacing variants should share a key")
	}
	c := answerCacheKey("which schemes are available?")
	if a == c {
		t.Error("different questions should not collide")
	}
}
