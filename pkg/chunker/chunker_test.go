package chunker

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestChunkEmpty(t *testing.T) {
	if got := Chunk("", DefaultOptions()); got != nil {
		t.Fatalf("expected nil for empty input, got %d chunks", len(got))
	}
	if got := Chunk("   \n\t  ", DefaultOptions()); got != nil {
		t.Fatalf("expected nil for whitespace input, got %d chunks", len(got))
	}
}

func TestChunkShortTextSingleChunk(t *testing.T) {
	text := "Maharashtra runs several welfare schemes for farmers."
	chunks := Chunk(text, DefaultOptions())
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Content != text {
		t.Errorf("content mutated: %q", chunks[0].Content)
	}
	if chunks[0].Index != 0 {
		t.Errorf("index = %d, want 0", chunks[0].Index)
	}
}

func TestChunkRespectsSizeAndIndexes(t *testing.T) {
	sentence := "The scheme provides financial assistance to eligible families. "
	text := strings.Repeat(sentence, 40)

	opts := ChunkOptions{ChunkSize: 200, ChunkOverlap: 40}
	chunks := Chunk(text, opts)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	limit := opts.ChunkSize + opts.ChunkOverlap + 1
	for i, c := range chunks {
		if c.Index != i {
			t.Errorf("chunk %d has index %d", i, c.Index)
		}
		if n := utf8.RuneCountInString(c.Content); n > limit {
			t.Errorf("chunk %d has %d runes, limit %d", i, n, limit)
		}
		if c.Content == "" {
			t.Errorf("chunk %d is empty", i)
		}
	}
}

func TestChunkOverlapCarriesContext(t *testing.T) {
	sentence := "Applicants must submit the income certificate with the form. "
	text := strings.Repeat(sentence, 30)

	chunks := Chunk(text, ChunkOptions{ChunkSize: 150, ChunkOverlap: 50})
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	// The second chunk should start with words carried over from the first.
	firstWords := strings.Fields(chunks[0].Content)
	lastWord := firstWords[len(firstWords)-1]
	if !strings.Contains(chunks[1].Content, lastWord) {
		t.Errorf("chunk 1 does not carry overlap from chunk 0: %q", chunks[1].Content[:50])
	}
}

func TestChunkDevanagariText(t *testing.T) {
	sentence := "या योजनेसाठी अर्ज करण्यासाठी आधार कार्ड आवश्यक आहे. "
	text := strings.Repeat(sentence, 20)

	chunks := Chunk(text, ChunkOptions{ChunkSize: 120, ChunkOverlap: 0})
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if n := utf8.RuneCountInString(c.Content); n > 120 {
			t.Errorf("chunk %d has %d runes, want <= 120", i, n)
		}
	}
}

func TestChunkHardCutWithoutSeparators(t *testing.T) {
	text := strings.Repeat("a", 500)
	chunks := Chunk(text, ChunkOptions{ChunkSize: 100, ChunkOverlap: 0})
	if len(chunks) != 5 {
		t.Fatalf("expected 5 chunks, got %d", len(chunks))
	}
}
