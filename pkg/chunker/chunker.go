package chunker

import (
	"strings"
	"unicode/utf8"
)

// ChunkOptions control how document text is split before embedding.
type ChunkOptions struct {
	ChunkSize    int // target chunk size in runes
	ChunkOverlap int // overlap carried between adjacent chunks
}

// TextChunk is one split piece with its position in the document.
type TextChunk struct {
	Content string
	Index   int
}

// DefaultOptions mirror what worked for scheme documents: chunks small
// enough for the answer model's context, overlap at roughly a fifth of the
// chunk size.
func DefaultOptions() ChunkOptions {
	return ChunkOptions{
		ChunkSize:    700,
		ChunkOverlap: 140,
	}
}

// separators are tried in order; the splitter prefers the coarsest boundary
// that still fits the chunk size.
var separators = []string{"\n\n", "\n", ". ", "! ", "? ", ", ", " "}

// Chunk splits text into overlapping pieces of at most opts.ChunkSize runes,
// breaking on the coarsest separator available.
func Chunk(text string, opts ChunkOptions) []TextChunk {
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = DefaultOptions().ChunkSize
	}
	if opts.ChunkOverlap < 0 || opts.ChunkOverlap >= opts.ChunkSize {
		opts.ChunkOverlap = 0
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	pieces := split(text, opts.ChunkSize)

	var chunks []TextChunk
	var carry string
	for _, piece := range pieces {
		content := strings.TrimSpace(carry + piece)
		if content == "" {
			continue
		}
		chunks = append(chunks, TextChunk{Content: content, Index: len(chunks)})
		carry = tail(piece, opts.ChunkOverlap)
		if carry != "" {
			carry += " "
		}
	}
	return chunks
}

// split recursively divides text on the coarsest separator until every piece
// fits within limit runes.
func split(text string, limit int) []string {
	if utf8.RuneCountInString(text) <= limit {
		return []string{text}
	}

	for _, sep := range separators {
		parts := strings.Split(text, sep)
		if len(parts) < 2 {
			continue
		}

		var out []string
		var cur strings.Builder
		curLen := 0
		for i, part := range parts {
			if i < len(parts)-1 {
				part += sep
			}
			pl := utf8.RuneCountInString(part)
			if curLen > 0 && curLen+pl > limit {
				out = append(out, cur.String())
				cur.Reset()
				curLen = 0
			}
			if pl > limit {
				out = append(out, split(part, limit)...)
				continue
			}
			cur.WriteString(part)
			curLen += pl
		}
		if curLen > 0 {
			out = append(out, cur.String())
		}
		return out
	}

	// No separator left: hard cut.
	runes := []rune(text)
	var out []string
	for start := 0; start < len(runes); start += limit {
		end := start + limit
		if end > len(runes) {
			end = len(runes)
		}
		out = append(out, string(runes[start:end]))
	}
	return out
}

// tail returns the last n runes of s, aligned to a word boundary.
func tail(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	cut := string(runes[len(runes)-n:])
	if idx := strings.IndexByte(cut, ' '); idx >= 0 {
		cut = cut[idx+1:]
	}
	return cut
}
