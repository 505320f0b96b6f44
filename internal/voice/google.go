package voice

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"
)

// GoogleTranslateConfig holds configuration for the Google Translate TTS
// endpoint.
type GoogleTranslateConfig struct {
	BaseURL string // default: "https://translate.google.com/translate_tts"
	Client  string // default: "tw-ob"
}

// GoogleTranslateEngine synthesizes speech through the public Google
// Translate TTS endpoint. It returns MP3 audio and supports all three
// target languages.
type GoogleTranslateEngine struct {
	cfg        GoogleTranslateConfig
	httpClient *http.Client
}

// NewGoogleTranslateEngine creates an engine with sensible defaults applied.
func NewGoogleTranslateEngine(cfg GoogleTranslateConfig) *GoogleTranslateEngine {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://translate.google.com/translate_tts"
	}
	if cfg.Client == "" {
		cfg.Client = "tw-ob"
	}
	return &GoogleTranslateEngine{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (g *GoogleTranslateEngine) Name() string { return "google-translate-tts" }

// maxFragmentRunes is the longest text the endpoint accepts per request.
// Longer utterances are split on word boundaries and the MP3 parts
// concatenated, which players handle as one continuous stream.
const maxFragmentRunes = 200

// Synthesize converts text to MP3 audio in the given language.
func (g *GoogleTranslateEngine) Synthesize(ctx context.Context, text string, lang Language, slow bool) ([]byte, error) {
	if !lang.Supported() {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, lang)
	}

	var audio []byte
	for _, part := range splitFragments(text, maxFragmentRunes) {
		b, err := g.fetch(ctx, part, lang, slow)
		if err != nil {
			return nil, err
		}
		audio = append(audio, b...)
	}
	return audio, nil
}

func (g *GoogleTranslateEngine) fetch(ctx context.Context, text string, lang Language, slow bool) ([]byte, error) {
	q := url.Values{}
	q.Set("ie", "UTF-8")
	q.Set("q", text)
	q.Set("tl", string(lang))
	q.Set("client", g.cfg.Client)
	if slow {
		q.Set("ttsspeed", "0.3")
	} else {
		q.Set("ttsspeed", "1")
	}

	httpReq, err := http.NewRequestWithContext(ctx, "GET", g.cfg.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	// The endpoint rejects non-browser user agents.
	httpReq.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36")

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("tts request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("tts failed (status %d): %s", resp.StatusCode, string(respBody))
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read audio: %w", err)
	}
	return audio, nil
}

// splitFragments breaks text into word-aligned pieces of at most limit runes.
// A single word longer than the limit becomes its own fragment.
func splitFragments(text string, limit int) []string {
	if utf8.RuneCountInString(text) <= limit {
		return []string{text}
	}

	var (
		parts  []string
		cur    strings.Builder
		curLen int
	)
	for _, word := range strings.Fields(text) {
		wl := utf8.RuneCountInString(word)
		if curLen > 0 && curLen+1+wl > limit {
			parts = append(parts, cur.String())
			cur.Reset()
			curLen = 0
		}
		if curLen > 0 {
			cur.WriteByte(' ')
			curLen++
		}
		cur.WriteString(word)
		curLen += wl
	}
	if curLen > 0 {
		parts = append(parts, cur.String())
	}
	return parts
}
