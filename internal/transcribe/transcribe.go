package transcribe

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/yojanasetu/voicebackend/internal/config"
)

// RejectionMessage is returned to the caller when transcribed audio is in a
// language the assistant does not answer.
const RejectionMessage = "Sorry, I only support English, Hindi, and Marathi. Please speak in one of these languages."

var (
	devanagariRe = regexp.MustCompile(`[\x{0900}-\x{097F}]`)
	latinRe      = regexp.MustCompile(`[A-Za-z]`)
)

// SupportedScript reports whether text is in a script this service answers:
// Devanagari (Hindi/Marathi) or Latin (English).
func SupportedScript(text string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}
	return devanagariRe.MatchString(text) || latinRe.MatchString(text)
}

// Result is the outcome of one transcription. Accepted=false carries a
// user-facing message instead of text.
type Result struct {
	Text     string `json:"text,omitempty"`
	Accepted bool   `json:"accepted"`
	Message  string `json:"message,omitempty"`
}

// Service transcribes audio through an OpenAI-compatible Whisper endpoint
// (Groq's whisper-large-v3 by default).
type Service struct {
	client *openai.Client
	model  string
}

// NewService creates a transcription service with defaults applied.
func NewService(cfg config.TranscribeConfig) *Service {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	model := cfg.Model
	if model == "" {
		model = "whisper-large-v3"
	}
	return &Service{
		client: openai.NewClientWithConfig(clientCfg),
		model:  model,
	}
}

// Transcribe converts raw audio bytes to text and gates the result on
// supported scripts. Transport failures return an error; an unsupported
// language is a clean rejection, not an error.
func (s *Service) Transcribe(ctx context.Context, audio []byte, filename string) (*Result, error) {
	if filename == "" {
		filename = "audio.wav"
	}

	resp, err := s.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:       s.model,
		FilePath:    filename,
		Reader:      bytes.NewReader(audio),
		Temperature: 0,
	})
	if err != nil {
		return nil, fmt.Errorf("transcription request: %w", err)
	}

	if !SupportedScript(resp.Text) {
		return &Result{Accepted: false, Message: RejectionMessage}, nil
	}
	return &Result{Text: resp.Text, Accepted: true}, nil
}
