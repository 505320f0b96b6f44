package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/yojanasetu/voicebackend/internal/voice"
)

// newDegradedVoiceService has no engine wired, so every request resolves
// language but returns no audio.
func newDegradedVoiceService() *voice.Service {
	return voice.NewService(nil, nil, 0)
}

func TestTTSMissingText(t *testing.T) {
	h := NewVoiceHandler(newDegradedVoiceService(), nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/voice/tts", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	h.TTS(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestTTSInvalidBody(t *testing.T) {
	h := NewVoiceHandler(newDegradedVoiceService(), nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/voice/tts", strings.NewReader(`{not json`))
	rec := httptest.NewRecorder()
	h.TTS(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestTTSDegradesToNullAudio(t *testing.T) {
	h := NewVoiceHandler(newDegradedVoiceService(), nil)

	body := `{"text": "या योजनेसाठी अर्ज कसा करावा आहे", "language_preference": "auto"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/voice/tts", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.TTS(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp ttsResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.AudioBase64 != nil {
		t.Error("expected null audio without an engine")
	}
	if resp.LanguageUsed != "mr" {
		t.Errorf("language_used = %q, want mr", resp.LanguageUsed)
	}
}

func TestTTSReportsPreferredLanguage(t *testing.T) {
	h := NewVoiceHandler(newDegradedVoiceService(), nil)

	body := `{"text": "How do I apply for this scheme?", "language_preference": "hi"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/voice/tts", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.TTS(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp ttsResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.LanguageUsed != "hi" {
		t.Errorf("language_used = %q, want hi", resp.LanguageUsed)
	}
}

func TestTranscribeUnconfigured(t *testing.T) {
	h := NewVoiceHandler(newDegradedVoiceService(), nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/voice/transcribe", nil)
	rec := httptest.NewRecorder()
	h.Transcribe(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
}
