package handlers

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"

	"github.com/yojanasetu/voicebackend/internal/transcribe"
	"github.com/yojanasetu/voicebackend/internal/voice"
)

const maxAudioUploadBytes = 25 << 20 // matches the transcription API limit

type VoiceHandler struct {
	voiceSvc      *voice.Service
	transcribeSvc *transcribe.Service
}

func NewVoiceHandler(voiceSvc *voice.Service, transcribeSvc *transcribe.Service) *VoiceHandler {
	return &VoiceHandler{voiceSvc: voiceSvc, transcribeSvc: transcribeSvc}
}

type ttsRequest struct {
	Text     string  `json:"text"`
	Language string  `json:"language_preference,omitempty"` // "en", "hi", "mr" or "auto"
	Speed    float64 `json:"speed,omitempty"`
}

type ttsResponse struct {
	LanguageUsed string  `json:"language_used"`
	CacheHit     bool    `json:"cache_hit"`
	AudioBase64  *string `json:"audio_base64"`
}

// TTS turns answer text into audio. A degraded synthesis still returns 200
// with a null audio field so clients can fall back to text-only display.
func (h *VoiceHandler) TTS(w http.ResponseWriter, r *http.Request) {
	var req ttsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	result := h.voiceSvc.GenerateAudioResponse(r.Context(), req.Text, req.Language, req.Speed)

	resp := ttsResponse{
		LanguageUsed: string(result.Language),
		CacheHit:     result.CacheHit,
	}
	if result.Audio != nil {
		encoded := base64.StdEncoding.EncodeToString(result.Audio)
		resp.AudioBase64 = &encoded
	}

	writeJSON(w, http.StatusOK, resp)
}

// Transcribe accepts a multipart audio upload and returns the recognized
// text, rejecting scripts the assistant cannot answer in.
func (h *VoiceHandler) Transcribe(w http.ResponseWriter, r *http.Request) {
	if h.transcribeSvc == nil {
		writeError(w, http.StatusServiceUnavailable, "transcription is not configured")
		return
	}

	if err := r.ParseMultipartForm(maxAudioUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("audio")
	if err != nil {
		writeError(w, http.StatusBadRequest, "audio file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxAudioUploadBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read audio file")
		return
	}

	result, err := h.transcribeSvc.Transcribe(r.Context(), data, header.Filename)
	if err != nil {
		writeError(w, http.StatusBadGateway, "transcription failed")
		return
	}

	writeJSON(w, http.StatusOK, result)
}
