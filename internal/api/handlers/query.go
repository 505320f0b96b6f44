package handlers

import (
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/yojanasetu/voicebackend/internal/history"
	"github.com/yojanasetu/voicebackend/internal/rag"
	"github.com/yojanasetu/voicebackend/internal/vectorstore"
	"github.com/yojanasetu/voicebackend/internal/voice"
)

// contextTurns is how many recent exchanges feed follow-up questions.
const contextTurns = 1

type QueryHandler struct {
	pipeline *rag.Pipeline
	voiceSvc *voice.Service
	turns    *history.Store // optional; nil disables history
}

func NewQueryHandler(pipeline *rag.Pipeline, voiceSvc *voice.Service, turns *history.Store) *QueryHandler {
	return &QueryHandler{pipeline: pipeline, voiceSvc: voiceSvc, turns: turns}
}

type queryRequest struct {
	Question  string  `json:"question"`
	Language  string  `json:"language,omitempty"` // preference for the spoken answer
	Speed     float64 `json:"speed,omitempty"`
	WithAudio bool    `json:"with_audio,omitempty"`
}

type queryResponse struct {
	Answer       string                     `json:"answer"`
	Cached       bool                       `json:"cached"`
	LanguageUsed string                     `json:"language_used,omitempty"`
	CacheHit     bool                       `json:"audio_cache_hit,omitempty"`
	AudioBase64  *string                    `json:"audio_base64,omitempty"`
	Sources      []vectorstore.SearchResult `json:"sources,omitempty"`
}

// Query answers a scheme question from the knowledge base, optionally
// returning the answer as audio in the caller's language.
func (h *QueryHandler) Query(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Question == "" {
		writeError(w, http.StatusBadRequest, "question is required")
		return
	}

	ctx := r.Context()

	var previousContext string
	if h.turns != nil {
		prev, err := h.turns.PreviousContext(ctx, contextTurns)
		if err != nil {
			slog.Warn("failed to load conversation context", "error", err)
		} else {
			previousContext = prev
		}
	}

	answer, err := h.pipeline.Query(ctx, req.Question, previousContext)
	if err != nil {
		slog.Error("query failed", "error", err)
		writeError(w, http.StatusBadGateway, "failed to answer question")
		return
	}

	resp := queryResponse{
		Answer:  answer.Answer,
		Cached:  answer.Cached,
		Sources: answer.Sources,
	}

	if req.WithAudio && h.voiceSvc != nil {
		result := h.voiceSvc.GenerateAudioResponse(ctx, answer.Answer, req.Language, req.Speed)
		resp.LanguageUsed = string(result.Language)
		resp.CacheHit = result.CacheHit
		if result.Audio != nil {
			encoded := base64.StdEncoding.EncodeToString(result.Audio)
			resp.AudioBase64 = &encoded
		}
	}

	if h.turns != nil {
		lang := voice.Language(resp.LanguageUsed)
		if lang == "" {
			lang = voice.Classify(answer.Answer)
		}
		if _, err := h.turns.Save(ctx, req.Question, answer.Answer, lang); err != nil {
			slog.Warn("failed to save conversation turn", "error", err)
		}
	}

	writeJSON(w, http.StatusOK, resp)
}
