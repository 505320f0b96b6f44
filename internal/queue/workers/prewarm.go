package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/yojanasetu/voicebackend/internal/queue"
	"github.com/yojanasetu/voicebackend/internal/voice"
)

// PrewarmWorker synthesizes frequently served answers ahead of time so the
// first caller gets a cache hit.
type PrewarmWorker struct {
	voiceSvc *voice.Service
}

func NewPrewarmWorker(voiceSvc *voice.Service) *PrewarmWorker {
	return &PrewarmWorker{voiceSvc: voiceSvc}
}

func (w *PrewarmWorker) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload queue.VoicePrewarmPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	result := w.voiceSvc.GenerateAudioResponse(ctx, payload.Text, payload.Language, payload.Speed)
	if result.Audio == nil {
		// Degraded results are logged inside the service; retrying a text
		// that cannot be synthesized will not help.
		slog.Warn("prewarm produced no audio", "language", result.Language)
		return nil
	}

	slog.Info("audio prewarmed",
		"language", result.Language,
		"cache_hit", result.CacheHit,
		"bytes", len(result.Audio),
	)
	return nil
}
