package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/yojanasetu/voicebackend/internal/queue"
	"github.com/yojanasetu/voicebackend/internal/rag"
)

// IngestWorker chunks, embeds and stores uploaded scheme documents.
type IngestWorker struct {
	pipeline *rag.Pipeline
}

func NewIngestWorker(pipeline *rag.Pipeline) *IngestWorker {
	return &IngestWorker{pipeline: pipeline}
}

func (w *IngestWorker) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload queue.DocumentIngestPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	docID, err := uuid.Parse(payload.DocumentID)
	if err != nil {
		return fmt.Errorf("parse document ID: %w", err)
	}

	slog.Info("ingesting document", "document_id", docID, "filename", payload.Filename)

	chunks, err := w.pipeline.Ingest(ctx, docID, payload.Content)
	if err != nil {
		return fmt.Errorf("ingest document %s: %w", docID, err)
	}

	slog.Info("document ingest complete", "document_id", docID, "chunks", chunks)
	return nil
}
