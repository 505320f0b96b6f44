package handlers

import (
	"bytes"
	"io"
	"net/http"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/yojanasetu/voicebackend/internal/queue"
	"github.com/yojanasetu/voicebackend/pkg/textextract"
)

const maxDocumentBytes = 50 << 20

type DocumentHandler struct {
	queueClient *queue.Client
}

func NewDocumentHandler(qc *queue.Client) *DocumentHandler {
	return &DocumentHandler{queueClient: qc}
}

type uploadResponse struct {
	DocumentID string `json:"document_id"`
	Filename   string `json:"filename"`
	Pages      int    `json:"pages"`
	Status     string `json:"status"`
}

// Upload extracts text from a scheme document and queues it for ingestion.
// Extraction happens inline so malformed uploads fail fast; chunking and
// embedding run on the worker.
func (h *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxDocumentBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxDocumentBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read file")
		return
	}

	ext := filepath.Ext(header.Filename)
	extracted, err := textextract.Extract(bytes.NewReader(data), int64(len(data)), ext)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	docID := uuid.New()
	err = h.queueClient.EnqueueDocumentIngest(queue.DocumentIngestPayload{
		DocumentID: docID.String(),
		Filename:   header.Filename,
		Content:    extracted.Content,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to queue document")
		return
	}

	writeJSON(w, http.StatusAccepted, uploadResponse{
		DocumentID: docID.String(),
		Filename:   header.Filename,
		Pages:      extracted.Pages,
		Status:     "queued",
	})
}
