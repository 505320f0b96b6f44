package queue

const (
	TypeDocumentIngest = "document:ingest"
	TypeVoicePrewarm   = "voice:prewarm"
)

type DocumentIngestPayload struct {
	DocumentID string `json:"document_id"`
	Filename   string `json:"filename"`
	Content    string `json:"content"` // extracted plain text
}

type VoicePrewarmPayload struct {
	Text     string  `json:"text"`
	Language string  `json:"language"`
	Speed    float64 `json:"speed"`
}
