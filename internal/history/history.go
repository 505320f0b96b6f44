package history

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yojanasetu/voicebackend/internal/voice"
)

// Turn is one question/answer exchange kept for conversational context.
type Turn struct {
	ID        uuid.UUID      `json:"id"`
	Question  string         `json:"question"`
	Answer    string         `json:"answer"`
	Language  voice.Language `json:"language"`
	CreatedAt time.Time      `json:"created_at"`
}

// Store persists conversation turns in Postgres.
type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) Save(ctx context.Context, question, answer string, lang voice.Language) (*Turn, error) {
	turn := &Turn{
		ID:        uuid.New(),
		Question:  question,
		Answer:    answer,
		Language:  lang,
		CreatedAt: time.Now().UTC(),
	}

	_, err := s.db.Exec(ctx,
		`INSERT INTO conversation_turns (id, question, answer, language, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		turn.ID, turn.Question, turn.Answer, string(turn.Language), turn.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("save turn: %w", err)
	}
	return turn, nil
}

// Recent returns the latest turns, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Turn, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(ctx,
		`SELECT id, question, answer, language, created_at
		 FROM conversation_turns
		 ORDER BY created_at DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list turns: %w", err)
	}
	defer rows.Close()

	var turns []Turn
	for rows.Next() {
		var t Turn
		var lang string
		if err := rows.Scan(&t.ID, &t.Question, &t.Answer, &lang, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan turn: %w", err)
		}
		t.Language = voice.Language(lang)
		turns = append(turns, t)
	}
	return turns, rows.Err()
}

// PreviousContext renders the most recent turn as prompt context, the way
// follow-up questions expect it.
func (s *Store) PreviousContext(ctx context.Context, turns int) (string, error) {
	recent, err := s.Recent(ctx, turns)
	if err != nil {
		return "", err
	}
	if len(recent) == 0 {
		return "", nil
	}

	var b strings.Builder
	// Oldest first reads naturally in a prompt.
	for i := len(recent) - 1; i >= 0; i-- {
		fmt.Fprintf(&b, "Q: %s\nA: %s\n", recent[i].Question, recent[i].Answer)
	}
	return strings.TrimSpace(b.String()), nil
}
