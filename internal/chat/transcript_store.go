package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/lumident/dental-clinic-platform/internal/intake"
)

const (
	transcriptKeyPrefix = "chat_transcript:"
	transcriptTTL       = 7 * 24 * time.Hour
)

// TranscriptMessage is one chat turn as stored in redis.
type TranscriptMessage struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"` // "patient" or "assistant"
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// TranscriptStore keeps per-session chat history in a redis list. All
// methods are nil-receiver safe so chat works without redis; history is
// simply not retained.
type TranscriptStore struct {
	redis       *redis.Client
	maxMessages int64
}

func NewTranscriptStore(redisClient *redis.Client, maxMessages int64) *TranscriptStore {
	if redisClient == nil {
		return nil
	}
	if maxMessages <= 0 {
		maxMessages = 100
	}
	return &TranscriptStore{redis: redisClient, maxMessages: maxMessages}
}

func (s *TranscriptStore) Append(ctx context.Context, sessionID string, msg TranscriptMessage) error {
	if s == nil || s.redis == nil {
		return nil
	}
	if sessionID == "" {
		return errors.New("chat: transcript sessionID required")
	}

	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now().UTC()
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("chat: marshal transcript message: %w", err)
	}

	key := transcriptKey(sessionID)
	pipe := s.redis.TxPipeline()
	pipe.RPush(ctx, key, data)
	pipe.Expire(ctx, key, transcriptTTL)
	pipe.LTrim(ctx, key, -s.maxMessages, -1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("chat: append transcript message: %w", err)
	}
	return nil
}

// List returns up to limit most recent messages in chronological order.
// limit <= 0 returns the full retained history.
func (s *TranscriptStore) List(ctx context.Context, sessionID string, limit int64) ([]TranscriptMessage, error) {
	if s == nil || s.redis == nil {
		return nil, nil
	}
	if sessionID == "" {
		return nil, errors.New("chat: transcript sessionID required")
	}

	start := int64(0)
	if limit > 0 {
		start = -limit
	}

	raw, err := s.redis.LRange(ctx, transcriptKey(sessionID), start, -1).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []TranscriptMessage{}, nil
		}
		return nil, fmt.Errorf("chat: list transcript: %w", err)
	}

	out := make([]TranscriptMessage, 0, len(raw))
	for _, item := range raw {
		var msg TranscriptMessage
		if err := json.Unmarshal([]byte(item), &msg); err != nil {
			continue
		}
		out = append(out, msg)
	}
	return out, nil
}

// Conversation rebuilds an intake.Conversation from the retained history.
func (s *TranscriptStore) Conversation(ctx context.Context, sessionID string) (intake.Conversation, error) {
	msgs, err := s.List(ctx, sessionID, 0)
	if err != nil {
		return nil, err
	}
	conv := make(intake.Conversation, 0, len(msgs))
	for _, m := range msgs {
		conv = append(conv, intake.Message{Role: m.Role, Content: m.Content})
	}
	return conv, nil
}

func transcriptKey(sessionID string) string {
	return transcriptKeyPrefix + sessionID
}
