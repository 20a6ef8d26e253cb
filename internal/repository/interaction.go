package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/fuelinnovation/line-autoreply/internal/database"
	"github.com/fuelinnovation/line-autoreply/internal/model"
)

// InteractionRepository is an append-only store of bot interactions.
type InteractionRepository interface {
	Append(ctx context.Context, entry model.Interaction) error
}

// File

type fileInteractionRepo struct {
	path string
	mu   sync.Mutex
}

// NewFileInteractionRepository keeps every record in one JSON array file.
// A missing or unreadable file is treated as an empty log.
func NewFileInteractionRepository(path string) InteractionRepository {
	return &fileInteractionRepo{path: path}
}

func (r *fileInteractionRepo) Append(ctx context.Context, entry model.Interaction) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	records := r.read()

	raw, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal interaction: %w", err)
	}
	records = append(records, raw)

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal interaction log: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.path), filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp log: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write temp log: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp log: %w", err)
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace log: %w", err)
	}
	return nil
}

func (r *fileInteractionRepo) read() []json.RawMessage {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return []json.RawMessage{}
	}

	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return []json.RawMessage{}
	}
	return records
}

// Postgres

type postgresInteractionRepo struct {
	db database.DBTX
}

// NewPostgresInteractionRepository writes to interaction_logs; the table
// is created by database.DB.Migrate.
func NewPostgresInteractionRepository(db database.DBTX) InteractionRepository {
	return &postgresInteractionRepo{db: db}
}

func (r *postgresInteractionRepo) Append(ctx context.Context, entry model.Interaction) error {
	meta, err := json.Marshal(entry.Meta)
	if err != nil {
		return fmt.Errorf("marshal meta: %w", err)
	}
	if entry.Meta == nil {
		meta = []byte("{}")
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO interaction_logs (id, action, meta, created_at)
		VALUES ($1, $2, $3, $4)
	`, entry.ID, entry.Action, string(meta), entry.Timestamp)
	return err
}

// Redis

type redisInteractionRepo struct {
	client *redis.Client
	key    string
}

// NewRedisInteractionRepository appends JSON records to a Redis list.
func NewRedisInteractionRepository(client *redis.Client, key string) InteractionRepository {
	return &redisInteractionRepo{client: client, key: key}
}

func (r *redisInteractionRepo) Append(ctx context.Context, entry model.Interaction) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal interaction: %w", err)
	}
	return r.client.RPush(ctx, r.key, data).Err()
}
