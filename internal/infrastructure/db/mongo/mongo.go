package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const defaultTimeout = 10 * time.Second

// Config captures the settings of the audit trail store.
type Config struct {
	URI      string
	Database string
	AppName  string
	Timeout  time.Duration
}

// AuditStore bundles the client with the status event repository built on it.
type AuditStore struct {
	client *mongo.Client
	Events *StatusEventRepository
}

// Open connects, pings the primary and ensures the status event indexes.
func Open(ctx context.Context, cfg Config, log zerolog.Logger) (*AuditStore, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetServerSelectionTimeout(timeout)
	if cfg.AppName != "" {
		opts.SetAppName(cfg.AppName)
	}

	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	events := NewStatusEventRepository(client.Database(cfg.Database))
	if err := events.EnsureIndexes(connectCtx); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, fmt.Errorf("mongo indexes: %w", err)
	}

	log.Info().Str("database", cfg.Database).Msg("mongo audit store ready")
	return &AuditStore{client: client, Events: events}, nil
}

// Ping reports whether the primary is reachable.
func (s *AuditStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *AuditStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
