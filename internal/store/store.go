// Package store keeps generated portfolio records on the server, keyed by the
// identifier the user generated them with.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/portfolio-generator/internal/types"
)

// AnonymousKey is used when a request carries neither a GitHub nor a LinkedIn identifier.
const AnonymousKey = "anonymous"

// Backend names accepted by Open.
const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("store is closed")

// Store is a key-value repository of portfolio records.
// Get returns (nil, nil) when the key is missing or expired.
type Store interface {
	Put(ctx context.Context, key string, rec *types.PortfolioRecord) error
	Get(ctx context.Context, key string) (*types.PortfolioRecord, error)
	Delete(ctx context.Context, key string) error
	Close() error
}

// Key returns the lookup key for a generation request: the GitHub identifier,
// else the LinkedIn one, else AnonymousKey.
func Key(github, linkedin string) string {
	if k := strings.TrimSpace(github); k != "" {
		return k
	}
	if k := strings.TrimSpace(linkedin); k != "" {
		return k
	}
	return AnonymousKey
}

// Options selects and configures a backend.
type Options struct {
	Backend  string
	DSN      string
	TTL      time.Duration
	Capacity int
	Logger   *zap.Logger
}

// Open creates the backend named by opts.Backend. An empty name means memory.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Backend {
	case "", BackendMemory:
		return NewMemory(MemoryOptions{TTL: opts.TTL, Capacity: opts.Capacity, Logger: opts.Logger}), nil
	case BackendSQLite:
		return OpenSQLite(ctx, opts.DSN)
	case BackendPostgres:
		return ConnectPostgres(ctx, opts.DSN)
	default:
		return nil, fmt.Errorf("unknown store backend %q", opts.Backend)
	}
}

func encode(rec *types.PortfolioRecord) ([]byte, error) {
	if rec == nil {
		return nil, errors.New("nil record")
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal record: %w", err)
	}
	return data, nil
}

func decode(data []byte) (*types.PortfolioRecord, error) {
	var rec types.PortfolioRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal record: %w", err)
	}
	return &rec, nil
}
