// Package storage opens the record store selected by configuration.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"countries/internal/country/models"
	"countries/internal/country/store"
	"countries/internal/platform/config"
)

// Store is the full record store surface: reads and updates for the API,
// Insert for seeding, Ping for health checks.
type Store interface {
	FindAll(ctx context.Context) ([]*models.Country, error)
	SearchByPrefix(ctx context.Context, query string, limit int) ([]*models.Country, error)
	FindByName(ctx context.Context, name string) (*models.Country, error)
	UpdateFields(ctx context.Context, name string, update models.CountryUpdate) (*models.Country, error)
	Insert(ctx context.Context, country *models.Country) error
	Ping(ctx context.Context) error
}

// Handle owns an open store and its connection.
type Handle struct {
	Store   Store
	Backend string
	closeFn func(ctx context.Context) error
}

// Close releases the underlying connection.
func (h *Handle) Close(ctx context.Context) error {
	if h == nil || h.closeFn == nil {
		return nil
	}
	return h.closeFn(ctx)
}

// Open connects to the backend named by cfg.URL, prepares its indexes or
// schema, and verifies it answers within cfg.ConnectTimeout.
func Open(ctx context.Context, cfg config.Store, logger *slog.Logger) (*Handle, error) {
	if logger == nil {
		logger = slog.Default()
	}
	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	backend := cfg.Backend()
	var (
		h   *Handle
		err error
	)
	switch backend {
	case "mongodb":
		h, err = openMongo(ctx, cfg, timeout)
	case "postgres":
		h, err = openPostgres(ctx, cfg, timeout)
	default:
		h = &Handle{Store: store.NewInMemory()}
	}
	if err != nil {
		return nil, err
	}
	h.Backend = backend
	logger.Info("record store ready", "backend", backend)
	return h, nil
}

func openMongo(ctx context.Context, cfg config.Store, timeout time.Duration) (*Handle, error) {
	opts := options.Client().
		ApplyURI(cfg.URL).
		SetServerSelectionTimeout(timeout).
		SetConnectTimeout(timeout)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	s := store.NewMongo(client.Database(cfg.Database), cfg.Collection)
	if err := s.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ensure mongodb indexes: %w", err)
	}
	return &Handle{Store: s, closeFn: client.Disconnect}, nil
}

func openPostgres(ctx context.Context, cfg config.Store, timeout time.Duration) (*Handle, error) {
	db, err := sql.Open("postgres", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	s := store.NewPostgres(db)
	if err := s.Ping(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres within %s: %w", timeout, err)
	}
	if err := s.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate postgres: %w", err)
	}
	return &Handle{Store: s, closeFn: func(context.Context) error { return db.Close() }}, nil
}
