package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bnema/nativewindow/internal/application/port"
	"github.com/bnema/nativewindow/internal/logging"
)

const (
	getWindowStateSQL = `SELECT state_key, width, height, x, y, updated_at
FROM window_state WHERE state_key = ?`

	listWindowStateSQL = `SELECT state_key, width, height, x, y, updated_at
FROM window_state ORDER BY updated_at DESC, state_key`

	saveWindowStateSQL = `INSERT INTO window_state (state_key, width, height, x, y, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(state_key) DO UPDATE SET
    width = excluded.width,
    height = excluded.height,
    x = excluded.x,
    y = excluded.y,
    updated_at = excluded.updated_at`

	deleteWindowStateSQL = `DELETE FROM window_state WHERE state_key = ?`
)

type windowStateRepo struct {
	db  *sql.DB
	now func() time.Time
}

// NewWindowStateRepository creates a new SQLite-backed window state repository.
func NewWindowStateRepository(db *sql.DB) port.WindowStateRepository {
	return &windowStateRepo{db: db, now: time.Now}
}

func (r *windowStateRepo) Get(ctx context.Context, key string) (*port.WindowGeometry, error) {
	log := logging.FromContext(ctx)
	log.Debug().Str("state_key", key).Msg("getting window state")

	g, err := scanGeometry(r.db.QueryRowContext(ctx, getWindowStateSQL, key))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get window state %q: %w", key, err)
	}
	return g, nil
}

func (r *windowStateRepo) Save(ctx context.Context, g *port.WindowGeometry) error {
	if g == nil || g.Key == "" {
		return fmt.Errorf("window state key cannot be empty")
	}
	log := logging.FromContext(ctx)
	log.Debug().
		Str("state_key", g.Key).
		Float64("width", g.Width).
		Float64("height", g.Height).
		Msg("saving window state")

	updatedAt := g.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = r.now()
	}
	_, err := r.db.ExecContext(ctx, saveWindowStateSQL,
		g.Key, g.Width, g.Height, nullFloat(g.X), nullFloat(g.Y), updatedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("save window state %q: %w", g.Key, err)
	}
	return nil
}

func (r *windowStateRepo) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, deleteWindowStateSQL, key); err != nil {
		return fmt.Errorf("delete window state %q: %w", key, err)
	}
	return nil
}

func (r *windowStateRepo) List(ctx context.Context) ([]*port.WindowGeometry, error) {
	rows, err := r.db.QueryContext(ctx, listWindowStateSQL)
	if err != nil {
		return nil, fmt.Errorf("list window state: %w", err)
	}
	defer rows.Close()

	var states []*port.WindowGeometry
	for rows.Next() {
		g, err := scanGeometry(rows)
		if err != nil {
			return nil, fmt.Errorf("list window state: %w", err)
		}
		states = append(states, g)
	}
	return states, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGeometry(row rowScanner) (*port.WindowGeometry, error) {
	var (
		g         port.WindowGeometry
		x, y      sql.NullFloat64
		updatedAt int64
	)
	if err := row.Scan(&g.Key, &g.Width, &g.Height, &x, &y, &updatedAt); err != nil {
		return nil, err
	}
	if x.Valid {
		g.X = &x.Float64
	}
	if y.Valid {
		g.Y = &y.Float64
	}
	g.UpdatedAt = time.UnixMilli(updatedAt)
	return &g, nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

// LazyWindowStateRepository opens the database on first use.
type LazyWindowStateRepository struct {
	provider port.DatabaseProvider
	repo     port.WindowStateRepository
	once     sync.Once
	initErr  error
}

// NewLazyWindowStateRepository creates a lazy-loading window state repository.
func NewLazyWindowStateRepository(provider port.DatabaseProvider) port.WindowStateRepository {
	return &LazyWindowStateRepository{provider: provider}
}

func (r *LazyWindowStateRepository) init(ctx context.Context) error {
	r.once.Do(func() {
		db, err := r.provider.DB(ctx)
		if err != nil {
			r.initErr = err
			return
		}
		r.repo = NewWindowStateRepository(db)
	})
	return r.initErr
}

func (r *LazyWindowStateRepository) Get(ctx context.Context, key string) (*port.WindowGeometry, error) {
	if err := r.init(ctx); err != nil {
		return nil, err
	}
	return r.repo.Get(ctx, key)
}

func (r *LazyWindowStateRepository) Save(ctx context.Context, g *port.WindowGeometry) error {
	if err := r.init(ctx); err != nil {
		return err
	}
	return r.repo.Save(ctx, g)
}

func (r *LazyWindowStateRepository) Delete(ctx context.Context, key string) error {
	if err := r.init(ctx); err != nil {
		return err
	}
	return r.repo.Delete(ctx, key)
}

func (r *LazyWindowStateRepository) List(ctx context.Context) ([]*port.WindowGeometry, error) {
	if err := r.init(ctx); err != nil {
		return nil, err
	}
	return r.repo.List(ctx)
}
