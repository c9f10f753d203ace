package port

import (
	"context"
	"time"
)

// WindowGeometry is the persisted size and position of a window.
type WindowGeometry struct {
	Key       string
	Width     float64
	Height    float64
	X         *float64
	Y         *float64
	UpdatedAt time.Time
}

// WindowStateRepository persists window geometry between runs.
type WindowStateRepository interface {
	// Get returns nil, nil when no geometry is stored for key.
	Get(ctx context.Context, key string) (*WindowGeometry, error)
	Save(ctx context.Context, geometry *WindowGeometry) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) ([]*WindowGeometry, error)
}
