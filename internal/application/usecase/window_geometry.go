package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bnema/nativewindow/internal/application/port"
	"github.com/bnema/nativewindow/internal/domain/window"
	"github.com/bnema/nativewindow/internal/logging"
)

// Debouncer merges bursts of work posted under the same key.
type Debouncer interface {
	Post(key string, fn func())
	Flush()
}

// WindowGeometryUseCase restores window geometry at creation and persists
// resize and move events, keeping only the latest value per burst.
type WindowGeometryUseCase struct {
	repo      port.WindowStateRepository
	debouncer Debouncer
	now       func() time.Time

	mu     sync.Mutex
	states map[string]*port.WindowGeometry
}

// NewWindowGeometryUseCase creates a geometry tracker backed by repo.
func NewWindowGeometryUseCase(repo port.WindowStateRepository, debouncer Debouncer) *WindowGeometryUseCase {
	return &WindowGeometryUseCase{
		repo:      repo,
		debouncer: debouncer,
		now:       time.Now,
		states:    make(map[string]*port.WindowGeometry),
	}
}

// Restore fills the size and position of opts from the geometry stored under
// opts.StateKey. Options without a state key are returned unchanged.
func (uc *WindowGeometryUseCase) Restore(ctx context.Context, opts window.Options) (window.Options, error) {
	key := opts.StateKey
	if key == "" {
		return opts, nil
	}
	log := logging.FromContext(ctx)

	stored, err := uc.repo.Get(ctx, key)
	if err != nil {
		return opts, fmt.Errorf("failed to load window state %q: %w", key, err)
	}

	width, height := opts.Size()
	current := &port.WindowGeometry{Key: key, Width: width, Height: height, X: opts.X, Y: opts.Y}
	if stored != nil {
		if stored.Width > 0 && stored.Height > 0 {
			opts.Width = window.Float(stored.Width)
			opts.Height = window.Float(stored.Height)
			current.Width, current.Height = stored.Width, stored.Height
		}
		if stored.X != nil && stored.Y != nil {
			opts.X = window.Float(*stored.X)
			opts.Y = window.Float(*stored.Y)
			current.X, current.Y = opts.X, opts.Y
		}
		log.Debug().
			Str("state_key", key).
			Float64("width", current.Width).
			Float64("height", current.Height).
			Msg("window geometry restored")
	}

	uc.mu.Lock()
	uc.states[key] = current
	uc.mu.Unlock()
	return opts, nil
}

// Resized records a new size for key and schedules a save.
func (uc *WindowGeometryUseCase) Resized(ctx context.Context, key string, width, height float64) {
	if key == "" || width <= 0 || height <= 0 {
		return
	}
	uc.mu.Lock()
	state := uc.stateLocked(key)
	state.Width, state.Height = width, height
	uc.mu.Unlock()

	uc.debouncer.Post(key, func() { uc.persist(ctx, key) })
}

// Moved records a new position for key and schedules a save.
func (uc *WindowGeometryUseCase) Moved(ctx context.Context, key string, x, y float64) {
	if key == "" {
		return
	}
	uc.mu.Lock()
	state := uc.stateLocked(key)
	state.X, state.Y = window.Float(x), window.Float(y)
	uc.mu.Unlock()

	uc.debouncer.Post(key, func() { uc.persist(ctx, key) })
}

// Flush writes every pending save now.
func (uc *WindowGeometryUseCase) Flush() {
	uc.debouncer.Flush()
}

func (uc *WindowGeometryUseCase) stateLocked(key string) *port.WindowGeometry {
	state, ok := uc.states[key]
	if !ok {
		state = &port.WindowGeometry{Key: key, Width: window.DefaultWidth, Height: window.DefaultHeight}
		uc.states[key] = state
	}
	return state
}

func (uc *WindowGeometryUseCase) persist(ctx context.Context, key string) {
	uc.mu.Lock()
	state, ok := uc.states[key]
	if !ok {
		uc.mu.Unlock()
		return
	}
	snapshot := *state
	uc.mu.Unlock()

	snapshot.UpdatedAt = uc.now()
	if err := uc.repo.Save(ctx, &snapshot); err != nil {
		logging.FromContext(ctx).Warn().Err(err).Str("state_key", key).Msg("failed to save window geometry")
	}
}
