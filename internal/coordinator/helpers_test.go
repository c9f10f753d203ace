package coordinator_test

import (
	"bytes"
	"context"
	"sync"
	"testing"

	"github.com/bnema/nativewindow/internal/application/port"
	"github.com/bnema/nativewindow/internal/coordinator"
	"github.com/bnema/nativewindow/internal/domain/window"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// scriptedPlatform runs test hooks in place of native calls.
type scriptedPlatform struct {
	mu        sync.Mutex
	sink      port.EventSink
	processed []window.Command
	pumps     int
	closed    bool

	onCommand func(ctx context.Context, cmd window.Command, table window.Table) error
	onPump    func(table window.Table)
}

func (p *scriptedPlatform) Name() string { return "scripted" }

func (p *scriptedPlatform) ProcessCommand(ctx context.Context, cmd window.Command, table window.Table) error {
	p.mu.Lock()
	p.processed = append(p.processed, cmd)
	hook := p.onCommand
	p.mu.Unlock()
	if hook != nil {
		return hook(ctx, cmd, table)
	}
	return nil
}

func (p *scriptedPlatform) PumpEvents(_ context.Context, table window.Table) {
	p.mu.Lock()
	p.pumps++
	hook := p.onPump
	p.mu.Unlock()
	if hook != nil {
		hook(table)
	}
}

func (p *scriptedPlatform) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

func (p *scriptedPlatform) commands() []window.Command {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]window.Command(nil), p.processed...)
}

func newTestCoordinator(t *testing.T, opts ...coordinator.Option) (*coordinator.Coordinator, *scriptedPlatform, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	platform := &scriptedPlatform{}
	factory := func(_ context.Context, sink port.EventSink) (port.Platform, error) {
		platform.sink = sink
		return platform, nil
	}
	opts = append([]coordinator.Option{coordinator.WithLogger(zerolog.New(&logs))}, opts...)
	c := coordinator.New(factory, opts...)
	require.NoError(t, c.Init(context.Background()))
	return c, platform, &logs
}

func mustCreate(t *testing.T, c *coordinator.Coordinator, opts window.Options) window.ID {
	t.Helper()
	id, err := c.CreateWindow(opts)
	require.NoError(t, err)
	return id
}
