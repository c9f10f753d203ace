package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/nativewindow/internal/infrastructure/config"
)

const closingPage = `<html><head><title>Bye</title></head><body><script>window.close()</script></body></html>`

func newTestApp(t *testing.T, windows string) *App {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	data := fmt.Sprintf(`[logging]
level = "disabled"

[pump]
interval_ms = 2

[database]
path = %q

[platform]
backend = "headless"
%s`, filepath.Join(dir, "state.sqlite"), windows)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	manager, err := config.NewManager(config.WithConfigFile(path))
	require.NoError(t, err)
	require.NoError(t, manager.Load())

	app, err := NewApp(manager)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	return app
}

func TestNewApp_NilManager(t *testing.T) {
	_, err := NewApp(nil)
	assert.Error(t, err)
}

func TestHost_NothingToOpen(t *testing.T) {
	app := newTestApp(t, "")

	err := app.Host(context.Background(), HostOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no window to open")
}

func TestHost_UnknownProfile(t *testing.T) {
	app := newTestApp(t, "")

	err := app.Host(context.Background(), HostOptions{Profiles: []string{"missing"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown window profile "missing"`)
}

func TestHost_StopsWhenLastWindowCloses(t *testing.T) {
	app := newTestApp(t, fmt.Sprintf(`
[[windows]]
name = "main"
html = %q
state_key = "main"
width = 640.0
height = 480.0
`, closingPage))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	reg := prometheus.NewRegistry()
	require.NoError(t, app.Host(ctx, HostOptions{Registry: reg}))
	assert.NoError(t, ctx.Err(), "host returned before the deadline")

	// geometry reported at creation is flushed on shutdown
	state, err := app.WindowStates.Get(app.Ctx(), "main")
	require.NoError(t, err)
	require.NotNil(t, state)
	assert.InDelta(t, 640, state.Width, 0)
	assert.InDelta(t, 480, state.Height, 0)

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestHost_CancelIsCleanStop(t *testing.T) {
	app := newTestApp(t, `
[[windows]]
name = "main"
html = "<html><head><title>Stay</title></head></html>"
`)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	assert.NoError(t, app.Host(ctx, HostOptions{}))
}

func TestHost_ProfileFilter(t *testing.T) {
	app := newTestApp(t, fmt.Sprintf(`
[[windows]]
name = "closing"
html = %q

[[windows]]
name = "staying"
html = "<html></html>"
`, closingPage))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// only the self-closing window is opened so the host stops on its own
	require.NoError(t, app.Host(ctx, HostOptions{Profiles: []string{"closing"}}))
	assert.NoError(t, ctx.Err())
}
