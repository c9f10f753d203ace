package nativewindow_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/bnema/nativewindow/internal/application/port"
	"github.com/bnema/nativewindow/internal/application/port/mocks"
	"github.com/bnema/nativewindow/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/nativewindow/internal/infrastructure/platform/headless"
	"github.com/bnema/nativewindow/internal/logging"
	"github.com/bnema/nativewindow/pkg/nativewindow"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext() context.Context {
	logger := logging.NewFromConfigValues("debug", "console")
	return logging.WithContext(context.Background(), logger)
}

// start initializes a runtime on the headless backend and returns the
// platform so tests can simulate user input.
func start(t *testing.T, opts ...nativewindow.Option) (*nativewindow.Runtime, *headless.Platform) {
	t.Helper()
	var p *headless.Platform
	factory := func(_ context.Context, sink port.EventSink) (port.Platform, error) {
		p = headless.New(sink)
		return p, nil
	}
	rt := nativewindow.New(append([]nativewindow.Option{nativewindow.WithPlatformFactory(factory)}, opts...)...)
	require.NoError(t, rt.Init(testContext()))
	t.Cleanup(func() { _ = rt.Shutdown(context.Background()) })
	return rt, p
}

func pump(t *testing.T, rt *nativewindow.Runtime) {
	t.Helper()
	require.NoError(t, rt.Pump(context.Background()))
}

func TestRuntime_NotInitialized(t *testing.T) {
	rt := nativewindow.New()

	_, err := rt.NewWindow(nativewindow.Options{})
	require.ErrorIs(t, err, nativewindow.ErrNotInitialized)
	require.ErrorIs(t, rt.Pump(context.Background()), nativewindow.ErrNotInitialized)
	require.ErrorIs(t, rt.UpdatePolicy(1, nil, nil), nativewindow.ErrNotInitialized)
	assert.Empty(t, rt.Windows())
	assert.Empty(t, rt.PlatformName())
	assert.NoError(t, rt.Shutdown(context.Background()))
}

func TestRuntime_UnknownBackend(t *testing.T) {
	rt := nativewindow.New(nativewindow.WithBackend("cocoa"))
	require.ErrorIs(t, rt.Init(testContext()), nativewindow.ErrUnknownBackend)
}

func TestRuntime_DefaultBackendIsHeadless(t *testing.T) {
	rt := nativewindow.New(nativewindow.WithScriptTimeout(time.Second))
	require.NoError(t, rt.Init(testContext()))
	t.Cleanup(func() { _ = rt.Shutdown(context.Background()) })

	assert.Equal(t, nativewindow.BackendHeadless, rt.PlatformName())
}

func TestRuntime_WindowLifecycle(t *testing.T) {
	rt, p := start(t)

	w, err := rt.NewWindow(nativewindow.Options{Title: "main"})
	require.NoError(t, err)
	assert.Equal(t, []nativewindow.ID{w.ID()}, rt.Windows())

	closed := false
	require.NoError(t, w.OnClose(func() { closed = true }))
	pump(t, rt)

	state, ok := p.Snapshot(w.ID())
	require.True(t, ok)
	assert.Equal(t, "main", state.WindowTitle)

	require.NoError(t, w.Close())
	pump(t, rt)
	assert.True(t, closed)
	assert.Empty(t, rt.Windows())

	_, ok = p.Snapshot(w.ID())
	assert.False(t, ok)
}

func TestRuntime_RunStopsWithContext(t *testing.T) {
	rt, _ := start(t)

	w, err := rt.NewWindow(nativewindow.Options{})
	require.NoError(t, err)
	loaded := make(chan struct{})
	require.NoError(t, w.OnTitleChanged(func(s string) {
		if s == "Ticked" {
			close(loaded)
		}
	}))
	require.NoError(t, w.LoadHTML("<title>Ticked</title>"))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	errc := make(chan error, 1)
	go func() { errc <- rt.Run(ctx, time.Millisecond) }()

	select {
	case <-loaded:
	case <-ctx.Done():
		t.Fatal("title never delivered")
	}
	cancel()
	assert.ErrorIs(t, <-errc, context.Canceled)
}

func TestRuntime_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	rt, _ := start(t, nativewindow.WithMetrics(reg))

	_, err := rt.NewWindow(nativewindow.Options{})
	require.NoError(t, err)
	pump(t, rt)

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, mf := range families {
		names = append(names, mf.GetName())
	}
	assert.Contains(t, names, "nativewindow_commands_queued_total")
	assert.Contains(t, names, "nativewindow_windows_live")
}

func TestRuntime_PersistsGeometry(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "state.sqlite")
	db := sqlite.NewLazyDB(dbPath)
	t.Cleanup(func() { _ = db.Close() })
	store := sqlite.NewLazyWindowStateRepository(db)

	// A long delay leaves the save to the flush on Shutdown.
	rt, p := start(t, nativewindow.WithWindowStore(store), nativewindow.WithSaveDelay(time.Hour))
	w, err := rt.NewWindow(nativewindow.Options{StateKey: "main"})
	require.NoError(t, err)

	var sizes []float64
	require.NoError(t, w.OnResize(func(width, _ float64) { sizes = append(sizes, width) }))
	pump(t, rt)

	p.UserResize(w.ID(), 1000, 700)
	p.UserMove(w.ID(), 30, 40)
	pump(t, rt)
	assert.Equal(t, []float64{800, 1000}, sizes, "host handler still runs")
	require.NoError(t, rt.Shutdown(context.Background()))

	rt2, p2 := start(t, nativewindow.WithWindowStore(store))
	w2, err := rt2.NewWindow(nativewindow.Options{StateKey: "main"})
	require.NoError(t, err)
	pump(t, rt2)

	state, ok := p2.Snapshot(w2.ID())
	require.True(t, ok)
	assert.Equal(t, 1000.0, state.Width)
	assert.Equal(t, 700.0, state.Height)
	assert.Equal(t, 30.0, state.X)
	assert.Equal(t, 40.0, state.Y)
}

func TestRuntime_GeometrySaveFailureNamesWindow(t *testing.T) {
	store := mocks.NewMockWindowStateRepository(t)
	store.EXPECT().Get(mock.Anything, "main").Return(nil, nil)
	store.EXPECT().Save(mock.Anything, mock.Anything).Return(errors.New("disk full"))

	var buf bytes.Buffer
	rt, p := start(t,
		nativewindow.WithLogger(zerolog.New(&buf)),
		nativewindow.WithWindowStore(store),
		nativewindow.WithSaveDelay(time.Hour),
	)
	w, err := rt.NewWindow(nativewindow.Options{StateKey: "main"})
	require.NoError(t, err)
	pump(t, rt)

	p.UserResize(w.ID(), 900, 600)
	pump(t, rt)
	require.NoError(t, rt.Shutdown(context.Background()))

	assert.Contains(t, buf.String(), "failed to save window geometry")
	assert.Contains(t, buf.String(), fmt.Sprintf(`"window_id":%d`, w.ID()))
}

func TestRuntime_PolicyUpdate(t *testing.T) {
	rt, p := start(t)

	w, err := rt.NewWindow(nativewindow.Options{TrustedOrigins: []string{"https://app.example"}})
	require.NoError(t, err)
	var got []string
	require.NoError(t, w.OnMessage(func(text, _ string) { got = append(got, text) }))
	require.NoError(t, w.LoadHTML(`<p>local</p>`))
	pump(t, rt)

	p.RunPageScript(w.ID(), `window.ipc.postMessage('first')`)
	pump(t, rt)
	assert.Empty(t, got, "internal origin is not in the trusted set")

	require.NoError(t, rt.UpdatePolicy(w.ID(), nil, nil))
	p.RunPageScript(w.ID(), `window.ipc.postMessage('second')`)
	pump(t, rt)
	assert.Equal(t, []string{"second"}, got)
}

func TestCheckRuntime(t *testing.T) {
	status, err := nativewindow.CheckRuntime(testContext(), "", "")
	require.NoError(t, err)
	assert.Equal(t, nativewindow.BackendHeadless, status.Platform)
	assert.True(t, status.Available)

	_, err = nativewindow.CheckRuntime(testContext(), "cocoa", "")
	assert.ErrorIs(t, err, nativewindow.ErrUnknownBackend)
}

func decodeCookies(t *testing.T, raw string) []nativewindow.Cookie {
	t.Helper()
	var cookies []nativewindow.Cookie
	require.NoError(t, json.Unmarshal([]byte(raw), &cookies))
	return cookies
}
