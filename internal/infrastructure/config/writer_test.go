package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/bnema/nativewindow/internal/domain/window"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteConfig_LoadsBack(t *testing.T) {
	root := isolateXDG(t)
	path := filepath.Join(root, "nested", "config.toml")

	cfg := DefaultConfig()
	cfg.Metrics.Listen = "127.0.0.1:9464"
	cfg.Windows = []WindowProfile{{
		Name: "main",
		URL:  "https://example.com",
		Options: window.Options{
			Title:          "Main",
			Width:          window.Float(640),
			Visible:        window.Bool(false),
			TrustedOrigins: []string{"https://example.com"},
		},
	}}
	require.NoError(t, WriteConfig(cfg, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[[windows]]")
	assert.NotContains(t, string(data), "max_width", "unset optional fields are omitted")

	mgr, err := NewManager(WithConfigFile(path))
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	main, ok := mgr.Get().Profile("main")
	require.True(t, ok)
	assert.Equal(t, "Main", main.Title)
	require.NotNil(t, main.Width)
	assert.InDelta(t, 640, *main.Width, 0)
	assert.False(t, main.IsVisible())
	assert.Nil(t, main.Height)
}

func TestWriteConfig_Nil(t *testing.T) {
	assert.Error(t, WriteConfig(nil, filepath.Join(t.TempDir(), "config.toml")))
}

func TestSchema(t *testing.T) {
	data, err := SchemaJSON()
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, schemaID, doc["$id"])

	for _, key := range []string{"interval_ms", "queue_capacity", "trusted_origins", "allowed_hosts", "script_timeout_ms", "state_key"} {
		assert.Contains(t, string(data), `"`+key+`"`)
	}
	assert.Contains(t, string(data), `"gtk"`)
}

func TestWriteSchemaFile(t *testing.T) {
	dir := t.TempDir()

	path, err := WriteSchemaFile(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, schemaName), path)
	assert.FileExists(t, path)
}
