package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const policyConfig = `
[[windows]]
name = "main"
trusted_origins = ["https://a.example"]
`

func TestManager_ReloadNotifiesCallbacks(t *testing.T) {
	mgr, path := loadFile(t, policyConfig)

	var got []*Config
	mgr.OnConfigChange(func(cfg *Config) { got = append(got, cfg) })

	writeFile(t, path, `
[[windows]]
name = "main"
trusted_origins = ["https://b.example"]
allowed_hosts = ["b.example"]
`)
	require.NoError(t, mgr.Reload())

	require.Len(t, got, 1)
	main, ok := got[0].Profile("main")
	require.True(t, ok)
	assert.Equal(t, []string{"https://b.example"}, main.TrustedOrigins)
	assert.Equal(t, []string{"b.example"}, main.AllowedHosts)

	current, _ := mgr.Get().Profile("main")
	assert.Equal(t, []string{"https://b.example"}, current.TrustedOrigins)
}

func TestManager_ReloadKeepsPreviousOnInvalidFile(t *testing.T) {
	mgr, path := loadFile(t, policyConfig)

	called := false
	mgr.OnConfigChange(func(*Config) { called = true })

	writeFile(t, path, `
[pump]
interval_ms = -5
`)
	err := mgr.Reload()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pump.interval_ms must be at least 1")
	assert.False(t, called)

	main, ok := mgr.Get().Profile("main")
	require.True(t, ok)
	assert.Equal(t, []string{"https://a.example"}, main.TrustedOrigins)
}

func TestManager_WatchRequiresLoad(t *testing.T) {
	isolateXDG(t)
	mgr, err := NewManager()
	require.NoError(t, err)

	assert.Error(t, mgr.Watch())
}

func TestManager_WatchIsIdempotent(t *testing.T) {
	mgr, _ := loadFile(t, policyConfig)

	require.NoError(t, mgr.Watch())
	require.NoError(t, mgr.Watch())
	assert.True(t, mgr.watching)
}
