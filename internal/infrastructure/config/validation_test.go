package config

import (
	"testing"

	"github.com/bnema/nativewindow/internal/domain/window"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr []string
	}{
		{
			name:   "defaults are valid",
			mutate: func(*Config) {},
		},
		{
			name:    "unknown log format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: []string{"logging.format must be one of: console, json"},
		},
		{
			name: "non-positive capacities",
			mutate: func(c *Config) {
				c.Pump.QueueCapacity = 0
				c.Pump.BufferCapacity = -1
				c.Pump.WindowMessageLimit = 0
			},
			wantErr: []string{
				"pump.queue_capacity must be at least 1",
				"pump.buffer_capacity must be at least 1",
				"pump.window_message_limit must be at least 1",
			},
		},
		{
			name:    "metrics address without port",
			mutate:  func(c *Config) { c.Metrics.Listen = "localhost" },
			wantErr: []string{"metrics.listen must be host:port"},
		},
		{
			name:   "metrics address with port only",
			mutate: func(c *Config) { c.Metrics.Listen = ":9464" },
		},
		{
			name:    "script timeout",
			mutate:  func(c *Config) { c.Platform.ScriptTimeoutMilliseconds = 0 },
			wantErr: []string{"platform.script_timeout_ms must be at least 1"},
		},
		{
			name: "unnamed and duplicate profiles",
			mutate: func(c *Config) {
				c.Windows = []WindowProfile{{}, {Name: "main"}, {Name: "main"}}
			},
			wantErr: []string{"windows[0].name cannot be empty", "windows.main is defined more than once"},
		},
		{
			name: "url and html together",
			mutate: func(c *Config) {
				c.Windows = []WindowProfile{{Name: "main", URL: "https://example.com", HTML: "<p>hi</p>"}}
			},
			wantErr: []string{"windows.main: url and html are mutually exclusive"},
		},
		{
			name: "dangerous initial url",
			mutate: func(c *Config) {
				c.Windows = []WindowProfile{{Name: "main", URL: "file:///etc/passwd"}}
			},
			wantErr: []string{"windows.main.url must use http or https"},
		},
		{
			name: "geometry",
			mutate: func(c *Config) {
				c.Windows = []WindowProfile{{Name: "main", Options: window.Options{
					Width:    window.Float(0),
					MinWidth: window.Float(500),
					MaxWidth: window.Float(400),
					X:        window.Float(10),
				}}}
			},
			wantErr: []string{
				"windows.main.width must be positive",
				"windows.main.min_width cannot exceed max_width",
				"windows.main: x and y must be set together",
			},
		},
		{
			name: "policy lists",
			mutate: func(c *Config) {
				c.Windows = []WindowProfile{{Name: "main", Options: window.Options{
					TrustedOrigins: []string{"https://example.com", "not a url"},
					AllowedHosts:   []string{"example.com", " "},
				}}}
			},
			wantErr: []string{
				`windows.main.trusted_origins: "not a url" is not a valid origin`,
				"windows.main.allowed_hosts cannot contain empty patterns",
			},
		},
		{
			name: "valid profile",
			mutate: func(c *Config) {
				c.Windows = []WindowProfile{{Name: "main", URL: "https://example.com", Options: window.Options{
					Width:          window.Float(1024),
					MinWidth:       window.Float(320),
					MaxWidth:       window.Float(1920),
					X:              window.Float(0),
					Y:              window.Float(0),
					TrustedOrigins: []string{"https://example.com"},
					AllowedHosts:   []string{"*.example.com"},
				}}}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			if len(tt.wantErr) == 0 {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			for _, want := range tt.wantErr {
				assert.Contains(t, err.Error(), want)
			}
		})
	}
}

func TestValidate_NilConfig(t *testing.T) {
	assert.Error(t, Validate(nil))
}
