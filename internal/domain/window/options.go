package window

import "github.com/bnema/nativewindow/internal/domain/security"

const (
	DefaultWidth  = 800
	DefaultHeight = 600
)

// Options configures a window at creation. Nil pointer fields take their
// documented default.
type Options struct {
	Title string `json:"title,omitempty" mapstructure:"title" toml:"title,omitempty"`
	// Width defaults to 800.
	Width *float64 `json:"width,omitempty" mapstructure:"width" toml:"width,omitempty"`
	// Height defaults to 600.
	Height    *float64 `json:"height,omitempty" mapstructure:"height" toml:"height,omitempty"`
	X         *float64 `json:"x,omitempty" mapstructure:"x" toml:"x,omitempty"`
	Y         *float64 `json:"y,omitempty" mapstructure:"y" toml:"y,omitempty"`
	MinWidth  *float64 `json:"min_width,omitempty" mapstructure:"min_width" toml:"min_width,omitempty"`
	MinHeight *float64 `json:"min_height,omitempty" mapstructure:"min_height" toml:"min_height,omitempty"`
	MaxWidth  *float64 `json:"max_width,omitempty" mapstructure:"max_width" toml:"max_width,omitempty"`
	MaxHeight *float64 `json:"max_height,omitempty" mapstructure:"max_height" toml:"max_height,omitempty"`
	// Resizable defaults to true.
	Resizable *bool `json:"resizable,omitempty" mapstructure:"resizable" toml:"resizable,omitempty"`
	// Decorations defaults to true.
	Decorations *bool `json:"decorations,omitempty" mapstructure:"decorations" toml:"decorations,omitempty"`
	Transparent bool  `json:"transparent,omitempty" mapstructure:"transparent" toml:"transparent,omitempty"`
	AlwaysOnTop bool  `json:"always_on_top,omitempty" mapstructure:"always_on_top" toml:"always_on_top,omitempty"`
	// Visible defaults to true.
	Visible  *bool  `json:"visible,omitempty" mapstructure:"visible" toml:"visible,omitempty"`
	DevTools bool   `json:"devtools,omitempty" mapstructure:"devtools" toml:"devtools,omitempty"`
	IconPath string `json:"icon,omitempty" mapstructure:"icon" toml:"icon,omitempty"`

	// CSP is injected as a meta tag before any page script runs.
	CSP            string   `json:"csp,omitempty" mapstructure:"csp" toml:"csp,omitempty"`
	TrustedOrigins []string `json:"trusted_origins,omitempty" mapstructure:"trusted_origins" toml:"trusted_origins,omitempty"`
	AllowedHosts   []string `json:"allowed_hosts,omitempty" mapstructure:"allowed_hosts" toml:"allowed_hosts,omitempty"`

	AllowCamera      bool `json:"allow_camera,omitempty" mapstructure:"allow_camera" toml:"allow_camera,omitempty"`
	AllowMicrophone  bool `json:"allow_microphone,omitempty" mapstructure:"allow_microphone" toml:"allow_microphone,omitempty"`
	AllowFileSystem  bool `json:"allow_file_system,omitempty" mapstructure:"allow_file_system" toml:"allow_file_system,omitempty"`
	AllowGeolocation bool `json:"allow_geolocation,omitempty" mapstructure:"allow_geolocation" toml:"allow_geolocation,omitempty"`

	// StateKey, when set, restores and persists the window geometry under
	// this key.
	StateKey string `json:"state_key,omitempty" mapstructure:"state_key" toml:"state_key,omitempty"`
}

// Size returns the initial inner size.
func (o Options) Size() (width, height float64) {
	return floatOr(o.Width, DefaultWidth), floatOr(o.Height, DefaultHeight)
}

// Position returns the initial position and whether one was requested.
func (o Options) Position() (x, y float64, ok bool) {
	if o.X == nil || o.Y == nil {
		return 0, 0, false
	}
	return *o.X, *o.Y, true
}

func (o Options) IsResizable() bool    { return boolOr(o.Resizable, true) }
func (o Options) HasDecorations() bool { return boolOr(o.Decorations, true) }
func (o Options) IsVisible() bool      { return boolOr(o.Visible, true) }

// Permissions returns the device access flags for the security policy.
func (o Options) Permissions() security.Permissions {
	return security.Permissions{
		Camera:      o.AllowCamera,
		Microphone:  o.AllowMicrophone,
		FileSystem:  o.AllowFileSystem,
		Geolocation: o.AllowGeolocation,
	}
}

func floatOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

// Float returns a pointer to v, for populating optional fields.
func Float(v float64) *float64 { return &v }

// Bool returns a pointer to v, for populating optional fields.
func Bool(v bool) *bool { return &v }
