package security

import (
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// Permissions are the per-window device and file access flags. All default
// to deny.
type Permissions struct {
	Camera      bool
	Microphone  bool
	FileSystem  bool
	Geolocation bool
}

// PermissionKind identifies a capability requested by page content.
type PermissionKind int

const (
	PermissionCamera PermissionKind = iota
	PermissionMicrophone
	PermissionFileSystem
	PermissionGeolocation
)

func (k PermissionKind) String() string {
	switch k {
	case PermissionCamera:
		return "camera"
	case PermissionMicrophone:
		return "microphone"
	case PermissionFileSystem:
		return "filesystem"
	case PermissionGeolocation:
		return "geolocation"
	default:
		return "unknown"
	}
}

// NavigationDecision is the outcome of a navigation-start check.
type NavigationDecision int

const (
	// NavigationAllow lets the navigation proceed.
	NavigationAllow NavigationDecision = iota
	// NavigationBlock cancels the navigation without notifying the host.
	NavigationBlock
	// NavigationBlockAndNotify cancels the navigation and raises a
	// navigation-blocked event.
	NavigationBlockAndNotify
)

func (d NavigationDecision) String() string {
	switch d {
	case NavigationAllow:
		return "allow"
	case NavigationBlock:
		return "block"
	case NavigationBlockAndNotify:
		return "block-notify"
	default:
		return "unknown"
	}
}

// Policy is the security state of one window. Its trusted origins and allowed
// hosts may be replaced while the window is live.
type Policy struct {
	mu sync.Mutex

	windowID uint32
	logger   zerolog.Logger

	// restricted is true when trusted origins were configured, even if
	// none of them survived normalization.
	restricted bool
	trusted    map[string]struct{}
	hosts      []string
	perms      Permissions

	warnedPermissive bool
	internalNav      bool
}

// NewPolicy builds the policy for a window. Trusted origins are normalized with
// ExtractOrigin; entries that do not yield an origin are dropped with a warning.
func NewPolicy(windowID uint32, trustedOrigins, allowedHosts []string, perms Permissions, logger zerolog.Logger) *Policy {
	p := &Policy{
		windowID: windowID,
		logger:   logger.With().Str("component", "security-policy").Uint32("window_id", windowID).Logger(),
		perms:    perms,
	}
	p.setTrustedOrigins(trustedOrigins)
	p.hosts = normalizeHostPatterns(allowedHosts)
	return p
}

// WindowID returns the id of the window this policy belongs to.
func (p *Policy) WindowID() uint32 {
	return p.windowID
}

// Update replaces the trusted origins and allowed hosts.
func (p *Policy) Update(trustedOrigins, allowedHosts []string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.setTrustedOrigins(trustedOrigins)
	p.hosts = normalizeHostPatterns(allowedHosts)
	p.warnedPermissive = false
}

func (p *Policy) setTrustedOrigins(origins []string) {
	p.restricted = len(origins) > 0
	p.trusted = make(map[string]struct{}, len(origins))
	for _, o := range origins {
		norm, ok := ExtractOrigin(o)
		if !ok {
			p.logger.Warn().Str("origin", o).Msg("ignoring trusted origin without a tuple origin")
			continue
		}
		p.trusted[norm] = struct{}{}
	}
	if p.restricted && len(p.trusted) == 0 {
		p.logger.Warn().Msg("no configured trusted origin is valid, all messages will be rejected")
	}
}

func normalizeHostPatterns(hosts []string) []string {
	out := make([]string, 0, len(hosts))
	for _, h := range hosts {
		h = strings.ToLower(strings.TrimSpace(h))
		h = strings.TrimSuffix(strings.TrimPrefix(h, "["), "]")
		if h == "" {
			continue
		}
		prefix, name := "", h
		if rest, ok := strings.CutPrefix(h, "*."); ok {
			prefix, name = "*.", rest
		}
		if ascii, ok := normalizeHost(name); ok {
			name = ascii
		}
		out = append(out, prefix+name)
	}
	return out
}

// TrustedOrigins returns the normalized trusted origins.
func (p *Policy) TrustedOrigins() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.trusted))
	for o := range p.trusted {
		out = append(out, o)
	}
	return out
}

// IsTrusted reports whether a message from sourceURL may reach the host. With
// no trusted origins configured every well-formed URL is trusted and a warning
// is logged once per window. A URL with no tuple origin is never trusted while
// origins are configured.
func (p *Policy) IsTrusted(sourceURL string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.restricted {
		if !p.warnedPermissive {
			p.warnedPermissive = true
			p.logger.Warn().Msg("no trusted origins configured, accepting messages from any origin")
		}
		return isWellFormed(sourceURL)
	}

	origin, ok := ExtractOrigin(sourceURL)
	if !ok {
		return false
	}
	_, ok = p.trusted[origin]
	return ok
}

// IsAllowed reports whether the window may navigate to url. Internal URLs are
// always allowed. With no allowed hosts configured everything is allowed.
// Otherwise the URL's host must match an exact pattern or a "*.domain"
// pattern, which also matches the bare domain.
func (p *Policy) IsAllowed(url string) bool {
	if IsInternalURL(url) {
		return true
	}

	p.mu.Lock()
	hosts := p.hosts
	p.mu.Unlock()

	if len(hosts) == 0 {
		return true
	}

	host, ok := ExtractHost(url)
	if !ok {
		return false
	}
	for _, pattern := range hosts {
		if MatchHost(pattern, host) {
			return true
		}
	}
	return false
}

// MatchHost matches a lower-cased host against one allowed-host pattern.
func MatchHost(pattern, host string) bool {
	if suffix, ok := strings.CutPrefix(pattern, "*"); ok {
		if strings.HasSuffix(host, suffix) {
			return true
		}
		bare, ok := strings.CutPrefix(suffix, ".")
		return ok && host == bare
	}
	return host == pattern
}

// MarkInternalNavigation records that the next navigation start was issued by
// the coordinator rather than by page content.
func (p *Policy) MarkInternalNavigation() {
	p.mu.Lock()
	p.internalNav = true
	p.mu.Unlock()
}

// DecideNavigation classifies a navigation at its start and consumes the
// internal-navigation marker. A dangerous scheme reached from page content is
// cancelled silently, whatever the allowed hosts; a disallowed host is
// reported to the host.
func (p *Policy) DecideNavigation(url string) NavigationDecision {
	p.mu.Lock()
	internal := p.internalNav
	p.internalNav = false
	p.mu.Unlock()

	if !internal && IsDangerousScheme(url) {
		p.logger.Debug().Str("url", url).Msg("navigation to dangerous scheme cancelled")
		return NavigationBlock
	}
	if !p.IsAllowed(url) {
		p.logger.Debug().Str("url", url).Msg("navigation blocked by allowed hosts")
		return NavigationBlockAndNotify
	}
	return NavigationAllow
}

// Allows reports whether page content may use the given capability.
func (p *Policy) Allows(kind PermissionKind) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch kind {
	case PermissionCamera:
		return p.perms.Camera
	case PermissionMicrophone:
		return p.perms.Microphone
	case PermissionFileSystem:
		return p.perms.FileSystem
	case PermissionGeolocation:
		return p.perms.Geolocation
	default:
		return false
	}
}
