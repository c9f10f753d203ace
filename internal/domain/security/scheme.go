package security

import "strings"

// InternalScheme serves content loaded with LoadHTML.
const InternalScheme = "nativewindow"

// InternalContentURL is the URL windows navigate to when showing stored HTML.
const InternalContentURL = InternalScheme + "://localhost/"

var internalHosts = map[string]struct{}{
	"nativewindow.localhost": {},
	"native-window.local":    {},
}

var dangerousSchemes = []string{"javascript:", "file:", "data:", "blob:"}

// IsDangerousScheme reports whether the URL uses a scheme that must never be
// reached by content-initiated navigation.
func IsDangerousScheme(raw string) bool {
	s := strings.ToLower(stripURLNoise(raw))
	for _, scheme := range dangerousSchemes {
		if strings.HasPrefix(s, scheme) {
			return true
		}
	}
	return false
}

// IsInternalURL reports whether the URL belongs to the window's own content:
// about: documents, the nativewindow: scheme and the reserved local hosts.
func IsInternalURL(raw string) bool {
	s := strings.ToLower(stripURLNoise(raw))
	if strings.HasPrefix(s, "about:") || strings.HasPrefix(s, InternalScheme+":") {
		return true
	}
	host, ok := ExtractHost(s)
	if !ok {
		return false
	}
	_, internal := internalHosts[host]
	return internal
}

// stripURLNoise drops leading/trailing C0 controls and spaces and removes tab
// and newline characters anywhere, as URL parsers do before reading the scheme.
func stripURLNoise(raw string) string {
	s := strings.TrimFunc(raw, func(r rune) bool { return r <= 0x20 })
	if strings.ContainsAny(s, "\t\n\r") {
		s = strings.Map(func(r rune) rune {
			switch r {
			case '\t', '\n', '\r':
				return -1
			}
			return r
		}, s)
	}
	return s
}
