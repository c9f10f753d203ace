// Package security classifies inbound messages and navigations for a window.
package security

import (
	"net"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/net/idna"
)

// tupleSchemes have a (scheme, host, port) origin. Every other scheme
// serializes to an opaque origin and never matches a trusted origin.
var tupleSchemes = map[string]string{
	"http":  "80",
	"https": "443",
	"ws":    "80",
	"wss":   "443",
	"ftp":   "21",
}

var hostProfile = idna.New(
	idna.MapForLookup(),
	idna.Transitional(false),
	idna.StrictDomainName(false),
)

// ExtractOrigin returns the ASCII serialization of the URL's origin:
// scheme://host[:port] with scheme and host lower-cased, default ports and
// user-info stripped and IPv6 hosts bracketed. Malformed URLs and URLs with an
// opaque origin (file:, data:, blob:, about:, custom schemes) return false.
func ExtractOrigin(raw string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Opaque != "" {
		return "", false
	}

	scheme := strings.ToLower(u.Scheme)
	defaultPort, ok := tupleSchemes[scheme]
	if !ok {
		return "", false
	}

	host, ok := normalizeHost(u.Hostname())
	if !ok {
		return "", false
	}

	port := u.Port()
	if port == "" && strings.HasSuffix(u.Host, ":") {
		// "http://host:" is a valid URL with the default port
		port = defaultPort
	}
	if port != "" {
		n, err := strconv.ParseUint(port, 10, 16)
		if err != nil {
			return "", false
		}
		port = strconv.FormatUint(n, 10)
	}

	var b strings.Builder
	b.WriteString(scheme)
	b.WriteString("://")
	if strings.Contains(host, ":") {
		b.WriteByte('[')
		b.WriteString(host)
		b.WriteByte(']')
	} else {
		b.WriteString(host)
	}
	if port != "" && port != defaultPort {
		b.WriteByte(':')
		b.WriteString(port)
	}
	return b.String(), true
}

// normalizeHost lower-cases the host and converts internationalized names to
// their ASCII form. IP literals are returned in canonical form.
func normalizeHost(host string) (string, bool) {
	if host == "" {
		return "", false
	}
	if ip := net.ParseIP(host); ip != nil {
		if ip.To4() == nil {
			return ip.String(), true
		}
		return ip.To4().String(), true
	}
	ascii, err := hostProfile.ToASCII(host)
	if err != nil || ascii == "" {
		return "", false
	}
	return strings.ToLower(ascii), true
}

// ExtractHost returns the normalized host (no port, no brackets) of a URL with
// an authority component.
func ExtractHost(raw string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Opaque != "" || u.Host == "" {
		return "", false
	}
	return normalizeHost(u.Hostname())
}

// isWellFormed reports whether raw parses as an absolute URL. URLs with a
// tuple scheme must also yield an origin.
func isWellFormed(raw string) bool {
	s := stripURLNoise(raw)
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" {
		return false
	}
	if _, tuple := tupleSchemes[strings.ToLower(u.Scheme)]; tuple {
		_, ok := ExtractOrigin(s)
		return ok
	}
	return true
}
