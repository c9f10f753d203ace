package headless

import (
	"net/url"
	"strings"
	"time"

	"github.com/bnema/nativewindow/internal/domain/window"
)

func (v *view) setCookie(c window.Cookie) {
	for i, existing := range v.cookies {
		if existing.Name == c.Name && existing.Domain == c.Domain && existing.Path == c.Path {
			v.cookies[i] = c
			return
		}
	}
	v.cookies = append(v.cookies, c)
}

// cookiesFor returns the unexpired cookies, restricted to those a request to
// target would carry when target is set.
func (p *Platform) cookiesFor(v *view, target *string) []window.Cookie {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := float64(time.Now().Unix())
	var u *url.URL
	if target != nil {
		parsed, err := url.Parse(*target)
		if err != nil || parsed.Hostname() == "" {
			return nil
		}
		u = parsed
	}

	out := make([]window.Cookie, 0, len(v.cookies))
	for _, c := range v.cookies {
		if c.Expires > 0 && c.Expires < now {
			continue
		}
		if u != nil && !cookieMatches(c, u) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func cookieMatches(c window.Cookie, u *url.URL) bool {
	host := strings.ToLower(u.Hostname())
	domain := strings.ToLower(c.Domain)
	if bare, ok := strings.CutPrefix(domain, "."); ok {
		if host != bare && !strings.HasSuffix(host, domain) {
			return false
		}
	} else if host != domain {
		return false
	}

	if c.Secure && u.Scheme != "https" {
		return false
	}

	path := u.Path
	if path == "" {
		path = "/"
	}
	cookiePath := c.Path
	if cookiePath == "" {
		cookiePath = "/"
	}
	if path == cookiePath {
		return true
	}
	if !strings.HasPrefix(path, cookiePath) {
		return false
	}
	return strings.HasSuffix(cookiePath, "/") || path[len(cookiePath)] == '/'
}
