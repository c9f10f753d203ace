package window

import "encoding/json"

// Cookie is one element of the cookies event payload.
type Cookie struct {
	Name     string `json:"name"`
	Value    string `json:"value"`
	Domain   string `json:"domain"`
	Path     string `json:"path"`
	HTTPOnly bool   `json:"httpOnly"`
	Secure   bool   `json:"secure"`
	// SameSite is "None", "Lax", "Strict" or empty when unspecified.
	SameSite string `json:"sameSite,omitempty"`
	// Expires is seconds since the Unix epoch, -1 for session cookies.
	Expires float64 `json:"expires"`
}

// EncodeCookies renders cookies as the JSON array delivered to the host.
func EncodeCookies(cookies []Cookie) string {
	if cookies == nil {
		cookies = []Cookie{}
	}
	out, err := json.Marshal(cookies)
	if err != nil {
		return "[]"
	}
	return string(out)
}
