package imageref

import (
	"net/http"
	"regexp"
	"strings"
)

var absoluteRef = regexp.MustCompile(`(?i)^(https?://|data:)`)

// Materializer turns stored references into absolute URLs for responses.
type Materializer struct {
	// PublicBaseURL overrides the request origin when set, e.g. behind a CDN.
	PublicBaseURL string
}

func NewMaterializer(publicBaseURL string) *Materializer {
	return &Materializer{PublicBaseURL: strings.TrimRight(publicBaseURL, "/")}
}

// BaseURL is the configured public base URL or the scheme and host of r.
func (m *Materializer) BaseURL(r *http.Request) string {
	if m.PublicBaseURL != "" {
		return m.PublicBaseURL
	}
	if r == nil {
		return ""
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = strings.TrimSpace(strings.Split(proto, ",")[0])
	}
	return scheme + "://" + r.Host
}

// Link never returns anything but a string: an empty reference stays "".
func (m *Materializer) Link(ref string, r *http.Request) string {
	ref = strings.TrimSpace(ref)
	if ref == "" || absoluteRef.MatchString(ref) {
		return ref
	}
	if !strings.HasPrefix(ref, "/") {
		ref = "/" + ref
	}
	return m.BaseURL(r) + ref
}
