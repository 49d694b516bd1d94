package links

import (
	"net/url"
	"strings"
)

// DefaultLogoEndpoint is the logo lookup service used when none is configured.
// The domain is appended to it.
const DefaultLogoEndpoint = "https://logo.clearbit.com/"

// DefaultLogo is the built-in chain-link icon, inlined as an SVG data URL so it
// never needs a network fetch.
const DefaultLogo = "data:image/svg+xml,%3Csvg xmlns='http://www.w3.org/2000/svg' viewBox='0 0 24 24' fill='%236366F1'%3E" +
	"%3Cpath d='M3.9 12c0-1.71 1.39-3.1 3.1-3.1h4V7H7c-2.76 0-5 2.24-5 5s2.24 5 5 5h4v-1.9H7c-1.71 0-3.1-1.39-3.1-3.1z" +
	"M8 13h8v-2H8v2zm9-6h-4v1.9h4c1.71 0 3.1 1.39 3.1 3.1s-1.39 3.1-3.1 3.1h-4V17h4c2.76 0 5-2.24 5-5s-2.24-5-5-5z'/%3E%3C/svg%3E"

// Logo is the pair of image sources for one link.
type Logo struct {
	Primary  string
	Fallback string
}

// IsDefault reports whether the primary source is already the built-in icon.
func (l Logo) IsDefault() bool { return l.Primary == l.Fallback }

// LogoResolver maps link URLs to logo sources.
type LogoResolver struct {
	// Endpoint is the lookup URL prefix; the bare domain is appended to it.
	Endpoint string
}

// NewLogoResolver returns a resolver for endpoint, or for DefaultLogoEndpoint
// when endpoint is empty.
func NewLogoResolver(endpoint string) *LogoResolver {
	if endpoint == "" {
		endpoint = DefaultLogoEndpoint
	}
	if !strings.HasSuffix(endpoint, "/") {
		endpoint += "/"
	}
	return &LogoResolver{Endpoint: endpoint}
}

// Resolve picks the logo sources for rawURL. URLs without a usable host get the
// built-in icon as primary, so no lookup is attempted for them.
func (r *LogoResolver) Resolve(rawURL string) Logo {
	logo := Logo{Primary: DefaultLogo, Fallback: DefaultLogo}
	if domain := Domain(rawURL); domain != "" {
		logo.Primary = r.Endpoint + domain
	}
	return logo
}

var defaultResolver = NewLogoResolver("")

// ResolveLogo resolves rawURL against DefaultLogoEndpoint.
func ResolveLogo(rawURL string) Logo {
	return defaultResolver.Resolve(rawURL)
}

// Domain returns the lower-cased host of an absolute URL with any leading
// "www." removed. Relative or unparseable input yields "".
func Domain(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Scheme == "" {
		return ""
	}
	host := strings.ToLower(u.Hostname())
	return strings.TrimPrefix(host, "www.")
}

// LogoImage tracks one rendered logo while it loads. The error handler swaps
// to the fallback once and then goes quiet, so a broken fallback cannot loop.
type LogoImage struct {
	logo    Logo
	src     string
	swapped bool
}

// NewLogoImage starts an image on the primary source.
func NewLogoImage(l Logo) *LogoImage {
	return &LogoImage{logo: l, src: l.Primary}
}

// Src is the source currently shown.
func (i *LogoImage) Src() string { return i.src }

// OnError handles a failed load. It reports whether the source changed.
func (i *LogoImage) OnError() bool {
	if i.swapped || i.src == i.logo.Fallback {
		i.swapped = true
		return false
	}
	i.src = i.logo.Fallback
	i.swapped = true
	return true
}

// OnLoad handles a successful load. It reports whether the placeholder
// background and padding should be dropped, which is only the case for a real
// site logo.
func (i *LogoImage) OnLoad() bool {
	return i.src != i.logo.Fallback
}
