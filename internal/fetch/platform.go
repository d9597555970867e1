package fetch

import (
	"net/url"
	"strings"
)

// Platform is the site builder or portfolio host a page is served from.
type Platform string

const (
	PlatformBehance     Platform = "behance"
	PlatformDribbble    Platform = "dribbble"
	PlatformGitHubPages Platform = "github_pages"
	PlatformWix         Platform = "wix"
	PlatformFramer      Platform = "framer"
	PlatformWebflow     Platform = "webflow"
	PlatformSquarespace Platform = "squarespace"
	PlatformUnknown     Platform = "unknown"
)

var platformHosts = []struct {
	suffix   string
	platform Platform
}{
	{"behance.net", PlatformBehance},
	{"dribbble.com", PlatformDribbble},
	{"github.io", PlatformGitHubPages},
	{"wixsite.com", PlatformWix},
	{"wix.com", PlatformWix},
	{"framer.website", PlatformFramer},
	{"framer.app", PlatformFramer},
	{"webflow.io", PlatformWebflow},
	{"squarespace.com", PlatformSquarespace},
}

// DetectPlatform identifies the hosting platform from a URL.
func DetectPlatform(urlStr string) Platform {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return PlatformUnknown
	}

	host := strings.ToLower(parsed.Hostname())
	for _, p := range platformHosts {
		if host == p.suffix || strings.HasSuffix(host, "."+p.suffix) {
			return p.platform
		}
	}
	return PlatformUnknown
}

// RendersClientSide reports whether pages on the platform are assembled by
// JavaScript, so a plain HTTP fetch sees little content.
func RendersClientSide(p Platform) bool {
	switch p {
	case PlatformWix, PlatformFramer, PlatformBehance, PlatformDribbble:
		return true
	default:
		return false
	}
}

// PlatformContentSelectors returns content selectors for a platform, most specific first.
func PlatformContentSelectors(platform Platform) []string {
	switch platform {
	case PlatformBehance:
		return append([]string{".Project-projectModuleContainer", ".ProjectInfo"}, genericContentSelectors...)
	case PlatformDribbble:
		return append([]string{".shot-content-container", ".shot-description"}, genericContentSelectors...)
	case PlatformWix:
		return append([]string{"#SITE_CONTAINER", "#PAGES_CONTAINER"}, genericContentSelectors...)
	case PlatformFramer:
		return append([]string{"#main"}, genericContentSelectors...)
	default:
		return genericContentSelectors
	}
}

// PlatformNoiseSelectors returns elements to drop before text extraction.
func PlatformNoiseSelectors(platform Platform) []string {
	common := []string{
		".cookie-banner",
		".cookie-consent",
		".gdpr-notice",
		"[aria-hidden='true']",
	}

	switch platform {
	case PlatformWix:
		return append(common, "#WIX_ADS", ".wix-ads")
	case PlatformFramer:
		return append(common, "#__framer-badge-container")
	case PlatformBehance, PlatformDribbble:
		return append(common, ".signup-overlay", ".sign-up-banner")
	default:
		return common
	}
}
