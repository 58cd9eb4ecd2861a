// Package device turns raw User-Agent strings into short display names for
// audit consumers ("Chrome on Linux"). The registry never acts on the value.
package device

import (
	"strings"

	"github.com/mssola/useragent"
)

// ParseUserAgent returns a human-readable device description for a raw
// User-Agent header. Unknown or empty agents map to "Unknown Device".
func ParseUserAgent(ua string) string {
	if strings.TrimSpace(ua) == "" {
		return "Unknown Device"
	}

	parsed := useragent.New(ua)
	browser, _ := parsed.Browser()
	os := parsed.OSInfo().Name
	if os == "" {
		os = parsed.Platform()
	}

	switch {
	case browser != "" && os != "":
		return browser + " on " + os
	case browser != "":
		return browser
	case os != "":
		return "Unknown browser on " + os
	default:
		return "Unknown Device"
	}
}
