// Package device turns User-Agent headers into session display names.
package device

import (
	"strings"

	"github.com/mssola/useragent"
)

// cliProduct is the product token draftctl sends in its User-Agent.
const cliProduct = "draftctl/"

// ParseUserAgent returns "Browser on OS" (e.g. "Chrome on macOS"),
// "draftctl on linux" for the operator CLI, or "Unknown Device".
func ParseUserAgent(userAgentString string) string {
	userAgentString = strings.TrimSpace(userAgentString)
	if userAgentString == "" {
		return "Unknown Device"
	}

	if rest, ok := strings.CutPrefix(userAgentString, cliProduct); ok {
		return cliDisplayName(rest)
	}

	ua := useragent.New(userAgentString)
	browser, _ := ua.Browser()
	os := ua.OS()

	if ua.Mobile() {
		if platform := ua.Platform(); platform != "" {
			return strings.TrimSpace(browser + " on " + platform)
		}
	}

	if browser == "" {
		browser = "Unknown Browser"
	}
	if os == "" {
		os = "Unknown OS"
	}
	return strings.TrimSpace(browser + " on " + os)
}

// cliDisplayName reads "<version> (<goos>/<goarch>)".
func cliDisplayName(rest string) string {
	_, platform, found := strings.Cut(rest, "(")
	platform = strings.TrimSuffix(strings.TrimSpace(platform), ")")
	goos, _, _ := strings.Cut(platform, "/")
	if !found || goos == "" {
		return "draftctl"
	}
	return "draftctl on " + goos
}
