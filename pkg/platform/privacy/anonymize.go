// Package privacy keeps personal data (client addresses, emails) out of logs.
package privacy

import (
	"fmt"
	"net/netip"
	"strings"
)

// AnonymizeIP zeroes the host part of an address: IPv4 keeps its /24,
// IPv6 keeps its /48. Returns "unknown" for empty input and "invalid"
// for anything unparseable.
func AnonymizeIP(ip string) string {
	if ip == "" || ip == "unknown" {
		return "unknown"
	}
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return "invalid"
	}
	addr = addr.Unmap()
	if addr.Is4() {
		prefix, _ := addr.Prefix(24) //nolint:errcheck // 24 is always valid for IPv4
		return prefix.Addr().String()
	}
	b := addr.As16()
	return fmt.Sprintf("%02x%02x:%02x%02x:%02x%02x::", b[0], b[1], b[2], b[3], b[4], b[5])
}

// MaskEmail keeps the first character of the local part and the domain:
// "jane.smith@example.com" becomes "j***@example.com".
func MaskEmail(email string) string {
	local, domain, ok := strings.Cut(strings.TrimSpace(email), "@")
	if !ok || local == "" || domain == "" {
		return "***"
	}
	return local[:1] + "***@" + domain
}
