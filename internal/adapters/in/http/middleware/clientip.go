package middleware

import (
	"net"

	"github.com/labstack/echo/v4"
)

// ParseTrustedProxies converts a list of IP addresses and CIDR ranges to net.IPNet.
// It accepts both single IPs (e.g., "10.0.0.1") and CIDR notation (e.g., "10.0.0.0/8").
// Single IPs are converted to /32 (IPv4) or /128 (IPv6) CIDR blocks. Entries
// that parse as neither are returned in invalid.
func ParseTrustedProxies(proxies []string) (nets []*net.IPNet, invalid []string) {
	for _, proxy := range proxies {
		if _, ipNet, err := net.ParseCIDR(proxy); err == nil {
			nets = append(nets, ipNet)
			continue
		}
		ip := net.ParseIP(proxy)
		if ip == nil {
			invalid = append(invalid, proxy)
			continue
		}
		bits := 32
		if ip.To4() == nil {
			bits = 128
		}
		nets = append(nets, &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)})
	}
	return nets, invalid
}

// ContainsIP reports whether ip falls in any of nets.
// Returns false if nets is empty or the IP cannot be parsed.
func ContainsIP(ip string, nets []*net.IPNet) bool {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return false
	}
	for _, n := range nets {
		if n.Contains(parsed) {
			return true
		}
	}
	return false
}

// IPExtractor returns how echo resolves c.RealIP(). Forwarding headers are
// only honored when the direct peer is one of the trusted proxies; with none
// configured the connection address is used as is.
func IPExtractor(trusted []*net.IPNet) echo.IPExtractor {
	if len(trusted) == 0 {
		return echo.ExtractIPDirect()
	}
	opts := []echo.TrustOption{
		echo.TrustLoopback(false),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(false),
	}
	for _, n := range trusted {
		opts = append(opts, echo.TrustIPRange(n))
	}
	return echo.ExtractIPFromXFFHeader(opts...)
}
