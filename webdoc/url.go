// Package webdoc fetches remote compliance documents over HTTPS and
// converts HTML pages into markdown suitable for control extraction.
// It implements SSRF prevention including private IP detection and DNS
// rebinding protection.
package webdoc

import (
	"fmt"
	"net"
	"net/url"
	"strings"
)

// Pre-compiled CIDR networks for private/reserved IP ranges.
// These are parsed once at package initialization for efficiency.
var (
	cgnat    *net.IPNet // 100.64.0.0/10 - Carrier-grade NAT
	v6unique *net.IPNet // fc00::/7 - IPv6 unique local
	v6link   *net.IPNet // fe80::/10 - IPv6 link-local
)

func init() {
	var err error

	_, cgnat, err = net.ParseCIDR("100.64.0.0/10")
	if err != nil {
		panic("invalid CGNAT CIDR: " + err.Error())
	}

	_, v6unique, err = net.ParseCIDR("fc00::/7")
	if err != nil {
		panic("invalid IPv6 unique local CIDR: " + err.Error())
	}

	_, v6link, err = net.ParseCIDR("fe80::/10")
	if err != nil {
		panic("invalid IPv6 link-local CIDR: " + err.Error())
	}
}

// Validator checks document URLs before fetching. When AllowPrivateHosts
// is set, the private-address checks are skipped so local test servers
// and air-gapped document mirrors can be reached.
type Validator struct {
	AllowPrivateHosts bool
}

// ValidateURL validates a URL for security (SSRF prevention).
// It requires HTTP(S) and blocks localhost, private IPs, and local domains
// unless private hosts are explicitly allowed.
func (v Validator) ValidateURL(rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	switch parsed.Scheme {
	case "https":
	case "http":
		if !v.AllowPrivateHosts {
			return fmt.Errorf("only HTTPS URLs are allowed")
		}
	default:
		return fmt.Errorf("unsupported URL scheme %q", parsed.Scheme)
	}

	if v.AllowPrivateHosts {
		return nil
	}

	// Host without port
	host := parsed.Hostname()

	// Block localhost variants
	lowHost := strings.ToLower(host)
	if lowHost == "localhost" || lowHost == "127.0.0.1" || lowHost == "::1" {
		return fmt.Errorf("localhost URLs are not allowed")
	}

	// Block local domains
	if strings.HasSuffix(lowHost, ".local") || strings.HasSuffix(lowHost, ".internal") {
		return fmt.Errorf("local domain URLs are not allowed")
	}

	// Literal IP hosts get the private-range check immediately; resolved
	// hostnames are checked again at dial time.
	if ip := net.ParseIP(host); ip != nil {
		if IsPrivateIP(ip) {
			return fmt.Errorf("private IP addresses are not allowed")
		}
	}

	return nil
}

// IsPrivateIP checks if an IP is in private/reserved ranges.
// It handles IPv4, IPv6, and IPv6-mapped IPv4 addresses.
func IsPrivateIP(ip net.IP) bool {
	if ip.IsLoopback() || ip.IsPrivate() || ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() {
		return true
	}

	// IPv6-mapped IPv4 addresses (::ffff:x.x.x.x) are re-checked as IPv4
	if v4 := ip.To4(); v4 != nil {
		ip = v4
		if ip.IsLoopback() || ip.IsPrivate() || ip.IsLinkLocalUnicast() {
			return true
		}
	}

	if cgnat.Contains(ip) || v6unique.Contains(ip) || v6link.Contains(ip) {
		return true
	}

	return false
}
