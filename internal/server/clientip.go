package server

import (
	"log/slog"
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// ClientIP resolves the address a request came from. X-Forwarded-For is
// only honoured when the direct peer is one of the trusted proxies.
type ClientIP struct {
	trusted []netip.Prefix
}

// NewClientIP accepts proxy addresses ("10.0.0.2") or ranges ("10.0.0.0/8").
// Entries that parse as neither are logged and skipped.
func NewClientIP(proxies []string) ClientIP {
	var c ClientIP
	for _, p := range proxies {
		if prefix, err := netip.ParsePrefix(p); err == nil {
			c.trusted = append(c.trusted, prefix.Masked())
			continue
		}
		addr, err := netip.ParseAddr(p)
		if err != nil {
			slog.Warn(LogMsgBadTrustedProxy, "proxy", p, "error", err)
			continue
		}
		c.trusted = append(c.trusted, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return c
}

// Resolve returns the client address as a string; unparseable peers are returned verbatim
func (c ClientIP) Resolve(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	if !c.isTrusted(host) {
		return host
	}
	forwarded := r.Header.Get(HeaderForwardedFor)
	if forwarded == "" {
		return host
	}
	// The rightmost hop is the one our proxy saw
	hops := strings.Split(forwarded, ",")
	return strings.TrimSpace(hops[len(hops)-1])
}

func (c ClientIP) isTrusted(host string) bool {
	addr, err := netip.ParseAddr(host)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, p := range c.trusted {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}
