package ratelimit

import (
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// Proxies is the set of peer networks whose forwarding headers are believed.
// An empty set believes nobody, so RemoteAddr stays the socket peer.
type Proxies []netip.Prefix

// ParseProxies reads single addresses ("10.0.0.1") and CIDR ranges
// ("10.0.0.0/8").
func ParseProxies(list []string) (Proxies, error) {
	var p Proxies
	for _, s := range list {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if strings.Contains(s, "/") {
			prefix, err := netip.ParsePrefix(s)
			if err != nil {
				return nil, fmt.Errorf("parsing trusted proxy %q: %w", s, err)
			}
			p = append(p, prefix.Masked())
			continue
		}
		addr, err := netip.ParseAddr(s)
		if err != nil {
			return nil, fmt.Errorf("parsing trusted proxy %q: %w", s, err)
		}
		p = append(p, netip.PrefixFrom(addr.Unmap(), addr.Unmap().BitLen()))
	}
	return p, nil
}

func (p Proxies) trusts(addr netip.Addr) bool {
	addr = addr.Unmap()
	for _, prefix := range p {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

// RealIP rewrites RemoteAddr to the client address carried in
// X-Forwarded-For or X-Real-IP, but only for requests whose socket peer is a
// trusted proxy. X-Forwarded-For is read right to left and the first hop
// that is not itself a trusted proxy wins, so a client cannot pick its own
// address by prepending entries.
func (p Proxies) RealIP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if peer, ok := parseHost(r.RemoteAddr); ok && p.trusts(peer) {
			if client, ok := p.forwardedClient(r); ok {
				r.RemoteAddr = client.String()
			}
		}
		next.ServeHTTP(w, r)
	})
}

func (p Proxies) forwardedClient(r *http.Request) (netip.Addr, bool) {
	if xff := r.Header.Values("X-Forwarded-For"); len(xff) > 0 {
		hops := strings.Split(strings.Join(xff, ","), ",")
		var last netip.Addr
		for i := len(hops) - 1; i >= 0; i-- {
			addr, err := netip.ParseAddr(strings.TrimSpace(hops[i]))
			if err != nil {
				break
			}
			last = addr
			if !p.trusts(addr) {
				return addr, true
			}
		}
		if last.IsValid() {
			return last, true
		}
	}
	if addr, err := netip.ParseAddr(strings.TrimSpace(r.Header.Get("X-Real-IP"))); err == nil {
		return addr, true
	}
	return netip.Addr{}, false
}

func parseHost(remoteAddr string) (netip.Addr, bool) {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		host = remoteAddr
	}
	addr, err := netip.ParseAddr(host)
	return addr, err == nil
}
