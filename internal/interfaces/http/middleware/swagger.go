package middleware

import (
	"net/http"
	"net/netip"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/storefront/platform/internal/interfaces/http/dto"
)

type SwaggerConfig struct {
	Enabled bool
	// AllowedIPs holds addresses or CIDR prefixes. Empty lets everyone in.
	AllowedIPs []string
}

// SwaggerProtection answers 404 while docs are disabled and 403 to clients
// outside the allow list
func SwaggerProtection(cfg SwaggerConfig) gin.HandlerFunc {
	allowed := parsePrefixes(cfg.AllowedIPs)

	return func(c *gin.Context) {
		switch {
		case !cfg.Enabled:
			AbortWithError(c, http.StatusNotFound, dto.ErrCodeNotFound, "API documentation is not available")
		case len(cfg.AllowedIPs) > 0 && !containsAddr(allowed, c.ClientIP()):
			AbortWithError(c, http.StatusForbidden, dto.ErrCodeForbidden, "Access to API documentation is restricted")
		default:
			c.Next()
		}
	}
}

// parsePrefixes turns bare addresses into single-host prefixes and skips
// entries that parse as neither
func parsePrefixes(entries []string) []netip.Prefix {
	prefixes := make([]netip.Prefix, 0, len(entries))
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if p, err := netip.ParsePrefix(entry); err == nil {
			prefixes = append(prefixes, p.Masked())
			continue
		}
		if a, err := netip.ParseAddr(entry); err == nil {
			prefixes = append(prefixes, netip.PrefixFrom(a, a.BitLen()))
		}
	}
	return prefixes
}

func containsAddr(prefixes []netip.Prefix, ip string) bool {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, p := range prefixes {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}
