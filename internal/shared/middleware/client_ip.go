package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

const ContextKeyClientIP = "client_ip"

// ClientIPMiddleware resolves the real client IP behind the CDN / reverse
// proxy chain and stores it in the context for the rate limiter and logs.
func ClientIPMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := extractClientIP(c)
		c.Set(ContextKeyClientIP, ip)
		c.Next()
	}
}

func extractClientIP(c *gin.Context) string {
	// X-Forwarded-For: first entry is the original client
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		candidate := strings.TrimSpace(parts[0])
		if net.ParseIP(candidate) != nil {
			return candidate
		}
	}

	if xri := c.GetHeader("X-Real-IP"); xri != "" {
		if net.ParseIP(xri) != nil {
			return xri
		}
	}

	host, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		return c.Request.RemoteAddr
	}
	return host
}
