package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/veljkom/e-dnevnik-api/internal/middleware"
	"github.com/veljkom/e-dnevnik-api/internal/models"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}

// clientIP resolves the caller address from proxy headers, best effort.
// Detection never fails the request; the final fallback is "unknown".
func clientIP(c *gin.Context) string {
	if forwarded := c.GetHeader("x-forwarded-for"); forwarded != "" {
		if first := strings.TrimSpace(strings.Split(forwarded, ",")[0]); first != "" {
			return first
		}
	}
	if ip := c.GetHeader("x-real-ip"); ip != "" {
		return ip
	}
	if host := c.GetHeader("x-forwarded-host"); host != "" {
		return host
	}
	if host := c.Request.Host; host != "" {
		return host
	}
	return "unknown"
}
