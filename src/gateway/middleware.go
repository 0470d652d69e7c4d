package gateway

import (
	"errors"
	"net/http"
	"slices"
	"strings"

	"github.com/warp-contracts/batch-registry/src/auth"
	. "github.com/warp-contracts/batch-registry/src/utils/logger"

	"github.com/gin-gonic/gin"
)

const (
	PasswordHeader = "X-Role-Password"
	bearerPrefix   = "Bearer "
)

var ErrTooManyRequests = errors.New("too many requests")

// Browser clients are served from a different origin
func (self *Server) cors() gin.HandlerFunc {
	origins := self.Config.Api.AllowedOrigins
	anyOrigin := slices.Contains(origins, "*")

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && (anyOrigin || slices.Contains(origins, origin)) {
			if anyOrigin {
				c.Header("Access-Control-Allow-Origin", "*")
			} else {
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Vary", "Origin")
			}
			c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, "+PasswordHeader+", "+RequestIdHeader)
			c.Header("Access-Control-Expose-Headers", RequestIdHeader)
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func (self *Server) rateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if self.limiter != nil && !self.limiter.Allow() {
			LOGE(c, ErrTooManyRequests, http.StatusTooManyRequests).Warn("Request rate limited")
			return
		}
		c.Next()
	}
}

func (self *Server) countRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		self.monitor.GetReport().Gateway.State.RequestsServed.Inc()
	}
}

func credential(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, bearerPrefix) {
		return strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
	}
	return c.GetHeader(PasswordHeader)
}

// Lets through only requests carrying a credential for the role
func (self *Server) authorize(role auth.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := self.auth.Verify(c.Request.Context(), role, credential(c))
		if err != nil {
			self.monitor.GetReport().Gateway.Errors.Unauthorized.Inc()
			LOGE(c, auth.ErrUnauthorized, http.StatusUnauthorized).
				WithField("role", role).
				WithField("cause", err.Error()).
				Info("Request rejected")
			return
		}
		c.Next()
	}
}
