package logger

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/xid"
	"github.com/sirupsen/logrus"
)

const (
	RequestIdKey    = "request-id"
	RequestIdHeader = "X-Request-Id"
)

// Assigns an id to every request, reusing the one sent by the client
func RequestId() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIdHeader)
		if id == "" {
			id = xid.New().String()
		}
		c.Set(RequestIdKey, id)
		c.Header(RequestIdHeader, id)
		c.Next()
	}
}

// Request scoped logger
func LOG(c *gin.Context) *logrus.Entry {
	return NewSublogger("api").WithFields(logrus.Fields{
		"id":     c.GetString(RequestIdKey),
		"method": c.Request.Method,
		"path":   c.FullPath(),
	})
}

// Aborts the request with the status and a human readable error in the body.
// Returns logger for reporting the failure.
func LOGE(c *gin.Context, err error, status int) *logrus.Entry {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	c.AbortWithStatusJSON(status, gin.H{"error": msg})

	return LOG(c).WithError(err).WithField("status", status)
}
