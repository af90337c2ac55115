package middleware

import (
	"fmt"
	"time"

	"github.com/ariebrainware/healthsync-rx/util"
	"github.com/gin-gonic/gin"
)

// EndpointCallLogger logs each HTTP request as an endpoint event. When util.SetSecurityLoggerDB
// was called at startup the event is also persisted to the security_logs table.
func EndpointCallLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)
		status := c.Writer.Status()

		userID, _ := GetUserID(c)
		role, _ := GetRole(c)
		email, _ := GetEmail(c)

		details := map[string]interface{}{
			"method":      c.Request.Method,
			"path":        c.FullPath(),
			"raw_path":    c.Request.URL.Path,
			"status":      status,
			"duration_ms": duration.Milliseconds(),
			"query":       c.Request.URL.RawQuery,
		}
		if userID != 0 {
			details["user_id"] = userID
		}
		if role != "" {
			details["role"] = string(role)
		}

		uid := ""
		if userID != 0 {
			uid = fmt.Sprintf("%d", userID)
		}
		util.LogSecurityEvent(util.SecurityEvent{
			EventType: util.EventEndpointCall,
			UserID:    uid,
			Email:     email,
			Role:      string(role),
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
			RequestID: c.GetString(util.RequestIDKey),
			Message:   fmt.Sprintf("%s %s -> %d", c.Request.Method, c.Request.URL.Path, status),
			Details:   details,
		})
	}
}
