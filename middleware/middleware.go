package middleware

import (
	"context"
	"time"

	"github.com/ariebrainware/healthsync-rx/util"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	dbKey        = "db"
	dbTimeoutKey = "db_timeout"
	dbCtxKey     = "db_ctx"
	dbCancelKey  = "db_cancel"

	// RequestIDHeader carries the request id in and out.
	RequestIDHeader = "X-Request-ID"
)

// CORSMiddleware configures CORS for the given origins. A "*" entry allows any origin while
// still permitting credentials.
func CORSMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Requested-With", RequestIDHeader},
		ExposeHeaders:    []string{RequestIDHeader, "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}
	if len(origins) == 0 || util.Contains("*", origins) {
		cfg.AllowOriginFunc = func(string) bool { return true }
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}

// RequestID tags every request with an id, reusing the caller's X-Request-ID when present.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		c.Set(util.RequestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// DatabaseMiddleware makes db available to handlers. Queries issued through GetDB share one
// deadline of timeout, started on first use; a zero timeout means no deadline.
func DatabaseMiddleware(db *gorm.DB, timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(dbKey, db)
		c.Set(dbTimeoutKey, timeout)
		c.Next()
		if v, ok := c.Get(dbCancelKey); ok {
			if cancel, ok := v.(context.CancelFunc); ok {
				cancel()
			}
		}
	}
}

// GetDB returns the request-scoped database handle, or nil when none was configured.
func GetDB(c *gin.Context) *gorm.DB {
	v, ok := c.Get(dbKey)
	if !ok {
		return nil
	}
	db, ok := v.(*gorm.DB)
	if !ok || db == nil {
		return nil
	}

	if v, ok := c.Get(dbCtxKey); ok {
		return db.WithContext(v.(context.Context))
	}

	parent := context.Background()
	if c.Request != nil {
		parent = c.Request.Context()
	}
	timeout := c.GetDuration(dbTimeoutKey)
	if timeout <= 0 {
		c.Set(dbCtxKey, parent)
		return db.WithContext(parent)
	}
	ctx, cancel := context.WithTimeout(parent, timeout)
	c.Set(dbCtxKey, ctx)
	c.Set(dbCancelKey, cancel)
	return db.WithContext(ctx)
}
